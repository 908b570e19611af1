package types

// Error codes used in API error bodies.
const (
	CodeBadRequest   = "IOTABLE_400"
	CodeUnauthorized = "IOTABLE_401"
	CodeNotFound     = "IOTABLE_404"
	CodeSlotOverflow = "IOTABLE_422_SLOT_OVERFLOW"
	CodeAddrParse    = "IOTABLE_422_ADDR_PARSE"
	CodeRackCount    = "IOTABLE_422_RACK_COUNT"
	CodeInternal     = "IOTABLE_500"
	CodeUnavailable  = "IOTABLE_503"
)

type ErrorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details any    `json:"details,omitempty"`
}

type ErrorResponse struct {
	Error ErrorBody `json:"error"`
}

// NewErrorResponse builds a consistent API error payload.
// details can be string, map, struct, etc.
func NewErrorResponse(code, message string, details any) ErrorResponse {
	return ErrorResponse{
		Error: ErrorBody{
			Code:    code,
			Message: message,
			Details: details,
		},
	}
}
