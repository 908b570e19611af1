package main

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/KevinKickass/OpenIOTable/internal/catalog"
	"github.com/KevinKickass/OpenIOTable/internal/equipment"
	"github.com/KevinKickass/OpenIOTable/internal/types"
	"github.com/spf13/cobra"
)

func newSummaryCommand(out io.Writer, global *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "summary <equipment-list>",
		Short: "Count channels per class without allocating addresses",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, err := global.load()
			if err != nil {
				return err
			}
			defer logger.Sync()

			loader, err := equipment.NewLoader(cfg.Equipment.SearchPaths, logger)
			if err != nil {
				return err
			}
			doc, err := loader.Load(args[0])
			if err != nil {
				return err
			}

			items := doc.Items()
			summary := catalog.Default().Summarize(items)

			w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
			fmt.Fprintf(w, "STATION\t%s\n", doc.StationName)
			fmt.Fprintf(w, "RACKS\t%d\n", catalog.RackCount(items))
			fmt.Fprintln(w, "CLASS\tCHANNELS\tTYPE")
			for _, class := range types.ChannelClasses {
				total := summary[string(class)]
				fmt.Fprintf(w, "%s\t%d\t%s\n", class, total.Count, total.DataType)
			}
			return w.Flush()
		},
	}
}
