package main

import (
	"encoding/json"
	"fmt"
	"io"
	"path/filepath"

	"github.com/KevinKickass/OpenIOTable/internal/catalog"
	"github.com/KevinKickass/OpenIOTable/internal/equipment"
	"github.com/KevinKickass/OpenIOTable/internal/export"
	"github.com/KevinKickass/OpenIOTable/internal/iotable"
	"github.com/spf13/cobra"
)

var generateExample = `
  # write S1_IO点表.xlsx into the configured output directory
  iotable generate equipment/S1.yaml

  # formula names, explicit output file
  iotable generate S1 --name-mode formula -o /tmp/s1.xlsx

  # print the table as JSON
  iotable generate S1 --format json
`

type generateOptions struct {
	output   string
	format   string
	nameMode string
}

func newGenerateCommand(out io.Writer, global *globalOptions) *cobra.Command {
	opts := &generateOptions{}

	cmd := &cobra.Command{
		Use:     "generate <equipment-list>",
		Short:   "Build the point table of one station",
		Example: generateExample,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGenerate(out, global, opts, args[0])
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (default <output_dir>/<station>_IO点表.xlsx)")
	cmd.Flags().StringVarP(&opts.format, "format", "f", "xlsx", "output format: xlsx or json")
	cmd.Flags().StringVar(&opts.nameMode, "name-mode", "", "sub-point naming: value or formula (default from config)")

	return cmd
}

func runGenerate(out io.Writer, global *globalOptions, opts *generateOptions, name string) error {
	cfg, logger, err := global.load()
	if err != nil {
		return err
	}
	defer logger.Sync()

	modeName := opts.nameMode
	if modeName == "" {
		modeName = cfg.Export.NameMode
	}
	mode, err := iotable.ParseNameMode(modeName)
	if err != nil {
		return err
	}

	loader, err := equipment.NewLoader(cfg.Equipment.SearchPaths, logger)
	if err != nil {
		return err
	}
	doc, err := loader.Load(name)
	if err != nil {
		return err
	}

	builder := iotable.NewBuilder(catalog.Default(), logger, iotable.WithNameMode(mode))
	table, err := builder.Build(doc.StationName, doc.Items())
	if err != nil {
		return fmt.Errorf("station %s: %w", doc.StationName, err)
	}

	switch opts.format {
	case "json":
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(table)
	case "xlsx":
		path := opts.output
		if path == "" {
			path = filepath.Join(cfg.Export.OutputDir, export.FileName(table.Station))
		}
		if err := export.NewExporter(cfg.Export.SheetName, logger).WriteFile(path, table); err != nil {
			return err
		}
		fmt.Fprintf(out, "%s: %d points, %d rack(s) -> %s\n", table.Name, table.Len(), table.RackCount, path)
		return nil
	default:
		return fmt.Errorf("unknown format %q (want xlsx or json)", opts.format)
	}
}
