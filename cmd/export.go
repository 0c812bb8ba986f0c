package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/theirongolddev/bburn/internal/source"
	"github.com/theirongolddev/bburn/internal/store"
)

var (
	flagExportFormat string
	flagExportOutput string
	flagExportAll    bool
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export entries as CSV or JSON",
	Long:  "Export entries in the same format `bburn import` reads.",
	Args:  cobra.NoArgs,
	RunE:  runExport,
}

func init() {
	exportCmd.Flags().StringVar(&flagExportFormat, "format", "", "csv or json (default: from --output extension, else csv)")
	exportCmd.Flags().StringVarP(&flagExportOutput, "output", "o", "", "Output file (default: stdout)")
	exportCmd.Flags().BoolVar(&flagExportAll, "all", false, "Export every year, not just --year")
	rootCmd.AddCommand(exportCmd)
}

func exportFormat() (source.Format, error) {
	switch strings.ToLower(flagExportFormat) {
	case "csv":
		return source.FormatCSV, nil
	case "json":
		return source.FormatJSON, nil
	case "":
		if f, ok := source.FormatOf(flagExportOutput); ok {
			return f, nil
		}
		return source.FormatCSV, nil
	}
	return "", fmt.Errorf("unknown format %q (want csv or json)", flagExportFormat)
}

func runExport(_ *cobra.Command, _ []string) error {
	format, err := exportFormat()
	if err != nil {
		return err
	}

	return withStore(func(ctx context.Context, e *env, st *store.Store) error {
		year := e.year
		if flagExportAll {
			year = 0
		}
		entries, err := st.LoadEntries(ctx, year)
		if err != nil {
			return err
		}

		var w io.Writer = os.Stdout
		if flagExportOutput != "" {
			f, err := os.Create(flagExportOutput)
			if err != nil {
				return fmt.Errorf("creating %s: %w", flagExportOutput, err)
			}
			defer f.Close()
			w = f
		}

		if format == source.FormatJSON {
			err = source.WriteJSON(w, entries)
		} else {
			err = source.WriteCSV(w, entries)
		}
		if err != nil {
			return fmt.Errorf("writing export: %w", err)
		}
		if flagExportOutput != "" && !flagQuiet {
			fmt.Fprintf(os.Stderr, "  Wrote %d entries to %s\n", len(entries), flagExportOutput)
		}
		return nil
	})
}
