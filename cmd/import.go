package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/theirongolddev/bburn/internal/cli"
	"github.com/theirongolddev/bburn/internal/ingest"
	"github.com/theirongolddev/bburn/internal/source"
	"github.com/theirongolddev/bburn/internal/store"
)

var (
	flagImportForce  bool
	flagImportDryRun bool
)

var importCmd = &cobra.Command{
	Use:   "import <file-or-dir>...",
	Short: "Import entries from CSV or JSON files",
	Long: `Import entries from CSV or JSON files. Directories are scanned for
*.csv and *.json. Files are applied in path order, so a later file replaces an
earlier one for the same category and month. Files unchanged since the last
import are skipped unless --force is given.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runImport,
}

func init() {
	importCmd.Flags().BoolVarP(&flagImportForce, "force", "f", false, "Reimport files even if unchanged")
	importCmd.Flags().BoolVar(&flagImportDryRun, "dry-run", false, "Parse and validate without saving")
	rootCmd.AddCommand(importCmd)
}

func importProgress() ingest.ProgressFunc {
	if flagQuiet {
		return nil
	}
	return func(current, total int) {
		fmt.Fprintf(os.Stderr, "\r  Parsing [%d/%d]", current, total)
	}
}

func runImport(_ *cobra.Command, args []string) error {
	files, err := source.Discover(args)
	if err != nil {
		return err
	}
	if len(files) == 0 {
		return errors.New("no .csv or .json files found")
	}

	if flagImportDryRun {
		return runImportDryRun(files)
	}

	return withStore(func(ctx context.Context, e *env, st *store.Store) error {
		res, err := ingest.Import(ctx, st, files, ingest.Options{
			Categories: e.categories,
			Force:      flagImportForce,
			Progress:   importProgress(),
			Logger:     e.logger,
		})
		if !flagQuiet {
			fmt.Fprintln(os.Stderr)
		}
		if res != nil {
			printImportResult(res)
		}
		return err
	})
}

func runImportDryRun(files []source.DiscoveredFile) error {
	results, err := ingest.ParseAll(context.Background(), files, importProgress())
	if !flagQuiet {
		fmt.Fprintln(os.Stderr)
	}
	if err != nil {
		return err
	}
	res := &ingest.Result{TotalFiles: len(files), Files: results}
	for _, pr := range results {
		if pr.Err != nil {
			res.FileErrors++
			continue
		}
		res.ParsedFiles++
		res.Rows += pr.Rows
		res.ParseErrors += pr.ParseErrors
	}
	printImportResult(res)
	fmt.Println(cli.RenderMuted("  Dry run: nothing was saved."))
	return nil
}

func printImportResult(res *ingest.Result) {
	rows := [][]string{
		{"Files", cli.FormatNumber(int64(res.TotalFiles))},
		{"Parsed", cli.FormatNumber(int64(res.ParsedFiles))},
		{"Unchanged (skipped)", cli.FormatNumber(int64(res.Unchanged))},
		{"Rows", cli.FormatNumber(int64(res.Rows))},
		{"Rejected rows", cli.FormatNumber(int64(res.ParseErrors))},
		{"Unknown category", cli.FormatNumber(int64(res.UnknownCategory))},
		{"Saved", cli.FormatNumber(int64(res.Saved))},
		{"Removed (empty)", cli.FormatNumber(int64(res.Deleted))},
	}
	fmt.Println()
	fmt.Print(cli.RenderTable(cli.Table{
		Title:   "Import",
		Headers: []string{"", "Count"},
		Rows:    rows,
	}))

	for _, pr := range res.Files {
		if pr.Err != nil {
			fmt.Println(cli.RenderWarning(fmt.Sprintf("  %s: %v", pr.File.Path, pr.Err)))
			continue
		}
		for _, re := range pr.RowErrors {
			fmt.Println(cli.RenderWarning(fmt.Sprintf("  %s %s", pr.File.Path, re.Error())))
		}
		if pr.ParseErrors > len(pr.RowErrors) {
			fmt.Println(cli.RenderMuted(fmt.Sprintf("  %s: %d more rejected rows", pr.File.Path, pr.ParseErrors-len(pr.RowErrors))))
		}
	}
}
