// Package cmd — book command.
// Walks the pages of one volume in order and writes each to --output_dir.
package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/gaurav-prasanna/babelpipe/core"
	"github.com/gaurav-prasanna/babelpipe/core/output"
	"github.com/gaurav-prasanna/babelpipe/crawl"
	"github.com/spf13/cobra"
)

var (
	flagFrom  int
	flagTo    int
	flagPages string
)

var bookCmd = &cobra.Command{
	Use:   "book [location]",
	Short: "Fetch a range of pages from one volume",
	Long: `Book fetches pages --from through --to of a volume, or the pages listed
with --pages, one at a time, and writes each rendered page into a directory
named after the volume. A page listed twice is fetched once. Pages that
cannot be fetched are reported and skipped.

Examples:
  babelpipe book a-w3-s2-v29 --markdown --output_dir ./books
  babelpipe book --hex a --wall 3 --shelf 2 --volume 29 --from 1 --to 10
  babelpipe book a-w3-s2-v29 --pages 1-3,17,17,410`,
	Args: cobra.MaximumNArgs(1),
	RunE: runBook,
}

func init() {
	rootCmd.AddCommand(bookCmd)

	from, to := crawl.DefaultRange()
	bookCmd.Flags().IntVar(&flagFrom, "from", from, "First page")
	bookCmd.Flags().IntVar(&flagTo, "to", to, "Last page")
	bookCmd.Flags().StringVar(&flagPages, "pages", "", "Page list, e.g. 1-3,17 (replaces --from/--to)")
	addCoordinateFlags(bookCmd)
	addOutputFlags(bookCmd)
}

func runBook(cmd *cobra.Command, args []string) error {
	book, err := coordinateFromInput(args)
	if err != nil {
		return err
	}
	pages, err := bookPages(cmd)
	if err != nil {
		return err
	}
	renderer, err := selectRenderer()
	if err != nil {
		return err
	}
	writer, err := output.New(flagOutputDir)
	if err != nil {
		return fmt.Errorf("initializing output writer: %w", err)
	}

	fmt.Fprintf(os.Stdout, "Fetching %d pages of %s...\n", len(pages), book.Book().Location())

	walker := crawl.NewWalker(client.Page, logger)
	summary, err := walker.WalkPages(context.Background(), book, pages, func(page core.Page) error {
		data, err := renderer.Render(page)
		if err != nil {
			return fmt.Errorf("render: %w", err)
		}
		path, err := writer.WriteBookPage(page.Coordinate, data, renderer.Extension())
		if err != nil {
			return err
		}
		fmt.Fprintf(os.Stdout, "  ✓ Written: %s\n", path)
		return nil
	})
	if err != nil {
		return err
	}

	if summary.Duplicates > 0 {
		fmt.Fprintf(os.Stdout, "Skipped %d repeated pages\n", summary.Duplicates)
	}
	total := len(pages) - summary.Duplicates
	for _, failed := range summary.Failed {
		fmt.Fprintf(os.Stderr, "  ✗ Error: %v\n", failed)
	}
	if len(summary.Failed) > 0 {
		fmt.Fprintf(os.Stderr, "\n%d/%d pages failed\n", len(summary.Failed), total)
	}
	return nil
}

// bookPages returns the pages to walk from --pages or --from/--to.
func bookPages(cmd *cobra.Command) ([]int, error) {
	if flagPages == "" {
		if err := crawl.ValidateRange(flagFrom, flagTo); err != nil {
			return nil, err
		}
		return crawl.Range(flagFrom, flagTo), nil
	}
	if cmd.Flags().Changed("from") || cmd.Flags().Changed("to") {
		return nil, fmt.Errorf("--pages and --from/--to are mutually exclusive")
	}
	return crawl.ParsePages(flagPages)
}
