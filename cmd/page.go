// Package cmd — page command.
// Fetches one page by coordinate and renders it as text, Markdown, JSON or PDF.
package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/gaurav-prasanna/babelpipe/core"
	"github.com/gaurav-prasanna/babelpipe/core/address"
	"github.com/gaurav-prasanna/babelpipe/core/output"
	"github.com/gaurav-prasanna/babelpipe/core/render"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// Output flags shared by page and book.
var (
	flagPDF       bool
	flagMarkdown  bool
	flagJSON      bool
	flagOutputDir string
)

// Coordinate flags.
var (
	flagHex    string
	flagWall   string
	flagShelf  string
	flagVolume string
	flagPage   string
)

var pageCmd = &cobra.Command{
	Use:   "page [location]",
	Short: "Fetch the text of one page",
	Long: `Page fetches one page, given either as a location (hex-wN-sN-vN:page) or
with the --hex/--wall/--shelf/--volume/--page flags, and prints its text as a
single line. Other formats are written to --output_dir.

Examples:
  babelpipe page a-w3-s2-v29:1
  babelpipe page --hex a --wall 3 --shelf 2 --volume 29 --page 17
  babelpipe page a-w3-s2-v29:1 --pdf --output_dir ./out`,
	Args: cobra.MaximumNArgs(1),
	RunE: runPage,
}

func init() {
	rootCmd.AddCommand(pageCmd)

	addCoordinateFlags(pageCmd)
	addOutputFlags(pageCmd)
}

func addCoordinateFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&flagHex, "hex", "", "Hex (room) identifier, a-z0-9")
	cmd.Flags().StringVar(&flagWall, "wall", "", "Wall number")
	cmd.Flags().StringVar(&flagShelf, "shelf", "", "Shelf number")
	cmd.Flags().StringVar(&flagVolume, "volume", "", "Volume number")
	cmd.Flags().StringVar(&flagPage, "page", "", "Page number (default 1)")
}

func addOutputFlags(cmd *cobra.Command) {
	cmd.Flags().BoolVar(&flagPDF, "pdf", false, "Output PDF")
	cmd.Flags().BoolVar(&flagMarkdown, "markdown", false, "Output Markdown")
	cmd.Flags().BoolVar(&flagJSON, "json", false, "Output structured JSON")
	cmd.Flags().StringVar(&flagOutputDir, "output_dir", "", "Output directory (default: stdout, or current directory for PDF)")
}

func runPage(cmd *cobra.Command, args []string) error {
	coord, err := coordinateFromInput(args)
	if err != nil {
		return err
	}
	renderer, err := selectRenderer()
	if err != nil {
		return err
	}

	page, err := client.Page(context.Background(), coord)
	if err != nil {
		return err
	}

	data, err := renderer.Render(page)
	if err != nil {
		return fmt.Errorf("render: %w", err)
	}

	// Binary output always goes to a file.
	if flagOutputDir == "" && !flagPDF {
		_, err := os.Stdout.Write(data)
		return err
	}

	writer, err := output.New(flagOutputDir)
	if err != nil {
		return fmt.Errorf("initializing output writer: %w", err)
	}
	path, err := writer.WritePage(page.Coordinate, data, renderer.Extension())
	if err != nil {
		return err
	}
	logger.Debug("Page written", zap.String("path", path))
	fmt.Fprintf(os.Stdout, "✓ Written: %s\n", path)
	return nil
}

// coordinateFromInput reads the coordinate from a location argument or,
// without one, from the coordinate flags.
func coordinateFromInput(args []string) (address.Coordinate, error) {
	if len(args) == 1 {
		coord, err := address.ParseLocation(args[0])
		if err != nil {
			return address.Coordinate{}, err
		}
		if flagPage != "" {
			coord.Page = flagPage
		}
		return coord, nil
	}
	if flagHex == "" || flagWall == "" || flagShelf == "" || flagVolume == "" {
		return address.Coordinate{}, fmt.Errorf("a location argument or all of --hex, --wall, --shelf and --volume are required")
	}
	return address.New(flagHex, flagWall, flagShelf, flagVolume, flagPage), nil
}

// selectRenderer creates the Renderer chosen by the format flags.
// Plain text is the default.
func selectRenderer() (core.Renderer, error) {
	count := 0
	for _, set := range []bool{flagPDF, flagMarkdown, flagJSON} {
		if set {
			count++
		}
	}
	if count > 1 {
		return nil, fmt.Errorf("only one output format allowed per run (got %d)", count)
	}

	switch {
	case flagMarkdown:
		return render.NewMarkdownRenderer(), nil
	case flagJSON:
		return render.NewJSONRenderer(), nil
	case flagPDF:
		return render.NewPDFRenderer(), nil
	default:
		return render.NewTextRenderer(), nil
	}
}
