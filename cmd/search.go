// Package cmd — search command.
// Finds the exact-match page for a text, one result per chunk.
package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/gaurav-prasanna/babelpipe/core/archive"
	"github.com/gaurav-prasanna/babelpipe/core/chunk"
	"github.com/gaurav-prasanna/babelpipe/core/render"
	"github.com/spf13/cobra"
)

var (
	flagFile      string
	flagNoSplit   bool
	flagVerify    bool
	flagChunkSize int
	flagSearchOut bool
)

var searchCmd = &cobra.Command{
	Use:   "search [text...]",
	Short: "Find the pages that contain a text",
	Long: `Search submits text to the archive and prints the location of the exact
match. Text longer than the chunk size is split into chunks that are searched
one after another; one location is printed per chunk, in order.

Examples:
  babelpipe search hello world
  babelpipe search --file chapter.txt --json
  babelpipe search --no_split "a short text" --verify`,
	RunE: runSearch,
}

func init() {
	rootCmd.AddCommand(searchCmd)

	searchCmd.Flags().StringVar(&flagFile, "file", "", "Read the text from a file (- for stdin)")
	searchCmd.Flags().BoolVar(&flagNoSplit, "no_split", false, fmt.Sprintf("Send the text as one chunk; fail if it exceeds %d characters", chunk.MaxChunkSize))
	searchCmd.Flags().BoolVar(&flagVerify, "verify", false, "Fetch each result page and check it contains its chunk")
	searchCmd.Flags().IntVar(&flagChunkSize, "chunk_size", 0, "Characters per chunk (default from config)")
	searchCmd.Flags().BoolVar(&flagSearchOut, "json", false, "Output structured JSON")
}

func runSearch(cmd *cobra.Command, args []string) error {
	text, err := searchText(args)
	if err != nil {
		return err
	}

	ctx := context.Background()
	results, err := client.Search(ctx, text, archive.WithAutoSplit(!flagNoSplit))
	if err != nil {
		return err
	}

	if flagVerify {
		chunks, err := chunk.New(cfg.ChunkSize).Split(text, !flagNoSplit)
		if err != nil {
			return err
		}
		for i, r := range results {
			ok, err := client.Verify(ctx, r, chunks[i])
			if err != nil {
				return fmt.Errorf("verifying chunk %d: %w", r.Chunk, err)
			}
			if !ok {
				return fmt.Errorf("chunk %d: page %s does not contain the searched text", r.Chunk, r.Location())
			}
		}
	}

	if flagSearchOut {
		data, err := render.NewJSONRenderer().RenderResults(text, results)
		if err != nil {
			return err
		}
		fmt.Fprintln(os.Stdout, string(data))
		return nil
	}

	for _, r := range results {
		fmt.Fprintln(os.Stdout, r.Location())
	}
	return nil
}

// searchText returns the text to search for, from --file or the arguments.
func searchText(args []string) (string, error) {
	if flagFile == "" {
		return strings.Join(args, " "), nil
	}
	if len(args) > 0 {
		return "", fmt.Errorf("--file and text arguments are mutually exclusive")
	}

	var (
		data []byte
		err  error
	)
	if flagFile == "-" {
		data, err = io.ReadAll(os.Stdin)
	} else {
		data, err = os.ReadFile(flagFile)
	}
	if err != nil {
		return "", fmt.Errorf("reading search text: %w", err)
	}
	return string(data), nil
}
