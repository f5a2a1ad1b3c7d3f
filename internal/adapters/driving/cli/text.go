package cli

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/siteassist/internal/core/domain"
	"github.com/custodia-labs/siteassist/internal/logger"
)

var textFile string

var textCmd = &cobra.Command{
	Use:   "text",
	Short: "Process free text into the knowledge base",
}

var textProcessCmd = &cobra.Command{
	Use:   "process [desc|product] [text]",
	Short: "Submit text as a description or product catalogue",
	Long: fmt.Sprintf(`Submits a block of text for processing. The text must be at least %d
characters after trimming.

The text is taken from the arguments, from --file, or from stdin when
neither is given ("-" as the file also reads stdin). HTML, Markdown and
Word (.docx) files are converted to plain text first.`, domain.MinTextLength),
	Args:      cobra.MinimumNArgs(1),
	ValidArgs: []string{string(domain.KindDescription), string(domain.KindProduct)},
	RunE:      runTextProcess,
}

func init() {
	textProcessCmd.Flags().StringVarP(&textFile, "file", "f", "", "read text from a file")
	textCmd.AddCommand(textProcessCmd)
	rootCmd.AddCommand(textCmd)
}

func runTextProcess(cmd *cobra.Command, args []string) error {
	if ingestService == nil {
		return errNotConfigured("ingest")
	}

	kind, err := domain.ParseListKind(args[0])
	if err != nil {
		return err
	}

	text, _, err := readText(cmd, args[1:], textFile)
	if err != nil {
		return err
	}

	var result domain.ProcessResult
	err = withSpinner(cmd, "Processing text...", func() error {
		var err error
		result, err = ingestService.ProcessText(commandContext(cmd), kind, text)
		return err
	})

	printStatus(cmd, kind.Label()+":", result.Status)
	if len(result.Products) > 0 {
		cmd.Printf("\nExtracted %d products:\n", len(result.Products))
		for _, p := range result.Products {
			cmd.Printf("  - %s", p.Name)
			if p.Price > 0 {
				cmd.Printf(" (%.2f)", p.Price)
			}
			cmd.Println()
		}
	}
	if err != nil {
		return fmt.Errorf("failed to process text: %w", err)
	}
	return nil
}

// readText takes text from args, then file, then stdin. Files go through
// the text extractor when one is configured, which also supplies a title.
func readText(cmd *cobra.Command, args []string, file string) (text, title string, err error) {
	switch {
	case len(args) > 0:
		return strings.Join(args, " "), "", nil
	case file != "" && file != "-":
		data, err := os.ReadFile(file)
		if err != nil {
			return "", "", fmt.Errorf("reading %s: %w", file, err)
		}
		if textExtractor == nil {
			return string(data), "", nil
		}
		out, err := textExtractor.Extract(commandContext(cmd), &domain.SourceFile{Name: file, Data: data})
		if err != nil {
			return "", "", err
		}
		logger.Debug("extracted %d characters of %s from %s", len(out.Text), out.Format, file)
		return out.Text, out.Title, nil
	default:
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return "", "", fmt.Errorf("reading stdin: %w", err)
		}
		return string(data), "", nil
	}
}
