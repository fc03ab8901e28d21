package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/BerylCAtieno/campaign-generator-agent/internal/extractor"
	"github.com/spf13/cobra"
)

func newExtractCmd() *cobra.Command {
	var (
		label    string
		mode     string
		all      bool
		fallback bool
	)

	cmd := &cobra.Command{
		Use:   "extract [file]",
		Short: "Extract a labeled section from a campaign document",
		Long: `Reads a generated campaign document from a file, or from stdin when no
file is given, and prints the body of the requested section.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			parsed, err := extractor.ParseMode(mode)
			if err != nil {
				return err
			}
			if !all && label == "" {
				return fmt.Errorf("--label is required unless --all is set")
			}

			var document []byte
			if len(args) == 1 {
				document, err = os.ReadFile(args[0])
			} else {
				document, err = io.ReadAll(cmd.InOrStdin())
			}
			if err != nil {
				return fmt.Errorf("failed to read document: %w", err)
			}

			ex := extractor.New(parsed)
			out := cmd.OutOrStdout()
			if all {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(ex.ExtractAll(string(document)))
			}

			content := ex.Extract(string(document), label)
			if content == "" && fallback {
				content = extractor.Fallback
			}
			_, err = fmt.Fprintln(out, content)
			return err
		},
	}

	cmd.Flags().StringVarP(&label, "label", "l", "", "section label, e.g. \"Ad Copy\"")
	cmd.Flags().StringVarP(&mode, "mode", "m", string(extractor.ModeLines), "extraction mode (lines or pattern)")
	cmd.Flags().BoolVar(&all, "all", false, "print every known section as JSON")
	cmd.Flags().BoolVar(&fallback, "fallback", false, "print the fallback text when the section is missing")
	return cmd
}
