package main

import (
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/ZaguanLabs/guesslang"
	"github.com/spf13/cobra"
)

func newLanguagesCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "languages",
		Short: "List the languages that can be identified",
		RunE: func(cmd *cobra.Command, args []string) error {
			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "CODE\tID\tNAME\tDIR\tGROUPS")
			for _, l := range guesslang.Languages() {
				groups := strings.Join(guesslang.GroupOf(l.Code), ",")
				if groups == "" {
					groups = "-"
				}
				fmt.Fprintf(tw, "%s\t%d\t%s\t%s\t%s\n", l.Code, l.ID, l.Name, guesslang.GetDirection(l.Code), groups)
			}
			return tw.Flush()
		},
	}
}

func newModelsCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "models",
		Short: "Manage trigram language models",
	}
	cmd.AddCommand(newModelsExportCmd(a))
	return cmd
}

func newModelsExportCmd(a *app) *cobra.Command {
	var (
		output string
		codes  []string
	)

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write the language models as YAML",
		Long: `Write the trigram models of the given languages (default: every scored
language) as a YAML models file, suitable for --models-file.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(codes) == 0 {
				codes = scoredCodes()
			}

			models := a.detector.Models()
			if n := models.Preload(codes...); n == 0 {
				return fmt.Errorf("no models available for %s", strings.Join(codes, ","))
			}

			var w io.Writer = cmd.OutOrStdout()
			if output != "" {
				f, err := os.Create(output) // #nosec G304 - CLI tool writes user-specified files
				if err != nil {
					return fmt.Errorf("creating output file: %w", err)
				}
				defer f.Close()
				w = f
			}

			if err := guesslang.WriteMapSource(w, models.Export()); err != nil {
				return fmt.Errorf("writing models: %w", err)
			}
			a.logger.Info("models exported", "count", models.Len(), "output", output)
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: stdout)")
	cmd.Flags().StringSliceVar(&codes, "codes", nil, "comma-separated language codes to export")
	return cmd
}

// scoredCodes returns every code that appears in a candidate group.
func scoredCodes() []string {
	seen := make(map[string]bool)
	var codes []string
	for _, name := range guesslang.Groups() {
		g, _ := guesslang.LookupGroup(name)
		for _, code := range g.Codes {
			if !seen[code] {
				seen[code] = true
				codes = append(codes, code)
			}
		}
	}
	return codes
}
