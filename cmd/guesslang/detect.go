package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"

	"github.com/ZaguanLabs/guesslang"
	"github.com/spf13/cobra"
)

// input is one text to identify.
type input struct {
	Name string
	Text string
}

// readInputs reads every named file, or stdin when none is given.
func readInputs(cmd *cobra.Command, args []string) ([]input, error) {
	if len(args) == 0 {
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return nil, fmt.Errorf("reading stdin: %w", err)
		}
		return []input{{Name: "-", Text: string(data)}}, nil
	}

	inputs := make([]input, 0, len(args))
	for _, path := range args {
		data, err := os.ReadFile(path) // #nosec G304 - CLI tool reads user-specified files
		if err != nil {
			return nil, fmt.Errorf("reading file: %w", err)
		}
		inputs = append(inputs, input{Name: filepath.Base(path), Text: string(data)})
	}
	return inputs, nil
}

// explainInputs runs the detector over inputs. Raw text is detected as a
// batch; other content types go through their processor.
func (a *app) explainInputs(cmd *cobra.Command, inputs []input, contentType string) ([]guesslang.Result, error) {
	if contentType == "text" {
		texts := make([]string, len(inputs))
		for i, in := range inputs {
			texts[i] = in.Text
		}
		return a.detector.DetectBatch(cmd.Context(), texts)
	}

	results := make([]guesslang.Result, len(inputs))
	for i, in := range inputs {
		res, err := a.detector.Process(in.Text, contentType)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", in.Name, err)
		}
		results[i] = res
	}
	return results, nil
}

func newDetectCmd(a *app) *cobra.Command {
	var (
		contentType string
		jsonOutput  bool
	)

	cmd := &cobra.Command{
		Use:   "detect [file...]",
		Short: "Print the language code of each input",
		Long: `Print the language code of each file, or of stdin when no file is given.
With several files each line is prefixed with the file name.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			inputs, err := readInputs(cmd, args)
			if err != nil {
				return err
			}
			results, err := a.explainInputs(cmd, inputs, contentType)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if jsonOutput {
				type detection struct {
					Input string `json:"input"`
					guesslang.Info
				}
				list := make([]detection, len(results))
				for i, r := range results {
					list[i] = detection{Input: inputs[i].Name, Info: r.Info}
				}
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(list)
			}

			for i, r := range results {
				if len(results) > 1 {
					fmt.Fprintf(out, "%s\t%s\n", inputs[i].Name, r.Code)
				} else {
					fmt.Fprintln(out, r.Code)
				}
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&contentType, "type", "t", "text", "input type (text, plain, html)")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "output code, id and name as JSON")
	return cmd
}

func newExplainCmd(a *app) *cobra.Command {
	var contentType string

	cmd := &cobra.Command{
		Use:   "explain [file]",
		Short: "Show the script profile, decision and scores for an input",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			inputs, err := readInputs(cmd, args)
			if err != nil {
				return err
			}
			results, err := a.explainInputs(cmd, inputs, contentType)
			if err != nil {
				return err
			}

			res := results[0]
			dominant, _ := res.Profile.Dominant()
			out := struct {
				guesslang.Result
				HTMLLang  string             `json:"html_lang"`
				Direction string             `json:"direction"`
				Dominant  string             `json:"dominant_block,omitempty"`
				Profile   map[string]float64 `json:"profile"`
			}{
				Result:    res,
				HTMLLang:  guesslang.ToHTMLLang(res.Code),
				Direction: guesslang.GetDirection(res.Code),
				Dominant:  dominant,
				Profile:   nonZero(res.Profile),
			}

			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(out)
		},
	}

	cmd.Flags().StringVarP(&contentType, "type", "t", "text", "input type (text, plain, html)")
	return cmd
}

func newProfileCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "profile [file]",
		Short: "Print the Unicode block fractions of an input",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			inputs, err := readInputs(cmd, args)
			if err != nil {
				return err
			}

			profile := guesslang.ProfileScripts(guesslang.Preprocess(inputs[0].Text))
			names := make([]string, 0, len(profile))
			for name, frac := range profile {
				if frac > 0 {
					names = append(names, name)
				}
			}
			sort.Slice(names, func(i, j int) bool {
				if profile[names[i]] != profile[names[j]] {
					return profile[names[i]] > profile[names[j]]
				}
				return names[i] < names[j]
			})

			out := cmd.OutOrStdout()
			for _, name := range names {
				fmt.Fprintf(out, "%-32s %.4f\n", name, profile[name])
			}
			return nil
		},
	}
}

func newSourceCmd(a *app) *cobra.Command {
	var configured string

	cmd := &cobra.Command{
		Use:   "source [file]",
		Short: "Print the source-language parameter for a translation request",
		Long: `Print the configured source language, or the detected language of the
input when none is configured. Text that cannot be identified yields "null",
the translation site's auto-detect token.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			inputs, err := readInputs(cmd, args)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), a.detector.SourceFor(configured, inputs[0].Text))
			return nil
		},
	}

	cmd.Flags().StringVar(&configured, "configured", "", `configured source language ("" or "?" to detect)`)
	return cmd
}

func nonZero(p guesslang.Profile) map[string]float64 {
	out := make(map[string]float64)
	for name, frac := range p {
		if frac > 0 {
			out[name] = frac
		}
	}
	return out
}
