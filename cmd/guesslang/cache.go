package main

import (
	"errors"
	"fmt"

	"github.com/ZaguanLabs/guesslang"
	"github.com/ZaguanLabs/guesslang/cache"
	"github.com/spf13/cobra"
)

var errNoCache = errors.New("no result cache configured (use --cache or cache.type)")

func newCacheCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Export or import detection results",
	}
	cmd.AddCommand(newCacheExportCmd(a), newCacheImportCmd(a))
	return cmd
}

func newCacheExportCmd(a *app) *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write the cached detection results as JSON",
		RunE: func(cmd *cobra.Command, args []string) error {
			if a.results == nil {
				return errNoCache
			}

			exporter := cache.NewExporter(a.results)
			metadata := map[string]string{"revision": guesslang.Version}
			if output == "" {
				return exporter.Export(cmd.OutOrStdout(), metadata)
			}
			if err := exporter.ExportToFile(output, metadata); err != nil {
				return err
			}
			a.logger.Info("cache exported", "output", output)
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: stdout)")
	return cmd
}

func newCacheImportCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "import <file>",
		Short: "Load detection results exported by 'cache export'",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if a.results == nil {
				return errNoCache
			}

			result, err := cache.NewImporter(a.results).ImportFromFile(args[0])
			if err != nil {
				return err
			}
			if rev := result.Metadata["revision"]; rev != "" && rev != guesslang.Version {
				a.logger.Warn("imported results come from another revision", "revision", rev, "current", guesslang.Version)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "imported %d entries (%d failed)\n", result.Imported, result.Failed)
			return nil
		},
	}
}
