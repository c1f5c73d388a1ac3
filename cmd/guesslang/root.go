package main

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/ZaguanLabs/guesslang"
	"github.com/ZaguanLabs/guesslang/internal/config"
	"github.com/ZaguanLabs/guesslang/processor"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/common/expfmt"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// app carries the state shared by all subcommands.
type app struct {
	cfgFile     string
	showVersion bool
	dumpMetrics bool

	v        *viper.Viper
	cfg      *config.Config
	logger   *slog.Logger
	registry *prometheus.Registry
	results  guesslang.ResultCache
	detector *guesslang.Detector
}

func newRootCmd(stdin io.Reader, stdout, stderr io.Writer) *cobra.Command {
	a := &app{v: viper.New()}

	root := &cobra.Command{
		Use:   guesslang.Name + " [command]",
		Short: guesslang.Description,
		Long: `Identify the natural language of text using Unicode script profiling and
trigram rank distance.

Examples:
  guesslang detect message.txt
  echo "Hello, how are you today?" | guesslang detect
  guesslang explain --type html mail.html
  guesslang languages`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if a.showVersion {
				a.printVersion(cmd.OutOrStdout())
				return nil
			}
			return cmd.Help()
		},
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd)
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			if c, ok := a.results.(io.Closer); ok {
				_ = c.Close()
			}
			if !a.dumpMetrics || a.registry == nil {
				return nil
			}
			return writeMetrics(cmd.ErrOrStderr(), a.registry)
		},
	}
	root.SetIn(stdin)
	root.SetOut(stdout)
	root.SetErr(stderr)

	flags := root.PersistentFlags()
	flags.StringVar(&a.cfgFile, "config", "", "config file (default is search in ., $XDG_CONFIG_HOME/guesslang, /etc/guesslang)")
	flags.BoolP("verbose", "v", false, "verbose output (equivalent to --log-level=debug)")
	flags.String("log-level", "info", "log level (debug, info, warn, error)")
	flags.String("log-format", "text", "log format (text, json)")
	flags.String("models-file", "", "YAML file of language models overriding the bundled ones")
	flags.String("cache", "none", "result cache (none, memory, redis)")
	flags.Int("workers", 4, "number of texts detected concurrently")
	flags.BoolVar(&a.dumpMetrics, "metrics", false, "print Prometheus metrics to stderr on exit")
	root.Flags().BoolVar(&a.showVersion, "version", false, "print version information and exit")

	_ = a.v.BindPFlag("verbose", flags.Lookup("verbose"))
	_ = a.v.BindPFlag("log_level", flags.Lookup("log-level"))
	_ = a.v.BindPFlag("log_format", flags.Lookup("log-format"))
	_ = a.v.BindPFlag("models_file", flags.Lookup("models-file"))
	_ = a.v.BindPFlag("cache.type", flags.Lookup("cache"))
	_ = a.v.BindPFlag("batch.workers", flags.Lookup("workers"))
	_ = a.v.BindPFlag("metrics.enabled", flags.Lookup("metrics"))

	root.AddCommand(
		newDetectCmd(a),
		newExplainCmd(a),
		newProfileCmd(a),
		newSourceCmd(a),
		newLanguagesCmd(a),
		newModelsCmd(a),
		newCacheCmd(a),
	)
	return root
}

// setup loads the configuration and builds the detector.
func (a *app) setup(cmd *cobra.Command) error {
	cfg, err := config.NewLoaderWithViper(a.v).LoadWithFile(a.cfgFile)
	if err != nil {
		return err
	}
	a.cfg = cfg
	a.logger = cfg.NewLogger(cmd.ErrOrStderr())

	source, err := cfg.ModelSource()
	if err != nil {
		return err
	}

	opts := []guesslang.DetectorOption{
		guesslang.WithModelSource(source),
		guesslang.WithLogger(a.logger),
		guesslang.WithWorkers(cfg.Batch.Workers),
		guesslang.WithProcessor(processor.NewPlainProcessor()),
		guesslang.WithProcessor(processor.NewHTMLProcessor()),
	}

	a.results, err = cfg.ResultCache()
	if err != nil {
		return err
	}
	if a.results != nil {
		opts = append(opts, guesslang.WithResultCache(a.results))
	}

	if cfg.Metrics.Enabled {
		a.registry = prometheus.NewRegistry()
		opts = append(opts, guesslang.WithMetrics(guesslang.NewMetrics(a.registry)))
	}

	a.detector = guesslang.NewDetector(opts...)
	a.logger.Debug("configuration loaded",
		"config_file", a.v.ConfigFileUsed(),
		"cache", cfg.Cache.Type,
		"workers", cfg.Batch.Workers,
	)
	return nil
}

func (a *app) printVersion(w io.Writer) {
	fmt.Fprintf(w, "%s %s\n", guesslang.Name, guesslang.FullVersion())
	if commit != "unknown" && commit != "" {
		fmt.Fprintf(w, "  commit:  %s\n", commit)
	}
	if buildDate != "unknown" && buildDate != "" {
		fmt.Fprintf(w, "  built:   %s\n", buildDate)
	}
}

func writeMetrics(w io.Writer, reg *prometheus.Registry) error {
	families, err := reg.Gather()
	if err != nil {
		return fmt.Errorf("gathering metrics: %w", err)
	}
	enc := expfmt.NewEncoder(w, expfmt.NewFormat(expfmt.TypeTextPlain))
	for _, mf := range families {
		if err := enc.Encode(mf); err != nil {
			return fmt.Errorf("encoding metrics: %w", err)
		}
	}
	return nil
}
