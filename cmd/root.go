package cmd

import (
	"context"
	"fmt"
	"os"

	"courseplanner/pkg/config"
	"courseplanner/pkg/loader"
	"courseplanner/pkg/shell"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	verbose bool
	noCache bool
	logger  *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:   "courseplanner",
	Short: "Browse a course catalog and its prerequisites",
	Long: `courseplanner loads a course catalog (number, name, prerequisites) and
lets you list every course in order or look up a single course together with
its prerequisites.

Run without a subcommand to start the numbered menu.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// Warn by default so diagnostics don't interleave with the menu
		zapConfig := zap.NewProductionConfig()
		zapConfig.Level = zap.NewAtomicLevelAt(zapcore.WarnLevel)
		if verbose {
			zapConfig.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
		}
		var err error
		logger, err = zapConfig.Build()
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return runShell(cmd)
	},
}

// runShell runs the numbered menu on the command's streams.
func runShell(cmd *cobra.Command) error {
	cfg := loadConfig()
	session := shell.NewSession(cfg.PlaceholderTitle)

	sh := shell.New(cmd.InOrStdin(), cmd.OutOrStdout(), cmd.ErrOrStderr(),
		shell.WithLogger(log()),
		shell.WithSession(session),
		shell.WithDefaultSource(cfg.DefaultSource),
		shell.WithLoaderOptions(loaderOptions()...),
		shell.OnLoad(rememberSource(cfg)),
	)
	return sh.Run(cmd.Context())
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging on stderr")
	rootCmd.PersistentFlags().BoolVar(&noCache, "no-cache", false, "Always refetch http(s) sources instead of using the local cache")
}

func log() *zap.Logger {
	if logger == nil {
		return zap.NewNop()
	}
	return logger
}

// loaderOptions returns the options every load in this process uses.
func loaderOptions() []loader.Option {
	opts := []loader.Option{loader.WithLogger(log())}
	if noCache {
		return opts
	}

	dir, err := config.CacheDir()
	if err != nil {
		log().Warn("remote catalog cache disabled", zap.Error(err))
		return opts
	}
	return append(opts, loader.WithCache(dir))
}

// loadConfig never fails; a broken config file is logged and ignored.
func loadConfig() *config.AppConfig {
	cfg, err := config.Load()
	if err != nil {
		log().Warn("ignoring unreadable config", zap.Error(err))
		return &config.AppConfig{}
	}
	return cfg
}

func rememberSource(cfg *config.AppConfig) func(loader.Result) {
	return func(res loader.Result) {
		if res.Redacted {
			// The shown form can't be loaded again
			log().Debug("not recording a source with a password", zap.String("source", res.Source))
			return
		}
		cfg.RememberSource(res.Source)
		if err := config.Save(cfg); err != nil {
			log().Warn("could not record recent source", zap.Error(err))
		}
	}
}
