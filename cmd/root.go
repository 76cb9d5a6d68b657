package cmd

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/zjrosen/ebi/internal/config"
	"github.com/zjrosen/ebi/internal/formats"
	"github.com/zjrosen/ebi/internal/input"
	"github.com/zjrosen/ebi/internal/log"
	"github.com/zjrosen/ebi/internal/tracing"
)

var (
	version   = "dev"
	cfgFile   string
	debugFlag bool
	cfg       config.Config

	// resolver is built in PersistentPreRunE from the loaded configuration.
	resolver *input.Resolver
	provider *tracing.Provider
	closeLog = func() {}
)

var rootCmd = &cobra.Command{
	Use:   "ebi",
	Short: "Stochastic process mining",
	Long: `Ebi reads event logs, languages and process models without being told their
format: every input file is tried against the registered file handlers, in a
fixed order, until one of them accepts it.

Use 'ebi itself manual' to list the commands and the file types they accept.`,
	Version:           version,
	SilenceUsage:      true,
	PersistentPreRunE: setup,
	CompletionOptions: cobra.CompletionOptions{HiddenDefaultCmd: true},
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "",
		"config file (default: .ebi/config.yaml, then ~/.config/ebi/config.yaml)")
	rootCmd.PersistentFlags().BoolVar(&debugFlag, "debug", false,
		"write a debug log (to $EBI_LOG, the configured file, or standard error)")
}

func initConfig() {
	defaults := config.Defaults()
	viper.SetDefault("log.level", defaults.Log.Level)
	viper.SetDefault("log.file", defaults.Log.File)
	viper.SetDefault("tracing.enabled", defaults.Tracing.Enabled)
	viper.SetDefault("tracing.exporter", defaults.Tracing.Exporter)
	viper.SetDefault("tracing.file_path", defaults.Tracing.FilePath)
	viper.SetDefault("tracing.otlp_endpoint", defaults.Tracing.OTLPEndpoint)
	viper.SetDefault("tracing.sample_rate", defaults.Tracing.SampleRate)
	viper.SetDefault("manual.markdown_style", defaults.Manual.MarkdownStyle)
	viper.SetDefault("manual.width", defaults.Manual.Width)
	viper.SetDefault("cache.enabled", defaults.Cache.Enabled)
	viper.SetDefault("cache.ttl", defaults.Cache.TTL)

	viper.SetEnvPrefix("EBI")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		// Config lookup order:
		// 1. .ebi/config.yaml (current directory)
		// 2. ~/.config/ebi/config.yaml (user config)
		if _, err := os.Stat(localConfigPath); err == nil {
			viper.SetConfigFile(localConfigPath)
		} else {
			home, _ := os.UserHomeDir()
			viper.AddConfigPath(filepath.Join(home, ".config", "ebi"))
			viper.SetConfigName("config")
			viper.SetConfigType("yaml")
		}
	}

	if err := viper.ReadInConfig(); err != nil {
		// No config file is fine: defaults apply.
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			fmt.Fprintf(os.Stderr, "ebi: ignoring config file: %v\n", err)
		}
	}

	_ = viper.Unmarshal(&cfg)
}

const localConfigPath = ".ebi/config.yaml"

func setup(cmd *cobra.Command, _ []string) error {
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	if debugFlag || os.Getenv("EBI_DEBUG") != "" {
		if err := setupLogging(cmd); err != nil {
			return err
		}
	}
	log.Debug(log.CatCLI, "running command", "command", cmd.CommandPath(), "config", viper.ConfigFileUsed())

	tracingCfg := tracing.DefaultConfig()
	tracingCfg.Enabled = cfg.Tracing.Enabled
	tracingCfg.Exporter = cfg.Tracing.Exporter
	tracingCfg.FilePath = cfg.Tracing.FilePath
	if tracingCfg.FilePath == "" {
		tracingCfg.FilePath = config.DefaultTracesFilePath()
	}
	tracingCfg.OTLPEndpoint = cfg.Tracing.OTLPEndpoint
	tracingCfg.SampleRate = cfg.Tracing.SampleRate

	var err error
	provider, err = tracing.NewProvider(tracingCfg)
	if err != nil {
		return fmt.Errorf("initializing tracing: %w", err)
	}
	resolver = input.NewResolver(formats.Catalog, input.WithTracer(provider.Tracer()))
	return nil
}

func setupLogging(cmd *cobra.Command) error {
	path := os.Getenv("EBI_LOG")
	if path == "" {
		path = cfg.Log.File
	}
	if path == "" {
		log.InitWriter(cmd.ErrOrStderr())
	} else {
		cleanup, err := log.Init(path)
		if err != nil {
			return fmt.Errorf("initializing logging: %w", err)
		}
		closeLog = cleanup
	}
	log.SetMinLevel(log.ParseLevel(cfg.Log.Level))
	return nil
}

// teardown flushes traces and closes the debug log. It runs after every
// command, failed ones included.
func teardown(ctx context.Context) error {
	defer func() {
		closeLog()
		closeLog = func() {}
		log.Reset()
	}()
	if provider == nil {
		return nil
	}
	p := provider
	provider = nil
	if err := p.Shutdown(ctx); err != nil {
		log.ErrorErr(log.CatTrace, "shutting down tracing", err)
		return fmt.Errorf("flushing traces: %w", err)
	}
	return nil
}

// Execute runs the root command
func Execute() error {
	err := rootCmd.Execute()
	if tErr := teardown(context.Background()); tErr != nil && err == nil {
		err = tErr
	}
	return err
}

// SetVersion sets the version string (called from main with ldflags)
func SetVersion(v string) {
	version = v
	rootCmd.Version = v
}
