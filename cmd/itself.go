package cmd

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/zjrosen/ebi/internal/cachemanager"
	"github.com/zjrosen/ebi/internal/config"
	"github.com/zjrosen/ebi/internal/formats"
	"github.com/zjrosen/ebi/internal/manual"
)

var (
	manualLatex bool
	manualRaw   bool
	configInit  bool
)

var itselfCmd = &cobra.Command{
	Use:   "itself",
	Short: "Information about ebi itself",
}

var itselfManualCmd = &cobra.Command{
	Use:   "manual",
	Short: "Print the manual",
	Long: `Print the manual: every file type with the commands that accept it, and every
command with the file types accepted per input.

The manual is rendered for the terminal unless --raw or --latex is given.`,
	Args: cobra.NoArgs,
	RunE: runManual,
}

var itselfInteropCmd = &cobra.Command{
	Use:   "interop",
	Short: "List the handlers that accept host values per command input",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		_, err := fmt.Fprint(cmd.OutOrStdout(), newGenerator().Interop())
		return err
	},
}

var itselfConfigCmd = &cobra.Command{
	Use:   "config",
	Short: "Print the effective configuration",
	Long: `Print the effective configuration as YAML, after defaults, the config file
and EBI_* environment variables have been applied.

With --init, write the default configuration to ` + localConfigPath + ` instead.`,
	Args: cobra.NoArgs,
	RunE: runConfig,
}

func init() {
	itselfManualCmd.Flags().BoolVar(&manualLatex, "latex", false, "write the manual as LaTeX")
	itselfManualCmd.Flags().BoolVar(&manualRaw, "raw", false, "write markdown without terminal rendering")
	itselfConfigCmd.Flags().BoolVar(&configInit, "init", false, "write the default configuration file")

	itselfCmd.AddCommand(itselfManualCmd, itselfInteropCmd, itselfConfigCmd)
	rootCmd.AddCommand(itselfCmd)
}

// manualCacheCleanup is the go-cache janitor interval for manual lookups.
const manualCacheCleanup = time.Minute

func newGenerator() *manual.Generator {
	var opts []manual.Option
	if cfg.Cache.Enabled {
		cache := cachemanager.NewInMemoryCacheManager[string, [][]string]("manual", cfg.Cache.TTL, manualCacheCleanup)
		opts = append(opts, manual.WithCache(cache, cfg.Cache.TTL))
	}
	return manual.NewGenerator(formats.Catalog, newCommandTree(), opts...)
}

func runManual(cmd *cobra.Command, _ []string) error {
	if manualLatex && manualRaw {
		return errors.New("--latex and --raw cannot be combined")
	}
	g := newGenerator()
	out := cmd.OutOrStdout()

	if manualLatex {
		latex, err := g.Latex(cmd.Context())
		if err != nil {
			return err
		}
		_, err = fmt.Fprint(out, latex)
		return err
	}

	markdown, err := g.Markdown(cmd.Context())
	if err != nil {
		return err
	}
	if manualRaw {
		_, err = fmt.Fprint(out, markdown)
		return err
	}

	renderer, err := manual.NewRenderer(cfg.Manual.Width, cfg.Manual.MarkdownStyle)
	if err != nil {
		return fmt.Errorf("creating renderer: %w", err)
	}
	rendered, err := renderer.Render(markdown)
	if err != nil {
		return fmt.Errorf("rendering manual: %w", err)
	}
	_, err = fmt.Fprint(out, rendered)
	return err
}

func runConfig(cmd *cobra.Command, _ []string) error {
	if configInit {
		if err := config.WriteDefaultConfig(localConfigPath); err != nil {
			return err
		}
		_, err := fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", localConfigPath)
		return err
	}
	data, err := cfg.Marshal()
	if err != nil {
		return err
	}
	_, err = cmd.OutOrStdout().Write(data)
	return err
}
