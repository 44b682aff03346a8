package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vibe-x-ai/discuss-skills/internal/cli"
	"github.com/vibe-x-ai/discuss-skills/internal/config"
	"github.com/vibe-x-ai/discuss-skills/internal/installer"
	"github.com/vibe-x-ai/discuss-skills/internal/logging"
	"github.com/vibe-x-ai/discuss-skills/internal/paths"
)

var (
	// Version is set at build time via ldflags
	Version = "dev"

	// Global flags
	verbose    bool
	noColor    bool
	configPath string
)

var rootCmd = &cobra.Command{
	Use:   "discuss-skills",
	Short: "Install discuss-for-specs skills and hooks for AI assistants",
	Long: `discuss-skills installs the discuss-for-specs skill bundle and its
session-end hook into AI assistant platforms.

Supported Platforms:
  Skills + Hooks:
    claude-code   Claude Code
    cursor        Cursor Editor
  Skills only (precipitation guidance injected into the skill):
    kilocode      Kilocode
    opencode      OpenCode
    codex         Codex CLI

Examples:
  discuss-skills install                  # Auto-detect platform
  discuss-skills install -p cursor        # Install for Cursor
  discuss-skills install -p kilocode      # Install for Kilocode
  discuss-skills platforms                # Show all platforms
  discuss-skills uninstall                # Remove installation`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "disable colored output")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "config file (default: ~/.discuss-for-specs/config.toml)")

	// Version flag
	rootCmd.Version = Version
	rootCmd.SetVersionTemplate("discuss-skills {{.Version}}\n")
}

// loadConfig reads --config, or the global and project config files.
func loadConfig() (*config.Config, error) {
	var (
		cfg *config.Config
		err error
	)
	if configPath != "" {
		cfg, err = config.Load(paths.ExpandPath(configPath))
	} else {
		dir, wdErr := os.Getwd()
		if wdErr != nil {
			return nil, fmt.Errorf("getting working directory: %w", wdErr)
		}
		cfg, err = config.LoadFromDir(dir)
	}
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// newInstaller wires an Installer for cmd. The returned func releases
// the log file, if any.
func newInstaller(cmd *cobra.Command) (*installer.Installer, func(), error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, nil, err
	}

	base, err := paths.BaseDir()
	if err != nil {
		return nil, nil, err
	}

	newLogger := logging.NewFromConfig
	if verbose {
		newLogger = logging.NewVerbose
	}
	logger, closer, err := newLogger(cfg, base)
	if err != nil {
		logger = logging.NewDefault()
		logger.Warn("log file unavailable, logging to stderr", "error", err)
	}
	cleanup := func() {
		if closer != nil {
			closer.Close()
		}
	}

	var prompter *cli.Prompter
	if in, ok := cmd.InOrStdin().(*os.File); ok && cli.IsInteractive(in) {
		prompter = cli.NewPrompter(in, cmd.OutOrStdout())
	}

	inst, err := installer.New(cfg, installer.Options{
		Out:      cmd.OutOrStdout(),
		NoColor:  noColor || os.Getenv("NO_COLOR") != "",
		Prompter: prompter,
		Version:  Version,
		Logger:   logger,
	})
	if err != nil {
		cleanup()
		return nil, nil, err
	}
	return inst, cleanup, nil
}

// commandContext returns cmd's context, or a background context when the
// command was not started through Execute.
func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
