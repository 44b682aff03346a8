// Package installer sequences the install, uninstall and status commands
// over the platform registry, bundle installer and hook merger.
package installer

import (
	"io"
	"log/slog"

	"github.com/vibe-x-ai/discuss-skills/internal/bundle"
	"github.com/vibe-x-ai/discuss-skills/internal/cli"
	"github.com/vibe-x-ai/discuss-skills/internal/config"
	"github.com/vibe-x-ai/discuss-skills/internal/hooks"
	"github.com/vibe-x-ai/discuss-skills/internal/logging"
	"github.com/vibe-x-ai/discuss-skills/internal/paths"
	"github.com/vibe-x-ai/discuss-skills/internal/platform"
	"github.com/vibe-x-ai/discuss-skills/internal/precheck"
	"github.com/vibe-x-ai/discuss-skills/internal/receipt"
	"github.com/vibe-x-ai/discuss-skills/internal/ui"
)

// Installer runs the user-facing commands.
type Installer struct {
	Registry *platform.Registry
	Checker  precheck.Checker
	Bundles  *bundle.Installer
	Merger   *hooks.Merger
	Receipts *receipt.Store
	Printer  *ui.Printer

	// Prompter asks for confirmation. Nil means never ask.
	Prompter *cli.Prompter

	// HooksSrc is the shipped hook script directory.
	HooksSrc string

	// Version is shown in the banner.
	Version string

	Logger *slog.Logger
}

// Options configures New.
type Options struct {
	Out      io.Writer
	NoColor  bool
	Prompter *cli.Prompter
	Version  string
	Logger   *slog.Logger
}

// New wires an Installer from configuration. Assets are looked up under
// the configured package root; installed state lives under the home
// directory.
func New(cfg *config.Config, opts Options) (*Installer, error) {
	root, err := cfg.PackageRoot()
	if err != nil {
		return nil, err
	}
	base, err := paths.BaseDir()
	if err != nil {
		return nil, err
	}

	receipts, err := receipt.NewStore()
	if err != nil {
		return nil, err
	}

	logger := logging.OrDiscard(opts.Logger)
	registry := platform.Default()

	bundles := &bundle.Installer{
		Registry:     registry,
		DistDir:      cfg.DistDir(root),
		Skills:       cfg.Install.Skills,
		GuidanceFile: cfg.GuidanceFile(root),
		BaseDir:      base,
		Logger:       logger,
	}

	hooksDir, err := bundles.HooksDir()
	if err != nil {
		return nil, err
	}
	command := hooks.Command(cfg.Install.Interpreter, hooksDir, cfg.Install.HookScript)

	out := opts.Out
	if out == nil {
		out = io.Discard
	}

	return &Installer{
		Registry: registry,
		Checker:  precheck.NewCommandChecker(cfg.Precheck, logger),
		Bundles:  bundles,
		Merger:   hooks.NewMerger(registry, command, logger),
		Receipts: receipts,
		Printer:  ui.New(out, opts.NoColor),
		Prompter: opts.Prompter,
		HooksSrc: cfg.HooksSrc(root),
		Version:  opts.Version,
		Logger:   logger,
	}, nil
}

func (in *Installer) logger() *slog.Logger {
	return logging.OrDiscard(in.Logger)
}

// displayName returns the platform's display name, or id if unknown.
func (in *Installer) displayName(id string) string {
	d, err := in.Registry.Resolve(id)
	if err != nil {
		return id
	}
	return d.DisplayName
}

// confirm asks prompt unless there is no prompter or yes is set.
func (in *Installer) confirm(prompt string, yes bool) (bool, error) {
	if yes || in.Prompter == nil {
		return true, nil
	}
	return in.Prompter.Confirm(prompt, true)
}
