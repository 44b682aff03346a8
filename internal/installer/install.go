package installer

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/vibe-x-ai/discuss-skills/internal/bundle"
	"github.com/vibe-x-ai/discuss-skills/internal/cli"
	serrors "github.com/vibe-x-ai/discuss-skills/internal/errors"
	"github.com/vibe-x-ai/discuss-skills/internal/fsutil"
	"github.com/vibe-x-ai/discuss-skills/internal/guidance"
	"github.com/vibe-x-ai/discuss-skills/internal/hooks"
	"github.com/vibe-x-ai/discuss-skills/internal/logging"
	"github.com/vibe-x-ai/discuss-skills/internal/paths"
	"github.com/vibe-x-ai/discuss-skills/internal/receipt"
	"github.com/vibe-x-ai/discuss-skills/internal/ui"
)

// InstallOptions holds the install command's flags.
type InstallOptions struct {
	// Platform is the platform id. Empty means the first detected one.
	Platform string

	// Target is a project directory for a project-scoped skills install.
	// Hooks are always global.
	Target string

	SkipHooks  bool
	SkipSkills bool

	// Yes skips confirmation prompts.
	Yes bool
}

// InstallSummary describes a finished install.
type InstallSummary struct {
	Platform  string
	TargetDir string
	Cancelled bool

	// Skills is nil when skills were skipped.
	Skills *bundle.Report

	// Scripts and Settings are nil when hooks were skipped. Settings is
	// not Applied for platforms without hook support.
	Scripts  *bundle.HookScripts
	Settings *hooks.Result
}

// Install checks the environment, resolves the platform and target, and
// installs skills and hooks. Missing prebuilt skills, guidance injection
// failures and unreadable settings files are reported and skipped past.
func (in *Installer) Install(ctx context.Context, opts InstallOptions) (*InstallSummary, error) {
	p := in.Printer
	p.Banner(in.Version)

	// 1. Environment
	p.Info("Checking Python environment...")
	check := in.Checker.Check(ctx)
	for _, d := range check.Details {
		p.Detail(d)
	}
	if !check.Success {
		p.Error("Python environment check failed",
			"brew install python3  # macOS\nsudo apt install python3  # Ubuntu\npip3 install pyyaml")
		return nil, serrors.PreconditionFailed(check.Errors)
	}
	for _, w := range check.Warnings {
		p.Warning(w)
	}
	p.Success("Python environment OK")

	// 2. Platform
	id, err := in.resolveInstallPlatform(opts)
	if err != nil {
		return nil, err
	}
	summary := &InstallSummary{Platform: id}
	if id == "" {
		p.Info("Installation cancelled")
		summary.Cancelled = true
		return summary, nil
	}
	name := in.displayName(id)
	log := logging.WithPlatform(in.logger(), id)

	// 3. Target
	if opts.Target != "" {
		dir, err := paths.ResolveDir(opts.Target)
		if err != nil {
			return nil, err
		}
		if !fsutil.DirExists(dir) {
			p.Error(fmt.Sprintf("Target directory does not exist: %s", dir), "")
			return nil, serrors.TargetDirMissing(dir)
		}
		summary.TargetDir = dir
		p.Newline()
		p.Info(fmt.Sprintf("Installing for %s (project-level)", name))
		p.Detail("Target: " + dir)
	} else {
		p.Newline()
		p.Info(fmt.Sprintf("Installing for %s (global)", name))
	}

	ok, err := in.confirm(fmt.Sprintf("Install discuss-for-specs for %s?", name), opts.Yes)
	if err != nil {
		return nil, err
	}
	if !ok {
		p.Info("Installation cancelled")
		summary.Cancelled = true
		return summary, nil
	}

	// 4. Skills
	if !opts.SkipSkills {
		p.Heading("Installing Skills...")
		report, err := in.Bundles.InstallSkills(id, summary.TargetDir)
		if err != nil {
			return nil, err
		}
		summary.Skills = &report
		in.printSkills(report)

		if len(report.Installed) > 0 {
			in.record(log, func(s *receipt.Store) error {
				return s.RecordSkills(id, receipt.SkillsInstall{
					SkillsDir: report.SkillsDir,
					TargetDir: summary.TargetDir,
					Bundles:   report.Installed,
				})
			})
		}
	}

	// 5. Hooks, always global
	if !opts.SkipHooks {
		if summary.TargetDir != "" {
			p.Heading("Installing Hooks (global)...")
		} else {
			p.Heading("Installing Hooks...")
		}
		scripts, err := in.Bundles.InstallHookScripts(in.HooksSrc)
		if err != nil {
			p.Error("Hooks source not found", "")
			return nil, err
		}
		summary.Scripts = &scripts
		p.Success("Hooks installed")
		p.Item("Copied to " + scripts.Dir)
		p.Item("Logs directory: " + scripts.LogsDir)

		p.Heading("Configuring platform hooks...")
		res, err := in.Merger.Install(id)
		if err != nil {
			return nil, err
		}
		summary.Settings = &res
		switch {
		case !res.Applied:
			p.Info(fmt.Sprintf("%s has no hook support; precipitation guidance is in the skill instead", name))
		default:
			if res.Recovered {
				msg := fmt.Sprintf("%s could not be parsed and was replaced", res.Path)
				if res.BackupPath != "" {
					msg += fmt.Sprintf(" (previous content saved to %s)", res.BackupPath)
				}
				p.Warning(msg)
			}
			if res.Lenient {
				msg := fmt.Sprintf("%s contained comments or trailing commas and was rewritten as plain JSON", res.Path)
				if res.BackupPath != "" {
					msg += fmt.Sprintf(" (previous content saved to %s)", res.BackupPath)
				}
				p.Warning(msg)
			}
			p.Success("Platform hooks configured")
			p.Item(res.Path)
		}

		if res.Applied {
			in.record(log, func(s *receipt.Store) error {
				return s.RecordHooks(id, res.Path)
			})
		}
	}

	// 6. Done
	var components []string
	if summary.Skills != nil {
		components = append(components, "Skills: "+summary.Skills.SkillsDir)
	}
	if summary.Scripts != nil {
		components = append(components, "Hooks: "+summary.Scripts.Dir, "Logs: "+summary.Scripts.LogsDir)
	}
	steps := []string{"Open " + name}
	if summary.TargetDir != "" {
		steps = append(steps, "Open project: "+summary.TargetDir)
	}
	steps = append(steps, "Start a discussion with your AI assistant")
	if in.Registry.SupportsHook(id) && summary.Settings != nil {
		steps = append(steps, "The hooks will automatically track your progress")
	} else {
		steps = append(steps, "Follow the Precipitation Discipline section to keep notes current")
	}

	p.Box("Installation complete!",
		ui.Section{Heading: "Installed:", Items: components},
		ui.Section{Heading: "Next steps:", Items: steps, Numbered: true},
	)
	return summary, nil
}

// resolveInstallPlatform returns opts.Platform after validating it, or
// the detected platform. With several detected and a prompter available
// the user picks one. An empty id with nil error means cancelled.
func (in *Installer) resolveInstallPlatform(opts InstallOptions) (string, error) {
	p := in.Printer

	if opts.Platform != "" {
		if _, err := in.Registry.Resolve(opts.Platform); err != nil {
			return "", err
		}
		return opts.Platform, nil
	}

	detected, err := in.Registry.DetectInstalled()
	if err != nil {
		return "", err
	}

	switch len(detected) {
	case 0:
		p.Error("No supported platform detected", "Install Claude Code or Cursor first, or use --platform flag")
		return "", serrors.NoPlatformDetected()
	case 1:
		p.Info("Detected platform: " + in.displayName(detected[0]))
		return detected[0], nil
	}

	if in.Prompter != nil && !opts.Yes {
		options := make([]cli.SelectOption, 0, len(detected))
		for _, id := range detected {
			options = append(options, cli.SelectOption{Value: id, Label: in.displayName(id)})
		}
		return in.Prompter.Select("Multiple platforms detected. Install for:", options)
	}

	p.Info("Multiple platforms detected:")
	for _, id := range detected {
		p.Detail("• " + in.displayName(id))
	}
	p.Info("Using: " + in.displayName(detected[0]))
	p.Detail("(Use --platform to specify a different one)")
	return detected[0], nil
}

func (in *Installer) printSkills(report bundle.Report) {
	p := in.Printer

	if report.MissingDist {
		p.Warning("No pre-built skills found for " + report.Platform)
		return
	}

	p.Success("Skills installed")
	for _, name := range report.Installed {
		p.Item(name)
	}
	for _, name := range report.Skipped {
		p.Detail(name + " not built for this platform, skipped")
	}
	for _, g := range report.Guidance {
		if g.Err == nil && g.Outcome == guidance.Injected {
			p.Detail("Precipitation guidance added to " + g.Bundle)
		}
	}
}

// record updates the receipt. Failures are logged and ignored.
func (in *Installer) record(log *slog.Logger, fn func(*receipt.Store) error) {
	if in.Receipts == nil {
		return
	}
	if err := fn(in.Receipts); err != nil {
		log.Warn("could not update install receipt", "path", in.Receipts.Path(), "error", err)
	}
}
