package installer

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/vibe-x-ai/discuss-skills/internal/hooks"
	"github.com/vibe-x-ai/discuss-skills/internal/logging"
	"github.com/vibe-x-ai/discuss-skills/internal/receipt"
)

// UninstallOptions holds the uninstall command's flags.
type UninstallOptions struct {
	// Platform is the platform id. Empty means the first detected one.
	Platform string

	KeepHooks  bool
	KeepSkills bool

	// Yes skips confirmation prompts.
	Yes bool
}

// RemovedSkills lists the bundles removed from one skills directory.
type RemovedSkills struct {
	TargetDir string
	Bundles   []string
}

// UninstallSummary describes a finished uninstall.
type UninstallSummary struct {
	Platform string

	// NothingDetected is set when no platform was given or detected.
	NothingDetected bool
	Cancelled       bool

	Skills         []RemovedSkills
	ScriptsRemoved bool
	Settings       *hooks.Result

	// ScriptsKeptFor lists other platforms whose hooks still use the
	// shared scripts, which were therefore left in place.
	ScriptsKeptFor []string
}

// Uninstall removes skills, hook scripts and the settings entry for a
// platform. Skills installed into project directories recorded in the
// receipt are removed too. The logs directory is kept.
func (in *Installer) Uninstall(ctx context.Context, opts UninstallOptions) (*UninstallSummary, error) {
	p := in.Printer
	p.Banner(in.Version)

	id := opts.Platform
	if id != "" {
		if _, err := in.Registry.Resolve(id); err != nil {
			return nil, err
		}
	} else {
		detected, err := in.Registry.DetectInstalled()
		if err != nil {
			return nil, err
		}
		if len(detected) == 0 {
			p.Warning("No supported platform detected")
			return &UninstallSummary{NothingDetected: true}, nil
		}
		id = detected[0]
		p.Info("Detected platform: " + in.displayName(id))
	}

	name := in.displayName(id)
	log := logging.WithPlatform(in.logger(), id)
	summary := &UninstallSummary{Platform: id}

	p.Newline()
	p.Info(fmt.Sprintf("Uninstalling from %s...", name))

	ok, err := in.confirm(fmt.Sprintf("Remove discuss-for-specs from %s?", name), opts.Yes)
	if err != nil {
		return nil, err
	}
	if !ok {
		p.Info("Uninstall cancelled")
		summary.Cancelled = true
		return summary, nil
	}

	var entry *receipt.PlatformEntry
	if in.Receipts != nil {
		if entry, err = in.Receipts.Get(id); err != nil {
			log.Warn("could not read install receipt", "error", err)
		}
	}

	if !opts.KeepSkills {
		p.Heading("Removing Skills...")

		targets := []string{""}
		if entry != nil {
			targets = append(targets, entry.ProjectTargets()...)
		}

		removedAny := false
		for _, target := range targets {
			removed, err := in.Bundles.RemoveSkills(id, target)
			if err != nil {
				return nil, err
			}
			if len(removed) == 0 {
				continue
			}
			removedAny = true
			summary.Skills = append(summary.Skills, RemovedSkills{TargetDir: target, Bundles: removed})
			for _, b := range removed {
				if target != "" {
					p.Item(fmt.Sprintf("%s (%s)", b, target))
				} else {
					p.Item(b)
				}
			}
		}
		if removedAny {
			p.Success("Skills removed")
		} else {
			p.Info("No skills to remove")
		}

		in.record(log, func(s *receipt.Store) error { return s.ClearSkills(id) })
	}

	if !opts.KeepHooks {
		p.Heading("Removing Hooks...")
		if users := in.otherHookUsers(log, id); len(users) > 0 {
			summary.ScriptsKeptFor = users
			names := make([]string, len(users))
			for i, u := range users {
				names[i] = in.displayName(u)
			}
			p.Info("Hook scripts kept, still registered for " + strings.Join(names, ", "))
		} else {
			existed, err := in.Bundles.RemoveHookScripts()
			if err != nil {
				return nil, err
			}
			summary.ScriptsRemoved = existed
			if existed {
				dir, _ := in.Bundles.HooksDir()
				p.Success("Hooks removed")
				p.Item(dir)
			} else {
				p.Info("No hooks to remove")
			}
		}

		p.Heading("Removing platform hooks configuration...")
		res, err := in.Merger.Remove(id)
		if err != nil {
			return nil, err
		}
		summary.Settings = &res
		switch {
		case !res.Applied:
			p.Info(fmt.Sprintf("%s has no hook configuration", name))
		case res.Changed:
			p.Success("Platform hooks configuration removed")
			p.Item(res.Path)
		default:
			p.Info("No platform hooks configuration to remove")
		}

		in.record(log, func(s *receipt.Store) error { return s.ClearHooks(id) })
	}

	logsDir, _ := in.Bundles.LogsDir()
	p.Box("Uninstallation complete!")
	p.Note(fmt.Sprintf("Note: Logs directory was preserved at %s\nDelete it manually if you want to remove all data.", logsDir))
	return summary, nil
}

// otherHookUsers returns the platforms other than id whose hook still
// points at the shared scripts, per the receipt or the settings files.
func (in *Installer) otherHookUsers(log *slog.Logger, id string) []string {
	seen := map[string]bool{}
	if in.Receipts != nil {
		ids, err := in.Receipts.HookPlatforms()
		if err != nil {
			log.Warn("could not read install receipt", "error", err)
		}
		for _, other := range ids {
			seen[other] = true
		}
	}
	for _, d := range in.Registry.List() {
		if seen[d.ID] || !d.SupportsHook() {
			continue
		}
		if ok, err := in.Merger.Installed(d.ID); err == nil && ok {
			seen[d.ID] = true
		}
	}
	delete(seen, id)

	var users []string
	for _, d := range in.Registry.List() {
		if seen[d.ID] {
			users = append(users, d.ID)
		}
	}
	return users
}
