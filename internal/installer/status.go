package installer

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/vibe-x-ai/discuss-skills/internal/fsutil"
	"github.com/vibe-x-ai/discuss-skills/internal/platform"
)

// PlatformStatus is the installation state of one platform.
type PlatformStatus struct {
	Descriptor platform.Descriptor
	ConfigDir  string
	Detected   bool

	// Bundles lists configured bundles present in the global skills dir.
	Bundles []string

	// Projects lists project directories recorded in the receipt.
	Projects []string

	// HookRegistered is whether the settings file holds our entry.
	HookRegistered bool
}

// Inspect collects the state of every registered platform in registry
// order. Nothing is written.
func (in *Installer) Inspect() ([]PlatformStatus, error) {
	detected, err := in.Registry.DetectInstalled()
	if err != nil {
		return nil, err
	}
	isDetected := make(map[string]bool, len(detected))
	for _, id := range detected {
		isDetected[id] = true
	}

	var out []PlatformStatus
	for _, d := range in.Registry.List() {
		log := in.logger().With("platform", d.ID)

		configDir, err := in.Registry.ConfigDir(d.ID)
		if err != nil {
			return nil, err
		}
		st := PlatformStatus{
			Descriptor: d,
			ConfigDir:  configDir,
			Detected:   isDetected[d.ID],
		}

		if st.Bundles, err = in.Bundles.InstalledBundles(d.ID, ""); err != nil {
			return nil, err
		}
		if st.HookRegistered, err = in.Merger.Installed(d.ID); err != nil {
			log.Debug("could not read settings", "error", err)
		}
		if in.Receipts != nil {
			entry, err := in.Receipts.Get(d.ID)
			if err != nil {
				log.Debug("could not read install receipt", "error", err)
			} else if entry != nil {
				st.Projects = entry.ProjectTargets()
			}
		}

		out = append(out, st)
	}
	return out, nil
}

// Platforms prints every supported platform with its detection state.
func (in *Installer) Platforms() error {
	statuses, err := in.Inspect()
	if err != nil {
		return err
	}

	p := in.Printer
	p.Heading("Supported Platforms:")
	for _, st := range statuses {
		p.Newline()
		p.Info(fmt.Sprintf("%s (%s)", st.Descriptor.DisplayName, st.Descriptor.ID))
		p.Detail("Status: " + detectedLabel(st.Detected))
		p.Detail("Tier:   " + tierLabel(st.Descriptor.Tier))
		p.Detail("Config: " + st.ConfigDir + string(filepath.Separator))
	}
	p.Newline()
	return nil
}

// Status prints what is installed for every platform and returns it.
func (in *Installer) Status() ([]PlatformStatus, error) {
	statuses, err := in.Inspect()
	if err != nil {
		return nil, err
	}

	p := in.Printer
	p.Heading("Installation Status:")
	for _, st := range statuses {
		d := st.Descriptor
		p.Newline()
		p.Info(fmt.Sprintf("%s (%s)", d.DisplayName, d.ID))
		p.Detail("Status: " + detectedLabel(st.Detected))

		if len(st.Bundles) > 0 {
			p.Item("Skills: " + strings.Join(st.Bundles, ", "))
		} else {
			p.Detail("Skills: not installed")
		}
		for _, proj := range st.Projects {
			p.Detail("Project: " + proj)
		}

		if d.SupportsHook() {
			if st.HookRegistered {
				p.Item("Hook: registered")
			} else {
				p.Detail("Hook: not registered")
			}
		} else {
			p.Detail("Hook: not supported (guidance in skill)")
		}
	}

	hooksDir, err := in.Bundles.HooksDir()
	if err == nil {
		p.Newline()
		if fsutil.DirExists(hooksDir) {
			p.Success("Hook scripts: " + hooksDir)
		} else {
			p.Detail("Hook scripts: not installed")
		}
	}
	p.Newline()
	return statuses, nil
}

func detectedLabel(detected bool) string {
	if detected {
		return "✓ detected"
	}
	return "○ not found"
}

func tierLabel(t platform.Tier) string {
	if t == platform.TierFull {
		return "skills + hooks"
	}
	return "skills only"
}
