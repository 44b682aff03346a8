package platform

import (
	serrors "github.com/vibe-x-ai/discuss-skills/internal/errors"
)

// Tier is a platform capability class.
type Tier string

const (
	// TierFull platforms support the session-end hook.
	TierFull Tier = "full"

	// TierSkillsOnly platforms receive the skill bundle with injected
	// guidance in place of a hook.
	TierSkillsOnly Tier = "skills-only"
)

// HooksFormat selects the settings-file schema written for a platform.
type HooksFormat string

const (
	// FormatNone marks a platform without a hook mechanism.
	FormatNone HooksFormat = ""

	// FormatClaudeCode is {"hooks": {"Stop": [{"matcher": "", "hooks": [{"type": "command", "command": ...}]}]}}.
	FormatClaudeCode HooksFormat = "claude-code"

	// FormatCursor is {"version": 1, "hooks": {"stop": [{"command": ...}]}}.
	FormatCursor HooksFormat = "cursor"
)

// Descriptor describes one supported host platform.
type Descriptor struct {
	// ID is the stable identifier used in flags and receipts.
	ID string

	// DisplayName is the human-readable name (e.g., "Claude Code").
	DisplayName string

	// ConfigDirName is the host's configuration directory under home
	// (or under a project directory for project-scoped installs).
	ConfigDirName string

	// SkillsDirName is the subdirectory of ConfigDirName holding skill
	// bundles. Hosts disagree on plural vs singular.
	SkillsDirName string

	// SettingsFileName holds the hook configuration. Empty when the
	// platform has no hook mechanism.
	SettingsFileName string

	// HooksFormat selects the settings schema. FormatNone unless Tier is TierFull.
	HooksFormat HooksFormat

	Tier Tier
}

// SupportsHook reports whether the platform can run the session-end hook.
func (d Descriptor) SupportsHook() bool {
	return d.Tier == TierFull
}

// HasSettings reports whether the platform has a settings file to merge into.
func (d Descriptor) HasSettings() bool {
	return d.SettingsFileName != ""
}

// Validate checks the descriptor invariants.
func (d Descriptor) Validate() error {
	if d.ID == "" {
		return serrors.InvalidDescriptor(d.ID, "id is required")
	}
	if d.ConfigDirName == "" {
		return serrors.InvalidDescriptor(d.ID, "config dir is required")
	}
	if d.SkillsDirName == "" {
		return serrors.InvalidDescriptor(d.ID, "skills dir is required")
	}
	switch d.Tier {
	case TierFull:
		if d.HooksFormat == FormatNone {
			return serrors.InvalidDescriptor(d.ID, "full tier requires a hooks format")
		}
		if d.SettingsFileName == "" {
			return serrors.InvalidDescriptor(d.ID, "full tier requires a settings file")
		}
	case TierSkillsOnly:
		if d.HooksFormat != FormatNone {
			return serrors.InvalidDescriptor(d.ID, "skills-only tier cannot have a hooks format")
		}
	default:
		return serrors.InvalidDescriptor(d.ID, "unknown tier "+string(d.Tier))
	}
	switch d.HooksFormat {
	case FormatNone, FormatClaudeCode, FormatCursor:
	default:
		return serrors.InvalidDescriptor(d.ID, "unknown hooks format "+string(d.HooksFormat))
	}
	return nil
}
