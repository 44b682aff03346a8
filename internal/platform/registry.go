// Package platform holds the table of supported AI-assistant hosts and
// resolves where each one keeps its skills and hook settings.
package platform

import (
	"os"
	"path/filepath"

	serrors "github.com/vibe-x-ai/discuss-skills/internal/errors"
	"github.com/vibe-x-ai/discuss-skills/internal/paths"
)

// Builtin lists the supported platforms in display order.
var Builtin = []Descriptor{
	{
		ID:               "claude-code",
		DisplayName:      "Claude Code",
		ConfigDirName:    ".claude",
		SkillsDirName:    "skills",
		SettingsFileName: "settings.json",
		HooksFormat:      FormatClaudeCode,
		Tier:             TierFull,
	},
	{
		ID:               "cursor",
		DisplayName:      "Cursor",
		ConfigDirName:    ".cursor",
		SkillsDirName:    "skills",
		SettingsFileName: "hooks.json",
		HooksFormat:      FormatCursor,
		Tier:             TierFull,
	},
	{
		ID:            "kilocode",
		DisplayName:   "Kilocode",
		ConfigDirName: ".kilocode",
		SkillsDirName: "skills",
		Tier:          TierSkillsOnly,
	},
	{
		ID:            "opencode",
		DisplayName:   "OpenCode",
		ConfigDirName: ".opencode",
		SkillsDirName: "skill",
		Tier:          TierSkillsOnly,
	},
	{
		ID:            "codex",
		DisplayName:   "Codex CLI",
		ConfigDirName: ".codex",
		SkillsDirName: "skills",
		Tier:          TierSkillsOnly,
	},
}

// Registry is an immutable, ordered set of platform descriptors.
type Registry struct {
	order []string
	byID  map[string]Descriptor
	home  string
}

// Option configures a Registry.
type Option func(*Registry)

// WithHome pins the home directory instead of reading it from the environment.
func WithHome(home string) Option {
	return func(r *Registry) {
		r.home = home
	}
}

// NewRegistry builds a registry from descriptors, keeping their order.
// It rejects duplicate ids and descriptors that break the tier invariants.
func NewRegistry(descriptors []Descriptor, opts ...Option) (*Registry, error) {
	r := &Registry{
		order: make([]string, 0, len(descriptors)),
		byID:  make(map[string]Descriptor, len(descriptors)),
	}
	for _, d := range descriptors {
		if err := d.Validate(); err != nil {
			return nil, err
		}
		if _, dup := r.byID[d.ID]; dup {
			return nil, serrors.InvalidDescriptor(d.ID, "duplicate id")
		}
		r.order = append(r.order, d.ID)
		r.byID[d.ID] = d
	}
	for _, opt := range opts {
		opt(r)
	}
	return r, nil
}

// Default returns the registry of built-in platforms.
func Default(opts ...Option) *Registry {
	r, err := NewRegistry(Builtin, opts...)
	if err != nil {
		panic("platform: invalid builtin table: " + err.Error())
	}
	return r
}

// List returns every descriptor in registry order.
func (r *Registry) List() []Descriptor {
	out := make([]Descriptor, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, r.byID[id])
	}
	return out
}

// IDs returns every platform id in registry order.
func (r *Registry) IDs() []string {
	return append([]string(nil), r.order...)
}

// Resolve returns the descriptor for id, or an UnknownPlatform error
// listing the valid ids.
func (r *Registry) Resolve(id string) (Descriptor, error) {
	d, ok := r.byID[id]
	if !ok {
		return Descriptor{}, serrors.UnknownPlatform(id, r.IDs())
	}
	return d, nil
}

// SupportsHook reports whether id is a full-tier platform.
// Unknown ids report false.
func (r *Registry) SupportsHook(id string) bool {
	d, ok := r.byID[id]
	return ok && d.SupportsHook()
}

// Home returns the home directory the registry resolves against.
func (r *Registry) Home() (string, error) {
	if r.home != "" {
		return r.home, nil
	}
	return paths.Home()
}

// DetectInstalled returns, in registry order, the ids whose config
// directory exists under home. Existence is the only check.
func (r *Registry) DetectInstalled() ([]string, error) {
	home, err := r.Home()
	if err != nil {
		return nil, err
	}

	detected := []string{}
	for _, id := range r.order {
		info, err := os.Stat(filepath.Join(home, r.byID[id].ConfigDirName))
		if err == nil && info.IsDir() {
			detected = append(detected, id)
		}
	}
	return detected, nil
}

// IsDetected reports whether id's config directory exists under home.
func (r *Registry) IsDetected(id string) bool {
	detected, err := r.DetectInstalled()
	if err != nil {
		return false
	}
	for _, d := range detected {
		if d == id {
			return true
		}
	}
	return false
}

// ConfigDir returns home/<configDir> for id.
func (r *Registry) ConfigDir(id string) (string, error) {
	d, err := r.Resolve(id)
	if err != nil {
		return "", err
	}
	home, err := r.Home()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, d.ConfigDirName), nil
}

// SkillsDir returns targetDir/<configDir>/<skillsDir> when targetDir is
// set, otherwise home/<configDir>/<skillsDir>.
func (r *Registry) SkillsDir(id, targetDir string) (string, error) {
	d, err := r.Resolve(id)
	if err != nil {
		return "", err
	}
	base := targetDir
	if base == "" {
		if base, err = r.Home(); err != nil {
			return "", err
		}
	}
	return filepath.Join(base, d.ConfigDirName, d.SkillsDirName), nil
}

// SettingsPath returns home/<configDir>/<settingsFile>. Settings are
// always global. ok is false when the platform has no settings file.
func (r *Registry) SettingsPath(id string) (path string, ok bool, err error) {
	d, err := r.Resolve(id)
	if err != nil {
		return "", false, err
	}
	if !d.HasSettings() {
		return "", false, nil
	}
	home, err := r.Home()
	if err != nil {
		return "", false, err
	}
	return filepath.Join(home, d.ConfigDirName, d.SettingsFileName), true, nil
}
