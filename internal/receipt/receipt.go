// Package receipt records what was installed where, so uninstall and
// status can find project-scoped installs again.
package receipt

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/vibe-x-ai/discuss-skills/internal/paths"
)

// FileName is the receipt file name under the base directory.
const FileName = "installed.yaml"

// currentVersion is written to new receipts.
const currentVersion = 1

// File is the on-disk receipt.
type File struct {
	Version   int                      `yaml:"version"`
	Platforms map[string]PlatformEntry `yaml:"platforms"`
}

// PlatformEntry is the receipt for one platform.
type PlatformEntry struct {
	// Skills lists every skills directory bundles were copied to.
	Skills []SkillsInstall `yaml:"skills,omitempty"`

	HooksConfigured bool   `yaml:"hooks_configured"`
	SettingsPath    string `yaml:"settings_path,omitempty"`

	UpdatedAt time.Time `yaml:"updated_at"`
}

// SkillsInstall records one copy of the bundles.
type SkillsInstall struct {
	SkillsDir string `yaml:"skills_dir"`

	// TargetDir is the project directory, empty for a global install.
	TargetDir string `yaml:"target_dir,omitempty"`

	Bundles     []string  `yaml:"bundles"`
	InstalledAt time.Time `yaml:"installed_at"`
}

// ProjectTargets returns the target dirs of project-scoped installs.
func (e *PlatformEntry) ProjectTargets() []string {
	var out []string
	for _, s := range e.Skills {
		if s.TargetDir != "" {
			out = append(out, s.TargetDir)
		}
	}
	return out
}

// Store manages ~/.discuss-for-specs/installed.yaml.
type Store struct {
	path string
	now  func() time.Time
}

// NewStore creates a store at the default location.
func NewStore() (*Store, error) {
	base, err := paths.BaseDir()
	if err != nil {
		return nil, err
	}
	return NewStoreWithPath(filepath.Join(base, FileName)), nil
}

// NewStoreWithPath creates a store at a custom path.
func NewStoreWithPath(path string) *Store {
	return &Store{path: path, now: time.Now}
}

// Path returns the receipt file path.
func (s *Store) Path() string {
	return s.path
}

// Load reads the receipt, returning an empty one if it does not exist.
func (s *Store) Load() (*File, error) {
	data, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		return &File{Version: currentVersion, Platforms: make(map[string]PlatformEntry)}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading receipt: %w", err)
	}

	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parsing receipt: %w", err)
	}
	if f.Version == 0 {
		f.Version = currentVersion
	}
	if f.Platforms == nil {
		f.Platforms = make(map[string]PlatformEntry)
	}
	return &f, nil
}

// Save writes the receipt.
func (s *Store) Save(f *File) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0755); err != nil {
		return fmt.Errorf("creating receipt dir: %w", err)
	}

	data, err := yaml.Marshal(f)
	if err != nil {
		return fmt.Errorf("marshaling receipt: %w", err)
	}

	if err := os.WriteFile(s.path, data, 0644); err != nil {
		return fmt.Errorf("writing receipt: %w", err)
	}
	return nil
}

// RecordSkills adds or refreshes the install at inst.SkillsDir.
func (s *Store) RecordSkills(id string, inst SkillsInstall) error {
	return s.update(id, func(e *PlatformEntry) {
		inst.InstalledAt = s.now()
		for i := range e.Skills {
			if e.Skills[i].SkillsDir == inst.SkillsDir {
				e.Skills[i] = inst
				return
			}
		}
		e.Skills = append(e.Skills, inst)
	})
}

// RecordHooks marks the platform's hook as registered in settingsPath.
func (s *Store) RecordHooks(id, settingsPath string) error {
	return s.update(id, func(e *PlatformEntry) {
		e.HooksConfigured = true
		e.SettingsPath = settingsPath
	})
}

func (s *Store) update(id string, fn func(*PlatformEntry)) error {
	f, err := s.Load()
	if err != nil {
		return err
	}

	e := f.Platforms[id]
	fn(&e)
	e.UpdatedAt = s.now()
	f.Platforms[id] = e

	return s.Save(f)
}

// ClearSkills drops the platform's skills records, removing the entry
// when nothing else is recorded for it.
func (s *Store) ClearSkills(id string) error {
	return s.clear(id, func(e *PlatformEntry) {
		e.Skills = nil
	})
}

// ClearHooks drops the platform's hook record, removing the entry when
// nothing else is recorded for it.
func (s *Store) ClearHooks(id string) error {
	return s.clear(id, func(e *PlatformEntry) {
		e.HooksConfigured = false
		e.SettingsPath = ""
	})
}

func (s *Store) clear(id string, fn func(*PlatformEntry)) error {
	f, err := s.Load()
	if err != nil {
		return err
	}
	e, ok := f.Platforms[id]
	if !ok {
		return nil
	}

	fn(&e)
	if len(e.Skills) == 0 && !e.HooksConfigured {
		delete(f.Platforms, id)
	} else {
		e.UpdatedAt = s.now()
		f.Platforms[id] = e
	}
	return s.Save(f)
}

// HookPlatforms returns the ids with a registered hook, sorted.
func (s *Store) HookPlatforms() ([]string, error) {
	f, err := s.Load()
	if err != nil {
		return nil, err
	}
	var ids []string
	for id, e := range f.Platforms {
		if e.HooksConfigured {
			ids = append(ids, id)
		}
	}
	sort.Strings(ids)
	return ids, nil
}

// Get returns the platform's entry, or nil if none is recorded.
func (s *Store) Get(id string) (*PlatformEntry, error) {
	f, err := s.Load()
	if err != nil {
		return nil, err
	}
	e, ok := f.Platforms[id]
	if !ok {
		return nil, nil
	}
	return &e, nil
}
