package platform

import (
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	serrors "github.com/vibe-x-ai/discuss-skills/internal/errors"
)

func TestBuiltinTable(t *testing.T) {
	r := Default()

	want := []string{"claude-code", "cursor", "kilocode", "opencode", "codex"}
	if got := r.IDs(); !reflect.DeepEqual(got, want) {
		t.Errorf("IDs() = %v, want %v", got, want)
	}

	t.Run("claude-code", func(t *testing.T) {
		d, err := r.Resolve("claude-code")
		if err != nil {
			t.Fatalf("Resolve() error = %v", err)
		}
		if d.DisplayName != "Claude Code" || d.ConfigDirName != ".claude" {
			t.Errorf("descriptor = %+v", d)
		}
		if d.SettingsFileName != "settings.json" || d.HooksFormat != FormatClaudeCode {
			t.Errorf("settings = %q / %q", d.SettingsFileName, d.HooksFormat)
		}
	})

	t.Run("cursor", func(t *testing.T) {
		d, _ := r.Resolve("cursor")
		if d.SettingsFileName != "hooks.json" || d.HooksFormat != FormatCursor {
			t.Errorf("settings = %q / %q", d.SettingsFileName, d.HooksFormat)
		}
	})

	t.Run("opencode uses singular skill dir", func(t *testing.T) {
		d, _ := r.Resolve("opencode")
		if d.SkillsDirName != "skill" {
			t.Errorf("SkillsDirName = %q, want skill", d.SkillsDirName)
		}
	})

	t.Run("hooks format iff full tier", func(t *testing.T) {
		for _, d := range r.List() {
			if (d.HooksFormat != FormatNone) != (d.Tier == TierFull) {
				t.Errorf("%s: tier %s with format %q", d.ID, d.Tier, d.HooksFormat)
			}
		}
	})
}

func TestResolveUnknown(t *testing.T) {
	r := Default()

	_, err := r.Resolve("unknown-id")
	if err == nil {
		t.Fatal("Resolve() should fail for unknown id")
	}
	if !serrors.HasCode(err, serrors.CodeUnknownPlatform) {
		t.Errorf("code = %q, want %q", serrors.Code(err), serrors.CodeUnknownPlatform)
	}
	for _, id := range r.IDs() {
		if !strings.Contains(err.Error(), id) {
			t.Errorf("error %q should list %s", err.Error(), id)
		}
	}
}

func TestSupportsHook(t *testing.T) {
	r := Default()

	tests := []struct {
		id   string
		want bool
	}{
		{"claude-code", true},
		{"cursor", true},
		{"kilocode", false},
		{"opencode", false},
		{"codex", false},
		{"codex-cli", false},
		{"", false},
	}
	for _, tt := range tests {
		t.Run(tt.id, func(t *testing.T) {
			if got := r.SupportsHook(tt.id); got != tt.want {
				t.Errorf("SupportsHook(%q) = %v, want %v", tt.id, got, tt.want)
			}
		})
	}
}

func TestResolvedPathsContainConfigDir(t *testing.T) {
	home := t.TempDir()
	r := Default(WithHome(home))

	for _, d := range r.List() {
		t.Run(d.ID, func(t *testing.T) {
			skills, err := r.SkillsDir(d.ID, "")
			if err != nil {
				t.Fatalf("SkillsDir() error = %v", err)
			}
			if want := filepath.Join(home, d.ConfigDirName, d.SkillsDirName); skills != want {
				t.Errorf("SkillsDir() = %q, want %q", skills, want)
			}

			project, err := r.SkillsDir(d.ID, "/my/project")
			if err != nil {
				t.Fatalf("SkillsDir(target) error = %v", err)
			}
			if want := filepath.Join("/my/project", d.ConfigDirName, d.SkillsDirName); project != want {
				t.Errorf("SkillsDir(target) = %q, want %q", project, want)
			}

			settings, ok, err := r.SettingsPath(d.ID)
			if err != nil {
				t.Fatalf("SettingsPath() error = %v", err)
			}
			if ok != d.HasSettings() {
				t.Errorf("SettingsPath() ok = %v, want %v", ok, d.HasSettings())
			}
			if ok && !strings.Contains(settings, d.ConfigDirName) {
				t.Errorf("SettingsPath() = %q should contain %q", settings, d.ConfigDirName)
			}
		})
	}
}

func TestSettingsPathUsesHomeEnv(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	path, ok, err := Default().SettingsPath("cursor")
	if err != nil || !ok {
		t.Fatalf("SettingsPath() = %q, %v, %v", path, ok, err)
	}
	if path != filepath.Join(home, ".cursor", "hooks.json") {
		t.Errorf("SettingsPath() = %q", path)
	}
}

func TestPathsUnknownPlatform(t *testing.T) {
	r := Default(WithHome(t.TempDir()))
	if _, err := r.SkillsDir("nope", ""); !serrors.HasCode(err, serrors.CodeUnknownPlatform) {
		t.Errorf("SkillsDir() error = %v", err)
	}
	if _, _, err := r.SettingsPath("nope"); !serrors.HasCode(err, serrors.CodeUnknownPlatform) {
		t.Errorf("SettingsPath() error = %v", err)
	}
}

func TestDetectInstalled(t *testing.T) {
	t.Run("none present", func(t *testing.T) {
		r := Default(WithHome(t.TempDir()))
		got, err := r.DetectInstalled()
		if err != nil {
			t.Fatalf("DetectInstalled() error = %v", err)
		}
		if len(got) != 0 {
			t.Errorf("DetectInstalled() = %v, want empty", got)
		}
	})

	t.Run("registry order", func(t *testing.T) {
		home := t.TempDir()
		os.MkdirAll(filepath.Join(home, ".codex"), 0755)
		os.MkdirAll(filepath.Join(home, ".cursor"), 0755)
		// A file with a config dir name is not a platform install
		os.WriteFile(filepath.Join(home, ".kilocode"), []byte("x"), 0644)

		r := Default(WithHome(home))
		got, err := r.DetectInstalled()
		if err != nil {
			t.Fatalf("DetectInstalled() error = %v", err)
		}
		want := []string{"cursor", "codex"}
		if !reflect.DeepEqual(got, want) {
			t.Errorf("DetectInstalled() = %v, want %v", got, want)
		}
		if !r.IsDetected("codex") || r.IsDetected("claude-code") {
			t.Error("IsDetected disagrees with DetectInstalled")
		}
	})

	t.Run("mocked HOME env", func(t *testing.T) {
		home := t.TempDir()
		t.Setenv("HOME", home)
		os.MkdirAll(filepath.Join(home, ".claude"), 0755)

		got, err := Default().DetectInstalled()
		if err != nil {
			t.Fatalf("DetectInstalled() error = %v", err)
		}
		if !reflect.DeepEqual(got, []string{"claude-code"}) {
			t.Errorf("DetectInstalled() = %v", got)
		}
	})
}

func TestNewRegistryRejectsBadTables(t *testing.T) {
	tests := []struct {
		name string
		ds   []Descriptor
	}{
		{
			name: "duplicate id",
			ds:   []Descriptor{Builtin[0], Builtin[0]},
		},
		{
			name: "full tier without format",
			ds: []Descriptor{{
				ID: "x", ConfigDirName: ".x", SkillsDirName: "skills",
				SettingsFileName: "s.json", Tier: TierFull,
			}},
		},
		{
			name: "skills-only with format",
			ds: []Descriptor{{
				ID: "x", ConfigDirName: ".x", SkillsDirName: "skills",
				HooksFormat: FormatCursor, Tier: TierSkillsOnly,
			}},
		},
		{
			name: "missing config dir",
			ds:   []Descriptor{{ID: "x", SkillsDirName: "skills", Tier: TierSkillsOnly}},
		},
		{
			name: "unknown tier",
			ds:   []Descriptor{{ID: "x", ConfigDirName: ".x", SkillsDirName: "skills", Tier: "L3"}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewRegistry(tt.ds)
			if !serrors.HasCode(err, serrors.CodeInvalidDescriptor) {
				t.Errorf("NewRegistry() error = %v, want %s", err, serrors.CodeInvalidDescriptor)
			}
		})
	}
}

func TestListIsACopy(t *testing.T) {
	r := Default()
	list := r.List()
	list[0].DisplayName = "mutated"
	ids := r.IDs()
	ids[0] = "mutated"

	d, _ := r.Resolve("claude-code")
	if d.DisplayName != "Claude Code" {
		t.Error("mutating List() result changed the registry")
	}
	if r.IDs()[0] != "claude-code" {
		t.Error("mutating IDs() result changed the registry")
	}
}
