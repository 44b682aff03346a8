// Package testutil provides shared fixtures for installer tests.
package testutil

import (
	"os"
	"path/filepath"
	"testing"
)

// SkillName is the bundle every fixture package ships.
const SkillName = "discuss-for-specs"

// SkillDoc is a bundle document carrying the responsibilities heading.
const SkillDoc = "# discuss-for-specs\n\n## 🎯 Your Responsibilities\n\n- Track decisions\n\n## Workflow\n\nsteps\n"

// GuidanceFragment is an l1 guidance file with metadata above the start heading.
const GuidanceFragment = "meta: l1\n\n## 📝 Precipitation Discipline\n\nGUIDANCE_TEXT\n"

// HookScript is the check script path relative to the hooks dir.
var HookScript = filepath.Join("stop", "check_precipitation.py")

// AllPlatforms lists every supported platform id.
var AllPlatforms = []string{"claude-code", "cursor", "kilocode", "opencode", "codex"}

// WriteFile creates path and its parents with the given content.
func WriteFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatalf("creating %s: %v", filepath.Dir(path), err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("writing %s: %v", path, err)
	}
}

// MkdirAll creates a directory tree or fails the test.
func MkdirAll(t *testing.T, path string) {
	t.Helper()
	if err := os.MkdirAll(path, 0755); err != nil {
		t.Fatalf("creating %s: %v", path, err)
	}
}

// MockHome points HOME at a fresh temp dir for the test and returns it.
func MockHome(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	return home
}

// PackageRoot is a fake install package laid out like a release.
type PackageRoot struct {
	Dir string
}

// NewPackageRoot builds dist bundles for the given platforms along with
// the hook scripts and guidance fragment.
func NewPackageRoot(t *testing.T, platforms ...string) *PackageRoot {
	t.Helper()
	p := &PackageRoot{Dir: t.TempDir()}
	for _, id := range platforms {
		p.AddBundle(t, id, SkillName, SkillDoc)
	}
	WriteFile(t, p.GuidanceFile(), GuidanceFragment)
	WriteFile(t, filepath.Join(p.HooksDir(), HookScript), "print('ok')\n")
	WriteFile(t, filepath.Join(p.HooksDir(), "common", "logging_utils.py"), "")
	return p
}

// AddBundle writes a prebuilt bundle with one reference file.
func (p *PackageRoot) AddBundle(t *testing.T, platformID, name, doc string) string {
	t.Helper()
	dir := filepath.Join(p.DistDir(), platformID, name)
	WriteFile(t, filepath.Join(dir, "SKILL.md"), doc)
	WriteFile(t, filepath.Join(dir, "references", "templates.md"), "templates")
	return dir
}

// DistDir returns the prebuilt bundle directory.
func (p *PackageRoot) DistDir() string { return filepath.Join(p.Dir, "dist") }

// HooksDir returns the hook script source directory.
func (p *PackageRoot) HooksDir() string { return filepath.Join(p.Dir, "hooks") }

// GuidanceFile returns the l1 guidance fragment path.
func (p *PackageRoot) GuidanceFile() string {
	return filepath.Join(p.Dir, "guidance", "l1-guidance.md")
}

// RemoveHooks deletes the hook script sources.
func (p *PackageRoot) RemoveHooks(t *testing.T) {
	t.Helper()
	if err := os.RemoveAll(p.HooksDir()); err != nil {
		t.Fatal(err)
	}
}
