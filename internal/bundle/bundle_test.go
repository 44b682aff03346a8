package bundle

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	serrors "github.com/vibe-x-ai/discuss-skills/internal/errors"
	"github.com/vibe-x-ai/discuss-skills/internal/guidance"
	"github.com/vibe-x-ai/discuss-skills/internal/logging"
	"github.com/vibe-x-ai/discuss-skills/internal/platform"
	"github.com/vibe-x-ai/discuss-skills/internal/testutil"
)

// setupPackage builds a package root with prebuilt bundles for the given
// platforms and returns an Installer rooted at a fresh home.
func setupPackage(t *testing.T, platforms ...string) (*Installer, string, *testutil.PackageRoot) {
	t.Helper()
	home := t.TempDir()
	pkg := testutil.NewPackageRoot(t, platforms...)

	in := &Installer{
		Registry:     platform.Default(platform.WithHome(home)),
		DistDir:      pkg.DistDir(),
		Skills:       []string{testutil.SkillName},
		GuidanceFile: pkg.GuidanceFile(),
		BaseDir:      filepath.Join(home, ".discuss-for-specs"),
		Logger:       logging.NewForTest(),
	}
	return in, home, pkg
}

func TestInstallSkillsGlobal(t *testing.T) {
	in, home, _ := setupPackage(t, "claude-code")

	report, err := in.InstallSkills("claude-code", "")
	if err != nil {
		t.Fatalf("InstallSkills() error = %v", err)
	}

	wantDir := filepath.Join(home, ".claude", "skills")
	if report.SkillsDir != wantDir {
		t.Errorf("SkillsDir = %q, want %q", report.SkillsDir, wantDir)
	}
	if len(report.Installed) != 1 || report.Installed[0] != "discuss-for-specs" {
		t.Errorf("Installed = %v", report.Installed)
	}
	if len(report.Guidance) != 0 {
		t.Errorf("full-tier platform should not get guidance, got %v", report.Guidance)
	}

	data, err := os.ReadFile(filepath.Join(wantDir, "discuss-for-specs", SkillDocument))
	if err != nil {
		t.Fatalf("reading installed doc: %v", err)
	}
	if string(data) != testutil.SkillDoc {
		t.Errorf("installed doc modified:\n%s", data)
	}
	testutil.AssertFileExists(t, filepath.Join(wantDir, "discuss-for-specs", "references", "templates.md"))
}

func TestInstallSkillsProjectScoped(t *testing.T) {
	in, home, _ := setupPackage(t, "cursor")
	project := t.TempDir()

	report, err := in.InstallSkills("cursor", project)
	if err != nil {
		t.Fatalf("InstallSkills() error = %v", err)
	}
	if want := filepath.Join(project, ".cursor", "skills"); report.SkillsDir != want {
		t.Errorf("SkillsDir = %q, want %q", report.SkillsDir, want)
	}
	testutil.AssertFileNotExists(t, filepath.Join(home, ".cursor"))
}

func TestInstallSkillsMissingDistIsWarning(t *testing.T) {
	in, home, _ := setupPackage(t)

	report, err := in.InstallSkills("codex", "")
	if err != nil {
		t.Fatalf("InstallSkills() error = %v", err)
	}
	if !report.MissingDist {
		t.Error("MissingDist should be set")
	}
	if len(report.Installed) != 0 {
		t.Errorf("Installed = %v, want none", report.Installed)
	}
	testutil.AssertFileNotExists(t, filepath.Join(home, ".codex"))
}

func TestInstallSkillsSkipsUnbuiltBundle(t *testing.T) {
	in, _, _ := setupPackage(t, "claude-code")
	in.Skills = []string{"discuss-for-specs", "not-built"}

	report, err := in.InstallSkills("claude-code", "")
	if err != nil {
		t.Fatalf("InstallSkills() error = %v", err)
	}
	if len(report.Skipped) != 1 || report.Skipped[0] != "not-built" {
		t.Errorf("Skipped = %v", report.Skipped)
	}
}

func TestInstallSkillsInjectsGuidanceForSkillsOnly(t *testing.T) {
	for _, id := range []string{"kilocode", "opencode", "codex"} {
		t.Run(id, func(t *testing.T) {
			in, _, _ := setupPackage(t, id)

			report, err := in.InstallSkills(id, "")
			if err != nil {
				t.Fatalf("InstallSkills() error = %v", err)
			}
			if len(report.Guidance) != 1 || report.Guidance[0].Outcome != guidance.Injected {
				t.Fatalf("Guidance = %+v", report.Guidance)
			}

			data, _ := os.ReadFile(filepath.Join(report.SkillsDir, "discuss-for-specs", SkillDocument))
			doc := string(data)
			resp := strings.Index(doc, "Your Responsibilities")
			guide := strings.Index(doc, "GUIDANCE_TEXT")
			next := strings.Index(doc, "## Workflow")
			if !(resp >= 0 && resp < guide && guide < next) {
				t.Errorf("guidance misplaced:\n%s", doc)
			}

			// Reinstalling copies a fresh document and injects once more
			if _, err := in.InstallSkills(id, ""); err != nil {
				t.Fatalf("second InstallSkills() error = %v", err)
			}
			data, _ = os.ReadFile(filepath.Join(report.SkillsDir, "discuss-for-specs", SkillDocument))
			if n := strings.Count(string(data), "GUIDANCE_TEXT"); n != 1 {
				t.Errorf("guidance appears %d times, want 1", n)
			}
		})
	}
}

func TestInstallSkillsGuidanceFailureIsNotFatal(t *testing.T) {
	in, _, _ := setupPackage(t, "opencode")
	in.GuidanceFile = filepath.Join(t.TempDir(), "missing.md")

	report, err := in.InstallSkills("opencode", "")
	if err != nil {
		t.Fatalf("InstallSkills() error = %v", err)
	}
	if len(report.Installed) != 1 {
		t.Errorf("Installed = %v", report.Installed)
	}
	if len(report.Guidance) != 1 || report.Guidance[0].Err == nil {
		t.Errorf("Guidance = %+v, want recorded error", report.Guidance)
	}
}

func TestInstallSkillsUnknownPlatform(t *testing.T) {
	in, _, _ := setupPackage(t)

	if _, err := in.InstallSkills("nope", ""); !serrors.HasCode(err, serrors.CodeUnknownPlatform) {
		t.Errorf("InstallSkills() error = %v", err)
	}
}

func TestRemoveSkills(t *testing.T) {
	in, home, _ := setupPackage(t, "claude-code")
	in.InstallSkills("claude-code", "")
	other := filepath.Join(home, ".claude", "skills", "someone-else")
	testutil.WriteFile(t, filepath.Join(other, SkillDocument), "mine")

	removed, err := in.RemoveSkills("claude-code", "")
	if err != nil {
		t.Fatalf("RemoveSkills() error = %v", err)
	}
	if len(removed) != 1 || removed[0] != "discuss-for-specs" {
		t.Errorf("removed = %v", removed)
	}
	testutil.AssertFileNotExists(t, filepath.Join(home, ".claude", "skills", "discuss-for-specs"))
	testutil.AssertFileExists(t, other)

	removed, err = in.RemoveSkills("claude-code", "")
	if err != nil || len(removed) != 0 {
		t.Errorf("second RemoveSkills() = %v, %v", removed, err)
	}
}

func TestInstalledBundles(t *testing.T) {
	in, _, _ := setupPackage(t, "cursor")

	found, err := in.InstalledBundles("cursor", "")
	if err != nil || len(found) != 0 {
		t.Fatalf("InstalledBundles() before install = %v, %v", found, err)
	}

	in.InstallSkills("cursor", "")
	found, _ = in.InstalledBundles("cursor", "")
	if len(found) != 1 {
		t.Errorf("InstalledBundles() = %v", found)
	}
}

func TestInstallAndRemoveHookScripts(t *testing.T) {
	in, home, pkg := setupPackage(t)

	scripts, err := in.InstallHookScripts(pkg.HooksDir())
	if err != nil {
		t.Fatalf("InstallHookScripts() error = %v", err)
	}

	base := filepath.Join(home, ".discuss-for-specs")
	if scripts.Dir != filepath.Join(base, "hooks") || scripts.LogsDir != filepath.Join(base, "logs") {
		t.Errorf("scripts = %+v", scripts)
	}
	testutil.AssertFileExists(t, filepath.Join(scripts.Dir, "stop", "check_precipitation.py"))
	testutil.AssertDirExists(t, scripts.LogsDir)
	testutil.WriteFile(t, filepath.Join(scripts.LogsDir, "session.log"), "history")

	existed, err := in.RemoveHookScripts()
	if err != nil || !existed {
		t.Fatalf("RemoveHookScripts() = %v, %v", existed, err)
	}
	testutil.AssertFileNotExists(t, scripts.Dir)
	testutil.AssertFileExists(t, filepath.Join(scripts.LogsDir, "session.log"))

	existed, err = in.RemoveHookScripts()
	if err != nil || existed {
		t.Errorf("second RemoveHookScripts() = %v, %v", existed, err)
	}
}

func TestInstallHookScriptsMissingSource(t *testing.T) {
	in, _, _ := setupPackage(t)

	_, err := in.InstallHookScripts(filepath.Join(t.TempDir(), "hooks"))
	if !serrors.HasCode(err, serrors.CodeHooksSourceMissing) {
		t.Errorf("InstallHookScripts() error = %v, want hooks source missing", err)
	}
}

func TestDefaultBaseDirUsesHome(t *testing.T) {
	home := testutil.MockHome(t)

	in := &Installer{Registry: platform.Default()}
	dir, err := in.HooksDir()
	if err != nil {
		t.Fatal(err)
	}
	if want := filepath.Join(home, ".discuss-for-specs", "hooks"); dir != want {
		t.Errorf("HooksDir() = %q, want %q", dir, want)
	}
}
