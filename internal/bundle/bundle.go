// Package bundle copies prebuilt skill bundles and the hook scripts into
// place, and removes them again.
package bundle

import (
	"log/slog"
	"os"
	"path/filepath"

	serrors "github.com/vibe-x-ai/discuss-skills/internal/errors"
	"github.com/vibe-x-ai/discuss-skills/internal/fsutil"
	"github.com/vibe-x-ai/discuss-skills/internal/guidance"
	"github.com/vibe-x-ai/discuss-skills/internal/logging"
	"github.com/vibe-x-ai/discuss-skills/internal/paths"
	"github.com/vibe-x-ai/discuss-skills/internal/platform"
)

// SkillDocument is the file guidance is injected into.
const SkillDocument = "SKILL.md"

// Installer copies assets for registry platforms.
type Installer struct {
	Registry *platform.Registry

	// DistDir holds one prebuilt directory per platform id, each holding
	// one directory per bundle.
	DistDir string

	// Skills lists the bundle names to install.
	Skills []string

	// GuidanceFile is the fragment injected for skills-only platforms.
	// Empty disables injection.
	GuidanceFile string

	// BaseDir receives hooks/ and logs/. Empty means ~/.discuss-for-specs.
	BaseDir string

	Logger *slog.Logger
}

// GuidanceResult records the injection pass for one bundle.
type GuidanceResult struct {
	Bundle  string
	Outcome guidance.Outcome
	Err     error
}

// Report describes what InstallSkills did.
type Report struct {
	Platform  string
	SkillsDir string

	// MissingDist is set when the platform has no prebuilt directory.
	// Nothing was copied.
	MissingDist bool

	// Installed lists the bundles copied, in configured order.
	Installed []string

	// Skipped lists configured bundles absent from the prebuilt directory.
	Skipped []string

	// Guidance holds one entry per installed bundle on skills-only
	// platforms.
	Guidance []GuidanceResult
}

// HookScripts describes where InstallHookScripts put things.
type HookScripts struct {
	Dir     string
	LogsDir string
}

func (in *Installer) logger() *slog.Logger {
	return logging.OrDiscard(in.Logger)
}

func (in *Installer) baseDir() (string, error) {
	if in.BaseDir != "" {
		return in.BaseDir, nil
	}
	return paths.BaseDir()
}

// HooksDir returns the directory hook scripts are installed to.
func (in *Installer) HooksDir() (string, error) {
	base, err := in.baseDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(base, paths.HooksDirName), nil
}

// LogsDir returns the directory the hook scripts log to.
func (in *Installer) LogsDir() (string, error) {
	base, err := in.baseDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(base, paths.LogsDirName), nil
}

// InstallSkills copies each configured bundle from DistDir/<id> into the
// platform's skills directory, under targetDir when set and the home
// directory otherwise. Existing files are overwritten.
//
// A platform without a prebuilt directory is reported, not failed.
// Guidance injection for skills-only platforms never fails the call;
// its results are recorded in the report.
func (in *Installer) InstallSkills(id, targetDir string) (Report, error) {
	d, err := in.Registry.Resolve(id)
	if err != nil {
		return Report{}, err
	}
	skillsDir, err := in.Registry.SkillsDir(id, targetDir)
	if err != nil {
		return Report{}, err
	}

	log := logging.WithPlatform(in.logger(), id)
	report := Report{Platform: id, SkillsDir: skillsDir}

	distDir := filepath.Join(in.DistDir, id)
	if !fsutil.DirExists(distDir) {
		log.Warn("no prebuilt skills for platform", "dist", distDir)
		report.MissingDist = true
		return report, nil
	}

	if err := fsutil.EnsureDir(skillsDir); err != nil {
		return report, serrors.IOWriteError(skillsDir, err)
	}

	for _, name := range in.Skills {
		src := filepath.Join(distDir, name)
		if !fsutil.DirExists(src) {
			log.Debug("bundle not built for platform", "bundle", name)
			report.Skipped = append(report.Skipped, name)
			continue
		}

		dst := filepath.Join(skillsDir, name)
		if err := fsutil.CopyDir(src, dst, fsutil.DefaultCopyOptions); err != nil {
			return report, serrors.Wrapf(serrors.CodeIOWriteError, err, "copying bundle %s", name).
				WithDetail("path", dst)
		}
		report.Installed = append(report.Installed, name)
		log.Debug("bundle installed", "bundle", name, "path", dst)

		if d.Tier == platform.TierSkillsOnly {
			report.Guidance = append(report.Guidance, in.injectGuidance(log, name, dst))
		}
	}

	return report, nil
}

// injectGuidance runs the injection pass for one installed bundle.
func (in *Installer) injectGuidance(log *slog.Logger, name, dir string) GuidanceResult {
	res := GuidanceResult{Bundle: name, Outcome: guidance.SkippedEmptyBody}
	if in.GuidanceFile == "" {
		return res
	}

	outcome, err := guidance.InjectFile(filepath.Join(dir, SkillDocument), in.GuidanceFile)
	res.Outcome = outcome
	res.Err = err
	if err != nil {
		log.Warn("guidance injection failed", "bundle", name, "error", err)
	} else {
		log.Debug("guidance pass", "bundle", name, "outcome", outcome.String())
	}
	return res
}

// RemoveSkills deletes each configured bundle from the platform's skills
// directory and returns the names that were present.
func (in *Installer) RemoveSkills(id, targetDir string) ([]string, error) {
	skillsDir, err := in.Registry.SkillsDir(id, targetDir)
	if err != nil {
		return nil, err
	}

	var removed []string
	for _, name := range in.Skills {
		dir := filepath.Join(skillsDir, name)
		if !fsutil.DirExists(dir) {
			continue
		}
		if err := fsutil.RemoveDir(dir); err != nil {
			return removed, serrors.IOWriteError(dir, err)
		}
		removed = append(removed, name)
	}
	return removed, nil
}

// InstallHookScripts copies the hook scripts from src into the hooks
// directory and creates the logs directory. A missing src is fatal.
func (in *Installer) InstallHookScripts(src string) (HookScripts, error) {
	if !fsutil.DirExists(src) {
		return HookScripts{}, serrors.HooksSourceMissing(src)
	}

	hooksDir, err := in.HooksDir()
	if err != nil {
		return HookScripts{}, err
	}
	logsDir, err := in.LogsDir()
	if err != nil {
		return HookScripts{}, err
	}

	if err := fsutil.CopyDir(src, hooksDir, fsutil.DefaultCopyOptions); err != nil {
		return HookScripts{}, serrors.IOWriteError(hooksDir, err)
	}
	if err := fsutil.EnsureDir(logsDir); err != nil {
		return HookScripts{}, serrors.IOWriteError(logsDir, err)
	}

	in.logger().Debug("hook scripts installed", "path", hooksDir)
	return HookScripts{Dir: hooksDir, LogsDir: logsDir}, nil
}

// RemoveHookScripts deletes the hooks directory and reports whether it
// existed. The logs directory is kept.
func (in *Installer) RemoveHookScripts() (bool, error) {
	hooksDir, err := in.HooksDir()
	if err != nil {
		return false, err
	}
	if _, err := os.Stat(hooksDir); os.IsNotExist(err) {
		return false, nil
	}
	if err := fsutil.RemoveDir(hooksDir); err != nil {
		return false, serrors.IOWriteError(hooksDir, err)
	}
	return true, nil
}

// InstalledBundles returns the configured bundles present in the
// platform's skills directory.
func (in *Installer) InstalledBundles(id, targetDir string) ([]string, error) {
	skillsDir, err := in.Registry.SkillsDir(id, targetDir)
	if err != nil {
		return nil, err
	}

	var found []string
	for _, name := range in.Skills {
		if fsutil.DirExists(filepath.Join(skillsDir, name)) {
			found = append(found, name)
		}
	}
	return found, nil
}
