// Package hooks merges the session-end hook registration into, and removes
// it from, host settings files that other tools and the user also edit.
package hooks

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	serrors "github.com/vibe-x-ai/discuss-skills/internal/errors"
	"github.com/vibe-x-ai/discuss-skills/internal/logging"
	"github.com/vibe-x-ai/discuss-skills/internal/platform"
)

// BackupSuffix is appended to a settings file that could not be parsed
// before it is replaced on install.
const BackupSuffix = ".bak"

// Result describes what Install or Remove did.
type Result struct {
	// Path is the settings file. Empty when Applied is false.
	Path string

	// Applied is false when the platform has no hook support, in which
	// case nothing was read or written.
	Applied bool

	// Changed is true when the file was written.
	Changed bool

	// Recovered is true when an unparseable settings file was replaced
	// by a fresh document during install.
	Recovered bool

	// Lenient is true when the settings file only parsed as JSON5 and
	// was rewritten as plain JSON during install, losing its comments.
	Lenient bool

	// BackupPath holds the copy of a replaced or rewritten file, if one
	// was made.
	BackupPath string
}

// Command returns the hook command line that runs script from hooksDir.
func Command(interpreter, hooksDir, script string) string {
	return fmt.Sprintf("%s %s", interpreter, filepath.Join(hooksDir, script))
}

// Merger installs and removes the hook entry for registry platforms.
type Merger struct {
	registry *platform.Registry
	command  string
	logger   *slog.Logger
}

// NewMerger creates a Merger that registers command. The command must
// contain Marker so Remove can find it again.
func NewMerger(registry *platform.Registry, command string, logger *slog.Logger) *Merger {
	return &Merger{
		registry: registry,
		command:  command,
		logger:   logging.OrDiscard(logger),
	}
}

// applicable resolves id and returns its descriptor and settings path.
// ok is false for platforms without hook support.
func (m *Merger) applicable(id string) (d platform.Descriptor, path string, ok bool, err error) {
	d, err = m.registry.Resolve(id)
	if err != nil {
		return d, "", false, err
	}
	if !d.SupportsHook() || d.HooksFormat == platform.FormatNone {
		return d, "", false, nil
	}
	path, ok, err = m.registry.SettingsPath(id)
	return d, path, ok, err
}

// Install merges the hook entry into the platform's settings file.
//
// An existing file that cannot be parsed is backed up and replaced by a
// document holding only the hook; Result.Recovered reports this so the
// caller can warn. Unrelated keys, and unrelated entries under the owned
// event key, are preserved. Running Install twice yields the same file.
func (m *Merger) Install(id string) (Result, error) {
	d, path, ok, err := m.applicable(id)
	if err != nil || !ok {
		return Result{}, err
	}

	log := logging.WithPlatform(m.logger, id).With("path", path)
	res := Result{Path: path, Applied: true}

	doc := document{}
	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		parsed, lenient, perr := parseDocument(data)
		if perr != nil {
			backup := path + BackupSuffix
			if werr := os.WriteFile(backup, data, 0644); werr != nil {
				log.Warn("could not back up unreadable settings", "error", werr)
			} else {
				res.BackupPath = backup
			}
			log.Warn("settings file unreadable, replacing it", "error", perr, "backup", res.BackupPath)
			res.Recovered = true
		} else {
			doc = parsed
			if lenient {
				res.Lenient = true
				backup := path + BackupSuffix
				if werr := os.WriteFile(backup, data, 0644); werr != nil {
					log.Warn("could not back up settings", "error", werr)
				} else {
					res.BackupPath = backup
				}
				log.Warn("settings file uses JSON5 syntax, rewriting it as JSON", "backup", res.BackupPath)
			}
		}
	case os.IsNotExist(err):
		log.Debug("settings file absent, creating it")
	default:
		return Result{}, serrors.IOReadError(path, err)
	}

	hooks := object(doc["hooks"])
	if hooks == nil {
		if _, present := doc["hooks"]; present {
			log.Warn("settings hooks value is not an object, replacing it")
		}
		hooks = map[string]any{}
	}

	for _, event := range ownedEvents(d.HooksFormat) {
		entries, ok := entriesOf(hooks[event])
		if !ok {
			log.Warn("settings event value is not a list, replacing it", "event", event)
		}
		kept, _ := withoutOwned(entries)
		hooks[event] = append(kept, newEntry(d.HooksFormat, m.command))
	}
	doc["hooks"] = hooks

	if d.HooksFormat == platform.FormatCursor {
		if _, present := doc["version"]; !present {
			doc["version"] = cursorSchemaVersion
		}
	}

	if err := writeDocument(path, doc); err != nil {
		if errors.Is(err, fs.ErrPermission) {
			return Result{}, serrors.IOPermissionDenied(path, err)
		}
		return Result{}, serrors.IOWriteError(path, err)
	}
	res.Changed = true
	log.Debug("hook registered")
	return res, nil
}

// Remove deletes our hook entries from the platform's settings file,
// dropping event keys and the hooks object once they are empty.
//
// Read, parse and write failures are logged and swallowed, leaving the
// file as found: uninstall must succeed against corrupted settings.
// The only error returned is an unknown platform id.
func (m *Merger) Remove(id string) (Result, error) {
	d, path, ok, err := m.applicable(id)
	if err != nil || !ok {
		return Result{}, err
	}

	log := logging.WithPlatform(m.logger, id).With("path", path)
	res := Result{Path: path, Applied: true}

	data, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			log.Debug("settings unreadable, leaving it", "error", err)
		}
		return res, nil
	}

	doc, lenient, err := parseDocument(data)
	if err != nil {
		log.Debug("settings unparseable, leaving it", "error", err)
		return res, nil
	}
	if lenient {
		// Writing back would drop the user's comments.
		log.Debug("settings use JSON5 syntax, leaving it")
		return res, nil
	}

	hooks := object(doc["hooks"])
	if hooks == nil {
		return res, nil
	}

	changed := false
	for _, event := range ownedEvents(d.HooksFormat) {
		entries, ok := entriesOf(hooks[event])
		if !ok {
			continue
		}
		kept, dropped := withoutOwned(entries)
		if !dropped {
			continue
		}
		changed = true
		if len(kept) == 0 {
			delete(hooks, event)
		} else {
			hooks[event] = kept
		}
	}
	if !changed {
		return res, nil
	}
	if len(hooks) == 0 {
		delete(doc, "hooks")
	}

	if err := writeDocument(path, doc); err != nil {
		log.Debug("could not write settings, leaving it", "error", err)
		return res, nil
	}
	res.Changed = true
	log.Debug("hook unregistered")
	return res, nil
}

// Installed reports whether the platform's settings file currently holds
// our hook entry. Platforms without hook support report false.
func (m *Merger) Installed(id string) (bool, error) {
	d, path, ok, err := m.applicable(id)
	if err != nil || !ok {
		return false, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, serrors.IOReadError(path, err)
	}

	doc, _, err := parseDocument(data)
	if err != nil {
		return false, nil
	}
	hooks := object(doc["hooks"])
	for _, event := range ownedEvents(d.HooksFormat) {
		if entries, _ := entriesOf(hooks[event]); hasOwned(entries) {
			return true, nil
		}
	}
	return false, nil
}
