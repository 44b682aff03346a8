package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"

	serrors "github.com/vibe-x-ai/discuss-skills/internal/errors"
	"github.com/vibe-x-ai/discuss-skills/internal/paths"
)

// FileName is the config file name under the base directory.
const FileName = "config.toml"

// LogLevel specifies the logging verbosity.
type LogLevel string

const (
	LogLevelDebug LogLevel = "debug"
	LogLevelInfo  LogLevel = "info"
	LogLevelWarn  LogLevel = "warn"
	LogLevelError LogLevel = "error"
)

// LogFormat specifies the log output format.
type LogFormat string

const (
	LogFormatJSON LogFormat = "json"
	LogFormatText LogFormat = "text"
)

// PathsConfig holds the locations of the shipped assets.
// Relative paths resolve against PackageRoot.
type PathsConfig struct {
	// PackageRoot is where dist/, hooks/ and guidance/ live.
	// Empty means the directory of the running executable.
	PackageRoot  string `toml:"package_root"`
	DistDir      string `toml:"dist_dir"`
	HooksSrc     string `toml:"hooks_src"`
	GuidanceFile string `toml:"guidance_file"`
}

// InstallConfig holds what gets installed.
type InstallConfig struct {
	// Skills lists bundle names copied from dist/<platform>/.
	Skills []string `toml:"skills"`

	// Interpreter runs the session-end hook script.
	Interpreter string `toml:"interpreter"`

	// HookScript is the check script path relative to the hooks dir.
	HookScript string `toml:"hook_script"`
}

// PrecheckConfig holds the environment check commands.
type PrecheckConfig struct {
	VersionCommand string        `toml:"version_command"`
	ModuleCommand  string        `toml:"module_command"`
	InstallCommand string        `toml:"install_command"`
	Timeout        time.Duration `toml:"timeout"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level  LogLevel  `toml:"level"`
	Format LogFormat `toml:"format"`
	File   string    `toml:"file"`
}

// Config is the main configuration struct.
type Config struct {
	Version  string         `toml:"version"`
	Paths    PathsConfig    `toml:"paths"`
	Install  InstallConfig  `toml:"install"`
	Precheck PrecheckConfig `toml:"precheck"`
	Logging  LoggingConfig  `toml:"logging"`
}

// Default returns a Config with sensible defaults.
func Default() *Config {
	return &Config{
		Version: "1",
		Paths: PathsConfig{
			PackageRoot:  "",
			DistDir:      "dist",
			HooksSrc:     "hooks",
			GuidanceFile: filepath.Join("guidance", "l1-guidance.md"),
		},
		Install: InstallConfig{
			Skills:      []string{"discuss-for-specs"},
			Interpreter: "python3",
			HookScript:  filepath.Join("stop", "check_precipitation.py"),
		},
		Precheck: PrecheckConfig{
			VersionCommand: "python3 --version",
			ModuleCommand:  `python3 -c "import yaml"`,
			InstallCommand: "pip3 install pyyaml",
			Timeout:        2 * time.Minute,
		},
		Logging: LoggingConfig{
			Level:  LogLevelWarn,
			Format: LogFormatText,
			File:   "",
		},
	}
}

// Load loads configuration from file, merging with defaults.
func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil // Use defaults if no config file
		}
		return nil, fmt.Errorf("reading config: %w", err)
	}

	if _, err := toml.Decode(string(data), cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	return cfg, nil
}

// LoadFromDir loads configuration from the standard locations.
// Applies in order: defaults -> ~/.discuss-for-specs/config.toml -> <dir>/.discuss-for-specs/config.toml
// Later configs override earlier ones (project-level takes precedence).
func LoadFromDir(dir string) (*Config, error) {
	cfg := Default()

	if base, err := paths.BaseDir(); err == nil {
		globalConfig := filepath.Join(base, FileName)
		if data, err := os.ReadFile(globalConfig); err == nil {
			if _, err := toml.Decode(string(data), cfg); err != nil {
				return nil, fmt.Errorf("parsing global config: %w", err)
			}
		}
	}

	if dir != "" {
		projectConfig := filepath.Join(dir, paths.BaseDirName, FileName)
		if data, err := os.ReadFile(projectConfig); err == nil {
			if _, err := toml.Decode(string(data), cfg); err != nil {
				return nil, fmt.Errorf("parsing project config: %w", err)
			}
		}
	}

	return cfg, nil
}

// Validate checks that the configuration is valid.
func (c *Config) Validate() error {
	if c.Version == "" {
		return serrors.ConfigMissingField("version")
	}
	if len(c.Install.Skills) == 0 {
		return serrors.ConfigMissingField("install.skills")
	}
	if c.Install.Interpreter == "" {
		return serrors.ConfigMissingField("install.interpreter")
	}
	if c.Install.HookScript == "" {
		return serrors.ConfigMissingField("install.hook_script")
	}
	switch c.Logging.Level {
	case LogLevelDebug, LogLevelInfo, LogLevelWarn, LogLevelError:
	default:
		return serrors.ConfigInvalidValue("logging.level", c.Logging.Level, "must be debug, info, warn or error")
	}
	switch c.Logging.Format {
	case LogFormatJSON, LogFormatText:
	default:
		return serrors.ConfigInvalidValue("logging.format", c.Logging.Format, "must be json or text")
	}
	if c.Precheck.Timeout < 0 {
		return serrors.ConfigInvalidValue("precheck.timeout", c.Precheck.Timeout.String(), "must not be negative")
	}
	return nil
}

// PackageRoot returns the absolute directory holding the shipped assets.
func (c *Config) PackageRoot() (string, error) {
	if c.Paths.PackageRoot != "" {
		return paths.ResolveDir(c.Paths.PackageRoot)
	}
	return paths.ExecutableDir()
}

// DistDir returns the absolute prebuilt bundle directory.
func (c *Config) DistDir(packageRoot string) string {
	return resolve(packageRoot, c.Paths.DistDir)
}

// HooksSrc returns the absolute hook script source directory.
func (c *Config) HooksSrc(packageRoot string) string {
	return resolve(packageRoot, c.Paths.HooksSrc)
}

// GuidanceFile returns the absolute guidance fragment path.
func (c *Config) GuidanceFile(packageRoot string) string {
	return resolve(packageRoot, c.Paths.GuidanceFile)
}

// LogFile returns the absolute log file path, relative paths resolving
// against baseDir.
func (c *Config) LogFile(baseDir string) string {
	return resolve(baseDir, c.Logging.File)
}

func resolve(base, p string) string {
	p = paths.ExpandPath(p)
	if filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(base, p)
}
