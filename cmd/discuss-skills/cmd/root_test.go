package cmd

import (
	"os"
	"path/filepath"
	"testing"
)

func TestRootCmdFlags(t *testing.T) {
	for _, name := range []string{"verbose", "no-color", "config"} {
		if rootCmd.PersistentFlags().Lookup(name) == nil {
			t.Errorf("--%s flag not found", name)
		}
	}
}

func TestRootCmdSubcommands(t *testing.T) {
	want := []string{"install", "uninstall", "platforms", "status"}
	for _, name := range want {
		found := false
		for _, sub := range rootCmd.Commands() {
			if sub.Name() == name {
				found = true
				break
			}
		}
		if !found {
			t.Errorf("expected %q to be a subcommand", name)
		}
	}
}

func TestPlatformsAlias(t *testing.T) {
	cmd, _, err := rootCmd.Find([]string{"list"})
	if err != nil {
		t.Fatalf("Find(list) error = %v", err)
	}
	if cmd != platformsCmd {
		t.Errorf("list should resolve to platforms, got %s", cmd.Name())
	}
}

func TestInstallFlags(t *testing.T) {
	shorthands := map[string]string{"platform": "p", "target": "t", "yes": "y"}
	for name, short := range shorthands {
		f := installCmd.Flags().Lookup(name)
		if f == nil {
			t.Errorf("install --%s not found", name)
			continue
		}
		if f.Shorthand != short {
			t.Errorf("install --%s shorthand = %q, want %q", name, f.Shorthand, short)
		}
	}
	for _, name := range []string{"skip-hooks", "skip-skills"} {
		if installCmd.Flags().Lookup(name) == nil {
			t.Errorf("install --%s not found", name)
		}
	}
}

func TestUninstallFlags(t *testing.T) {
	for _, name := range []string{"platform", "keep-hooks", "keep-skills", "yes"} {
		if uninstallCmd.Flags().Lookup(name) == nil {
			t.Errorf("uninstall --%s not found", name)
		}
	}
}

func TestLoadConfigFromFlag(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	os.WriteFile(path, []byte("[install]\ninterpreter = \"python3.12\"\n"), 0644)

	old := configPath
	defer func() { configPath = old }()
	configPath = path

	cfg, err := loadConfig()
	if err != nil {
		t.Fatalf("loadConfig() error = %v", err)
	}
	if cfg.Install.Interpreter != "python3.12" {
		t.Errorf("Interpreter = %q", cfg.Install.Interpreter)
	}
}

func TestLoadConfigRejectsInvalid(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	os.WriteFile(path, []byte("[logging]\nlevel = \"loud\"\n"), 0644)

	old := configPath
	defer func() { configPath = old }()
	configPath = path

	if _, err := loadConfig(); err == nil {
		t.Error("loadConfig() should reject an invalid log level")
	}
}
