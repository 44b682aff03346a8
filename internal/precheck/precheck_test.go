package precheck

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/vibe-x-ai/discuss-skills/internal/config"
	"github.com/vibe-x-ai/discuss-skills/internal/logging"
)

func TestCheckSuccess(t *testing.T) {
	c := &CommandChecker{
		VersionCommand: `sh -c "echo Python 3.12.1"`,
		ModuleCommand:  "true",
		InstallCommand: "false",
		Logger:         logging.NewForTest(),
	}

	res := c.Check(context.Background())
	if !res.Success {
		t.Fatalf("Check() failed: %v", res.Errors)
	}
	if res.Version != "3.12.1" {
		t.Errorf("Version = %q, want 3.12.1", res.Version)
	}
	if len(res.Warnings) != 0 {
		t.Errorf("Warnings = %v, want none", res.Warnings)
	}
}

func TestCheckMissingInterpreter(t *testing.T) {
	c := &CommandChecker{
		VersionCommand: "definitely-not-a-real-binary-xyz --version",
		ModuleCommand:  "true",
	}

	res := c.Check(context.Background())
	if res.Success {
		t.Fatal("Check() should fail")
	}
	if len(res.Errors) != 1 || !strings.Contains(res.Errors[0], "definitely-not-a-real-binary-xyz") {
		t.Errorf("Errors = %v", res.Errors)
	}
}

func TestCheckInstallsMissingModule(t *testing.T) {
	marker := filepath.Join(t.TempDir(), "installed")
	c := &CommandChecker{
		VersionCommand: `sh -c "echo Python 3.11.0"`,
		ModuleCommand:  "false",
		InstallCommand: "touch " + marker,
	}

	res := c.Check(context.Background())
	if !res.Success {
		t.Fatalf("Check() failed: %v", res.Errors)
	}
	if len(res.Warnings) != 1 {
		t.Errorf("Warnings = %v, want one", res.Warnings)
	}
	if _, err := os.Stat(marker); err != nil {
		t.Errorf("install command did not run: %v", err)
	}
}

func TestCheckInstallFails(t *testing.T) {
	c := &CommandChecker{
		VersionCommand: "true",
		ModuleCommand:  "false",
		InstallCommand: "false",
	}

	res := c.Check(context.Background())
	if res.Success {
		t.Fatal("Check() should fail")
	}
	if len(res.Errors) != 1 || !strings.Contains(res.Errors[0], "install manually") {
		t.Errorf("Errors = %v", res.Errors)
	}
}

func TestCheckNoInstallCommand(t *testing.T) {
	c := &CommandChecker{ModuleCommand: "false"}

	res := c.Check(context.Background())
	if res.Success {
		t.Error("Check() should fail without an install command")
	}
}

func TestCheckEmptyCommandsSucceed(t *testing.T) {
	res := (&CommandChecker{}).Check(context.Background())
	if !res.Success {
		t.Errorf("Check() = %+v", res)
	}
}

func TestCheckTimeout(t *testing.T) {
	c := &CommandChecker{
		VersionCommand: "sleep 5",
		Timeout:        50 * time.Millisecond,
	}

	start := time.Now()
	res := c.Check(context.Background())
	if res.Success {
		t.Error("Check() should fail on timeout")
	}
	if time.Since(start) > 3*time.Second {
		t.Errorf("timeout not applied, took %v", time.Since(start))
	}
}

func TestCheckUnbalancedQuotes(t *testing.T) {
	c := &CommandChecker{VersionCommand: `python3 -c "import yaml`}

	if res := c.Check(context.Background()); res.Success {
		t.Error("Check() should fail for an unparseable command")
	}
}

func TestNewCommandCheckerFromConfig(t *testing.T) {
	cfg := config.Default()
	c := NewCommandChecker(cfg.Precheck, nil)

	if c.VersionCommand != "python3 --version" {
		t.Errorf("VersionCommand = %q", c.VersionCommand)
	}
	if c.Timeout != 2*time.Minute {
		t.Errorf("Timeout = %v", c.Timeout)
	}
}

func TestParseVersion(t *testing.T) {
	tests := map[string]string{
		"Python 3.12.1\n":        "3.12.1",
		"3.9.0":                  "3.9.0",
		"Python 3.10.4\nextra\n": "3.10.4",
		"":                       "",
	}
	for in, want := range tests {
		if got := parseVersion(in); got != want {
			t.Errorf("parseVersion(%q) = %q, want %q", in, got, want)
		}
	}
}
