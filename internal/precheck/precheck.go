// Package precheck verifies that the interpreter the hook scripts need is
// available before anything is installed.
package precheck

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"os/exec"
	"strings"
	"time"

	"github.com/mattn/go-shellwords"

	"github.com/vibe-x-ai/discuss-skills/internal/config"
	"github.com/vibe-x-ai/discuss-skills/internal/logging"
)

// Result is the outcome of an environment check.
type Result struct {
	Success  bool
	Version  string
	Errors   []string
	Warnings []string

	// Details are progress lines for the caller to display.
	Details []string
}

// Checker checks the environment.
type Checker interface {
	Check(ctx context.Context) Result
}

// CommandChecker runs configured commands: a version probe, a module
// import probe, and an install command used when the module is missing.
type CommandChecker struct {
	VersionCommand string
	ModuleCommand  string
	InstallCommand string

	// Timeout bounds each command. Zero means no limit.
	Timeout time.Duration

	Logger *slog.Logger
}

// NewCommandChecker creates a CommandChecker from configuration.
func NewCommandChecker(cfg config.PrecheckConfig, logger *slog.Logger) *CommandChecker {
	return &CommandChecker{
		VersionCommand: cfg.VersionCommand,
		ModuleCommand:  cfg.ModuleCommand,
		InstallCommand: cfg.InstallCommand,
		Timeout:        cfg.Timeout,
		Logger:         logger,
	}
}

// Check runs the probes in order. A failed version probe stops the
// check. A failed module probe is a warning when the install command
// then succeeds, and an error otherwise. Empty commands are skipped.
func (c *CommandChecker) Check(ctx context.Context) Result {
	log := logging.OrDiscard(c.Logger)
	res := Result{Success: true}

	if c.VersionCommand != "" {
		out, err := c.run(ctx, c.VersionCommand)
		if err != nil {
			log.Debug("version probe failed", "command", c.VersionCommand, "error", err)
			res.Success = false
			res.Errors = append(res.Errors, fmt.Sprintf("%s is not installed or not in PATH", program(c.VersionCommand)))
			return res
		}
		res.Version = parseVersion(out)
		res.Details = append(res.Details, fmt.Sprintf("%s %s detected", program(c.VersionCommand), res.Version))
	}

	if c.ModuleCommand == "" {
		return res
	}
	if _, err := c.run(ctx, c.ModuleCommand); err == nil {
		res.Details = append(res.Details, "required modules are installed")
		return res
	}

	res.Warnings = append(res.Warnings, "required module is not installed")
	if c.InstallCommand == "" {
		res.Success = false
		res.Errors = append(res.Errors, fmt.Sprintf("required module missing: %s failed", c.ModuleCommand))
		return res
	}

	res.Details = append(res.Details, "required module missing, attempting to install...")
	if _, err := c.run(ctx, c.InstallCommand); err != nil {
		log.Debug("install command failed", "command", c.InstallCommand, "error", err)
		res.Success = false
		res.Errors = append(res.Errors, fmt.Sprintf("failed to install required module. Please install manually: %s", c.InstallCommand))
		return res
	}
	res.Details = append(res.Details, "required module installed successfully")
	return res
}

// run executes command without a shell and returns its combined output.
func (c *CommandChecker) run(ctx context.Context, command string) (string, error) {
	args, err := shellwords.Parse(command)
	if err != nil {
		return "", fmt.Errorf("parsing command %q: %w", command, err)
	}
	if len(args) == 0 {
		return "", fmt.Errorf("empty command")
	}

	if c.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.Timeout)
		defer cancel()
	}

	cmd := exec.CommandContext(ctx, args[0], args[1:]...)
	var out bytes.Buffer
	cmd.Stdout = &out
	cmd.Stderr = &out

	if err := cmd.Run(); err != nil {
		if ctx.Err() != nil {
			return out.String(), ctx.Err()
		}
		return out.String(), err
	}
	return out.String(), nil
}

// program returns the first word of command.
func program(command string) string {
	if fields := strings.Fields(command); len(fields) > 0 {
		return fields[0]
	}
	return command
}

// parseVersion turns "Python 3.12.1\n" into "3.12.1".
func parseVersion(out string) string {
	out = strings.TrimSpace(out)
	if i := strings.IndexByte(out, '\n'); i >= 0 {
		out = out[:i]
	}
	if fields := strings.Fields(out); len(fields) > 1 {
		return fields[len(fields)-1]
	}
	return out
}
