package cmd

import (
	"github.com/spf13/cobra"

	"github.com/vibe-x-ai/discuss-skills/internal/installer"
)

var (
	installPlatform   string
	installTarget     string
	installSkipHooks  bool
	installSkipSkills bool
	installYes        bool
)

var installCmd = &cobra.Command{
	Use:   "install",
	Short: "Install skills and hooks to your environment",
	Long: `Install the discuss-for-specs skills and session-end hook.

Platform Options:
  Skills + Hooks (auto-reminder support):
    claude-code   ~/.claude/skills/
    cursor        ~/.cursor/skills/

  Skills only (manual precipitation):
    kilocode      ~/.kilocode/skills/
    opencode      ~/.opencode/skill/
    codex         ~/.codex/skills/

Hooks are always installed globally, also with --target.

Examples:
  # Auto-detect platform
  discuss-skills install

  # Install for Claude Code
  discuss-skills install -p claude-code

  # Install skills into a project directory
  discuss-skills install -t ./my-project`,
	Args: cobra.NoArgs,
	RunE: runInstall,
}

func init() {
	installCmd.Flags().StringVarP(&installPlatform, "platform", "p", "", "target platform (claude-code, cursor, kilocode, opencode, codex)")
	installCmd.Flags().StringVarP(&installTarget, "target", "t", "", "target project directory (default: global installation)")
	installCmd.Flags().BoolVar(&installSkipHooks, "skip-hooks", false, "skip hooks installation")
	installCmd.Flags().BoolVar(&installSkipSkills, "skip-skills", false, "skip skills installation")
	installCmd.Flags().BoolVarP(&installYes, "yes", "y", false, "skip confirmation prompts")
	rootCmd.AddCommand(installCmd)
}

func runInstall(cmd *cobra.Command, args []string) error {
	inst, cleanup, err := newInstaller(cmd)
	if err != nil {
		return err
	}
	defer cleanup()

	_, err = inst.Install(commandContext(cmd), installer.InstallOptions{
		Platform:   installPlatform,
		Target:     installTarget,
		SkipHooks:  installSkipHooks,
		SkipSkills: installSkipSkills,
		Yes:        installYes,
	})
	return err
}
