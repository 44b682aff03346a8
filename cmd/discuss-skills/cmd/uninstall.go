package cmd

import (
	"github.com/spf13/cobra"

	"github.com/vibe-x-ai/discuss-skills/internal/installer"
)

var (
	uninstallPlatform   string
	uninstallKeepHooks  bool
	uninstallKeepSkills bool
	uninstallYes        bool
)

var uninstallCmd = &cobra.Command{
	Use:   "uninstall",
	Short: "Remove skills and hooks from your environment",
	Long: `Remove the discuss-for-specs skills, hook scripts and hook registration.

Skills installed into project directories with install --target are
removed too. The logs directory is kept.

Examples:
  # Auto-detect and uninstall
  discuss-skills uninstall

  # Uninstall from Cursor
  discuss-skills uninstall -p cursor

  # Remove skills only
  discuss-skills uninstall --keep-hooks`,
	Args: cobra.NoArgs,
	RunE: runUninstall,
}

func init() {
	uninstallCmd.Flags().StringVarP(&uninstallPlatform, "platform", "p", "", "target platform (claude-code, cursor, kilocode, opencode, codex)")
	uninstallCmd.Flags().BoolVar(&uninstallKeepHooks, "keep-hooks", false, "keep hooks but remove skills")
	uninstallCmd.Flags().BoolVar(&uninstallKeepSkills, "keep-skills", false, "keep skills but remove hooks")
	uninstallCmd.Flags().BoolVarP(&uninstallYes, "yes", "y", false, "skip confirmation prompts")
	rootCmd.AddCommand(uninstallCmd)
}

func runUninstall(cmd *cobra.Command, args []string) error {
	inst, cleanup, err := newInstaller(cmd)
	if err != nil {
		return err
	}
	defer cleanup()

	_, err = inst.Uninstall(commandContext(cmd), installer.UninstallOptions{
		Platform:   uninstallPlatform,
		KeepHooks:  uninstallKeepHooks,
		KeepSkills: uninstallKeepSkills,
		Yes:        uninstallYes,
	})
	return err
}
