package cmd

import (
	"github.com/spf13/cobra"
)

var platformsCmd = &cobra.Command{
	Use:     "platforms",
	Aliases: []string{"list"},
	Short:   "List supported platforms and their detection status",
	Long: `List every supported platform, whether it is detected on this
machine, its capability tier and its configuration directory.`,
	Args: cobra.NoArgs,
	RunE: runPlatforms,
}

func init() {
	rootCmd.AddCommand(platformsCmd)
}

func runPlatforms(cmd *cobra.Command, args []string) error {
	inst, cleanup, err := newInstaller(cmd)
	if err != nil {
		return err
	}
	defer cleanup()

	return inst.Platforms()
}
