package cmd

import (
	"github.com/spf13/cobra"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show installation status for all platforms",
	Args:  cobra.NoArgs,
	RunE:  runStatus,
}

func init() {
	rootCmd.AddCommand(statusCmd)
}

func runStatus(cmd *cobra.Command, args []string) error {
	inst, cleanup, err := newInstaller(cmd)
	if err != nil {
		return err
	}
	defer cleanup()

	_, err = inst.Status()
	return err
}
