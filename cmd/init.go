package cmd

import (
	"github.com/spf13/cobra"

	"github.com/ziadkadry99/studymate/internal/config"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create a studymate configuration with an interactive wizard",
	Long:  `Asks for the StudyMate server address, a default theme and a data directory, then writes them to the config file.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		_, err := config.RunWizard(cfgFile)
		return err
	},
}

func init() {
	rootCmd.AddCommand(initCmd)
}
