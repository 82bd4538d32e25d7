package cmd

import (
	"github.com/spf13/cobra"

	"github.com/mlmathbook/mlmath/internal/config"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize mlmath configuration with an interactive wizard",
	Long:  `Runs an interactive wizard to configure mlmath for your book and generates a .mlmath.yml file.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		_, err := config.RunWizard()
		return err
	},
}

func init() {
	rootCmd.AddCommand(initCmd)
}
