package cmd

import (
	"github.com/spf13/cobra"
)

var (
	cfgFile string
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "mlmath",
	Short: "Interactive mathematics book for machine learning",
	Long: `mlmath serves an interactive mathematics book with scroll-position
section tracking, smooth in-page navigation, and keyboard shortcuts.
It can also render the book to a static HTML site and expose chapter
content to AI agents over MCP.`,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", ".mlmath.yml", "config file path")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}