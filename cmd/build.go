package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mlmathbook/mlmath/internal/config"
	"github.com/mlmathbook/mlmath/internal/content"
	"github.com/mlmathbook/mlmath/internal/progress"
	"github.com/mlmathbook/mlmath/internal/site"
)

var buildCmd = &cobra.Command{
	Use:   "build",
	Short: "Render the book to a static HTML site",
	Long:  `Renders every written chapter to a self-contained static site with a table-of-contents sidebar, search index, and reader script.`,
	RunE:  runBuild,
}

func init() {
	buildCmd.Flags().Bool("serve", false, "start a local HTTP server after building")
	buildCmd.Flags().Int("port", 8080, "port for the local preview server")
	buildCmd.Flags().Bool("open", false, "open browser automatically when serving")
	buildCmd.Flags().String("output", "", "override output directory")
	rootCmd.AddCommand(buildCmd)
}

func runBuild(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	outputDir, _ := cmd.Flags().GetString("output")
	if outputDir == "" {
		outputDir = cfg.OutputDir
	}

	loader := content.NewLoader(cfg.ContentDir)
	gen := site.NewGenerator(loader, outputDir)

	reporter := progress.NewReporter()
	reporter.Start(len(content.Published()))
	current := 0
	gen.OnPage = func(slug string) {
		current++
		reporter.Update(current, slug)
	}

	pageCount, err := gen.Generate()
	reporter.Finish()
	if err != nil {
		return fmt.Errorf("building site: %w", err)
	}

	fmt.Printf("Built %d chapter pages to %s\n", pageCount, outputDir)

	if serveAfter, _ := cmd.Flags().GetBool("serve"); serveAfter {
		port, _ := cmd.Flags().GetInt("port")
		open, _ := cmd.Flags().GetBool("open")
		return site.Preview(outputDir, port, open)
	}
	return nil
}
