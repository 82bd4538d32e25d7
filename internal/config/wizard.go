package config

import (
	"fmt"
	"strconv"

	"github.com/manifoldco/promptui"
)

// RunWizard runs an interactive configuration wizard and returns the
// resulting Config. It also saves the config to .mlmath.yml.
func RunWizard() (*Config, error) {
	fmt.Println("Welcome to mlmath! Let's configure your book.")
	fmt.Println()

	cfg := DefaultConfig()

	contentPrompt := promptui.Prompt{
		Label:   "Content directory (chapter markdown)",
		Default: cfg.ContentDir,
	}
	contentDir, err := contentPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("content dir: %w", err)
	}
	cfg.ContentDir = contentDir

	portPrompt := promptui.Prompt{
		Label:   "Server port",
		Default: strconv.Itoa(cfg.Server.Port),
		Validate: func(s string) error {
			n, err := strconv.Atoi(s)
			if err != nil || n < 1 || n > 65535 {
				return fmt.Errorf("enter a port between 1 and 65535")
			}
			return nil
		},
	}
	portStr, err := portPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("port: %w", err)
	}
	cfg.Server.Port, _ = strconv.Atoi(portStr)

	baseURLPrompt := promptui.Prompt{
		Label:   "Public base URL",
		Default: fmt.Sprintf("http://localhost:%d", cfg.Server.Port),
	}
	baseURL, err := baseURLPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("base url: %w", err)
	}
	cfg.Server.BaseURL = baseURL

	scrollPrompt := promptui.Select{
		Label: "Scroll behavior",
		Items: []string{
			"smooth  — 800ms eased animation",
			"instant — jump straight to the target",
		},
	}
	scrollIdx, _, err := scrollPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("scroll behavior: %w", err)
	}
	if scrollIdx == 1 {
		cfg.Scroll.DurationMS = 0
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	configPath := ".mlmath.yml"
	if err := cfg.Save(configPath); err != nil {
		return nil, fmt.Errorf("saving config: %w", err)
	}

	fmt.Printf("\nConfiguration saved to %s\n", configPath)
	return cfg, nil
}
