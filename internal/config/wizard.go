package config

import (
	"fmt"
	"net/url"

	"github.com/manifoldco/promptui"
)

// ThemeChoices lists the selectable themes in display order.
var ThemeChoices = []string{"purple", "midnight", "soft"}

// RunWizard runs an interactive configuration wizard, saves the result to
// path and returns it.
func RunWizard(path string) (*Config, error) {
	fmt.Println("Welcome to StudyMate! Let's point the client at your server.")
	fmt.Println()

	cfg := DefaultConfig()

	// 1. Server URL.
	serverPrompt := promptui.Prompt{
		Label:    "StudyMate server URL",
		Default:  cfg.ServerURL,
		Validate: validateURL,
	}
	serverURL, err := serverPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("server url: %w", err)
	}
	cfg.ServerURL = serverURL

	// 2. Default theme.
	themePrompt := promptui.Select{
		Label: "Default theme",
		Items: ThemeChoices,
	}
	_, themeName, err := themePrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("theme selection: %w", err)
	}
	cfg.DefaultTheme = themeName

	// 3. Data directory.
	dataPrompt := promptui.Prompt{
		Label:   "Data directory (preferences and logs)",
		Default: cfg.DataDir,
	}
	dataDir, err := dataPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("data dir: %w", err)
	}
	cfg.DataDir = dataDir

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if err := cfg.Save(path); err != nil {
		return nil, fmt.Errorf("saving config: %w", err)
	}

	fmt.Printf("\nConfiguration saved to %s\n", path)
	return cfg, nil
}

func validateURL(s string) error {
	u, err := url.Parse(s)
	if err != nil {
		return err
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("scheme must be http or https")
	}
	if u.Host == "" {
		return fmt.Errorf("missing host")
	}
	return nil
}
