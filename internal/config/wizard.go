package config

import (
	"fmt"
	"strconv"

	"github.com/manifoldco/promptui"
)

// RunWizard asks for the settings people usually change and saves the
// result to path.
func RunWizard(path string) (*Config, error) {
	fmt.Println("Welcome to efpview! Let's configure the widget service.")
	fmt.Println()

	cfg := DefaultConfig()

	// 1. BAR host.
	barPrompt := promptui.Prompt{
		Label:   "BAR base URL",
		Default: cfg.BarURL,
	}
	barURL, err := barPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("bar url: %w", err)
	}
	cfg.BarURL = barURL

	// 2. Port.
	portPrompt := promptui.Prompt{
		Label:   "Port to serve widgets on",
		Default: strconv.Itoa(cfg.Port),
		Validate: func(s string) error {
			n, err := strconv.Atoi(s)
			if err != nil || n < 0 || n > 65535 {
				return fmt.Errorf("not a port: %q", s)
			}
			return nil
		},
	}
	portStr, err := portPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("port: %w", err)
	}
	cfg.Port, _ = strconv.Atoi(portStr)

	// 3. Log format.
	formatPrompt := promptui.Select{
		Label: "Select log format",
		Items: []string{
			"console — human readable",
			"json    — one JSON object per line",
		},
	}
	formatIdx, _, err := formatPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("log format selection: %w", err)
	}
	cfg.LogFormat = []LogFormat{LogFormatConsole, LogFormatJSON}[formatIdx]

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	if err := cfg.Save(path); err != nil {
		return nil, fmt.Errorf("saving config: %w", err)
	}

	fmt.Printf("\nConfiguration saved to %s\n", path)
	return cfg, nil
}
