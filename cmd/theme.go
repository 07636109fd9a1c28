package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ROHANDEV-web/school-assistant/internal/config"
)

var themeCmd = &cobra.Command{
	Use:   "theme [light|dark|toggle]",
	Short: "Show or change the persisted color theme",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(cfgFile)
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}

		if len(args) == 0 {
			fmt.Printf("Current theme: %s\n", cfg.Client.Theme)
			return nil
		}

		switch args[0] {
		case "light":
			cfg.Client.Theme = config.ThemeLight
		case "dark":
			cfg.Client.Theme = config.ThemeDark
		case "toggle":
			cfg.Client.Theme = cfg.Client.Theme.Toggle()
		default:
			return fmt.Errorf("unknown theme %q: use light, dark or toggle", args[0])
		}

		if err := cfg.Save(cfgFile); err != nil {
			return fmt.Errorf("saving config: %w", err)
		}
		fmt.Printf("Theme set to %s.\n", cfg.Client.Theme)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(themeCmd)
}
