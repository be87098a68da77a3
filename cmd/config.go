package cmd

import (
	"fmt"
	"strconv"
	"strings"

	"courseplanner/pkg/config"
	"courseplanner/pkg/tui"

	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage courseplanner configuration",
	Long:  "View or edit your local configuration settings (default course source, placeholder title, accent color).",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return err
		}

		flags := cmd.Flags()
		if !flags.Changed("set-source") && !flags.Changed("set-accent") && !flags.Changed("set-placeholder") && !flags.Changed("show") {
			// No flags: launch the interactive settings flow
			return tui.RunConfigTUI()
		}

		if flags.Changed("set-source") {
			source, _ := flags.GetString("set-source")
			cfg.DefaultSource = strings.TrimSpace(source)
		}

		if flags.Changed("set-accent") {
			accent, _ := flags.GetString("set-accent")
			if err := validateAccent(accent); err != nil {
				return err
			}
			cfg.AccentColor = accent
		}

		if flags.Changed("set-placeholder") {
			placeholder, _ := flags.GetString("set-placeholder")
			cfg.PlaceholderTitle = strings.TrimSpace(placeholder)
		}

		if flags.Changed("set-source") || flags.Changed("set-accent") || flags.Changed("set-placeholder") {
			if err := config.Save(cfg); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "✅ Configuration saved.")
		}

		if show, _ := flags.GetBool("show"); show {
			fmt.Fprintln(cmd.OutOrStdout(), tui.FormatConfig(cfg))
		}
		return nil
	},
}

// validateAccent accepts an ANSI 256 color number or a #RRGGBB hex code.
func validateAccent(accent string) error {
	if strings.HasPrefix(accent, "#") {
		return tui.ValidateHexColor(accent)
	}
	n, err := strconv.Atoi(accent)
	if err != nil || n < 0 || n > 255 {
		return fmt.Errorf("accent color must be an ANSI color number (0-255) or a hex code like #FF00FF, got '%s'", accent)
	}
	return nil
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.Flags().String("set-source", "", "Set the default course data source")
	configCmd.Flags().String("set-accent", "", "Set the accent color (ANSI number or #RRGGBB)")
	configCmd.Flags().String("set-placeholder", "", "Set the title shown for prerequisites missing from the catalog")
	configCmd.Flags().Bool("show", false, "Print the current configuration")
}
