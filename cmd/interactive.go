package cmd

import (
	"os"

	"courseplanner/pkg/shell"
	"courseplanner/pkg/tui"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
)

var interactiveCmd = &cobra.Command{
	Use:   "interactive",
	Short: "Launch the interactive TUI",
	Long: `Launch the form-based Text User Interface to load a catalog, list courses and look up prerequisites.

When stdin is not a terminal (piped input, CI) the numbered menu is used instead.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if !isatty.IsTerminal(os.Stdin.Fd()) && !isatty.IsCygwinTerminal(os.Stdin.Fd()) {
			log().Debug("stdin is not a terminal, using the numbered menu")
			return runShell(cmd)
		}

		cfg := loadConfig()
		session := shell.NewSession(cfg.PlaceholderTitle)

		return tui.RunTUI(cmd.Context(), session, tui.Options{
			DefaultSource: cfg.DefaultSource,
			Logger:        log(),
			Out:           cmd.OutOrStdout(),
			ErrOut:        cmd.ErrOrStderr(),
			LoaderOptions: loaderOptions(),
			OnLoad:        rememberSource(cfg),
		})
	},
}

func init() {
	rootCmd.AddCommand(interactiveCmd)
}
