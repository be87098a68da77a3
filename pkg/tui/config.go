package tui

import (
	"fmt"
	"strings"

	"courseplanner/pkg/catalog"
	"courseplanner/pkg/config"
	"courseplanner/pkg/loader"
	"courseplanner/pkg/report"

	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
)

// RunConfigTUI launches the interactive experience for managing configurations
func RunConfigTUI() error {
	for {
		cfg, err := config.Load()
		if err != nil {
			return err
		}

		var action string

		initialForm := huh.NewForm(
			huh.NewGroup(
				huh.NewSelect[string]().
					Title("Configuration Settings").
					Options(
						huh.NewOption("Set Accent Color (Theme)", "theme"),
						huh.NewOption("Set Default Course Source", "source"),
						huh.NewOption("Set Missing Title Placeholder", "placeholder"),
						huh.NewOption("View Current Config", "view"),
						huh.NewOption("Back", "back"),
					).
					Value(&action),
			),
		).WithTheme(GetTheme())

		if err := initialForm.Run(); err != nil {
			return err
		}

		switch action {
		case "back":
			return nil
		case "theme":
			err = runSetThemeTUI(cfg)
		case "source":
			err = runSetSourceTUI(cfg)
		case "placeholder":
			err = runSetPlaceholderTUI(cfg)
		case "view":
			fmt.Println(FormatConfig(cfg))
		}

		if err != nil {
			return err
		}
	}
}

// FormatConfig renders cfg for display.
func FormatConfig(cfg *config.AppConfig) string {
	var b strings.Builder

	b.WriteString(accentStyle.Render("--- Current Configuration (~/.courseplanner.json) ---"))
	b.WriteString("\n")

	if cfg.DefaultSource == "" {
		b.WriteString("Default Source: Not set\n")
	} else {
		fmt.Fprintf(&b, "Default Source: %s\n", cfg.DefaultSource)
	}

	placeholder := cfg.PlaceholderTitle
	if placeholder == "" {
		placeholder = report.DefaultPlaceholder
	}
	fmt.Fprintf(&b, "Missing Title Placeholder: %s\n", placeholder)

	fmt.Fprintf(&b, "Accent Color: %s\n", accentOf(cfg))
	fmt.Fprintf(&b, "Recent Sources: %d\n", len(cfg.RecentSources))
	for _, s := range cfg.RecentSources {
		fmt.Fprintf(&b, "  • %s\n", s)
	}

	return b.String()
}

func runSetSourceTUI(cfg *config.AppConfig) error {
	input := cfg.DefaultSource

	var options []huh.Option[string]
	for _, s := range reloadableSources(cfg.RecentSources) {
		options = append(options, huh.NewOption(s, s))
	}

	if len(options) > 0 {
		options = append(options, huh.NewOption("✨ Enter a new source", ""))
		picker := huh.NewForm(
			huh.NewGroup(
				huh.NewSelect[string]().
					Title("Choose the default course source").
					Options(options...).
					Value(&input),
			),
		).WithTheme(GetTheme())

		if err := picker.Run(); err != nil {
			return err
		}
	}

	if input == "" {
		form := huh.NewForm(
			huh.NewGroup(
				huh.NewInput().
					Title("Default course source").
					Description("Used when the filename prompt is left empty.").
					Placeholder("courses.csv").
					Value(&input),
			),
		).WithTheme(GetTheme())

		if err := form.Run(); err != nil {
			return err
		}
	}

	input = strings.TrimSpace(input)
	if input == "" {
		fmt.Println("Operation cancelled: No source provided.")
		return nil
	}

	cfg.DefaultSource = input
	if err := config.Save(cfg); err != nil {
		return err
	}

	fmt.Println(accentStyle.Render(fmt.Sprintf("\n✅ Default source saved: %s\n", input)))
	return nil
}

func runSetPlaceholderTUI(cfg *config.AppConfig) error {
	input := cfg.PlaceholderTitle

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Placeholder for prerequisites missing from the catalog").
				Description("Leave empty to use the default.").
				Placeholder(report.DefaultPlaceholder).
				Value(&input),
		),
	).WithTheme(GetTheme())

	if err := form.Run(); err != nil {
		return err
	}

	cfg.PlaceholderTitle = strings.TrimSpace(input)
	if err := config.Save(cfg); err != nil {
		return err
	}

	fmt.Println(accentStyle.Render("\n✅ Placeholder saved.\n"))
	return nil
}

// reloadableSources drops entries that only exist in redacted form.
func reloadableSources(sources []string) []string {
	var out []string
	for _, s := range sources {
		if !loader.HasPassword(s) {
			out = append(out, s)
		}
	}
	return out
}

// accentPresets are offered before the custom hex code option.
var accentPresets = []struct {
	name  string
	color string
}{
	{"Planner Purple", "99"},
	{"Transcript Pink", "205"},
	{"Syllabus Blue", "86"},
	{"Pass Green", "42"},
	{"Deadline Orange", "208"},
}

func colorBlock(color string) string {
	return lipgloss.NewStyle().Foreground(lipgloss.Color(color)).Render("██")
}

// accentPreview renders a sample catalog listing in accent, leaving the
// current accent in place.
func accentPreview(accent string) string {
	current := accentStyle
	defer func() { accentStyle = current }()

	useAccent(accent)
	return RenderListing([]catalog.Course{
		{Number: "CSCI100", Name: "Introduction to Computer Science"},
		{Number: "CSCI200", Name: "Data Structures"},
	})
}

func runSetThemeTUI(cfg *config.AppConfig) error {
	accent := accentOf(cfg)

	options := make([]huh.Option[string], 0, len(accentPresets)+1)
	for _, p := range accentPresets {
		options = append(options, huh.NewOption(fmt.Sprintf("%s %s", colorBlock(p.color), p.name), p.color))
	}
	options = append(options, huh.NewOption("✨ Custom Hex Code", "custom"))

	picker := huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Choose an Accent Color").
				Options(options...).
				Value(&accent),
		),
	).WithTheme(GetTheme())

	if err := picker.Run(); err != nil {
		return err
	}

	if accent == "custom" {
		accent = ""
		hexForm := huh.NewForm(
			huh.NewGroup(
				huh.NewInput().
					Title("Enter a Hex Color Code").
					Description("Include the `#` symbol. Example: #FF00FF").
					Placeholder("#").
					Value(&accent).
					Validate(ValidateHexColor),
			),
		).WithTheme(GetTheme())

		if err := hexForm.Run(); err != nil {
			return err
		}
	}

	// Preview the choice on a listing, in a form drawn with the new accent
	keep := true
	confirm := huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title("Use this accent?").
				Description(accentPreview(accent)).
				Affirmative("Save").
				Negative("Discard").
				Value(&keep),
		),
	).WithTheme(GetCustomTheme(accent))

	if err := confirm.Run(); err != nil {
		return err
	}
	if !keep {
		fmt.Println(mutedStyle.Render("Accent color unchanged."))
		return nil
	}

	cfg.AccentColor = accent
	if err := config.Save(cfg); err != nil {
		return err
	}
	useAccent(accent)

	fmt.Println(accentStyle.Render("\n✅ The accent color is now saved.\n"))
	return nil
}

// ValidateHexColor accepts colors of the form #RRGGBB.
func ValidateHexColor(str string) error {
	if len(str) != 7 || !strings.HasPrefix(str, "#") {
		return fmt.Errorf("must be a valid 6-character hex code starting with #")
	}
	for _, r := range str[1:] {
		if !strings.ContainsRune("0123456789abcdefABCDEF", r) {
			return fmt.Errorf("'%c' is not a hex digit", r)
		}
	}
	return nil
}
