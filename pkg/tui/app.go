package tui

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"courseplanner/pkg/catalog"
	"courseplanner/pkg/config"
	"courseplanner/pkg/loader"
	"courseplanner/pkg/report"
	"courseplanner/pkg/shell"

	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/huh/spinner"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"
)

const defaultAccent = "99"

var (
	// Replaced by useAccent once the configured accent is known
	accentStyle = lipgloss.NewStyle().Foreground(lipgloss.Color(defaultAccent))
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true)
	mutedStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("244")).Italic(true)
)

// accentOf returns the accent color configured in cfg.
func accentOf(cfg *config.AppConfig) string {
	if cfg == nil || cfg.AccentColor == "" {
		return defaultAccent
	}
	return cfg.AccentColor
}

// useAccent makes color the accent of printed listings and details.
func useAccent(color string) {
	accentStyle = lipgloss.NewStyle().Foreground(lipgloss.Color(color))
}

// GetTheme builds the form theme from the saved accent color and applies
// the same accent to printed output. An unreadable config falls back to the
// default accent.
func GetTheme() *huh.Theme {
	cfg, _ := config.Load()
	accent := accentOf(cfg)
	useAccent(accent)
	return GetCustomTheme(accent)
}

// GetCustomTheme returns a huh.Theme built around the given lipgloss color.
// Descriptions and suggestions are muted so course numbers stand out.
func GetCustomTheme(accent string) *huh.Theme {
	t := huh.ThemeCharm()
	p := lipgloss.Color(accent)
	muted := lipgloss.Color("244")

	t.Focused.Base = t.Focused.Base.Border(lipgloss.RoundedBorder()).BorderForeground(p).Padding(0, 1)
	t.Focused.Title = t.Focused.Title.Foreground(p).Bold(true)
	t.Focused.Description = t.Focused.Description.Foreground(muted)
	t.Focused.SelectSelector = t.Focused.SelectSelector.Foreground(p)
	t.Focused.SelectedOption = t.Focused.SelectedOption.Foreground(p)
	t.Focused.TextInput.Cursor = t.Focused.TextInput.Cursor.Foreground(p)
	t.Focused.TextInput.Prompt = t.Focused.TextInput.Prompt.Foreground(p)
	t.Focused.TextInput.Placeholder = t.Focused.TextInput.Placeholder.Foreground(muted)
	t.Focused.ErrorMessage = t.Focused.ErrorMessage.Foreground(errorStyle.GetForeground())
	t.Focused.FocusedButton = t.Focused.FocusedButton.Foreground(lipgloss.Color("0")).Background(p)

	t.Blurred.Base = t.Blurred.Base.Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("238")).Padding(0, 1)

	return t
}

// screen is where output between forms goes. Problems go to errOut.
type screen struct {
	out    io.Writer
	errOut io.Writer
}

func (s screen) println(text string) {
	fmt.Fprintln(s.out, text)
}

func (s screen) fail(format string, args ...any) {
	fmt.Fprintln(s.errOut, errorStyle.Render(fmt.Sprintf(format, args...)))
}

// Options configures RunTUI.
type Options struct {
	DefaultSource string
	Logger        *zap.Logger
	// Out and ErrOut receive output printed between forms. They default to
	// os.Stdout and os.Stderr.
	Out           io.Writer
	ErrOut        io.Writer
	LoaderOptions []loader.Option
	OnLoad        func(loader.Result)
}

// RunTUI runs the menu as forms over session until the user exits.
func RunTUI(ctx context.Context, session *shell.Session, opts Options) error {
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}
	scr := screen{out: opts.Out, errOut: opts.ErrOut}
	if scr.out == nil {
		scr.out = os.Stdout
	}
	if scr.errOut == nil {
		scr.errOut = os.Stderr
	}

	for {
		var action string

		menu := huh.NewForm(
			huh.NewGroup(
				huh.NewSelect[string]().
					Title("ABCU Course Planner").
					Options(
						huh.NewOption("📂 Load course data", "load"),
						huh.NewOption("📚 Print all courses", "list"),
						huh.NewOption("🔎 Print course information", "show"),
						huh.NewOption("🔤 Search course names", "search"),
						huh.NewOption("🚪 Exit", "exit"),
					).
					Value(&action),
			),
		).WithTheme(GetTheme())

		if err := menu.Run(); err != nil {
			if errors.Is(err, huh.ErrUserAborted) {
				return nil
			}
			return err
		}

		var err error
		switch action {
		case "load":
			err = runLoadTUI(ctx, session, opts, log, scr)
		case "list":
			runListTUI(session, scr)
		case "show":
			err = runShowTUI(session, scr)
		case "search":
			err = runSearchTUI(session, scr)
		case "exit":
			scr.println(accentStyle.Render("Exiting program. Goodbye!"))
			return nil
		}

		if err != nil {
			if errors.Is(err, huh.ErrUserAborted) {
				continue
			}
			return err
		}
	}
}

func runLoadTUI(ctx context.Context, session *shell.Session, opts Options, log *zap.Logger, scr screen) error {
	source := opts.DefaultSource

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Course data source").
				Description("A file (.csv, .txt, .html), an http(s) URL, or a postgres:// connection string.").
				Placeholder("courses.csv").
				Value(&source),
		),
	).WithTheme(GetTheme())

	if err := form.Run(); err != nil {
		return err
	}
	source = strings.Trim(source, " \t\n\r")

	var res loader.Result
	var loadErr error

	_ = spinner.New().
		Title(fmt.Sprintf("Loading courses from %s...", loader.Describe(source))).
		Action(func() {
			res, loadErr = session.Load(ctx, source, append([]loader.Option{loader.WithLogger(log)}, opts.LoaderOptions...)...)
		}).
		Run()

	if loadErr != nil {
		scr.fail("%s", loadFailure(source, loadErr))
		return nil
	}

	scr.println(accentStyle.Render(fmt.Sprintf("Data loaded from '%s' (%d courses).", res.Source, res.Records)))
	if opts.OnLoad != nil {
		opts.OnLoad(res)
	}
	return nil
}

// loadFailure describes a failed load of source for the user.
func loadFailure(source string, err error) string {
	if errors.Is(err, loader.ErrOpen) {
		return fmt.Sprintf("Could not open '%s'. Make sure it exists and the path is correct.", loader.Describe(source))
	}
	return fmt.Sprintf("Failed to load '%s': %v", loader.Describe(source), err)
}

func runListTUI(session *shell.Session, scr screen) {
	if err := session.RequireLoad(); err != nil {
		scr.fail("No data loaded. Load course data first.")
		return
	}

	courses, err := session.Reports().Listing()
	if err != nil {
		if errors.Is(err, catalog.ErrEmpty) {
			scr.fail("No courses loaded. Please load data first.")
			return
		}
		scr.fail("%v", err)
		return
	}

	scr.println(RenderListing(courses))
}

func runShowTUI(session *shell.Session, scr screen) error {
	if err := session.RequireLoad(); err != nil {
		scr.fail("No data loaded. Load course data first.")
		return nil
	}

	var suggestions []string
	if courses, err := session.Store.Traverse(); err == nil {
		for _, c := range courses {
			suggestions = append(suggestions, c.Number)
		}
	}

	var number string
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Course number").
				Placeholder("CSCI200").
				Suggestions(suggestions).
				Value(&number),
		),
	).WithTheme(GetTheme())

	if err := form.Run(); err != nil {
		return err
	}
	number = strings.Trim(number, " \t\n\r")

	d, err := session.Reports().Detail(number)
	if err != nil {
		scr.fail("Course '%s' not found.", number)
		return nil
	}

	scr.println(RenderDetail(d))
	return nil
}

func runSearchTUI(session *shell.Session, scr screen) error {
	if err := session.RequireLoad(); err != nil {
		scr.fail("No data loaded. Load course data first.")
		return nil
	}

	var term string
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Search course names").
				Placeholder("algorithms").
				Value(&term),
		),
	).WithTheme(GetTheme())

	if err := form.Run(); err != nil {
		return err
	}

	matches, err := session.Reports().Search(term)
	if err != nil {
		scr.fail("No courses loaded. Please load data first.")
		return nil
	}
	if len(matches) == 0 {
		scr.println(mutedStyle.Render(fmt.Sprintf("No course names match '%s'.", term)))
		return nil
	}

	scr.println(RenderListing(matches))
	return nil
}

// RenderListing formats courses as a styled two-column listing.
func RenderListing(courses []catalog.Course) string {
	numberStyle := accentStyle.Bold(true)

	width := 0
	for _, c := range courses {
		width = max(width, lipgloss.Width(c.Number))
	}

	var b strings.Builder
	for _, c := range courses {
		b.WriteString(numberStyle.Width(width + 2).Render(c.Number))
		b.WriteString(c.Name)
		b.WriteString("\n")
	}
	return strings.TrimSuffix(b.String(), "\n")
}

// RenderDetail formats a course detail with its prerequisites.
func RenderDetail(d report.Detail) string {
	titleStyle := accentStyle.Bold(true).Padding(1, 0, 0, 0)

	var b strings.Builder
	b.WriteString(titleStyle.Render(fmt.Sprintf("%s - %s", d.Course.Number, d.Course.Name)))
	b.WriteString("\n")

	if len(d.Prerequisites) == 0 {
		b.WriteString("  Prerequisites: None")
		return b.String()
	}

	b.WriteString("  Prerequisites:")
	for _, p := range d.Prerequisites {
		name := p.Name
		if !p.Found {
			name = mutedStyle.Render(name)
		}
		fmt.Fprintf(&b, "\n    %s - %s", p.Number, name)
	}
	return b.String()
}
