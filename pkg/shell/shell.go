// Package shell implements the numbered menu loop of the course planner.
package shell

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"courseplanner/pkg/catalog"
	"courseplanner/pkg/loader"
	"courseplanner/pkg/report"

	"go.uber.org/zap"
)

const menu = `
=== ABCU Course Planner ===
1. Load course data
2. Print all courses
3. Print course information
9. Exit
Select an option: `

// Menu choices
const (
	ChoiceLoad   = 1
	ChoiceList   = 2
	ChoiceDetail = 3
	ChoiceExit   = 9
)

// Shell reads menu choices from an input stream and writes results to out
// and problems to errOut.
type Shell struct {
	in     *bufio.Reader
	out    io.Writer
	errOut io.Writer

	session       *Session
	log           *zap.Logger
	defaultSource string
	loaderOpts    []loader.Option
	onLoad        func(loader.Result)
}

// Option configures a Shell.
type Option func(*Shell)

// WithLogger sets the diagnostics logger.
func WithLogger(log *zap.Logger) Option {
	return func(s *Shell) {
		if log != nil {
			s.log = log
		}
	}
}

// WithSession runs the shell over an existing session.
func WithSession(session *Session) Option {
	return func(s *Shell) {
		if session != nil {
			s.session = session
		}
	}
}

// WithDefaultSource is loaded when the filename prompt is answered with an
// empty line.
func WithDefaultSource(source string) Option {
	return func(s *Shell) { s.defaultSource = source }
}

// WithLoaderOptions passes opts to every load.
func WithLoaderOptions(opts ...loader.Option) Option {
	return func(s *Shell) { s.loaderOpts = append(s.loaderOpts, opts...) }
}

// OnLoad registers fn to be called after every successful load.
func OnLoad(fn func(loader.Result)) Option {
	return func(s *Shell) { s.onLoad = fn }
}

// New creates a shell reading from in.
func New(in io.Reader, out, errOut io.Writer, opts ...Option) *Shell {
	s := &Shell{
		in:     bufio.NewReader(in),
		out:    out,
		errOut: errOut,
		log:    zap.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.session == nil {
		s.session = NewSession("")
	}
	s.loaderOpts = append([]loader.Option{loader.WithLogger(s.log)}, s.loaderOpts...)
	return s
}

// Session returns the state the shell operates on.
func (s *Shell) Session() *Session {
	return s.session
}

// Run shows the menu until the user exits or the input ends. Both are a
// normal return; only write failures and read errors other than EOF are
// returned.
func (s *Shell) Run(ctx context.Context) error {
	for {
		if _, err := io.WriteString(s.out, menu); err != nil {
			return err
		}

		line, err := s.readLine()
		if err != nil {
			return endOfInput(s.out, err)
		}

		text := strings.TrimSpace(line)
		if text == "" {
			continue
		}

		choice, err := strconv.Atoi(text)
		if err != nil {
			s.log.Debug("rejected menu input", zap.String("input", text))
			s.errorf("Invalid input. Please enter a number.")
			continue
		}
		s.log.Debug("menu selection", zap.Int("choice", choice))

		switch choice {
		case ChoiceLoad:
			err = s.loadData(ctx)
		case ChoiceList:
			s.printAll()
		case ChoiceDetail:
			err = s.printCourse()
		case ChoiceExit:
			_, err = fmt.Fprintln(s.out, "Exiting program. Goodbye!")
			return err
		default:
			s.errorf("Invalid selection. Please choose 1, 2, 3, or 9.")
		}

		if err != nil {
			return endOfInput(s.out, err)
		}
	}
}

func (s *Shell) loadData(ctx context.Context) error {
	fmt.Fprint(s.out, "Enter filename: ")
	line, err := s.readLine()
	if err != nil {
		return err
	}

	source := strings.Trim(line, " \t\n\r")
	if source == "" && s.defaultSource != "" {
		source = s.defaultSource
		fmt.Fprintf(s.out, "Using default source '%s'.\n", loader.Describe(source))
	}

	res, err := s.session.Load(ctx, source, s.loaderOpts...)
	if err != nil {
		if errors.Is(err, loader.ErrOpen) {
			s.errorf("Could not open file '%s'.\nMake sure the file exists and the path is correct.", loader.Describe(source))
		} else {
			s.errorf("Failed to load '%s': %v", loader.Describe(source), err)
		}
		return nil
	}

	fmt.Fprintf(s.out, "Data loaded from '%s'.\n", res.Source)
	if s.onLoad != nil {
		s.onLoad(res)
	}
	return nil
}

func (s *Shell) printAll() {
	if err := s.session.RequireLoad(); err != nil {
		s.errorf("No data loaded. Use option 1 first.")
		return
	}

	if err := s.session.Reports().WriteListing(s.out); err != nil {
		if errors.Is(err, catalog.ErrEmpty) {
			s.errorf("No courses loaded. Please load data first.")
			return
		}
		s.errorf("%v", err)
	}
}

func (s *Shell) printCourse() error {
	if err := s.session.RequireLoad(); err != nil {
		s.errorf("No data loaded. Use option 1 first.")
		return nil
	}

	fmt.Fprint(s.out, "Enter course number: ")
	line, err := s.readLine()
	if err != nil {
		return err
	}
	number := strings.Trim(line, " \t\n\r")

	if err := s.session.Reports().WriteDetail(s.out, number); err != nil {
		if errors.Is(err, report.ErrCourseNotFound) {
			s.errorf("Course '%s' not found.", number)
			return nil
		}
		s.errorf("%v", err)
	}
	return nil
}

// readLine returns the next line including its terminator. A final line
// without a newline is returned without error; the call after it reports
// io.EOF.
func (s *Shell) readLine() (string, error) {
	line, err := s.in.ReadString('\n')
	if errors.Is(err, io.EOF) && line != "" {
		return line, nil
	}
	return line, err
}

func (s *Shell) errorf(format string, args ...any) {
	fmt.Fprintf(s.errOut, "Error: "+format+"\n", args...)
}

func endOfInput(out io.Writer, err error) error {
	if errors.Is(err, io.EOF) {
		fmt.Fprintln(out)
		return nil
	}
	return err
}
