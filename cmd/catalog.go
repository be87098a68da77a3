package cmd

import (
	"errors"
	"fmt"
	"strings"

	"courseplanner/pkg/catalog"
	"courseplanner/pkg/loader"
	"courseplanner/pkg/report"
	"courseplanner/pkg/shell"

	"github.com/spf13/cobra"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "Print every course in course number order",
	RunE: func(cmd *cobra.Command, args []string) error {
		session, source, err := loadSession(cmd)
		if err != nil {
			return err
		}

		err = session.Reports().WriteListing(cmd.OutOrStdout())
		if errors.Is(err, catalog.ErrEmpty) {
			return fmt.Errorf("no courses found in %s", loader.Describe(source))
		}
		return err
	},
}

var showCmd = &cobra.Command{
	Use:   "show <course-number>",
	Short: "Print a course and its prerequisites",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		session, _, err := loadSession(cmd)
		if err != nil {
			return err
		}

		return session.Reports().WriteDetail(cmd.OutOrStdout(), trimArg(args[0]))
	},
}

var searchCmd = &cobra.Command{
	Use:   "search <term>",
	Short: "Print the courses whose name contains a term",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		session, source, err := loadSession(cmd)
		if err != nil {
			return err
		}

		matches, err := session.Reports().Search(args[0])
		if errors.Is(err, catalog.ErrEmpty) {
			return fmt.Errorf("no courses found in %s", loader.Describe(source))
		}
		if err != nil {
			return err
		}

		if len(matches) == 0 {
			fmt.Fprintf(cmd.OutOrStdout(), "No course names match '%s'.\n", args[0])
			return nil
		}
		return report.WriteCourses(cmd.OutOrStdout(), matches)
	},
}

// loadSession loads the --source flag, or the configured default source,
// into a fresh session.
func loadSession(cmd *cobra.Command) (*shell.Session, string, error) {
	cfg := loadConfig()

	source, _ := cmd.Flags().GetString("source")
	source = trimArg(source)
	if source == "" {
		source = cfg.DefaultSource
	}
	if source == "" {
		return nil, "", fmt.Errorf("no course source given; pass --source or run 'courseplanner config --set-source <source>'")
	}

	session := shell.NewSession(cfg.PlaceholderTitle)
	if _, err := session.Load(cmd.Context(), source, loaderOptions()...); err != nil {
		return nil, source, fmt.Errorf("failed to load courses: %w", err)
	}
	return session, source, nil
}

func trimArg(s string) string {
	return strings.Trim(s, " \t\n\r")
}

func init() {
	for _, c := range []*cobra.Command{listCmd, showCmd, searchCmd} {
		c.Flags().StringP("source", "s", "", "Course data file, http(s) URL or postgres:// connection string (defaults to the configured source)")
		rootCmd.AddCommand(c)
	}
}
