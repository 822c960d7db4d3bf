package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"

	"github.com/ziadkadry99/studymate/internal/theme"
)

var themeCmd = &cobra.Command{
	Use:   "theme [name]",
	Short: "Show or change the colour theme",
	Long: `Without arguments prints the current theme, or offers a picker when run on
a terminal. With a name (purple, midnight or soft) selects and remembers it.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runTheme,
}

func init() {
	themeCmd.Flags().Bool("list", false, "list available themes")
	rootCmd.AddCommand(themeCmd)
}

func runTheme(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	out := cmd.OutOrStdout()
	list, _ := cmd.Flags().GetBool("list")

	s, err := newSession(true)
	if err != nil {
		return err
	}
	defer s.Close()

	sw, err := s.switcher(ctx)
	if err != nil {
		return err
	}
	current := sw.Current()

	if list {
		for _, t := range theme.All {
			mark := " "
			if t == current {
				mark = "*"
			}
			fmt.Fprintf(out, "%s %s\n", mark, t)
		}
		return nil
	}

	var name string
	switch {
	case len(args) == 1:
		name = args[0]
	case isTerminal(os.Stdin):
		name, err = pickTheme(current)
		if err != nil {
			return err
		}
	default:
		fmt.Fprintln(out, current)
		return nil
	}

	t, err := sw.Select(ctx, name)
	switch {
	case errors.Is(err, theme.ErrUnknownTheme):
		return err
	case err != nil:
		warn(out, "Theme %s applied for this session but could not be saved: %v", t, err)
		return nil
	}
	success(out, "Theme set to %s", t)
	return nil
}

func pickTheme(current theme.Theme) (string, error) {
	cursor := 0
	for i, t := range theme.All {
		if t == current {
			cursor = i
		}
	}
	prompt := promptui.Select{
		Label:     "Theme",
		Items:     theme.All,
		CursorPos: cursor,
	}
	_, name, err := prompt.Run()
	if err != nil {
		return "", fmt.Errorf("theme selection: %w", err)
	}
	return name, nil
}
