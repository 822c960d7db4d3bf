package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ziadkadry99/studymate/internal/studymate"
)

var tipCmd = &cobra.Command{
	Use:   "tip",
	Short: "Print a study tip from the assistant",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := newSession(true)
		if err != nil {
			return err
		}
		defer s.Close()

		tip, err := s.client.Tip(cmd.Context())
		if err != nil {
			return fmt.Errorf("fetching tip: %w", err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), tip)
		return nil
	},
}

var topCmd = &cobra.Command{
	Use:   "top",
	Short: "Show the most frequent searches",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := newSession(true)
		if err != nil {
			return err
		}
		defer s.Close()

		top, err := s.client.TopSearches(cmd.Context())
		if err != nil {
			return fmt.Errorf("fetching top searches: %w", err)
		}
		out := cmd.OutOrStdout()
		if len(top) == 0 {
			fmt.Fprintln(out, "No searches yet.")
			return nil
		}
		for i, t := range top {
			fmt.Fprintf(out, "%2d. %-30s %d\n", i+1, t.Query, t.Count)
		}
		return nil
	},
}

var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Print the display name the assistant greets you with",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := newSession(true)
		if err != nil {
			return err
		}
		defer s.Close()

		name, err := s.client.DisplayName(cmd.Context())
		switch {
		case errors.Is(err, studymate.ErrNoDisplayName):
			warn(cmd.OutOrStdout(), "No display name set on your profile.")
			return nil
		case err != nil:
			return fmt.Errorf("fetching profile: %w", err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), name)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(tipCmd, topCmd, whoamiCmd)
}
