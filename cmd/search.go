package cmd

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ziadkadry99/studymate/internal/search"
	"github.com/ziadkadry99/studymate/internal/studymate"
)

var searchCmd = &cobra.Command{
	Use:   "search [query]",
	Short: "Search tasks by title and description",
	Long:  `Sends the query to the StudyMate server and prints one card per matching task with its Complete and Delete links.`,
	Args:  cobra.MinimumNArgs(1),
	RunE:  runSearch,
}

var completeCmd = &cobra.Command{
	Use:   "complete [id]",
	Short: "Toggle a task between pending and completed",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runFollow(cmd, args[0], search.ActionComplete)
	},
}

var deleteCmd = &cobra.Command{
	Use:   "delete [id]",
	Short: "Delete a task",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runFollow(cmd, args[0], search.ActionDelete)
	},
}

func init() {
	searchCmd.Flags().Bool("json", false, "output results as JSON")
	rootCmd.AddCommand(searchCmd, completeCmd, deleteCmd)
}

func runSearch(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	out := cmd.OutOrStdout()
	jsonOutput, _ := cmd.Flags().GetBool("json")

	s, err := newSession(true)
	if err != nil {
		return err
	}
	defer s.Close()

	q, ok := search.Normalize(strings.Join(args, " "))
	if !ok {
		return fmt.Errorf("empty search query")
	}
	bar := search.New(s.client, s.logger)
	if err := bar.Submit(ctx, q); err != nil {
		return err
	}

	cards := bar.Cards()
	if jsonOutput {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(cards)
	}

	if len(cards) == 0 {
		fmt.Fprintf(out, "No tasks match %q.\n", bar.Query())
		return nil
	}

	sw, err := s.switcher(ctx)
	if err != nil {
		return err
	}
	fmt.Fprintln(out, search.Render(cards, sw.Palette(), 0))
	return nil
}

func runFollow(cmd *cobra.Command, rawID string, kind search.ActionKind) error {
	id, err := strconv.Atoi(rawID)
	if err != nil || id <= 0 {
		return fmt.Errorf("invalid task id %q", rawID)
	}

	s, err := newSession(true)
	if err != nil {
		return err
	}
	defer s.Close()

	card := search.CardFor(studymate.Task{ID: id})
	action := card.Actions[0]
	if kind == search.ActionDelete {
		action = card.Actions[1]
	}
	if err := search.Follow(cmd.Context(), s.client, action); err != nil {
		return err
	}

	switch kind {
	case search.ActionComplete:
		success(cmd.OutOrStdout(), "Task %d toggled", id)
	case search.ActionDelete:
		success(cmd.OutOrStdout(), "Task %d deleted", id)
	}
	return nil
}
