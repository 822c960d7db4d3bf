package cmd

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/ziadkadry99/studymate/internal/studymate"
)

var priorities = []string{"High", "Medium", "Low"}

var addCmd = &cobra.Command{
	Use:   "add [title]",
	Short: "Create a task",
	Long: `Creates a pending task. Without --priority the server picks one from the
deadline: High within two days, Medium within a week, Low after that.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runAdd,
}

func init() {
	addCmd.Flags().String("description", "", "task description")
	addCmd.Flags().String("date", "", "deadline as YYYY-MM-DD")
	addCmd.Flags().String("priority", "", "High, Medium or Low")
	rootCmd.AddCommand(addCmd)
}

func runAdd(cmd *cobra.Command, args []string) error {
	description, _ := cmd.Flags().GetString("description")
	date, _ := cmd.Flags().GetString("date")
	rawPriority, _ := cmd.Flags().GetString("priority")

	date = strings.TrimSpace(date)
	if date != "" {
		if _, err := time.Parse(time.DateOnly, date); err != nil {
			return fmt.Errorf("invalid --date %q: use YYYY-MM-DD", date)
		}
	}
	priority, err := parsePriority(rawPriority)
	if err != nil {
		return err
	}

	s, err := newSession(true)
	if err != nil {
		return err
	}
	defer s.Close()

	title := strings.Join(args, " ")
	err = s.client.AddTask(cmd.Context(), studymate.NewTask{
		Title:       title,
		Description: description,
		Date:        date,
		Priority:    priority,
	})
	if err != nil {
		return fmt.Errorf("adding task: %w", err)
	}
	success(cmd.OutOrStdout(), "Task added: %s", strings.TrimSpace(title))
	return nil
}

// parsePriority accepts a priority in any case. Empty stays empty.
func parsePriority(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", nil
	}
	for _, p := range priorities {
		if strings.EqualFold(raw, p) {
			return p, nil
		}
	}
	return "", fmt.Errorf("invalid --priority %q: must be one of %s", raw, strings.Join(priorities, ", "))
}
