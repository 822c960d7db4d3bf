package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ziadkadry99/studymate/internal/chat"
	"github.com/ziadkadry99/studymate/internal/progress"
)

var askCmd = &cobra.Command{
	Use:   "ask [question]",
	Short: "Ask the StudyMate assistant one question",
	Long:  `Opens the chat, greets you by name, sends the question and prints the conversation.`,
	Args:  cobra.MinimumNArgs(1),
	RunE:  runAsk,
}

func init() {
	rootCmd.AddCommand(askCmd)
}

func runAsk(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	out := cmd.OutOrStdout()

	s, err := newSession(true)
	if err != nil {
		return err
	}
	defer s.Close()

	w := chat.New(s.client, s.logger)
	w.Toggle(ctx)

	ex, err := w.Begin(strings.Join(args, " "))
	if err != nil {
		return err
	}

	reporter := progress.NewReporter(cmd.ErrOrStderr())
	reporter.Start(chat.PendingText)
	answer, err := s.client.Ask(ctx, ex.Question)
	reporter.Finish()
	w.Finish(ex.PendingID, answer, err)

	printTranscript(out, w)
	return nil
}

func printTranscript(out io.Writer, w *chat.Widget) {
	fmt.Fprintf(out, "── %s ──\n", w.Label())
	for _, l := range w.Lines() {
		if l.From == chat.FromUser {
			fmt.Fprintln(out, l.Text)
			continue
		}
		fmt.Fprintf(out, "%s: %s\n", chat.AssistantName, l.Text)
	}
}
