package cmd

import (
	"github.com/spf13/cobra"

	"github.com/ziadkadry99/studymate/internal/chat"
	"github.com/ziadkadry99/studymate/internal/search"
	"github.com/ziadkadry99/studymate/internal/tui"
)

var uiCmd = &cobra.Command{
	Use:   "ui",
	Short: "Open the StudyMate page in the terminal",
	Long: `Opens the full page: the task search bar, the assistant chat (ctrl+o) and
the theme switcher (ctrl+t). Logs go to the log file only.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		// The page owns the terminal, so no console logging here.
		s, err := newSession(false)
		if err != nil {
			return err
		}
		defer s.Close()

		sw, err := s.switcher(ctx)
		if err != nil {
			return err
		}

		return tui.Run(tui.Deps{
			Context:  ctx,
			Client:   s.client,
			Switcher: sw,
			Chat:     chat.New(s.client, s.logger),
			Search:   search.New(s.client, s.logger),
			Logger:   s.logger,
		})
	},
}

func init() {
	rootCmd.AddCommand(uiCmd)
}
