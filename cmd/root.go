package cmd

import (
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/ziadkadry99/studymate/internal/config"
)

var (
	cfgFile string
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "studymate",
	Short: "Terminal client for the StudyMate study planner",
	Long: `StudyMate brings the study planner's page to the terminal: search your
tasks, ask the StudyMate assistant and pick a colour theme that is
remembered between sessions.`,
	SilenceErrors: true,
	SilenceUsage:  true,
}

// Execute runs the root command and prints any error in red.
func Execute() error {
	err := rootCmd.Execute()
	printError(os.Stderr, err)
	return err
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", config.DefaultConfigFile, "config file path")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log to stderr as well as the log file")
}

func printError(w io.Writer, err error) {
	if err != nil {
		color.New(color.FgRed).Fprintf(w, "Error: %v\n", err)
	}
}

func success(w io.Writer, format string, args ...any) {
	color.New(color.FgGreen).Fprintf(w, format+"\n", args...)
}

func warn(w io.Writer, format string, args ...any) {
	color.New(color.FgYellow).Fprintf(w, format+"\n", args...)
}
