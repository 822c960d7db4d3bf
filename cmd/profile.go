package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ziadkadry99/studymate/internal/studymate"
)

var profileCmd = &cobra.Command{
	Use:   "profile",
	Short: "Show or edit your profile",
	Long: `Without flags prints the profile. With flags updates only the given fields;
the name is the one the assistant greets you with.`,
	Args: cobra.NoArgs,
	RunE: runProfile,
}

func init() {
	profileCmd.Flags().String("name", "", "display name")
	profileCmd.Flags().String("course", "", "course of study")
	profileCmd.Flags().String("goals", "", "study goals")
	profileCmd.Flags().String("avatar", "", "avatar image URL")
	rootCmd.AddCommand(profileCmd)
}

func runProfile(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	out := cmd.OutOrStdout()

	var update studymate.ProfileUpdate
	changed := false
	for field, dst := range map[string]**string{
		"name":   &update.Name,
		"course": &update.Course,
		"goals":  &update.Goals,
		"avatar": &update.Avatar,
	} {
		if !cmd.Flags().Changed(field) {
			continue
		}
		v, _ := cmd.Flags().GetString(field)
		*dst = &v
		changed = true
	}

	s, err := newSession(true)
	if err != nil {
		return err
	}
	defer s.Close()

	if changed {
		if err := s.client.UpdateProfile(ctx, update); err != nil {
			return fmt.Errorf("updating profile: %w", err)
		}
		success(out, "Profile updated")
		return nil
	}

	p, err := s.client.Profile(ctx)
	switch {
	case errors.Is(err, studymate.ErrNoDisplayName):
		warn(out, "No display name set on your profile.")
		return nil
	case err != nil:
		return fmt.Errorf("fetching profile: %w", err)
	}
	fmt.Fprintf(out, "Name:   %s\n", p.Name)
	if p.Course != "" {
		fmt.Fprintf(out, "Course: %s\n", p.Course)
	}
	if p.Goals != "" {
		fmt.Fprintf(out, "Goals:  %s\n", p.Goals)
	}
	if p.Avatar != "" {
		fmt.Fprintf(out, "Avatar: %s\n", p.Avatar)
	}
	return nil
}
