package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/storyquest/internal/logger"
	"github.com/abhisek/storyquest/internal/mastery"
	"github.com/abhisek/storyquest/internal/skillgraph"
	"github.com/abhisek/storyquest/internal/ui/components"
	"github.com/abhisek/storyquest/internal/ui/theme"
)

func newProgressCmd(c *cli) *cobra.Command {
	progressCmd := &cobra.Command{
		Use:   "progress",
		Short: "Record and show skill progress",
	}
	progressCmd.AddCommand(newProgressSetCmd(c), newProgressRecordCmd(c), newProgressShowCmd(c))
	return progressCmd
}

func newProgressSetCmd(c *cli) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "set",
		Short: "Write a learner's progress on one skill",
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := learnerFlag(cmd)
			if err != nil {
				return err
			}
			slug, _ := cmd.Flags().GetString("skill")
			attempts, _ := cmd.Flags().GetInt("attempts")
			correct, _ := cmd.Flags().GetInt("correct")
			score, _ := cmd.Flags().GetFloat64("mastery")
			dominated, _ := cmd.Flags().GetBool("dominated")

			cat, err := c.catalog()
			if err != nil {
				return err
			}
			skill, err := cat.Skill(slug)
			if err != nil {
				return err
			}
			if attempts < 0 || correct < 0 || correct > attempts {
				return fmt.Errorf("need 0 <= correct <= attempts, got %d/%d", correct, attempts)
			}
			if score < 0 || score > 1 {
				return fmt.Errorf("--mastery must be within [0, 1], got %v", score)
			}

			s, err := c.openStore(cmd)
			if err != nil {
				return err
			}
			defer s.Close()

			ctx := cmd.Context()
			if _, err := s.Learners().Get(ctx, id); err != nil {
				return err
			}
			p := skillgraph.Progress{Attempts: attempts, Correct: correct, Mastery: score, Dominated: dominated}
			if err := s.Progress().Upsert(ctx, id, skill.Slug, p); err != nil {
				return err
			}

			state := "in progress"
			if p.IsDominated() {
				state = "dominated"
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s: %s\n", skill.Emoji, skill.Name, state)
			return nil
		},
	}
	cmd.Flags().String("learner", "", "Learner ID")
	cmd.Flags().String("skill", "", "Skill slug")
	cmd.Flags().Int("attempts", 0, "Number of attempts")
	cmd.Flags().Int("correct", 0, "Number of correct attempts")
	cmd.Flags().Float64("mastery", 0, "Mastery score in [0, 1]")
	cmd.Flags().Bool("dominated", false, "Mark the skill as dominated regardless of mastery")
	return cmd
}

func newProgressRecordCmd(c *cli) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "record",
		Short: "Record one graded attempt on a skill and recompute mastery",
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := learnerFlag(cmd)
			if err != nil {
				return err
			}
			slug, _ := cmd.Flags().GetString("skill")
			outcome, _ := cmd.Flags().GetString("outcome")

			var correct bool
			switch outcome {
			case "correct":
				correct = true
			case "incorrect":
			default:
				return fmt.Errorf("--outcome must be correct or incorrect, got %q", outcome)
			}

			cat, err := c.catalog()
			if err != nil {
				return err
			}
			skill, err := cat.Skill(slug)
			if err != nil {
				return err
			}

			s, err := c.openStore(cmd)
			if err != nil {
				return err
			}
			defer s.Close()

			ctx := cmd.Context()
			if _, err := s.Learners().Get(ctx, id); err != nil {
				return err
			}
			progress, err := s.Progress().Load(ctx, id)
			if err != nil {
				return err
			}
			before, _ := progress.Get(skill.Slug)
			after := mastery.Apply(before, correct)
			if err := s.Progress().Upsert(ctx, id, skill.Slug, after); err != nil {
				return err
			}
			if after.Dominated && !before.Dominated {
				c.log.Info(ctx, "skill dominated", logger.String("skill", skill.Slug), logger.Int("attempts", after.Attempts))
			}

			fmt.Fprintf(cmd.OutOrStdout(), "%s %s: %d/%d correct, mastery %.2f\n",
				skill.Emoji, skill.Name, after.Correct, after.Attempts, after.Mastery)
			if after.Dominated && !before.Dominated {
				fmt.Fprintln(cmd.OutOrStdout(), theme.Render(theme.Up, "★ Dominated!"))
			}
			return nil
		},
	}
	cmd.Flags().String("learner", "", "Learner ID")
	cmd.Flags().String("skill", "", "Skill slug")
	cmd.Flags().String("outcome", "", "Attempt outcome: correct or incorrect")
	return cmd
}

func newProgressShowCmd(c *cli) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show",
		Short: "Show a learner's skill tree progress",
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := learnerFlag(cmd)
			if err != nil {
				return err
			}
			cat, err := c.catalog()
			if err != nil {
				return err
			}

			s, err := c.openStore(cmd)
			if err != nil {
				return err
			}
			defer s.Close()

			if _, err := s.Learners().Get(cmd.Context(), id); err != nil {
				return err
			}
			progress, err := s.Progress().Load(cmd.Context(), id)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			for _, d := range cat.Domains() {
				fmt.Fprintln(out, theme.Render(theme.Subtitle, d.Emoji+" "+d.Name))
				for _, sk := range cat.ByDomain(d.Slug) {
					label := fmt.Sprintf("  %-24s", sk.Name)
					state := mastery.ResolveState(sk, progress)
					if state == mastery.StateLocked {
						fmt.Fprintln(out, theme.Render(theme.Locked, label+"  locked"))
						continue
					}
					p, _ := progress.Get(sk.Slug)
					line := components.NewProgressBar(label, p.Mastery, true, 20).View()
					if state == mastery.StateDominated {
						line += "  " + theme.Render(theme.Up, "★")
					}
					fmt.Fprintln(out, line)
				}
			}
			return nil
		},
	}
	cmd.Flags().String("learner", "", "Learner ID")
	return cmd
}
