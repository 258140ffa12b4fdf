package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/storyquest/internal/logger"
	"github.com/abhisek/storyquest/internal/recommend"
	"github.com/abhisek/storyquest/internal/ui/theme"
)

func newRecommendCmd(c *cli) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "recommend",
		Short: "Suggest what a learner could explore next",
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := learnerFlag(cmd)
			if err != nil {
				return err
			}
			current, _ := cmd.Flags().GetString("current")
			all, _ := cmd.Flags().GetBool("all")
			limit, _ := cmd.Flags().GetInt("limit")
			if limit <= 0 {
				limit = c.cfg.RecommendLimit
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

			ctx := cmd.Context()
			l, err := s.Learners().Get(ctx, id)
			if err != nil {
				return err
			}
			progress, err := s.Progress().Load(ctx, id)
			if err != nil {
				return err
			}
			history, err := s.Sessions().Recent(ctx, id, c.cfg.HistoryWindow)
			if err != nil {
				return err
			}
			if current == "" && len(history) > 0 {
				current = history[len(history)-1]
			}

			suggestions := recommend.New(cat).Recommend(recommend.Request{
				Age:                 l.Age,
				Interests:           l.InterestSet(),
				Progress:            progress,
				CurrentSkill:        current,
				RecentHistory:       history,
				IgnorePrerequisites: all || !c.cfg.UnlockedOnly,
				Limit:               limit,
			})
			c.log.Debug(ctx, "recommendations ranked",
				logger.String("current", current),
				logger.Int("history", len(history)),
				logger.Int("suggestions", len(suggestions)))

			out := cmd.OutOrStdout()
			if len(suggestions) == 0 {
				fmt.Fprintln(out, "Nothing left to suggest. Every eligible skill is dominated.")
				return nil
			}
			title := "Suggestions for " + l.Name
			if current != "" {
				title += " after " + current
			}
			fmt.Fprintln(out, theme.Render(theme.Title, title))
			for i, sg := range suggestions {
				fmt.Fprintf(out, "%d. %s %s %-24s %s  %.3f\n",
					i+1, sg.Intent.Icon(), sg.Emoji, sg.Name, theme.Intent(string(sg.Intent)), sg.Score)
				fmt.Fprintf(out, "   %s\n", theme.Render(theme.Hint, sg.Rationale))
			}
			return nil
		},
	}
	cmd.Flags().String("learner", "", "Learner ID")
	cmd.Flags().String("current", "", "Skill slug the learner just finished (default: last session)")
	cmd.Flags().Bool("all", false, "Include skills whose prerequisites are not yet dominated")
	cmd.Flags().Int("limit", 0, "Maximum suggestions (default from config)")
	return cmd
}
