package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/storyquest/internal/logger"
	"github.com/abhisek/storyquest/internal/rating"
	"github.com/abhisek/storyquest/internal/ui/theme"
)

func newRateCmd(c *cli) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "rate",
		Short: "Apply a batch of graded responses to a learner's rating",
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := learnerFlag(cmd)
			if err != nil {
				return err
			}
			path, _ := cmd.Flags().GetString("responses")
			if path == "" {
				return fmt.Errorf("--responses is required")
			}
			responses, err := readResponses(path)
			if err != nil {
				return err
			}
			level, _ := cmd.Flags().GetFloat64("level")
			if cmd.Flags().Changed("level") {
				if err := checkTextLevel(level); err != nil {
					return fmt.Errorf("--level: %w", err)
				}
			}

			s, err := c.openStore(cmd)
			if err != nil {
				return err
			}
			defer s.Close()

			ctx := cmd.Context()
			prev, err := s.Ratings().Latest(ctx, id)
			if err != nil {
				return err
			}

			if !cmd.Flags().Changed("level") {
				level = rating.TextLevelFor(prev.Rating)
			}

			next, deltas := rating.Update(prev.Rating, responses, level)
			for i, d := range deltas {
				c.log.Debug(ctx, "response applied",
					logger.Int("index", i),
					logger.String("category", string(d.Category)),
					logger.Float64("item_rating", d.ItemRating),
					logger.Float64("d_global", d.DGlobal),
					logger.Float64("d_category", d.DCategory))
			}
			if _, err := s.Ratings().Append(ctx, id, next, level, len(responses)); err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%s at text level %.1f\n", theme.Render(theme.Title, "Rating update"), level)
			fmt.Fprintf(out, "%3s  %-11s  %7s  %6s  %8s  %8s\n", "#", "Category", "Item", "Result", "Global", "Category")
			fmt.Fprintln(out, strings.Repeat("─", 52))
			for i, d := range deltas {
				result := "miss"
				if responses[i].Correct {
					result = "hit"
				}
				fmt.Fprintf(out, "%3d  %-11s  %7.0f  %6s  %8s  %8s\n",
					i+1, d.Category, d.ItemRating, result, theme.Delta(d.DGlobal), theme.Delta(d.DCategory))
			}
			fmt.Fprintf(out, "\nGlobal %.1f -> %.1f (%s), RD %.0f -> %.0f\n",
				prev.Rating.Global, next.Global, theme.Delta(next.Global-prev.Rating.Global), prev.Rating.RD, next.RD)
			fmt.Fprintf(out, "Next text level: %.1f\n", rating.TextLevelFor(next))
			return nil
		},
	}
	cmd.Flags().String("learner", "", "Learner ID")
	cmd.Flags().String("responses", "", "Path to a JSON array of graded responses")
	cmd.Flags().Float64("level", 0, "Text level the responses were graded at (default: derived from the current rating)")
	return cmd
}
