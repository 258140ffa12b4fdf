package cmd

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/abhisek/storyquest/internal/baseline"
	"github.com/abhisek/storyquest/internal/logger"
	"github.com/abhisek/storyquest/internal/rating"
	"github.com/abhisek/storyquest/internal/store"
	"github.com/abhisek/storyquest/internal/ui/theme"
)

func newBaselineCmd(c *cli) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "baseline",
		Short: "Estimate a reading level from placement results and seed the rating",
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := learnerFlag(cmd)
			if err != nil {
				return err
			}
			path, _ := cmd.Flags().GetString("results")
			if path == "" {
				return fmt.Errorf("--results is required")
			}
			results, err := readTextResults(path)
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
			if err := checkOnboarding(cmd, s, id); err != nil {
				return err
			}

			res := baseline.Estimate(results)
			seed := res.SeedRating()
			err = s.InTx(ctx, func(tx *store.Store) error {
				if err := tx.Baselines().Save(ctx, id, res); err != nil {
					return err
				}
				_, err := tx.Ratings().Append(ctx, id, seed, res.Level, res.TextsCompleted)
				return err
			})
			if err != nil {
				return err
			}
			c.log.Info(ctx, "baseline recorded",
				logger.Float64("level", res.Level),
				logger.String("confidence", string(res.Confidence)))

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, theme.Render(theme.Title, "Baseline"))
			fmt.Fprintf(out, "  Level:          %.1f\n", res.Level)
			fmt.Fprintf(out, "  Comprehension:  %.0f%%\n", res.ComprehensionScore*100)
			fmt.Fprintf(out, "  Confidence:     %s (%d texts)\n", res.Confidence, res.TextsCompleted)
			for _, cat := range rating.AllCategories() {
				if t, ok := res.PerCategoryAccuracy[cat]; ok && t.Total > 0 {
					fmt.Fprintf(out, "  %-14s  %d/%d\n", cat+":", t.Correct, t.Total)
				}
			}
			fmt.Fprintf(out, "  Seed rating:    %.0f (RD %.0f)\n", seed.Global, seed.RD)
			return nil
		},
	}
	cmd.Flags().String("learner", "", "Learner ID")
	cmd.Flags().String("results", "", "Path to a JSON array of placement text results")
	return cmd
}

// errAlreadyPlaced is returned when a placement would overwrite a rating the
// learner has already earned or replace an earlier baseline.
var errAlreadyPlaced = errors.New("baseline is only recorded once, at onboarding")

// checkOnboarding fails unless the learner has no baseline and no rating
// beyond the one written by "learner new".
func checkOnboarding(cmd *cobra.Command, s *store.Store, id uuid.UUID) error {
	ctx := cmd.Context()
	switch _, err := s.Baselines().Latest(ctx, id); {
	case err == nil:
		return fmt.Errorf("learner %s already has a baseline: %w", id, errAlreadyPlaced)
	case !errors.Is(err, store.ErrNotFound):
		return err
	}

	history, err := s.Ratings().History(ctx, id, store.QueryOpts{Limit: 2})
	if err != nil {
		return err
	}
	if len(history) > 1 {
		return fmt.Errorf("learner %s has rating updates since onboarding: %w", id, errAlreadyPlaced)
	}
	return nil
}
