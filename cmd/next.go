package cmd

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/storyquest/internal/logger"
	"github.com/abhisek/storyquest/internal/rating"
	"github.com/abhisek/storyquest/internal/store"
	"github.com/abhisek/storyquest/internal/techtree"
	"github.com/abhisek/storyquest/internal/ui/theme"
)

func newNextCmd(c *cli) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "next",
		Short: "Pick the skill for the next story session",
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := learnerFlag(cmd)
			if err != nil {
				return err
			}
			dryRun, _ := cmd.Flags().GetBool("dry-run")

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

			readingLevel := 1.0
			switch rec, err := s.Ratings().Latest(ctx, id); {
			case err == nil:
				readingLevel = rating.TextLevelFor(rec.Rating)
			case !errors.Is(err, store.ErrNotFound):
				return err
			}

			sel := techtree.New(cat)
			skill, ok := sel.PickNext(l.Age, l.InterestSet(), progress, history)
			if !ok {
				return fmt.Errorf("no skill in the catalog suits age %d", l.Age)
			}
			sc := sel.BuildContext(skill, progress, l.Age, readingLevel)
			c.log.Debug(ctx, "next skill picked",
				logger.String("skill", sc.Slug),
				logger.String("objective", string(sc.ObjectiveKind)))

			if !dryRun {
				if err := s.Sessions().Append(ctx, id, sc.Slug, string(sc.ObjectiveKind)); err != nil {
					return err
				}
			}

			fmt.Fprintln(cmd.OutOrStdout(), renderContext(skill.Emoji, sc))
			return nil
		},
	}
	cmd.Flags().String("learner", "", "Learner ID")
	cmd.Flags().Bool("dry-run", false, "Show the pick without recording a session")
	return cmd
}

func renderContext(emoji string, sc techtree.Context) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s\n", theme.Render(theme.Title, emoji+" "+sc.Name))
	fmt.Fprintf(&b, "%s · level %d (%s)\n", sc.DomainName, sc.Level, sc.LevelName)
	fmt.Fprintf(&b, "\nObjective (%s): %s\n", sc.ObjectiveKind, sc.Objective)
	fmt.Fprintf(&b, "Strategy: %s\n", sc.TeachingStrategy)
	fmt.Fprintf(&b, "Reader: age %d, text level %.1f\n", sc.Age, sc.ReadingLevel)
	writeList(&b, "Builds on", sc.PrerequisitesDominated)
	writeList(&b, "Still pending", sc.PrerequisitesPending)
	writeList(&b, "Already dominated nearby", sc.RelatedDominated)
	writeList(&b, "In progress nearby", sc.RelatedInProgress)

	if theme.Plain {
		return strings.TrimRight(b.String(), "\n")
	}
	return theme.Card.Render(strings.TrimRight(b.String(), "\n"))
}

func writeList(b *strings.Builder, label string, items []string) {
	if len(items) == 0 {
		return
	}
	fmt.Fprintf(b, "%s: %s\n", label, strings.Join(items, ", "))
}
