package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/storyquest/internal/logger"
	"github.com/abhisek/storyquest/internal/rating"
	"github.com/abhisek/storyquest/internal/store"
	"github.com/abhisek/storyquest/internal/ui/theme"
)

func newLearnerCmd(c *cli) *cobra.Command {
	learnerCmd := &cobra.Command{
		Use:   "learner",
		Short: "Manage learners",
	}
	learnerCmd.AddCommand(newLearnerNewCmd(c), newLearnerListCmd(c))
	return learnerCmd
}

func newLearnerNewCmd(c *cli) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "new",
		Short: "Register a learner with a default rating",
		RunE: func(cmd *cobra.Command, args []string) error {
			name, _ := cmd.Flags().GetString("name")
			age, _ := cmd.Flags().GetInt("age")
			interests, _ := cmd.Flags().GetStringSlice("interests")

			if strings.TrimSpace(name) == "" {
				return fmt.Errorf("--name is required")
			}
			if age <= 0 {
				return fmt.Errorf("--age must be positive")
			}

			cat, err := c.catalog()
			if err != nil {
				return err
			}
			for _, d := range interests {
				if _, ok := cat.Domain(d); !ok {
					return fmt.Errorf("unknown interest domain %q", d)
				}
			}

			s, err := c.openStore(cmd)
			if err != nil {
				return err
			}
			defer s.Close()

			ctx := cmd.Context()
			var l *store.Learner
			err = s.InTx(ctx, func(tx *store.Store) error {
				var err error
				if l, err = tx.Learners().Create(ctx, name, age, interests); err != nil {
					return err
				}
				r := rating.New()
				_, err = tx.Ratings().Append(ctx, l.ID, r, rating.TextLevelFor(r), 0)
				return err
			})
			if err != nil {
				return err
			}
			c.log.Info(ctx, "learner created", logger.String("id", l.ID.String()), logger.Int("age", age))

			fmt.Fprintf(cmd.OutOrStdout(), "%s %s (age %d)\n", theme.Render(theme.Title, "Learner"), l.Name, l.Age)
			fmt.Fprintln(cmd.OutOrStdout(), l.ID)
			return nil
		},
	}
	cmd.Flags().String("name", "", "Learner's name")
	cmd.Flags().Int("age", 0, "Learner's age in years")
	cmd.Flags().StringSlice("interests", nil, "Comma-separated interest domains (e.g. science,nature)")
	return cmd
}

func newLearnerListCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List learners",
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := c.openStore(cmd)
			if err != nil {
				return err
			}
			defer s.Close()

			learners, err := s.Learners().List(cmd.Context())
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if len(learners) == 0 {
				fmt.Fprintln(out, "No learners yet.")
				return nil
			}
			fmt.Fprintf(out, "%-36s  %-16s  %3s  %s\n", "ID", "Name", "Age", "Interests")
			fmt.Fprintln(out, strings.Repeat("─", 80))
			for _, l := range learners {
				fmt.Fprintf(out, "%-36s  %-16s  %3d  %s\n", l.ID, l.Name, l.Age, strings.Join(l.Interests, ", "))
			}
			return nil
		},
	}
}
