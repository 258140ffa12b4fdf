package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/storyquest/internal/skillgraph"
	"github.com/abhisek/storyquest/internal/ui/theme"
)

func newSkillCmd(c *cli) *cobra.Command {
	skillCmd := &cobra.Command{
		Use:   "skill",
		Short: "Browse the skill catalog",
	}
	skillCmd.AddCommand(newSkillListCmd(c), newSkillValidateCmd())
	return skillCmd
}

func newSkillListCmd(c *cli) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List all skills (optionally filtered by domain or level)",
		RunE: func(cmd *cobra.Command, args []string) error {
			domain, _ := cmd.Flags().GetString("domain")
			level, _ := cmd.Flags().GetInt("level")

			cat, err := c.catalog()
			if err != nil {
				return err
			}

			var skills []skillgraph.Skill
			switch {
			case domain != "" && level != 0:
				return fmt.Errorf("use --domain or --level, not both")
			case domain != "":
				skills = cat.ByDomain(domain)
				if len(skills) == 0 {
					return fmt.Errorf("no skills found for domain %q", domain)
				}
			case level != 0:
				skills = cat.ByLevel(skillgraph.Level(level))
				if len(skills) == 0 {
					return fmt.Errorf("no skills found for level %d", level)
				}
			default:
				skills = cat.Skills()
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, theme.Render(theme.Title, fmt.Sprintf("%-24s  %-24s  %5s  %-8s  %-12s  %s",
				"Slug", "Name", "Level", "Ages", "Domain", "Prerequisites")))
			fmt.Fprintln(out, strings.Repeat("─", 100))

			for _, s := range skills {
				name := s.Name
				if len(name) > 24 {
					name = name[:21] + "..."
				}
				fmt.Fprintf(out, "%-24s  %-24s  %5d  %-8s  %-12s  %s\n",
					s.Slug, name, s.Level, fmt.Sprintf("%d-%d", s.AgeMin, s.AgeMax),
					s.Domain, strings.Join(s.Prerequisites, ", "))
			}

			fmt.Fprintf(out, "\n%d skills\n", len(skills))
			return nil
		},
	}
	cmd.Flags().String("domain", "", "Filter by domain slug (e.g. science)")
	cmd.Flags().Int("level", 0, "Filter by level (1, 2, or 3)")
	return cmd
}

func newSkillValidateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Validate a catalog file (defaults to the embedded catalog)",
		RunE: func(cmd *cobra.Command, args []string) error {
			path, _ := cmd.Flags().GetString("file")

			cat := skillgraph.Default()
			if path != "" {
				var err error
				if cat, err = loadCatalogFile(path); err != nil {
					return err
				}
			}

			fmt.Fprintf(cmd.OutOrStdout(), "%s catalog v%d: %d skills in %d domains\n",
				theme.Render(theme.Up, "OK"), cat.Version(), len(cat.Skills()), len(cat.Domains()))
			return nil
		},
	}
	cmd.Flags().String("file", "", "Path to a catalog JSON file")
	return cmd
}
