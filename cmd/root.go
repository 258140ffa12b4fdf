package cmd

import (
	"fmt"
	"os"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/abhisek/storyquest/internal/config"
	"github.com/abhisek/storyquest/internal/logger"
	"github.com/abhisek/storyquest/internal/skillgraph"
	"github.com/abhisek/storyquest/internal/store"
)

// cli carries state shared by every subcommand once the root pre-run has
// loaded configuration.
type cli struct {
	cfg *config.Config
	log logger.Logger
}

func newRootCmd() *cobra.Command {
	c := &cli{cfg: config.New()}

	root := &cobra.Command{
		Use:   "storyquest",
		Short: "Adaptive reading and thinking-skills engine for kids",
		Long: "StoryQuest tracks a young reader's comprehension rating, maps their progress " +
			"through a thinking-skills tree and picks what each story session should teach next.",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return c.setup(cmd)
		},
	}

	root.PersistentFlags().String("db", "", "Path to SQLite database file (overrides STORYQUEST_DB env var)")
	root.PersistentFlags().String("log-level", "", "Log level: debug, info, warn, error (overrides config)")

	root.AddCommand(
		newVersionCmd(),
		newSkillCmd(c),
		newLearnerCmd(c),
		newBaselineCmd(c),
		newRateCmd(c),
		newProgressCmd(c),
		newRecommendCmd(c),
		newNextCmd(c),
	)
	return root
}

// Execute runs the root command.
func Execute() error {
	return newRootCmd().Execute()
}

func (c *cli) setup(cmd *cobra.Command) error {
	cfg, err := config.Load(cmd.Context())
	if err != nil {
		return err
	}
	if lvl, _ := cmd.Flags().GetString("log-level"); lvl != "" {
		cfg.LogLevel = lvl
	}

	logger.Init(cmd.ErrOrStderr())
	if err := logger.SetLevelString(cfg.LogLevel); err != nil {
		return fmt.Errorf("%w: %w", config.ErrInvalidConfig, err)
	}

	c.cfg = cfg
	c.log = logger.Named(cmd.Name())
	return nil
}

// resolveDBPath returns the database path using --db flag (highest priority),
// then db_path from config, then STORYQUEST_DB env var, then the default XDG path.
func (c *cli) resolveDBPath(cmd *cobra.Command) (string, error) {
	if p, _ := cmd.Flags().GetString("db"); p != "" {
		return p, store.EnsureDir(p)
	}
	if c.cfg.DBPath != "" {
		return c.cfg.DBPath, store.EnsureDir(c.cfg.DBPath)
	}
	return store.DefaultDBPath()
}

func (c *cli) openStore(cmd *cobra.Command) (*store.Store, error) {
	dbPath, err := c.resolveDBPath(cmd)
	if err != nil {
		return nil, fmt.Errorf("resolve database path: %w", err)
	}
	s, err := store.Open(dbPath)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	c.log.Debug(cmd.Context(), "store opened", logger.String("path", dbPath))
	return s, nil
}

// catalog returns the configured catalog, falling back to the embedded one.
func (c *cli) catalog() (*skillgraph.Catalog, error) {
	if c.cfg.CatalogPath == "" {
		return skillgraph.Default(), nil
	}
	return loadCatalogFile(c.cfg.CatalogPath)
}

func loadCatalogFile(path string) (*skillgraph.Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog: %w", err)
	}
	cat, err := skillgraph.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cat, nil
}

// learnerFlag parses the required --learner flag.
func learnerFlag(cmd *cobra.Command) (uuid.UUID, error) {
	raw, _ := cmd.Flags().GetString("learner")
	if raw == "" {
		return uuid.Nil, fmt.Errorf("--learner is required")
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, fmt.Errorf("invalid learner id %q: %w", raw, err)
	}
	return id, nil
}
