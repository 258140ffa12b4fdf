package store

import (
	"context"
	"fmt"
	"time"

	entsql "entgo.io/ent/dialect/sql"
	"github.com/google/uuid"

	"github.com/abhisek/storyquest/internal/skillgraph"
)

// progressRepo implements ProgressRepo.
type progressRepo struct {
	db dbtx
}

func (r *progressRepo) Upsert(ctx context.Context, learnerID uuid.UUID, slug string, p skillgraph.Progress) error {
	stmt := builder().Insert(skillProgressTable.Name).
		Columns("learner_id", "skill_slug", "attempts", "correct", "mastery", "dominated", "updated_at").
		Values(learnerID.String(), slug, p.Attempts, p.Correct, p.Mastery, p.Dominated, time.Now().UTC()).
		OnConflict(
			entsql.ConflictColumns("learner_id", "skill_slug"),
			entsql.ResolveWithNewValues(),
		)
	if err := exec(ctx, r.db, stmt); err != nil {
		return fmt.Errorf("save progress for %s: %w", slug, err)
	}
	return nil
}

func (r *progressRepo) Load(ctx context.Context, learnerID uuid.UUID) (skillgraph.ProgressMap, error) {
	b := builder()
	stmt := b.Select("skill_slug", "attempts", "correct", "mastery", "dominated").
		From(b.Table(skillProgressTable.Name)).
		Where(entsql.EQ("learner_id", learnerID.String()))

	rows, err := query(ctx, r.db, stmt)
	if err != nil {
		return nil, fmt.Errorf("query progress: %w", err)
	}
	defer rows.Close()

	progress := skillgraph.ProgressMap{}
	for rows.Next() {
		var (
			slug string
			p    skillgraph.Progress
		)
		if err := rows.Scan(&slug, &p.Attempts, &p.Correct, &p.Mastery, &p.Dominated); err != nil {
			return nil, fmt.Errorf("scan progress: %w", err)
		}
		progress[slug] = p
	}
	return progress, rows.Err()
}
