package store

import (
	"context"
	"fmt"
	"slices"
	"time"

	entsql "entgo.io/ent/dialect/sql"
	"github.com/google/uuid"
)

// sessionRepo implements SessionRepo.
type sessionRepo struct {
	db dbtx
}

func (r *sessionRepo) Append(ctx context.Context, learnerID uuid.UUID, slug, objective string) error {
	return inTx(ctx, r.db, func(q dbtx) error {
		seq, err := nextSequence(ctx, q, learnerID)
		if err != nil {
			return err
		}
		stmt := builder().Insert(sessionEntriesTable.Name).
			Columns("sequence", "learner_id", "skill_slug", "objective", "created_at").
			Values(seq, learnerID.String(), slug, objective, time.Now().UTC())
		if err := exec(ctx, q, stmt); err != nil {
			return fmt.Errorf("save session entry: %w", err)
		}
		return nil
	})
}

func (r *sessionRepo) Recent(ctx context.Context, learnerID uuid.UUID, n int) ([]string, error) {
	if n <= 0 {
		return nil, nil
	}

	b := builder()
	stmt := b.Select("skill_slug").
		From(b.Table(sessionEntriesTable.Name)).
		Where(entsql.EQ("learner_id", learnerID.String())).
		OrderBy(entsql.Desc("sequence")).
		Limit(n)

	rows, err := query(ctx, r.db, stmt)
	if err != nil {
		return nil, fmt.Errorf("query session entries: %w", err)
	}
	defer rows.Close()

	var slugs []string
	for rows.Next() {
		var slug string
		if err := rows.Scan(&slug); err != nil {
			return nil, fmt.Errorf("scan session entry: %w", err)
		}
		slugs = append(slugs, slug)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	// Queried newest first; callers expect chronological order.
	slices.Reverse(slugs)
	return slugs, nil
}
