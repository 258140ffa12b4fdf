package store

import (
	"context"
	"fmt"

	entsql "entgo.io/ent/dialect/sql"
	"github.com/google/uuid"
)

// nextSequence advances a learner's timeline and returns the new position.
// Ratings, sessions and baselines share the timeline, so one learner's
// records merge into a single order without relying on timestamps.
//
// q must be the transaction that writes the numbered row. A rollback hands
// the position back.
func nextSequence(ctx context.Context, q dbtx, learnerID uuid.UUID) (int64, error) {
	b := builder()
	bump := b.Insert(learnerTimelinesTable.Name).
		Columns("learner_id", "last_sequence").
		Values(learnerID.String(), 1).
		OnConflict(
			entsql.ConflictColumns("learner_id"),
			entsql.ResolveWith(func(u *entsql.UpdateSet) {
				u.Add("last_sequence", 1)
			}),
		)
	if err := exec(ctx, q, bump); err != nil {
		return 0, fmt.Errorf("advance timeline: %w", err)
	}

	sel := b.Select("last_sequence").
		From(b.Table(learnerTimelinesTable.Name)).
		Where(entsql.EQ("learner_id", learnerID.String()))
	rows, err := query(ctx, q, sel)
	if err != nil {
		return 0, fmt.Errorf("read timeline: %w", err)
	}
	defer rows.Close()

	if !rows.Next() {
		if err := rows.Err(); err != nil {
			return 0, fmt.Errorf("read timeline: %w", err)
		}
		return 0, fmt.Errorf("timeline for learner %s: %w", learnerID, ErrNotFound)
	}
	var seq int64
	if err := rows.Scan(&seq); err != nil {
		return 0, fmt.Errorf("scan timeline: %w", err)
	}
	return seq, nil
}
