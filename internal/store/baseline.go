package store

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	entsql "entgo.io/ent/dialect/sql"
	"github.com/google/uuid"

	"github.com/abhisek/storyquest/internal/baseline"
)

// baselineRepo implements BaselineRepo.
type baselineRepo struct {
	db dbtx
}

func (r *baselineRepo) Save(ctx context.Context, learnerID uuid.UUID, res baseline.Result) error {
	perCategory, err := json.Marshal(res.PerCategoryAccuracy)
	if err != nil {
		return fmt.Errorf("marshal per-category accuracy: %w", err)
	}
	return inTx(ctx, r.db, func(q dbtx) error {
		seq, err := nextSequence(ctx, q, learnerID)
		if err != nil {
			return err
		}
		stmt := builder().Insert(baselineResultsTable.Name).
			Columns("sequence", "learner_id", "level", "comprehension_score", "confidence",
				"texts_completed", "per_category", "created_at").
			Values(seq, learnerID.String(), res.Level, res.ComprehensionScore, string(res.Confidence),
				res.TextsCompleted, string(perCategory), time.Now().UTC())
		if err := exec(ctx, q, stmt); err != nil {
			return fmt.Errorf("save baseline result: %w", err)
		}
		return nil
	})
}

func (r *baselineRepo) Latest(ctx context.Context, learnerID uuid.UUID) (*baseline.Result, error) {
	b := builder()
	stmt := b.Select("level", "comprehension_score", "confidence", "texts_completed", "per_category").
		From(b.Table(baselineResultsTable.Name)).
		Where(entsql.EQ("learner_id", learnerID.String())).
		OrderBy(entsql.Desc("sequence")).
		Limit(1)

	rows, err := query(ctx, r.db, stmt)
	if err != nil {
		return nil, fmt.Errorf("query baseline result: %w", err)
	}
	defer rows.Close()

	if !rows.Next() {
		if err := rows.Err(); err != nil {
			return nil, fmt.Errorf("query baseline result: %w", err)
		}
		return nil, fmt.Errorf("baseline for learner %s: %w", learnerID, ErrNotFound)
	}

	var (
		res         baseline.Result
		confidence  string
		perCategory []byte
	)
	if err := rows.Scan(&res.Level, &res.ComprehensionScore, &confidence, &res.TextsCompleted, &perCategory); err != nil {
		return nil, fmt.Errorf("scan baseline result: %w", err)
	}
	res.Confidence = baseline.Confidence(confidence)
	if err := json.Unmarshal(perCategory, &res.PerCategoryAccuracy); err != nil {
		return nil, fmt.Errorf("unmarshal per-category accuracy: %w", err)
	}
	return &res, nil
}
