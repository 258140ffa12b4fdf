package store

import (
	"context"
	"fmt"
	"time"

	entsql "entgo.io/ent/dialect/sql"
	"github.com/google/uuid"

	"github.com/abhisek/storyquest/internal/rating"
)

// ratingRepo implements RatingRepo.
type ratingRepo struct {
	db dbtx
}

var ratingColumns = []string{
	"sequence", "learner_id", "global", "literal", "inference", "vocabulary",
	"summary", "rd", "text_level", "responses", "created_at",
}

func (r *ratingRepo) Append(ctx context.Context, learnerID uuid.UUID, rt rating.Rating, textLevel float64, responses int) (*RatingRecord, error) {
	if err := rt.Validate(); err != nil {
		return nil, err
	}
	rec := &RatingRecord{
		LearnerID: learnerID,
		Rating:    rt,
		TextLevel: textLevel,
		Responses: responses,
		CreatedAt: time.Now().UTC().Truncate(time.Second),
	}
	err := inTx(ctx, r.db, func(q dbtx) error {
		seq, err := nextSequence(ctx, q, learnerID)
		if err != nil {
			return err
		}
		rec.Sequence = seq
		stmt := builder().Insert(ratingEventsTable.Name).
			Columns(ratingColumns...).
			Values(seq, learnerID.String(), rt.Global, rt.Literal, rt.Inference, rt.Vocabulary,
				rt.Summary, rt.RD, textLevel, responses, rec.CreatedAt)
		if err := exec(ctx, q, stmt); err != nil {
			return fmt.Errorf("save rating event: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return rec, nil
}

func (r *ratingRepo) Latest(ctx context.Context, learnerID uuid.UUID) (*RatingRecord, error) {
	b := builder()
	stmt := b.Select(ratingColumns...).
		From(b.Table(ratingEventsTable.Name)).
		Where(entsql.EQ("learner_id", learnerID.String())).
		OrderBy(entsql.Desc("sequence")).
		Limit(1)

	records, err := r.fetch(ctx, stmt)
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("rating for learner %s: %w", learnerID, ErrNotFound)
	}
	return &records[0], nil
}

func (r *ratingRepo) History(ctx context.Context, learnerID uuid.UUID, opts QueryOpts) ([]RatingRecord, error) {
	b := builder()
	stmt := b.Select(ratingColumns...).
		From(b.Table(ratingEventsTable.Name)).
		Where(entsql.EQ("learner_id", learnerID.String())).
		OrderBy("sequence")

	if opts.After > 0 {
		stmt.Where(entsql.GT("sequence", opts.After))
	}
	if !opts.From.IsZero() {
		stmt.Where(entsql.GTE("created_at", opts.From))
	}
	if !opts.To.IsZero() {
		stmt.Where(entsql.LTE("created_at", opts.To))
	}
	if opts.Limit > 0 {
		stmt.Limit(opts.Limit)
	}
	return r.fetch(ctx, stmt)
}

func (r *ratingRepo) fetch(ctx context.Context, stmt *entsql.Selector) ([]RatingRecord, error) {
	rows, err := query(ctx, r.db, stmt)
	if err != nil {
		return nil, fmt.Errorf("query rating events: %w", err)
	}
	defer rows.Close()

	var result []RatingRecord
	for rows.Next() {
		var (
			rec RatingRecord
			id  string
		)
		rt := &rec.Rating
		err := rows.Scan(&rec.Sequence, &id, &rt.Global, &rt.Literal, &rt.Inference, &rt.Vocabulary,
			&rt.Summary, &rt.RD, &rec.TextLevel, &rec.Responses, &rec.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("scan rating event: %w", err)
		}
		if rec.LearnerID, err = uuid.Parse(id); err != nil {
			return nil, fmt.Errorf("parse learner id %q: %w", id, err)
		}
		result = append(result, rec)
	}
	return result, rows.Err()
}
