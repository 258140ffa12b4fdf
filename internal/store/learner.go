package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	entsql "entgo.io/ent/dialect/sql"
	"github.com/google/uuid"
)

// learnerRepo implements LearnerRepo.
type learnerRepo struct {
	db dbtx
}

var learnerColumns = []string{"id", "name", "age", "interests", "created_at"}

func (r *learnerRepo) Create(ctx context.Context, name string, age int, interests []string) (*Learner, error) {
	if interests == nil {
		interests = []string{}
	}
	raw, err := json.Marshal(interests)
	if err != nil {
		return nil, fmt.Errorf("marshal interests: %w", err)
	}

	l := &Learner{
		ID:        uuid.New(),
		Name:      name,
		Age:       age,
		Interests: interests,
		CreatedAt: time.Now().UTC().Truncate(time.Second),
	}
	stmt := builder().Insert(learnersTable.Name).
		Columns(learnerColumns...).
		Values(l.ID.String(), l.Name, l.Age, string(raw), l.CreatedAt)
	if err := exec(ctx, r.db, stmt); err != nil {
		return nil, fmt.Errorf("save learner: %w", err)
	}
	return l, nil
}

func (r *learnerRepo) Get(ctx context.Context, id uuid.UUID) (*Learner, error) {
	b := builder()
	stmt := b.Select(learnerColumns...).
		From(b.Table(learnersTable.Name)).
		Where(entsql.EQ("id", id.String()))

	rows, err := query(ctx, r.db, stmt)
	if err != nil {
		return nil, fmt.Errorf("query learner: %w", err)
	}
	defer rows.Close()

	if !rows.Next() {
		if err := rows.Err(); err != nil {
			return nil, fmt.Errorf("query learner: %w", err)
		}
		return nil, fmt.Errorf("learner %s: %w", id, ErrNotFound)
	}
	return scanLearner(rows)
}

func (r *learnerRepo) List(ctx context.Context) ([]Learner, error) {
	b := builder()
	stmt := b.Select(learnerColumns...).
		From(b.Table(learnersTable.Name)).
		OrderBy("created_at", "name")

	rows, err := query(ctx, r.db, stmt)
	if err != nil {
		return nil, fmt.Errorf("query learners: %w", err)
	}
	defer rows.Close()

	var result []Learner
	for rows.Next() {
		l, err := scanLearner(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *l)
	}
	return result, rows.Err()
}

func scanLearner(rows *sql.Rows) (*Learner, error) {
	var (
		l   Learner
		id  string
		raw []byte
	)
	if err := rows.Scan(&id, &l.Name, &l.Age, &raw, &l.CreatedAt); err != nil {
		return nil, fmt.Errorf("scan learner: %w", err)
	}
	parsed, err := uuid.Parse(id)
	if err != nil {
		return nil, fmt.Errorf("parse learner id %q: %w", id, err)
	}
	l.ID = parsed
	if err := json.Unmarshal(raw, &l.Interests); err != nil {
		return nil, fmt.Errorf("unmarshal interests: %w", err)
	}
	return &l, nil
}
