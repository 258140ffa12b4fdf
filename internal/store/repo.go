package store

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/abhisek/storyquest/internal/baseline"
	"github.com/abhisek/storyquest/internal/rating"
	"github.com/abhisek/storyquest/internal/skillgraph"
)

// QueryOpts configures history queries with filtering and pagination.
type QueryOpts struct {
	Limit int       // max results (0 = unlimited)
	After int64     // sequence > After
	From  time.Time // created_at >= From
	To    time.Time // created_at <= To
}

// Learner is a registered reader.
type Learner struct {
	ID        uuid.UUID
	Name      string
	Age       int
	Interests []string
	CreatedAt time.Time
}

// InterestSet returns the learner's interest domains as a lookup set.
func (l *Learner) InterestSet() map[string]bool {
	set := make(map[string]bool, len(l.Interests))
	for _, d := range l.Interests {
		set[d] = true
	}
	return set
}

// LearnerRepo manages learner records.
type LearnerRepo interface {
	// Create registers a new learner with a fresh ID.
	Create(ctx context.Context, name string, age int, interests []string) (*Learner, error)

	// Get returns the learner with id, or ErrNotFound.
	Get(ctx context.Context, id uuid.UUID) (*Learner, error)

	// List returns all learners, oldest first.
	List(ctx context.Context) ([]Learner, error)
}

// RatingRecord is one entry in a learner's rating history.
type RatingRecord struct {
	Sequence  int64
	LearnerID uuid.UUID
	Rating    rating.Rating
	TextLevel float64
	Responses int
	CreatedAt time.Time
}

// RatingRepo provides append-only access to rating history.
type RatingRepo interface {
	// Append records a new rating after a batch of responses.
	Append(ctx context.Context, learnerID uuid.UUID, r rating.Rating, textLevel float64, responses int) (*RatingRecord, error)

	// Latest returns the newest rating record, or ErrNotFound.
	Latest(ctx context.Context, learnerID uuid.UUID) (*RatingRecord, error)

	// History returns rating records oldest first.
	History(ctx context.Context, learnerID uuid.UUID, opts QueryOpts) ([]RatingRecord, error)
}

// ProgressRepo stores the latest progress per learner and skill.
type ProgressRepo interface {
	// Upsert replaces the progress record for slug.
	Upsert(ctx context.Context, learnerID uuid.UUID, slug string, p skillgraph.Progress) error

	// Load returns every progress record of the learner.
	Load(ctx context.Context, learnerID uuid.UUID) (skillgraph.ProgressMap, error)
}

// SessionRepo records which skill each session focused on.
type SessionRepo interface {
	// Append records a session on slug with the given objective kind.
	Append(ctx context.Context, learnerID uuid.UUID, slug, objective string) error

	// Recent returns up to n session slugs, oldest first.
	Recent(ctx context.Context, learnerID uuid.UUID, n int) ([]string, error)
}

// BaselineRepo stores placement results.
type BaselineRepo interface {
	// Save records a baseline result.
	Save(ctx context.Context, learnerID uuid.UUID, res baseline.Result) error

	// Latest returns the newest baseline result, or ErrNotFound.
	Latest(ctx context.Context, learnerID uuid.UUID) (*baseline.Result, error)
}
