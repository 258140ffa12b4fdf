package store

import (
	"entgo.io/ent/dialect/sql/schema"
	"entgo.io/ent/schema/field"
)

var (
	learnersColumns = []*schema.Column{
		{Name: "id", Type: field.TypeUUID},
		{Name: "name", Type: field.TypeString},
		{Name: "age", Type: field.TypeInt},
		{Name: "interests", Type: field.TypeJSON},
		{Name: "created_at", Type: field.TypeTime},
	}
	learnersTable = &schema.Table{
		Name:       "learners",
		Columns:    learnersColumns,
		PrimaryKey: []*schema.Column{learnersColumns[0]},
	}

	// Rating history is append-only; the newest row is the current rating.
	ratingEventsColumns = []*schema.Column{
		{Name: "id", Type: field.TypeInt64, Increment: true},
		{Name: "sequence", Type: field.TypeInt64},
		{Name: "learner_id", Type: field.TypeUUID},
		{Name: "global", Type: field.TypeFloat64},
		{Name: "literal", Type: field.TypeFloat64},
		{Name: "inference", Type: field.TypeFloat64},
		{Name: "vocabulary", Type: field.TypeFloat64},
		{Name: "summary", Type: field.TypeFloat64},
		{Name: "rd", Type: field.TypeFloat64},
		{Name: "text_level", Type: field.TypeFloat64},
		{Name: "responses", Type: field.TypeInt},
		{Name: "created_at", Type: field.TypeTime},
	}
	ratingEventsTable = &schema.Table{
		Name:       "rating_events",
		Columns:    ratingEventsColumns,
		PrimaryKey: []*schema.Column{ratingEventsColumns[0]},
		ForeignKeys: []*schema.ForeignKey{{
			Symbol:     "rating_events_learners_ratings",
			Columns:    []*schema.Column{ratingEventsColumns[2]},
			RefColumns: []*schema.Column{learnersColumns[0]},
			OnDelete:   schema.Cascade,
		}},
		Indexes: []*schema.Index{{
			Name:    "ratingevent_learner_id_sequence",
			Unique:  true,
			Columns: []*schema.Column{ratingEventsColumns[2], ratingEventsColumns[1]},
		}},
	}

	skillProgressColumns = []*schema.Column{
		{Name: "id", Type: field.TypeInt64, Increment: true},
		{Name: "learner_id", Type: field.TypeUUID},
		{Name: "skill_slug", Type: field.TypeString},
		{Name: "attempts", Type: field.TypeInt},
		{Name: "correct", Type: field.TypeInt},
		{Name: "mastery", Type: field.TypeFloat64},
		{Name: "dominated", Type: field.TypeBool},
		{Name: "updated_at", Type: field.TypeTime},
	}
	skillProgressTable = &schema.Table{
		Name:       "skill_progress",
		Columns:    skillProgressColumns,
		PrimaryKey: []*schema.Column{skillProgressColumns[0]},
		ForeignKeys: []*schema.ForeignKey{{
			Symbol:     "skill_progress_learners_progress",
			Columns:    []*schema.Column{skillProgressColumns[1]},
			RefColumns: []*schema.Column{learnersColumns[0]},
			OnDelete:   schema.Cascade,
		}},
		Indexes: []*schema.Index{{
			Name:    "skillprogress_learner_id_skill_slug",
			Unique:  true,
			Columns: []*schema.Column{skillProgressColumns[1], skillProgressColumns[2]},
		}},
	}

	sessionEntriesColumns = []*schema.Column{
		{Name: "id", Type: field.TypeInt64, Increment: true},
		{Name: "sequence", Type: field.TypeInt64},
		{Name: "learner_id", Type: field.TypeUUID},
		{Name: "skill_slug", Type: field.TypeString},
		{Name: "objective", Type: field.TypeString},
		{Name: "created_at", Type: field.TypeTime},
	}
	sessionEntriesTable = &schema.Table{
		Name:       "session_entries",
		Columns:    sessionEntriesColumns,
		PrimaryKey: []*schema.Column{sessionEntriesColumns[0]},
		ForeignKeys: []*schema.ForeignKey{{
			Symbol:     "session_entries_learners_sessions",
			Columns:    []*schema.Column{sessionEntriesColumns[2]},
			RefColumns: []*schema.Column{learnersColumns[0]},
			OnDelete:   schema.Cascade,
		}},
		Indexes: []*schema.Index{{
			Name:    "sessionentry_learner_id_sequence",
			Unique:  true,
			Columns: []*schema.Column{sessionEntriesColumns[2], sessionEntriesColumns[1]},
		}},
	}

	baselineResultsColumns = []*schema.Column{
		{Name: "id", Type: field.TypeInt64, Increment: true},
		{Name: "sequence", Type: field.TypeInt64},
		{Name: "learner_id", Type: field.TypeUUID},
		{Name: "level", Type: field.TypeFloat64},
		{Name: "comprehension_score", Type: field.TypeFloat64},
		{Name: "confidence", Type: field.TypeString},
		{Name: "texts_completed", Type: field.TypeInt},
		{Name: "per_category", Type: field.TypeJSON},
		{Name: "created_at", Type: field.TypeTime},
	}
	baselineResultsTable = &schema.Table{
		Name:       "baseline_results",
		Columns:    baselineResultsColumns,
		PrimaryKey: []*schema.Column{baselineResultsColumns[0]},
		ForeignKeys: []*schema.ForeignKey{{
			Symbol:     "baseline_results_learners_baselines",
			Columns:    []*schema.Column{baselineResultsColumns[2]},
			RefColumns: []*schema.Column{learnersColumns[0]},
			OnDelete:   schema.Cascade,
		}},
		Indexes: []*schema.Index{{
			Name:    "baselineresult_learner_id_sequence",
			Unique:  true,
			Columns: []*schema.Column{baselineResultsColumns[2], baselineResultsColumns[1]},
		}},
	}

	// One row per learner holding the last position handed out on its timeline.
	learnerTimelinesColumns = []*schema.Column{
		{Name: "learner_id", Type: field.TypeUUID},
		{Name: "last_sequence", Type: field.TypeInt64},
	}
	learnerTimelinesTable = &schema.Table{
		Name:       "learner_timelines",
		Columns:    learnerTimelinesColumns,
		PrimaryKey: []*schema.Column{learnerTimelinesColumns[0]},
		ForeignKeys: []*schema.ForeignKey{{
			Symbol:     "learner_timelines_learners_timeline",
			Columns:    []*schema.Column{learnerTimelinesColumns[0]},
			RefColumns: []*schema.Column{learnersColumns[0]},
			OnDelete:   schema.Cascade,
		}},
	}

	tables = []*schema.Table{
		learnersTable,
		ratingEventsTable,
		skillProgressTable,
		sessionEntriesTable,
		baselineResultsTable,
		learnerTimelinesTable,
	}
)

func init() {
	ratingEventsTable.ForeignKeys[0].RefTable = learnersTable
	skillProgressTable.ForeignKeys[0].RefTable = learnersTable
	sessionEntriesTable.ForeignKeys[0].RefTable = learnersTable
	baselineResultsTable.ForeignKeys[0].RefTable = learnersTable
	learnerTimelinesTable.ForeignKeys[0].RefTable = learnersTable
}
