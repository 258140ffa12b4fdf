package recommend

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/storyquest/internal/skillgraph"
)

func newTestRecommender() *Recommender {
	return New(skillgraph.Default())
}

func slugs(suggestions []Suggestion) []string {
	out := make([]string, len(suggestions))
	for i, s := range suggestions {
		out[i] = s.Slug
	}
	return out
}

func mastered() skillgraph.Progress {
	return skillgraph.Progress{Attempts: 10, Correct: 9, Mastery: 0.9, Dominated: true}
}

func TestRecommend_FreshLearnerGetsRoots(t *testing.T) {
	got := newTestRecommender().Recommend(Request{Age: 7})
	assert.Equal(t, []string{
		"emotions-naming", "science-observing", "logic-sorting", "nature-living-things", "creativity-imagining",
	}, slugs(got))
	for _, s := range got {
		assert.Equal(t, IntentDeepen, s.Intent)
		assert.Equal(t, skillgraph.LevelFoundation, s.Level)
	}
}

func TestRecommend_InterestBoost(t *testing.T) {
	got := newTestRecommender().Recommend(Request{Age: 7, Interests: map[string]bool{"nature": true}})
	require.NotEmpty(t, got)
	assert.Equal(t, "nature-living-things", got[0].Slug)
	assert.InDelta(t, IntentDeepen.BaseScore()+InterestBoost, got[0].Score, 1e-9)
}

func TestRecommend_DeepenAndBridgeAroundDominatedSkill(t *testing.T) {
	req := Request{
		Age:          8,
		Progress:     skillgraph.ProgressMap{"logic-sorting": mastered()},
		CurrentSkill: "logic-sorting",
		Limit:        10,
	}
	got := newTestRecommender().Recommend(req)
	require.GreaterOrEqual(t, len(got), 3)

	assert.Equal(t, "logic-cause-effect", got[0].Slug)
	assert.Equal(t, IntentDeepen, got[0].Intent)
	assert.Equal(t, "logic-patterns", got[1].Slug)
	assert.Equal(t, IntentDeepen, got[1].Intent)

	byslug := map[string]Suggestion{}
	for _, s := range got {
		byslug[s.Slug] = s
	}
	assert.NotContains(t, byslug, "logic-deduction", "locked skill must be excluded")
	assert.Equal(t, IntentBridge, byslug["emotions-naming"].Intent)
	assert.InDelta(t, IntentBridge.BaseScore(), byslug["emotions-naming"].Score, 1e-9)
}

func TestRecommend_ReinforceTakesPriority(t *testing.T) {
	req := Request{
		Age: 8,
		Progress: skillgraph.ProgressMap{
			"logic-sorting":  mastered(),
			"logic-patterns": {Attempts: 5, Correct: 1, Mastery: 0.3},
		},
		CurrentSkill: "logic-sorting",
	}
	got := newTestRecommender().Recommend(req)
	require.NotEmpty(t, got)
	assert.Equal(t, "logic-patterns", got[0].Slug)
	assert.Equal(t, IntentReinforce, got[0].Intent)
}

func TestRecommend_ApplyDependentsAcrossDomains(t *testing.T) {
	req := Request{
		Age: 9,
		Progress: skillgraph.ProgressMap{
			"science-observing":  mastered(),
			"science-predicting": mastered(),
		},
		CurrentSkill:        "science-predicting",
		IgnorePrerequisites: true,
		Limit:               20,
	}
	got := newTestRecommender().Recommend(req)
	byslug := map[string]Suggestion{}
	for _, s := range got {
		byslug[s.Slug] = s
	}
	require.Contains(t, byslug, "creativity-inventing")
	assert.Equal(t, IntentApply, byslug["creativity-inventing"].Intent)
	assert.Equal(t, IntentDeepen, byslug["science-experimenting"].Intent)

	// With gating on, the locked dependent disappears.
	req.IgnorePrerequisites = false
	got = newTestRecommender().Recommend(req)
	assert.NotContains(t, slugs(got), "creativity-inventing")
	assert.NotContains(t, slugs(got), "science-experimenting")
}

func TestRecommend_RecencyPenalty(t *testing.T) {
	base := Request{
		Age:          8,
		Progress:     skillgraph.ProgressMap{"logic-sorting": mastered()},
		CurrentSkill: "logic-sorting",
	}

	recent := base
	recent.RecentHistory = []string{"emotions-naming", "logic-cause-effect"}
	got := newTestRecommender().Recommend(recent)
	require.NotEmpty(t, got)
	assert.Equal(t, "logic-patterns", got[0].Slug)
	for _, s := range got {
		if s.Slug == "logic-cause-effect" {
			assert.InDelta(t, IntentDeepen.BaseScore()-MaxRecencyPenalty, s.Score, 1e-9)
		}
	}

	old := base
	old.RecentHistory = []string{"logic-cause-effect", "a", "b", "c", "d", "e", "f"}
	got = newTestRecommender().Recommend(old)
	require.NotEmpty(t, got)
	assert.Equal(t, "logic-cause-effect", got[0].Slug, "entries older than the window must not suppress")
}

func TestRecencyPenalty_Decay(t *testing.T) {
	history := []string{"x", "a", "b", "c", "d", "e", "f"}
	assert.InDelta(t, MaxRecencyPenalty, RecencyPenalty("f", history), 1e-9)
	assert.InDelta(t, MaxRecencyPenalty*5/6, RecencyPenalty("e", history), 1e-9)
	assert.InDelta(t, MaxRecencyPenalty/6, RecencyPenalty("a", history), 1e-9)
	assert.Zero(t, RecencyPenalty("x", history))
	assert.Zero(t, RecencyPenalty("missing", history))
	assert.Zero(t, RecencyPenalty("f", nil))
}

func TestRecommend_CurrentNotDominatedFallsBack(t *testing.T) {
	req := Request{
		Age:          7,
		Progress:     skillgraph.ProgressMap{"logic-sorting": {Attempts: 2, Mastery: 0.7}},
		CurrentSkill: "logic-sorting",
	}
	got := newTestRecommender().Recommend(req)
	assert.NotContains(t, slugs(got), "logic-sorting")
	assert.Len(t, got, 4)
}

func TestRecommend_UnknownCurrentFallsBack(t *testing.T) {
	got := newTestRecommender().Recommend(Request{Age: 7, CurrentSkill: "no-such-skill"})
	assert.Len(t, got, DefaultLimit)
}

func TestRecommend_PoolPrefersLowerLevels(t *testing.T) {
	got := newTestRecommender().Recommend(Request{Age: 9, IgnorePrerequisites: true, Limit: 30})
	require.Len(t, got, len(skillgraph.Default().Skills()))
	for i := 1; i < len(got); i++ {
		assert.LessOrEqual(t, got[i-1].Level, got[i].Level, "levels should be non-decreasing, got %v", slugs(got))
	}
	assert.Equal(t, skillgraph.LevelMastery, got[len(got)-1].Level)
}

func TestRecommend_EverythingDominated(t *testing.T) {
	progress := skillgraph.ProgressMap{}
	for _, s := range skillgraph.Default().Skills() {
		progress[s.Slug] = mastered()
	}
	got := newTestRecommender().Recommend(Request{Age: 9, Progress: progress, CurrentSkill: "logic-sorting"})
	assert.Empty(t, got)
}

func TestRecommend_AgeFilter(t *testing.T) {
	got := newTestRecommender().Recommend(Request{Age: 12, IgnorePrerequisites: true, Limit: 30})
	for _, s := range got {
		sk, err := skillgraph.Default().Skill(s.Slug)
		require.NoError(t, err)
		assert.True(t, skillgraph.AgeEligible(sk, 12), "%s not eligible at 12", s.Slug)
	}
	assert.NotContains(t, slugs(got), "logic-sorting", "logic-sorting tops out at age 10")
}

func TestRecommend_RankingInvariants(t *testing.T) {
	rec := newTestRecommender()
	all := skillgraph.Default().Skills()
	rng := rand.New(rand.NewSource(7))

	for trial := 0; trial < 300; trial++ {
		progress := skillgraph.ProgressMap{}
		for _, s := range all {
			switch rng.Intn(4) {
			case 0:
				progress[s.Slug] = mastered()
			case 1:
				progress[s.Slug] = skillgraph.Progress{Attempts: rng.Intn(6), Mastery: rng.Float64()}
			}
		}
		var history []string
		for i := 0; i < rng.Intn(10); i++ {
			history = append(history, all[rng.Intn(len(all))].Slug)
		}
		req := Request{
			Age:                 5 + rng.Intn(8),
			Interests:           map[string]bool{all[rng.Intn(len(all))].Domain: true},
			Progress:            progress,
			CurrentSkill:        all[rng.Intn(len(all))].Slug,
			RecentHistory:       history,
			IgnorePrerequisites: rng.Intn(2) == 0,
			Limit:               rng.Intn(7),
		}

		got := rec.Recommend(req)
		limit := req.Limit
		if limit <= 0 {
			limit = DefaultLimit
		}
		require.LessOrEqual(t, len(got), limit)
		for i, s := range got {
			require.NotEqual(t, req.CurrentSkill, s.Slug)
			if i > 0 {
				require.GreaterOrEqual(t, got[i-1].Score, s.Score)
			}
			if !req.IgnorePrerequisites {
				sk, _ := skillgraph.Default().Skill(s.Slug)
				require.True(t, skillgraph.IsUnlocked(sk, progress), "%s is locked", s.Slug)
			}
		}

		again := rec.Recommend(req)
		require.Equal(t, got, again, "recommend must be deterministic")
	}
}
