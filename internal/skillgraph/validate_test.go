package skillgraph

import (
	"errors"
	"strings"
	"testing"
)

func TestValidate_DefaultCatalogPasses(t *testing.T) {
	if _, err := Parse(DefaultJSON()); err != nil {
		t.Fatalf("default catalog validation failed: %v", err)
	}
}

func TestValidateCatalog_DetectsCycle(t *testing.T) {
	domains, skills := minimalCatalog()
	skills = append(skills,
		Skill{Slug: "a", Domain: "d1", Level: LevelBuilding, Prerequisites: []string{"b"}, AgeMin: 5, AgeMax: 9, Order: 3},
		Skill{Slug: "b", Domain: "d1", Level: LevelBuilding, Prerequisites: []string{"a"}, AgeMin: 5, AgeMax: 9, Order: 4},
	)
	err := validateCatalog(domains, skills)
	if err == nil {
		t.Fatal("expected error for cycle, got nil")
	}
	if !strings.Contains(err.Error(), "cycle") {
		t.Errorf("error should mention cycle, got: %v", err)
	}
}

func TestValidateCatalog_DetectsDanglingPrereq(t *testing.T) {
	domains, skills := minimalCatalog()
	skills = append(skills, Skill{Slug: "b", Domain: "d1", Level: LevelBuilding, Prerequisites: []string{"nonexistent"}, AgeMin: 5, AgeMax: 9, Order: 3})
	err := validateCatalog(domains, skills)
	if err == nil {
		t.Fatal("expected error for dangling prerequisite, got nil")
	}
	if !strings.Contains(err.Error(), "nonexistent") {
		t.Errorf("error should mention the missing slug, got: %v", err)
	}
	if !errors.Is(err, ErrInvalidCatalog) {
		t.Errorf("error should wrap ErrInvalidCatalog, got: %v", err)
	}
}

func TestValidateCatalog_DetectsDuplicateSlug(t *testing.T) {
	domains, skills := minimalCatalog()
	dup := skills[0]
	dup.Order = 3
	skills = append(skills, dup)
	err := validateCatalog(domains, skills)
	if err == nil {
		t.Fatal("expected error for duplicate slug, got nil")
	}
	if !strings.Contains(err.Error(), "duplicate") {
		t.Errorf("error should mention duplicate, got: %v", err)
	}
}

func TestValidateCatalog_LevelRules(t *testing.T) {
	tests := []struct {
		name  string
		skill Skill
		want  string
	}{
		{
			name:  "level one with prerequisites",
			skill: Skill{Slug: "x", Domain: "d1", Level: LevelFoundation, Prerequisites: []string{"s1"}, AgeMin: 5, AgeMax: 9, Order: 3},
			want:  "level-1 skills must have no prerequisites",
		},
		{
			name:  "level two without prerequisites",
			skill: Skill{Slug: "x", Domain: "d1", Level: LevelBuilding, AgeMin: 5, AgeMax: 9, Order: 3},
			want:  "need at least one prerequisite",
		},
		{
			name:  "level out of range",
			skill: Skill{Slug: "x", Domain: "d1", Level: 4, Prerequisites: []string{"s1"}, AgeMin: 5, AgeMax: 9, Order: 3},
			want:  "level must be 1, 2 or 3",
		},
		{
			name:  "inverted age range",
			skill: Skill{Slug: "x", Domain: "d1", Level: LevelFoundation, AgeMin: 10, AgeMax: 6, Order: 3},
			want:  "age_min 10 exceeds age_max 6",
		},
		{
			name:  "unknown domain",
			skill: Skill{Slug: "x", Domain: "nowhere", Level: LevelFoundation, AgeMin: 5, AgeMax: 9, Order: 3},
			want:  "unknown domain",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			domains, skills := minimalCatalog()
			skills = append(skills, tt.skill)
			err := validateCatalog(domains, skills)
			if err == nil {
				t.Fatal("expected error, got nil")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("error should contain %q, got: %v", tt.want, err)
			}
		})
	}
}

func TestValidateCatalog_OrderMustBeDense(t *testing.T) {
	domains, skills := minimalCatalog()
	skills[1].Order = 5
	err := validateCatalog(domains, skills)
	if err == nil {
		t.Fatal("expected error for order gap, got nil")
	}
	if !strings.Contains(err.Error(), "gap at 2") {
		t.Errorf("error should mention the gap, got: %v", err)
	}
}

func TestValidateCatalog_DomainNeedsThreeLevels(t *testing.T) {
	domains, skills := minimalCatalog()
	domains[0].Levels = []string{"only one"}
	err := validateCatalog(domains, skills)
	if err == nil {
		t.Fatal("expected error for missing level names, got nil")
	}
	if !strings.Contains(err.Error(), "must name 3 levels") {
		t.Errorf("error should mention level names, got: %v", err)
	}
}

func TestValidateCatalog_EmptyDomain(t *testing.T) {
	domains, skills := minimalCatalog()
	domains = append(domains, Domain{Slug: "empty", Name: "Empty", Levels: []string{"a", "b", "c"}})
	err := validateCatalog(domains, skills)
	if err == nil {
		t.Fatal("expected error for empty domain, got nil")
	}
	if !strings.Contains(err.Error(), "has no skills") {
		t.Errorf("error should mention empty domain, got: %v", err)
	}
}

func TestParse_SchemaRejectsMalformed(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"not json", `{`},
		{"missing skills", `{"version": 1, "domains": []}`},
		{"level as string", `{"version": 1, "domains": [{"slug": "d", "name": "D", "levels": ["a","b","c"]}],
			"skills": [{"slug": "s", "name": "S", "domain": "d", "level": "one", "core_concept": "c",
			"prerequisites": [], "age_min": 5, "age_max": 9, "order": 1}]}`},
		{"unknown field", `{"version": 1, "domains": [{"slug": "d", "name": "D", "levels": ["a","b","c"], "color": "red"}],
			"skills": [{"slug": "s", "name": "S", "domain": "d", "level": 1, "core_concept": "c",
			"prerequisites": [], "age_min": 5, "age_max": 9, "order": 1}]}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.data))
			if err == nil {
				t.Fatal("expected error, got nil")
			}
			if !errors.Is(err, ErrInvalidCatalog) {
				t.Errorf("error should wrap ErrInvalidCatalog, got: %v", err)
			}
		})
	}
}

func TestParse_IntegrityAfterSchema(t *testing.T) {
	data := `{"version": 2, "domains": [{"slug": "d", "name": "D", "levels": ["a","b","c"]}],
		"skills": [{"slug": "s", "name": "S", "domain": "d", "level": 2, "core_concept": "c",
		"prerequisites": ["ghost"], "age_min": 5, "age_max": 9, "order": 1}]}`
	_, err := Parse([]byte(data))
	if err == nil {
		t.Fatal("expected integrity error, got nil")
	}
	if !strings.Contains(err.Error(), "ghost") {
		t.Errorf("error should mention the missing prerequisite, got: %v", err)
	}
}

// minimalCatalog returns a valid two-skill catalog in a single domain.
func minimalCatalog() ([]Domain, []Skill) {
	domains := []Domain{{Slug: "d1", Name: "Domain One", Levels: []string{"L1", "L2", "L3"}}}
	skills := []Skill{
		{Slug: "s1", Domain: "d1", Level: LevelFoundation, AgeMin: 5, AgeMax: 9, Order: 1},
		{Slug: "s2", Domain: "d1", Level: LevelBuilding, Prerequisites: []string{"s1"}, AgeMin: 5, AgeMax: 9, Order: 2},
	}
	return domains, skills
}
