package cmd

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"

	"github.com/abhisek/storyquest/internal/baseline"
	"github.com/abhisek/storyquest/internal/rating"
)

// readJSONFile decodes path into v, rejecting unknown fields.
func readJSONFile(path string, v any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read %s: %w", path, err)
	}
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return fmt.Errorf("decode %s: %w", path, err)
	}
	return nil
}

// readResponses loads a JSON array of graded responses.
func readResponses(path string) ([]rating.GradedResponse, error) {
	var responses []rating.GradedResponse
	if err := readJSONFile(path, &responses); err != nil {
		return nil, err
	}
	for i, r := range responses {
		if _, err := rating.ParseCategory(string(r.Category)); err != nil {
			return nil, fmt.Errorf("response %d: %w", i, err)
		}
		if r.ItemDifficulty < rating.MinDifficulty || r.ItemDifficulty > rating.MaxDifficulty {
			return nil, fmt.Errorf("response %d: item_difficulty %d outside [%d, %d]",
				i, r.ItemDifficulty, rating.MinDifficulty, rating.MaxDifficulty)
		}
	}
	return responses, nil
}

// readTextResults loads a JSON array of placement text results.
func readTextResults(path string) ([]baseline.TextResult, error) {
	var results []baseline.TextResult
	if err := readJSONFile(path, &results); err != nil {
		return nil, err
	}
	for i, t := range results {
		if err := checkTextLevel(t.Level); err != nil {
			return nil, fmt.Errorf("text %d: %w", i, err)
		}
		if t.Correct > t.TotalQuestions || t.Correct < 0 {
			return nil, fmt.Errorf("text %d: correct %d out of range for %d questions", i, t.Correct, t.TotalQuestions)
		}
		for c := range t.CorrectByCategory {
			if _, err := rating.ParseCategory(string(c)); err != nil {
				return nil, fmt.Errorf("text %d: %w", i, err)
			}
		}
	}
	return results, nil
}

func checkTextLevel(level float64) error {
	if !rating.ValidTextLevel(level) {
		return fmt.Errorf("text level %v must be within [%.0f, %.0f] in steps of 0.5",
			level, rating.MinTextLevel, rating.MaxTextLevel)
	}
	return nil
}
