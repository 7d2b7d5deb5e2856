package commands

import (
	"context"
	"testing"

	"tasknote/internal/domain"
)

func TestFuzzyScore(t *testing.T) {
	tests := []struct {
		name      string
		target    string
		query     string
		wantScore int
		wantMin   int // use this for relative comparisons
	}{
		{
			name:      "exact match",
			target:    "Groceries",
			query:     "Groceries",
			wantScore: 150, // 100 for contains + 50 for prefix
		},
		{
			name:      "prefix match",
			target:    "Groceries weekly",
			query:     "Groceries",
			wantScore: 150,
		},
		{
			name:      "substring match",
			target:    "Weekly groceries",
			query:     "groceries",
			wantScore: 100, // contains only
		},
		{
			name:    "fuzzy match all chars at start",
			target:  "Groceries",
			query:   "gro",
			wantMin: 100, // should be high due to prefix
		},
		{
			name:      "no match",
			target:    "Groceries",
			query:     "xyz",
			wantScore: 0,
		},
		{
			name:      "empty query",
			target:    "Groceries",
			query:     "",
			wantScore: 0,
		},
		{
			name:    "case insensitive",
			target:  "GROCERIES",
			query:   "groceries",
			wantMin: 100,
		},
		{
			name:    "path match",
			target:  "work/sprint-12.md",
			query:   "sprint",
			wantMin: 100,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			score := FuzzyScore(tt.target, tt.query)

			if tt.wantScore > 0 {
				if score != tt.wantScore {
					t.Errorf("expected score %d, got %d", tt.wantScore, score)
				}
			} else if tt.wantMin > 0 {
				if score < tt.wantMin {
					t.Errorf("expected score >= %d, got %d", tt.wantMin, score)
				}
			} else {
				if score != 0 {
					t.Errorf("expected score 0, got %d", score)
				}
			}
		})
	}
}

func TestFuzzyScore_Ordering(t *testing.T) {
	query := "milk"

	exactScore := FuzzyScore("milk", query)
	prefixScore := FuzzyScore("milk and eggs", query)
	containsScore := FuzzyScore("buy milk", query)
	fuzzyScore := FuzzyScore("m-i-l-k", query)

	if exactScore < prefixScore {
		t.Errorf("exact match should score >= prefix: %d < %d", exactScore, prefixScore)
	}
	if prefixScore < containsScore {
		t.Errorf("prefix match should score >= contains: %d < %d", prefixScore, containsScore)
	}
	if containsScore <= fuzzyScore {
		t.Errorf("contains match should score higher than fuzzy: %d <= %d", containsScore, fuzzyScore)
	}
}

func TestFuzzySort(t *testing.T) {
	results := []domain.SearchResult{
		{Name: "random.md", Title: "Random", MatchedText: "nothing", Line: -1},
		{Name: "groceries.md", Title: "Groceries", MatchedText: "buy milk", Line: 3},
		{Name: "cooking.md", Title: "Cooking", MatchedText: "recipes", Line: -1},
		{Name: "groceries.md", Title: "Groceries", MatchedText: "buy milk", Line: 1},
		{Name: "milk.md", Title: "Milk", MatchedText: "Milk", Line: -1},
	}

	sorted := FuzzySort(results, "milk")

	if len(sorted) != 3 {
		t.Fatalf("expected 3 results, got %d", len(sorted))
	}
	if sorted[0].Name != "milk.md" {
		t.Errorf("prefix match should rank first, got %s", sorted[0].Name)
	}
	if sorted[1].Line != 1 || sorted[2].Line != 3 {
		t.Errorf("equal scores should be ordered by line: %d, %d", sorted[1].Line, sorted[2].Line)
	}

	for i := 1; i < len(sorted); i++ {
		if sorted[i].Score > sorted[i-1].Score {
			t.Errorf("results not sorted by score: %d > %d at index %d",
				sorted[i].Score, sorted[i-1].Score, i)
		}
	}
}

func TestSearchCommand_ShortQuery(t *testing.T) {
	repo := newFakeRepo(map[string]string{"milk.md": "- [ ] milk"})

	results, err := NewSearchCommand(repo, "m").Execute(context.Background())
	if err != nil {
		t.Fatalf("Execute failed: %v", err)
	}
	if results != nil {
		t.Errorf("expected no results for one-character query, got %d", len(results))
	}
}

func TestSearchCommand_Execute(t *testing.T) {
	repo := newFakeRepo(map[string]string{"milk.md": "- [ ] milk"})
	repo.searchResults = []domain.SearchResult{
		{Name: "milk.md", Title: "milk", MatchedText: "milk", Line: 0},
	}

	results, err := NewSearchCommand(repo, "milk").Execute(context.Background())
	if err != nil {
		t.Fatalf("Execute failed: %v", err)
	}
	if len(results) != 1 || results[0].Score != 150 {
		t.Errorf("unexpected results: %+v", results)
	}
}
