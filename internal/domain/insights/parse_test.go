package insights

import (
	"errors"
	"testing"

	"soycraft-insights/internal/domain/triage"
)

func TestParseAssessment_PlainJSON(t *testing.T) {
	raw := `{"summary":"Stool looks fine.","recommendations":"Keep the current diet.","riskLevel":"normal","ownerMessage":"All good!"}`

	got, err := ParseAssessment(raw)
	if err != nil {
		t.Fatalf("ParseAssessment returned error: %v", err)
	}
	if got.Summary != "Stool looks fine." {
		t.Fatalf("unexpected summary: %q", got.Summary)
	}
	if got.RiskLevel != triage.RiskNormal {
		t.Fatalf("expected normal, got %s", got.RiskLevel)
	}
}

func TestParseAssessment_StripsMarkdownFences(t *testing.T) {
	raw := "```json\n{\"summary\":\"ok\",\"recommendations\":\"r\",\"riskLevel\":\"watch\",\"ownerMessage\":\"m\"}\n```"

	got, err := ParseAssessment(raw)
	if err != nil {
		t.Fatalf("ParseAssessment returned error: %v", err)
	}
	if got.RiskLevel != triage.RiskWatch {
		t.Fatalf("expected watch, got %s", got.RiskLevel)
	}
}

func TestParseAssessment_MissingKey(t *testing.T) {
	raw := `{"summary":"ok","recommendations":"r","ownerMessage":"m"}`

	_, err := ParseAssessment(raw)
	var parseErr *ParseError
	if !errors.As(err, &parseErr) {
		t.Fatalf("expected ParseError for missing riskLevel, got %v", err)
	}
}

func TestParseAssessment_UnknownTierIsNotCoerced(t *testing.T) {
	// "critical" no es un tier: error duro, jamás un default
	raw := `{"summary":"ok","recommendations":"r","riskLevel":"critical","ownerMessage":"m"}`

	_, err := ParseAssessment(raw)
	var parseErr *ParseError
	if !errors.As(err, &parseErr) {
		t.Fatalf("expected ParseError for unknown tier, got %v", err)
	}
}

func TestParseAssessment_NotJSON(t *testing.T) {
	_, err := ParseAssessment("I am sorry, I cannot help with that.")
	var parseErr *ParseError
	if !errors.As(err, &parseErr) {
		t.Fatalf("expected ParseError for prose, got %v", err)
	}
}

func TestParseAssessment_EmptySummary(t *testing.T) {
	raw := `{"summary":"  ","recommendations":"r","riskLevel":"normal","ownerMessage":"m"}`

	_, err := ParseAssessment(raw)
	var parseErr *ParseError
	if !errors.As(err, &parseErr) {
		t.Fatalf("expected ParseError for blank summary, got %v", err)
	}
}

func TestParseBreedBreakdown_Valid(t *testing.T) {
	raw := `{
		"breakdown": [
			{"label": "Border Collie", "percentage": 60, "traits": "herding drive"},
			{"label": "Labrador", "percentage": 40, "traits": "food motivated"}
		],
		"originStory": "A lively mix.",
		"watchouts": ["Watch joint load during growth."]
	}`

	got, err := ParseBreedBreakdown(raw)
	if err != nil {
		t.Fatalf("ParseBreedBreakdown returned error: %v", err)
	}
	if len(got.Breakdown) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(got.Breakdown))
	}
	if got.Breakdown[0].Label != "Border Collie" {
		t.Fatalf("unexpected label %q", got.Breakdown[0].Label)
	}
}

func TestParseBreedBreakdown_PercentagesMustSumToRoughly100(t *testing.T) {
	raw := `{
		"breakdown": [{"label": "Corgi", "percentage": 30, "traits": "short"}],
		"originStory": "s",
		"watchouts": []
	}`

	_, err := ParseBreedBreakdown(raw)
	var parseErr *ParseError
	if !errors.As(err, &parseErr) {
		t.Fatalf("expected ParseError for sum 30, got %v", err)
	}
}

func TestParseBreedBreakdown_EmptyBreakdown(t *testing.T) {
	raw := `{"breakdown": [], "originStory": "s", "watchouts": []}`

	_, err := ParseBreedBreakdown(raw)
	var parseErr *ParseError
	if !errors.As(err, &parseErr) {
		t.Fatalf("expected ParseError for empty breakdown, got %v", err)
	}
}

func TestStripFences(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{`{"a":1}`, `{"a":1}`},
		{"```json\n{\"a\":1}\n```", `{"a":1}`},
		{"```\n{\"a\":1}\n```", `{"a":1}`},
		{"  {\"a\":1}  ", `{"a":1}`},
	}
	for _, tc := range cases {
		if got := stripFences(tc.in); got != tc.want {
			t.Fatalf("stripFences(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}
