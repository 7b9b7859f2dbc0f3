package formatters

import (
	"encoding/json"
	"strings"
	"testing"

	"careerpath/internal/types"
)

func sampleATSResult() types.ATSResult {
	return types.ATSResult{
		TotalScore: 82,
		Grade:      "A",
		GradeText:  "Excellent",
		Breakdown: types.ScoreBreakdown{
			KeywordScore:    41.5,
			FormattingScore: 18.0,
			SkillScore:      12.5,
			ExperienceScore: 10.0,
		},
		Suggestions:     []string{"Add more quantifiable achievements"},
		MissingKeywords: []string{"kubernetes"},
	}
}

func TestJSONFormatterRoundTrip(t *testing.T) {
	out, err := GlobalRegistry.Format(sampleATSResult(), "json")
	if err != nil {
		t.Fatalf("Format returned error: %v", err)
	}

	var decoded types.ATSResult
	if err := json.Unmarshal([]byte(out), &decoded); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}
	if decoded.TotalScore != 82 || decoded.Grade != "A" {
		t.Errorf("round trip lost data: got score=%d grade=%q", decoded.TotalScore, decoded.Grade)
	}
}

func TestATSTextFormatter(t *testing.T) {
	out, err := GlobalRegistry.Format(sampleATSResult(), "text")
	if err != nil {
		t.Fatalf("Format returned error: %v", err)
	}

	for _, want := range []string{"82/100", "Grade A", "kubernetes", "Add more quantifiable achievements"} {
		if !strings.Contains(out, want) {
			t.Errorf("text output missing %q:\n%s", want, out)
		}
	}
}

func TestATSMarkdownFormatterHasTable(t *testing.T) {
	out, err := GlobalRegistry.Format(sampleATSResult(), "markdown")
	if err != nil {
		t.Fatalf("Format returned error: %v", err)
	}
	if !strings.Contains(out, "| Component | Score |") {
		t.Errorf("markdown output missing breakdown table:\n%s", out)
	}
}

func TestMatchResultFormatters(t *testing.T) {
	result := types.MatchResult{
		OverallMatch:   73.4,
		MatchLevel:     "good",
		KeywordMatch:   70.0,
		SkillMatch:     80.0,
		MatchedSkills:  []string{"Python", "SQL"},
		MissingSkills:  []string{"Docker"},
		Recommendation: "Good match. Tailor your resume to highlight relevant experience.",
	}

	for _, format := range []string{"text", "markdown"} {
		out, err := GlobalRegistry.Format(result, format)
		if err != nil {
			t.Fatalf("Format(%s) returned error: %v", format, err)
		}
		if !strings.Contains(out, "73.4") || !strings.Contains(out, "Docker") {
			t.Errorf("%s output missing expected content:\n%s", format, out)
		}
	}
}

func TestUnknownTypeFallsBackToJSON(t *testing.T) {
	out, err := GlobalRegistry.Format(map[string]string{"key": "value"}, "json")
	if err != nil {
		t.Fatalf("Format returned error: %v", err)
	}
	if !strings.Contains(out, `"key"`) {
		t.Errorf("JSON fallback produced unexpected output: %s", out)
	}
}

func TestUnknownTypeTextFormatIsError(t *testing.T) {
	if _, err := GlobalRegistry.Format(struct{ X int }{1}, "text"); err == nil {
		t.Error("expected error for text format of an unregistered type")
	}
}
