package scoring

import (
	"reflect"
	"strings"
	"testing"

	"careerpath/internal/types"
)

func TestComputeJobMatchEmptyDescription(t *testing.T) {
	result := ComputeJobMatch(types.MatchJobInput{
		ResumeText: "python developer with sql experience",
		Skills:     []string{"Python", "SQL"},
	})

	if result.KeywordMatch != 0 {
		t.Errorf("KeywordMatch = %v, want 0 for empty description", result.KeywordMatch)
	}
	if result.SkillMatch != 50 {
		t.Errorf("SkillMatch = %v, want neutral fallback 50", result.SkillMatch)
	}
	if result.OverallMatch != 20 {
		t.Errorf("OverallMatch = %v, want 20", result.OverallMatch)
	}
	if result.MatchLevel != "Low Match" {
		t.Errorf("MatchLevel = %q, want Low Match", result.MatchLevel)
	}
}

func TestComputeJobMatchTierBoundary(t *testing.T) {
	// Keyword match 100, skill match 0: overall lands exactly on 60.
	result := ComputeJobMatch(types.MatchJobInput{
		ResumeText:     "I run everything on docker.",
		Skills:         nil,
		JobDescription: "docker docker docker",
	})

	if result.KeywordMatch != 100 {
		t.Errorf("KeywordMatch = %v, want 100", result.KeywordMatch)
	}
	if result.SkillMatch != 0 {
		t.Errorf("SkillMatch = %v, want 0", result.SkillMatch)
	}
	if result.OverallMatch != 60 {
		t.Errorf("OverallMatch = %v, want 60", result.OverallMatch)
	}
	if result.MatchLevel != "Moderate Match" {
		t.Errorf("MatchLevel = %q, want Moderate Match", result.MatchLevel)
	}
}

func TestMatchLevelBoundaries(t *testing.T) {
	tests := []struct {
		overall float64
		want    string
	}{
		{100, "Strong Match"},
		{75, "Strong Match"},
		{74.9, "Moderate Match"},
		{50, "Moderate Match"},
		{49.9, "Partial Match"},
		{30, "Partial Match"},
		{29.9, "Low Match"},
		{0, "Low Match"},
	}

	for _, tt := range tests {
		level, recommendation := matchLevelFor(tt.overall)
		if level != tt.want {
			t.Errorf("matchLevelFor(%v) = %q, want %q", tt.overall, level, tt.want)
		}
		if recommendation == "" {
			t.Errorf("matchLevelFor(%v) returned empty recommendation", tt.overall)
		}
	}
}

func TestKeywordMatchUsesSubstrings(t *testing.T) {
	// "test" should match inside "testing"; word boundaries do not apply here.
	result := ComputeJobMatch(types.MatchJobInput{
		ResumeText:     "responsible for testing frameworks",
		JobDescription: "test test",
	})

	if len(result.MatchedKeywords) != 1 || result.MatchedKeywords[0] != "test" {
		t.Errorf("MatchedKeywords = %v, want [test]", result.MatchedKeywords)
	}
}

func TestSkillIndicatorSubstringMatch(t *testing.T) {
	result := ComputeJobMatch(types.MatchJobInput{
		ResumeText:     "backend engineer",
		Skills:         []string{"Node.js"},
		JobDescription: "We want node expertise.",
	})

	found := false
	for _, s := range result.MatchedSkills {
		if s == "node" {
			found = true
		}
	}
	if !found {
		t.Errorf("MatchedSkills = %v, want to include node via Node.js", result.MatchedSkills)
	}
}

func TestTopKeywordsOrdering(t *testing.T) {
	got := topKeywords("alpha beta alpha gamma beta delta", 30)
	want := []string{"alpha", "beta", "gamma", "delta"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("topKeywords = %v, want %v", got, want)
	}
}

func TestTopKeywordsLimit(t *testing.T) {
	var words []string
	for i := 0; i < 26; i++ {
		for j := 0; j < 2; j++ {
			words = append(words, strings.Repeat(string(rune('a'+i)), 4))
		}
	}
	got := topKeywords(strings.Join(words, " "), topJDKeywords)
	if len(got) != 26 {
		t.Fatalf("got %d keywords, want 26", len(got))
	}

	long := make([]string, 0, 40)
	for i := 0; i < 26; i++ {
		long = append(long, strings.Repeat(string(rune('a'+i)), 4))
	}
	for i := 0; i < 14; i++ {
		long = append(long, strings.Repeat(string(rune('a'+i)), 5))
	}
	got = topKeywords(strings.Join(long, " "), topJDKeywords)
	if len(got) != topJDKeywords {
		t.Errorf("got %d keywords, want capped at %d", len(got), topJDKeywords)
	}
}

func TestTopKeywordsDropsPostingBoilerplate(t *testing.T) {
	got := topKeywords("requirements qualifications responsibilities python", 30)
	want := []string{"python"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("topKeywords = %v, want %v", got, want)
	}
}

func TestComputeJobMatchOutputCaps(t *testing.T) {
	var words []string
	for i := 0; i < 26; i++ {
		words = append(words, strings.Repeat(string(rune('a'+i)), 4))
	}
	jd := strings.Join(words, " ") +
		" python java javascript react angular node sql aws azure docker kubernetes git linux"

	result := ComputeJobMatch(types.MatchJobInput{
		ResumeText:     "",
		Skills:         nil,
		JobDescription: jd,
	})

	if len(result.MissingKeywords) > 15 {
		t.Errorf("MissingKeywords = %d entries, want at most 15", len(result.MissingKeywords))
	}
	if len(result.MissingSkills) > 10 {
		t.Errorf("MissingSkills = %d entries, want at most 10", len(result.MissingSkills))
	}
}

func TestComputeJobMatchIdempotent(t *testing.T) {
	input := types.MatchJobInput{
		ResumeText:     "python engineer who shipped react apps on aws",
		Skills:         []string{"Python", "React", "AWS"},
		JobDescription: "Looking for a python engineer with react and aws experience. Agile team.",
	}

	first := ComputeJobMatch(input)
	second := ComputeJobMatch(input)

	if !reflect.DeepEqual(first, second) {
		t.Errorf("repeated matching diverged:\nfirst:  %+v\nsecond: %+v", first, second)
	}
}
