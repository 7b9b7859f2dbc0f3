package scoring

import (
	"reflect"
	"strings"
	"testing"

	"careerpath/internal/types"
)

func TestComputeATSScoreBounds(t *testing.T) {
	tests := []struct {
		name  string
		input types.ScoreResumeInput
	}{
		{
			name:  "empty input",
			input: types.ScoreResumeInput{},
		},
		{
			name: "rich resume without job description",
			input: types.ScoreResumeInput{
				ResumeText: strings.Repeat("Developed and managed systems that improved throughput by 40%. ", 50) +
					"Experience Education Skills Summary Objective. " +
					"- Led a team of 12 people and delivered 5 projects.",
				Skills: []string{"Python", "Go", "SQL", "AWS", "Docker", "React", "Leadership", "Communication", "Pandas", "MySQL", "Linux"},
			},
		},
		{
			name: "full keyword saturation",
			input: types.ScoreResumeInput{
				ResumeText: "achieved analyzed built collaborated created delivered designed developed " +
					"implemented improved increased launched led managed optimized " +
					"python sql leadership experience education skills summary objective",
				Skills:         []string{"Python", "SQL", "Leadership"},
				JobDescription: "python sql leadership",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := ComputeATSScore(tt.input)

			if result.TotalScore < 0 || result.TotalScore > 100 {
				t.Errorf("TotalScore = %d, want within [0, 100]", result.TotalScore)
			}
			b := result.Breakdown
			if b.KeywordScore < 0 || b.KeywordScore > 50 {
				t.Errorf("KeywordScore = %v, want within [0, 50]", b.KeywordScore)
			}
			if b.FormattingScore < 0 || b.FormattingScore > 25 {
				t.Errorf("FormattingScore = %v, want within [0, 25]", b.FormattingScore)
			}
			if b.SkillScore < 0 || b.SkillScore > 25 {
				t.Errorf("SkillScore = %v, want within [0, 25]", b.SkillScore)
			}
			if b.ExperienceScore < 0 || b.ExperienceScore > 25 {
				t.Errorf("ExperienceScore = %v, want within [0, 25]", b.ExperienceScore)
			}
			if len(result.Suggestions) > 10 {
				t.Errorf("got %d suggestions, want at most 10", len(result.Suggestions))
			}
			if len(result.MissingKeywords) > 15 {
				t.Errorf("got %d missing keywords, want at most 15", len(result.MissingKeywords))
			}
		})
	}
}

func TestGradeBoundaries(t *testing.T) {
	tests := []struct {
		score         int
		wantGrade     string
		wantGradeText string
	}{
		{100, "A", "Excellent"},
		{85, "A", "Excellent"},
		{84, "B", "Good"},
		{70, "B", "Good"},
		{69, "C", "Average"},
		{55, "C", "Average"},
		{54, "D", "Needs Improvement"},
		{40, "D", "Needs Improvement"},
		{39, "F", "Poor"},
		{0, "F", "Poor"},
	}

	for _, tt := range tests {
		grade, gradeText := gradeFor(tt.score)
		if grade != tt.wantGrade || gradeText != tt.wantGradeText {
			t.Errorf("gradeFor(%d) = (%q, %q), want (%q, %q)",
				tt.score, grade, gradeText, tt.wantGrade, tt.wantGradeText)
		}
	}
}

func TestComputeATSScoreIdempotent(t *testing.T) {
	input := types.ScoreResumeInput{
		ResumeText: "Managed a team of 8 people. Developed services that reduced latency by 30%. " +
			"Experience Education Skills",
		Skills:         []string{"Go", "Python", "Leadership"},
		JobDescription: "We need someone with go and python experience for our platform team.",
	}

	first := ComputeATSScore(input)
	second := ComputeATSScore(input)

	if !reflect.DeepEqual(first, second) {
		t.Errorf("repeated scoring diverged:\nfirst:  %+v\nsecond: %+v", first, second)
	}
}

func TestComputeATSScoreEmptyInput(t *testing.T) {
	result := ComputeATSScore(types.ScoreResumeInput{})

	if result.TotalScore < 0 {
		t.Errorf("TotalScore = %d, want non-negative", result.TotalScore)
	}
	if result.Grade != "F" {
		t.Errorf("Grade = %q, want F", result.Grade)
	}
	// No job description: keyword component is the fixed baseline.
	if result.Breakdown.KeywordScore != 15 {
		t.Errorf("KeywordScore = %v, want 15", result.Breakdown.KeywordScore)
	}
	if result.Breakdown.SkillScore != 0 {
		t.Errorf("SkillScore = %v, want 0 for empty skill list", result.Breakdown.SkillScore)
	}
	if result.Breakdown.ExperienceScore != 0 {
		t.Errorf("ExperienceScore = %v, want 0", result.Breakdown.ExperienceScore)
	}
	// 25 base, no section bonus, -5 short, -2 no bullets.
	if result.Breakdown.FormattingScore != 18 {
		t.Errorf("FormattingScore = %v, want 18", result.Breakdown.FormattingScore)
	}

	sectionSuggestions := 0
	for _, s := range result.Details.Formatting.Suggestions {
		if strings.HasPrefix(s, "Add a '") {
			sectionSuggestions++
		}
	}
	if sectionSuggestions != 5 {
		t.Errorf("got %d missing-section suggestions, want 5", sectionSuggestions)
	}
}

func TestKeywordScoreWithoutJobDescription(t *testing.T) {
	resume := "Managed a support rotation. Developed internal tools. Led onboarding."
	skills := []string{"Python", "Java", "Go", "Leadership", "Communication", "Teamwork"}

	result := ComputeATSScore(types.ScoreResumeInput{ResumeText: resume, Skills: skills})

	// 3 action verbs: min(3/10, 1)*25 + 15 baseline.
	if result.Breakdown.KeywordScore != 22.5 {
		t.Errorf("KeywordScore = %v, want 22.5", result.Breakdown.KeywordScore)
	}
	if got := len(result.Details.Keywords.ActionVerbsFound); got != 3 {
		t.Errorf("got %d action verbs, want 3: %v", got, result.Details.Keywords.ActionVerbsFound)
	}

	// 6 skills over 2 categories: min(6/10,1)*15 + (2/6)*10 = 12.333.
	if result.Breakdown.SkillScore != 12.3 {
		t.Errorf("SkillScore = %v, want 12.3", result.Breakdown.SkillScore)
	}
}

func TestKeywordScoreFullJDOverlap(t *testing.T) {
	result := ComputeATSScore(types.ScoreResumeInput{
		ResumeText:     "python sql leadership",
		JobDescription: "python sql leadership",
	})

	// No action verbs, full vocabulary overlap.
	if result.Breakdown.KeywordScore != 25 {
		t.Errorf("KeywordScore = %v, want 25", result.Breakdown.KeywordScore)
	}
	if got := len(result.Details.Keywords.MatchedKeywords); got != 3 {
		t.Errorf("got %d matched keywords, want 3", got)
	}
	if got := len(result.Details.Keywords.MissingKeywords); got != 0 {
		t.Errorf("got %d missing keywords, want 0", got)
	}
}

func TestKeywordScoreCanExceedComponentWeight(t *testing.T) {
	verbs := strings.Join(actionVerbs[:10], " ")
	result := ComputeATSScore(types.ScoreResumeInput{
		ResumeText:     verbs + " python sql",
		JobDescription: "python sql",
	})

	// 10 verbs saturate at 25 and a full overlap adds another 25.
	if result.Breakdown.KeywordScore != 50 {
		t.Errorf("KeywordScore = %v, want 50", result.Breakdown.KeywordScore)
	}
}

func TestMissingKeywordCaps(t *testing.T) {
	var words []string
	for i := 0; i < 26; i++ {
		words = append(words, strings.Repeat(string(rune('a'+i)), 3))
	}

	result := ComputeATSScore(types.ScoreResumeInput{
		ResumeText:     "",
		JobDescription: strings.Join(words, " "),
	})

	if got := len(result.Details.Keywords.MissingKeywords); got != 20 {
		t.Errorf("detail missing keywords = %d, want capped at 20", got)
	}
	if got := len(result.MissingKeywords); got != 15 {
		t.Errorf("top-level missing keywords = %d, want capped at 15", got)
	}
}

func TestTokenizeUnicodeWords(t *testing.T) {
	got := tokenize("josé garcía built café tooling")
	want := []string{"built", "tooling"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("tokenize = %v, want %v", got, want)
	}
	for _, tok := range got {
		if tok == "caf" || tok == "jos" {
			t.Errorf("accented word truncated to %q", tok)
		}
	}
}

func TestRound1TiesToEven(t *testing.T) {
	tests := []struct {
		in   float64
		want float64
	}{
		{0.25, 0.2},
		{1.25, 1.2},
		{1.75, 1.8},
		{1.3, 1.3},
	}

	for _, tt := range tests {
		if got := round1(tt.in); got != tt.want {
			t.Errorf("round1(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestTotalScoreHalfRoundsToEven(t *testing.T) {
	// Components: keywords 22.5 (9 verbs) + 15 (no JD), formatting 25,
	// skills 19 (6 skills across all categories), experience 3 (one metric).
	input := types.ScoreResumeInput{
		ResumeText: "analyzed built collaborated created designed developed launched led managed " +
			"experience education skills summary objective " +
			"- Led migrations that kept uptime near 40% " +
			strings.Repeat("word ", 250),
		Skills: []string{"Python", "Pandas", "React", "AWS", "SQL", "Leadership"},
	}

	result := ComputeATSScore(input)

	sum := result.Breakdown.KeywordScore + result.Breakdown.FormattingScore +
		result.Breakdown.SkillScore + result.Breakdown.ExperienceScore
	if sum != 84.5 {
		t.Fatalf("component sum = %v, want 84.5", sum)
	}
	if result.TotalScore != 84 {
		t.Errorf("TotalScore = %d, want 84 (half rounds to even)", result.TotalScore)
	}
	if result.Grade != "B" {
		t.Errorf("Grade = %q, want B", result.Grade)
	}
}

func TestKeywordDensity(t *testing.T) {
	tests := []struct {
		name string
		text string
		want float64
	}{
		{"empty", "", 0},
		{"half long words", "a hugeword up companies", 50},
		{"rounded to one decimal", "abcdefgh up his", 33.3},
		{"counts runes not bytes", "héllo there", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := keywordDensity(tt.text); got != tt.want {
				t.Errorf("keywordDensity(%q) = %v, want %v", tt.text, got, tt.want)
			}
		})
	}
}

func TestAnalyzeFormatting(t *testing.T) {
	t.Run("section detection accepts plural", func(t *testing.T) {
		_, details := analyzeFormatting("Experiences Education Skills Summary Objectives")
		for _, st := range details.SectionStatus {
			if !st.Present {
				t.Errorf("section %q not detected", st.Section)
			}
		}
	})

	t.Run("table penalty", func(t *testing.T) {
		score, details := analyzeFormatting("| col | col | col |")
		if len(details.Issues) == 0 {
			t.Fatal("expected a tables issue")
		}
		if score >= 25 {
			t.Errorf("score = %v, want penalized below 25", score)
		}
	})

	t.Run("caps run penalty", func(t *testing.T) {
		_, details := analyzeFormatting("WORKEDATBIGCORP for years")
		found := false
		for _, issue := range details.Issues {
			if strings.Contains(issue, "excessive caps") {
				found = true
			}
		}
		if !found {
			t.Errorf("expected excessive caps issue, got %v", details.Issues)
		}
	})

	t.Run("long resume suggestion", func(t *testing.T) {
		_, details := analyzeFormatting(strings.Repeat("word ", 1501))
		found := false
		for _, s := range details.Suggestions {
			if strings.Contains(s, "too long") {
				found = true
			}
		}
		if !found {
			t.Errorf("expected length suggestion, got %v", details.Suggestions)
		}
	})

	t.Run("bullets suppress penalty", func(t *testing.T) {
		withBullets, _ := analyzeFormatting("* shipped the thing")
		withoutBullets, _ := analyzeFormatting("shipped the thing")
		if withBullets <= withoutBullets {
			t.Errorf("bulleted score %v not above unbulleted %v", withBullets, withoutBullets)
		}
	})

	t.Run("accented text is not penalized", func(t *testing.T) {
		_, details := analyzeFormatting("José García built résumé tooling")
		for _, issue := range details.Issues {
			if strings.Contains(issue, "special chars") {
				t.Errorf("accented letters flagged as special chars: %v", details.Issues)
			}
		}
	})

	t.Run("non-breaking space is not penalized", func(t *testing.T) {
		_, details := analyzeFormatting("built tooling")
		for _, issue := range details.Issues {
			if strings.Contains(issue, "special chars") {
				t.Errorf("NBSP flagged as special chars: %v", details.Issues)
			}
		}
	})

	t.Run("symbols still count as special chars", func(t *testing.T) {
		_, details := analyzeFormatting("resume ★ tooling")
		found := false
		for _, issue := range details.Issues {
			if strings.Contains(issue, "special chars") {
				found = true
			}
		}
		if !found {
			t.Errorf("expected special chars issue, got %v", details.Issues)
		}
	})

	t.Run("never negative", func(t *testing.T) {
		score, _ := analyzeFormatting("|a|b|c| |d|e|f| ΩΩΩ ΩΩΩ AAAAAAAAAAAA short")
		if score < 0 {
			t.Errorf("score = %v, want clamped at 0", score)
		}
	})
}

func TestAnalyzeSkillCoverage(t *testing.T) {
	t.Run("recommendations for empty list", func(t *testing.T) {
		score, details := analyzeSkillCoverage(nil)
		if score != 0 {
			t.Errorf("score = %v, want 0", score)
		}
		if len(details.Recommendations) != 3 {
			t.Errorf("got %d recommendations, want 3: %v", len(details.Recommendations), details.Recommendations)
		}
	})

	t.Run("case-insensitive category match", func(t *testing.T) {
		_, details := analyzeSkillCoverage([]string{"PYTHON", "Leadership"})
		if details.SkillCategories["programming"].Count != 1 {
			t.Errorf("programming count = %d, want 1", details.SkillCategories["programming"].Count)
		}
		if details.SkillCategories["soft_skills"].Count != 1 {
			t.Errorf("soft_skills count = %d, want 1", details.SkillCategories["soft_skills"].Count)
		}
	})

	t.Run("score clamps at 25", func(t *testing.T) {
		skills := []string{
			"python", "machine learning", "html", "aws", "sql", "leadership",
			"java", "react", "docker", "mysql", "communication", "go",
		}
		score, _ := analyzeSkillCoverage(skills)
		if score != 25 {
			t.Errorf("score = %v, want 25", score)
		}
	})
}

func TestAnalyzeExperience(t *testing.T) {
	t.Run("samples capped per family but achievements count all", func(t *testing.T) {
		text := "10% 20% 30% 40% 50%"
		_, details := analyzeExperience(text)
		if len(details.MetricsFound) != 3 {
			t.Errorf("got %d metric samples, want 3", len(details.MetricsFound))
		}
		if details.Achievements != 5 {
			t.Errorf("achievements = %d, want 5", details.Achievements)
		}
	})

	t.Run("result language bonus", func(t *testing.T) {
		score, _ := analyzeExperience("resulted achieved delivered completed successful")
		if score != 10 {
			t.Errorf("score = %v, want 10 from result bonus alone", score)
		}
	})

	t.Run("suggestions when nothing quantified", func(t *testing.T) {
		score, details := analyzeExperience("I worked on things.")
		if score != 0 {
			t.Errorf("score = %v, want 0", score)
		}
		if len(details.Suggestions) != 2 {
			t.Errorf("got %d suggestions, want 2: %v", len(details.Suggestions), details.Suggestions)
		}
	})

	t.Run("mixed metric families", func(t *testing.T) {
		text := "Increased revenue by 40% and saved $2M while leading 12 people across 3 projects."
		score, details := analyzeExperience(text)
		if len(details.MetricsFound) == 0 {
			t.Fatal("expected metric samples")
		}
		if score <= 0 || score > 25 {
			t.Errorf("score = %v, want within (0, 25]", score)
		}
	})
}
