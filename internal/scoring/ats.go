// Package scoring implements the deterministic resume analysis engine:
// ATS-style scoring across four weighted components and keyword-driven job
// matching. All analysis is lexical; the same input always produces the
// same output, and no input can make scoring fail.
package scoring

import (
	"math"

	"careerpath/internal/types"
)

const maxSuggestions = 10

// ComputeATSScore scores a resume across keywords, formatting, skill
// coverage, and experience quality. The job description is optional; when
// empty, keyword scoring falls back to a fixed baseline.
func ComputeATSScore(in types.ScoreResumeInput) types.ATSResult {
	keywordScore, keywordDetails := analyzeKeywords(in.ResumeText, in.JobDescription)
	formattingScore, formattingDetails := analyzeFormatting(in.ResumeText)
	skillScore, skillDetails := analyzeSkillCoverage(in.Skills)
	experienceScore, experienceDetails := analyzeExperience(in.ResumeText)

	// Ties round to even so an exact .5 total cannot inflate the grade.
	total := keywordScore + formattingScore + skillScore + experienceScore
	totalScore := int(math.Min(math.Max(math.RoundToEven(total), 0), 100))

	grade, gradeText := gradeFor(totalScore)

	// Keyword suggestions are intentionally excluded; missing keywords get
	// their own top-level field instead.
	suggestions := []string{}
	suggestions = append(suggestions, formattingDetails.Suggestions...)
	suggestions = append(suggestions, skillDetails.Recommendations...)
	suggestions = append(suggestions, experienceDetails.Suggestions...)

	return types.ATSResult{
		TotalScore: totalScore,
		Grade:      grade,
		GradeText:  gradeText,
		Breakdown: types.ScoreBreakdown{
			KeywordScore:    round1(keywordScore),
			FormattingScore: round1(formattingScore),
			SkillScore:      round1(skillScore),
			ExperienceScore: round1(experienceScore),
		},
		Details: types.ScoreDetails{
			Keywords:   keywordDetails,
			Formatting: formattingDetails,
			Skills:     skillDetails,
			Experience: experienceDetails,
		},
		Suggestions:     capStrings(suggestions, maxSuggestions),
		MissingKeywords: capStrings(keywordDetails.MissingKeywords, 15),
	}
}

func gradeFor(score int) (string, string) {
	switch {
	case score >= 85:
		return "A", "Excellent"
	case score >= 70:
		return "B", "Good"
	case score >= 55:
		return "C", "Average"
	case score >= 40:
		return "D", "Needs Improvement"
	default:
		return "F", "Poor"
	}
}
