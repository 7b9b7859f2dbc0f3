package scoring

import (
	"fmt"
	"math"
	"regexp"
	"strings"

	"careerpath/internal/types"
)

type formattingIssue struct {
	name    string
	pattern *regexp.Regexp
	penalty int
}

var formattingIssues = []formattingIssue{
	{"tables", regexp.MustCompile(`\|.*\|.*\|`), 5},
	// Letters and digits in any script stay clean; accented names and the
	// NBSP that PDF extraction emits must not count as special characters.
	{"special chars", regexp.MustCompile(`[^\p{L}\p{N}_\s\p{Z}.,;:\-()@/'"!?#&*+=]`), 2},
	{"excessive caps", regexp.MustCompile(`[A-Z]{10,}`), 3},
}

var bulletPatterns = []*regexp.Regexp{
	regexp.MustCompile(`•`),
	regexp.MustCompile(`\*\s`),
	regexp.MustCompile(`-\s+[A-Z]`),
	regexp.MustCompile(`\d+\.`),
}

var sectionPatterns = compileSectionPatterns()

func compileSectionPatterns() map[string]*regexp.Regexp {
	patterns := make(map[string]*regexp.Regexp, len(importantSections))
	for _, section := range importantSections {
		// Singular or plural heading both count.
		patterns[section] = regexp.MustCompile(`\b` + section + `s?\b`)
	}
	return patterns
}

// analyzeFormatting scores layout hygiene. It starts from the full component
// score, adds a section bonus, subtracts per-issue penalties, and clamps the
// result to [0, 25].
func analyzeFormatting(resumeText string) (float64, types.FormattingDetails) {
	const baseScore = 25.0

	details := types.FormattingDetails{
		Issues:      []string{},
		Suggestions: []string{},
	}

	textLower := strings.ToLower(resumeText)
	sectionsFound := 0
	for _, section := range importantSections {
		present := sectionPatterns[section].MatchString(textLower)
		details.SectionStatus = append(details.SectionStatus, types.SectionStatus{
			Section: section,
			Present: present,
		})
		if present {
			sectionsFound++
		} else {
			details.Suggestions = append(details.Suggestions,
				fmt.Sprintf("Add a '%s' section", titleCase(section)))
		}
	}
	sectionScore := float64(sectionsFound) / float64(len(importantSections)) * 10

	penalty := 0.0
	for _, issue := range formattingIssues {
		matches := issue.pattern.FindAllString(resumeText, -1)
		if len(matches) > 0 {
			penalty += math.Min(float64(issue.penalty*len(matches)), 10)
			details.Issues = append(details.Issues,
				fmt.Sprintf("Found %d %s instances", len(matches), issue.name))
		}
	}

	wordCount := len(strings.Fields(resumeText))
	if wordCount < 200 {
		penalty += 5
		details.Suggestions = append(details.Suggestions,
			"Resume appears too short. Add more details about your experience.")
	} else if wordCount > 1500 {
		penalty += 3
		details.Suggestions = append(details.Suggestions,
			"Resume may be too long. Consider condensing to 1-2 pages.")
	}

	if !hasBullets(resumeText) {
		details.Suggestions = append(details.Suggestions,
			"Use bullet points to list achievements and responsibilities")
		penalty += 2
	}

	score := math.Max(0, baseScore+sectionScore-penalty)
	return math.Min(score, 25), details
}

func hasBullets(text string) bool {
	for _, p := range bulletPatterns {
		if p.MatchString(text) {
			return true
		}
	}
	return false
}

func titleCase(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
