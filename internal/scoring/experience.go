package scoring

import (
	"math"
	"regexp"

	"careerpath/internal/types"
)

const metricSampleLimit = 3

type metricPattern struct {
	pattern    *regexp.Regexp
	metricType string
}

var metricPatterns = []metricPattern{
	{regexp.MustCompile(`(?i)\d+%`), "percentage"},
	{regexp.MustCompile(`(?i)\$[\d,]+[KMB]?`), "monetary"},
	{regexp.MustCompile(`(?i)\d+\s*(?:users?|customers?|clients?)`), "user_impact"},
	{regexp.MustCompile(`(?i)\d+\s*(?:projects?|applications?|systems?)`), "project_count"},
	{regexp.MustCompile(`(?i)(?:increased|decreased|improved|reduced|grew|saved)\s+(?:by\s+)?\d+`), "improvement"},
	{regexp.MustCompile(`(?i)\d+\s*(?:team|people|employees|members)`), "team_size"},
	{regexp.MustCompile(`(?i)\d+\s*(?:years?|months?)\s*(?:experience|of)`), "experience_duration"},
}

var resultPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)result(?:ed|ing)?`),
	regexp.MustCompile(`(?i)achiev(?:ed|ing)?`),
	regexp.MustCompile(`(?i)accomplish(?:ed|ing)?`),
	regexp.MustCompile(`(?i)deliver(?:ed|ing)?`),
	regexp.MustCompile(`(?i)complet(?:ed|ing)?`),
	regexp.MustCompile(`(?i)success(?:ful)?`),
}

// analyzeExperience scores quantified achievements and result-oriented
// language. Only the first three matches per metric family count toward the
// metrics score; the achievements counter still records every match.
func analyzeExperience(resumeText string) (float64, types.ExperienceDetails) {
	details := types.ExperienceDetails{
		MetricsFound: []types.MetricSample{},
		Suggestions:  []string{},
	}

	for _, mp := range metricPatterns {
		matches := mp.pattern.FindAllString(resumeText, -1)
		if len(matches) == 0 {
			continue
		}
		sampled := matches
		if len(sampled) > metricSampleLimit {
			sampled = sampled[:metricSampleLimit]
		}
		for _, m := range sampled {
			details.MetricsFound = append(details.MetricsFound, types.MetricSample{
				Text: m,
				Type: mp.metricType,
			})
		}
		details.Achievements += len(matches)
	}

	metricsScore := math.Min(float64(len(details.MetricsFound))/5, 1) * 15

	resultCount := 0
	for _, p := range resultPatterns {
		resultCount += len(p.FindAllString(resumeText, -1))
	}
	resultBonus := math.Min(float64(resultCount)/5, 1) * 10

	if len(details.MetricsFound) == 0 {
		details.Suggestions = append(details.Suggestions,
			"Add quantifiable achievements (e.g., 'Increased sales by 25%')")
	}
	if resultCount < 3 {
		details.Suggestions = append(details.Suggestions,
			"Use more result-oriented language to describe achievements")
	}

	return math.Min(metricsScore+resultBonus, 25), details
}
