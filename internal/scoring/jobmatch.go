package scoring

import (
	"sort"
	"strings"

	"careerpath/internal/types"
)

const topJDKeywords = 30

// Fallback skill match when the posting mentions none of the known skill
// indicators.
const neutralSkillMatch = 50.0

// ComputeJobMatch measures how well a resume fits one job description. Unlike
// keyword scoring, matching is plain substring containment against the resume
// text, so "test" inside "testing" counts.
func ComputeJobMatch(in types.MatchJobInput) types.MatchResult {
	jdLower := strings.ToLower(in.JobDescription)
	resumeLower := strings.ToLower(in.ResumeText)

	importantKeywords := topKeywords(jdLower, topJDKeywords)

	matchedKeywords := []string{}
	missingKeywords := []string{}
	for _, keyword := range importantKeywords {
		if strings.Contains(resumeLower, keyword) {
			matchedKeywords = append(matchedKeywords, keyword)
		} else {
			missingKeywords = append(missingKeywords, keyword)
		}
	}

	skillsLower := make([]string, len(in.Skills))
	for i, s := range in.Skills {
		skillsLower[i] = strings.ToLower(s)
	}

	jdSkills := []string{}
	for _, skill := range skillIndicators {
		if strings.Contains(jdLower, skill) {
			jdSkills = append(jdSkills, skill)
		}
	}

	matchedSkills := []string{}
	missingSkills := []string{}
	for _, skill := range jdSkills {
		if anyContains(skillsLower, skill) {
			matchedSkills = append(matchedSkills, skill)
		} else {
			missingSkills = append(missingSkills, skill)
		}
	}

	keywordMatch := float64(len(matchedKeywords)) / float64(max(len(importantKeywords), 1)) * 100
	skillMatch := neutralSkillMatch
	if len(jdSkills) > 0 {
		skillMatch = float64(len(matchedSkills)) / float64(len(jdSkills)) * 100
	}

	overallMatch := keywordMatch*0.6 + skillMatch*0.4
	matchLevel, recommendation := matchLevelFor(overallMatch)

	return types.MatchResult{
		OverallMatch:    round1(overallMatch),
		MatchLevel:      matchLevel,
		KeywordMatch:    round1(keywordMatch),
		SkillMatch:      round1(skillMatch),
		MatchedKeywords: capStrings(matchedKeywords, 15),
		MissingKeywords: capStrings(missingKeywords, 15),
		MatchedSkills:   matchedSkills,
		MissingSkills:   capStrings(missingSkills, 10),
		Recommendation:  recommendation,
	}
}

// topKeywords returns the most frequent significant tokens of the posting,
// ties broken by first appearance.
func topKeywords(jdLower string, limit int) []string {
	tokens := tokenize(jdLower)

	freq := make(map[string]int)
	firstSeen := make(map[string]int)
	order := 0
	for _, token := range tokens {
		if _, stop := matchStopWords[token]; stop {
			continue
		}
		if _, seen := freq[token]; !seen {
			firstSeen[token] = order
			order++
		}
		freq[token]++
	}

	words := make([]string, 0, len(freq))
	for word := range freq {
		words = append(words, word)
	}
	sort.Slice(words, func(i, j int) bool {
		if freq[words[i]] != freq[words[j]] {
			return freq[words[i]] > freq[words[j]]
		}
		return firstSeen[words[i]] < firstSeen[words[j]]
	})

	return capStrings(words, limit)
}

func anyContains(haystacks []string, needle string) bool {
	for _, h := range haystacks {
		if strings.Contains(h, needle) {
			return true
		}
	}
	return false
}

func matchLevelFor(overall float64) (string, string) {
	switch {
	case overall >= 75:
		return "Strong Match", "Your resume is well-aligned with this position. Consider applying!"
	case overall >= 50:
		return "Moderate Match", "You have relevant experience. Tailor your resume to highlight matching skills."
	case overall >= 30:
		return "Partial Match", "Some skills align. Focus on transferable skills and consider upskilling."
	default:
		return "Low Match", "This role may require significant skill development. Consider related positions."
	}
}
