package scoring

import (
	"math"
	"regexp"
	"sort"
	"strings"
	"unicode/utf8"

	"careerpath/internal/types"
)

const (
	maxMatchedKeywords = 20
	maxMissingKeywords = 20

	// Awarded in place of overlap scoring when no job description is given.
	defaultJDScore = 15.0
)

var (
	// Word runs span Unicode letters and digits so that an accented tail
	// does not cut a token short ("café" must not yield "caf").
	wordRunPattern   = regexp.MustCompile(`[\p{L}\p{N}_]+`)
	asciiWordPattern = regexp.MustCompile(`^[a-z]{3,}$`)

	verbPatterns = compileVerbPatterns()
)

func compileVerbPatterns() map[string]*regexp.Regexp {
	patterns := make(map[string]*regexp.Regexp, len(actionVerbs))
	for _, verb := range actionVerbs {
		patterns[verb] = regexp.MustCompile(`\b` + verb + `\b`)
	}
	return patterns
}

// analyzeKeywords scores action verb usage and, when a job description is
// given, vocabulary overlap with it. The component maxes out at 50 when both
// signals saturate.
func analyzeKeywords(resumeText, jobDescription string) (float64, types.KeywordDetails) {
	resumeLower := strings.ToLower(resumeText)
	details := types.KeywordDetails{
		ActionVerbsFound:   []string{},
		ActionVerbsMissing: []string{},
		MatchedKeywords:    []string{},
		MissingKeywords:    []string{},
	}

	for _, verb := range actionVerbs {
		if verbPatterns[verb].MatchString(resumeLower) {
			details.ActionVerbsFound = append(details.ActionVerbsFound, verb)
		} else {
			details.ActionVerbsMissing = append(details.ActionVerbsMissing, verb)
		}
	}

	actionVerbScore := math.Min(float64(len(details.ActionVerbsFound))/10, 1) * 25

	jdMatchScore := defaultJDScore
	if jobDescription != "" {
		jdWords := significantWords(strings.ToLower(jobDescription))
		resumeWords := tokenSet(resumeLower)

		var matched, missing []string
		for word := range jdWords {
			if _, ok := resumeWords[word]; ok {
				matched = append(matched, word)
			} else {
				missing = append(missing, word)
			}
		}
		sort.Strings(matched)
		sort.Strings(missing)

		details.MatchedKeywords = capStrings(matched, maxMatchedKeywords)
		details.MissingKeywords = capStrings(missing, maxMissingKeywords)

		jdMatchScore = 0
		if len(jdWords) > 0 {
			jdMatchScore = float64(len(matched)) / float64(len(jdWords)) * 25
		}
	}

	details.KeywordDensity = keywordDensity(resumeText)

	return actionVerbScore + jdMatchScore, details
}

// significantWords tokenizes lowercased text and drops stop words.
func significantWords(textLower string) map[string]struct{} {
	words := tokenSet(textLower)
	for word := range keywordStopWords {
		delete(words, word)
	}
	return words
}

// tokenize extracts plain lowercase words of three or more letters,
// skipping any word run that carries digits, underscores or non-ASCII
// letters.
func tokenize(textLower string) []string {
	runs := wordRunPattern.FindAllString(textLower, -1)
	tokens := runs[:0]
	for _, run := range runs {
		if asciiWordPattern.MatchString(run) {
			tokens = append(tokens, run)
		}
	}
	return tokens
}

func tokenSet(textLower string) map[string]struct{} {
	tokens := tokenize(textLower)
	set := make(map[string]struct{}, len(tokens))
	for _, t := range tokens {
		set[t] = struct{}{}
	}
	return set
}

// keywordDensity is the percentage of whitespace-separated words longer than
// five characters, rounded to one decimal.
func keywordDensity(text string) float64 {
	words := strings.Fields(text)
	if len(words) == 0 {
		return 0
	}
	long := 0
	for _, w := range words {
		if utf8.RuneCountInString(w) > 5 {
			long++
		}
	}
	return round1(float64(long) / float64(len(words)) * 100)
}

func capStrings(s []string, n int) []string {
	if len(s) > n {
		return s[:n]
	}
	return s
}

// round1 rounds to one decimal with ties going to the even digit, so an
// exact half never drifts upward.
func round1(v float64) float64 {
	return math.RoundToEven(v*10) / 10
}
