// Package parser turns resume documents into the structured form the
// analysis engine consumes: raw text plus skills, sections, projects, and
// contact details.
package parser

import (
	"regexp"
	"strings"
	"unicode"

	"careerpath/internal/types"
)

const (
	maxProjects          = 10
	maxProjectNameLen    = 100
	maxProjectDescLen    = 500
	minProjectEntryLen   = 20
	maxSectionHeaderLen  = 50
	defaultProjectDetail = "No description available"
)

var (
	skillPatterns = compileSkillPatterns()

	sectionRegexps = compileSectionRegexps()

	projectHeadPattern       = regexp.MustCompile(`(?is)projects?\s*[:\n]`)
	projectTerminatorPattern = regexp.MustCompile(`(?i)(experience|education|skills|certifications)`)

	emailPattern    = regexp.MustCompile(`[\w.\-]+@[\w.\-]+\.\w+`)
	phonePattern    = regexp.MustCompile(`[+]?[(]?[0-9]{1,3}[)]?[-\s.]?[0-9]{3}[-\s.]?[0-9]{4,6}`)
	linkedinPattern = regexp.MustCompile(`(?i)linkedin\.com/in/[\w-]+`)
	githubPattern   = regexp.MustCompile(`(?i)github\.com/[\w-]+`)
)

func compileSkillPatterns() map[string]*regexp.Regexp {
	patterns := make(map[string]*regexp.Regexp, len(skillKeywords))
	for _, skill := range skillKeywords {
		patterns[skill] = regexp.MustCompile(`\b` + regexp.QuoteMeta(skill) + `\b`)
	}
	return patterns
}

func compileSectionRegexps() []struct {
	name    string
	pattern *regexp.Regexp
} {
	compiled := make([]struct {
		name    string
		pattern *regexp.Regexp
	}, len(sectionHeaders))
	for i, sh := range sectionHeaders {
		compiled[i].name = sh.name
		compiled[i].pattern = regexp.MustCompile(sh.pattern)
	}
	return compiled
}

// ParseResume extracts text from document bytes and derives all structured
// fields. It fails only when text extraction fails; the derivations themselves
// are total.
func ParseResume(data []byte, filename string) (types.ParsedResume, error) {
	text, err := ExtractText(data, filename)
	if err != nil {
		return types.ParsedResume{}, err
	}
	return AnalyzeText(text), nil
}

// AnalyzeText derives structured resume fields from already-extracted text.
func AnalyzeText(text string) types.ParsedResume {
	projects := ExtractProjects(text)
	return types.ParsedResume{
		RawText:     text,
		Contact:     ExtractContactInfo(text),
		Skills:      ExtractSkills(text),
		Sections:    ExtractSections(text),
		Projects:    projects,
		WordCount:   len(strings.Fields(text)),
		HasProjects: len(projects) > 0,
	}
}

// ExtractSkills returns the known skills found in the text, Title Cased and
// deduplicated, in vocabulary order.
func ExtractSkills(text string) []string {
	textLower := strings.ToLower(text)
	seen := make(map[string]struct{})
	found := []string{}
	for _, skill := range skillKeywords {
		if !skillPatterns[skill].MatchString(textLower) {
			continue
		}
		titled := titleCaseWords(skill)
		if _, dup := seen[titled]; dup {
			continue
		}
		seen[titled] = struct{}{}
		found = append(found, titled)
	}
	return found
}

// ExtractSections splits the text into named sections. Content before the
// first recognized heading lands under "header". Headings only count on
// short lines.
func ExtractSections(text string) map[string]string {
	sections := make(map[string]string)
	currentSection := "header"
	var currentContent []string

	flush := func() {
		if len(currentContent) > 0 {
			sections[currentSection] = strings.Join(currentContent, "\n")
		}
	}

	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		foundSection := ""
		if len(line) < maxSectionHeaderLen {
			for _, sr := range sectionRegexps {
				if sr.pattern.MatchString(line) {
					foundSection = sr.name
					break
				}
			}
		}

		if foundSection != "" {
			flush()
			currentSection = foundSection
			currentContent = nil
		} else {
			currentContent = append(currentContent, line)
		}
	}
	flush()

	return sections
}

// ExtractProjects pulls project entries from the projects section, falling
// back to locating a projects block in the full text.
func ExtractProjects(text string) []types.Project {
	projectText := ExtractSections(text)["projects"]
	if projectText == "" {
		projectText = findProjectBlock(text)
	}
	if projectText == "" {
		return []types.Project{}
	}

	projects := []types.Project{}
	for _, entry := range splitProjectEntries(projectText) {
		entry = strings.TrimSpace(entry)
		if len(entry) <= minProjectEntryLen {
			continue
		}

		lines := strings.Split(entry, "\n")
		name := strings.Trim(lines[0], "•-* ")
		description := ""
		if len(lines) > 1 {
			description = strings.TrimSpace(strings.Join(lines[1:], " "))
		}
		if name == "" {
			continue
		}
		if description == "" {
			description = defaultProjectDetail
		}

		projects = append(projects, types.Project{
			Name:        truncateRunes(name, maxProjectNameLen),
			Description: truncateRunes(description, maxProjectDescLen),
		})
		if len(projects) == maxProjects {
			break
		}
	}
	return projects
}

// findProjectBlock returns the text between a projects heading and the next
// major section, or the rest of the document.
func findProjectBlock(text string) string {
	head := projectHeadPattern.FindStringIndex(text)
	if head == nil {
		return ""
	}
	rest := text[head[1]:]
	if end := projectTerminatorPattern.FindStringIndex(rest); end != nil {
		return rest[:end[0]]
	}
	return rest
}

// splitProjectEntries breaks the block at newlines followed by a capital
// letter or bullet marker, keeping the marker with its entry.
func splitProjectEntries(block string) []string {
	var entries []string
	start := 0
	runes := []rune(block)
	for i := 0; i < len(runes)-1; i++ {
		if runes[i] != '\n' {
			continue
		}
		next := runes[i+1]
		if unicode.IsUpper(next) || next == '•' || next == '-' || next == '*' {
			entries = append(entries, string(runes[start:i]))
			start = i + 1
		}
	}
	entries = append(entries, string(runes[start:]))
	return entries
}

// ExtractContactInfo finds email, phone, LinkedIn, and GitHub references.
func ExtractContactInfo(text string) types.ContactInfo {
	return types.ContactInfo{
		Email:    emailPattern.FindString(text),
		Phone:    phonePattern.FindString(text),
		LinkedIn: linkedinPattern.FindString(text),
		GitHub:   githubPattern.FindString(text),
	}
}

// titleCaseWords uppercases the first letter of every word and lowercases the
// rest, so "machine learning" becomes "Machine Learning".
func titleCaseWords(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	prevLetter := false
	for _, r := range s {
		if unicode.IsLetter(r) {
			if prevLetter {
				b.WriteRune(unicode.ToLower(r))
			} else {
				b.WriteRune(unicode.ToUpper(r))
			}
			prevLetter = true
		} else {
			b.WriteRune(r)
			prevLetter = false
		}
	}
	return b.String()
}

func truncateRunes(s string, n int) string {
	runes := []rune(s)
	if len(runes) > n {
		return string(runes[:n])
	}
	return s
}
