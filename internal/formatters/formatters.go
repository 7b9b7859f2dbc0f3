package formatters

import (
	"encoding/json"
	"fmt"
	"strings"

	"careerpath/internal/types"
)

// Formatter renders one result type in one output format
type Formatter interface {
	Format(data any) (string, error)
	SupportedType() string
}

// FormatterRegistry resolves a formatter by output format and data type,
// with "any" as the per-format fallback type
type FormatterRegistry struct {
	formatters map[string]map[string]Formatter // format -> type -> formatter
}

// NewFormatterRegistry builds a registry preloaded with the built-in formatters
func NewFormatterRegistry() *FormatterRegistry {
	registry := &FormatterRegistry{
		formatters: make(map[string]map[string]Formatter),
	}

	registry.RegisterFormatter("json", "any", &JSONFormatter{})
	registry.RegisterFormatter("text", "ATSResult", &ATSTextFormatter{})
	registry.RegisterFormatter("markdown", "ATSResult", &ATSMarkdownFormatter{})
	registry.RegisterFormatter("text", "MatchResult", &MatchTextFormatter{})
	registry.RegisterFormatter("markdown", "MatchResult", &MatchMarkdownFormatter{})
	registry.RegisterFormatter("text", "RoadmapOutput", &RoadmapTextFormatter{})
	registry.RegisterFormatter("markdown", "RoadmapOutput", &RoadmapMarkdownFormatter{})
	registry.RegisterFormatter("text", "ParsedResume", &ParsedResumeTextFormatter{})
	registry.RegisterFormatter("markdown", "ParsedResume", &ParsedResumeMarkdownFormatter{})

	return registry
}

// RegisterFormatter adds or replaces the formatter for a format/type pair
func (fr *FormatterRegistry) RegisterFormatter(format, dataType string, formatter Formatter) {
	byType, ok := fr.formatters[format]
	if !ok {
		byType = make(map[string]Formatter)
		fr.formatters[format] = byType
	}
	byType[dataType] = formatter
}

// Format renders data in the requested format, falling back to the
// format's "any" formatter for unregistered types
func (fr *FormatterRegistry) Format(data any, format string) (string, error) {
	dataType := getDataType(data)

	byType, ok := fr.formatters[format]
	if !ok {
		return "", fmt.Errorf("no formatter found for format '%s' and type '%s'", format, dataType)
	}
	if formatter, ok := byType[dataType]; ok {
		return formatter.Format(data)
	}
	if formatter, ok := byType["any"]; ok {
		return formatter.Format(data)
	}
	return "", fmt.Errorf("no formatter found for format '%s' and type '%s'", format, dataType)
}

// GetSupportedFormats lists every registered output format
func (fr *FormatterRegistry) GetSupportedFormats() []string {
	formats := make([]string, 0, len(fr.formatters))
	for format := range fr.formatters {
		formats = append(formats, format)
	}
	return formats
}

func getDataType(data any) string {
	switch data.(type) {
	case types.ATSResult:
		return "ATSResult"
	case types.MatchResult:
		return "MatchResult"
	case types.RoadmapOutput:
		return "RoadmapOutput"
	case types.ParsedResume:
		return "ParsedResume"
	default:
		return "any"
	}
}

// writeBulletList appends items as a dash list followed by a blank line
func writeBulletList(output *strings.Builder, items []string) {
	for _, item := range items {
		output.WriteString("- " + item + "\n")
	}
	output.WriteString("\n")
}

// JSONFormatter renders any value as indented JSON
type JSONFormatter struct{}

func (jf *JSONFormatter) Format(data any) (string, error) {
	out, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return "", err
	}
	return string(out), nil
}

func (jf *JSONFormatter) SupportedType() string {
	return "any"
}

// ATSTextFormatter handles text formatting for ATS scoring results
type ATSTextFormatter struct{}

func (atf *ATSTextFormatter) Format(data any) (string, error) {
	result, ok := data.(types.ATSResult)
	if !ok {
		return "", fmt.Errorf("expected ATSResult, got %T", data)
	}

	var output strings.Builder

	output.WriteString("=== ATS SCORE ===\n\n")
	output.WriteString(fmt.Sprintf("Total Score: %d/100 (Grade %s - %s)\n\n", result.TotalScore, result.Grade, result.GradeText))

	output.WriteString("=== BREAKDOWN ===\n")
	output.WriteString(fmt.Sprintf("Keywords:   %.1f/50\n", result.Breakdown.KeywordScore))
	output.WriteString(fmt.Sprintf("Formatting: %.1f/25\n", result.Breakdown.FormattingScore))
	output.WriteString(fmt.Sprintf("Skills:     %.1f/25\n", result.Breakdown.SkillScore))
	output.WriteString(fmt.Sprintf("Experience: %.1f/25\n\n", result.Breakdown.ExperienceScore))

	if len(result.Details.Keywords.MatchedKeywords) > 0 {
		output.WriteString("Matched Keywords:\n")
		for _, kw := range result.Details.Keywords.MatchedKeywords {
			output.WriteString(fmt.Sprintf("- %s\n", kw))
		}
		output.WriteString("\n")
	}

	if len(result.MissingKeywords) > 0 {
		output.WriteString("Missing Keywords:\n")
		for _, kw := range result.MissingKeywords {
			output.WriteString(fmt.Sprintf("- %s\n", kw))
		}
		output.WriteString("\n")
	}

	if len(result.Suggestions) > 0 {
		output.WriteString("=== SUGGESTIONS ===\n")
		for i, suggestion := range result.Suggestions {
			output.WriteString(fmt.Sprintf("%d. %s\n", i+1, suggestion))
		}
	}

	return output.String(), nil
}

func (atf *ATSTextFormatter) SupportedType() string {
	return "ATSResult"
}

// ATSMarkdownFormatter handles markdown formatting for ATS scoring results
type ATSMarkdownFormatter struct{}

func (amf *ATSMarkdownFormatter) Format(data any) (string, error) {
	result, ok := data.(types.ATSResult)
	if !ok {
		return "", fmt.Errorf("expected ATSResult, got %T", data)
	}

	var output strings.Builder

	output.WriteString("# ATS Score\n\n")
	output.WriteString(fmt.Sprintf("**Total Score:** %d/100 (Grade %s - %s)\n\n", result.TotalScore, result.Grade, result.GradeText))

	output.WriteString("## Breakdown\n\n")
	output.WriteString("| Component | Score |\n|---|---|\n")
	output.WriteString(fmt.Sprintf("| Keywords | %.1f/50 |\n", result.Breakdown.KeywordScore))
	output.WriteString(fmt.Sprintf("| Formatting | %.1f/25 |\n", result.Breakdown.FormattingScore))
	output.WriteString(fmt.Sprintf("| Skills | %.1f/25 |\n", result.Breakdown.SkillScore))
	output.WriteString(fmt.Sprintf("| Experience | %.1f/25 |\n\n", result.Breakdown.ExperienceScore))

	if len(result.Details.Keywords.MatchedKeywords) > 0 {
		output.WriteString("## Matched Keywords\n")
		writeBulletList(&output, result.Details.Keywords.MatchedKeywords)
	}

	if len(result.MissingKeywords) > 0 {
		output.WriteString("## Missing Keywords\n")
		writeBulletList(&output, result.MissingKeywords)
	}

	if len(result.Suggestions) > 0 {
		output.WriteString("## Suggestions\n\n")
		for i, suggestion := range result.Suggestions {
			output.WriteString(fmt.Sprintf("%d. %s\n", i+1, suggestion))
		}
	}

	return output.String(), nil
}

func (amf *ATSMarkdownFormatter) SupportedType() string {
	return "ATSResult"
}

// MatchTextFormatter handles text formatting for job match results
type MatchTextFormatter struct{}

func (mtf *MatchTextFormatter) Format(data any) (string, error) {
	result, ok := data.(types.MatchResult)
	if !ok {
		return "", fmt.Errorf("expected MatchResult, got %T", data)
	}

	var output strings.Builder

	output.WriteString("=== JOB MATCH ===\n\n")
	output.WriteString(fmt.Sprintf("Overall Match: %.1f%% (%s)\n", result.OverallMatch, result.MatchLevel))
	output.WriteString(fmt.Sprintf("Keyword Match: %.1f%%\n", result.KeywordMatch))
	output.WriteString(fmt.Sprintf("Skill Match:   %.1f%%\n\n", result.SkillMatch))

	if len(result.MatchedKeywords) > 0 {
		output.WriteString("Matched Keywords:\n")
		for _, kw := range result.MatchedKeywords {
			output.WriteString(fmt.Sprintf("- %s\n", kw))
		}
		output.WriteString("\n")
	}

	if len(result.MissingKeywords) > 0 {
		output.WriteString("Missing Keywords:\n")
		for _, kw := range result.MissingKeywords {
			output.WriteString(fmt.Sprintf("- %s\n", kw))
		}
		output.WriteString("\n")
	}

	if len(result.MatchedSkills) > 0 {
		output.WriteString("Matched Skills:\n")
		for _, skill := range result.MatchedSkills {
			output.WriteString(fmt.Sprintf("- %s\n", skill))
		}
		output.WriteString("\n")
	}

	if len(result.MissingSkills) > 0 {
		output.WriteString("Missing Skills:\n")
		for _, skill := range result.MissingSkills {
			output.WriteString(fmt.Sprintf("- %s\n", skill))
		}
		output.WriteString("\n")
	}

	output.WriteString("Recommendation:\n")
	output.WriteString(result.Recommendation)
	output.WriteString("\n")

	return output.String(), nil
}

func (mtf *MatchTextFormatter) SupportedType() string {
	return "MatchResult"
}

// MatchMarkdownFormatter handles markdown formatting for job match results
type MatchMarkdownFormatter struct{}

func (mmf *MatchMarkdownFormatter) Format(data any) (string, error) {
	result, ok := data.(types.MatchResult)
	if !ok {
		return "", fmt.Errorf("expected MatchResult, got %T", data)
	}

	var output strings.Builder

	output.WriteString("# Job Match\n\n")
	output.WriteString(fmt.Sprintf("**Overall Match:** %.1f%% (%s)\n\n", result.OverallMatch, result.MatchLevel))
	output.WriteString(fmt.Sprintf("**Keyword Match:** %.1f%%\n\n", result.KeywordMatch))
	output.WriteString(fmt.Sprintf("**Skill Match:** %.1f%%\n\n", result.SkillMatch))

	if len(result.MatchedKeywords) > 0 {
		output.WriteString("## Matched Keywords\n")
		writeBulletList(&output, result.MatchedKeywords)
	}

	if len(result.MissingKeywords) > 0 {
		output.WriteString("## Missing Keywords\n")
		writeBulletList(&output, result.MissingKeywords)
	}

	if len(result.MatchedSkills) > 0 {
		output.WriteString("## Matched Skills\n")
		writeBulletList(&output, result.MatchedSkills)
	}

	if len(result.MissingSkills) > 0 {
		output.WriteString("## Missing Skills\n")
		writeBulletList(&output, result.MissingSkills)
	}

	output.WriteString("## Recommendation\n\n")
	output.WriteString(result.Recommendation)
	output.WriteString("\n")

	return output.String(), nil
}

func (mmf *MatchMarkdownFormatter) SupportedType() string {
	return "MatchResult"
}

// RoadmapTextFormatter handles text formatting for career roadmaps
type RoadmapTextFormatter struct{}

func (rtf *RoadmapTextFormatter) Format(data any) (string, error) {
	result, ok := data.(types.RoadmapOutput)
	if !ok {
		return "", fmt.Errorf("expected RoadmapOutput, got %T", data)
	}

	var output strings.Builder

	output.WriteString("=== CAREER ROADMAP ===\n\n")
	output.WriteString(fmt.Sprintf("Current Level: %s\n", result.CurrentLevel))
	output.WriteString(fmt.Sprintf("Target Role:   %s\n", result.TargetRole))
	output.WriteString(fmt.Sprintf("Timeline:      %s\n\n", result.Timeline))

	output.WriteString("=== STEPS ===\n\n")
	for _, step := range result.Steps {
		output.WriteString(fmt.Sprintf("%d. %s (%s)\n", step.Step, step.Title, step.Duration))
		output.WriteString("   ")
		output.WriteString(step.Description)
		output.WriteString("\n")
		if len(step.SkillsToLearn) > 0 {
			output.WriteString(fmt.Sprintf("   Skills: %s\n", strings.Join(step.SkillsToLearn, ", ")))
		}
		if len(step.Resources) > 0 {
			output.WriteString(fmt.Sprintf("   Resources: %s\n", strings.Join(step.Resources, ", ")))
		}
		output.WriteString("\n")
	}

	if len(result.PortfolioIdeas) > 0 {
		output.WriteString("Portfolio Ideas:\n")
		for _, idea := range result.PortfolioIdeas {
			output.WriteString(fmt.Sprintf("- %s\n", idea))
		}
		output.WriteString("\n")
	}

	if len(result.LearningResources) > 0 {
		output.WriteString("Learning Resources:\n")
		for _, resource := range result.LearningResources {
			output.WriteString(fmt.Sprintf("- %s (%s): %s\n", resource.Name, resource.Type, resource.Focus))
		}
		output.WriteString("\n")
	}

	if len(result.NextRoles) > 0 {
		output.WriteString(fmt.Sprintf("Next Roles: %s\n", strings.Join(result.NextRoles, ", ")))
	}
	if len(result.KeySkillsToDevelop) > 0 {
		output.WriteString(fmt.Sprintf("Key Skills to Develop: %s\n", strings.Join(result.KeySkillsToDevelop, ", ")))
	}
	if result.SalaryInsights != "" {
		output.WriteString("\nSalary Insights:\n")
		output.WriteString(result.SalaryInsights)
		output.WriteString("\n")
	}

	return output.String(), nil
}

func (rtf *RoadmapTextFormatter) SupportedType() string {
	return "RoadmapOutput"
}

// RoadmapMarkdownFormatter handles markdown formatting for career roadmaps
type RoadmapMarkdownFormatter struct{}

func (rmf *RoadmapMarkdownFormatter) Format(data any) (string, error) {
	result, ok := data.(types.RoadmapOutput)
	if !ok {
		return "", fmt.Errorf("expected RoadmapOutput, got %T", data)
	}

	var output strings.Builder

	output.WriteString("# Career Roadmap\n\n")
	output.WriteString(fmt.Sprintf("**Current Level:** %s\n\n", result.CurrentLevel))
	output.WriteString(fmt.Sprintf("**Target Role:** %s\n\n", result.TargetRole))
	output.WriteString(fmt.Sprintf("**Timeline:** %s\n\n", result.Timeline))

	output.WriteString("## Steps\n\n")
	for _, step := range result.Steps {
		output.WriteString(fmt.Sprintf("### %d. %s (%s)\n\n", step.Step, step.Title, step.Duration))
		output.WriteString(step.Description)
		output.WriteString("\n\n")
		if len(step.SkillsToLearn) > 0 {
			output.WriteString(fmt.Sprintf("**Skills:** %s\n\n", strings.Join(step.SkillsToLearn, ", ")))
		}
		if len(step.Resources) > 0 {
			output.WriteString(fmt.Sprintf("**Resources:** %s\n\n", strings.Join(step.Resources, ", ")))
		}
	}

	if len(result.PortfolioIdeas) > 0 {
		output.WriteString("## Portfolio Ideas\n")
		writeBulletList(&output, result.PortfolioIdeas)
	}

	if len(result.LearningResources) > 0 {
		output.WriteString("## Learning Resources\n")
		for _, resource := range result.LearningResources {
			output.WriteString(fmt.Sprintf("- **%s** (%s): %s\n", resource.Name, resource.Type, resource.Focus))
		}
		output.WriteString("\n")
	}

	if len(result.NextRoles) > 0 {
		output.WriteString("## Next Roles\n")
		writeBulletList(&output, result.NextRoles)
	}

	if len(result.KeySkillsToDevelop) > 0 {
		output.WriteString("## Key Skills to Develop\n")
		writeBulletList(&output, result.KeySkillsToDevelop)
	}

	if result.SalaryInsights != "" {
		output.WriteString("## Salary Insights\n\n")
		output.WriteString(result.SalaryInsights)
		output.WriteString("\n")
	}

	return output.String(), nil
}

func (rmf *RoadmapMarkdownFormatter) SupportedType() string {
	return "RoadmapOutput"
}

// ParsedResumeTextFormatter handles text formatting for parsed resumes
type ParsedResumeTextFormatter struct{}

func (ptf *ParsedResumeTextFormatter) Format(data any) (string, error) {
	result, ok := data.(types.ParsedResume)
	if !ok {
		return "", fmt.Errorf("expected ParsedResume, got %T", data)
	}

	var output strings.Builder

	output.WriteString("=== PARSED RESUME ===\n\n")
	output.WriteString(fmt.Sprintf("Word Count: %d\n\n", result.WordCount))

	if result.Contact.Email != "" || result.Contact.Phone != "" || result.Contact.LinkedIn != "" || result.Contact.GitHub != "" {
		output.WriteString("Contact:\n")
		if result.Contact.Email != "" {
			output.WriteString(fmt.Sprintf("  Email:    %s\n", result.Contact.Email))
		}
		if result.Contact.Phone != "" {
			output.WriteString(fmt.Sprintf("  Phone:    %s\n", result.Contact.Phone))
		}
		if result.Contact.LinkedIn != "" {
			output.WriteString(fmt.Sprintf("  LinkedIn: %s\n", result.Contact.LinkedIn))
		}
		if result.Contact.GitHub != "" {
			output.WriteString(fmt.Sprintf("  GitHub:   %s\n", result.Contact.GitHub))
		}
		output.WriteString("\n")
	}

	if len(result.Skills) > 0 {
		output.WriteString(fmt.Sprintf("Skills (%d): %s\n\n", len(result.Skills), strings.Join(result.Skills, ", ")))
	}

	if len(result.Sections) > 0 {
		sections := make([]string, 0, len(result.Sections))
		for name := range result.Sections {
			sections = append(sections, name)
		}
		output.WriteString(fmt.Sprintf("Sections Found: %s\n\n", strings.Join(sections, ", ")))
	}

	if len(result.Projects) > 0 {
		output.WriteString("Projects:\n")
		for _, project := range result.Projects {
			output.WriteString(fmt.Sprintf("- %s\n", project.Name))
			if project.Description != "" {
				output.WriteString(fmt.Sprintf("  %s\n", project.Description))
			}
		}
	}

	return output.String(), nil
}

func (ptf *ParsedResumeTextFormatter) SupportedType() string {
	return "ParsedResume"
}

// ParsedResumeMarkdownFormatter handles markdown formatting for parsed resumes
type ParsedResumeMarkdownFormatter struct{}

func (pmf *ParsedResumeMarkdownFormatter) Format(data any) (string, error) {
	result, ok := data.(types.ParsedResume)
	if !ok {
		return "", fmt.Errorf("expected ParsedResume, got %T", data)
	}

	var output strings.Builder

	output.WriteString("# Parsed Resume\n\n")
	output.WriteString(fmt.Sprintf("**Word Count:** %d\n\n", result.WordCount))

	output.WriteString("## Contact\n\n")
	if result.Contact.Email != "" {
		output.WriteString(fmt.Sprintf("- **Email:** %s\n", result.Contact.Email))
	}
	if result.Contact.Phone != "" {
		output.WriteString(fmt.Sprintf("- **Phone:** %s\n", result.Contact.Phone))
	}
	if result.Contact.LinkedIn != "" {
		output.WriteString(fmt.Sprintf("- **LinkedIn:** %s\n", result.Contact.LinkedIn))
	}
	if result.Contact.GitHub != "" {
		output.WriteString(fmt.Sprintf("- **GitHub:** %s\n", result.Contact.GitHub))
	}
	output.WriteString("\n")

	if len(result.Skills) > 0 {
		output.WriteString("## Skills\n")
		writeBulletList(&output, result.Skills)
	}

	if len(result.Projects) > 0 {
		output.WriteString("## Projects\n\n")
		for _, project := range result.Projects {
			output.WriteString(fmt.Sprintf("### %s\n\n", project.Name))
			if project.Description != "" {
				output.WriteString(project.Description)
				output.WriteString("\n\n")
			}
		}
	}

	return output.String(), nil
}

func (pmf *ParsedResumeMarkdownFormatter) SupportedType() string {
	return "ParsedResume"
}

// Global formatter registry
var GlobalRegistry = NewFormatterRegistry()
