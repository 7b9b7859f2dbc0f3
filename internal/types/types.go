package types

// ScoreResumeInput represents the input for ATS scoring
type ScoreResumeInput struct {
	ResumeText     string   `json:"resumeText"`
	Skills         []string `json:"skills"`
	JobDescription string   `json:"jobDescription,omitempty"`
}

// KeywordDetails holds the per-signal breakdown from keyword analysis
type KeywordDetails struct {
	ActionVerbsFound   []string `json:"actionVerbsFound"`
	ActionVerbsMissing []string `json:"actionVerbsMissing"`
	KeywordDensity     float64  `json:"keywordDensity"`
	MatchedKeywords    []string `json:"matchedKeywords"`
	MissingKeywords    []string `json:"missingKeywords"`
}

// SectionStatus records whether a canonical resume section heading was detected
type SectionStatus struct {
	Section string `json:"section"`
	Present bool   `json:"present"`
}

// FormattingDetails holds issues and suggestions from formatting analysis
type FormattingDetails struct {
	Issues        []string        `json:"issues"`
	Suggestions   []string        `json:"suggestions"`
	SectionStatus []SectionStatus `json:"sectionStatus"`
}

// SkillCategory summarizes the skills matched within one category
type SkillCategory struct {
	Found []string `json:"found"`
	Count int      `json:"count"`
}

// SkillDetails holds the category breakdown from skill coverage analysis
type SkillDetails struct {
	TotalSkills     int                      `json:"totalSkills"`
	SkillCategories map[string]SkillCategory `json:"skillCategories"`
	Recommendations []string                 `json:"recommendations"`
}

// MetricSample is one quantified achievement found in the resume text
type MetricSample struct {
	Text string `json:"text"`
	Type string `json:"type"`
}

// ExperienceDetails holds the metric samples from experience quality analysis
type ExperienceDetails struct {
	MetricsFound []MetricSample `json:"metricsFound"`
	Achievements int            `json:"achievements"`
	Suggestions  []string       `json:"suggestions"`
}

// ScoreBreakdown holds the four component scores, each rounded to one decimal
type ScoreBreakdown struct {
	KeywordScore    float64 `json:"keywordScore"`
	FormattingScore float64 `json:"formattingScore"`
	SkillScore      float64 `json:"skillScore"`
	ExperienceScore float64 `json:"experienceScore"`
}

// ScoreDetails bundles the per-analyzer detail structures
type ScoreDetails struct {
	Keywords   KeywordDetails    `json:"keywords"`
	Formatting FormattingDetails `json:"formatting"`
	Skills     SkillDetails      `json:"skills"`
	Experience ExperienceDetails `json:"experience"`
}

// ATSResult is the complete outcome of scoring one resume
type ATSResult struct {
	TotalScore      int            `json:"totalScore"`
	Grade           string         `json:"grade"`
	GradeText       string         `json:"gradeText"`
	Breakdown       ScoreBreakdown `json:"breakdown"`
	Details         ScoreDetails   `json:"details"`
	Suggestions     []string       `json:"suggestions"`
	MissingKeywords []string       `json:"missingKeywords"`
}

// MatchJobInput represents the input for matching a resume against a posting
type MatchJobInput struct {
	ResumeText     string   `json:"resumeText"`
	Skills         []string `json:"skills"`
	JobDescription string   `json:"jobDescription"`
}

// MatchResult is the outcome of comparing a resume against one job description
type MatchResult struct {
	OverallMatch    float64  `json:"overallMatch"`
	MatchLevel      string   `json:"matchLevel"`
	KeywordMatch    float64  `json:"keywordMatch"`
	SkillMatch      float64  `json:"skillMatch"`
	MatchedKeywords []string `json:"matchedKeywords"`
	MissingKeywords []string `json:"missingKeywords"`
	MatchedSkills   []string `json:"matchedSkills"`
	MissingSkills   []string `json:"missingSkills"`
	Recommendation  string   `json:"recommendation"`
}

// ContactInfo holds contact details extracted from a resume document
type ContactInfo struct {
	Email    string `json:"email,omitempty"`
	Phone    string `json:"phone,omitempty"`
	LinkedIn string `json:"linkedin,omitempty"`
	GitHub   string `json:"github,omitempty"`
}

// Project is a project entry extracted from a resume document
type Project struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// ParsedResume is the structured result of parsing a resume document
type ParsedResume struct {
	RawText     string            `json:"rawText"`
	Contact     ContactInfo       `json:"contact"`
	Skills      []string          `json:"skills"`
	Sections    map[string]string `json:"sections"`
	Projects    []Project         `json:"projects"`
	WordCount   int               `json:"wordCount"`
	HasProjects bool              `json:"hasProjects"`
}

// RoadmapInput represents the input for career roadmap generation
type RoadmapInput struct {
	Skills         []string `json:"skills"`
	Experience     string   `json:"experience,omitempty"`
	TargetRole     string   `json:"targetRole,omitempty"`
	JobDescription string   `json:"jobDescription,omitempty"`
}

// RoadmapStep is one stage of a career roadmap
type RoadmapStep struct {
	Step          int      `json:"step"`
	Title         string   `json:"title"`
	Description   string   `json:"description"`
	Duration      string   `json:"duration"`
	SkillsToLearn []string `json:"skillsToLearn"`
	Resources     []string `json:"resources"`
}

// LearningResource is a recommended study resource
type LearningResource struct {
	Name  string `json:"name"`
	Type  string `json:"type"`
	Focus string `json:"focus"`
}

// RoadmapOutput is a career development plan. Generated reports whether it
// came from the AI provider or the deterministic fallback.
type RoadmapOutput struct {
	CurrentLevel       string             `json:"currentLevel"`
	TargetRole         string             `json:"targetRole"`
	Timeline           string             `json:"timeline"`
	Steps              []RoadmapStep      `json:"roadmapSteps"`
	PortfolioIdeas     []string           `json:"portfolioIdeas"`
	LearningResources  []LearningResource `json:"learningResources"`
	NextRoles          []string           `json:"nextRoles"`
	KeySkillsToDevelop []string           `json:"keySkillsToDevelop"`
	SalaryInsights     string             `json:"salaryInsights"`
	Generated          bool               `json:"generated"`
}

// InsightsInput represents the input for resume insights generation
type InsightsInput struct {
	ResumeText string   `json:"resumeText"`
	Skills     []string `json:"skills"`
}

// ImprovementTip is one prioritized resume improvement suggestion
type ImprovementTip struct {
	Area       string `json:"area"`
	Suggestion string `json:"suggestion"`
	Priority   string `json:"priority"`
}

// InsightsOutput is qualitative feedback on a resume
type InsightsOutput struct {
	OverallAssessment   string           `json:"overallAssessment"`
	Strengths           []string         `json:"strengths"`
	Weaknesses          []string         `json:"weaknesses"`
	ImprovementTips     []ImprovementTip `json:"improvementTips"`
	MissingSkills       []string         `json:"missingSkills"`
	IndustryFit         []string         `json:"industryFit"`
	RoleRecommendations []string         `json:"roleRecommendations"`
	Generated           bool             `json:"generated"`
}

// InterviewInput represents the input for interview tip generation
type InterviewInput struct {
	JobDescription string   `json:"jobDescription"`
	Skills         []string `json:"skills"`
}

// InterviewQuestion pairs a likely question with approach guidance
type InterviewQuestion struct {
	Question string `json:"question"`
	Tip      string `json:"tip"`
}

// InterviewTipsOutput is preparation guidance for a specific posting
type InterviewTipsOutput struct {
	KeyTopics           []string            `json:"keyTopics"`
	PotentialQuestions  []InterviewQuestion `json:"potentialQuestions"`
	SkillsToHighlight   []string            `json:"skillsToHighlight"`
	CompanyResearchTips []string            `json:"companyResearchTips"`
	QuestionsToAsk      []string            `json:"questionsToAsk"`
	Generated           bool                `json:"generated"`
}
