package ai

import (
	"fmt"
	"strings"

	"careerpath/internal/types"
)

// careerTrack describes the deterministic roadmap branch chosen from a skill profile
type careerTrack struct {
	path          string
	nextRoles     []string
	skillsToLearn []string
}

var careerTracks = []struct {
	indicators []string
	track      careerTrack
}{
	{
		indicators: []string{"python", "machine learning", "tensorflow", "pytorch", "data analysis"},
		track: careerTrack{
			path:          "Data Science / ML Engineering",
			nextRoles:     []string{"Data Scientist", "ML Engineer", "AI Engineer"},
			skillsToLearn: []string{"Deep Learning", "MLOps", "Cloud ML Services"},
		},
	},
	{
		indicators: []string{"react", "javascript", "angular", "vue", "node.js"},
		track: careerTrack{
			path:          "Full-Stack Development",
			nextRoles:     []string{"Senior Developer", "Tech Lead", "Engineering Manager"},
			skillsToLearn: []string{"System Design", "Cloud Architecture", "DevOps"},
		},
	},
	{
		indicators: []string{"aws", "azure", "docker", "kubernetes"},
		track: careerTrack{
			path:          "Cloud / DevOps Engineering",
			nextRoles:     []string{"DevOps Engineer", "Cloud Architect", "SRE"},
			skillsToLearn: []string{"Terraform", "Security", "Cost Optimization"},
		},
	},
}

var defaultTrack = careerTrack{
	path:          "Software Engineering",
	nextRoles:     []string{"Software Engineer", "Senior Engineer", "Tech Lead"},
	skillsToLearn: []string{"System Design", "Algorithms", "Cloud Services"},
}

// selectCareerTrack picks the roadmap branch matching the candidate's skills.
// Branch order matters: the first matching track wins.
func selectCareerTrack(skills []string) careerTrack {
	lower := make(map[string]bool, len(skills))
	for _, s := range skills {
		lower[strings.ToLower(s)] = true
	}
	for _, candidate := range careerTracks {
		for _, indicator := range candidate.indicators {
			if lower[indicator] {
				return candidate.track
			}
		}
	}
	return defaultTrack
}

// FallbackRoadmap builds a deterministic career roadmap when no AI provider is
// available. The branch is chosen from the candidate's skill profile.
func FallbackRoadmap(input types.RoadmapInput) types.RoadmapOutput {
	track := selectCareerTrack(input.Skills)

	targetRole := input.TargetRole
	if targetRole == "" {
		targetRole = track.nextRoles[0]
	}

	return types.RoadmapOutput{
		CurrentLevel: "Mid-level Professional",
		TargetRole:   targetRole,
		Timeline:     "6-12 months",
		Steps: []types.RoadmapStep{
			{
				Step:          1,
				Title:         "Skill Assessment & Gap Analysis",
				Description:   "Identify key skills needed for your target role and assess current proficiency",
				Duration:      "2 weeks",
				SkillsToLearn: []string{"Self-assessment", "Goal setting"},
				Resources:     []string{"LinkedIn Learning", "Coursera"},
			},
			{
				Step:          2,
				Title:         "Core Skill Development",
				Description:   fmt.Sprintf("Focus on building expertise in %s", track.path),
				Duration:      "2-3 months",
				SkillsToLearn: track.skillsToLearn[:2],
				Resources:     []string{"Online courses", "Documentation", "Practice projects"},
			},
			{
				Step:          3,
				Title:         "Portfolio Building",
				Description:   "Create projects that showcase your skills to potential employers",
				Duration:      "1-2 months",
				SkillsToLearn: []string{"Project management", "Documentation"},
				Resources:     []string{"GitHub", "Personal website"},
			},
			{
				Step:          4,
				Title:         "Networking & Job Search",
				Description:   "Connect with professionals in your target field and start applying",
				Duration:      "Ongoing",
				SkillsToLearn: []string{"Networking", "Interview skills"},
				Resources:     []string{"LinkedIn", "Meetups", "Tech conferences"},
			},
		},
		PortfolioIdeas: []string{
			"Build a full-stack web application",
			"Contribute to open source projects",
			"Create a technical blog",
		},
		LearningResources: []types.LearningResource{
			{Name: "Coursera", Type: "Course Platform", Focus: "Structured learning paths"},
			{Name: "LeetCode", Type: "Practice Platform", Focus: "Coding interviews"},
			{Name: "System Design Primer", Type: "GitHub Resource", Focus: "Architecture"},
		},
		NextRoles:          track.nextRoles,
		KeySkillsToDevelop: track.skillsToLearn,
		SalaryInsights:     "With the recommended skill development, expect 15-30% salary increase potential",
		Generated:          false,
	}
}

// FallbackInsights builds deterministic resume feedback when no AI provider is available
func FallbackInsights(input types.InsightsInput) types.InsightsOutput {
	return types.InsightsOutput{
		OverallAssessment: "Your resume shows relevant technical experience. Consider adding more quantifiable achievements.",
		Strengths: []string{
			"Technical skills are clearly listed",
			"Professional format",
			"Relevant experience highlighted",
		},
		Weaknesses: []string{
			"Could use more specific metrics",
			"Consider adding more soft skills",
		},
		ImprovementTips: []types.ImprovementTip{
			{
				Area:       "Achievements",
				Suggestion: "Add specific numbers and metrics to your accomplishments",
				Priority:   "High",
			},
			{
				Area:       "Keywords",
				Suggestion: "Include more industry-specific keywords",
				Priority:   "Medium",
			},
		},
		MissingSkills:       []string{"Cloud certifications", "Agile methodologies"},
		IndustryFit:         []string{"Technology", "Software Development", "IT Services"},
		RoleRecommendations: []string{"Software Engineer", "Full Stack Developer", "Technical Lead"},
		Generated:           false,
	}
}

// FallbackInterviewTips builds deterministic interview guidance when no AI provider is available
func FallbackInterviewTips(input types.InterviewInput) types.InterviewTipsOutput {
	return types.InterviewTipsOutput{
		KeyTopics: []string{
			"Technical fundamentals",
			"Problem-solving approach",
			"Past project experiences",
		},
		PotentialQuestions: []types.InterviewQuestion{
			{
				Question: "Tell me about yourself",
				Tip:      "Prepare a 2-minute summary focusing on relevant experience",
			},
			{
				Question: "Describe a challenging project",
				Tip:      "Use STAR method: Situation, Task, Action, Result",
			},
			{
				Question: "Why are you interested in this role?",
				Tip:      "Research the company and connect your skills to their needs",
			},
		},
		SkillsToHighlight: []string{
			"Problem-solving abilities",
			"Team collaboration",
			"Technical expertise",
		},
		CompanyResearchTips: []string{
			"Review company website and recent news",
			"Check LinkedIn for employee insights",
			"Understand their products and services",
		},
		QuestionsToAsk: []string{
			"What does success look like in this role?",
			"How would you describe the team culture?",
			"What are the growth opportunities?",
		},
		Generated: false,
	}
}
