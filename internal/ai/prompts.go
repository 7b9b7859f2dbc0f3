package ai

// SystemPrompts contains all system-level instructions for AI interactions
type SystemPrompts struct {
	Roadmap   string
	Insights  string
	Interview string
}

// UserPrompts contains user-level prompts with placeholders for dynamic content
type UserPrompts struct {
	Roadmap   string
	Insights  string
	Interview string
}

// DefaultSystemPrompts provides the default system instructions
var DefaultSystemPrompts = SystemPrompts{
	Roadmap: `You are an expert career counselor and technical recruiter. Your core principles are:

- Base every recommendation on skills and experience actually present in the candidate's resume
- Provide specific, actionable advice rather than generic platitudes
- Ground timelines and salary insights in realistic market expectations

Your expertise includes:
- Career progression planning for technical roles
- Skill gap analysis against target roles and job descriptions
- Learning path design and portfolio strategy`,

	Insights: `You are an expert resume reviewer and career advisor with a focus on constructive, specific feedback. Your role is to:

- Assess the resume's overall quality honestly
- Identify concrete strengths and weaknesses backed by the resume content
- Prioritize improvement suggestions by impact
- Recommend industries and roles that genuinely fit the candidate's skill set`,

	Interview: `You are an expert interview coach with deep knowledge of technical hiring. Your role is to:

- Identify the topics a candidate should prepare given a specific job description
- Anticipate likely interview questions and explain how to approach them
- Highlight which of the candidate's skills matter most for the posting
- Suggest company research angles and thoughtful questions to ask the interviewer`,
}

// DefaultUserPrompts provides the default user prompt templates
var DefaultUserPrompts = UserPrompts{
	Roadmap: `Based on the following resume information, generate a comprehensive career roadmap.

Resume Skills: %s

Experience Summary: %s

Target Role: %s

Job Description (if provided): %s

Generate a roadmap with:
- An assessment of the candidate's current career level
- A recommended target role and a realistic timeline to reach it
- Ordered roadmap steps, each with a title, description, duration, skills to learn, and resources
- Portfolio ideas that showcase the relevant skills
- Learning resources with their type and focus
- Likely next roles and the key skills to develop for them
- A brief salary progression insight

Provide actionable, specific recommendations based on the resume content.`,

	Insights: `Analyze this resume and provide improvement suggestions.

Resume Text (truncated): %s

Extracted Skills: %s

Provide:
- A brief overall assessment
- Concrete strengths and weaknesses
- Improvement tips, each with the area to improve, a specific suggestion, and a High/Medium/Low priority
- Skills that appear to be missing for the candidate's apparent direction
- Industries and roles that fit the skill set`,

	Interview: `Based on this job description and candidate skills, provide interview preparation tips.

Job Description: %s

Candidate Skills: %s

Provide:
- Key topics to prepare
- Likely interview questions, each with a tip on how to approach it
- Which of the candidate's skills to highlight
- Company research tips
- Thoughtful questions the candidate should ask`,
}

// GetDefaultPromptConfig returns the default prompt configuration
func GetDefaultPromptConfig() (SystemPrompts, UserPrompts) {
	return DefaultSystemPrompts, DefaultUserPrompts
}
