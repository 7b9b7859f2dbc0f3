package parser

// skillKeywords is the skill vocabulary probed against resume text. Matching
// is word-bounded and case-insensitive; hits are reported in Title Case.
var skillKeywords = []string{
	// Programming languages
	"python", "java", "javascript", "typescript", "c++", "c#", "ruby", "go", "rust",
	"php", "swift", "kotlin", "scala", "r",
	// Web technologies
	"html", "css", "react", "angular", "vue", "node.js", "express", "django", "flask",
	"fastapi", "spring", "asp.net",
	// Data science and ML
	"machine learning", "deep learning", "tensorflow", "pytorch", "keras",
	"scikit-learn", "pandas", "numpy", "matplotlib", "data analysis",
	"data visualization", "nlp", "computer vision", "neural networks", "ai",
	"artificial intelligence",
	// Databases
	"sql", "mysql", "postgresql", "mongodb", "redis", "elasticsearch", "cassandra",
	"oracle", "sqlite",
	// Cloud and DevOps
	"aws", "azure", "gcp", "google cloud", "docker", "kubernetes", "jenkins",
	"ci/cd", "terraform", "ansible",
	// Tools and practices
	"git", "github", "gitlab", "jira", "agile", "scrum", "rest api", "graphql",
	"microservices",
	// Soft skills
	"leadership", "communication", "problem solving", "teamwork",
	"project management", "analytical",
	// Certifications
	"aws certified", "azure certified", "pmp", "scrum master", "data science",
	"machine learning engineer",
}

type sectionPattern struct {
	name    string
	pattern string
}

// sectionHeaders lists recognizable section headings in priority order; the
// first matching pattern claims the line.
var sectionHeaders = []sectionPattern{
	{"experience", `(?i)^(work\s*experience|professional\s*experience|employment\s*history|experience)`},
	{"education", `(?i)^(education|academic\s*background|qualifications)`},
	{"skills", `(?i)^(skills|technical\s*skills|competencies|expertise)`},
	{"projects", `(?i)^(projects|personal\s*projects|portfolio|key\s*projects)`},
	{"certifications", `(?i)^(certifications|certificates|accreditations)`},
	{"summary", `(?i)^(summary|profile|objective|about\s*me)`},
}
