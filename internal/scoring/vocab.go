package scoring

// actionVerbs are the achievement verbs the keyword analyzer credits.
var actionVerbs = []string{
	"achieved", "accomplished", "administered", "analyzed", "built", "collaborated",
	"contributed", "coordinated", "created", "delivered", "designed", "developed",
	"directed", "enhanced", "established", "executed", "generated", "implemented",
	"improved", "increased", "initiated", "launched", "led", "managed", "optimized",
	"organized", "oversaw", "planned", "produced", "reduced", "resolved", "streamlined",
	"supervised", "trained", "transformed",
}

// importantSections are the headings the formatting analyzer looks for.
var importantSections = []string{
	"experience", "education", "skills", "summary", "objective",
}

// keywordStopWords filters job description tokens during keyword scoring.
// The job matcher uses its own list (matchStopWords); the two are tuned
// independently and must not be merged.
var keywordStopWords = map[string]struct{}{
	"the": {}, "a": {}, "an": {}, "and": {}, "or": {}, "but": {}, "in": {}, "on": {},
	"at": {}, "to": {}, "for": {}, "of": {}, "with": {}, "by": {}, "is": {}, "are": {},
	"was": {}, "were": {}, "be": {}, "been": {}, "being": {}, "have": {}, "has": {},
	"had": {}, "do": {}, "does": {}, "did": {}, "will": {}, "would": {}, "could": {},
	"should": {}, "may": {}, "might": {}, "must": {}, "shall": {}, "can": {}, "need": {},
	"dare": {}, "ought": {}, "used": {}, "this": {}, "that": {}, "these": {}, "those": {},
	"we": {}, "you": {}, "they": {}, "it": {}, "i": {}, "he": {}, "she": {}, "who": {},
	"what": {}, "which": {}, "when": {}, "where": {}, "why": {}, "how": {}, "all": {},
	"each": {}, "every": {}, "both": {}, "few": {}, "more": {}, "most": {}, "other": {},
	"some": {}, "such": {}, "no": {}, "nor": {}, "not": {}, "only": {}, "own": {},
	"same": {}, "so": {}, "than": {}, "too": {}, "very": {}, "just": {}, "also": {},
	"as": {}, "if": {}, "then": {}, "because": {}, "while": {}, "although": {},
	"though": {}, "after": {}, "before": {}, "since": {}, "until": {}, "unless": {},
	"about": {}, "above": {}, "across": {}, "against": {}, "along": {}, "among": {},
	"around": {}, "behind": {}, "below": {}, "beneath": {}, "beside": {}, "between": {},
	"beyond": {}, "during": {}, "except": {}, "inside": {}, "into": {}, "near": {},
	"off": {}, "onto": {}, "out": {}, "outside": {}, "over": {}, "past": {},
	"through": {}, "throughout": {}, "toward": {}, "under": {}, "underneath": {},
	"up": {}, "upon": {}, "within": {}, "without": {},
}

// matchStopWords filters job description tokens during job matching. It
// additionally drops posting boilerplate ("requirements", "qualifications")
// that the keyword list deliberately keeps.
var matchStopWords = map[string]struct{}{
	"the": {}, "a": {}, "an": {}, "and": {}, "or": {}, "but": {}, "in": {}, "on": {},
	"at": {}, "to": {}, "for": {}, "of": {}, "with": {}, "by": {}, "is": {}, "are": {},
	"was": {}, "were": {}, "be": {}, "been": {}, "have": {}, "has": {}, "had": {},
	"will": {}, "would": {}, "should": {}, "must": {}, "can": {}, "this": {},
	"that": {}, "we": {}, "you": {}, "they": {}, "it": {}, "your": {}, "our": {},
	"their": {}, "who": {}, "what": {}, "which": {}, "when": {}, "where": {},
	"as": {}, "if": {}, "about": {}, "into": {}, "through": {}, "during": {},
	"before": {}, "after": {}, "above": {}, "below": {}, "between": {}, "under": {},
	"again": {}, "further": {}, "then": {}, "once": {}, "here": {}, "there": {},
	"all": {}, "each": {}, "few": {}, "more": {}, "most": {}, "other": {},
	"some": {}, "such": {}, "no": {}, "not": {}, "only": {}, "same": {},
	"than": {}, "too": {}, "very": {}, "just": {}, "also": {}, "work": {},
	"working": {}, "job": {}, "position": {}, "role": {}, "looking": {},
	"seeking": {}, "required": {}, "requirements": {}, "qualifications": {},
	"responsibilities": {}, "experience": {}, "years": {}, "ability": {},
	"skills": {}, "strong": {}, "excellent": {}, "preferred": {},
	"including": {}, "etc": {}, "plus": {}, "bonus": {},
}

// skillCategoryOrder fixes the iteration order for category scoring output.
var skillCategoryOrder = []string{
	"programming", "data_science", "web", "cloud", "database", "soft_skills",
}

// skillCategories groups known skills for the coverage analyzer.
var skillCategories = map[string][]string{
	"programming":  {"python", "java", "javascript", "c++", "c#", "ruby", "go", "rust", "typescript"},
	"data_science": {"machine learning", "deep learning", "data analysis", "tensorflow", "pytorch", "pandas", "numpy"},
	"web":          {"html", "css", "react", "angular", "vue", "node.js", "django", "flask"},
	"cloud":        {"aws", "azure", "gcp", "docker", "kubernetes"},
	"database":     {"sql", "mysql", "postgresql", "mongodb", "redis"},
	"soft_skills":  {"leadership", "communication", "teamwork", "problem solving", "project management"},
}

// skillIndicators are the tokens the job matcher looks for inside a posting.
var skillIndicators = []string{
	"python", "java", "javascript", "react", "angular", "node", "sql", "aws",
	"azure", "docker", "kubernetes", "machine learning", "data", "analysis",
	"excel", "communication", "leadership", "agile", "scrum", "git", "api",
	"rest", "cloud", "linux", "tensorflow", "pytorch",
}
