package scoring

import (
	"math"
	"strings"

	"careerpath/internal/types"
)

// analyzeSkillCoverage scores the size and category spread of the skill list.
// Skill names are compared after lowercasing; the list is otherwise taken as
// the parser produced it.
func analyzeSkillCoverage(skills []string) (float64, types.SkillDetails) {
	details := types.SkillDetails{
		TotalSkills:     len(skills),
		SkillCategories: make(map[string]types.SkillCategory, len(skillCategories)),
		Recommendations: []string{},
	}

	skillsLower := make(map[string]struct{}, len(skills))
	for _, s := range skills {
		skillsLower[strings.ToLower(s)] = struct{}{}
	}

	categoriesWithSkills := 0
	for _, category := range skillCategoryOrder {
		found := []string{}
		for _, candidate := range skillCategories[category] {
			if _, ok := skillsLower[candidate]; ok {
				found = append(found, candidate)
			}
		}
		details.SkillCategories[category] = types.SkillCategory{
			Found: found,
			Count: len(found),
		}
		if len(found) > 0 {
			categoriesWithSkills++
		}
	}

	baseScore := math.Min(float64(len(skills))/10, 1) * 15
	diversityBonus := float64(categoriesWithSkills) / float64(len(skillCategoryOrder)) * 10

	if details.SkillCategories["programming"].Count == 0 {
		details.Recommendations = append(details.Recommendations,
			"Add programming languages to your skills")
	}
	if details.SkillCategories["soft_skills"].Count == 0 {
		details.Recommendations = append(details.Recommendations,
			"Include soft skills like leadership and communication")
	}
	if len(skills) < 5 {
		details.Recommendations = append(details.Recommendations,
			"Add more relevant skills to improve your profile")
	}

	return math.Min(baseScore+diversityBonus, 25), details
}
