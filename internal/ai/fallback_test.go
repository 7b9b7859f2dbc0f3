package ai

import (
	"testing"

	"careerpath/internal/types"
)

func TestSelectCareerTrack(t *testing.T) {
	tests := []struct {
		name      string
		skills    []string
		wantPath  string
		wantRoles []string
	}{
		{
			name:      "ml skills pick data science",
			skills:    []string{"Python", "TensorFlow"},
			wantPath:  "Data Science / ML Engineering",
			wantRoles: []string{"Data Scientist", "ML Engineer", "AI Engineer"},
		},
		{
			name:      "frontend skills pick full-stack",
			skills:    []string{"React", "TypeScript"},
			wantPath:  "Full-Stack Development",
			wantRoles: []string{"Senior Developer", "Tech Lead", "Engineering Manager"},
		},
		{
			name:      "infra skills pick devops",
			skills:    []string{"Docker", "Kubernetes", "Terraform"},
			wantPath:  "Cloud / DevOps Engineering",
			wantRoles: []string{"DevOps Engineer", "Cloud Architect", "SRE"},
		},
		{
			name:      "ml branch wins over devops when both match",
			skills:    []string{"AWS", "Python"},
			wantPath:  "Data Science / ML Engineering",
			wantRoles: []string{"Data Scientist", "ML Engineer", "AI Engineer"},
		},
		{
			name:      "unknown skills pick software engineering",
			skills:    []string{"COBOL"},
			wantPath:  "Software Engineering",
			wantRoles: []string{"Software Engineer", "Senior Engineer", "Tech Lead"},
		},
		{
			name:      "no skills pick software engineering",
			skills:    nil,
			wantPath:  "Software Engineering",
			wantRoles: []string{"Software Engineer", "Senior Engineer", "Tech Lead"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			track := selectCareerTrack(tt.skills)
			if track.path != tt.wantPath {
				t.Errorf("expected path %q, got %q", tt.wantPath, track.path)
			}
			for i, role := range tt.wantRoles {
				if track.nextRoles[i] != role {
					t.Errorf("expected next role %q at %d, got %q", role, i, track.nextRoles[i])
				}
			}
		})
	}
}

func TestFallbackRoadmap(t *testing.T) {
	out := FallbackRoadmap(types.RoadmapInput{Skills: []string{"react"}})

	if out.Generated {
		t.Error("fallback roadmap must report Generated=false")
	}
	if out.TargetRole != "Senior Developer" {
		t.Errorf("expected target role from track, got %q", out.TargetRole)
	}
	if out.Timeline != "6-12 months" {
		t.Errorf("unexpected timeline %q", out.Timeline)
	}
	if len(out.Steps) != 4 {
		t.Fatalf("expected 4 roadmap steps, got %d", len(out.Steps))
	}
	for i, step := range out.Steps {
		if step.Step != i+1 {
			t.Errorf("step %d has number %d", i, step.Step)
		}
	}
	if out.Steps[1].Description != "Focus on building expertise in Full-Stack Development" {
		t.Errorf("track path not reflected in step 2: %q", out.Steps[1].Description)
	}
	if len(out.LearningResources) != 3 {
		t.Errorf("expected 3 learning resources, got %d", len(out.LearningResources))
	}
}

func TestFallbackRoadmapHonorsTargetRole(t *testing.T) {
	out := FallbackRoadmap(types.RoadmapInput{
		Skills:     []string{"python"},
		TargetRole: "Staff Engineer",
	})
	if out.TargetRole != "Staff Engineer" {
		t.Errorf("explicit target role should win, got %q", out.TargetRole)
	}
}

func TestFallbackRoadmapDeterministic(t *testing.T) {
	input := types.RoadmapInput{Skills: []string{"aws", "docker"}}
	a := FallbackRoadmap(input)
	b := FallbackRoadmap(input)
	if a.TargetRole != b.TargetRole || a.Steps[1].Description != b.Steps[1].Description {
		t.Error("fallback roadmap must be deterministic for identical input")
	}
}

func TestFallbackInsights(t *testing.T) {
	out := FallbackInsights(types.InsightsInput{Skills: []string{"go"}})

	if out.Generated {
		t.Error("fallback insights must report Generated=false")
	}
	if len(out.Strengths) != 3 || len(out.Weaknesses) != 2 {
		t.Errorf("unexpected strengths/weaknesses counts: %d/%d", len(out.Strengths), len(out.Weaknesses))
	}
	if len(out.ImprovementTips) != 2 {
		t.Fatalf("expected 2 improvement tips, got %d", len(out.ImprovementTips))
	}
	if out.ImprovementTips[0].Priority != "High" {
		t.Errorf("first tip priority should be High, got %q", out.ImprovementTips[0].Priority)
	}
}

func TestFallbackInterviewTips(t *testing.T) {
	out := FallbackInterviewTips(types.InterviewInput{JobDescription: "Backend role"})

	if out.Generated {
		t.Error("fallback interview tips must report Generated=false")
	}
	if len(out.PotentialQuestions) != 3 {
		t.Fatalf("expected 3 potential questions, got %d", len(out.PotentialQuestions))
	}
	if out.PotentialQuestions[0].Question != "Tell me about yourself" {
		t.Errorf("unexpected first question %q", out.PotentialQuestions[0].Question)
	}
	for _, q := range out.PotentialQuestions {
		if q.Tip == "" {
			t.Errorf("question %q has no tip", q.Question)
		}
	}
}
