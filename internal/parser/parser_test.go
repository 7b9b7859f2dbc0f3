package parser

import (
	"errors"
	"strings"
	"testing"

	apperrors "careerpath/internal/errors"
)

const sampleResume = `Jane Doe
jane.doe@example.com | 555-123-4567
linkedin.com/in/janedoe | github.com/janedoe

Summary
Backend engineer focused on data platforms.

Experience
Built pipelines with Python and PostgreSQL on AWS.
Led a team using agile practices.

Skills
Python, Go, PostgreSQL, Docker, Leadership

Projects
Ingest Service
a streaming ingest service handling 1M events per day.
- Dashboard Revamp
rebuilt the analytics dashboard in React.

Education
BSc Computer Science`

func TestExtractSkills(t *testing.T) {
	skills := ExtractSkills(sampleResume)

	want := []string{"Python", "Go", "React", "Postgresql", "Aws", "Docker", "Agile", "Leadership"}
	for _, w := range want {
		found := false
		for _, s := range skills {
			if s == w {
				found = true
			}
		}
		if !found {
			t.Errorf("skill %q not extracted, got %v", w, skills)
		}
	}

	seen := map[string]bool{}
	for _, s := range skills {
		if seen[s] {
			t.Errorf("duplicate skill %q", s)
		}
		seen[s] = true
	}
}

func TestExtractSkillsWordBoundary(t *testing.T) {
	// "going" must not register the Go skill.
	skills := ExtractSkills("I enjoy going outside and writing javascript")
	for _, s := range skills {
		if s == "Go" {
			t.Errorf("matched Go inside 'going': %v", skills)
		}
	}
	if len(skills) != 1 || skills[0] != "Javascript" {
		t.Errorf("skills = %v, want [Javascript]", skills)
	}
}

func TestTitleCaseWords(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"python", "Python"},
		{"machine learning", "Machine Learning"},
		{"node.js", "Node.Js"},
		{"ci/cd", "Ci/Cd"},
		{"AWS", "Aws"},
	}
	for _, tt := range tests {
		if got := titleCaseWords(tt.in); got != tt.want {
			t.Errorf("titleCaseWords(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestExtractSections(t *testing.T) {
	sections := ExtractSections(sampleResume)

	for _, name := range []string{"header", "summary", "experience", "skills", "projects", "education"} {
		if _, ok := sections[name]; !ok {
			t.Errorf("section %q missing, got keys %v", name, sectionKeys(sections))
		}
	}
	if !strings.Contains(sections["experience"], "pipelines") {
		t.Errorf("experience content = %q", sections["experience"])
	}
	if !strings.Contains(sections["header"], "Jane Doe") {
		t.Errorf("header content = %q", sections["header"])
	}
}

func TestExtractSectionsLongLineIsNotHeading(t *testing.T) {
	text := "Education is the most powerful weapon which you can use to change the world today\nMore text"
	sections := ExtractSections(text)
	if _, ok := sections["education"]; ok {
		t.Error("long line wrongly treated as education heading")
	}
}

func TestExtractProjects(t *testing.T) {
	projects := ExtractProjects(sampleResume)

	if len(projects) != 2 {
		t.Fatalf("got %d projects, want 2: %+v", len(projects), projects)
	}
	if projects[0].Name != "Ingest Service" {
		t.Errorf("first project name = %q", projects[0].Name)
	}
	if !strings.Contains(projects[0].Description, "1M events") {
		t.Errorf("first project description = %q", projects[0].Description)
	}
	if projects[1].Name != "Dashboard Revamp" {
		t.Errorf("second project name = %q", projects[1].Name)
	}
}

func TestExtractProjectsDefaults(t *testing.T) {
	text := "Projects\nSolo Utility That Does One Small Thing Well"
	projects := ExtractProjects(text)
	if len(projects) != 1 {
		t.Fatalf("got %d projects, want 1", len(projects))
	}
	if projects[0].Description != defaultProjectDetail {
		t.Errorf("description = %q, want default", projects[0].Description)
	}
}

func TestExtractContactInfo(t *testing.T) {
	contact := ExtractContactInfo(sampleResume)

	if contact.Email != "jane.doe@example.com" {
		t.Errorf("email = %q", contact.Email)
	}
	if contact.Phone == "" {
		t.Error("phone not extracted")
	}
	if contact.LinkedIn != "linkedin.com/in/janedoe" {
		t.Errorf("linkedin = %q", contact.LinkedIn)
	}
	if contact.GitHub != "github.com/janedoe" {
		t.Errorf("github = %q", contact.GitHub)
	}
}

func TestExtractTextUnsupportedFormats(t *testing.T) {
	tests := []struct {
		name     string
		filename string
		wantCode string
	}{
		{"legacy doc", "resume.doc", apperrors.ErrCodeUnsupportedFormat},
		{"plain text", "resume.txt", apperrors.ErrCodeUnsupportedFormat},
		{"no extension", "resume", apperrors.ErrCodeUnsupportedFormat},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ExtractText([]byte("content"), tt.filename)
			if err == nil {
				t.Fatal("expected error")
			}
			var appErr *apperrors.AppError
			if !errors.As(err, &appErr) {
				t.Fatalf("error type = %T", err)
			}
			if appErr.Code != tt.wantCode {
				t.Errorf("code = %q, want %q", appErr.Code, tt.wantCode)
			}
		})
	}
}

func TestExtractTextCorruptPDF(t *testing.T) {
	_, err := ExtractText([]byte("not a pdf"), "resume.pdf")
	if err == nil {
		t.Fatal("expected error for corrupt PDF")
	}
	var appErr *apperrors.AppError
	if !errors.As(err, &appErr) {
		t.Fatalf("error type = %T", err)
	}
	if appErr.Type != apperrors.ErrorTypeParse {
		t.Errorf("error type = %q, want parse", appErr.Type)
	}
}

func TestAnalyzeTextWordCount(t *testing.T) {
	parsed := AnalyzeText("one two three")
	if parsed.WordCount != 3 {
		t.Errorf("WordCount = %d, want 3", parsed.WordCount)
	}
}

func sectionKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	return keys
}
