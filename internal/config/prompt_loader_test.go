package config

import (
	"os"
	"path/filepath"
	"testing"
)

func writePromptFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatalf("failed to create prompt file %s: %v", name, err)
	}
	return path
}

func TestLoadPromptsFromFiles(t *testing.T) {
	tempDir := t.TempDir()

	systemPromptFile := writePromptFile(t, tempDir, "system.roadmap.md", "You are a senior career coach.")
	userPromptFile := writePromptFile(t, tempDir, "user.roadmap.md", "Skills: %s, Target role: %s")

	config := &Config{
		AI: AIConfig{
			Roadmap: OperationAIConfig{
				CustomPrompts: PromptConfig{
					SystemPrompts: SystemPrompts{RoadmapFile: systemPromptFile},
					UserPrompts:   UserPrompts{RoadmapFile: userPromptFile},
				},
			},
		},
	}

	if err := config.loadPromptsFromFiles(); err != nil {
		t.Fatalf("failed to load prompts from files: %v", err)
	}

	loaded := config.GetLoadedRoadmapPrompts()
	if loaded.SystemPrompts.Roadmap != "You are a senior career coach." {
		t.Errorf("system prompt not loaded, got %q", loaded.SystemPrompts.Roadmap)
	}
	if loaded.UserPrompts.Roadmap != "Skills: %s, Target role: %s" {
		t.Errorf("user prompt not loaded, got %q", loaded.UserPrompts.Roadmap)
	}
}

func TestLoadPromptsTrimsWhitespace(t *testing.T) {
	tempDir := t.TempDir()
	promptFile := writePromptFile(t, tempDir, "system.insights.md", "\n\n  Assess this resume.  \n")

	config := &Config{
		AI: AIConfig{
			Insights: OperationAIConfig{
				CustomPrompts: PromptConfig{
					SystemPrompts: SystemPrompts{InsightsFile: promptFile},
				},
			},
		},
	}

	if err := config.loadPromptsFromFiles(); err != nil {
		t.Fatalf("failed to load prompts from files: %v", err)
	}
	if got := config.GetLoadedInsightsPrompts().SystemPrompts.Insights; got != "Assess this resume." {
		t.Errorf("expected trimmed prompt, got %q", got)
	}
}

func TestLoadPromptsEmptyFile(t *testing.T) {
	tempDir := t.TempDir()
	promptFile := writePromptFile(t, tempDir, "system.interview.md", "   \n  ")

	config := &Config{
		AI: AIConfig{
			Interview: OperationAIConfig{
				CustomPrompts: PromptConfig{
					SystemPrompts: SystemPrompts{InterviewFile: promptFile},
				},
			},
		},
	}

	if err := config.loadPromptsFromFiles(); err == nil {
		t.Error("expected error for empty prompt file")
	}
}

func TestValidatePromptFilesMissing(t *testing.T) {
	config := &Config{
		AI: AIConfig{
			CustomPrompts: PromptConfig{
				SystemPrompts: SystemPrompts{RoadmapFile: "/nonexistent/prompt.md"},
			},
		},
	}

	if err := config.validatePromptFiles(); err == nil {
		t.Error("expected validation error for missing prompt file")
	}
}

func TestValidatePromptFilesNoneConfigured(t *testing.T) {
	config := &Config{}
	if err := config.validatePromptFiles(); err != nil {
		t.Errorf("expected no error when no prompt files configured, got %v", err)
	}
}
