package config

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
)

// promptFileSlot maps a configured prompt file path to its loaded destination
type promptFileSlot struct {
	operation string
	kind      string // "system" or "user"
	filePath  string
	target    *string
}

// promptFileSlots enumerates every prompt slot that can be file-backed
func (c *Config) promptFileSlots() []promptFileSlot {
	return []promptFileSlot{
		// Global prompts
		{"roadmap", "system", c.AI.CustomPrompts.SystemPrompts.RoadmapFile, &loadedPrompts.Global.SystemPrompts.Roadmap},
		{"insights", "system", c.AI.CustomPrompts.SystemPrompts.InsightsFile, &loadedPrompts.Global.SystemPrompts.Insights},
		{"interview", "system", c.AI.CustomPrompts.SystemPrompts.InterviewFile, &loadedPrompts.Global.SystemPrompts.Interview},
		{"roadmap", "user", c.AI.CustomPrompts.UserPrompts.RoadmapFile, &loadedPrompts.Global.UserPrompts.Roadmap},
		{"insights", "user", c.AI.CustomPrompts.UserPrompts.InsightsFile, &loadedPrompts.Global.UserPrompts.Insights},
		{"interview", "user", c.AI.CustomPrompts.UserPrompts.InterviewFile, &loadedPrompts.Global.UserPrompts.Interview},

		// Operation-specific prompts
		{"roadmap", "system", c.AI.Roadmap.CustomPrompts.SystemPrompts.RoadmapFile, &loadedPrompts.Roadmap.SystemPrompts.Roadmap},
		{"roadmap", "user", c.AI.Roadmap.CustomPrompts.UserPrompts.RoadmapFile, &loadedPrompts.Roadmap.UserPrompts.Roadmap},
		{"insights", "system", c.AI.Insights.CustomPrompts.SystemPrompts.InsightsFile, &loadedPrompts.Insights.SystemPrompts.Insights},
		{"insights", "user", c.AI.Insights.CustomPrompts.UserPrompts.InsightsFile, &loadedPrompts.Insights.UserPrompts.Insights},
		{"interview", "system", c.AI.Interview.CustomPrompts.SystemPrompts.InterviewFile, &loadedPrompts.Interview.SystemPrompts.Interview},
		{"interview", "user", c.AI.Interview.CustomPrompts.UserPrompts.InterviewFile, &loadedPrompts.Interview.UserPrompts.Interview},
	}
}

// validatePromptFiles validates that configured prompt files exist before loading
func (c *Config) validatePromptFiles() error {
	var validationErrors []string

	for _, slot := range c.promptFileSlots() {
		if slot.filePath == "" {
			continue
		}
		absPath, err := filepath.Abs(slot.filePath)
		if err != nil {
			validationErrors = append(validationErrors, fmt.Sprintf("invalid path for %s %s prompt: %s", slot.kind, slot.operation, slot.filePath))
			continue
		}
		if _, err := os.Stat(absPath); os.IsNotExist(err) {
			validationErrors = append(validationErrors, fmt.Sprintf("%s %s prompt file not found: %s", slot.kind, slot.operation, absPath))
		}
	}

	if len(validationErrors) > 0 {
		return fmt.Errorf("prompt file validation failed:\n%s", strings.Join(validationErrors, "\n"))
	}

	return nil
}

// loadPromptsFromFiles loads custom prompts from external files if file paths are specified
func (c *Config) loadPromptsFromFiles() error {
	// Initialize loaded prompts exactly once
	loadedPromptsOnce.Do(func() {
		loadedPrompts = AllLoadedPrompts{}
	})

	loadedCount := 0
	for _, slot := range c.promptFileSlots() {
		if slot.filePath == "" {
			continue
		}
		content, err := loadPromptFromFile(slot.filePath, slot.kind, slot.operation)
		if err != nil {
			return err
		}
		*slot.target = content
		loadedCount++
	}

	if loadedCount == 0 {
		log.Println("[CONFIG] No custom prompts loaded - using built-in defaults")
	} else {
		log.Printf("[CONFIG] Total custom prompts loaded: %d", loadedCount)
	}

	return nil
}

// loadPromptFromFile reads and validates a single prompt file
func loadPromptFromFile(filePath, promptKind, operation string) (string, error) {
	absPath, err := filepath.Abs(filePath)
	if err != nil {
		return "", fmt.Errorf("failed to resolve absolute path for %s %s prompt file '%s': %w", promptKind, operation, filePath, err)
	}

	content, err := os.ReadFile(absPath)
	if err != nil {
		return "", fmt.Errorf("failed to read %s %s prompt file '%s': %w", promptKind, operation, absPath, err)
	}

	trimmed := strings.TrimSpace(string(content))
	if trimmed == "" {
		return "", fmt.Errorf("%s %s prompt file '%s' is empty", promptKind, operation, absPath)
	}

	log.Printf("[CONFIG] Loaded %s %s prompt from file: %s (%d characters)",
		promptKind, operation, absPath, len(trimmed))

	return trimmed, nil
}
