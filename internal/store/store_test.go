package store

import (
	"context"
	"path/filepath"
	"testing"

	"careerpath/internal/types"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "history.db"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestSaveAndRecentAnalyses(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	session := NewSessionID()

	for i := 0; i < 12; i++ {
		result := types.ATSResult{TotalScore: i, Grade: "C", GradeText: "Average"}
		if _, err := s.SaveAnalysis(ctx, session, "resume.pdf", result); err != nil {
			t.Fatalf("SaveAnalysis: %v", err)
		}
	}

	records, err := s.RecentAnalyses(ctx, session, 0)
	if err != nil {
		t.Fatalf("RecentAnalyses: %v", err)
	}
	if len(records) != DefaultHistoryLimit {
		t.Fatalf("got %d records, want %d", len(records), DefaultHistoryLimit)
	}
	// Newest first.
	if records[0].Result.TotalScore != 11 {
		t.Errorf("first record score = %d, want 11", records[0].Result.TotalScore)
	}
	if records[0].Filename != "resume.pdf" {
		t.Errorf("filename = %q", records[0].Filename)
	}
}

func TestSessionsAreIsolated(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	first := NewSessionID()
	second := NewSessionID()
	if first == second {
		t.Fatal("session IDs collided")
	}

	if _, err := s.SaveMatch(ctx, first, "backend role", types.MatchResult{OverallMatch: 61.5, MatchLevel: "Moderate Match"}); err != nil {
		t.Fatalf("SaveMatch: %v", err)
	}

	records, err := s.RecentMatches(ctx, second, 5)
	if err != nil {
		t.Fatalf("RecentMatches: %v", err)
	}
	if len(records) != 0 {
		t.Errorf("got %d records for unrelated session, want 0", len(records))
	}

	records, err = s.RecentMatches(ctx, first, 5)
	if err != nil {
		t.Fatalf("RecentMatches: %v", err)
	}
	if len(records) != 1 || records[0].Result.OverallMatch != 61.5 {
		t.Errorf("records = %+v", records)
	}
}

func TestSaveAndRecentRoadmaps(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	session := NewSessionID()

	roadmap := types.RoadmapOutput{
		CurrentLevel: "Mid-level Professional",
		TargetRole:   "Data Scientist",
		Timeline:     "6-12 months",
		Steps: []types.RoadmapStep{
			{Step: 1, Title: "Foundations", Duration: "0-3 months", SkillsToLearn: []string{"Python", "Statistics"}},
		},
	}
	if _, err := s.SaveRoadmap(ctx, session, roadmap); err != nil {
		t.Fatalf("SaveRoadmap: %v", err)
	}

	records, err := s.RecentRoadmaps(ctx, session, 10)
	if err != nil {
		t.Fatalf("RecentRoadmaps: %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("got %d records, want 1", len(records))
	}
	if records[0].TargetRole != "Data Scientist" {
		t.Errorf("target role = %q", records[0].TargetRole)
	}
	if len(records[0].Result.Steps) != 1 {
		t.Errorf("steps = %+v", records[0].Result.Steps)
	}
}

func TestStats(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	session := NewSessionID()

	if _, err := s.SaveAnalysis(ctx, session, "a.pdf", types.ATSResult{}); err != nil {
		t.Fatal(err)
	}
	if _, err := s.SaveAnalysis(ctx, session, "b.pdf", types.ATSResult{}); err != nil {
		t.Fatal(err)
	}
	if _, err := s.SaveMatch(ctx, session, "jd", types.MatchResult{}); err != nil {
		t.Fatal(err)
	}

	stats, err := s.Stats(ctx)
	if err != nil {
		t.Fatalf("Stats: %v", err)
	}
	if stats.Analyses != 2 || stats.Matches != 1 || stats.Roadmaps != 0 {
		t.Errorf("stats = %+v", stats)
	}
}
