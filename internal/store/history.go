package store

import (
	"context"
	"encoding/json"
	"time"

	apperrors "careerpath/internal/errors"
	"careerpath/internal/types"
)

// DefaultHistoryLimit caps how many records history queries return unless the
// caller asks for fewer.
const DefaultHistoryLimit = 10

// AnalysisRecord is one stored ATS scoring result.
type AnalysisRecord struct {
	ID        int64           `json:"id"`
	SessionID string          `json:"sessionId"`
	Filename  string          `json:"filename"`
	Result    types.ATSResult `json:"result"`
	CreatedAt time.Time       `json:"createdAt"`
}

// MatchRecord is one stored job match result.
type MatchRecord struct {
	ID             int64             `json:"id"`
	SessionID      string            `json:"sessionId"`
	JobDescription string            `json:"jobDescription"`
	Result         types.MatchResult `json:"result"`
	CreatedAt      time.Time         `json:"createdAt"`
}

// RoadmapRecord is one stored career roadmap.
type RoadmapRecord struct {
	ID           int64               `json:"id"`
	SessionID    string              `json:"sessionId"`
	CurrentLevel string              `json:"currentLevel"`
	TargetRole   string              `json:"targetRole"`
	Result       types.RoadmapOutput `json:"result"`
	CreatedAt    time.Time           `json:"createdAt"`
}

// HistoryStats summarizes stored record counts.
type HistoryStats struct {
	Analyses int64 `json:"analyses"`
	Matches  int64 `json:"matches"`
	Roadmaps int64 `json:"roadmaps"`
}

// SaveAnalysis stores one scoring result for a session.
func (s *Store) SaveAnalysis(ctx context.Context, sessionID, filename string, result types.ATSResult) (int64, error) {
	payload, err := json.Marshal(result)
	if err != nil {
		return 0, storageErr("failed to encode analysis", err)
	}
	res, err := s.db.ExecContext(ctx, `
INSERT INTO resume_analyses(session_id, filename, result, created_at)
VALUES(?, ?, ?, ?);`,
		sessionID, filename, string(payload), now())
	if err != nil {
		return 0, storageErr("failed to save analysis", err)
	}
	id, _ := res.LastInsertId()
	return id, nil
}

// RecentAnalyses returns the newest analyses for a session, newest first.
func (s *Store) RecentAnalyses(ctx context.Context, sessionID string, limit int) ([]AnalysisRecord, error) {
	rows, err := s.db.QueryContext(ctx, `
SELECT id, session_id, filename, result, created_at
FROM resume_analyses
WHERE session_id = ?
ORDER BY id DESC
LIMIT ?;`, sessionID, clampLimit(limit))
	if err != nil {
		return nil, storageErr("failed to query analyses", err)
	}
	defer rows.Close()

	var out []AnalysisRecord
	for rows.Next() {
		var rec AnalysisRecord
		var payload, createdAt string
		if err := rows.Scan(&rec.ID, &rec.SessionID, &rec.Filename, &payload, &createdAt); err != nil {
			return nil, storageErr("failed to scan analysis", err)
		}
		if err := json.Unmarshal([]byte(payload), &rec.Result); err != nil {
			return nil, storageErr("stored analysis is not decodable", err)
		}
		rec.CreatedAt = parseTime(createdAt)
		out = append(out, rec)
	}
	return out, rows.Err()
}

// SaveMatch stores one job match result for a session.
func (s *Store) SaveMatch(ctx context.Context, sessionID, jobDescription string, result types.MatchResult) (int64, error) {
	payload, err := json.Marshal(result)
	if err != nil {
		return 0, storageErr("failed to encode match", err)
	}
	res, err := s.db.ExecContext(ctx, `
INSERT INTO job_matches(session_id, job_description, result, created_at)
VALUES(?, ?, ?, ?);`,
		sessionID, jobDescription, string(payload), now())
	if err != nil {
		return 0, storageErr("failed to save match", err)
	}
	id, _ := res.LastInsertId()
	return id, nil
}

// RecentMatches returns the newest job matches for a session, newest first.
func (s *Store) RecentMatches(ctx context.Context, sessionID string, limit int) ([]MatchRecord, error) {
	rows, err := s.db.QueryContext(ctx, `
SELECT id, session_id, job_description, result, created_at
FROM job_matches
WHERE session_id = ?
ORDER BY id DESC
LIMIT ?;`, sessionID, clampLimit(limit))
	if err != nil {
		return nil, storageErr("failed to query matches", err)
	}
	defer rows.Close()

	var out []MatchRecord
	for rows.Next() {
		var rec MatchRecord
		var payload, createdAt string
		if err := rows.Scan(&rec.ID, &rec.SessionID, &rec.JobDescription, &payload, &createdAt); err != nil {
			return nil, storageErr("failed to scan match", err)
		}
		if err := json.Unmarshal([]byte(payload), &rec.Result); err != nil {
			return nil, storageErr("stored match is not decodable", err)
		}
		rec.CreatedAt = parseTime(createdAt)
		out = append(out, rec)
	}
	return out, rows.Err()
}

// SaveRoadmap stores one career roadmap for a session.
func (s *Store) SaveRoadmap(ctx context.Context, sessionID string, roadmap types.RoadmapOutput) (int64, error) {
	payload, err := json.Marshal(roadmap)
	if err != nil {
		return 0, storageErr("failed to encode roadmap", err)
	}
	res, err := s.db.ExecContext(ctx, `
INSERT INTO career_roadmaps(session_id, current_level, target_role, result, created_at)
VALUES(?, ?, ?, ?, ?);`,
		sessionID, roadmap.CurrentLevel, roadmap.TargetRole, string(payload), now())
	if err != nil {
		return 0, storageErr("failed to save roadmap", err)
	}
	id, _ := res.LastInsertId()
	return id, nil
}

// RecentRoadmaps returns the newest roadmaps for a session, newest first.
func (s *Store) RecentRoadmaps(ctx context.Context, sessionID string, limit int) ([]RoadmapRecord, error) {
	rows, err := s.db.QueryContext(ctx, `
SELECT id, session_id, current_level, target_role, result, created_at
FROM career_roadmaps
WHERE session_id = ?
ORDER BY id DESC
LIMIT ?;`, sessionID, clampLimit(limit))
	if err != nil {
		return nil, storageErr("failed to query roadmaps", err)
	}
	defer rows.Close()

	var out []RoadmapRecord
	for rows.Next() {
		var rec RoadmapRecord
		var payload, createdAt string
		if err := rows.Scan(&rec.ID, &rec.SessionID, &rec.CurrentLevel, &rec.TargetRole, &payload, &createdAt); err != nil {
			return nil, storageErr("failed to scan roadmap", err)
		}
		if err := json.Unmarshal([]byte(payload), &rec.Result); err != nil {
			return nil, storageErr("stored roadmap is not decodable", err)
		}
		rec.CreatedAt = parseTime(createdAt)
		out = append(out, rec)
	}
	return out, rows.Err()
}

// Stats reports how many records each table holds.
func (s *Store) Stats(ctx context.Context) (HistoryStats, error) {
	var stats HistoryStats
	for _, q := range []struct {
		table string
		dst   *int64
	}{
		{"resume_analyses", &stats.Analyses},
		{"job_matches", &stats.Matches},
		{"career_roadmaps", &stats.Roadmaps},
	} {
		if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM `+q.table+`;`).Scan(q.dst); err != nil {
			return HistoryStats{}, storageErr("failed to count "+q.table, err)
		}
	}
	return stats, nil
}

func clampLimit(limit int) int {
	if limit <= 0 || limit > DefaultHistoryLimit {
		return DefaultHistoryLimit
	}
	return limit
}

func now() string {
	return time.Now().UTC().Format(time.RFC3339)
}

func parseTime(s string) time.Time {
	t, _ := time.Parse(time.RFC3339, s)
	return t
}

func storageErr(message string, cause error) error {
	return apperrors.NewStorageError(apperrors.ErrCodeStorageFailed, message, cause)
}
