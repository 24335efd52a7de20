package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"time"
)

// EpisodeRecord is one headless episode played by an agent.
type EpisodeRecord struct {
	ID         int64
	EpisodeID  string // UUID assigned by the runner
	Agent      string
	Seed       int64
	TwoPlayers bool
	Steps      int
	Frames     int
	Score      int
	ScoreP1    int
	ScoreP2    int
	Terminal   bool
	Reason     string
	Duration   time.Duration
	ReplayPath string // Empty when no replay was saved
	CreatedAt  time.Time
}

// EpisodeStats aggregates the episodes of one agent.
type EpisodeStats struct {
	Agent      string
	Episodes   int
	BestScore  int
	AvgScore   float64
	AvgFrames  float64
	Terminated int
}

const episodeColumns = `id, episode_id, agent, seed, two_players, steps, frames,
	score, score_p1, score_p2, terminal, reason, duration_ms, replay_path, created_at`

// SaveEpisode stores an episode result and returns the row ID.
func (s *Store) SaveEpisode(ep EpisodeRecord) (int64, error) {
	res, err := s.db.Exec(
		`INSERT INTO episodes
		 (episode_id, agent, seed, two_players, steps, frames, score, score_p1, score_p2,
		  terminal, reason, duration_ms, replay_path)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		ep.EpisodeID,
		ep.Agent,
		ep.Seed,
		ep.TwoPlayers,
		ep.Steps,
		ep.Frames,
		ep.Score,
		ep.ScoreP1,
		ep.ScoreP2,
		ep.Terminal,
		ep.Reason,
		ep.Duration.Milliseconds(),
		nullString(ep.ReplayPath),
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot save episode: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}
	return id, nil
}

// EpisodeByID looks an episode up by its UUID.
func (s *Store) EpisodeByID(episodeID string) (*EpisodeRecord, error) {
	row := s.db.QueryRow(
		`SELECT `+episodeColumns+` FROM episodes WHERE episode_id = ?`,
		episodeID,
	)
	ep, err := scanEpisode(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query episode: %w", err)
	}
	return ep, nil
}

// RecentEpisodes returns the latest episodes, newest first. An empty agent
// matches every agent; a non-positive limit means 20.
func (s *Store) RecentEpisodes(agent string, limit int) ([]EpisodeRecord, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.Query(
		`SELECT `+episodeColumns+`
		 FROM episodes
		 WHERE ? = '' OR agent = ?
		 ORDER BY id DESC
		 LIMIT ?`,
		agent, agent, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query episodes: %w", err)
	}
	defer rows.Close()

	var out []EpisodeRecord
	for rows.Next() {
		ep, err := scanEpisode(rows)
		if err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		out = append(out, *ep)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return out, nil
}

// GetEpisodeStats aggregates the episodes of agent.
func (s *Store) GetEpisodeStats(agent string) (*EpisodeStats, error) {
	stats := &EpisodeStats{Agent: agent}
	err := s.db.QueryRow(
		`SELECT COUNT(*), COALESCE(MAX(score), 0), COALESCE(AVG(score), 0),
		        COALESCE(AVG(frames), 0), COALESCE(SUM(terminal), 0)
		 FROM episodes WHERE agent = ?`,
		agent,
	).Scan(&stats.Episodes, &stats.BestScore, &stats.AvgScore, &stats.AvgFrames, &stats.Terminated)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get episode stats: %w", err)
	}
	return stats, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanEpisode(row rowScanner) (*EpisodeRecord, error) {
	var (
		ep         EpisodeRecord
		reason     sql.NullString
		replayPath sql.NullString
		durationMS int64
		createdAt  any
	)
	err := row.Scan(
		&ep.ID,
		&ep.EpisodeID,
		&ep.Agent,
		&ep.Seed,
		&ep.TwoPlayers,
		&ep.Steps,
		&ep.Frames,
		&ep.Score,
		&ep.ScoreP1,
		&ep.ScoreP2,
		&ep.Terminal,
		&reason,
		&durationMS,
		&replayPath,
		&createdAt,
	)
	if err != nil {
		return nil, err
	}

	ep.Reason = reason.String
	ep.ReplayPath = replayPath.String
	ep.Duration = time.Duration(durationMS) * time.Millisecond
	ep.CreatedAt = parseTime(createdAt)
	return &ep, nil
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
