package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"totobot/internal/models"
)

const matchColumns = `id, tournament_id, match_date, match_time, team1, team2,
	status, result, is_active, created_by, created_at`

// Даты матчей хранятся текстом дд.мм.гггг, поэтому хронологический
// порядок собирается через substr (год, месяц, день), затем время.
const matchChronoAsc = `substr(match_date, 7, 4), substr(match_date, 4, 2),
	substr(match_date, 1, 2), match_time`

func (db *DB) CreateMatch(ctx context.Context, m *models.Match) error {
	query := `INSERT INTO matches (
				tournament_id, match_date, match_time, team1, team2,
				status, result, is_active, created_by, created_at
			) VALUES (?, ?, ?, ?, ?, ?, '', 1, ?, ?)`
	now := time.Now()
	if m.Status == "" {
		m.Status = models.StatusScheduled
	}
	result, err := db.ExecContext(ctx, query,
		m.TournamentID, m.Date, m.Time, m.Team1, m.Team2,
		m.Status, m.CreatedBy, now,
	)
	if err != nil {
		return fmt.Errorf("failed to create match: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get last insert id: %w", err)
	}
	m.ID = id
	m.IsActive = true
	m.CreatedAt = now
	return nil
}

func (db *DB) GetMatch(ctx context.Context, id int64) (*models.Match, error) {
	query := `SELECT ` + matchColumns + ` FROM matches WHERE id = ?`
	var m models.Match
	err := db.QueryRowContext(ctx, query, id).Scan(
		&m.ID, &m.TournamentID, &m.Date, &m.Time, &m.Team1, &m.Team2,
		&m.Status, &m.Result, &m.IsActive, &m.CreatedBy, &m.CreatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get match: %w", err)
	}
	return &m, nil
}

// ListMatches возвращает активные матчи турнира в хронологическом порядке.
func (db *DB) ListMatches(ctx context.Context, tournamentID int64) ([]*models.Match, error) {
	query := `SELECT ` + matchColumns + ` FROM matches
              WHERE tournament_id = ? AND is_active = 1
              ORDER BY ` + matchChronoAsc
	return db.queryMatches(ctx, query, tournamentID)
}

// ListScheduledMatches возвращает все активные матчи со статусом
// scheduled. Истечение по времени проверяется вызывающим кодом,
// а не SQL-предикатом.
func (db *DB) ListScheduledMatches(ctx context.Context) ([]*models.Match, error) {
	query := `SELECT ` + matchColumns + ` FROM matches
              WHERE status = ? AND is_active = 1
              ORDER BY ` + matchChronoAsc
	return db.queryMatches(ctx, query, models.StatusScheduled)
}

func (db *DB) queryMatches(ctx context.Context, query string, args ...interface{}) ([]*models.Match, error) {
	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list matches: %w", err)
	}
	defer rows.Close()

	var matches []*models.Match
	for rows.Next() {
		m := &models.Match{}
		err := rows.Scan(
			&m.ID, &m.TournamentID, &m.Date, &m.Time, &m.Team1, &m.Team2,
			&m.Status, &m.Result, &m.IsActive, &m.CreatedBy, &m.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan match: %w", err)
		}
		matches = append(matches, m)
	}
	return matches, rows.Err()
}

func (db *DB) UpdateMatch(ctx context.Context, id int64, date, matchTime, team1, team2 string) error {
	query := `UPDATE matches SET match_date = ?, match_time = ?, team1 = ?, team2 = ? WHERE id = ?`
	res, err := db.ExecContext(ctx, query, date, matchTime, team1, team2, id)
	if err != nil {
		return fmt.Errorf("failed to update match: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrNotFound
	}
	return nil
}

func (db *DB) SetMatchStatus(ctx context.Context, id int64, status string) error {
	query := `UPDATE matches SET status = ? WHERE id = ?`
	res, err := db.ExecContext(ctx, query, status, id)
	if err != nil {
		return fmt.Errorf("failed to set match status: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrNotFound
	}
	return nil
}

// SetMatchResult записывает итоговый счет и закрывает матч.
func (db *DB) SetMatchResult(ctx context.Context, id int64, result string) error {
	query := `UPDATE matches SET result = ?, status = ? WHERE id = ?`
	res, err := db.ExecContext(ctx, query, result, models.StatusCompleted, id)
	if err != nil {
		return fmt.Errorf("failed to set match result: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteMatch жестко удаляет матч вместе со ставками на него.
func (db *DB) DeleteMatch(ctx context.Context, id int64) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	if _, err := tx.ExecContext(ctx, `DELETE FROM match_bets WHERE match_id = ?`, id); err != nil {
		return fmt.Errorf("failed to delete match bets: %w", err)
	}

	res, err := tx.ExecContext(ctx, `DELETE FROM matches WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete match: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrNotFound
	}

	return tx.Commit()
}
