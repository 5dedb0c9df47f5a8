package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"totobot/internal/models"
)

const tournamentColumns = `id, name, description, rules, is_active, created_by, created_at`

func (db *DB) CreateTournament(ctx context.Context, t *models.Tournament) error {
	query := `INSERT INTO tournaments (name, description, rules, is_active, created_by, created_at)
              VALUES (?, ?, ?, 1, ?, ?)`
	now := time.Now()
	result, err := db.ExecContext(ctx, query, t.Name, t.Description, t.Rules, t.CreatedBy, now)
	if err != nil {
		return fmt.Errorf("failed to create tournament: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get last insert id: %w", err)
	}
	t.ID = id
	t.IsActive = true
	t.CreatedAt = now
	return nil
}

func (db *DB) GetTournament(ctx context.Context, id int64) (*models.Tournament, error) {
	query := `SELECT ` + tournamentColumns + ` FROM tournaments WHERE id = ?`
	var t models.Tournament
	err := db.QueryRowContext(ctx, query, id).Scan(
		&t.ID, &t.Name, &t.Description, &t.Rules, &t.IsActive, &t.CreatedBy, &t.CreatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get tournament: %w", err)
	}
	return &t, nil
}

// ListActiveTournaments возвращает активные турниры, свежие первыми.
func (db *DB) ListActiveTournaments(ctx context.Context) ([]*models.Tournament, error) {
	query := `SELECT ` + tournamentColumns + ` FROM tournaments
              WHERE is_active = 1 ORDER BY created_at DESC`
	return db.queryTournaments(ctx, query)
}

// ListAllTournaments возвращает все турниры, включая скрытые (для админа).
func (db *DB) ListAllTournaments(ctx context.Context) ([]*models.Tournament, error) {
	query := `SELECT ` + tournamentColumns + ` FROM tournaments ORDER BY created_at DESC`
	return db.queryTournaments(ctx, query)
}

func (db *DB) queryTournaments(ctx context.Context, query string, args ...interface{}) ([]*models.Tournament, error) {
	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list tournaments: %w", err)
	}
	defer rows.Close()

	var tournaments []*models.Tournament
	for rows.Next() {
		t := &models.Tournament{}
		err := rows.Scan(&t.ID, &t.Name, &t.Description, &t.Rules, &t.IsActive, &t.CreatedBy, &t.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to scan tournament: %w", err)
		}
		tournaments = append(tournaments, t)
	}
	return tournaments, rows.Err()
}

func (db *DB) UpdateTournament(ctx context.Context, id int64, name, description, rules string) error {
	query := `UPDATE tournaments SET name = ?, description = ?, rules = ? WHERE id = ?`
	res, err := db.ExecContext(ctx, query, name, description, rules, id)
	if err != nil {
		return fmt.Errorf("failed to update tournament: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrNotFound
	}
	return nil
}

// SetTournamentActive — мягкое удаление/восстановление. Исторические
// ставки и матчи остаются в базе для статистики.
func (db *DB) SetTournamentActive(ctx context.Context, id int64, active bool) error {
	query := `UPDATE tournaments SET is_active = ? WHERE id = ?`
	res, err := db.ExecContext(ctx, query, active, id)
	if err != nil {
		return fmt.Errorf("failed to set tournament active flag: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrNotFound
	}
	return nil
}
