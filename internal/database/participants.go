package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"totobot/internal/models"
)

// SetParticipation фиксирует явное решение пользователя участвовать
// (или не участвовать) в турнире. Повторный вызов обновляет флаг.
func (db *DB) SetParticipation(ctx context.Context, userID, tournamentID int64, participating bool) error {
	query := `INSERT INTO tournament_participants (user_id, tournament_id, is_participating, joined_at)
              VALUES (?, ?, ?, ?)
              ON CONFLICT(user_id, tournament_id) DO UPDATE SET
                is_participating = excluded.is_participating`
	if _, err := db.ExecContext(ctx, query, userID, tournamentID, participating, time.Now()); err != nil {
		return fmt.Errorf("failed to set participation: %w", err)
	}
	return nil
}

// GetParticipation возвращает запись участия или ErrNotFound, если
// пользователь еще не принимал решение по турниру.
func (db *DB) GetParticipation(ctx context.Context, userID, tournamentID int64) (*models.TournamentParticipant, error) {
	query := `SELECT user_id, tournament_id, is_participating, joined_at
              FROM tournament_participants WHERE user_id = ? AND tournament_id = ?`
	var p models.TournamentParticipant
	err := db.QueryRowContext(ctx, query, userID, tournamentID).Scan(
		&p.UserID, &p.TournamentID, &p.IsParticipating, &p.JoinedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get participation: %w", err)
	}
	return &p, nil
}

func (db *DB) ParticipantCount(ctx context.Context, tournamentID int64) (int, error) {
	query := `SELECT COUNT(*) FROM tournament_participants
              WHERE tournament_id = ? AND is_participating = 1`
	var count int
	if err := db.QueryRowContext(ctx, query, tournamentID).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count participants: %w", err)
	}
	return count, nil
}
