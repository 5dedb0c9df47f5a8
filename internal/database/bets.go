package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"totobot/internal/models"
)

// UpsertBet вставляет ставку или молча заменяет прежний прогноз:
// действует правило "последний прогноз побеждает". Атомарность
// обеспечивает UNIQUE(user_id, match_id) самого хранилища.
func (db *DB) UpsertBet(ctx context.Context, bet *models.Bet) error {
	query := `INSERT INTO match_bets (user_id, match_id, score, placed_at)
              VALUES (?, ?, ?, ?)
              ON CONFLICT(user_id, match_id) DO UPDATE SET
                score = excluded.score,
                placed_at = excluded.placed_at`
	now := time.Now()
	if _, err := db.ExecContext(ctx, query, bet.UserID, bet.MatchID, bet.Score, now); err != nil {
		return fmt.Errorf("failed to upsert bet: %w", err)
	}
	bet.PlacedAt = now
	return nil
}

func (db *DB) GetBet(ctx context.Context, userID, matchID int64) (*models.Bet, error) {
	query := `SELECT id, user_id, match_id, score, placed_at
              FROM match_bets WHERE user_id = ? AND match_id = ?`
	var b models.Bet
	err := db.QueryRowContext(ctx, query, userID, matchID).Scan(
		&b.ID, &b.UserID, &b.MatchID, &b.Score, &b.PlacedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get bet: %w", err)
	}
	return &b, nil
}

// DeleteBet убирает ставку целиком: матч снова открыт для пользователя,
// если еще не истек.
func (db *DB) DeleteBet(ctx context.Context, userID, matchID int64) error {
	res, err := db.ExecContext(ctx, `DELETE FROM match_bets WHERE user_id = ? AND match_id = ?`, userID, matchID)
	if err != nil {
		return fmt.Errorf("failed to delete bet: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteBetsForMatch массово удаляет ставки матча (админский инструмент).
func (db *DB) DeleteBetsForMatch(ctx context.Context, matchID int64) (int64, error) {
	res, err := db.ExecContext(ctx, `DELETE FROM match_bets WHERE match_id = ?`, matchID)
	if err != nil {
		return 0, fmt.Errorf("failed to delete bets for match: %w", err)
	}
	return res.RowsAffected()
}

// BetsForUser — ставки пользователя с матчем и турниром, недавние
// матчи первыми.
func (db *DB) BetsForUser(ctx context.Context, userID int64) ([]*models.BetWithMatch, error) {
	query := `SELECT b.id, b.user_id, b.match_id, b.score, b.placed_at,
	                 m.id, m.tournament_id, m.match_date, m.match_time, m.team1, m.team2,
	                 m.status, m.result, m.is_active, m.created_by, m.created_at,
	                 t.name
              FROM match_bets b
              JOIN matches m ON b.match_id = m.id
              JOIN tournaments t ON m.tournament_id = t.id
              WHERE b.user_id = ?
              ORDER BY substr(m.match_date, 7, 4) DESC, substr(m.match_date, 4, 2) DESC,
                       substr(m.match_date, 1, 2) DESC, m.match_time DESC`
	rows, err := db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get user bets: %w", err)
	}
	defer rows.Close()

	var bets []*models.BetWithMatch
	for rows.Next() {
		bm := &models.BetWithMatch{}
		err := rows.Scan(
			&bm.Bet.ID, &bm.Bet.UserID, &bm.Bet.MatchID, &bm.Bet.Score, &bm.Bet.PlacedAt,
			&bm.Match.ID, &bm.Match.TournamentID, &bm.Match.Date, &bm.Match.Time,
			&bm.Match.Team1, &bm.Match.Team2, &bm.Match.Status, &bm.Match.Result,
			&bm.Match.IsActive, &bm.Match.CreatedBy, &bm.Match.CreatedAt,
			&bm.TournamentName,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan user bet: %w", err)
		}
		bets = append(bets, bm)
	}
	return bets, rows.Err()
}

// BetsForMatch — ставки на матч вместе с пользователями, для админских
// экранов.
func (db *DB) BetsForMatch(ctx context.Context, matchID int64) ([]*models.BetWithUser, error) {
	query := `SELECT b.id, b.user_id, b.match_id, b.score, b.placed_at,
	                 u.login, u.full_name
              FROM match_bets b
              JOIN users u ON b.user_id = u.telegram_id
              WHERE b.match_id = ?
              ORDER BY b.placed_at`
	rows, err := db.QueryContext(ctx, query, matchID)
	if err != nil {
		return nil, fmt.Errorf("failed to get match bets: %w", err)
	}
	defer rows.Close()

	var bets []*models.BetWithUser
	for rows.Next() {
		bu := &models.BetWithUser{}
		err := rows.Scan(
			&bu.Bet.ID, &bu.Bet.UserID, &bu.Bet.MatchID, &bu.Bet.Score, &bu.Bet.PlacedAt,
			&bu.Login, &bu.Name,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan match bet: %w", err)
		}
		bets = append(bets, bu)
	}
	return bets, rows.Err()
}

// ScoreCounts группирует ставки матча по прогнозу — популярность счетов.
func (db *DB) ScoreCounts(ctx context.Context, matchID int64) ([]*models.ScoreCount, error) {
	query := `SELECT score, COUNT(*) AS cnt FROM match_bets
              WHERE match_id = ?
              GROUP BY score ORDER BY cnt DESC, score`
	rows, err := db.QueryContext(ctx, query, matchID)
	if err != nil {
		return nil, fmt.Errorf("failed to count scores: %w", err)
	}
	defer rows.Close()

	var counts []*models.ScoreCount
	for rows.Next() {
		sc := &models.ScoreCount{}
		if err := rows.Scan(&sc.Score, &sc.Count); err != nil {
			return nil, fmt.Errorf("failed to scan score count: %w", err)
		}
		counts = append(counts, sc)
	}
	return counts, rows.Err()
}

func (db *DB) BetCount(ctx context.Context, userID int64) (int, error) {
	var count int
	err := db.QueryRowContext(ctx, `SELECT COUNT(*) FROM match_bets WHERE user_id = ?`, userID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count user bets: %w", err)
	}
	return count, nil
}

// BetMatchIDs возвращает матчи турнира, на которые пользователь уже
// поставил. Используется правилом доступности.
func (db *DB) BetMatchIDs(ctx context.Context, userID, tournamentID int64) (map[int64]bool, error) {
	query := `SELECT b.match_id FROM match_bets b
              JOIN matches m ON b.match_id = m.id
              WHERE b.user_id = ? AND m.tournament_id = ?`
	rows, err := db.QueryContext(ctx, query, userID, tournamentID)
	if err != nil {
		return nil, fmt.Errorf("failed to get bet match ids: %w", err)
	}
	defer rows.Close()

	ids := make(map[int64]bool)
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan match id: %w", err)
		}
		ids[id] = true
	}
	return ids, rows.Err()
}
