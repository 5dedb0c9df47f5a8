package database

import (
	"context"
	"fmt"

	"totobot/internal/models"
)

// AdminStats — простые счетчики для админского экрана статистики.
// Каждый счетчик — одиночный COUNT без кэширования.
type AdminStats struct {
	Users              int
	Banned             int
	Tournaments        int
	TodayRegistrations int
	TodayLogins        int
}

func (db *DB) GetAdminStats(ctx context.Context) (*AdminStats, error) {
	stats := &AdminStats{}

	counters := []struct {
		query string
		dest  *int
	}{
		{`SELECT COUNT(*) FROM users`, &stats.Users},
		{`SELECT COUNT(*) FROM users WHERE is_banned = 1`, &stats.Banned},
		{`SELECT COUNT(*) FROM tournaments WHERE is_active = 1`, &stats.Tournaments},
		{`SELECT COUNT(*) FROM users WHERE date(registered_at) = date('now', 'localtime')`, &stats.TodayRegistrations},
		{`SELECT COUNT(*) FROM users WHERE date(last_login_at) = date('now', 'localtime')`, &stats.TodayLogins},
	}

	for _, c := range counters {
		if err := db.QueryRowContext(ctx, c.query).Scan(c.dest); err != nil {
			return nil, fmt.Errorf("failed to query stats counter: %w", err)
		}
	}
	return stats, nil
}

// FindUserByAnyIdentifier ищет пользователя сначала по числовому
// Telegram ID, затем по логину/email/телефону.
func (db *DB) FindUserByAnyIdentifier(ctx context.Context, text string) (*models.User, error) {
	if id, ok := parseInt64(text); ok {
		if user, err := db.GetUserByTelegramID(ctx, id); err == nil {
			return user, nil
		}
	}
	return db.GetUserByIdentifier(ctx, text)
}

func parseInt64(s string) (int64, bool) {
	var id int64
	if _, err := fmt.Sscanf(s, "%d", &id); err != nil {
		return 0, false
	}
	return id, true
}
