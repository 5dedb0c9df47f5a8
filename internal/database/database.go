package database

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/mattn/go-sqlite3"
	"github.com/rs/zerolog"
)

type DB struct {
	*sql.DB
	logger *zerolog.Logger
}

func NewDB(path string, logger *zerolog.Logger) (*DB, error) {
	// Создаем директорию для БД, если её нет
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	sqlDB, err := sql.Open("sqlite3", path+"?_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := sqlDB.Ping(); err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	db := &DB{DB: sqlDB, logger: logger}
	if err := db.createTables(); err != nil {
		return nil, fmt.Errorf("failed to create tables: %w", err)
	}

	logger.Info().Str("path", path).Msg("База данных инициализирована")
	return db, nil
}

func (db *DB) createTables() error {
	queries := []string{
		// Таблица пользователей. email и phone опциональны: UNIQUE в
		// sqlite пропускает несколько NULL.
		`CREATE TABLE IF NOT EXISTS users (
            id INTEGER PRIMARY KEY AUTOINCREMENT,
            telegram_id INTEGER UNIQUE NOT NULL,
            login TEXT UNIQUE NOT NULL,
            password_hash TEXT NOT NULL,
            password_salt TEXT NOT NULL,
            email TEXT UNIQUE,
            phone TEXT UNIQUE,
            full_name TEXT NOT NULL,
            is_banned BOOLEAN NOT NULL DEFAULT 0,
            registered_at DATETIME NOT NULL,
            last_login_at DATETIME NOT NULL
        )`,
		// Таблица турниров, удаление мягкое (is_active = 0)
		`CREATE TABLE IF NOT EXISTS tournaments (
            id INTEGER PRIMARY KEY AUTOINCREMENT,
            name TEXT NOT NULL,
            description TEXT NOT NULL DEFAULT '',
            rules TEXT NOT NULL DEFAULT '',
            is_active BOOLEAN NOT NULL DEFAULT 1,
            created_by INTEGER NOT NULL,
            created_at DATETIME NOT NULL
        )`,
		// Таблица матчей. Дата и время хранятся текстом в формате
		// дд.мм.гггг / чч:мм, истечение считается в коде.
		`CREATE TABLE IF NOT EXISTS matches (
            id INTEGER PRIMARY KEY AUTOINCREMENT,
            tournament_id INTEGER NOT NULL REFERENCES tournaments(id),
            match_date TEXT NOT NULL,
            match_time TEXT NOT NULL,
            team1 TEXT NOT NULL,
            team2 TEXT NOT NULL,
            status TEXT NOT NULL DEFAULT 'scheduled',
            result TEXT NOT NULL DEFAULT '',
            is_active BOOLEAN NOT NULL DEFAULT 1,
            created_by INTEGER NOT NULL,
            created_at DATETIME NOT NULL
        )`,
		// Таблица ставок: не больше одной на пару (user, match)
		`CREATE TABLE IF NOT EXISTS match_bets (
            id INTEGER PRIMARY KEY AUTOINCREMENT,
            user_id INTEGER NOT NULL,
            match_id INTEGER NOT NULL REFERENCES matches(id),
            score TEXT NOT NULL,
            placed_at DATETIME NOT NULL,
            UNIQUE(user_id, match_id)
        )`,
		// Явное участие в турнире, отдельно от ставок
		`CREATE TABLE IF NOT EXISTS tournament_participants (
            user_id INTEGER NOT NULL,
            tournament_id INTEGER NOT NULL REFERENCES tournaments(id),
            is_participating BOOLEAN NOT NULL DEFAULT 1,
            joined_at DATETIME NOT NULL,
            PRIMARY KEY (user_id, tournament_id)
        )`,

		`CREATE INDEX IF NOT EXISTS idx_users_login ON users(login)`,
		`CREATE INDEX IF NOT EXISTS idx_users_is_banned ON users(is_banned)`,
		`CREATE INDEX IF NOT EXISTS idx_tournaments_is_active ON tournaments(is_active)`,
		`CREATE INDEX IF NOT EXISTS idx_matches_tournament_id ON matches(tournament_id)`,
		`CREATE INDEX IF NOT EXISTS idx_matches_status ON matches(status)`,
		`CREATE INDEX IF NOT EXISTS idx_bets_match_id ON match_bets(match_id)`,
		`CREATE INDEX IF NOT EXISTS idx_bets_user_id ON match_bets(user_id)`,
	}

	for _, query := range queries {
		if _, err := db.Exec(query); err != nil {
			return fmt.Errorf("error executing query %s: %w", query, err)
		}
	}
	return nil
}

// mapUniqueViolation переводит нарушение UNIQUE в типизированную
// ошибку по имени колонки, как это делал исходный обработчик
// IntegrityError.
func mapUniqueViolation(err error) error {
	var sqliteErr sqlite3.Error
	if !errors.As(err, &sqliteErr) {
		return err
	}
	if sqliteErr.ExtendedCode != sqlite3.ErrConstraintUnique &&
		sqliteErr.ExtendedCode != sqlite3.ErrConstraintPrimaryKey {
		return err
	}

	msg := sqliteErr.Error()
	switch {
	case strings.Contains(msg, "users.login"):
		return ErrDuplicateLogin
	case strings.Contains(msg, "users.email"):
		return ErrDuplicateEmail
	case strings.Contains(msg, "users.phone"):
		return ErrDuplicatePhone
	default:
		return err
	}
}

// nullIfEmpty превращает пустую строку в NULL для опциональных
// уникальных колонок.
func nullIfEmpty(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
