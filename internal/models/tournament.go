package models

import "time"

type Tournament struct {
	ID          int64     `yaml:"id"`
	Name        string    `yaml:"name"`
	Description string    `yaml:"description"`
	Rules       string    `yaml:"rules"`
	IsActive    bool      `yaml:"-"`
	CreatedBy   int64     `yaml:"-"`
	CreatedAt   time.Time `yaml:"-"`
}

// TournamentParticipant фиксирует явное участие пользователя в турнире,
// отдельно от факта наличия ставок.
type TournamentParticipant struct {
	UserID          int64
	TournamentID    int64
	IsParticipating bool
	JoinedAt        time.Time
}
