package models

import "time"

type Bet struct {
	ID       int64
	UserID   int64 // Telegram ID пользователя
	MatchID  int64
	Score    string // прогноз "X-Y"
	PlacedAt time.Time
}

// BetWithMatch — ставка вместе с матчем и турниром для экранов "мои ставки".
type BetWithMatch struct {
	Bet            Bet
	Match          Match
	TournamentName string
}

// BetWithUser — ставка вместе с пользователем для админских экранов.
type BetWithUser struct {
	Bet   Bet
	Login string
	Name  string
}

// ScoreCount — популярность прогноза в рамках одного матча.
type ScoreCount struct {
	Score string
	Count int
}
