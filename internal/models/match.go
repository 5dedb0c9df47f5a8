package models

import (
	"fmt"
	"time"
)

type Match struct {
	ID           int64
	TournamentID int64
	Date         string // дд.мм.гггг
	Time         string // чч:мм
	Team1        string
	Team2        string
	Status       string // scheduled / completed
	Result       string // итоговый счет "X-Y", пустой пока не введен
	IsActive     bool
	CreatedBy    int64
	CreatedAt    time.Time
}

// KickoffTime собирает дату и время матча в момент начала в заданном
// часовом поясе. Дата и время хранятся текстом, сравнение с "сейчас"
// всегда процедурное, не на стороне SQL.
func (m *Match) KickoffTime(loc *time.Location) (time.Time, error) {
	t, err := time.ParseInLocation(DateLayout+" "+TimeLayout, m.Date+" "+m.Time, loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse match %d kickoff: %w", m.ID, err)
	}
	return t, nil
}

// IsExpired сообщает, прошло ли время начала матча.
func (m *Match) IsExpired(now time.Time, loc *time.Location) bool {
	kickoff, err := m.KickoffTime(loc)
	if err != nil {
		// Непарсящееся расписание считаем истекшим, чтобы не принимать ставки.
		return true
	}
	return !now.In(loc).Before(kickoff)
}

func (m *Match) Title() string {
	return m.Team1 + " — " + m.Team2
}
