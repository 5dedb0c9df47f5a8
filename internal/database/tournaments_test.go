package database

import (
	"context"
	"testing"

	"totobot/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTournamentCRUD(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()
	ctx := context.Background()

	tournament := seedTournament(t, db, "Лига Чемпионов")
	assert.NotZero(t, tournament.ID)
	assert.True(t, tournament.IsActive)

	got, err := db.GetTournament(ctx, tournament.ID)
	require.NoError(t, err)
	assert.Equal(t, "Лига Чемпионов", got.Name)

	require.NoError(t, db.UpdateTournament(ctx, tournament.ID, "ЛЧ", "описание", "правила"))
	got, _ = db.GetTournament(ctx, tournament.ID)
	assert.Equal(t, "ЛЧ", got.Name)
	assert.Equal(t, "описание", got.Description)
	assert.Equal(t, "правила", got.Rules)

	_, err = db.GetTournament(ctx, 999)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.ErrorIs(t, db.UpdateTournament(ctx, 999, "x", "", ""), ErrNotFound)
}

func TestTournamentSoftDelete(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()
	ctx := context.Background()

	visible := seedTournament(t, db, "Видимый")
	hidden := seedTournament(t, db, "Скрытый")
	require.NoError(t, db.SetTournamentActive(ctx, hidden.ID, false))

	active, err := db.ListActiveTournaments(ctx)
	require.NoError(t, err)
	require.Len(t, active, 1)
	assert.Equal(t, visible.ID, active[0].ID)

	all, err := db.ListAllTournaments(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 2)

	// Скрытый турнир по-прежнему доступен по id
	got, err := db.GetTournament(ctx, hidden.ID)
	require.NoError(t, err)
	assert.False(t, got.IsActive)

	// Восстановление
	require.NoError(t, db.SetTournamentActive(ctx, hidden.ID, true))
	active, _ = db.ListActiveTournaments(ctx)
	assert.Len(t, active, 2)
}

func TestParticipation(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()
	ctx := context.Background()

	tournament := seedTournament(t, db, "Лига")

	_, err := db.GetParticipation(ctx, 1, tournament.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, db.SetParticipation(ctx, 1, tournament.ID, true))
	require.NoError(t, db.SetParticipation(ctx, 2, tournament.ID, true))
	require.NoError(t, db.SetParticipation(ctx, 3, tournament.ID, false))

	p, err := db.GetParticipation(ctx, 1, tournament.ID)
	require.NoError(t, err)
	assert.True(t, p.IsParticipating)

	count, err := db.ParticipantCount(ctx, tournament.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, count)

	// Повторный вызов обновляет решение
	require.NoError(t, db.SetParticipation(ctx, 1, tournament.ID, false))
	count, _ = db.ParticipantCount(ctx, tournament.ID)
	assert.Equal(t, 1, count)
}

func TestMatchCRUD(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()
	ctx := context.Background()

	tournament := seedTournament(t, db, "Лига")
	match := seedMatch(t, db, tournament.ID, "15.06.2025", "18:00")
	assert.Equal(t, models.StatusScheduled, match.Status)
	assert.True(t, match.IsActive)

	got, err := db.GetMatch(ctx, match.ID)
	require.NoError(t, err)
	assert.Equal(t, "Спартак", got.Team1)
	assert.Equal(t, "", got.Result)

	require.NoError(t, db.UpdateMatch(ctx, match.ID, "16.06.2025", "20:30", "ЦСКА", "Динамо"))
	got, _ = db.GetMatch(ctx, match.ID)
	assert.Equal(t, "16.06.2025", got.Date)
	assert.Equal(t, "ЦСКА", got.Team1)

	_, err = db.GetMatch(ctx, 999)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestListMatchesChronologicalOrder(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()
	ctx := context.Background()

	tournament := seedTournament(t, db, "Лига")
	// Вставляем в произвольном порядке
	late := seedMatch(t, db, tournament.ID, "01.01.2026", "12:00")
	early := seedMatch(t, db, tournament.ID, "15.06.2025", "18:00")
	mid := seedMatch(t, db, tournament.ID, "20.12.2025", "10:00")

	matches, err := db.ListMatches(ctx, tournament.ID)
	require.NoError(t, err)
	require.Len(t, matches, 3)
	assert.Equal(t, early.ID, matches[0].ID)
	assert.Equal(t, mid.ID, matches[1].ID)
	assert.Equal(t, late.ID, matches[2].ID)
}

func TestSetMatchResult(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()
	ctx := context.Background()

	tournament := seedTournament(t, db, "Лига")
	match := seedMatch(t, db, tournament.ID, "15.06.2025", "18:00")

	require.NoError(t, db.SetMatchResult(ctx, match.ID, "2-1"))
	got, _ := db.GetMatch(ctx, match.ID)
	assert.Equal(t, "2-1", got.Result)
	assert.Equal(t, models.StatusCompleted, got.Status)

	assert.ErrorIs(t, db.SetMatchResult(ctx, 999, "0-0"), ErrNotFound)
}

func TestListScheduledMatches(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()
	ctx := context.Background()

	tournament := seedTournament(t, db, "Лига")
	scheduled := seedMatch(t, db, tournament.ID, "15.06.2025", "18:00")
	finished := seedMatch(t, db, tournament.ID, "14.06.2025", "18:00")
	require.NoError(t, db.SetMatchStatus(ctx, finished.ID, models.StatusCompleted))

	matches, err := db.ListScheduledMatches(ctx)
	require.NoError(t, err)
	require.Len(t, matches, 1)
	assert.Equal(t, scheduled.ID, matches[0].ID)
}

func TestDeleteMatchCascadesBets(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()
	ctx := context.Background()

	tournament := seedTournament(t, db, "Лига")
	match := seedMatch(t, db, tournament.ID, "15.06.2025", "18:00")

	require.NoError(t, db.UpsertBet(ctx, &models.Bet{UserID: 1, MatchID: match.ID, Score: "2-1"}))
	require.NoError(t, db.UpsertBet(ctx, &models.Bet{UserID: 2, MatchID: match.ID, Score: "0-0"}))

	require.NoError(t, db.DeleteMatch(ctx, match.ID))

	_, err := db.GetMatch(ctx, match.ID)
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = db.GetBet(ctx, 1, match.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	assert.ErrorIs(t, db.DeleteMatch(ctx, match.ID), ErrNotFound)
}
