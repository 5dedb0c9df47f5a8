package service

import (
	"context"
	"io"
	"testing"

	"totobot/internal/database"
	"totobot/internal/events"
	"totobot/internal/models"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestValidateDate(t *testing.T) {
	assert.NoError(t, ValidateDate("15.06.2025"))
	assert.NoError(t, ValidateDate("29.02.2024")) // високосный год

	assert.ErrorIs(t, ValidateDate("31.02.2025"), ErrInvalidDate)
	assert.ErrorIs(t, ValidateDate("2025-06-15"), ErrInvalidDate)
	assert.ErrorIs(t, ValidateDate("15/06/2025"), ErrInvalidDate)
	assert.ErrorIs(t, ValidateDate(""), ErrInvalidDate)
}

func TestValidateTime(t *testing.T) {
	assert.NoError(t, ValidateTime("18:00"))
	assert.NoError(t, ValidateTime("00:00"))
	assert.NoError(t, ValidateTime("23:59"))

	assert.ErrorIs(t, ValidateTime("24:00"), ErrInvalidTime)
	assert.ErrorIs(t, ValidateTime("6 pm"), ErrInvalidTime)
	assert.ErrorIs(t, ValidateTime(""), ErrInvalidTime)
}

func TestCatalogService(t *testing.T) {
	repo := new(mockRepo)
	bus := new(mockEventBus)
	logger := zerolog.New(io.Discard)
	svc := NewCatalogService(repo, bus, &logger)
	ctx := context.Background()

	t.Run("CreateTournament", func(t *testing.T) {
		repo.On("CreateTournament", ctx, mock.AnythingOfType("*models.Tournament")).Return(nil).Once()

		tournament, err := svc.CreateTournament(ctx, "  Лига Чемпионов  ", "описание", "правила", 1)
		require.NoError(t, err)
		assert.Equal(t, "Лига Чемпионов", tournament.Name)
		assert.True(t, tournament.IsActive)
		repo.AssertExpectations(t)
	})

	t.Run("CreateTournamentEmptyName", func(t *testing.T) {
		repo := new(mockRepo)
		bus := new(mockEventBus)
		svc := NewCatalogService(repo, bus, &logger)
		_, err := svc.CreateTournament(ctx, "   ", "", "", 1)
		assert.ErrorIs(t, err, ErrEmptyName)
		repo.AssertNotCalled(t, "CreateTournament", ctx, mock.Anything)
	})

	t.Run("CreateMatch", func(t *testing.T) {
		repo.On("GetTournament", ctx, int64(1)).Return(&models.Tournament{ID: 1}, nil).Once()
		repo.On("CreateMatch", ctx, mock.AnythingOfType("*models.Match")).Return(nil).Once()

		match, err := svc.CreateMatch(ctx, 1, "15.06.2025", "18:00", "Спартак", "Зенит", 1)
		require.NoError(t, err)
		assert.Equal(t, models.StatusScheduled, match.Status)
		assert.True(t, match.IsActive)
		repo.AssertExpectations(t)
	})

	t.Run("CreateMatchBadDate", func(t *testing.T) {
		_, err := svc.CreateMatch(ctx, 1, "31.02.2025", "18:00", "А", "Б", 1)
		assert.ErrorIs(t, err, ErrInvalidDate)
	})

	t.Run("CreateMatchUnknownTournament", func(t *testing.T) {
		repo.On("GetTournament", ctx, int64(99)).Return(nil, database.ErrNotFound).Once()

		_, err := svc.CreateMatch(ctx, 99, "15.06.2025", "18:00", "А", "Б", 1)
		assert.ErrorIs(t, err, database.ErrNotFound)
	})

	t.Run("SetMatchResult", func(t *testing.T) {
		match := &models.Match{ID: 5, TournamentID: 1}
		repo.On("GetMatch", ctx, int64(5)).Return(match, nil).Once()
		repo.On("SetMatchResult", ctx, int64(5), "2-1").Return(nil).Once()
		bus.On("PublishJSON", events.EventMatchResultSet, mock.Anything).Return(nil).Once()

		err := svc.SetMatchResult(ctx, 5, "2-1")
		assert.NoError(t, err)
		repo.AssertExpectations(t)
		bus.AssertExpectations(t)
	})

	t.Run("SetTournamentActive", func(t *testing.T) {
		repo.On("SetTournamentActive", ctx, int64(1), false).Return(nil).Once()

		err := svc.SetTournamentActive(ctx, 1, false)
		assert.NoError(t, err)
		repo.AssertExpectations(t)
	})
}
