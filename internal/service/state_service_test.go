package service

import (
	"context"
	"errors"
	"io"
	"testing"
	"time"

	"totobot/internal/models"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestStateService(t *testing.T) {
	repo := new(mockStateRepo)
	logger := zerolog.New(io.Discard)
	svc := NewStateService(repo, &logger)
	ctx := context.Background()

	t.Run("SetUserStateNilData", func(t *testing.T) {
		repo.On("SetState", ctx, mock.MatchedBy(func(s *models.UserState) bool {
			return s.UserID == 100 && s.Step == models.StepRegLogin && s.Data != nil
		})).Return(nil).Once()

		err := svc.SetUserState(ctx, 100, models.StepRegLogin, nil)
		assert.NoError(t, err)
		repo.AssertExpectations(t)
	})

	t.Run("UpdateUserStateData", func(t *testing.T) {
		existing := &models.UserState{
			UserID: 100,
			Step:   models.StepRegPassword,
			Data:   map[string]interface{}{"login": "ivan"},
		}
		repo.On("GetState", ctx, int64(100)).Return(existing, nil).Once()
		repo.On("SetState", ctx, mock.MatchedBy(func(s *models.UserState) bool {
			return s.Step == models.StepRegPassword && s.GetString("login") == "ivan" && s.GetString("phone") == "+7900"
		})).Return(nil).Once()

		err := svc.UpdateUserStateData(ctx, 100, "phone", "+7900")
		assert.NoError(t, err)
		repo.AssertExpectations(t)
	})

	t.Run("UpdateUserStateDataNoState", func(t *testing.T) {
		repo.On("GetState", ctx, int64(200)).Return(nil, nil).Once()
		repo.On("SetState", ctx, mock.AnythingOfType("*models.UserState")).Return(nil).Once()

		err := svc.UpdateUserStateData(ctx, 200, "k", "v")
		assert.NoError(t, err)
		repo.AssertExpectations(t)
	})

	t.Run("RateLimitFailOpen", func(t *testing.T) {
		repo.On("CheckRateLimit", ctx, int64(100), 20, time.Minute).Return(false, errors.New("redis down")).Once()

		allowed, err := svc.CheckRateLimit(ctx, 100, 20, time.Minute)
		require.NoError(t, err)
		assert.True(t, allowed)
	})

	t.Run("RateLimitDenied", func(t *testing.T) {
		repo.On("CheckRateLimit", ctx, int64(100), 20, time.Minute).Return(false, nil).Once()

		allowed, err := svc.CheckRateLimit(ctx, 100, 20, time.Minute)
		require.NoError(t, err)
		assert.False(t, allowed)
	})
}
