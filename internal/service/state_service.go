package service

import (
	"context"
	"time"

	"totobot/internal/domain"
	"totobot/internal/models"

	"github.com/rs/zerolog"
)

// StateService — шаги многошаговых диалогов (регистрация, вход,
// ввод счета, админские формы) поверх StateRepository.
type StateService struct {
	repo   domain.StateRepository
	logger *zerolog.Logger
}

func NewStateService(repo domain.StateRepository, logger *zerolog.Logger) *StateService {
	return &StateService{repo: repo, logger: logger}
}

// GetUserState возвращает текущее состояние диалога; nil, если
// пользователь вне диалога.
func (s *StateService) GetUserState(ctx context.Context, userID int64) (*models.UserState, error) {
	return s.repo.GetState(ctx, userID)
}

func (s *StateService) SetUserState(ctx context.Context, userID int64, step string, data map[string]interface{}) error {
	if data == nil {
		data = make(map[string]interface{})
	}
	return s.repo.SetState(ctx, &models.UserState{UserID: userID, Step: step, Data: data})
}

// UpdateUserStateData дописывает значение в данные текущего шага, не
// меняя сам шаг.
func (s *StateService) UpdateUserStateData(ctx context.Context, userID int64, key string, value interface{}) error {
	state, err := s.repo.GetState(ctx, userID)
	if err != nil {
		return err
	}
	if state == nil {
		state = &models.UserState{UserID: userID, Data: make(map[string]interface{})}
	}
	state.Set(key, value)
	return s.repo.SetState(ctx, state)
}

func (s *StateService) ClearUserState(ctx context.Context, userID int64) error {
	return s.repo.ClearState(ctx, userID)
}

func (s *StateService) CheckRateLimit(ctx context.Context, userID int64, limit int, window time.Duration) (bool, error) {
	allowed, err := s.repo.CheckRateLimit(ctx, userID, limit, window)
	if err != nil {
		// Лимитер не должен ронять обработку апдейта
		s.logger.Warn().Err(err).Int64("user_id", userID).Msg("rate limit check failed, allowing")
		return true, nil
	}
	return allowed, nil
}
