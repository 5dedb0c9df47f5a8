package service

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"

	"totobot/internal/database"
	"totobot/internal/domain"
	"totobot/internal/events"
	"totobot/internal/models"

	"github.com/rs/zerolog"
)

// AuthService отвечает за регистрацию, проверку учетных данных и
// блокировки. Пароль хранится как hex(sha256(password + salt)).
// Сравнение хешей обычное, не constant-time — унаследованное
// упрощение исходной системы.
type AuthService struct {
	repo     domain.Repository
	eventBus domain.EventPublisher
	logger   *zerolog.Logger
}

func NewAuthService(repo domain.Repository, eventBus domain.EventPublisher, logger *zerolog.Logger) *AuthService {
	return &AuthService{repo: repo, eventBus: eventBus, logger: logger}
}

func hashPassword(password, salt string) string {
	sum := sha256.Sum256([]byte(password + salt))
	return hex.EncodeToString(sum[:])
}

func generateSalt() (string, error) {
	buf := make([]byte, 16)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("failed to generate salt: %w", err)
	}
	return hex.EncodeToString(buf), nil
}

// Register создает пользователя. Уникальность логина/email/телефона
// гарантируется ограничениями хранилища в момент вставки, а не только
// предварительными проверками формы: между проверкой и коммитом
// проходит время.
func (s *AuthService) Register(ctx context.Context, input domain.RegistrationInput) (*models.User, error) {
	salt, err := generateSalt()
	if err != nil {
		return nil, err
	}

	user := &models.User{
		TelegramID:   input.TelegramID,
		Login:        input.Login,
		PasswordHash: hashPassword(input.Password, salt),
		PasswordSalt: salt,
		Email:        input.Email,
		Phone:        input.Phone,
		FullName:     input.FullName,
	}

	if err := s.repo.CreateUser(ctx, user); err != nil {
		s.logger.Error().Err(err).Int64("telegram_id", input.TelegramID).Str("login", input.Login).Msg("registration failed")
		return nil, err
	}

	s.logger.Info().Int64("telegram_id", user.TelegramID).Str("login", user.Login).Msg("user registered")
	s.publishUserEvent(events.EventUserRegistered, user)
	return user, nil
}

// VerifyCredentials ищет пользователя по логину, email или телефону и
// сверяет пароль. Забаненный пользователь не проходит проверку даже с
// верным паролем.
func (s *AuthService) VerifyCredentials(ctx context.Context, identifier, password string) (*models.User, error) {
	user, err := s.repo.GetUserByIdentifier(ctx, identifier)
	if errors.Is(err, database.ErrNotFound) {
		return nil, database.ErrInvalidCredentials
	}
	if err != nil {
		s.logger.Error().Err(err).Msg("credentials lookup failed")
		return nil, err
	}

	if hashPassword(password, user.PasswordSalt) != user.PasswordHash {
		return nil, database.ErrInvalidCredentials
	}
	if user.IsBanned {
		return nil, database.ErrBanned
	}

	if err := s.repo.UpdateLastLogin(ctx, user.TelegramID); err != nil {
		s.logger.Error().Err(err).Int64("telegram_id", user.TelegramID).Msg("failed to update last login")
	}
	return user, nil
}

func (s *AuthService) IsRegistered(ctx context.Context, telegramID int64) (bool, error) {
	_, err := s.repo.GetUserByTelegramID(ctx, telegramID)
	if errors.Is(err, database.ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

func (s *AuthService) GetUser(ctx context.Context, telegramID int64) (*models.User, error) {
	return s.repo.GetUserByTelegramID(ctx, telegramID)
}

// SetBanned идемпотентно включает или снимает блокировку.
func (s *AuthService) SetBanned(ctx context.Context, telegramID int64, banned bool) error {
	if err := s.repo.SetBanned(ctx, telegramID, banned); err != nil {
		return err
	}
	if banned {
		s.publishUserEvent(events.EventUserBanned, &models.User{TelegramID: telegramID, IsBanned: true})
	}
	return nil
}

// IsFieldAvailable проверяет, свободно ли уникальное поле, исключая
// строку самого пользователя (для редактирования профиля).
func (s *AuthService) IsFieldAvailable(ctx context.Context, field models.UserField, value string, excludeTelegramID int64) (bool, error) {
	taken, err := s.repo.IsFieldTaken(ctx, field, value, excludeTelegramID)
	if err != nil {
		return false, err
	}
	return !taken, nil
}

func (s *AuthService) UpdateProfileField(ctx context.Context, telegramID int64, field models.UserField, value string) error {
	return s.repo.UpdateUserField(ctx, telegramID, field, value)
}

func (s *AuthService) FindUser(ctx context.Context, text string) (*models.User, error) {
	return s.repo.FindUserByAnyIdentifier(ctx, text)
}

func (s *AuthService) ListUsers(ctx context.Context) ([]*models.User, error) {
	return s.repo.GetAllUsers(ctx)
}

func (s *AuthService) Stats(ctx context.Context) (*database.AdminStats, error) {
	return s.repo.GetAdminStats(ctx)
}

func (s *AuthService) publishUserEvent(eventType string, user *models.User) {
	if s.eventBus == nil {
		return
	}
	payload := events.UserEventPayload{
		TelegramID: user.TelegramID,
		Login:      user.Login,
		Banned:     user.IsBanned,
	}
	if err := s.eventBus.PublishJSON(eventType, payload); err != nil {
		s.logger.Error().Err(err).Str("event_type", eventType).Msg("publish event error")
	}
}
