package domain

import (
	"context"
	"time"

	"totobot/internal/database"
	"totobot/internal/models"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// Repository — все операции основного хранилища, которыми пользуются
// сервисы. Реализуется database.DB и in-memory заглушками в тестах.
type Repository interface {
	// Пользователи
	CreateUser(ctx context.Context, user *models.User) error
	GetUserByTelegramID(ctx context.Context, telegramID int64) (*models.User, error)
	GetUserByID(ctx context.Context, id int64) (*models.User, error)
	GetUserByIdentifier(ctx context.Context, identifier string) (*models.User, error)
	FindUserByAnyIdentifier(ctx context.Context, text string) (*models.User, error)
	SetBanned(ctx context.Context, telegramID int64, banned bool) error
	UpdateLastLogin(ctx context.Context, telegramID int64) error
	UpdateUserField(ctx context.Context, telegramID int64, field models.UserField, value string) error
	IsFieldTaken(ctx context.Context, field models.UserField, value string, excludeTelegramID int64) (bool, error)
	GetAllUsers(ctx context.Context) ([]*models.User, error)

	// Турниры
	CreateTournament(ctx context.Context, t *models.Tournament) error
	GetTournament(ctx context.Context, id int64) (*models.Tournament, error)
	ListActiveTournaments(ctx context.Context) ([]*models.Tournament, error)
	ListAllTournaments(ctx context.Context) ([]*models.Tournament, error)
	UpdateTournament(ctx context.Context, id int64, name, description, rules string) error
	SetTournamentActive(ctx context.Context, id int64, active bool) error

	// Матчи
	CreateMatch(ctx context.Context, m *models.Match) error
	GetMatch(ctx context.Context, id int64) (*models.Match, error)
	ListMatches(ctx context.Context, tournamentID int64) ([]*models.Match, error)
	ListScheduledMatches(ctx context.Context) ([]*models.Match, error)
	UpdateMatch(ctx context.Context, id int64, date, matchTime, team1, team2 string) error
	SetMatchStatus(ctx context.Context, id int64, status string) error
	SetMatchResult(ctx context.Context, id int64, result string) error
	DeleteMatch(ctx context.Context, id int64) error

	// Ставки
	UpsertBet(ctx context.Context, bet *models.Bet) error
	GetBet(ctx context.Context, userID, matchID int64) (*models.Bet, error)
	DeleteBet(ctx context.Context, userID, matchID int64) error
	DeleteBetsForMatch(ctx context.Context, matchID int64) (int64, error)
	BetsForUser(ctx context.Context, userID int64) ([]*models.BetWithMatch, error)
	BetsForMatch(ctx context.Context, matchID int64) ([]*models.BetWithUser, error)
	ScoreCounts(ctx context.Context, matchID int64) ([]*models.ScoreCount, error)
	BetCount(ctx context.Context, userID int64) (int, error)
	BetMatchIDs(ctx context.Context, userID, tournamentID int64) (map[int64]bool, error)

	// Участие
	SetParticipation(ctx context.Context, userID, tournamentID int64, participating bool) error
	GetParticipation(ctx context.Context, userID, tournamentID int64) (*models.TournamentParticipant, error)
	ParticipantCount(ctx context.Context, tournamentID int64) (int, error)

	// Статистика
	GetAdminStats(ctx context.Context) (*database.AdminStats, error)
}

type StateRepository interface {
	GetState(ctx context.Context, userID int64) (*models.UserState, error)
	SetState(ctx context.Context, state *models.UserState) error
	ClearState(ctx context.Context, userID int64) error
	CheckRateLimit(ctx context.Context, userID int64, limit int, window time.Duration) (bool, error)
}

type StateManager interface {
	GetUserState(ctx context.Context, userID int64) (*models.UserState, error)
	SetUserState(ctx context.Context, userID int64, step string, data map[string]interface{}) error
	UpdateUserStateData(ctx context.Context, userID int64, key string, value interface{}) error
	ClearUserState(ctx context.Context, userID int64) error
	CheckRateLimit(ctx context.Context, userID int64, limit int, window time.Duration) (bool, error)
}

type EventPublisher interface {
	PublishJSON(eventType string, payload interface{}) error
}

type AuthService interface {
	Register(ctx context.Context, input RegistrationInput) (*models.User, error)
	VerifyCredentials(ctx context.Context, identifier, password string) (*models.User, error)
	IsRegistered(ctx context.Context, telegramID int64) (bool, error)
	GetUser(ctx context.Context, telegramID int64) (*models.User, error)
	SetBanned(ctx context.Context, telegramID int64, banned bool) error
	IsFieldAvailable(ctx context.Context, field models.UserField, value string, excludeTelegramID int64) (bool, error)
	UpdateProfileField(ctx context.Context, telegramID int64, field models.UserField, value string) error
	FindUser(ctx context.Context, text string) (*models.User, error)
	ListUsers(ctx context.Context) ([]*models.User, error)
	Stats(ctx context.Context) (*database.AdminStats, error)
}

// RegistrationInput — собранные шаги формы регистрации.
type RegistrationInput struct {
	TelegramID int64
	Login      string
	Password   string
	FullName   string
	Email      string
	Phone      string
}

type CatalogService interface {
	CreateTournament(ctx context.Context, name, description, rules string, createdBy int64) (*models.Tournament, error)
	GetTournament(ctx context.Context, id int64) (*models.Tournament, error)
	ActiveTournaments(ctx context.Context) ([]*models.Tournament, error)
	AllTournaments(ctx context.Context) ([]*models.Tournament, error)
	UpdateTournament(ctx context.Context, id int64, name, description, rules string) error
	SetTournamentActive(ctx context.Context, id int64, active bool) error
	CreateMatch(ctx context.Context, tournamentID int64, date, matchTime, team1, team2 string, createdBy int64) (*models.Match, error)
	GetMatch(ctx context.Context, id int64) (*models.Match, error)
	Matches(ctx context.Context, tournamentID int64) ([]*models.Match, error)
	UpdateMatch(ctx context.Context, id int64, date, matchTime, team1, team2 string) error
	SetMatchResult(ctx context.Context, id int64, result string) error
	DeleteMatch(ctx context.Context, id int64) error
}

type BettingService interface {
	AvailableMatches(ctx context.Context, userID, tournamentID int64) ([]*models.Match, error)
	IsMatchOpen(ctx context.Context, userID int64, match *models.Match) (bool, error)
	PlaceBet(ctx context.Context, userID, matchID int64, score string) (*models.Bet, error)
	DeleteBet(ctx context.Context, userID, matchID int64) error
	UserBets(ctx context.Context, userID int64) ([]*models.BetWithMatch, error)
	MatchBets(ctx context.Context, matchID int64) ([]*models.BetWithUser, error)
	ScorePopularity(ctx context.Context, matchID int64) ([]*models.ScoreCount, error)
	BetCount(ctx context.Context, userID int64) (int, error)
	SetParticipation(ctx context.Context, userID, tournamentID int64, participating bool) error
	Participation(ctx context.Context, userID, tournamentID int64) (*models.TournamentParticipant, error)
	ParticipantCount(ctx context.Context, tournamentID int64) (int, error)
}

type TelegramSender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
	Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error)
	GetUpdatesChan(config tgbotapi.UpdateConfig) tgbotapi.UpdatesChannel
	GetSelf() tgbotapi.User
	StopReceivingUpdates()
}

type TelegramService interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
	Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error)
	SendMessage(chatID int64, text string) (tgbotapi.Message, error)
	SendWithKeyboard(chatID int64, text string, keyboard tgbotapi.ReplyKeyboardMarkup) (tgbotapi.Message, error)
	SendWithInlineKeyboard(chatID int64, text string, keyboard tgbotapi.InlineKeyboardMarkup) (tgbotapi.Message, error)
	EditMessage(chatID int64, messageID int, text string, keyboard *tgbotapi.InlineKeyboardMarkup) (tgbotapi.Message, error)
	AnswerCallback(callbackID string, text string) error
	GetUpdatesChan(config tgbotapi.UpdateConfig) tgbotapi.UpdatesChannel
	GetSelf() tgbotapi.User
	StopReceivingUpdates()
}

// SheetsWriter выгружает таблицы в Google Sheets.
type SheetsWriter interface {
	ReplaceUsersSheet(ctx context.Context, users []*models.User) error
	ReplaceBetsSheet(ctx context.Context, bets []*models.BetWithMatch) error
	AppendBet(ctx context.Context, bet *models.BetWithMatch) error
}

// SyncWorker принимает задачи на фоновую выгрузку.
type SyncWorker interface {
	EnqueueUsersExport(ctx context.Context) error
	EnqueueBetsExport(ctx context.Context) error
	EnqueueBetAppend(ctx context.Context, userID, matchID int64) error
}
