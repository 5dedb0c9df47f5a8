package service

import (
	"context"
	"time"

	"totobot/internal/database"
	"totobot/internal/models"

	"github.com/stretchr/testify/mock"
)

type mockRepo struct {
	mock.Mock
}

func (m *mockRepo) CreateUser(ctx context.Context, u *models.User) error {
	return m.Called(ctx, u).Error(0)
}
func (m *mockRepo) GetUserByTelegramID(ctx context.Context, id int64) (*models.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}
func (m *mockRepo) GetUserByID(ctx context.Context, id int64) (*models.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}
func (m *mockRepo) GetUserByIdentifier(ctx context.Context, identifier string) (*models.User, error) {
	args := m.Called(ctx, identifier)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}
func (m *mockRepo) FindUserByAnyIdentifier(ctx context.Context, text string) (*models.User, error) {
	args := m.Called(ctx, text)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}
func (m *mockRepo) SetBanned(ctx context.Context, id int64, banned bool) error {
	return m.Called(ctx, id, banned).Error(0)
}
func (m *mockRepo) UpdateLastLogin(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}
func (m *mockRepo) UpdateUserField(ctx context.Context, id int64, f models.UserField, v string) error {
	return m.Called(ctx, id, f, v).Error(0)
}
func (m *mockRepo) IsFieldTaken(ctx context.Context, f models.UserField, v string, exclude int64) (bool, error) {
	args := m.Called(ctx, f, v, exclude)
	return args.Bool(0), args.Error(1)
}
func (m *mockRepo) GetAllUsers(ctx context.Context) ([]*models.User, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.User), args.Error(1)
}

func (m *mockRepo) CreateTournament(ctx context.Context, t *models.Tournament) error {
	return m.Called(ctx, t).Error(0)
}
func (m *mockRepo) GetTournament(ctx context.Context, id int64) (*models.Tournament, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Tournament), args.Error(1)
}
func (m *mockRepo) ListActiveTournaments(ctx context.Context) ([]*models.Tournament, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Tournament), args.Error(1)
}
func (m *mockRepo) ListAllTournaments(ctx context.Context) ([]*models.Tournament, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Tournament), args.Error(1)
}
func (m *mockRepo) UpdateTournament(ctx context.Context, id int64, name, desc, rules string) error {
	return m.Called(ctx, id, name, desc, rules).Error(0)
}
func (m *mockRepo) SetTournamentActive(ctx context.Context, id int64, active bool) error {
	return m.Called(ctx, id, active).Error(0)
}

func (m *mockRepo) CreateMatch(ctx context.Context, match *models.Match) error {
	return m.Called(ctx, match).Error(0)
}
func (m *mockRepo) GetMatch(ctx context.Context, id int64) (*models.Match, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Match), args.Error(1)
}
func (m *mockRepo) ListMatches(ctx context.Context, tournamentID int64) ([]*models.Match, error) {
	args := m.Called(ctx, tournamentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Match), args.Error(1)
}
func (m *mockRepo) ListScheduledMatches(ctx context.Context) ([]*models.Match, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Match), args.Error(1)
}
func (m *mockRepo) UpdateMatch(ctx context.Context, id int64, date, matchTime, team1, team2 string) error {
	return m.Called(ctx, id, date, matchTime, team1, team2).Error(0)
}
func (m *mockRepo) SetMatchStatus(ctx context.Context, id int64, status string) error {
	return m.Called(ctx, id, status).Error(0)
}
func (m *mockRepo) SetMatchResult(ctx context.Context, id int64, result string) error {
	return m.Called(ctx, id, result).Error(0)
}
func (m *mockRepo) DeleteMatch(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

func (m *mockRepo) UpsertBet(ctx context.Context, b *models.Bet) error {
	return m.Called(ctx, b).Error(0)
}
func (m *mockRepo) GetBet(ctx context.Context, userID, matchID int64) (*models.Bet, error) {
	args := m.Called(ctx, userID, matchID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Bet), args.Error(1)
}
func (m *mockRepo) DeleteBet(ctx context.Context, userID, matchID int64) error {
	return m.Called(ctx, userID, matchID).Error(0)
}
func (m *mockRepo) DeleteBetsForMatch(ctx context.Context, matchID int64) (int64, error) {
	args := m.Called(ctx, matchID)
	return args.Get(0).(int64), args.Error(1)
}
func (m *mockRepo) BetsForUser(ctx context.Context, userID int64) ([]*models.BetWithMatch, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.BetWithMatch), args.Error(1)
}
func (m *mockRepo) BetsForMatch(ctx context.Context, matchID int64) ([]*models.BetWithUser, error) {
	args := m.Called(ctx, matchID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.BetWithUser), args.Error(1)
}
func (m *mockRepo) ScoreCounts(ctx context.Context, matchID int64) ([]*models.ScoreCount, error) {
	args := m.Called(ctx, matchID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.ScoreCount), args.Error(1)
}
func (m *mockRepo) BetCount(ctx context.Context, userID int64) (int, error) {
	args := m.Called(ctx, userID)
	return args.Int(0), args.Error(1)
}
func (m *mockRepo) BetMatchIDs(ctx context.Context, userID, tournamentID int64) (map[int64]bool, error) {
	args := m.Called(ctx, userID, tournamentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[int64]bool), args.Error(1)
}

func (m *mockRepo) SetParticipation(ctx context.Context, userID, tournamentID int64, p bool) error {
	return m.Called(ctx, userID, tournamentID, p).Error(0)
}
func (m *mockRepo) GetParticipation(ctx context.Context, userID, tournamentID int64) (*models.TournamentParticipant, error) {
	args := m.Called(ctx, userID, tournamentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.TournamentParticipant), args.Error(1)
}
func (m *mockRepo) ParticipantCount(ctx context.Context, tournamentID int64) (int, error) {
	args := m.Called(ctx, tournamentID)
	return args.Int(0), args.Error(1)
}

func (m *mockRepo) GetAdminStats(ctx context.Context) (*database.AdminStats, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*database.AdminStats), args.Error(1)
}

type mockEventBus struct {
	mock.Mock
}

func (m *mockEventBus) PublishJSON(et string, p interface{}) error { return m.Called(et, p).Error(0) }

type mockStateRepo struct {
	mock.Mock
}

func (m *mockStateRepo) GetState(ctx context.Context, userID int64) (*models.UserState, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.UserState), args.Error(1)
}
func (m *mockStateRepo) SetState(ctx context.Context, state *models.UserState) error {
	return m.Called(ctx, state).Error(0)
}
func (m *mockStateRepo) ClearState(ctx context.Context, userID int64) error {
	return m.Called(ctx, userID).Error(0)
}
func (m *mockStateRepo) CheckRateLimit(ctx context.Context, userID int64, limit int, window time.Duration) (bool, error) {
	args := m.Called(ctx, userID, limit, window)
	return args.Bool(0), args.Error(1)
}
