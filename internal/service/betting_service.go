package service

import (
	"context"
	"errors"
	"regexp"
	"strconv"
	"strings"
	"time"

	"totobot/internal/database"
	"totobot/internal/domain"
	"totobot/internal/events"
	"totobot/internal/models"

	"github.com/rs/zerolog"
)

var scorePattern = regexp.MustCompile(`^\d+-\d+$`)

// BettingService реализует правила тотализатора: матч открыт для
// ставки пользователя, пока не наступило его время в каноничном
// часовом поясе и пока у пользователя нет ставки на этот матч.
type BettingService struct {
	repo     domain.Repository
	eventBus domain.EventPublisher
	loc      *time.Location
	maxScore int
	logger   *zerolog.Logger
	now      func() time.Time
}

func NewBettingService(repo domain.Repository, eventBus domain.EventPublisher, loc *time.Location, maxScore int, logger *zerolog.Logger) *BettingService {
	if maxScore <= 0 {
		maxScore = models.MaxScoreValue
	}
	return &BettingService{
		repo:     repo,
		eventBus: eventBus,
		loc:      loc,
		maxScore: maxScore,
		logger:   logger,
		now:      time.Now,
	}
}

// ValidateScore проверяет прогноз "X-Y": оба числа в [0, maxScore].
// Отбрасывается до обращения к хранилищу.
func (s *BettingService) ValidateScore(score string) error {
	if !scorePattern.MatchString(score) {
		return database.ErrInvalidScore
	}
	parts := strings.SplitN(score, "-", 2)
	for _, p := range parts {
		n, err := strconv.Atoi(p)
		if err != nil || n < 0 || n > s.maxScore {
			return database.ErrInvalidScore
		}
	}
	return nil
}

// IsMatchOpen применяет правило доступности к одному матчу.
func (s *BettingService) IsMatchOpen(ctx context.Context, userID int64, match *models.Match) (bool, error) {
	if !match.IsActive || match.Status != models.StatusScheduled {
		return false, nil
	}
	// Истекший матч закрыт для всех, независимо от ставок
	if match.IsExpired(s.now(), s.loc) {
		return false, nil
	}

	_, err := s.repo.GetBet(ctx, userID, match.ID)
	if errors.Is(err, database.ErrNotFound) {
		return true, nil
	}
	if err != nil {
		return false, err
	}
	return false, nil
}

// AvailableMatches возвращает матчи турнира, открытые для ставок
// пользователя, в хронологическом порядке. Правило вычисляется на
// каждом матче в коде, не SQL-предикатом.
func (s *BettingService) AvailableMatches(ctx context.Context, userID, tournamentID int64) ([]*models.Match, error) {
	matches, err := s.repo.ListMatches(ctx, tournamentID)
	if err != nil {
		return nil, err
	}

	betOn, err := s.repo.BetMatchIDs(ctx, userID, tournamentID)
	if err != nil {
		return nil, err
	}

	now := s.now()
	var open []*models.Match
	for _, m := range matches {
		if m.Status != models.StatusScheduled || !m.IsActive {
			continue
		}
		if m.IsExpired(now, s.loc) {
			continue
		}
		if betOn[m.ID] {
			continue
		}
		open = append(open, m)
	}
	return open, nil
}

// PlaceBet ставит или молча заменяет прогноз пользователя на матч.
// Истечение матча перепроверяется в момент отправки: между показом
// меню и вводом счета окно могло закрыться.
func (s *BettingService) PlaceBet(ctx context.Context, userID, matchID int64, score string) (*models.Bet, error) {
	if err := s.ValidateScore(score); err != nil {
		return nil, err
	}

	match, err := s.repo.GetMatch(ctx, matchID)
	if err != nil {
		return nil, err
	}
	if !match.IsActive || match.Status != models.StatusScheduled {
		return nil, database.ErrMatchNotOpen
	}
	if match.IsExpired(s.now(), s.loc) {
		return nil, database.ErrMatchExpired
	}

	bet := &models.Bet{UserID: userID, MatchID: matchID, Score: score}
	if err := s.repo.UpsertBet(ctx, bet); err != nil {
		s.logger.Error().Err(err).Int64("user_id", userID).Int64("match_id", matchID).Msg("place bet failed")
		return nil, err
	}

	s.publishBetEvent(events.EventBetPlaced, userID, match, score)
	return bet, nil
}

// DeleteBet убирает ставку: матч возвращается в открытый список, если
// еще не истек.
func (s *BettingService) DeleteBet(ctx context.Context, userID, matchID int64) error {
	if err := s.repo.DeleteBet(ctx, userID, matchID); err != nil {
		return err
	}

	match, err := s.repo.GetMatch(ctx, matchID)
	if err == nil {
		s.publishBetEvent(events.EventBetDeleted, userID, match, "")
	}
	return nil
}

func (s *BettingService) UserBets(ctx context.Context, userID int64) ([]*models.BetWithMatch, error) {
	return s.repo.BetsForUser(ctx, userID)
}

func (s *BettingService) MatchBets(ctx context.Context, matchID int64) ([]*models.BetWithUser, error) {
	return s.repo.BetsForMatch(ctx, matchID)
}

func (s *BettingService) ScorePopularity(ctx context.Context, matchID int64) ([]*models.ScoreCount, error) {
	return s.repo.ScoreCounts(ctx, matchID)
}

func (s *BettingService) BetCount(ctx context.Context, userID int64) (int, error) {
	return s.repo.BetCount(ctx, userID)
}

func (s *BettingService) SetParticipation(ctx context.Context, userID, tournamentID int64, participating bool) error {
	return s.repo.SetParticipation(ctx, userID, tournamentID, participating)
}

func (s *BettingService) Participation(ctx context.Context, userID, tournamentID int64) (*models.TournamentParticipant, error) {
	return s.repo.GetParticipation(ctx, userID, tournamentID)
}

func (s *BettingService) ParticipantCount(ctx context.Context, tournamentID int64) (int, error) {
	return s.repo.ParticipantCount(ctx, tournamentID)
}

func (s *BettingService) publishBetEvent(eventType string, userID int64, match *models.Match, score string) {
	if s.eventBus == nil {
		return
	}
	payload := events.BetEventPayload{
		UserID:       userID,
		MatchID:      match.ID,
		TournamentID: match.TournamentID,
		Score:        score,
	}
	if err := s.eventBus.PublishJSON(eventType, payload); err != nil {
		s.logger.Error().Err(err).Str("event_type", eventType).Int64("match_id", match.ID).Msg("publish event error")
	}
}
