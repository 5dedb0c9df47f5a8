package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"totobot/internal/domain"
	"totobot/internal/events"
	"totobot/internal/models"

	"github.com/rs/zerolog"
)

var (
	ErrInvalidDate = errors.New("invalid date, expected dd.mm.yyyy")
	ErrInvalidTime = errors.New("invalid time, expected HH:MM")
	ErrEmptyName   = errors.New("name must not be empty")
)

// CatalogService — турниры и матчи: админский CRUD и публичные списки.
type CatalogService struct {
	repo     domain.Repository
	eventBus domain.EventPublisher
	logger   *zerolog.Logger
}

func NewCatalogService(repo domain.Repository, eventBus domain.EventPublisher, logger *zerolog.Logger) *CatalogService {
	return &CatalogService{repo: repo, eventBus: eventBus, logger: logger}
}

// ValidateDate принимает только формат dd.mm.yyyy, включая проверку
// календарной корректности (31.02 не проходит).
func ValidateDate(date string) error {
	if _, err := time.Parse(models.DateLayout, date); err != nil {
		return ErrInvalidDate
	}
	return nil
}

// ValidateTime принимает только 24-часовой HH:MM.
func ValidateTime(matchTime string) error {
	if _, err := time.Parse(models.TimeLayout, matchTime); err != nil {
		return ErrInvalidTime
	}
	return nil
}

func (s *CatalogService) CreateTournament(ctx context.Context, name, description, rules string, createdBy int64) (*models.Tournament, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrEmptyName
	}

	t := &models.Tournament{
		Name:        name,
		Description: strings.TrimSpace(description),
		Rules:       strings.TrimSpace(rules),
		IsActive:    true,
		CreatedBy:   createdBy,
	}
	if err := s.repo.CreateTournament(ctx, t); err != nil {
		return nil, fmt.Errorf("failed to create tournament: %w", err)
	}

	s.logger.Info().Int64("tournament_id", t.ID).Str("name", t.Name).Int64("created_by", createdBy).Msg("tournament created")
	return t, nil
}

func (s *CatalogService) GetTournament(ctx context.Context, id int64) (*models.Tournament, error) {
	return s.repo.GetTournament(ctx, id)
}

func (s *CatalogService) ActiveTournaments(ctx context.Context) ([]*models.Tournament, error) {
	return s.repo.ListActiveTournaments(ctx)
}

func (s *CatalogService) AllTournaments(ctx context.Context) ([]*models.Tournament, error) {
	return s.repo.ListAllTournaments(ctx)
}

func (s *CatalogService) UpdateTournament(ctx context.Context, id int64, name, description, rules string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return ErrEmptyName
	}
	return s.repo.UpdateTournament(ctx, id, name, strings.TrimSpace(description), strings.TrimSpace(rules))
}

// SetTournamentActive скрывает или возвращает турнир. Удаление мягкое:
// ставки и матчи остаются в базе.
func (s *CatalogService) SetTournamentActive(ctx context.Context, id int64, active bool) error {
	if err := s.repo.SetTournamentActive(ctx, id, active); err != nil {
		return err
	}
	s.logger.Info().Int64("tournament_id", id).Bool("active", active).Msg("tournament visibility changed")
	return nil
}

func (s *CatalogService) CreateMatch(ctx context.Context, tournamentID int64, date, matchTime, team1, team2 string, createdBy int64) (*models.Match, error) {
	if err := ValidateDate(date); err != nil {
		return nil, err
	}
	if err := ValidateTime(matchTime); err != nil {
		return nil, err
	}
	team1 = strings.TrimSpace(team1)
	team2 = strings.TrimSpace(team2)
	if team1 == "" || team2 == "" {
		return nil, ErrEmptyName
	}

	// Турнир должен существовать; ErrNotFound уходит как есть
	if _, err := s.repo.GetTournament(ctx, tournamentID); err != nil {
		return nil, err
	}

	m := &models.Match{
		TournamentID: tournamentID,
		Date:         date,
		Time:         matchTime,
		Team1:        team1,
		Team2:        team2,
		Status:       models.StatusScheduled,
		IsActive:     true,
		CreatedBy:    createdBy,
	}
	if err := s.repo.CreateMatch(ctx, m); err != nil {
		return nil, fmt.Errorf("failed to create match: %w", err)
	}

	s.logger.Info().Int64("match_id", m.ID).Int64("tournament_id", tournamentID).Str("title", m.Title()).Msg("match created")
	return m, nil
}

func (s *CatalogService) GetMatch(ctx context.Context, id int64) (*models.Match, error) {
	return s.repo.GetMatch(ctx, id)
}

func (s *CatalogService) Matches(ctx context.Context, tournamentID int64) ([]*models.Match, error) {
	return s.repo.ListMatches(ctx, tournamentID)
}

func (s *CatalogService) UpdateMatch(ctx context.Context, id int64, date, matchTime, team1, team2 string) error {
	if err := ValidateDate(date); err != nil {
		return err
	}
	if err := ValidateTime(matchTime); err != nil {
		return err
	}
	team1 = strings.TrimSpace(team1)
	team2 = strings.TrimSpace(team2)
	if team1 == "" || team2 == "" {
		return ErrEmptyName
	}
	return s.repo.UpdateMatch(ctx, id, date, matchTime, team1, team2)
}

// SetMatchResult записывает итоговый счет и переводит матч в
// completed. Формат результата тот же, что у прогнозов.
func (s *CatalogService) SetMatchResult(ctx context.Context, id int64, result string) error {
	match, err := s.repo.GetMatch(ctx, id)
	if err != nil {
		return err
	}
	if err := s.repo.SetMatchResult(ctx, id, result); err != nil {
		return err
	}

	if s.eventBus != nil {
		payload := events.MatchEventPayload{
			MatchID:      id,
			TournamentID: match.TournamentID,
			Result:       result,
		}
		if err := s.eventBus.PublishJSON(events.EventMatchResultSet, payload); err != nil {
			s.logger.Error().Err(err).Int64("match_id", id).Msg("publish event error")
		}
	}
	return nil
}

// DeleteMatch удаляет матч вместе со ставками на него.
func (s *CatalogService) DeleteMatch(ctx context.Context, id int64) error {
	if err := s.repo.DeleteMatch(ctx, id); err != nil {
		return err
	}
	s.logger.Info().Int64("match_id", id).Msg("match deleted")
	return nil
}
