package worker

import (
	"context"
	"time"

	"totobot/internal/domain"
	"totobot/internal/events"
	"totobot/internal/metrics"
	"totobot/internal/models"

	"github.com/rs/zerolog"
)

// MatchWatcher периодически переводит начавшиеся матчи в completed.
// Матч закрывается для ставок процедурной проверкой времени еще до
// смены статуса, поэтому опоздание вотчера на интервал безопасно:
// статус здесь нужен для меню и статистики, не для приема ставок.
type MatchWatcher struct {
	repo     domain.Repository
	eventBus domain.EventPublisher
	metrics  *metrics.Metrics
	loc      *time.Location
	interval time.Duration
	logger   *zerolog.Logger
	now      func() time.Time
}

func NewMatchWatcher(repo domain.Repository, eventBus domain.EventPublisher, m *metrics.Metrics, loc *time.Location, interval time.Duration, logger *zerolog.Logger) *MatchWatcher {
	if interval <= 0 {
		interval = models.DefaultWatcherInterval * time.Second
	}
	return &MatchWatcher{
		repo:     repo,
		eventBus: eventBus,
		metrics:  m,
		loc:      loc,
		interval: interval,
		logger:   logger,
		now:      time.Now,
	}
}

// Start блокирует до отмены контекста. Первый проход сразу, чтобы
// подхватить матчи, истекшие пока бот был выключен.
func (w *MatchWatcher) Start(ctx context.Context) {
	w.logger.Info().Dur("interval", w.interval).Msg("match watcher started")
	defer w.logger.Info().Msg("match watcher stopped")

	w.Sweep(ctx)

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			w.Sweep(ctx)
		}
	}
}

// Sweep делает один проход: все scheduled-матчи с прошедшим временем
// начала переводятся в completed.
func (w *MatchWatcher) Sweep(ctx context.Context) {
	matches, err := w.repo.ListScheduledMatches(ctx)
	if err != nil {
		w.logger.Error().Err(err).Msg("watcher: list scheduled matches failed")
		return
	}

	now := w.now()
	flipped := 0
	for _, m := range matches {
		if !m.IsExpired(now, w.loc) {
			continue
		}

		if err := w.repo.SetMatchStatus(ctx, m.ID, models.StatusCompleted); err != nil {
			w.logger.Error().Err(err).Int64("match_id", m.ID).Msg("watcher: status update failed")
			continue
		}
		flipped++

		if w.metrics != nil {
			w.metrics.MatchesCompleted.Inc()
		}
		if w.eventBus != nil {
			payload := events.MatchEventPayload{MatchID: m.ID, TournamentID: m.TournamentID}
			if err := w.eventBus.PublishJSON(events.EventMatchExpired, payload); err != nil {
				w.logger.Error().Err(err).Int64("match_id", m.ID).Msg("watcher: publish event error")
			}
		}
	}

	if flipped > 0 {
		w.logger.Info().Int("flipped", flipped).Msg("watcher: matches completed")
	}
}
