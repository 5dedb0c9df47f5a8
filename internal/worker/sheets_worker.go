package worker

import (
	"context"
	"errors"
	"fmt"
	"time"

	"totobot/internal/domain"
	"totobot/internal/models"

	"github.com/rs/zerolog"
)

const (
	TaskUsersExport = "users_export"
	TaskBetsExport  = "bets_export"
	TaskBetAppend   = "bet_append"
)

// SheetTask — единица фоновой выгрузки в Google Sheets.
type SheetTask struct {
	Type      string
	UserID    int64
	MatchID   int64
	Attempt   int
	CreatedAt time.Time
}

// SheetsWorker асинхронно зеркалит пользователей и ставки в Google
// Sheets. Очередь в памяти: выгрузка — зеркало, не источник истины,
// потеря задачи при рестарте лечится полной перевыгрузкой из админки.
type SheetsWorker struct {
	repo        domain.Repository
	sheets      domain.SheetsWriter
	retryPolicy RetryPolicy
	queue       chan SheetTask
	logger      *zerolog.Logger
}

func NewSheetsWorker(repo domain.Repository, sheets domain.SheetsWriter, retry RetryPolicy, logger *zerolog.Logger) *SheetsWorker {
	if retry.MaxRetries == 0 {
		retry.MaxRetries = 5
	}
	if retry.InitialDelay == 0 {
		retry.InitialDelay = 2 * time.Second
	}
	if retry.MaxDelay == 0 {
		retry.MaxDelay = 1 * time.Minute
	}
	if retry.BackoffFactor == 0 {
		retry.BackoffFactor = 2
	}

	return &SheetsWorker{
		repo:        repo,
		sheets:      sheets,
		retryPolicy: retry,
		queue:       make(chan SheetTask, models.WorkerQueueSize),
		logger:      logger,
	}
}

func (w *SheetsWorker) EnqueueUsersExport(ctx context.Context) error {
	return w.enqueue(SheetTask{Type: TaskUsersExport})
}

func (w *SheetsWorker) EnqueueBetsExport(ctx context.Context) error {
	return w.enqueue(SheetTask{Type: TaskBetsExport})
}

// EnqueueBetAppend ставит в очередь дозапись одной ставки. Замена
// ставки тем же пользователем придет отдельной строкой; полная
// перевыгрузка схлопывает дубли.
func (w *SheetsWorker) EnqueueBetAppend(ctx context.Context, userID, matchID int64) error {
	return w.enqueue(SheetTask{Type: TaskBetAppend, UserID: userID, MatchID: matchID})
}

func (w *SheetsWorker) enqueue(task SheetTask) error {
	task.CreatedAt = time.Now()
	select {
	case w.queue <- task:
		return nil
	default:
		w.logger.Warn().Str("task_type", task.Type).Msg("sheets worker queue full, task dropped")
		return errors.New("sheets queue full")
	}
}

// Start блокирует до отмены контекста.
func (w *SheetsWorker) Start(ctx context.Context) {
	w.logger.Info().Msg("sheets worker started")
	defer w.logger.Info().Msg("sheets worker stopped")

	for {
		select {
		case <-ctx.Done():
			return
		case task := <-w.queue:
			w.processTask(ctx, task)
		}
	}
}

func (w *SheetsWorker) processTask(ctx context.Context, task SheetTask) {
	err := w.handleTask(ctx, task)
	if err == nil {
		return
	}

	task.Attempt++
	if task.Attempt >= w.retryPolicy.MaxRetries {
		w.logger.Error().Err(err).
			Str("task_type", task.Type).
			Int("attempts", task.Attempt).
			Msg("sheets task dropped after retries")
		return
	}

	delay := w.retryPolicy.NextDelay(task.Attempt)
	w.logger.Warn().Err(err).
		Str("task_type", task.Type).
		Int("attempt", task.Attempt).
		Dur("retry_in", delay).
		Msg("sheets task failed, will retry")

	// Ожидание в том же цикле: задач мало, порядок важнее пропускной
	// способности
	select {
	case <-ctx.Done():
		return
	case <-time.After(delay):
	}
	w.processTask(ctx, task)
}

func (w *SheetsWorker) handleTask(ctx context.Context, task SheetTask) error {
	switch task.Type {
	case TaskUsersExport:
		users, err := w.repo.GetAllUsers(ctx)
		if err != nil {
			return fmt.Errorf("load users: %w", err)
		}
		return w.sheets.ReplaceUsersSheet(ctx, users)

	case TaskBetsExport:
		users, err := w.repo.GetAllUsers(ctx)
		if err != nil {
			return fmt.Errorf("load users: %w", err)
		}
		var all []*models.BetWithMatch
		for _, u := range users {
			bets, err := w.repo.BetsForUser(ctx, u.TelegramID)
			if err != nil {
				return fmt.Errorf("load bets for %d: %w", u.TelegramID, err)
			}
			all = append(all, bets...)
		}
		return w.sheets.ReplaceBetsSheet(ctx, all)

	case TaskBetAppend:
		bets, err := w.repo.BetsForUser(ctx, task.UserID)
		if err != nil {
			return fmt.Errorf("load bets for %d: %w", task.UserID, err)
		}
		for _, b := range bets {
			if b.Bet.MatchID == task.MatchID {
				return w.sheets.AppendBet(ctx, b)
			}
		}
		// Ставка уже удалена, дозаписывать нечего
		return nil

	default:
		return fmt.Errorf("unknown task type: %s", task.Type)
	}
}
