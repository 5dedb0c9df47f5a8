package worker

import (
	"context"
	"io"
	"sync"
	"testing"
	"time"

	"totobot/internal/models"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingSheets struct {
	mu          sync.Mutex
	usersCalls  int
	betsCalls   int
	appended    []*models.BetWithMatch
	failAppends int
}

func (r *recordingSheets) ReplaceUsersSheet(ctx context.Context, users []*models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.usersCalls++
	return nil
}

func (r *recordingSheets) ReplaceBetsSheet(ctx context.Context, bets []*models.BetWithMatch) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.betsCalls++
	return nil
}

func (r *recordingSheets) AppendBet(ctx context.Context, bet *models.BetWithMatch) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failAppends > 0 {
		r.failAppends--
		return assert.AnError
	}
	r.appended = append(r.appended, bet)
	return nil
}

func (r *recordingSheets) counts() (int, int, int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.usersCalls, r.betsCalls, len(r.appended)
}

func seedBet(t *testing.T, db interface {
	CreateTournament(context.Context, *models.Tournament) error
	CreateMatch(context.Context, *models.Match) error
	CreateUser(context.Context, *models.User) error
	UpsertBet(context.Context, *models.Bet) error
}) (int64, int64) {
	t.Helper()
	ctx := context.Background()

	tournament := &models.Tournament{Name: "Лига", IsActive: true}
	require.NoError(t, db.CreateTournament(ctx, tournament))

	match := &models.Match{
		TournamentID: tournament.ID,
		Date:         "10.06.2025", Time: "18:00",
		Team1: "А", Team2: "Б",
		Status: models.StatusScheduled, IsActive: true,
	}
	require.NoError(t, db.CreateMatch(ctx, match))

	user := &models.User{TelegramID: 100, Login: "ivan", PasswordHash: "h", PasswordSalt: "s", FullName: "Иван"}
	require.NoError(t, db.CreateUser(ctx, user))

	require.NoError(t, db.UpsertBet(ctx, &models.Bet{UserID: 100, MatchID: match.ID, Score: "2-1"}))
	return user.TelegramID, match.ID
}

func TestSheetsWorker(t *testing.T) {
	db := setupTestDB(t)
	userID, matchID := seedBet(t, db)

	sheets := &recordingSheets{}
	logger := zerolog.New(io.Discard)
	w := NewSheetsWorker(db, sheets, RetryPolicy{MaxRetries: 3, InitialDelay: time.Millisecond}, &logger)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	done := make(chan struct{})
	go func() {
		w.Start(ctx)
		close(done)
	}()

	require.NoError(t, w.EnqueueUsersExport(ctx))
	require.NoError(t, w.EnqueueBetsExport(ctx))
	require.NoError(t, w.EnqueueBetAppend(ctx, userID, matchID))

	require.Eventually(t, func() bool {
		u, b, a := sheets.counts()
		return u == 1 && b == 1 && a == 1
	}, 2*time.Second, 10*time.Millisecond)

	cancel()
	<-done
}

func TestSheetsWorkerRetries(t *testing.T) {
	db := setupTestDB(t)
	userID, matchID := seedBet(t, db)

	// Две первые попытки падают, третья проходит
	sheets := &recordingSheets{failAppends: 2}
	logger := zerolog.New(io.Discard)
	w := NewSheetsWorker(db, sheets, RetryPolicy{MaxRetries: 5, InitialDelay: time.Millisecond, MaxDelay: 5 * time.Millisecond}, &logger)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go w.Start(ctx)

	require.NoError(t, w.EnqueueBetAppend(ctx, userID, matchID))

	require.Eventually(t, func() bool {
		_, _, a := sheets.counts()
		return a == 1
	}, 2*time.Second, 10*time.Millisecond)
}

func TestSheetsWorkerAppendMissingBet(t *testing.T) {
	db := setupTestDB(t)
	userID, _ := seedBet(t, db)

	sheets := &recordingSheets{}
	logger := zerolog.New(io.Discard)
	w := NewSheetsWorker(db, sheets, RetryPolicy{MaxRetries: 2, InitialDelay: time.Millisecond}, &logger)

	// Ставки на матч 999 нет: задача завершается без дозаписи
	err := w.handleTask(context.Background(), SheetTask{Type: TaskBetAppend, UserID: userID, MatchID: 999})
	assert.NoError(t, err)
	_, _, a := sheets.counts()
	assert.Zero(t, a)
}
