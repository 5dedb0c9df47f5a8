package google

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"totobot/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBetRowValues(t *testing.T) {
	placed := time.Date(2025, 6, 10, 12, 30, 0, 0, time.UTC)
	bet := &models.BetWithMatch{
		Bet: models.Bet{UserID: 100, Score: "2-1", PlacedAt: placed},
		Match: models.Match{
			Date: "10.06.2025", Time: "18:00",
			Team1: "Спартак", Team2: "Зенит",
		},
		TournamentName: "Лига",
	}

	row := betRowValues(bet)
	assert.Equal(t, []interface{}{
		int64(100), "Лига", "Спартак — Зенит", "10.06.2025", "18:00", "2-1", "2025-06-10 12:30:00",
	}, row)
}

func TestGetServiceAccountEmail(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "creds.json")

	creds := map[string]string{"client_email": "bot@project.iam.gserviceaccount.com"}
	raw, err := json.Marshal(creds)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, raw, 0o600))

	s := &SheetsService{}
	email, err := s.GetServiceAccountEmail(path)
	require.NoError(t, err)
	assert.Equal(t, "bot@project.iam.gserviceaccount.com", email)

	_, err = s.GetServiceAccountEmail(filepath.Join(dir, "missing.json"))
	assert.Error(t, err)
}
