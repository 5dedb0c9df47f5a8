package google

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"totobot/internal/models"

	"golang.org/x/oauth2/google"
	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"
)

const (
	usersSheetRange = "Users!A1"
	betsSheetRange  = "Bets!A1"
	betsAppendRange = "Bets!A:A"
	timestampFormat = "2006-01-02 15:04:05"
)

// SheetsService зеркалит пользователей и ставки в две Google-таблицы.
// Источник истины — SQLite, лист можно в любой момент перезаписать
// целиком из админки.
type SheetsService struct {
	service      *sheets.Service
	usersSheetID string
	betsSheetID  string
}

func NewSheetsService(credentialsFile, usersSheetID, betsSheetID string) (*SheetsService, error) {
	ctx := context.Background()

	credentialsJSON, err := os.ReadFile(credentialsFile)
	if err != nil {
		return nil, fmt.Errorf("unable to read credentials file: %v", err)
	}

	config, err := google.JWTConfigFromJSON(credentialsJSON, sheets.SpreadsheetsScope)
	if err != nil {
		return nil, fmt.Errorf("unable to parse credentials: %v", err)
	}

	srv, err := sheets.NewService(ctx, option.WithHTTPClient(config.Client(ctx)))
	if err != nil {
		return nil, fmt.Errorf("unable to create Sheets service: %v", err)
	}

	return &SheetsService{
		service:      srv,
		usersSheetID: usersSheetID,
		betsSheetID:  betsSheetID,
	}, nil
}

// TestConnection проверяет доступ к таблице пользователей.
func (s *SheetsService) TestConnection(ctx context.Context) error {
	_, err := s.service.Spreadsheets.Values.Get(s.usersSheetID, usersSheetRange).Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("connection test failed: %v", err)
	}
	return nil
}

// GetServiceAccountEmail возвращает email сервисного аккаунта, чтобы
// показать админу, кому выдать доступ к таблице.
func (s *SheetsService) GetServiceAccountEmail(credentialsFile string) (string, error) {
	file, err := os.ReadFile(credentialsFile)
	if err != nil {
		return "", err
	}

	var creds struct {
		ClientEmail string `json:"client_email"`
	}
	if err := json.Unmarshal(file, &creds); err != nil {
		return "", err
	}
	return creds.ClientEmail, nil
}

// ReplaceUsersSheet полностью перезаписывает лист Users.
func (s *SheetsService) ReplaceUsersSheet(ctx context.Context, users []*models.User) error {
	values := [][]interface{}{
		{"ID", "Telegram ID", "Login", "Full Name", "Email", "Phone", "Banned", "Registered At", "Last Login At"},
	}

	for _, user := range users {
		lastLogin := ""
		if !user.LastLoginAt.IsZero() {
			lastLogin = user.LastLoginAt.Format(timestampFormat)
		}
		values = append(values, []interface{}{
			user.ID,
			user.TelegramID,
			user.Login,
			user.FullName,
			user.Email,
			user.Phone,
			user.IsBanned,
			user.RegisteredAt.Format(timestampFormat),
			lastLogin,
		})
	}

	return s.replaceSheet(ctx, s.usersSheetID, "Users", 'I', values)
}

// ReplaceBetsSheet полностью перезаписывает лист Bets.
func (s *SheetsService) ReplaceBetsSheet(ctx context.Context, bets []*models.BetWithMatch) error {
	values := [][]interface{}{
		{"User ID", "Tournament", "Match", "Date", "Time", "Score", "Placed At"},
	}
	for _, b := range bets {
		values = append(values, betRowValues(b))
	}
	return s.replaceSheet(ctx, s.betsSheetID, "Bets", 'G', values)
}

// AppendBet дописывает одну ставку в конец листа Bets.
func (s *SheetsService) AppendBet(ctx context.Context, bet *models.BetWithMatch) error {
	valueRange := &sheets.ValueRange{
		Values: [][]interface{}{betRowValues(bet)},
	}

	_, err := s.service.Spreadsheets.Values.Append(s.betsSheetID, betsAppendRange, valueRange).
		ValueInputOption("RAW").
		InsertDataOption("INSERT_ROWS").
		Context(ctx).
		Do()
	return err
}

func (s *SheetsService) replaceSheet(ctx context.Context, sheetID, sheetName string, lastColumn rune, values [][]interface{}) error {
	clearRange := fmt.Sprintf("%s!A:%c", sheetName, lastColumn)
	if _, err := s.service.Spreadsheets.Values.Clear(sheetID, clearRange, &sheets.ClearValuesRequest{}).Context(ctx).Do(); err != nil {
		return fmt.Errorf("clear %s: %v", sheetName, err)
	}

	rangeData := fmt.Sprintf("%s!A1:%c%d", sheetName, lastColumn, len(values))
	_, err := s.service.Spreadsheets.Values.Update(sheetID, rangeData, &sheets.ValueRange{Values: values}).
		ValueInputOption("RAW").
		Context(ctx).
		Do()
	return err
}

func betRowValues(b *models.BetWithMatch) []interface{} {
	return []interface{}{
		b.Bet.UserID,
		b.TournamentName,
		b.Match.Title(),
		b.Match.Date,
		b.Match.Time,
		b.Bet.Score,
		b.Bet.PlacedAt.Format(timestampFormat),
	}
}
