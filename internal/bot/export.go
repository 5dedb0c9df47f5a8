package bot

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"totobot/internal/models"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/xuri/excelize/v2"
)

func (b *Bot) handleExportUsers(ctx context.Context, chatID int64) {
	users, err := b.authService.ListUsers(ctx)
	if err != nil {
		b.sendMessage(chatID, b.getErrorMessage(err))
		return
	}

	filePath, err := b.exportUsersToExcel(ctx, users)
	if err != nil {
		b.logger.Error().Err(err).Msg("Users export failed")
		b.sendMessage(chatID, "❌ Не удалось сформировать файл выгрузки.")
		return
	}

	b.sendDocument(chatID, filePath, fmt.Sprintf("👥 Пользователи: %d", len(users)))
}

func (b *Bot) handleExportBets(ctx context.Context, chatID int64) {
	users, err := b.authService.ListUsers(ctx)
	if err != nil {
		b.sendMessage(chatID, b.getErrorMessage(err))
		return
	}

	type userBets struct {
		user *models.User
		bets []*models.BetWithMatch
	}
	all := make([]userBets, 0, len(users))
	total := 0
	for _, u := range users {
		bets, err := b.bettingService.UserBets(ctx, u.TelegramID)
		if err != nil {
			b.logger.Error().Err(err).Int64("user_id", u.TelegramID).Msg("Failed to load bets for export")
			continue
		}
		if len(bets) == 0 {
			continue
		}
		all = append(all, userBets{user: u, bets: bets})
		total += len(bets)
	}

	f := excelize.NewFile()
	defer f.Close()

	const sheetName = "Ставки"
	index, err := f.NewSheet(sheetName)
	if err != nil {
		b.logger.Error().Err(err).Msg("Bets export failed")
		b.sendMessage(chatID, "❌ Не удалось сформировать файл выгрузки.")
		return
	}
	f.SetActiveSheet(index)

	headers := []string{"Логин", "ФИО", "Турнир", "Матч", "Дата", "Время", "Прогноз", "Результат"}
	for i, header := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		_ = f.SetCellValue(sheetName, cell, header)
	}

	row := 2
	for _, ub := range all {
		for _, bet := range ub.bets {
			values := []interface{}{
				ub.user.Login,
				ub.user.FullName,
				bet.TournamentName,
				bet.Match.Title(),
				bet.Match.Date,
				bet.Match.Time,
				bet.Bet.Score,
				bet.Match.Result,
			}
			for i, v := range values {
				cell, _ := excelize.CoordinatesToCellName(i+1, row)
				_ = f.SetCellValue(sheetName, cell, v)
			}
			row++
		}
	}

	_ = f.SetColWidth(sheetName, "A", "B", 20)
	_ = f.SetColWidth(sheetName, "C", "D", 30)
	_ = f.SetColWidth(sheetName, "E", "H", 12)
	_ = f.DeleteSheet("Sheet1")

	filePath, err := b.saveExport(f, fmt.Sprintf("bets_export_%s.xlsx", time.Now().Format("2006-01-02_15-04-05")))
	if err != nil {
		b.logger.Error().Err(err).Msg("Bets export failed")
		b.sendMessage(chatID, "❌ Не удалось сформировать файл выгрузки.")
		return
	}

	b.sendDocument(chatID, filePath, fmt.Sprintf("📋 Ставок: %d", total))
}

// exportUsersToExcel создает Excel файл с данными пользователей
func (b *Bot) exportUsersToExcel(_ context.Context, users []*models.User) (string, error) {
	f := excelize.NewFile()
	defer f.Close()

	const sheetName = "Пользователи"
	index, err := f.NewSheet(sheetName)
	if err != nil {
		return "", fmt.Errorf("error creating sheet: %v", err)
	}
	f.SetActiveSheet(index)

	headers := []string{
		"Telegram ID", "Логин", "ФИО", "Телефон", "Email",
		"Заблокирован", "Дата регистрации", "Последний вход",
	}
	for i, header := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		_ = f.SetCellValue(sheetName, cell, header)
	}

	for i, user := range users {
		row := i + 2
		lastLogin := ""
		if !user.LastLoginAt.IsZero() {
			lastLogin = user.LastLoginAt.Format("02.01.2006 15:04")
		}
		values := []interface{}{
			user.TelegramID,
			user.Login,
			user.FullName,
			user.Phone,
			user.Email,
			boolToYesNo(user.IsBanned),
			user.RegisteredAt.Format("02.01.2006 15:04"),
			lastLogin,
		}
		for j, v := range values {
			cell, _ := excelize.CoordinatesToCellName(j+1, row)
			_ = f.SetCellValue(sheetName, cell, v)
		}
	}

	_ = f.SetColWidth(sheetName, "A", "A", 15)
	_ = f.SetColWidth(sheetName, "B", "E", 20)
	_ = f.SetColWidth(sheetName, "F", "F", 14)
	_ = f.SetColWidth(sheetName, "G", "H", 20)
	_ = f.DeleteSheet("Sheet1")

	return b.saveExport(f, fmt.Sprintf("users_export_%s.xlsx", time.Now().Format("2006-01-02_15-04-05")))
}

func (b *Bot) saveExport(f *excelize.File, fileName string) (string, error) {
	if err := os.MkdirAll(b.config.Exports.Path, 0o755); err != nil {
		return "", fmt.Errorf("error creating export directory: %v", err)
	}

	filePath := filepath.Join(b.config.Exports.Path, fileName)
	if err := f.SaveAs(filePath); err != nil {
		return "", fmt.Errorf("error saving file: %v", err)
	}

	b.logger.Info().Str("file_path", filePath).Msg("Excel file created")
	return filePath, nil
}

func (b *Bot) sendDocument(chatID int64, filePath, caption string) {
	doc := tgbotapi.NewDocument(chatID, tgbotapi.FilePath(filePath))
	doc.Caption = caption
	if _, err := b.tgService.Send(doc); err != nil {
		b.logger.Error().Err(err).Str("file_path", filePath).Msg("Failed to send document")
	}
}

// boolToYesNo преобразует bool в "Да"/"Нет"
func boolToYesNo(b bool) string {
	if b {
		return "Да"
	}
	return "Нет"
}
