package bot

import (
	"context"
	"fmt"
	"strings"

	"totobot/internal/models"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

func (b *Bot) showProfileMenu(ctx context.Context, userID, chatID int64) {
	registered, err := b.authService.IsRegistered(ctx, userID)
	if err != nil {
		b.sendMessage(chatID, b.getErrorMessage(err))
		return
	}
	if !registered {
		b.showStartScreen(chatID)
		return
	}

	b.sendWithInlineKeyboard(chatID, "👤 Личный кабинет", profileKeyboard())
}

func (b *Bot) showProfile(ctx context.Context, userID, chatID int64) {
	user, err := b.authService.GetUser(ctx, userID)
	if err != nil {
		b.sendMessage(chatID, b.getErrorMessage(err))
		return
	}

	count, err := b.bettingService.BetCount(ctx, userID)
	if err != nil {
		count = 0
	}

	var sb strings.Builder
	sb.WriteString("📊 Мой профиль\n\n")
	sb.WriteString("👤 Логин: " + user.Login + "\n")
	sb.WriteString("📛 ФИО: " + user.FullName + "\n")
	sb.WriteString("📱 Телефон: " + user.Phone + "\n")
	if user.Email != "" {
		sb.WriteString("📧 Email: " + user.Email + "\n")
	}
	sb.WriteString(fmt.Sprintf("📋 Ставок сделано: %d\n", count))
	sb.WriteString("📅 Зарегистрирован: " + user.RegisteredAt.Format("02.01.2006") + "\n")

	b.sendWithInlineKeyboard(chatID, sb.String(), backKeyboard(cbProfile))
}

// startChangeField запускает смену логина или ФИО. Телефон и email не
// меняются через бота.
func (b *Bot) startChangeField(ctx context.Context, userID, chatID int64, field models.UserField) {
	switch field {
	case models.FieldLogin:
		b.setUserState(ctx, userID, models.StepRegLogin, map[string]interface{}{"edit_field": string(field)})
		b.sendWithInlineKeyboard(chatID, "✏️ Введите новый логин (3-20 символов, латиница, цифры, подчеркивание):", backKeyboard(cbProfile))
	case models.FieldFullName:
		b.setUserState(ctx, userID, models.StepRegFullName, map[string]interface{}{"edit_field": string(field)})
		b.sendWithInlineKeyboard(chatID, "✏️ Введите новое ФИО:", backKeyboard(cbProfile))
	}
}

// tryHandleProfileEdit перехватывает шаги StepRegLogin/StepRegFullName,
// запущенные из личного кабинета, а не из анкеты регистрации.
func (b *Bot) tryHandleProfileEdit(ctx context.Context, update tgbotapi.Update, state *models.UserState) bool {
	if state == nil || state.GetString("edit_field") == "" {
		return false
	}

	userID := update.Message.From.ID
	chatID := update.Message.Chat.ID
	value := strings.TrimSpace(update.Message.Text)
	field := models.UserField(state.GetString("edit_field"))

	switch field {
	case models.FieldLogin:
		if !ValidateLogin(value) {
			b.sendWithInlineKeyboard(chatID, "❌ Неверный формат логина. Попробуйте еще раз:", backKeyboard(cbProfile))
			return true
		}
		free, err := b.authService.IsFieldAvailable(ctx, models.FieldLogin, value, userID)
		if err != nil {
			b.sendMessage(chatID, b.getErrorMessage(err))
			return true
		}
		if !free {
			b.sendWithInlineKeyboard(chatID, "❌ Этот логин уже занят. Попробуйте другой:", backKeyboard(cbProfile))
			return true
		}
	case models.FieldFullName:
		if !ValidateFullName(value) {
			b.sendWithInlineKeyboard(chatID, "❌ Неверный формат ФИО. Попробуйте еще раз:", backKeyboard(cbProfile))
			return true
		}
	default:
		return false
	}

	if err := b.authService.UpdateProfileField(ctx, userID, field, value); err != nil {
		b.sendMessage(chatID, b.getErrorMessage(err))
		return true
	}

	b.clearUserState(ctx, userID)
	if b.sheetsWorker != nil {
		if err := b.sheetsWorker.EnqueueUsersExport(ctx); err != nil {
			b.logger.Error().Err(err).Msg("Failed to enqueue users export")
		}
	}
	b.sendWithInlineKeyboard(chatID, "✅ Данные обновлены.", backKeyboard(cbProfile))
	return true
}
