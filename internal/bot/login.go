package bot

import (
	"context"
	"strings"

	"totobot/internal/models"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// startLogin запускает вход: идентификатор (логин, email или телефон),
// затем пароль.
func (b *Bot) startLogin(ctx context.Context, userID, chatID int64) {
	b.setUserState(ctx, userID, models.StepLoginIdentifier, nil)
	b.sendWithInlineKeyboard(chatID,
		"🚪 Вход в систему\n\nВведите ваш логин, email или номер телефона:",
		cancelKeyboard())
}

func (b *Bot) handleLoginIdentifier(ctx context.Context, update tgbotapi.Update, state *models.UserState) {
	userID := update.Message.From.ID
	chatID := update.Message.Chat.ID
	identifier := strings.TrimSpace(update.Message.Text)

	if identifier == "" {
		b.sendWithInlineKeyboard(chatID, "❌ Введите логин, email или номер телефона:", cancelKeyboard())
		return
	}

	// Телефон нормализуем так же, как при регистрации
	if ValidatePhone(FormatPhone(identifier)) {
		identifier = FormatPhone(identifier)
	}

	b.updateStateData(ctx, userID, "identifier", identifier)
	b.setUserStep(ctx, userID, state, models.StepLoginPassword)
	b.sendWithInlineKeyboard(chatID, "🔐 Введите ваш пароль:", cancelKeyboard())
}

func (b *Bot) handleLoginPassword(ctx context.Context, update tgbotapi.Update, state *models.UserState) {
	userID := update.Message.From.ID
	chatID := update.Message.Chat.ID
	password := strings.TrimSpace(update.Message.Text)

	state = b.getUserState(ctx, userID)
	if state == nil {
		b.showStartScreen(chatID)
		return
	}
	identifier := state.GetString("identifier")

	user, err := b.authService.VerifyCredentials(ctx, identifier, password)
	if err != nil {
		b.sendWithInlineKeyboard(chatID, b.getErrorMessage(err), cancelKeyboard())
		return
	}

	b.clearUserState(ctx, userID)
	b.sendMessage(chatID, "✅ Вход выполнен. С возвращением, "+user.FullName+"!")
	b.showMainMenu(chatID)
}
