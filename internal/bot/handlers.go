package bot

import (
	"context"
	"strings"

	"totobot/internal/models"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/rs/zerolog"
)

const (
	helpText = "ℹ️ Помощь\n\n" +
		"Это бот футбольного тотализатора.\n\n" +
		"• Зарегистрируйтесь или войдите в аккаунт\n" +
		"• Выберите турнир и матч\n" +
		"• Отправьте прогноз счета в формате X-Y, например 2-1\n" +
		"• Ставку можно изменить до начала матча: новая заменяет старую\n\n" +
		"Команды:\n" +
		"/start — главное меню\n" +
		"/help — эта справка"

	aboutText = "📞 О нас\n\n" +
		"Тотализатор прогнозов на футбольные матчи.\n" +
		"По всем вопросам обращайтесь к администратору."
)

func (b *Bot) handleMessage(ctx context.Context, update tgbotapi.Update) {
	userID := update.Message.From.ID
	chatID := update.Message.Chat.ID
	text := strings.TrimSpace(update.Message.Text)
	l := zerolog.Ctx(ctx)

	l.Debug().
		Int64("user_id", userID).
		Str("username", update.Message.From.UserName).
		Str("text", text).
		Msg("Handling message")

	switch {
	case text == "/start" || strings.EqualFold(text, "сброс") || strings.EqualFold(text, "reset"):
		b.clearUserState(ctx, userID)
		b.handleStart(ctx, update)
		return

	case text == "/help":
		b.sendMessage(chatID, helpText)
		return

	case text == "/admin":
		if b.isAdmin(userID) {
			b.clearUserState(ctx, userID)
			b.showAdminMenu(ctx, chatID)
		}
		return
	}

	state := b.getUserState(ctx, userID)
	if state == nil || state.Step == "" {
		// Вне диалога текст не ожидается: возвращаем в меню
		b.handleStart(ctx, update)
		return
	}

	switch state.Step {
	case models.StepRegPhone:
		b.handleRegPhone(ctx, update, state)
	case models.StepRegLogin:
		if b.tryHandleProfileEdit(ctx, update, state) {
			return
		}
		b.handleRegLogin(ctx, update, state)
	case models.StepRegPassword:
		b.handleRegPassword(ctx, update, state)
	case models.StepRegEmail:
		b.handleRegEmail(ctx, update, state)
	case models.StepRegFullName:
		if b.tryHandleProfileEdit(ctx, update, state) {
			return
		}
		b.handleRegFullName(ctx, update, state)

	case models.StepLoginIdentifier:
		b.handleLoginIdentifier(ctx, update, state)
	case models.StepLoginPassword:
		b.handleLoginPassword(ctx, update, state)

	case models.StepBetScore:
		b.handleBetScore(ctx, update, state)

	case models.StepAdminTournamentName,
		models.StepAdminTournamentDescription,
		models.StepAdminTournamentRules,
		models.StepAdminMatchDate,
		models.StepAdminMatchTime,
		models.StepAdminMatchTeam1,
		models.StepAdminMatchTeam2,
		models.StepAdminMatchResult,
		models.StepAdminFindUser:
		b.handleAdminStep(ctx, update, state)

	default:
		b.clearUserState(ctx, userID)
		b.handleStart(ctx, update)
	}
}

// handleStart показывает стартовый экран гостю и главное меню
// зарегистрированному пользователю.
func (b *Bot) handleStart(ctx context.Context, update tgbotapi.Update) {
	userID := update.Message.From.ID
	chatID := update.Message.Chat.ID

	registered, err := b.authService.IsRegistered(ctx, userID)
	if err != nil {
		b.logger.Error().Err(err).Int64("user_id", userID).Msg("Registration check failed")
		b.sendMessage(chatID, b.getErrorMessage(err))
		return
	}

	if registered {
		b.showMainMenu(chatID)
		return
	}

	b.sendWithInlineKeyboard(chatID,
		"👋 Добро пожаловать в тотализатор!\n\nВойдите в аккаунт или зарегистрируйтесь:",
		startKeyboard())
}

func (b *Bot) showMainMenu(chatID int64) {
	b.sendWithInlineKeyboard(chatID, "🏠 Главное меню", mainMenuKeyboard())
}

func (b *Bot) showStartScreen(chatID int64) {
	b.sendWithInlineKeyboard(chatID,
		"👋 Добро пожаловать в тотализатор!\n\nВойдите в аккаунт или зарегистрируйтесь:",
		startKeyboard())
}
