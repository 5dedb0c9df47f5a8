package bot

import (
	"context"
	"strings"

	"totobot/internal/models"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/rs/zerolog"
)

func (b *Bot) handleCallbackQuery(ctx context.Context, update tgbotapi.Update) {
	cb := update.CallbackQuery
	userID := cb.From.ID
	chatID := cb.Message.Chat.ID
	data := cb.Data
	l := zerolog.Ctx(ctx)

	l.Debug().Int64("user_id", userID).Str("data", data).Msg("Handling callback")

	// Отказ в правах — видимым алертом, до общего ack
	if isAdminCallbackData(data) && !b.isAdmin(userID) {
		b.answerCallbackText(cb.ID, "⛔ Эта команда доступна только администраторам.")
		return
	}

	b.answerCallback(cb.ID)

	switch data {
	case cbStart:
		b.clearUserState(ctx, userID)
		b.showStartScreen(chatID)
		return
	case cbMainMenu:
		b.clearUserState(ctx, userID)
		b.showMainMenu(chatID)
		return
	case cbLogin:
		b.startLogin(ctx, userID, chatID)
		return
	case cbRegister:
		b.startRegistration(ctx, userID, chatID)
		return
	case cbHelp:
		b.sendMessage(chatID, helpText)
		return
	case cbAbout:
		b.sendMessage(chatID, aboutText)
		return
	case cbNoAction:
		return
	}

	// Дальше только для зарегистрированных
	registered, err := b.authService.IsRegistered(ctx, userID)
	if err != nil {
		b.sendMessage(chatID, b.getErrorMessage(err))
		return
	}
	if !registered {
		b.showStartScreen(chatID)
		return
	}

	switch data {
	case cbProfile:
		b.showProfileMenu(ctx, userID, chatID)
		return
	case cbMyProfile:
		b.showProfile(ctx, userID, chatID)
		return
	case cbMyBets:
		b.showMyBets(ctx, userID, chatID)
		return
	case cbTournaments:
		b.clearUserState(ctx, userID)
		b.showTournaments(ctx, chatID)
		return
	case cbChangeLogin:
		b.startChangeField(ctx, userID, chatID, models.FieldLogin)
		return
	case cbChangeFullName:
		b.startChangeField(ctx, userID, chatID, models.FieldFullName)
		return
	}

	if id, ok := parseCallbackID(data, "user_tournament_"); ok {
		b.showTournamentMatches(ctx, userID, chatID, id)
		return
	}
	if id, ok := parseCallbackID(data, "user_match_"); ok {
		b.promptBetScore(ctx, userID, chatID, id)
		return
	}
	if id, ok := parseCallbackID(data, "my_bet_"); ok {
		b.showBetDetails(ctx, userID, chatID, id)
		return
	}
	if id, ok := parseCallbackID(data, "delete_bet_"); ok {
		b.handleDeleteBet(ctx, userID, chatID, id)
		return
	}
	if id, ok := parseCallbackID(data, "rebet_"); ok {
		b.promptRebetScore(ctx, userID, chatID, id)
		return
	}
	if strings.HasPrefix(data, "participate_") {
		b.handleParticipationCallback(ctx, userID, chatID, data)
		return
	}

	if b.isAdmin(userID) && b.handleAdminCallback(ctx, userID, chatID, data) {
		return
	}

	l.Warn().Str("data", data).Msg("Unknown callback")
}

// handleParticipationCallback разбирает "participate_<id>_yes|no".
func (b *Bot) handleParticipationCallback(ctx context.Context, userID, chatID int64, data string) {
	rest := strings.TrimPrefix(data, "participate_")
	idx := strings.LastIndex(rest, "_")
	if idx <= 0 {
		return
	}

	id, ok := parseID(rest[:idx])
	if !ok {
		return
	}

	answer := rest[idx+1:]
	if answer != "yes" && answer != "no" {
		return
	}
	b.handleParticipation(ctx, userID, chatID, id, answer == "yes")
}
