package bot

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"totobot/internal/database"
	"totobot/internal/models"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// showTournaments показывает активные турниры для ставок.
func (b *Bot) showTournaments(ctx context.Context, chatID int64) {
	tournaments, err := b.catalogService.ActiveTournaments(ctx)
	if err != nil {
		b.sendMessage(chatID, b.getErrorMessage(err))
		return
	}

	if len(tournaments) == 0 {
		b.sendWithInlineKeyboard(chatID, "🏆 Активных турниров пока нет.", backKeyboard(cbMainMenu))
		return
	}

	b.sendWithInlineKeyboard(chatID, "🏆 Выберите турнир:", tournamentsKeyboard(tournaments))
}

// showTournamentMatches показывает матчи турнира, открытые для ставок
// этого пользователя.
func (b *Bot) showTournamentMatches(ctx context.Context, userID, chatID, tournamentID int64) {
	tournament, err := b.catalogService.GetTournament(ctx, tournamentID)
	if err != nil {
		b.sendMessage(chatID, b.getErrorMessage(err))
		return
	}

	matches, err := b.bettingService.AvailableMatches(ctx, userID, tournamentID)
	if err != nil {
		b.sendMessage(chatID, b.getErrorMessage(err))
		return
	}

	var sb strings.Builder
	sb.WriteString("🏆 " + tournament.Name + "\n")
	if tournament.Description != "" {
		sb.WriteString(tournament.Description + "\n")
	}
	sb.WriteString("\n")

	if len(matches) == 0 {
		sb.WriteString("Доступных для ставок матчей нет: либо ставки уже сделаны, либо матчи начались.")
		b.sendWithInlineKeyboard(chatID, sb.String(), participationKeyboard(tournamentID))
		return
	}

	count, err := b.bettingService.ParticipantCount(ctx, tournamentID)
	if err == nil && count > 0 {
		sb.WriteString(fmt.Sprintf("👥 Участников: %d\n\n", count))
	}
	sb.WriteString("Выберите матч для прогноза:")

	b.sendWithInlineKeyboard(chatID, sb.String(), matchesKeyboard(matches, cbTournaments))
}

// promptBetScore спрашивает счет по выбранному матчу.
func (b *Bot) promptBetScore(ctx context.Context, userID, chatID, matchID int64) {
	match, err := b.catalogService.GetMatch(ctx, matchID)
	if err != nil {
		b.sendMessage(chatID, b.getErrorMessage(err))
		return
	}

	open, err := b.bettingService.IsMatchOpen(ctx, userID, match)
	if err != nil {
		b.sendMessage(chatID, b.getErrorMessage(err))
		return
	}
	if !open {
		b.sendWithInlineKeyboard(chatID,
			"⚠️ Этот матч недоступен для ставки: он начался или прогноз уже сделан.",
			backKeyboard(cbTournaments))
		return
	}

	b.setUserState(ctx, userID, models.StepBetScore, map[string]interface{}{"match_id": matchID})
	b.sendWithInlineKeyboard(chatID,
		formatMatchLine(match)+"\n\n✍️ Введите прогноз счета в формате X-Y, например 2-1:",
		backKeyboard(cbTournaments))
}

func (b *Bot) handleBetScore(ctx context.Context, update tgbotapi.Update, state *models.UserState) {
	userID := update.Message.From.ID
	chatID := update.Message.Chat.ID
	score := strings.TrimSpace(update.Message.Text)

	matchID := state.GetInt64("match_id")
	if matchID == 0 {
		b.clearUserState(ctx, userID)
		b.showTournaments(ctx, chatID)
		return
	}

	bet, err := b.bettingService.PlaceBet(ctx, userID, matchID, score)
	if err != nil {
		// Формат счета можно поправить, не выходя из диалога
		if errors.Is(err, database.ErrInvalidScore) {
			b.sendWithInlineKeyboard(chatID, b.getErrorMessage(err), backKeyboard(cbTournaments))
			return
		}
		b.clearUserState(ctx, userID)
		b.sendWithInlineKeyboard(chatID, b.getErrorMessage(err), backKeyboard(cbTournaments))
		return
	}

	b.clearUserState(ctx, userID)

	if b.metrics != nil {
		if match, merr := b.catalogService.GetMatch(ctx, matchID); merr == nil {
			if t, terr := b.catalogService.GetTournament(ctx, match.TournamentID); terr == nil {
				b.metrics.BetsPlaced.WithLabelValues(t.Name).Inc()
			}
		}
	}
	if b.sheetsWorker != nil {
		if err := b.sheetsWorker.EnqueueBetAppend(ctx, userID, matchID); err != nil {
			b.logger.Error().Err(err).Msg("Failed to enqueue bet append")
		}
	}

	b.sendWithInlineKeyboard(chatID,
		fmt.Sprintf("✅ Прогноз %s принят!", bet.Score),
		backKeyboard(cbTournaments))
}

// showMyBets показывает ставки пользователя, свежие сверху. Каждая
// ставка — кнопка, ведущая на экран ставки с действиями.
func (b *Bot) showMyBets(ctx context.Context, userID, chatID int64) {
	bets, err := b.bettingService.UserBets(ctx, userID)
	if err != nil {
		b.sendMessage(chatID, b.getErrorMessage(err))
		return
	}

	if len(bets) == 0 {
		b.sendWithInlineKeyboard(chatID, "📋 У вас пока нет ставок.", backKeyboard(cbProfile))
		return
	}

	b.sendWithInlineKeyboard(chatID,
		fmt.Sprintf("📋 Ваши ставки (%d). Выберите ставку:", len(bets)),
		myBetsKeyboard(bets))
}

// showBetDetails показывает одну ставку с кнопками изменить/удалить.
func (b *Bot) showBetDetails(ctx context.Context, userID, chatID, matchID int64) {
	bets, err := b.bettingService.UserBets(ctx, userID)
	if err != nil {
		b.sendMessage(chatID, b.getErrorMessage(err))
		return
	}

	for _, bet := range bets {
		if bet.Bet.MatchID != matchID {
			continue
		}

		var sb strings.Builder
		sb.WriteString(fmt.Sprintf("🏆 %s\n⚽ %s\n📅 %s %s\n✍️ Прогноз: %s\n",
			bet.TournamentName, bet.Match.Title(), bet.Match.Date, bet.Match.Time, bet.Bet.Score))
		if bet.Match.Result != "" {
			sb.WriteString("🏁 Результат: " + bet.Match.Result + "\n")
		}

		open := bet.Match.IsActive && bet.Match.Status == models.StatusScheduled
		b.sendWithInlineKeyboard(chatID, sb.String(), betDetailKeyboard(matchID, open))
		return
	}

	b.sendWithInlineKeyboard(chatID, "❌ Ставка не найдена.", backKeyboard(cbMyBets))
}

// promptRebetScore запрашивает новый счет по матчу, на который ставка
// уже сделана. Upsert молча заменит прогноз, истечение окна
// перепроверит PlaceBet.
func (b *Bot) promptRebetScore(ctx context.Context, userID, chatID, matchID int64) {
	match, err := b.catalogService.GetMatch(ctx, matchID)
	if err != nil {
		b.sendMessage(chatID, b.getErrorMessage(err))
		return
	}
	if !match.IsActive || match.Status != models.StatusScheduled {
		b.sendWithInlineKeyboard(chatID,
			"⚠️ Матч уже завершен, прогноз изменить нельзя.",
			backKeyboard(cbMyBets))
		return
	}

	b.setUserState(ctx, userID, models.StepBetScore, map[string]interface{}{"match_id": matchID})
	b.sendWithInlineKeyboard(chatID,
		formatMatchLine(match)+"\n\n✍️ Введите новый прогноз в формате X-Y, например 2-1:",
		backKeyboard(cbMyBets))
}

// handleDeleteBet убирает ставку пользователя на матч.
func (b *Bot) handleDeleteBet(ctx context.Context, userID, chatID, matchID int64) {
	if err := b.bettingService.DeleteBet(ctx, userID, matchID); err != nil {
		b.sendMessage(chatID, b.getErrorMessage(err))
		return
	}
	b.sendWithInlineKeyboard(chatID, "🗑 Ставка удалена. Матч снова доступен для прогноза.", backKeyboard(cbTournaments))
}

// handleParticipation фиксирует решение об участии в турнире.
func (b *Bot) handleParticipation(ctx context.Context, userID, chatID, tournamentID int64, participating bool) {
	if err := b.bettingService.SetParticipation(ctx, userID, tournamentID, participating); err != nil {
		b.sendMessage(chatID, b.getErrorMessage(err))
		return
	}

	text := "✅ Участие в турнире подтверждено!"
	if !participating {
		text = "Хорошо, вы не участвуете в этом турнире."
	}
	b.sendWithInlineKeyboard(chatID, text, backKeyboard(cbTournaments))
}
