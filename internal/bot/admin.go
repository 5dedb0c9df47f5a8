package bot

import (
	"context"
	"fmt"
	"strings"

	"totobot/internal/models"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

func (b *Bot) showAdminMenu(ctx context.Context, chatID int64) {
	b.sendWithInlineKeyboard(chatID, "🛠 Панель администратора", adminMainKeyboard())
}

// handleAdminCallback обрабатывает админские коллбеки; возвращает
// false, если data не админская.
func (b *Bot) handleAdminCallback(ctx context.Context, userID, chatID int64, data string) bool {
	switch data {
	case cbAdminMain:
		b.clearUserState(ctx, userID)
		b.showAdminMenu(ctx, chatID)
		return true
	case cbAdminTournaments:
		b.showAdminTournaments(ctx, chatID)
		return true
	case cbAdminUsers:
		b.showAdminUsers(ctx, chatID)
		return true
	case cbAdminStats:
		b.showAdminStats(ctx, chatID)
		return true
	case cbAdminFindUser:
		b.setUserState(ctx, userID, models.StepAdminFindUser, nil)
		b.sendWithInlineKeyboard(chatID,
			"🔍 Введите Telegram ID, логин, email или телефон пользователя:",
			backKeyboard(cbAdminMain))
		return true
	case cbAddTournament:
		b.setUserState(ctx, userID, models.StepAdminTournamentName, nil)
		b.sendWithInlineKeyboard(chatID, "🏆 Введите название турнира:", backKeyboard(cbAdminMain))
		return true
	case cbExportUsersXLSX:
		b.handleExportUsers(ctx, chatID)
		return true
	case cbExportBetsXLSX:
		b.handleExportBets(ctx, chatID)
		return true
	case cbSheetsUsers:
		b.enqueueSheetsExport(ctx, chatID, true)
		return true
	case cbSheetsBets:
		b.enqueueSheetsExport(ctx, chatID, false)
		return true
	}

	if id, ok := parseCallbackID(data, "tournament_matches_"); ok {
		b.showAdminMatches(ctx, chatID, id)
		return true
	}
	if id, ok := parseCallbackID(data, "tournament_"); ok {
		b.showAdminTournament(ctx, chatID, id)
		return true
	}
	if id, ok := parseCallbackID(data, "edit_tournament_"); ok {
		b.setUserState(ctx, userID, models.StepAdminTournamentName, map[string]interface{}{"tournament_id": id})
		b.sendWithInlineKeyboard(chatID, "✏️ Введите новое название турнира:", backKeyboard(cbAdminTournaments))
		return true
	}
	if id, ok := parseCallbackID(data, "activate_tournament_"); ok {
		b.setTournamentActive(ctx, chatID, id, true)
		return true
	}
	if id, ok := parseCallbackID(data, "deactivate_tournament_"); ok {
		b.setTournamentActive(ctx, chatID, id, false)
		return true
	}
	if id, ok := parseCallbackID(data, "delete_tournament_"); ok {
		// Удаление мягкое: турнир скрывается, ставки остаются
		b.setTournamentActive(ctx, chatID, id, false)
		return true
	}
	if id, ok := parseCallbackID(data, "add_match_"); ok {
		b.setUserState(ctx, userID, models.StepAdminMatchDate, map[string]interface{}{"tournament_id": id})
		b.sendWithInlineKeyboard(chatID, "📅 Введите дату матча (дд.мм.гггг):", backKeyboard(cbAdminTournaments))
		return true
	}
	if id, ok := parseCallbackID(data, "admin_match_"); ok {
		b.showAdminMatch(ctx, chatID, id)
		return true
	}
	if id, ok := parseCallbackID(data, "delete_match_"); ok {
		b.handleDeleteMatch(ctx, chatID, id)
		return true
	}
	if id, ok := parseCallbackID(data, "set_result_"); ok {
		b.setUserState(ctx, userID, models.StepAdminMatchResult, map[string]interface{}{"match_id": id})
		b.sendWithInlineKeyboard(chatID, "🏁 Введите итоговый счет матча (X-Y):", backKeyboard(cbAdminTournaments))
		return true
	}
	if id, ok := parseCallbackID(data, "match_bets_"); ok {
		b.showMatchBets(ctx, chatID, id)
		return true
	}
	if id, ok := parseCallbackID(data, "ban_"); ok {
		b.handleSetBanned(ctx, chatID, id, true)
		return true
	}
	if id, ok := parseCallbackID(data, "unban_"); ok {
		b.handleSetBanned(ctx, chatID, id, false)
		return true
	}

	return false
}

// handleAdminStep обрабатывает текстовые шаги админских форм.
func (b *Bot) handleAdminStep(ctx context.Context, update tgbotapi.Update, state *models.UserState) {
	userID := update.Message.From.ID
	chatID := update.Message.Chat.ID
	text := strings.TrimSpace(update.Message.Text)

	if !b.isAdmin(userID) {
		b.clearUserState(ctx, userID)
		return
	}

	switch state.Step {
	case models.StepAdminTournamentName:
		if text == "" {
			b.sendMessage(chatID, "❌ Название не может быть пустым. Попробуйте еще раз:")
			return
		}
		b.updateStateData(ctx, userID, "name", text)
		b.setUserStep(ctx, userID, state, models.StepAdminTournamentDescription)
		b.sendMessage(chatID, "📝 Введите описание турнира (или «пропустить»):")

	case models.StepAdminTournamentDescription:
		if !strings.EqualFold(text, skipWord) {
			b.updateStateData(ctx, userID, "description", text)
		}
		b.setUserStep(ctx, userID, state, models.StepAdminTournamentRules)
		b.sendMessage(chatID, "📖 Введите правила турнира (или «пропустить»):")

	case models.StepAdminTournamentRules:
		if !strings.EqualFold(text, skipWord) {
			b.updateStateData(ctx, userID, "rules", text)
		}
		b.finishTournamentForm(ctx, userID, chatID)

	case models.StepAdminMatchDate:
		b.updateStateData(ctx, userID, "date", text)
		b.setUserStep(ctx, userID, state, models.StepAdminMatchTime)
		b.sendMessage(chatID, "🕐 Введите время матча (чч:мм):")

	case models.StepAdminMatchTime:
		b.updateStateData(ctx, userID, "time", text)
		b.setUserStep(ctx, userID, state, models.StepAdminMatchTeam1)
		b.sendMessage(chatID, "⚽ Введите название первой команды:")

	case models.StepAdminMatchTeam1:
		b.updateStateData(ctx, userID, "team1", text)
		b.setUserStep(ctx, userID, state, models.StepAdminMatchTeam2)
		b.sendMessage(chatID, "⚽ Введите название второй команды:")

	case models.StepAdminMatchTeam2:
		b.updateStateData(ctx, userID, "team2", text)
		b.finishMatchForm(ctx, userID, chatID)

	case models.StepAdminMatchResult:
		b.finishMatchResult(ctx, userID, chatID, text, state)

	case models.StepAdminFindUser:
		b.finishFindUser(ctx, userID, chatID, text)
	}
}

func (b *Bot) finishTournamentForm(ctx context.Context, userID, chatID int64) {
	state := b.getUserState(ctx, userID)
	if state == nil {
		b.showAdminMenu(ctx, chatID)
		return
	}

	name := state.GetString("name")
	description := state.GetString("description")
	rules := state.GetString("rules")
	editID := state.GetInt64("tournament_id")

	b.clearUserState(ctx, userID)

	if editID != 0 {
		if err := b.catalogService.UpdateTournament(ctx, editID, name, description, rules); err != nil {
			b.sendMessage(chatID, b.getErrorMessage(err))
			return
		}
		b.sendWithInlineKeyboard(chatID, "✅ Турнир обновлен.", backKeyboard(cbAdminTournaments))
		return
	}

	tournament, err := b.catalogService.CreateTournament(ctx, name, description, rules, userID)
	if err != nil {
		b.sendMessage(chatID, b.getErrorMessage(err))
		return
	}
	b.sendWithInlineKeyboard(chatID,
		fmt.Sprintf("✅ Турнир «%s» создан.", tournament.Name),
		backKeyboard(cbAdminTournaments))
}

func (b *Bot) finishMatchForm(ctx context.Context, userID, chatID int64) {
	state := b.getUserState(ctx, userID)
	if state == nil {
		b.showAdminMenu(ctx, chatID)
		return
	}

	tournamentID := state.GetInt64("tournament_id")
	date := state.GetString("date")
	matchTime := state.GetString("time")
	team1 := state.GetString("team1")
	team2 := state.GetString("team2")

	match, err := b.catalogService.CreateMatch(ctx, tournamentID, date, matchTime, team1, team2, userID)
	if err != nil {
		// Ошибка формата: возвращаем на первый шаг формы
		b.setUserState(ctx, userID, models.StepAdminMatchDate, map[string]interface{}{"tournament_id": tournamentID})
		b.sendMessage(chatID, b.getErrorMessage(err)+"\n\n📅 Введите дату матча (дд.мм.гггг):")
		return
	}

	b.clearUserState(ctx, userID)
	b.sendWithInlineKeyboard(chatID,
		fmt.Sprintf("✅ Матч «%s» добавлен на %s %s.", match.Title(), match.Date, match.Time),
		backKeyboard(fmt.Sprintf(cbfAdminMatches, tournamentID)))
}

func (b *Bot) finishMatchResult(ctx context.Context, userID, chatID int64, text string, state *models.UserState) {
	matchID := state.GetInt64("match_id")
	if matchID == 0 {
		b.clearUserState(ctx, userID)
		b.showAdminMenu(ctx, chatID)
		return
	}

	if !ValidateScore(text, b.config.Bot.MaxScore) {
		b.sendMessage(chatID, "❌ Неверный формат счета. Введите X-Y, например 2-1:")
		return
	}

	if err := b.catalogService.SetMatchResult(ctx, matchID, text); err != nil {
		b.sendMessage(chatID, b.getErrorMessage(err))
		return
	}

	b.clearUserState(ctx, userID)
	if b.sheetsWorker != nil {
		if err := b.sheetsWorker.EnqueueBetsExport(ctx); err != nil {
			b.logger.Error().Err(err).Msg("Failed to enqueue bets export")
		}
	}
	b.sendWithInlineKeyboard(chatID,
		fmt.Sprintf("🏁 Результат %s сохранен, матч завершен.", text),
		backKeyboard(cbAdminTournaments))
}

func (b *Bot) finishFindUser(ctx context.Context, userID, chatID int64, text string) {
	user, err := b.authService.FindUser(ctx, text)
	if err != nil {
		b.sendWithInlineKeyboard(chatID,
			"❌ Пользователь не найден. Проверьте данные и попробуйте еще раз:",
			backKeyboard(cbAdminMain))
		return
	}

	b.clearUserState(ctx, userID)
	b.sendWithInlineKeyboard(chatID, formatUserCard(user), adminUserKeyboard(user))
}

func (b *Bot) showAdminTournaments(ctx context.Context, chatID int64) {
	tournaments, err := b.catalogService.AllTournaments(ctx)
	if err != nil {
		b.sendMessage(chatID, b.getErrorMessage(err))
		return
	}
	b.sendWithInlineKeyboard(chatID, "🏆 Турниры (✅ активные, ❌ скрытые):", adminTournamentsKeyboard(tournaments))
}

func (b *Bot) showAdminTournament(ctx context.Context, chatID, tournamentID int64) {
	t, err := b.catalogService.GetTournament(ctx, tournamentID)
	if err != nil {
		b.sendMessage(chatID, b.getErrorMessage(err))
		return
	}

	count, _ := b.bettingService.ParticipantCount(ctx, tournamentID)

	var sb strings.Builder
	sb.WriteString("🏆 " + t.Name + "\n")
	if t.Description != "" {
		sb.WriteString("📝 " + t.Description + "\n")
	}
	if t.Rules != "" {
		sb.WriteString("📖 " + t.Rules + "\n")
	}
	sb.WriteString(fmt.Sprintf("👥 Участников: %d\n", count))
	if !t.IsActive {
		sb.WriteString("❌ Турнир скрыт\n")
	}

	b.sendWithInlineKeyboard(chatID, sb.String(), adminTournamentDetailKeyboard(t))
}

func (b *Bot) setTournamentActive(ctx context.Context, chatID, tournamentID int64, active bool) {
	if err := b.catalogService.SetTournamentActive(ctx, tournamentID, active); err != nil {
		b.sendMessage(chatID, b.getErrorMessage(err))
		return
	}
	text := "✅ Турнир активирован."
	if !active {
		text = "❌ Турнир скрыт. Ставки и матчи сохранены."
	}
	b.sendWithInlineKeyboard(chatID, text, backKeyboard(cbAdminTournaments))
}

func (b *Bot) showAdminMatches(ctx context.Context, chatID, tournamentID int64) {
	matches, err := b.catalogService.Matches(ctx, tournamentID)
	if err != nil {
		b.sendMessage(chatID, b.getErrorMessage(err))
		return
	}
	b.sendWithInlineKeyboard(chatID, "⚽ Матчи турнира:", adminMatchesKeyboard(tournamentID, matches))
}

func (b *Bot) showAdminMatch(ctx context.Context, chatID, matchID int64) {
	m, err := b.catalogService.GetMatch(ctx, matchID)
	if err != nil {
		b.sendMessage(chatID, b.getErrorMessage(err))
		return
	}

	text := formatMatchLine(m)
	if m.Status == models.StatusCompleted && m.Result == "" {
		text += "\n🏁 Матч завершен, результат не введен"
	}

	b.sendWithInlineKeyboard(chatID, text, adminMatchDetailKeyboard(m))
}

func (b *Bot) handleDeleteMatch(ctx context.Context, chatID, matchID int64) {
	m, err := b.catalogService.GetMatch(ctx, matchID)
	if err != nil {
		b.sendMessage(chatID, b.getErrorMessage(err))
		return
	}

	if err := b.catalogService.DeleteMatch(ctx, matchID); err != nil {
		b.sendMessage(chatID, b.getErrorMessage(err))
		return
	}
	b.sendWithInlineKeyboard(chatID,
		"🗑 Матч удален вместе со ставками на него.",
		backKeyboard(fmt.Sprintf(cbfAdminMatches, m.TournamentID)))
}

func (b *Bot) showMatchBets(ctx context.Context, chatID, matchID int64) {
	bets, err := b.bettingService.MatchBets(ctx, matchID)
	if err != nil {
		b.sendMessage(chatID, b.getErrorMessage(err))
		return
	}

	if len(bets) == 0 {
		b.sendWithInlineKeyboard(chatID, "📊 Ставок на этот матч пока нет.", backKeyboard(cbAdminTournaments))
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("📊 Ставки на матч (%d):\n\n", len(bets)))
	for _, bet := range bets {
		sb.WriteString(fmt.Sprintf("👤 %s (%s): %s\n", bet.Name, bet.Login, bet.Bet.Score))
	}

	counts, err := b.bettingService.ScorePopularity(ctx, matchID)
	if err == nil && len(counts) > 0 {
		sb.WriteString("\n📈 Популярность прогнозов:\n")
		for _, c := range counts {
			sb.WriteString(fmt.Sprintf("%s — %d\n", c.Score, c.Count))
		}
	}

	b.sendWithInlineKeyboard(chatID, sb.String(), backKeyboard(cbAdminTournaments))
}

func (b *Bot) showAdminUsers(ctx context.Context, chatID int64) {
	users, err := b.authService.ListUsers(ctx)
	if err != nil {
		b.sendMessage(chatID, b.getErrorMessage(err))
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("👥 Всего пользователей: %d\n\n", len(users)))

	limit := b.config.Bot.PaginationSize
	for i, u := range users {
		if i >= limit {
			sb.WriteString(fmt.Sprintf("... и еще %d. Полный список — в выгрузке XLSX.\n", len(users)-limit))
			break
		}
		banned := ""
		if u.IsBanned {
			banned = " 🚫"
		}
		sb.WriteString(fmt.Sprintf("• %s (%s)%s\n", u.FullName, u.Login, banned))
	}

	b.sendWithInlineKeyboard(chatID, sb.String(), adminExportsKeyboard())
}

func (b *Bot) showAdminStats(ctx context.Context, chatID int64) {
	stats, err := b.authService.Stats(ctx)
	if err != nil {
		b.sendMessage(chatID, b.getErrorMessage(err))
		return
	}

	text := fmt.Sprintf(
		"📊 Статистика\n\n"+
			"👥 Пользователей: %d\n"+
			"🚫 Заблокировано: %d\n"+
			"🏆 Турниров: %d\n"+
			"🆕 Регистраций сегодня: %d\n"+
			"🚪 Входов сегодня: %d",
		stats.Users, stats.Banned, stats.Tournaments, stats.TodayRegistrations, stats.TodayLogins)

	b.sendWithInlineKeyboard(chatID, text, backKeyboard(cbAdminMain))
}

func (b *Bot) handleSetBanned(ctx context.Context, chatID, telegramID int64, banned bool) {
	if err := b.authService.SetBanned(ctx, telegramID, banned); err != nil {
		b.sendMessage(chatID, b.getErrorMessage(err))
		return
	}

	text := "🚫 Пользователь заблокирован."
	if !banned {
		text = "✅ Пользователь разблокирован."
	}
	b.sendWithInlineKeyboard(chatID, text, backKeyboard(cbAdminMain))
}

func (b *Bot) enqueueSheetsExport(ctx context.Context, chatID int64, users bool) {
	if b.sheetsWorker == nil {
		b.sendMessage(chatID, "⚠️ Выгрузка в Google Sheets не настроена.")
		return
	}

	var err error
	if users {
		err = b.sheetsWorker.EnqueueUsersExport(ctx)
	} else {
		err = b.sheetsWorker.EnqueueBetsExport(ctx)
	}
	if err != nil {
		b.sendMessage(chatID, b.getErrorMessage(err))
		return
	}
	b.sendWithInlineKeyboard(chatID, "📤 Выгрузка в Google Sheets поставлена в очередь.", backKeyboard(cbAdminMain))
}

func formatUserCard(u *models.User) string {
	var sb strings.Builder
	sb.WriteString("👤 " + u.FullName + "\n")
	sb.WriteString("🆔 Telegram ID: " + fmt.Sprint(u.TelegramID) + "\n")
	sb.WriteString("👤 Логин: " + u.Login + "\n")
	sb.WriteString("📱 Телефон: " + u.Phone + "\n")
	if u.Email != "" {
		sb.WriteString("📧 Email: " + u.Email + "\n")
	}
	sb.WriteString("📅 Зарегистрирован: " + u.RegisteredAt.Format("02.01.2006 15:04") + "\n")
	if u.IsBanned {
		sb.WriteString("🚫 Заблокирован\n")
	}
	return sb.String()
}
