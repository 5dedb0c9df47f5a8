package bot

import (
	"fmt"
	"strings"

	"totobot/internal/models"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// Callback-данные. Параметризованные коллбеки собираются через fmt.Sprintf
// с этими префиксами и разбираются в callbacks.go.
const (
	cbStart          = "start"
	cbLogin          = "login"
	cbRegister       = "register"
	cbHelp           = "help"
	cbAbout          = "about"
	cbMainMenu       = "main_menu"
	cbProfile        = "profile"
	cbMyProfile      = "my_profile"
	cbMyBets         = "my_bets"
	cbTournaments    = "tournaments"
	cbChangeLogin    = "change_login"
	cbChangeFullName = "change_fullname"
	cbNoAction       = "no_action"

	cbAdminMain        = "admin_main"
	cbAdminTournaments = "admin_tournaments"
	cbAdminUsers       = "admin_users"
	cbAdminStats       = "admin_stats"
	cbAdminFindUser    = "admin_find_user"
	cbAddTournament    = "add_tournament"
	cbExportUsersXLSX  = "export_users_xlsx"
	cbExportBetsXLSX   = "export_bets_xlsx"
	cbSheetsUsers      = "sheets_users"
	cbSheetsBets       = "sheets_bets"

	cbfTournament           = "user_tournament_%d"
	cbfMatch                = "user_match_%d"
	cbfMyBet                = "my_bet_%d"
	cbfDeleteBet            = "delete_bet_%d"
	cbfRebet                = "rebet_%d"
	cbfParticipate          = "participate_%d_%s"
	cbfAdminTournament      = "tournament_%d"
	cbfAdminMatches         = "tournament_matches_%d"
	cbfAdminMatch           = "admin_match_%d"
	cbfAddMatch             = "add_match_%d"
	cbfEditTournament       = "edit_tournament_%d"
	cbfDeleteTournament     = "delete_tournament_%d"
	cbfActivateTournament   = "activate_tournament_%d"
	cbfDeactivateTournament = "deactivate_tournament_%d"
	cbfDeleteMatch          = "delete_match_%d"
	cbfSetResult            = "set_result_%d"
	cbfMatchBets            = "match_bets_%d"
	cbfBanUser              = "ban_%d"
	cbfUnbanUser            = "unban_%d"
)

func startKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("🚪 Вход", cbLogin),
			tgbotapi.NewInlineKeyboardButtonData("📝 Регистрация", cbRegister),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("ℹ️ Помощь", cbHelp),
			tgbotapi.NewInlineKeyboardButtonData("📞 О нас", cbAbout),
		),
	)
}

func mainMenuKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("👤 Личный кабинет", cbProfile),
			tgbotapi.NewInlineKeyboardButtonData("🏆 Турниры", cbTournaments),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("ℹ️ Помощь", cbHelp),
			tgbotapi.NewInlineKeyboardButtonData("📞 О нас", cbAbout),
		),
	)
}

func profileKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("📊 Мой профиль", cbMyProfile),
			tgbotapi.NewInlineKeyboardButtonData("📋 Мои ставки", cbMyBets),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("✏️ Изменить логин", cbChangeLogin),
			tgbotapi.NewInlineKeyboardButtonData("✏️ Изменить ФИО", cbChangeFullName),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("🔙 Назад", cbMainMenu),
		),
	)
}

func phoneKeyboard() tgbotapi.ReplyKeyboardMarkup {
	kb := tgbotapi.NewReplyKeyboard(
		tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButtonContact("📱 Отправить номер телефона"),
		),
	)
	kb.ResizeKeyboard = true
	kb.OneTimeKeyboard = true
	return kb
}

func cancelKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("❌ Отмена", cbStart),
		),
	)
}

func backKeyboard(backData string) tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("🔙 Назад", backData),
		),
	)
}

func tournamentsKeyboard(tournaments []*models.Tournament) tgbotapi.InlineKeyboardMarkup {
	rows := make([][]tgbotapi.InlineKeyboardButton, 0, len(tournaments)+1)
	for _, t := range tournaments {
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("🏆 "+t.Name, fmt.Sprintf(cbfTournament, t.ID)),
		))
	}
	rows = append(rows, tgbotapi.NewInlineKeyboardRow(
		tgbotapi.NewInlineKeyboardButtonData("🔙 Назад", cbMainMenu),
	))
	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}

func matchesKeyboard(matches []*models.Match, backData string) tgbotapi.InlineKeyboardMarkup {
	rows := make([][]tgbotapi.InlineKeyboardButton, 0, len(matches)+1)
	for _, m := range matches {
		text := fmt.Sprintf("📅 %s %s — %s", m.Date, m.Time, m.Title())
		if len([]rune(text)) > 60 {
			text = string([]rune(text)[:57]) + "..."
		}
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(text, fmt.Sprintf(cbfMatch, m.ID)),
		))
	}
	rows = append(rows, tgbotapi.NewInlineKeyboardRow(
		tgbotapi.NewInlineKeyboardButtonData("🔙 Назад", backData),
	))
	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}

func myBetsKeyboard(bets []*models.BetWithMatch) tgbotapi.InlineKeyboardMarkup {
	rows := make([][]tgbotapi.InlineKeyboardButton, 0, len(bets)+1)
	for _, bet := range bets {
		text := fmt.Sprintf("⚽ %s — %s", bet.Match.Title(), bet.Bet.Score)
		if len([]rune(text)) > 60 {
			text = string([]rune(text)[:57]) + "..."
		}
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(text, fmt.Sprintf(cbfMyBet, bet.Bet.MatchID)),
		))
	}
	rows = append(rows, tgbotapi.NewInlineKeyboardRow(
		tgbotapi.NewInlineKeyboardButtonData("🔙 Назад", cbProfile),
	))
	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}

// betDetailKeyboard: менять и удалять прогноз можно только пока матч
// не завершен; истечение окна перепроверит сервис при отправке.
func betDetailKeyboard(matchID int64, open bool) tgbotapi.InlineKeyboardMarkup {
	if !open {
		return backKeyboard(cbMyBets)
	}
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("✏️ Изменить прогноз", fmt.Sprintf(cbfRebet, matchID)),
			tgbotapi.NewInlineKeyboardButtonData("🗑 Удалить ставку", fmt.Sprintf(cbfDeleteBet, matchID)),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("🔙 Назад", cbMyBets),
		),
	)
}

func participationKeyboard(tournamentID int64) tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("✅ Участвую", fmt.Sprintf(cbfParticipate, tournamentID, "yes")),
			tgbotapi.NewInlineKeyboardButtonData("❌ Не участвую", fmt.Sprintf(cbfParticipate, tournamentID, "no")),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("🔙 Назад", cbTournaments),
		),
	)
}

func adminMainKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("🏆 Турниры", cbAdminTournaments),
			tgbotapi.NewInlineKeyboardButtonData("👥 Пользователи", cbAdminUsers),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("📊 Статистика", cbAdminStats),
			tgbotapi.NewInlineKeyboardButtonData("🔍 Найти пользователя", cbAdminFindUser),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("📥 Выгрузка XLSX", cbExportBetsXLSX),
			tgbotapi.NewInlineKeyboardButtonData("📤 Google Sheets", cbSheetsBets),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("🔙 В главное меню", cbMainMenu),
		),
	)
}

func adminTournamentsKeyboard(tournaments []*models.Tournament) tgbotapi.InlineKeyboardMarkup {
	rows := make([][]tgbotapi.InlineKeyboardButton, 0, len(tournaments)+1)
	for _, t := range tournaments {
		status := "✅"
		if !t.IsActive {
			status = "❌"
		}
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(status+" "+t.Name, fmt.Sprintf(cbfAdminTournament, t.ID)),
		))
	}
	rows = append(rows, tgbotapi.NewInlineKeyboardRow(
		tgbotapi.NewInlineKeyboardButtonData("➕ Добавить турнир", cbAddTournament),
		tgbotapi.NewInlineKeyboardButtonData("🔙 Назад в админку", cbAdminMain),
	))
	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}

func adminTournamentDetailKeyboard(t *models.Tournament) tgbotapi.InlineKeyboardMarkup {
	statusText := "❌ Деактивировать"
	statusData := fmt.Sprintf(cbfDeactivateTournament, t.ID)
	if !t.IsActive {
		statusText = "✅ Активировать"
		statusData = fmt.Sprintf(cbfActivateTournament, t.ID)
	}

	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("⚽ Матчи турнира", fmt.Sprintf(cbfAdminMatches, t.ID)),
			tgbotapi.NewInlineKeyboardButtonData("✏️ Редактировать", fmt.Sprintf(cbfEditTournament, t.ID)),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(statusText, statusData),
			tgbotapi.NewInlineKeyboardButtonData("🗑 Удалить турнир", fmt.Sprintf(cbfDeleteTournament, t.ID)),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("🔙 Назад к турнирам", cbAdminTournaments),
		),
	)
}

func adminMatchesKeyboard(tournamentID int64, matches []*models.Match) tgbotapi.InlineKeyboardMarkup {
	rows := make([][]tgbotapi.InlineKeyboardButton, 0, len(matches)+1)
	for _, m := range matches {
		text := fmt.Sprintf("📅 %s %s — %s", m.Date, m.Time, m.Title())
		if m.Status == models.StatusCompleted {
			text = "🏁 " + text
		}
		if len([]rune(text)) > 60 {
			text = string([]rune(text)[:57]) + "..."
		}
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(text, fmt.Sprintf(cbfAdminMatch, m.ID)),
		))
	}
	rows = append(rows, tgbotapi.NewInlineKeyboardRow(
		tgbotapi.NewInlineKeyboardButtonData("➕ Добавить матч", fmt.Sprintf(cbfAddMatch, tournamentID)),
		tgbotapi.NewInlineKeyboardButtonData("🔙 Назад к турниру", fmt.Sprintf(cbfAdminTournament, tournamentID)),
	))
	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}

func adminMatchDetailKeyboard(m *models.Match) tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("🏁 Ввести результат", fmt.Sprintf(cbfSetResult, m.ID)),
			tgbotapi.NewInlineKeyboardButtonData("📊 Ставки на матч", fmt.Sprintf(cbfMatchBets, m.ID)),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("🗑 Удалить матч", fmt.Sprintf(cbfDeleteMatch, m.ID)),
			tgbotapi.NewInlineKeyboardButtonData("🔙 Назад к матчам", fmt.Sprintf(cbfAdminMatches, m.TournamentID)),
		),
	)
}

func adminUserKeyboard(u *models.User) tgbotapi.InlineKeyboardMarkup {
	var action tgbotapi.InlineKeyboardButton
	if u.IsBanned {
		action = tgbotapi.NewInlineKeyboardButtonData("✅ Разблокировать", fmt.Sprintf(cbfUnbanUser, u.TelegramID))
	} else {
		action = tgbotapi.NewInlineKeyboardButtonData("🚫 Заблокировать", fmt.Sprintf(cbfBanUser, u.TelegramID))
	}
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(action),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("🔙 Назад в админку", cbAdminMain),
		),
	)
}

func adminExportsKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("👥 Пользователи XLSX", cbExportUsersXLSX),
			tgbotapi.NewInlineKeyboardButtonData("📋 Ставки XLSX", cbExportBetsXLSX),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("👥 Пользователи → Sheets", cbSheetsUsers),
			tgbotapi.NewInlineKeyboardButtonData("📋 Ставки → Sheets", cbSheetsBets),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("🔙 Назад в админку", cbAdminMain),
		),
	)
}

func removeKeyboard() tgbotapi.ReplyKeyboardRemove {
	return tgbotapi.NewRemoveKeyboard(false)
}

var adminCallbackPrefixes = []string{
	"tournament_",
	"edit_tournament_",
	"activate_tournament_",
	"deactivate_tournament_",
	"delete_tournament_",
	"add_match_",
	"admin_match_",
	"delete_match_",
	"set_result_",
	"match_bets_",
	"ban_",
	"unban_",
}

// isAdminCallbackData сообщает, относится ли callback к админке.
// Пользовательские коллбеки имеют префикс user_, пересечений нет.
func isAdminCallbackData(data string) bool {
	switch data {
	case cbAdminMain, cbAdminTournaments, cbAdminUsers, cbAdminStats,
		cbAdminFindUser, cbAddTournament,
		cbExportUsersXLSX, cbExportBetsXLSX, cbSheetsUsers, cbSheetsBets:
		return true
	}
	for _, prefix := range adminCallbackPrefixes {
		if strings.HasPrefix(data, prefix) {
			return true
		}
	}
	return false
}
