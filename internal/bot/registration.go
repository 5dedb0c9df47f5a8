package bot

import (
	"context"
	"errors"
	"strings"

	"totobot/internal/database"
	"totobot/internal/domain"
	"totobot/internal/models"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

const skipWord = "пропустить"

// startRegistration запускает анкету: телефон → логин → пароль →
// email (необязательно) → ФИО.
func (b *Bot) startRegistration(ctx context.Context, userID, chatID int64) {
	registered, err := b.authService.IsRegistered(ctx, userID)
	if err != nil {
		b.sendMessage(chatID, b.getErrorMessage(err))
		return
	}
	if registered {
		b.sendMessage(chatID, "✅ Вы уже зарегистрированы.")
		b.showMainMenu(chatID)
		return
	}

	b.setUserState(ctx, userID, models.StepRegPhone, nil)
	b.sendWithKeyboard(chatID,
		"📝 Регистрация\n\nДля регистрации отправьте ваш номер телефона:",
		phoneKeyboard())
}

func (b *Bot) handleRegPhone(ctx context.Context, update tgbotapi.Update, state *models.UserState) {
	userID := update.Message.From.ID
	chatID := update.Message.Chat.ID

	var phone string
	if update.Message.Contact != nil {
		phone = update.Message.Contact.PhoneNumber
	} else {
		phone = update.Message.Text
	}

	formatted := FormatPhone(phone)
	if !ValidatePhone(formatted) {
		b.sendWithInlineKeyboard(chatID,
			"❌ Неверный формат номера телефона. Пожалуйста, используйте номер в формате +7XXXXXXXXXX:",
			cancelKeyboard())
		return
	}

	free, err := b.authService.IsFieldAvailable(ctx, models.FieldPhone, formatted, userID)
	if err != nil {
		b.sendMessage(chatID, b.getErrorMessage(err))
		return
	}
	if !free {
		b.sendWithInlineKeyboard(chatID,
			"❌ Этот номер телефона уже зарегистрирован. Пожалуйста, используйте другой номер:",
			cancelKeyboard())
		return
	}

	b.updateStateData(ctx, userID, "phone", formatted)
	if b.resumeRegistrationCommit(ctx, userID, chatID) {
		return
	}
	b.setUserStep(ctx, userID, state, models.StepRegLogin)
	// Убираем reply-клавиатуру с кнопкой контакта
	msg := tgbotapi.NewMessage(chatID, "👤 Введите ваш логин (только латинские буквы, цифры и нижнее подчеркивание, 3-20 символов):")
	msg.ReplyMarkup = removeKeyboard()
	if _, err := b.tgService.Send(msg); err != nil {
		b.logger.Error().Err(err).Int64("chat_id", chatID).Msg("Failed to send message")
	}
}

func (b *Bot) handleRegLogin(ctx context.Context, update tgbotapi.Update, state *models.UserState) {
	userID := update.Message.From.ID
	chatID := update.Message.Chat.ID
	login := strings.TrimSpace(update.Message.Text)

	if !ValidateLogin(login) {
		b.sendWithInlineKeyboard(chatID,
			"❌ Неверный формат логина. Используйте только латинские буквы, цифры и нижнее подчеркивание (3-20 символов):",
			cancelKeyboard())
		return
	}

	free, err := b.authService.IsFieldAvailable(ctx, models.FieldLogin, login, userID)
	if err != nil {
		b.sendMessage(chatID, b.getErrorMessage(err))
		return
	}
	if !free {
		b.sendWithInlineKeyboard(chatID,
			"❌ Этот логин уже занят. Пожалуйста, выберите другой логин:",
			cancelKeyboard())
		return
	}

	b.updateStateData(ctx, userID, "login", login)
	if b.resumeRegistrationCommit(ctx, userID, chatID) {
		return
	}
	b.setUserStep(ctx, userID, state, models.StepRegPassword)
	b.sendWithInlineKeyboard(chatID, "🔐 Введите ваш пароль (минимум 6 символов):", cancelKeyboard())
}

func (b *Bot) handleRegPassword(ctx context.Context, update tgbotapi.Update, state *models.UserState) {
	userID := update.Message.From.ID
	chatID := update.Message.Chat.ID
	password := strings.TrimSpace(update.Message.Text)

	if !ValidatePassword(password) {
		b.sendWithInlineKeyboard(chatID,
			"❌ Пароль слишком короткий. Минимальная длина - 6 символов. Попробуйте еще раз:",
			cancelKeyboard())
		return
	}

	// Пароль держим в состоянии до конца анкеты, хеширует сервис
	b.updateStateData(ctx, userID, "password", password)
	b.setUserStep(ctx, userID, state, models.StepRegEmail)
	b.sendWithInlineKeyboard(chatID,
		"📧 Введите ваш email (или напишите «пропустить»):",
		cancelKeyboard())
}

func (b *Bot) handleRegEmail(ctx context.Context, update tgbotapi.Update, state *models.UserState) {
	userID := update.Message.From.ID
	chatID := update.Message.Chat.ID
	email := strings.TrimSpace(update.Message.Text)

	if strings.EqualFold(email, skipWord) {
		// Явно затираем: сюда можно вернуться после конфликта email
		b.updateStateData(ctx, userID, "email", "")
	} else {
		if !ValidateEmail(email) {
			b.sendWithInlineKeyboard(chatID,
				"❌ Неверный формат email. Попробуйте еще раз или напишите «пропустить»:",
				cancelKeyboard())
			return
		}
		free, err := b.authService.IsFieldAvailable(ctx, models.FieldEmail, email, userID)
		if err != nil {
			b.sendMessage(chatID, b.getErrorMessage(err))
			return
		}
		if !free {
			b.sendWithInlineKeyboard(chatID,
				"❌ Этот email уже зарегистрирован. Используйте другой или напишите «пропустить»:",
				cancelKeyboard())
			return
		}
		b.updateStateData(ctx, userID, "email", email)
	}

	if b.resumeRegistrationCommit(ctx, userID, chatID) {
		return
	}
	b.setUserStep(ctx, userID, state, models.StepRegFullName)
	b.sendWithInlineKeyboard(chatID, "👤 Введите ваше ФИО:", cancelKeyboard())
}

func (b *Bot) handleRegFullName(ctx context.Context, update tgbotapi.Update, state *models.UserState) {
	userID := update.Message.From.ID
	chatID := update.Message.Chat.ID
	fullName := strings.TrimSpace(update.Message.Text)

	if !ValidateFullName(fullName) {
		b.sendWithInlineKeyboard(chatID,
			"❌ Неверный формат ФИО. Используйте только буквы, пробелы и дефисы (2-100 символов):",
			cancelKeyboard())
		return
	}

	// ФИО кладем в состояние: при конфликте на коммите анкета
	// возобновится с занятого поля без повторного ввода остального
	b.updateStateData(ctx, userID, "full_name", fullName)
	b.completeRegistration(ctx, userID, chatID)
}

// completeRegistration собирает анкету из состояния и коммитит.
// Уникальность перепроверяется ограничениями в момент вставки: между
// проверкой поля и коммитом его могли занять.
func (b *Bot) completeRegistration(ctx context.Context, userID, chatID int64) {
	state := b.getUserState(ctx, userID)
	if state == nil {
		b.showStartScreen(chatID)
		return
	}

	input := domain.RegistrationInput{
		TelegramID: userID,
		Login:      state.GetString("login"),
		Password:   state.GetString("password"),
		Phone:      state.GetString("phone"),
		Email:      state.GetString("email"),
		FullName:   state.GetString("full_name"),
	}

	user, err := b.authService.Register(ctx, input)
	if err != nil {
		if step, ok := duplicateFieldStep(err); ok {
			b.setUserStep(ctx, userID, state, step)
			b.sendWithInlineKeyboard(chatID,
				b.getErrorMessage(err)+"\n\n"+stepPrompt(step),
				cancelKeyboard())
			return
		}
		b.sendMessage(chatID, b.getErrorMessage(err))
		return
	}

	b.clearUserState(ctx, userID)
	if b.metrics != nil {
		b.metrics.Registrations.Inc()
	}
	if b.sheetsWorker != nil {
		if err := b.sheetsWorker.EnqueueUsersExport(ctx); err != nil {
			b.logger.Error().Err(err).Msg("Failed to enqueue users export")
		}
	}

	b.sendMessage(chatID, "✅ Регистрация завершена! Добро пожаловать, "+user.FullName+"!")
	b.showMainMenu(chatID)
}

// resumeRegistrationCommit возвращает true, если анкета уже была
// заполнена до конца и прервалась конфликтом на коммите: тогда после
// исправления поля сразу коммитим заново.
func (b *Bot) resumeRegistrationCommit(ctx context.Context, userID, chatID int64) bool {
	state := b.getUserState(ctx, userID)
	if state == nil || state.GetString("full_name") == "" {
		return false
	}
	b.completeRegistration(ctx, userID, chatID)
	return true
}

// duplicateFieldStep сопоставляет ошибку занятого поля с шагом анкеты,
// на который надо вернуть пользователя.
func duplicateFieldStep(err error) (string, bool) {
	switch {
	case errors.Is(err, database.ErrDuplicatePhone):
		return models.StepRegPhone, true
	case errors.Is(err, database.ErrDuplicateLogin):
		return models.StepRegLogin, true
	case errors.Is(err, database.ErrDuplicateEmail):
		return models.StepRegEmail, true
	}
	return "", false
}

func stepPrompt(step string) string {
	switch step {
	case models.StepRegPhone:
		return "📱 Введите другой номер телефона в формате +7XXXXXXXXXX:"
	case models.StepRegLogin:
		return "👤 Введите другой логин:"
	case models.StepRegEmail:
		return "📧 Введите другой email (или напишите «пропустить»):"
	}
	return ""
}

// setUserStep меняет шаг диалога, не трогая накопленные данные.
func (b *Bot) setUserStep(ctx context.Context, userID int64, state *models.UserState, step string) {
	data := map[string]interface{}{}
	if state != nil && state.Data != nil {
		data = state.Data
	}
	// Данные могли дополниться после загрузки state
	if fresh := b.getUserState(ctx, userID); fresh != nil && fresh.Data != nil {
		data = fresh.Data
	}
	b.setUserState(ctx, userID, step, data)
}
