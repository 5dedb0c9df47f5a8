package service

import (
	"totobot/internal/domain"
	"totobot/internal/models"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// TelegramService прячет сборку tgbotapi-сообщений от обработчиков:
// наружу уходят только chatID, текст и клавиатура.
type TelegramService struct {
	sender domain.TelegramSender
}

func NewTelegramService(sender domain.TelegramSender) *TelegramService {
	return &TelegramService{sender: sender}
}

func (s *TelegramService) Send(c tgbotapi.Chattable) (tgbotapi.Message, error) {
	return s.sender.Send(c)
}

func (s *TelegramService) Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error) {
	return s.sender.Request(c)
}

func (s *TelegramService) SendMessage(chatID int64, text string) (tgbotapi.Message, error) {
	return s.sender.Send(tgbotapi.NewMessage(chatID, text))
}

func (s *TelegramService) SendWithKeyboard(chatID int64, text string, keyboard tgbotapi.ReplyKeyboardMarkup) (tgbotapi.Message, error) {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ReplyMarkup = keyboard
	return s.sender.Send(msg)
}

func (s *TelegramService) SendWithInlineKeyboard(
	chatID int64,
	text string,
	keyboard tgbotapi.InlineKeyboardMarkup,
) (tgbotapi.Message, error) {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ReplyMarkup = keyboard
	return s.sender.Send(msg)
}

// EditMessage правит текст сообщения на месте; клавиатура опциональна.
func (s *TelegramService) EditMessage(
	chatID int64,
	messageID int,
	text string,
	keyboard *tgbotapi.InlineKeyboardMarkup,
) (tgbotapi.Message, error) {
	if keyboard == nil {
		msg := tgbotapi.NewEditMessageText(chatID, messageID, text)
		msg.ParseMode = models.ParseModeMarkdown
		return s.sender.Send(msg)
	}

	msg := tgbotapi.NewEditMessageTextAndMarkup(chatID, messageID, text, *keyboard)
	msg.ParseMode = models.ParseModeMarkdown
	return s.sender.Send(msg)
}

func (s *TelegramService) AnswerCallback(callbackID, text string) error {
	_, err := s.sender.Request(tgbotapi.NewCallback(callbackID, text))
	return err
}

func (s *TelegramService) GetUpdatesChan(config tgbotapi.UpdateConfig) tgbotapi.UpdatesChannel {
	return s.sender.GetUpdatesChan(config)
}

func (s *TelegramService) GetSelf() tgbotapi.User {
	return s.sender.GetSelf()
}

func (s *TelegramService) StopReceivingUpdates() {
	s.sender.StopReceivingUpdates()
}
