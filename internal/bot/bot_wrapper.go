package bot

import (
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// TelegramAPI приводит *tgbotapi.BotAPI к domain.TelegramSender.
// Явное делегирование вместо встраивания: наружу уходит только то,
// что объявлено в интерфейсе.
type TelegramAPI struct {
	api *tgbotapi.BotAPI
}

func NewTelegramAPI(api *tgbotapi.BotAPI) *TelegramAPI {
	return &TelegramAPI{api: api}
}

func (t *TelegramAPI) Send(c tgbotapi.Chattable) (tgbotapi.Message, error) {
	return t.api.Send(c)
}

func (t *TelegramAPI) Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error) {
	return t.api.Request(c)
}

func (t *TelegramAPI) GetUpdatesChan(config tgbotapi.UpdateConfig) tgbotapi.UpdatesChannel {
	return t.api.GetUpdatesChan(config)
}

func (t *TelegramAPI) GetSelf() tgbotapi.User {
	return t.api.Self
}

func (t *TelegramAPI) StopReceivingUpdates() {
	t.api.StopReceivingUpdates()
}
