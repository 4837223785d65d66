package services

import (
	"log"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// AlertService pushes operational notices (delivery failures, sweep errors)
// to a Telegram chat. A nil receiver is a valid no-op, so callers never
// have to check whether alerting is configured.
type AlertService struct {
	bot    *tgbotapi.BotAPI
	chatID int64
}

func NewAlertService(botToken string, chatID int64) *AlertService {
	if botToken == "" || chatID == 0 {
		return nil
	}
	bot, err := tgbotapi.NewBotAPI(botToken)
	if err != nil {
		log.Printf("[alerts] telegram bot init failed, alerts disabled: %v", err)
		return nil
	}
	return &AlertService{bot: bot, chatID: chatID}
}

func (a *AlertService) Notify(text string) {
	if a == nil {
		return
	}
	msg := tgbotapi.NewMessage(a.chatID, text)
	if _, err := a.bot.Send(msg); err != nil {
		log.Printf("[alerts] send failed: %v", err)
	}
}
