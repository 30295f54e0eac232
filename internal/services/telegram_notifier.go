package services

import (
	"fmt"
	"log"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"thescent/internal/models"
)

// TelegramNotifier pushes operational events (new orders, customer
// enquiries) to a staff chat. A nil notifier is valid and sends nothing.
type TelegramNotifier struct {
	bot    *tgbotapi.BotAPI
	chatID int64
	dryRun bool
}

func NewTelegramNotifier(botToken string, chatID int64, dryRun bool) (*TelegramNotifier, error) {
	if botToken == "" || chatID == 0 {
		log.Printf("[tg][disabled] token or chat id not configured")
		return nil, nil
	}
	n := &TelegramNotifier{chatID: chatID, dryRun: dryRun}
	if dryRun {
		return n, nil
	}
	bot, err := tgbotapi.NewBotAPI(botToken)
	if err != nil {
		return nil, fmt.Errorf("telegram bot init: %w", err)
	}
	n.bot = bot
	return n, nil
}

func (n *TelegramNotifier) send(text string) {
	if n == nil {
		return
	}
	if n.dryRun {
		log.Printf("[tg][dry-run] chatID=%d text=%q", n.chatID, text)
		return
	}
	msg := tgbotapi.NewMessage(n.chatID, text)
	msg.ParseMode = tgbotapi.ModeHTML
	msg.DisableWebPagePreview = true
	if _, err := n.bot.Send(msg); err != nil {
		log.Printf("[tg][send][err] %v", err)
	}
}

func (n *TelegramNotifier) NotifyNewOrder(order *models.Order, itemCount int) {
	n.send(fmt.Sprintf(
		"🛒 New order <b>%s</b>\nItems: %d\nTotal: $%s",
		order.OrderNumber, itemCount, order.Total,
	))
}

func (n *TelegramNotifier) NotifyEnquiry(enq *models.Enquiry) {
	n.send(fmt.Sprintf(
		"✉️ New enquiry from <b>%s</b> (%s)\n%s",
		enq.Name, enq.Email, enq.Message,
	))
}
