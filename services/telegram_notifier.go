package services

import (
	"context"
	"errors"
	"fmt"

	"fastcard/utils"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"
)

// telegramSender часть tgbotapi.BotAPI, которая нужна уведомителю
type telegramSender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
}

// TelegramNotifier рассылает администраторам уведомления о новых заявках
type TelegramNotifier struct {
	bot      telegramSender
	adminIDs []int64
}

// NewTelegramNotifier подключается к Bot API
func NewTelegramNotifier(token string, adminIDs []int64) (*TelegramNotifier, error) {
	bot, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("не удалось подключиться к Telegram: %w", err)
	}
	return &TelegramNotifier{bot: bot, adminIDs: adminIDs}, nil
}

// SendApplication отправляет каждому администратору сообщение о заявке
func (n *TelegramNotifier) SendApplication(ctx context.Context, fullName, phoneNumber, username string) error {
	text := fmt.Sprintf("Новая заявка от: *%s*\nИмя: *%s*\nТелефон: *%s*",
		escapeMarkdown(username),
		escapeMarkdown(fullName),
		escapeMarkdown(phoneNumber),
	)

	var errs []error
	for _, chatID := range n.adminIDs {
		if err := ctx.Err(); err != nil {
			return err
		}
		msg := tgbotapi.NewMessage(chatID, text)
		msg.ParseMode = tgbotapi.ModeMarkdownV2
		if _, err := n.bot.Send(msg); err != nil {
			errs = append(errs, fmt.Errorf("chat %d: %w", chatID, err))
		}
	}
	return errors.Join(errs...)
}

func escapeMarkdown(text string) string {
	return tgbotapi.EscapeText(tgbotapi.ModeMarkdownV2, text)
}

// LogNotifier пишет заявки в лог, когда Telegram не настроен
type LogNotifier struct{}

func (LogNotifier) SendApplication(_ context.Context, fullName, phoneNumber, username string) error {
	utils.Log.Info("new application",
		zap.String("username", username),
		zap.String("full_name", fullName),
		zap.String("phone_number", phoneNumber),
	)
	return nil
}
