package alert

import (
	"context"
	"fmt"

	"github.com/dawsen1208/shelfd/internal/errors"
	"github.com/dawsen1208/shelfd/internal/notify"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// TelegramChannel forwards alerts to a Telegram chat. Send-only; the
// daemon never consumes updates.
type TelegramChannel struct {
	bot    *tgbotapi.BotAPI
	chatID int64
}

func NewTelegramChannel(token string, chatID int64) (*TelegramChannel, error) {
	bot, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, errors.Wrap(err, "failed to init telegram bot")
	}

	return &TelegramChannel{bot: bot, chatID: chatID}, nil
}

func (t *TelegramChannel) Name() string {
	return "telegram"
}

func (t *TelegramChannel) Notify(_ context.Context, evt notify.Event, _ Options) error {
	msg := tgbotapi.NewMessage(t.chatID, fmt.Sprintf("%s\n%s", evt.Title, evt.Body))
	if _, err := t.bot.Send(msg); err != nil {
		return errors.Wrap(err, "telegram send failed")
	}
	return nil
}

func (t *TelegramChannel) Health(_ context.Context) error {
	if _, err := t.bot.GetMe(); err != nil {
		return errors.Transient("telegram unreachable")
	}
	return nil
}
