package telegram

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"NewsSentinel/internal/domain"
	"NewsSentinel/internal/ports"
)

// Sender is the slice of the bot API the notifier needs; satisfied by
// *tgbotapi.BotAPI and by fakes in tests.
type Sender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
}

// Notifier posts formatted messages to every configured Telegram channel.
// Delivery is best effort per channel: one failing channel never blocks the
// others and nothing is retried.
type Notifier struct {
	bot      Sender
	channels []string
	logger   *slog.Logger
}

var _ ports.Notifier = (*Notifier)(nil)

// NewNotifier connects the bot API. Channel ids may be numeric chat ids or
// @usernames.
func NewNotifier(botToken string, channels []string, logger *slog.Logger) (*Notifier, error) {
	bot, err := tgbotapi.NewBotAPI(botToken)
	if err != nil {
		return nil, fmt.Errorf("connect telegram bot: %w", err)
	}
	return &Notifier{bot: bot, channels: channels, logger: logger}, nil
}

// NewNotifierWithSender wires a pre-built sender; used by tests.
func NewNotifierWithSender(bot Sender, channels []string, logger *slog.Logger) *Notifier {
	return &Notifier{bot: bot, channels: channels, logger: logger}
}

// Deliver formats the notification once and sends it to each channel
// independently. An error is returned only when every channel failed; the
// caller records the item as seen either way.
func (n *Notifier) Deliver(ctx context.Context, msg domain.Notification) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	text := formatMessage(msg)

	var delivered int
	for _, channel := range n.channels {
		cfg := messageFor(channel, text)
		if _, err := n.bot.Send(cfg); err != nil {
			n.log().Error("telegram delivery failed", "channel", channel, "error", err)
			continue
		}
		delivered++
		n.log().Info("telegram delivery ok", "channel", channel, "title", clip(msg.Title, 60))
	}

	if delivered == 0 && len(n.channels) > 0 {
		return fmt.Errorf("delivery failed on all %d channels", len(n.channels))
	}
	return nil
}

// formatMessage renders the HTML-dialect message body. User-supplied text is
// escaped so titles with angle brackets cannot break the markup.
func formatMessage(msg domain.Notification) string {
	return fmt.Sprintf("<b>%s</b>: %s\n\n%s\n\nИсточник: %s",
		tgbotapi.EscapeText(tgbotapi.ModeHTML, msg.Prefix),
		tgbotapi.EscapeText(tgbotapi.ModeHTML, msg.Title),
		tgbotapi.EscapeText(tgbotapi.ModeHTML, msg.Lead),
		msg.SourceURL,
	)
}

func messageFor(channel, text string) tgbotapi.MessageConfig {
	var cfg tgbotapi.MessageConfig
	if strings.HasPrefix(channel, "@") {
		cfg = tgbotapi.NewMessageToChannel(channel, text)
	} else {
		chatID, err := strconv.ParseInt(channel, 10, 64)
		if err != nil {
			cfg = tgbotapi.NewMessageToChannel(channel, text)
		} else {
			cfg = tgbotapi.NewMessage(chatID, text)
		}
	}
	cfg.ParseMode = tgbotapi.ModeHTML
	cfg.DisableWebPagePreview = false
	return cfg
}

func (n *Notifier) log() *slog.Logger {
	if n.logger != nil {
		return n.logger
	}
	return slog.Default()
}

func clip(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max]) + "..."
}
