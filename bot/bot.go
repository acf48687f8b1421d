package bot

import (
	"fmt"
	"net/http"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/rs/zerolog/log"
)

// Telegram calls share one HTTP client with a hard deadline so a stalled
// send cannot hang an update handler.
const requestTimeout = 10 * time.Second

// Bot wraps the Telegram Bot API session.
type Bot struct {
	api *tgbotapi.BotAPI
}

// New creates a Telegram session using the provided bot token.
func New(token string) (*Bot, error) {
	client := &http.Client{Timeout: requestTimeout}
	api, err := tgbotapi.NewBotAPIWithClient(token, tgbotapi.APIEndpoint, client)
	if err != nil {
		return nil, fmt.Errorf("failed to create Telegram session: %w", err)
	}

	log.Info().Str("username", api.Self.UserName).Msg("Telegram session authorized")
	return &Bot{api: api}, nil
}

// Username returns the authorized bot account name, without the leading @.
func (b *Bot) Username() string {
	return b.api.Self.UserName
}

// SetWebhook registers url as the webhook for incoming updates, limited to
// message and callback_query events.
func (b *Bot) SetWebhook(url string) error {
	wh, err := tgbotapi.NewWebhook(url)
	if err != nil {
		return fmt.Errorf("invalid webhook url: %w", err)
	}
	wh.AllowedUpdates = []string{"message", "callback_query"}

	if _, err := b.api.Request(wh); err != nil {
		return fmt.Errorf("failed to set webhook: %w", err)
	}

	log.Info().Str("url", url).Msg("Telegram webhook set")
	return nil
}

// WebhookInfo reports the currently registered webhook.
func (b *Bot) WebhookInfo() (tgbotapi.WebhookInfo, error) {
	return b.api.GetWebhookInfo()
}
