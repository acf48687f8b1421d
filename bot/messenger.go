package bot

import (
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/rs/zerolog/log"

	"github.com/SteveHaveIt/Blog/model"
)

// SendText sends an HTML-formatted message and returns the sent message ID.
// Transport failures are logged and returned; they never panic into the
// dialogue.
func (b *Bot) SendText(chatID int64, text string) (int, error) {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ParseMode = tgbotapi.ModeHTML

	sent, err := b.api.Send(msg)
	if err != nil {
		log.Error().Err(err).Int64("chat_id", chatID).Msg("error sending message")
		return 0, err
	}
	return sent.MessageID, nil
}

// SendButtons sends an HTML-formatted message with an inline keyboard.
func (b *Bot) SendButtons(chatID int64, text string, rows [][]model.Button) (int, error) {
	keyboard := make([][]tgbotapi.InlineKeyboardButton, 0, len(rows))
	for _, row := range rows {
		buttons := make([]tgbotapi.InlineKeyboardButton, 0, len(row))
		for _, btn := range row {
			buttons = append(buttons, tgbotapi.NewInlineKeyboardButtonData(btn.Text, btn.Data))
		}
		keyboard = append(keyboard, buttons)
	}

	msg := tgbotapi.NewMessage(chatID, text)
	msg.ParseMode = tgbotapi.ModeHTML
	msg.ReplyMarkup = tgbotapi.InlineKeyboardMarkup{InlineKeyboard: keyboard}

	sent, err := b.api.Send(msg)
	if err != nil {
		log.Error().Err(err).Int64("chat_id", chatID).Msg("error sending keyboard")
		return 0, err
	}
	return sent.MessageID, nil
}

// AnswerCallback acknowledges a button press so the client stops showing
// its loading indicator. Required for every callback, even ones that map
// to no dialogue transition.
func (b *Bot) AnswerCallback(callbackID, text string) error {
	callback := tgbotapi.NewCallback(callbackID, text)
	if _, err := b.api.Request(callback); err != nil {
		log.Error().Err(err).Str("callback_id", callbackID).Msg("error answering callback")
		return err
	}
	return nil
}
