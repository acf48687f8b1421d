package handler

import (
	"context"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/rs/zerolog/log"
)

// MessageHandler processes an inbound text message.
type MessageHandler func(ctx context.Context, msg *tgbotapi.Message)

// CallbackHandler processes an inbound button press.
type CallbackHandler func(ctx context.Context, cq *tgbotapi.CallbackQuery)

// Router is the main webhook update router. Commands and callback-data
// prefixes map to registered handlers; everything else falls through to
// the text handler or the callback fallback.
type Router struct {
	commandHandlers  map[string]MessageHandler
	callbackHandlers map[string]CallbackHandler
	textHandler      MessageHandler
	callbackFallback CallbackHandler
	botUsername      string
}

// NewRouter creates an empty router. botUsername is used to strip the
// "@botname" suffix from commands sent in group chats.
func NewRouter(botUsername string) *Router {
	return &Router{
		commandHandlers:  make(map[string]MessageHandler),
		callbackHandlers: make(map[string]CallbackHandler),
		botUsername:      botUsername,
	}
}

// AddCommandHandler registers a handler for a slash command, without the
// leading slash.
func (r *Router) AddCommandHandler(name string, h MessageHandler) {
	r.commandHandlers[name] = h
}

// AddCallbackHandler registers a handler for callback data whose token
// before the first underscore equals prefix.
func (r *Router) AddCallbackHandler(prefix string, h CallbackHandler) {
	r.callbackHandlers[prefix] = h
}

// SetTextHandler registers the handler for non-command text messages.
func (r *Router) SetTextHandler(h MessageHandler) {
	r.textHandler = h
}

// SetCallbackFallback registers the handler for unrecognized callback
// data. It must still acknowledge the press.
func (r *Router) SetCallbackFallback(h CallbackHandler) {
	r.callbackFallback = h
}

// Dispatch routes one webhook update. A panic while handling an update is
// logged and swallowed so a single bad update cannot take down the
// webhook handler.
func (r *Router) Dispatch(ctx context.Context, update tgbotapi.Update) {
	defer func() {
		if rec := recover(); rec != nil {
			log.Error().Interface("panic", rec).Int("update_id", update.UpdateID).
				Msg("panic while handling update")
		}
	}()

	if update.Message != nil && update.Message.From != nil && update.Message.Chat != nil {
		r.dispatchMessage(ctx, update.Message)
	}

	if update.CallbackQuery != nil && update.CallbackQuery.From != nil {
		r.dispatchCallback(ctx, update.CallbackQuery)
	}
}

func (r *Router) dispatchMessage(ctx context.Context, msg *tgbotapi.Message) {
	text := msg.Text
	if text == "" {
		return
	}

	if strings.HasPrefix(text, "/") {
		name := strings.SplitN(strings.TrimPrefix(text, "/"), " ", 2)[0]
		name = strings.TrimSuffix(name, "@"+r.botUsername)
		if h, ok := r.commandHandlers[name]; ok {
			h(ctx, msg)
			return
		}
		// Unknown commands are treated as dialogue input, matching the
		// plain-text path.
	}

	if r.textHandler != nil {
		r.textHandler(ctx, msg)
	}
}

func (r *Router) dispatchCallback(ctx context.Context, cq *tgbotapi.CallbackQuery) {
	prefix := strings.SplitN(cq.Data, "_", 2)[0]
	if h, ok := r.callbackHandlers[prefix]; ok {
		h(ctx, cq)
		return
	}
	if r.callbackFallback != nil {
		r.callbackFallback(ctx, cq)
	}
}
