package submission

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/rs/zerolog/log"

	"github.com/SteveHaveIt/Blog/handler"
	"github.com/SteveHaveIt/Blog/model"
)

// Messenger is the outbound side of the chat transport. Failures are
// best-effort: the flow logs them and keeps its state.
type Messenger interface {
	SendText(chatID int64, text string) (int, error)
	SendButtons(chatID int64, text string, rows [][]model.Button) (int, error)
	AnswerCallback(callbackID, text string) error
}

// PostRepository is the narrow slice of the posts store the committer
// needs.
type PostRepository interface {
	CreatePost(ctx context.Context, p model.InsertPost) (*model.Post, error)
	RecentPosts(ctx context.Context, limit int) ([]model.Post, error)
}

const commitTimeout = 10 * time.Second

// Flow drives the step-ordered submission dialogue: one state per user,
// advanced only forward, deleted on cancel or successful commit.
type Flow struct {
	store         Store
	messenger     Messenger
	repo          PostRepository
	defaultAuthor string

	// userLocks serializes update handling per user in case the host
	// delivers webhook calls for the same user concurrently.
	mu        sync.Mutex
	userLocks map[int64]*sync.Mutex
}

// NewFlow wires the dialogue against its collaborators.
func NewFlow(store Store, messenger Messenger, repo PostRepository, defaultAuthor string) *Flow {
	return &Flow{
		store:         store,
		messenger:     messenger,
		repo:          repo,
		defaultAuthor: defaultAuthor,
		userLocks:     make(map[int64]*sync.Mutex),
	}
}

// RegisterHandlers registers the flow's handlers on the update router.
func (f *Flow) RegisterHandlers(r *handler.Router) {
	r.AddCommandHandler("new", f.NewCommandHandler)
	r.AddCallbackHandler("type", f.TypeCallbackHandler)
	r.AddCallbackHandler("submit", f.SubmitCallbackHandler)
	r.SetTextHandler(f.TextMessageHandler)
	r.SetCallbackFallback(f.UnknownCallbackHandler)
}

func (f *Flow) lockUser(userID int64) func() {
	f.mu.Lock()
	lock, ok := f.userLocks[userID]
	if !ok {
		lock = &sync.Mutex{}
		f.userLocks[userID] = lock
	}
	f.mu.Unlock()

	lock.Lock()
	return lock.Unlock
}

// NewCommandHandler starts a fresh submission flow, replacing any
// existing state for the user.
func (f *Flow) NewCommandHandler(ctx context.Context, msg *tgbotapi.Message) {
	unlock := f.lockUser(msg.From.ID)
	defer unlock()

	f.startFlow(msg.From.ID, msg.Chat.ID)
}

func (f *Flow) startFlow(userID, chatID int64) {
	state := model.SubmissionState{
		UserID:    userID,
		ChatID:    chatID,
		Step:      model.StepType,
		MediaURLs: []string{},
		Timestamp: time.Now(),
	}

	messageID, err := f.messenger.SendButtons(chatID,
		"📝 <b>Create New Content</b>\n\nWhat type of content are you submitting?",
		[][]model.Button{{
			{Text: "📰 Blog", Data: "type_blog"},
			{Text: "🎬 Vlog", Data: "type_vlog"},
			{Text: "📸 Story", Data: "type_story"},
		}},
	)
	if err == nil {
		state.MessageIDs = append(state.MessageIDs, messageID)
	}

	f.store.Set(userID, state)
}

// TextMessageHandler processes free-text dialogue input. "cancel" and
// "restart" are recognized at every step and checked before step
// dispatch.
func (f *Flow) TextMessageHandler(ctx context.Context, msg *tgbotapi.Message) {
	userID, chatID := msg.From.ID, msg.Chat.ID
	unlock := f.lockUser(userID)
	defer unlock()

	text := msg.Text

	switch strings.ToLower(text) {
	case "cancel":
		f.store.Delete(userID)
		f.sendText(chatID, "❌ Submission cancelled. Use /new to start again.")
		return
	case "restart":
		f.store.Delete(userID)
		f.startFlow(userID, chatID)
		return
	}

	state, found := f.store.Get(userID)
	if !found {
		f.sendText(chatID, "❌ No active submission. Use /new to start.")
		return
	}

	switch state.Step {
	case model.StepType:
		f.sendText(chatID, "❌ Please choose a content type using the buttons above.")
		return

	case model.StepTitle:
		if err := ValidateTitle(text); err != nil {
			f.sendText(chatID, "❌ "+err.Error())
			return
		}
		state.Title = text
		state.Step = model.StepContent
		f.sendText(chatID, fmt.Sprintf(
			"✅ Title: <b>%s</b>\n\n📝 Now, write the content/body of your %s.\n\n<i>Type \"cancel\" to stop</i>",
			text, state.Type))

	case model.StepContent:
		if err := ValidateContent(text); err != nil {
			f.sendText(chatID, "❌ "+err.Error())
			return
		}
		state.Content = text
		state.Step = model.StepMedia
		f.sendText(chatID,
			"✅ Content saved.\n\n📸 Now send media URLs (photos/videos) or type \"skip\" to continue without media.\n\n<i>You can send multiple URLs</i>")

	case model.StepMedia:
		if strings.EqualFold(text, "skip") {
			state.Step = model.StepTags
			f.sendText(chatID,
				"✅ Skipped media.\n\n🏷️ Add tags (comma-separated) or type \"skip\" to continue.\n\nExample: <code>technology, tutorial, beginner</code>")
			break
		}
		if err := ValidateMediaURL(text); err != nil {
			f.sendText(chatID, "❌ "+err.Error())
			return
		}
		state.MediaURLs = append(state.MediaURLs, text)
		f.sendText(chatID, fmt.Sprintf(
			"✅ Media added (%d). Send another URL or type \"skip\" to continue.", len(state.MediaURLs)))

	case model.StepTags:
		if strings.EqualFold(text, "skip") {
			state.Tags = []string{}
		} else {
			state.Tags = ParseTags(text)
		}
		state.Step = model.StepAuthor
		saved := "None"
		if len(state.Tags) > 0 {
			saved = strings.Join(state.Tags, ", ")
		}
		f.sendText(chatID, fmt.Sprintf(
			"✅ Tags saved: %s\n\n👤 Author name (default: \"%s\") or type \"default\":",
			saved, f.defaultAuthor))

	case model.StepAuthor:
		if strings.EqualFold(text, "default") {
			state.Author = f.defaultAuthor
		} else {
			state.Author = text
		}
		state.Step = model.StepReview
		f.store.Set(userID, state)
		f.sendReview(chatID, state)
		return

	default:
		// review and complete only move via buttons
		f.sendText(chatID, "❌ Please use the buttons above, or type \"cancel\" to stop.")
		return
	}

	f.store.Set(userID, state)
}

// TypeCallbackHandler handles the type_<kind> buttons. The selection is
// honored only while the flow is waiting at the type step; a press on a
// stale keyboard is acknowledged and ignored.
func (f *Flow) TypeCallbackHandler(ctx context.Context, cq *tgbotapi.CallbackQuery) {
	f.ackCallback(cq.ID, "")
	if cq.Message == nil || cq.Message.Chat == nil {
		return
	}
	userID, chatID := cq.From.ID, cq.Message.Chat.ID

	unlock := f.lockUser(userID)
	defer unlock()

	state, found := f.store.Get(userID)
	if !found {
		f.sendText(chatID, "❌ Session expired. Please use /new to start again.")
		return
	}
	if state.Step != model.StepType {
		return
	}

	kind := model.PostType(strings.TrimPrefix(cq.Data, "type_"))
	if !kind.Valid() {
		return
	}

	state.Type = kind
	state.Step = model.StepTitle
	f.store.Set(userID, state)

	f.sendText(chatID, fmt.Sprintf(
		"✅ Type selected: <b>%s</b>\n\n📌 Now, what's the title of your %s?\n\n<i>Type \"cancel\" to stop, \"restart\" to begin again</i>",
		strings.ToUpper(string(kind)), kind))
}

// SubmitCallbackHandler handles the two terminal review buttons.
func (f *Flow) SubmitCallbackHandler(ctx context.Context, cq *tgbotapi.CallbackQuery) {
	f.ackCallback(cq.ID, "")
	if cq.Message == nil || cq.Message.Chat == nil {
		return
	}
	userID, chatID := cq.From.ID, cq.Message.Chat.ID

	unlock := f.lockUser(userID)
	defer unlock()

	switch cq.Data {
	case "submit_confirm":
		state, found := f.store.Get(userID)
		if !found {
			f.sendText(chatID, "❌ Session expired. Please use /new to start again.")
			return
		}
		if state.Step != model.StepReview {
			return
		}

		// Commit works on a snapshot; the stored state is only cleared
		// after the insert is confirmed.
		commitCtx, cancel := context.WithTimeout(ctx, commitTimeout)
		defer cancel()

		if err := f.commit(commitCtx, state); err != nil {
			log.Error().Err(err).Int64("user_id", userID).Msg("submission failed")
			f.sendText(chatID, "❌ <b>Error submitting content.</b>\n\nPlease try again or contact support.")
			return
		}

		f.store.Delete(userID)
		f.sendText(chatID, "✔️ <b>Content submitted successfully!</b>\n\n📌 Your post has been saved to the Nuta CMS and is now published.")

	case "submit_cancel":
		f.store.Delete(userID)
		f.sendText(chatID, "❌ Submission cancelled. Use /new to start again.")
	}
}

// UnknownCallbackHandler acknowledges presses that map to no transition
// so the client doesn't show a timeout indicator.
func (f *Flow) UnknownCallbackHandler(ctx context.Context, cq *tgbotapi.CallbackQuery) {
	f.ackCallback(cq.ID, "Processing...")
}

func (f *Flow) ackCallback(callbackID, text string) {
	if err := f.messenger.AnswerCallback(callbackID, text); err != nil {
		log.Warn().Err(err).Msg("error acknowledging callback")
	}
}

func (f *Flow) sendText(chatID int64, text string) {
	if _, err := f.messenger.SendText(chatID, text); err != nil {
		log.Warn().Err(err).Int64("chat_id", chatID).Msg("error sending dialogue message")
	}
}
