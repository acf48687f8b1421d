package submission

import (
	"fmt"
	"strings"

	"github.com/SteveHaveIt/Blog/model"
)

const contentPreviewLen = 100

// sendReview shows the collected fields and the two terminal actions.
func (f *Flow) sendReview(chatID int64, state model.SubmissionState) {
	media := "None"
	if len(state.MediaURLs) > 0 {
		media = fmt.Sprintf("%d file(s)", len(state.MediaURLs))
	}
	tags := "None"
	if len(state.Tags) > 0 {
		tags = strings.Join(state.Tags, ", ")
	}

	text := fmt.Sprintf(`📋 <b>Review Your Submission</b>

<b>Type:</b> %s
<b>Title:</b> %s
<b>Content:</b> %s...
<b>Media:</b> %s
<b>Tags:</b> %s
<b>Author:</b> %s
<b>Slug:</b> <code>%s</code>
<b>Status:</b> Published

Everything looks good?`,
		strings.ToUpper(string(state.Type)),
		state.Title,
		previewContent(state.Content),
		media,
		tags,
		state.Author,
		GenerateSlug(state.Title),
	)

	messageID, err := f.messenger.SendButtons(chatID, text, [][]model.Button{{
		{Text: "✅ Submit", Data: "submit_confirm"},
		{Text: "❌ Cancel", Data: "submit_cancel"},
	}})
	if err == nil {
		state.MessageIDs = append(state.MessageIDs, messageID)
		f.store.Set(state.UserID, state)
	}
}

func previewContent(content string) string {
	runes := []rune(content)
	if len(runes) <= contentPreviewLen {
		return content
	}
	return string(runes[:contentPreviewLen])
}
