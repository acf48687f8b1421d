package submission

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/SteveHaveIt/Blog/model"
)

// duplicateLookback bounds the duplicate-title check to the most recent
// records. It is a heuristic guard, not a uniqueness constraint.
const duplicateLookback = 5

// commit turns a fully collected state into exactly one persisted post.
// It works on a snapshot of the state; the caller clears the stored
// state only on success.
func (f *Flow) commit(ctx context.Context, state model.SubmissionState) error {
	recent, err := f.repo.RecentPosts(ctx, duplicateLookback)
	if err != nil {
		// The lookback is best-effort; a failed check must not block the
		// insert itself.
		log.Error().Err(err).Msg("error checking duplicates")
	} else {
		for _, post := range recent {
			if strings.EqualFold(post.Title, state.Title) {
				return fmt.Errorf("a post with this title already exists")
			}
		}
	}

	var mediaURL string
	if len(state.MediaURLs) > 0 {
		mediaURL = state.MediaURLs[0]
	}

	post, err := f.repo.CreatePost(ctx, model.InsertPost{
		Type:      state.Type,
		Title:     state.Title,
		Content:   state.Content,
		MediaURL:  mediaURL,
		Author:    state.Author,
		Tags:      state.Tags,
		Slug:      GenerateSlug(state.Title),
		Published: true,
		CreatedAt: state.Timestamp,
	})
	if err != nil {
		return fmt.Errorf("failed to insert post: %w", err)
	}

	log.Info().Str("post_id", post.ID).Int64("user_id", state.UserID).Msg("post created from submission")
	return nil
}
