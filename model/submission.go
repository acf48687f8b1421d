package model

import "time"

// Step is a stage of the submission dialogue. Steps only advance forward;
// the only way back is deleting the whole state.
type Step string

const (
	StepType     Step = "type"
	StepTitle    Step = "title"
	StepContent  Step = "content"
	StepMedia    Step = "media"
	StepTags     Step = "tags"
	StepAuthor   Step = "author"
	StepReview   Step = "review"
	StepComplete Step = "complete"
)

// SubmissionState holds the fields collected so far for one user's
// in-flight submission. At most one state exists per user ID.
type SubmissionState struct {
	UserID    int64
	ChatID    int64
	Step      Step
	Type      PostType
	Title     string
	Content   string
	MediaURLs []string
	Tags      []string
	Author    string
	Timestamp time.Time
	// MessageIDs tracks the bot's outbound messages for potential cleanup.
	MessageIDs []int
}
