package chat

import (
	"strings"

	"github.com/campus-connect/campusctl/pkg/internal/models"
)

type ComposerState int

const (
	ComposerIdle ComposerState = iota
	ComposerReply
	ComposerEdit
)

type SubmissionKind int

const (
	SubmitSend SubmissionKind = iota
	SubmitEdit
)

// Composer owns the draft text and the mutually exclusive reply/edit
// targets. Content and targets clear only after the server
// acknowledges the submission.
type Composer struct {
	content string
	replyTo *models.Message
	editing *models.Message
}

func (c *Composer) SetContent(content string) {
	c.content = content
}

func (c *Composer) Content() string {
	return c.content
}

func (c *Composer) State() ComposerState {
	switch {
	case c.editing != nil:
		return ComposerEdit
	case c.replyTo != nil:
		return ComposerReply
	default:
		return ComposerIdle
	}
}

func (c *Composer) ReplyTarget() *models.Message { return c.replyTo }
func (c *Composer) EditTarget() *models.Message  { return c.editing }

func (c *Composer) StartReply(message models.Message) {
	c.editing = nil
	c.replyTo = &message
}

// StartEdit enters edit mode and pre-fills the draft with the target's
// current text.
func (c *Composer) StartEdit(message models.Message) {
	c.replyTo = nil
	c.editing = &message
	c.content = message.Text()
}

func (c *Composer) CancelTargets() {
	c.replyTo = nil
	c.editing = nil
}

type Submission struct {
	Kind      SubmissionKind
	MessageID string
	Content   string
	ReplyToID *string
}

// Submit builds the pending request. It returns false when there is
// nothing to send: empty drafts only pass with a reply target set.
func (c *Composer) Submit() (Submission, bool) {
	content := strings.TrimSpace(c.content)

	if c.editing != nil {
		if content == "" {
			return Submission{}, false
		}
		return Submission{Kind: SubmitEdit, MessageID: c.editing.ID, Content: content}, true
	}

	if content == "" && c.replyTo == nil {
		return Submission{}, false
	}

	submission := Submission{Kind: SubmitSend, Content: content}
	if c.replyTo != nil {
		submission.ReplyToID = &c.replyTo.ID
	}
	return submission, true
}

// Acknowledge clears the draft and both targets after a successful
// round trip.
func (c *Composer) Acknowledge() {
	c.content = ""
	c.replyTo = nil
	c.editing = nil
}
