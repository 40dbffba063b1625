package domain

import (
	"context"
	"errors"
	"time"
)

// Sentinel errors for talk operations.
var (
	ErrTalkNotFound = errors.New("talk not found")
	ErrForbidden    = errors.New("talk owned by another user")
	ErrInvalidState = errors.New("invalid talk state transition")
	ErrCfpClosed    = errors.New("call for papers is closed")
)

// TalkState is the lifecycle state of a talk proposal.
type TalkState string

const (
	StateDraft     TalkState = "DRAFT"
	StateSubmitted TalkState = "SUBMITTED"
	StateAccepted  TalkState = "ACCEPTED"
	StateRefused   TalkState = "REFUSED"
	StateConfirmed TalkState = "CONFIRMED"
)

// transitions is the full lifecycle: a draft is submitted, a submitted talk
// is accepted or refused, and an accepted talk is confirmed by its speaker.
var transitions = map[TalkState][]TalkState{
	StateDraft:     {StateSubmitted},
	StateSubmitted: {StateAccepted, StateRefused},
	StateAccepted:  {StateConfirmed},
}

// CanTransition reports whether a talk in state s may move to next.
func (s TalkState) CanTransition(next TalkState) bool {
	for _, t := range transitions[s] {
		if t == next {
			return true
		}
	}
	return false
}

// Writable reports whether the owner may still edit or delete the talk.
// Only drafts are writable; everything past submission is read-only for
// the speaker.
func (s TalkState) Writable() bool {
	return s == StateDraft
}

// Talk represents a talk proposal submitted through the CFP.
// The owner (UserID) is set on creation and never changes.
type Talk struct {
	ID          int       `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	References  string    `json:"references"`
	Difficulty  int       `json:"difficulty"`
	TrackID     int       `json:"trackId"`
	FormatID    int       `json:"formatId"`
	State       TalkState `json:"state"`
	UserID      int       `json:"userId"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// TalkUser is the flattened talk view exchanged at the API boundary:
// the talk fields plus the speaker's identity. It is never persisted.
// swagger:model TalkUser
type TalkUser struct {
	ID          int       `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	References  string    `json:"references"`
	Difficulty  int       `json:"difficulty"`
	TrackID     int       `json:"trackId"`
	FormatID    int       `json:"formatId"`
	State       TalkState `json:"state"`
	OwnerID     int       `json:"ownerId"`
	SpeakerName string    `json:"speakerName,omitempty"`
	Email       string    `json:"email,omitempty"`
}

// TalkFormat describes an allowed session format (e.g. conference, quickie).
type TalkFormat struct {
	ID              int    `json:"id"`
	Name            string `json:"name"`
	DurationMinutes int    `json:"duration"`
	Description     string `json:"description"`
}

// Track is a thematic track talks are submitted against.
type Track struct {
	ID          int    `json:"id"`
	Libelle     string `json:"libelle"`
	Description string `json:"description"`
}

// TalkRepository defines the interface for talk storage.
type TalkRepository interface {
	Create(ctx context.Context, talk *Talk) error
	GetByID(ctx context.Context, id int) (*Talk, error)
	Update(ctx context.Context, talk *Talk) error
	UpdateState(ctx context.Context, id int, state TalkState) error
	Delete(ctx context.Context, id int) error
	ListByUserAndStates(ctx context.Context, userID int, states []TalkState) ([]*Talk, error)
	ListByState(ctx context.Context, state TalkState) ([]*Talk, error)
}

// ReferenceRepository defines the interface for talk format and track
// reference data.
type ReferenceRepository interface {
	ListTalkFormats(ctx context.Context) ([]*TalkFormat, error)
	ListTracks(ctx context.Context) ([]*Track, error)
}

// TalkService defines the business logic for the talk lifecycle.
type TalkService interface {
	Submit(ctx context.Context, userID int, talk *TalkUser) (*TalkUser, error)
	AddDraft(ctx context.Context, userID int, talk *TalkUser) (*TalkUser, error)
	EditDraft(ctx context.Context, userID int, talk *TalkUser) (*TalkUser, error)
	DeleteDraft(ctx context.Context, userID, talkID int) (*TalkUser, error)
	SubmitDraft(ctx context.Context, userID int, talk *TalkUser) (*TalkUser, error)
	GetOne(ctx context.Context, userID, talkID int) (*TalkUser, error)
	FindAll(ctx context.Context, userID int, states ...TalkState) ([]*TalkUser, error)
	Accept(ctx context.Context, talkID int) (*TalkUser, error)
	Refuse(ctx context.Context, talkID int) (*TalkUser, error)
	Confirm(ctx context.Context, userID, talkID int) (*TalkUser, error)
	ListSubmitted(ctx context.Context) ([]*TalkUser, error)
	TalkFormats(ctx context.Context) ([]*TalkFormat, error)
	Tracks(ctx context.Context) ([]*Track, error)
}
