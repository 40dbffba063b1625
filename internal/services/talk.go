package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/erwannT/callForPapers/internal/domain"
)

type talkService struct {
	talkRepo       domain.TalkRepository
	refRepo        domain.ReferenceRepository
	userRepo       domain.UserRepository
	configService  domain.ConfigService
	emailService   domain.EmailService
	transactor     domain.Transactor
	hostname       string
	contextTimeout time.Duration
}

// NewTalkService creates the TalkService. hostname is the public base URL
// used in confirmation emails.
func NewTalkService(talkRepo domain.TalkRepository,
	refRepo domain.ReferenceRepository,
	userRepo domain.UserRepository,
	configService domain.ConfigService,
	emailService domain.EmailService,
	transactor domain.Transactor,
	hostname string,
	timeout time.Duration,
) domain.TalkService {
	return &talkService{
		talkRepo:       talkRepo,
		refRepo:        refRepo,
		userRepo:       userRepo,
		configService:  configService,
		emailService:   emailService,
		transactor:     transactor,
		hostname:       hostname,
		contextTimeout: timeout,
	}
}

func toTalkUser(t *domain.Talk, owner *domain.User) *domain.TalkUser {
	tu := &domain.TalkUser{
		ID:          t.ID,
		Name:        t.Name,
		Description: t.Description,
		References:  t.References,
		Difficulty:  t.Difficulty,
		TrackID:     t.TrackID,
		FormatID:    t.FormatID,
		State:       t.State,
		OwnerID:     t.UserID,
	}
	if owner != nil {
		tu.SpeakerName = owner.FirstName
		tu.Email = owner.Email
	}
	return tu
}

// create persists a new talk owned by user in the given initial state,
// guarded by the CFP open flag.
func (s *talkService) create(ctx context.Context, user *domain.User, tu *domain.TalkUser, state domain.TalkState) (*domain.Talk, error) {
	open, err := s.configService.IsCfpOpen(ctx)
	if err != nil {
		return nil, fmt.Errorf("check cfp open: %w", err)
	}
	if !open {
		return nil, domain.ErrCfpClosed
	}
	now := time.Now()
	talk := &domain.Talk{
		Name:        strings.TrimSpace(tu.Name),
		Description: tu.Description,
		References:  tu.References,
		Difficulty:  tu.Difficulty,
		TrackID:     tu.TrackID,
		FormatID:    tu.FormatID,
		State:       state,
		UserID:      user.ID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.talkRepo.Create(ctx, talk); err != nil {
		return nil, fmt.Errorf("create talk: %w", err)
	}
	return talk, nil
}

// Submit creates a talk directly in SUBMITTED state and sends the
// confirmation email. Both happen in one transaction: a failed send rolls
// the talk back.
func (s *talkService) Submit(ctx context.Context, userID int, tu *domain.TalkUser) (*domain.TalkUser, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("get user: %w", err)
	}

	var saved *domain.Talk
	err = s.transactor.RunInTx(ctx, func(ctx context.Context) error {
		talk, err := s.create(ctx, user, tu, domain.StateSubmitted)
		if err != nil {
			return err
		}
		saved = talk
		return s.sendConfirmation(ctx, user, talk)
	})
	if err != nil {
		return nil, err
	}
	return toTalkUser(saved, user), nil
}

// AddDraft creates a talk in DRAFT state. No email is sent for drafts.
func (s *talkService) AddDraft(ctx context.Context, userID int, tu *domain.TalkUser) (*domain.TalkUser, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("get user: %w", err)
	}

	var saved *domain.Talk
	err = s.transactor.RunInTx(ctx, func(ctx context.Context) error {
		talk, err := s.create(ctx, user, tu, domain.StateDraft)
		if err != nil {
			return err
		}
		saved = talk
		return nil
	})
	if err != nil {
		return nil, err
	}
	return toTalkUser(saved, user), nil
}

// getOwned loads a talk and enforces ownership. The owner never changes
// after creation, so this is the only authorization check talks need.
func (s *talkService) getOwned(ctx context.Context, userID, talkID int) (*domain.Talk, error) {
	talk, err := s.talkRepo.GetByID(ctx, talkID)
	if err != nil {
		return nil, err
	}
	if talk.UserID != userID {
		return nil, domain.ErrForbidden
	}
	return talk, nil
}

func applyEdit(talk *domain.Talk, tu *domain.TalkUser) {
	talk.Name = strings.TrimSpace(tu.Name)
	talk.Description = tu.Description
	talk.References = tu.References
	talk.Difficulty = tu.Difficulty
	talk.TrackID = tu.TrackID
	talk.FormatID = tu.FormatID
	talk.UpdatedAt = time.Now()
}

// EditDraft updates a draft's fields. Anything past DRAFT is read-only for
// the speaker.
func (s *talkService) EditDraft(ctx context.Context, userID int, tu *domain.TalkUser) (*domain.TalkUser, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	var talk *domain.Talk
	err := s.transactor.RunInTx(ctx, func(ctx context.Context) error {
		var err error
		talk, err = s.getOwned(ctx, userID, tu.ID)
		if err != nil {
			return err
		}
		if !talk.State.Writable() {
			return domain.ErrInvalidState
		}
		applyEdit(talk, tu)
		return s.talkRepo.Update(ctx, talk)
	})
	if err != nil {
		return nil, err
	}
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("get user: %w", err)
	}
	return toTalkUser(talk, user), nil
}

// DeleteDraft removes a draft and returns the deleted representation.
func (s *talkService) DeleteDraft(ctx context.Context, userID, talkID int) (*domain.TalkUser, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	var talk *domain.Talk
	err := s.transactor.RunInTx(ctx, func(ctx context.Context) error {
		var err error
		talk, err = s.getOwned(ctx, userID, talkID)
		if err != nil {
			return err
		}
		if !talk.State.Writable() {
			return domain.ErrInvalidState
		}
		return s.talkRepo.Delete(ctx, talkID)
	})
	if err != nil {
		return nil, err
	}
	return toTalkUser(talk, nil), nil
}

// SubmitDraft applies the final edits and moves a draft to SUBMITTED,
// sending the same confirmation email as Submit. The field update, the
// state change, and the email are one transactional unit.
func (s *talkService) SubmitDraft(ctx context.Context, userID int, tu *domain.TalkUser) (*domain.TalkUser, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("get user: %w", err)
	}

	var talk *domain.Talk
	err = s.transactor.RunInTx(ctx, func(ctx context.Context) error {
		var err error
		talk, err = s.getOwned(ctx, userID, tu.ID)
		if err != nil {
			return err
		}
		if !talk.State.CanTransition(domain.StateSubmitted) {
			return domain.ErrInvalidState
		}
		applyEdit(talk, tu)
		if err := s.talkRepo.Update(ctx, talk); err != nil {
			return err
		}
		if err := s.talkRepo.UpdateState(ctx, talk.ID, domain.StateSubmitted); err != nil {
			return err
		}
		talk.State = domain.StateSubmitted
		return s.sendConfirmation(ctx, user, talk)
	})
	if err != nil {
		return nil, err
	}
	return toTalkUser(talk, user), nil
}

// GetOne returns a single talk, owner-checked.
func (s *talkService) GetOne(ctx context.Context, userID, talkID int) (*domain.TalkUser, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	talk, err := s.getOwned(ctx, userID, talkID)
	if err != nil {
		return nil, err
	}
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("get user: %w", err)
	}
	return toTalkUser(talk, user), nil
}

// FindAll returns the caller's talks whose state is one of states.
func (s *talkService) FindAll(ctx context.Context, userID int, states ...domain.TalkState) ([]*domain.TalkUser, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	talks, err := s.talkRepo.ListByUserAndStates(ctx, userID, states)
	if err != nil {
		return nil, fmt.Errorf("list talks: %w", err)
	}
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("get user: %w", err)
	}
	out := make([]*domain.TalkUser, len(talks))
	for i, t := range talks {
		out[i] = toTalkUser(t, user)
	}
	return out, nil
}

func (s *talkService) decide(ctx context.Context, talkID int, next domain.TalkState) (*domain.TalkUser, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	var talk *domain.Talk
	err := s.transactor.RunInTx(ctx, func(ctx context.Context) error {
		var err error
		talk, err = s.talkRepo.GetByID(ctx, talkID)
		if err != nil {
			return err
		}
		if !talk.State.CanTransition(next) {
			return domain.ErrInvalidState
		}
		if err := s.talkRepo.UpdateState(ctx, talkID, next); err != nil {
			return err
		}
		talk.State = next
		return nil
	})
	if err != nil {
		return nil, err
	}
	return toTalkUser(talk, nil), nil
}

// Accept moves a submitted talk to ACCEPTED (committee decision).
func (s *talkService) Accept(ctx context.Context, talkID int) (*domain.TalkUser, error) {
	return s.decide(ctx, talkID, domain.StateAccepted)
}

// Refuse moves a submitted talk to REFUSED (committee decision).
func (s *talkService) Refuse(ctx context.Context, talkID int) (*domain.TalkUser, error) {
	return s.decide(ctx, talkID, domain.StateRefused)
}

// Confirm lets the owner confirm an accepted talk will be given.
func (s *talkService) Confirm(ctx context.Context, userID, talkID int) (*domain.TalkUser, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	var talk *domain.Talk
	err := s.transactor.RunInTx(ctx, func(ctx context.Context) error {
		var err error
		talk, err = s.getOwned(ctx, userID, talkID)
		if err != nil {
			return err
		}
		if !talk.State.CanTransition(domain.StateConfirmed) {
			return domain.ErrInvalidState
		}
		if err := s.talkRepo.UpdateState(ctx, talkID, domain.StateConfirmed); err != nil {
			return err
		}
		talk.State = domain.StateConfirmed
		return nil
	})
	if err != nil {
		return nil, err
	}
	return toTalkUser(talk, nil), nil
}

// ListSubmitted returns all talks pending a decision, with speaker identity
// attached for the committee view.
func (s *talkService) ListSubmitted(ctx context.Context) ([]*domain.TalkUser, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	talks, err := s.talkRepo.ListByState(ctx, domain.StateSubmitted)
	if err != nil {
		return nil, fmt.Errorf("list submitted talks: %w", err)
	}
	out := make([]*domain.TalkUser, len(talks))
	for i, t := range talks {
		owner, err := s.userRepo.GetByID(ctx, t.UserID)
		if err != nil {
			return nil, fmt.Errorf("get talk owner: %w", err)
		}
		out[i] = toTalkUser(t, owner)
	}
	return out, nil
}

func (s *talkService) TalkFormats(ctx context.Context) ([]*domain.TalkFormat, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()
	return s.refRepo.ListTalkFormats(ctx)
}

func (s *talkService) Tracks(ctx context.Context) ([]*domain.Track, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()
	return s.refRepo.ListTracks(ctx)
}

// sendConfirmation sends the submission confirmation. Errors propagate so
// the enclosing transaction rolls back: a talk is never recorded as
// submitted without its confirmation going out.
func (s *talkService) sendConfirmation(ctx context.Context, user *domain.User, talk *domain.Talk) error {
	data := &domain.TalkConfirmationEmailData{
		Email:    user.Email,
		Name:     user.FirstName,
		Talk:     talk.Name,
		Hostname: s.hostname,
		TalkID:   talk.ID,
	}
	if err := s.emailService.SendTalkConfirmation(ctx, data); err != nil {
		return fmt.Errorf("send confirmation email: %w", err)
	}
	return nil
}
