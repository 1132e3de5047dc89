// Package mentorship owns the mentorship-request lifecycle: a request starts
// pending and transitions exactly once to accepted or rejected. The engine
// holds no state of its own; the store is the single source of truth and the
// terminal transition is an atomic conditional write there, so correctness
// holds even with multiple API instances sharing one database.
package mentorship

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/alumni-connect/connect-api/internal/models"
	"github.com/alumni-connect/connect-api/internal/policy"
	"github.com/alumni-connect/connect-api/internal/store"
	"github.com/alumni-connect/connect-api/internal/utils"
)

type Engine struct {
	store *store.Store
	Now   func() time.Time
}

func NewEngine(s *store.Store) *Engine {
	return &Engine{store: s, Now: time.Now}
}

// Submit creates a new request in pending state. Only a student may submit,
// and only naming themselves; the mentor must be an existing alumni user.
// Nothing limits how many pending requests a pair may have open.
func (e *Engine) Submit(ctx context.Context, actor *models.User, mentorID, subject, message string) (*models.MentorshipRequest, error) {
	dec := policy.Authorize(policy.ActorFor(actor), policy.ActionCreateMentorshipRequest, policy.Resource{StudentID: actor.ID})
	if err := dec.Err(); err != nil {
		return nil, err
	}

	subject = strings.TrimSpace(subject)
	message = strings.TrimSpace(message)
	if subject == "" {
		return nil, &models.ValidationError{Field: "subject", Detail: "must not be empty"}
	}
	if message == "" {
		return nil, &models.ValidationError{Field: "message", Detail: "must not be empty"}
	}

	mentor, err := e.store.GetUserByID(ctx, mentorID)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return nil, &models.ValidationError{Field: "mentor_id", Detail: "no such user"}
		}
		return nil, err
	}
	if mentor.Role != models.RoleAlumni {
		return nil, &models.ValidationError{Field: "mentor_id", Detail: "user is not an alumni mentor"}
	}

	req := &models.MentorshipRequest{
		ID:        utils.GenerateID(),
		StudentID: actor.ID,
		MentorID:  mentor.ID,
		Subject:   subject,
		Message:   message,
		Status:    models.RequestPending,
		CreatedAt: e.Now(),
	}
	if err := e.store.CreateMentorshipRequest(ctx, req); err != nil {
		return nil, err
	}
	return req, nil
}

// Resolve sets a pending request to the given terminal decision. Only the
// named mentor may resolve; admins bypass the mentor-identity check. A request
// that is no longer pending yields a conflict naming its current status, so a
// client can tell "already accepted" from "already rejected". Under a race
// between two resolvers the conditional write lets exactly one win.
func (e *Engine) Resolve(ctx context.Context, actor *models.User, requestID string, decision models.RequestStatus) (*models.MentorshipRequest, error) {
	if decision != models.RequestAccepted && decision != models.RequestRejected {
		return nil, &models.ValidationError{Field: "status", Detail: "must be accepted or rejected"}
	}

	req, err := e.store.GetMentorshipRequestByID(ctx, requestID)
	if err != nil {
		return nil, err
	}

	dec := policy.Authorize(policy.ActorFor(actor), policy.ActionResolveMentorshipRequest, policy.Resource{MentorID: req.MentorID})
	if err := dec.Err(); err != nil {
		return nil, err
	}

	ok, err := e.store.ResolveMentorshipRequest(ctx, requestID, decision)
	if err != nil {
		return nil, err
	}
	if !ok {
		// lost the race or stale client; report what the record says now
		current, err := e.store.GetMentorshipRequestByID(ctx, requestID)
		if err != nil {
			return nil, err
		}
		return nil, &models.ConflictError{Detail: "request already " + string(current.Status)}
	}
	return e.store.GetMentorshipRequestByID(ctx, requestID)
}

// ListFor returns the requests the viewer may see, newest first.
func (e *Engine) ListFor(ctx context.Context, viewer *models.User) ([]*models.MentorshipRequest, error) {
	return e.store.ListMentorshipRequestsFor(ctx, viewer)
}
