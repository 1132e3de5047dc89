// Package policy centralizes authorization decisions for resource creation
// and mentorship-request transitions. Handlers and the mentorship engine call
// Authorize instead of performing ad-hoc role checks.
package policy

import (
	"github.com/alumni-connect/connect-api/internal/models"
)

type Action string

const (
	ActionCreateOpportunity        Action = "opportunity.create"
	ActionCreateApplication        Action = "application.create"
	ActionCreateStory              Action = "story.create"
	ActionCreateMentorshipRequest  Action = "mentorship.create"
	ActionResolveMentorshipRequest Action = "mentorship.resolve"
	ActionCreateScholarship        Action = "scholarship.create"
	ActionApplyScholarship         Action = "scholarship.apply"
	ActionManageScholarship        Action = "scholarship.manage"
	ActionDeleteUser               Action = "user.delete"
)

type Reason string

const (
	ReasonWrongRole     Reason = "wrong-role"
	ReasonNotOwner      Reason = "not-owner"
	ReasonSelfDelete    Reason = "self-delete-forbidden"
	ReasonUnknownAction Reason = "unknown-action"
)

// Actor is the identity performing the action. Resolved by the auth
// middleware; the policy only reads it.
type Actor struct {
	ID   string
	Role models.Role
}

// Resource carries the parts of the target resource the rules inspect. Only
// the fields relevant to the action need to be set.
type Resource struct {
	ApplicantID string // application being created
	StudentID   string // mentorship request being created
	MentorID    string // mentorship request being resolved
	OwnerID     string // scholarship being managed
	TargetID    string // user being deleted
}

type Decision struct {
	Allowed bool
	Reason  Reason
}

func allow() Decision        { return Decision{Allowed: true} }
func deny(r Reason) Decision { return Decision{Reason: r} }

// Err returns nil for an allowed decision and a *DeniedError otherwise.
func (d Decision) Err() error {
	if d.Allowed {
		return nil
	}
	return &DeniedError{Reason: d.Reason}
}

// DeniedError is the typed failure a denial propagates as.
type DeniedError struct {
	Reason Reason
}

func (e *DeniedError) Error() string { return "forbidden: " + string(e.Reason) }

// Authorize maps (actor, action, resource) to a decision. It is pure and
// total: no side effects, deterministic, and every input has a defined
// outcome, including unknown actions and roles.
func Authorize(actor Actor, action Action, res Resource) Decision {
	switch action {
	case ActionCreateOpportunity, ActionCreateStory:
		if actor.Role == models.RoleAlumni || actor.Role == models.RoleAdmin {
			return allow()
		}
		return deny(ReasonWrongRole)

	case ActionCreateApplication:
		if actor.Role != models.RoleStudent {
			return deny(ReasonWrongRole)
		}
		if res.ApplicantID != actor.ID {
			return deny(ReasonNotOwner)
		}
		return allow()

	case ActionCreateMentorshipRequest:
		if actor.Role != models.RoleStudent {
			return deny(ReasonWrongRole)
		}
		if res.StudentID != actor.ID {
			return deny(ReasonNotOwner)
		}
		return allow()

	case ActionResolveMentorshipRequest:
		switch actor.Role {
		case models.RoleAdmin:
			return allow()
		case models.RoleAlumni:
			if res.MentorID != actor.ID {
				return deny(ReasonNotOwner)
			}
			return allow()
		}
		return deny(ReasonWrongRole)

	case ActionCreateScholarship:
		if actor.Role == models.RoleAlumni || actor.Role == models.RoleAdmin {
			return allow()
		}
		return deny(ReasonWrongRole)

	case ActionApplyScholarship:
		if actor.Role != models.RoleStudent {
			return deny(ReasonWrongRole)
		}
		if res.ApplicantID != actor.ID {
			return deny(ReasonNotOwner)
		}
		return allow()

	case ActionManageScholarship:
		switch actor.Role {
		case models.RoleAdmin:
			return allow()
		case models.RoleAlumni:
			if res.OwnerID != actor.ID {
				return deny(ReasonNotOwner)
			}
			return allow()
		}
		return deny(ReasonWrongRole)

	case ActionDeleteUser:
		if actor.Role != models.RoleAdmin {
			return deny(ReasonWrongRole)
		}
		if res.TargetID == actor.ID {
			return deny(ReasonSelfDelete)
		}
		return allow()
	}
	return deny(ReasonUnknownAction)
}

// ActorFor adapts a loaded user row into the policy's view of an identity.
func ActorFor(u *models.User) Actor {
	return Actor{ID: u.ID, Role: u.Role}
}
