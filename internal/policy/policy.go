package policy

import (
	"log/slog"
	"net/http"

	"github.com/skillbridge/marketplace/internal/models"
)

type Action string

const (
	ActionRead  Action = "read"
	ActionWrite Action = "write"
)

// ActionForMethod classifies an HTTP method the way safe-method checks do.
func ActionForMethod(method string) Action {
	switch method {
	case http.MethodGet, http.MethodHead, http.MethodOptions:
		return ActionRead
	}
	return ActionWrite
}

// Predicate decides one named rule for (actor, action, resource). The actor
// may be nil (anonymous).
type Predicate func(actor *models.User, action Action, res Resource) bool

// Evaluator composes named predicates into per-endpoint decisions. Pure:
// the only side effect is debug logging of each decision.
type Evaluator struct {
	log *slog.Logger
}

func New(log *slog.Logger) *Evaluator {
	return &Evaluator{log: log}
}

// Allow is the single entry point: logical OR across the given predicates,
// deny when none matches.
func (e *Evaluator) Allow(actor *models.User, action Action, res Resource, preds ...Predicate) bool {
	for _, p := range preds {
		if p(actor, action, res) {
			e.decision(actor, action, res, true)
			return true
		}
	}
	e.decision(actor, action, res, false)
	return false
}

func (e *Evaluator) decision(actor *models.User, action Action, res Resource, allowed bool) {
	role := "anonymous"
	var actorID uint
	if actor != nil {
		role = string(actor.Role)
		actorID = actor.ID
	}
	e.log.Debug("policy decision",
		"allowed", allowed,
		"action", string(action),
		"resource", string(res.Kind),
		"actor_id", actorID,
		"role", role,
	)
}

func authenticated(actor *models.User) bool {
	return actor != nil && actor.Active
}

// isAdmin implements the admin override: the ADMIN role or the platform
// staff/superuser flags pass every owner and provider check unconditionally.
func isAdmin(actor *models.User) bool {
	return authenticated(actor) && actor.IsAdmin()
}

// AdminOnly permits admins and platform staff, nothing else.
func (e *Evaluator) AdminOnly(actor *models.User, _ Action, _ Resource) bool {
	return isAdmin(actor)
}

// AdminOrReadOnly permits reads to everyone and writes to admins.
func (e *Evaluator) AdminOrReadOnly(actor *models.User, action Action, res Resource) bool {
	if action == ActionRead {
		return true
	}
	return isAdmin(actor)
}

// ProviderOrReadOnly permits reads to everyone and writes to PROVIDER users.
func (e *Evaluator) ProviderOrReadOnly(actor *models.User, action Action, _ Resource) bool {
	if action == ActionRead {
		return true
	}
	if isAdmin(actor) {
		return true
	}
	return authenticated(actor) && actor.Role == models.RoleProvider
}

// OwnerOrReadOnly permits reads to everyone and writes to the resource owner.
func (e *Evaluator) OwnerOrReadOnly(actor *models.User, action Action, res Resource) bool {
	if action == ActionRead {
		return true
	}
	if isAdmin(actor) {
		return true
	}
	return authenticated(actor) && actor.ID == res.OwnerID
}

// OwnerOnly permits only the resource owner, for objects that are not
// publicly readable.
func (e *Evaluator) OwnerOnly(actor *models.User, _ Action, res Resource) bool {
	if isAdmin(actor) {
		return true
	}
	return authenticated(actor) && actor.ID == res.OwnerID
}

// SeekerOnly permits only SEEKER users.
func (e *Evaluator) SeekerOnly(actor *models.User, _ Action, _ Resource) bool {
	return authenticated(actor) && actor.Role == models.RoleSeeker
}

// Participant covers booking and complaint visibility: the owner (seeker or
// filer), the provider of a booked service, or admin.
func (e *Evaluator) Participant(actor *models.User, _ Action, res Resource) bool {
	if isAdmin(actor) {
		return true
	}
	if !authenticated(actor) {
		return false
	}
	if actor.ID == res.OwnerID {
		return true
	}
	return res.ProviderID != 0 && actor.ID == res.ProviderID
}
