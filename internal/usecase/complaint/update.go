package complaint

import (
	"context"
	"fmt"
	"time"

	"github.com/skillbridge/marketplace/internal/audit"
	domain "github.com/skillbridge/marketplace/internal/domain/complaint"
	"github.com/skillbridge/marketplace/internal/httperr"
	"github.com/skillbridge/marketplace/internal/models"
)

// ======================================================
// INPUT
// ======================================================

type UpdateComplaintInput struct {
	// Filer-editable.
	Description *string

	// Admin-only.
	Status        *string
	AdminResponse *string

	IPAddress string
	RequestID string
}

// ======================================================
// USE CASE
// ======================================================

type UpdateComplaint struct {
	repo   domain.Repository
	events Events
	audit  *audit.Dispatcher
}

func NewUpdateComplaint(
	repo domain.Repository,
	events Events,
	auditor *audit.Dispatcher,
) *UpdateComplaint {
	return &UpdateComplaint{repo: repo, events: events, audit: auditor}
}

// Execute mutates an already-loaded, already-authorized complaint. Status and
// admin response stay admin-only even for the filer. Entering RESOLVED
// notifies the filer; re-resolving after a reopen notifies again.
func (uc *UpdateComplaint) Execute(
	ctx context.Context,
	actor *models.User,
	cp *models.Complaint,
	in UpdateComplaintInput,
) error {

	if !actor.IsAdmin() {
		if in.Status != nil {
			return httperr.ErrField("status", "admin_only")
		}
		if in.AdminResponse != nil {
			return httperr.ErrField("admin_response", "admin_only")
		}
	}

	if in.Description != nil {
		cp.Description = *in.Description
	}

	entered := false
	if in.Status != nil {
		var err error
		entered, err = domain.ApplyStatus(cp, domain.Status(*in.Status), time.Now().UTC())
		if err != nil {
			return err
		}
	}
	if in.AdminResponse != nil {
		cp.AdminResponse = *in.AdminResponse
	}

	if err := uc.repo.Update(ctx, cp); err != nil {
		return err
	}

	if entered {
		uc.events.ComplaintResolved(cp)
	}

	if actor.IsAdmin() && (in.Status != nil || in.AdminResponse != nil) {
		action := audit.ActionRespond
		if entered {
			action = audit.ActionResolve
		}
		adminID := actor.ID
		uc.audit.Dispatch(audit.Event{
			AdminUserID: &adminID,
			Action:      action,
			Resource:    audit.ResourceComplaint,
			ResourceID:  cp.ID,
			Description: fmt.Sprintf("complaint %d moved to %s", cp.ID, cp.Status),
			IPAddress:   in.IPAddress,
			RequestID:   in.RequestID,
		})
	}

	return nil
}
