package complaint

import (
	"time"

	"github.com/skillbridge/marketplace/internal/httperr"
	"github.com/skillbridge/marketplace/internal/models"
)

// ApplyStatus moves a complaint to the requested status. The resolved
// timestamp is set exactly when the complaint enters RESOLVED and cleared
// when it leaves. Returns whether this call entered RESOLVED, so the caller
// re-notifies once per entry.
func ApplyStatus(cp *models.Complaint, to Status, now time.Time) (bool, error) {
	if !to.Valid() {
		return false, httperr.ErrField("status", "invalid_status")
	}

	from := Status(cp.Status)
	cp.Status = string(to)

	if to == StatusResolved {
		if from == StatusResolved {
			return false, nil
		}
		cp.ResolvedAt = &now
		return true, nil
	}

	cp.ResolvedAt = nil
	return false, nil
}
