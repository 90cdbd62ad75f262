// Package lifecycle canonicalizes the redundant soft-delete markers that the
// record store writes inconsistently. It is the only place in the codebase
// allowed to interpret those fields.
package lifecycle

import (
	"github.com/CristopherGuzmanVelarde/school-admin-api/internal/models"
)

// Signals is the normalized deletion signal set of a record. Any single
// asserted signal marks the record deleted; an empty set means not deleted.
type Signals struct {
	Deleted   models.FlexBool
	Status    string
	IsDeleted *bool
	Active    *bool
}

// IsDeleted resolves the signal set into the canonical deleted state. It is
// pure and total: unrecognized combinations resolve to not-deleted.
func IsDeleted(s Signals) bool {
	if s.Deleted.Asserted() {
		return true
	}
	if s.Status == string(models.NotificationStatusDeleted) {
		return true
	}
	if s.IsDeleted != nil && *s.IsDeleted {
		return true
	}
	if s.Active != nil && !*s.Active {
		return true
	}
	return false
}

// NotificationSignals extracts the signal set from a notification record.
func NotificationSignals(n models.NotificationRecord) Signals {
	return Signals{
		Deleted:   n.Deleted,
		Status:    string(n.Status),
		IsDeleted: n.IsDeleted,
		Active:    n.Active,
	}
}

// NotificationDeleted reports the canonical deleted state of a notification.
func NotificationDeleted(n models.NotificationRecord) bool {
	return IsDeleted(NotificationSignals(n))
}

// GradeDeleted reports the canonical deleted state of a grade. Grades carry a
// single active flag, so the multi-signal resolution degenerates to its
// negation.
func GradeDeleted(g models.GradeRecord) bool {
	return !g.Active
}
