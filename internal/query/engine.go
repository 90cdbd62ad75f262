// Package query implements the search/filter/aggregate pipeline applied to
// record snapshots before the console renders them. It never re-sorts: display
// order is fetch order.
package query

import (
	"strings"

	"github.com/CristopherGuzmanVelarde/school-admin-api/internal/models"
)

// FacetAll is the sentinel facet value that disables a filter dimension.
const FacetAll = "all"

// Placeholders shown when a foreign key cannot be resolved.
const (
	StudentNotFound = "Estudiante no encontrado"
	TeacherNotFound = "Profesor no encontrado"
)

// Lookup resolves opaque identifiers to display names.
type Lookup map[string]string

// StudentLookup indexes a student directory by id.
func StudentLookup(students []models.Student) Lookup {
	lookup := make(Lookup, len(students))
	for _, s := range students {
		lookup[s.ID] = s.DisplayName()
	}
	return lookup
}

// TeacherLookup indexes a teacher directory by id.
func TeacherLookup(teachers []models.Teacher) Lookup {
	lookup := make(Lookup, len(teachers))
	for _, t := range teachers {
		lookup[t.ID] = t.DisplayName()
	}
	return lookup
}

// DisplayName resolves an id against a lookup, returning the placeholder for
// absent ids. It never fails.
func DisplayName(id string, lookup Lookup, placeholder string) string {
	if name, ok := lookup[id]; ok && name != "" {
		return name
	}
	return placeholder
}

// RecipientName resolves a notification recipient against both directories.
// Unknown recipient types fall back to the raw id.
func RecipientName(recipientID string, recipientType models.RecipientType, students, teachers Lookup) string {
	switch recipientType {
	case models.RecipientStudent:
		return DisplayName(recipientID, students, StudentNotFound)
	case models.RecipientTeacher:
		return DisplayName(recipientID, teachers, TeacherNotFound)
	default:
		return recipientID
	}
}

// Stats summarises a record scope in a single pass.
type Stats struct {
	Total    int            `json:"total"`
	ByStatus map[string]int `json:"byStatus"`
}

// GradeFacets are the conjunctive filter dimensions for grades.
type GradeFacets struct {
	AcademicPeriod string
	EvaluationType string
}

// NotificationFacets are the conjunctive filter dimensions for notifications.
type NotificationFacets struct {
	RecipientType    string
	NotificationType string
	Status           string
	Channel          string
}

func matchesFacet(facet, value string) bool {
	return facet == "" || facet == FacetAll || facet == value
}

func containsFold(haystack, needle string) bool {
	return strings.Contains(strings.ToLower(haystack), needle)
}

// SearchGrades keeps grades whose resolved student name, course label or
// evaluation type contains the term, case-insensitively. An empty term keeps
// everything, order untouched.
func SearchGrades(records []models.GradeRecord, term string, students Lookup) []models.GradeRecord {
	if strings.TrimSpace(term) == "" {
		return records
	}
	needle := strings.ToLower(term)
	matched := make([]models.GradeRecord, 0, len(records))
	for _, g := range records {
		if containsFold(DisplayName(g.StudentID, students, StudentNotFound), needle) ||
			containsFold(models.CourseLabel(g.CourseID), needle) ||
			containsFold(string(g.EvaluationType), needle) {
			matched = append(matched, g)
		}
	}
	return matched
}

// FilterGrades applies the facet conjunction; the "all" sentinel disables a
// dimension.
func FilterGrades(records []models.GradeRecord, facets GradeFacets) []models.GradeRecord {
	matched := make([]models.GradeRecord, 0, len(records))
	for _, g := range records {
		if matchesFacet(facets.AcademicPeriod, string(g.AcademicPeriod)) &&
			matchesFacet(facets.EvaluationType, string(g.EvaluationType)) {
			matched = append(matched, g)
		}
	}
	return matched
}

// AggregateGrades counts the scope by derived pass status.
func AggregateGrades(records []models.GradeRecord) Stats {
	stats := Stats{Total: len(records), ByStatus: make(map[string]int)}
	for _, g := range records {
		stats.ByStatus[string(g.PassStatus())]++
	}
	return stats
}

// SearchNotifications keeps notifications whose resolved recipient name,
// message or notification type contains the term, case-insensitively.
func SearchNotifications(records []models.NotificationRecord, term string, students, teachers Lookup) []models.NotificationRecord {
	if strings.TrimSpace(term) == "" {
		return records
	}
	needle := strings.ToLower(term)
	matched := make([]models.NotificationRecord, 0, len(records))
	for _, n := range records {
		if containsFold(RecipientName(n.RecipientID, n.RecipientType, students, teachers), needle) ||
			containsFold(n.Message, needle) ||
			containsFold(string(n.NotificationType), needle) {
			matched = append(matched, n)
		}
	}
	return matched
}

// FilterNotifications applies the facet conjunction across recipient type,
// notification type, status and channel.
func FilterNotifications(records []models.NotificationRecord, facets NotificationFacets) []models.NotificationRecord {
	matched := make([]models.NotificationRecord, 0, len(records))
	for _, n := range records {
		if matchesFacet(facets.RecipientType, string(n.RecipientType)) &&
			matchesFacet(facets.NotificationType, string(n.NotificationType)) &&
			matchesFacet(facets.Status, string(n.Status)) &&
			matchesFacet(facets.Channel, string(n.Channel)) {
			matched = append(matched, n)
		}
	}
	return matched
}

// AggregateNotifications counts the scope by delivery status. Statistics
// describe the lifecycle scope, not the transient search view, so callers
// must aggregate before searching or faceting.
func AggregateNotifications(records []models.NotificationRecord) Stats {
	stats := Stats{Total: len(records), ByStatus: make(map[string]int)}
	for _, n := range records {
		stats.ByStatus[string(n.Status)]++
	}
	return stats
}
