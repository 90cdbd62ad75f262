package models

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// RecipientType identifies who a notification is addressed to.
type RecipientType string

const (
	RecipientStudent RecipientType = "STUDENT"
	RecipientTeacher RecipientType = "TEACHER"
)

// NotificationType identifies why a notification was produced.
type NotificationType string

const (
	NotificationGradePublished  NotificationType = "GRADE_PUBLISHED"
	NotificationGradeUpdated    NotificationType = "GRADE_UPDATED"
	NotificationLowPerformance  NotificationType = "LOW_PERFORMANCE"
	NotificationGeneralNotice   NotificationType = "GENERAL_NOTICE"
	NotificationMeetingReminder NotificationType = "MEETING_REMINDER"
)

// NotificationChannel identifies the delivery transport.
type NotificationChannel string

const (
	ChannelEmail NotificationChannel = "EMAIL"
	ChannelSMS   NotificationChannel = "SMS"
	ChannelPush  NotificationChannel = "PUSH"
	ChannelInApp NotificationChannel = "IN_APP"
)

// NotificationStatus is the delivery lifecycle state.
type NotificationStatus string

const (
	NotificationStatusPending NotificationStatus = "PENDING"
	NotificationStatusSent    NotificationStatus = "SENT"
	NotificationStatusFailed  NotificationStatus = "FAILED"
	NotificationStatusRead    NotificationStatus = "READ"
	// NotificationStatusDeleted shows up in the wild as one of several
	// redundant deletion markers; see FlexBool and the lifecycle package.
	NotificationStatusDeleted NotificationStatus = "DELETED"
)

// RecipientTypeLabels maps recipient types onto display labels.
var RecipientTypeLabels = map[RecipientType]string{
	RecipientStudent: "Estudiante",
	RecipientTeacher: "Profesor",
}

// NotificationTypeLabels maps notification types onto display labels.
var NotificationTypeLabels = map[NotificationType]string{
	NotificationGradePublished:  "Calificación Publicada",
	NotificationGradeUpdated:    "Calificación Actualizada",
	NotificationLowPerformance:  "Alerta de Bajo Rendimiento",
	NotificationGeneralNotice:   "Aviso General",
	NotificationMeetingReminder: "Recordatorio de Reunión",
}

// NotificationChannelLabels maps channels onto display labels.
var NotificationChannelLabels = map[NotificationChannel]string{
	ChannelEmail: "Correo",
	ChannelSMS:   "SMS",
	ChannelPush:  "Push",
	ChannelInApp: "En Aplicación",
}

// NotificationStatusLabels maps statuses onto display labels.
var NotificationStatusLabels = map[NotificationStatus]string{
	NotificationStatusPending: "Pendiente",
	NotificationStatusSent:    "Enviada",
	NotificationStatusFailed:  "Fallida",
	NotificationStatusRead:    "Leída",
	NotificationStatusDeleted: "Eliminada",
}

// FlexBool decodes a boolean that upstream producers encode inconsistently as
// a JSON bool, the string "true", or the number 1. The raw token is preserved
// so re-encoding does not invent a value that was never there.
type FlexBool struct {
	raw json.RawMessage
}

// FlexTrue builds an asserted FlexBool, mainly for fixtures and tests.
func FlexTrue() FlexBool {
	return FlexBool{raw: json.RawMessage("true")}
}

// UnmarshalJSON keeps the raw token whatever its JSON type.
func (f *FlexBool) UnmarshalJSON(data []byte) error {
	f.raw = append(f.raw[:0], data...)
	return nil
}

// MarshalJSON re-emits the original token, or null when no value was present.
func (f FlexBool) MarshalJSON() ([]byte, error) {
	if len(f.raw) == 0 {
		return []byte("null"), nil
	}
	return f.raw, nil
}

// Asserted reports whether the field affirmatively claims deletion. The string
// comparison is case-sensitive, matching what the producers actually send.
func (f FlexBool) Asserted() bool {
	switch strings.TrimSpace(string(f.raw)) {
	case "true", `"true"`, "1":
		return true
	}
	return false
}

// NotificationRecord is a notification owned by the remote record store.
// Deleted, IsDeleted and Active are redundant soft-delete markers written
// inconsistently by upstream producers; no caller may interpret them directly,
// the lifecycle resolver is the single source of truth.
type NotificationRecord struct {
	ID               string              `json:"id"`
	RecipientID      string              `json:"recipientId"`
	RecipientType    RecipientType       `json:"recipientType"`
	NotificationType NotificationType    `json:"notificationType"`
	Channel          NotificationChannel `json:"channel"`
	Message          string              `json:"message"`
	Status           NotificationStatus  `json:"status"`
	CreatedAt        time.Time           `json:"createdAt"`
	SentAt           *time.Time          `json:"sentAt,omitempty"`

	Deleted   FlexBool `json:"deleted,omitempty"`
	IsDeleted *bool    `json:"isDeleted,omitempty"`
	Active    *bool    `json:"active,omitempty"`
}

// ShortID renders the opaque identifier as the console's XXXX-XXXX form.
func (n NotificationRecord) ShortID() string {
	if n.ID == "" {
		return "N/A"
	}
	short := strings.ToUpper(n.ID)
	if len(short) > 8 {
		short = short[:8]
	}
	if len(short) <= 4 {
		return short
	}
	return fmt.Sprintf("%s-%s", short[:4], short[4:])
}
