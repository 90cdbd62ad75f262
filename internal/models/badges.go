package models

// BadgeColor is the presentation category attached to a derived status.
type BadgeColor string

const (
	BadgeSuccess   BadgeColor = "success"
	BadgeDanger    BadgeColor = "danger"
	BadgeWarning   BadgeColor = "warning"
	BadgeInfo      BadgeColor = "info"
	BadgeSecondary BadgeColor = "secondary"
)

// BadgeNeutralIcon is used whenever a status has no dedicated icon.
const BadgeNeutralIcon = "fa-circle"

var passStatusColors = map[PassStatus]BadgeColor{
	PassStatusPassing: BadgeSuccess,
	PassStatusFailing: BadgeDanger,
}

var notificationStatusColors = map[NotificationStatus]BadgeColor{
	NotificationStatusPending: BadgeWarning,
	NotificationStatusSent:    BadgeSuccess,
	NotificationStatusFailed:  BadgeDanger,
	NotificationStatusRead:    BadgeInfo,
}

var notificationStatusIcons = map[NotificationStatus]string{
	NotificationStatusPending: "fa-clock",
	NotificationStatusSent:    "fa-check",
	NotificationStatusFailed:  "fa-exclamation-circle",
	NotificationStatusRead:    "fa-eye",
}

// Color maps a pass status onto its badge color. Unknown values fail closed
// to the neutral category instead of panicking.
func (s PassStatus) Color() BadgeColor {
	if c, ok := passStatusColors[s]; ok {
		return c
	}
	return BadgeSecondary
}

// Color maps a notification status onto its badge color.
func (s NotificationStatus) Color() BadgeColor {
	if c, ok := notificationStatusColors[s]; ok {
		return c
	}
	return BadgeSecondary
}

// Icon maps a notification status onto its FontAwesome icon name.
func (s NotificationStatus) Icon() string {
	if icon, ok := notificationStatusIcons[s]; ok {
		return icon
	}
	return BadgeNeutralIcon
}
