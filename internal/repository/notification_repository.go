package repository

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/CristopherGuzmanVelarde/school-admin-api/internal/lifecycle"
	"github.com/CristopherGuzmanVelarde/school-admin-api/internal/models"
	"github.com/CristopherGuzmanVelarde/school-admin-api/internal/remote"
	appErrors "github.com/CristopherGuzmanVelarde/school-admin-api/pkg/errors"
)

// NotificationPayload is the mutable portion of a notification record.
type NotificationPayload struct {
	RecipientID      string                     `json:"recipientId"`
	RecipientType    models.RecipientType       `json:"recipientType"`
	NotificationType models.NotificationType    `json:"notificationType"`
	Channel          models.NotificationChannel `json:"channel"`
	Message          string                     `json:"message"`
}

// MassSendPayload targets a whole recipient group with one message.
type MassSendPayload struct {
	RecipientType    models.RecipientType       `json:"recipientType"`
	NotificationType models.NotificationType    `json:"notificationType"`
	Channel          models.NotificationChannel `json:"channel"`
	Message          string                     `json:"message"`
}

// NotificationRepository provides resilient access to the remote notification
// collection.
type NotificationRepository struct {
	client *remote.Client
	logger *zap.Logger
}

// NewNotificationRepository constructs a notification repository.
func NewNotificationRepository(client *remote.Client, logger *zap.Logger) *NotificationRepository {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &NotificationRepository{client: client, logger: logger}
}

// ListAll fetches the full notification collection, treating a 404 on the
// collection endpoint as an empty data set.
func (r *NotificationRepository) ListAll(ctx context.Context) ([]models.NotificationRecord, error) {
	return r.list(ctx, "")
}

// ListByRecipient fetches all notifications addressed to one recipient.
func (r *NotificationRepository) ListByRecipient(ctx context.Context, recipientID string) ([]models.NotificationRecord, error) {
	return r.list(ctx, "/recipient/"+recipientID)
}

// ListByType fetches all notifications of one type.
func (r *NotificationRepository) ListByType(ctx context.Context, t models.NotificationType) ([]models.NotificationRecord, error) {
	return r.list(ctx, "/type/"+string(t))
}

// ListByStatus fetches all notifications in one delivery state.
func (r *NotificationRepository) ListByStatus(ctx context.Context, s models.NotificationStatus) ([]models.NotificationRecord, error) {
	return r.list(ctx, "/status/"+string(s))
}

// ListUnread fetches the unread notifications of one recipient.
func (r *NotificationRepository) ListUnread(ctx context.Context, recipientID string) ([]models.NotificationRecord, error) {
	return r.list(ctx, "/recipient/"+recipientID+"/unread")
}

func (r *NotificationRepository) list(ctx context.Context, path string) ([]models.NotificationRecord, error) {
	var records []models.NotificationRecord
	if err := r.client.Get(ctx, path, &records); err != nil {
		if appErrors.IsNotFound(err) {
			r.logger.Warn("notification list endpoint missing, returning empty set", zap.String("path", path))
			return []models.NotificationRecord{}, nil
		}
		return nil, err
	}
	if records == nil {
		records = []models.NotificationRecord{}
	}
	return records, nil
}

// ListInactive fetches soft-deleted notifications, preferring the server-side
// filter and degrading to a full fetch filtered through the lifecycle
// resolver when the remote contract rejects the query.
func (r *NotificationRepository) ListInactive(ctx context.Context) ([]models.NotificationRecord, error) {
	var records []models.NotificationRecord
	err := r.client.Get(ctx, "?deleted=true", &records)
	if err == nil {
		if records == nil {
			records = []models.NotificationRecord{}
		}
		return records, nil
	}

	r.logger.Warn("server-side deleted filter unavailable, falling back to client-side filter", zap.Error(err))
	all, fallbackErr := r.ListAll(ctx)
	if fallbackErr != nil {
		if appErrors.IsNotFound(err) {
			return []models.NotificationRecord{}, nil
		}
		return nil, err
	}

	inactive := make([]models.NotificationRecord, 0, len(all))
	for _, n := range all {
		if lifecycle.NotificationDeleted(n) {
			inactive = append(inactive, n)
		}
	}
	return inactive, nil
}

// GetByID fetches one notification; absence is a typed NOT_FOUND error.
func (r *NotificationRepository) GetByID(ctx context.Context, id string) (*models.NotificationRecord, error) {
	var record models.NotificationRecord
	if err := r.client.Get(ctx, "/"+id, &record); err != nil {
		if appErrors.IsNotFound(err) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, fmt.Sprintf("notification %s not found", id))
		}
		return nil, err
	}
	return &record, nil
}

// Create registers a new notification in the remote store.
func (r *NotificationRepository) Create(ctx context.Context, payload NotificationPayload) (*models.NotificationRecord, error) {
	var record models.NotificationRecord
	if err := r.client.Post(ctx, "", payload, &record); err != nil {
		return nil, err
	}
	return &record, nil
}

// Update replaces the mutable fields of an existing notification.
func (r *NotificationRepository) Update(ctx context.Context, id string, payload NotificationPayload) (*models.NotificationRecord, error) {
	var record models.NotificationRecord
	if err := r.client.Put(ctx, "/"+id, payload, &record); err != nil {
		return nil, err
	}
	return &record, nil
}

// SoftDelete marks a notification deleted remotely without removing it.
func (r *NotificationRepository) SoftDelete(ctx context.Context, id string) (*models.NotificationRecord, error) {
	var record models.NotificationRecord
	if err := r.client.Delete(ctx, "/"+id, &record); err != nil {
		return nil, err
	}
	return &record, nil
}

// Restore clears the deleted markers of a notification remotely.
func (r *NotificationRepository) Restore(ctx context.Context, id string) (*models.NotificationRecord, error) {
	var record models.NotificationRecord
	if err := r.client.Put(ctx, "/"+id+"/restore", nil, &record); err != nil {
		return nil, err
	}
	return &record, nil
}

// MarkRead transitions a notification to READ.
func (r *NotificationRepository) MarkRead(ctx context.Context, id string) (*models.NotificationRecord, error) {
	var record models.NotificationRecord
	if err := r.client.Put(ctx, "/"+id+"/read", nil, &record); err != nil {
		return nil, err
	}
	return &record, nil
}

// Resend re-attempts delivery. Identity and creation timestamp are owned by
// the remote store and remain unchanged.
func (r *NotificationRepository) Resend(ctx context.Context, id string) (*models.NotificationRecord, error) {
	var record models.NotificationRecord
	if err := r.client.Post(ctx, "/"+id+"/resend", nil, &record); err != nil {
		return nil, err
	}
	return &record, nil
}

// MassSend asks the remote store to fan one message out to a recipient group.
func (r *NotificationRepository) MassSend(ctx context.Context, payload MassSendPayload) ([]models.NotificationRecord, error) {
	var records []models.NotificationRecord
	if err := r.client.Post(ctx, "/mass-send", payload, &records); err != nil {
		return nil, err
	}
	if records == nil {
		records = []models.NotificationRecord{}
	}
	return records, nil
}
