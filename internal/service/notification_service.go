package service

import (
	"context"
	"fmt"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/CristopherGuzmanVelarde/school-admin-api/internal/batch"
	"github.com/CristopherGuzmanVelarde/school-admin-api/internal/lifecycle"
	"github.com/CristopherGuzmanVelarde/school-admin-api/internal/models"
	"github.com/CristopherGuzmanVelarde/school-admin-api/internal/query"
	"github.com/CristopherGuzmanVelarde/school-admin-api/internal/repository"
	appErrors "github.com/CristopherGuzmanVelarde/school-admin-api/pkg/errors"
	"github.com/CristopherGuzmanVelarde/school-admin-api/pkg/export"
)

const (
	notificationCacheKeyPrefix = "notifications:"
	notificationCachePattern   = "notifications:*"
)

type notificationRepository interface {
	ListAll(ctx context.Context) ([]models.NotificationRecord, error)
	ListInactive(ctx context.Context) ([]models.NotificationRecord, error)
	ListByRecipient(ctx context.Context, recipientID string) ([]models.NotificationRecord, error)
	ListByType(ctx context.Context, t models.NotificationType) ([]models.NotificationRecord, error)
	ListByStatus(ctx context.Context, s models.NotificationStatus) ([]models.NotificationRecord, error)
	ListUnread(ctx context.Context, recipientID string) ([]models.NotificationRecord, error)
	GetByID(ctx context.Context, id string) (*models.NotificationRecord, error)
	Create(ctx context.Context, payload repository.NotificationPayload) (*models.NotificationRecord, error)
	Update(ctx context.Context, id string, payload repository.NotificationPayload) (*models.NotificationRecord, error)
	SoftDelete(ctx context.Context, id string) (*models.NotificationRecord, error)
	Restore(ctx context.Context, id string) (*models.NotificationRecord, error)
	MarkRead(ctx context.Context, id string) (*models.NotificationRecord, error)
	Resend(ctx context.Context, id string) (*models.NotificationRecord, error)
	MassSend(ctx context.Context, payload repository.MassSendPayload) ([]models.NotificationRecord, error)
}

// NotificationQuery scopes and narrows a notification listing.
type NotificationQuery struct {
	Scope  Scope
	Search string
	Facets query.NotificationFacets
}

// NotificationRow is a notification annotated with resolved display facts.
type NotificationRow struct {
	models.NotificationRecord
	RecipientName string            `json:"recipientName"`
	ShortID       string            `json:"shortId"`
	IsDeleted     bool              `json:"isDeletedResolved"`
	StatusLabel   string            `json:"statusLabel"`
	StatusColor   models.BadgeColor `json:"statusColor"`
	StatusIcon    string            `json:"statusIcon"`
}

// NotificationListView is the filtered, annotated view the console renders.
// Stats describe the lifecycle scope, not the searched subset.
type NotificationListView struct {
	Rows  []NotificationRow `json:"rows"`
	Stats query.Stats       `json:"stats"`
	Shown int               `json:"shown"`
	Total int               `json:"total"`
	Scope Scope             `json:"scope"`
}

// CreateNotificationRequest holds the payload for creating notifications.
type CreateNotificationRequest struct {
	RecipientID      string                     `json:"recipientId" validate:"required"`
	RecipientType    models.RecipientType       `json:"recipientType" validate:"required,oneof=STUDENT TEACHER"`
	NotificationType models.NotificationType    `json:"notificationType" validate:"required"`
	Channel          models.NotificationChannel `json:"channel" validate:"required,oneof=EMAIL SMS PUSH IN_APP"`
	Message          string                     `json:"message" validate:"required"`
}

// UpdateNotificationRequest holds the payload for updating notifications.
type UpdateNotificationRequest struct {
	NotificationType models.NotificationType    `json:"notificationType" validate:"required"`
	Channel          models.NotificationChannel `json:"channel" validate:"required,oneof=EMAIL SMS PUSH IN_APP"`
	Message          string                     `json:"message" validate:"required"`
}

// MassSendRequest targets one recipient group with a single message.
type MassSendRequest struct {
	RecipientType    models.RecipientType       `json:"recipientType" validate:"required,oneof=STUDENT TEACHER"`
	NotificationType models.NotificationType    `json:"notificationType" validate:"required"`
	Channel          models.NotificationChannel `json:"channel" validate:"required,oneof=EMAIL SMS PUSH IN_APP"`
	Message          string                     `json:"message" validate:"required"`
}

// BulkCreateResult reports per-position outcomes of a bulk create.
type BulkCreateResult struct {
	Created []models.NotificationRecord `json:"created"`
	Failed  map[int]string              `json:"failed,omitempty"`
}

// NotificationService orchestrates notification reads, mutations, batches and
// exports.
type NotificationService struct {
	repo        notificationRepository
	directory   directoryReader
	cache       *CacheService
	coordinator *batch.Coordinator
	validator   *validator.Validate
	csv         *export.CSVExporter
	pdf         *export.PDFExporter
	maxExport   int
	logger      *zap.Logger
}

// NewNotificationService constructs the notification service.
func NewNotificationService(repo notificationRepository, directory directoryReader, cache *CacheService, coordinator *batch.Coordinator, validate *validator.Validate, maxExport int, logger *zap.Logger) *NotificationService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if coordinator == nil {
		coordinator = batch.New(logger)
	}
	if maxExport <= 0 {
		maxExport = 5000
	}
	return &NotificationService{
		repo:        repo,
		directory:   directory,
		cache:       cache,
		coordinator: coordinator,
		validator:   validate,
		csv:         export.NewCSVExporter(),
		pdf:         export.NewPDFExporter(),
		maxExport:   maxExport,
		logger:      logger,
	}
}

// List returns the annotated, filtered notification view for one scope.
func (s *NotificationService) List(ctx context.Context, q NotificationQuery) (*NotificationListView, error) {
	scoped, err := s.loadScope(ctx, q.Scope)
	if err != nil {
		return nil, err
	}

	students, teachers := s.lookups(ctx)
	stats := query.AggregateNotifications(scoped)

	visible := query.FilterNotifications(scoped, q.Facets)
	visible = query.SearchNotifications(visible, q.Search, students, teachers)

	rows := make([]NotificationRow, 0, len(visible))
	for _, n := range visible {
		rows = append(rows, s.annotate(n, students, teachers))
	}

	return &NotificationListView{
		Rows:  rows,
		Stats: stats,
		Shown: len(rows),
		Total: len(scoped),
		Scope: q.Scope,
	}, nil
}

func (s *NotificationService) annotate(n models.NotificationRecord, students, teachers query.Lookup) NotificationRow {
	return NotificationRow{
		NotificationRecord: n,
		RecipientName:      query.RecipientName(n.RecipientID, n.RecipientType, students, teachers),
		ShortID:            n.ShortID(),
		IsDeleted:          lifecycle.NotificationDeleted(n),
		StatusLabel:        models.NotificationStatusLabels[n.Status],
		StatusColor:        n.Status.Color(),
		StatusIcon:         n.Status.Icon(),
	}
}

// loadScope fetches the lifecycle slice, serving from the snapshot cache when
// possible. The active scope is the full fetch minus resolved-deleted records.
func (s *NotificationService) loadScope(ctx context.Context, scope Scope) ([]models.NotificationRecord, error) {
	key := notificationCacheKeyPrefix + string(scope)
	var cached []models.NotificationRecord
	if s.cache.Get(ctx, key, &cached) {
		return cached, nil
	}

	var records []models.NotificationRecord
	if scope == ScopeInactive {
		inactive, err := s.repo.ListInactive(ctx)
		if err != nil {
			return nil, err
		}
		records = inactive
	} else {
		all, err := s.repo.ListAll(ctx)
		if err != nil {
			return nil, err
		}
		records = make([]models.NotificationRecord, 0, len(all))
		for _, n := range all {
			if !lifecycle.NotificationDeleted(n) {
				records = append(records, n)
			}
		}
	}

	s.cache.Set(ctx, key, records)
	return records, nil
}

func (s *NotificationService) lookups(ctx context.Context) (query.Lookup, query.Lookup) {
	students, err := s.directory.Students(ctx)
	if err != nil {
		s.logger.Warn("student directory unavailable, names resolve to placeholders", zap.Error(err))
		students = nil
	}
	teachers, err := s.directory.Teachers(ctx)
	if err != nil {
		s.logger.Warn("teacher directory unavailable, names resolve to placeholders", zap.Error(err))
		teachers = nil
	}
	return query.StudentLookup(students), query.TeacherLookup(teachers)
}

// Get returns one notification record.
func (s *NotificationService) Get(ctx context.Context, id string) (*models.NotificationRecord, error) {
	return s.repo.GetByID(ctx, id)
}

// ListByRecipient lists all notifications addressed to one recipient.
func (s *NotificationService) ListByRecipient(ctx context.Context, recipientID string) ([]models.NotificationRecord, error) {
	return s.repo.ListByRecipient(ctx, recipientID)
}

// ListByType lists all notifications of one type.
func (s *NotificationService) ListByType(ctx context.Context, t models.NotificationType) ([]models.NotificationRecord, error) {
	return s.repo.ListByType(ctx, t)
}

// ListByStatus lists all notifications in one delivery state.
func (s *NotificationService) ListByStatus(ctx context.Context, status models.NotificationStatus) ([]models.NotificationRecord, error) {
	return s.repo.ListByStatus(ctx, status)
}

// ListUnread lists the unread notifications of one recipient.
func (s *NotificationService) ListUnread(ctx context.Context, recipientID string) ([]models.NotificationRecord, error) {
	return s.repo.ListUnread(ctx, recipientID)
}

// Create registers a new notification and invalidates the snapshot cache.
func (s *NotificationService) Create(ctx context.Context, req CreateNotificationRequest) (*models.NotificationRecord, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid notification payload")
	}
	record, err := s.repo.Create(ctx, repository.NotificationPayload{
		RecipientID:      req.RecipientID,
		RecipientType:    req.RecipientType,
		NotificationType: req.NotificationType,
		Channel:          req.Channel,
		Message:          req.Message,
	})
	if err != nil {
		return nil, err
	}
	s.cache.Invalidate(ctx, notificationCachePattern)
	return record, nil
}

// Update modifies an existing notification. Recipient identity is immutable.
func (s *NotificationService) Update(ctx context.Context, id string, req UpdateNotificationRequest) (*models.NotificationRecord, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid notification payload")
	}
	current, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	record, err := s.repo.Update(ctx, id, repository.NotificationPayload{
		RecipientID:      current.RecipientID,
		RecipientType:    current.RecipientType,
		NotificationType: req.NotificationType,
		Channel:          req.Channel,
		Message:          req.Message,
	})
	if err != nil {
		return nil, err
	}
	s.cache.Invalidate(ctx, notificationCachePattern)
	return record, nil
}

// Delete soft-deletes a notification and invalidates the snapshot cache.
func (s *NotificationService) Delete(ctx context.Context, id string) (*models.NotificationRecord, error) {
	record, err := s.repo.SoftDelete(ctx, id)
	if err != nil {
		return nil, err
	}
	s.cache.Invalidate(ctx, notificationCachePattern)
	return record, nil
}

// Restore clears the deletion markers and invalidates the snapshot cache.
func (s *NotificationService) Restore(ctx context.Context, id string) (*models.NotificationRecord, error) {
	record, err := s.repo.Restore(ctx, id)
	if err != nil {
		return nil, err
	}
	s.cache.Invalidate(ctx, notificationCachePattern)
	return record, nil
}

// MarkRead transitions one notification to READ.
func (s *NotificationService) MarkRead(ctx context.Context, id string) (*models.NotificationRecord, error) {
	record, err := s.repo.MarkRead(ctx, id)
	if err != nil {
		return nil, err
	}
	s.cache.Invalidate(ctx, notificationCachePattern)
	return record, nil
}

// Resend re-attempts delivery of one notification.
func (s *NotificationService) Resend(ctx context.Context, id string) (*models.NotificationRecord, error) {
	record, err := s.repo.Resend(ctx, id)
	if err != nil {
		return nil, err
	}
	s.cache.Invalidate(ctx, notificationCachePattern)
	return record, nil
}

// MarkManyRead marks every id as read with partial-failure semantics.
func (s *NotificationService) MarkManyRead(ctx context.Context, ids []string) batch.Result {
	return s.applyBatch(ctx, ids, func(ctx context.Context, id string) error {
		_, err := s.repo.MarkRead(ctx, id)
		return err
	})
}

// ResendMany re-attempts delivery for every id with partial-failure semantics.
func (s *NotificationService) ResendMany(ctx context.Context, ids []string) batch.Result {
	return s.applyBatch(ctx, ids, func(ctx context.Context, id string) error {
		_, err := s.repo.Resend(ctx, id)
		return err
	})
}

// RestoreMany restores every id with partial-failure semantics.
func (s *NotificationService) RestoreMany(ctx context.Context, ids []string) batch.Result {
	return s.applyBatch(ctx, ids, func(ctx context.Context, id string) error {
		_, err := s.repo.Restore(ctx, id)
		return err
	})
}

func (s *NotificationService) applyBatch(ctx context.Context, ids []string, op batch.Operation) batch.Result {
	result := s.coordinator.ApplyToMany(ctx, ids, op)
	if len(result.Succeeded) > 0 {
		s.cache.Invalidate(ctx, notificationCachePattern)
	}
	return result
}

// CreateBulk registers many notifications, collecting per-position failures.
func (s *NotificationService) CreateBulk(ctx context.Context, reqs []CreateNotificationRequest) BulkCreateResult {
	result := BulkCreateResult{Failed: make(map[int]string)}
	for i, req := range reqs {
		record, err := s.Create(ctx, req)
		if err != nil {
			result.Failed[i] = err.Error()
			continue
		}
		result.Created = append(result.Created, *record)
	}
	return result
}

// MassSend fans one message out to a whole recipient group remotely.
func (s *NotificationService) MassSend(ctx context.Context, req MassSendRequest) ([]models.NotificationRecord, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid mass-send payload")
	}
	records, err := s.repo.MassSend(ctx, repository.MassSendPayload{
		RecipientType:    req.RecipientType,
		NotificationType: req.NotificationType,
		Channel:          req.Channel,
		Message:          req.Message,
	})
	if err != nil {
		return nil, err
	}
	s.cache.Invalidate(ctx, notificationCachePattern)
	return records, nil
}

// Export renders the current filtered view as CSV or PDF.
func (s *NotificationService) Export(ctx context.Context, q NotificationQuery, format string) (*ExportResult, error) {
	view, err := s.List(ctx, q)
	if err != nil {
		return nil, err
	}
	rows := view.Rows
	if len(rows) > s.maxExport {
		rows = rows[:s.maxExport]
	}

	headers := []string{"ID", "Destinatario", "Tipo", "Mensaje", "Estado", "Canal", "Creado", "Enviado"}
	dataset := export.Dataset{Headers: headers, Rows: make([]map[string]string, 0, len(rows))}
	for _, row := range rows {
		sentAt := ""
		if row.SentAt != nil {
			sentAt = row.SentAt.Format("2006-01-02 15:04")
		}
		dataset.Rows = append(dataset.Rows, map[string]string{
			"ID":           row.ShortID,
			"Destinatario": row.RecipientName,
			"Tipo":         string(row.NotificationType),
			"Mensaje":      truncate(row.Message, 80),
			"Estado":       string(row.Status),
			"Canal":        string(row.Channel),
			"Creado":       row.CreatedAt.Format("2006-01-02 15:04"),
			"Enviado":      sentAt,
		})
	}

	return renderExport(dataset, "Notificaciones", format, s.csv, s.pdf)
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return fmt.Sprintf("%s...", s[:max])
}
