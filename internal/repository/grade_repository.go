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

// GradePayload is the mutable portion of a grade record sent on create/update.
type GradePayload struct {
	StudentID      string                `json:"studentId"`
	CourseID       string                `json:"courseId"`
	AcademicPeriod models.AcademicPeriod `json:"academicPeriod"`
	EvaluationType models.EvaluationType `json:"evaluationType"`
	Grade          float64               `json:"grade"`
	EvaluationDate models.CivilDate      `json:"evaluationDate"`
	Remarks        string                `json:"remarks,omitempty"`
}

// GradeRepository provides resilient access to the remote grade collection.
type GradeRepository struct {
	client *remote.Client
	logger *zap.Logger
}

// NewGradeRepository constructs a grade repository.
func NewGradeRepository(client *remote.Client, logger *zap.Logger) *GradeRepository {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &GradeRepository{client: client, logger: logger}
}

// ListAll fetches the full grade collection. A 404 from the collection
// endpoint means "no data yet", not an operational failure.
func (r *GradeRepository) ListAll(ctx context.Context) ([]models.GradeRecord, error) {
	var records []models.GradeRecord
	if err := r.client.Get(ctx, "", &records); err != nil {
		if appErrors.IsNotFound(err) {
			r.logger.Warn("grade collection endpoint missing, returning empty set")
			return []models.GradeRecord{}, nil
		}
		return nil, err
	}
	if records == nil {
		records = []models.GradeRecord{}
	}
	return records, nil
}

// ListInactive fetches soft-deleted grades. It first attempts the server-side
// filter and falls back to a full fetch plus client-side lifecycle filtering
// when the query shape is not supported by the remote contract.
func (r *GradeRepository) ListInactive(ctx context.Context) ([]models.GradeRecord, error) {
	var records []models.GradeRecord
	err := r.client.Get(ctx, "?deleted=true", &records)
	if err == nil {
		if records == nil {
			records = []models.GradeRecord{}
		}
		return records, nil
	}

	r.logger.Warn("server-side deleted filter unavailable, falling back to client-side filter", zap.Error(err))
	all, fallbackErr := r.ListAll(ctx)
	if fallbackErr != nil {
		if appErrors.IsNotFound(err) {
			return []models.GradeRecord{}, nil
		}
		return nil, err
	}

	inactive := make([]models.GradeRecord, 0, len(all))
	for _, g := range all {
		if lifecycle.GradeDeleted(g) {
			inactive = append(inactive, g)
		}
	}
	return inactive, nil
}

// GetByID fetches one grade. Absence is reported as a typed NOT_FOUND error,
// never as a generic failure.
func (r *GradeRepository) GetByID(ctx context.Context, id string) (*models.GradeRecord, error) {
	var record models.GradeRecord
	if err := r.client.Get(ctx, "/"+id, &record); err != nil {
		if appErrors.IsNotFound(err) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, fmt.Sprintf("grade %s not found", id))
		}
		return nil, err
	}
	return &record, nil
}

// Create registers a new grade in the remote store.
func (r *GradeRepository) Create(ctx context.Context, payload GradePayload) (*models.GradeRecord, error) {
	var record models.GradeRecord
	if err := r.client.Post(ctx, "", payload, &record); err != nil {
		return nil, err
	}
	return &record, nil
}

// Update replaces the mutable fields of an existing grade.
func (r *GradeRepository) Update(ctx context.Context, id string, payload GradePayload) (*models.GradeRecord, error) {
	var record models.GradeRecord
	if err := r.client.Put(ctx, "/"+id, payload, &record); err != nil {
		return nil, err
	}
	return &record, nil
}

// SoftDelete marks a grade deleted remotely without removing it.
func (r *GradeRepository) SoftDelete(ctx context.Context, id string) (*models.GradeRecord, error) {
	var record models.GradeRecord
	if err := r.client.Delete(ctx, "/"+id, &record); err != nil {
		return nil, err
	}
	return &record, nil
}

// Restore clears the deleted marker of a grade remotely.
func (r *GradeRepository) Restore(ctx context.Context, id string) (*models.GradeRecord, error) {
	var record models.GradeRecord
	if err := r.client.Put(ctx, "/"+id+"/restore", nil, &record); err != nil {
		return nil, err
	}
	return &record, nil
}

// Notifications lists the notifications produced for a given grade.
func (r *GradeRepository) Notifications(ctx context.Context, gradeID string) ([]models.NotificationRecord, error) {
	var records []models.NotificationRecord
	if err := r.client.Get(ctx, "/"+gradeID+"/notifications", &records); err != nil {
		if appErrors.IsNotFound(err) {
			return []models.NotificationRecord{}, nil
		}
		return nil, err
	}
	if records == nil {
		records = []models.NotificationRecord{}
	}
	return records, nil
}
