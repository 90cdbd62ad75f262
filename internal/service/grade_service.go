package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/CristopherGuzmanVelarde/school-admin-api/internal/lifecycle"
	"github.com/CristopherGuzmanVelarde/school-admin-api/internal/models"
	"github.com/CristopherGuzmanVelarde/school-admin-api/internal/query"
	"github.com/CristopherGuzmanVelarde/school-admin-api/internal/repository"
	appErrors "github.com/CristopherGuzmanVelarde/school-admin-api/pkg/errors"
	"github.com/CristopherGuzmanVelarde/school-admin-api/pkg/export"
)

// Scope selects which lifecycle slice of a collection a listing covers.
type Scope string

const (
	ScopeActive   Scope = "active"
	ScopeInactive Scope = "inactive"
)

// ParseScope maps a query-string value onto a Scope, defaulting to active.
func ParseScope(raw string) Scope {
	if raw == string(ScopeInactive) {
		return ScopeInactive
	}
	return ScopeActive
}

const (
	gradeCacheKeyPrefix = "grades:"
	gradeCachePattern   = "grades:*"
)

type gradeRepository interface {
	ListAll(ctx context.Context) ([]models.GradeRecord, error)
	ListInactive(ctx context.Context) ([]models.GradeRecord, error)
	GetByID(ctx context.Context, id string) (*models.GradeRecord, error)
	Create(ctx context.Context, payload repository.GradePayload) (*models.GradeRecord, error)
	Update(ctx context.Context, id string, payload repository.GradePayload) (*models.GradeRecord, error)
	SoftDelete(ctx context.Context, id string) (*models.GradeRecord, error)
	Restore(ctx context.Context, id string) (*models.GradeRecord, error)
	Notifications(ctx context.Context, gradeID string) ([]models.NotificationRecord, error)
}

type directoryReader interface {
	Students(ctx context.Context) ([]models.Student, error)
	Teachers(ctx context.Context) ([]models.Teacher, error)
}

// GradeQuery scopes and narrows a grade listing.
type GradeQuery struct {
	Scope  Scope
	Search string
	Facets query.GradeFacets
}

// GradeRow is a grade annotated with resolved display facts.
type GradeRow struct {
	models.GradeRecord
	StudentName string            `json:"studentName"`
	CourseLabel string            `json:"courseLabel"`
	PassStatus  models.PassStatus `json:"passStatus"`
	StatusColor models.BadgeColor `json:"statusColor"`
}

// GradeListView is the filtered, annotated view the console renders.
// Stats describe the lifecycle scope, not the searched subset.
type GradeListView struct {
	Rows  []GradeRow  `json:"rows"`
	Stats query.Stats `json:"stats"`
	Shown int         `json:"shown"`
	Total int         `json:"total"`
	Scope Scope       `json:"scope"`
}

// CreateGradeRequest holds the payload for registering grades.
type CreateGradeRequest struct {
	StudentID      string                `json:"studentId" validate:"required"`
	CourseID       string                `json:"courseId" validate:"required"`
	AcademicPeriod models.AcademicPeriod `json:"academicPeriod" validate:"required"`
	EvaluationType models.EvaluationType `json:"evaluationType" validate:"required"`
	Grade          float64               `json:"grade" validate:"gte=0,lte=20"`
	EvaluationDate models.CivilDate      `json:"evaluationDate"`
	Remarks        string                `json:"remarks"`
}

// UpdateGradeRequest holds the payload for updating grades. Student and
// course references are immutable after creation and deliberately absent.
type UpdateGradeRequest struct {
	AcademicPeriod models.AcademicPeriod `json:"academicPeriod" validate:"required"`
	EvaluationType models.EvaluationType `json:"evaluationType" validate:"required"`
	Grade          float64               `json:"grade" validate:"gte=0,lte=20"`
	EvaluationDate models.CivilDate      `json:"evaluationDate"`
	Remarks        string                `json:"remarks"`
}

// GradeService orchestrates grade reads, mutations and exports.
type GradeService struct {
	repo      gradeRepository
	directory directoryReader
	cache     *CacheService
	validator *validator.Validate
	csv       *export.CSVExporter
	pdf       *export.PDFExporter
	maxExport int
	logger    *zap.Logger
}

// NewGradeService constructs the grade service.
func NewGradeService(repo gradeRepository, directory directoryReader, cache *CacheService, validate *validator.Validate, maxExport int, logger *zap.Logger) *GradeService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if maxExport <= 0 {
		maxExport = 5000
	}
	return &GradeService{
		repo:      repo,
		directory: directory,
		cache:     cache,
		validator: validate,
		csv:       export.NewCSVExporter(),
		pdf:       export.NewPDFExporter(),
		maxExport: maxExport,
		logger:    logger,
	}
}

// List returns the annotated, filtered grade view for one lifecycle scope.
func (s *GradeService) List(ctx context.Context, q GradeQuery) (*GradeListView, error) {
	scoped, err := s.loadScope(ctx, q.Scope)
	if err != nil {
		return nil, err
	}

	students := s.studentLookup(ctx)
	stats := query.AggregateGrades(scoped)

	visible := query.FilterGrades(scoped, q.Facets)
	visible = query.SearchGrades(visible, q.Search, students)

	rows := make([]GradeRow, 0, len(visible))
	for _, g := range visible {
		rows = append(rows, GradeRow{
			GradeRecord: g,
			StudentName: query.DisplayName(g.StudentID, students, query.StudentNotFound),
			CourseLabel: models.CourseLabel(g.CourseID),
			PassStatus:  g.PassStatus(),
			StatusColor: g.PassStatus().Color(),
		})
	}

	return &GradeListView{
		Rows:  rows,
		Stats: stats,
		Shown: len(rows),
		Total: len(scoped),
		Scope: q.Scope,
	}, nil
}

// loadScope fetches the lifecycle slice, serving from the snapshot cache when
// possible. A full reload replaces the snapshot wholesale.
func (s *GradeService) loadScope(ctx context.Context, scope Scope) ([]models.GradeRecord, error) {
	key := gradeCacheKeyPrefix + string(scope)
	var cached []models.GradeRecord
	if s.cache.Get(ctx, key, &cached) {
		return cached, nil
	}

	var (
		records []models.GradeRecord
		err     error
	)
	if scope == ScopeInactive {
		records, err = s.repo.ListInactive(ctx)
	} else {
		all, listErr := s.repo.ListAll(ctx)
		if listErr != nil {
			return nil, listErr
		}
		records = make([]models.GradeRecord, 0, len(all))
		for _, g := range all {
			if !lifecycle.GradeDeleted(g) {
				records = append(records, g)
			}
		}
	}
	if err != nil {
		return nil, err
	}

	s.cache.Set(ctx, key, records)
	return records, nil
}

func (s *GradeService) studentLookup(ctx context.Context) query.Lookup {
	students, err := s.directory.Students(ctx)
	if err != nil {
		s.logger.Warn("student directory unavailable, names resolve to placeholders", zap.Error(err))
		return query.Lookup{}
	}
	return query.StudentLookup(students)
}

// Get returns one grade record.
func (s *GradeService) Get(ctx context.Context, id string) (*models.GradeRecord, error) {
	return s.repo.GetByID(ctx, id)
}

// Create registers a new grade and invalidates the snapshot cache.
func (s *GradeService) Create(ctx context.Context, req CreateGradeRequest) (*models.GradeRecord, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid grade payload")
	}
	record, err := s.repo.Create(ctx, repository.GradePayload{
		StudentID:      req.StudentID,
		CourseID:       req.CourseID,
		AcademicPeriod: req.AcademicPeriod,
		EvaluationType: req.EvaluationType,
		Grade:          req.Grade,
		EvaluationDate: req.EvaluationDate,
		Remarks:        req.Remarks,
	})
	if err != nil {
		return nil, err
	}
	s.cache.Invalidate(ctx, gradeCachePattern)
	return record, nil
}

// Update modifies an existing grade and invalidates the snapshot cache.
func (s *GradeService) Update(ctx context.Context, id string, req UpdateGradeRequest) (*models.GradeRecord, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid grade payload")
	}
	current, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	record, err := s.repo.Update(ctx, id, repository.GradePayload{
		StudentID:      current.StudentID,
		CourseID:       current.CourseID,
		AcademicPeriod: req.AcademicPeriod,
		EvaluationType: req.EvaluationType,
		Grade:          req.Grade,
		EvaluationDate: req.EvaluationDate,
		Remarks:        req.Remarks,
	})
	if err != nil {
		return nil, err
	}
	s.cache.Invalidate(ctx, gradeCachePattern)
	return record, nil
}

// Delete soft-deletes a grade remotely and invalidates the snapshot cache.
func (s *GradeService) Delete(ctx context.Context, id string) (*models.GradeRecord, error) {
	record, err := s.repo.SoftDelete(ctx, id)
	if err != nil {
		return nil, err
	}
	s.cache.Invalidate(ctx, gradeCachePattern)
	return record, nil
}

// Restore clears a grade's deleted marker and invalidates the snapshot cache.
func (s *GradeService) Restore(ctx context.Context, id string) (*models.GradeRecord, error) {
	record, err := s.repo.Restore(ctx, id)
	if err != nil {
		return nil, err
	}
	s.cache.Invalidate(ctx, gradeCachePattern)
	return record, nil
}

// Notifications lists the notifications produced for one grade.
func (s *GradeService) Notifications(ctx context.Context, gradeID string) ([]models.NotificationRecord, error) {
	return s.repo.Notifications(ctx, gradeID)
}

// ExportResult carries a rendered export document.
type ExportResult struct {
	Filename    string
	ContentType string
	Payload     []byte
}

// Export renders the current filtered view as CSV or PDF.
func (s *GradeService) Export(ctx context.Context, q GradeQuery, format string) (*ExportResult, error) {
	view, err := s.List(ctx, q)
	if err != nil {
		return nil, err
	}
	rows := view.Rows
	if len(rows) > s.maxExport {
		rows = rows[:s.maxExport]
	}

	headers := []string{"Estudiante", "Curso", "Período", "Tipo", "Calificación", "Estado", "Fecha"}
	dataset := export.Dataset{Headers: headers, Rows: make([]map[string]string, 0, len(rows))}
	for _, row := range rows {
		dataset.Rows = append(dataset.Rows, map[string]string{
			"Estudiante":   row.StudentName,
			"Curso":        row.CourseLabel,
			"Período":      string(row.AcademicPeriod),
			"Tipo":         string(row.EvaluationType),
			"Calificación": fmt.Sprintf("%.1f", row.Grade),
			"Estado":       string(row.PassStatus),
			"Fecha":        row.EvaluationDate.String(),
		})
	}

	return renderExport(dataset, "Calificaciones", format, s.csv, s.pdf)
}

func renderExport(dataset export.Dataset, title, format string, csv *export.CSVExporter, pdf *export.PDFExporter) (*ExportResult, error) {
	token := uuid.NewString()[:8]
	switch format {
	case "csv", "":
		payload, err := csv.Render(dataset)
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "render csv export")
		}
		return &ExportResult{
			Filename:    fmt.Sprintf("%s-%s.csv", sanitizeFilename(title), token),
			ContentType: "text/csv",
			Payload:     payload,
		}, nil
	case "pdf":
		payload, err := pdf.Render(dataset, title)
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "render pdf export")
		}
		return &ExportResult{
			Filename:    fmt.Sprintf("%s-%s.pdf", sanitizeFilename(title), token),
			ContentType: "application/pdf",
			Payload:     payload,
		}, nil
	default:
		return nil, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("unsupported export format %q", format))
	}
}

func sanitizeFilename(title string) string {
	return strings.ToLower(strings.ReplaceAll(strings.TrimSpace(title), " ", "-"))
}
