package service

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/CristopherGuzmanVelarde/school-admin-api/internal/models"
	"github.com/CristopherGuzmanVelarde/school-admin-api/internal/query"
	"github.com/CristopherGuzmanVelarde/school-admin-api/internal/repository"
	appErrors "github.com/CristopherGuzmanVelarde/school-admin-api/pkg/errors"
)

type mockGradeRepo struct {
	all           []models.GradeRecord
	inactive      []models.GradeRecord
	byID          map[string]models.GradeRecord
	notifications []models.NotificationRecord

	listErr error

	created  []repository.GradePayload
	updated  map[string]repository.GradePayload
	deleted  []string
	restored []string
}

func (m *mockGradeRepo) ListAll(ctx context.Context) ([]models.GradeRecord, error) {
	if m.listErr != nil {
		return nil, m.listErr
	}
	return m.all, nil
}

func (m *mockGradeRepo) ListInactive(ctx context.Context) ([]models.GradeRecord, error) {
	if m.listErr != nil {
		return nil, m.listErr
	}
	return m.inactive, nil
}

func (m *mockGradeRepo) GetByID(ctx context.Context, id string) (*models.GradeRecord, error) {
	if record, ok := m.byID[id]; ok {
		return &record, nil
	}
	return nil, appErrors.Clone(appErrors.ErrNotFound, "grade "+id+" not found")
}

func (m *mockGradeRepo) Create(ctx context.Context, payload repository.GradePayload) (*models.GradeRecord, error) {
	m.created = append(m.created, payload)
	return &models.GradeRecord{ID: "created", StudentID: payload.StudentID, Grade: payload.Grade, Active: true}, nil
}

func (m *mockGradeRepo) Update(ctx context.Context, id string, payload repository.GradePayload) (*models.GradeRecord, error) {
	if m.updated == nil {
		m.updated = make(map[string]repository.GradePayload)
	}
	m.updated[id] = payload
	return &models.GradeRecord{ID: id, StudentID: payload.StudentID, CourseID: payload.CourseID, Grade: payload.Grade, Active: true}, nil
}

func (m *mockGradeRepo) SoftDelete(ctx context.Context, id string) (*models.GradeRecord, error) {
	m.deleted = append(m.deleted, id)
	return &models.GradeRecord{ID: id, Active: false}, nil
}

func (m *mockGradeRepo) Restore(ctx context.Context, id string) (*models.GradeRecord, error) {
	m.restored = append(m.restored, id)
	return &models.GradeRecord{ID: id, Active: true}, nil
}

func (m *mockGradeRepo) Notifications(ctx context.Context, gradeID string) ([]models.NotificationRecord, error) {
	return m.notifications, nil
}

type mockDirectory struct {
	students    []models.Student
	teachers    []models.Teacher
	studentsErr error
	teachersErr error
}

func (m *mockDirectory) Students(ctx context.Context) ([]models.Student, error) {
	if m.studentsErr != nil {
		return nil, m.studentsErr
	}
	return m.students, nil
}

func (m *mockDirectory) Teachers(ctx context.Context) ([]models.Teacher, error) {
	if m.teachersErr != nil {
		return nil, m.teachersErr
	}
	return m.teachers, nil
}

type mockCacheRepo struct {
	store       map[string][]byte
	invalidated []string
}

func (m *mockCacheRepo) Get(ctx context.Context, key string, dest interface{}) error {
	return appErrors.ErrCacheMiss
}

func (m *mockCacheRepo) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	return nil
}

func (m *mockCacheRepo) DeleteByPattern(ctx context.Context, pattern string) error {
	m.invalidated = append(m.invalidated, pattern)
	return nil
}

func newGradeService(repo *mockGradeRepo, dir *mockDirectory, cacheRepo *mockCacheRepo) *GradeService {
	var cache *CacheService
	if cacheRepo != nil {
		cache = NewCacheService(cacheRepo, nil, time.Minute, nil, true)
	}
	return NewGradeService(repo, dir, cache, nil, 0, nil)
}

func activeGrades() []models.GradeRecord {
	return []models.GradeRecord{
		{ID: "g1", StudentID: "s1", CourseID: "MAT", AcademicPeriod: models.PeriodBimester1, EvaluationType: models.EvaluationExam, Grade: 15, Active: true},
		{ID: "g2", StudentID: "s2", CourseID: "COM", AcademicPeriod: models.PeriodBimester2, EvaluationType: models.EvaluationHomework, Grade: 9, Active: true},
		{ID: "g3", StudentID: "s1", CourseID: "ING", AcademicPeriod: models.PeriodBimester1, EvaluationType: models.EvaluationQuiz, Grade: 11, Active: false},
	}
}

func TestGradeListActiveScopeExcludesDeleted(t *testing.T) {
	repo := &mockGradeRepo{all: activeGrades()}
	dir := &mockDirectory{students: []models.Student{{ID: "s1", FirstName: "Ana", LastName: "Soto"}}}
	svc := newGradeService(repo, dir, nil)

	view, err := svc.List(context.Background(), GradeQuery{Scope: ScopeActive})
	require.NoError(t, err)
	assert.Equal(t, 2, view.Total)
	require.Len(t, view.Rows, 2)
	assert.Equal(t, "Ana Soto", view.Rows[0].StudentName)
	assert.Equal(t, "MAT - Matemática", view.Rows[0].CourseLabel)
	assert.Equal(t, models.PassStatusPassing, view.Rows[0].PassStatus)
	assert.Equal(t, models.BadgeSuccess, view.Rows[0].StatusColor)
}

func TestGradeListStatsDescribeScopeNotSearch(t *testing.T) {
	repo := &mockGradeRepo{all: activeGrades()}
	dir := &mockDirectory{students: []models.Student{{ID: "s1", FirstName: "Ana", LastName: "Soto"}}}
	svc := newGradeService(repo, dir, nil)

	view, err := svc.List(context.Background(), GradeQuery{Scope: ScopeActive, Search: "ana"})
	require.NoError(t, err)
	// g2's student is unresolved; only g1 matches the search.
	assert.Equal(t, 1, view.Shown)
	// Stats still cover the whole active scope.
	assert.Equal(t, 2, view.Stats.Total)
	assert.Equal(t, 1, view.Stats.ByStatus["PASSING"])
	assert.Equal(t, 1, view.Stats.ByStatus["FAILING"])
}

func TestGradeListFacetFilter(t *testing.T) {
	repo := &mockGradeRepo{all: activeGrades()}
	svc := newGradeService(repo, &mockDirectory{}, nil)

	view, err := svc.List(context.Background(), GradeQuery{
		Scope:  ScopeActive,
		Facets: query.GradeFacets{AcademicPeriod: "BIMESTRE_I", EvaluationType: query.FacetAll},
	})
	require.NoError(t, err)
	require.Len(t, view.Rows, 1)
	assert.Equal(t, "g1", view.Rows[0].ID)
}

func TestGradeListInactiveScope(t *testing.T) {
	repo := &mockGradeRepo{inactive: []models.GradeRecord{{ID: "g3", StudentID: "s1", Active: false}}}
	svc := newGradeService(repo, &mockDirectory{}, nil)

	view, err := svc.List(context.Background(), GradeQuery{Scope: ScopeInactive})
	require.NoError(t, err)
	require.Len(t, view.Rows, 1)
	assert.Equal(t, "g3", view.Rows[0].ID)
	assert.Equal(t, ScopeInactive, view.Scope)
}

func TestGradeListDirectoryFailureDegradesToPlaceholders(t *testing.T) {
	repo := &mockGradeRepo{all: activeGrades()}
	dir := &mockDirectory{studentsErr: errors.New("directory down")}
	svc := newGradeService(repo, dir, nil)

	view, err := svc.List(context.Background(), GradeQuery{Scope: ScopeActive})
	require.NoError(t, err)
	assert.Equal(t, query.StudentNotFound, view.Rows[0].StudentName)
}

func TestGradeListRepositoryErrorPropagates(t *testing.T) {
	repo := &mockGradeRepo{listErr: appErrors.Clone(appErrors.ErrTimeout, "remote timed out")}
	svc := newGradeService(repo, &mockDirectory{}, nil)

	_, err := svc.List(context.Background(), GradeQuery{Scope: ScopeActive})
	require.Error(t, err)
	assert.True(t, appErrors.IsTimeout(err))
}

func TestGradeCreateValidation(t *testing.T) {
	repo := &mockGradeRepo{}
	svc := newGradeService(repo, &mockDirectory{}, nil)

	_, err := svc.Create(context.Background(), CreateGradeRequest{
		StudentID:      "s1",
		CourseID:       "MAT",
		AcademicPeriod: models.PeriodBimester1,
		EvaluationType: models.EvaluationExam,
		Grade:          25,
	})
	require.Error(t, err)
	assert.Equal(t, appErrors.KindValidation, appErrors.KindOf(err))
	assert.Empty(t, repo.created)
}

func TestGradeCreateInvalidatesCache(t *testing.T) {
	repo := &mockGradeRepo{}
	cacheRepo := &mockCacheRepo{}
	svc := newGradeService(repo, &mockDirectory{}, cacheRepo)

	_, err := svc.Create(context.Background(), CreateGradeRequest{
		StudentID:      "s1",
		CourseID:       "MAT",
		AcademicPeriod: models.PeriodBimester1,
		EvaluationType: models.EvaluationExam,
		Grade:          14,
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"grades:*"}, cacheRepo.invalidated)
}

func TestGradeUpdateKeepsStudentAndCourse(t *testing.T) {
	repo := &mockGradeRepo{byID: map[string]models.GradeRecord{
		"g1": {ID: "g1", StudentID: "s1", CourseID: "MAT", Active: true},
	}}
	svc := newGradeService(repo, &mockDirectory{}, nil)

	_, err := svc.Update(context.Background(), "g1", UpdateGradeRequest{
		AcademicPeriod: models.PeriodBimester2,
		EvaluationType: models.EvaluationProject,
		Grade:          18,
	})
	require.NoError(t, err)
	payload := repo.updated["g1"]
	assert.Equal(t, "s1", payload.StudentID)
	assert.Equal(t, "MAT", payload.CourseID)
	assert.Equal(t, 18.0, payload.Grade)
}

func TestGradeUpdateMissingRecord(t *testing.T) {
	svc := newGradeService(&mockGradeRepo{}, &mockDirectory{}, nil)

	_, err := svc.Update(context.Background(), "ghost", UpdateGradeRequest{
		AcademicPeriod: models.PeriodBimester1,
		EvaluationType: models.EvaluationExam,
		Grade:          12,
	})
	require.Error(t, err)
	assert.True(t, appErrors.IsNotFound(err))
}

func TestGradeDeleteAndRestoreInvalidateCache(t *testing.T) {
	repo := &mockGradeRepo{}
	cacheRepo := &mockCacheRepo{}
	svc := newGradeService(repo, &mockDirectory{}, cacheRepo)

	_, err := svc.Delete(context.Background(), "g1")
	require.NoError(t, err)
	_, err = svc.Restore(context.Background(), "g1")
	require.NoError(t, err)

	assert.Equal(t, []string{"g1"}, repo.deleted)
	assert.Equal(t, []string{"g1"}, repo.restored)
	assert.Equal(t, []string{"grades:*", "grades:*"}, cacheRepo.invalidated)
}

func TestGradeExportCSV(t *testing.T) {
	repo := &mockGradeRepo{all: activeGrades()}
	dir := &mockDirectory{students: []models.Student{{ID: "s1", FirstName: "Ana", LastName: "Soto"}}}
	svc := newGradeService(repo, dir, nil)

	result, err := svc.Export(context.Background(), GradeQuery{Scope: ScopeActive}, "csv")
	require.NoError(t, err)
	assert.Equal(t, "text/csv", result.ContentType)
	assert.True(t, strings.HasPrefix(result.Filename, "calificaciones-"))

	content := string(result.Payload)
	assert.Contains(t, content, "Estudiante")
	assert.Contains(t, content, "Ana Soto")
	assert.Contains(t, content, "MAT - Matemática")
}

func TestGradeExportUnknownFormat(t *testing.T) {
	svc := newGradeService(&mockGradeRepo{}, &mockDirectory{}, nil)

	_, err := svc.Export(context.Background(), GradeQuery{Scope: ScopeActive}, "xlsx")
	require.Error(t, err)
	assert.Equal(t, appErrors.KindValidation, appErrors.KindOf(err))
}

func TestParseScope(t *testing.T) {
	assert.Equal(t, ScopeActive, ParseScope(""))
	assert.Equal(t, ScopeActive, ParseScope("active"))
	assert.Equal(t, ScopeActive, ParseScope("bogus"))
	assert.Equal(t, ScopeInactive, ParseScope("inactive"))
}
