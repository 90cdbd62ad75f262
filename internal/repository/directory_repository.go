package repository

import (
	"context"

	"go.uber.org/zap"

	"github.com/CristopherGuzmanVelarde/school-admin-api/internal/models"
	"github.com/CristopherGuzmanVelarde/school-admin-api/internal/remote"
	appErrors "github.com/CristopherGuzmanVelarde/school-admin-api/pkg/errors"
)

// DirectoryRepository reads the student and teacher directories, which are
// consumed read-only for display-name resolution.
type DirectoryRepository struct {
	students *remote.Client
	teachers *remote.Client
	logger   *zap.Logger
}

// NewDirectoryRepository constructs a directory repository.
func NewDirectoryRepository(students, teachers *remote.Client, logger *zap.Logger) *DirectoryRepository {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DirectoryRepository{students: students, teachers: teachers, logger: logger}
}

// Students lists the student directory. A missing endpoint yields an empty
// directory so name resolution degrades to placeholders instead of failing.
func (r *DirectoryRepository) Students(ctx context.Context) ([]models.Student, error) {
	var students []models.Student
	if err := r.students.Get(ctx, "", &students); err != nil {
		if appErrors.IsNotFound(err) {
			return []models.Student{}, nil
		}
		return nil, err
	}
	if students == nil {
		students = []models.Student{}
	}
	return students, nil
}

// Teachers lists the teacher directory.
func (r *DirectoryRepository) Teachers(ctx context.Context) ([]models.Teacher, error) {
	var teachers []models.Teacher
	if err := r.teachers.Get(ctx, "", &teachers); err != nil {
		if appErrors.IsNotFound(err) {
			return []models.Teacher{}, nil
		}
		return nil, err
	}
	if teachers == nil {
		teachers = []models.Teacher{}
	}
	return teachers, nil
}
