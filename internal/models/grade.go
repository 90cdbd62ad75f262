package models

import (
	"encoding/json"
	"fmt"
	"time"
)

// Grading scale used by the academic records service. The passing threshold is
// inclusive: a grade exactly at the threshold counts as passing.
const (
	GradeScaleMin    = 0.0
	GradeScaleMax    = 20.0
	PassingThreshold = 11.0
)

// PassStatus is the derived pass/fail classification of a grade.
type PassStatus string

const (
	PassStatusPassing PassStatus = "PASSING"
	PassStatusFailing PassStatus = "FAILING"
)

// AcademicPeriod identifies the bimester a grade belongs to.
type AcademicPeriod string

const (
	PeriodBimester1 AcademicPeriod = "BIMESTRE_I"
	PeriodBimester2 AcademicPeriod = "BIMESTRE_II"
	PeriodBimester3 AcademicPeriod = "BIMESTRE_III"
	PeriodBimester4 AcademicPeriod = "BIMESTRE_IV"
)

// EvaluationType identifies the kind of assessment that produced a grade.
type EvaluationType string

const (
	EvaluationExam          EvaluationType = "EXAM"
	EvaluationHomework      EvaluationType = "HOMEWORK"
	EvaluationProject       EvaluationType = "PROJECT"
	EvaluationParticipation EvaluationType = "PARTICIPATION"
	EvaluationQuiz          EvaluationType = "QUIZ"
)

// AcademicPeriodLabels maps period codes onto display labels.
var AcademicPeriodLabels = map[AcademicPeriod]string{
	PeriodBimester1: "Primer Bimestre",
	PeriodBimester2: "Segundo Bimestre",
	PeriodBimester3: "Tercer Bimestre",
	PeriodBimester4: "Cuarto Bimestre",
}

// EvaluationTypeLabels maps evaluation type codes onto display labels.
var EvaluationTypeLabels = map[EvaluationType]string{
	EvaluationExam:          "Examen",
	EvaluationHomework:      "Tarea",
	EvaluationProject:       "Proyecto",
	EvaluationParticipation: "Participación",
	EvaluationQuiz:          "Práctica",
}

// CourseLabels maps course codes onto display labels.
var CourseLabels = map[string]string{
	"MAT": "Matemática",
	"COM": "Comunicación",
	"CTA": "Ciencia y Tecnología",
	"PSO": "Personal Social",
	"ING": "Inglés",
	"ART": "Arte y Cultura",
	"EFI": "Educación Física",
	"REL": "Educación Religiosa",
}

// CourseLabel renders "CODE - Label" for known courses and falls back to the
// raw code for unknown ones.
func CourseLabel(courseID string) string {
	if label, ok := CourseLabels[courseID]; ok {
		return fmt.Sprintf("%s - %s", courseID, label)
	}
	return courseID
}

// CivilDate is a calendar date exchanged with the record store as a
// [year, month, day] triple rather than a timestamp string.
type CivilDate struct {
	Year  int
	Month int
	Day   int
}

// MarshalJSON encodes the date as [year, month, day].
func (d CivilDate) MarshalJSON() ([]byte, error) {
	return json.Marshal([3]int{d.Year, d.Month, d.Day})
}

// UnmarshalJSON accepts a [year, month, day] array; null leaves the date zero.
func (d *CivilDate) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*d = CivilDate{}
		return nil
	}
	var parts []int
	if err := json.Unmarshal(data, &parts); err != nil {
		return fmt.Errorf("civil date must be a [year, month, day] array: %w", err)
	}
	if len(parts) < 3 {
		return fmt.Errorf("civil date requires 3 elements, got %d", len(parts))
	}
	d.Year, d.Month, d.Day = parts[0], parts[1], parts[2]
	return nil
}

// IsZero reports whether the date is unset.
func (d CivilDate) IsZero() bool {
	return d.Year == 0 && d.Month == 0 && d.Day == 0
}

// Time converts the date to a time.Time at midnight UTC.
func (d CivilDate) Time() time.Time {
	return time.Date(d.Year, time.Month(d.Month), d.Day, 0, 0, 0, 0, time.UTC)
}

func (d CivilDate) String() string {
	if d.IsZero() {
		return ""
	}
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, d.Month, d.Day)
}

// GradeRecord is a grade entry owned by the remote record store. The core
// holds request-scoped copies only; mutations go through the repository and
// the local view is refreshed afterwards.
type GradeRecord struct {
	ID             string         `json:"id"`
	StudentID      string         `json:"studentId"`
	CourseID       string         `json:"courseId"`
	AcademicPeriod AcademicPeriod `json:"academicPeriod"`
	EvaluationType EvaluationType `json:"evaluationType"`
	Grade          float64        `json:"grade"`
	EvaluationDate CivilDate      `json:"evaluationDate"`
	Remarks        string         `json:"remarks,omitempty"`
	Active         bool           `json:"active"`
}

// PassStatus classifies the grade against the passing threshold.
func (g GradeRecord) PassStatus() PassStatus {
	if g.Grade >= PassingThreshold {
		return PassStatusPassing
	}
	return PassStatusFailing
}
