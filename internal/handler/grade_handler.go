package handler

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/CristopherGuzmanVelarde/school-admin-api/internal/query"
	"github.com/CristopherGuzmanVelarde/school-admin-api/internal/service"
	appErrors "github.com/CristopherGuzmanVelarde/school-admin-api/pkg/errors"
	"github.com/CristopherGuzmanVelarde/school-admin-api/pkg/response"
)

// GradeHandler exposes grade endpoints.
type GradeHandler struct {
	grades *service.GradeService
}

// NewGradeHandler constructs GradeHandler.
func NewGradeHandler(grades *service.GradeService) *GradeHandler {
	return &GradeHandler{grades: grades}
}

func gradeQueryFrom(c *gin.Context) service.GradeQuery {
	return service.GradeQuery{
		Scope:  service.ParseScope(c.Query("status")),
		Search: strings.TrimSpace(c.Query("search")),
		Facets: query.GradeFacets{
			AcademicPeriod: c.DefaultQuery("academicPeriod", query.FacetAll),
			EvaluationType: c.DefaultQuery("evaluationType", query.FacetAll),
		},
	}
}

// List godoc
// @Summary List grades for one lifecycle scope
// @Tags Grades
// @Produce json
// @Param status query string false "Lifecycle scope: active or inactive"
// @Param search query string false "Search by student, course or evaluation type"
// @Param academicPeriod query string false "Filter by academic period"
// @Param evaluationType query string false "Filter by evaluation type"
// @Success 200 {object} response.Envelope
// @Router /grades [get]
func (h *GradeHandler) List(c *gin.Context) {
	view, err := h.grades.List(c.Request.Context(), gradeQueryFrom(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, view)
}

// Get godoc
// @Summary Get grade detail
// @Tags Grades
// @Produce json
// @Param id path string true "Grade ID"
// @Success 200 {object} response.Envelope
// @Router /grades/{id} [get]
func (h *GradeHandler) Get(c *gin.Context) {
	record, err := h.grades.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, record)
}

// Create godoc
// @Summary Register grade
// @Tags Grades
// @Accept json
// @Produce json
// @Param payload body service.CreateGradeRequest true "Grade payload"
// @Success 201 {object} response.Envelope
// @Router /grades [post]
func (h *GradeHandler) Create(c *gin.Context) {
	var req service.CreateGradeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	record, err := h.grades.Create(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, record)
}

// Update godoc
// @Summary Update grade
// @Tags Grades
// @Accept json
// @Produce json
// @Param id path string true "Grade ID"
// @Param payload body service.UpdateGradeRequest true "Grade payload"
// @Success 200 {object} response.Envelope
// @Router /grades/{id} [put]
func (h *GradeHandler) Update(c *gin.Context) {
	var req service.UpdateGradeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	record, err := h.grades.Update(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, record)
}

// Delete godoc
// @Summary Soft-delete grade
// @Tags Grades
// @Produce json
// @Param id path string true "Grade ID"
// @Success 200 {object} response.Envelope
// @Router /grades/{id} [delete]
func (h *GradeHandler) Delete(c *gin.Context) {
	record, err := h.grades.Delete(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, record)
}

// Restore godoc
// @Summary Restore soft-deleted grade
// @Tags Grades
// @Produce json
// @Param id path string true "Grade ID"
// @Success 200 {object} response.Envelope
// @Router /grades/{id}/restore [put]
func (h *GradeHandler) Restore(c *gin.Context) {
	record, err := h.grades.Restore(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, record)
}

// Notifications godoc
// @Summary List notifications generated for a grade
// @Tags Grades
// @Produce json
// @Param id path string true "Grade ID"
// @Success 200 {object} response.Envelope
// @Router /grades/{id}/notifications [get]
func (h *GradeHandler) Notifications(c *gin.Context) {
	records, err := h.grades.Notifications(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, records)
}

// Export godoc
// @Summary Export the filtered grade view
// @Tags Grades
// @Produce text/csv
// @Produce application/pdf
// @Param format query string false "Export format: csv or pdf"
// @Param status query string false "Lifecycle scope: active or inactive"
// @Param search query string false "Search term"
// @Param academicPeriod query string false "Filter by academic period"
// @Param evaluationType query string false "Filter by evaluation type"
// @Success 200 {file} file
// @Router /grades/export [get]
func (h *GradeHandler) Export(c *gin.Context) {
	result, err := h.grades.Export(c.Request.Context(), gradeQueryFrom(c), c.DefaultQuery("format", "csv"))
	if err != nil {
		response.Error(c, err)
		return
	}
	c.Header("Content-Disposition", "attachment; filename="+result.Filename)
	c.Data(http.StatusOK, result.ContentType, result.Payload)
}
