package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/CristopherGuzmanVelarde/school-admin-api/internal/repository"
	"github.com/CristopherGuzmanVelarde/school-admin-api/pkg/response"
)

// DirectoryHandler exposes the read-only person directory used to resolve
// record owner names.
type DirectoryHandler struct {
	directory *repository.DirectoryRepository
}

// NewDirectoryHandler constructs DirectoryHandler.
func NewDirectoryHandler(directory *repository.DirectoryRepository) *DirectoryHandler {
	return &DirectoryHandler{directory: directory}
}

// Students godoc
// @Summary List students
// @Tags Directory
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /students [get]
func (h *DirectoryHandler) Students(c *gin.Context) {
	students, err := h.directory.Students(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, students)
}

// Teachers godoc
// @Summary List teachers
// @Tags Directory
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /teachers [get]
func (h *DirectoryHandler) Teachers(c *gin.Context) {
	teachers, err := h.directory.Teachers(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, teachers)
}
