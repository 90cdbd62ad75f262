package handler

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/CristopherGuzmanVelarde/school-admin-api/internal/batch"
	"github.com/CristopherGuzmanVelarde/school-admin-api/internal/models"
	"github.com/CristopherGuzmanVelarde/school-admin-api/internal/query"
	"github.com/CristopherGuzmanVelarde/school-admin-api/internal/service"
	appErrors "github.com/CristopherGuzmanVelarde/school-admin-api/pkg/errors"
	"github.com/CristopherGuzmanVelarde/school-admin-api/pkg/response"
)

// NotificationHandler exposes notification endpoints.
type NotificationHandler struct {
	notifications *service.NotificationService
}

// NewNotificationHandler constructs NotificationHandler.
func NewNotificationHandler(notifications *service.NotificationService) *NotificationHandler {
	return &NotificationHandler{notifications: notifications}
}

// BatchRequest carries the ids a batch operation applies to.
type BatchRequest struct {
	IDs []string `json:"ids" binding:"required,min=1"`
}

func notificationQueryFrom(c *gin.Context) service.NotificationQuery {
	return service.NotificationQuery{
		Scope:  service.ParseScope(c.Query("status")),
		Search: strings.TrimSpace(c.Query("search")),
		Facets: query.NotificationFacets{
			RecipientType:    c.DefaultQuery("recipientType", query.FacetAll),
			NotificationType: c.DefaultQuery("notificationType", query.FacetAll),
			Status:           c.DefaultQuery("notificationStatus", query.FacetAll),
			Channel:          c.DefaultQuery("channel", query.FacetAll),
		},
	}
}

// List godoc
// @Summary List notifications for one lifecycle scope
// @Tags Notifications
// @Produce json
// @Param status query string false "Lifecycle scope: active or inactive"
// @Param search query string false "Search by recipient, message or type"
// @Param recipientType query string false "Filter by recipient type"
// @Param notificationType query string false "Filter by notification type"
// @Param notificationStatus query string false "Filter by delivery status"
// @Param channel query string false "Filter by channel"
// @Success 200 {object} response.Envelope
// @Router /notifications [get]
func (h *NotificationHandler) List(c *gin.Context) {
	view, err := h.notifications.List(c.Request.Context(), notificationQueryFrom(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, view)
}

// Get godoc
// @Summary Get notification detail
// @Tags Notifications
// @Produce json
// @Param id path string true "Notification ID"
// @Success 200 {object} response.Envelope
// @Router /notifications/{id} [get]
func (h *NotificationHandler) Get(c *gin.Context) {
	record, err := h.notifications.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, record)
}

// ByRecipient godoc
// @Summary List notifications addressed to one recipient
// @Tags Notifications
// @Produce json
// @Param recipientId path string true "Recipient ID"
// @Success 200 {object} response.Envelope
// @Router /notifications/recipient/{recipientId} [get]
func (h *NotificationHandler) ByRecipient(c *gin.Context) {
	records, err := h.notifications.ListByRecipient(c.Request.Context(), c.Param("recipientId"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, records)
}

// ByType godoc
// @Summary List notifications of one type
// @Tags Notifications
// @Produce json
// @Param type path string true "Notification type"
// @Success 200 {object} response.Envelope
// @Router /notifications/type/{type} [get]
func (h *NotificationHandler) ByType(c *gin.Context) {
	records, err := h.notifications.ListByType(c.Request.Context(), models.NotificationType(c.Param("type")))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, records)
}

// ByStatus godoc
// @Summary List notifications in one delivery state
// @Tags Notifications
// @Produce json
// @Param status path string true "Notification status"
// @Success 200 {object} response.Envelope
// @Router /notifications/status/{status} [get]
func (h *NotificationHandler) ByStatus(c *gin.Context) {
	records, err := h.notifications.ListByStatus(c.Request.Context(), models.NotificationStatus(c.Param("status")))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, records)
}

// Unread godoc
// @Summary List unread notifications of one recipient
// @Tags Notifications
// @Produce json
// @Param recipientId path string true "Recipient ID"
// @Success 200 {object} response.Envelope
// @Router /notifications/recipient/{recipientId}/unread [get]
func (h *NotificationHandler) Unread(c *gin.Context) {
	records, err := h.notifications.ListUnread(c.Request.Context(), c.Param("recipientId"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, records)
}

// Create godoc
// @Summary Create notification
// @Tags Notifications
// @Accept json
// @Produce json
// @Param payload body service.CreateNotificationRequest true "Notification payload"
// @Success 201 {object} response.Envelope
// @Router /notifications [post]
func (h *NotificationHandler) Create(c *gin.Context) {
	var req service.CreateNotificationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	record, err := h.notifications.Create(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, record)
}

// CreateBulk godoc
// @Summary Create many notifications in one call
// @Tags Notifications
// @Accept json
// @Produce json
// @Param payload body []service.CreateNotificationRequest true "Notification payloads"
// @Success 200 {object} response.Envelope
// @Router /notifications/bulk [post]
func (h *NotificationHandler) CreateBulk(c *gin.Context) {
	var reqs []service.CreateNotificationRequest
	if err := c.ShouldBindJSON(&reqs); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	if len(reqs) == 0 {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "empty bulk payload"))
		return
	}
	result := h.notifications.CreateBulk(c.Request.Context(), reqs)
	response.JSON(c, http.StatusOK, result)
}

// MassSend godoc
// @Summary Send one message to a whole recipient group
// @Tags Notifications
// @Accept json
// @Produce json
// @Param payload body service.MassSendRequest true "Mass send payload"
// @Success 200 {object} response.Envelope
// @Router /notifications/mass-send [post]
func (h *NotificationHandler) MassSend(c *gin.Context) {
	var req service.MassSendRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	records, err := h.notifications.MassSend(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, records)
}

// Update godoc
// @Summary Update notification
// @Tags Notifications
// @Accept json
// @Produce json
// @Param id path string true "Notification ID"
// @Param payload body service.UpdateNotificationRequest true "Notification payload"
// @Success 200 {object} response.Envelope
// @Router /notifications/{id} [put]
func (h *NotificationHandler) Update(c *gin.Context) {
	var req service.UpdateNotificationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	record, err := h.notifications.Update(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, record)
}

// Delete godoc
// @Summary Soft-delete notification
// @Tags Notifications
// @Produce json
// @Param id path string true "Notification ID"
// @Success 200 {object} response.Envelope
// @Router /notifications/{id} [delete]
func (h *NotificationHandler) Delete(c *gin.Context) {
	record, err := h.notifications.Delete(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, record)
}

// Restore godoc
// @Summary Restore soft-deleted notification
// @Tags Notifications
// @Produce json
// @Param id path string true "Notification ID"
// @Success 200 {object} response.Envelope
// @Router /notifications/{id}/restore [put]
func (h *NotificationHandler) Restore(c *gin.Context) {
	record, err := h.notifications.Restore(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, record)
}

// MarkRead godoc
// @Summary Mark notification as read
// @Tags Notifications
// @Produce json
// @Param id path string true "Notification ID"
// @Success 200 {object} response.Envelope
// @Router /notifications/{id}/read [put]
func (h *NotificationHandler) MarkRead(c *gin.Context) {
	record, err := h.notifications.MarkRead(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, record)
}

// Resend godoc
// @Summary Resend notification
// @Tags Notifications
// @Produce json
// @Param id path string true "Notification ID"
// @Success 200 {object} response.Envelope
// @Router /notifications/{id}/resend [post]
func (h *NotificationHandler) Resend(c *gin.Context) {
	record, err := h.notifications.Resend(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, record)
}

// MarkManyRead godoc
// @Summary Mark many notifications as read
// @Tags Notifications
// @Accept json
// @Produce json
// @Param payload body handler.BatchRequest true "Notification IDs"
// @Success 200 {object} response.Envelope
// @Router /notifications/batch/read [put]
func (h *NotificationHandler) MarkManyRead(c *gin.Context) {
	h.batch(c, h.notifications.MarkManyRead)
}

// ResendMany godoc
// @Summary Resend many notifications
// @Tags Notifications
// @Accept json
// @Produce json
// @Param payload body handler.BatchRequest true "Notification IDs"
// @Success 200 {object} response.Envelope
// @Router /notifications/batch/resend [post]
func (h *NotificationHandler) ResendMany(c *gin.Context) {
	h.batch(c, h.notifications.ResendMany)
}

// RestoreMany godoc
// @Summary Restore many notifications
// @Tags Notifications
// @Accept json
// @Produce json
// @Param payload body handler.BatchRequest true "Notification IDs"
// @Success 200 {object} response.Envelope
// @Router /notifications/batch/restore [put]
func (h *NotificationHandler) RestoreMany(c *gin.Context) {
	h.batch(c, h.notifications.RestoreMany)
}

func (h *NotificationHandler) batch(c *gin.Context, apply func(ctx context.Context, ids []string) batch.Result) {
	var req BatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	result := apply(c.Request.Context(), req.IDs)
	response.JSON(c, http.StatusOK, gin.H{
		"succeeded": result.Succeeded,
		"failed":    result.FailedMessages(),
	})
}

// Export godoc
// @Summary Export the filtered notification view
// @Tags Notifications
// @Produce text/csv
// @Produce application/pdf
// @Param format query string false "Export format: csv or pdf"
// @Param status query string false "Lifecycle scope: active or inactive"
// @Param search query string false "Search term"
// @Success 200 {file} file
// @Router /notifications/export [get]
func (h *NotificationHandler) Export(c *gin.Context) {
	result, err := h.notifications.Export(c.Request.Context(), notificationQueryFrom(c), c.DefaultQuery("format", "csv"))
	if err != nil {
		response.Error(c, err)
		return
	}
	c.Header("Content-Disposition", "attachment; filename="+result.Filename)
	c.Data(http.StatusOK, result.ContentType, result.Payload)
}
