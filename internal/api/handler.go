package api

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/American-Capstones/TAMU-Fall-2023-Backend/internal/analytics"
	"github.com/American-Capstones/TAMU-Fall-2023-Backend/internal/errors"
)

// ErrorResponse is the JSON body returned for every failed request.
type ErrorResponse struct {
	Error string `json:"error"`
}

// StatusResponse is the JSON body returned for state-changing requests that
// have no payload.
type StatusResponse struct {
	Status string `json:"status"`
}

type Handler struct {
	service *analytics.Service
	logger  *logrus.Logger
}

func NewHandler(service *analytics.Service, logger *logrus.Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// IngestRepository triggers one ingestion call for a repository.
func (h *Handler) IngestRepository(c *gin.Context) {
	repository := c.Param("repo")

	if err := h.service.IngestRepository(c.Request.Context(), repository); err != nil {
		h.respondError(c, "Failed to ingest repository", err)
		return
	}

	c.JSON(http.StatusOK, StatusResponse{Status: "success"})
}

// GetRepositoryAnalytics returns the analytics report for a repository.
func (h *Handler) GetRepositoryAnalytics(c *gin.Context) {
	repository := c.Param("repo")

	years, err := getIntQueryParam(c, "years", 0)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid years parameter"})
		return
	}

	report, err := h.service.GetRepositoryReport(c.Request.Context(), repository, years)
	if err != nil {
		h.respondError(c, "Failed to build analytics report", err)
		return
	}

	c.JSON(http.StatusOK, report)
}

// GetUserAnalytics refreshes and returns reports for every repository on a
// user's dashboard.
func (h *Handler) GetUserAnalytics(c *gin.Context) {
	userID := c.Param("user_id")

	reports, err := h.service.GetUserAnalytics(c.Request.Context(), userID)
	if err != nil {
		h.respondError(c, "Failed to build user analytics", err)
		return
	}

	c.JSON(http.StatusOK, reports)
}

type trackRepositoryRequest struct {
	Repository string `json:"repository" binding:"required"`
}

// TrackRepository adds a repository to a user's dashboard.
func (h *Handler) TrackRepository(c *gin.Context) {
	userID := c.Param("user_id")

	var req trackRepositoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body: repository is required"})
		return
	}

	if err := h.service.TrackRepository(c.Request.Context(), userID, req.Repository); err != nil {
		h.respondError(c, "Failed to track repository", err)
		return
	}

	c.JSON(http.StatusCreated, StatusResponse{Status: "success"})
}

// UntrackRepository removes a repository from a user's dashboard.
func (h *Handler) UntrackRepository(c *gin.Context) {
	userID := c.Param("user_id")
	repository := c.Param("repo")

	if err := h.service.UntrackRepository(c.Request.Context(), userID, repository); err != nil {
		h.respondError(c, "Failed to untrack repository", err)
		return
	}

	c.Status(http.StatusNoContent)
}

// ListUserRepositories lists the repositories on a user's dashboard.
func (h *Handler) ListUserRepositories(c *gin.Context) {
	userID := c.Param("user_id")

	repos, err := h.service.ListUserRepositories(c.Request.Context(), userID)
	if err != nil {
		h.respondError(c, "Failed to list repositories", err)
		return
	}

	c.JSON(http.StatusOK, repos)
}

type setPriorityRequest struct {
	Priority string `json:"priority" binding:"required"`
}

// SetPullRequestPriority upserts the priority of a pull request.
func (h *Handler) SetPullRequestPriority(c *gin.Context) {
	pullRequestID := c.Param("id")

	var req setPriorityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body: priority is required"})
		return
	}

	if err := h.service.SetPullRequestPriority(c.Request.Context(), pullRequestID, req.Priority); err != nil {
		h.respondError(c, "Failed to set priority", err)
		return
	}

	c.JSON(http.StatusOK, StatusResponse{Status: "success"})
}

type setDescriptionRequest struct {
	Description string `json:"description"`
	UpdatedBy   string `json:"updated_by" binding:"required"`
}

// SetPullRequestDescription upserts the description of a pull request.
func (h *Handler) SetPullRequestDescription(c *gin.Context) {
	pullRequestID := c.Param("id")

	var req setDescriptionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body: updated_by is required"})
		return
	}

	if err := h.service.SetPullRequestDescription(c.Request.Context(), pullRequestID, req.Description, req.UpdatedBy); err != nil {
		h.respondError(c, "Failed to set description", err)
		return
	}

	c.JSON(http.StatusOK, StatusResponse{Status: "success"})
}

// GetPullRequestProps returns the stored properties of a pull request.
func (h *Handler) GetPullRequestProps(c *gin.Context) {
	pullRequestID := c.Param("id")

	props, err := h.service.GetPullRequestProps(c.Request.Context(), pullRequestID)
	if err != nil {
		h.respondError(c, "Failed to get pull request properties", err)
		return
	}

	c.JSON(http.StatusOK, props)
}

// Health reports service liveness.
func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, StatusResponse{Status: "ok"})
}

// respondError maps domain error types to HTTP statuses.
func (h *Handler) respondError(c *gin.Context, message string, err error) {
	h.logger.WithError(err).Error(message)

	status := http.StatusInternalServerError
	switch {
	case errors.IsNotFound(err):
		status = http.StatusNotFound
	case errors.IsInvalidInput(err):
		status = http.StatusBadRequest
	case errors.IsSource(err):
		status = http.StatusBadGateway
	}

	c.JSON(status, ErrorResponse{Error: message})
}

func getIntQueryParam(c *gin.Context, param string, defaultValue int) (int, error) {
	value := c.Query(param)
	if value == "" {
		return defaultValue, nil
	}
	return strconv.Atoi(value)
}
