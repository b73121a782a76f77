package api

import (
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// @title Pull Request Analytics API
// @version 1.0
// @description API for incremental pull request analytics over GitHub repositories
// @license.name MIT
// @license.url https://opensource.org/licenses/MIT
// @host localhost:7007
// @BasePath /api/v1
// @schemes http https

// SetupRouter configures the API routes
func SetupRouter(h *Handler) *gin.Engine {
	r := gin.Default()

	// API documentation
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	r.GET("/health", h.Health)

	// API v1 group
	v1 := r.Group("/api/v1")
	{
		repositories := v1.Group("/repositories")
		{
			// @Summary Ingest a repository
			// @Description Advance the repository's merged pull request ingestion by one step
			// @Tags repositories
			// @Accept json
			// @Produce json
			// @Param repo path string true "Repository name"
			// @Success 200 {object} StatusResponse
			// @Failure 502 {object} ErrorResponse
			// @Failure 500 {object} ErrorResponse
			// @Router /repositories/{repo}/ingest [post]
			repositories.POST("/:repo/ingest", h.IngestRepository)

			// @Summary Get repository analytics
			// @Description Get monthly cycle time, first review time, merge counts and the leaderboard for a repository
			// @Tags repositories
			// @Accept json
			// @Produce json
			// @Param repo path string true "Repository name"
			// @Param years query int false "Number of years to report, newest first" default(5)
			// @Success 200 {object} models.AnalyticsReport
			// @Failure 400 {object} ErrorResponse
			// @Failure 500 {object} ErrorResponse
			// @Router /repositories/{repo}/analytics [get]
			repositories.GET("/:repo/analytics", h.GetRepositoryAnalytics)
		}

		users := v1.Group("/users/:user_id")
		{
			// @Summary Get user dashboard analytics
			// @Description Refresh and report every repository on the user's dashboard
			// @Tags users
			// @Accept json
			// @Produce json
			// @Param user_id path string true "User ID"
			// @Success 200 {object} map[string]models.AnalyticsReport
			// @Failure 500 {object} ErrorResponse
			// @Router /users/{user_id}/analytics [get]
			users.GET("/analytics", h.GetUserAnalytics)

			// @Summary List tracked repositories
			// @Description List the repositories on the user's dashboard
			// @Tags users
			// @Accept json
			// @Produce json
			// @Param user_id path string true "User ID"
			// @Success 200 {array} models.UserRepository
			// @Failure 500 {object} ErrorResponse
			// @Router /users/{user_id}/repositories [get]
			users.GET("/repositories", h.ListUserRepositories)

			// @Summary Track a repository
			// @Description Add a repository to the user's dashboard after validating it exists
			// @Tags users
			// @Accept json
			// @Produce json
			// @Param user_id path string true "User ID"
			// @Param request body trackRepositoryRequest true "Repository to track"
			// @Success 201 {object} StatusResponse
			// @Failure 400 {object} ErrorResponse
			// @Failure 404 {object} ErrorResponse
			// @Failure 502 {object} ErrorResponse
			// @Router /users/{user_id}/repositories [post]
			users.POST("/repositories", h.TrackRepository)

			// @Summary Untrack a repository
			// @Description Remove a repository from the user's dashboard
			// @Tags users
			// @Accept json
			// @Produce json
			// @Param user_id path string true "User ID"
			// @Param repo path string true "Repository name"
			// @Success 204 "No Content"
			// @Failure 404 {object} ErrorResponse
			// @Failure 500 {object} ErrorResponse
			// @Router /users/{user_id}/repositories/{repo} [delete]
			users.DELETE("/repositories/:repo", h.UntrackRepository)
		}

		pullRequests := v1.Group("/pull-requests/:id")
		{
			// @Summary Get pull request properties
			// @Description Get the priority and description attached to a pull request
			// @Tags pull-requests
			// @Accept json
			// @Produce json
			// @Param id path string true "Pull request node ID"
			// @Success 200 {object} models.PullRequestProps
			// @Failure 500 {object} ErrorResponse
			// @Router /pull-requests/{id} [get]
			pullRequests.GET("", h.GetPullRequestProps)

			// @Summary Set pull request priority
			// @Description Upsert the priority attached to a pull request
			// @Tags pull-requests
			// @Accept json
			// @Produce json
			// @Param id path string true "Pull request node ID"
			// @Param request body setPriorityRequest true "Priority to set"
			// @Success 200 {object} StatusResponse
			// @Failure 400 {object} ErrorResponse
			// @Failure 500 {object} ErrorResponse
			// @Router /pull-requests/{id}/priority [put]
			pullRequests.PUT("/priority", h.SetPullRequestPriority)

			// @Summary Set pull request description
			// @Description Upsert the description attached to a pull request
			// @Tags pull-requests
			// @Accept json
			// @Produce json
			// @Param id path string true "Pull request node ID"
			// @Param request body setDescriptionRequest true "Description to set"
			// @Success 200 {object} StatusResponse
			// @Failure 400 {object} ErrorResponse
			// @Failure 500 {object} ErrorResponse
			// @Router /pull-requests/{id}/description [put]
			pullRequests.PUT("/description", h.SetPullRequestDescription)
		}
	}

	return r
}
