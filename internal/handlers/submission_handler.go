package handlers

import (
	"net/http"

	"brandlink_backend/internal/models"
	"brandlink_backend/internal/services"
	"brandlink_backend/internal/services/dto"
	"brandlink_backend/pkg/apperrors"

	"github.com/gin-gonic/gin"
)

// maxUploadSize caps revision uploads at 512 MiB.
const maxUploadSize = 512 << 20

type SubmissionHandler struct {
	*BaseHandler
	submissionService *services.SubmissionService
}

func NewSubmissionHandler(base *BaseHandler, submissionService *services.SubmissionService) *SubmissionHandler {
	return &SubmissionHandler{
		BaseHandler:       base,
		submissionService: submissionService,
	}
}

func (h *SubmissionHandler) RegisterRoutes(rg *gin.RouterGroup) {
	submissions := rg.Group("/submissions")
	{
		submissions.POST("/spark-code", h.SubmitSparkCode)
		submissions.POST("/tiktok-link", h.SubmitTikTokLink)
		submissions.POST("/revision", h.SubmitRevision)
		submissions.PATCH("/:submissionId", h.UpdateStatus)
		submissions.GET("/:submissionId/history", h.History)
	}
}

func (h *SubmissionHandler) SubmitSparkCode(c *gin.Context) {
	if _, ok := h.UserID(c); !ok {
		return
	}

	var req dto.SparkCodeRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	submission, err := h.submissionService.SubmitSparkCode(req.SubmissionID, req.SparkCode)
	if err != nil {
		apperrors.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data": gin.H{
			"submission_id": submission.ID,
			"status":        submission.Status,
		},
	})
}

func (h *SubmissionHandler) SubmitTikTokLink(c *gin.Context) {
	if _, ok := h.UserID(c); !ok {
		return
	}

	var req dto.TikTokLinkRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	submission, err := h.submissionService.SubmitTikTokLink(req.SubmissionID, req.TikTokLink)
	if err != nil {
		apperrors.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data": gin.H{
			"submission_id": submission.ID,
			"status":        submission.Status,
		},
	})
}

func (h *SubmissionHandler) SubmitRevision(c *gin.Context) {
	if _, ok := h.UserID(c); !ok {
		return
	}

	submissionID := c.PostForm("submission_id")
	if submissionID == "" {
		apperrors.HandleError(c, apperrors.NewBadRequestError("submission_id is required"))
		return
	}

	fileHeader, err := c.FormFile("video")
	if err != nil {
		apperrors.HandleError(c, apperrors.NewBadRequestError("video file is required"))
		return
	}
	if fileHeader.Size > maxUploadSize {
		apperrors.HandleError(c, apperrors.NewBadRequestError("video file is too large"))
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		apperrors.HandleError(c, apperrors.InternalError(err))
		return
	}
	defer file.Close()

	submission, err := h.submissionService.SubmitRevision(
		c.Request.Context(),
		submissionID,
		file,
		fileHeader.Filename,
		fileHeader.Header.Get("Content-Type"),
	)
	if err != nil {
		apperrors.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data": gin.H{
			"submission_id": submission.ID,
			"video_url":     submission.VideoURL,
			"status":        submission.Status,
		},
	})
}

func (h *SubmissionHandler) UpdateStatus(c *gin.Context) {
	userID, ok := h.UserID(c)
	if !ok {
		return
	}

	submissionID := c.Param("submissionId")

	var req dto.UpdateSubmissionStatusRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	submission, err := h.submissionService.UpdateStatus(
		submissionID,
		models.SubmissionStatus(req.Status),
		userID,
		req.Comment,
	)
	if err != nil {
		apperrors.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":       true,
		"message":       "Submission status updated",
		"submission_id": submission.ID,
		"status":        submission.Status,
	})
}

func (h *SubmissionHandler) History(c *gin.Context) {
	if _, ok := h.UserID(c); !ok {
		return
	}

	entries, err := h.submissionService.History(c.Param("submissionId"))
	if err != nil {
		apperrors.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    entries,
	})
}
