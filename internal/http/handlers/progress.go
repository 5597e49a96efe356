package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/yungbote/pathways-backend/internal/http/response"
	"github.com/yungbote/pathways-backend/internal/pkg/ctxutil"
	"github.com/yungbote/pathways-backend/internal/pkg/logger"
	"github.com/yungbote/pathways-backend/internal/platform/apierr"
	"github.com/yungbote/pathways-backend/internal/services"
)

type ProgressHandler struct {
	log      *logger.Logger
	progress services.ProgressService
}

func NewProgressHandler(log *logger.Logger, progress services.ProgressService) *ProgressHandler {
	return &ProgressHandler{
		log:      log.With("handler", "ProgressHandler"),
		progress: progress,
	}
}

// GET /api/student-progress
func (h *ProgressHandler) StudentProgress(c *gin.Context) {
	rd := ctxutil.GetRequestData(c.Request.Context())
	if rd == nil || rd.StudentID == uuid.Nil {
		response.RespondError(c, http.StatusUnauthorized, "unauthorized", nil)
		return
	}

	summaries, err := h.progress.StudentSummary(c.Request.Context(), nil, rd.StudentID)
	if err != nil {
		h.log.Error("StudentProgress failed", "error", err, "student_id", rd.StudentID)
		response.RespondAPIError(c, err, "load_student_progress_failed")
		return
	}
	response.RespondOK(c, gin.H{"pathways": summaries})
}

// POST /api/courses/:id/progress
func (h *ProgressHandler) RecordProgress(c *gin.Context) {
	rd := ctxutil.GetRequestData(c.Request.Context())
	if rd == nil || rd.StudentID == uuid.Nil {
		response.RespondError(c, http.StatusUnauthorized, "unauthorized", nil)
		return
	}
	courseID, err := uuid.Parse(c.Param("id"))
	if err != nil || courseID == uuid.Nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_course_id", err)
		return
	}

	var input services.RecordProgressInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_body", err)
		return
	}

	row, err := h.progress.RecordProgress(c.Request.Context(), nil, rd.StudentID, courseID, input)
	if err != nil {
		if !apierr.IsNotFound(err) && apierr.Status(err) >= http.StatusInternalServerError {
			h.log.Error("RecordProgress failed", "error", err, "course_id", courseID, "student_id", rd.StudentID)
		}
		response.RespondAPIError(c, err, "record_progress_failed")
		return
	}
	response.RespondOK(c, gin.H{"progress": row})
}
