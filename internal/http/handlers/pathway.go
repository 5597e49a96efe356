package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/yungbote/pathways-backend/internal/http/response"
	"github.com/yungbote/pathways-backend/internal/observability"
	"github.com/yungbote/pathways-backend/internal/pkg/ctxutil"
	"github.com/yungbote/pathways-backend/internal/pkg/logger"
	"github.com/yungbote/pathways-backend/internal/platform/apierr"
	"github.com/yungbote/pathways-backend/internal/services"
)

type PathwayHandler struct {
	log     *logger.Logger
	pathway services.PathwayService
	prereqs services.PrerequisiteService
}

func NewPathwayHandler(log *logger.Logger, pathway services.PathwayService, prereqs services.PrerequisiteService) *PathwayHandler {
	return &PathwayHandler{
		log:     log.With("handler", "PathwayHandler"),
		pathway: pathway,
		prereqs: prereqs,
	}
}

// GET /api/pathways
func (h *PathwayHandler) ListPathways(c *gin.Context) {
	summaries, err := h.pathway.ListPathways(c.Request.Context(), nil)
	if err != nil {
		h.log.Error("ListPathways failed", "error", err)
		response.RespondAPIError(c, err, "list_pathways_failed")
		return
	}
	response.RespondOK(c, gin.H{"pathways": summaries})
}

// GET /api/pathways/:name
//
// Public: anonymous callers get the catalog shape with every course that has
// prerequisites locked; authenticated callers get their progress and real lock
// state.
func (h *PathwayHandler) GetPathway(c *gin.Context) {
	name := c.Param("name")
	studentID := ctxutil.StudentID(c.Request.Context())

	view, err := h.pathway.GetPathway(c.Request.Context(), nil, name, studentID)
	if err != nil {
		if !apierr.IsNotFound(err) {
			h.log.Error("GetPathway failed", "error", err, "pathway", name)
		}
		response.RespondAPIError(c, err, "load_pathway_failed")
		return
	}
	observability.Current().ObservePathwayView(studentID != uuid.Nil)
	response.RespondOK(c, view)
}

// GET /api/courses/:id/unlock-check
func (h *PathwayHandler) UnlockCheck(c *gin.Context) {
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

	check, err := h.prereqs.CheckCourse(c.Request.Context(), nil, rd.StudentID, courseID)
	if err != nil {
		if !apierr.IsNotFound(err) {
			h.log.Error("UnlockCheck failed", "error", err, "course_id", courseID, "student_id", rd.StudentID)
		}
		response.RespondAPIError(c, err, "unlock_check_failed")
		return
	}
	observability.Current().ObserveUnlockCheck(check.CanUnlock)
	response.RespondOK(c, check)
}
