package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/advisorly/advisorly-backend/internal/http/response"
	"github.com/advisorly/advisorly-backend/internal/platform/apierr"
	"github.com/advisorly/advisorly-backend/internal/platform/ctxutil"
	"github.com/advisorly/advisorly-backend/internal/platform/logger"
	"github.com/advisorly/advisorly-backend/internal/services"
)

type PromoteBlueprintRequest struct {
	BlueprintID string `json:"blueprintId" binding:"required"`
	PracticeID  string `json:"practiceId" binding:"required"`
}

type PromoteBlueprintResponse struct {
	Success     bool   `json:"success"`
	ServiceCode string `json:"serviceCode"`
	Message     string `json:"message"`
}

type BlueprintHandler struct {
	log       *logger.Logger
	promotion services.PromotionService
}

func NewBlueprintHandler(log *logger.Logger, promotion services.PromotionService) *BlueprintHandler {
	return &BlueprintHandler{
		log:       log.With("handler", "BlueprintHandler"),
		promotion: promotion,
	}
}

func (h *BlueprintHandler) Promote(c *gin.Context) {
	var req PromoteBlueprintRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, errors.New("blueprintId and practiceId are required"))
		return
	}
	blueprintID, err := uuid.Parse(req.BlueprintID)
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, errors.New("blueprintId must be a valid uuid"))
		return
	}
	practiceID, err := uuid.Parse(req.PracticeID)
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, errors.New("practiceId must be a valid uuid"))
		return
	}
	if !h.allowPractice(c, practiceID) {
		response.RespondError(c, http.StatusForbidden, errors.New("forbidden"))
		return
	}

	result, err := h.promotion.Promote(c.Request.Context(), blueprintID, practiceID)
	if err != nil {
		status := apierr.StatusOf(err)
		if status >= 500 {
			h.log.Error("Promote failed", "error", err, "blueprint_id", blueprintID.String())
		}
		response.RespondError(c, status, err)
		return
	}
	response.RespondOK(c, PromoteBlueprintResponse{
		Success:     true,
		ServiceCode: result.ServiceCode,
		Message:     result.Message,
	})
}

func (h *BlueprintHandler) GetStatus(c *gin.Context) {
	blueprintID, err := uuid.Parse(c.Param("blueprintId"))
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, errors.New("blueprintId must be a valid uuid"))
		return
	}

	practiceID := uuid.Nil
	if raw := c.Query("practiceId"); raw != "" {
		practiceID, err = uuid.Parse(raw)
		if err != nil {
			response.RespondError(c, http.StatusBadRequest, errors.New("practiceId must be a valid uuid"))
			return
		}
	} else if rd := ctxutil.GetRequestData(c.Request.Context()); rd != nil {
		practiceID = rd.PracticeID
	}
	if practiceID == uuid.Nil {
		response.RespondError(c, http.StatusBadRequest, errors.New("practiceId is required"))
		return
	}
	if !h.allowPractice(c, practiceID) {
		response.RespondError(c, http.StatusForbidden, errors.New("forbidden"))
		return
	}

	status, err := h.promotion.Status(c.Request.Context(), blueprintID, practiceID)
	if err != nil {
		response.RespondError(c, apierr.StatusOf(err), err)
		return
	}
	response.RespondOK(c, status)
}

// allowPractice rejects requests that name a practice other than the one on
// the caller's token. Requests without request data (internal callers) pass.
func (h *BlueprintHandler) allowPractice(c *gin.Context, practiceID uuid.UUID) bool {
	rd := ctxutil.GetRequestData(c.Request.Context())
	if rd == nil || rd.PracticeID == uuid.Nil {
		return true
	}
	return rd.PracticeID == practiceID
}
