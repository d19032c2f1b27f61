package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"teklio/internal/domain"
	"teklio/internal/service"
)

// ProposalHandler handles proposal persistence endpoints.
type ProposalHandler struct {
	proposals *service.ProposalService
}

// NewProposalHandler creates a new ProposalHandler.
func NewProposalHandler(proposals *service.ProposalService) *ProposalHandler {
	return &ProposalHandler{proposals: proposals}
}

// persistRequest is the body of POST /api/v1/proposals.
type persistRequest struct {
	Document       *domain.ParsedDocument `json:"document" binding:"required"`
	ForceCompanyID string                 `json:"force_company_id"`
	Actor          string                 `json:"actor"`
}

// Persist handles POST /api/v1/proposals
func (h *ProposalHandler) Persist(c *gin.Context) {
	var req persistRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", "document field is required")
		return
	}

	var forceID *uuid.UUID
	if req.ForceCompanyID != "" {
		id, err := uuid.Parse(req.ForceCompanyID)
		if err != nil {
			RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid force_company_id")
			return
		}
		forceID = &id
	}

	actor := req.Actor
	if actor == "" {
		actor = "api"
	}

	result, err := h.proposals.Persist(c.Request.Context(), service.PersistInput{
		Document:       req.Document,
		ForceCompanyID: forceID,
		Actor:          actor,
	})
	if err != nil {
		HandleError(c, err)
		return
	}

	if result.Duplicate {
		RespondOK(c, result)
		return
	}
	RespondCreated(c, result)
}
