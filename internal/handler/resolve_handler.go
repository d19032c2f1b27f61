package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"teklio/internal/resolver"
)

// ResolveHandler handles customer-matching endpoints.
type ResolveHandler struct {
	resolver *resolver.Resolver
}

// NewResolveHandler creates a new ResolveHandler.
func NewResolveHandler(r *resolver.Resolver) *ResolveHandler {
	return &ResolveHandler{resolver: r}
}

// resolveRequest is the body of POST /api/v1/resolve.
type resolveRequest struct {
	CompanyName    string `json:"company_name"`
	PersonName     string `json:"person_name"`
	ForceCompanyID string `json:"force_company_id"`
}

// Resolve handles POST /api/v1/resolve
func (h *ResolveHandler) Resolve(c *gin.Context) {
	var req resolveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", "invalid resolve request body")
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

	outcome := h.resolver.Resolve(c.Request.Context(), resolver.Input{
		CompanyName: req.CompanyName,
		PersonName:  req.PersonName,
	}, forceID)

	// All variants, including Error, travel in the success envelope: a
	// resolution error is a result the UI renders, not an HTTP failure.
	RespondOK(c, outcome)
}
