package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yukikurage/team-task-api/internal/dto"
	apierrors "github.com/yukikurage/team-task-api/internal/errors"
	"github.com/yukikurage/team-task-api/internal/metrics"
	"github.com/yukikurage/team-task-api/internal/services"
)

type ProfileHandler struct {
	profileService *services.ProfileService
	metrics        *metrics.Metrics
}

func NewProfileHandler(profileService *services.ProfileService, m *metrics.Metrics) *ProfileHandler {
	return &ProfileHandler{
		profileService: profileService,
		metrics:        m,
	}
}

func (h *ProfileHandler) GetProfile(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}

	profile, err := h.profileService.GetProfile(c.Request.Context(), actor)
	if err != nil {
		apierrors.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToProfileDTO(*profile))
}

// UpsertProfile sets the caller's display name.
func (h *ProfileHandler) UpsertProfile(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}

	var req struct {
		DisplayName string `json:"display_name"`
	}
	if !bindJSON(c, &req) {
		return
	}

	profile, err := h.profileService.UpsertProfile(c.Request.Context(), actor, req.DisplayName)
	h.metrics.ObserveProcedure(procUpsertProfile, err)
	if err != nil {
		apierrors.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToProfileDTO(*profile))
}
