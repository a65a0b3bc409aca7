package server

import (
	"shoplist/internal/featureflags"

	"github.com/gofiber/fiber/v2"
)

// featureFlagsResponse reports the configured rule of each flag and whether
// it is on for the caller.
type featureFlagsResponse struct {
	Raw       map[string]string `json:"raw"`
	Evaluated map[string]bool   `json:"evaluated"`
}

// GetFeatureFlags handles GET /api/feature-flags
// @Summary Feature flags for the caller
// @Description photo_transcode and live_sync rules plus their per-user result
// @Tags feature-flags
// @Produce json
// @Security BearerAuth
// @Success 200 {object} featureFlagsResponse
// @Router /feature-flags [get]
func (s *Server) GetFeatureFlags(c *fiber.Ctx) error {
	resp := featureFlagsResponse{
		Raw:       map[string]string{},
		Evaluated: map[string]bool{},
	}
	if s.featureFlags != nil {
		resp.Raw = s.featureFlags.Raw()
		resp.Evaluated = s.featureFlags.Snapshot(currentUserID(c))
	}

	// Known flags are always reported, off when unconfigured.
	for _, name := range []string{featureflags.FlagPhotoTranscode, featureflags.FlagLiveSync} {
		if _, ok := resp.Evaluated[name]; !ok {
			resp.Evaluated[name] = false
		}
	}
	return c.JSON(resp)
}
