package v1

import (
	"net/http"
	"strconv"
	"time"

	"github.com/voterworks/backend/internal/repository"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

func (h *Handler) initRegistrationsRoutes(api *gin.RouterGroup) {
	registrations := api.Group("/registrations")

	registrations.POST("", h.createRegistration)
	registrations.GET("", h.findRegistrations)
}

type createRegistrationResponse struct {
	RegistrantID uuid.UUID `json:"registrant_id"`
	Status       string    `json:"status"`
}

// @Summary Create registration
// @Tags Registrations
// @Description Submit one voter registration as a raw partner field map
// @ModuleID createRegistration
// @Accept  json
// @Produce  json
// @Param input body object true "partner-facing registration fields"
// @Success 201 {object} createRegistrationResponse
// @Failure 400 {object} ErrorStruct
// @Failure 500 {object} ErrorStruct
// @Router /registrations [post]
func (h *Handler) createRegistration(c *gin.Context) {
	var data map[string]any
	if err := c.ShouldBindJSON(&data); err != nil {
		errorResponse(c, http.StatusBadRequest, InvalidRequestBodyCode, InvalidRequestBodyMessage)
		return
	}

	registrant, err := h.services.Registrations.CreateRecord(c.Request.Context(), data)
	if err != nil {
		serviceErrorResponse(c, err)
		return
	}

	c.JSON(http.StatusCreated, createRegistrationResponse{
		RegistrantID: registrant.ID,
		Status:       string(registrant.Status),
	})
}

var sinceLayouts = []string{time.RFC3339, "2006-01-02 15:04:05", "2006-01-02"}

// @Summary Find registrations
// @Tags Registrations
// @Description List the authenticated partner's registrants
// @ModuleID findRegistrations
// @Accept  json
// @Produce  json
// @Param partner_id query int true "partner id"
// @Param partner_api_key query string true "partner api key"
// @Param since query string false "only registrants created at or after this timestamp"
// @Param email query string false "exact email address match"
// @Success 200 {array} service.RegistrantRecord
// @Failure 400 {object} ErrorStruct
// @Failure 401 {object} ErrorStruct
// @Failure 500 {object} ErrorStruct
// @Router /registrations [get]
func (h *Handler) findRegistrations(c *gin.Context) {
	// A malformed partner_id parses to zero and fails authentication the same
	// way an unknown id does.
	partnerID, _ := strconv.ParseInt(c.Query("partner_id"), 10, 64)
	apiKey := c.Query("partner_api_key")

	var filters repository.RegistrantFilters
	if email := c.Query("email"); email != "" {
		filters.Email = &email
	}
	if since := c.Query("since"); since != "" {
		t, ok := parseSince(since)
		if !ok {
			errorResponse(c, http.StatusBadRequest, InvalidSinceCode, InvalidSinceMessage)
			return
		}
		filters.Since = &t
	}

	records, err := h.services.Registrations.FindRecords(c.Request.Context(), partnerID, apiKey, filters)
	if err != nil {
		serviceErrorResponse(c, err)
		return
	}

	c.JSON(http.StatusOK, records)
}

func parseSince(value string) (time.Time, bool) {
	for _, layout := range sinceLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
