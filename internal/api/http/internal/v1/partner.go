package v1

import (
	"errors"
	"net/http"

	"github.com/voterworks/backend/internal/domain"
	"github.com/voterworks/backend/internal/service"

	"github.com/gin-gonic/gin"
)

func (h *Handler) initPartnersRoutes(api *gin.RouterGroup) {
	partners := api.Group("/partners")

	partners.POST("", h.createPartner)
}

type createPartnerRequest struct {
	Name              string `json:"name" binding:"required"`
	URL               string `json:"url" binding:"required,url"`
	Address           string `json:"address" binding:"required"`
	City              string `json:"city" binding:"required"`
	StateID           int64  `json:"state_id" binding:"required"`
	ZipCode           string `json:"zip_code" binding:"required,zipcode"`
	Phone             string `json:"phone" binding:"required"`
	Email             string `json:"email" binding:"omitempty,email"`
	Username          string `json:"username"`
	SurveyQuestion1En string `json:"survey_question_1_en"`
	SurveyQuestion1Es string `json:"survey_question_1_es"`
	SurveyQuestion2En string `json:"survey_question_2_en"`
	SurveyQuestion2Es string `json:"survey_question_2_es"`
}

type createPartnerResponse struct {
	PartnerID int64  `json:"partner_id"`
	APIKey    string `json:"api_key"`
}

// @Summary Create partner
// @Tags Partners
// @Description Register a new partner organization and issue its api key
// @ModuleID createPartner
// @Accept  json
// @Produce  json
// @Param input body createPartnerRequest true "partner info"
// @Success 201 {object} createPartnerResponse
// @Failure 400 {object} ValidationErrorStruct
// @Failure 500 {object} ErrorStruct
// @Router /partners [post]
func (h *Handler) createPartner(c *gin.Context) {
	var req createPartnerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		validationErrorResponse(c, err)
		return
	}

	partner := &domain.Partner{
		Name:              req.Name,
		URL:               req.URL,
		Address:           req.Address,
		City:              req.City,
		StateID:           req.StateID,
		ZipCode:           req.ZipCode,
		Phone:             req.Phone,
		Email:             req.Email,
		Username:          req.Username,
		SurveyQuestion1En: req.SurveyQuestion1En,
		SurveyQuestion1Es: req.SurveyQuestion1Es,
		SurveyQuestion2En: req.SurveyQuestion2En,
		SurveyQuestion2Es: req.SurveyQuestion2Es,
	}

	if err := h.services.Partners.Create(c.Request.Context(), partner); err != nil {
		var validation *service.ValidationError
		if errors.As(err, &validation) {
			c.AbortWithStatusJSON(http.StatusBadRequest, ErrorStruct{
				ErrorCode:    RegistrationValidationCode,
				ErrorMessage: validation.Message,
				FieldName:    validation.Field,
			})
			return
		}
		serviceErrorResponse(c, err)
		return
	}

	c.JSON(http.StatusCreated, createPartnerResponse{
		PartnerID: partner.ID,
		APIKey:    partner.APIKey,
	})
}
