package v1

import (
	"github.com/voterworks/backend/internal/config"
	"github.com/voterworks/backend/internal/service"

	"github.com/gin-gonic/gin"
)

// @title Partner Registration API
// @version 1.0
// @description Partner-facing voter registration intake and query API

// @BasePath /api/v1

type Handler struct {
	services *service.Services
	config   *config.Config
}

func NewHandler(services *service.Services, config *config.Config) *Handler {
	return &Handler{
		services: services,
		config:   config,
	}
}

func (h *Handler) Init(api *gin.RouterGroup) {
	v1 := api.Group("v1")

	h.initRegistrationsRoutes(v1)
	h.initPartnersRoutes(v1)
}
