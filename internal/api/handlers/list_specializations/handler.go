package list_specializations

import (
	"net/http"

	"github.com/onmarkov/polyclinic/internal/api/handlers"
)

type Handler struct {
	service RegistryService
	logger  Logger
}

func NewHandler(service RegistryService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/specializations
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	specs, err := h.service.ListSpecializations(r.Context())
	if err != nil {
		h.logger.Error("GET /specializations - Failed to list specializations: error=%v", err)
		handlers.RespondInternalError(w)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, FromDomain(specs))
}
