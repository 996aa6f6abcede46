package create_specialization

import (
	"errors"
	"net/http"

	"github.com/onmarkov/polyclinic/internal/api/handlers"
	"github.com/onmarkov/polyclinic/internal/service/registry"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgNameExists         = "специализация с таким названием уже существует"
	msgInvalidInput       = "название специализации не может быть пустым"
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

// Handle POST /api/v1/specializations
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req CreateSpecializationRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /specializations - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	spec, err := h.service.CreateSpecialization(r.Context(), req.Name)
	if err != nil {
		switch {
		case errors.Is(err, registry.ErrSpecializationExists):
			h.logger.Warn("POST /specializations - Name exists: name=%q", req.Name)
			handlers.RespondConflict(w, msgNameExists)

		case errors.Is(err, registry.ErrInvalidInput):
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("POST /specializations - Failed to create specialization: error=%v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /specializations - Specialization created: id=%d, name=%q", spec.ID, spec.Name)
	handlers.RespondJSON(w, http.StatusCreated, FromDomain(spec))
}
