package delete_specialization

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/onmarkov/polyclinic/internal/api/handlers"
	"github.com/onmarkov/polyclinic/internal/service/registry"
)

const (
	msgInvalidSpecID = "некорректный ID специализации"
	msgNotFound      = "специализация не найдена"
	msgInUse         = "на специализацию ссылаются строки расписания, удаление невозможно"
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

// Handle DELETE /api/v1/specializations/{specializationId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	specID, err := strconv.ParseInt(vars["specializationId"], 10, 64)
	if err != nil {
		h.logger.Warn("DELETE /specializations/{id} - Invalid specialization ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidSpecID)
		return
	}

	if err := h.service.DeleteSpecialization(r.Context(), specID); err != nil {
		switch {
		case errors.Is(err, registry.ErrSpecializationNotFound):
			h.logger.Warn("DELETE /specializations/{id} - Not found: spec_id=%d", specID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, registry.ErrSpecializationInUse):
			h.logger.Warn("DELETE /specializations/{id} - In use: spec_id=%d", specID)
			handlers.RespondConflict(w, msgInUse)

		default:
			h.logger.Error("DELETE /specializations/{id} - Failed to delete: spec_id=%d, error=%v", specID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("DELETE /specializations/{id} - Specialization deleted: spec_id=%d", specID)
	handlers.RespondNoContent(w)
}
