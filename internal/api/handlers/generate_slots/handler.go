package generate_slots

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/onmarkov/polyclinic/internal/api/handlers"
	generateSlots "github.com/onmarkov/polyclinic/internal/usecase/generate_slots"
)

const (
	msgInvalidLineID = "некорректный ID строки расписания"
	msgNotFound      = "строка расписания не найдена"
	msgInvalidWindow = "окончание приема должно быть позже начала"
)

type Handler struct {
	useCase GenerateSlotsUseCase
	logger  Logger
}

func NewHandler(useCase GenerateSlotsUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/schedule-lines/{lineId}/slots
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	lineID, err := strconv.ParseInt(vars["lineId"], 10, 64)
	if err != nil {
		h.logger.Warn("POST /schedule-lines/{id}/slots - Invalid line ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidLineID)
		return
	}

	result, err := h.useCase.Execute(r.Context(), &generateSlots.Request{ScheduleLineID: lineID})
	if err != nil {
		switch {
		case errors.Is(err, generateSlots.ErrLineNotFound):
			h.logger.Warn("POST /schedule-lines/{id}/slots - Line not found: line_id=%d", lineID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, generateSlots.ErrInvalidWindow):
			h.logger.Warn("POST /schedule-lines/{id}/slots - Invalid window: line_id=%d", lineID)
			handlers.RespondBadRequest(w, msgInvalidWindow)

		default:
			h.logger.Error("POST /schedule-lines/{id}/slots - Failed to generate slots: line_id=%d, error=%v", lineID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	status := http.StatusCreated
	if result.AlreadyGenerated {
		// Повторный вызов не создает талонов
		status = http.StatusOK
	}

	h.logger.Info("POST /schedule-lines/{id}/slots - Generated %d slots: line_id=%d, already_generated=%t",
		result.Created, lineID, result.AlreadyGenerated)
	handlers.RespondJSON(w, status, FromUseCaseResponse(result))
}
