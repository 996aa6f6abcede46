package create_schedule_line

import (
	"errors"
	"net/http"

	"github.com/onmarkov/polyclinic/internal/api/handlers"
	"github.com/onmarkov/polyclinic/internal/service/schedule"
)

const (
	msgInvalidRequestBody     = "некорректное тело запроса"
	msgInvalidDateOrTime      = "некорректный формат даты (YYYY-MM-DD) или времени (HH:MM)"
	msgLineExists             = "на эту дату у врача уже есть строка расписания"
	msgSpecializationNotFound = "специализация не найдена"
	msgInvalidWindow          = "окончание приема должно быть позже начала"
	msgWindowOutOfHours       = "время приема должно быть в пределах рабочих часов поликлиники"
	msgDateInPast             = "дата приема не может быть в прошлом"
	msgPlanTooDense           = "талонов по времени больше, чем минут в окне приема"
	msgInvalidInput           = "некорректные данные строки расписания"
)

type Handler struct {
	service ScheduleService
	logger  Logger
}

func NewHandler(service ScheduleService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle POST /api/v1/schedule-lines
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req CreateScheduleLineRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /schedule-lines - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	serviceReq, err := req.ToServiceRequest()
	if err != nil {
		h.logger.Warn("POST /schedule-lines - Failed to parse request: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDateOrTime)
		return
	}

	line, err := h.service.CreateLine(r.Context(), serviceReq)
	if err != nil {
		switch {
		case errors.Is(err, schedule.ErrLineExists):
			h.logger.Warn("POST /schedule-lines - Line exists: date=%s, spec=%d, doctor=%d",
				req.Date, req.SpecializationID, req.DoctorID)
			handlers.RespondConflict(w, msgLineExists)

		case errors.Is(err, schedule.ErrSpecializationNotFound):
			h.logger.Warn("POST /schedule-lines - Specialization not found: spec=%d", req.SpecializationID)
			handlers.RespondNotFound(w, msgSpecializationNotFound)

		case errors.Is(err, schedule.ErrInvalidWindow):
			handlers.RespondBadRequest(w, msgInvalidWindow)

		case errors.Is(err, schedule.ErrWindowOutOfHours):
			handlers.RespondBadRequest(w, msgWindowOutOfHours)

		case errors.Is(err, schedule.ErrDateInPast):
			handlers.RespondBadRequest(w, msgDateInPast)

		case errors.Is(err, schedule.ErrPlanTooDense):
			handlers.RespondBadRequest(w, msgPlanTooDense)

		case errors.Is(err, schedule.ErrInvalidInput):
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("POST /schedule-lines - Failed to create line: error=%v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /schedule-lines - Line created successfully: line_id=%d", line.ID)
	handlers.RespondJSON(w, http.StatusCreated, FromDomain(line))
}
