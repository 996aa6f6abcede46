package list_schedule_lines

import (
	"net/http"
	"strconv"
	"time"

	"github.com/onmarkov/polyclinic/internal/api/handlers"
	"github.com/onmarkov/polyclinic/internal/domain"
	"github.com/onmarkov/polyclinic/internal/service/schedule/models"
)

const (
	msgInvalidDateFrom = "некорректный формат параметра date_from, ожидается YYYY-MM-DD"
	msgInvalidFilterID = "некорректный ID в параметрах фильтра"
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

// Handle GET /api/v1/schedule-lines
//
// Публичный список показывает только строки с созданными талонами
// начиная с сегодняшней даты. Параметр all=true (для регистратуры)
// снимает оба ограничения.
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	req := &models.ListLinesRequest{}

	if raw := query.Get("date_from"); raw != "" {
		dateFrom, err := time.Parse(domain.DateFormat, raw)
		if err != nil {
			h.logger.Warn("GET /schedule-lines - Invalid date_from: %v", err)
			handlers.RespondBadRequest(w, msgInvalidDateFrom)
			return
		}
		req.DateFrom = &dateFrom
	}

	if raw := query.Get("specialization_id"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			h.logger.Warn("GET /schedule-lines - Invalid specialization_id: %v", err)
			handlers.RespondBadRequest(w, msgInvalidFilterID)
			return
		}
		req.SpecializationID = &id
	}

	if raw := query.Get("doctor_id"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			h.logger.Warn("GET /schedule-lines - Invalid doctor_id: %v", err)
			handlers.RespondBadRequest(w, msgInvalidFilterID)
			return
		}
		req.DoctorID = &id
	}

	var (
		resp *models.LineListResponse
		err  error
	)
	if query.Get("all") == "true" {
		resp, err = h.service.ListLines(r.Context(), req)
	} else {
		resp, err = h.service.ListAvailableLines(r.Context(), req)
	}
	if err != nil {
		h.logger.Error("GET /schedule-lines - Failed to list lines: error=%v", err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /schedule-lines - Listed %d lines", len(resp.Lines))
	handlers.RespondJSON(w, http.StatusOK, FromServiceResponse(resp))
}
