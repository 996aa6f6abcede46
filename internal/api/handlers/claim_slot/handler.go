package claim_slot

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/onmarkov/polyclinic/internal/api/handlers"
	"github.com/onmarkov/polyclinic/internal/api/middleware"
	claimSlot "github.com/onmarkov/polyclinic/internal/usecase/claim_slot"
)

const (
	msgInvalidSlotID  = "некорректный ID талона"
	msgUnauthorized   = "требуется авторизация"
	msgNotFound       = "талон не найден"
	msgAlreadyTaken   = "Время, выбранное Вами уже занято! Попробуйте другое."
	msgDuplicateClaim = "У Вас уже есть талон на этот прием."
	msgInvalidInput   = "некорректные данные запроса"
)

type Handler struct {
	useCase ClaimSlotUseCase
	logger  Logger
}

func NewHandler(useCase ClaimSlotUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/slots/{slotId}/claim
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	slotID, err := strconv.ParseInt(vars["slotId"], 10, 64)
	if err != nil {
		h.logger.Warn("POST /slots/{id}/claim - Invalid slot ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidSlotID)
		return
	}

	patientID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		handlers.RespondError(w, http.StatusUnauthorized, msgUnauthorized)
		return
	}

	result, err := h.useCase.Execute(r.Context(), &claimSlot.Request{
		SlotID:    slotID,
		PatientID: patientID,
	})
	if err != nil {
		switch {
		case errors.Is(err, claimSlot.ErrSlotNotFound):
			h.logger.Warn("POST /slots/{id}/claim - Slot not found: slot_id=%d", slotID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, claimSlot.ErrInvalidInput):
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("POST /slots/{id}/claim - Failed to claim slot: slot_id=%d, patient_id=%d, error=%v",
				slotID, patientID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	switch result.Outcome {
	case claimSlot.OutcomeAlreadyTaken:
		h.logger.Warn("POST /slots/{id}/claim - Slot already taken: slot_id=%d, patient_id=%d", slotID, patientID)
		handlers.RespondConflict(w, msgAlreadyTaken)

	case claimSlot.OutcomeDuplicateClaim:
		h.logger.Warn("POST /slots/{id}/claim - Duplicate claim: slot_id=%d, patient_id=%d", slotID, patientID)
		handlers.RespondConflict(w, msgDuplicateClaim)

	default:
		h.logger.Info("POST /slots/{id}/claim - Slot claimed successfully: slot_id=%d, patient_id=%d", slotID, patientID)
		handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
	}
}
