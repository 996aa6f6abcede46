package provision_profile

import (
	"errors"
	"net/http"

	"github.com/onmarkov/polyclinic/internal/api/handlers"
	"github.com/onmarkov/polyclinic/internal/api/middleware"
	"github.com/onmarkov/polyclinic/internal/service/registry"
)

const (
	msgInvalidRequestBody  = "некорректное тело запроса"
	msgInvalidBirthDate    = "некорректный формат даты рождения, ожидается YYYY-MM-DD"
	msgUnauthorized        = "требуется авторизация"
	msgUserNotFound        = "пользователь не найден"
	msgIdentityUnavailable = "сервис учетных записей временно недоступен, попробуйте позже"
	msgInvalidInput        = "некорректные данные профиля"
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

// Handle POST /api/v1/profiles
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		handlers.RespondError(w, http.StatusUnauthorized, msgUnauthorized)
		return
	}

	var req ProvisionProfileRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /profiles - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	serviceReq, err := req.ToServiceRequest(userID)
	if err != nil {
		h.logger.Warn("POST /profiles - Failed to parse request: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBirthDate)
		return
	}

	result, err := h.service.ProvisionProfile(r.Context(), serviceReq)
	if err != nil {
		switch {
		case errors.Is(err, registry.ErrUserNotFound):
			h.logger.Warn("POST /profiles - User not found: user_id=%d", userID)
			handlers.RespondNotFound(w, msgUserNotFound)

		case errors.Is(err, registry.ErrIdentityUnavailable):
			h.logger.Error("POST /profiles - Identity provider unavailable: user_id=%d, error=%v", userID, err)
			handlers.RespondError(w, http.StatusServiceUnavailable, msgIdentityUnavailable)

		case errors.Is(err, registry.ErrInvalidInput):
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("POST /profiles - Failed to provision profile: user_id=%d, error=%v", userID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	status := http.StatusCreated
	if result.AlreadyProvisioned {
		status = http.StatusOK
	}

	h.logger.Info("POST /profiles - Profile provisioned: user_id=%d, already_provisioned=%t",
		userID, result.AlreadyProvisioned)
	handlers.RespondJSON(w, status, FromServiceResponse(result))
}
