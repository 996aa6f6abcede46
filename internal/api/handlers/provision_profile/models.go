package provision_profile

import (
	"time"

	"github.com/onmarkov/polyclinic/internal/domain"
	"github.com/onmarkov/polyclinic/internal/service/registry"
)

// ProvisionProfileRequest HTTP request model
type ProvisionProfileRequest struct {
	Patronymic string  `json:"patronymic,omitempty"`
	BirthDate  *string `json:"birthDate,omitempty"` // "1990-02-01"
	Gender     *string `json:"gender,omitempty"`
	IDNumber   *string `json:"idNumber,omitempty"`
	Note       *string `json:"note,omitempty"`
}

// ProfileResponse HTTP response model
type ProfileResponse struct {
	UserID             int64   `json:"userId"`
	Patronymic         string  `json:"patronymic"`
	BirthDate          *string `json:"birthDate,omitempty"`
	Gender             *string `json:"gender,omitempty"`
	IDNumber           *string `json:"idNumber,omitempty"`
	Note               *string `json:"note,omitempty"`
	AlreadyProvisioned bool    `json:"alreadyProvisioned"`
	CreatedAt          string  `json:"createdAt"`
}

// ToServiceRequest конвертирует HTTP запрос в модель сервиса
func (r *ProvisionProfileRequest) ToServiceRequest(userID int64) (*registry.ProvisionProfileRequest, error) {
	req := &registry.ProvisionProfileRequest{
		UserID:     userID,
		Patronymic: r.Patronymic,
		Gender:     r.Gender,
		IDNumber:   r.IDNumber,
		Note:       r.Note,
	}

	if r.BirthDate != nil {
		birthDate, err := time.Parse(domain.DateFormat, *r.BirthDate)
		if err != nil {
			return nil, err
		}
		req.BirthDate = &birthDate
	}

	return req, nil
}

// FromServiceResponse конвертирует ответ сервиса в HTTP response
func FromServiceResponse(resp *registry.ProvisionProfileResponse) *ProfileResponse {
	p := resp.Profile
	out := &ProfileResponse{
		UserID:             p.UserID,
		Patronymic:         p.Patronymic,
		Gender:             p.Gender,
		IDNumber:           p.IDNumber,
		Note:               p.Note,
		AlreadyProvisioned: resp.AlreadyProvisioned,
		CreatedAt:          p.CreatedAt.Format(time.RFC3339),
	}
	if p.BirthDate != nil {
		birthDate := p.BirthDate.Format(domain.DateFormat)
		out.BirthDate = &birthDate
	}
	return out
}
