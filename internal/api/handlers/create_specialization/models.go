package create_specialization

import "github.com/onmarkov/polyclinic/internal/domain"

// CreateSpecializationRequest HTTP request model
type CreateSpecializationRequest struct {
	Name string `json:"name"`
}

// SpecializationResponse HTTP response model
type SpecializationResponse struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// FromDomain конвертирует domain модель в HTTP response
func FromDomain(spec *domain.Specialization) *SpecializationResponse {
	return &SpecializationResponse{
		ID:   spec.ID,
		Name: spec.Name,
	}
}
