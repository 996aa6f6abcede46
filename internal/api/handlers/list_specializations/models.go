package list_specializations

import "github.com/onmarkov/polyclinic/internal/domain"

// SpecializationResponse HTTP response model одной специализации
type SpecializationResponse struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// ListSpecializationsResponse HTTP response model справочника
type ListSpecializationsResponse struct {
	Specializations []SpecializationResponse `json:"specializations"`
}

// FromDomain конвертирует domain модели в HTTP response
func FromDomain(specs []*domain.Specialization) *ListSpecializationsResponse {
	out := &ListSpecializationsResponse{
		Specializations: make([]SpecializationResponse, 0, len(specs)),
	}
	for _, spec := range specs {
		out.Specializations = append(out.Specializations, SpecializationResponse{
			ID:   spec.ID,
			Name: spec.Name,
		})
	}
	return out
}
