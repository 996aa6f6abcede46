package domain

import "time"

// Profile holds registry-side data about a user that the identity
// provider does not carry. Provisioned explicitly after registration.
type Profile struct {
	UserID     int64
	Patronymic string // NoPatronymic when absent
	BirthDate  *time.Time
	Gender     *string
	IDNumber   *string // passport / insurance document number
	Note       *string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// HasPatronymic reports whether a real patronymic is known.
func (p *Profile) HasPatronymic() bool {
	return p.Patronymic != "" && p.Patronymic != NoPatronymic
}
