package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDoctorShortName(t *testing.T) {
	t.Run("full name", func(t *testing.T) {
		assert.Equal(t, "Иванова А.П.", DoctorShortName("Иванова", "Анна", "Петровна"))
	})

	t.Run("patronymic placeholder skipped", func(t *testing.T) {
		assert.Equal(t, "Иванова А.", DoctorShortName("Иванова", "Анна", NoPatronymic))
	})

	t.Run("empty patronymic skipped", func(t *testing.T) {
		assert.Equal(t, "Смирнов И.", DoctorShortName("Смирнов", "Игорь", ""))
	})

	t.Run("empty last name gives empty label", func(t *testing.T) {
		assert.Equal(t, "", DoctorShortName("", "Анна", "Петровна"))
	})
}

func TestPersonLabel(t *testing.T) {
	birthDate := time.Date(1990, 2, 1, 0, 0, 0, 0, time.UTC)

	t.Run("with birth date", func(t *testing.T) {
		assert.Equal(t, "Иванова Анна Петровна (01.02.1990)",
			PersonLabel("Иванова", "Анна", "Петровна", &birthDate))
	})

	t.Run("without birth date", func(t *testing.T) {
		assert.Equal(t, "Иванова Анна Петровна",
			PersonLabel("Иванова", "Анна", "Петровна", nil))
	})

	t.Run("patronymic placeholder skipped", func(t *testing.T) {
		assert.Equal(t, "Иванова Анна (01.02.1990)",
			PersonLabel("Иванова", "Анна", NoPatronymic, &birthDate))
	})
}

func TestTicketLabel(t *testing.T) {
	line := &ScheduleLine{
		Date:        time.Date(2025, 10, 15, 0, 0, 0, 0, time.UTC),
		Room:        5,
		WindowStart: "09:00",
		WindowEnd:   "12:00",
	}

	assert.Equal(t, "Талон 15.10.2025, Терапевт, Иванова А.П., к.5 (09:00-12:00)",
		TicketLabel(line, "Терапевт", "Иванова А.П."))
}
