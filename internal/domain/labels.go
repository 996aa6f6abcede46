package domain

import (
	"fmt"
	"time"
)

// Label helpers are plain pure functions over explicit records:
// callers fetch the data and pass it in, nothing is loaded implicitly.

// DoctorShortName formats a doctor name as "Иванова А.П." —
// last name plus initials. The patronymic initial is appended only
// when a real patronymic is known.
func DoctorShortName(lastName, firstName, patronymic string) string {
	if lastName == "" {
		return ""
	}
	label := lastName
	if firstName != "" {
		label += fmt.Sprintf(" %s.", firstRune(firstName))
	}
	if patronymic != "" && patronymic != NoPatronymic {
		label += fmt.Sprintf("%s.", firstRune(patronymic))
	}
	return label
}

// PersonLabel formats a full person label with an optional birth date:
// "Иванова Анна Петровна (01.02.1990)".
func PersonLabel(lastName, firstName, patronymic string, birthDate *time.Time) string {
	label := fmt.Sprintf("%s %s", lastName, firstName)
	if patronymic != "" && patronymic != NoPatronymic {
		label += " " + patronymic
	}
	if birthDate != nil {
		label += fmt.Sprintf(" (%s)", birthDate.Format(DisplayDateFormat))
	}
	return label
}

// TicketLabel formats a slot ticket description:
// "Талон 15.10.2025, Терапевт, Иванова А.П., к.5 (09:00-12:00)".
func TicketLabel(line *ScheduleLine, specializationName, doctorLabel string) string {
	return fmt.Sprintf("Талон %s, %s, %s, к.%d (%s-%s)",
		line.Date.Format(DisplayDateFormat),
		specializationName,
		doctorLabel,
		line.Room,
		line.WindowStart,
		line.WindowEnd,
	)
}

func firstRune(s string) string {
	for _, r := range s {
		return string(r)
	}
	return ""
}
