package get_patient_bookings

import (
	"context"

	"github.com/onmarkov/polyclinic/internal/service/schedule/models"
)

type ScheduleService interface {
	GetPatientBookings(ctx context.Context, patientID int64) (*models.PatientBookingsResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
