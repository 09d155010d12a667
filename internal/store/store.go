package store

import (
	"mediconnect-server/internal/models"
)

// AppointmentStore is the persistence contract the scheduler runs against.
// Create and Update own serial-number assignment so that allocation and the
// row write happen in one transaction; see GormStore for the locking scheme.
type AppointmentStore interface {
	// Create persists a new appointment, filling in its ID and
	// VisitingSerialNumber.
	Create(appt *models.Appointment) error
	// Update persists changes to an existing appointment. When
	// reassignSerial is set, a fresh serial number for the appointment's
	// current (doctor, visiting date) pair is allocated and stored.
	Update(appt *models.Appointment, reassignSerial bool) error
	Delete(id uint) error

	ByID(id uint) (*models.Appointment, error)
	All() ([]models.Appointment, error)
	ByDoctor(doctorID uint) ([]models.Appointment, error)
	ByPatient(patientID uint) ([]models.Appointment, error)
	ByDoctorAndStatus(doctorID uint, status models.AppointmentStatus) ([]models.Appointment, error)
	ByPatientAndStatus(patientID uint, status models.AppointmentStatus) ([]models.Appointment, error)
	ByDoctorAndDate(doctorID uint, date models.Date) ([]models.Appointment, error)
	// UpcomingByDoctor returns appointments with visiting date >= from,
	// ascending by visiting date.
	UpcomingByDoctor(doctorID uint, from models.Date) ([]models.Appointment, error)
	UpcomingByPatient(patientID uint, from models.Date) ([]models.Appointment, error)
	// DayQueue is the doctor's queue for one day, ascending by serial.
	DayQueue(doctorID uint, date models.Date) ([]models.Appointment, error)
}

// DoctorLookup resolves doctor ids for validation and display names.
type DoctorLookup interface {
	DoctorByID(id uint) (*models.Doctor, error)
}

// PatientLookup resolves patient ids for validation and display names.
type PatientLookup interface {
	PatientByID(id uint) (*models.Patient, error)
}
