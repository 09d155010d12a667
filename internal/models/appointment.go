package models

import (
	"fmt"
	"time"

	"gorm.io/gorm"
)

// AppointmentStatus represents the status of an appointment
type AppointmentStatus string

const (
	StatusScheduled AppointmentStatus = "scheduled"
	StatusCompleted AppointmentStatus = "completed"
	StatusCanceled  AppointmentStatus = "canceled"
)

// ParseAppointmentStatus converts a route/query parameter into a status.
func ParseAppointmentStatus(s string) (AppointmentStatus, error) {
	switch AppointmentStatus(s) {
	case StatusScheduled, StatusCompleted, StatusCanceled:
		return AppointmentStatus(s), nil
	default:
		return "", fmt.Errorf("invalid appointment status %q", s)
	}
}

// IsTerminal reports whether no further transitions are allowed.
func (s AppointmentStatus) IsTerminal() bool {
	return s == StatusCompleted || s == StatusCanceled
}

// Appointment represents one scheduled visit of a patient to a doctor.
// VisitingSerialNumber is the patient's position in the doctor's queue for
// the visiting day: unique and contiguous from 1 per (doctor, visiting date),
// assigned at creation and reassigned when the visiting date changes.
// Numbers are never reused, even after a cancellation or delete.
type Appointment struct {
	ID                   uint              `gorm:"primaryKey" json:"id"`
	DoctorID             uint              `gorm:"not null;index;uniqueIndex:idx_doctor_date_serial" json:"doctorId"`
	PatientID            uint              `gorm:"not null;index" json:"patientId"`
	BookingDate          Date              `gorm:"type:date;not null" json:"bookingDate"`
	VisitingDate         Date              `gorm:"type:date;not null;uniqueIndex:idx_doctor_date_serial" json:"visitingDate"`
	VisitingSerialNumber int               `gorm:"not null;uniqueIndex:idx_doctor_date_serial" json:"visitingSerialNumber"`
	Status               AppointmentStatus `gorm:"size:20;not null;default:'scheduled'" json:"status"`
	ProblemDescription   string            `gorm:"type:text" json:"problemDescription,omitempty"`
	CreatedAt            time.Time         `json:"createdAt"`
	UpdatedAt            time.Time         `json:"updatedAt"`

	// Relations
	Doctor  Doctor  `gorm:"foreignKey:DoctorID" json:"-"`
	Patient Patient `gorm:"foreignKey:PatientID" json:"-"`

	// Denormalized display names, filled from the preloaded relations.
	DoctorName  string `gorm:"-" json:"doctorName,omitempty"`
	PatientName string `gorm:"-" json:"patientName,omitempty"`
}

// AfterFind copies display names off the preloaded relations.
func (a *Appointment) AfterFind(tx *gorm.DB) error {
	a.DoctorName = a.Doctor.Name
	a.PatientName = a.Patient.Name
	return nil
}

// AppointmentSerial is the per-(doctor, visiting date) counter backing serial
// allocation. The row is locked FOR UPDATE inside the transaction that
// inserts or moves an appointment, which keeps concurrent bookings for the
// same doctor and day from computing the same number.
type AppointmentSerial struct {
	ID           uint `gorm:"primaryKey"`
	DoctorID     uint `gorm:"not null;uniqueIndex:idx_serial_doctor_date"`
	VisitingDate Date `gorm:"type:date;not null;uniqueIndex:idx_serial_doctor_date"`
	LastSerial   int  `gorm:"not null"`
}
