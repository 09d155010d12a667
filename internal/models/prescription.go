package models

import (
	"fmt"
	"time"
)

// PrescriptionStatus represents the status of a prescription
type PrescriptionStatus string

const (
	PrescriptionActive    PrescriptionStatus = "active"
	PrescriptionCompleted PrescriptionStatus = "completed"
	PrescriptionCancelled PrescriptionStatus = "cancelled"
)

// ParsePrescriptionStatus converts a route/query parameter into a status.
func ParsePrescriptionStatus(s string) (PrescriptionStatus, error) {
	switch PrescriptionStatus(s) {
	case PrescriptionActive, PrescriptionCompleted, PrescriptionCancelled:
		return PrescriptionStatus(s), nil
	default:
		return "", fmt.Errorf("invalid prescription status %q", s)
	}
}

// StringList is stored as a JSON column via the gorm serializer.
type StringList []string

// Prescription represents a prescription issued by a doctor to a patient,
// optionally tied to the appointment it was written during.
type Prescription struct {
	ID               uint               `gorm:"primaryKey" json:"id"`
	DoctorID         uint               `gorm:"not null;index" json:"doctorId"`
	PatientID        uint               `gorm:"not null;index" json:"patientId"`
	AppointmentID    *uint              `gorm:"index" json:"appointmentId,omitempty"`
	PrescriptionDate Date               `gorm:"type:date;not null" json:"prescriptionDate"`
	Problem          string             `gorm:"type:text;not null" json:"problem"`
	Tests            StringList         `gorm:"serializer:json" json:"tests,omitempty"`
	Tablets          StringList         `gorm:"serializer:json" json:"tablets,omitempty"`
	Capsules         StringList         `gorm:"serializer:json" json:"capsules,omitempty"`
	Vaccines         StringList         `gorm:"serializer:json" json:"vaccines,omitempty"`
	Advice           string             `gorm:"type:text" json:"advice,omitempty"`
	FollowUpDate     *Date              `gorm:"type:date" json:"followUpDate,omitempty"`
	Status           PrescriptionStatus `gorm:"size:20;not null;default:'active'" json:"status"`
	CreatedAt        time.Time          `json:"createdAt"`
	UpdatedAt        time.Time          `json:"updatedAt"`

	// Relations
	Doctor  Doctor  `gorm:"foreignKey:DoctorID" json:"-"`
	Patient Patient `gorm:"foreignKey:PatientID" json:"-"`
}
