package models

import (
	"time"

	"golang.org/x/crypto/bcrypt"
)

// Role enum
type Role string

const (
	RoleAdmin   Role = "admin"
	RoleDoctor  Role = "doctor"
	RolePatient Role = "patient"
)

// Doctor represents a practicing doctor patients can book against.
type Doctor struct {
	ID              uint      `gorm:"primaryKey" json:"id"`
	Name            string    `gorm:"size:100;not null" json:"name"`
	Email           string    `gorm:"uniqueIndex;size:255;not null" json:"email"`
	Phone           string    `gorm:"size:20" json:"phone,omitempty"`
	Username        string    `gorm:"uniqueIndex;size:100;not null" json:"username"`
	Password        string    `gorm:"size:255;not null" json:"-"` // Never send password in JSON
	Specializations string    `gorm:"size:255;not null" json:"specializations"`
	VisitingDays    string    `gorm:"size:255" json:"visitingDays,omitempty"`
	Pic             string    `gorm:"size:255" json:"pic,omitempty"`
	CreatedAt       time.Time `json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`

	// Relations (not always preloaded)
	Appointments  []Appointment  `gorm:"foreignKey:DoctorID" json:"-"`
	Prescriptions []Prescription `gorm:"foreignKey:DoctorID" json:"-"`
}

// SetPassword hashes a password and sets it on the doctor
func (d *Doctor) SetPassword(password string) error {
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	d.Password = string(hashedPassword)
	return nil
}

// CheckPassword compares a password with the doctor's hashed password
func (d *Doctor) CheckPassword(password string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(d.Password), []byte(password))
	return err == nil
}
