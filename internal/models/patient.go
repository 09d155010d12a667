package models

import (
	"time"

	"golang.org/x/crypto/bcrypt"
)

// Patient represents a registered patient.
type Patient struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Name        string    `gorm:"size:100;not null" json:"name"`
	Email       string    `gorm:"uniqueIndex;size:255;not null" json:"email"`
	Phone       string    `gorm:"size:20" json:"phone,omitempty"`
	Username    string    `gorm:"uniqueIndex;size:100;not null" json:"username"`
	Password    string    `gorm:"size:255;not null" json:"-"` // Never send password in JSON
	DateOfBirth *Date     `gorm:"type:date" json:"dateOfBirth,omitempty"`
	Gender      string    `gorm:"size:20" json:"gender,omitempty"`
	Address     string    `gorm:"size:255" json:"address,omitempty"`
	BloodGroup  string    `gorm:"size:10" json:"bloodGroup,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`

	// Relations (not always preloaded)
	Appointments  []Appointment  `gorm:"foreignKey:PatientID" json:"-"`
	Prescriptions []Prescription `gorm:"foreignKey:PatientID" json:"-"`
}

// SetPassword hashes a password and sets it on the patient
func (p *Patient) SetPassword(password string) error {
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	p.Password = string(hashedPassword)
	return nil
}

// CheckPassword compares a password with the patient's hashed password
func (p *Patient) CheckPassword(password string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(p.Password), []byte(password))
	return err == nil
}
