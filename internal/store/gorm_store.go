package store

import (
	"database/sql"
	"errors"

	"mediconnect-server/internal/apperr"
	"mediconnect-server/internal/models"

	"github.com/go-sql-driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const mysqlDuplicateEntry = 1062

// GormStore implements AppointmentStore, DoctorLookup and PatientLookup on
// top of the MySQL schema.
type GormStore struct {
	db *gorm.DB
}

// NewGormStore creates a new GormStore.
func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

// Create inserts the appointment together with its serial number. The
// per-(doctor, date) counter row is locked FOR UPDATE for the duration of
// the transaction, so two concurrent bookings for the same doctor and day
// serialize on the counter instead of both reading the same max.
func (s *GormStore) Create(appt *models.Appointment) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		serial, err := nextSerial(tx, appt.DoctorID, appt.VisitingDate)
		if err != nil {
			return err
		}
		appt.VisitingSerialNumber = serial
		return tx.Create(appt).Error
	})
}

// Update saves the appointment, allocating a fresh serial for its current
// (doctor, visiting date) pair first when reassignSerial is set. The old
// slot is not renumbered; serials are append-only.
func (s *GormStore) Update(appt *models.Appointment, reassignSerial bool) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		if reassignSerial {
			serial, err := nextSerial(tx, appt.DoctorID, appt.VisitingDate)
			if err != nil {
				return err
			}
			appt.VisitingSerialNumber = serial
		}
		return tx.Save(appt).Error
	})
}

// nextSerial increments and returns the counter for (doctorID, date),
// creating it from the existing max serial when no counter row exists yet
// (pre-counter data keeps its sequence). The counter table has a unique
// index on (doctor_id, visiting_date); if two transactions race to create
// the same counter row the loser retries and takes the lock instead.
func nextSerial(tx *gorm.DB, doctorID uint, date models.Date) (int, error) {
	for {
		var counter models.AppointmentSerial
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("doctor_id = ? AND visiting_date = ?", doctorID, date).
			First(&counter).Error
		if err == nil {
			counter.LastSerial++
			if err := tx.Save(&counter).Error; err != nil {
				return 0, err
			}
			return counter.LastSerial, nil
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, err
		}

		var maxSerial sql.NullInt64
		err = tx.Model(&models.Appointment{}).
			Where("doctor_id = ? AND visiting_date = ?", doctorID, date).
			Select("MAX(visiting_serial_number)").
			Scan(&maxSerial).Error
		if err != nil {
			return 0, err
		}

		counter = models.AppointmentSerial{
			DoctorID:     doctorID,
			VisitingDate: date,
			LastSerial:   int(maxSerial.Int64) + 1,
		}
		err = tx.Create(&counter).Error
		if err == nil {
			return counter.LastSerial, nil
		}
		if isDuplicateEntry(err) {
			// Lost the race to create the counter row; lock it instead.
			continue
		}
		return 0, err
	}
}

func isDuplicateEntry(err error) bool {
	var mysqlErr *mysql.MySQLError
	return errors.As(err, &mysqlErr) && mysqlErr.Number == mysqlDuplicateEntry
}

// Delete removes the appointment row. Existence is checked by the caller.
func (s *GormStore) Delete(id uint) error {
	return s.db.Delete(&models.Appointment{}, id).Error
}

// ByID fetches one appointment with its doctor and patient preloaded.
func (s *GormStore) ByID(id uint) (*models.Appointment, error) {
	var appt models.Appointment
	err := s.preloaded().First(&appt, "appointments.id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.NotFound("Appointment not found with ID: %d", id)
	}
	if err != nil {
		return nil, err
	}
	return &appt, nil
}

func (s *GormStore) All() ([]models.Appointment, error) {
	var appts []models.Appointment
	err := s.preloaded().Find(&appts).Error
	return appts, err
}

func (s *GormStore) ByDoctor(doctorID uint) ([]models.Appointment, error) {
	var appts []models.Appointment
	err := s.preloaded().Where("doctor_id = ?", doctorID).Find(&appts).Error
	return appts, err
}

func (s *GormStore) ByPatient(patientID uint) ([]models.Appointment, error) {
	var appts []models.Appointment
	err := s.preloaded().Where("patient_id = ?", patientID).Find(&appts).Error
	return appts, err
}

func (s *GormStore) ByDoctorAndStatus(doctorID uint, status models.AppointmentStatus) ([]models.Appointment, error) {
	var appts []models.Appointment
	err := s.preloaded().Where("doctor_id = ? AND status = ?", doctorID, status).Find(&appts).Error
	return appts, err
}

func (s *GormStore) ByPatientAndStatus(patientID uint, status models.AppointmentStatus) ([]models.Appointment, error) {
	var appts []models.Appointment
	err := s.preloaded().Where("patient_id = ? AND status = ?", patientID, status).Find(&appts).Error
	return appts, err
}

func (s *GormStore) ByDoctorAndDate(doctorID uint, date models.Date) ([]models.Appointment, error) {
	var appts []models.Appointment
	err := s.preloaded().Where("doctor_id = ? AND visiting_date = ?", doctorID, date).Find(&appts).Error
	return appts, err
}

func (s *GormStore) UpcomingByDoctor(doctorID uint, from models.Date) ([]models.Appointment, error) {
	var appts []models.Appointment
	err := s.preloaded().
		Where("doctor_id = ? AND visiting_date >= ?", doctorID, from).
		Order("visiting_date asc").
		Find(&appts).Error
	return appts, err
}

func (s *GormStore) UpcomingByPatient(patientID uint, from models.Date) ([]models.Appointment, error) {
	var appts []models.Appointment
	err := s.preloaded().
		Where("patient_id = ? AND visiting_date >= ?", patientID, from).
		Order("visiting_date asc").
		Find(&appts).Error
	return appts, err
}

func (s *GormStore) DayQueue(doctorID uint, date models.Date) ([]models.Appointment, error) {
	var appts []models.Appointment
	err := s.preloaded().
		Where("doctor_id = ? AND visiting_date = ?", doctorID, date).
		Order("visiting_serial_number asc").
		Find(&appts).Error
	return appts, err
}

func (s *GormStore) preloaded() *gorm.DB {
	return s.db.Preload("Doctor").Preload("Patient")
}

// DoctorByID implements DoctorLookup.
func (s *GormStore) DoctorByID(id uint) (*models.Doctor, error) {
	var doctor models.Doctor
	err := s.db.First(&doctor, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.NotFound("Doctor not found with ID: %d", id)
	}
	if err != nil {
		return nil, err
	}
	return &doctor, nil
}

// PatientByID implements PatientLookup.
func (s *GormStore) PatientByID(id uint) (*models.Patient, error) {
	var patient models.Patient
	err := s.db.First(&patient, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.NotFound("Patient not found with ID: %d", id)
	}
	if err != nil {
		return nil, err
	}
	return &patient, nil
}
