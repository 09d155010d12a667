// Package scheduler owns the appointment lifecycle: creation, update,
// cancel, complete, hard delete and the read views, together with the
// business rules around visiting dates and per-doctor daily serial numbers.
package scheduler

import (
	"mediconnect-server/internal/apperr"
	"mediconnect-server/internal/models"
	"mediconnect-server/internal/store"

	"github.com/rs/zerolog"
)

// QueueCache caches the doctor's day-queue view. Implementations must be
// safe for concurrent use; a nil cache disables caching.
type QueueCache interface {
	GetQueue(doctorID uint, date models.Date) ([]models.Appointment, bool)
	SetQueue(doctorID uint, date models.Date, appts []models.Appointment)
	Invalidate(doctorID uint, date models.Date)
}

// Scheduler enforces appointment business rules on top of an
// AppointmentStore. It is constructed once at startup and shared by the
// HTTP handlers.
type Scheduler struct {
	appts    store.AppointmentStore
	doctors  store.DoctorLookup
	patients store.PatientLookup
	queues   QueueCache
	log      zerolog.Logger
}

// New creates a Scheduler. queues may be nil.
func New(appts store.AppointmentStore, doctors store.DoctorLookup, patients store.PatientLookup, queues QueueCache, log zerolog.Logger) *Scheduler {
	return &Scheduler{
		appts:    appts,
		doctors:  doctors,
		patients: patients,
		queues:   queues,
		log:      log,
	}
}

// CreateInput carries the caller-supplied fields for a new appointment.
type CreateInput struct {
	DoctorID           uint
	PatientID          uint
	VisitingDate       models.Date
	ProblemDescription string
}

// Create books a new appointment. The booking date is always today, the
// status starts as scheduled and the serial number is assigned by the store
// inside the insert transaction.
func (s *Scheduler) Create(in CreateInput) (*models.Appointment, error) {
	if in.DoctorID == 0 {
		return nil, apperr.InvalidArgument("Doctor is required")
	}
	if in.PatientID == 0 {
		return nil, apperr.InvalidArgument("Patient is required")
	}
	if in.VisitingDate.IsZero() {
		return nil, apperr.InvalidArgument("Visiting date is required")
	}

	doctor, err := s.doctors.DoctorByID(in.DoctorID)
	if err != nil {
		return nil, err
	}
	patient, err := s.patients.PatientByID(in.PatientID)
	if err != nil {
		return nil, err
	}

	today := models.Today()
	if in.VisitingDate.Before(today) {
		return nil, apperr.InvalidArgument("Visiting date must be today or in the future")
	}

	appt := &models.Appointment{
		DoctorID:           in.DoctorID,
		PatientID:          in.PatientID,
		BookingDate:        today,
		VisitingDate:       in.VisitingDate,
		Status:             models.StatusScheduled,
		ProblemDescription: in.ProblemDescription,
		DoctorName:         doctor.Name,
		PatientName:        patient.Name,
	}
	if err := s.appts.Create(appt); err != nil {
		return nil, err
	}

	s.invalidateQueue(appt.DoctorID, appt.VisitingDate)
	s.log.Info().
		Uint("appointment_id", appt.ID).
		Uint("doctor_id", appt.DoctorID).
		Str("visiting_date", appt.VisitingDate.String()).
		Int("serial", appt.VisitingSerialNumber).
		Msg("appointment created")
	return appt, nil
}

// UpdateInput carries the mutable fields of an appointment. Nil fields are
// left unchanged. Status is deliberately absent: all status changes go
// through Cancel and Complete.
type UpdateInput struct {
	VisitingDate       *models.Date
	ProblemDescription *string
}

// Update changes the visiting date and/or problem description of a
// scheduled appointment. Moving the visiting date allocates a fresh serial
// number scoped to the new (doctor, date) pair; the old slot stays vacated.
func (s *Scheduler) Update(id uint, in UpdateInput) (*models.Appointment, error) {
	appt, err := s.appts.ByID(id)
	if err != nil {
		return nil, err
	}

	switch appt.Status {
	case models.StatusCompleted:
		return nil, apperr.InvalidState("Cannot update a completed appointment")
	case models.StatusCanceled:
		return nil, apperr.InvalidState("Cannot update a cancelled appointment")
	}

	oldDate := appt.VisitingDate
	dateChanged := false
	if in.VisitingDate != nil && !in.VisitingDate.Equal(appt.VisitingDate) {
		if in.VisitingDate.Before(models.Today()) {
			return nil, apperr.InvalidArgument("New visiting date must be today or in the future")
		}
		appt.VisitingDate = *in.VisitingDate
		dateChanged = true
	}
	if in.ProblemDescription != nil {
		appt.ProblemDescription = *in.ProblemDescription
	}

	if err := s.appts.Update(appt, dateChanged); err != nil {
		return nil, err
	}

	s.invalidateQueue(appt.DoctorID, appt.VisitingDate)
	if dateChanged {
		s.invalidateQueue(appt.DoctorID, oldDate)
		s.log.Info().
			Uint("appointment_id", appt.ID).
			Str("old_date", oldDate.String()).
			Str("new_date", appt.VisitingDate.String()).
			Int("serial", appt.VisitingSerialNumber).
			Msg("appointment moved")
	}
	return appt, nil
}

// Cancel moves a scheduled appointment to canceled.
func (s *Scheduler) Cancel(id uint) (*models.Appointment, error) {
	appt, err := s.appts.ByID(id)
	if err != nil {
		return nil, err
	}

	if appt.Status == models.StatusCompleted {
		return nil, apperr.InvalidState("Cannot cancel a completed appointment")
	}
	if appt.Status == models.StatusCanceled {
		return nil, apperr.InvalidState("Appointment is already cancelled")
	}

	appt.Status = models.StatusCanceled
	if err := s.appts.Update(appt, false); err != nil {
		return nil, err
	}
	s.invalidateQueue(appt.DoctorID, appt.VisitingDate)
	return appt, nil
}

// Complete moves a scheduled appointment to completed.
func (s *Scheduler) Complete(id uint) (*models.Appointment, error) {
	appt, err := s.appts.ByID(id)
	if err != nil {
		return nil, err
	}

	if appt.Status == models.StatusCanceled {
		return nil, apperr.InvalidState("Cannot complete a cancelled appointment")
	}
	if appt.Status == models.StatusCompleted {
		return nil, apperr.InvalidState("Appointment is already completed")
	}

	appt.Status = models.StatusCompleted
	if err := s.appts.Update(appt, false); err != nil {
		return nil, err
	}
	s.invalidateQueue(appt.DoctorID, appt.VisitingDate)
	return appt, nil
}

// Delete hard-deletes an appointment after an existence check. It bypasses
// the status state machine; this is a data-management escape hatch, not a
// business transition.
func (s *Scheduler) Delete(id uint) error {
	appt, err := s.appts.ByID(id)
	if err != nil {
		return err
	}
	if err := s.appts.Delete(id); err != nil {
		return err
	}
	s.invalidateQueue(appt.DoctorID, appt.VisitingDate)
	return nil
}

// GetByID returns one appointment.
func (s *Scheduler) GetByID(id uint) (*models.Appointment, error) {
	return s.appts.ByID(id)
}

// GetAll returns every appointment.
func (s *Scheduler) GetAll() ([]models.Appointment, error) {
	return s.appts.All()
}

// GetByDoctor returns all appointments for a doctor.
func (s *Scheduler) GetByDoctor(doctorID uint) ([]models.Appointment, error) {
	if _, err := s.doctors.DoctorByID(doctorID); err != nil {
		return nil, err
	}
	return s.appts.ByDoctor(doctorID)
}

// GetByPatient returns all appointments for a patient.
func (s *Scheduler) GetByPatient(patientID uint) ([]models.Appointment, error) {
	if _, err := s.patients.PatientByID(patientID); err != nil {
		return nil, err
	}
	return s.appts.ByPatient(patientID)
}

// GetByDoctorAndStatus returns a doctor's appointments in one status.
func (s *Scheduler) GetByDoctorAndStatus(doctorID uint, status models.AppointmentStatus) ([]models.Appointment, error) {
	if _, err := s.doctors.DoctorByID(doctorID); err != nil {
		return nil, err
	}
	return s.appts.ByDoctorAndStatus(doctorID, status)
}

// GetByPatientAndStatus returns a patient's appointments in one status.
func (s *Scheduler) GetByPatientAndStatus(patientID uint, status models.AppointmentStatus) ([]models.Appointment, error) {
	if _, err := s.patients.PatientByID(patientID); err != nil {
		return nil, err
	}
	return s.appts.ByPatientAndStatus(patientID, status)
}

// GetByDoctorAndDate returns a doctor's appointments on one day.
func (s *Scheduler) GetByDoctorAndDate(doctorID uint, date models.Date) ([]models.Appointment, error) {
	if _, err := s.doctors.DoctorByID(doctorID); err != nil {
		return nil, err
	}
	return s.appts.ByDoctorAndDate(doctorID, date)
}

// GetUpcomingByDoctor returns a doctor's appointments from today on,
// ascending by visiting date.
func (s *Scheduler) GetUpcomingByDoctor(doctorID uint) ([]models.Appointment, error) {
	if _, err := s.doctors.DoctorByID(doctorID); err != nil {
		return nil, err
	}
	return s.appts.UpcomingByDoctor(doctorID, models.Today())
}

// GetUpcomingByPatient returns a patient's appointments from today on,
// ascending by visiting date.
func (s *Scheduler) GetUpcomingByPatient(patientID uint) ([]models.Appointment, error) {
	if _, err := s.patients.PatientByID(patientID); err != nil {
		return nil, err
	}
	return s.appts.UpcomingByPatient(patientID, models.Today())
}

// GetDayQueue returns the doctor's queue for one day, ascending by serial
// number. The result is served from the queue cache when present.
func (s *Scheduler) GetDayQueue(doctorID uint, date models.Date) ([]models.Appointment, error) {
	if _, err := s.doctors.DoctorByID(doctorID); err != nil {
		return nil, err
	}
	if s.queues != nil {
		if appts, ok := s.queues.GetQueue(doctorID, date); ok {
			return appts, nil
		}
	}
	appts, err := s.appts.DayQueue(doctorID, date)
	if err != nil {
		return nil, err
	}
	if s.queues != nil {
		s.queues.SetQueue(doctorID, date, appts)
	}
	return appts, nil
}

func (s *Scheduler) invalidateQueue(doctorID uint, date models.Date) {
	if s.queues != nil {
		s.queues.Invalidate(doctorID, date)
	}
}
