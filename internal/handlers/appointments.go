package handlers

import (
	"strconv"

	"mediconnect-server/internal/models"
	"mediconnect-server/internal/scheduler"
	"mediconnect-server/internal/utils"

	"github.com/gin-gonic/gin"
)

// AppointmentHandler exposes the scheduler over HTTP. All business rules
// live in the scheduler; this layer only binds, parses and maps errors.
type AppointmentHandler struct {
	Scheduler *scheduler.Scheduler
}

// NewAppointmentHandler creates a new AppointmentHandler.
func NewAppointmentHandler(s *scheduler.Scheduler) *AppointmentHandler {
	return &AppointmentHandler{Scheduler: s}
}

// CreateAppointmentRequest represents the request body for creating an appointment.
type CreateAppointmentRequest struct {
	DoctorID           uint        `json:"doctorId" binding:"required"`
	PatientID          uint        `json:"patientId" binding:"required"`
	VisitingDate       models.Date `json:"visitingDate" binding:"required"`
	ProblemDescription string      `json:"problemDescription"`
}

// CreateAppointment handles booking a new appointment.
func (h *AppointmentHandler) CreateAppointment(c *gin.Context) {
	var req CreateAppointmentRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	appt, err := h.Scheduler.Create(scheduler.CreateInput{
		DoctorID:           req.DoctorID,
		PatientID:          req.PatientID,
		VisitingDate:       req.VisitingDate,
		ProblemDescription: req.ProblemDescription,
	})
	if err != nil {
		utils.FromError(c, err)
		return
	}

	utils.Created(c, "Appointment created successfully", appt)
}

// UpdateAppointmentRequest represents the request body for updating an
// appointment. Status is not accepted here; cancel and complete have their
// own endpoints.
type UpdateAppointmentRequest struct {
	VisitingDate       *models.Date `json:"visitingDate"`
	ProblemDescription *string      `json:"problemDescription"`
}

// UpdateAppointment handles changing the visiting date and/or the problem
// description of a scheduled appointment.
func (h *AppointmentHandler) UpdateAppointment(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req UpdateAppointmentRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	appt, err := h.Scheduler.Update(id, scheduler.UpdateInput{
		VisitingDate:       req.VisitingDate,
		ProblemDescription: req.ProblemDescription,
	})
	if err != nil {
		utils.FromError(c, err)
		return
	}

	utils.Success(c, "Appointment updated successfully", appt)
}

// CancelAppointment handles the scheduled -> canceled transition.
func (h *AppointmentHandler) CancelAppointment(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	appt, err := h.Scheduler.Cancel(id)
	if err != nil {
		utils.FromError(c, err)
		return
	}

	utils.Success(c, "Appointment cancelled successfully", appt)
}

// CompleteAppointment handles the scheduled -> completed transition.
func (h *AppointmentHandler) CompleteAppointment(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	appt, err := h.Scheduler.Complete(id)
	if err != nil {
		utils.FromError(c, err)
		return
	}

	utils.Success(c, "Appointment completed successfully", appt)
}

// DeleteAppointment hard-deletes an appointment.
func (h *AppointmentHandler) DeleteAppointment(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.Scheduler.Delete(id); err != nil {
		utils.FromError(c, err)
		return
	}

	utils.Success(c, "Appointment deleted successfully", nil)
}

// GetAppointmentByID handles fetching a single appointment by its ID.
func (h *AppointmentHandler) GetAppointmentByID(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	appt, err := h.Scheduler.GetByID(id)
	if err != nil {
		utils.FromError(c, err)
		return
	}

	utils.Success(c, "Appointment fetched successfully", appt)
}

// GetAllAppointments handles fetching every appointment.
func (h *AppointmentHandler) GetAllAppointments(c *gin.Context) {
	appts, err := h.Scheduler.GetAll()
	if err != nil {
		utils.FromError(c, err)
		return
	}

	utils.Success(c, "Appointments fetched successfully", appts)
}

// GetAppointmentsByDoctor handles fetching all appointments of a doctor.
func (h *AppointmentHandler) GetAppointmentsByDoctor(c *gin.Context) {
	doctorID, ok := parseIDParam(c, "doctorId")
	if !ok {
		return
	}

	appts, err := h.Scheduler.GetByDoctor(doctorID)
	if err != nil {
		utils.FromError(c, err)
		return
	}

	utils.Success(c, "Appointments fetched successfully", appts)
}

// GetAppointmentsByPatient handles fetching all appointments of a patient.
func (h *AppointmentHandler) GetAppointmentsByPatient(c *gin.Context) {
	patientID, ok := parseIDParam(c, "patientId")
	if !ok {
		return
	}

	appts, err := h.Scheduler.GetByPatient(patientID)
	if err != nil {
		utils.FromError(c, err)
		return
	}

	utils.Success(c, "Appointments fetched successfully", appts)
}

// GetAppointmentsByDoctorAndStatus filters a doctor's appointments by status.
func (h *AppointmentHandler) GetAppointmentsByDoctorAndStatus(c *gin.Context) {
	doctorID, ok := parseIDParam(c, "doctorId")
	if !ok {
		return
	}
	status, err := models.ParseAppointmentStatus(c.Param("status"))
	if err != nil {
		utils.BadRequest(c, err.Error())
		return
	}

	appts, err := h.Scheduler.GetByDoctorAndStatus(doctorID, status)
	if err != nil {
		utils.FromError(c, err)
		return
	}

	utils.Success(c, "Appointments fetched successfully", appts)
}

// GetAppointmentsByPatientAndStatus filters a patient's appointments by status.
func (h *AppointmentHandler) GetAppointmentsByPatientAndStatus(c *gin.Context) {
	patientID, ok := parseIDParam(c, "patientId")
	if !ok {
		return
	}
	status, err := models.ParseAppointmentStatus(c.Param("status"))
	if err != nil {
		utils.BadRequest(c, err.Error())
		return
	}

	appts, err := h.Scheduler.GetByPatientAndStatus(patientID, status)
	if err != nil {
		utils.FromError(c, err)
		return
	}

	utils.Success(c, "Appointments fetched successfully", appts)
}

// GetAppointmentsByDoctorAndDate handles fetching a doctor's appointments
// on one day.
func (h *AppointmentHandler) GetAppointmentsByDoctorAndDate(c *gin.Context) {
	doctorID, ok := parseIDParam(c, "doctorId")
	if !ok {
		return
	}
	date, ok := parseDateParam(c, "date")
	if !ok {
		return
	}

	appts, err := h.Scheduler.GetByDoctorAndDate(doctorID, date)
	if err != nil {
		utils.FromError(c, err)
		return
	}

	utils.Success(c, "Appointments fetched successfully", appts)
}

// GetUpcomingAppointmentsByDoctor handles fetching a doctor's appointments
// from today on.
func (h *AppointmentHandler) GetUpcomingAppointmentsByDoctor(c *gin.Context) {
	doctorID, ok := parseIDParam(c, "doctorId")
	if !ok {
		return
	}

	appts, err := h.Scheduler.GetUpcomingByDoctor(doctorID)
	if err != nil {
		utils.FromError(c, err)
		return
	}

	utils.Success(c, "Appointments fetched successfully", appts)
}

// GetUpcomingAppointmentsByPatient handles fetching a patient's appointments
// from today on.
func (h *AppointmentHandler) GetUpcomingAppointmentsByPatient(c *gin.Context) {
	patientID, ok := parseIDParam(c, "patientId")
	if !ok {
		return
	}

	appts, err := h.Scheduler.GetUpcomingByPatient(patientID)
	if err != nil {
		utils.FromError(c, err)
		return
	}

	utils.Success(c, "Appointments fetched successfully", appts)
}

// GetDayQueue handles fetching a doctor's queue for one day, ordered by
// visiting serial number.
func (h *AppointmentHandler) GetDayQueue(c *gin.Context) {
	doctorID, ok := parseIDParam(c, "doctorId")
	if !ok {
		return
	}
	date, ok := parseDateParam(c, "date")
	if !ok {
		return
	}

	appts, err := h.Scheduler.GetDayQueue(doctorID, date)
	if err != nil {
		utils.FromError(c, err)
		return
	}

	utils.Success(c, "Day queue fetched successfully", appts)
}

func parseIDParam(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 32)
	if err != nil {
		utils.BadRequest(c, "Invalid "+name+" parameter")
		return 0, false
	}
	return uint(id), true
}

func parseDateParam(c *gin.Context, name string) (models.Date, bool) {
	date, err := models.ParseDate(c.Param(name))
	if err != nil {
		utils.BadRequest(c, err.Error())
		return models.Date{}, false
	}
	return date, true
}
