package handlers

import (
	"mediconnect-server/internal/models"
	"mediconnect-server/internal/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// PrescriptionHandler handles prescription related requests.
type PrescriptionHandler struct {
	DB *gorm.DB
}

// NewPrescriptionHandler creates a new PrescriptionHandler.
func NewPrescriptionHandler(db *gorm.DB) *PrescriptionHandler {
	return &PrescriptionHandler{DB: db}
}

// CreatePrescriptionRequest represents the request body for writing a prescription.
type CreatePrescriptionRequest struct {
	DoctorID         uint              `json:"doctorId" binding:"required"`
	PatientID        uint              `json:"patientId" binding:"required"`
	AppointmentID    *uint             `json:"appointmentId"`
	PrescriptionDate *models.Date      `json:"prescriptionDate"`
	Problem          string            `json:"problem" binding:"required"`
	Tests            models.StringList `json:"tests"`
	Tablets          models.StringList `json:"tablets"`
	Capsules         models.StringList `json:"capsules"`
	Vaccines         models.StringList `json:"vaccines"`
	Advice           string            `json:"advice"`
	FollowUpDate     *models.Date      `json:"followUpDate"`
}

// CreatePrescription handles writing a new prescription (doctor only).
func (h *PrescriptionHandler) CreatePrescription(c *gin.Context) {
	var req CreatePrescriptionRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	var doctor models.Doctor
	if err := h.DB.First(&doctor, req.DoctorID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			utils.NotFound(c, "Doctor not found")
		} else {
			utils.InternalServerError(c, "Database error: "+err.Error())
		}
		return
	}
	var patient models.Patient
	if err := h.DB.First(&patient, req.PatientID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			utils.NotFound(c, "Patient not found")
		} else {
			utils.InternalServerError(c, "Database error: "+err.Error())
		}
		return
	}
	if req.AppointmentID != nil {
		var appt models.Appointment
		if err := h.DB.First(&appt, *req.AppointmentID).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				utils.NotFound(c, "Appointment not found")
			} else {
				utils.InternalServerError(c, "Database error: "+err.Error())
			}
			return
		}
	}

	// Prescription date defaults to today when not provided
	prescriptionDate := models.Today()
	if req.PrescriptionDate != nil {
		prescriptionDate = *req.PrescriptionDate
	}

	prescription := models.Prescription{
		DoctorID:         req.DoctorID,
		PatientID:        req.PatientID,
		AppointmentID:    req.AppointmentID,
		PrescriptionDate: prescriptionDate,
		Problem:          req.Problem,
		Tests:            req.Tests,
		Tablets:          req.Tablets,
		Capsules:         req.Capsules,
		Vaccines:         req.Vaccines,
		Advice:           req.Advice,
		FollowUpDate:     req.FollowUpDate,
		Status:           models.PrescriptionActive,
	}

	if err := h.DB.Create(&prescription).Error; err != nil {
		utils.InternalServerError(c, "Failed to create prescription: "+err.Error())
		return
	}

	utils.Created(c, "Prescription created successfully", prescription)
}

// UpdatePrescriptionRequest represents the request body for updating a
// prescription. Doctor, patient and prescription date cannot change.
type UpdatePrescriptionRequest struct {
	Problem      string                    `json:"problem"`
	Tests        models.StringList         `json:"tests"`
	Tablets      models.StringList         `json:"tablets"`
	Capsules     models.StringList         `json:"capsules"`
	Vaccines     models.StringList         `json:"vaccines"`
	Advice       string                    `json:"advice"`
	FollowUpDate *models.Date              `json:"followUpDate"`
	Status       models.PrescriptionStatus `json:"status" binding:"omitempty,oneof=active completed cancelled"`
}

// UpdatePrescription handles amending an active prescription.
func (h *PrescriptionHandler) UpdatePrescription(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req UpdatePrescriptionRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	var prescription models.Prescription
	if err := h.DB.First(&prescription, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			utils.NotFound(c, "Prescription not found")
		} else {
			utils.InternalServerError(c, "Database error: "+err.Error())
		}
		return
	}

	switch prescription.Status {
	case models.PrescriptionCompleted:
		utils.BadRequest(c, "Cannot update a completed prescription")
		return
	case models.PrescriptionCancelled:
		utils.BadRequest(c, "Cannot update a cancelled prescription")
		return
	}

	if req.Problem != "" {
		prescription.Problem = req.Problem
	}
	if req.Tests != nil {
		prescription.Tests = req.Tests
	}
	if req.Tablets != nil {
		prescription.Tablets = req.Tablets
	}
	if req.Capsules != nil {
		prescription.Capsules = req.Capsules
	}
	if req.Vaccines != nil {
		prescription.Vaccines = req.Vaccines
	}
	if req.Advice != "" {
		prescription.Advice = req.Advice
	}
	if req.FollowUpDate != nil {
		prescription.FollowUpDate = req.FollowUpDate
	}
	if req.Status != "" {
		prescription.Status = req.Status
	}

	if err := h.DB.Save(&prescription).Error; err != nil {
		utils.InternalServerError(c, "Failed to update prescription: "+err.Error())
		return
	}

	utils.Success(c, "Prescription updated successfully", prescription)
}

// GetPrescriptionByID handles fetching a single prescription.
func (h *PrescriptionHandler) GetPrescriptionByID(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var prescription models.Prescription
	if err := h.DB.First(&prescription, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			utils.NotFound(c, "Prescription not found")
		} else {
			utils.InternalServerError(c, "Database error: "+err.Error())
		}
		return
	}

	utils.Success(c, "Prescription fetched successfully", prescription)
}

// GetPrescriptions handles listing all prescriptions.
func (h *PrescriptionHandler) GetPrescriptions(c *gin.Context) {
	var prescriptions []models.Prescription
	if err := h.DB.Find(&prescriptions).Error; err != nil {
		utils.InternalServerError(c, "Failed to fetch prescriptions: "+err.Error())
		return
	}

	utils.Success(c, "Prescriptions fetched successfully", prescriptions)
}

// GetPrescriptionsByDoctor handles listing prescriptions written by a doctor.
func (h *PrescriptionHandler) GetPrescriptionsByDoctor(c *gin.Context) {
	doctorID, ok := parseIDParam(c, "doctorId")
	if !ok {
		return
	}

	var doctor models.Doctor
	if err := h.DB.First(&doctor, doctorID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			utils.NotFound(c, "Doctor not found")
		} else {
			utils.InternalServerError(c, "Database error: "+err.Error())
		}
		return
	}

	var prescriptions []models.Prescription
	if err := h.DB.Where("doctor_id = ?", doctorID).Find(&prescriptions).Error; err != nil {
		utils.InternalServerError(c, "Failed to fetch prescriptions: "+err.Error())
		return
	}

	utils.Success(c, "Prescriptions fetched successfully", prescriptions)
}

// GetPrescriptionsByPatient handles listing a patient's prescriptions.
func (h *PrescriptionHandler) GetPrescriptionsByPatient(c *gin.Context) {
	patientID, ok := parseIDParam(c, "patientId")
	if !ok {
		return
	}

	var patient models.Patient
	if err := h.DB.First(&patient, patientID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			utils.NotFound(c, "Patient not found")
		} else {
			utils.InternalServerError(c, "Database error: "+err.Error())
		}
		return
	}

	var prescriptions []models.Prescription
	if err := h.DB.Where("patient_id = ?", patientID).Find(&prescriptions).Error; err != nil {
		utils.InternalServerError(c, "Failed to fetch prescriptions: "+err.Error())
		return
	}

	utils.Success(c, "Prescriptions fetched successfully", prescriptions)
}

// GetPrescriptionsByPatientAndDoctor handles listing prescriptions between
// one patient and one doctor.
func (h *PrescriptionHandler) GetPrescriptionsByPatientAndDoctor(c *gin.Context) {
	patientID, ok := parseIDParam(c, "patientId")
	if !ok {
		return
	}
	doctorID, ok := parseIDParam(c, "doctorId")
	if !ok {
		return
	}

	var prescriptions []models.Prescription
	if err := h.DB.Where("patient_id = ? AND doctor_id = ?", patientID, doctorID).Find(&prescriptions).Error; err != nil {
		utils.InternalServerError(c, "Failed to fetch prescriptions: "+err.Error())
		return
	}

	utils.Success(c, "Prescriptions fetched successfully", prescriptions)
}

// DeletePrescription handles removing a prescription.
func (h *PrescriptionHandler) DeletePrescription(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var prescription models.Prescription
	if err := h.DB.First(&prescription, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			utils.NotFound(c, "Prescription not found")
		} else {
			utils.InternalServerError(c, "Database error: "+err.Error())
		}
		return
	}

	if err := h.DB.Delete(&prescription).Error; err != nil {
		utils.InternalServerError(c, "Failed to delete prescription: "+err.Error())
		return
	}

	utils.Success(c, "Prescription deleted successfully", nil)
}
