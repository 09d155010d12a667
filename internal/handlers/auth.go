package handlers

import (
	"mediconnect-server/internal/config"
	"mediconnect-server/internal/middleware"
	"mediconnect-server/internal/models"
	"mediconnect-server/internal/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// AuthHandler handles authentication-related requests. Sessions are JWTs
// carried in an HTTP-only cookie.
type AuthHandler struct {
	DB  *gorm.DB
	Cfg *config.Config
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(db *gorm.DB, cfg *config.Config) *AuthHandler {
	return &AuthHandler{DB: db, Cfg: cfg}
}

// LoginRequest represents the request body for login.
type LoginRequest struct {
	Role     string `json:"role" binding:"required,oneof=admin doctor patient"`
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// LoginResponse represents the response body for successful login.
type LoginResponse struct {
	ID   uint        `json:"id"`
	Name string      `json:"name"`
	Role models.Role `json:"role"`
}

// Login authenticates an admin, doctor or patient and sets the auth cookie.
func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	var (
		subjectID uint
		name      string
		role      = models.Role(req.Role)
	)

	switch role {
	case models.RoleAdmin:
		if req.Username != h.Cfg.AdminUsername || req.Password != h.Cfg.AdminPassword {
			utils.Unauthorized(c, "Invalid username or password")
			return
		}
		name = "Administrator"
	case models.RoleDoctor:
		var doctor models.Doctor
		if err := h.DB.Where("username = ?", req.Username).First(&doctor).Error; err != nil || !doctor.CheckPassword(req.Password) {
			utils.Unauthorized(c, "Invalid username or password")
			return
		}
		subjectID = doctor.ID
		name = doctor.Name
	case models.RolePatient:
		var patient models.Patient
		if err := h.DB.Where("username = ?", req.Username).First(&patient).Error; err != nil || !patient.CheckPassword(req.Password) {
			utils.Unauthorized(c, "Invalid username or password")
			return
		}
		subjectID = patient.ID
		name = patient.Name
	}

	token, err := utils.GenerateToken(subjectID, role, h.Cfg)
	if err != nil {
		utils.InternalServerError(c, "Failed to generate token: "+err.Error())
		return
	}

	maxAge := h.Cfg.JWTExpirationMinutes * 60
	secure := h.Cfg.Environment == "production"
	c.SetCookie(h.Cfg.CookieName, token, maxAge, "/", "", secure, true)

	utils.Success(c, "Login successful", LoginResponse{ID: subjectID, Name: name, Role: role})
}

// Logout clears the auth cookie.
func (h *AuthHandler) Logout(c *gin.Context) {
	secure := h.Cfg.Environment == "production"
	c.SetCookie(h.Cfg.CookieName, "", -1, "/", "", secure, true)
	utils.Success(c, "Logout successful", nil)
}

// Me returns the profile of the authenticated subject.
func (h *AuthHandler) Me(c *gin.Context) {
	subjectID, _ := middleware.GetSubjectIDFromContext(c)
	role, ok := middleware.GetUserRoleFromContext(c)
	if !ok {
		utils.Unauthorized(c, "Not authenticated")
		return
	}

	switch role {
	case models.RoleAdmin:
		utils.Success(c, "Profile fetched successfully", LoginResponse{Name: "Administrator", Role: role})
	case models.RoleDoctor:
		var doctor models.Doctor
		if err := h.DB.First(&doctor, subjectID).Error; err != nil {
			utils.NotFound(c, "Doctor not found")
			return
		}
		utils.Success(c, "Profile fetched successfully", doctor)
	case models.RolePatient:
		var patient models.Patient
		if err := h.DB.First(&patient, subjectID).Error; err != nil {
			utils.NotFound(c, "Patient not found")
			return
		}
		utils.Success(c, "Profile fetched successfully", patient)
	default:
		utils.Forbidden(c, "Unknown role")
	}
}
