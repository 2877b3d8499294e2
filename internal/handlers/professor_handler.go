package handlers

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	domain "github.com/unidesk/consult-scheduler/internal/domain/consultation"
	"github.com/unidesk/consult-scheduler/internal/httperr"
	"github.com/unidesk/consult-scheduler/internal/httpresp"
	"github.com/unidesk/consult-scheduler/internal/middleware"
	"github.com/unidesk/consult-scheduler/internal/models"
	"github.com/unidesk/consult-scheduler/internal/timezone"
	ucConsultation "github.com/unidesk/consult-scheduler/internal/usecase/consultation"
)

type ProfessorHandler struct {
	db           *gorm.DB
	availability *ucConsultation.GetAvailability
	campusTZ     string
}

func NewProfessorHandler(
	db *gorm.DB,
	availability *ucConsultation.GetAvailability,
	campusTZ string,
) *ProfessorHandler {
	return &ProfessorHandler{
		db:           db,
		availability: availability,
		campusTZ:     campusTZ,
	}
}

// ======================================================
// REQUESTS
// ======================================================

type UpdateAvailabilityRequest struct {
	AvailableDays         models.WeeklySlots `json:"available_days" binding:"required"`
	DefaultDuration       int                `json:"default_duration"`
	MaxAdvanceBookingDays int                `json:"max_advance_booking_days"`
	BufferMinutes         int                `json:"buffer_minutes"`
}

// ======================================================
// LIST
// ======================================================

func (h *ProfessorHandler) List(c *gin.Context) {
	var profiles []models.ProfessorProfile
	q := h.db.Preload("User")

	if dep := c.Query("department"); dep != "" {
		q = q.Where("department = ?", dep)
	}

	if err := q.Find(&profiles).Error; err != nil {
		httperr.Internal(c, "failed_to_list_professors", "Failed to list professors.")
		return
	}

	httpresp.List(c, profiles)
}

// ======================================================
// AVAILABILITY
// ======================================================

func (h *ProfessorHandler) Availability(c *gin.Context) {
	professorID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "Invalid professor id.")
		return
	}

	dateStr := c.Query("date")
	if dateStr == "" {
		httperr.BadRequest(c, "missing_date", "Date parameter is required (format: 2006-01-02).")
		return
	}

	date, err := time.ParseInLocation(
		timezone.DateLayout,
		dateStr,
		timezone.Location(h.campusTZ),
	)
	if err != nil {
		httperr.BadRequest(c, "invalid_date", "Invalid date format. Use 2006-01-02.")
		return
	}

	out, err := h.availability.Execute(c.Request.Context(), domain.AvailabilityInput{
		ProfessorID: uint(professorID),
		Date:        date,
	})
	if err != nil {
		writeDomainError(c, err)
		return
	}

	httpresp.OK(c, out)
}

// ======================================================
// UPDATE AVAILABILITY (owner only)
// ======================================================

func (h *ProfessorHandler) UpdateAvailability(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)

	var req UpdateAvailabilityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid request body.")
		return
	}

	for day, slots := range req.AvailableDays {
		if !validWeekday(day) {
			httperr.BadRequest(c, "invalid_weekday", "Unknown weekday: "+day)
			return
		}
		for _, hm := range slots {
			if _, err := time.Parse(timezone.TimeLayout, hm); err != nil {
				httperr.BadRequest(c, "invalid_slot", "Invalid slot time: "+hm)
				return
			}
		}
	}

	if req.DefaultDuration != 0 {
		if req.DefaultDuration < 15 || req.DefaultDuration > 240 {
			httperr.BadRequest(c, "invalid_duration", "Duration must be between 15 and 240 minutes.")
			return
		}
	}
	if req.MaxAdvanceBookingDays != 0 {
		if req.MaxAdvanceBookingDays < 1 || req.MaxAdvanceBookingDays > 365 {
			httperr.BadRequest(c, "invalid_advance_days", "Advance booking days must be between 1 and 365.")
			return
		}
	}
	if req.BufferMinutes < 0 || req.BufferMinutes > 120 {
		httperr.BadRequest(c, "invalid_buffer", "Buffer must be between 0 and 120 minutes.")
		return
	}

	var profile models.ProfessorProfile
	if err := h.db.Where("user_id = ?", userID).First(&profile).Error; err != nil {
		httperr.NotFound(c, "profile_not_found", "Professor profile not found.")
		return
	}

	profile.AvailableDays = req.AvailableDays
	if req.DefaultDuration != 0 {
		profile.DefaultDuration = req.DefaultDuration
	}
	if req.MaxAdvanceBookingDays != 0 {
		profile.MaxAdvanceBookingDays = req.MaxAdvanceBookingDays
	}
	profile.BufferMinutes = req.BufferMinutes

	if err := h.db.Save(&profile).Error; err != nil {
		httperr.Internal(c, "failed_to_update_profile", "Failed to update availability.")
		return
	}

	httpresp.OK(c, profile)
}

func validWeekday(day string) bool {
	switch day {
	case "monday", "tuesday", "wednesday", "thursday", "friday", "saturday", "sunday":
		return true
	}
	return false
}
