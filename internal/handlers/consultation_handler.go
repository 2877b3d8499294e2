package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"

	domain "github.com/unidesk/consult-scheduler/internal/domain/consultation"
	"github.com/unidesk/consult-scheduler/internal/httperr"
	"github.com/unidesk/consult-scheduler/internal/httpresp"
	"github.com/unidesk/consult-scheduler/internal/middleware"
	ucConsultation "github.com/unidesk/consult-scheduler/internal/usecase/consultation"
)

// ======================================================
// HANDLER
// ======================================================

type ConsultationHandler struct {
	book       *ucConsultation.BookConsultation
	confirm    *ucConsultation.ConfirmConsultation
	cancel     *ucConsultation.CancelConsultation
	reschedule *ucConsultation.RescheduleConsultation
	complete   *ucConsultation.CompleteConsultation
	noShow     *ucConsultation.MarkNoShow
	rate       *ucConsultation.RateConsultation
	notes      *ucConsultation.AddNotes
	repo       domain.Repository
}

func NewConsultationHandler(
	book *ucConsultation.BookConsultation,
	confirm *ucConsultation.ConfirmConsultation,
	cancel *ucConsultation.CancelConsultation,
	reschedule *ucConsultation.RescheduleConsultation,
	complete *ucConsultation.CompleteConsultation,
	noShow *ucConsultation.MarkNoShow,
	rate *ucConsultation.RateConsultation,
	notes *ucConsultation.AddNotes,
	repo domain.Repository,
) *ConsultationHandler {
	return &ConsultationHandler{
		book:       book,
		confirm:    confirm,
		cancel:     cancel,
		reschedule: reschedule,
		complete:   complete,
		noShow:     noShow,
		rate:       rate,
		notes:      notes,
		repo:       repo,
	}
}

// ======================================================
// REQUESTS
// ======================================================

type BookConsultationRequest struct {
	ProfessorID uint   `json:"professor_id" binding:"required"`
	Title       string `json:"title" binding:"required,max=200"`
	Description string `json:"description"`
	Date        string `json:"date" binding:"required"`
	Time        string `json:"time" binding:"required"`
	Duration    int    `json:"duration"`
	MeetingLink string `json:"meeting_link"`
	Location    string `json:"location"`
}

type CancelConsultationRequest struct {
	Reason string `json:"reason"`
}

type RescheduleConsultationRequest struct {
	Date     string `json:"date" binding:"required"`
	Time     string `json:"time" binding:"required"`
	Duration int    `json:"duration"`
}

type RateConsultationRequest struct {
	Rating   int    `json:"rating" binding:"required"`
	Feedback string `json:"feedback"`
}

type ConsultationNotesRequest struct {
	Notes string `json:"notes" binding:"required"`
}

// ======================================================
// BOOK
// ======================================================

func (h *ConsultationHandler) Book(c *gin.Context) {
	studentID := c.MustGet(middleware.ContextUserID).(uint)

	var req BookConsultationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid request body.")
		return
	}

	cons, err := h.book.Execute(c.Request.Context(), ucConsultation.BookInput{
		StudentID:   studentID,
		ProfessorID: req.ProfessorID,
		Title:       req.Title,
		Description: req.Description,
		Date:        req.Date,
		Time:        req.Time,
		Duration:    req.Duration,
		MeetingLink: req.MeetingLink,
		Location:    req.Location,
	})
	if err != nil {
		writeDomainError(c, err)
		return
	}

	c.JSON(201, cons)
}

// ======================================================
// LIST / GET
// ======================================================

func (h *ConsultationHandler) List(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)
	role := c.MustGet(middleware.ContextUserRole).(string)

	list, err := h.repo.ListForUser(c.Request.Context(), userID, role, c.Query("status"))
	if err != nil {
		writeDomainError(c, err)
		return
	}

	httpresp.List(c, list)
}

func (h *ConsultationHandler) Get(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)

	id, ok := parseID(c)
	if !ok {
		return
	}

	cons, err := h.repo.GetConsultation(c.Request.Context(), id)
	if err != nil {
		writeDomainError(c, err)
		return
	}

	if cons.StudentID != userID && cons.ProfessorID != userID {
		httperr.Forbidden(c, "forbidden", "You do not have access to this consultation.")
		return
	}

	httpresp.OK(c, cons)
}

// ======================================================
// TRANSITIONS
// ======================================================

func (h *ConsultationHandler) Confirm(c *gin.Context) {
	professorID := c.MustGet(middleware.ContextUserID).(uint)

	id, ok := parseID(c)
	if !ok {
		return
	}

	cons, err := h.confirm.Execute(c.Request.Context(), professorID, id)
	if err != nil {
		writeDomainError(c, err)
		return
	}

	httpresp.OK(c, cons)
}

func (h *ConsultationHandler) Cancel(c *gin.Context) {
	actorID := c.MustGet(middleware.ContextUserID).(uint)

	id, ok := parseID(c)
	if !ok {
		return
	}

	var req CancelConsultationRequest
	_ = c.ShouldBindJSON(&req)

	cons, err := h.cancel.Execute(c.Request.Context(), actorID, id, req.Reason)
	if err != nil {
		writeDomainError(c, err)
		return
	}

	httpresp.OK(c, cons)
}

func (h *ConsultationHandler) Reschedule(c *gin.Context) {
	actorID := c.MustGet(middleware.ContextUserID).(uint)

	id, ok := parseID(c)
	if !ok {
		return
	}

	var req RescheduleConsultationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid request body.")
		return
	}

	cons, err := h.reschedule.Execute(c.Request.Context(), ucConsultation.RescheduleInput{
		ActorID:        actorID,
		ConsultationID: id,
		Date:           req.Date,
		Time:           req.Time,
		Duration:       req.Duration,
	})
	if err != nil {
		writeDomainError(c, err)
		return
	}

	httpresp.OK(c, cons)
}

func (h *ConsultationHandler) Complete(c *gin.Context) {
	professorID := c.MustGet(middleware.ContextUserID).(uint)

	id, ok := parseID(c)
	if !ok {
		return
	}

	cons, err := h.complete.Execute(c.Request.Context(), professorID, id)
	if err != nil {
		writeDomainError(c, err)
		return
	}

	httpresp.OK(c, cons)
}

func (h *ConsultationHandler) NoShow(c *gin.Context) {
	professorID := c.MustGet(middleware.ContextUserID).(uint)

	id, ok := parseID(c)
	if !ok {
		return
	}

	cons, err := h.noShow.Execute(c.Request.Context(), professorID, id)
	if err != nil {
		writeDomainError(c, err)
		return
	}

	httpresp.OK(c, cons)
}

// ======================================================
// RATE / NOTES
// ======================================================

func (h *ConsultationHandler) Rate(c *gin.Context) {
	studentID := c.MustGet(middleware.ContextUserID).(uint)

	id, ok := parseID(c)
	if !ok {
		return
	}

	var req RateConsultationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid request body.")
		return
	}

	cons, err := h.rate.Execute(c.Request.Context(), studentID, id, req.Rating, req.Feedback)
	if err != nil {
		writeDomainError(c, err)
		return
	}

	httpresp.OK(c, cons)
}

func (h *ConsultationHandler) Notes(c *gin.Context) {
	professorID := c.MustGet(middleware.ContextUserID).(uint)

	id, ok := parseID(c)
	if !ok {
		return
	}

	var req ConsultationNotesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid request body.")
		return
	}

	cons, err := h.notes.Execute(c.Request.Context(), professorID, id, req.Notes)
	if err != nil {
		writeDomainError(c, err)
		return
	}

	httpresp.OK(c, cons)
}

// ======================================================
// HELPERS
// ======================================================

func parseID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "Invalid id.")
		return 0, false
	}
	return uint(id), true
}
