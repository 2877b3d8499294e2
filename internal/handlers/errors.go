package handlers

import (
	"errors"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/unidesk/consult-scheduler/internal/httperr"
)

var businessMessages = map[string]string{
	"invalid_state":           "This status change is not allowed for the consultation's current state.",
	"invalid_duration":        "Duration must be between 15 and 240 minutes.",
	"invalid_rating":          "Rating must be between 1 and 5.",
	"cannot_rate":             "Only completed, unrated consultations can be rated.",
	"invalid_date_or_time":    "Invalid date or time.",
	"in_the_past":             "The requested time is in the past.",
	"advance_window_exceeded": "The requested date is beyond the professor's booking window.",
	"professor_not_found":     "Professor not found.",
	"forbidden":               "You do not have access to this consultation.",
}

// writeDomainError maps repository and business errors onto HTTP
// responses.
func writeDomainError(c *gin.Context, err error) {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		httperr.NotFound(c, "not_found", "Resource not found.")
		return
	}

	code := httperr.BusinessCode(err)
	if code == "" {
		httperr.Internal(c, "internal_error", "Something went wrong.")
		return
	}

	msg := businessMessages[code]
	if msg == "" {
		msg = "Request rejected."
	}

	if code == "forbidden" {
		httperr.Forbidden(c, code, msg)
		return
	}

	httperr.BadRequest(c, code, msg)
}
