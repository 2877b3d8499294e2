package notify

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/unidesk/consult-scheduler/internal/models"
)

func notificationFor(messageType string) *models.Notification {
	consID := uint(7)
	return &models.Notification{
		ID:             1,
		UserID:         1,
		User:           models.User{Name: "Ana Souza", Email: "ana@university.edu"},
		ConsultationID: &consID,
		MessageType:    messageType,
		Consultation: &models.Consultation{
			ID:            consID,
			Title:         "Office hours",
			Student:       models.User{Name: "Ana Souza"},
			Professor:     models.User{Name: "Dr. Lima"},
			ScheduledDate: "2026-09-10",
			ScheduledTime: "14:00",
			Duration:      30,
			Location:      "Room 204",
			MeetingLink:   "https://meet.example.com/abc",
		},
	}
}

func TestRenderCoversEveryMessageType(t *testing.T) {
	types := []string{
		models.MessageBookingCreated,
		models.MessageBookingConfirmed,
		models.MessageReminder24h,
		models.MessageCancelled,
		models.MessageRescheduled,
	}

	for _, mt := range types {
		content, err := Render(notificationFor(mt), "", "UniDesk", "https://unidesk.example.com")
		assert.NoError(t, err, mt)
		assert.NotEmpty(t, content.Subject, mt)
		assert.Contains(t, content.HTMLBody, "Ana Souza", mt)
		assert.Contains(t, content.TextBody, "Ana Souza", mt)
	}
}

func TestRenderBookingCreated(t *testing.T) {
	content, err := Render(notificationFor(models.MessageBookingCreated), "", "UniDesk", "https://unidesk.example.com")
	assert.NoError(t, err)

	assert.Equal(t, "New Consultation Booking", content.Subject)
	assert.Contains(t, content.HTMLBody, "Office hours")
	assert.Contains(t, content.HTMLBody, "Dr. Lima")
	assert.Contains(t, content.HTMLBody, "2026-09-10")
	assert.Contains(t, content.HTMLBody, "14:00")
	assert.Contains(t, content.TextBody, "UniDesk")
}

func TestRenderCancelledWithReason(t *testing.T) {
	content, err := Render(notificationFor(models.MessageCancelled), "professor is travelling", "UniDesk", "https://unidesk.example.com")
	assert.NoError(t, err)

	assert.Contains(t, content.HTMLBody, "professor is travelling")
	assert.Contains(t, content.TextBody, "professor is travelling")
}

func TestRenderCancelledWithoutReason(t *testing.T) {
	content, err := Render(notificationFor(models.MessageCancelled), "", "UniDesk", "https://unidesk.example.com")
	assert.NoError(t, err)

	assert.NotContains(t, content.HTMLBody, "Reason:")
	assert.NotContains(t, content.TextBody, "Reason:")
}

func TestRenderEscapesHTML(t *testing.T) {
	n := notificationFor(models.MessageBookingCreated)
	n.Consultation.Title = "<script>alert(1)</script>"

	content, err := Render(n, "", "UniDesk", "https://unidesk.example.com")
	assert.NoError(t, err)
	assert.NotContains(t, content.HTMLBody, "<script>")
}

func TestRenderUnknownMessageType(t *testing.T) {
	n := notificationFor("SOMETHING_ELSE")
	_, err := Render(n, "", "UniDesk", "https://unidesk.example.com")
	assert.Error(t, err)
}
