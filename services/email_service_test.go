package services

import (
	"testing"
	"time"

	"society-intake-api/models"

	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleApplication() *models.Application {
	return &models.Application{
		ID:              1,
		ReferenceNumber: "SBS20240115ABCD1234",
		FullName:        "Abdul Karim",
		Email:           "karim@example.com",
		Status:          models.StatusPending,
		Category:        models.Category{Name: "Tube Well Project"},
		CreatedAt:       time.Date(2024, 1, 15, 10, 30, 0, 0, time.UTC),
	}
}

func TestStatusColor(t *testing.T) {
	assert.Equal(t, "#ffc107", StatusColor(models.StatusPending))
	assert.Equal(t, "#17a2b8", StatusColor(models.StatusInProgress))
	assert.Equal(t, "#28a745", StatusColor(models.StatusApproved))
	assert.Equal(t, "#dc3545", StatusColor(models.StatusRejected))
	assert.Equal(t, "#6c757d", StatusColor("Whatever"))
}

func TestConfirmationBody(t *testing.T) {
	app := sampleApplication()
	body := NewEmailService().ConfirmationBody(app)

	assert.Contains(t, body, "Dear Abdul Karim,")
	assert.Contains(t, body, "SBS20240115ABCD1234")
	assert.Contains(t, body, "Tube Well Project")
	assert.Contains(t, body, "January 15, 2024 at 10:30 AM")
	assert.Contains(t, body, "Pending")
	assert.Contains(t, body, "The attached PDF contains your complete application details")
}

func TestStatusUpdateBody(t *testing.T) {
	app := sampleApplication()
	body := NewEmailService().StatusUpdateBody(app, models.StatusPending, models.StatusApproved)

	assert.Contains(t, body, "Dear Abdul Karim,")
	assert.Contains(t, body, "SBS20240115ABCD1234")
	assert.Contains(t, body, "<td>Pending</td>")
	assert.Contains(t, body, "Approved")
	// Badge carries the color of the new status.
	assert.Contains(t, body, "#28a745")
}

func TestLogModeDeliveryNeverFails(t *testing.T) {
	t.Setenv("MAIL_MODE", "log")
	hook := test.NewGlobal()
	defer hook.Reset()

	app := sampleApplication()
	svc := NewEmailService()

	require.NoError(t, svc.SendApplicationConfirmation(app, []byte("%PDF-1.4 fake")))
	require.NoError(t, svc.SendStatusUpdate(app, models.StatusPending, models.StatusApproved))

	entries := hook.AllEntries()
	require.Len(t, entries, 2)
	assert.Equal(t, "email sent (log mode)", entries[0].Message)
	assert.Equal(t, "karim@example.com", entries[0].Data["to"])
	assert.Equal(t, "Application Confirmation - SBS20240115ABCD1234", entries[0].Data["subject"])
	assert.Equal(t, "Application Status Update - SBS20240115ABCD1234", entries[1].Data["subject"])
}
