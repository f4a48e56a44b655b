package message_test

import (
	"testing"
	"time"

	"orchestrator/internal/core/domain/model/kernel"
	"orchestrator/internal/core/domain/model/message"
	"orchestrator/internal/core/domain/model/ticket"
	"orchestrator/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewMessage_Valid(t *testing.T) {
	id := kernel.NewUUID()
	now := time.Now().UTC()

	record, err := message.NewMessage(
		id, message.RoleSystem, "user_provided", ticket.Payload{"name": "ACME"}, now, "trace-1")
	require.NoError(t, err)
	require.NoError(t, record.Validate())

	assert.True(t, id.IsEqual(record.TicketID()))
	assert.Equal(t, message.RoleSystem, record.Role())
	assert.Equal(t, "user_provided", record.Text())
	assert.Equal(t, ticket.Payload{"name": "ACME"}, record.ExtractedFields())
	assert.Equal(t, now, record.Ts())
	assert.Equal(t, "trace-1", record.TraceID())
	assert.Nil(t, record.DetectedLang())
	assert.Nil(t, record.Attachments())
}

func TestNewMessage_RequiredParams(t *testing.T) {
	id := kernel.NewUUID()
	now := time.Now().UTC()

	_, err := message.NewMessage(id, "", "text", nil, now, "trace-1")
	require.ErrorIs(t, err, errs.ErrValueIsRequired)

	_, err = message.NewMessage(id, message.RoleSystem, "", nil, now, "trace-1")
	require.ErrorIs(t, err, errs.ErrValueIsRequired)

	_, err = message.NewMessage(id, message.RoleSystem, "text", nil, time.Time{}, "trace-1")
	require.ErrorIs(t, err, errs.ErrValueIsRequired)

	_, err = message.NewMessage(id, message.RoleSystem, "text", nil, now, "")
	require.ErrorIs(t, err, errs.ErrValueIsRequired)
}

func TestMessage_Builders(t *testing.T) {
	record, err := message.NewMessage(
		kernel.NewUUID(), message.RoleSystem, "file_uploaded", nil, time.Now().UTC(), "trace-2")
	require.NoError(t, err)

	enriched := record.WithDetectedLang("en").WithAttachments([]string{"bl.pdf"})

	require.NotNil(t, enriched.DetectedLang())
	assert.Equal(t, "en", *enriched.DetectedLang())
	assert.Equal(t, []string{"bl.pdf"}, enriched.Attachments())

	// the original record is unchanged
	assert.Nil(t, record.DetectedLang())
	assert.Nil(t, record.Attachments())
}

func TestMessage_UnconstructedFailsValidation(t *testing.T) {
	var record message.Message
	require.Error(t, record.Validate())
}
