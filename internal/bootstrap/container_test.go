package bootstrap

import (
	"context"
	"testing"

	"support-chat-be/pkg/events"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type capturingLogger struct {
	modules  []string
	messages []string
	details  []map[string]interface{}
}

func (l *capturingLogger) Debug(module, message string, details map[string]interface{}) {}
func (l *capturingLogger) Warn(module, message string, details map[string]interface{})  {}
func (l *capturingLogger) Error(module, message string, details map[string]interface{}) {}
func (l *capturingLogger) Sync() error                                                  { return nil }

func (l *capturingLogger) Info(module, message string, details map[string]interface{}) {
	l.modules = append(l.modules, module)
	l.messages = append(l.messages, message)
	l.details = append(l.details, details)
}

func TestDocumentAuditHandlerLogsLifecycleEvents(t *testing.T) {
	logged := &capturingLogger{}
	handler := documentAuditHandler(logged)

	docId := uuid.New()
	err := handler(context.Background(), events.DocumentFailed(docId, "embedding provider unreachable"))
	require.NoError(t, err)

	require.Len(t, logged.details, 1)
	assert.Equal(t, "audit", logged.modules[0])
	assert.Equal(t, events.TypeDocumentFailed, logged.details[0]["type"])

	payload, ok := logged.details[0]["payload"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, docId.String(), payload["document_id"])
}
