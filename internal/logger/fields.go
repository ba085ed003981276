package logger

import (
	"strings"

	"go.uber.org/zap"
)

const (
	FieldProvider = "ai_provider"
	FieldModel    = "ai_model"
	FieldCommand  = "command"
	FieldAPIURL   = "api_url"
	FieldEmployee = "employee_id"
)

// ForCommand scopes a session logger to the running command and the backend
// it talks to.
func ForCommand(log *zap.Logger, command, apiURL string) *zap.Logger {
	return scoped(log, FieldCommand, command, FieldAPIURL, apiURL)
}

// ForModel scopes a logger to an AI provider and model.
func ForModel(log *zap.Logger, provider, model string) *zap.Logger {
	return scoped(log, FieldProvider, provider, FieldModel, model)
}

// Employee identifies the engineer a log entry is about.
func Employee(id int) zap.Field {
	return zap.Int(FieldEmployee, id)
}

// scoped attaches key/value pairs with blank values left out. A nil log
// becomes a no-op logger.
func scoped(log *zap.Logger, pairs ...string) *zap.Logger {
	if log == nil {
		log = zap.NewNop()
	}

	fields := make([]zap.Field, 0, len(pairs)/2)
	for i := 0; i+1 < len(pairs); i += 2 {
		if value := strings.TrimSpace(pairs[i+1]); value != "" {
			fields = append(fields, zap.String(pairs[i], value))
		}
	}

	if len(fields) == 0 {
		return log
	}
	return log.With(fields...)
}
