package responseutils

import (
	"encoding/json"
	"net/http"

	"github.com/Chengetanaim/MedicalFraudDetectionBackend/log"
	"github.com/Chengetanaim/MedicalFraudDetectionBackend/mfd/constants"
)

// Outcome severities.
const (
	Error   = "error"
	Warning = "warning"
)

// Outcome types, mirroring the error taxonomy of the service.
const (
	RequestErr    = "request_error"
	ValidationErr = "validation_error"
	ModelErr      = "model_error"
	DbErr         = "database_error"
	InternalErr   = "internal_error"
)

// Outcome is the JSON error body returned for every failed request.
type Outcome struct {
	Severity string            `json:"severity"`
	Type     string            `json:"type"`
	Message  string            `json:"message"`
	Fields   map[string]string `json:"fields,omitempty"`
}

func CreateOutcome(severity, outcomeType, message string) *Outcome {
	return &Outcome{Severity: severity, Type: outcomeType, Message: message}
}

func CreateFieldedOutcome(severity, outcomeType, message string, fields map[string]string) *Outcome {
	return &Outcome{Severity: severity, Type: outcomeType, Message: message, Fields: fields}
}

// WriteError serializes the outcome with the given status code. Encoding
// failures are logged rather than surfaced; the status line has already
// been committed by then.
func WriteError(outcome *Outcome, w http.ResponseWriter, statusCode int) {
	w.Header().Set("Content-Type", constants.ContentTypeJSON)
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(outcome); err != nil {
		log.API.Errorf("Failed to write error outcome %s", err.Error())
	}
}
