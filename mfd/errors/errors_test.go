package errors

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidationErrorMessage(t *testing.T) {
	err := &ValidationError{Msg: "invalid claim submission"}
	assert.Equal(t, "Validation Error. Msg: invalid claim submission", err.Error())

	err.Fields = map[string]string{
		"DeductibleAmtPaid":     "is required",
		"RenalDiseaseIndicator": "must be Yes or No",
	}
	// Field details come out in a stable order.
	assert.Equal(t,
		"Validation Error. Msg: invalid claim submission, Fields: DeductibleAmtPaid: is required; RenalDiseaseIndicator: must be Yes or No",
		err.Error())
}

func TestModelArtifactErrorUnwrap(t *testing.T) {
	cause := errors.New("unexpected end of JSON input")
	err := &ModelArtifactError{Err: cause, Path: "/etc/mfd/model.json"}

	assert.Contains(t, err.Error(), "/etc/mfd/model.json")
	assert.Contains(t, err.Error(), cause.Error())
	assert.ErrorIs(t, err, cause)
}

func TestPersistenceErrorUnwrap(t *testing.T) {
	cause := errors.New("connection refused")
	err := &PersistenceError{Err: cause, Msg: "failed to create claim"}

	assert.Contains(t, err.Error(), "failed to create claim")
	assert.ErrorIs(t, err, cause)
}
