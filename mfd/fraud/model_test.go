package fraud

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	customErrors "github.com/Chengetanaim/MedicalFraudDetectionBackend/mfd/errors"
	"github.com/Chengetanaim/MedicalFraudDetectionBackend/mfd/models"
)

func writeArtifact(t *testing.T, model *ScoringModel) string {
	t.Helper()

	data, err := json.Marshal(model)
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "model.json")
	require.NoError(t, os.WriteFile(path, data, 0640))
	return path
}

func TestScoringModelValidate(t *testing.T) {
	tests := []struct {
		name    string
		model   ScoringModel
		wantErr bool
	}{
		{
			"Valid",
			ScoringModel{SchemaVersion: 1, Threshold: 0.5, Weights: map[string]float64{"InscClaimAmtReimbursed": 0.0001}},
			false,
		},
		{
			"UnsupportedSchemaVersion",
			ScoringModel{SchemaVersion: 2, Threshold: 0.5, Weights: map[string]float64{"InscClaimAmtReimbursed": 0.0001}},
			true,
		},
		{
			"EmptyWeights",
			ScoringModel{SchemaVersion: 1, Threshold: 0.5},
			true,
		},
		{
			"UnknownWeightKey",
			ScoringModel{SchemaVersion: 1, Threshold: 0.5, Weights: map[string]float64{"NotAClaimField": 1}},
			true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.model.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestScoringModelVerdict(t *testing.T) {
	model := ScoringModel{
		SchemaVersion: 1,
		Intercept:     0,
		Threshold:     1.0,
		Weights: map[string]float64{
			"InscClaimAmtReimbursed": 1.0 / 50000,
			"RenalDiseaseIndicator":  0.2,
		},
	}

	claim := baselineClaim()
	claim.InscClaimAmtReimbursed = 60000
	assert.Equal(t, models.Fraud, model.Verdict(claim))

	claim.InscClaimAmtReimbursed = 10000
	assert.Equal(t, models.NotFraud, model.Verdict(claim))

	// Indicator contributes its weight only for Yes.
	claim.InscClaimAmtReimbursed = 45000
	claim.RenalDiseaseIndicator = models.Yes
	assert.Equal(t, models.Fraud, model.Verdict(claim))
	claim.RenalDiseaseIndicator = models.No
	assert.Equal(t, models.NotFraud, model.Verdict(claim))
}

func TestModelClassifier(t *testing.T) {
	path := writeArtifact(t, &ScoringModel{
		SchemaVersion: 1,
		Threshold:     1.0,
		Weights:       map[string]float64{"InscClaimAmtReimbursed": 1.0 / 50000},
	})
	classifier := NewModelClassifier(path)

	claim := baselineClaim()
	claim.InscClaimAmtReimbursed = 60000

	verdict, err := classifier.Classify(claim)
	assert.NoError(t, err)
	assert.Equal(t, models.Fraud, verdict)

	// Second call comes from the cache and stays consistent.
	verdict, err = classifier.Classify(claim)
	assert.NoError(t, err)
	assert.Equal(t, models.Fraud, verdict)
}

func TestModelClassifierPicksUpReplacedArtifact(t *testing.T) {
	path := writeArtifact(t, &ScoringModel{
		SchemaVersion: 1,
		Threshold:     1.0,
		Weights:       map[string]float64{"InscClaimAmtReimbursed": 1.0 / 50000},
	})
	classifier := NewModelClassifier(path)

	claim := baselineClaim()
	claim.InscClaimAmtReimbursed = 60000

	verdict, err := classifier.Classify(claim)
	require.NoError(t, err)
	require.Equal(t, models.Fraud, verdict)

	// Replace the artifact with one that never crosses the threshold. The
	// mtime must move for the cache to notice.
	replacement := ScoringModel{
		SchemaVersion: 1,
		Threshold:     1000,
		Weights:       map[string]float64{"InscClaimAmtReimbursed": 0.000001},
	}
	data, err := json.Marshal(&replacement)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, data, 0640))
	future := time.Now().Add(2 * time.Second)
	require.NoError(t, os.Chtimes(path, future, future))

	verdict, err = classifier.Classify(claim)
	assert.NoError(t, err)
	assert.Equal(t, models.NotFraud, verdict)
}

func TestModelClassifierArtifactErrors(t *testing.T) {
	t.Run("MissingArtifact", func(t *testing.T) {
		classifier := NewModelClassifier(filepath.Join(t.TempDir(), "missing.json"))
		_, err := classifier.Classify(baselineClaim())
		assert.Error(t, err)
		var artifactErr *customErrors.ModelArtifactError
		assert.ErrorAs(t, err, &artifactErr)
	})

	t.Run("CorruptArtifact", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "model.json")
		require.NoError(t, os.WriteFile(path, []byte("not json"), 0640))

		classifier := NewModelClassifier(path)
		_, err := classifier.Classify(baselineClaim())
		assert.Error(t, err)
		var artifactErr *customErrors.ModelArtifactError
		assert.ErrorAs(t, err, &artifactErr)
	})

	t.Run("InvalidArtifact", func(t *testing.T) {
		path := writeArtifact(t, &ScoringModel{SchemaVersion: 99, Threshold: 1, Weights: map[string]float64{"InscClaimAmtReimbursed": 1}})
		classifier := NewModelClassifier(path)
		_, err := classifier.Classify(baselineClaim())
		assert.Error(t, err)
		var artifactErr *customErrors.ModelArtifactError
		assert.ErrorAs(t, err, &artifactErr)
	})
}

func TestDefaultScoringModel(t *testing.T) {
	model := DefaultScoringModel()
	assert.NoError(t, model.Validate())

	// The default artifact stays roughly in line with the rule set on the
	// dominant reimbursement rule.
	claim := baselineClaim()
	claim.InscClaimAmtReimbursed = 60000
	assert.Equal(t, models.Fraud, model.Verdict(claim))

	assert.Equal(t, models.NotFraud, model.Verdict(baselineClaim()))
}
