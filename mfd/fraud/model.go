package fraud

import (
	"encoding/json"
	"math"
	"os"
	"sync"
	"time"

	"github.com/pkg/errors"

	"github.com/Chengetanaim/MedicalFraudDetectionBackend/log"
	customErrors "github.com/Chengetanaim/MedicalFraudDetectionBackend/mfd/errors"
	"github.com/Chengetanaim/MedicalFraudDetectionBackend/mfd/models"
)

// SchemaVersion is the only scoring artifact schema this build understands.
const SchemaVersion = 1

// Weight keys accepted in a scoring artifact. RenalDiseaseIndicator
// contributes its coefficient times 1 (Yes) or 0 (No); every other key
// multiplies the claim field of the same name.
const (
	weightRenalDiseaseIndicator    = "RenalDiseaseIndicator"
	weightChronicDiseaseIndex      = "ChronicDiseaseIndex"
	weightInscClaimAmtReimbursed   = "InscClaimAmtReimbursed"
	weightDeductibleAmtPaid        = "DeductibleAmtPaid"
	weightIPAnnualReimbursementAmt = "IPAnnualReimbursementAmt"
	weightOPAnnualReimbursementAmt = "OPAnnualReimbursementAmt"
	weightIPAnnualDeductibleAmt    = "IPAnnualDeductibleAmt"
	weightOPAnnualDeductibleAmt    = "OPAnnualDeductibleAmt"
	weightTreatmentIntensityScore  = "treatment_intensity_score"
)

var knownWeights = map[string]struct{}{
	weightRenalDiseaseIndicator:    {},
	weightChronicDiseaseIndex:      {},
	weightInscClaimAmtReimbursed:   {},
	weightDeductibleAmtPaid:        {},
	weightIPAnnualReimbursementAmt: {},
	weightOPAnnualReimbursementAmt: {},
	weightIPAnnualDeductibleAmt:    {},
	weightOPAnnualDeductibleAmt:    {},
	weightTreatmentIntensityScore:  {},
}

// ScoringModel is the fixed, versioned representation of an externally
// supplied decision function: a linear model over the claim fields with a
// decision threshold. It replaces the upstream practice of deserializing an
// arbitrary callable at request time.
type ScoringModel struct {
	SchemaVersion int                `json:"schema_version"`
	Intercept     float64            `json:"intercept"`
	Threshold     float64            `json:"threshold"`
	Weights       map[string]float64 `json:"weights"`
}

// Validate rejects artifacts this build cannot safely score with.
func (m *ScoringModel) Validate() error {
	if m.SchemaVersion != SchemaVersion {
		return errors.Errorf("unsupported schema_version %d, want %d", m.SchemaVersion, SchemaVersion)
	}
	if len(m.Weights) == 0 {
		return errors.New("weights must not be empty")
	}
	for key, value := range m.Weights {
		if _, ok := knownWeights[key]; !ok {
			return errors.Errorf("unknown weight key %q", key)
		}
		if math.IsNaN(value) || math.IsInf(value, 0) {
			return errors.Errorf("weight %q is not finite", key)
		}
	}
	if math.IsNaN(m.Intercept) || math.IsInf(m.Intercept, 0) {
		return errors.New("intercept is not finite")
	}
	if math.IsNaN(m.Threshold) || math.IsInf(m.Threshold, 0) {
		return errors.New("threshold is not finite")
	}
	return nil
}

// Score computes the linear combination of the claim's fields.
func (m *ScoringModel) Score(claim models.Claim) float64 {
	indicator := 0.0
	if claim.RenalDiseaseIndicator == models.Yes {
		indicator = 1.0
	}

	values := map[string]float64{
		weightRenalDiseaseIndicator:    indicator,
		weightChronicDiseaseIndex:      float64(claim.ChronicDiseaseIndex),
		weightInscClaimAmtReimbursed:   claim.InscClaimAmtReimbursed,
		weightDeductibleAmtPaid:        claim.DeductibleAmtPaid,
		weightIPAnnualReimbursementAmt: claim.IPAnnualReimbursementAmt,
		weightOPAnnualReimbursementAmt: claim.OPAnnualReimbursementAmt,
		weightIPAnnualDeductibleAmt:    claim.IPAnnualDeductibleAmt,
		weightOPAnnualDeductibleAmt:    claim.OPAnnualDeductibleAmt,
		weightTreatmentIntensityScore:  claim.TreatmentIntensityScore,
	}

	score := m.Intercept
	for key, weight := range m.Weights {
		score += weight * values[key]
	}
	return score
}

// Verdict maps a score to the binary outcome.
func (m *ScoringModel) Verdict(claim models.Claim) models.Verdict {
	if m.Score(claim) >= m.Threshold {
		return models.Fraud
	}
	return models.NotFraud
}

// LoadScoringModel reads and validates an artifact from disk.
func LoadScoringModel(path string) (*ScoringModel, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var model ScoringModel
	if err := json.Unmarshal(data, &model); err != nil {
		return nil, errors.Wrap(err, "could not parse scoring model artifact")
	}
	if err := model.Validate(); err != nil {
		return nil, err
	}
	return &model, nil
}

// ModelClassifier classifies claims with a scoring model loaded from an
// artifact file. The parsed model is cached keyed on the file's mtime and
// size, so replacing the artifact between deployments takes effect without
// a restart. Load failures are scoped to the single request.
type ModelClassifier struct {
	path string

	mu      sync.Mutex
	cached  *ScoringModel
	modTime time.Time
	size    int64
}

var _ Classifier = &ModelClassifier{}

func NewModelClassifier(path string) *ModelClassifier {
	return &ModelClassifier{path: path}
}

func (c *ModelClassifier) Classify(claim models.Claim) (models.Verdict, error) {
	model, err := c.load()
	if err != nil {
		return "", &customErrors.ModelArtifactError{Err: err, Path: c.path}
	}
	return model.Verdict(claim), nil
}

func (c *ModelClassifier) load() (*ScoringModel, error) {
	info, err := os.Stat(c.path)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.cached != nil && info.ModTime().Equal(c.modTime) && info.Size() == c.size {
		return c.cached, nil
	}

	model, err := LoadScoringModel(c.path)
	if err != nil {
		return nil, err
	}

	log.Model.WithField("path", c.path).Info("Loaded scoring model artifact.")

	c.cached = model
	c.modTime = info.ModTime()
	c.size = info.Size()
	return model, nil
}

// DefaultScoringModel returns the artifact written by the generate-model
// command. Its weights echo the dominant rule thresholds so a freshly
// bootstrapped deployment behaves close to the rule classifier.
func DefaultScoringModel() *ScoringModel {
	return &ScoringModel{
		SchemaVersion: SchemaVersion,
		Intercept:     0,
		Threshold:     1.0,
		Weights: map[string]float64{
			weightInscClaimAmtReimbursed:   1.0 / 50000,
			weightIPAnnualReimbursementAmt: 0.5 / 100000,
			weightOPAnnualReimbursementAmt: 0.5 / 80000,
			weightTreatmentIntensityScore:  0.3,
		},
	}
}
