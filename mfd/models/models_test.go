package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	customErrors "github.com/Chengetanaim/MedicalFraudDetectionBackend/mfd/errors"
)

func ptrStr(s string) *string   { return &s }
func ptrInt(i int) *int         { return &i }
func ptrF64(f float64) *float64 { return &f }

func validSubmission() ClaimSubmission {
	return ClaimSubmission{
		RenalDiseaseIndicator:    ptrStr("Yes"),
		ChronicDiseaseIndex:      ptrInt(2),
		InscClaimAmtReimbursed:   ptrF64(60000),
		DeductibleAmtPaid:        ptrF64(500),
		IPAnnualReimbursementAmt: ptrF64(1000),
		OPAnnualReimbursementAmt: ptrF64(2000),
		IPAnnualDeductibleAmt:    ptrF64(3000),
		OPAnnualDeductibleAmt:    ptrF64(4000),
		TreatmentIntensityScore:  ptrF64(0.1),
	}
}

func TestClaimSubmissionValidate(t *testing.T) {
	t.Run("Valid", func(t *testing.T) {
		s := validSubmission()
		assert.NoError(t, s.Validate())
	})

	t.Run("OptionalScoreMayBeAbsent", func(t *testing.T) {
		s := validSubmission()
		s.TreatmentIntensityScore = nil
		assert.NoError(t, s.Validate())
	})

	t.Run("MissingFieldsReportedByName", func(t *testing.T) {
		s := validSubmission()
		s.RenalDiseaseIndicator = nil
		s.DeductibleAmtPaid = nil

		err := s.Validate()
		require.Error(t, err)
		var ve *customErrors.ValidationError
		require.ErrorAs(t, err, &ve)
		assert.Contains(t, ve.Fields, "RenalDiseaseIndicator")
		assert.Contains(t, ve.Fields, "DeductibleAmtPaid")
		assert.Len(t, ve.Fields, 2)
	})

	t.Run("IndicatorOutsideEnumeration", func(t *testing.T) {
		s := validSubmission()
		s.RenalDiseaseIndicator = ptrStr("Maybe")

		err := s.Validate()
		require.Error(t, err)
		var ve *customErrors.ValidationError
		require.ErrorAs(t, err, &ve)
		assert.Contains(t, ve.Fields, "RenalDiseaseIndicator")
	})

	t.Run("NegativeAmountsRejected", func(t *testing.T) {
		s := validSubmission()
		s.InscClaimAmtReimbursed = ptrF64(-1)
		s.ChronicDiseaseIndex = ptrInt(-3)

		err := s.Validate()
		require.Error(t, err)
		var ve *customErrors.ValidationError
		require.ErrorAs(t, err, &ve)
		assert.Contains(t, ve.Fields, "InscClaimAmtReimbursed")
		assert.Contains(t, ve.Fields, "ChronicDiseaseIndex")
	})
}

// TestToClaimFieldMapping pins the 1:1 mapping between submitted and stored
// fields. The upstream implementation copied the annual deductible inputs
// into the annual reimbursement slots; that mix-up must not come back.
func TestToClaimFieldMapping(t *testing.T) {
	s := validSubmission()
	claim := s.ToClaim()

	assert.Equal(t, Yes, claim.RenalDiseaseIndicator)
	assert.Equal(t, 2, claim.ChronicDiseaseIndex)
	assert.Equal(t, 60000.0, claim.InscClaimAmtReimbursed)
	assert.Equal(t, 500.0, claim.DeductibleAmtPaid)
	assert.Equal(t, 1000.0, claim.IPAnnualReimbursementAmt)
	assert.Equal(t, 2000.0, claim.OPAnnualReimbursementAmt)
	assert.Equal(t, 3000.0, claim.IPAnnualDeductibleAmt)
	assert.Equal(t, 4000.0, claim.OPAnnualDeductibleAmt)
	assert.Equal(t, 0.1, claim.TreatmentIntensityScore)
	assert.Empty(t, claim.Prediction)
}

func TestToClaimDefaultsScore(t *testing.T) {
	s := validSubmission()
	s.TreatmentIntensityScore = nil
	assert.Equal(t, 0.0, s.ToClaim().TreatmentIntensityScore)
}

// TestClaimJSONFieldNames verifies the wire schema keeps the upstream field
// names exactly.
func TestClaimJSONFieldNames(t *testing.T) {
	claim := Claim{ID: 7, RenalDiseaseIndicator: No, Prediction: NotFraud}
	data, err := json.Marshal(claim)
	require.NoError(t, err)

	var m map[string]interface{}
	require.NoError(t, json.Unmarshal(data, &m))
	for _, key := range []string{
		"id",
		"RenalDiseaseIndicator",
		"ChronicDiseaseIndex",
		"InscClaimAmtReimbursed",
		"DeductibleAmtPaid",
		"IPAnnualReimbursementAmt",
		"OPAnnualReimbursementAmt",
		"IPAnnualDeductibleAmt",
		"OPAnnualDeductibleAmt",
		"treatment_intensity_score",
		"prediction",
	} {
		assert.Contains(t, m, key)
	}
	assert.Equal(t, "Not Fraud", m["prediction"])
}

func TestYesNoValid(t *testing.T) {
	assert.True(t, Yes.Valid())
	assert.True(t, No.Valid())
	assert.False(t, YesNo("yes").Valid())
	assert.False(t, YesNo("").Valid())
}
