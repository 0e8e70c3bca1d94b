package models

import (
	"fmt"

	customErrors "github.com/Chengetanaim/MedicalFraudDetectionBackend/mfd/errors"
)

// Verdict is the binary fraud classification outcome attached to every
// stored claim.
type Verdict string

const (
	Fraud    Verdict = "Fraud"
	NotFraud Verdict = "Not Fraud"
)

// YesNo is the closed enumeration used for the renal disease indicator. The
// upstream data set carried it as free-form text; the API narrows it to the
// two values the classifier understands.
type YesNo string

const (
	Yes YesNo = "Yes"
	No  YesNo = "No"
)

func (y YesNo) Valid() bool {
	return y == Yes || y == No
}

// Claim is one medical-insurance reimbursement record together with its
// fraud verdict. Claims are immutable once stored; Prediction is always
// derived by the classifier at creation time and never supplied by callers.
type Claim struct {
	ID                       int64   `json:"id"`
	RenalDiseaseIndicator    YesNo   `json:"RenalDiseaseIndicator"`
	ChronicDiseaseIndex      int     `json:"ChronicDiseaseIndex"`
	InscClaimAmtReimbursed   float64 `json:"InscClaimAmtReimbursed"`
	DeductibleAmtPaid        float64 `json:"DeductibleAmtPaid"`
	IPAnnualReimbursementAmt float64 `json:"IPAnnualReimbursementAmt"`
	OPAnnualReimbursementAmt float64 `json:"OPAnnualReimbursementAmt"`
	IPAnnualDeductibleAmt    float64 `json:"IPAnnualDeductibleAmt"`
	OPAnnualDeductibleAmt    float64 `json:"OPAnnualDeductibleAmt"`
	TreatmentIntensityScore  float64 `json:"treatment_intensity_score"`
	Prediction               Verdict `json:"prediction"`
}

// ClaimSubmission is the inbound request payload. Pointer fields distinguish
// "absent" from zero values so missing fields can be reported by name;
// treatment_intensity_score is the only optional field and defaults to 0.0.
type ClaimSubmission struct {
	RenalDiseaseIndicator    *string  `json:"RenalDiseaseIndicator"`
	ChronicDiseaseIndex      *int     `json:"ChronicDiseaseIndex"`
	InscClaimAmtReimbursed   *float64 `json:"InscClaimAmtReimbursed"`
	DeductibleAmtPaid        *float64 `json:"DeductibleAmtPaid"`
	IPAnnualReimbursementAmt *float64 `json:"IPAnnualReimbursementAmt"`
	OPAnnualReimbursementAmt *float64 `json:"OPAnnualReimbursementAmt"`
	IPAnnualDeductibleAmt    *float64 `json:"IPAnnualDeductibleAmt"`
	OPAnnualDeductibleAmt    *float64 `json:"OPAnnualDeductibleAmt"`
	TreatmentIntensityScore  *float64 `json:"treatment_intensity_score"`
}

const (
	msgRequired    = "field is required"
	msgNonNegative = "must not be negative"
)

// Validate checks the submission against the claim schema and reports every
// offending field at once.
func (s *ClaimSubmission) Validate() error {
	fields := make(map[string]string)

	if s.RenalDiseaseIndicator == nil {
		fields["RenalDiseaseIndicator"] = msgRequired
	} else if !YesNo(*s.RenalDiseaseIndicator).Valid() {
		fields["RenalDiseaseIndicator"] = fmt.Sprintf("must be %q or %q", Yes, No)
	}

	if s.ChronicDiseaseIndex == nil {
		fields["ChronicDiseaseIndex"] = msgRequired
	} else if *s.ChronicDiseaseIndex < 0 {
		fields["ChronicDiseaseIndex"] = msgNonNegative
	}

	amounts := map[string]*float64{
		"InscClaimAmtReimbursed":   s.InscClaimAmtReimbursed,
		"DeductibleAmtPaid":        s.DeductibleAmtPaid,
		"IPAnnualReimbursementAmt": s.IPAnnualReimbursementAmt,
		"OPAnnualReimbursementAmt": s.OPAnnualReimbursementAmt,
		"IPAnnualDeductibleAmt":    s.IPAnnualDeductibleAmt,
		"OPAnnualDeductibleAmt":    s.OPAnnualDeductibleAmt,
	}
	for name, value := range amounts {
		if value == nil {
			fields[name] = msgRequired
		} else if *value < 0 {
			fields[name] = msgNonNegative
		}
	}

	if len(fields) > 0 {
		return &customErrors.ValidationError{Msg: "claim submission does not conform to the claim schema", Fields: fields}
	}

	return nil
}

// ToClaim builds the transient claim to be classified and persisted. Every
// submitted field maps to the field of the same name; the upstream
// implementation populated the annual reimbursement slots from the annual
// deductible inputs, which is treated here as a defect rather than intent.
func (s *ClaimSubmission) ToClaim() Claim {
	score := 0.0
	if s.TreatmentIntensityScore != nil {
		score = *s.TreatmentIntensityScore
	}

	return Claim{
		RenalDiseaseIndicator:    YesNo(*s.RenalDiseaseIndicator),
		ChronicDiseaseIndex:      *s.ChronicDiseaseIndex,
		InscClaimAmtReimbursed:   *s.InscClaimAmtReimbursed,
		DeductibleAmtPaid:        *s.DeductibleAmtPaid,
		IPAnnualReimbursementAmt: *s.IPAnnualReimbursementAmt,
		OPAnnualReimbursementAmt: *s.OPAnnualReimbursementAmt,
		IPAnnualDeductibleAmt:    *s.IPAnnualDeductibleAmt,
		OPAnnualDeductibleAmt:    *s.OPAnnualDeductibleAmt,
		TreatmentIntensityScore:  score,
	}
}
