package fraud

import (
	"github.com/Chengetanaim/MedicalFraudDetectionBackend/mfd/models"
)

// Classifier maps a claim's fields to a fraud verdict. Implementations must
// be safe for unrestricted parallel invocation.
type Classifier interface {
	Classify(claim models.Claim) (models.Verdict, error)
}

// RuleClassifier is the fixed heuristic rule set. It is pure and total:
// every valid claim produces exactly one verdict with no failure mode.
type RuleClassifier struct{}

var _ Classifier = RuleClassifier{}

func (RuleClassifier) Classify(claim models.Claim) (models.Verdict, error) {
	return EvaluateRules(claim), nil
}

// EvaluateRules applies the ordered fraud heuristics, first match wins. The
// comparison operators are load-bearing: every threshold is a strict
// inequality and must stay that way.
func EvaluateRules(claim models.Claim) models.Verdict {
	// Rule 1: High treatment intensity but no chronic disease
	if claim.ChronicDiseaseIndex == 0 && claim.TreatmentIntensityScore > 0.7 {
		return models.Fraud
	}

	// Rule 2: Unusually high reimbursement
	if claim.InscClaimAmtReimbursed > 50000 {
		return models.Fraud
	}

	// Rule 3: Minimal deductible paid but high reimbursement
	if claim.DeductibleAmtPaid < 100 && claim.InscClaimAmtReimbursed > 10000 {
		return models.Fraud
	}

	// Rule 4: Suspicious spikes in annual reimbursements
	if claim.IPAnnualReimbursementAmt > 100000 || claim.OPAnnualReimbursementAmt > 80000 {
		return models.Fraud
	}

	// Rule 5: Deductible manipulation patterns
	if claim.IPAnnualDeductibleAmt < 200 && claim.OPAnnualDeductibleAmt < 200 &&
		(claim.IPAnnualReimbursementAmt+claim.OPAnnualReimbursementAmt) > 50000 {
		return models.Fraud
	}

	return models.NotFraud
}
