package postgres

import (
	"context"
	"database/sql"

	"github.com/huandu/go-sqlbuilder"

	"github.com/Chengetanaim/MedicalFraudDetectionBackend/mfd/models"
)

type queryable interface {
	QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row
}

type executable interface {
	ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)
}

const (
	sqlFlavor = sqlbuilder.PostgreSQL
)

// Ensure Repository satisfies the interface
var _ models.Repository = &Repository{}

type Repository struct {
	queryable
	executable
}

func NewRepository(db *sql.DB) *Repository {
	return &Repository{db, db}
}

func NewRepositoryTx(tx *sql.Tx) *Repository {
	return &Repository{tx, tx}
}

var claimColumns = []string{
	"id",
	"renal_disease_indicator",
	"chronic_disease_index",
	"insc_claim_amt_reimbursed",
	"deductible_amt_paid",
	"ip_annual_reimbursement_amt",
	"op_annual_reimbursement_amt",
	"ip_annual_deductible_amt",
	"op_annual_deductible_amt",
	"treatment_intensity_score",
	"prediction",
}

func (r *Repository) CreateClaim(ctx context.Context, claim models.Claim) (*models.Claim, error) {
	query, args := sqlbuilder.Buildf(`INSERT INTO claims
		(renal_disease_indicator, chronic_disease_index, insc_claim_amt_reimbursed,
			deductible_amt_paid, ip_annual_reimbursement_amt, op_annual_reimbursement_amt,
			ip_annual_deductible_amt, op_annual_deductible_amt, treatment_intensity_score,
			prediction) VALUES
		(%s, %s, %s, %s, %s, %s, %s, %s, %s, %s) RETURNING id`,
		string(claim.RenalDiseaseIndicator), claim.ChronicDiseaseIndex, claim.InscClaimAmtReimbursed,
		claim.DeductibleAmtPaid, claim.IPAnnualReimbursementAmt, claim.OPAnnualReimbursementAmt,
		claim.IPAnnualDeductibleAmt, claim.OPAnnualDeductibleAmt, claim.TreatmentIntensityScore,
		string(claim.Prediction)).
		BuildWithFlavor(sqlFlavor)

	var id int64
	if err := r.QueryRowContext(ctx, query, args...).Scan(&id); err != nil {
		return nil, err
	}

	claim.ID = id
	return &claim, nil
}

func (r *Repository) ListClaims(ctx context.Context, offset, limit int) ([]*models.Claim, error) {
	sb := sqlFlavor.NewSelectBuilder()
	sb.Select(claimColumns...)
	sb.From("claims")
	// Insertion order: ids are assigned by an ascending sequence.
	sb.OrderBy("id").Asc()
	sb.Offset(offset).Limit(limit)

	query, args := sb.Build()
	rows, err := r.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var claims []*models.Claim
	for rows.Next() {
		var (
			claim     models.Claim
			indicator string
			verdict   string
		)
		if err = rows.Scan(&claim.ID, &indicator, &claim.ChronicDiseaseIndex,
			&claim.InscClaimAmtReimbursed, &claim.DeductibleAmtPaid,
			&claim.IPAnnualReimbursementAmt, &claim.OPAnnualReimbursementAmt,
			&claim.IPAnnualDeductibleAmt, &claim.OPAnnualDeductibleAmt,
			&claim.TreatmentIntensityScore, &verdict); err != nil {
			return nil, err
		}
		claim.RenalDiseaseIndicator = models.YesNo(indicator)
		claim.Prediction = models.Verdict(verdict)
		claims = append(claims, &claim)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}

	return claims, nil
}

// EnsureClaimsTable creates the claims table if it does not exist. This is
// the entire schema management story; there is no migration path.
func EnsureClaimsTable(ctx context.Context, db *sql.DB) error {
	const query = `CREATE TABLE IF NOT EXISTS claims (
		id BIGSERIAL PRIMARY KEY,
		renal_disease_indicator TEXT NOT NULL,
		chronic_disease_index INTEGER NOT NULL,
		insc_claim_amt_reimbursed DOUBLE PRECISION NOT NULL,
		deductible_amt_paid DOUBLE PRECISION NOT NULL,
		ip_annual_reimbursement_amt DOUBLE PRECISION NOT NULL,
		op_annual_reimbursement_amt DOUBLE PRECISION NOT NULL,
		ip_annual_deductible_amt DOUBLE PRECISION NOT NULL,
		op_annual_deductible_amt DOUBLE PRECISION NOT NULL,
		treatment_intensity_score DOUBLE PRECISION NOT NULL,
		prediction TEXT NOT NULL
	)`

	_, err := db.ExecContext(ctx, query)
	return err
}
