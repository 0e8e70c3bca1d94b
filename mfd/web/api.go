package web

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/render"

	"github.com/Chengetanaim/MedicalFraudDetectionBackend/log"
	"github.com/Chengetanaim/MedicalFraudDetectionBackend/mfd/constants"
	customErrors "github.com/Chengetanaim/MedicalFraudDetectionBackend/mfd/errors"
	"github.com/Chengetanaim/MedicalFraudDetectionBackend/mfd/fraud"
	"github.com/Chengetanaim/MedicalFraudDetectionBackend/mfd/health"
	"github.com/Chengetanaim/MedicalFraudDetectionBackend/mfd/models"
	"github.com/Chengetanaim/MedicalFraudDetectionBackend/mfd/responseutils"
)

// API holds the collaborators of the request handlers: the claim store and
// the active classifier. Handlers are stateless beyond these.
type API struct {
	repository models.Repository
	classifier fraud.Classifier
	health     health.HealthChecker
}

func NewAPI(repository models.Repository, classifier fraud.Classifier, health health.HealthChecker) *API {
	return &API{repository: repository, classifier: classifier, health: health}
}

// SubmitClaim validates the submitted claim, classifies it, persists the
// record with its verdict, and returns the stored record including the
// generated id.
func (a *API) SubmitClaim(w http.ResponseWriter, r *http.Request) {
	defer r.Body.Close()

	var submission models.ClaimSubmission
	if err := json.NewDecoder(r.Body).Decode(&submission); err != nil {
		oo := responseutils.CreateOutcome(responseutils.Error, responseutils.RequestErr,
			"request body is not a valid claim submission: "+err.Error())
		responseutils.WriteError(oo, w, http.StatusBadRequest)
		return
	}

	if err := submission.Validate(); err != nil {
		var fields map[string]string
		if ve, ok := err.(*customErrors.ValidationError); ok {
			fields = ve.Fields
		}
		oo := responseutils.CreateFieldedOutcome(responseutils.Error, responseutils.ValidationErr,
			"claim submission does not conform to the claim schema", fields)
		responseutils.WriteError(oo, w, http.StatusBadRequest)
		return
	}

	claim := submission.ToClaim()

	verdict, err := a.classifier.Classify(claim)
	if err != nil {
		if _, ok := err.(*customErrors.ModelArtifactError); ok {
			log.API.Error(err)
			oo := responseutils.CreateOutcome(responseutils.Error, responseutils.ModelErr, err.Error())
			responseutils.WriteError(oo, w, http.StatusBadRequest)
			return
		}
		log.API.Error(err)
		oo := responseutils.CreateOutcome(responseutils.Error, responseutils.InternalErr, "could not classify claim")
		responseutils.WriteError(oo, w, http.StatusInternalServerError)
		return
	}
	claim.Prediction = verdict

	stored, err := a.repository.CreateClaim(r.Context(), claim)
	if err != nil {
		log.API.Error(&customErrors.PersistenceError{Err: err, Msg: "could not persist claim"})
		oo := responseutils.CreateOutcome(responseutils.Error, responseutils.DbErr, "could not persist claim")
		responseutils.WriteError(oo, w, http.StatusInternalServerError)
		return
	}

	render.JSON(w, r, stored)
}

// ListClaims returns a page of previously stored claims in insertion order.
func (a *API) ListClaims(w http.ResponseWriter, r *http.Request) {
	offset, limit, err := listParams(r)
	if err != nil {
		oo := responseutils.CreateOutcome(responseutils.Error, responseutils.RequestErr, err.Error())
		responseutils.WriteError(oo, w, http.StatusUnprocessableEntity)
		return
	}

	claims, err := a.repository.ListClaims(r.Context(), offset, limit)
	if err != nil {
		log.API.Error(&customErrors.PersistenceError{Err: err, Msg: "could not list claims"})
		oo := responseutils.CreateOutcome(responseutils.Error, responseutils.DbErr, "could not list claims")
		responseutils.WriteError(oo, w, http.StatusInternalServerError)
		return
	}

	if claims == nil {
		claims = []*models.Claim{}
	}
	render.JSON(w, r, claims)
}

func listParams(r *http.Request) (offset, limit int, err error) {
	offset, err = queryInt(r, "offset", 0)
	if err != nil {
		return 0, 0, err
	}
	if offset < 0 {
		return 0, 0, &customErrors.ValidationError{Msg: "offset must not be negative"}
	}

	limit, err = queryInt(r, "limit", constants.DefaultListLimit)
	if err != nil {
		return 0, 0, err
	}
	if limit < 1 {
		return 0, 0, &customErrors.ValidationError{Msg: "limit must be at least 1"}
	}
	// Rejected, not clamped.
	if limit > constants.MaxListLimit {
		return 0, 0, &customErrors.ValidationError{Msg: "limit must not exceed " + strconv.Itoa(constants.MaxListLimit)}
	}

	return offset, limit, nil
}

func queryInt(r *http.Request, name string, defaultVal int) (int, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return defaultVal, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, &customErrors.ValidationError{Msg: name + " must be an integer"}
	}
	return v, nil
}

func (a *API) HealthCheck(w http.ResponseWriter, r *http.Request) {
	m := make(map[string]string)
	result, ok := a.health.IsDatabaseOK()
	m["database"] = result
	if !ok {
		w.WriteHeader(http.StatusBadGateway)
	}
	render.JSON(w, r, m)
}

func (a *API) GetVersion(w http.ResponseWriter, r *http.Request) {
	render.JSON(w, r, map[string]string{"version": constants.Version})
}
