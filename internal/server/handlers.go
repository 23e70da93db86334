package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/jonathan/success-predictor/internal/cache"
	"github.com/jonathan/success-predictor/internal/logging"
	"github.com/jonathan/success-predictor/internal/metrics"
	"github.com/jonathan/success-predictor/internal/types"
)

// maxBodyBytes bounds request bodies; a questionnaire is a few kilobytes.
const maxBodyBytes = 1 << 20

// MessageResponse is the body of the ping and demo endpoints.
type MessageResponse struct {
	Message string `json:"message"`
}

// ValidationResponse is the body of POST /api/assessment/validate.
type ValidationResponse struct {
	Valid  bool               `json:"valid"`
	Errors []types.FieldError `json:"errors"`
}

// handlePrediction scores a questionnaire
func (s *Server) handlePrediction(w http.ResponseWriter, r *http.Request) {
	log := s.requestLogger(r)

	in, err := decodeAssessment(w, r)
	if err != nil {
		s.writeError(w, log, err)
		return
	}

	if missing := in.MissingRequiredFields(); len(missing) > 0 {
		log.Info("prediction rejected", logging.Fields{"missing": fieldList(missing)})
		s.writeError(w, log, missingFieldsError(missing))
		return
	}

	if cached := s.lookupCache(r.Context(), log, in); cached != nil {
		s.jsonResponse(w, http.StatusOK, cached)
		return
	}

	result, err := s.safePredict(in)
	if err != nil {
		s.writeError(w, log, err)
		return
	}
	s.metrics.ObservePrediction(string(result.Category), result.SuccessProbability)
	s.storeCache(r.Context(), log, in, result)

	s.jsonResponse(w, http.StatusOK, result)
}

// decodeAssessment parses the request body. Syntax errors are the client's fault;
// a body whose values have the wrong JSON types is reported as an internal error.
func decodeAssessment(w http.ResponseWriter, r *http.Request) (types.AssessmentInput, error) {
	var in types.AssessmentInput

	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		return in, &ErrMalformedInput{Cause: err}
	}

	if err := json.Unmarshal(body, &in); err != nil {
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) {
			return in, &ErrInternal{Op: "decoding assessment", Cause: err}
		}
		return in, &ErrMalformedInput{Cause: err}
	}
	return in, nil
}

// safePredict runs the engine, converting a panic into ErrInternal.
func (s *Server) safePredict(in types.AssessmentInput) (result types.PredictionResult, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			err = &ErrInternal{Op: "prediction", Cause: fmt.Errorf("panic: %v", rec)}
		}
	}()
	return s.predict(in), nil
}

func (s *Server) lookupCache(ctx context.Context, log logging.Logger, in types.AssessmentInput) *types.PredictionResult {
	if s.cache == nil {
		return nil
	}
	result, err := s.cache.Get(ctx, in)
	switch {
	case err == nil:
		s.metrics.ObserveCache(metrics.CacheHit)
		s.metrics.ObservePrediction(string(result.Category), result.SuccessProbability)
		return result
	case errors.Is(err, cache.ErrMiss):
		s.metrics.ObserveCache(metrics.CacheMiss)
	default:
		s.metrics.ObserveCache(metrics.CacheError)
		log.WithError(err).Warn("prediction cache lookup failed", nil)
	}
	return nil
}

func (s *Server) storeCache(ctx context.Context, log logging.Logger, in types.AssessmentInput, result types.PredictionResult) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Set(ctx, in, result); err != nil {
		log.WithError(err).Warn("prediction cache store failed", nil)
	}
}

// handleValidateAssessment checks one questionnaire step, or the whole record when
// no step is given.
func (s *Server) handleValidateAssessment(w http.ResponseWriter, r *http.Request) {
	step := 0
	if raw := r.URL.Query().Get("step"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 || n > types.QuestionnaireSteps {
			s.errorResponse(w, http.StatusBadRequest,
				fmt.Sprintf("Invalid step %q: must be between 1 and %d", raw, types.QuestionnaireSteps))
			return
		}
		step = n
	}

	var in types.AssessmentInput
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err == nil {
		err = json.Unmarshal(body, &in)
	}
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, (&ErrMalformedInput{Cause: err}).Error())
		return
	}

	if step == 0 {
		err = in.Validate()
	} else {
		err = in.ValidateStep(step)
	}

	resp := ValidationResponse{Valid: true, Errors: []types.FieldError{}}
	var verr *types.ValidationError
	switch {
	case err == nil:
	case errors.As(err, &verr):
		resp.Valid = false
		resp.Errors = verr.Errors
	default:
		s.writeError(w, s.requestLogger(r), &ErrInternal{Op: "validation", Cause: err})
		return
	}
	s.jsonResponse(w, http.StatusOK, resp)
}

// handlePing returns the configured ping message
func (s *Server) handlePing(w http.ResponseWriter, _ *http.Request) {
	s.jsonResponse(w, http.StatusOK, MessageResponse{Message: s.cfg.Ping.Message})
}

// handleDemo returns a fixed demo message
func (s *Server) handleDemo(w http.ResponseWriter, _ *http.Request) {
	s.jsonResponse(w, http.StatusOK, MessageResponse{Message: "Hello from Express server"})
}

// handleHealth returns server health status
func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	s.jsonResponse(w, http.StatusOK, map[string]string{"status": "ok"})
}

// writeError maps err to a status and message; 5xx details are logged, not returned.
func (s *Server) writeError(w http.ResponseWriter, log logging.Logger, err error) {
	status := HTTPStatus(err)
	if status >= http.StatusInternalServerError {
		log.WithError(err).Error("prediction request failed", nil)
	}
	s.errorResponse(w, status, PublicMessage(err))
}

// jsonResponse writes a JSON response
func (s *Server) jsonResponse(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		s.logger.WithError(err).Error("failed to encode JSON response", nil)
	}
}

// errorResponse writes an error JSON response
func (s *Server) errorResponse(w http.ResponseWriter, status int, message string) {
	s.jsonResponse(w, status, map[string]string{"error": message})
}
