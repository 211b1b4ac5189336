package rest

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math"
	"net/http"

	"github.com/samilasagitarahman/Resiko-Keterlambatan-Pembayaran-Kredit/internal/application/dto"
	"github.com/samilasagitarahman/Resiko-Keterlambatan-Pembayaran-Kredit/internal/application/usecase"
)

const maxBodyBytes = 1 << 20

// StatusResponse is returned by GET /.
type StatusResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

// predictFields lists the required request keys. Keys match exactly;
// lowercase look-alikes count as missing.
var predictFields = []string{"Age", "Income", "LoanAmount", "CreditScore"}

// decodePredictRequest reads exactly one JSON object from r and maps it onto
// a PredictRequest. Unknown keys are ignored.
func decodePredictRequest(r io.Reader) (dto.PredictRequest, error) {
	dec := json.NewDecoder(r)
	var body map[string]json.RawMessage
	if err := dec.Decode(&body); err != nil {
		return dto.PredictRequest{}, fmt.Errorf("invalid request body: %w", err)
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return dto.PredictRequest{}, errors.New("invalid request body: unexpected data after JSON object")
	}

	var missing []string
	for _, name := range predictFields {
		if raw, ok := body[name]; !ok || string(raw) == "null" {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		return dto.PredictRequest{}, fmt.Errorf("missing required field(s): %v", missing)
	}

	var (
		req dto.PredictRequest
		age float64
	)
	for _, f := range []struct {
		name string
		dst  *float64
	}{
		{"Age", &age},
		{"Income", &req.Income},
		{"LoanAmount", &req.LoanAmount},
		{"CreditScore", &req.CreditScore},
	} {
		if err := json.Unmarshal(body[f.name], f.dst); err != nil {
			return dto.PredictRequest{}, fmt.Errorf("field %s: must be a number", f.name)
		}
	}

	if math.Trunc(age) != age || age < math.MinInt32 || age > math.MaxInt32 {
		return dto.PredictRequest{}, errors.New("field Age: must be an integer")
	}
	req.Age = int(age)
	return req, nil
}

// PredictionHandler serves the public prediction API.
type PredictionHandler struct {
	predictDefault *usecase.PredictDefault
	logger         *slog.Logger
}

// NewPredictionHandler creates a new prediction handler.
func NewPredictionHandler(predictDefault *usecase.PredictDefault, logger *slog.Logger) *PredictionHandler {
	return &PredictionHandler{predictDefault: predictDefault, logger: logger}
}

// RegisterRoutes registers the prediction endpoints on the provided ServeMux.
func (h *PredictionHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET /{$}", h.Status)
	mux.HandleFunc("POST /predict", h.Predict)
}

// Status handles GET /.
func (h *PredictionHandler) Status(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, StatusResponse{
		Status:  "OK",
		Message: "Loan Default Prediction API is running (FINAL)",
	})
}

// Predict handles POST /predict.
func (h *PredictionHandler) Predict(w http.ResponseWriter, r *http.Request) {
	req, err := decodePredictRequest(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	resp, err := h.predictDefault.Execute(r.Context(), req)
	if errors.Is(err, usecase.ErrInvalidApplicant) {
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}
	if err != nil {
		h.logger.ErrorContext(r.Context(), "prediction failed", slog.String("error", err.Error()))
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	writeJSON(w, http.StatusOK, resp)
}
