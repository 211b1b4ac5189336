package dto

import (
	"time"

	"github.com/google/uuid"

	"github.com/samilasagitarahman/Resiko-Keterlambatan-Pembayaran-Kredit/internal/domain/model"
)

// PredictRequest is the input DTO for the PredictDefault use case.
type PredictRequest struct {
	Age         int
	Income      float64
	LoanAmount  float64
	CreditScore float64
}

// PredictResponse is the output DTO of a prediction.
type PredictResponse struct {
	PredictionID       uuid.UUID `json:"-"`
	DefaultPrediction  int       `json:"default_prediction"`
	DefaultProbability float64   `json:"default_probability"`
	RiskLevel          string    `json:"risk_level"`
	ThresholdUsed      float64   `json:"threshold_used"`
}

// FromAssessment maps a scored assessment to the response DTO. The
// probability is rounded here, after classification.
func FromAssessment(a *model.DefaultAssessment) PredictResponse {
	res := a.Result()
	return PredictResponse{
		PredictionID:       a.ID(),
		DefaultPrediction:  res.Decision.Int(),
		DefaultProbability: res.DisplayProbability(),
		RiskLevel:          res.RiskLevel.String(),
		ThresholdUsed:      res.ThresholdUsed,
	}
}

// Model sources reported in ModelInfo.
const (
	ModelSourceArtifact = "artifact"
	ModelSourceTrained  = "trained"
	ModelSourceONNX     = "onnx"
)

// ModelInfo describes how the serving classifier was obtained.
type ModelInfo struct {
	LoadedAt  time.Time `json:"loaded_at"`
	Source    string    `json:"source"`
	Path      string    `json:"path"`
	Accuracy  *float64  `json:"accuracy,omitempty"`
	TrainRows int       `json:"train_rows,omitempty"`
	TestRows  int       `json:"test_rows,omitempty"`
}
