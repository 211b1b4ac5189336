package grpc

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/samilasagitarahman/Resiko-Keterlambatan-Pembayaran-Kredit/internal/application/dto"
	"github.com/samilasagitarahman/Resiko-Keterlambatan-Pembayaran-Kredit/internal/application/usecase"
	"github.com/samilasagitarahman/Resiko-Keterlambatan-Pembayaran-Kredit/pkg/auth"
)

// Compile-time assertion that LoanRiskHandler implements LoanRiskServiceServer.
var _ LoanRiskServiceServer = (*LoanRiskHandler)(nil)

// LoanRiskHandler implements the gRPC LoanRiskServiceServer interface.
type LoanRiskHandler struct {
	UnimplementedLoanRiskServiceServer
	predictDefault *usecase.PredictDefault
	modelInfo      dto.ModelInfo
	logger         *slog.Logger
}

// NewLoanRiskHandler creates a new gRPC handler.
func NewLoanRiskHandler(predictDefault *usecase.PredictDefault, modelInfo dto.ModelInfo, logger *slog.Logger) *LoanRiskHandler {
	return &LoanRiskHandler{
		predictDefault: predictDefault,
		modelInfo:      modelInfo,
		logger:         logger,
	}
}

// Proto-aligned request/response message types.

// PredictRequest represents the proto PredictRequest message.
type PredictRequest struct {
	Age         int32   `json:"age"`
	Income      float64 `json:"income"`
	LoanAmount  float64 `json:"loan_amount"`
	CreditScore float64 `json:"credit_score"`
}

// PredictResponse represents the proto PredictResponse message.
type PredictResponse struct {
	PredictionID       string  `json:"prediction_id"`
	DefaultPrediction  int32   `json:"default_prediction"`
	DefaultProbability float64 `json:"default_probability"`
	RiskLevel          string  `json:"risk_level"`
	ThresholdUsed      float64 `json:"threshold_used"`
}

// GetModelInfoRequest represents the proto GetModelInfoRequest message.
type GetModelInfoRequest struct{}

// GetModelInfoResponse represents the proto GetModelInfoResponse message.
type GetModelInfoResponse struct {
	Source    string  `json:"source"`
	Path      string  `json:"path"`
	LoadedAt  string  `json:"loaded_at"`
	Accuracy  float64 `json:"accuracy,omitempty"`
	TrainRows int32   `json:"train_rows,omitempty"`
	TestRows  int32   `json:"test_rows,omitempty"`
}

// Predict scores a loan applicant.
func (h *LoanRiskHandler) Predict(ctx context.Context, req *PredictRequest) (*PredictResponse, error) {
	if req == nil {
		return nil, status.Error(codes.InvalidArgument, "request is required")
	}

	result, err := h.predictDefault.Execute(ctx, dto.PredictRequest{
		Age:         int(req.Age),
		Income:      req.Income,
		LoanAmount:  req.LoanAmount,
		CreditScore: req.CreditScore,
	})
	if errors.Is(err, usecase.ErrInvalidApplicant) {
		return nil, status.Error(codes.InvalidArgument, err.Error())
	}
	if err != nil {
		h.logger.ErrorContext(ctx, "prediction failed",
			slog.String("caller", callerFromContext(ctx)),
			slog.String("error", err.Error()),
		)
		return nil, status.Error(codes.Internal, "internal error")
	}

	return &PredictResponse{
		PredictionID:       result.PredictionID.String(),
		DefaultPrediction:  int32(result.DefaultPrediction),
		DefaultProbability: result.DefaultProbability,
		RiskLevel:          result.RiskLevel,
		ThresholdUsed:      result.ThresholdUsed,
	}, nil
}

// GetModelInfo reports how the serving model was obtained.
func (h *LoanRiskHandler) GetModelInfo(_ context.Context, _ *GetModelInfoRequest) (*GetModelInfoResponse, error) {
	resp := &GetModelInfoResponse{
		Source:    h.modelInfo.Source,
		Path:      h.modelInfo.Path,
		LoadedAt:  h.modelInfo.LoadedAt.Format(time.RFC3339),
		TrainRows: int32(h.modelInfo.TrainRows),
		TestRows:  int32(h.modelInfo.TestRows),
	}
	if h.modelInfo.Accuracy != nil {
		resp.Accuracy = *h.modelInfo.Accuracy
	}
	return resp, nil
}

func callerFromContext(ctx context.Context) string {
	if claims, ok := auth.ClaimsFromContext(ctx); ok {
		return claims.Subject
	}
	return "anonymous"
}
