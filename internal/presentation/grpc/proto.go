package grpc

// proto.go defines the gRPC service from loanrisk/v1/loanrisk.proto by hand.
// Messages travel with the JSON codec registered in json_codec.go.

import (
	"context"

	grpclib "google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// Full method names.
const (
	LoanRiskServiceName        = "loanrisk.v1.LoanRiskService"
	LoanRiskPredictMethod      = "/loanrisk.v1.LoanRiskService/Predict"
	LoanRiskGetModelInfoMethod = "/loanrisk.v1.LoanRiskService/GetModelInfo"
)

// LoanRiskServiceServer is the server API for LoanRiskService.
type LoanRiskServiceServer interface {
	Predict(context.Context, *PredictRequest) (*PredictResponse, error)
	GetModelInfo(context.Context, *GetModelInfoRequest) (*GetModelInfoResponse, error)
	mustEmbedUnimplementedLoanRiskServiceServer()
}

// UnimplementedLoanRiskServiceServer provides forward-compatible default implementations.
type UnimplementedLoanRiskServiceServer struct{}

func (UnimplementedLoanRiskServiceServer) Predict(context.Context, *PredictRequest) (*PredictResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method Predict not implemented")
}
func (UnimplementedLoanRiskServiceServer) GetModelInfo(context.Context, *GetModelInfoRequest) (*GetModelInfoResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method GetModelInfo not implemented")
}
func (UnimplementedLoanRiskServiceServer) mustEmbedUnimplementedLoanRiskServiceServer() {}

// RegisterLoanRiskServiceServer registers the LoanRiskServiceServer with the gRPC server.
func RegisterLoanRiskServiceServer(s grpclib.ServiceRegistrar, srv LoanRiskServiceServer) {
	s.RegisterService(&_LoanRiskService_serviceDesc, srv)
}

var _LoanRiskService_serviceDesc = grpclib.ServiceDesc{
	ServiceName: LoanRiskServiceName,
	HandlerType: (*LoanRiskServiceServer)(nil),
	Methods: []grpclib.MethodDesc{
		{MethodName: "Predict", Handler: _LoanRiskService_Predict_Handler},
		{MethodName: "GetModelInfo", Handler: _LoanRiskService_GetModelInfo_Handler},
	},
	Streams:  []grpclib.StreamDesc{},
	Metadata: "loanrisk/v1/loanrisk.proto",
}

func _LoanRiskService_Predict_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpclib.UnaryServerInterceptor) (interface{}, error) {
	req := new(PredictRequest)
	if err := dec(req); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(LoanRiskServiceServer).Predict(ctx, req)
	}
	info := &grpclib.UnaryServerInfo{Server: srv, FullMethod: LoanRiskPredictMethod}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(LoanRiskServiceServer).Predict(ctx, req.(*PredictRequest))
	}
	return interceptor(ctx, req, info, handler)
}

func _LoanRiskService_GetModelInfo_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpclib.UnaryServerInterceptor) (interface{}, error) {
	req := new(GetModelInfoRequest)
	if err := dec(req); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(LoanRiskServiceServer).GetModelInfo(ctx, req)
	}
	info := &grpclib.UnaryServerInfo{Server: srv, FullMethod: LoanRiskGetModelInfoMethod}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(LoanRiskServiceServer).GetModelInfo(ctx, req.(*GetModelInfoRequest))
	}
	return interceptor(ctx, req, info, handler)
}

// LoanRiskServiceClient is the client API for LoanRiskService.
type LoanRiskServiceClient struct {
	cc grpclib.ClientConnInterface
}

// NewLoanRiskServiceClient creates a client that speaks the JSON codec.
func NewLoanRiskServiceClient(cc grpclib.ClientConnInterface) *LoanRiskServiceClient {
	return &LoanRiskServiceClient{cc: cc}
}

// Predict scores one applicant.
func (c *LoanRiskServiceClient) Predict(ctx context.Context, in *PredictRequest, opts ...grpclib.CallOption) (*PredictResponse, error) {
	out := new(PredictResponse)
	opts = append([]grpclib.CallOption{grpclib.CallContentSubtype(codecName)}, opts...)
	if err := c.cc.Invoke(ctx, LoanRiskPredictMethod, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

// GetModelInfo describes the serving model.
func (c *LoanRiskServiceClient) GetModelInfo(ctx context.Context, in *GetModelInfoRequest, opts ...grpclib.CallOption) (*GetModelInfoResponse, error) {
	out := new(GetModelInfoResponse)
	opts = append([]grpclib.CallOption{grpclib.CallContentSubtype(codecName)}, opts...)
	if err := c.cc.Invoke(ctx, LoanRiskGetModelInfoMethod, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}
