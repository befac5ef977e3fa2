package client

import (
	"context"
	"fmt"
	"time"

	"github.com/dmitrijs2005/mesto/internal/common"
	"github.com/dmitrijs2005/mesto/internal/logging"
	"github.com/google/uuid"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/wrapperspb"
)

const (
	authServiceName      = "mesto.auth.v1.AuthService"
	registerMethod       = "/" + authServiceName + "/Register"
	loginMethod          = "/" + authServiceName + "/Login"
	validateTokenMethod  = "/" + authServiceName + "/ValidateToken"
	requestIDMetadataKey = "x-request-id"
)

// GRPCAuthClient is the gRPC flavour of AuthAPI. Messages are protobuf
// well-known types so no generated stubs are needed.
type GRPCAuthClient struct {
	endpointURL string
	conn        *grpc.ClientConn
	cc          grpc.ClientConnInterface
	log         logging.Logger
}

var _ AuthAPI = (*GRPCAuthClient)(nil)

func NewGRPCAuthClient(endpointURL string, log logging.Logger, opts ...grpc.DialOption) (*GRPCAuthClient, error) {
	if log == nil {
		log = logging.Nop()
	}
	c := &GRPCAuthClient{endpointURL: endpointURL, log: log}
	if err := c.initGRPCClient(opts...); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *GRPCAuthClient) initGRPCClient(opts ...grpc.DialOption) error {
	opts = append([]grpc.DialOption{
		grpc.WithTransportCredentials(insecure.NewCredentials()),
		grpc.WithUnaryInterceptor(s.requestIDInterceptor),
	}, opts...)

	conn, err := grpc.NewClient(s.endpointURL, opts...)
	if err != nil {
		return err
	}
	s.conn = conn
	s.cc = conn
	return nil
}

func withAccessToken(ctx context.Context, token string) context.Context {
	md, _ := metadata.FromOutgoingContext(ctx)
	md = md.Copy()
	if md == nil {
		md = metadata.MD{}
	}
	md.Delete(common.AccessTokenHeaderName)
	md.Set(common.AccessTokenHeaderName, token)

	return metadata.NewOutgoingContext(ctx, md)
}

func (s *GRPCAuthClient) requestIDInterceptor(
	ctx context.Context,
	method string,
	req, reply interface{},
	cc *grpc.ClientConn,
	invoker grpc.UnaryInvoker,
	opts ...grpc.CallOption,
) error {
	id := uuid.NewString()
	ctx = metadata.AppendToOutgoingContext(ctx, requestIDMetadataKey, id)

	start := time.Now()
	err := invoker(ctx, method, req, reply, cc, opts...)

	s.log.Debug(ctx, "grpc call", "method", method, "request_id", id,
		"code", status.Code(err).String(), "duration", time.Since(start))
	return err
}

func credentials(email string, password []byte) (*structpb.Struct, error) {
	return structpb.NewStruct(map[string]any{
		"email":    email,
		"password": string(password),
	})
}

func (s *GRPCAuthClient) Register(ctx context.Context, email string, password []byte) error {
	req, err := credentials(email, password)
	if err != nil {
		return &AuthError{Op: "register", Err: err}
	}

	if err := s.cc.Invoke(ctx, registerMethod, req, &emptypb.Empty{}); err != nil {
		return &AuthError{Op: "register", Err: s.mapError(err)}
	}
	return nil
}

func (s *GRPCAuthClient) Login(ctx context.Context, email string, password []byte) (string, error) {
	req, err := credentials(email, password)
	if err != nil {
		return "", &AuthError{Op: "login", Err: err}
	}

	resp := &wrapperspb.StringValue{}
	if err := s.cc.Invoke(ctx, loginMethod, req, resp); err != nil {
		return "", &AuthError{Op: "login", Err: s.mapError(err)}
	}
	if resp.GetValue() == "" {
		return "", &AuthError{Op: "login", Err: common.ErrInvalidToken}
	}
	return resp.GetValue(), nil
}

func (s *GRPCAuthClient) ValidateToken(ctx context.Context, token string) (string, error) {
	ctx = withAccessToken(ctx, token)

	resp := &wrapperspb.StringValue{}
	if err := s.cc.Invoke(ctx, validateTokenMethod, &emptypb.Empty{}, resp); err != nil {
		return "", &AuthError{Op: "validate token", Err: s.mapError(err)}
	}
	if resp.GetValue() == "" {
		return "", &AuthError{Op: "validate token", Err: common.ErrInvalidToken}
	}
	return resp.GetValue(), nil
}

func (s *GRPCAuthClient) Close() error {
	if s.conn == nil {
		return nil
	}
	return s.conn.Close()
}

func (s *GRPCAuthClient) mapError(err error) error {
	if err == nil {
		return nil
	}
	st, _ := status.FromError(err)
	switch st.Code() {
	case codes.Unauthenticated, codes.PermissionDenied:
		return ErrUnauthorized
	case codes.Unavailable, codes.DeadlineExceeded:
		return ErrUnavailable
	case codes.InvalidArgument, codes.AlreadyExists, codes.NotFound:
		return fmt.Errorf("%w: %s", ErrBadRequest, st.Message())
	default:
		return fmt.Errorf("rpc error: %w", err)
	}
}
