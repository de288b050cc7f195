package sessionauth

import (
	"context"
	"time"

	"github.com/google/uuid"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
)

// UnaryServerInterceptor returns a gRPC unary interceptor enforcing session
// authentication for internal collaborators (the CRUD resource services).
// The token travels as bearer metadata rather than a cookie. Methods listed
// in publicMethods (full method names, e.g. "/school.Health/Check") skip
// authentication, mirroring the HTTP policy table's public marker.
func UnaryServerInterceptor(cfg *Config, publicMethods ...string) grpc.UnaryServerInterceptor {
	public := make(map[string]bool, len(publicMethods))
	for _, m := range publicMethods {
		public[m] = true
	}

	return func(
		ctx context.Context,
		req interface{},
		info *grpc.UnaryServerInfo,
		handler grpc.UnaryHandler,
	) (interface{}, error) {
		if public[info.FullMethod] {
			return handler(ctx, req)
		}

		startTime := time.Now()
		requestID := uuid.New().String()

		md, ok := metadata.FromIncomingContext(ctx)
		if !ok {
			logGRPCFailure(cfg, requestID, info.FullMethod, "", NewAuthError(ErrMissingToken, "metadata not found", nil), time.Since(startTime))
			return nil, status.Error(codes.Unauthenticated, "metadata not found")
		}

		token, err := tokenFromMetadata(md)
		if err != nil {
			logGRPCFailure(cfg, requestID, info.FullMethod, token, err, time.Since(startTime))
			return nil, status.Error(codes.Unauthenticated, errorCode(err))
		}

		claims, err := parseAndValidate(token, cfg)
		if err != nil {
			logGRPCFailure(cfg, requestID, info.FullMethod, token, err, time.Since(startTime))
			return nil, status.Error(codes.Unauthenticated, errorCode(err))
		}

		ctx = WithIdentity(ctx, &claims.Identity)
		ctx = WithRequestID(ctx, requestID)

		if logger := cfg.Logger(); logger != nil {
			logSecurityEvent(logger, SecurityEvent{
				EventType:    "success",
				Timestamp:    time.Now(),
				RequestID:    requestID,
				UserID:       claims.Identity.ID,
				Email:        claims.Identity.Email,
				Role:         claims.Identity.Role,
				Route:        info.FullMethod,
				TokenPreview: token,
				Latency:      time.Since(startTime),
			})
		}

		return handler(ctx, req)
	}
}

func logGRPCFailure(cfg *Config, requestID, method, token string, err error, latency time.Duration) {
	if cfg.Logger() == nil {
		return
	}
	logSecurityEvent(cfg.Logger(), SecurityEvent{
		EventType:     "failure",
		Timestamp:     time.Now(),
		RequestID:     requestID,
		Route:         method,
		FailureReason: errorCode(err),
		TokenPreview:  token,
		Latency:       latency,
	})
}
