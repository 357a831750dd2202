package middleware

import (
	"context"
	"log/slog"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/SrinivasanNikhil/ProjectAgents-sub002/internal/entities"
	"github.com/SrinivasanNikhil/ProjectAgents-sub002/internal/services/authorization"
)

// PrincipalResolver resolves the calling principal from an incoming gRPC
// context, typically from transport metadata. A nil principal with a nil
// error means the call is unauthenticated.
type PrincipalResolver func(ctx context.Context) (*entities.Principal, error)

// UnaryServerInterceptor returns a gRPC interceptor enforcing the permission
// required for each full method name. Methods absent from methodPermissions
// pass through unchecked. The denial taxonomy maps onto gRPC codes:
// no principal is Unauthenticated, a missing permission is PermissionDenied,
// and a resolver fault is Internal.
func UnaryServerInterceptor(
	evaluator authorization.EvaluatorInterface,
	resolver PrincipalResolver,
	methodPermissions map[string]entities.Permission,
	logger *slog.Logger,
) grpc.UnaryServerInterceptor {
	return func(
		ctx context.Context,
		req interface{},
		info *grpc.UnaryServerInfo,
		handler grpc.UnaryHandler,
	) (interface{}, error) {
		permission, guarded := methodPermissions[info.FullMethod]
		if !guarded {
			return handler(ctx, req)
		}

		principal, err := resolver(ctx)
		if err != nil {
			logger.Error("principal resolution failed",
				"method", info.FullMethod,
				"error", err.Error(),
			)
			return nil, status.Error(codes.Internal, "failed to resolve principal")
		}
		if principal == nil {
			logger.Warn("authorization rejected unauthenticated call",
				"method", info.FullMethod,
			)
			return nil, status.Error(codes.Unauthenticated, "authentication required")
		}

		if !evaluator.HasPermission(principal, permission) {
			logger.Warn("permission denied",
				"userId", principal.ID,
				"role", principal.Role,
				"requiredPermission", permission,
				"method", info.FullMethod,
			)
			return nil, status.Errorf(codes.PermissionDenied, "permission %s required", permission)
		}

		return handler(WithPrincipal(ctx, principal), req)
	}
}
