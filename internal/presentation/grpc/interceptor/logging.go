package interceptor

import (
	"context"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/status"

	otelinfra "checkout-server/internal/infrastructure/observability/otel"
)

// LoggingInterceptor 呼び出しごとにメソッド・ステータス・所要時間を記録する
func LoggingInterceptor(logger *otelinfra.Logger) grpc.UnaryServerInterceptor {
	return func(
		ctx context.Context,
		req interface{},
		info *grpc.UnaryServerInfo,
		handler grpc.UnaryHandler,
	) (interface{}, error) {
		start := time.Now()
		resp, err := handler(ctx, req)

		fields := map[string]interface{}{
			"method":   info.FullMethod,
			"code":     status.Code(err).String(),
			"duration": time.Since(start).String(),
		}
		if err != nil {
			logger.Warn(ctx, "gRPC call failed", fields)
		} else {
			logger.Debug(ctx, "gRPC call completed", fields)
		}
		return resp, err
	}
}
