package transport

import (
	"math"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"github.com/yogapit/eshop/constant"
	utilsContext "github.com/yogapit/eshop/utils/context"
	"github.com/yogapit/eshop/utils/errors"
	"github.com/yogapit/eshop/utils/logger"
	"github.com/yogapit/eshop/utils/ratelimit"
	"go.uber.org/zap"
)

const adminKeyPrefix = "admin_"

// RateLimitMiddleware applies limiter to every route of a router.
func RateLimitMiddleware(limiter ratelimit.Limiter, keyPrefix string) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return limit(limiter, keyPrefix, next)
	}
}

// limit counts requests per client IP. Limiter failures let the request through.
func limit(limiter ratelimit.Limiter, keyPrefix string, next http.Handler) http.Handler {
	if limiter == nil {
		return next
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		ip := utilsContext.GetClientIP(ctx)
		key := keyPrefix + ip

		allowed, err := limiter.Allow(ctx, key)
		if err != nil {
			logger.Error("[RateLimit] limiter unavailable", zap.String("key", key), zap.String("error", err.Error()))
			next.ServeHTTP(w, r)
			return
		}
		if allowed {
			next.ServeHTTP(w, r)
			return
		}

		retry, err := limiter.RetryAfter(ctx, key)
		if err != nil {
			logger.Error("[RateLimit] error RetryAfter", zap.String("key", key), zap.String("error", err.Error()))
		}
		seconds := int(math.Ceil(retry.Seconds()))
		if seconds < 1 {
			seconds = 1
		}
		logger.Security("rate_limit_exceeded",
			zap.String("ip", ip),
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("retry_after", seconds))

		w.Header().Set("Retry-After", strconv.Itoa(seconds))
		writeError(w, errors.SetCustomErrorf(constant.ErrTooManyRequests, "retry after %d seconds", seconds))
	})
}
