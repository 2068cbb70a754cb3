package transport

import (
	"context"
	"net/http"
	"strings"

	"github.com/gorilla/mux"
	"github.com/yogapit/eshop/application/admin"
	"github.com/yogapit/eshop/constant"
	utilsContext "github.com/yogapit/eshop/utils/context"
	"github.com/yogapit/eshop/utils/errors"
	"github.com/yogapit/eshop/utils/logger"
	"go.uber.org/zap"
)

// AuthMiddleware guards the admin subrouter with the session token issued at login.
func AuthMiddleware(adminApp admin.AdminApp) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if isPublicPath(r.URL.Path) {
				next.ServeHTTP(w, r)
				return
			}

			token, ok := bearerToken(r)
			if !ok {
				writeError(w, errors.SetCustomError(constant.ErrUnauthorize))
				return
			}

			username, err := adminApp.ValidateToken(r.Context(), token)
			if err != nil {
				logger.Security("admin_token_rejected",
					zap.String("ip", utilsContext.GetClientIP(r.Context())),
					zap.String("path", r.URL.Path))
				writeError(w, errors.SetCustomError(constant.ErrUnauthorize))
				return
			}

			ctx := context.WithValue(r.Context(), constant.AdminIDKey, username)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func bearerToken(r *http.Request) (string, bool) {
	auth := r.Header.Get("Authorization")
	if !strings.HasPrefix(auth, "Bearer ") {
		return "", false
	}
	token := strings.TrimSpace(strings.TrimPrefix(auth, "Bearer "))
	return token, token != ""
}

// isPublicPath lists the admin endpoints reachable without a session.
func isPublicPath(path string) bool {
	return path == "/admin/login"
}
