package middleware

import (
	"net/http"

	"paybyrd-bridge/internal/auth"
	"paybyrd-bridge/internal/logger"
	"paybyrd-bridge/internal/utils"

	"go.uber.org/zap"
)

// AdminAuth guards the refund and settings routes. Requests without a valid
// admin token never reach next.
func AdminAuth(secret string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			tokenStr := auth.ExtractAccessToken(r)
			if tokenStr == "" {
				utils.WriteJSONError(w, "unauthorized", http.StatusUnauthorized)
				return
			}

			claims, err := auth.ParseAdminJWT(secret, tokenStr)
			if err != nil {
				logger.FromCtx(r.Context()).Warn("admin token rejected", zap.Error(err))
				utils.WriteJSONError(w, "unauthorized", http.StatusUnauthorized)
				return
			}

			if claims.Role != auth.RoleAdmin {
				utils.WriteJSONError(w, "forbidden", http.StatusForbidden)
				return
			}

			ctx := utils.SetAdminContext(r.Context(), claims.Subject, claims.Role)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
