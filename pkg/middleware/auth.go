package middleware

import (
	"net/http"
	"strings"

	"product-app/pkg/utils"

	"go.uber.org/zap"
)

// AuthJWT middleware untuk validasi bearer token
func AuthJWT(tokens *utils.TokenManager, logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				utils.ResponseUnauthorized(w, "Missing Authorization")
				return
			}

			token, ok := bearerToken(authHeader)
			if !ok {
				logger.Warn("Malformed authorization header", zap.String("path", r.URL.Path))
				utils.ResponseUnauthorized(w, "Invalid Token")
				return
			}

			claims, err := tokens.Verify(token)
			if err != nil {
				logger.Warn("Token rejected",
					zap.Error(err),
					zap.String("path", r.URL.Path),
				)
				utils.ResponseUnauthorized(w, "Invalid Token")
				return
			}

			ctx := utils.SetUserContext(r.Context(), claims)
			ctx = utils.SetTokenContext(ctx, token)

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// bearerToken extracts <token> from "Bearer <token>"; the scheme is case-insensitive.
func bearerToken(header string) (string, bool) {
	scheme, token, found := strings.Cut(strings.TrimSpace(header), " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}
