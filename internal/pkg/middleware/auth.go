package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"gopharma/internal/domain"
	apperror "gopharma/internal/errors"
	"gopharma/internal/pkg/token"
)

// ContextKey é o tipo das chaves que os middlewares anexam ao contexto.
type ContextKey int

const (
	UserClaimsKey ContextKey = iota
	RequestIDKey
)

// UserClaims representa o usuário extraído do access token.
type UserClaims struct {
	Name string
}

// TokenService define o contrato de validação necessário para o middleware.
type TokenService interface {
	ValidateToken(tokenString string) (*token.CustomClaims, error)
}

// NewAuthMiddleware valida o Bearer token emitido pelo backend principal e anexa
// o nome do usuário ao contexto da requisição.
func NewAuthMiddleware(tokenSvc TokenService) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			tokenString, ok := strings.CutPrefix(authHeader, "Bearer ")
			if !ok || tokenString == "" {
				writeUnauthorized(w, "Token de autorização ausente ou malformado.")
				return
			}

			claims, err := tokenSvc.ValidateToken(tokenString)
			if err != nil {
				writeUnauthorized(w, "Token inválido ou expirado.")
				return
			}

			ctx := context.WithValue(r.Context(), UserClaimsKey, UserClaims{Name: claims.Name})
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// GetUserClaimsFromContext é uma função utilitária para extrair as claims no handler.
func GetUserClaimsFromContext(ctx context.Context) (UserClaims, bool) {
	claims, ok := ctx.Value(UserClaimsKey).(UserClaims)
	return claims, ok
}

func writeUnauthorized(w http.ResponseWriter, msg string) {
	appErr := apperror.NewUnauthorizedError(msg)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(appErr.HTTPStatus())
	json.NewEncoder(w).Encode(domain.ErrorResponse{
		Code:     appErr.HTTPStatus(),
		Category: appErr.Category(),
		Message:  appErr.Error(),
	})
}
