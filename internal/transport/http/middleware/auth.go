package middleware

import (
	"context"
	"net/http"
	"strings"

	apierrors "github.com/avertine/listings-service/internal/transport/http/errors"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// CtxUserID — ключ контекста с идентификатором аутентифицированного пользователя.
const CtxUserID ctxKey = "user_id"

// Auth проверяет access-токен (Bearer, HS256) и кладёт subject (uuid
// пользователя) в контекст по ключу CtxUserID.
//
// Запрос без валидного токена завершается 401 и до хендлера не доходит.
// Выпуск токенов — ответственность внешнего auth-сервиса; здесь только
// проверка подписи и срока жизни.
func Auth(secret string) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := bearerToken(r)
			if token == "" {
				apierrors.WriteError(w, r, apierrors.ErrUnauthenticated)
				return
			}

			claims := jwt.RegisteredClaims{}
			parsed, err := jwt.ParseWithClaims(token, &claims,
				func(t *jwt.Token) (any, error) {
					return []byte(secret), nil
				},
				jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
			)
			if err != nil || !parsed.Valid {
				apierrors.WriteError(w, r, apierrors.ErrUnauthenticated)
				return
			}

			userID, err := uuid.Parse(claims.Subject)
			if err != nil || userID == uuid.Nil {
				apierrors.WriteError(w, r, apierrors.ErrUnauthenticated)
				return
			}

			ctx := context.WithValue(r.Context(), CtxUserID, userID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// UserID возвращает идентификатор пользователя, положенный Auth в контекст.
func UserID(ctx context.Context) (uuid.UUID, bool) {
	id, ok := ctx.Value(CtxUserID).(uuid.UUID)
	return id, ok
}

func bearerToken(r *http.Request) string {
	auth := r.Header.Get("Authorization")
	if auth == "" {
		return ""
	}

	const prefix = "Bearer "
	if !strings.HasPrefix(auth, prefix) || len(auth) <= len(prefix) {
		return ""
	}

	return strings.TrimSpace(auth[len(prefix):])
}
