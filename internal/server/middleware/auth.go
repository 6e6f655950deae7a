// Package middleware содержит промежуточные обработчики HTTP: проверку токена,
// логирование, восстановление после паники и rate-limiting.
package middleware

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	"github.com/BlqckRiad/CepteMotivasyon/internal/common"
	"github.com/BlqckRiad/CepteMotivasyon/internal/config"
)

// Identity — пользователь, извлечённый из токена.
type Identity struct {
	UserID uuid.UUID
	Email  string
}

// Verifier проверяет bearer-токен и возвращает пользователя.
type Verifier interface {
	Verify(ctx context.Context, token string) (Identity, error)
}

var (
	errMissingAuthHeader = errors.New("нет заголовка Authorization")
	errInvalidAuthHeader = errors.New("некорректный заголовок Authorization")
	errMissingSubject    = errors.New("в токене нет sub")
)

type ctxKey struct{}

// NewVerifier выбирает проверку токенов по AUTH_MODE.
func NewVerifier(cfg *config.Config) (Verifier, error) {
	switch cfg.AuthMode {
	case config.AuthModeSupabase:
		return &supabaseVerifier{
			secret:   []byte(cfg.SupabaseJWTSecret),
			audience: cfg.SupabaseJWTAudience,
		}, nil
	case config.AuthModeNoop:
		log.Warn("AUTH_MODE=noop: подпись токенов не проверяется")
		return noopVerifier{}, nil
	default:
		return nil, fmt.Errorf("неизвестный AUTH_MODE %q", cfg.AuthMode)
	}
}

// supabaseVerifier проверяет access-токены Supabase (HS256, общий секрет проекта).
type supabaseVerifier struct {
	secret   []byte
	audience string
}

func (v *supabaseVerifier) Verify(_ context.Context, token string) (Identity, error) {
	options := []jwt.ParserOption{
		jwt.WithLeeway(5 * time.Second),
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
	}
	if v.audience != "" {
		options = append(options, jwt.WithAudience(v.audience))
	}

	claims := jwt.MapClaims{}
	if _, err := jwt.ParseWithClaims(token, claims, func(*jwt.Token) (any, error) {
		return v.secret, nil
	}, options...); err != nil {
		return Identity{}, fmt.Errorf("токен не прошёл проверку: %w", err)
	}

	sub, err := claims.GetSubject()
	if err != nil || sub == "" {
		return Identity{}, errMissingSubject
	}
	userID, err := uuid.Parse(sub)
	if err != nil {
		return Identity{}, fmt.Errorf("sub не UUID: %w", err)
	}

	email, _ := claims["email"].(string)
	return Identity{UserID: userID, Email: email}, nil
}

// noopVerifier считает сам токен идентификатором пользователя. Только для разработки и тестов.
type noopVerifier struct{}

func (noopVerifier) Verify(_ context.Context, token string) (Identity, error) {
	userID, err := uuid.Parse(token)
	if err != nil {
		return Identity{}, fmt.Errorf("токен не UUID: %w", err)
	}
	return Identity{UserID: userID}, nil
}

// Authenticate пускает запрос дальше только с валидным токеном.
// onFirstSeen вызывается один раз на пользователя за время жизни процесса
// (например, чтобы завести профиль). Его ошибка логируется, но не прерывает запрос;
// после ошибки вызов повторится на следующем запросе.
func Authenticate(verifier Verifier, onFirstSeen func(ctx context.Context, id Identity) error) func(http.Handler) http.Handler {
	var seen sync.Map // uuid.UUID -> struct{}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, err := bearerToken(r)
			if err != nil {
				common.WriteError(w, r, errors.Join(common.ErrUnauthorized, err))
				return
			}

			id, err := verifier.Verify(r.Context(), token)
			if err != nil {
				log.WithError(err).Debug("Токен отклонён")
				common.WriteError(w, r, errors.Join(common.ErrUnauthorized, err))
				return
			}

			if onFirstSeen != nil {
				if _, ok := seen.Load(id.UserID); !ok {
					if err := onFirstSeen(r.Context(), id); err != nil {
						log.WithError(err).WithField("user_id", id.UserID).Warn("Не удалось подготовить профиль")
					} else {
						seen.Store(id.UserID, struct{}{})
					}
				}
			}

			ctx := context.WithValue(r.Context(), ctxKey{}, id)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// IdentityFrom возвращает пользователя, положенного в контекст Authenticate.
func IdentityFrom(ctx context.Context) (Identity, bool) {
	id, ok := ctx.Value(ctxKey{}).(Identity)
	return id, ok
}

// UserID возвращает ID пользователя из контекста или ErrUnauthorized.
func UserID(ctx context.Context) (uuid.UUID, error) {
	id, ok := IdentityFrom(ctx)
	if !ok {
		return uuid.Nil, common.ErrUnauthorized
	}
	return id.UserID, nil
}

// WithIdentity кладёт пользователя в контекст. Нужен тестам обработчиков.
func WithIdentity(ctx context.Context, id Identity) context.Context {
	return context.WithValue(ctx, ctxKey{}, id)
}

func bearerToken(r *http.Request) (string, error) {
	header := r.Header.Get("Authorization")
	if header == "" {
		return "", errMissingAuthHeader
	}

	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return "", errInvalidAuthHeader
	}

	token := strings.TrimSpace(parts[1])
	if token == "" {
		return "", errInvalidAuthHeader
	}
	return token, nil
}
