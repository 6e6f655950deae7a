// Package server собирает HTTP-маршрутизатор: общие middleware,
// /v1 для приложения и /admin для панели управления.
package server

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/BlqckRiad/CepteMotivasyon/internal/common"
	"github.com/BlqckRiad/CepteMotivasyon/internal/server/middleware"
)

// Registrar регистрирует маршруты одной функции приложения.
type Registrar interface {
	Routes(r chi.Router)
}

// Deps — всё, что нужно маршрутизатору.
type Deps struct {
	Verifier       middleware.Verifier
	OnFirstSeen    func(ctx context.Context, id middleware.Identity) error
	Limiter        *middleware.RateLimiter
	RequestTimeout time.Duration
	// TrustProxy — брать адрес клиента из заголовков прокси (chi RealIP)
	TrustProxy bool

	// API монтируется под /v1 за проверкой токена
	API []Registrar
	// Admin монтируется под /admin, свою авторизацию делает сам
	Admin Registrar
}

// NewRouter создаёт маршрутизатор приложения.
func NewRouter(d Deps) http.Handler {
	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	if d.TrustProxy {
		r.Use(chimw.RealIP)
	}
	r.Use(middleware.Recover)
	r.Use(middleware.LogRequest)
	if d.RequestTimeout > 0 {
		r.Use(chimw.Timeout(d.RequestTimeout))
	}

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		common.WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Route("/v1", func(r chi.Router) {
		r.Use(middleware.Authenticate(d.Verifier, d.OnFirstSeen))
		if d.Limiter != nil {
			r.Use(d.Limiter.Limit)
		}
		for _, reg := range d.API {
			reg.Routes(r)
		}
	})

	if d.Admin != nil {
		r.Route("/admin", func(r chi.Router) {
			if d.Limiter != nil {
				r.Use(d.Limiter.Limit)
			}
			d.Admin.Routes(r)
		})
	}

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		common.WriteError(w, r, common.ErrNotFound)
	})

	return r
}

// Disabled отвечает ErrFeatureDisabled на все запросы под prefix.
// Используется вместо обработчика, выключенного флагом.
func Disabled(prefix string) Registrar {
	return disabled(prefix)
}

type disabled string

func (d disabled) Routes(r chi.Router) {
	handler := func(w http.ResponseWriter, r *http.Request) {
		common.WriteError(w, r, common.ErrFeatureDisabled)
	}
	r.HandleFunc(string(d), handler)
	r.HandleFunc(string(d)+"/*", handler)
}
