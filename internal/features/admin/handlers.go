// Package admin — handlers.go: HTTP-маршруты /admin.
// Вход по паролю выдаёт токен; остальные маршруты требуют заголовок X-Admin-Token.
package admin

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/BlqckRiad/CepteMotivasyon/internal/common"
	"github.com/BlqckRiad/CepteMotivasyon/internal/features/badges"
	"github.com/BlqckRiad/CepteMotivasyon/internal/features/contact"
	"github.com/BlqckRiad/CepteMotivasyon/internal/features/education"
	"github.com/BlqckRiad/CepteMotivasyon/internal/features/market"
	"github.com/BlqckRiad/CepteMotivasyon/internal/features/tasks"
)

// TokenHeader — заголовок с токеном сессии.
const TokenHeader = "X-Admin-Token"

// Catalog — управление каталогом заданий.
type Catalog interface {
	Catalog(ctx context.Context) ([]tasks.CatalogEntry, error)
	AddCatalogEntry(ctx context.Context, title, icon string) (*tasks.CatalogEntry, error)
	DeactivateCatalogEntry(ctx context.Context, id int64) error
}

// Shop — добавление товаров.
type Shop interface {
	CreateItem(ctx context.Context, in market.NewItem) (*market.Item, error)
}

// BadgeCatalog — добавление значков.
type BadgeCatalog interface {
	Create(ctx context.Context, b badges.NewBadge) (*badges.Badge, error)
}

// PointGranter — начисление очков.
type PointGranter interface {
	Grant(ctx context.Context, userID uuid.UUID, amount int64, reason string) error
}

// Lessons — добавление обучающих материалов.
type Lessons interface {
	Create(ctx context.Context, in education.NewContent) (*education.Content, error)
}

// Inbox — чтение обращений пользователей.
type Inbox interface {
	List(ctx context.Context, limit int) ([]contact.Message, error)
}

// Handler обрабатывает админ-запросы.
type Handler struct {
	service *Service
	catalog Catalog
	shop    Shop
	badges  BadgeCatalog
	points  PointGranter
	lessons Lessons
	inbox   Inbox
}

// NewHandler создаёт обработчик админ-панели.
func NewHandler(service *Service, catalog Catalog, shop Shop, badgeCatalog BadgeCatalog, points PointGranter, lessons Lessons, inbox Inbox) *Handler {
	return &Handler{
		service: service,
		catalog: catalog,
		shop:    shop,
		badges:  badgeCatalog,
		points:  points,
		lessons: lessons,
		inbox:   inbox,
	}
}

// Routes регистрирует маршруты /admin.
func (h *Handler) Routes(r chi.Router) {
	r.Post("/login", h.handleLogin)

	r.Group(func(r chi.Router) {
		r.Use(h.RequireSession)

		r.Post("/logout", h.handleLogout)
		r.Get("/tasks", h.handleListTasks)
		r.Post("/tasks", h.handleAddTask)
		r.Delete("/tasks/{id}", h.handleDeactivateTask)
		r.Post("/shop-items", h.handleAddShopItem)
		r.Post("/badges", h.handleAddBadge)
		r.Post("/points/grant", h.handleGrant)
		r.Post("/education", h.handleAddLesson)
		r.Get("/contact", h.handleListContact)
	})
}

// RequireSession пропускает запрос только с действующим X-Admin-Token.
func (h *Handler) RequireSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := h.service.Authorize(r.Context(), r.Header.Get(TokenHeader)); err != nil {
			common.WriteError(w, r, err)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (h *Handler) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := common.DecodeJSON(w, r, &req); err != nil {
		common.WriteError(w, r, err)
		return
	}
	if err := common.Validate(req); err != nil {
		common.WriteError(w, r, err)
		return
	}

	resp, err := h.service.Login(r.Context(), clientAddr(r), req.Password)
	if err != nil {
		common.WriteError(w, r, err)
		return
	}
	common.WriteJSON(w, http.StatusOK, resp)
}

func (h *Handler) handleLogout(w http.ResponseWriter, r *http.Request) {
	if err := h.service.Logout(r.Context(), r.Header.Get(TokenHeader)); err != nil {
		common.WriteError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) handleListTasks(w http.ResponseWriter, r *http.Request) {
	entries, err := h.catalog.Catalog(r.Context())
	if err != nil {
		common.WriteError(w, r, err)
		return
	}
	common.WriteJSON(w, http.StatusOK, entries)
}

func (h *Handler) handleAddTask(w http.ResponseWriter, r *http.Request) {
	var req CatalogTaskRequest
	if err := common.DecodeJSON(w, r, &req); err != nil {
		common.WriteError(w, r, err)
		return
	}
	if err := common.Validate(req); err != nil {
		common.WriteError(w, r, err)
		return
	}

	entry, err := h.catalog.AddCatalogEntry(r.Context(), req.Title, req.Icon)
	if err != nil {
		common.WriteError(w, r, err)
		return
	}
	common.WriteJSON(w, http.StatusCreated, entry)
}

func (h *Handler) handleDeactivateTask(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		common.WriteError(w, r, fmt.Errorf("id задания: %w", common.ErrInvalidInput))
		return
	}

	if err := h.catalog.DeactivateCatalogEntry(r.Context(), id); err != nil {
		common.WriteError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) handleAddShopItem(w http.ResponseWriter, r *http.Request) {
	var req market.NewItem
	if err := common.DecodeJSON(w, r, &req); err != nil {
		common.WriteError(w, r, err)
		return
	}

	item, err := h.shop.CreateItem(r.Context(), req)
	if err != nil {
		common.WriteError(w, r, err)
		return
	}
	common.WriteJSON(w, http.StatusCreated, item)
}

func (h *Handler) handleAddBadge(w http.ResponseWriter, r *http.Request) {
	var req badges.NewBadge
	if err := common.DecodeJSON(w, r, &req); err != nil {
		common.WriteError(w, r, err)
		return
	}

	badge, err := h.badges.Create(r.Context(), req)
	if err != nil {
		common.WriteError(w, r, err)
		return
	}
	common.WriteJSON(w, http.StatusCreated, badge)
}

func (h *Handler) handleGrant(w http.ResponseWriter, r *http.Request) {
	var req GrantRequest
	if err := common.DecodeJSON(w, r, &req); err != nil {
		common.WriteError(w, r, err)
		return
	}
	if err := common.Validate(req); err != nil {
		common.WriteError(w, r, err)
		return
	}

	if err := h.points.Grant(r.Context(), req.UserID, req.Amount, req.Reason); err != nil {
		common.WriteError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) handleAddLesson(w http.ResponseWriter, r *http.Request) {
	var req education.NewContent
	if err := common.DecodeJSON(w, r, &req); err != nil {
		common.WriteError(w, r, err)
		return
	}

	lesson, err := h.lessons.Create(r.Context(), req)
	if err != nil {
		common.WriteError(w, r, err)
		return
	}
	common.WriteJSON(w, http.StatusCreated, lesson)
}

// handleListContact отдаёт последние обращения; ?limit= необязателен.
func (h *Handler) handleListContact(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			common.WriteError(w, r, fmt.Errorf("limit: %w", common.ErrInvalidInput))
			return
		}
		limit = n
	}

	out, err := h.inbox.List(r.Context(), limit)
	if err != nil {
		common.WriteError(w, r, err)
		return
	}
	common.WriteJSON(w, http.StatusOK, out)
}

// clientAddr — адрес клиента без порта. Заголовкам прокси верим, только если
// роутер включил RealIP (HTTP_TRUST_PROXY).
func clientAddr(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
