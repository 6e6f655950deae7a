package middleware

import (
	"math"
	"net"
	"net/http"
	"sort"
	"strconv"
	"sync"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/BlqckRiad/CepteMotivasyon/internal/common"
)

// cleanupInterval — как часто выбрасываются ключи без свежих запросов.
const cleanupInterval = 5 * time.Minute

// RateLimiter — скользящее окно: не больше limit запросов за window на ключ
// (пользователь из токена или адрес клиента).
type RateLimiter struct {
	mu       sync.Mutex
	requests map[string][]time.Time // по возрастанию
	limit    int
	window   time.Duration
	now      func() time.Time

	stopOnce sync.Once
	stopCh   chan struct{}
}

func NewRateLimiter(limit int, window time.Duration) *RateLimiter {
	rl := &RateLimiter{
		requests: make(map[string][]time.Time),
		limit:    limit,
		window:   window,
		now:      time.Now,
		stopCh:   make(chan struct{}),
	}
	go rl.cleanup()
	return rl
}

// Close останавливает фоновую очистку. Вызывается на shutdown, повторный вызов безопасен.
func (rl *RateLimiter) Close() {
	rl.stopOnce.Do(func() { close(rl.stopCh) })
}

// Allow регистрирует запрос по ключу. Если лимит исчерпан, запрос не учитывается,
// а retryAfter показывает, когда освободится место в окне.
func (rl *RateLimiter) Allow(key string) (ok bool, retryAfter time.Duration) {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := rl.now()
	recent := dropBefore(rl.requests[key], now.Add(-rl.window))

	if len(recent) >= rl.limit {
		rl.requests[key] = recent
		return false, recent[0].Add(rl.window).Sub(now)
	}

	rl.requests[key] = append(recent, now)
	return true, 0
}

// Limit — HTTP-обёртка над Allow. Ставится после Authenticate, чтобы ключом был пользователь.
func (rl *RateLimiter) Limit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// Без пользователя ключ — адрес без порта: новое соединение не сбрасывает окно
		key := r.RemoteAddr
		if host, _, err := net.SplitHostPort(key); err == nil {
			key = host
		}
		if id, ok := IdentityFrom(r.Context()); ok {
			key = id.UserID.String()
		}

		ok, retryAfter := rl.Allow(key)
		if !ok {
			seconds := int(math.Ceil(retryAfter.Seconds()))
			log.WithFields(log.Fields{"key": key, "retry_after": seconds}).Debug("Лимит запросов исчерпан")
			w.Header().Set("Retry-After", strconv.Itoa(max(seconds, 1)))
			common.WriteJSON(w, http.StatusTooManyRequests, common.ErrorResponse{
				Code:    "rate_limited",
				Message: "слишком много запросов, попробуйте позже",
			})
			return
		}
		next.ServeHTTP(w, r)
	})
}

// dropBefore отрезает отметки не позже cutoff. times отсортированы, срез переиспользуется.
func dropBefore(times []time.Time, cutoff time.Time) []time.Time {
	i := sort.Search(len(times), func(i int) bool { return times[i].After(cutoff) })
	return times[i:]
}

func (rl *RateLimiter) cleanup() {
	ticker := time.NewTicker(cleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-rl.stopCh:
			return
		case <-ticker.C:
			rl.sweep()
		}
	}
}

func (rl *RateLimiter) sweep() {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	cutoff := rl.now().Add(-rl.window)
	for key, times := range rl.requests {
		if recent := dropBefore(times, cutoff); len(recent) == 0 {
			delete(rl.requests, key)
		} else {
			rl.requests[key] = recent
		}
	}
}
