package admin

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/BlqckRiad/CepteMotivasyon/internal/common"
	"github.com/BlqckRiad/CepteMotivasyon/internal/features/contact"
	"github.com/BlqckRiad/CepteMotivasyon/internal/features/education"
	"github.com/BlqckRiad/CepteMotivasyon/internal/features/tasks"
	"github.com/BlqckRiad/CepteMotivasyon/internal/server"
)

// memStore — сессии и попытки входа в памяти.
type memStore struct {
	sessions map[string]*Session
	attempts map[string][]bool
}

func newMemStore() *memStore {
	return &memStore{sessions: make(map[string]*Session), attempts: make(map[string][]bool)}
}

func (m *memStore) CreateSession(_ context.Context, s *Session) error {
	cp := *s
	cp.IsActive = true
	m.sessions[s.Token] = &cp
	return nil
}

func (m *memStore) GetActiveSession(_ context.Context, token string) (*Session, error) {
	s, ok := m.sessions[token]
	if !ok || !s.IsActive {
		return nil, common.ErrNotFound
	}
	return s, nil
}

func (m *memStore) DeactivateSession(_ context.Context, token string) error {
	if s, ok := m.sessions[token]; ok {
		s.IsActive = false
	}
	return nil
}

func (m *memStore) UpdateActivity(context.Context, string) error { return nil }

func (m *memStore) LogAttempt(_ context.Context, addr string, success bool) error {
	m.attempts[addr] = append(m.attempts[addr], success)
	return nil
}

func (m *memStore) GetRecentFailures(_ context.Context, addr string, _ time.Time) (int, error) {
	n := 0
	for _, ok := range m.attempts[addr] {
		if !ok {
			n++
		}
	}
	return n, nil
}

const testPassword = "güçlü-parola"

var testHash = hashArgon2id(testPassword, []byte("0123456789abcdef"))

func newTestService() (*Service, *memStore) {
	store := newMemStore()
	return NewService(store, testHash, 24*time.Hour), store
}

func TestVerifyArgon2id(t *testing.T) {
	if !verifyArgon2id(testPassword, testHash) {
		t.Fatalf("correct password rejected")
	}
	if verifyArgon2id("wrong", testHash) {
		t.Fatalf("wrong password accepted")
	}
	if verifyArgon2id(testPassword, "$argon2id$broken") {
		t.Fatalf("malformed hash accepted")
	}
}

func TestLogin_Success(t *testing.T) {
	svc, _ := newTestService()

	resp, err := svc.Login(context.Background(), "10.0.0.1", testPassword)
	if err != nil {
		t.Fatalf("Login() err=%v", err)
	}
	if resp.Token == "" {
		t.Fatalf("empty token")
	}
	if err := svc.Authorize(context.Background(), resp.Token); err != nil {
		t.Fatalf("Authorize() err=%v", err)
	}
}

func TestLogin_LockoutAfterThreeFailures(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	for i := 0; i < maxFailedAttempts; i++ {
		if _, err := svc.Login(ctx, "10.0.0.2", "nope"); !errors.Is(err, common.ErrWrongPassword) {
			t.Fatalf("attempt %d err=%v, want %v", i+1, err, common.ErrWrongPassword)
		}
	}
	if _, err := svc.Login(ctx, "10.0.0.2", testPassword); !errors.Is(err, common.ErrTooManyAttempts) {
		t.Fatalf("locked login err=%v, want %v", err, common.ErrTooManyAttempts)
	}
	if _, err := svc.Login(ctx, "10.0.0.3", testPassword); err != nil {
		t.Fatalf("other address err=%v", err)
	}
}

func TestAuthorize_Expired(t *testing.T) {
	svc, store := newTestService()
	ctx := context.Background()

	resp, err := svc.Login(ctx, "10.0.0.1", testPassword)
	if err != nil {
		t.Fatalf("Login() err=%v", err)
	}

	svc.now = func() time.Time { return time.Now().Add(25 * time.Hour) }
	if err := svc.Authorize(ctx, resp.Token); !errors.Is(err, common.ErrSessionExpired) {
		t.Fatalf("Authorize() err=%v, want %v", err, common.ErrSessionExpired)
	}
	if store.sessions[resp.Token].IsActive {
		t.Fatalf("expired session still active")
	}
}

func TestAuthorize_UnknownToken(t *testing.T) {
	svc, _ := newTestService()
	for _, token := range []string{"", "garbage"} {
		if err := svc.Authorize(context.Background(), token); !errors.Is(err, common.ErrUnauthorized) {
			t.Fatalf("Authorize(%q) err=%v, want %v", token, err, common.ErrUnauthorized)
		}
	}
}

type fakeCatalog struct{}

func (fakeCatalog) Catalog(context.Context) ([]tasks.CatalogEntry, error) {
	return []tasks.CatalogEntry{{ID: 1, Title: "Su iç"}}, nil
}

func (fakeCatalog) AddCatalogEntry(_ context.Context, title, icon string) (*tasks.CatalogEntry, error) {
	return &tasks.CatalogEntry{ID: 2, Title: title, Icon: icon, IsActive: true}, nil
}

func (fakeCatalog) DeactivateCatalogEntry(context.Context, int64) error { return nil }

func TestHTTP_AdminFlow(t *testing.T) {
	svc, _ := newTestService()
	r := chi.NewRouter()
	NewHandler(svc, fakeCatalog{}, nil, nil, nil, nil, nil).Routes(r)

	req := httptest.NewRequest(http.MethodGet, "/tasks", nil)
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)
	if rr.Code != http.StatusUnauthorized {
		t.Fatalf("no token status=%d, want %d", rr.Code, http.StatusUnauthorized)
	}

	req = httptest.NewRequest(http.MethodPost, "/login", strings.NewReader(`{"password":"`+testPassword+`"}`))
	req.RemoteAddr = "192.168.1.5:5555"
	rr = httptest.NewRecorder()
	r.ServeHTTP(rr, req)
	if rr.Code != http.StatusOK {
		t.Fatalf("login status=%d body=%s", rr.Code, rr.Body.String())
	}
	token := svc.repo.(*memStore).anyToken()

	req = httptest.NewRequest(http.MethodPost, "/tasks", strings.NewReader(`{"title":"10 dakika yürü","icon":"walk"}`))
	req.Header.Set(TokenHeader, token)
	rr = httptest.NewRecorder()
	r.ServeHTTP(rr, req)
	if rr.Code != http.StatusCreated {
		t.Fatalf("add task status=%d body=%s", rr.Code, rr.Body.String())
	}

	req = httptest.NewRequest(http.MethodPost, "/tasks", strings.NewReader(`{"icon":"walk"}`))
	req.Header.Set(TokenHeader, token)
	rr = httptest.NewRecorder()
	r.ServeHTTP(rr, req)
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("no title status=%d, want %d", rr.Code, http.StatusBadRequest)
	}
}

type fakeLessons struct{ created []education.NewContent }

func (f *fakeLessons) Create(_ context.Context, in education.NewContent) (*education.Content, error) {
	f.created = append(f.created, in)
	return &education.Content{ID: int64(len(f.created)), Title: in.Title, ContentURL: in.ContentURL}, nil
}

type fakeInbox struct{ limit int }

func (f *fakeInbox) List(_ context.Context, limit int) ([]contact.Message, error) {
	f.limit = limit
	return []contact.Message{{ID: 1, Subject: "Hata", Type: contact.TypeComplaint}}, nil
}

func TestHTTP_EducationAndContact(t *testing.T) {
	svc, store := newTestService()
	lessons, inbox := &fakeLessons{}, &fakeInbox{}
	r := chi.NewRouter()
	NewHandler(svc, fakeCatalog{}, nil, nil, nil, lessons, inbox).Routes(r)

	if _, err := svc.Login(context.Background(), "192.168.1.5", testPassword); err != nil {
		t.Fatalf("Login() err=%v", err)
	}
	token := store.anyToken()

	send := func(method, path, body string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set(TokenHeader, token)
		rr := httptest.NewRecorder()
		r.ServeHTTP(rr, req)
		return rr
	}

	rr := send(http.MethodPost, "/education", `{"title":"Nefes","content_url":"https://example.com/nefes","duration":"5 dk"}`)
	if rr.Code != http.StatusCreated || len(lessons.created) != 1 {
		t.Fatalf("add lesson status=%d body=%s", rr.Code, rr.Body.String())
	}

	rr = send(http.MethodGet, "/contact?limit=5", "")
	if rr.Code != http.StatusOK || inbox.limit != 5 || !strings.Contains(rr.Body.String(), `"complaint"`) {
		t.Fatalf("contact status=%d limit=%d body=%s", rr.Code, inbox.limit, rr.Body.String())
	}

	if rr := send(http.MethodGet, "/contact?limit=abc", ""); rr.Code != http.StatusBadRequest {
		t.Fatalf("bad limit status=%d, want %d", rr.Code, http.StatusBadRequest)
	}

	req := httptest.NewRequest(http.MethodGet, "/contact", nil)
	rr = httptest.NewRecorder()
	r.ServeHTTP(rr, req)
	if rr.Code != http.StatusUnauthorized {
		t.Fatalf("no token status=%d, want %d", rr.Code, http.StatusUnauthorized)
	}
}

func (m *memStore) anyToken() string {
	for token := range m.sessions {
		return token
	}
	return ""
}

func TestClientAddr(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = "203.0.113.7:41234"
	if got := clientAddr(req); got != "203.0.113.7" {
		t.Fatalf("clientAddr()=%q", got)
	}
	req.RemoteAddr = "203.0.113.7"
	if got := clientAddr(req); got != "203.0.113.7" {
		t.Fatalf("clientAddr()=%q", got)
	}
}

func TestHashPassword_RandomSalt(t *testing.T) {
	a, err := HashPassword(testPassword)
	if err != nil {
		t.Fatalf("HashPassword() err=%v", err)
	}
	b, _ := HashPassword(testPassword)
	if a == b {
		t.Fatalf("two hashes of the same password are equal")
	}
	if !verifyArgon2id(testPassword, a) || !verifyArgon2id(testPassword, b) {
		t.Fatalf("generated hash does not verify")
	}
}

func TestParseArgon2id(t *testing.T) {
	p, err := parseArgon2id(testHash)
	if err != nil {
		t.Fatalf("parse err=%v", err)
	}
	if p.memory != defaultParams.memory || p.time != defaultParams.time || p.threads != defaultParams.threads {
		t.Fatalf("params=%+v", p)
	}
	if string(p.salt) != "0123456789abcdef" || len(p.key) != keyLen {
		t.Fatalf("salt=%q key len=%d", p.salt, len(p.key))
	}
	if p.encode() != testHash {
		t.Fatalf("encode()=%q, want %q", p.encode(), testHash)
	}

	for _, bad := range []string{
		"",
		"$argon2i$v=19$m=65536,t=3,p=2$c2FsdA$aGFzaA",
		"$argon2id$v=16$m=65536,t=3,p=2$c2FsdA$aGFzaA",
		"$argon2id$v=19$m=x,t=3,p=2$c2FsdA$aGFzaA",
		"$argon2id$v=19$m=65536,t=3,p=2$!!!$aGFzaA",
	} {
		if _, err := parseArgon2id(bad); !errors.Is(err, errBadHash) {
			t.Fatalf("parse(%q) err=%v, want errBadHash", bad, err)
		}
	}
}

// loginStatuses шлёт n неверных паролей с одного TCP-адреса, меняя X-Forwarded-For.
func loginStatuses(t *testing.T, trustProxy bool, n int) ([]int, *memStore) {
	t.Helper()
	svc, store := newTestService()
	router := server.NewRouter(server.Deps{
		TrustProxy: trustProxy,
		Admin:      NewHandler(svc, fakeCatalog{}, nil, nil, nil, nil, nil),
	})

	statuses := make([]int, 0, n)
	for i := 1; i <= n; i++ {
		req := httptest.NewRequest(http.MethodPost, "/admin/login", strings.NewReader(`{"password":"yanlis"}`))
		req.RemoteAddr = "198.51.100.9:40000"
		req.Header.Set("X-Forwarded-For", "10.0.0."+strconv.Itoa(i))
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)
		statuses = append(statuses, rr.Code)
	}
	return statuses, store
}

func TestLogin_LockoutIgnoresForwardedHeader(t *testing.T) {
	statuses, store := loginStatuses(t, false, 5)

	want := []int{
		http.StatusUnauthorized, http.StatusUnauthorized, http.StatusUnauthorized,
		http.StatusTooManyRequests, http.StatusTooManyRequests,
	}
	for i := range want {
		if statuses[i] != want[i] {
			t.Fatalf("statuses=%v, want %v", statuses, want)
		}
	}
	if len(store.attempts) != 1 || len(store.attempts["198.51.100.9"]) != 3 {
		t.Fatalf("attempts keyed by %v, want only the TCP peer", store.attempts)
	}
}

func TestLogin_TrustedProxyUsesForwardedAddr(t *testing.T) {
	_, store := loginStatuses(t, true, 3)

	if len(store.attempts) != 3 || len(store.attempts["10.0.0.1"]) != 1 {
		t.Fatalf("attempts=%v, want one per forwarded address", store.attempts)
	}
}
