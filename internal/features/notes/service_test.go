package notes

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/BlqckRiad/CepteMotivasyon/internal/common"
	"github.com/BlqckRiad/CepteMotivasyon/internal/server/middleware"
)

// memStore хранит заметки в памяти.
type memStore struct {
	notes map[uuid.UUID]Note
}

func newMemStore() *memStore {
	return &memStore{notes: make(map[uuid.UUID]Note)}
}

func (m *memStore) List(_ context.Context, userID uuid.UUID) ([]Note, error) {
	var out []Note
	for _, n := range m.notes {
		if n.UserID == userID {
			out = append(out, n)
		}
	}
	return out, nil
}

func (m *memStore) Create(_ context.Context, n Note) (*Note, error) {
	n.CreatedAt = time.Now()
	m.notes[n.ID] = n
	return &n, nil
}

func (m *memStore) Delete(_ context.Context, userID, noteID uuid.UUID) error {
	n, ok := m.notes[noteID]
	if !ok || n.UserID != userID {
		return common.ErrNotFound
	}
	delete(m.notes, noteID)
	return nil
}

func TestCreate_Length(t *testing.T) {
	svc := NewService(newMemStore())
	user := uuid.New()

	tests := []struct {
		name    string
		content string
		wantErr bool
	}{
		{"empty", "", true},
		{"spaces", "   \n\t", true},
		{"one char", "a", false},
		{"max runes", strings.Repeat("ş", MaxContentLength), false},
		{"too long", strings.Repeat("a", MaxContentLength+1), true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Create(context.Background(), user, tt.content)
			if tt.wantErr && !errors.Is(err, common.ErrInvalidInput) {
				t.Fatalf("err=%v, want %v", err, common.ErrInvalidInput)
			}
			if !tt.wantErr && err != nil {
				t.Fatalf("err=%v", err)
			}
		})
	}
}

func TestDelete_OwnerOnly(t *testing.T) {
	store := newMemStore()
	svc := NewService(store)
	owner, other := uuid.New(), uuid.New()

	note, err := svc.Create(context.Background(), owner, "Bugün 10 sayfa kitap okudum")
	if err != nil {
		t.Fatalf("Create() err=%v", err)
	}

	if err := svc.Delete(context.Background(), other, note.ID); !errors.Is(err, common.ErrNotFound) {
		t.Fatalf("Delete() by other err=%v, want %v", err, common.ErrNotFound)
	}
	if err := svc.Delete(context.Background(), owner, note.ID); err != nil {
		t.Fatalf("Delete() by owner err=%v", err)
	}
}

func doAs(t *testing.T, h http.Handler, user uuid.UUID, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(method, path, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	req = req.WithContext(middleware.WithIdentity(req.Context(), middleware.Identity{UserID: user}))
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	return rr
}

func TestHTTP_Notes(t *testing.T) {
	r := chi.NewRouter()
	NewHandler(NewService(newMemStore())).Routes(r)
	user := uuid.New()

	rr := doAs(t, r, user, http.MethodPost, "/notes", `{"content":"Su içmeyi unutma"}`)
	if rr.Code != http.StatusCreated {
		t.Fatalf("create status=%d body=%s", rr.Code, rr.Body.String())
	}

	rr = doAs(t, r, user, http.MethodPost, "/notes", `{"content":""}`)
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("empty status=%d, want %d", rr.Code, http.StatusBadRequest)
	}

	rr = doAs(t, r, user, http.MethodPost, "/notes", `{"content":"x","extra":1}`)
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("unknown field status=%d, want %d", rr.Code, http.StatusBadRequest)
	}

	rr = doAs(t, r, user, http.MethodDelete, "/notes/not-a-uuid", "")
	if rr.Code != http.StatusNotFound {
		t.Fatalf("bad id status=%d, want %d", rr.Code, http.StatusNotFound)
	}

	rr = doAs(t, r, user, http.MethodGet, "/notes", "")
	if rr.Code != http.StatusOK || !strings.Contains(rr.Body.String(), "Su içmeyi unutma") {
		t.Fatalf("list status=%d body=%s", rr.Code, rr.Body.String())
	}
}
