package education

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/BlqckRiad/CepteMotivasyon/internal/common"
)

// memStore хранит материалы в памяти, List отдаёт новые первыми.
type memStore struct {
	items []Content
	now   time.Time
}

func (m *memStore) List(context.Context) ([]Content, error) {
	var out []Content
	for i := len(m.items) - 1; i >= 0; i-- {
		out = append(out, m.items[i])
	}
	return out, nil
}

func (m *memStore) Create(_ context.Context, in NewContent) (*Content, error) {
	m.now = m.now.Add(time.Minute)
	c := Content{
		ID:          int64(len(m.items) + 1),
		Title:       in.Title,
		Description: in.Description,
		ContentURL:  in.ContentURL,
		ImageURL:    in.ImageURL,
		Duration:    in.Duration,
		CreatedAt:   m.now,
	}
	m.items = append(m.items, c)
	return &c, nil
}

func TestCreate_Validation(t *testing.T) {
	svc := NewService(&memStore{})

	tests := []struct {
		name    string
		in      NewContent
		wantErr bool
	}{
		{"ok", NewContent{Title: "Nefes egzersizi", ContentURL: "https://example.com/nefes", Duration: "5 dk"}, false},
		{"title spaces", NewContent{Title: "   ", ContentURL: "https://example.com/a"}, true},
		{"no url", NewContent{Title: "Uyku düzeni"}, true},
		{"bad url", NewContent{Title: "Uyku düzeni", ContentURL: "uyku"}, true},
		{"bad image", NewContent{Title: "Uyku düzeni", ContentURL: "https://example.com/u", ImageURL: "resim"}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Create(context.Background(), tt.in)
			if tt.wantErr && !errors.Is(err, common.ErrInvalidInput) {
				t.Fatalf("err=%v, want %v", err, common.ErrInvalidInput)
			}
			if !tt.wantErr && err != nil {
				t.Fatalf("err=%v", err)
			}
		})
	}
}

func TestCreate_TrimsFields(t *testing.T) {
	svc := NewService(&memStore{})

	c, err := svc.Create(context.Background(), NewContent{
		Title:      "  Sabah rutini ",
		ContentURL: " https://example.com/sabah ",
	})
	if err != nil {
		t.Fatalf("Create() err=%v", err)
	}
	if c.Title != "Sabah rutini" || c.ContentURL != "https://example.com/sabah" {
		t.Fatalf("content=%+v", c)
	}
}

func TestHTTP_ListNewestFirst(t *testing.T) {
	store := &memStore{}
	svc := NewService(store)
	r := chi.NewRouter()
	NewHandler(svc).Routes(r)

	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/education", nil))
	if rr.Code != http.StatusOK || rr.Body.String() != "[]\n" {
		t.Fatalf("empty list status=%d body=%q", rr.Code, rr.Body.String())
	}

	for _, title := range []string{"Birinci", "İkinci"} {
		if _, err := svc.Create(context.Background(), NewContent{Title: title, ContentURL: "https://example.com/" + title}); err != nil {
			t.Fatalf("Create(%s) err=%v", title, err)
		}
	}

	rr = httptest.NewRecorder()
	r.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/education", nil))
	var got []Content
	if err := json.Unmarshal(rr.Body.Bytes(), &got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(got) != 2 || got[0].Title != "İkinci" {
		t.Fatalf("list=%+v, want newest first", got)
	}
}
