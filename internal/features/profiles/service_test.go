package profiles

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"

	"github.com/BlqckRiad/CepteMotivasyon/internal/common"
)

type fakeStore struct {
	ensureFn func(ctx context.Context, userID uuid.UUID, username string) error
	getFn    func(ctx context.Context, userID uuid.UUID) (*Profile, error)
}

func (f *fakeStore) Ensure(ctx context.Context, userID uuid.UUID, username string) error {
	return f.ensureFn(ctx, userID, username)
}

func (f *fakeStore) GetByID(ctx context.Context, userID uuid.UUID) (*Profile, error) {
	return f.getFn(ctx, userID)
}

func TestEnsureProfile_UsernameFromEmail(t *testing.T) {
	user := uuid.New()
	cases := map[string]string{
		"Ayse.Yilmaz@example.com": "ayse.yilmaz",
		"":                        "",
		"no-at-sign":              "no-at-sign",
	}
	for email, want := range cases {
		var got string
		svc := NewService(&fakeStore{ensureFn: func(_ context.Context, id uuid.UUID, username string) error {
			if id != user {
				t.Fatalf("userID=%s", id)
			}
			got = username
			return nil
		}})
		if err := svc.EnsureProfile(context.Background(), user, email); err != nil {
			t.Fatalf("EnsureProfile(%q) err=%v", email, err)
		}
		if got != want {
			t.Fatalf("EnsureProfile(%q) username=%q, want %q", email, got, want)
		}
	}
}

func TestEnsureProfile_PropagatesError(t *testing.T) {
	boom := errors.New("db down")
	svc := NewService(&fakeStore{ensureFn: func(context.Context, uuid.UUID, string) error { return boom }})
	if err := svc.EnsureProfile(context.Background(), uuid.New(), "a@b.c"); !errors.Is(err, boom) {
		t.Fatalf("err=%v", err)
	}
}

func TestGetProfile_NotFound(t *testing.T) {
	svc := NewService(&fakeStore{getFn: func(context.Context, uuid.UUID) (*Profile, error) {
		return nil, common.ErrNotFound
	}})
	if _, err := svc.GetProfile(context.Background(), uuid.New()); !errors.Is(err, common.ErrNotFound) {
		t.Fatalf("err=%v", err)
	}
}
