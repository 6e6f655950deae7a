// Package quotes — source.go: откуда берутся цитаты (Firestore или встроенный список).
package quotes

import (
	"context"
	"fmt"
	"strings"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// Source загружает полный список цитат.
type Source interface {
	Load(ctx context.Context) ([]Quote, error)
}

// DefaultCollection — коллекция цитат в Firestore.
const DefaultCollection = "MotivasyonSozleri"

type firestoreSource struct {
	client     *firestore.Client
	collection string
}

// NewFirestoreSource читает цитаты из коллекции Firestore.
func NewFirestoreSource(client *firestore.Client, collection string) Source {
	if collection == "" {
		collection = DefaultCollection
	}
	return &firestoreSource{client: client, collection: collection}
}

func (s *firestoreSource) Load(ctx context.Context) ([]Quote, error) {
	iter := s.client.Collection(s.collection).Documents(ctx)
	defer iter.Stop()

	var out []Quote
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if status.Code(err) == codes.NotFound {
			return nil, nil
		}
		if err != nil {
			return nil, fmt.Errorf("ошибка чтения цитат из Firestore: %w", err)
		}

		var q Quote
		if err := doc.DataTo(&q); err != nil {
			return nil, fmt.Errorf("цитата %s: %w", doc.Ref.ID, err)
		}
		if q.Text = strings.TrimSpace(q.Text); q.Text == "" {
			continue
		}
		out = append(out, q)
	}
	return out, nil
}

type staticSource struct {
	quotes []Quote
}

// NewStaticSource отдаёт встроенный список. Используется, когда Firestore не настроен.
func NewStaticSource(quotes ...Quote) Source {
	if len(quotes) == 0 {
		quotes = builtin
	}
	return &staticSource{quotes: quotes}
}

func (s *staticSource) Load(context.Context) ([]Quote, error) {
	return append([]Quote(nil), s.quotes...), nil
}

var builtin = []Quote{
	Fallback,
	{Text: "Bugünün işini yarına bırakma.", Author: "Atasözü"},
	{Text: "Damlaya damlaya göl olur.", Author: "Atasözü"},
	{Text: "Yapabileceğin en iyi şey, bugün başlamaktır.", Author: "Cepte Motivasyon"},
	{Text: "Küçük adımlar büyük yolculukların başlangıcıdır.", Author: "Cepte Motivasyon"},
}
