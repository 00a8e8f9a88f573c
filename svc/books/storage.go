package books

import (
	"context"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// Storage is the persistence boundary of the catalog.
type Storage interface {
	// Search matches q case-insensitively as a substring of the Chinese
	// name, English name or author, newest first. An empty q matches all.
	Search(ctx context.Context, q string, limit int64) ([]Book, error)

	// FindByNames returns books whose cn_name equals cnName or whose
	// en_name equals enName. Empty names are ignored.
	FindByNames(ctx context.Context, cnName, enName string) ([]Book, error)

	Insert(ctx context.Context, b *Book) (bson.ObjectID, error)

	// Update sets the given fields. Returns ErrBookNotFound when no book
	// has id.
	Update(ctx context.Context, id bson.ObjectID, set bson.M) error

	Count(ctx context.Context) (int64, error)
}
