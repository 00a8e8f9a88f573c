package books

import (
	"context"
	"fmt"
	"regexp"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

// BooksCollection is the MongoDB collection holding the catalog.
const BooksCollection = "books"

type mongoStorage struct {
	coll *mongo.Collection
}

// NewMongoStorage returns a Storage backed by db.books.
func NewMongoStorage(db *mongo.Database) Storage {
	return &mongoStorage{coll: db.Collection(BooksCollection)}
}

func (s *mongoStorage) Search(ctx context.Context, q string, limit int64) ([]Book, error) {
	filter := bson.M{}
	if q != "" {
		re := bson.Regex{Pattern: regexp.QuoteMeta(q), Options: "i"}
		filter = bson.M{"$or": bson.A{
			bson.M{"cn_name": re},
			bson.M{"en_name": re},
			bson.M{"author": re},
		}}
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetLimit(limit)

	return s.find(ctx, filter, opts)
}

func (s *mongoStorage) FindByNames(ctx context.Context, cnName, enName string) ([]Book, error) {
	var or bson.A
	if cnName != "" {
		or = append(or, bson.M{"cn_name": cnName})
	}
	if enName != "" {
		or = append(or, bson.M{"en_name": enName})
	}
	if len(or) == 0 {
		return nil, nil
	}
	return s.find(ctx, bson.M{"$or": or})
}

func (s *mongoStorage) find(ctx context.Context, filter bson.M, opts ...options.Lister[options.FindOptions]) ([]Book, error) {
	cur, err := s.coll.Find(ctx, filter, opts...)
	if err != nil {
		return nil, fmt.Errorf("books: find: %w", err)
	}

	books := []Book{}
	if err := cur.All(ctx, &books); err != nil {
		return nil, fmt.Errorf("books: decode: %w", err)
	}
	return books, nil
}

func (s *mongoStorage) Insert(ctx context.Context, b *Book) (bson.ObjectID, error) {
	res, err := s.coll.InsertOne(ctx, b)
	if err != nil {
		return bson.NilObjectID, fmt.Errorf("books: insert: %w", err)
	}
	id, ok := res.InsertedID.(bson.ObjectID)
	if !ok {
		return bson.NilObjectID, fmt.Errorf("books: unexpected inserted id type %T", res.InsertedID)
	}
	return id, nil
}

func (s *mongoStorage) Update(ctx context.Context, id bson.ObjectID, set bson.M) error {
	res, err := s.coll.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": set})
	if err != nil {
		return fmt.Errorf("books: update %s: %w", id.Hex(), err)
	}
	if res.MatchedCount == 0 {
		return ErrBookNotFound
	}
	return nil
}

func (s *mongoStorage) Count(ctx context.Context) (int64, error) {
	n, err := s.coll.CountDocuments(ctx, bson.M{})
	if err != nil {
		return 0, fmt.Errorf("books: count: %w", err)
	}
	return n, nil
}
