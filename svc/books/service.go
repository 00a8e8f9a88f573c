package books

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"

	"github.com/hustwenchao/bookshelf/pkg/logger"
	"github.com/hustwenchao/bookshelf/pkg/metrics"
	"github.com/hustwenchao/bookshelf/pkg/sanitizer"
	"github.com/hustwenchao/bookshelf/pkg/validator"
)

// SearchLimit caps the number of search results.
const SearchLimit = 50

const (
	maxNameLen = 500
	maxLinkLen = 2048

	msgNameRequired = "Either Chinese name or English name is required"
	msgIDRequired   = "Book ID is required"
)

type Service struct {
	storage Storage
	metrics metrics.Recorder
	logger  *slog.Logger
	now     func() time.Time
}

type ServiceOption func(*Service)

func WithLogger(l *slog.Logger) ServiceOption {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

func WithMetrics(r metrics.Recorder) ServiceOption {
	return func(s *Service) {
		if r != nil {
			s.metrics = r
		}
	}
}

func WithClock(now func() time.Time) ServiceOption {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}

func NewService(storage Storage, opts ...ServiceOption) *Service {
	s := &Service{
		storage: storage,
		metrics: metrics.Noop{},
		logger:  logger.Discard(),
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Search returns up to SearchLimit books matching q, newest first.
func (s *Service) Search(ctx context.Context, q string) ([]Book, error) {
	return s.storage.Search(ctx, sanitizer.CleanText(q), SearchLimit)
}

func (s *Service) Count(ctx context.Context) (int64, error) {
	return s.storage.Count(ctx)
}

// Add inserts a book. Unless in.ForceAdd is set, a *DuplicateError listing
// books with an equal name is returned instead.
func (s *Service) Add(ctx context.Context, in AddInput) (bson.ObjectID, error) {
	in.Trim()
	if err := validateFields(in.Fields); err != nil {
		return bson.NilObjectID, err
	}

	if !in.ForceAdd {
		dups, err := s.storage.FindByNames(ctx, in.CNName, in.ENName)
		if err != nil {
			s.metrics.CatalogWrite("add", "error")
			return bson.NilObjectID, err
		}
		if len(dups) > 0 {
			s.metrics.CatalogWrite("add", "duplicate")
			return bson.NilObjectID, &DuplicateError{Duplicates: dups}
		}
	}

	id, err := s.storage.Insert(ctx, in.book(s.now().UTC()))
	if err != nil {
		s.metrics.CatalogWrite("add", "error")
		return bson.NilObjectID, err
	}

	s.metrics.CatalogWrite("add", "success")
	s.logger.InfoContext(ctx, "book added",
		logger.BookID(id.Hex()),
		slog.Bool("forced", in.ForceAdd),
	)
	return id, nil
}

// Update sets the non-empty fields of in on the book with in.ID.
func (s *Service) Update(ctx context.Context, in UpdateInput) error {
	in.Trim()
	in.ID = sanitizer.Trim(in.ID)
	if err := validator.Apply(validator.RequiredWithMessage("_id", in.ID, msgIDRequired)); err != nil {
		return err
	}
	id, err := bson.ObjectIDFromHex(in.ID)
	if err != nil {
		return fmt.Errorf("%w: %q", ErrInvalidID, in.ID)
	}
	if err := validateFields(in.Fields); err != nil {
		return err
	}

	if err := s.storage.Update(ctx, id, in.NonEmpty()); err != nil {
		result := "error"
		if errors.Is(err, ErrBookNotFound) {
			result = "not_found"
		}
		s.metrics.CatalogWrite("update", result)
		return err
	}

	s.metrics.CatalogWrite("update", "success")
	s.logger.InfoContext(ctx, "book updated", logger.BookID(id.Hex()))
	return nil
}

func validateFields(f Fields) error {
	return validator.Apply(
		validator.AnyRequired("name", msgNameRequired, f.CNName, f.ENName),
		validator.MaxLen("cn_name", f.CNName, maxNameLen),
		validator.MaxLen("en_name", f.ENName, maxNameLen),
		validator.MaxLen("author", f.Author, maxNameLen),
		validator.MaxLen("author_cn_name", f.AuthorCNName, maxNameLen),
		validator.MaxLen("cn_douban_link", f.CNDoubanLink, maxLinkLen),
		validator.MaxLen("en_douban_link", f.ENDoubanLink, maxLinkLen),
		validator.MaxLen("author_wiki_link", f.AuthorWikiLink, maxLinkLen),
	)
}
