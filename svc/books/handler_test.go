package books

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/v2/bson"

	"github.com/hustwenchao/bookshelf/handler"
)

func newTestHandler(t *testing.T, opts ...HandlerOption) (http.Handler, *MockStorage) {
	t.Helper()

	storage := &MockStorage{}
	rec := &MockRecorder{}
	rec.On("CatalogWrite", mock.Anything, mock.Anything).Maybe()

	return NewHandler(newTestService(storage, rec), opts...).Handle(), storage
}

func serve(h http.Handler, method, target, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestHandler_Search(t *testing.T) {
	t.Parallel()

	h, storage := newTestHandler(t)
	id := bson.NewObjectID()
	storage.On("Search", mock.Anything, "three body", int64(SearchLimit)).
		Return([]Book{{ID: id, ENName: "The Three-Body Problem"}}, nil).Once()
	storage.On("Search", mock.Anything, "", int64(SearchLimit)).Return(nil, nil).Once()

	rec := serve(h, http.MethodGet, "/search?q=three+body", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Results []Book `json:"results"`
	}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	require.Len(t, body.Results, 1)
	assert.Equal(t, id, body.Results[0].ID)

	rec = serve(h, http.MethodGet, "/search", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"results":[]}`, rec.Body.String())
}

func TestHandler_Add(t *testing.T) {
	t.Parallel()

	t.Run("success", func(t *testing.T) {
		t.Parallel()

		h, storage := newTestHandler(t)
		id := bson.NewObjectID()
		storage.On("FindByNames", mock.Anything, "", "Dune").Return([]Book{}, nil)
		storage.On("Insert", mock.Anything, mock.AnythingOfType("*books.Book")).Return(id, nil)

		rec := serve(h, http.MethodPost, "/books/add", `{"en_name":"Dune","author":"Frank Herbert"}`)
		require.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `{"success":true,"id":"`+id.Hex()+`"}`, rec.Body.String())
	})

	t.Run("duplicate", func(t *testing.T) {
		t.Parallel()

		h, storage := newTestHandler(t)
		existing := Book{ID: bson.NewObjectID(), ENName: "Dune"}
		storage.On("FindByNames", mock.Anything, "", "Dune").Return([]Book{existing}, nil)

		rec := serve(h, http.MethodPost, "/books/add", `{"en_name":"Dune"}`)
		require.Equal(t, http.StatusConflict, rec.Code)

		var body duplicateResponse
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
		assert.Equal(t, "duplicate", body.Status)
		assert.Equal(t, "Similar books found in database", body.Message)
		require.Len(t, body.Duplicates, 1)
		assert.Equal(t, existing.ID, body.Duplicates[0].ID)
		storage.AssertNotCalled(t, "Insert", mock.Anything, mock.Anything)
	})

	t.Run("force add", func(t *testing.T) {
		t.Parallel()

		h, storage := newTestHandler(t)
		storage.On("Insert", mock.Anything, mock.Anything).Return(bson.NewObjectID(), nil)

		rec := serve(h, http.MethodPost, "/books/add", `{"en_name":"Dune","forceAdd":true}`)
		assert.Equal(t, http.StatusOK, rec.Code)
		storage.AssertNotCalled(t, "FindByNames", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("missing name", func(t *testing.T) {
		t.Parallel()

		h, _ := newTestHandler(t)
		rec := serve(h, http.MethodPost, "/books/add", `{"author":"Anon"}`)
		require.Equal(t, http.StatusBadRequest, rec.Code)

		var body handler.ErrorBody
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
		assert.Equal(t, "validation_error", body.Error.Code)
	})

	t.Run("malformed body", func(t *testing.T) {
		t.Parallel()

		h, _ := newTestHandler(t)
		rec := serve(h, http.MethodPost, "/books/add", `{"en_name":`)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestHandler_Update(t *testing.T) {
	t.Parallel()

	id := bson.NewObjectID()

	t.Run("success", func(t *testing.T) {
		t.Parallel()

		h, storage := newTestHandler(t)
		storage.On("Update", mock.Anything, id, bson.M{"cn_name": "沙丘"}).Return(nil)

		rec := serve(h, http.MethodPut, "/books/update", `{"_id":"`+id.Hex()+`","cn_name":"沙丘"}`)
		require.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `{"success":true,"message":"Book updated successfully"}`, rec.Body.String())
	})

	t.Run("not found", func(t *testing.T) {
		t.Parallel()

		h, storage := newTestHandler(t)
		storage.On("Update", mock.Anything, id, mock.Anything).Return(ErrBookNotFound)

		rec := serve(h, http.MethodPut, "/books/update", `{"_id":"`+id.Hex()+`","cn_name":"沙丘"}`)
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("missing id", func(t *testing.T) {
		t.Parallel()

		h, _ := newTestHandler(t)
		rec := serve(h, http.MethodPut, "/books/update", `{"cn_name":"沙丘"}`)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Contains(t, rec.Body.String(), "Book ID is required")
	})

	t.Run("invalid id", func(t *testing.T) {
		t.Parallel()

		h, _ := newTestHandler(t)
		rec := serve(h, http.MethodPut, "/books/update", `{"_id":"123","cn_name":"沙丘"}`)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestHandler_Count(t *testing.T) {
	t.Parallel()

	t.Run("success", func(t *testing.T) {
		t.Parallel()

		h, storage := newTestHandler(t)
		storage.On("Count", mock.Anything).Return(int64(42), nil)

		rec := serve(h, http.MethodGet, "/count", "")
		require.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `{"count":42}`, rec.Body.String())
	})

	t.Run("storage error is generic 500", func(t *testing.T) {
		t.Parallel()

		h, storage := newTestHandler(t)
		storage.On("Count", mock.Anything).Return(int64(0), errors.New("server selection timeout"))

		rec := serve(h, http.MethodGet, "/count", "")
		require.Equal(t, http.StatusInternalServerError, rec.Code)
		assert.NotContains(t, rec.Body.String(), "server selection")
	})
}

func TestHandler_Middleware(t *testing.T) {
	t.Parallel()

	deny := func(http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			handler.WriteError(w, handler.ErrUnauthorized)
		})
	}

	h, storage := newTestHandler(t, WithMiddleware(deny))
	rec := serve(h, http.MethodPost, "/books/add", `{"en_name":"Dune"}`)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	storage.AssertNotCalled(t, "FindByNames", mock.Anything, mock.Anything, mock.Anything)
	storage.AssertNotCalled(t, "Insert", mock.Anything, mock.Anything)
}
