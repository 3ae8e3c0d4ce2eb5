package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iudanet/progresskeeper/internal/models"
	"github.com/iudanet/progresskeeper/internal/server/storage/sqlite"
	"github.com/iudanet/progresskeeper/internal/validation"
	"github.com/iudanet/progresskeeper/pkg/api"
)

// failingStorage возвращает ошибку на любой вызов
type failingStorage struct{}

func (failingStorage) CommitBatch(ctx context.Context, userID string, entries []*models.Entry) (int, error) {
	return 0, errors.New("disk I/O error")
}

func (failingStorage) GetCollection(ctx context.Context, userID, collection string) ([]*models.Entry, error) {
	return nil, errors.New("disk I/O error")
}

func (failingStorage) StampServerTime(ctx context.Context, userID string) (int64, error) {
	return 0, errors.New("disk I/O error")
}

func createUser(t *testing.T, store *sqlite.Storage) string {
	t.Helper()

	h := NewAuthHandler(testLogger(), store, testJWTConfig())
	w := httptest.NewRecorder()
	h.SignInAnonymous(w, httptest.NewRequest(http.MethodPost, "/api/v1/auth/anonymous", nil))
	require.Equal(t, http.StatusCreated, w.Code)

	var resp api.SignInResponse
	decodeBody(t, w, &resp)
	return resp.UserID
}

func withUser(r *http.Request, userID string) *http.Request {
	return r.WithContext(WithUserID(r.Context(), userID))
}

func doc(collection, id, payload string, ts int64) api.Document {
	return api.Document{Collection: collection, ID: id, Payload: json.RawMessage(payload), LastModified: ts}
}

func TestDocumentsHandler_BatchAndCollection(t *testing.T) {
	store := setupTestStorage(t)
	userID := createUser(t, store)
	h := NewDocumentsHandler(testLogger(), store)

	req := jsonRequest(t, http.MethodPost, "/api/v1/batch", api.BatchRequest{Writes: []api.Document{
		doc(models.CollectionCurrencies, "gold", `{"id":"gold","amount":150}`, 20),
		doc(models.CollectionUpgrades, "axe", `{"id":"axe","level":2}`, 21),
	}})
	w := httptest.NewRecorder()
	h.Batch(w, withUser(req, userID))

	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var batchResp api.BatchResponse
	decodeBody(t, w, &batchResp)
	assert.Equal(t, 2, batchResp.Committed)

	// Коллекция читается через маршрутизатор, чтобы заполнить PathValue
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/v1/collections/{collection}", h.Collection)

	w = httptest.NewRecorder()
	mux.ServeHTTP(w, withUser(httptest.NewRequest(http.MethodGet, "/api/v1/collections/currencies", nil), userID))
	require.Equal(t, http.StatusOK, w.Code)

	var collResp api.CollectionResponse
	decodeBody(t, w, &collResp)
	require.Len(t, collResp.Documents, 1)
	assert.Equal(t, "gold", collResp.Documents[0].ID)
	assert.Equal(t, int64(20), collResp.Documents[0].LastModified)
	assert.JSONEq(t, `{"id":"gold","amount":150}`, string(collResp.Documents[0].Payload))

	// Пустая коллекция возвращается как пустой массив
	w = httptest.NewRecorder()
	mux.ServeHTTP(w, withUser(httptest.NewRequest(http.MethodGet, "/api/v1/collections/quests", nil), userID))
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"documents":[]}`, w.Body.String())
}

func TestDocumentsHandler_BatchRejectsInvalid(t *testing.T) {
	store := setupTestStorage(t)
	userID := createUser(t, store)
	h := NewDocumentsHandler(testLogger(), store)

	tests := []struct {
		name   string
		errMsg string
		writes []api.Document
	}{
		{
			name:   "invalid collection",
			writes: []api.Document{doc("Bad/Collection", "gold", `{}`, 1)},
			errMsg: "collection",
		},
		{
			name:   "invalid id",
			writes: []api.Document{doc(models.CollectionCurrencies, "a/b", `{}`, 1)},
			errMsg: "document id",
		},
		{
			name:   "oversized payload",
			writes: []api.Document{doc(models.CollectionCurrencies, "gold", `{"blob":"`+strings.Repeat("x", validation.MaxPayloadSize)+`"}`, 1)},
			errMsg: "payload must not exceed",
		},
		{
			name:   "negative timestamp",
			writes: []api.Document{doc(models.CollectionCurrencies, "gold", `{}`, -1)},
			errMsg: "last_modified",
		},
		{
			name: "one bad document rejects whole batch",
			writes: []api.Document{
				doc(models.CollectionCurrencies, "gold", `{"id":"gold"}`, 1),
				doc(models.CollectionCurrencies, "", `{}`, 1),
			},
			errMsg: "document id",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := jsonRequest(t, http.MethodPost, "/api/v1/batch", api.BatchRequest{Writes: tt.writes})
			w := httptest.NewRecorder()
			h.Batch(w, withUser(req, userID))

			assert.Equal(t, http.StatusBadRequest, w.Code)
			var resp api.ErrorResponse
			decodeBody(t, w, &resp)
			assert.Contains(t, resp.Message, tt.errMsg)
		})
	}

	docs, err := store.GetCollection(context.Background(), userID, models.CollectionCurrencies)
	require.NoError(t, err)
	assert.Empty(t, docs)
}

func TestDocumentsHandler_BatchTooLarge(t *testing.T) {
	h := NewDocumentsHandler(testLogger(), failingStorage{})

	writes := make([]api.Document, MaxBatchWrites+1)
	for i := range writes {
		writes[i] = doc(models.CollectionCurrencies, "gold", `{}`, 1)
	}

	w := httptest.NewRecorder()
	h.Batch(w, withUser(jsonRequest(t, http.MethodPost, "/api/v1/batch", api.BatchRequest{Writes: writes}), "user"))
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestDocumentsHandler_Unauthenticated(t *testing.T) {
	h := NewDocumentsHandler(testLogger(), failingStorage{})

	for name, fn := range map[string]http.HandlerFunc{
		"batch":      h.Batch,
		"collection": h.Collection,
		"time":       h.ServerTime,
	} {
		t.Run(name, func(t *testing.T) {
			w := httptest.NewRecorder()
			fn(w, httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{}`)))
			assert.Equal(t, http.StatusUnauthorized, w.Code)
		})
	}
}

func TestDocumentsHandler_StorageErrors(t *testing.T) {
	h := NewDocumentsHandler(testLogger(), failingStorage{})

	w := httptest.NewRecorder()
	h.Batch(w, withUser(jsonRequest(t, http.MethodPost, "/api/v1/batch", api.BatchRequest{Writes: []api.Document{
		doc(models.CollectionCurrencies, "gold", `{}`, 1),
	}}), "user"))
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.NotContains(t, w.Body.String(), "disk I/O")

	w = httptest.NewRecorder()
	h.ServerTime(w, withUser(httptest.NewRequest(http.MethodPost, "/api/v1/time", nil), "user"))
	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestDocumentsHandler_ServerTime(t *testing.T) {
	store := setupTestStorage(t)
	userID := createUser(t, store)
	h := NewDocumentsHandler(testLogger(), store)

	before := time.Now().Unix()
	w := httptest.NewRecorder()
	h.ServerTime(w, withUser(httptest.NewRequest(http.MethodPost, "/api/v1/time", nil), userID))
	require.Equal(t, http.StatusOK, w.Code)

	var resp api.ServerTimeResponse
	decodeBody(t, w, &resp)
	assert.InDelta(t, before, resp.ServerTime, 2)
}
