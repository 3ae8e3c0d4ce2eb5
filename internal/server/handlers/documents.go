package handlers

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/iudanet/progresskeeper/internal/models"
	"github.com/iudanet/progresskeeper/internal/server/storage"
	"github.com/iudanet/progresskeeper/internal/validation"
	"github.com/iudanet/progresskeeper/pkg/api"
)

const (
	// MaxBatchWrites максимальное количество документов в одном батче
	MaxBatchWrites = 500
	// maxBatchBodySize ограничение размера тела запроса батча
	maxBatchBodySize = 8 << 20
)

// DocumentsHandler обрабатывает запросы к документам пользователя
type DocumentsHandler struct {
	logger  *slog.Logger
	storage storage.DocumentStorage
}

// NewDocumentsHandler создает новый handler документов
func NewDocumentsHandler(logger *slog.Logger, storage storage.DocumentStorage) *DocumentsHandler {
	return &DocumentsHandler{
		logger:  logger,
		storage: storage,
	}
}

// Batch обрабатывает POST /api/v1/batch
// Все документы батча применяются в одной транзакции; при ошибке валидации
// отклоняется весь батч.
func (h *DocumentsHandler) Batch(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	userID, ok := GetUserID(ctx)
	if !ok {
		h.logger.ErrorContext(ctx, "user id not found in context")
		SendError(h.logger, w, "unauthorized", http.StatusUnauthorized)
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxBatchBodySize)

	var req api.BatchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.WarnContext(ctx, "failed to decode batch request", slog.Any("error", err))
		SendError(h.logger, w, "invalid request body", http.StatusBadRequest)
		return
	}

	if len(req.Writes) > MaxBatchWrites {
		SendError(h.logger, w, fmt.Sprintf("batch must not exceed %d writes", MaxBatchWrites), http.StatusBadRequest)
		return
	}

	entries := make([]*models.Entry, 0, len(req.Writes))
	for i, doc := range req.Writes {
		if err := validateDocument(doc); err != nil {
			h.logger.WarnContext(ctx, "invalid document in batch",
				slog.String("user_id", userID),
				slog.Int("index", i),
				slog.Any("error", err))
			SendError(h.logger, w, err.Error(), http.StatusBadRequest)
			return
		}

		entries = append(entries, &models.Entry{
			Collection:   doc.Collection,
			ID:           doc.ID,
			Payload:      doc.Payload,
			LastModified: doc.LastModified,
		})
	}

	committed, err := h.storage.CommitBatch(ctx, userID, entries)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to commit batch", slog.String("user_id", userID), slog.Any("error", err))
		SendError(h.logger, w, "internal server error", http.StatusInternalServerError)
		return
	}

	h.logger.InfoContext(ctx, "batch committed",
		slog.String("user_id", userID),
		slog.Int("committed", committed))

	sendJSON(h.logger, w, api.BatchResponse{Committed: committed}, http.StatusOK)
}

// Collection обрабатывает GET /api/v1/collections/{collection}
func (h *DocumentsHandler) Collection(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	userID, ok := GetUserID(ctx)
	if !ok {
		h.logger.ErrorContext(ctx, "user id not found in context")
		SendError(h.logger, w, "unauthorized", http.StatusUnauthorized)
		return
	}

	// Извлекаем collection из path parameter (Go 1.22+)
	collection := r.PathValue("collection")
	if err := validation.ValidateCollection(collection); err != nil {
		SendError(h.logger, w, err.Error(), http.StatusBadRequest)
		return
	}

	entries, err := h.storage.GetCollection(ctx, userID, collection)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to get collection", slog.String("collection", collection), slog.Any("error", err))
		SendError(h.logger, w, "internal server error", http.StatusInternalServerError)
		return
	}

	resp := api.CollectionResponse{Documents: make([]api.Document, 0, len(entries))}
	for _, entry := range entries {
		resp.Documents = append(resp.Documents, api.Document{
			Collection:   entry.Collection,
			ID:           entry.ID,
			Payload:      entry.Payload,
			LastModified: entry.LastModified,
		})
	}

	h.logger.DebugContext(ctx, "returning collection",
		slog.String("user_id", userID),
		slog.String("collection", collection),
		slog.Int("count", len(entries)))

	sendJSON(h.logger, w, resp, http.StatusOK)
}

// ServerTime обрабатывает POST /api/v1/time
// Записывает служебный документ со временем сервера и возвращает его.
func (h *DocumentsHandler) ServerTime(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	userID, ok := GetUserID(ctx)
	if !ok {
		h.logger.ErrorContext(ctx, "user id not found in context")
		SendError(h.logger, w, "unauthorized", http.StatusUnauthorized)
		return
	}

	serverTime, err := h.storage.StampServerTime(ctx, userID)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to stamp server time", slog.Any("error", err))
		SendError(h.logger, w, "internal server error", http.StatusInternalServerError)
		return
	}

	sendJSON(h.logger, w, api.ServerTimeResponse{ServerTime: serverTime}, http.StatusOK)
}

func validateDocument(doc api.Document) error {
	if err := validation.ValidateCollection(doc.Collection); err != nil {
		return err
	}
	if err := validation.ValidateDocumentID(doc.ID); err != nil {
		return err
	}
	if err := validation.ValidatePayloadSize(len(doc.Payload)); err != nil {
		return fmt.Errorf("%s/%s: %w", doc.Collection, doc.ID, err)
	}
	if !json.Valid(doc.Payload) {
		return fmt.Errorf("%s/%s: payload is not valid JSON", doc.Collection, doc.ID)
	}
	if doc.LastModified < 0 {
		return fmt.Errorf("%s/%s: last_modified must not be negative", doc.Collection, doc.ID)
	}
	return nil
}
