package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sync"
	"time"

	"github.com/iudanet/progresskeeper/internal/client/remote"
	"github.com/iudanet/progresskeeper/internal/models"
	"github.com/iudanet/progresskeeper/pkg/api"
)

// Проверяем, что Client реализует удаленное хранилище
var _ remote.Store = (*Client)(nil)

// Client представляет HTTP клиент для взаимодействия с сервером
type Client struct {
	httpClient  *http.Client
	baseURL     string
	accessToken string
	mu          sync.RWMutex
}

// NewClient создает новый API клиент
func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
			// Настройка обработки редиректов
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				// Ограничиваем количество редиректов
				if len(via) >= 10 {
					return fmt.Errorf("stopped after 10 redirects")
				}
				// Копируем заголовки Authorization при редиректе
				if len(via) > 0 && via[0].Header.Get("Authorization") != "" {
					req.Header.Set("Authorization", via[0].Header.Get("Authorization"))
				}
				return nil
			},
		},
	}
}

// SetAccessToken устанавливает токен для авторизованных запросов
func (c *Client) SetAccessToken(token string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.accessToken = token
}

func (c *Client) token() string {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return c.accessToken
}

// SignInAnonymous создает анонимного пользователя или выполняет повторный вход устройства
func (c *Client) SignInAnonymous(ctx context.Context, req api.SignInRequest) (*api.SignInResponse, error) {
	var resp api.SignInResponse
	err := c.doRequest(ctx, http.MethodPost, "/api/v1/auth/anonymous", false, req, &resp)
	if err != nil {
		return nil, fmt.Errorf("sign in request failed: %w", err)
	}
	return &resp, nil
}

// Health проверяет доступность сервера
func (c *Client) Health(ctx context.Context) error {
	if err := c.doRequest(ctx, http.MethodGet, "/api/v1/health", false, nil, nil); err != nil {
		return fmt.Errorf("health request failed: %w", err)
	}
	return nil
}

// GetServerTime возвращает авторитетное время сервера (unix seconds).
// Сервер записывает служебный документ со своим временем и возвращает его.
func (c *Client) GetServerTime(ctx context.Context) (int64, error) {
	var resp api.ServerTimeResponse
	if err := c.doRequest(ctx, http.MethodPost, "/api/v1/time", true, nil, &resp); err != nil {
		return 0, fmt.Errorf("server time request failed: %w", err)
	}
	return resp.ServerTime, nil
}

// GetCollection возвращает все документы коллекции текущего пользователя
func (c *Client) GetCollection(ctx context.Context, collection string) ([]*models.Entry, error) {
	var resp api.CollectionResponse
	path := "/api/v1/collections/" + url.PathEscape(collection)
	if err := c.doRequest(ctx, http.MethodGet, path, true, nil, &resp); err != nil {
		return nil, fmt.Errorf("get collection request failed: %w", err)
	}

	entries := make([]*models.Entry, 0, len(resp.Documents))
	for _, doc := range resp.Documents {
		entries = append(entries, &models.Entry{
			Collection:   doc.Collection,
			ID:           doc.ID,
			Payload:      doc.Payload,
			LastModified: doc.LastModified,
		})
	}

	return entries, nil
}

// CreateBatch создает новый батч записи
func (c *Client) CreateBatch() remote.Batch {
	return &batch{
		client: c,
		writes: make(map[models.Key]int),
	}
}

// batch накапливает документы и отправляет их одним запросом
type batch struct {
	client *Client
	writes map[models.Key]int // индекс документа в docs
	docs   []api.Document
}

// Stage добавляет документ в батч, повторный ключ заменяет документ
func (b *batch) Stage(collection, id string, entry *models.Entry) {
	doc := api.Document{
		Collection:   collection,
		ID:           id,
		Payload:      entry.Payload,
		LastModified: entry.LastModified,
	}

	key := models.Key{Collection: collection, ID: id}
	if i, ok := b.writes[key]; ok {
		b.docs[i] = doc
		return
	}

	b.writes[key] = len(b.docs)
	b.docs = append(b.docs, doc)
}

// Commit отправляет батч. Сервер применяет все документы в одной транзакции.
func (b *batch) Commit(ctx context.Context) error {
	if len(b.docs) == 0 {
		return nil
	}

	var resp api.BatchResponse
	req := api.BatchRequest{Writes: b.docs}
	if err := b.client.doRequest(ctx, http.MethodPost, "/api/v1/batch", true, req, &resp); err != nil {
		return fmt.Errorf("batch commit failed: %w", err)
	}

	if resp.Committed != len(b.docs) {
		return fmt.Errorf("batch commit incomplete: %d of %d documents", resp.Committed, len(b.docs))
	}

	return nil
}

// doRequest выполняет HTTP запрос
func (c *Client) doRequest(ctx context.Context, method, path string, auth bool, body, result interface{}) error {
	endpoint := c.baseURL + path

	var bodyReader io.Reader
	if body != nil {
		jsonData, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request body: %w", err)
		}
		bodyReader = bytes.NewReader(jsonData)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, bodyReader)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	if auth {
		token := c.token()
		if token == "" {
			// Без сессии не ходим в сеть
			return remote.ErrUnauthenticated
		}
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	// Читаем тело ответа
	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}

	// Проверяем статус код
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		message := string(respBody)
		var errResp api.ErrorResponse
		if err := json.Unmarshal(respBody, &errResp); err == nil && errResp.Error != "" {
			message = errResp.Error
			if errResp.Message != "" {
				message += ": " + errResp.Message
			}
		}

		if resp.StatusCode == http.StatusUnauthorized {
			return fmt.Errorf("%w: %s", remote.ErrUnauthenticated, message)
		}
		return fmt.Errorf("server error (%d): %s", resp.StatusCode, message)
	}

	// Декодируем успешный ответ
	if result != nil {
		if err := json.Unmarshal(respBody, result); err != nil {
			return fmt.Errorf("failed to decode response: %w", err)
		}
	}

	return nil
}
