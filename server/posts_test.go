package server

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SteveHaveIt/Blog/db"
	"github.com/SteveHaveIt/Blog/model"
)

type stubDispatcher struct {
	updates []tgbotapi.Update
}

func (d *stubDispatcher) Dispatch(ctx context.Context, update tgbotapi.Update) {
	d.updates = append(d.updates, update)
}

type stubWebhooks struct {
	setURL string
}

func (w *stubWebhooks) SetWebhook(url string) error {
	w.setURL = url
	return nil
}

func (w *stubWebhooks) WebhookInfo() (tgbotapi.WebhookInfo, error) {
	return tgbotapi.WebhookInfo{URL: w.setURL}, nil
}

func newTestServer(t *testing.T) (*Server, *stubDispatcher, *stubWebhooks) {
	t.Helper()
	store, err := db.Open(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	dispatcher := &stubDispatcher{}
	webhooks := &stubWebhooks{}
	return New(store, dispatcher, webhooks), dispatcher, webhooks
}

func doJSON(t *testing.T, s *Server, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)
	return rec
}

func createTestPost(t *testing.T, s *Server) model.Post {
	t.Helper()
	rec := doJSON(t, s, http.MethodPost, "/api/posts", map[string]interface{}{
		"type":    "blog",
		"title":   "Hello",
		"content": "A full post body",
		"tags":    []string{"tech"},
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var resp struct {
		Data model.Post `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return resp.Data
}

func TestCreatePost(t *testing.T) {
	s, _, _ := newTestServer(t)

	post := createTestPost(t, s)
	assert.Equal(t, model.TypeBlog, post.Type)
	assert.Equal(t, "Hello", post.Title)
	assert.False(t, post.Published, "new posts start as drafts")
}

func TestCreatePostValidation(t *testing.T) {
	s, _, _ := newTestServer(t)

	rec := doJSON(t, s, http.MethodPost, "/api/posts", map[string]interface{}{
		"type": "blog",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code, "content is required")

	rec = doJSON(t, s, http.MethodPost, "/api/posts", map[string]interface{}{
		"type":    "podcast",
		"content": "body",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code, "type must be a known enum value")
}

func TestGetPost(t *testing.T) {
	s, _, _ := newTestServer(t)
	post := createTestPost(t, s)

	rec := doJSON(t, s, http.MethodGet, "/api/posts/"+post.ID, nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(t, s, http.MethodGet, "/api/posts/not-a-uuid", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = doJSON(t, s, http.MethodGet, "/api/posts/"+uuid.NewString(), nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestListPosts(t *testing.T) {
	s, _, _ := newTestServer(t)
	createTestPost(t, s)

	rec := doJSON(t, s, http.MethodGet, "/api/posts", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Data  []model.Post `json:"data"`
		Count int          `json:"count"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, 1, resp.Count)

	rec = doJSON(t, s, http.MethodGet, "/api/posts?published=true", nil)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, 0, resp.Count, "drafts are excluded from the published listing")

	rec = doJSON(t, s, http.MethodGet, "/api/posts?type=podcast", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestUpdateAndPublishPost(t *testing.T) {
	s, _, _ := newTestServer(t)
	post := createTestPost(t, s)

	rec := doJSON(t, s, http.MethodPut, "/api/posts/"+post.ID, map[string]interface{}{
		"title": "Updated",
	})
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(t, s, http.MethodPost, "/api/posts/"+post.ID+"/publish", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Data model.Post `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.True(t, resp.Data.Published)
	assert.Equal(t, "Updated", resp.Data.Title)
	assert.NotNil(t, resp.Data.PublishedAt)

	rec = doJSON(t, s, http.MethodPost, "/api/posts/"+uuid.NewString()+"/publish", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestDeletePost(t *testing.T) {
	s, _, _ := newTestServer(t)
	post := createTestPost(t, s)

	rec := doJSON(t, s, http.MethodDelete, "/api/posts/"+post.ID, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(t, s, http.MethodGet, "/api/posts/"+post.ID, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestTelegramWebhook(t *testing.T) {
	s, dispatcher, _ := newTestServer(t)

	rec := doJSON(t, s, http.MethodPost, "/api/telegram/webhook", tgbotapi.Update{
		UpdateID: 7,
		Message: &tgbotapi.Message{
			From: &tgbotapi.User{ID: 1},
			Chat: &tgbotapi.Chat{ID: 2},
			Text: "/new",
		},
	})
	require.Equal(t, http.StatusOK, rec.Code)
	require.Len(t, dispatcher.updates, 1)
	assert.Equal(t, 7, dispatcher.updates[0].UpdateID)
	assert.Contains(t, rec.Body.String(), `"success":true`)
}

func TestTelegramWebhookMalformed(t *testing.T) {
	s, dispatcher, _ := newTestServer(t)

	req := httptest.NewRequest(http.MethodPost, "/api/telegram/webhook", bytes.NewBufferString("{not json"))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code, "bad payloads are acknowledged, not errored")
	assert.Contains(t, rec.Body.String(), `"success":false`)
	assert.Empty(t, dispatcher.updates)
}

func TestSetWebhook(t *testing.T) {
	s, _, webhooks := newTestServer(t)

	rec := doJSON(t, s, http.MethodPost, "/api/telegram/set-webhook", map[string]string{
		"webhook_url": "https://example.com/api/telegram/webhook",
	})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "https://example.com/api/telegram/webhook", webhooks.setURL)

	rec = doJSON(t, s, http.MethodPost, "/api/telegram/set-webhook", map[string]string{
		"webhook_url": "not a url",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = doJSON(t, s, http.MethodGet, "/api/telegram/webhook-info", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "example.com")
}
