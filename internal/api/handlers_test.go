package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/openai/openai-go/v3"

	"quoteforge/internal/auth"
	"quoteforge/internal/models"
	"quoteforge/internal/redis"
	"quoteforge/internal/service/generator"
	"quoteforge/internal/service/library"
	"quoteforge/internal/service/settings"
	"quoteforge/internal/storage"
	"quoteforge/internal/uploads"
)

type stubChat struct {
	resp   string
	err    error
	params openai.ChatCompletionNewParams
}

func (s *stubChat) Complete(ctx context.Context, params openai.ChatCompletionNewParams) (string, error) {
	s.params = params
	if s.err != nil {
		return "", s.err
	}
	return s.resp, nil
}

type memKV struct {
	data map[string]string
}

func (m *memKV) Get(ctx context.Context, key string) (string, error) {
	val, ok := m.data[key]
	if !ok {
		return "", redis.ErrCacheMiss
	}
	return val, nil
}

func (m *memKV) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	m.data[key] = value.(string)
	return nil
}

func newTestServer(t *testing.T) (*gin.Engine, *stubChat) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := storage.OpenSQLite(":memory:")
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	if err := storage.Migrate(db, "sqlite3"); err != nil {
		t.Fatalf("migrate db: %v", err)
	}

	chat := &stubChat{resp: "A test line worth keeping."}
	handler := NewHandler(
		library.NewService(db),
		auth.NewService(db, nil, time.Hour),
		generator.NewService(chat, nil, nil),
		settings.NewStore(&memKV{data: make(map[string]string)}, nil),
		uploads.NewService(t.TempDir(), "http://localhost:8090/files", nil),
		nil,
	)

	router := gin.New()
	handler.RegisterRoutes(router)
	return router, chat
}

func doJSONRequest(t *testing.T, router *gin.Engine, method, path string, body interface{}, headers map[string]string) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func decodeJSON(t *testing.T, data []byte, v interface{}) {
	t.Helper()
	if err := json.Unmarshal(data, v); err != nil {
		t.Fatalf("decode json: %v", err)
	}
}

func assertStatus(t *testing.T, rec *httptest.ResponseRecorder, want int) {
	t.Helper()
	if rec.Code != want {
		t.Fatalf("unexpected status %d, body: %s", rec.Code, rec.Body.String())
	}
}

func registerAndLogin(t *testing.T, router *gin.Engine) (int64, map[string]string) {
	t.Helper()
	username := fmt.Sprintf("tester_%d", time.Now().UnixNano())
	password := "pass123"
	regResp := doJSONRequest(t, router, http.MethodPost, "/api/users/register", map[string]string{
		"username": username,
		"password": password,
	}, nil)
	assertStatus(t, regResp, http.StatusCreated)
	var regBody struct {
		ID int64 `json:"id"`
	}
	decodeJSON(t, regResp.Body.Bytes(), &regBody)

	loginResp := doJSONRequest(t, router, http.MethodPost, "/api/users/login", map[string]string{
		"username": username,
		"password": password,
	}, nil)
	assertStatus(t, loginResp, http.StatusOK)
	var loginBody struct {
		AuthToken string `json:"auth_token"`
	}
	decodeJSON(t, loginResp.Body.Bytes(), &loginBody)
	if loginBody.AuthToken == "" {
		t.Fatalf("expected auth token after login")
	}
	authHeader := map[string]string{"Authorization": fmt.Sprintf("Bearer %s", loginBody.AuthToken)}
	return regBody.ID, authHeader
}

func TestGenerateQuoteEndpoint(t *testing.T) {
	router, chat := newTestServer(t)
	chat.resp = "Quote: \"Keep walking,   the road gives up first.\""

	resp := doJSONRequest(t, router, http.MethodPost, "/functions/v1/generate-quote",
		map[string]any{"text": "stubborn hiking story"}, nil)
	assertStatus(t, resp, http.StatusOK)
	if got := resp.Header().Get("Access-Control-Allow-Origin"); got != "*" {
		t.Fatalf("missing CORS header, got %q", got)
	}
	var body struct {
		Quote string `json:"quote"`
	}
	decodeJSON(t, resp.Body.Bytes(), &body)
	if body.Quote != "Keep walking, the road gives up first." {
		t.Fatalf("unexpected quote: %q", body.Quote)
	}
}

func TestGenerateQuoteEndpointNeverFails(t *testing.T) {
	router, chat := newTestServer(t)

	// Upstream failure.
	chat.err = &generator.UpstreamError{Message: "model offline"}
	resp := doJSONRequest(t, router, http.MethodPost, "/functions/v1/generate-quote",
		map[string]any{"text": "anything"}, nil)
	assertStatus(t, resp, http.StatusOK)
	var body struct {
		Quote string `json:"quote"`
	}
	decodeJSON(t, resp.Body.Bytes(), &body)
	if body.Quote != generator.FallbackQuote {
		t.Fatalf("expected fallback on upstream failure, got %q", body.Quote)
	}

	// Empty input.
	chat.err = nil
	resp = doJSONRequest(t, router, http.MethodPost, "/functions/v1/generate-quote",
		map[string]any{"text": "  "}, nil)
	assertStatus(t, resp, http.StatusOK)
	decodeJSON(t, resp.Body.Bytes(), &body)
	if body.Quote != generator.FallbackQuote {
		t.Fatalf("expected fallback for empty input, got %q", body.Quote)
	}

	// Malformed body.
	req := httptest.NewRequest(http.MethodPost, "/functions/v1/generate-quote", strings.NewReader("{not json"))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	assertStatus(t, rec, http.StatusOK)
	decodeJSON(t, rec.Body.Bytes(), &body)
	if body.Quote != generator.FallbackQuote {
		t.Fatalf("expected fallback for malformed body, got %q", body.Quote)
	}
}

func TestGenerateEndpointsPreflight(t *testing.T) {
	router, _ := newTestServer(t)

	for _, path := range []string{"/functions/v1/generate-quote", "/functions/v1/generate-flux-prompt"} {
		req := httptest.NewRequest(http.MethodOptions, path, nil)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		if rec.Code != http.StatusOK {
			t.Fatalf("preflight %s: status %d", path, rec.Code)
		}
		if rec.Header().Get("Access-Control-Allow-Origin") != "*" {
			t.Fatalf("preflight %s: missing allow-origin", path)
		}
		if got := rec.Header().Get("Access-Control-Allow-Headers"); got != "authorization, x-client-info, apikey, content-type" {
			t.Fatalf("preflight %s: unexpected allow-headers %q", path, got)
		}
	}
}

func TestGenerateFluxPromptEndpoint(t *testing.T) {
	router, chat := newTestServer(t)
	chat.resp = "  A lighthouse at dawn, volumetric fog, 35mm.  "

	resp := doJSONRequest(t, router, http.MethodPost, "/functions/v1/generate-flux-prompt",
		map[string]any{"text": "lighthouse"}, nil)
	assertStatus(t, resp, http.StatusOK)
	var body struct {
		Prompt string `json:"prompt"`
	}
	decodeJSON(t, resp.Body.Bytes(), &body)
	if body.Prompt != "A lighthouse at dawn, volumetric fog, 35mm." {
		t.Fatalf("unexpected prompt: %q", body.Prompt)
	}

	// Missing text surfaces a 400, not a fallback.
	resp = doJSONRequest(t, router, http.MethodPost, "/functions/v1/generate-flux-prompt",
		map[string]any{"text": ""}, nil)
	assertStatus(t, resp, http.StatusBadRequest)

	// Upstream failure surfaces a 502 with the error message.
	chat.err = &generator.UpstreamError{Message: "model offline"}
	resp = doJSONRequest(t, router, http.MethodPost, "/functions/v1/generate-flux-prompt",
		map[string]any{"text": "lighthouse"}, nil)
	assertStatus(t, resp, http.StatusBadGateway)
	if !strings.Contains(resp.Body.String(), "OpenAI API error: model offline") {
		t.Fatalf("error message not surfaced: %s", resp.Body.String())
	}
}

func TestGenerateFluxPromptOverrides(t *testing.T) {
	router, chat := newTestServer(t)
	chat.resp = "A fox in neon rain."

	resp := doJSONRequest(t, router, http.MethodPost, "/functions/v1/generate-flux-prompt",
		map[string]any{"text": "a fox", "model": "o3-mini", "systemPrompt": "Answer in one line."}, nil)
	assertStatus(t, resp, http.StatusOK)

	if chat.params.Model != "o3-mini" {
		t.Fatalf("model override not forwarded: %s", chat.params.Model)
	}
	system := chat.params.Messages[0].OfSystem.Content.OfString.Value
	if system != "Answer in one line." {
		t.Fatalf("system prompt override not forwarded: %q", system)
	}
	// The override model lands in the reasoning family.
	if got := chat.params.MaxCompletionTokens.Value; got != 1500 {
		t.Fatalf("expected completion-token budget for o3-mini, got %d", got)
	}
	if chat.params.Temperature.Valid() {
		t.Fatalf("reasoning override should drop the temperature knob")
	}
}

func TestQuoteLibraryEndpoints(t *testing.T) {
	router, _ := newTestServer(t)
	userID, authHeader := registerAndLogin(t, router)
	base := fmt.Sprintf("/api/users/%d", userID)

	// Save two quotes.
	saveResp := doJSONRequest(t, router, http.MethodPost, base+"/quotes",
		map[string]any{"content": "The storm keeps its own schedule.", "source_text": "weather rant"}, authHeader)
	assertStatus(t, saveResp, http.StatusCreated)
	var saveBody struct {
		Quote models.Quote `json:"quote"`
	}
	decodeJSON(t, saveResp.Body.Bytes(), &saveBody)
	if saveBody.Quote.ID <= 0 {
		t.Fatalf("expected quote id, got %+v", saveBody.Quote)
	}
	saveResp = doJSONRequest(t, router, http.MethodPost, base+"/quotes",
		map[string]any{"content": "Quiet mornings pay old debts."}, authHeader)
	assertStatus(t, saveResp, http.StatusCreated)

	// List everything.
	listResp := doJSONRequest(t, router, http.MethodGet, base+"/quotes", nil, authHeader)
	assertStatus(t, listResp, http.StatusOK)
	var listBody struct {
		Quotes []models.Quote `json:"quotes"`
	}
	decodeJSON(t, listResp.Body.Bytes(), &listBody)
	if len(listBody.Quotes) != 2 {
		t.Fatalf("expected 2 quotes, got %d", len(listBody.Quotes))
	}
	if listBody.Quotes[0].Content != "Quiet mornings pay old debts." {
		t.Fatalf("expected newest first, got %q", listBody.Quotes[0].Content)
	}

	// Filtered list.
	listResp = doJSONRequest(t, router, http.MethodGet, base+"/quotes?q=storm", nil, authHeader)
	assertStatus(t, listResp, http.StatusOK)
	decodeJSON(t, listResp.Body.Bytes(), &listBody)
	if len(listBody.Quotes) != 1 || listBody.Quotes[0].ID != saveBody.Quote.ID {
		t.Fatalf("unexpected search result: %+v", listBody.Quotes)
	}

	// Delete and verify.
	delResp := doJSONRequest(t, router, http.MethodDelete,
		fmt.Sprintf("%s/quotes/%d", base, saveBody.Quote.ID), nil, authHeader)
	assertStatus(t, delResp, http.StatusNoContent)
	delResp = doJSONRequest(t, router, http.MethodDelete,
		fmt.Sprintf("%s/quotes/%d", base, saveBody.Quote.ID), nil, authHeader)
	assertStatus(t, delResp, http.StatusNotFound)

	// Blank content is rejected.
	saveResp = doJSONRequest(t, router, http.MethodPost, base+"/quotes",
		map[string]any{"content": "   "}, authHeader)
	assertStatus(t, saveResp, http.StatusBadRequest)
}

func TestQuoteRoutesRejectForeignUser(t *testing.T) {
	router, _ := newTestServer(t)
	_, aliceHeader := registerAndLogin(t, router)
	bobID, _ := registerAndLogin(t, router)

	resp := doJSONRequest(t, router, http.MethodGet,
		fmt.Sprintf("/api/users/%d/quotes", bobID), nil, aliceHeader)
	assertStatus(t, resp, http.StatusForbidden)

	resp = doJSONRequest(t, router, http.MethodGet,
		fmt.Sprintf("/api/users/%d/quotes", bobID), nil, nil)
	assertStatus(t, resp, http.StatusUnauthorized)
}

func TestSettingsEndpoints(t *testing.T) {
	router, _ := newTestServer(t)
	userID, authHeader := registerAndLogin(t, router)
	base := fmt.Sprintf("/api/users/%d/settings", userID)

	// Defaults before anything is saved.
	getResp := doJSONRequest(t, router, http.MethodGet, base, nil, authHeader)
	assertStatus(t, getResp, http.StatusOK)
	var got models.Settings
	decodeJSON(t, getResp.Body.Bytes(), &got)
	if got.Quote.Model != "gpt-5-chat-latest" || got.Image.Model != "gpt-5-chat-latest" {
		t.Fatalf("unexpected default models: %+v", got)
	}

	// Patch one field of one profile.
	patchResp := doJSONRequest(t, router, http.MethodPatch, base,
		map[string]any{"quote": map[string]any{"model": "gpt-4o"}}, authHeader)
	assertStatus(t, patchResp, http.StatusOK)
	decodeJSON(t, patchResp.Body.Bytes(), &got)
	if got.Quote.Model != "gpt-4o" {
		t.Fatalf("patch not applied: %+v", got.Quote)
	}
	if got.Image.Model != "gpt-5-chat-latest" {
		t.Fatalf("patch leaked into the image profile: %+v", got.Image)
	}

	// The change persists across reads.
	getResp = doJSONRequest(t, router, http.MethodGet, base, nil, authHeader)
	assertStatus(t, getResp, http.StatusOK)
	decodeJSON(t, getResp.Body.Bytes(), &got)
	if got.Quote.Model != "gpt-4o" {
		t.Fatalf("patched value lost: %+v", got.Quote)
	}
}

func doMultipartUpload(t *testing.T, router *gin.Engine, path string, files map[string][]byte, headers map[string]string) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	for name, content := range files {
		part, err := writer.CreateFormFile("files", name)
		if err != nil {
			t.Fatalf("create form file: %v", err)
		}
		if _, err := part.Write(content); err != nil {
			t.Fatalf("write form file: %v", err)
		}
	}
	if err := writer.Close(); err != nil {
		t.Fatalf("close writer: %v", err)
	}
	req := httptest.NewRequest(http.MethodPost, path, &buf)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestUploadEndpoints(t *testing.T) {
	router, _ := newTestServer(t)
	userID, authHeader := registerAndLogin(t, router)
	base := fmt.Sprintf("/api/users/%d/uploads", userID)

	resp := doMultipartUpload(t, router, base, map[string][]byte{
		"notes.txt": []byte("remember the milk"),
	}, authHeader)
	assertStatus(t, resp, http.StatusOK)
	var body struct {
		Files   []models.UploadedFile `json:"files"`
		Skipped []uploads.Skipped     `json:"skipped"`
	}
	decodeJSON(t, resp.Body.Bytes(), &body)
	if len(body.Files) != 1 || len(body.Skipped) != 0 {
		t.Fatalf("unexpected upload result: %+v", body)
	}
	if body.Files[0].Name != "notes.txt" {
		t.Fatalf("unexpected file name: %s", body.Files[0].Name)
	}

	// Delete the stored file by its id.
	delResp := doJSONRequest(t, router, http.MethodDelete,
		fmt.Sprintf("%s/%s", base, body.Files[0].ID), nil, authHeader)
	assertStatus(t, delResp, http.StatusNoContent)

	// Empty form is rejected.
	resp = doMultipartUpload(t, router, base, map[string][]byte{}, authHeader)
	assertStatus(t, resp, http.StatusBadRequest)
}

func TestUploadOversizedIsPartialSuccess(t *testing.T) {
	router, _ := newTestServer(t)
	userID, authHeader := registerAndLogin(t, router)
	base := fmt.Sprintf("/api/users/%d/uploads", userID)

	resp := doMultipartUpload(t, router, base, map[string][]byte{
		"huge.bin": bytes.Repeat([]byte("x"), uploads.MaxFileBytes+1),
		"ok.txt":   []byte("small enough"),
	}, authHeader)
	assertStatus(t, resp, http.StatusOK)
	var body struct {
		Files   []models.UploadedFile `json:"files"`
		Skipped []uploads.Skipped     `json:"skipped"`
	}
	decodeJSON(t, resp.Body.Bytes(), &body)
	if len(body.Files) != 1 || body.Files[0].Name != "ok.txt" {
		t.Fatalf("expected only the small file, got %+v", body.Files)
	}
	if len(body.Skipped) != 1 || body.Skipped[0].Reason != "huge.bin is larger than 10MB" {
		t.Fatalf("unexpected skip record: %+v", body.Skipped)
	}
}

func TestLogoutAndDeleteAccount(t *testing.T) {
	router, _ := newTestServer(t)
	userID, authHeader := registerAndLogin(t, router)

	logoutResp := doJSONRequest(t, router, http.MethodPost,
		fmt.Sprintf("/api/users/%d/logout", userID), nil, authHeader)
	assertStatus(t, logoutResp, http.StatusNoContent)

	// The revoked token no longer works.
	resp := doJSONRequest(t, router, http.MethodGet,
		fmt.Sprintf("/api/users/%d/quotes", userID), nil, authHeader)
	assertStatus(t, resp, http.StatusUnauthorized)

	// Fresh login, then delete the account.
	userID2, authHeader2 := registerAndLogin(t, router)
	delResp := doJSONRequest(t, router, http.MethodDelete,
		fmt.Sprintf("/api/users/%d", userID2), nil, authHeader2)
	assertStatus(t, delResp, http.StatusNoContent)
	resp = doJSONRequest(t, router, http.MethodGet,
		fmt.Sprintf("/api/users/%d/quotes", userID2), nil, authHeader2)
	assertStatus(t, resp, http.StatusUnauthorized)
}
