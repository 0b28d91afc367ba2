package server

import (
	"bytes"
	"context"
	"encoding/json"
	"image"
	"image/color"
	"image/jpeg"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/expenserule/expenserule/internal/config"
	"github.com/expenserule/expenserule/internal/llm"
	"github.com/expenserule/expenserule/internal/storage"
)

// fakeCompletions mimics the chat-completions endpoint: image requests get
// the scripted extraction JSON, plain requests get the scripted category.
type fakeCompletions struct {
	extraction     string
	classification string
	calls          int
}

func (f *fakeCompletions) handler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		f.calls++
		body, _ := io.ReadAll(r.Body)
		content := f.classification
		if strings.Contains(string(body), "image_url") {
			content = f.extraction
		}
		encoded, _ := json.Marshal(content)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":"chatcmpl-t","choices":[{"message":{"role":"assistant","content":` +
			string(encoded) + `},"finish_reason":"stop","index":0}]}`))
	})
}

type testEnv struct {
	server  *Server
	storage *storage.SQLiteStorage
	dataDir string
	remote  *fakeCompletions
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	dataDir := t.TempDir()
	require.NoError(t, config.EnsureDataDirs(dataDir))

	store, err := storage.NewSQLiteStorage(config.DatabasePath(dataDir))
	require.NoError(t, err)
	require.NoError(t, store.Migrate(context.Background()))
	t.Cleanup(func() { _ = store.Close() })

	remote := &fakeCompletions{
		extraction:     `{"merchant": "Starbucks", "date": "2024-03-15", "amount": 7.85}`,
		classification: "Other Expenses",
	}
	remoteServer := httptest.NewServer(remote.handler())
	t.Cleanup(remoteServer.Close)

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	srv := New(Config{
		Addr:    "127.0.0.1:0",
		DataDir: dataDir,
		LLM: llm.Config{
			BaseURL:    remoteServer.URL,
			MaxRetries: 1,
			RetryDelay: time.Millisecond,
		},
	}, store, logger)

	return &testEnv{server: srv, storage: store, dataDir: dataDir, remote: remote}
}

func (e *testEnv) configureKey(t *testing.T) {
	t.Helper()
	require.NoError(t, config.SaveAPIKey(e.dataDir, "sk-test"))
}

func (e *testEnv) do(t *testing.T, method, path string, body io.Reader, header http.Header) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, body)
	for k, v := range header {
		req.Header[k] = v
	}
	rec := httptest.NewRecorder()
	e.server.routes().ServeHTTP(rec, req)
	return rec
}

func (e *testEnv) doJSON(t *testing.T, method, path string, payload any) *httptest.ResponseRecorder {
	t.Helper()
	body, err := json.Marshal(payload)
	require.NoError(t, err)
	header := http.Header{"Content-Type": []string{"application/json"}}
	return e.do(t, method, path, bytes.NewReader(body), header)
}

func receiptJPEG(t *testing.T) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 80, 120))
	for y := 0; y < 120; y++ {
		for x := 0; x < 80; x++ {
			img.Set(x, y, color.RGBA{240, 240, uint8(2 * y), 255})
		}
	}
	var buf bytes.Buffer
	require.NoError(t, jpeg.Encode(&buf, img, nil))
	return buf.Bytes()
}

func multipartUpload(t *testing.T, filename, contentType string, data []byte) (io.Reader, http.Header) {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)

	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", `form-data; name="file"; filename="`+filename+`"`)
	h.Set("Content-Type", contentType)
	part, err := mw.CreatePart(h)
	require.NoError(t, err)
	_, err = part.Write(data)
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	header := http.Header{"Content-Type": []string{mw.FormDataContentType()}}
	return &buf, header
}

func TestHealthz(t *testing.T) {
	env := newTestEnv(t)
	rec := env.do(t, http.MethodGet, "/healthz", nil, nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestListCategories(t *testing.T) {
	env := newTestEnv(t)
	rec := env.do(t, http.MethodGet, "/api/categories", nil, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var categories []map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &categories))
	require.Len(t, categories, 19)
	assert.Equal(t, "Advertising", categories[0]["name"])
	assert.Equal(t, "8", categories[0]["schedule_c_line"])
}

func TestUploadRequiresAPIKey(t *testing.T) {
	env := newTestEnv(t)
	body, header := multipartUpload(t, "r.jpg", "image/jpeg", receiptJPEG(t))
	rec := env.do(t, http.MethodPost, "/upload/parse", body, header)
	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestUploadUnsupportedType(t *testing.T) {
	env := newTestEnv(t)
	env.configureKey(t)

	body, header := multipartUpload(t, "r.gif", "image/gif", []byte("GIF89a"))
	rec := env.do(t, http.MethodPost, "/upload/parse", body, header)
	assert.Equal(t, http.StatusUnsupportedMediaType, rec.Code)
}

func TestUploadTooLarge(t *testing.T) {
	env := newTestEnv(t)
	env.configureKey(t)

	huge := bytes.Repeat([]byte{0xAB}, maxUploadBytes+1)
	body, header := multipartUpload(t, "r.jpg", "image/jpeg", huge)
	rec := env.do(t, http.MethodPost, "/upload/parse", body, header)
	assert.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)
}

func TestUploadMalformedMultipart(t *testing.T) {
	env := newTestEnv(t)
	env.configureKey(t)

	header := http.Header{}
	header.Set("Content-Type", "multipart/form-data; boundary=deadbeef")
	body := strings.NewReader("this is not a multipart body")
	rec := env.do(t, http.MethodPost, "/upload/parse", body, header)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestUploadParseHappyPath(t *testing.T) {
	env := newTestEnv(t)
	env.configureKey(t)

	body, header := multipartUpload(t, "receipt.jpg", "image/jpeg", receiptJPEG(t))
	rec := env.do(t, http.MethodPost, "/upload/parse", body, header)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var resp struct {
		UploadID       string   `json:"upload_id"`
		Merchant       string   `json:"merchant"`
		Date           *string  `json:"date"`
		Amount         *float64 `json:"amount"`
		Category       string   `json:"category"`
		ScheduleCLine  string   `json:"schedule_c_line"`
		CategorySource string   `json:"category_source"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))

	assert.Equal(t, "Starbucks", resp.Merchant)
	require.NotNil(t, resp.Date)
	assert.Equal(t, "2024-03-15", *resp.Date)
	require.NotNil(t, resp.Amount)
	assert.InDelta(t, 7.85, *resp.Amount, 0.001)

	// "starbucks" is in the built-in table, so the suggestion comes from the
	// lookup tier and only the extraction round trip hits the remote service.
	assert.Equal(t, "Meals", resp.Category)
	assert.Equal(t, "24b", resp.ScheduleCLine)
	assert.Equal(t, "lookup", resp.CategorySource)
	assert.Equal(t, 1, env.remote.calls)

	// The original upload is kept on disk under the returned id.
	stored := filepath.Join(config.UploadsDir(env.dataDir), resp.UploadID+".jpg")
	_, err := os.Stat(stored)
	assert.NoError(t, err)
}

func TestUploadConversionFailureKeepsOriginal(t *testing.T) {
	env := newTestEnv(t)
	env.configureKey(t)

	body, header := multipartUpload(t, "broken.jpg", "image/jpeg", []byte("not a real jpeg"))
	rec := env.do(t, http.MethodPost, "/upload/parse", body, header)
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	// The stored original must survive the failed conversion.
	entries, err := os.ReadDir(config.UploadsDir(env.dataDir))
	require.NoError(t, err)
	require.Len(t, entries, 1)
	data, err := os.ReadFile(filepath.Join(config.UploadsDir(env.dataDir), entries[0].Name()))
	require.NoError(t, err)
	assert.Equal(t, []byte("not a real jpeg"), data)
}

func TestUploadExtractionFailureIsBadGateway(t *testing.T) {
	env := newTestEnv(t)
	env.configureKey(t)
	env.remote.extraction = "I am not JSON"

	body, header := multipartUpload(t, "receipt.jpg", "image/jpeg", receiptJPEG(t))
	rec := env.do(t, http.MethodPost, "/upload/parse", body, header)
	assert.Equal(t, http.StatusBadGateway, rec.Code)
}

func TestExpenseCreateAndList(t *testing.T) {
	env := newTestEnv(t)

	rec := env.doJSON(t, http.MethodPost, "/api/expenses", map[string]any{
		"merchant": "Staples",
		"date":     "2024-03-15",
		"amount":   42.97,
		"category": "Office Expense",
		"notes":    "paper",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	rec = env.do(t, http.MethodGet, "/api/expenses", nil, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var expenses []map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &expenses))
	require.Len(t, expenses, 1)
	assert.Equal(t, "Staples", expenses[0]["merchant"])
}

func TestExpenseCreateValidation(t *testing.T) {
	env := newTestEnv(t)

	tests := []struct {
		name    string
		payload map[string]any
	}{
		{"missing merchant", map[string]any{"category": "Meals", "amount": 5}},
		{"unknown category", map[string]any{"merchant": "X", "category": "Groceries"}},
		{"lowercase category", map[string]any{"merchant": "X", "category": "meals"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := env.doJSON(t, http.MethodPost, "/api/expenses", tt.payload)
			assert.Equal(t, http.StatusBadRequest, rec.Code)
		})
	}

	rec := env.do(t, http.MethodPost, "/api/expenses", strings.NewReader("{broken"), nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestExpenseRememberSavesCorrection(t *testing.T) {
	env := newTestEnv(t)

	rec := env.doJSON(t, http.MethodPost, "/api/expenses", map[string]any{
		"merchant": "Dave's Diner",
		"date":     "2024-06-01",
		"amount":   18.50,
		"category": "Meals",
		"remember": true,
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	correction, err := env.storage.GetCorrection(context.Background(), "dave's diner")
	require.NoError(t, err)
	assert.Equal(t, "Meals", correction.Category)
}

func TestExpenseUpdateAndDelete(t *testing.T) {
	env := newTestEnv(t)

	rec := env.doJSON(t, http.MethodPost, "/api/expenses", map[string]any{
		"merchant": "Amazon",
		"date":     "2024-04-01",
		"amount":   89.99,
		"category": "Supplies",
	})
	require.Equal(t, http.StatusCreated, rec.Code)
	var created map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	id := int64(created["id"].(float64))
	require.NotZero(t, id)

	rec = env.doJSON(t, http.MethodPut, "/api/expenses/1", map[string]any{
		"merchant": "Amazon",
		"date":     "2024-04-01",
		"amount":   89.99,
		"category": "Office Expense",
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	expense, err := env.storage.GetExpense(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, "Office Expense", expense.Category)
	assert.Equal(t, "18", expense.ScheduleCLine)

	rec = env.do(t, http.MethodDelete, "/api/expenses/1", nil, nil)
	assert.Equal(t, http.StatusNoContent, rec.Code)
	rec = env.do(t, http.MethodDelete, "/api/expenses/1", nil, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = env.doJSON(t, http.MethodPut, "/api/expenses/999", map[string]any{
		"merchant": "Ghost",
		"category": "Meals",
	})
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = env.do(t, http.MethodDelete, "/api/expenses/abc", nil, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestExportCSV(t *testing.T) {
	env := newTestEnv(t)

	rec := env.doJSON(t, http.MethodPost, "/api/expenses", map[string]any{
		"merchant": "Shell",
		"date":     "2024-05-01",
		"amount":   60.1,
		"category": "Car and Truck Expenses",
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = env.do(t, http.MethodGet, "/export.csv", nil, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "text/csv", rec.Header().Get("Content-Type"))

	lines := strings.Split(strings.TrimSpace(rec.Body.String()), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, "merchant,date,amount,category,schedule_c_line,notes", lines[0])
	assert.Equal(t, "Shell,2024-05-01,60.10,Car and Truck Expenses,9,", lines[1])
}

func TestSetup(t *testing.T) {
	env := newTestEnv(t)

	rec := env.doJSON(t, http.MethodPost, "/setup", map[string]any{"api_key": "sk-new-key"})
	require.Equal(t, http.StatusOK, rec.Code)

	key, err := config.LoadAPIKey(env.dataDir)
	require.NoError(t, err)
	assert.Equal(t, "sk-new-key", key)

	rec = env.doJSON(t, http.MethodPost, "/setup", map[string]any{"api_key": "  "})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = env.do(t, http.MethodPost, "/setup", strings.NewReader("{"), nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
