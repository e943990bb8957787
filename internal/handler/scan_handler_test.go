package handler_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"receiptscan/internal/domain"
	"receiptscan/internal/handler"
	"receiptscan/internal/port"
	"receiptscan/internal/router"
	"receiptscan/internal/scanner"
	"receiptscan/mocks"
)

const receiptJSON = `{
  "orderRef": "61e4fb2646c424c5cbc9bc88",
  "date": "2023-07-21",
  "totalAmount": 568.00,
  "taxAmount": 74.08,
  "currency": "NOK",
  "merchant": {"name": "Minde Pizzeria", "vatId": "921670362MVA", "address": "Conrad Mohrs veg 5, 5068 Bergen, NOR"},
  "lineItems": [{"text": "Pizza Margherita", "qty": 1, "price": 189.00, "sku": null}]
}`

func newTestRouter(modelContent string, source port.TextSource) *gin.Engine {
	gin.SetMode(gin.TestMode)

	client := new(mocks.MockCompletionClient)
	client.On("CreateChatCompletion", mock.Anything, mock.Anything).Return(&port.ChatResponse{
		Choices: []port.ChatChoice{
			{Message: port.ChatMessage{Role: "assistant", Content: modelContent}},
		},
	}, nil)

	sc := scanner.New(scanner.EmbeddedTemplates{}, client, "")
	scanH := handler.NewScanHandler(sc, source, 10)
	return router.Setup(scanH, handler.NewHealthHandler())
}

func doJSON(t *testing.T, r *gin.Engine, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	payload, err := json.Marshal(body)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestScanHandler_Scan_Success(t *testing.T) {
	r := newTestRouter(receiptJSON, nil)

	w := doJSON(t, r, "/api/v1/scan", gin.H{"text": "Minde Pizzeria Totalt NOK 568,00"})

	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Success bool           `json:"success"`
		Data    map[string]any `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.Equal(t, 568.00, resp.Data["totalAmount"])
	assert.Equal(t, "NOK", resp.Data["currency"])

	merchant := resp.Data["merchant"].(map[string]any)
	assert.Equal(t, "Minde Pizzeria", merchant["name"])
}

func TestScanHandler_Scan_AsArray(t *testing.T) {
	r := newTestRouter(receiptJSON, nil)

	w := doJSON(t, r, "/api/v1/scan", gin.H{"text": "some receipt text", "as_array": true})

	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Data map[string]any `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "61e4fb2646c424c5cbc9bc88", resp.Data["orderRef"])
	assert.Equal(t, "2023-07-21", resp.Data["date"])
}

func TestScanHandler_Scan_MissingText(t *testing.T) {
	r := newTestRouter(receiptJSON, nil)

	w := doJSON(t, r, "/api/v1/scan", gin.H{"model": "gpt-4"})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "INVALID_REQUEST")
}

func TestScanHandler_Scan_UnsupportedModel(t *testing.T) {
	r := newTestRouter(receiptJSON, nil)

	w := doJSON(t, r, "/api/v1/scan", gin.H{"text": "receipt", "model": "davinci-003"})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "UNSUPPORTED_MODEL")
}

func TestScanHandler_Scan_UnusableModelOutput(t *testing.T) {
	r := newTestRouter("no json in this reply", nil)

	w := doJSON(t, r, "/api/v1/scan", gin.H{"text": "receipt"})

	assert.Equal(t, http.StatusBadGateway, w.Code)
	assert.Contains(t, w.Body.String(), "UNPARSABLE_RESPONSE")
}

func TestScanHandler_Scan_IncompleteExtraction(t *testing.T) {
	r := newTestRouter(`{"totalAmount": 568.00}`, nil)

	w := doJSON(t, r, "/api/v1/scan", gin.H{"text": "receipt"})

	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Contains(t, w.Body.String(), "EXTRACTION_INCOMPLETE")
}

func TestScanHandler_ScanFile_Success(t *testing.T) {
	source := new(mocks.MockTextSource)
	source.On("Load", mock.Anything, []byte("fake image bytes")).
		Return(domain.TextContent("Minde Pizzeria Totalt NOK 568,00"), nil)

	r := newTestRouter(receiptJSON, source)

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fw, err := mw.CreateFormFile("file", "receipt.jpg")
	require.NoError(t, err)
	_, err = fw.Write([]byte("fake image bytes"))
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/v1/scan/file", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Minde Pizzeria")
	source.AssertExpectations(t)
}

func TestScanHandler_ScanFile_OcrFailure(t *testing.T) {
	source := new(mocks.MockTextSource)
	source.On("Load", mock.Anything, mock.Anything).
		Return(domain.TextContent(""), fmt.Errorf("%w: throttled", domain.ErrOcrServiceFailed))

	r := newTestRouter(receiptJSON, source)

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fw, err := mw.CreateFormFile("file", "receipt.jpg")
	require.NoError(t, err)
	_, err = fw.Write([]byte("fake image bytes"))
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/v1/scan/file", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadGateway, w.Code)
	assert.Contains(t, w.Body.String(), "OCR_FAILED")
}

func TestHealthz(t *testing.T) {
	r := newTestRouter(receiptJSON, nil)

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.True(t, strings.Contains(w.Body.String(), "ok"))
}
