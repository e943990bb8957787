package handler

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"receiptscan/internal/domain"
	"receiptscan/internal/port"
	"receiptscan/internal/scanner"
)

// ScanHandler exposes the extraction pipeline over HTTP.
type ScanHandler struct {
	scanner     *scanner.Scanner
	source      port.TextSource
	maxFileSize int64
}

// NewScanHandler creates a ScanHandler. maxFileSizeMB bounds file uploads.
func NewScanHandler(s *scanner.Scanner, source port.TextSource, maxFileSizeMB int64) *ScanHandler {
	return &ScanHandler{
		scanner:     s,
		source:      source,
		maxFileSize: maxFileSizeMB * 1024 * 1024,
	}
}

type scanRequest struct {
	Text    string `json:"text" binding:"required"`
	Model   string `json:"model"`
	AsArray bool   `json:"as_array"`
}

// Scan extracts a receipt from already-OCR'd text.
// POST /api/v1/scan
func (h *ScanHandler) Scan(c *gin.Context) {
	var req scanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", "text is required")
		return
	}

	var opts []scanner.Option
	if req.Model != "" {
		opts = append(opts, scanner.WithModel(domain.ModelName(req.Model)))
	}

	if req.AsArray {
		result, err := h.scanner.ScanMap(c.Request.Context(), req.Text, opts...)
		if err != nil {
			HandleError(c, err)
			return
		}
		RespondOK(c, result)
		return
	}

	receipt, err := h.scanner.Scan(c.Request.Context(), req.Text, opts...)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, receipt.ToMap())
}

// ScanFile runs OCR on an uploaded image or PDF, then extracts a receipt.
// POST /api/v1/scan/file
func (h *ScanHandler) ScanFile(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", "file is required")
		return
	}
	if fileHeader.Size > h.maxFileSize {
		RespondError(c, http.StatusRequestEntityTooLarge, "FILE_TOO_LARGE", "file exceeds maximum allowed size")
		return
	}

	f, err := fileHeader.Open()
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", "cannot read uploaded file")
		return
	}
	defer func() { _ = f.Close() }()

	data, err := io.ReadAll(f)
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", "cannot read uploaded file")
		return
	}

	text, err := h.source.Load(c.Request.Context(), data)
	if err != nil {
		HandleError(c, err)
		return
	}

	var opts []scanner.Option
	if model := c.PostForm("model"); model != "" {
		opts = append(opts, scanner.WithModel(domain.ModelName(model)))
	}

	receipt, err := h.scanner.Scan(c.Request.Context(), text.String(), opts...)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, receipt.ToMap())
}
