package server

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"

	"github.com/google/uuid"

	"github.com/expenserule/expenserule/internal/common"
	"github.com/expenserule/expenserule/internal/config"
	"github.com/expenserule/expenserule/internal/llm"
	"github.com/expenserule/expenserule/internal/normalize"
)

// maxUploadBytes caps receipt uploads at 20 MB.
const maxUploadBytes = 20 << 20

var uploadExtensions = map[string]string{
	normalize.ContentTypeJPEG: ".jpg",
	normalize.ContentTypePNG:  ".png",
	normalize.ContentTypePDF:  ".pdf",
}

// handleUploadParse accepts a JPEG, PNG, or PDF receipt, stores the original
// bytes under a UUID name, runs the ingestion pipeline, and returns the
// extracted fields with a category suggestion for the user to review. The
// original file is persisted before normalization is attempted, so a failed
// conversion never loses the user's only copy of the receipt.
func (s *Server) handleUploadParse(w http.ResponseWriter, r *http.Request) {
	orchestrator, _, err := s.pipeline()
	if err != nil {
		if errors.Is(err, common.ErrMissingAPIKey) {
			writeError(w, http.StatusConflict, "OpenAI API key not configured; run setup first")
			return
		}
		s.logger.Error("failed to build ingestion pipeline", "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			writeError(w, http.StatusRequestEntityTooLarge, "file too large: maximum is 20 MB")
			return
		}
		writeError(w, http.StatusBadRequest, "malformed multipart body")
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		writeError(w, http.StatusBadRequest, "missing file field")
		return
	}
	defer func() { _ = file.Close() }()

	contentType := header.Header.Get("Content-Type")
	ext, ok := uploadExtensions[contentType]
	if !ok {
		writeError(w, http.StatusUnsupportedMediaType,
			fmt.Sprintf("unsupported file type %q: upload a JPEG, PNG, or PDF", contentType))
		return
	}

	raw, err := io.ReadAll(file)
	if err != nil {
		writeError(w, http.StatusRequestEntityTooLarge, "file too large: maximum is 20 MB")
		return
	}

	// Persist the original with a stable UUID name so the stored copy
	// survives any downstream failure.
	uploadID := uuid.New().String()
	storedPath := filepath.Join(config.UploadsDir(s.cfg.DataDir), uploadID+ext)
	if err := os.WriteFile(storedPath, raw, 0600); err != nil {
		s.logger.Error("failed to store upload", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to store upload")
		return
	}

	result, err := orchestrator.Ingest(r.Context(), raw, contentType)
	if err != nil {
		var convErr *normalize.ConversionError
		if errors.As(err, &convErr) {
			writeError(w, http.StatusUnprocessableEntity,
				fmt.Sprintf("could not process file: %v", convErr))
			return
		}
		var parseErr *llm.ParseError
		var remoteErr *llm.RemoteError
		if errors.As(err, &parseErr) || errors.As(err, &remoteErr) {
			writeError(w, http.StatusBadGateway,
				fmt.Sprintf("receipt parsing failed: %v", err))
			return
		}
		s.logger.Error("ingestion failed", "upload_id", uploadID, "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"upload_id":       uploadID,
		"merchant":        result.Extracted.Merchant,
		"date":            result.Extracted.Date,
		"amount":          result.Extracted.Amount,
		"category":        result.Categorization.Category,
		"schedule_c_line": result.Categorization.ScheduleCLine,
		"category_source": result.Categorization.Source,
	})
}
