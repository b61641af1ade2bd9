package api

import (
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/vottdot/vottdot-server/internal/api/shared"
	"github.com/vottdot/vottdot-server/internal/service"
)

// FileHandler handles file-metadata HTTP requests. The status conventions
// here follow the consuming annotation client: absence reads as 204 with
// an empty body, upserts answer 202 echoing the stored data, and deleting
// a missing row still answers 204.
type FileHandler struct {
	fileService service.FileService
	logger      *slog.Logger
}

// NewFileHandler creates a new FileHandler.
func NewFileHandler(fileService service.FileService, logger *slog.Logger) *FileHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &FileHandler{
		fileService: fileService,
		logger:      logger.With(slog.String("component", "file_handler")),
	}
}

// ListFiles handles GET /file requests.
// Returns 204 when no metadata is stored, 200 with the array otherwise.
func (h *FileHandler) ListFiles(w http.ResponseWriter, r *http.Request) {
	files, err := h.fileService.FindAll(r.Context())
	if err != nil {
		shared.RespondWithErrorAndLog(w, r,
			http.StatusInternalServerError, GetSafeErrorMessage(err), err)
		return
	}

	if len(files) == 0 {
		w.WriteHeader(http.StatusNoContent)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, files)
}

// GetFile handles GET /file/{fileName}?uuid=... requests.
// Answers the stored data verbatim, or 204 with an empty body when the
// key is unknown.
func (h *FileHandler) GetFile(w http.ResponseWriter, r *http.Request) {
	fileName, fileUUID, ok := h.fileKey(w, r)
	if !ok {
		return
	}

	file, err := h.fileService.Get(r.Context(), fileName, fileUUID)
	if err != nil {
		if errors.Is(err, service.ErrFileNotFound) {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		shared.RespondWithErrorAndLog(w, r,
			http.StatusInternalServerError, GetSafeErrorMessage(err), err)
		return
	}

	h.writeData(w, http.StatusOK, file.Data)
}

// PutFile handles PUT /file/{fileName}?uuid=... requests.
// The raw body is stored verbatim; an empty body is refused with 406.
func (h *FileHandler) PutFile(w http.ResponseWriter, r *http.Request) {
	fileName, fileUUID, ok := h.fileKey(w, r)
	if !ok {
		return
	}

	body, err := io.ReadAll(r.Body)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r,
			http.StatusInternalServerError, "Failed to read request body", err)
		return
	}

	if len(body) == 0 {
		shared.RespondWithError(w, r, http.StatusNotAcceptable, "Request body cannot be empty")
		return
	}

	file, err := h.fileService.Upsert(r.Context(), fileName, fileUUID, string(body))
	if err != nil {
		shared.RespondWithErrorAndLog(w, r,
			MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	h.writeData(w, http.StatusAccepted, file.Data)
}

// DeleteFile handles DELETE /file/{fileName}?uuid=... requests.
// Deleting a missing file still answers 204.
func (h *FileHandler) DeleteFile(w http.ResponseWriter, r *http.Request) {
	fileName, fileUUID, ok := h.fileKey(w, r)
	if !ok {
		return
	}

	if err := h.fileService.Delete(r.Context(), fileName, fileUUID); err != nil {
		shared.RespondWithErrorAndLog(w, r,
			http.StatusInternalServerError, GetSafeErrorMessage(err), err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// fileKey extracts the {fileName} URL parameter and the uuid query
// parameter, answering 400 when the uuid is blank.
func (h *FileHandler) fileKey(w http.ResponseWriter, r *http.Request) (string, string, bool) {
	fileName := chi.URLParam(r, "fileName")
	fileUUID := r.URL.Query().Get("uuid")

	if strings.TrimSpace(fileUUID) == "" {
		shared.RespondWithError(w, r, http.StatusBadRequest, "uuid query parameter is required")
		return "", "", false
	}

	return fileName, fileUUID, true
}

// writeData writes the stored metadata verbatim. The payload was supplied
// by the client as JSON, so it is answered as such without re-encoding.
func (h *FileHandler) writeData(w http.ResponseWriter, status int, data string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if _, err := io.WriteString(w, data); err != nil {
		h.logger.Error("failed to write response body", "error", err)
	}
}
