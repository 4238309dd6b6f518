package handler

import (
	"log/slog"
	"net/http"

	"github.com/strivehq/strive/internal/apperr"
	"github.com/strivehq/strive/internal/ctxkeys"
	"github.com/strivehq/strive/internal/service"
)

type UploadHandler struct {
	identityService *service.IdentityService
	uploadService   *service.UploadService
}

func NewUploadHandler(identityService *service.IdentityService, uploadService *service.UploadService) *UploadHandler {
	return &UploadHandler{
		identityService: identityService,
		uploadService:   uploadService,
	}
}

// UploadImage stores one image in blob storage and returns its durable URL.
// The caller then posts that URL with the challenge or update form, so the
// database transaction only ever records already-durable blobs.
func (h *UploadHandler) UploadImage(w http.ResponseWriter, r *http.Request) {
	user, err := h.identityService.Resolve(ctxkeys.Principal(r.Context()))
	if err != nil {
		writeError(w, r, err)
		return
	}

	// Parse multipart form (10MB max)
	err = r.ParseMultipartForm(10 << 20)
	if err != nil {
		writeError(w, r, apperr.InvalidArg("failed to parse form"))
		return
	}

	file, header, err := r.FormFile("image")
	if err != nil {
		writeError(w, r, apperr.InvalidArg("no file uploaded"))
		return
	}
	defer func() {
		closeErr := file.Close()
		if closeErr != nil {
			slog.Error("failed to close file", "error", closeErr)
		}
	}()

	url, err := h.uploadService.UploadImage(file, header)
	if err != nil {
		slog.Error("failed to upload image", "error", err, "user_id", user.ID)
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"url": url})
}
