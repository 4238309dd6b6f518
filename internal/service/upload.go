package service

import (
	"fmt"
	"mime/multipart"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/strivehq/strive/internal/apperr"
	"github.com/strivehq/strive/internal/storage"
	"github.com/strivehq/strive/internal/validation"
)

// UploadService pushes image binaries to blob storage before any database
// write happens. An upload failure aborts the request, so the database
// never records a URL that does not exist.
type UploadService struct {
	storage storage.Storage
}

func NewUploadService(storage storage.Storage) *UploadService {
	return &UploadService{storage: storage}
}

// UploadImage validates and stores one image, returning its durable URL.
func (s *UploadService) UploadImage(file multipart.File, header *multipart.FileHeader) (string, error) {
	err := validation.ValidateFile(header, validation.ImageConstraints)
	if err != nil {
		return "", apperr.InvalidArg(err.Error())
	}

	ext := filepath.Ext(header.Filename)
	path := fmt.Sprintf("challenges/%s%s", uuid.New().String(), ext)

	err = s.storage.Save(path, file)
	if err != nil {
		return "", apperr.Wrap(apperr.CodeInternal, "failed to save image", err)
	}

	return s.storage.URL(path), nil
}
