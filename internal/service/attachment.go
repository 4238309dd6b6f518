package service

import (
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/strivehq/strive/internal/model"
	"github.com/strivehq/strive/internal/storage"
)

// MaxImagesPerEntity caps how many images one create or edit call may
// attach. Anything past the cap is silently dropped, not rejected.
const MaxImagesPerEntity = 10

// CoverImages shapes uploaded URLs into challenge cover rows (is_main=true,
// no update reference). Blank URLs are skipped before the cap applies.
func CoverImages(challengeID, userID string, urls []string) []*model.Image {
	return shapeImages(challengeID, nil, userID, urls, true)
}

// UpdateImages shapes uploaded URLs into update image rows. is_main is
// forced false here: cover images never hang off an update, regardless of
// what the caller sends.
func UpdateImages(challengeID, updateID, userID string, urls []string) []*model.Image {
	return shapeImages(challengeID, &updateID, userID, urls, false)
}

func shapeImages(challengeID string, updateID *string, userID string, urls []string, isMain bool) []*model.Image {
	now := time.Now()
	images := make([]*model.Image, 0, MaxImagesPerEntity)

	for _, url := range urls {
		url = strings.TrimSpace(url)
		if url == "" {
			continue
		}
		if len(images) == MaxImagesPerEntity {
			break
		}

		images = append(images, &model.Image{
			ID:          uuid.New().String(),
			ChallengeID: challengeID,
			UpdateID:    updateID,
			UserID:      userID,
			URL:         url,
			IsMain:      isMain,
			// Staggered so created_at ordering preserves submission order.
			CreatedAt: now.Add(time.Duration(len(images)) * time.Millisecond),
		})
	}

	return images
}

// discardBlobs best-effort deletes the storage objects behind image rows
// that just left the database, skipping any URL the new set still
// references. Runs after the transaction commits; failures only log.
func discardBlobs(store storage.Storage, removed, kept []*model.Image) {
	keep := make(map[string]bool, len(kept))
	for _, image := range kept {
		keep[image.URL] = true
	}

	for _, image := range removed {
		if keep[image.URL] {
			continue
		}
		err := store.Delete(image.URL)
		if err != nil {
			slog.Error("failed to delete stored image", "url", image.URL, "error", err)
		}
	}
}
