package repository

import (
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/strivehq/strive/internal/model"
)

type ImageRepository interface {
	ByChallenge(challengeID string) ([]*model.Image, error)
	CoversByChallenge(challengeID string) ([]*model.Image, error)
	ByUpdate(updateID string) ([]*model.Image, error)
}

type imageRepository struct {
	db *sqlx.DB
}

func NewImageRepository(db *sqlx.DB) ImageRepository {
	return &imageRepository{db: db}
}

// insertImages writes an image set inside an already open transaction.
// Image rows are only ever created together with their challenge or update.
func insertImages(tx *sqlx.Tx, images []*model.Image) error {
	query := `INSERT INTO images (id, challenge_id, update_id, user_id, url, is_main, image_text, duration, created_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`

	for _, image := range images {
		_, err := tx.Exec(query,
			image.ID,
			image.ChallengeID,
			image.UpdateID,
			image.UserID,
			image.URL,
			image.IsMain,
			image.ImageText,
			image.Duration,
			image.CreatedAt,
		)
		if err != nil {
			return fmt.Errorf("failed to insert image %s: %w", image.ID, err)
		}
	}

	return nil
}

func (r *imageRepository) ByChallenge(challengeID string) ([]*model.Image, error) {
	var images []*model.Image
	query := `SELECT * FROM images WHERE challenge_id = $1 ORDER BY created_at ASC`

	err := r.db.Select(&images, query, challengeID)
	if err != nil {
		return nil, err
	}

	return images, nil
}

func (r *imageRepository) CoversByChallenge(challengeID string) ([]*model.Image, error) {
	var images []*model.Image
	query := `SELECT * FROM images WHERE challenge_id = $1 AND is_main = $2 ORDER BY created_at ASC`

	err := r.db.Select(&images, query, challengeID, true)
	if err != nil {
		return nil, err
	}

	return images, nil
}

func (r *imageRepository) ByUpdate(updateID string) ([]*model.Image, error) {
	var images []*model.Image
	query := `SELECT * FROM images WHERE update_id = $1 ORDER BY created_at ASC`

	err := r.db.Select(&images, query, updateID)
	if err != nil {
		return nil, err
	}

	return images, nil
}
