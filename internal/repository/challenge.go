package repository

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"
	"github.com/strivehq/strive/internal/model"
)

var (
	ErrChallengeNotFound = errors.New("challenge not found")
)

type ChallengeRepository interface {
	// Create inserts the challenge, an optional initial update and the cover
	// image set in one transaction.
	Create(challenge *model.Challenge, initial *model.Update, covers []*model.Image) error
	ByID(id string) (*model.Challenge, error)
	ByAuthor(authorID string) ([]*model.Challenge, error)
	// Update rewrites the challenge row and replaces the entire cover set
	// (delete all is_main images, insert the new ones) in one transaction.
	Update(challenge *model.Challenge, covers []*model.Image) error
	// Delete removes the challenge's images, its updates and finally the
	// challenge row, in dependency order inside one transaction.
	Delete(id string) error
	CountByCountry(country string) (int, error)
	PinsByCountry(country string) ([]*model.ChallengePin, error)
}

type challengeRepository struct {
	db *sqlx.DB
}

func NewChallengeRepository(db *sqlx.DB) ChallengeRepository {
	return &challengeRepository{db: db}
}

const insertChallengeQuery = `INSERT INTO challenges
	(id, author_id, title, category, difficulty, description, goal, duration, progress, age, gender, city_address, country, completed, created_at, updated_at)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)`

func (r *challengeRepository) Create(challenge *model.Challenge, initial *model.Update, covers []*model.Image) error {
	tx, err := r.db.Beginx()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	_, err = tx.Exec(insertChallengeQuery,
		challenge.ID,
		challenge.AuthorID,
		challenge.Title,
		challenge.Category,
		challenge.Difficulty,
		challenge.Description,
		challenge.Goal,
		challenge.Duration,
		challenge.Progress,
		challenge.Age,
		challenge.Gender,
		challenge.CityAddress,
		challenge.Country,
		challenge.Completed,
		challenge.CreatedAt,
		challenge.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert challenge: %w", err)
	}

	if initial != nil {
		err = insertUpdate(tx, initial)
		if err != nil {
			return fmt.Errorf("failed to insert initial update: %w", err)
		}
	}

	err = insertImages(tx, covers)
	if err != nil {
		return err
	}

	return tx.Commit()
}

func (r *challengeRepository) ByID(id string) (*model.Challenge, error) {
	challenge := &model.Challenge{}
	query := `SELECT * FROM challenges WHERE id = $1`

	err := r.db.Get(challenge, query, id)
	if err == sql.ErrNoRows {
		return nil, ErrChallengeNotFound
	}

	return challenge, err
}

func (r *challengeRepository) ByAuthor(authorID string) ([]*model.Challenge, error) {
	var challenges []*model.Challenge
	query := `SELECT * FROM challenges WHERE author_id = $1 ORDER BY updated_at DESC`

	err := r.db.Select(&challenges, query, authorID)
	if err != nil {
		return nil, err
	}

	return challenges, nil
}

func (r *challengeRepository) Update(challenge *model.Challenge, covers []*model.Image) error {
	tx, err := r.db.Beginx()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	query := `UPDATE challenges
	          SET title = $1, category = $2, difficulty = $3, description = $4, goal = $5,
	              duration = $6, progress = $7, age = $8, gender = $9, city_address = $10,
	              country = $11, completed = $12, updated_at = $13
	          WHERE id = $14`

	result, err := tx.Exec(query,
		challenge.Title,
		challenge.Category,
		challenge.Difficulty,
		challenge.Description,
		challenge.Goal,
		challenge.Duration,
		challenge.Progress,
		challenge.Age,
		challenge.Gender,
		challenge.CityAddress,
		challenge.Country,
		challenge.Completed,
		challenge.UpdatedAt,
		challenge.ID,
	)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return ErrChallengeNotFound
	}

	// Replace-all cover semantics: drop the old set, insert the new one.
	_, err = tx.Exec(`DELETE FROM images WHERE challenge_id = $1 AND is_main = $2`, challenge.ID, true)
	if err != nil {
		return fmt.Errorf("failed to delete cover images: %w", err)
	}

	err = insertImages(tx, covers)
	if err != nil {
		return err
	}

	return tx.Commit()
}

func (r *challengeRepository) Delete(id string) error {
	tx, err := r.db.Beginx()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	_, err = tx.Exec(`DELETE FROM images WHERE challenge_id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete challenge images: %w", err)
	}

	_, err = tx.Exec(`DELETE FROM updates WHERE challenge_id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete challenge updates: %w", err)
	}

	result, err := tx.Exec(`DELETE FROM challenges WHERE id = $1`, id)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return ErrChallengeNotFound
	}

	return tx.Commit()
}

func (r *challengeRepository) CountByCountry(country string) (int, error) {
	var count int
	query := `SELECT COUNT(*) FROM challenges WHERE TRIM(country) = $1`
	err := r.db.QueryRow(query, strings.TrimSpace(country)).Scan(&count)
	return count, err
}

func (r *challengeRepository) PinsByCountry(country string) ([]*model.ChallengePin, error) {
	var pins []*model.ChallengePin
	query := `SELECT id, title, city_address FROM challenges WHERE TRIM(country) = $1 ORDER BY title ASC`

	err := r.db.Select(&pins, query, strings.TrimSpace(country))
	if err != nil {
		return nil, err
	}

	return pins, nil
}
