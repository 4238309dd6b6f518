package repository

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/strivehq/strive/internal/model"
)

var (
	ErrUpdateNotFound = errors.New("update not found")
)

type UpdateRepository interface {
	// Create inserts the update and its image set in one transaction.
	Create(update *model.Update, images []*model.Image) error
	ByID(id string) (*model.Update, error)
	ByChallenge(challengeID string) ([]*model.Update, error)
	// Update rewrites the update row and replaces every image tied to this
	// update id with the new set, in one transaction.
	Update(update *model.Update, images []*model.Image) error
	// Delete removes the update's images then the update row, in one
	// transaction.
	Delete(id string) error
}

type updateRepository struct {
	db *sqlx.DB
}

func NewUpdateRepository(db *sqlx.DB) UpdateRepository {
	return &updateRepository{db: db}
}

func insertUpdate(tx *sqlx.Tx, update *model.Update) error {
	query := `INSERT INTO updates (id, challenge_id, author_id, content, type, created_at)
	          VALUES ($1, $2, $3, $4, $5, $6)`

	_, err := tx.Exec(query,
		update.ID,
		update.ChallengeID,
		update.AuthorID,
		update.Content,
		update.Type,
		update.CreatedAt,
	)

	return err
}

func (r *updateRepository) Create(update *model.Update, images []*model.Image) error {
	tx, err := r.db.Beginx()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	err = insertUpdate(tx, update)
	if err != nil {
		return fmt.Errorf("failed to insert update: %w", err)
	}

	err = insertImages(tx, images)
	if err != nil {
		return err
	}

	return tx.Commit()
}

func (r *updateRepository) ByID(id string) (*model.Update, error) {
	update := &model.Update{}
	query := `SELECT * FROM updates WHERE id = $1`

	err := r.db.Get(update, query, id)
	if err == sql.ErrNoRows {
		return nil, ErrUpdateNotFound
	}

	return update, err
}

func (r *updateRepository) ByChallenge(challengeID string) ([]*model.Update, error) {
	var updates []*model.Update
	query := `SELECT * FROM updates WHERE challenge_id = $1 ORDER BY created_at ASC`

	err := r.db.Select(&updates, query, challengeID)
	if err != nil {
		return nil, err
	}

	return updates, nil
}

func (r *updateRepository) Update(update *model.Update, images []*model.Image) error {
	tx, err := r.db.Beginx()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	query := `UPDATE updates SET content = $1, type = $2 WHERE id = $3`

	result, err := tx.Exec(query, update.Content, update.Type, update.ID)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return ErrUpdateNotFound
	}

	_, err = tx.Exec(`DELETE FROM images WHERE update_id = $1`, update.ID)
	if err != nil {
		return fmt.Errorf("failed to delete update images: %w", err)
	}

	err = insertImages(tx, images)
	if err != nil {
		return err
	}

	return tx.Commit()
}

func (r *updateRepository) Delete(id string) error {
	tx, err := r.db.Beginx()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	_, err = tx.Exec(`DELETE FROM images WHERE update_id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete update images: %w", err)
	}

	result, err := tx.Exec(`DELETE FROM updates WHERE id = $1`, id)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return ErrUpdateNotFound
	}

	return tx.Commit()
}
