package service

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/strivehq/strive/internal/apperr"
	"github.com/strivehq/strive/internal/model"
	"github.com/strivehq/strive/internal/repository"
	"github.com/strivehq/strive/internal/storage"
)

// CreateUpdateInput is the typed form of a timeline entry create request.
type CreateUpdateInput struct {
	Content   string `validate:"required"`
	ImageURLs []string
}

// EditUpdateInput replaces the update body and its entire image set.
type EditUpdateInput struct {
	Content   string `validate:"required"`
	ImageURLs []string
}

type UpdateService struct {
	updateRepository    repository.UpdateRepository
	challengeRepository repository.ChallengeRepository
	imageRepository     repository.ImageRepository
	storage             storage.Storage
}

func NewUpdateService(
	updateRepository repository.UpdateRepository,
	challengeRepository repository.ChallengeRepository,
	imageRepository repository.ImageRepository,
	storage storage.Storage,
) *UpdateService {
	return &UpdateService{
		updateRepository:    updateRepository,
		challengeRepository: challengeRepository,
		imageRepository:     imageRepository,
		storage:             storage,
	}
}

// Create appends a timeline entry to the challenge. Ownership is always
// checked against the parent challenge's author.
func (s *UpdateService) Create(actor *model.User, challengeID string, in CreateUpdateInput) (*model.Update, error) {
	in.Content = strings.TrimSpace(in.Content)
	if in.Content == "" {
		return nil, apperr.ErrContentRequired
	}

	challenge, err := s.challengeRepository.ByID(challengeID)
	if errors.Is(err, repository.ErrChallengeNotFound) {
		return nil, apperr.ErrChallengeNotFound
	}
	if err != nil {
		return nil, apperr.Persistence(err)
	}
	if challenge.AuthorID != actor.ID {
		return nil, apperr.ErrNotChallengeAuthor
	}

	update := &model.Update{
		ID:          uuid.New().String(),
		ChallengeID: challenge.ID,
		AuthorID:    challenge.AuthorID,
		Content:     in.Content,
		Type:        model.UpdateTypeUpdated,
		CreatedAt:   time.Now(),
	}

	images := UpdateImages(challenge.ID, update.ID, actor.ID, in.ImageURLs)

	err = s.updateRepository.Create(update, images)
	if err != nil {
		return nil, apperr.Persistence(err)
	}

	return update, nil
}

// Edit rewrites the update body and replaces its image set.
func (s *UpdateService) Edit(actor *model.User, updateID string, in EditUpdateInput) (*model.Update, error) {
	in.Content = strings.TrimSpace(in.Content)
	if in.Content == "" {
		return nil, apperr.ErrContentRequired
	}

	update, err := s.byID(updateID)
	if err != nil {
		return nil, err
	}
	if update.AuthorID != actor.ID {
		return nil, apperr.ErrNotUpdateAuthor
	}

	update.Content = in.Content
	update.Type = model.UpdateTypeUpdated

	images := UpdateImages(update.ChallengeID, update.ID, actor.ID, in.ImageURLs)

	oldImages, err := s.imageRepository.ByUpdate(update.ID)
	if err != nil {
		return nil, apperr.Persistence(err)
	}

	err = s.updateRepository.Update(update, images)
	if errors.Is(err, repository.ErrUpdateNotFound) {
		return nil, apperr.ErrUpdateNotFound
	}
	if err != nil {
		return nil, apperr.Persistence(err)
	}

	// Replaced image rows are gone; drop their blobs unless resubmitted.
	discardBlobs(s.storage, oldImages, images)

	return update, nil
}

// Delete removes the update and its images in one transaction.
func (s *UpdateService) Delete(actor *model.User, updateID string) (*model.Update, error) {
	update, err := s.byID(updateID)
	if err != nil {
		return nil, err
	}
	if update.AuthorID != actor.ID {
		return nil, apperr.ErrNotUpdateAuthor
	}

	images, err := s.imageRepository.ByUpdate(updateID)
	if err != nil {
		return nil, apperr.Persistence(err)
	}

	err = s.updateRepository.Delete(updateID)
	if errors.Is(err, repository.ErrUpdateNotFound) {
		return nil, apperr.ErrUpdateNotFound
	}
	if err != nil {
		return nil, apperr.Persistence(err)
	}

	discardBlobs(s.storage, images, nil)

	return update, nil
}

func (s *UpdateService) byID(updateID string) (*model.Update, error) {
	update, err := s.updateRepository.ByID(updateID)
	if errors.Is(err, repository.ErrUpdateNotFound) {
		return nil, apperr.ErrUpdateNotFound
	}
	if err != nil {
		return nil, apperr.Persistence(err)
	}
	return update, nil
}
