package service

import (
	"errors"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/strivehq/strive/internal/apperr"
	"github.com/strivehq/strive/internal/model"
	"github.com/strivehq/strive/internal/repository"
	"github.com/strivehq/strive/internal/storage"
)

var validate = validator.New()

// CreateChallengeInput is the typed form of a challenge create request.
// Numeric fields arrive as pointers: nil means the field was absent or
// unparseable. A zero Duration is meaningful and means "unbounded".
type CreateChallengeInput struct {
	Title       string `validate:"required"`
	Category    string
	Difficulty  string
	Description string
	Goal        string
	Duration    *int
	Progress    *float64 `validate:"omitempty,gte=0,lte=100"`
	Age         *int     `validate:"omitempty,gte=0"`
	Gender      string
	CityAddress string
	Country     string
	CoverURLs   []string
}

// EditChallengeInput carries a partial update: nil fields keep the stored
// value. CoverURLs always replaces the entire cover set.
type EditChallengeInput struct {
	Title       *string
	Category    *string
	Difficulty  *string
	Description *string
	Goal        *string
	Duration    *int
	Progress    *float64 `validate:"omitempty,gte=0,lte=100"`
	Age         *int     `validate:"omitempty,gte=0"`
	Gender      *string
	CityAddress *string
	Country     *string
	Completed   *bool
	CoverURLs   []string
}

type ChallengeService struct {
	challengeRepository repository.ChallengeRepository
	updateRepository    repository.UpdateRepository
	imageRepository     repository.ImageRepository
	storage             storage.Storage
}

func NewChallengeService(
	challengeRepository repository.ChallengeRepository,
	updateRepository repository.UpdateRepository,
	imageRepository repository.ImageRepository,
	storage storage.Storage,
) *ChallengeService {
	return &ChallengeService{
		challengeRepository: challengeRepository,
		updateRepository:    updateRepository,
		imageRepository:     imageRepository,
		storage:             storage,
	}
}

// Create inserts the challenge, its first timeline entry and the shaped
// cover set in one transaction. The author is fixed here and never changes.
func (s *ChallengeService) Create(author *model.User, in CreateChallengeInput) (*model.Challenge, error) {
	in.Title = strings.TrimSpace(in.Title)
	err := validate.Struct(in)
	if err != nil {
		if in.Title == "" {
			return nil, apperr.ErrTitleRequired
		}
		return nil, apperr.InvalidArg(err.Error())
	}

	now := time.Now()
	challenge := &model.Challenge{
		ID:          uuid.New().String(),
		AuthorID:    author.ID,
		Title:       in.Title,
		Category:    in.Category,
		Difficulty:  in.Difficulty,
		Description: in.Description,
		Goal:        in.Goal,
		Duration:    in.Duration,
		Progress:    in.Progress,
		Age:         in.Age,
		Gender:      in.Gender,
		CityAddress: in.CityAddress,
		Country:     in.Country,
		Completed:   false,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	content := strings.TrimSpace(in.Goal)
	if content == "" {
		content = in.Title
	}
	initial := &model.Update{
		ID:          uuid.New().String(),
		ChallengeID: challenge.ID,
		AuthorID:    author.ID,
		Content:     content,
		Type:        model.UpdateTypeCreated,
		CreatedAt:   now,
	}

	covers := CoverImages(challenge.ID, author.ID, in.CoverURLs)

	err = s.challengeRepository.Create(challenge, initial, covers)
	if err != nil {
		return nil, apperr.Persistence(err)
	}

	return challenge, nil
}

func (s *ChallengeService) ByID(id string) (*model.Challenge, error) {
	challenge, err := s.challengeRepository.ByID(id)
	if errors.Is(err, repository.ErrChallengeNotFound) {
		return nil, apperr.ErrChallengeNotFound
	}
	if err != nil {
		return nil, apperr.Persistence(err)
	}
	return challenge, nil
}

func (s *ChallengeService) ForUser(userID string) ([]*model.Challenge, error) {
	challenges, err := s.challengeRepository.ByAuthor(userID)
	if err != nil {
		return nil, apperr.Persistence(err)
	}
	return challenges, nil
}

// ChallengeTimeline is the assembled read model for a challenge detail view.
type ChallengeTimeline struct {
	Challenge      *model.Challenge
	Covers         []*model.Image
	Updates        []*model.Update
	ImagesByUpdate map[string][]*model.Image
}

// Timeline loads the full challenge + update + image graph. Reads are not
// transactional; a concurrent edit may be partially visible, which is
// accepted.
func (s *ChallengeService) Timeline(id string) (*ChallengeTimeline, error) {
	challenge, err := s.ByID(id)
	if err != nil {
		return nil, err
	}

	updates, err := s.updateRepository.ByChallenge(id)
	if err != nil {
		return nil, apperr.Persistence(err)
	}

	covers, err := s.imageRepository.CoversByChallenge(id)
	if err != nil {
		return nil, apperr.Persistence(err)
	}

	images, err := s.imageRepository.ByChallenge(id)
	if err != nil {
		return nil, apperr.Persistence(err)
	}

	view := &ChallengeTimeline{
		Challenge:      challenge,
		Covers:         covers,
		Updates:        updates,
		ImagesByUpdate: make(map[string][]*model.Image),
	}
	for _, image := range images {
		if image.IsMain || image.UpdateID == nil {
			continue
		}
		view.ImagesByUpdate[*image.UpdateID] = append(view.ImagesByUpdate[*image.UpdateID], image)
	}

	return view, nil
}

// Edit applies a partial field update and replaces the cover set, after
// verifying the actor owns the challenge.
func (s *ChallengeService) Edit(actor *model.User, id string, in EditChallengeInput) (*model.Challenge, error) {
	err := validate.Struct(in)
	if err != nil {
		return nil, apperr.InvalidArg(err.Error())
	}

	challenge, err := s.ByID(id)
	if err != nil {
		return nil, err
	}
	if challenge.AuthorID != actor.ID {
		return nil, apperr.ErrNotChallengeAuthor
	}

	if in.Title != nil {
		title := strings.TrimSpace(*in.Title)
		if title == "" {
			return nil, apperr.ErrTitleRequired
		}
		challenge.Title = title
	}
	if in.Category != nil {
		challenge.Category = *in.Category
	}
	if in.Difficulty != nil {
		challenge.Difficulty = *in.Difficulty
	}
	if in.Description != nil {
		challenge.Description = *in.Description
	}
	if in.Goal != nil {
		challenge.Goal = *in.Goal
	}
	if in.Duration != nil {
		// A zero here is meaningful: the author made the challenge unbounded.
		challenge.Duration = in.Duration
	}
	if in.Progress != nil {
		challenge.Progress = in.Progress
	}
	if in.Age != nil {
		challenge.Age = in.Age
	}
	if in.Gender != nil {
		challenge.Gender = *in.Gender
	}
	if in.CityAddress != nil {
		challenge.CityAddress = *in.CityAddress
	}
	if in.Country != nil {
		challenge.Country = *in.Country
	}
	if in.Completed != nil {
		challenge.Completed = *in.Completed
	}
	challenge.UpdatedAt = time.Now()

	covers := CoverImages(challenge.ID, challenge.AuthorID, in.CoverURLs)

	oldCovers, err := s.imageRepository.CoversByChallenge(challenge.ID)
	if err != nil {
		return nil, apperr.Persistence(err)
	}

	err = s.challengeRepository.Update(challenge, covers)
	if errors.Is(err, repository.ErrChallengeNotFound) {
		return nil, apperr.ErrChallengeNotFound
	}
	if err != nil {
		return nil, apperr.Persistence(err)
	}

	// Replaced cover rows are gone; drop their blobs unless resubmitted.
	discardBlobs(s.storage, oldCovers, covers)

	return challenge, nil
}

// Delete removes the challenge together with every update and image hanging
// off it, in one transaction.
func (s *ChallengeService) Delete(actor *model.User, id string) error {
	challenge, err := s.ByID(id)
	if err != nil {
		return err
	}
	if challenge.AuthorID != actor.ID {
		return apperr.ErrNotChallengeAuthor
	}

	images, err := s.imageRepository.ByChallenge(id)
	if err != nil {
		return apperr.Persistence(err)
	}

	err = s.challengeRepository.Delete(id)
	if errors.Is(err, repository.ErrChallengeNotFound) {
		return apperr.ErrChallengeNotFound
	}
	if err != nil {
		return apperr.Persistence(err)
	}

	discardBlobs(s.storage, images, nil)

	return nil
}
