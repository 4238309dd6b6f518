package service

import (
	"io"

	"github.com/strivehq/strive/internal/model"
	"github.com/strivehq/strive/internal/repository"
)

// In-memory repository fakes. Each fake can be primed with an err to force
// the infrastructure failure path.

type fakeUserRepository struct {
	users     map[string]*model.User // keyed by email
	createErr error
	byEmail   func(email string) (*model.User, error)
}

func newFakeUserRepository() *fakeUserRepository {
	return &fakeUserRepository{users: map[string]*model.User{}}
}

func (f *fakeUserRepository) Create(user *model.User) error {
	if f.createErr != nil {
		return f.createErr
	}
	if _, ok := f.users[user.Email]; ok {
		return repository.ErrDuplicateEmail
	}
	f.users[user.Email] = user
	return nil
}

func (f *fakeUserRepository) ByID(id string) (*model.User, error) {
	for _, user := range f.users {
		if user.ID == id {
			return user, nil
		}
	}
	return nil, repository.ErrUserNotFound
}

func (f *fakeUserRepository) ByEmail(email string) (*model.User, error) {
	if f.byEmail != nil {
		return f.byEmail(email)
	}
	user, ok := f.users[email]
	if !ok {
		return nil, repository.ErrUserNotFound
	}
	return user, nil
}

type fakeChallengeRepository struct {
	challenges map[string]*model.Challenge
	covers     map[string][]*model.Image  // covers stored per challenge
	initials   map[string]*model.Update   // initial update stored at create
	pins       map[string][]*model.ChallengePin
	counts     map[string]int
	err        error
	deleted    []string
}

func newFakeChallengeRepository() *fakeChallengeRepository {
	return &fakeChallengeRepository{
		challenges: map[string]*model.Challenge{},
		covers:     map[string][]*model.Image{},
		initials:   map[string]*model.Update{},
		pins:       map[string][]*model.ChallengePin{},
		counts:     map[string]int{},
	}
}

func (f *fakeChallengeRepository) Create(challenge *model.Challenge, initial *model.Update, covers []*model.Image) error {
	if f.err != nil {
		return f.err
	}
	f.challenges[challenge.ID] = challenge
	f.covers[challenge.ID] = covers
	if initial != nil {
		f.initials[challenge.ID] = initial
	}
	return nil
}

func (f *fakeChallengeRepository) ByID(id string) (*model.Challenge, error) {
	if f.err != nil {
		return nil, f.err
	}
	challenge, ok := f.challenges[id]
	if !ok {
		return nil, repository.ErrChallengeNotFound
	}
	return challenge, nil
}

func (f *fakeChallengeRepository) ByAuthor(authorID string) ([]*model.Challenge, error) {
	if f.err != nil {
		return nil, f.err
	}
	var out []*model.Challenge
	for _, challenge := range f.challenges {
		if challenge.AuthorID == authorID {
			out = append(out, challenge)
		}
	}
	return out, nil
}

func (f *fakeChallengeRepository) Update(challenge *model.Challenge, covers []*model.Image) error {
	if f.err != nil {
		return f.err
	}
	if _, ok := f.challenges[challenge.ID]; !ok {
		return repository.ErrChallengeNotFound
	}
	f.challenges[challenge.ID] = challenge
	f.covers[challenge.ID] = covers
	return nil
}

func (f *fakeChallengeRepository) Delete(id string) error {
	if f.err != nil {
		return f.err
	}
	if _, ok := f.challenges[id]; !ok {
		return repository.ErrChallengeNotFound
	}
	delete(f.challenges, id)
	delete(f.covers, id)
	f.deleted = append(f.deleted, id)
	return nil
}

func (f *fakeChallengeRepository) CountByCountry(country string) (int, error) {
	if f.err != nil {
		return 0, f.err
	}
	return f.counts[country], nil
}

func (f *fakeChallengeRepository) PinsByCountry(country string) ([]*model.ChallengePin, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.pins[country], nil
}

type fakeUpdateRepository struct {
	updates map[string]*model.Update
	images  map[string][]*model.Image // images stored per update
	err     error
	deleted []string
}

func newFakeUpdateRepository() *fakeUpdateRepository {
	return &fakeUpdateRepository{
		updates: map[string]*model.Update{},
		images:  map[string][]*model.Image{},
	}
}

func (f *fakeUpdateRepository) Create(update *model.Update, images []*model.Image) error {
	if f.err != nil {
		return f.err
	}
	f.updates[update.ID] = update
	f.images[update.ID] = images
	return nil
}

func (f *fakeUpdateRepository) ByID(id string) (*model.Update, error) {
	if f.err != nil {
		return nil, f.err
	}
	update, ok := f.updates[id]
	if !ok {
		return nil, repository.ErrUpdateNotFound
	}
	return update, nil
}

func (f *fakeUpdateRepository) ByChallenge(challengeID string) ([]*model.Update, error) {
	if f.err != nil {
		return nil, f.err
	}
	var out []*model.Update
	for _, update := range f.updates {
		if update.ChallengeID == challengeID {
			out = append(out, update)
		}
	}
	return out, nil
}

func (f *fakeUpdateRepository) Update(update *model.Update, images []*model.Image) error {
	if f.err != nil {
		return f.err
	}
	if _, ok := f.updates[update.ID]; !ok {
		return repository.ErrUpdateNotFound
	}
	f.updates[update.ID] = update
	f.images[update.ID] = images
	return nil
}

func (f *fakeUpdateRepository) Delete(id string) error {
	if f.err != nil {
		return f.err
	}
	if _, ok := f.updates[id]; !ok {
		return repository.ErrUpdateNotFound
	}
	delete(f.updates, id)
	delete(f.images, id)
	f.deleted = append(f.deleted, id)
	return nil
}

type fakeImageRepository struct {
	images []*model.Image
	err    error
}

func (f *fakeImageRepository) ByChallenge(challengeID string) ([]*model.Image, error) {
	if f.err != nil {
		return nil, f.err
	}
	var out []*model.Image
	for _, image := range f.images {
		if image.ChallengeID == challengeID {
			out = append(out, image)
		}
	}
	return out, nil
}

func (f *fakeImageRepository) CoversByChallenge(challengeID string) ([]*model.Image, error) {
	if f.err != nil {
		return nil, f.err
	}
	var out []*model.Image
	for _, image := range f.images {
		if image.ChallengeID == challengeID && image.IsMain {
			out = append(out, image)
		}
	}
	return out, nil
}

func (f *fakeImageRepository) ByUpdate(updateID string) ([]*model.Image, error) {
	if f.err != nil {
		return nil, f.err
	}
	var out []*model.Image
	for _, image := range f.images {
		if image.UpdateID != nil && *image.UpdateID == updateID {
			out = append(out, image)
		}
	}
	return out, nil
}

type fakeStorage struct {
	saved     []string
	deleted   []string
	saveErr   error
	deleteErr error
}

func (f *fakeStorage) Save(path string, file io.Reader) error {
	if f.saveErr != nil {
		return f.saveErr
	}
	f.saved = append(f.saved, path)
	return nil
}

func (f *fakeStorage) Delete(url string) error {
	if f.deleteErr != nil {
		return f.deleteErr
	}
	f.deleted = append(f.deleted, url)
	return nil
}

func (f *fakeStorage) URL(path string) string {
	return "https://cdn.test/" + path
}
