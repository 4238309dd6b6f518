package handler

import (
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"

	"github.com/strivehq/strive/internal/ctxkeys"
	"github.com/strivehq/strive/internal/model"
	"github.com/strivehq/strive/internal/repository"
	"github.com/strivehq/strive/internal/service"
)

// memStore is one in-memory backing store implementing every repository
// interface the handlers reach through their services.
type memStore struct {
	users      map[string]*model.User
	challenges map[string]*model.Challenge
	updates    map[string]*model.Update
	images     map[string][]*model.Image // keyed by challenge id
}

func newMemStore() *memStore {
	return &memStore{
		users:      map[string]*model.User{},
		challenges: map[string]*model.Challenge{},
		updates:    map[string]*model.Update{},
		images:     map[string][]*model.Image{},
	}
}

// UserRepository

func (s *memStore) Create(user *model.User) error {
	if _, ok := s.users[user.Email]; ok {
		return repository.ErrDuplicateEmail
	}
	s.users[user.Email] = user
	return nil
}

func (s *memStore) ByID(id string) (*model.User, error) {
	for _, user := range s.users {
		if user.ID == id {
			return user, nil
		}
	}
	return nil, repository.ErrUserNotFound
}

func (s *memStore) ByEmail(email string) (*model.User, error) {
	user, ok := s.users[email]
	if !ok {
		return nil, repository.ErrUserNotFound
	}
	return user, nil
}

// ChallengeRepository wrapped around the same store.

type memChallengeRepo struct{ s *memStore }

func (r memChallengeRepo) Create(challenge *model.Challenge, initial *model.Update, covers []*model.Image) error {
	r.s.challenges[challenge.ID] = challenge
	if initial != nil {
		r.s.updates[initial.ID] = initial
	}
	r.s.images[challenge.ID] = append(r.s.images[challenge.ID], covers...)
	return nil
}

func (r memChallengeRepo) ByID(id string) (*model.Challenge, error) {
	challenge, ok := r.s.challenges[id]
	if !ok {
		return nil, repository.ErrChallengeNotFound
	}
	return challenge, nil
}

func (r memChallengeRepo) ByAuthor(authorID string) ([]*model.Challenge, error) {
	var out []*model.Challenge
	for _, challenge := range r.s.challenges {
		if challenge.AuthorID == authorID {
			out = append(out, challenge)
		}
	}
	return out, nil
}

func (r memChallengeRepo) Update(challenge *model.Challenge, covers []*model.Image) error {
	if _, ok := r.s.challenges[challenge.ID]; !ok {
		return repository.ErrChallengeNotFound
	}
	r.s.challenges[challenge.ID] = challenge

	var kept []*model.Image
	for _, image := range r.s.images[challenge.ID] {
		if !image.IsMain {
			kept = append(kept, image)
		}
	}
	r.s.images[challenge.ID] = append(kept, covers...)
	return nil
}

func (r memChallengeRepo) Delete(id string) error {
	if _, ok := r.s.challenges[id]; !ok {
		return repository.ErrChallengeNotFound
	}
	delete(r.s.challenges, id)
	delete(r.s.images, id)
	for updateID, update := range r.s.updates {
		if update.ChallengeID == id {
			delete(r.s.updates, updateID)
		}
	}
	return nil
}

func (r memChallengeRepo) CountByCountry(country string) (int, error) {
	count := 0
	for _, challenge := range r.s.challenges {
		if strings.TrimSpace(challenge.Country) == country {
			count++
		}
	}
	return count, nil
}

func (r memChallengeRepo) PinsByCountry(country string) ([]*model.ChallengePin, error) {
	var pins []*model.ChallengePin
	for _, challenge := range r.s.challenges {
		if strings.TrimSpace(challenge.Country) == country {
			pins = append(pins, &model.ChallengePin{ID: challenge.ID, Title: challenge.Title, CityAddress: challenge.CityAddress})
		}
	}
	return pins, nil
}

// UpdateRepository wrapped around the same store.

type memUpdateRepo struct{ s *memStore }

func (r memUpdateRepo) Create(update *model.Update, images []*model.Image) error {
	r.s.updates[update.ID] = update
	r.s.images[update.ChallengeID] = append(r.s.images[update.ChallengeID], images...)
	return nil
}

func (r memUpdateRepo) ByID(id string) (*model.Update, error) {
	update, ok := r.s.updates[id]
	if !ok {
		return nil, repository.ErrUpdateNotFound
	}
	return update, nil
}

func (r memUpdateRepo) ByChallenge(challengeID string) ([]*model.Update, error) {
	var out []*model.Update
	for _, update := range r.s.updates {
		if update.ChallengeID == challengeID {
			out = append(out, update)
		}
	}
	return out, nil
}

func (r memUpdateRepo) Update(update *model.Update, images []*model.Image) error {
	if _, ok := r.s.updates[update.ID]; !ok {
		return repository.ErrUpdateNotFound
	}
	r.s.updates[update.ID] = update
	return nil
}

func (r memUpdateRepo) Delete(id string) error {
	if _, ok := r.s.updates[id]; !ok {
		return repository.ErrUpdateNotFound
	}
	delete(r.s.updates, id)
	return nil
}

// ImageRepository wrapped around the same store.

type memImageRepo struct{ s *memStore }

func (r memImageRepo) ByChallenge(challengeID string) ([]*model.Image, error) {
	return r.s.images[challengeID], nil
}

func (r memImageRepo) CoversByChallenge(challengeID string) ([]*model.Image, error) {
	var out []*model.Image
	for _, image := range r.s.images[challengeID] {
		if image.IsMain {
			out = append(out, image)
		}
	}
	return out, nil
}

func (r memImageRepo) ByUpdate(updateID string) ([]*model.Image, error) {
	var out []*model.Image
	for _, images := range r.s.images {
		for _, image := range images {
			if image.UpdateID != nil && *image.UpdateID == updateID {
				out = append(out, image)
			}
		}
	}
	return out, nil
}

// memBlobs is the blob-storage stand-in for handler tests.

type memBlobs struct {
	saved   []string
	deleted []string
}

func (b *memBlobs) Save(path string, file io.Reader) error {
	b.saved = append(b.saved, path)
	return nil
}

func (b *memBlobs) Delete(url string) error {
	b.deleted = append(b.deleted, url)
	return nil
}

func (b *memBlobs) URL(path string) string {
	return "https://cdn.test/" + path
}

// Fixture wiring shared by the handler tests.

type fixture struct {
	store            *memStore
	blobs            *memBlobs
	identityService  *service.IdentityService
	challengeService *service.ChallengeService
	updateService    *service.UpdateService
	geoService       *service.GeoService
	uploadService    *service.UploadService
}

func newFixture() *fixture {
	store := newMemStore()
	blobs := &memBlobs{}
	challengeRepo := memChallengeRepo{s: store}
	updateRepo := memUpdateRepo{s: store}
	imageRepo := memImageRepo{s: store}

	return &fixture{
		store:            store,
		blobs:            blobs,
		identityService:  service.NewIdentityService(store),
		challengeService: service.NewChallengeService(challengeRepo, updateRepo, imageRepo, blobs),
		updateService:    service.NewUpdateService(updateRepo, challengeRepo, imageRepo, blobs),
		geoService:       service.NewGeoService(challengeRepo),
		uploadService:    service.NewUploadService(blobs),
	}
}

func principal(email string) *model.Principal {
	return &model.Principal{Subject: "sub-" + email, Email: email, Name: "Tester"}
}

// formRequest builds an authenticated form post with the path id set.
func formRequest(method, target, id string, p *model.Principal, form url.Values) *http.Request {
	req := httptest.NewRequest(method, target, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	if id != "" {
		req.SetPathValue("id", id)
	}
	if p != nil {
		req = req.WithContext(ctxkeys.WithPrincipal(req.Context(), p))
	}
	return req
}
