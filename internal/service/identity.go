package service

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/strivehq/strive/internal/apperr"
	"github.com/strivehq/strive/internal/model"
	"github.com/strivehq/strive/internal/repository"
)

// FallbackUserName is used when the external principal carries no display
// name.
const FallbackUserName = "Anonymous"

// IdentityService maps an externally verified principal onto an internal
// user record, creating the record on first contact.
type IdentityService struct {
	userRepository repository.UserRepository
}

func NewIdentityService(userRepository repository.UserRepository) *IdentityService {
	return &IdentityService{userRepository: userRepository}
}

// Resolve returns the user record for the principal, creating one when the
// email has never been seen. There is no fallback identity: requests without
// a principal or without an email fail outright.
func (s *IdentityService) Resolve(principal *model.Principal) (*model.User, error) {
	if principal == nil {
		return nil, apperr.ErrUnauthenticated
	}

	email := strings.TrimSpace(strings.ToLower(principal.Email))
	if email == "" {
		return nil, apperr.ErrMissingEmail
	}

	user, err := s.userRepository.ByEmail(email)
	if err == nil {
		return user, nil
	}
	if !errors.Is(err, repository.ErrUserNotFound) {
		return nil, apperr.Persistence(err)
	}

	name := strings.TrimSpace(principal.Name)
	if name == "" {
		name = FallbackUserName
	}

	user = &model.User{
		ID:        uuid.New().String(),
		Subject:   principal.Subject,
		Email:     email,
		Name:      name,
		CreatedAt: time.Now(),
	}

	err = s.userRepository.Create(user)
	if errors.Is(err, repository.ErrDuplicateEmail) {
		// Lost a create race against a concurrent request: the row exists now.
		user, err = s.userRepository.ByEmail(email)
		if err != nil {
			return nil, apperr.Persistence(err)
		}
		return user, nil
	}
	if err != nil {
		return nil, apperr.Persistence(err)
	}

	return user, nil
}
