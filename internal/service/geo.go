package service

import (
	"strings"

	"github.com/strivehq/strive/internal/apperr"
	"github.com/strivehq/strive/internal/model"
	"github.com/strivehq/strive/internal/repository"
)

// GeoService aggregates challenges by their free-text country for map
// browsing. Matching is exact after trimming on both sides.
type GeoService struct {
	challengeRepository repository.ChallengeRepository
}

func NewGeoService(challengeRepository repository.ChallengeRepository) *GeoService {
	return &GeoService{challengeRepository: challengeRepository}
}

// CountByCountry returns how many challenges name the country. Zero matches
// is a valid zero, not an error.
func (s *GeoService) CountByCountry(country string) (int, error) {
	country = strings.TrimSpace(country)
	if country == "" {
		return 0, apperr.ErrCountryRequired
	}

	count, err := s.challengeRepository.CountByCountry(country)
	if err != nil {
		return 0, apperr.Persistence(err)
	}

	return count, nil
}

// ListByCountry returns the map pins for the country, ordered by title.
func (s *GeoService) ListByCountry(country string) ([]*model.ChallengePin, error) {
	country = strings.TrimSpace(country)
	if country == "" {
		return nil, apperr.ErrCountryRequired
	}

	pins, err := s.challengeRepository.PinsByCountry(country)
	if err != nil {
		return nil, apperr.Persistence(err)
	}

	return pins, nil
}
