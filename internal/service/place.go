// Package service provides business logic for the application.
package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/placehub/placehub/internal/blob"
	"github.com/placehub/placehub/internal/cache"
	"github.com/placehub/placehub/internal/metrics"
	"github.com/placehub/placehub/internal/model"
	"github.com/placehub/placehub/internal/repository"
)

// Place service errors.
var (
	ErrPlaceNotFound = errors.New("place not found")
	ErrInvalidUser   = errors.New("invalid user")
	ErrForbidden     = errors.New("not authorized for this place")
	ErrInvalidInput  = errors.New("invalid input")
	ErrCreateFailed  = errors.New("creating place failed")
	ErrUpdateFailed  = errors.New("updating place failed")
	ErrDeleteFailed  = errors.New("deleting place failed")
)

const minDescriptionLength = 5

// PlaceService coordinates place lifecycle across the place and user
// stores. It is the only writer of the ownership relationship: the place
// row carries the authoritative creator edge, and the owner's cached
// back-reference set is kept in sync through transactional writes.
type PlaceService struct {
	repo    *repository.Repository
	cache   *cache.Cache
	blobs   blob.Store
	logger  *slog.Logger
	metrics metrics.Recorder
}

// NewPlaceService creates a new PlaceService.
func NewPlaceService(repo *repository.Repository, cacheClient *cache.Cache, blobs blob.Store, logger *slog.Logger, recorder metrics.Recorder) *PlaceService {
	if recorder == nil {
		recorder = metrics.NewNoop()
	}
	return &PlaceService{
		repo:    repo,
		cache:   cacheClient,
		blobs:   blobs,
		logger:  logger,
		metrics: recorder,
	}
}

// CreatePlaceInput defines input for creating a place.
type CreatePlaceInput struct {
	Title       string
	Description string
	Address     string
	Location    model.Coordinates
	ImagePath   string
}

// CreatePlace creates a place owned by the authenticated user and attaches
// it to the user's back-reference set. The place insert and the attach
// commit in one transaction; on any failure neither write is observable.
func (s *PlaceService) CreatePlace(ctx context.Context, userID string, input CreatePlaceInput) (*model.Place, error) {
	if err := validatePlaceFields(input.Title, input.Description); err != nil {
		return nil, err
	}
	if strings.TrimSpace(input.Address) == "" {
		return nil, fmt.Errorf("%w: address is required", ErrInvalidInput)
	}

	if _, err := s.repo.GetUserByID(ctx, userID); err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, ErrInvalidUser
		}
		return nil, fmt.Errorf("%w: %v", ErrCreateFailed, err)
	}

	now := time.Now().UTC()
	place := &model.Place{
		ID:          ulid.Make().String(),
		Title:       input.Title,
		Description: input.Description,
		Address:     input.Address,
		Location:    input.Location,
		ImagePath:   input.ImagePath,
		CreatorID:   userID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.repo.CreatePlaceForUser(ctx, place); err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			// Owner disappeared between the lookup and the transaction.
			return nil, ErrInvalidUser
		}
		return nil, fmt.Errorf("%w: %v", ErrCreateFailed, err)
	}

	s.metrics.IncPlaceCreated()

	return place, nil
}

// GetPlaceByID retrieves a single place, serving the hot read path from
// cache when possible.
func (s *PlaceService) GetPlaceByID(ctx context.Context, id string) (*model.Place, error) {
	if s.cache != nil {
		if place, err := s.cache.GetPlace(ctx, id); err == nil {
			s.metrics.IncPlaceCacheHit()
			return place, nil
		}
		s.metrics.IncPlaceCacheMiss()
	}

	place, err := s.repo.GetPlaceByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrPlaceNotFound) {
			return nil, ErrPlaceNotFound
		}
		return nil, err
	}

	if s.cache != nil {
		if err := s.cache.SetPlace(ctx, place); err != nil {
			s.logger.Warn("failed to cache place", "place_id", place.ID, "error", err)
		}
	}

	return place, nil
}

// GetPlacesForUser resolves a user's back-reference set into full place
// records. A user with zero places yields an empty result, which is
// distinct from an unknown user.
func (s *PlaceService) GetPlacesForUser(ctx context.Context, userID string) ([]*model.Place, error) {
	user, err := s.repo.GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, ErrInvalidUser
		}
		return nil, err
	}

	places, err := s.repo.GetPlacesByIDs(ctx, user.PlaceIDs)
	if err != nil {
		return nil, err
	}

	return places, nil
}

// UpdatePlaceInput defines input for updating a place.
type UpdatePlaceInput struct {
	Title       string
	Description string
}

// UpdatePlace applies title/description changes to a place. Only the
// owning identity may mutate; a non-owner gets ErrForbidden with no
// mutation and no field disclosure.
func (s *PlaceService) UpdatePlace(ctx context.Context, userID, placeID string, input UpdatePlaceInput) (*model.Place, error) {
	if err := validatePlaceFields(input.Title, input.Description); err != nil {
		return nil, err
	}

	place, err := s.repo.GetPlaceByID(ctx, placeID)
	if err != nil {
		if errors.Is(err, repository.ErrPlaceNotFound) {
			return nil, ErrPlaceNotFound
		}
		return nil, fmt.Errorf("%w: %v", ErrUpdateFailed, err)
	}

	if !place.OwnedBy(userID) {
		return nil, ErrForbidden
	}

	place.Title = input.Title
	place.Description = input.Description
	place.UpdatedAt = time.Now().UTC()

	if err := s.repo.UpdatePlace(ctx, place); err != nil {
		if errors.Is(err, repository.ErrPlaceNotFound) {
			return nil, ErrPlaceNotFound
		}
		return nil, fmt.Errorf("%w: %v", ErrUpdateFailed, err)
	}

	s.invalidateCache(ctx, place.ID)
	s.metrics.IncPlaceUpdated()

	return place, nil
}

// DeletePlace removes a place and detaches it from its owner in one
// transaction. The associated blob is released only after the transaction
// commits; a failed release is logged and swallowed so it can never undo
// a committed deletion.
func (s *PlaceService) DeletePlace(ctx context.Context, userID, placeID string) error {
	place, err := s.repo.GetPlaceByID(ctx, placeID)
	if err != nil {
		if errors.Is(err, repository.ErrPlaceNotFound) {
			return ErrPlaceNotFound
		}
		return fmt.Errorf("%w: %v", ErrDeleteFailed, err)
	}

	if !place.OwnedBy(userID) {
		return ErrForbidden
	}

	if err := s.repo.DeletePlaceForUser(ctx, place); err != nil {
		if errors.Is(err, repository.ErrPlaceNotFound) {
			return ErrPlaceNotFound
		}
		return fmt.Errorf("%w: %v", ErrDeleteFailed, err)
	}

	s.invalidateCache(ctx, place.ID)
	s.metrics.IncPlaceDeleted()

	// Post-commit cleanup. A stray blob is acceptable; a resurrected
	// place record is not.
	if s.blobs != nil && place.ImagePath != "" {
		if err := s.blobs.Remove(ctx, place.ImagePath); err != nil {
			s.logger.Warn("failed to release place image",
				"place_id", place.ID,
				"image", place.ImagePath,
				"error", err,
			)
		}
	}

	return nil
}

// invalidateCache drops a place from cache so reads observe committed state.
func (s *PlaceService) invalidateCache(ctx context.Context, placeID string) {
	if s.cache == nil {
		return
	}
	if err := s.cache.DeletePlace(ctx, placeID); err != nil {
		s.logger.Warn("failed to invalidate place cache", "place_id", placeID, "error", err)
	}
}

// validatePlaceFields enforces the minimal syntactic rules for place
// mutations: non-empty title, description of at least 5 chars.
func validatePlaceFields(title, description string) error {
	if strings.TrimSpace(title) == "" {
		return fmt.Errorf("%w: title is required", ErrInvalidInput)
	}
	if len(strings.TrimSpace(description)) < minDescriptionLength {
		return fmt.Errorf("%w: description must be at least %d characters", ErrInvalidInput, minDescriptionLength)
	}
	return nil
}
