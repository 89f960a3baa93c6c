package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/lib/pq"

	"github.com/placehub/placehub/internal/model"
)

// Common errors for place repository operations.
var (
	ErrPlaceNotFound = errors.New("place not found")
)

const placeColumns = `id, title, description, address, lat, lng, image_path, creator_id, created_at, updated_at`

// testHookBetweenWrites, when set, runs between the place write and the
// owner back-reference write inside CreatePlaceForUser/DeletePlaceForUser.
// Tests use it to inject failures; always nil in production.
var testHookBetweenWrites func(ctx context.Context, tx pgx.Tx) error

// GetPlaceByID retrieves a place by its ID.
func (r *Repository) GetPlaceByID(ctx context.Context, id string) (*model.Place, error) {
	query := `SELECT ` + placeColumns + ` FROM places WHERE id = $1`

	place, err := scanPlace(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrPlaceNotFound
		}
		return nil, fmt.Errorf("failed to get place by ID: %w", err)
	}

	return place, nil
}

// GetPlacesByIDs resolves a set of place IDs into full place records,
// ordered by creation time. Missing IDs are silently skipped.
func (r *Repository) GetPlacesByIDs(ctx context.Context, ids []string) ([]*model.Place, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	query := `SELECT ` + placeColumns + ` FROM places WHERE id = ANY($1) ORDER BY created_at`

	rows, err := r.pool.Query(ctx, query, pq.Array(ids))
	if err != nil {
		return nil, fmt.Errorf("failed to get places by IDs: %w", err)
	}
	defer rows.Close()

	var places []*model.Place
	for rows.Next() {
		place, err := scanPlace(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan place: %w", err)
		}
		places = append(places, place)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating places: %w", err)
	}

	return places, nil
}

// UpdatePlace updates a place's mutable fields (title and description).
// The creator is immutable and never touched here.
func (r *Repository) UpdatePlace(ctx context.Context, place *model.Place) error {
	query := `
		UPDATE places
		SET title = $2, description = $3, updated_at = $4
		WHERE id = $1
	`

	result, err := r.pool.Exec(ctx, query,
		place.ID,
		place.Title,
		place.Description,
		place.UpdatedAt,
	)

	if err != nil {
		return fmt.Errorf("failed to update place: %w", err)
	}

	if result.RowsAffected() == 0 {
		return ErrPlaceNotFound
	}

	return nil
}

// CreatePlaceForUser inserts a new place and appends its ID to the owner's
// back-reference set in a single transaction. Both writes commit together
// or neither is observable. The owner row is locked first, so concurrent
// attach/detach operations on the same user serialize instead of losing
// each other's array update.
func (r *Repository) CreatePlaceForUser(ctx context.Context, place *model.Place) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	if err := lockUserRow(ctx, tx, place.CreatorID); err != nil {
		return err
	}

	insertPlace := `
		INSERT INTO places (id, title, description, address, lat, lng, image_path, creator_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`
	_, err = tx.Exec(ctx, insertPlace,
		place.ID,
		place.Title,
		place.Description,
		place.Address,
		place.Location.Lat,
		place.Location.Lng,
		place.ImagePath,
		place.CreatorID,
		place.CreatedAt,
		place.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create place: %w", err)
	}

	if testHookBetweenWrites != nil {
		if err := testHookBetweenWrites(ctx, tx); err != nil {
			return err
		}
	}

	attach := `UPDATE users SET place_ids = array_append(place_ids, $2) WHERE id = $1`
	if _, err := tx.Exec(ctx, attach, place.CreatorID, place.ID); err != nil {
		return fmt.Errorf("failed to attach place to user: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit place creation: %w", err)
	}

	return nil
}

// DeletePlaceForUser removes a place and detaches its ID from the owner's
// back-reference set in a single transaction. Same all-or-nothing contract
// as CreatePlaceForUser: a failure in either write rolls back both.
func (r *Repository) DeletePlaceForUser(ctx context.Context, place *model.Place) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	if err := lockUserRow(ctx, tx, place.CreatorID); err != nil {
		return err
	}

	result, err := tx.Exec(ctx, `DELETE FROM places WHERE id = $1`, place.ID)
	if err != nil {
		return fmt.Errorf("failed to delete place: %w", err)
	}
	if result.RowsAffected() == 0 {
		return ErrPlaceNotFound
	}

	if testHookBetweenWrites != nil {
		if err := testHookBetweenWrites(ctx, tx); err != nil {
			return err
		}
	}

	detach := `UPDATE users SET place_ids = array_remove(place_ids, $2) WHERE id = $1`
	if _, err := tx.Exec(ctx, detach, place.CreatorID, place.ID); err != nil {
		return fmt.Errorf("failed to detach place from user: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit place deletion: %w", err)
	}

	return nil
}

// lockUserRow takes a row-level lock on the owner, serializing concurrent
// back-reference updates for the same user. Also validates the user exists.
func lockUserRow(ctx context.Context, tx pgx.Tx, userID string) error {
	var id string
	err := tx.QueryRow(ctx, `SELECT id FROM users WHERE id = $1 FOR UPDATE`, userID).Scan(&id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrUserNotFound
		}
		return fmt.Errorf("failed to lock user row: %w", err)
	}
	return nil
}

// scanPlace scans a single row into a Place model.
func scanPlace(row pgx.Row) (*model.Place, error) {
	var place model.Place
	err := row.Scan(
		&place.ID,
		&place.Title,
		&place.Description,
		&place.Address,
		&place.Location.Lat,
		&place.Location.Lng,
		&place.ImagePath,
		&place.CreatorID,
		&place.CreatedAt,
		&place.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &place, nil
}
