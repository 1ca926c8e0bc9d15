package users

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// handles user database operations
type Repository struct {
	db *pgxpool.Pool
}

// creates a new user repository
func NewRepository(db *pgxpool.Pool) *Repository {
	return &Repository{db: db}
}

// finds a user by subject or creates a pending one. relies on the
// UNIQUE(subject_id) constraint so racing first logins insert exactly once.
func (r *Repository) FindOrCreate(ctx context.Context, identity Identity) (*User, bool, error) {
	user, err := scanUser(r.db.QueryRow(
		ctx,
		queryInsertIfAbsent,
		uuid.NewString(),
		identity.SubjectID,
		identity.Email,
		identity.DisplayName,
		identity.PictureURL,
	))

	if err == nil {
		return user, true, nil
	}

	if !errors.Is(err, pgx.ErrNoRows) {
		return nil, false, fmt.Errorf("failed to insert user: %w", err)
	}

	// conflict: another request (or an earlier login) created the row
	user, err = scanUser(r.db.QueryRow(ctx, queryFindBySubject, identity.SubjectID))
	if err != nil {
		return nil, false, fmt.Errorf("failed to load user by subject: %w", err)
	}

	return user, false, nil
}

// finds a user by their ID
func (r *Repository) FindByID(ctx context.Context, userID string) (*User, error) {
	if uuid.Validate(userID) != nil {
		return nil, ErrNotFound
	}

	user, err := scanUser(r.db.QueryRow(ctx, queryFindByID, userID))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}

	if err != nil {
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	return user, nil
}

// merges the patch under a row lock and writes the recomputed status in the same transaction
func (r *Repository) UpdateProfile(ctx context.Context, userID string, patch ProfilePatch) (*User, error) {
	if uuid.Validate(userID) != nil {
		return nil, ErrNotFound
	}

	var updated *User

	err := pgx.BeginFunc(ctx, r.db, func(tx pgx.Tx) error {
		user, err := scanUser(tx.QueryRow(ctx, queryLockByID, userID))
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrNotFound
		}

		if err != nil {
			return fmt.Errorf("failed to lock user: %w", err)
		}

		user.applyPatch(patch)

		updated, err = scanUser(tx.QueryRow(
			ctx,
			queryUpdateProfile,
			user.AdditionalInfo.PhoneNumber,
			user.AdditionalInfo.Address,
			user.AdditionalInfo.Bio,
			string(user.ProfileStatus),
			userID,
		))
		if err != nil {
			return fmt.Errorf("failed to update profile: %w", err)
		}

		return nil
	})

	if err != nil {
		return nil, err
	}

	return updated, nil
}

// removes a user record
func (r *Repository) Delete(ctx context.Context, userID string) error {
	if uuid.Validate(userID) != nil {
		return ErrNotFound
	}

	tag, err := r.db.Exec(ctx, queryDeleteByID, userID)
	if err != nil {
		return fmt.Errorf("failed to delete user: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}

	return nil
}

func scanUser(row pgx.Row) (*User, error) {
	var user User
	var status string

	err := row.Scan(
		&user.ID,
		&user.SubjectID,
		&user.Email,
		&user.DisplayName,
		&user.PictureURL,
		&status,
		&user.AdditionalInfo.PhoneNumber,
		&user.AdditionalInfo.Address,
		&user.AdditionalInfo.Bio,
		&user.CreatedAt,
		&user.UpdatedAt,
	)

	if err != nil {
		return nil, err
	}

	user.ProfileStatus = ProfileStatus(status)
	return &user, nil
}

var _ Directory = (*Repository)(nil)
