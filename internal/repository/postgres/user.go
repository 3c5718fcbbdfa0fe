package postgres

import (
	"context"
	"strconv"

	"github.com/BloggingApp/vanguard/internal/model"
	"github.com/google/uuid"
)

var userUpdatableFields = map[string]struct{}{
	"email":               {},
	"name":                {},
	"picture":             {},
	"admin":               {},
	"can_post_restricted": {},
}

type userRepo struct {
	db DBTX
}

func newUserRepo(db DBTX) User {
	return &userRepo{
		db: db,
	}
}

// Upsert stores the identity-provider profile. Local flags (admin,
// can_post_restricted) are only written on first insert.
func (r *userRepo) Upsert(ctx context.Context, user model.User) error {
	_, err := r.db.Exec(
		ctx,
		`INSERT INTO users(id, email, name, picture, admin, can_post_restricted)
		VALUES($1, $2, $3, $4, $5, $6)
		ON CONFLICT (id) DO UPDATE SET
			email = EXCLUDED.email,
			name = COALESCE(EXCLUDED.name, users.name),
			picture = COALESCE(EXCLUDED.picture, users.picture)`,
		user.ID,
		user.Email,
		user.Name,
		user.Picture,
		user.Admin,
		user.CanPostRestricted,
	)
	return err
}

func (r *userRepo) Update(ctx context.Context, id uuid.UUID, updates map[string]interface{}) error {
	if len(updates) == 0 {
		return nil
	}

	for field := range updates {
		if _, ok := userUpdatableFields[field]; !ok {
			return ErrFieldsNotAllowedToUpdate
		}
	}

	query := "UPDATE users SET "
	args := []interface{}{}
	i := 1

	for column, value := range updates {
		query += (column + " = $" + strconv.Itoa(i) + ", ")
		args = append(args, value)
		i++
	}

	query = query[:len(query)-2] + " WHERE id = $" + strconv.Itoa(i)
	args = append(args, id)

	_, err := r.db.Exec(ctx, query, args...)
	return err
}

func (r *userRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.User, error) {
	var user model.User
	if err := r.db.QueryRow(
		ctx,
		"SELECT u.id, u.email, u.name, u.picture, u.admin, u.can_post_restricted FROM users u WHERE u.id = $1",
		id,
	).Scan(
		&user.ID,
		&user.Email,
		&user.Name,
		&user.Picture,
		&user.Admin,
		&user.CanPostRestricted,
	); err != nil {
		return nil, err
	}

	return &user, nil
}
