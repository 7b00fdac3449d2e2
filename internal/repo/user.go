package repo

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/google/uuid"

	"github.com/pkordes/tourvisto/backend/internal/domain"
)

// UserRepo reads registered users.
type UserRepo interface {
	// ListRecent returns users ordered by join time, newest first.
	ListRecent(ctx context.Context, limit, offset int) ([]domain.User, error)
}

type pgUserRepo struct {
	db db
}

// NewUserRepo constructs a UserRepo backed by the provided db connection.
func NewUserRepo(db db) UserRepo {
	return &pgUserRepo{db: db}
}

func (r *pgUserRepo) ListRecent(ctx context.Context, limit, offset int) ([]domain.User, error) {
	const q = `
		SELECT id, name, email, image_url, role, itinerary_count, joined_at
		FROM users
		ORDER BY joined_at DESC, id
		LIMIT @limit OFFSET @offset`

	rows, err := r.db.Query(ctx, q, pgx.NamedArgs{"limit": limit, "offset": offset})
	if err != nil {
		return nil, fmt.Errorf("repo.UserRepo.ListRecent: %w", err)
	}
	defer rows.Close()

	users := []domain.User{}
	for rows.Next() {
		var (
			u  domain.User
			id pgtype.UUID
		)
		if err := rows.Scan(&id, &u.Name, &u.Email, &u.ImageURL, &u.Role, &u.ItineraryCount, &u.JoinedAt); err != nil {
			return nil, fmt.Errorf("repo.UserRepo.ListRecent: scan: %w", err)
		}
		u.ID = uuid.UUID(id.Bytes)
		users = append(users, u)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("repo.UserRepo.ListRecent: rows: %w", err)
	}
	return users, nil
}
