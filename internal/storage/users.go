package storage

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/claude/ironlog/internal/models"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// ErrUserExists is returned when a registration collides with an
// existing email or username.
var ErrUserExists = errors.New("email or username already taken")

const userColumns = `id, username, email, body_weight, body_height, age, gender, weekly_goal, pal_value, created_at`

// CreateUser inserts a new account with the given bcrypt hash.
func (db *DB) CreateUser(ctx context.Context, username, email, passwordHash string) (*models.User, error) {
	var exists bool
	err := db.Pool.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM users WHERE email = $1 OR username = $2)`,
		email, username).Scan(&exists)
	if err != nil {
		return nil, fmt.Errorf("checking existing user: %w", err)
	}
	if exists {
		return nil, ErrUserExists
	}

	row := db.Pool.QueryRow(ctx,
		`INSERT INTO users (id, username, email, password_hash)
		 VALUES ($1, $2, $3, $4)
		 RETURNING `+userColumns,
		uuid.New(), username, email, passwordHash)

	u, err := scanUser(row)
	if err != nil {
		return nil, fmt.Errorf("inserting user: %w", err)
	}
	return u, nil
}

// GetUser retrieves a user by id.
func (db *DB) GetUser(ctx context.Context, id uuid.UUID) (*models.User, error) {
	row := db.Pool.QueryRow(ctx,
		`SELECT `+userColumns+` FROM users WHERE id = $1`, id)
	u, err := scanUser(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("querying user: %w", err)
	}
	return u, nil
}

// GetUserByEmail retrieves a user and their password hash for login.
func (db *DB) GetUserByEmail(ctx context.Context, email string) (*models.User, string, error) {
	var u models.User
	var hash string
	err := db.Pool.QueryRow(ctx,
		`SELECT `+userColumns+`, password_hash FROM users WHERE email = $1`, email).
		Scan(&u.ID, &u.Username, &u.Email, &u.BodyWeight, &u.BodyHeight,
			&u.Age, &u.Gender, &u.WeeklyGoal, &u.PALValue, &u.CreatedAt, &hash)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, "", ErrNotFound
	}
	if err != nil {
		return nil, "", fmt.Errorf("querying user by email: %w", err)
	}
	return &u, hash, nil
}

// UpdateUser applies a partial profile update; nil fields are left as
// they are. Returns the updated user.
func (db *DB) UpdateUser(ctx context.Context, id uuid.UUID, upd models.UserUpdate) (*models.User, error) {
	sets := make([]string, 0, 6)
	args := make([]any, 0, 7)

	add := func(col string, v any) {
		args = append(args, v)
		sets = append(sets, fmt.Sprintf("%s = $%d", col, len(args)))
	}
	if upd.BodyWeight != nil {
		add("body_weight", *upd.BodyWeight)
	}
	if upd.BodyHeight != nil {
		add("body_height", *upd.BodyHeight)
	}
	if upd.Age != nil {
		add("age", *upd.Age)
	}
	if upd.Gender != nil {
		add("gender", *upd.Gender)
	}
	if upd.WeeklyGoal != nil {
		add("weekly_goal", *upd.WeeklyGoal)
	}
	if upd.PALValue != nil {
		add("pal_value", *upd.PALValue)
	}
	if len(sets) == 0 {
		return db.GetUser(ctx, id)
	}

	args = append(args, id)
	row := db.Pool.QueryRow(ctx,
		fmt.Sprintf(`UPDATE users SET %s WHERE id = $%d RETURNING %s`,
			strings.Join(sets, ", "), len(args), userColumns),
		args...)

	u, err := scanUser(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("updating user: %w", err)
	}
	return u, nil
}

func scanUser(row pgx.Row) (*models.User, error) {
	var u models.User
	err := row.Scan(&u.ID, &u.Username, &u.Email, &u.BodyWeight, &u.BodyHeight,
		&u.Age, &u.Gender, &u.WeeklyGoal, &u.PALValue, &u.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &u, nil
}
