package store

import (
	"context"
	"errors"

	"libraryapi/internal/entity"
	"libraryapi/internal/usecase"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type UserPG struct {
	db *pgxpool.Pool
}

func NewUserPG(db *pgxpool.Pool) *UserPG {
	return &UserPG{db: db}
}

func (r *UserPG) Create(ctx context.Context, u *entity.User) error {
	const query = `
	INSERT INTO users (username, email, password, role)
	VALUES ($1, $2, $3, COALESCE(NULLIF($4, ''), 'USER'))
	RETURNING id, role, created_at
	`
	err := r.db.QueryRow(ctx, query, u.Username, u.Email, u.Password, u.Role).
		Scan(&u.ID, &u.Role, &u.CreatedAt)
	if isUniqueViolation(err) {
		return usecase.ErrAlreadyExists
	}
	return err
}

func (r *UserPG) GetByEmail(ctx context.Context, email string) (entity.User, error) {
	return r.getBy(ctx, `WHERE email = $1`, email)
}

func (r *UserPG) GetByID(ctx context.Context, id int64) (entity.User, error) {
	return r.getBy(ctx, `WHERE id = $1`, id)
}

func (r *UserPG) getBy(ctx context.Context, where string, arg any) (entity.User, error) {
	query := `SELECT id, username, email, password, role, created_at FROM users ` + where + ` LIMIT 1`
	var u entity.User
	err := r.db.QueryRow(ctx, query, arg).
		Scan(&u.ID, &u.Username, &u.Email, &u.Password, &u.Role, &u.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return entity.User{}, usecase.ErrNotFound
		}
		return entity.User{}, err
	}
	return u, nil
}

func (r *UserPG) List(ctx context.Context) ([]entity.User, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id, username, email, password, role, created_at FROM users ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []entity.User
	for rows.Next() {
		var u entity.User
		if err := rows.Scan(&u.ID, &u.Username, &u.Email, &u.Password, &u.Role, &u.CreatedAt); err != nil {
			return nil, err
		}
		users = append(users, u)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return users, nil
}

func (r *UserPG) Update(ctx context.Context, u *entity.User) error {
	tag, err := r.db.Exec(ctx, `
		UPDATE users SET username = $2, email = $3, password = $4, role = $5
		WHERE id = $1
	`, u.ID, u.Username, u.Email, u.Password, u.Role)
	if isUniqueViolation(err) {
		return usecase.ErrAlreadyExists
	}
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return usecase.ErrNotFound
	}
	return nil
}

// 23505 is Postgres unique_violation.
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
