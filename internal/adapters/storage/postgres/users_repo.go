package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgconn"

	"adoptme-api/internal/domain/users"
	"adoptme-api/internal/platform/ident"
)

// códigos de error de Postgres
const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
)

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation
}

func isForeignKeyViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgForeignKeyViolation
}

type UsersRepo struct {
	db *sql.DB
}

func NewUsersRepo(db *sql.DB) *UsersRepo {
	return &UsersRepo{db: db}
}

func (r *UsersRepo) Create(ctx context.Context, u users.User) error {
	petsJSON, err := marshalPets(u.Pets)
	if err != nil {
		return err
	}

	_, err = r.db.ExecContext(ctx, `
		INSERT INTO users (
			id, first_name, last_name, email,
			password, role, pets,
			created_at, updated_at
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)
	`,
		u.ID, u.FirstName, u.LastName, u.Email,
		u.Password, u.Role, petsJSON,
		u.CreatedAt, u.UpdatedAt,
	)
	if isUniqueViolation(err) {
		return users.ErrEmailTaken
	}
	return err
}

func (r *UsersRepo) InsertMany(ctx context.Context, us []users.User) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO users (
			id, first_name, last_name, email,
			password, role, pets,
			created_at, updated_at
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)
	`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, u := range us {
		petsJSON, err := marshalPets(u.Pets)
		if err != nil {
			return err
		}
		if _, err := stmt.ExecContext(ctx,
			u.ID, u.FirstName, u.LastName, u.Email,
			u.Password, u.Role, petsJSON,
			u.CreatedAt, u.UpdatedAt,
		); err != nil {
			if isUniqueViolation(err) {
				return users.ErrEmailTaken
			}
			return err
		}
	}
	return tx.Commit()
}

func (r *UsersRepo) GetByID(ctx context.Context, id string) (users.User, error) {
	if !ident.IsValid(id) {
		return users.User{}, users.ErrNotFound
	}
	return r.getWhere(ctx, "id = $1", id)
}

func (r *UsersRepo) GetByEmail(ctx context.Context, email string) (users.User, error) {
	return r.getWhere(ctx, "email = $1", email)
}

func (r *UsersRepo) getWhere(ctx context.Context, cond string, arg any) (users.User, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT
			id, first_name, last_name, email,
			password, role, pets,
			created_at, updated_at
		FROM users
		WHERE `+cond, arg)

	u, err := scanUser(row)
	if err == sql.ErrNoRows {
		return users.User{}, users.ErrNotFound
	}
	return u, err
}

func (r *UsersRepo) List(ctx context.Context) ([]users.User, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT
			id, first_name, last_name, email,
			password, role, pets,
			created_at, updated_at
		FROM users
		ORDER BY created_at ASC, id ASC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]users.User, 0)
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, u)
	}
	return out, rows.Err()
}

func (r *UsersRepo) Update(ctx context.Context, u users.User) error {
	petsJSON, err := marshalPets(u.Pets)
	if err != nil {
		return err
	}

	res, err := r.db.ExecContext(ctx, `
		UPDATE users
		SET
			first_name = $2,
			last_name = $3,
			email = $4,
			password = $5,
			role = $6,
			pets = $7,
			updated_at = $8
		WHERE id = $1
	`,
		u.ID, u.FirstName, u.LastName, u.Email,
		u.Password, u.Role, petsJSON, u.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return users.ErrEmailTaken
		}
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return users.ErrNotFound
	}
	return nil
}

func (r *UsersRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		// adoptions.user_id referencia users: un user con adopciones no se borra
		if isForeignKeyViolation(err) {
			return users.ErrHasAdoptions
		}
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return users.ErrNotFound
	}
	return nil
}

func (r *UsersRepo) AppendPet(ctx context.Context, userID, petID string, at time.Time) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE users
		SET pets = pets || to_jsonb($2::text), updated_at = $3
		WHERE id = $1
	`, userID, petID, at)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return users.ErrNotFound
	}
	return nil
}

func scanUser(row rowScanner) (users.User, error) {
	var u users.User
	var petsJSON []byte
	if err := row.Scan(
		&u.ID,
		&u.FirstName,
		&u.LastName,
		&u.Email,
		&u.Password,
		&u.Role,
		&petsJSON,
		&u.CreatedAt,
		&u.UpdatedAt,
	); err != nil {
		return users.User{}, err
	}
	if err := json.Unmarshal(petsJSON, &u.Pets); err != nil {
		return users.User{}, fmt.Errorf("decode pets column: %w", err)
	}
	return u, nil
}

// pets se guarda como jsonb: el array de ids viaja como un solo valor
func marshalPets(ids []string) ([]byte, error) {
	if ids == nil {
		ids = []string{}
	}
	return json.Marshal(ids)
}
