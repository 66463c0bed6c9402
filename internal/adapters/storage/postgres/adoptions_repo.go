package postgres

import (
	"context"
	"database/sql"

	"adoptme-api/internal/domain/adoptions"
	"adoptme-api/internal/domain/pets"
	"adoptme-api/internal/platform/ident"
)

type AdoptionsRepo struct {
	db *sql.DB
}

func NewAdoptionsRepo(db *sql.DB) *AdoptionsRepo {
	return &AdoptionsRepo{db: db}
}

func (r *AdoptionsRepo) Create(ctx context.Context, a adoptions.Adoption) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO adoptions (id, user_id, pet_id, created_at)
		VALUES ($1,$2,$3,$4)
	`, a.ID, a.UserID, a.PetID, a.CreatedAt)
	// pet_id es UNIQUE: segunda barrera contra doble adopción además del
	// UPDATE condicional en pets
	if isUniqueViolation(err) {
		return pets.ErrAlreadyAdopted
	}
	return err
}

func (r *AdoptionsRepo) GetByID(ctx context.Context, id string) (adoptions.Adoption, error) {
	if !ident.IsValid(id) {
		return adoptions.Adoption{}, adoptions.ErrNotFound
	}

	row := r.db.QueryRowContext(ctx, `
		SELECT id, user_id, pet_id, created_at
		FROM adoptions
		WHERE id = $1
	`, id)

	var a adoptions.Adoption
	if err := row.Scan(&a.ID, &a.UserID, &a.PetID, &a.CreatedAt); err != nil {
		if err == sql.ErrNoRows {
			return adoptions.Adoption{}, adoptions.ErrNotFound
		}
		return adoptions.Adoption{}, err
	}
	return a, nil
}

func (r *AdoptionsRepo) List(ctx context.Context) ([]adoptions.Adoption, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, user_id, pet_id, created_at
		FROM adoptions
		ORDER BY created_at ASC, id ASC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]adoptions.Adoption, 0)
	for rows.Next() {
		var a adoptions.Adoption
		if err := rows.Scan(&a.ID, &a.UserID, &a.PetID, &a.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}
