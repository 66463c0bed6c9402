package postgres

import (
	"context"
	"database/sql"
	"time"

	"adoptme-api/internal/domain/pets"
	"adoptme-api/internal/platform/ident"
)

type PetsRepo struct {
	db *sql.DB
}

func NewPetsRepo(db *sql.DB) *PetsRepo {
	return &PetsRepo{db: db}
}

func (r *PetsRepo) Create(ctx context.Context, p pets.Pet) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO pets (
			id, name, species, birth_date,
			adopted, owner_user_id,
			created_at, updated_at
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
	`,
		p.ID,
		p.Name,
		p.Species,
		toNullDate(p.BirthDate),
		p.Adopted,
		p.OwnerUserID,
		p.CreatedAt,
		p.UpdatedAt,
	)
	return err
}

func (r *PetsRepo) InsertMany(ctx context.Context, ps []pets.Pet) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO pets (
			id, name, species, birth_date,
			adopted, owner_user_id,
			created_at, updated_at
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
	`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, p := range ps {
		if _, err := stmt.ExecContext(ctx,
			p.ID, p.Name, p.Species, toNullDate(p.BirthDate),
			p.Adopted, p.OwnerUserID, p.CreatedAt, p.UpdatedAt,
		); err != nil {
			return err
		}
	}
	return tx.Commit()
}

func (r *PetsRepo) GetByID(ctx context.Context, id string) (pets.Pet, error) {
	if !ident.IsValid(id) {
		return pets.Pet{}, pets.ErrNotFound
	}

	row := r.db.QueryRowContext(ctx, `
		SELECT
			id, name, species, birth_date,
			adopted, owner_user_id,
			created_at, updated_at
		FROM pets
		WHERE id = $1
	`, id)

	p, err := scanPet(row)
	if err == sql.ErrNoRows {
		return pets.Pet{}, pets.ErrNotFound
	}
	return p, err
}

func (r *PetsRepo) List(ctx context.Context) ([]pets.Pet, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT
			id, name, species, birth_date,
			adopted, owner_user_id,
			created_at, updated_at
		FROM pets
		ORDER BY created_at ASC, id ASC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]pets.Pet, 0)
	for rows.Next() {
		p, err := scanPet(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

// MarkAdopted hace la transición available -> adopted en un solo UPDATE
// condicional: si otro request ganó la carrera, RowsAffected es 0.
func (r *PetsRepo) MarkAdopted(ctx context.Context, petID, ownerUserID string, at time.Time) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE pets
		SET adopted = TRUE, owner_user_id = $2, updated_at = $3
		WHERE id = $1 AND adopted = FALSE
	`, petID, ownerUserID, at)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return pets.ErrAlreadyAdopted
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanPet(row rowScanner) (pets.Pet, error) {
	var p pets.Pet
	var bd sql.NullTime
	if err := row.Scan(
		&p.ID,
		&p.Name,
		&p.Species,
		&bd,
		&p.Adopted,
		&p.OwnerUserID,
		&p.CreatedAt,
		&p.UpdatedAt,
	); err != nil {
		return pets.Pet{}, err
	}
	if bd.Valid {
		t := bd.Time
		// ojo: birth_date es date, pgx lo mapea a time.Time midnight UTC
		p.BirthDate = &t
	}
	return p, nil
}

// birth_date es DATE, lo pasamos como NullTime para simplificar
func toNullDate(t *time.Time) sql.NullTime {
	if t == nil {
		return sql.NullTime{Valid: false}
	}
	return sql.NullTime{Time: *t, Valid: true}
}
