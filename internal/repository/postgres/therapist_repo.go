package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"

	"physioflow/server/internal/domain"
	"physioflow/server/internal/repository"
)

const therapistColumns = "id, firstname, lastname, email, clinic, permission, createdat"

// therapistRepository implements repository.TherapistRepository over PostgreSQL.
type therapistRepository struct {
	db DBTX
}

// NewTherapistRepository creates a Therapist repository backed by PostgreSQL.
func NewTherapistRepository(db DBTX) repository.TherapistRepository {
	return &therapistRepository{db: db}
}

// List returns the full roster, newest first.
func (r *therapistRepository) List(ctx context.Context) ([]domain.Therapist, error) {
	query := `SELECT ` + therapistColumns + ` FROM therapists ORDER BY createdat DESC`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	therapists := []domain.Therapist{}
	for rows.Next() {
		var t domain.Therapist
		if err := scanTherapist(rows, &t); err != nil {
			return nil, err
		}
		therapists = append(therapists, t)
	}
	return therapists, rows.Err()
}

// Create inserts a new roster row. Permission defaults to "therapist" when
// not provided.
func (r *therapistRepository) Create(ctx context.Context, therapist *domain.Therapist) (*domain.Therapist, error) {
	if therapist.Email == "" {
		return nil, errors.New("therapist email is required")
	}
	if therapist.Permission == "" {
		therapist.Permission = domain.PermissionTherapist
	}

	query := `
		INSERT INTO therapists (firstname, lastname, email, clinic, permission)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING ` + therapistColumns

	var t domain.Therapist
	err := scanTherapist(r.db.QueryRow(ctx, query,
		therapist.FirstName,
		therapist.LastName,
		therapist.Email,
		therapist.Clinic,
		therapist.Permission,
	), &t)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// Update applies the patch column by column and returns the updated row.
// Unknown ids surface repository.ErrNotFound; the relational layer reports
// precise errors where the document store swallows them.
func (r *therapistRepository) Update(ctx context.Context, id int64, patch repository.TherapistPatch) (*domain.Therapist, error) {
	set := []string{}
	args := []any{}
	add := func(column string, value any) {
		args = append(args, value)
		set = append(set, fmt.Sprintf("%s = $%d", column, len(args)))
	}
	if patch.FirstName != nil {
		add("firstname", *patch.FirstName)
	}
	if patch.LastName != nil {
		add("lastname", *patch.LastName)
	}
	if patch.Email != nil {
		add("email", *patch.Email)
	}
	if patch.Clinic != nil {
		add("clinic", *patch.Clinic)
	}
	if patch.Permission != nil {
		add("permission", *patch.Permission)
	}

	if len(set) == 0 {
		return r.getByID(ctx, id)
	}

	args = append(args, id)
	query := fmt.Sprintf(
		`UPDATE therapists SET %s WHERE id = $%d RETURNING %s`,
		strings.Join(set, ", "), len(args), therapistColumns,
	)

	var t domain.Therapist
	err := scanTherapist(r.db.QueryRow(ctx, query, args...), &t)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &t, nil
}

// Delete removes the row with the given id, reporting ErrNotFound when no
// row matched.
func (r *therapistRepository) Delete(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM therapists WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *therapistRepository) getByID(ctx context.Context, id int64) (*domain.Therapist, error) {
	query := `SELECT ` + therapistColumns + ` FROM therapists WHERE id = $1`

	var t domain.Therapist
	err := scanTherapist(r.db.QueryRow(ctx, query, id), &t)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &t, nil
}

func scanTherapist(row pgx.Row, t *domain.Therapist) error {
	return row.Scan(
		&t.ID,
		&t.FirstName,
		&t.LastName,
		&t.Email,
		&t.Clinic,
		&t.Permission,
		&t.CreatedAt,
	)
}
