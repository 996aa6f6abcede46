package profile

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/onmarkov/polyclinic/internal/domain"
	"github.com/onmarkov/polyclinic/pkg/psqlbuilder"
	"github.com/onmarkov/polyclinic/pkg/txmanager"
)

const pqUniqueViolation = pq.ErrorCode("23505")

// Repository репозиторий профилей пациентов и сотрудников
type Repository struct {
	db txmanager.DBExecutor
}

// NewRepository создает новый экземпляр репозитория профилей
func NewRepository(db txmanager.DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает профиль для пользователя.
// Вызывается шагом provisioning после регистрации у identity-провайдера.
func (r *Repository) Create(ctx context.Context, p *domain.Profile) (*domain.Profile, error) {
	executor := txmanager.GetExecutor(ctx, r.db)

	if p.Patronymic == "" {
		p.Patronymic = domain.NoPatronymic
	}

	query, args, err := psqlbuilder.Insert("profile").
		Columns("user_id", "patronymic", "birth_date", "gender", "idnumber", "note").
		Values(p.UserID, p.Patronymic, p.BirthDate, p.Gender, p.IDNumber, p.Note).
		Suffix("RETURNING created_at, updated_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&createdAt, &updatedAt); err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == pqUniqueViolation {
			return nil, ErrProfileExists
		}
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	p.CreatedAt = createdAt.Time
	p.UpdatedAt = updatedAt.Time

	return p, nil
}

// GetByUserID получает профиль пользователя
func (r *Repository) GetByUserID(ctx context.Context, userID int64) (*domain.Profile, error) {
	executor := txmanager.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"user_id",
		"patronymic",
		"birth_date",
		"gender",
		"idnumber",
		"note",
		"created_at",
		"updated_at",
	).
		From("profile").
		Where(squirrel.Eq{"user_id": userID}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByUserID - build select query: %v", ErrBuildQuery, err)
	}

	var (
		p                    domain.Profile
		birthDate            sql.NullTime
		gender               sql.NullString
		idNumber, note       sql.NullString
		createdAt, updatedAt sql.NullTime
	)

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&p.UserID,
		&p.Patronymic,
		&birthDate,
		&gender,
		&idNumber,
		&note,
		&createdAt,
		&updatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrProfileNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByUserID - scan profile: %v", ErrScanRow, err)
	}

	if birthDate.Valid {
		p.BirthDate = &birthDate.Time
	}
	if gender.Valid {
		p.Gender = &gender.String
	}
	if idNumber.Valid {
		p.IDNumber = &idNumber.String
	}
	if note.Valid {
		p.Note = &note.String
	}
	p.CreatedAt = createdAt.Time
	p.UpdatedAt = updatedAt.Time

	return &p, nil
}
