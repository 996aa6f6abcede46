package scheduleline

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

const (
	pqUniqueViolation     = pq.ErrorCode("23505")
	pqForeignKeyViolation = pq.ErrorCode("23503")
)

var lineColumns = []string{
	"id",
	"dapp",
	"specialization_id",
	"doctor_id",
	"room",
	"window_start",
	"window_end",
	"budget_count",
	"commerce_count",
	"slots_generated",
	"created_at",
	"updated_at",
}

// Repository репозиторий строк расписания приема
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория строк расписания
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает новую строку расписания
func (r *Repository) Create(ctx context.Context, line *domain.ScheduleLine) (*domain.ScheduleLine, error) {
	executor := txmanager.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("schedule_line").
		Columns(
			"dapp",
			"specialization_id",
			"doctor_id",
			"room",
			"window_start",
			"window_end",
			"budget_count",
			"commerce_count",
		).
		Values(
			line.Date,
			line.SpecializationID,
			line.DoctorID,
			line.Room,
			line.WindowStart,
			line.WindowEnd,
			line.BudgetCount,
			line.CommerceCount,
		).
		Suffix("RETURNING id, slots_generated, created_at, updated_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&line.ID,
		&line.SlotsGenerated,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) {
			switch pqErr.Code {
			case pqUniqueViolation:
				return nil, ErrLineExists
			case pqForeignKeyViolation:
				return nil, fmt.Errorf("%w: Create - unknown specialization or doctor: %v", ErrExecQuery, err)
			}
		}
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	line.CreatedAt = createdAt.Time
	line.UpdatedAt = updatedAt.Time

	return line, nil
}

// GetByID получает строку расписания по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.ScheduleLine, error) {
	executor := txmanager.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(lineColumns...).
		From("schedule_line").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	line, err := scanLine(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrLineNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan line: %v", ErrScanRow, err)
	}

	return line, nil
}

// List получает строки расписания по фильтру, свежие даты первыми
func (r *Repository) List(ctx context.Context, filter domain.ScheduleLineFilter) ([]*domain.ScheduleLine, error) {
	executor := txmanager.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(lineColumns...).
		From("schedule_line").
		OrderBy("dapp DESC", "specialization_id ASC", "doctor_id ASC")

	if filter.DateFrom != nil {
		selectBuilder = selectBuilder.Where(squirrel.GtOrEq{"dapp": *filter.DateFrom})
	}
	if filter.SpecializationID != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"specialization_id": *filter.SpecializationID})
	}
	if filter.DoctorID != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"doctor_id": *filter.DoctorID})
	}
	if filter.OnlyGenerated {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"slots_generated": true})
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: List - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: List - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	lines := make([]*domain.ScheduleLine, 0)
	for rows.Next() {
		line, err := scanLine(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: List - scan row: %v", ErrScanRow, err)
		}
		lines = append(lines, line)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: List - rows error: %v", ErrScanRow, err)
	}

	return lines, nil
}

// UpdatePlan обновляет плановые поля строки расписания.
// Условие slots_generated = false в самом UPDATE: после генерации талонов
// строка заморожена, и проверка с изменением выполняются атомарно.
func (r *Repository) UpdatePlan(ctx context.Context, line *domain.ScheduleLine) error {
	executor := txmanager.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("schedule_line").
		Set("dapp", line.Date).
		Set("specialization_id", line.SpecializationID).
		Set("doctor_id", line.DoctorID).
		Set("room", line.Room).
		Set("window_start", line.WindowStart).
		Set("window_end", line.WindowEnd).
		Set("budget_count", line.BudgetCount).
		Set("commerce_count", line.CommerceCount).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": line.ID, "slots_generated": false}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: UpdatePlan - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == pqUniqueViolation {
			return ErrLineExists
		}
		return fmt.Errorf("%w: UpdatePlan - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: UpdatePlan - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		if _, err := r.GetByID(ctx, line.ID); errors.Is(err, ErrLineNotFound) {
			return ErrLineNotFound
		}
		return ErrLineImmutable
	}

	return nil
}

// MarkGenerated устанавливает флаг slots_generated.
// Условный UPDATE гарантирует, что флаг взводится ровно один раз:
// повторная генерация получает ErrAlreadyGenerated.
func (r *Repository) MarkGenerated(ctx context.Context, id int64) error {
	executor := txmanager.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("schedule_line").
		Set("slots_generated", true).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id, "slots_generated": false}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: MarkGenerated - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		if txmanager.IsSerializationFailure(err) {
			return txmanager.ErrSerializationFailure
		}
		return fmt.Errorf("%w: MarkGenerated - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: MarkGenerated - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		if _, err := r.GetByID(ctx, id); errors.Is(err, ErrLineNotFound) {
			return ErrLineNotFound
		}
		return ErrAlreadyGenerated
	}

	return nil
}

// ResetGenerated сбрасывает флаг slots_generated после удаления талонов,
// поля строки снова становятся редактируемыми. Идемпотентна.
func (r *Repository) ResetGenerated(ctx context.Context, id int64) error {
	executor := txmanager.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("schedule_line").
		Set("slots_generated", false).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: ResetGenerated - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		if txmanager.IsSerializationFailure(err) {
			return txmanager.ErrSerializationFailure
		}
		return fmt.Errorf("%w: ResetGenerated - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: ResetGenerated - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrLineNotFound
	}

	return nil
}

// Delete удаляет строку расписания.
// FK из таблицы талонов без каскада: удаление строки с талонами
// отклоняется БД и превращается в ErrHasDependents.
func (r *Repository) Delete(ctx context.Context, id int64) error {
	executor := txmanager.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("schedule_line").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: Delete - build delete query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == pqForeignKeyViolation {
			return ErrHasDependents
		}
		return fmt.Errorf("%w: Delete - execute delete: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Delete - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrLineNotFound
	}

	return nil
}

// rowScanner общий интерфейс для *sql.Row и *sql.Rows
type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanLine(row rowScanner) (*domain.ScheduleLine, error) {
	var (
		line                 domain.ScheduleLine
		createdAt, updatedAt sql.NullTime
	)

	err := row.Scan(
		&line.ID,
		&line.Date,
		&line.SpecializationID,
		&line.DoctorID,
		&line.Room,
		&line.WindowStart,
		&line.WindowEnd,
		&line.BudgetCount,
		&line.CommerceCount,
		&line.SlotsGenerated,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	line.CreatedAt = createdAt.Time
	line.UpdatedAt = updatedAt.Time

	return &line, nil
}
