package slot

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
	"github.com/onmarkov/polyclinic/pkg/types"
)

const (
	pqUniqueViolation = pq.ErrorCode("23505")

	// Имена constraint'ов из миграций, по ним различаем вид нарушения
	constraintLineClaimant = "uq_slot_line_claimant"
)

// Repository репозиторий талонов (Booking Ledger)
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория талонов
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// BulkCreate вставляет пачку талонов одной строкой INSERT.
// Вызывается генератором талонов внутри транзакции вместе с установкой
// флага slots_generated.
func (r *Repository) BulkCreate(ctx context.Context, slots []*domain.Slot) error {
	if len(slots) == 0 {
		return nil
	}

	executor := txmanager.GetExecutor(ctx, r.db)

	insertBuilder := psqlbuilder.Insert("slot").
		Columns("schedule_line_id", "time_of_day")

	for _, s := range slots {
		insertBuilder = insertBuilder.Values(s.ScheduleLineID, s.TimeOfDay)
	}

	query, args, err := insertBuilder.ToSql()
	if err != nil {
		return fmt.Errorf("%w: BulkCreate - build insert query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		if txmanager.IsSerializationFailure(err) {
			return txmanager.ErrSerializationFailure
		}
		return fmt.Errorf("%w: BulkCreate - execute insert: %v", ErrExecQuery, err)
	}

	return nil
}

// GetByID получает талон по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Slot, error) {
	executor := txmanager.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("id", "schedule_line_id", "time_of_day", "claimant_id").
		From("slot").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	s, err := scanSlot(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrSlotNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan slot: %v", ErrScanRow, err)
	}

	return s, nil
}

// ListFreeTimed получает свободные талоны по времени для строки расписания,
// отсортированные по времени приема
func (r *Repository) ListFreeTimed(ctx context.Context, scheduleLineID int64) ([]*domain.Slot, error) {
	executor := txmanager.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("id", "schedule_line_id", "time_of_day", "claimant_id").
		From("slot").
		Where(squirrel.Eq{"schedule_line_id": scheduleLineID, "claimant_id": nil}).
		Where(squirrel.NotEq{"time_of_day": nil}).
		OrderBy("time_of_day ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListFreeTimed - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListFreeTimed - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanSlots(rows)
}

// CountFree считает свободные талоны строки расписания по видам
// (по времени / без времени) одним запросом
func (r *Repository) CountFree(ctx context.Context, scheduleLineID int64) (domain.FreeSlotCounts, error) {
	executor := txmanager.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"COUNT(*) FILTER (WHERE time_of_day IS NOT NULL) AS budget",
		"COUNT(*) FILTER (WHERE time_of_day IS NULL) AS commerce",
	).
		From("slot").
		Where(squirrel.Eq{"schedule_line_id": scheduleLineID, "claimant_id": nil}).
		ToSql()
	if err != nil {
		return domain.FreeSlotCounts{}, fmt.Errorf("%w: CountFree - build select query: %v", ErrBuildQuery, err)
	}

	var counts domain.FreeSlotCounts
	err = executor.QueryRowContext(ctx, query, args...).Scan(&counts.Budget, &counts.Commerce)
	if err != nil {
		return domain.FreeSlotCounts{}, fmt.Errorf("%w: CountFree - scan counts: %v", ErrScanRow, err)
	}

	return counts, nil
}

// CountClaimed считает занятые талоны строки расписания.
// Используется проверкой перед удалением пачки талонов; вызывать внутри
// той же транзакции, что и удаление.
func (r *Repository) CountClaimed(ctx context.Context, scheduleLineID int64) (int, error) {
	executor := txmanager.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("COUNT(*)").
		From("slot").
		Where(squirrel.Eq{"schedule_line_id": scheduleLineID}).
		Where(squirrel.NotEq{"claimant_id": nil}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("%w: CountClaimed - build select query: %v", ErrBuildQuery, err)
	}

	var count int
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("%w: CountClaimed - scan count: %v", ErrScanRow, err)
	}

	return count, nil
}

// Claim бронирует свободный талон за пациентом.
//
// Единственная точка сериализации всей системы: условный UPDATE выполняется
// атомарно на стороне БД, поэтому из двух конкурентных запросов на один
// талон ровно один получит rows affected = 1. Никаких блокировок на уровне
// приложения не требуется, корректность сохраняется и при нескольких
// процессах сервиса.
func (r *Repository) Claim(ctx context.Context, slotID int64, patientID int64) error {
	executor := txmanager.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("slot").
		Set("claimant_id", patientID).
		Where(squirrel.Eq{"id": slotID, "claimant_id": nil}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: Claim - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		// Частичный уникальный индекс (schedule_line_id, claimant_id):
		// у пациента уже есть талон этой строки расписания
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == pqUniqueViolation && pqErr.Constraint == constraintLineClaimant {
			return ErrDuplicateClaim
		}
		return fmt.Errorf("%w: Claim - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Claim - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		// Либо талона нет, либо его успели занять — различаем перечитыванием
		if _, err := r.GetByID(ctx, slotID); errors.Is(err, ErrSlotNotFound) {
			return ErrSlotNotFound
		}
		return ErrSlotTaken
	}

	return nil
}

// Release снимает бронь с талона (claimant_id = NULL).
// Безусловная и идемпотентная операция: повторный вызов на свободном
// талоне успешен.
func (r *Repository) Release(ctx context.Context, slotID int64) error {
	executor := txmanager.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("slot").
		Set("claimant_id", nil).
		Where(squirrel.Eq{"id": slotID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: Release - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Release - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Release - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrSlotNotFound
	}

	return nil
}

// DeleteByLine удаляет все талоны строки расписания, возвращает число
// удаленных строк. Проверку "нет занятых талонов" выполняет вызывающая
// сторона в той же транзакции.
func (r *Repository) DeleteByLine(ctx context.Context, scheduleLineID int64) (int64, error) {
	executor := txmanager.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("slot").
		Where(squirrel.Eq{"schedule_line_id": scheduleLineID}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("%w: DeleteByLine - build delete query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		if txmanager.IsSerializationFailure(err) {
			return 0, txmanager.ErrSerializationFailure
		}
		return 0, fmt.Errorf("%w: DeleteByLine - execute delete: %v", ErrExecQuery, err)
	}

	deleted, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%w: DeleteByLine - get rows affected: %v", ErrExecQuery, err)
	}

	return deleted, nil
}

// ListByClaimant получает талоны пациента вместе с данными строк расписания
// (для списка "мои бронирования"), отсортированные по дате и времени приема
func (r *Repository) ListByClaimant(ctx context.Context, patientID int64) ([]*domain.PatientBooking, error) {
	executor := txmanager.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"s.id",
		"s.schedule_line_id",
		"s.time_of_day",
		"s.claimant_id",
		"l.id",
		"l.dapp",
		"l.specialization_id",
		"l.doctor_id",
		"l.room",
		"l.window_start",
		"l.window_end",
		"l.budget_count",
		"l.commerce_count",
		"l.slots_generated",
		"sp.specname",
	).
		From("slot s").
		Join("schedule_line l ON l.id = s.schedule_line_id").
		Join("specialization sp ON sp.id = l.specialization_id").
		Where(squirrel.Eq{"s.claimant_id": patientID}).
		OrderBy("l.dapp ASC", "s.time_of_day ASC NULLS LAST").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListByClaimant - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListByClaimant - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	claimed := make([]*domain.PatientBooking, 0)
	for rows.Next() {
		var (
			cs        domain.PatientBooking
			timeOfDay sql.Null[types.TimeString]
			claimant  sql.NullInt64
		)
		err := rows.Scan(
			&cs.Slot.ID,
			&cs.Slot.ScheduleLineID,
			&timeOfDay,
			&claimant,
			&cs.Line.ID,
			&cs.Line.Date,
			&cs.Line.SpecializationID,
			&cs.Line.DoctorID,
			&cs.Line.Room,
			&cs.Line.WindowStart,
			&cs.Line.WindowEnd,
			&cs.Line.BudgetCount,
			&cs.Line.CommerceCount,
			&cs.Line.SlotsGenerated,
			&cs.SpecializationName,
		)
		if err != nil {
			return nil, fmt.Errorf("%w: ListByClaimant - scan row: %v", ErrScanRow, err)
		}

		applyNullable(&cs.Slot, timeOfDay, claimant)
		claimed = append(claimed, &cs)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListByClaimant - rows error: %v", ErrScanRow, err)
	}

	return claimed, nil
}

// rowScanner общий интерфейс для *sql.Row и *sql.Rows
type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanSlot(row rowScanner) (*domain.Slot, error) {
	var (
		s         domain.Slot
		timeOfDay sql.Null[types.TimeString]
		claimant  sql.NullInt64
	)

	if err := row.Scan(&s.ID, &s.ScheduleLineID, &timeOfDay, &claimant); err != nil {
		return nil, err
	}

	applyNullable(&s, timeOfDay, claimant)
	return &s, nil
}

func scanSlots(rows *sql.Rows) ([]*domain.Slot, error) {
	slots := make([]*domain.Slot, 0)

	for rows.Next() {
		s, err := scanSlot(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: scanSlots - scan row: %v", ErrScanRow, err)
		}
		slots = append(slots, s)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanSlots - rows error: %v", ErrScanRow, err)
	}

	return slots, nil
}

func applyNullable(s *domain.Slot, timeOfDay sql.Null[types.TimeString], claimant sql.NullInt64) {
	if timeOfDay.Valid {
		tod := timeOfDay.V
		s.TimeOfDay = &tod
	}
	if claimant.Valid {
		id := claimant.Int64
		s.ClaimantID = &id
	}
}
