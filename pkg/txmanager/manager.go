package txmanager

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/lib/pq"

	"github.com/onmarkov/polyclinic/pkg/dbmetrics"
)

// DBExecutor общий интерфейс для *sql.DB, *sql.Tx и обертки dbmetrics.DB
type DBExecutor interface {
	ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row
}

type txKey struct{}

// pqSerializationFailure код serialization_failure PostgreSQL
const pqSerializationFailure = pq.ErrorCode("40001")

// maxSerializableAttempts число попыток сериализуемой транзакции
const maxSerializableAttempts = 3

var (
	// ErrBeginTx возвращается при ошибке открытия транзакции
	ErrBeginTx = errors.New("txmanager: failed to begin transaction")

	// ErrCommitTx возвращается при ошибке фиксации транзакции
	ErrCommitTx = errors.New("txmanager: failed to commit transaction")

	// ErrSerializationFailure конфликт сериализуемых транзакций (код 40001).
	// Репозитории конвертируют код в этот sentinel на своей границе, как
	// и остальные коды pq; use cases пробрасывают его без оборачивания,
	// чтобы DoSerializable мог повторить транзакцию.
	ErrSerializationFailure = errors.New("txmanager: serialization failure, transaction must be retried")
)

// TransactionManager управляет транзакциями, пробрасывая *sql.Tx через контекст.
// Работает поверх обертки dbmetrics и снимает метрики по каждой транзакции;
// при выключенном сборе метрик вместо него используется simpletxmanager.
// Репозитории достают активную транзакцию через GetExecutor.
type TransactionManager struct {
	db *dbmetrics.DB
}

// NewTransactionManager создает новый менеджер транзакций
func NewTransactionManager(db *dbmetrics.DB) *TransactionManager {
	return &TransactionManager{db: db}
}

// Do выполняет fn в транзакции с уровнем изоляции по умолчанию
func (m *TransactionManager) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	return m.run(ctx, &sql.TxOptions{}, fn)
}

// DoSerializable выполняет fn в сериализуемой транзакции.
// Используется для операций, где параллельные запросы не должны видеть
// промежуточное состояние (генерация и удаление талонов).
// Конфликт сериализации (код 40001) перезапускает транзакцию целиком,
// поэтому fn должна быть повторяемой.
func (m *TransactionManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	var err error
	for attempt := 0; attempt < maxSerializableAttempts; attempt++ {
		err = m.run(ctx, &sql.TxOptions{Isolation: sql.LevelSerializable}, fn)
		if !IsSerializationFailure(err) || IsInTransaction(ctx) {
			return err
		}
	}
	return err
}

// DoReadOnly выполняет fn в read-only транзакции
func (m *TransactionManager) DoReadOnly(ctx context.Context, fn func(ctx context.Context) error) error {
	return m.run(ctx, &sql.TxOptions{ReadOnly: true}, fn)
}

func (m *TransactionManager) run(ctx context.Context, opts *sql.TxOptions, fn func(ctx context.Context) error) error {
	// Вложенные вызовы переиспользуют уже открытую транзакцию
	if IsInTransaction(ctx) {
		return fn(ctx)
	}

	start := time.Now()

	tx, err := m.db.BeginTx(ctx, opts)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrBeginTx, err)
	}

	if err := fn(WithTx(ctx, tx)); err != nil {
		_ = tx.Rollback()
		m.db.ObserveTransaction(time.Since(start), err)
		return err
	}

	if err := tx.Commit(); err != nil {
		m.db.ObserveTransaction(time.Since(start), err)
		// Сериализуемые транзакции конфликтуют и на фиксации
		if isSerializationCode(err) {
			return ErrSerializationFailure
		}
		return fmt.Errorf("%w: %v", ErrCommitTx, err)
	}

	m.db.ObserveTransaction(time.Since(start), nil)
	return nil
}

// WithTx кладет транзакцию в контекст. Используется также simpletxmanager,
// чтобы репозитории находили транзакцию через общий GetExecutor.
func WithTx(ctx context.Context, tx *sql.Tx) context.Context {
	return context.WithValue(ctx, txKey{}, tx)
}

// GetExecutor возвращает активную транзакцию из контекста, либо fallback
func GetExecutor(ctx context.Context, fallback DBExecutor) DBExecutor {
	if tx, ok := ctx.Value(txKey{}).(*sql.Tx); ok {
		return tx
	}
	return fallback
}

// IsInTransaction сообщает, открыта ли транзакция в данном контексте
func IsInTransaction(ctx context.Context) bool {
	_, ok := ctx.Value(txKey{}).(*sql.Tx)
	return ok
}

// IsSerializationFailure распознает конфликт сериализуемых транзакций,
// после которого транзакцию следует повторить
func IsSerializationFailure(err error) bool {
	return errors.Is(err, ErrSerializationFailure) || isSerializationCode(err)
}

func isSerializationCode(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == pqSerializationFailure
}
