package dbmetrics

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/onmarkov/polyclinic/pkg/metrics"
)

// defaultStatsInterval период опроса статистики connection pool
const defaultStatsInterval = 10 * time.Second

// DB обертка над *sql.DB, снимающая метрики по каждому запросу.
// Удовлетворяет интерфейсу DBExecutor репозиториев, поэтому подставляется
// вместо голого *sql.DB без изменения их кода.
type DB struct {
	db *sql.DB
	m  *metrics.Metrics
}

// Wrap оборачивает db и запускает фоновый сбор статистики connection pool
// с заданным периодом. Сбор останавливается закрытием stop.
func Wrap(db *sql.DB, m *metrics.Metrics, statsInterval time.Duration, stop <-chan struct{}) *DB {
	wrapped := &DB{db: db, m: m}
	go wrapped.collectPoolStats(statsInterval, stop)
	return wrapped
}

// WrapWithDefault оборачивает db с периодом сбора статистики по умолчанию
func WrapWithDefault(db *sql.DB, m *metrics.Metrics, stop <-chan struct{}) *DB {
	return Wrap(db, m, defaultStatsInterval, stop)
}

// ExecContext выполняет запрос без результата, фиксируя метрики
func (d *DB) ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error) {
	start := time.Now()
	result, err := d.db.ExecContext(ctx, query, args...)
	d.m.ObserveDBQuery(operation(query), time.Since(start), err)
	return result, err
}

// QueryContext выполняет запрос с результатом, фиксируя метрики
func (d *DB) QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error) {
	start := time.Now()
	rows, err := d.db.QueryContext(ctx, query, args...)
	d.m.ObserveDBQuery(operation(query), time.Since(start), err)
	return rows, err
}

// QueryRowContext выполняет запрос одной строки, фиксируя метрики.
// Ошибка здесь откладывается до Scan, поэтому статус всегда ok.
func (d *DB) QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row {
	start := time.Now()
	row := d.db.QueryRowContext(ctx, query, args...)
	d.m.ObserveDBQuery(operation(query), time.Since(start), nil)
	return row
}

// BeginTx открывает транзакцию на нижележащем *sql.DB
func (d *DB) BeginTx(ctx context.Context, opts *sql.TxOptions) (*sql.Tx, error) {
	return d.db.BeginTx(ctx, opts)
}

// ObserveTransaction фиксирует завершенную транзакцию.
// Вызывается transaction manager'ом, которому передана эта обертка.
func (d *DB) ObserveTransaction(duration time.Duration, err error) {
	d.m.ObserveDBTransaction(duration, err)
}

func (d *DB) collectPoolStats(interval time.Duration, stop <-chan struct{}) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			d.m.SetDBPoolStats(d.db.Stats())
		}
	}
}

// operation классифицирует запрос по первому ключевому слову
// для метки operation с ограниченной кардинальностью
func operation(query string) string {
	fields := strings.Fields(query)
	if len(fields) == 0 {
		return "other"
	}
	switch strings.ToLower(fields[0]) {
	case "select", "insert", "update", "delete":
		return strings.ToLower(fields[0])
	default:
		return "other"
	}
}
