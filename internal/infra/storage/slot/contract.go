package slot

import "github.com/onmarkov/polyclinic/pkg/txmanager"

// DBExecutor интерфейс для работы с БД, поддерживает *sql.DB и *sql.Tx
type DBExecutor = txmanager.DBExecutor
