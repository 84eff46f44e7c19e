package customer

import "github.com/barberbot-br/BookingCore/pkg/dbmetrics"

// Database executor interfaces shared with the dbmetrics wrappers
type DBExecutor = dbmetrics.DBExecutor
type TxExecutor = dbmetrics.TxExecutor
