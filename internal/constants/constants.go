package constants

import "time"

const (
	DatabaseTimeout = 5 * time.Second
	RequestTimeout  = 15 * time.Second
)

// SQLite allows a single writer; the pool mostly serves concurrent readers.
const (
	DBMaxOpenConns    = 8
	DBMaxIdleConns    = 4
	DBConnMaxLifetime = 1 * time.Hour
	DBMaxIdleTime     = 10 * time.Minute
)

const (
	ShutdownTimeout = 5 * time.Second
)

const (
	FirstSeasonNumber  = 1
	FirstSessionNumber = 1
	FirstWaitlistSlot  = 1
	FirstWave          = 1
)
