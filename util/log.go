package util

import (
	"context"
	"log"

	"github.com/jackc/pgx/v4"
)

// DatabaseLogger forwards pgx statement logs to the standard logger.
type DatabaseLogger struct{}

func (d *DatabaseLogger) Log(ctx context.Context, level pgx.LogLevel, msg string, data map[string]interface{}) {
	sql, ok := data["sql"].(string)
	if !ok {
		log.Println("DatabaseLogger:", msg)
		return
	}
	log.Println("DatabaseLogger:", msg, sql, data["args"])
	if data["err"] != nil {
		log.Println("DatabaseLogger:", "Error:", data["err"])
	}
}
