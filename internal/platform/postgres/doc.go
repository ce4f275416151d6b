// Package postgres implements the internal/store interfaces on PostgreSQL.
//
// Connections go through database/sql with the pgx stdlib driver. The
// schema is kept in embedded goose migrations applied by Migrate, and
// PostgreSQL error codes are translated to store sentinels by MapError.
package postgres
