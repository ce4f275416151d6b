// Package store defines interfaces for interview and answer persistence.
// These interfaces keep services independent of the database behind them;
// the PostgreSQL implementations live in internal/platform/postgres.
package store
