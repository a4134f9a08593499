package model

import (
	"database/sql"
	"time"
)

// Column 源表结构描述，从源库introspect得到
type Column struct {
	Name     string
	Type     string
	Nullable bool
	Position int
}

// Database 同步引擎接口，由mysql/pgsql/mssql/sqlite实现
type Database interface {
	SourceName() string
	TargetName() string
	GetSourceTables() ([]string, error)
	GetTargetTables() ([]string, error)
	GetSourceColumns(tb string) ([]Column, error)
	CreateTargetTable(tb string, cols []Column) error
	FetchSourceRows(tb string) ([]string, [][]any, error)
	BeginTargetTx() (*sql.Tx, error)
	DeleteSQL(tb string) string
	InsertSQL(tb string, cols []string) string
	EnsureTrackingTable() error
	CountTracking() (int, error)
	UpsertTracking(tx *sql.Tx, tb string, ts time.Time) error
	Close()
}
