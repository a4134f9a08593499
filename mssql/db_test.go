package mssql

import (
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"syncData/model"
	"syncData/util"
)

func newMockDatabase(t *testing.T) (*Database, sqlmock.Sqlmock, sqlmock.Sqlmock) {
	t.Helper()
	srcPool, srcMock, err := sqlmock.New()
	require.NoError(t, err)
	tgtPool, tgtMock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() {
		srcPool.Close()
		tgtPool.Close()
	})

	db := &Database{
		SourceDbConn: &util.MssqlDb{Database: "primary_db", ConnPool: srcPool},
		TargetDbConn: &util.MssqlDb{Database: "secondary_db", ConnPool: tgtPool},
	}
	return db, srcMock, tgtMock
}

func TestGetSourceColumns(t *testing.T) {
	db, srcMock, _ := newMockDatabase(t)
	srcMock.ExpectQuery(regexp.QuoteMeta(
		"SELECT COLUMN_NAME, DATA_TYPE, IS_NULLABLE, ORDINAL_POSITION"+
			" FROM INFORMATION_SCHEMA.COLUMNS WHERE TABLE_NAME='users' ORDER BY ORDINAL_POSITION")).
		WillReturnRows(
			sqlmock.NewRows([]string{"COLUMN_NAME", "DATA_TYPE", "IS_NULLABLE", "ORDINAL_POSITION"}).
				AddRow("id", "int", "NO", "1").
				AddRow("name", "nvarchar", "YES", "2"))

	cols, err := db.GetSourceColumns("users")
	require.NoError(t, err)
	assert.Equal(t, []model.Column{
		{Name: "id", Type: "int", Nullable: false, Position: 1},
		{Name: "name", Type: "nvarchar", Nullable: true, Position: 2},
	}, cols)
	assert.NoError(t, srcMock.ExpectationsWereMet())
}

func TestCreateTargetTable(t *testing.T) {
	db, _, tgtMock := newMockDatabase(t)
	tgtMock.ExpectExec(regexp.QuoteMeta(
		"IF OBJECT_ID('users', 'U') IS NULL CREATE TABLE [users] ([id] int NOT NULL, [name] nvarchar)")).
		WillReturnResult(sqlmock.NewResult(0, 0))

	cols := []model.Column{
		{Name: "id", Type: "int", Nullable: false, Position: 1},
		{Name: "name", Type: "nvarchar", Nullable: true, Position: 2},
	}
	require.NoError(t, db.CreateTargetTable("users", cols))
	assert.NoError(t, tgtMock.ExpectationsWereMet())
}

func TestUpsertTrackingInsert(t *testing.T) {
	db, _, tgtMock := newMockDatabase(t)
	ts, _ := time.Parse(util.TimeLayout, "2025-07-02 08:30:00")

	tgtMock.ExpectBegin()
	tgtMock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) FROM [sync_tracking] WHERE [table_name]=@p1")).
		WithArgs("users").
		WillReturnRows(sqlmock.NewRows([]string{""}).AddRow(0))
	tgtMock.ExpectExec(regexp.QuoteMeta("INSERT INTO [sync_tracking] ([table_name], [last_synced_at]) VALUES (@p1,@p2)")).
		WithArgs("users", "2025-07-02 08:30:00").
		WillReturnResult(sqlmock.NewResult(1, 1))
	tgtMock.ExpectCommit()

	tx, err := db.BeginTargetTx()
	require.NoError(t, err)
	require.NoError(t, db.UpsertTracking(tx, "users", ts))
	require.NoError(t, tx.Commit())
	assert.NoError(t, tgtMock.ExpectationsWereMet())
}

func TestBuildSQL(t *testing.T) {
	db := &Database{}
	assert.Equal(t, "DELETE FROM [users]", db.DeleteSQL("users"))
	assert.Equal(t, "INSERT INTO [users] ([id],[name]) VALUES (@p1,@p2)",
		db.InsertSQL("users", []string{"id", "name"}))
}
