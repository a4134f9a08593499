package mysql

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
		SourceDbConn: &util.MysqlDb{Database: "primary_db", ConnPool: srcPool},
		TargetDbConn: &util.MysqlDb{Database: "secondary_db", ConnPool: tgtPool},
	}
	return db, srcMock, tgtMock
}

func TestGetSourceTables(t *testing.T) {
	db, srcMock, _ := newMockDatabase(t)
	srcMock.ExpectQuery("show tables").WillReturnRows(
		sqlmock.NewRows([]string{"Tables_in_primary_db"}).AddRow("users").AddRow("orders"))

	tbs, err := db.GetSourceTables()
	require.NoError(t, err)
	assert.Equal(t, []string{"users", "orders"}, tbs)
	assert.NoError(t, srcMock.ExpectationsWereMet())
}

func TestGetSourceColumns(t *testing.T) {
	db, srcMock, _ := newMockDatabase(t)
	srcMock.ExpectQuery(regexp.QuoteMeta(
		"SELECT COLUMN_NAME, COLUMN_TYPE, IS_NULLABLE, ORDINAL_POSITION"+
			" FROM INFORMATION_SCHEMA.COLUMNS WHERE TABLE_SCHEMA=DATABASE() AND TABLE_NAME='users'"+
			" ORDER BY ORDINAL_POSITION")).WillReturnRows(
		sqlmock.NewRows([]string{"COLUMN_NAME", "COLUMN_TYPE", "IS_NULLABLE", "ORDINAL_POSITION"}).
			AddRow("id", "int(11)", "NO", "1").
			AddRow("name", "varchar(64)", "YES", "2"))

	cols, err := db.GetSourceColumns("users")
	require.NoError(t, err)
	assert.Equal(t, []model.Column{
		{Name: "id", Type: "int(11)", Nullable: false, Position: 1},
		{Name: "name", Type: "varchar(64)", Nullable: true, Position: 2},
	}, cols)
	assert.NoError(t, srcMock.ExpectationsWereMet())
}

func TestCreateTargetTable(t *testing.T) {
	db, _, tgtMock := newMockDatabase(t)
	tgtMock.ExpectExec(regexp.QuoteMeta(
		"CREATE TABLE IF NOT EXISTS `users` (`id` int(11) NOT NULL, `name` varchar(64))")).
		WillReturnResult(sqlmock.NewResult(0, 0))

	cols := []model.Column{
		{Name: "id", Type: "int(11)", Nullable: false, Position: 1},
		{Name: "name", Type: "varchar(64)", Nullable: true, Position: 2},
	}
	require.NoError(t, db.CreateTargetTable("users", cols))
	assert.NoError(t, tgtMock.ExpectationsWereMet())
}

func TestUpsertTrackingInsert(t *testing.T) {
	db, _, tgtMock := newMockDatabase(t)
	ts, _ := time.Parse(util.TimeLayout, "2025-07-02 08:30:00")

	tgtMock.ExpectBegin()
	tgtMock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) FROM `sync_tracking` WHERE `table_name`=?")).
		WithArgs("users").
		WillReturnRows(sqlmock.NewRows([]string{"COUNT(*)"}).AddRow(0))
	tgtMock.ExpectExec(regexp.QuoteMeta("INSERT INTO `sync_tracking` (`table_name`, `last_synced_at`) VALUES (?,?)")).
		WithArgs("users", "2025-07-02 08:30:00").
		WillReturnResult(sqlmock.NewResult(1, 1))
	tgtMock.ExpectCommit()

	tx, err := db.BeginTargetTx()
	require.NoError(t, err)
	require.NoError(t, db.UpsertTracking(tx, "users", ts))
	require.NoError(t, tx.Commit())
	assert.NoError(t, tgtMock.ExpectationsWereMet())
}

func TestUpsertTrackingUpdate(t *testing.T) {
	db, _, tgtMock := newMockDatabase(t)
	ts, _ := time.Parse(util.TimeLayout, "2025-07-02 08:30:00")

	tgtMock.ExpectBegin()
	tgtMock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) FROM `sync_tracking` WHERE `table_name`=?")).
		WithArgs("users").
		WillReturnRows(sqlmock.NewRows([]string{"COUNT(*)"}).AddRow(1))
	tgtMock.ExpectExec(regexp.QuoteMeta("UPDATE `sync_tracking` SET `last_synced_at`=? WHERE `table_name`=?")).
		WithArgs("2025-07-02 08:30:00", "users").
		WillReturnResult(sqlmock.NewResult(0, 1))
	tgtMock.ExpectCommit()

	tx, err := db.BeginTargetTx()
	require.NoError(t, err)
	require.NoError(t, db.UpsertTracking(tx, "users", ts))
	require.NoError(t, tx.Commit())
	assert.NoError(t, tgtMock.ExpectationsWereMet())
}

func TestBuildSQL(t *testing.T) {
	db := &Database{}
	assert.Equal(t, "DELETE FROM `users`", db.DeleteSQL("users"))
	assert.Equal(t, "INSERT INTO `users` (`id`,`name`) VALUES (?,?)",
		db.InsertSQL("users", []string{"id", "name"}))
}
