package sync

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"syncData/model"
)

type brokenTrackingDb struct {
	model.Database
}

func (self *brokenTrackingDb) TargetName() string {
	return "secondary_db"
}

func (self *brokenTrackingDb) CountTracking() (int, error) {
	return 0, fmt.Errorf("sync_tracking不可读")
}

func TestIsFirstRunFailOpen(t *testing.T) {
	//记录表不可读时按首次运行处理
	tracker := NewTracker(&brokenTrackingDb{})
	assert.True(t, tracker.IsFirstRun())
}

func TestIsFirstRun(t *testing.T) {
	db := newSqlitePair(t)
	tracker := NewTracker(db)

	//目标库还没有sync_tracking表，按首次运行处理
	assert.True(t, tracker.IsFirstRun())

	//空表也是首次运行
	require.NoError(t, tracker.EnsureTable())
	assert.True(t, tracker.IsFirstRun())

	//同步过一个表之后不再是首次运行
	mustExec(t, db.SourceDbConn.ConnPool, "CREATE TABLE users (id INTEGER)")
	require.NoError(t, NewBootstrap(db).Run([]string{"users"}))
	assert.False(t, tracker.IsFirstRun())
}

func TestRecordSyncUpsert(t *testing.T) {
	db := newSqlitePair(t)
	tracker := NewTracker(db)
	require.NoError(t, tracker.EnsureTable())

	tx, err := db.BeginTargetTx()
	require.NoError(t, err)
	tracker.RecordSync(tx, "users")
	tracker.RecordSync(tx, "users")
	require.NoError(t, tx.Commit())

	rows := queryList(t, db.TargetDbConn.ConnPool, "SELECT table_name FROM sync_tracking")
	assert.Equal(t, [][]string{{"users"}}, rows)
}
