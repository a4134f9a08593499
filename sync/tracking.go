package sync

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/gookit/slog"

	"syncData/model"
	"syncData/util"
)

/*
   Tracker 维护目标库的sync_tracking表
   每个已同步的表在sync_tracking中只有一条记录，记录最近一次同步时间(UTC)
*/
type Tracker struct {
	Db model.Database
}

func NewTracker(db model.Database) *Tracker {
	return &Tracker{Db: db}
}

func (self *Tracker) EnsureTable() error {
	//创建同步记录表，可重复执行
	err := self.Db.EnsureTrackingTable()
	if err != nil {
		return fmt.Errorf("EnsureTable -> %w", err)
	}
	slog.Infof("[%s] 同步记录表sync_tracking就绪", self.Db.TargetName())
	return nil
}

func (self *Tracker) IsFirstRun() bool {
	//记录表为空或不可读都按首次运行处理，宁可多做一次全量
	n, err := self.Db.CountTracking()
	if err != nil {
		slog.Errorf("[%s] 读取sync_tracking失败，按首次运行处理: %s", self.Db.TargetName(), err)
		return true
	}
	return n == 0
}

func (self *Tracker) RecordSync(tx *sql.Tx, tb string) {
	//按表名upsert，失败只记日志，不影响其他表的同步
	now := time.Now().UTC()
	err := self.Db.UpsertTracking(tx, tb, now)
	if err != nil {
		slog.Errorf("[%s] 更新同步记录失败: %s", tb, err)
		return
	}
	slog.Infof("[%s] 同步记录已更新 last_synced_at=%s", tb, now.Format(util.TimeLayout))
}
