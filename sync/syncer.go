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
   Syncer 全量重灌同步器
   一个批次的所有表共用目标库的一个事务：先清空目标表，再把源表数据逐行原样写入，
   任何一个表失败则整个批次回滚，批次最后一个表写完后统一提交。
   建表DDL不进事务，在批次事务开启前统一执行（sqlite同库写锁在事务期间不允许第二个连接做DDL），
   某个表建表失败只剔除该表，不影响批次里的其他表。
*/
type Syncer struct {
	Db      model.Database
	Tracker *Tracker
	Results []*model.SyncResult
}

func NewSyncer(db model.Database, tracker *Tracker) *Syncer {
	return &Syncer{Db: db, Tracker: tracker}
}

func (self *Syncer) SyncTables(tables []string) error {
	defer util.TimeCost()(fmt.Sprintf("[%s:%s] 批次同步结束", self.Db.SourceName(), self.Db.TargetName()))
	slog.Infof("[%s:%s] 开始批次同步，表数:%d", self.Db.SourceName(), self.Db.TargetName(), len(tables))

	//先保证目标库表结构齐全
	ready := self.mirrorTables(tables)
	if len(ready) == 0 {
		return fmt.Errorf("SyncTables -> 批次里没有可同步的表")
	}

	tx, err := self.Db.BeginTargetTx()
	if err != nil {
		return fmt.Errorf("SyncTables -> %w", err)
	}

	for _, tb := range ready {
		err = self.syncTable(tx, tb)
		if err != nil {
			tx.Rollback()
			slog.Errorf("[%s] 同步失败，批次整体回滚: %s", tb, err)
			return &model.BatchError{Table: tb, Batch: ready, Err: err}
		}
	}

	err = tx.Commit()
	if err != nil {
		return &model.BatchError{Batch: ready, Err: err}
	}
	slog.Infof("[%s:%s] 批次提交完成，表数:%d", self.Db.SourceName(), self.Db.TargetName(), len(ready))
	return nil
}

func (self *Syncer) mirrorTables(tables []string) []string {
	//建表失败的表剔除出批次，其余表正常同步
	var ready []string
	for _, tb := range tables {
		err := self.EnsureMirrored(tb)
		if err != nil {
			slog.Errorf("[%s] 目标表创建失败，剔除出批次: %s", tb, err)
			self.Results = append(self.Results, &model.SyncResult{TbName: tb, Status: -1, Message: err.Error()})
			continue
		}
		ready = append(ready, tb)
	}
	return ready
}

func (self *Syncer) syncTable(tx *sql.Tx, tb string) error {
	t := time.Now()
	res := &model.SyncResult{TbName: tb, Status: -1}
	self.Results = append(self.Results, res)

	slog.Infof("[%s] 开始同步", tb)

	//读取源表全部数据，顺序由源库决定
	cols, rows, err := self.Db.FetchSourceRows(tb)
	if err != nil {
		res.Message = err.Error()
		return fmt.Errorf("syncTable -> %w", err)
	}
	res.SourceRows = len(rows)

	//清空目标表
	_, err = tx.Exec(self.Db.DeleteSQL(tb))
	if err != nil {
		res.Message = err.Error()
		return fmt.Errorf("syncTable -> %w", err)
	}

	//逐行原样写入
	insertSQL := self.Db.InsertSQL(tb, cols)
	for _, row := range rows {
		_, err = tx.Exec(insertSQL, row...)
		if err != nil {
			res.Message = err.Error()
			return fmt.Errorf("syncTable -> %w", err)
		}
	}
	res.SyncedRows = len(rows)

	//更新同步记录，失败不影响批次
	self.Tracker.RecordSync(tx, tb)

	res.Status = 1
	res.ExecuteSeconds = int(time.Since(t).Seconds())
	slog.Infof("[%s] 表同步完成 [SourceRows:%d]", tb, res.SourceRows)
	return nil
}

func (self *Syncer) EnsureMirrored(tb string) error {
	//目标库已有该表则跳过，否则按源表结构创建
	tbs, err := self.Db.GetTargetTables()
	if err != nil {
		return fmt.Errorf("EnsureMirrored -> %w", err)
	}
	if util.InSlice(tb, tbs) {
		return nil
	}

	slog.Infof("[%s] 目标库不存在该表，开始创建", tb)
	cols, err := self.Db.GetSourceColumns(tb)
	if err != nil {
		return &model.SchemaError{Table: tb, Err: err}
	}
	if len(cols) == 0 {
		return &model.SchemaError{Table: tb, Err: fmt.Errorf("源库不存在该表")}
	}

	err = self.Db.CreateTargetTable(tb, cols)
	if err != nil {
		return fmt.Errorf("EnsureMirrored -> %w", err)
	}
	slog.Infof("[%s] 目标表创建完成，列数:%d", tb, len(cols))
	return nil
}
