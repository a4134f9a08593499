package sync

import (
	"fmt"

	"github.com/gookit/slog"

	"syncData/model"
	"syncData/util"
)

// 启动流程状态
const (
	StateInit          = "INIT"
	StateSchemaChecked = "SCHEMA_CHECKED"
	StateTrackingReady = "TRACKING_READY"
	StateFirstRun      = "FIRST_RUN"
	StateResync        = "RESYNC"
	StateSynced        = "SYNCED"
	StateFailed        = "FAILED"
)

/*
   Bootstrap 启动控制器
   校验源库表名 -> 确保同步记录表 -> 判断是否首次运行 -> 全量同步
   无论是否首次运行，每次调用都会对指定的表做一次全量重灌
*/
type Bootstrap struct {
	Db      model.Database
	Tracker *Tracker
	Syncer  *Syncer
	State   string
}

func NewBootstrap(db model.Database) *Bootstrap {
	tracker := NewTracker(db)
	return &Bootstrap{
		Db:      db,
		Tracker: tracker,
		Syncer:  NewSyncer(db, tracker),
		State:   StateInit,
	}
}

func (self *Bootstrap) Run(tables []string) error {
	defer util.TimeCost()(fmt.Sprintf("[%s:%s] 同步流程结束", self.Db.SourceName(), self.Db.TargetName()))
	defer self.report()

	//1、校验表在源库是否存在，缺失的逐个报错后剔除，不影响其他表
	valid, err := self.checkSourceTables(tables)
	if err != nil {
		self.State = StateFailed
		return err
	}
	self.State = StateSchemaChecked

	//2、确保同步记录表存在
	err = self.Tracker.EnsureTable()
	if err != nil {
		self.State = StateFailed
		return err
	}
	self.State = StateTrackingReady

	//3、首次运行只影响日志，每次调用都是全量重灌
	if self.Tracker.IsFirstRun() {
		slog.Infof("[%s:%s] 首次运行，执行全量同步", self.Db.SourceName(), self.Db.TargetName())
		self.State = StateFirstRun
	} else {
		slog.Infof("[%s:%s] 非首次运行，仍执行全量重灌", self.Db.SourceName(), self.Db.TargetName())
		self.State = StateResync
	}

	if len(valid) == 0 {
		self.State = StateFailed
		return fmt.Errorf("Run -> 没有可同步的表")
	}

	//4、批次同步
	err = self.Syncer.SyncTables(valid)
	if err != nil {
		self.State = StateFailed
		return err
	}
	self.State = StateSynced
	return nil
}

func (self *Bootstrap) checkSourceTables(tables []string) ([]string, error) {
	src, err := self.Db.GetSourceTables()
	if err != nil {
		return nil, fmt.Errorf("checkSourceTables -> %w", err)
	}

	var valid []string
	for _, tb := range tables {
		if util.InSlice(tb, src) {
			valid = append(valid, tb)
		} else {
			slog.Errorf("[%s] 源库不存在该表，跳过", tb)
		}
	}
	return valid, nil
}

func (self *Bootstrap) report() {
	//打印每个表的同步结果
	for _, res := range self.Syncer.Results {
		slog.Info(res.GetLog())
	}
	slog.Infof("[%s:%s] 最终状态: %s", self.Db.SourceName(), self.Db.TargetName(), self.State)
}
