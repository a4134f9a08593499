package mongo

import (
	"context"
	"fmt"
	"time"

	"github.com/gookit/slog"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"

	"syncData/model"
	"syncData/util"
)

/*
   mongo引擎：逐个集合全量重灌（读取源端全部文档，清空目标集合后回灌）
   文档库没有跨集合事务，单个集合失败不回滚之前已完成的集合，只中断批次
*/
type Database struct {
	SourceDbConn *util.MongoDb
	TargetDbConn *util.MongoDb
}

func NewDatabase(opt *model.Options) (*Database, error) {

	db := Database{
		SourceDbConn: &util.MongoDb{Dsn: opt.Primary},
		TargetDbConn: &util.MongoDb{Dsn: opt.Secondary},
	}

	err := db.SourceDbConn.Init()
	if err != nil {
		return nil, fmt.Errorf("NewDatabase -> %w", err)
	}
	err = db.TargetDbConn.Init()
	if err != nil {
		return nil, fmt.Errorf("NewDatabase -> %w", err)
	}
	slog.Infof("[%s:%s] 开启数据库连接池", db.SourceDbConn.Database, db.TargetDbConn.Database)

	return &db, nil
}

func (self *Database) Run(tables []string) error {
	defer util.TimeCost()(fmt.Sprintf("[%s:%s] 同步流程结束", self.SourceDbConn.Database, self.TargetDbConn.Database))

	//1、校验集合在源库是否存在，缺失的逐个报错后剔除
	src, err := self.SourceDbConn.ListCollectionNames()
	if err != nil {
		return fmt.Errorf("Run -> %w", err)
	}
	var valid []string
	for _, tb := range tables {
		if util.InSlice(tb, src) {
			valid = append(valid, tb)
		} else {
			slog.Errorf("[%s] 源库不存在该集合，跳过", tb)
		}
	}

	//2、首次运行判断，记录集合不可读按首次处理
	if self.isFirstRun() {
		slog.Infof("[%s:%s] 首次运行，执行全量同步", self.SourceDbConn.Database, self.TargetDbConn.Database)
	} else {
		slog.Infof("[%s:%s] 非首次运行，仍执行全量重灌", self.SourceDbConn.Database, self.TargetDbConn.Database)
	}

	if len(valid) == 0 {
		return fmt.Errorf("Run -> 没有可同步的集合")
	}

	//3、逐个集合同步
	for _, tb := range valid {
		err = self.syncCollection(tb)
		if err != nil {
			slog.Errorf("[%s] 同步失败，中断批次: %s", tb, err)
			return &model.BatchError{Table: tb, Batch: valid, Err: err}
		}
	}
	return nil
}

func (self *Database) syncCollection(tb string) error {
	slog.Infof("[%s] 开始同步", tb)

	//读取源端全部文档
	cur, err := self.SourceDbConn.Tb(tb).Find(context.TODO(), bson.M{})
	if err != nil {
		return fmt.Errorf("syncCollection -> %w", err)
	}
	var docs []bson.D
	err = cur.All(context.TODO(), &docs)
	if err != nil {
		return fmt.Errorf("syncCollection -> %w", err)
	}

	//清空目标集合
	_, err = self.TargetDbConn.Tb(tb).DeleteMany(context.TODO(), bson.M{})
	if err != nil {
		return fmt.Errorf("syncCollection -> %w", err)
	}

	//回灌
	if len(docs) > 0 {
		rows := make([]interface{}, len(docs))
		for i := range docs {
			rows[i] = docs[i]
		}
		_, err = self.TargetDbConn.Tb(tb).InsertMany(context.TODO(), rows)
		if err != nil {
			return fmt.Errorf("syncCollection -> %w", err)
		}
	}

	//更新同步记录，失败只记日志
	self.upsertTracking(tb)

	slog.Infof("[%s] 集合同步完成 [SourceRows:%d]", tb, len(docs))
	return nil
}

func (self *Database) isFirstRun() bool {
	n, err := self.TargetDbConn.Tb("sync_tracking").CountDocuments(context.TODO(), bson.M{})
	if err != nil {
		slog.Errorf("[%s] 读取sync_tracking失败，按首次运行处理: %s", self.TargetDbConn.Database, err)
		return true
	}
	return n == 0
}

func (self *Database) upsertTracking(tb string) {
	now := time.Now().UTC()
	_, err := self.TargetDbConn.Tb("sync_tracking").UpdateOne(
		context.TODO(),
		bson.M{"table_name": tb},
		bson.M{"$set": bson.M{"table_name": tb, "last_synced_at": now}},
		options.Update().SetUpsert(true),
	)
	if err != nil {
		slog.Errorf("[%s] 更新同步记录失败: %s", tb, err)
		return
	}
	slog.Infof("[%s] 同步记录已更新 last_synced_at=%s", tb, now.Format(util.TimeLayout))
}
