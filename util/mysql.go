package util

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/go-sql-driver/mysql"
)

type MysqlDb struct {
	Dsn      string
	Database string
	ConnPool *sql.DB
}

func (self *MysqlDb) Init() (err error) {
	//解析连接串，获取库名用于日志
	cfg, err := mysql.ParseDSN(self.Dsn)
	if err != nil {
		return fmt.Errorf("Init -> %w", err)
	}
	self.Database = cfg.DBName

	//获取数据库连接
	db, err := sql.Open("mysql", self.Dsn)
	if err != nil {
		return fmt.Errorf("Init -> %w", err)
	}
	self.ConnPool = db
	self.ConnPool.SetMaxOpenConns(4)                     //全程单线程，少量连接即可
	self.ConnPool.SetMaxIdleConns(2)                     //连接池里最大空闲连接数
	self.ConnPool.SetConnMaxLifetime(time.Second * 3600) //最大存活保持时间
	self.ConnPool.SetConnMaxIdleTime(time.Second * 3600) //最大空闲保持时间
	return nil
}

func (self *MysqlDb) Close() {
	self.ConnPool.Close()
}
