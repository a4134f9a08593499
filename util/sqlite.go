package util

import (
	"database/sql"
	"fmt"
	"path/filepath"
	"strings"

	_ "modernc.org/sqlite"
)

type SqliteDb struct {
	Dsn      string
	Database string
	ConnPool *sql.DB
}

func (self *SqliteDb) Init() (err error) {
	name := self.Dsn
	if i := strings.IndexByte(name, '?'); i >= 0 {
		name = name[:i]
	}
	self.Database = strings.TrimSuffix(filepath.Base(name), ".db")

	//获取数据库连接
	db, err := sql.Open("sqlite", self.Dsn)
	if err != nil {
		return fmt.Errorf("Init -> %w", err)
	}
	self.ConnPool = db
	//sqlite同库只允许一个写连接，目标端批次事务期间记录表写入共用该事务
	self.ConnPool.SetMaxOpenConns(2)
	self.ConnPool.SetMaxIdleConns(1)
	return nil
}

func (self *SqliteDb) Close() {
	self.ConnPool.Close()
}
