package util

import (
	"database/sql"
	"fmt"
	"net/url"
	"strings"
	"time"

	_ "github.com/lib/pq"
)

type PgsqlDb struct {
	Dsn      string
	Database string
	ConnPool *sql.DB
}

func (self *PgsqlDb) Init() (err error) {
	self.Database = pgsqlDbName(self.Dsn)

	//获取数据库连接
	db, err := sql.Open("postgres", self.Dsn)
	if err != nil {
		return fmt.Errorf("Init -> %w", err)
	}
	self.ConnPool = db
	self.ConnPool.SetMaxOpenConns(4)
	self.ConnPool.SetMaxIdleConns(2)
	self.ConnPool.SetConnMaxLifetime(time.Second * 3600)
	self.ConnPool.SetConnMaxIdleTime(time.Second * 3600)
	return nil
}

func (self *PgsqlDb) Close() {
	self.ConnPool.Close()
}

func pgsqlDbName(dsn string) string {
	//支持URL和key=value两种连接串
	if strings.HasPrefix(dsn, "postgres://") || strings.HasPrefix(dsn, "postgresql://") {
		u, err := url.Parse(dsn)
		if err == nil {
			return strings.TrimPrefix(u.Path, "/")
		}
		return ""
	}
	for _, kv := range strings.Fields(dsn) {
		if strings.HasPrefix(kv, "dbname=") {
			return strings.TrimPrefix(kv, "dbname=")
		}
	}
	return ""
}
