package util

import (
	"database/sql"
	"fmt"
	"net/url"
	"strings"
	"time"

	_ "github.com/denisenkom/go-mssqldb"
)

type MssqlDb struct {
	Dsn      string
	Database string
	ConnPool *sql.DB
}

func (self *MssqlDb) Init() (err error) {
	self.Database = mssqlDbName(self.Dsn)

	//获取数据库连接
	db, err := sql.Open("sqlserver", self.Dsn)
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

func (self *MssqlDb) Close() {
	self.ConnPool.Close()
}

func mssqlDbName(dsn string) string {
	//支持sqlserver://和分号key=value两种连接串
	if strings.HasPrefix(dsn, "sqlserver://") {
		u, err := url.Parse(dsn)
		if err == nil {
			return u.Query().Get("database")
		}
		return ""
	}
	for _, kv := range strings.Split(dsn, ";") {
		kv = strings.TrimSpace(kv)
		if strings.HasPrefix(kv, "database=") {
			return strings.TrimPrefix(kv, "database=")
		}
	}
	return ""
}
