package sqlite

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/gookit/slog"

	"syncData/model"
	"syncData/util"
)

type Database struct {
	SourceDbConn *util.SqliteDb
	TargetDbConn *util.SqliteDb
}

func NewDatabase(opt *model.Options) (*Database, error) {

	db := Database{
		SourceDbConn: &util.SqliteDb{Dsn: opt.Primary},
		TargetDbConn: &util.SqliteDb{Dsn: opt.Secondary},
	}

	err := db.SourceDbConn.Init()
	if err != nil {
		return nil, fmt.Errorf("NewDatabase -> %w", err)
	}
	err = db.TargetDbConn.Init()
	if err != nil {
		return nil, fmt.Errorf("NewDatabase -> %w", err)
	}
	slog.Infof("[%s:%s] 开启数据库连接池", db.SourceName(), db.TargetName())

	return &db, nil
}

func (self *Database) SourceName() string {
	return self.SourceDbConn.Database
}

func (self *Database) TargetName() string {
	return self.TargetDbConn.Database
}

func (self *Database) GetSourceTables() ([]string, error) {
	return self.getTables(self.SourceDbConn.ConnPool)
}

func (self *Database) GetTargetTables() ([]string, error) {
	return self.getTables(self.TargetDbConn.ConnPool)
}

func (self *Database) getTables(pool *sql.DB) ([]string, error) {
	data, err := util.QueryReturnList(pool,
		"SELECT name FROM sqlite_master WHERE type='table' AND name NOT LIKE 'sqlite_%'")
	if err != nil {
		return nil, fmt.Errorf("getTables -> %w", err)
	}
	var tbs []string
	for _, v := range data {
		tbs = append(tbs, v[0])
	}
	return tbs, nil
}

func (self *Database) GetSourceColumns(tb string) ([]model.Column, error) {
	//PRAGMA table_info返回: cid,name,type,notnull,dflt_value,pk，notnull=0表示可空
	data, err := util.QueryReturnList(self.SourceDbConn.ConnPool,
		fmt.Sprintf("PRAGMA table_info('%s')", tb))
	if err != nil {
		return nil, fmt.Errorf("GetSourceColumns -> %w", err)
	}

	var cols []model.Column
	for i, v := range data {
		cols = append(cols, model.Column{
			Name:     v[1],
			Type:     v[2],
			Nullable: v[3] == "0",
			Position: i + 1,
		})
	}
	return cols, nil
}

func (self *Database) CreateTargetTable(tb string, cols []model.Column) error {
	var defs []string
	for _, c := range cols {
		d := fmt.Sprintf(`"%s" %s`, c.Name, c.Type)
		if !c.Nullable {
			d += " NOT NULL"
		}
		defs = append(defs, d)
	}
	sqlText := fmt.Sprintf(`CREATE TABLE IF NOT EXISTS "%s" (%s)`, tb, strings.Join(defs, ", "))
	_, err := self.TargetDbConn.ConnPool.Exec(sqlText)
	if err != nil {
		return fmt.Errorf("CreateTargetTable -> %w", err)
	}
	return nil
}

func (self *Database) FetchSourceRows(tb string) ([]string, [][]any, error) {
	return util.QueryReturnRows(self.SourceDbConn.ConnPool, fmt.Sprintf(`SELECT * FROM "%s"`, tb))
}

func (self *Database) BeginTargetTx() (*sql.Tx, error) {
	return self.TargetDbConn.ConnPool.Begin()
}

func (self *Database) DeleteSQL(tb string) string {
	return fmt.Sprintf(`DELETE FROM "%s"`, tb)
}

func (self *Database) InsertSQL(tb string, cols []string) string {
	marks := strings.TrimSuffix(strings.Repeat("?,", len(cols)), ",")
	return fmt.Sprintf(`INSERT INTO "%s" (%s) VALUES (%s)`,
		tb, strings.Join(util.EncloseStringArray(cols, `"`), ","), marks)
}

func (self *Database) EnsureTrackingTable() error {
	//时间戳列用TEXT，声明DATETIME的话驱动读出来是time.Time，写入的文本无法原样读回
	sqlText := `CREATE TABLE IF NOT EXISTS "sync_tracking" (` +
		`"id" INTEGER PRIMARY KEY AUTOINCREMENT, ` +
		`"table_name" TEXT NOT NULL, ` +
		`"last_synced_at" TEXT NOT NULL)`
	_, err := self.TargetDbConn.ConnPool.Exec(sqlText)
	if err != nil {
		return fmt.Errorf("EnsureTrackingTable -> %w", err)
	}
	return nil
}

func (self *Database) CountTracking() (int, error) {
	return util.QueryReturnCount(self.TargetDbConn.ConnPool, `SELECT COUNT(*) FROM "sync_tracking"`)
}

func (self *Database) UpsertTracking(tx *sql.Tx, tb string, ts time.Time) error {
	var n int
	err := tx.QueryRow(`SELECT COUNT(*) FROM "sync_tracking" WHERE "table_name"=?`, tb).Scan(&n)
	if err != nil {
		return fmt.Errorf("UpsertTracking -> %w", err)
	}

	when := ts.UTC().Format(util.TimeLayout)
	if n > 0 {
		_, err = tx.Exec(`UPDATE "sync_tracking" SET "last_synced_at"=? WHERE "table_name"=?`, when, tb)
	} else {
		_, err = tx.Exec(`INSERT INTO "sync_tracking" ("table_name", "last_synced_at") VALUES (?,?)`, tb, when)
	}
	if err != nil {
		return fmt.Errorf("UpsertTracking -> %w", err)
	}
	return nil
}

func (self *Database) Close() {
	//关闭连接池
	self.SourceDbConn.Close()
	self.TargetDbConn.Close()
	slog.Infof("[%s:%s] 关闭数据库连接池", self.SourceName(), self.TargetName())
}
