package util

import (
	"database/sql"
)

func QueryReturnList(db *sql.DB, sqlText string) (rows [][]string, err error) {
	//执行sql，返回二维数组
	var cur *sql.Rows
	cur, err = db.Query(sqlText)
	if err != nil {
		return
	}
	defer cur.Close()

	cols, err := cur.Columns()
	if err != nil {
		return
	}

	values := make([]*sql.RawBytes, len(cols))
	valuesP := make([]interface{}, len(cols))
	for i := range values {
		valuesP[i] = &values[i]
	}

	for cur.Next() {
		err = cur.Scan(valuesP...)
		if err != nil {
			return
		}
		row := make([]string, len(cols)) //不能在循环外层定义，否则是浅拷贝
		for i, v := range values {
			if v == nil {
				row[i] = "NULL"
			} else {
				row[i] = string(*v)
			}
		}

		rows = append(rows, row)
	}
	err = cur.Err()
	return
}

func QueryReturnRows(db *sql.DB, sqlText string) (cols []string, rows [][]any, err error) {
	//执行sql，返回列名和逐行数据，NULL保留为nil，用于原样回灌目标库
	cur, err := db.Query(sqlText)
	if err != nil {
		return
	}
	defer cur.Close()

	cols, err = cur.Columns()
	if err != nil {
		return
	}

	values := make([]*sql.RawBytes, len(cols))
	valuesP := make([]interface{}, len(cols))
	for i := range values {
		valuesP[i] = &values[i]
	}

	for cur.Next() {
		err = cur.Scan(valuesP...)
		if err != nil {
			return
		}

		row := make([]any, len(cols))
		for i, v := range values {
			if v == nil || *v == nil {
				row[i] = nil
			} else {
				row[i] = string(*v)
			}
		}

		rows = append(rows, row)
	}
	err = cur.Err()
	return
}

func QueryReturnCount(db *sql.DB, sqlText string) (n int, err error) {
	//执行count类sql，返回单个整数
	err = db.QueryRow(sqlText).Scan(&n)
	return
}
