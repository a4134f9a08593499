package model

import (
	"fmt"
	"strings"
)

// SchemaError 源库缺表或获取表结构失败
type SchemaError struct {
	Table string
	Err   error
}

func (self *SchemaError) Error() string {
	return fmt.Sprintf("获取表[%s]结构失败: %v", self.Table, self.Err)
}

func (self *SchemaError) Unwrap() error {
	return self.Err
}

// BatchError 批次同步失败，目标库整个批次已回滚
type BatchError struct {
	Table string
	Batch []string
	Err   error
}

func (self *BatchError) Error() string {
	return fmt.Sprintf("批次[%s]在表[%s]同步失败，已整体回滚: %v", strings.Join(self.Batch, ","), self.Table, self.Err)
}

func (self *BatchError) Unwrap() error {
	return self.Err
}
