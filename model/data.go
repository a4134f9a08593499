package model

import "fmt"

type SyncResult struct {
	TbName         string
	Status         int //-1:失败,1:成功
	SourceRows     int
	SyncedRows     int
	ExecuteSeconds int
	Message        string
}

func (self *SyncResult) GetLog() string {
	return fmt.Sprintf("[%s] [Status:%d SourceRows:%d SyncedRows:%d ExecuteSeconds:%d] %s",
		self.TbName, self.Status, self.SourceRows, self.SyncedRows, self.ExecuteSeconds, self.Message)
}
