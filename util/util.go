package util

import (
	"time"

	"github.com/gookit/slog"
)

// 同步时间戳统一使用该格式写入，UTC
const TimeLayout = "2006-01-02 15:04:05"

func InSlice[T comparable](target T, list []T) bool {
	for i := range list {
		if target == list[i] {
			return true
		}
	}
	return false
}

func EncloseStr(s string, mark string) string {
	return mark + s + mark
}

func EncloseStringArray(strlist []string, mark string) []string {
	//使用符号包围字符串
	var quetaList = make([]string, len(strlist))
	for i, v := range strlist {
		quetaList[i] = mark + v + mark
	}
	return quetaList
}

func TimeCost() func(str string) {
	//计算耗时
	bts := time.Now()
	return func(str string) {
		second := int(time.Since(bts).Seconds())
		slog.Infof("%s，耗时%ds", str, second)
	}
}
