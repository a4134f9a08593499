package model

import (
	"fmt"
	"strings"
)

type Options struct {
	Primary   string //源库连接串
	Secondary string //目标库连接串
	Tables    string
	Config    string
	TableList []string
}

func (self *Options) Init() error {

	//处理tables参数
	if self.Tables != "" {
		for _, tb := range strings.Split(self.Tables, ",") {
			tb = strings.TrimSpace(tb)
			if tb != "" {
				self.TableList = append(self.TableList, tb)
			}
		}
	}

	//处理config参数，tables参数优先
	if self.Config != "" {
		cfg, err := LoadConfig(self.Config)
		if err != nil {
			return fmt.Errorf("Init -> %w", err)
		}
		if len(self.TableList) == 0 {
			self.TableList = cfg.Tables
		}
		if self.Primary == "" {
			self.Primary = cfg.Primary
		}
		if self.Secondary == "" {
			self.Secondary = cfg.Secondary
		}
	}

	if self.Primary == "" || self.Secondary == "" {
		return fmt.Errorf("primary或secondary连接串不能为空")
	}

	if len(self.TableList) == 0 {
		return fmt.Errorf("没有指定要同步的表，使用--tables或--config指定")
	}

	return nil
}
