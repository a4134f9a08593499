package model

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Primary   string   `yaml:"primary"`
	Secondary string   `yaml:"secondary"`
	Tables    []string `yaml:"tables"`
}

func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("LoadConfig -> %w", err)
	}

	cfg := &Config{}
	if err = yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("LoadConfig -> %w", err)
	}
	return cfg, nil
}
