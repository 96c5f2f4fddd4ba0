package main

import (
	"os"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Host            string            `yaml:"host"`
	Port            int               `yaml:"port"`
	Root            string            `yaml:"root"`
	DefaultDocument string            `yaml:"defaultDocument"`
	ServerID        string            `yaml:"serverId"`
	LogFile         string            `yaml:"logFile"`
	DBFile          string            `yaml:"dbFile"`
	Provider        string            `yaml:"provider"`
	MediaTypes      map[string]string `yaml:"mediaTypes"`
}

func getConfig(filename string) (Config, error) {
	var config Config
	configBytes, err := os.ReadFile(filename)
	if err != nil {
		return config, err
	}
	err = yaml.Unmarshal(configBytes, &config)
	return config, err
}

// mergeConfig resolves the effective config: a set flag wins over the
// config file, which wins over the built-in default. Fields without a
// default here fall back to the library defaults.
func mergeConfig(flags, file Config) Config {
	config := file
	if flags.Host != "" {
		config.Host = flags.Host
	}
	if flags.Port != 0 {
		config.Port = flags.Port
	}
	if flags.Root != "" {
		config.Root = flags.Root
	}
	if flags.DefaultDocument != "" {
		config.DefaultDocument = flags.DefaultDocument
	}
	if flags.LogFile != "" {
		config.LogFile = flags.LogFile
	}
	if flags.DBFile != "" {
		config.DBFile = flags.DBFile
	}
	if flags.Provider != "" {
		config.Provider = flags.Provider
	}

	if config.Host == "" {
		config.Host = "127.0.0.1"
	}
	if config.Port == 0 {
		config.Port = 8080
	}
	if config.LogFile == "" {
		config.LogFile = "log.txt"
	}
	if config.DBFile == "" {
		config.DBFile = "./audit.db"
	}
	if config.Provider == "" {
		config.Provider = "file"
	}
	return config
}
