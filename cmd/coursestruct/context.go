package main

import (
	"go.uber.org/zap"
)

// commandContext carries the lazily initialized config and logger shared by
// all subcommands.
type commandContext struct {
	configPath *string
	verbose    *bool

	cfg Config
	log *zap.SugaredLogger
}

func newCommandContext(configPath *string, verbose *bool) *commandContext {
	return &commandContext{configPath: configPath, verbose: verbose}
}

// setup loads the optional config file and builds the logger. Called once
// from the root command's PersistentPreRunE.
func (c *commandContext) setup() error {
	cfg, err := loadConfig(*c.configPath)
	if err != nil {
		return err
	}
	c.cfg = cfg

	log, err := newLogger(*c.verbose || cfg.Verbose)
	if err != nil {
		return err
	}
	c.log = log
	return nil
}

// stringDefault returns flag when set, otherwise the config fallback.
func stringDefault(flag, fallback string) string {
	if flag != "" {
		return flag
	}
	return fallback
}
