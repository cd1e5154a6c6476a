package main

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"sync"

	"github.com/joho/godotenv"

	"sport-reel-generator/config"
)

type commandContext struct {
	envFileFlag *string

	configOnce sync.Once
	config     *config.AppConfig
	configErr  error
}

func newCommandContext(envFileFlag *string) *commandContext {
	return &commandContext{
		envFileFlag: envFileFlag,
	}
}

// ensureConfig loads the env file once and builds the process configuration from the environment.
// The default .env is optional; an explicit --env-file must exist.
func (c *commandContext) ensureConfig() (*config.AppConfig, error) {
	c.configOnce.Do(func() {
		var path string
		if c.envFileFlag != nil {
			path = strings.TrimSpace(*c.envFileFlag)
		}
		if path != "" {
			if err := godotenv.Load(path); err != nil {
				c.configErr = fmt.Errorf("load env file %s: %w", path, err)
				return
			}
		} else if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
			c.configErr = fmt.Errorf("load .env: %w", err)
			return
		}

		cfg, err := config.Load()
		if err != nil {
			c.configErr = err
			return
		}
		c.config = cfg
	})
	return c.config, c.configErr
}
