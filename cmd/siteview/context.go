package main

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/spf13/cobra"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"siteview/internal/annotation"
	"siteview/internal/config"
	"siteview/internal/logging"
)

type commandContext struct {
	configFlag      *string
	annotationsFlag *string

	configOnce sync.Once
	config     *config.Config
	configErr  error

	loggerOnce sync.Once
	logger     *slog.Logger
	loggerErr  error
}

func newCommandContext(configFlag, annotationsFlag *string) *commandContext {
	return &commandContext{
		configFlag:      configFlag,
		annotationsFlag: annotationsFlag,
	}
}

func (c *commandContext) ensureConfig() (*config.Config, error) {
	c.configOnce.Do(func() {
		var path string
		if c.configFlag != nil {
			path = strings.TrimSpace(*c.configFlag)
		}
		cfg, _, _, err := config.Load(path)
		if err != nil {
			c.configErr = err
			return
		}
		if err := cfg.EnsureDirectories(); err != nil {
			c.configErr = err
			return
		}
		c.config = cfg
	})
	return c.config, c.configErr
}

func (c *commandContext) configValue() *config.Config {
	cfg, _ := c.ensureConfig()
	return cfg
}

func (c *commandContext) ensureLogger() (*slog.Logger, error) {
	c.loggerOnce.Do(func() {
		cfg, err := c.ensureConfig()
		if err != nil {
			c.loggerErr = err
			return
		}
		logger, err := logging.NewFromConfig(cfg)
		if err != nil {
			c.loggerErr = fmt.Errorf("init logger: %w", err)
			return
		}
		c.logger = logger
	})
	return c.logger, c.loggerErr
}

// annotationSource prefers the --annotations flag over the configured path.
func (c *commandContext) annotationSource() string {
	if c.annotationsFlag != nil {
		if v := strings.TrimSpace(*c.annotationsFlag); v != "" {
			return v
		}
	}
	if cfg := c.configValue(); cfg != nil {
		return cfg.Paths.Annotations
	}
	return ""
}

func (c *commandContext) loadDataset(ctx context.Context) (*annotation.Dataset, error) {
	source := c.annotationSource()
	if source == "" {
		return nil, fmt.Errorf("no annotation source configured; set paths.annotations or pass --annotations")
	}
	ds, err := annotation.Load(ctx, source)
	if err != nil {
		return nil, fmt.Errorf("load annotations: %w", err)
	}
	return ds, nil
}

func shouldSkipConfig(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		if c.Annotations != nil && c.Annotations["skipConfigLoad"] == "true" {
			return true
		}
	}
	return false
}

func titleCase(value string) string {
	return cases.Title(language.Und).String(value)
}

func yesNo(value bool) string {
	if value {
		return "yes"
	}
	return "no"
}
