package main

import (
	"fmt"
	"strings"
	"sync"

	"github.com/spf13/cobra"

	"shelf/internal/config"
)

type commandContext struct {
	apiFlag    *string
	configFlag *string

	configOnce sync.Once
	config     *config.Config
	configErr  error

	clientOnce sync.Once
	client     *apiClient
	clientErr  error
}

func newCommandContext(apiFlag, configFlag *string) *commandContext {
	return &commandContext{
		apiFlag:    apiFlag,
		configFlag: configFlag,
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
		c.config = cfg
	})
	return c.config, c.configErr
}

func (c *commandContext) apiBaseURL() (string, error) {
	if c.apiFlag != nil {
		if flag := strings.TrimSpace(*c.apiFlag); flag != "" {
			return strings.TrimRight(flag, "/"), nil
		}
	}
	cfg, err := c.ensureConfig()
	if err != nil {
		return "", err
	}
	bind := strings.TrimSpace(cfg.Paths.APIBind)
	if bind == "" {
		return "", fmt.Errorf("no API address configured; set paths.api_bind or pass --api")
	}
	if strings.HasPrefix(bind, ":") {
		bind = "127.0.0.1" + bind
	}
	return "http://" + bind, nil
}

func (c *commandContext) ensureClient() (*apiClient, error) {
	c.clientOnce.Do(func() {
		base, err := c.apiBaseURL()
		if err != nil {
			c.clientErr = err
			return
		}
		var token string
		if cfg, cfgErr := c.ensureConfig(); cfgErr == nil && cfg != nil {
			token = strings.TrimSpace(cfg.Paths.APIToken)
		}
		c.client = newAPIClient(base, token)
	})
	return c.client, c.clientErr
}

func shouldSkipConfig(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		if c.Annotations != nil && c.Annotations["skipConfigLoad"] == "true" {
			return true
		}
	}
	return false
}

func yesNo(value bool) string {
	if value {
		return "yes"
	}
	return "no"
}
