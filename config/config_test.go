package config

import (
	"testing"
	"time"
)

func validConfig() *Config {
	return &Config{
		Server:   ServerConfig{Port: 3001, BaseURL: "http://localhost:3001", CheckinURL: "http://localhost:3001/"},
		Upstream: UpstreamConfig{BaseURL: "http://localhost:3000", Timeout: 15 * time.Second},
		Session:  SessionConfig{Secret: "0123456789abcdef", Name: "attendance_session"},
	}
}

func TestConfig_Validate(t *testing.T) {
	if err := validConfig().Validate(); err != nil {
		t.Errorf("合法配置不应报错: %v", err)
	}

	tests := []struct {
		name   string
		mutate func(c *Config)
	}{
		{"会话密钥为空", func(c *Config) { c.Session.Secret = "" }},
		{"会话密钥过短", func(c *Config) { c.Session.Secret = "short" }},
		{"端口越界", func(c *Config) { c.Server.Port = 70000 }},
		{"远端地址为空", func(c *Config) { c.Upstream.BaseURL = "" }},
		{"远端超时非正", func(c *Config) { c.Upstream.Timeout = 0 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(cfg)
			if err := cfg.Validate(); err == nil {
				t.Error("非法配置应校验失败")
			}
		})
	}
}

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("ATTEND_SESSION_SECRET", "0123456789abcdef")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("仅凭默认值与环境变量应可加载: %v", err)
	}
	if cfg.Server.Port != 3001 {
		t.Errorf("默认端口错误: %d", cfg.Server.Port)
	}
	if cfg.Upstream.Timeout != 15*time.Second {
		t.Errorf("默认远端超时错误: %v", cfg.Upstream.Timeout)
	}
	if cfg.Session.Name != "attendance_session" {
		t.Errorf("默认会话名错误: %q", cfg.Session.Name)
	}
}
