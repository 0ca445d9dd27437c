package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func envMap(m map[string]string) func(string) (string, bool) {
	return func(key string) (string, bool) {
		v, ok := m[key]
		return v, ok
	}
}

// unsetEnv removes keys for the duration of the test
func unsetEnv(t *testing.T, keys ...string) {
	for _, key := range keys {
		if v, ok := os.LookupEnv(key); ok {
			os.Unsetenv(key)
			t.Cleanup(func() { os.Setenv(key, v) })
		}
	}
}

func TestLoadEnvDefaults(t *testing.T) {
	cfg := Default()
	if err := cfg.loadEnv(envMap(nil)); err != nil {
		t.Fatalf("Failed to load env: %v", err)
	}

	if cfg.Host != "localhost" || cfg.Port != 3306 || cfg.User != "root" || cfg.Password != "" {
		t.Errorf("Defaults are different from expected. Actual: %+v", cfg)
	}
	if cfg.ConnectTimeout != 0 {
		t.Errorf("Connect timeout should be disabled by default. Actual: %v", cfg.ConnectTimeout)
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	cfg := Default()
	err := cfg.loadEnv(envMap(map[string]string{
		EnvHost:           "db.internal",
		EnvPort:           "3307",
		EnvUser:           "app",
		EnvPassword:       "secret",
		EnvConnectTimeout: "5s",
	}))
	if err != nil {
		t.Fatalf("Failed to load env: %v", err)
	}

	want := Config{Host: "db.internal", Port: 3307, User: "app", Password: "secret", ConnectTimeout: 5 * time.Second}
	if cfg != want {
		t.Errorf("Config is different from expected. Expected: %+v, Actual: %+v", want, cfg)
	}
}

func TestLoadEnvInvalid(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{name: "non-numeric port", env: map[string]string{EnvPort: "mysql"}},
		{name: "bad timeout", env: map[string]string{EnvConnectTimeout: "soon"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			if err := cfg.loadEnv(envMap(tt.env)); err == nil {
				t.Errorf("Expected an error, got config %+v", cfg)
			}
		})
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{name: "defaults", mutate: func(*Config) {}, wantErr: false},
		{name: "empty password allowed", mutate: func(c *Config) { c.Password = "" }, wantErr: false},
		{name: "missing host", mutate: func(c *Config) { c.Host = "" }, wantErr: true},
		{name: "empty user allowed", mutate: func(c *Config) { c.User = "" }, wantErr: false},
		{name: "port zero", mutate: func(c *Config) { c.Port = 0 }, wantErr: true},
		{name: "port too large", mutate: func(c *Config) { c.Port = 70000 }, wantErr: true},
		{name: "negative timeout", mutate: func(c *Config) { c.ConnectTimeout = -time.Second }, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestLoadFileThenEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "mysql.yaml")
	content := "host: file-host\nport: 3310\nuser: fileuser\npassword: filepass\nconnect_timeout: 2s\n"
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to create test file: %v", err)
	}

	unsetEnv(t, EnvHost, EnvPort, EnvPassword, EnvConnectTimeout)
	t.Setenv(EnvUser, "envuser")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Failed to load config: %v", err)
	}

	if cfg.Host != "file-host" || cfg.Port != 3310 || cfg.Password != "filepass" {
		t.Errorf("File values were not applied. Actual: %+v", cfg)
	}
	if cfg.User != "envuser" {
		t.Errorf("Environment should override the file. Expected: envuser, Actual: %s", cfg.User)
	}
	if cfg.ConnectTimeout != 2*time.Second {
		t.Errorf("Timeout is different from expected. Expected: 2s, Actual: %v", cfg.ConnectTimeout)
	}
}

func TestForDatabase(t *testing.T) {
	base := Config{Host: "127.0.0.1", Port: 3306, User: "root", Password: "pw"}

	a := base.ForDatabase("alpha")
	b := base.ForDatabase("beta")

	if a == b {
		t.Fatal("ForDatabase should return a fresh value per call")
	}
	if a.DBName != "alpha" || b.DBName != "beta" {
		t.Errorf("Database names are different from expected. Actual: %s, %s", a.DBName, b.DBName)
	}
	if a.Addr != "127.0.0.1:3306" || a.Net != "tcp" || a.User != "root" || a.Passwd != "pw" {
		t.Errorf("Driver config is different from expected. Actual: %+v", a)
	}

	dsn := a.FormatDSN()
	if dsn != "root:pw@tcp(127.0.0.1:3306)/alpha" {
		t.Errorf("DSN is different from expected. Actual: %s", dsn)
	}
}
