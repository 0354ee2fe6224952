package boot

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Env       string `env:"ENV,default=dev"`
	ViewsDir  string `env:"VIEWS_DIR,default=ui/views"`
	StaticDir string `env:"STATIC_DIR,default=public"`
	UploadDir string `env:"UPLOAD_DIR,default=public/uploads"`
	Server    struct {
		Port        string `env:"PORT,default=3000"`
		MetricsPort string `env:"METRICS_PORT,default=8081"`
		BodyLimit   string `env:"BODY_LIMIT,default=10M"`
	}
	Database struct {
		URL string `env:"DATABASE_URL,default=file:users.db"`
	}
	Session struct {
		Secret string        `env:"SESSION_SECRET,required"`
		TTL    time.Duration `env:"SESSION_TTL,default=24h"`
	}
	BcryptCost int `env:"BCRYPT_COST,default=10"`
}

func Load() (*Config, error) {
	return LoadWith(envconfig.OsLookuper())
}

// LoadWith reads the configuration from an arbitrary lookuper, tests use envconfig.MapLookuper.
func LoadWith(lookuper envconfig.Lookuper) (*Config, error) {
	config := &Config{}
	if err := envconfig.ProcessWith(context.Background(), config, lookuper); err != nil {
		return nil, fmt.Errorf("parsing env vars: %w", err)
	}
	return config, nil
}

func (c *Config) IsProduction() bool {
	return c.Env == "prod"
}

func (c *Config) IsDevelopment() bool {
	return c.Env == "dev"
}

// DatabaseDriver picks the sql driver from the shape of DATABASE_URL.
func (c *Config) DatabaseDriver() string {
	url := strings.ToLower(c.Database.URL)
	if strings.HasPrefix(url, "postgres://") || strings.HasPrefix(url, "postgresql://") {
		return "postgres"
	}
	return "sqlite3"
}

func (c *Config) DatabaseURL() string {
	return c.Database.URL
}

func (c *Config) SessionSecret() []byte {
	return []byte(c.Session.Secret)
}

func (c *Config) PasswordCost() int {
	return c.BcryptCost
}

func (c *Config) UploadDirectory() string {
	return c.UploadDir
}
