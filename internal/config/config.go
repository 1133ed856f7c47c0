package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	entity "agrotrade/internal/domain"
)

type Config struct {
	Server  Server     `yaml:"server"`
	JWT     JWT        `yaml:"jwt"`
	Storage Storage    `yaml:"storage"`
	Users   []SeedUser `yaml:"users"`
}

type Server struct {
	Addr string `yaml:"addr"`
}

type JWT struct {
	Secret   string `yaml:"secret"`
	TTLHours int    `yaml:"ttl_hours"`
}

type Storage struct {
	DataDir string `yaml:"data_dir"`
}

// SeedUser is one static user directory entry. Password hashes are bcrypt;
// plaintext never appears in config.
type SeedUser struct {
	Username     string `yaml:"username"`
	PasswordHash string `yaml:"password_hash"`
	Role         string `yaml:"role"`
}

func defaults() Config {
	return Config{
		Server:  Server{Addr: ":8080"},
		JWT:     JWT{TTLHours: 24},
		Storage: Storage{DataDir: "data"},
	}
}

// Load reads the YAML config file. AGROTRADE_JWT_SECRET overrides the file
// so the secret can stay out of version control.
func Load(path string) (Config, error) {
	cfg := defaults()

	raw, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config: %w", err)
	}

	if env := os.Getenv("AGROTRADE_JWT_SECRET"); env != "" {
		cfg.JWT.Secret = env
	}
	if cfg.JWT.Secret == "" {
		return cfg, fmt.Errorf("jwt secret is not set")
	}
	if err := cfg.validateUsers(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func (c Config) validateUsers() error {
	for _, u := range c.Users {
		switch entity.Role(u.Role) {
		case entity.RoleProducer, entity.RoleBuyer:
		default:
			return fmt.Errorf("user %q has unknown role %q", u.Username, u.Role)
		}
		if u.Username == "" || u.PasswordHash == "" {
			return fmt.Errorf("user entry missing username or password_hash")
		}
	}
	return nil
}

// DirectoryUsers converts the seed entries into directory users.
func (c Config) DirectoryUsers() []entity.User {
	out := make([]entity.User, 0, len(c.Users))
	for _, u := range c.Users {
		out = append(out, entity.User{
			Username:     u.Username,
			PasswordHash: u.PasswordHash,
			Role:         entity.Role(u.Role),
		})
	}
	return out
}
