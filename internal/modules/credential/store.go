// README: Credential stores backed by Redis (API server) and a viper config file (CLI).
package credential

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/redis/go-redis/v9"
	"github.com/spf13/viper"
)

const redisKey = "formulagen:credential:" + KeyName

type RedisStore struct {
	redis *redis.Client
}

func NewRedisStore(redis *redis.Client) *RedisStore {
	return &RedisStore{redis: redis}
}

func (s *RedisStore) Get(ctx context.Context) (string, error) {
	val, err := s.redis.Get(ctx, redisKey).Result()
	if err == redis.Nil {
		return "", ErrNotFound
	}
	if err != nil {
		return "", err
	}
	return val, nil
}

func (s *RedisStore) Set(ctx context.Context, value string) error {
	return s.redis.Set(ctx, redisKey, value, 0).Err()
}

// FileStore keeps the credential in a YAML config file managed by viper.
type FileStore struct {
	v    *viper.Viper
	path string
}

// DefaultConfigDir is ~/.config/formulagen.
func DefaultConfigDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("could not get user home directory: %w", err)
	}
	return filepath.Join(home, ".config", "formulagen"), nil
}

// NewFileStore opens dir/config.yaml. A missing file is created on first Set.
func NewFileStore(dir string) (*FileStore, error) {
	path := filepath.Join(dir, "config.yaml")
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.Is(err, fs.ErrNotExist) && !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}
	return &FileStore{v: v, path: path}, nil
}

func (s *FileStore) Get(_ context.Context) (string, error) {
	if !s.v.IsSet(KeyName) {
		return "", ErrNotFound
	}
	return s.v.GetString(KeyName), nil
}

func (s *FileStore) Set(_ context.Context, value string) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return fmt.Errorf("could not create config directory: %w", err)
	}
	s.v.Set(KeyName, value)
	if err := s.v.WriteConfigAs(s.path); err != nil {
		return fmt.Errorf("could not write config file: %w", err)
	}
	return os.Chmod(s.path, 0o600)
}
