// Package configstore persists named server config documents as JSON files
// with a read-through cache. Store operations swallow I/O failures and report
// through boolean or absent results; failures are logged, never raised.
package configstore

import (
	"bytes"
	"encoding/json"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/spf13/afero"
	"go.uber.org/zap"

	"github.com/mcpforge/mcpforge/internal/cache"
	"github.com/mcpforge/mcpforge/pkg/types"
)

const (
	configTTL  = time.Hour
	listingTTL = 30 * time.Minute

	listingCacheKey = "all_configs_list"
)

// Store is the file-backed config store.
type Store struct {
	fs     afero.Fs
	cache  *cache.Cache
	logger *zap.Logger
	dir    string
}

// New creates a store rooted at dir.
func New(fs afero.Fs, c *cache.Cache, logger *zap.Logger, dir string) *Store {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Store{fs: fs, cache: c, logger: logger, dir: dir}
}

// Dir returns the storage directory.
func (s *Store) Dir() string { return s.dir }

// ConfigPath returns the file path a server config is stored at.
func (s *Store) ConfigPath(name string) string {
	return filepath.Join(s.dir, name+".json")
}

// SaveConfig serializes a config to canonical pretty-printed JSON and writes
// it as a whole-file overwrite, invalidating the cache entries for this name.
// It returns false on any serialization or I/O failure.
func (s *Store) SaveConfig(name string, cfg *types.ServerConfig) bool {
	content, err := encodeConfig(cfg)
	if err != nil {
		s.logger.Error("failed to encode config to JSON", zap.String("server", name), zap.Error(err))
		return false
	}

	if err := s.fs.MkdirAll(s.dir, 0o755); err != nil {
		s.logger.Error("failed to create storage directory", zap.String("dir", s.dir), zap.Error(err))
		return false
	}

	path := s.ConfigPath(name)
	if err := afero.WriteFile(s.fs, path, content, 0o644); err != nil {
		s.logger.Error("failed to save config file", zap.String("server", name), zap.String("path", path), zap.Error(err))
		return false
	}

	s.cache.Forget("config_" + name)
	s.cache.Forget("file_hash_" + path)

	s.logger.Info("config saved", zap.String("server", name), zap.String("path", path))
	return true
}

// encodeConfig renders the canonical on-disk form: pretty-printed, forward
// slashes unescaped.
func encodeConfig(cfg *types.ServerConfig) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "    ")
	if err := enc.Encode(cfg); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// LoadConfig loads a named config through the cache. A missing file or a
// parse failure yields an absent result; parse failures are logged.
func (s *Store) LoadConfig(name string) (*types.ServerConfig, bool) {
	v, err := s.cache.Remember("config_"+name, configTTL, func() (any, error) {
		return s.readConfig(name), nil
	})
	if err != nil {
		return nil, false
	}
	cfg, ok := v.(*types.ServerConfig)
	if !ok || cfg == nil {
		return nil, false
	}
	return cfg, true
}

func (s *Store) readConfig(name string) *types.ServerConfig {
	path := s.ConfigPath(name)

	content, err := afero.ReadFile(s.fs, path)
	if err != nil {
		s.logger.Debug("config file not found", zap.String("server", name), zap.String("path", path))
		return nil
	}

	var cfg types.ServerConfig
	if err := json.Unmarshal(content, &cfg); err != nil {
		s.logger.Error("invalid JSON in config file", zap.String("server", name), zap.Error(err))
		return nil
	}
	return &cfg
}

// GetAllConfigs lists all JSON/YAML config files in the storage directory,
// cached for the listing TTL. A missing directory yields an empty list.
func (s *Store) GetAllConfigs() []types.ConfigFileInfo {
	v, _ := s.cache.Remember(listingCacheKey, listingTTL, func() (any, error) {
		return s.listConfigs(), nil
	})
	infos, ok := v.([]types.ConfigFileInfo)
	if !ok {
		return []types.ConfigFileInfo{}
	}
	return infos
}

func (s *Store) listConfigs() []types.ConfigFileInfo {
	entries, err := afero.ReadDir(s.fs, s.dir)
	if err != nil {
		return []types.ConfigFileInfo{}
	}

	configs := make([]types.ConfigFileInfo, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		ext := strings.ToLower(filepath.Ext(entry.Name()))
		if ext != ".json" && ext != ".yaml" && ext != ".yml" {
			continue
		}
		configs = append(configs, types.ConfigFileInfo{
			Name:     strings.TrimSuffix(entry.Name(), ext),
			Path:     filepath.Join(s.dir, entry.Name()),
			Modified: entry.ModTime().Unix(),
		})
	}
	sort.Slice(configs, func(i, j int) bool { return configs[i].Name < configs[j].Name })
	return configs
}

// DeleteConfig deletes a named config file. It returns false when the file is
// absent or the delete fails.
func (s *Store) DeleteConfig(name string) bool {
	path := s.ConfigPath(name)

	exists, err := afero.Exists(s.fs, path)
	if err != nil || !exists {
		return false
	}

	if err := s.fs.Remove(path); err != nil {
		s.logger.Error("failed to delete config file", zap.String("server", name), zap.Error(err))
		return false
	}

	s.cache.Forget("config_" + name)
	s.cache.Forget("file_hash_" + path)
	return true
}
