// Copyright © 2025 Steve Taranto staranto@gmail.com
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/apex/log"
	"gopkg.in/yaml.v3"
)

// FileName is the config file looked for in the standard locations.
const FileName = "curl2py.yaml"

type Type struct {
	Source    string
	Namespace string
	Data      map[string]interface{}
}

var Config Type

// Load reads the config file into Config. CURL2PY_CFG, when set, must name a
// file; otherwise the standard locations are searched.
func Load() (Type, error) {
	path, err := getConfigPath()
	if err != nil {
		return Type{}, err
	}

	bytes, err := os.ReadFile(path)
	if err != nil {
		return Type{}, err
	}

	var data map[string]interface{}
	if err := yaml.Unmarshal(bytes, &data); err != nil {
		return Type{}, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}

	Config = Type{
		Source:    path,
		Namespace: Config.Namespace,
		Data:      data,
	}

	return Config, nil
}

// get traverses the map using a dotted key path. A namespaced key wins over
// the bare one.
func (cfg *Type) get(kspec string) (any, error) {
	candidateKeys := []string{kspec}
	if cfg.Namespace != "" {
		candidateKeys = []string{cfg.Namespace + "." + kspec, kspec}
	}

	for _, key := range candidateKeys {
		var current interface{} = cfg.Data

		success := true
		for _, part := range strings.Split(key, ".") {
			m, ok := current.(map[string]interface{})
			if !ok {
				success = false
				break
			}
			current, ok = m[part]
			if !ok {
				success = false
				break
			}
		}

		if success {
			return current, nil
		}
	}

	return nil, fmt.Errorf("no valid path found among: %v", candidateKeys)
}

// loaded returns Config, reading the file on first use.
func loaded() *Type {
	if len(Config.Data) == 0 {
		_, _ = Load()
	}
	return &Config
}

func GetString(key string, defaultValue ...string) (string, error) {
	return loaded().GetString(key, defaultValue...)
}

func GetInt(key string, defaultValue ...int) (int, error) {
	return loaded().GetInt(key, defaultValue...)
}

func GetDuration(key string, defaultValue ...time.Duration) (time.Duration, error) {
	return loaded().GetDuration(key, defaultValue...)
}

func GetStringMap(key string) (map[string]string, error) {
	return loaded().GetStringMap(key)
}

func (cfg *Type) GetString(key string, defaultValue ...string) (string, error) {
	val, err := cfg.get(key)
	if err != nil {
		if len(defaultValue) == 1 {
			return defaultValue[0], nil
		}
		return "", err
	}

	s, ok := val.(string)
	if !ok {
		return "", errors.New("value is not a string")
	}

	return s, nil
}

func (cfg *Type) GetInt(key string, defaultValue ...int) (int, error) {
	val, err := cfg.get(key)
	if err != nil {
		if len(defaultValue) == 1 {
			return defaultValue[0], nil
		}
		return 0, err
	}

	// YAML numbers may be unmarshaled as int/float64 depending on content.
	switch v := val.(type) {
	case int:
		return v, nil
	case int64:
		return int(v), nil
	case float64:
		return int(v), nil
	default:
		return 0, errors.New("value is not an int")
	}
}

// GetDuration reads a duration string such as "90m" or "24h". A bare number
// is taken as seconds.
func (cfg *Type) GetDuration(key string, defaultValue ...time.Duration) (time.Duration, error) {
	val, err := cfg.get(key)
	if err != nil {
		if len(defaultValue) == 1 {
			return defaultValue[0], nil
		}
		return 0, err
	}

	switch v := val.(type) {
	case string:
		d, err := time.ParseDuration(v)
		if err != nil {
			return 0, fmt.Errorf("value is not a duration: %w", err)
		}
		return d, nil
	case int:
		return time.Duration(v) * time.Second, nil
	case float64:
		return time.Duration(v * float64(time.Second)), nil
	default:
		return 0, errors.New("value is not a duration")
	}
}

// GetStringMap returns a flat mapping with every value rendered as a
// string. Nested maps and lists are rejected.
func (cfg *Type) GetStringMap(key string) (map[string]string, error) {
	val, err := cfg.get(key)
	if err != nil {
		return nil, err
	}

	m, ok := val.(map[string]interface{})
	if !ok {
		return nil, errors.New("value is not a map")
	}

	result := make(map[string]string, len(m))
	for k, v := range m {
		switch v := v.(type) {
		case map[string]interface{}, []interface{}:
			return nil, fmt.Errorf("value of %s.%s is not a scalar", key, k)
		case string:
			result[k] = v
		case bool:
			// Python literals, since these end up as keyword arguments.
			if v {
				result[k] = "True"
			} else {
				result[k] = "False"
			}
		case nil:
			result[k] = "None"
		default:
			result[k] = fmt.Sprint(v)
		}
	}

	return result, nil
}

func getConfigPath() (string, error) {
	if path, ok := os.LookupEnv("CURL2PY_CFG"); ok && path != "" {
		fileInfo, err := os.Stat(path)
		if err != nil {
			return "", fmt.Errorf("config file not found: %s", path)
		}
		if fileInfo.IsDir() {
			return "", fmt.Errorf("CURL2PY_CFG points to a directory: %s", path)
		}
		return path, nil
	}

	var candidates []string = []string{
		os.Getenv("XDG_CONFIG_HOME"),
		os.Getenv("APPDATA"),
		os.Getenv("HOME"),
	}

	for _, c := range candidates {
		if c == "" {
			continue
		}
		file := filepath.Join(c, FileName)
		if fileInfo, err := os.Stat(file); err == nil {
			if !fileInfo.IsDir() {
				log.Debugf("using config file: %s", file)
				return file, nil
			}
		}
	}
	return "", fmt.Errorf("no config file found in standard locations")
}
