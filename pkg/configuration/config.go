// Package configuration loads and serves the interpreter settings
// from an INI-style settings.cfg file.
package configuration

import (
	"bufio"
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"
	"sync"
)

// Config holds the application configuration.
type Config struct {
	settings map[string]map[string]string
	filePath string
	mu       sync.RWMutex
}

var (
	globalConfig *Config
	once         sync.Once
)

// Initialize loads the global configuration. A missing settings file
// is created with defaults; settings.local.cfg, if present, overrides
// individual values.
func Initialize(configPath string) error {
	var err error
	once.Do(func() {
		globalConfig, err = loadConfig(configPath)
		if err != nil {
			return
		}
		localConfigPath := "settings.local.cfg"
		if _, statErr := os.Stat(localConfigPath); statErr == nil {
			// Overrides are best effort; the base config stays valid.
			globalConfig.loadOverrides(localConfigPath)
		}
	})
	return err
}

func loadConfig(filePath string) (*Config, error) {
	config := &Config{
		settings: make(map[string]map[string]string),
		filePath: filePath,
	}
	if _, err := os.Stat(filePath); os.IsNotExist(err) {
		config.createDefaultConfig()
		if err := config.saveToFile(); err != nil {
			return nil, fmt.Errorf("failed to create default config: %v", err)
		}
		return config, nil
	}
	if err := config.parseFile(filePath); err != nil {
		return nil, err
	}
	return config, nil
}

func (c *Config) parseFile(filePath string) error {
	file, err := os.Open(filePath)
	if err != nil {
		return err
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	currentSection := ""

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())

		if line == "" || strings.HasPrefix(line, ";") || strings.HasPrefix(line, "#") {
			continue
		}
		if strings.HasPrefix(line, "[") && strings.HasSuffix(line, "]") {
			currentSection = line[1 : len(line)-1]
			if c.settings[currentSection] == nil {
				c.settings[currentSection] = make(map[string]string)
			}
			continue
		}
		if strings.Contains(line, "=") && currentSection != "" {
			parts := strings.SplitN(line, "=", 2)
			key := strings.TrimSpace(parts[0])
			value := strings.TrimSpace(parts[1])
			c.settings[currentSection][key] = value
		}
	}
	return scanner.Err()
}

// loadOverrides merges a local override file on top of the base config.
func (c *Config) loadOverrides(filePath string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.parseFile(filePath)
}

// createDefaultConfig fills in the default settings.
func (c *Config) createDefaultConfig() {
	c.settings["Console"] = map[string]string{
		"show_banner":     "true",
		"history_enabled": "true",
	}
	c.settings["History"] = map[string]string{
		"db_path": "deadbasic_history.db",
	}
	c.settings["Logging"] = map[string]string{
		"enable_logging":     "true",
		"log_level":          "INFO",
		"log_file":           "deadbasic.log",
		"max_log_size_mb":    "10",
		"log_rotation_count": "3",
		"log_interpreter":    "false",
		"log_tokenizer":      "false",
		"log_blocks":         "false",
		"log_variables":      "false",
		"log_console":        "false",
		"log_history":        "false",
		"log_config":         "false",
		"log_general":        "true",
	}
}

// saveToFile writes the current settings to disk.
func (c *Config) saveToFile() error {
	file, err := os.Create(c.filePath)
	if err != nil {
		return err
	}
	defer file.Close()

	writer := bufio.NewWriter(file)
	defer writer.Flush()

	fmt.Fprintln(writer, "; DeadBasic interpreter settings")
	fmt.Fprintln(writer, "; Values in settings.local.cfg override this file.")

	sections := make([]string, 0, len(c.settings))
	for section := range c.settings {
		sections = append(sections, section)
	}
	sort.Strings(sections)

	for _, section := range sections {
		fmt.Fprintf(writer, "\n[%s]\n", section)
		keys := make([]string, 0, len(c.settings[section]))
		for key := range c.settings[section] {
			keys = append(keys, key)
		}
		sort.Strings(keys)
		for _, key := range keys {
			fmt.Fprintf(writer, "%s = %s\n", key, c.settings[section][key])
		}
	}
	return nil
}

// GetString returns a string value from the configuration.
func GetString(section, key, defaultValue string) string {
	if globalConfig == nil {
		return defaultValue
	}
	globalConfig.mu.RLock()
	defer globalConfig.mu.RUnlock()
	if sectionMap, exists := globalConfig.settings[section]; exists {
		if value, exists := sectionMap[key]; exists {
			return value
		}
	}
	return defaultValue
}

// GetInt returns an integer value from the configuration.
func GetInt(section, key string, defaultValue int) int {
	str := GetString(section, key, "")
	if str == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(str)
	if err != nil {
		return defaultValue
	}
	return value
}

// GetBool returns a boolean value from the configuration.
func GetBool(section, key string, defaultValue bool) bool {
	str := GetString(section, key, "")
	if str == "" {
		return defaultValue
	}
	value, err := strconv.ParseBool(str)
	if err != nil {
		return defaultValue
	}
	return value
}
