package config

import (
	"fmt"
	"strings"
)

func (c *Config) normalize() error {
	if err := c.normalizePaths(); err != nil {
		return err
	}
	if err := c.normalizeUpdate(); err != nil {
		return err
	}
	if err := c.normalizeCorpus(); err != nil {
		return err
	}
	if err := c.normalizeCharset(); err != nil {
		return err
	}
	c.normalizeLogging()
	return nil
}

func (c *Config) normalizePaths() error {
	var err error
	if strings.TrimSpace(c.Paths.WorkDir) == "" {
		c.Paths.WorkDir = defaultWorkDir
	}
	if c.Paths.WorkDir, err = expandPath(c.Paths.WorkDir); err != nil {
		return fmt.Errorf("paths.work_dir: %w", err)
	}
	if strings.TrimSpace(c.Paths.LogDir) == "" {
		c.Paths.LogDir = defaultLogDir
	}
	if c.Paths.LogDir, err = expandPath(c.Paths.LogDir); err != nil {
		return fmt.Errorf("paths.log_dir: %w", err)
	}
	return nil
}

func (c *Config) normalizeUpdate() error {
	var err error
	c.Update.Binary = strings.TrimSpace(c.Update.Binary)
	if c.Update.Binary == "" {
		c.Update.Binary = defaultUpdateBinary
	}
	c.Update.ProjectDir = strings.TrimSpace(c.Update.ProjectDir)
	if c.Update.ProjectDir != "" {
		if c.Update.ProjectDir, err = expandPath(c.Update.ProjectDir); err != nil {
			return fmt.Errorf("update.project_dir: %w", err)
		}
	}
	if c.Update.TimeoutSeconds <= 0 {
		c.Update.TimeoutSeconds = defaultUpdateTimeout
	}
	return nil
}

func (c *Config) normalizeCorpus() error {
	var err error
	if strings.TrimSpace(c.Corpus.DatabasePath) == "" {
		c.Corpus.DatabasePath = defaultCorpusPath
	}
	if c.Corpus.DatabasePath, err = expandPath(c.Corpus.DatabasePath); err != nil {
		return fmt.Errorf("corpus.database_path: %w", err)
	}
	return nil
}

func (c *Config) normalizeCharset() error {
	var err error
	c.Charset.SymbolsFile = strings.TrimSpace(c.Charset.SymbolsFile)
	if c.Charset.SymbolsFile != "" {
		if c.Charset.SymbolsFile, err = expandPath(c.Charset.SymbolsFile); err != nil {
			return fmt.Errorf("charset.symbols_file: %w", err)
		}
	}
	return nil
}

func (c *Config) normalizeLogging() {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	switch c.Logging.Format {
	case "", "console":
		c.Logging.Format = "console"
	case "json":
	default:
		c.Logging.Format = "console"
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
}
