package config

const (
	defaultWorkDir       = "~/.local/share/gloss/work"
	defaultLogDir        = "~/.local/share/gloss/logs"
	defaultCorpusPath    = "~/.local/share/gloss/corpus.db"
	defaultUpdateBinary  = "dotnet"
	defaultUpdateTimeout = 600
	defaultLogFormat     = "console"
	defaultLogLevel      = "info"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			WorkDir: defaultWorkDir,
			LogDir:  defaultLogDir,
		},
		Update: Update{
			Binary:         defaultUpdateBinary,
			TimeoutSeconds: defaultUpdateTimeout,
		},
		Corpus: Corpus{
			DatabasePath: defaultCorpusPath,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
