package config

const (
	defaultDataDir            = "~/.local/share/plexsync"
	defaultMoviesLibrary      = "Movies"
	defaultTVLibrary          = "TV Shows"
	defaultFuzzyThreshold     = 85
	defaultAddedAtWindowHours = 12
	defaultLogLevel           = "info"
	defaultLogFormat          = "console"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Plex: Plex{
			MoviesLibrary: defaultMoviesLibrary,
			TVLibrary:     defaultTVLibrary,
		},
		Matching: Matching{
			FuzzyThreshold: defaultFuzzyThreshold,
		},
		Sync: Sync{
			AddedAtWindowHours: defaultAddedAtWindowHours,
			HistoryEnabled:     true,
		},
		Paths: Paths{
			DataDir: defaultDataDir,
		},
		Logging: Logging{
			Level:  defaultLogLevel,
			Format: defaultLogFormat,
		},
	}
}
