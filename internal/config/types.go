// Package config loads the TOML configuration of libdeps.
package config

// Config is the root of the configuration file.
type Config struct {
	Search  SearchSpec  `toml:"search"`
	Graph   GraphSpec   `toml:"graph"`
	Output  OutputSpec  `toml:"output"`
	Inspect InspectSpec `toml:"inspect"`
	Log     LogSpec     `toml:"log"`
}

// SearchSpec lists the directories libraries are resolved against.
type SearchSpec struct {
	// Paths is searched in order; the first directory containing a library wins.
	Paths []string `toml:"paths"`

	// UseLDLibraryPath puts the entries of $LD_LIBRARY_PATH before Paths.
	UseLDLibraryPath bool `toml:"use_ld_library_path"`
}

// GraphSpec controls graph construction.
type GraphSpec struct {
	FullPath    bool `toml:"full_path"`
	Recursive   bool `toml:"recursive"`
	SkipVisited bool `toml:"skip_visited"`
}

// OutputSpec selects the renderer.
type OutputSpec struct {
	Format string `toml:"format"`
}

// InspectSpec tunes binary inspection.
type InspectSpec struct {
	// CacheSize is the number of inspected paths remembered; 0 disables the
	// cache. nil means DefaultCacheSize.
	CacheSize *int `toml:"cache_size"`

	// MaxFileSize bounds the size of inspected files in bytes.
	MaxFileSize int64 `toml:"max_file_size"`
}

// LogSpec configures logging.
type LogSpec struct {
	Level string `toml:"level"`
	Dir   string `toml:"dir"`
}
