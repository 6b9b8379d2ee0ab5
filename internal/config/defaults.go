package config

// DefaultMaxDepth is the include-traversal depth used when none is configured.
const DefaultMaxDepth = 3

// DefaultOutput is the bundle file written when none is configured.
const DefaultOutput = "carve.txt"

// DefaultConfig returns configuration with sensible defaults.
// These defaults are used when no config file exists or when
// config file is missing specific fields.
func DefaultConfig() *Config {
	return &Config{
		Extract: ExtractConfig{
			EntryFile: "",
			MaxDepth:  DefaultMaxDepth,
			Output:    DefaultOutput,
		},
		Scan: ScanConfig{
			Exclude: nil, // conventional build/VCS dirs are always skipped
		},
	}
}

// Merge merges loaded config with defaults.
// Values from loaded config take precedence over defaults.
// Returns a new Config with merged values.
func Merge(loaded, defaults *Config) *Config {
	result := &Config{}

	result.Extract = mergeExtractConfig(loaded.Extract, defaults.Extract)
	result.Scan = mergeScanConfig(loaded.Scan, defaults.Scan)

	return result
}

func mergeExtractConfig(loaded, defaults ExtractConfig) ExtractConfig {
	result := ExtractConfig{}

	// EntryFile: use loaded if non-empty
	if loaded.EntryFile != "" {
		result.EntryFile = loaded.EntryFile
	} else {
		result.EntryFile = defaults.EntryFile
	}

	// MaxDepth: use loaded if non-zero. A depth of zero (entry file only)
	// cannot be expressed in the config file; pass --depth 0 instead.
	if loaded.MaxDepth != 0 {
		result.MaxDepth = loaded.MaxDepth
	} else {
		result.MaxDepth = defaults.MaxDepth
	}

	// Output: use loaded if non-empty
	if loaded.Output != "" {
		result.Output = loaded.Output
	} else {
		result.Output = defaults.Output
	}

	return result
}

func mergeScanConfig(loaded, defaults ScanConfig) ScanConfig {
	result := ScanConfig{}

	if len(loaded.Exclude) > 0 {
		result.Exclude = loaded.Exclude
	} else {
		result.Exclude = defaults.Exclude
	}

	return result
}
