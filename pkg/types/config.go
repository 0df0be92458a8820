package types

// StorageConfig holds settings for the SQLite record store.
type StorageConfig struct {
	// DataDir is the base directory for engine data (contains index/).
	DataDir string `json:"data_dir" yaml:"data_dir"`
}

// AnalysisConfig holds settings for quality analysis runs.
type AnalysisConfig struct {
	// Workers is the number of concurrent per-record analyses in a batch.
	// Zero or negative uses the default (4).
	Workers int `json:"workers" yaml:"workers"`
}

// EngineConfig groups all stage configurations.
type EngineConfig struct {
	Storage  StorageConfig  `json:"storage" yaml:"storage"`
	Analysis AnalysisConfig `json:"analysis" yaml:"analysis"`
}
