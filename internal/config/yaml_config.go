package config

// YAMLConfig represents the application's configuration.
type YAMLConfig struct {
	WorkingDir string            `yaml:"working_dir"`
	Catalog    string            `yaml:"catalog"`
	Deck       string            `yaml:"deck"`
	Mode       string            `yaml:"mode"`
	Journal    YAMLConfigJournal `yaml:"journal"`
}

// YAMLConfigJournal represents the configuration for the session journal.
type YAMLConfigJournal struct {
	MaxFileSize     int    `yaml:"max_file_size"`
	FlushAfterNDraw int    `yaml:"flush_after_n_draw"`
	Formatter       string `yaml:"formatter"`
	Storage         string `yaml:"storage"`
}
