package models

// MConfig Structure
type MConfig struct {
	Name     string          `yaml:"name"`
	LogLevel string          `yaml:"log_level"`
	Telegram MTelegramConfig `yaml:"telegram"`
	Window   MWindowConfig   `yaml:"window"`
	Analysis MAnalysisConfig `yaml:"analysis"`
	Export   MExportConfig   `yaml:"export"`
	Network  MNetworkConfig  `yaml:"network"`
}

type MTelegramConfig struct {
	APIID       int    `yaml:"api_id"`
	APIHash     string `yaml:"api_hash"`
	GroupID     int64  `yaml:"group_id"`
	Phone       string `yaml:"phone"`        // Optional; prompted interactively when empty
	SessionFile string `yaml:"session_file"` // Persisted MTProto session
}

type MWindowConfig struct {
	DaysBack int `yaml:"days_back"`
}

type MAnalysisConfig struct {
	LowProcessingThreshold int64 `yaml:"low_processing_threshold"`
}

type MExportConfig struct {
	OutputDir    string `yaml:"output_dir"`
	BaseFilename string `yaml:"base_filename"`
}

type MNetworkConfig struct {
	Enabled        bool   `yaml:"enabled"` // Routes source traffic through the SOCKS5 proxy below
	Proxy          string `yaml:"proxy"`   // host:port
	ProxyUser      string `yaml:"proxy_user"`
	ProxyPassword  string `yaml:"proxy_password"`
	RequestTimeout int    `yaml:"timeout"`
	MaxRetries     int    `yaml:"retries"`
}
