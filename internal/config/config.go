package config

type Config struct {
	Database   DatabaseConfig `mapstructure:"database"`
	Defaults   DefaultsConfig `mapstructure:"defaults"`
	Import     ImportConfig   `mapstructure:"import"`
	ConfigPath string         `mapstructure:"-"`
}

type DatabaseConfig struct {
	Path string `mapstructure:"path"`
}

type DefaultsConfig struct {
	Currency string `mapstructure:"currency"`
}

type ImportConfig struct {
	DateFormat       int    `mapstructure:"date_format"`
	CurrencyFormat   int    `mapstructure:"currency_format"`
	DecimalSeparator string `mapstructure:"decimal_separator"`
	GroupSeparator   string `mapstructure:"group_separator"`
}

func NewDefault() *Config {
	return &Config{
		Database: DatabaseConfig{Path: ""},
		Defaults: DefaultsConfig{Currency: "USD"},
		Import: ImportConfig{
			DateFormat:       0,
			CurrencyFormat:   0,
			DecimalSeparator: ".",
			GroupSeparator:   ",",
		},
	}
}
