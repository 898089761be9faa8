package core

// PlaceholderStyle defines how query parameters are formatted.
type PlaceholderStyle int

const (
	// PlaceholderQuestion uses ? for all parameters.
	PlaceholderQuestion PlaceholderStyle = iota
	// PlaceholderDollar uses $1, $2, etc. for parameters (PostgreSQL).
	PlaceholderDollar
	// PlaceholderAt uses @name (SQL Server, SQLite).
	PlaceholderAt
	// PlaceholderColon uses :name (Oracle).
	PlaceholderColon
)

// IdentifierConfig defines how identifiers are quoted.
type IdentifierConfig struct {
	Quote    string // Quote character: ", `, [
	QuoteEnd string // End quote character (usually same as Quote, ] for [)
	Escape   string // Escape sequence: "", ``, ]]
}

// AdapterConfig holds configuration for connecting to a database.
type AdapterConfig struct {
	Type     string
	DSN      string // used verbatim when set
	Path     string // file path for embedded databases
	Host     string
	Port     int
	Database string
	Username string
	Password string
	Options  map[string]string
}

// TargetConfig is the user-facing target section of relsql.yaml.
type TargetConfig struct {
	Type     string            `koanf:"type" yaml:"type"`
	DSN      string            `koanf:"dsn" yaml:"dsn,omitempty"`
	Database string            `koanf:"database" yaml:"database,omitempty"`
	Host     string            `koanf:"host" yaml:"host,omitempty"`
	Port     int               `koanf:"port" yaml:"port,omitempty"`
	User     string            `koanf:"user" yaml:"user,omitempty"`
	Password string            `koanf:"password" yaml:"password,omitempty"`
	Options  map[string]string `koanf:"options" yaml:"options,omitempty"`
}

// AdapterConfig converts the target into connection settings.
func (t *TargetConfig) AdapterConfig() AdapterConfig {
	return AdapterConfig{
		Type:     t.Type,
		DSN:      t.DSN,
		Path:     t.Database,
		Host:     t.Host,
		Port:     t.Port,
		Database: t.Database,
		Username: t.User,
		Password: t.Password,
		Options:  t.Options,
	}
}
