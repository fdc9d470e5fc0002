package database

const (
	DriverSQLite = "sqlite"
	DriverMySQL  = "mysql"
)

// Config holds configuration for the database connection.
type Config struct {
	// Driver is the database driver (sqlite, mysql).
	Driver string `mapstructure:"driver" default:"sqlite"`
	// Host is the database host. Ignored by sqlite.
	Host string `mapstructure:"host" default:"localhost"`
	// Port is the database port. Ignored by sqlite.
	Port int `mapstructure:"port" default:"3306"`
	// User is the database user. Ignored by sqlite.
	User string `mapstructure:"user" default:"root"`
	// Password is the database password. Ignored by sqlite.
	Password string `mapstructure:"password" default:""`
	// Name is the database name, or the file path for sqlite (":memory:" for an in-memory database).
	Name string `mapstructure:"name" default:"inventory.db"`
	// TimeoutSeconds bounds connection setup and the initial ping.
	TimeoutSeconds int `mapstructure:"timeout_seconds" default:"30"`
}
