package config

import "time"

type Config struct {
	Environment Environment
	Log         Log
	HTTP        HTTPServer

	Database  Database  `envPrefix:"DB_"`
	Auth      Auth      `envPrefix:"AUTH_"`
	Admin     Admin     `envPrefix:"ADMIN_"`
	Redis     Redis     `envPrefix:"REDIS_"`
	BrainTree Braintree `envPrefix:"BRAINTREE_"`
	Purchase  Purchase  `envPrefix:"PURCHASE_"`
}

type Environment struct {
	Name string `env:"ENVIRONMENT" envDefault:"development"`
}

func (e Environment) IsDevelopment() bool {
	return e.Name == "development"
}

type Log struct {
	Level  string `env:"LOG_LEVEL" envDefault:"info"`
	Format string `env:"LOG_FORMAT" envDefault:"json"`
}

type HTTPServer struct {
	Host string `env:"HTTP_HOST" envDefault:"0.0.0.0"`
	Port string `env:"HTTP_PORT" envDefault:"8080"`
}

// Database selects the gorm dialector. sqlite is the embedded default.
type Database struct {
	Driver          string        `env:"DRIVER" envDefault:"sqlite"` // sqlite, mysql, postgres
	DSN             string        `env:"DSN" envDefault:"infinity_park.db?_foreign_keys=on"`
	MaxIdleConns    int           `env:"MAX_IDLE_CONNS" envDefault:"2"`
	MaxOpenConns    int           `env:"MAX_OPEN_CONNS" envDefault:"10"`
	ConnMaxLifetime time.Duration `env:"CONN_MAX_LIFETIME" envDefault:"1h"`
	LogQueries      bool          `env:"LOG_QUERIES" envDefault:"false"`
}

type Auth struct {
	JWTSecret  string        `env:"JWT_SECRET"`
	TokenTTL   time.Duration `env:"TOKEN_TTL" envDefault:"24h"`
	BcryptCost int           `env:"BCRYPT_COST" envDefault:"10"`
}

// Admin is the account ensured at startup.
type Admin struct {
	Username string `env:"USERNAME" envDefault:"admin"`
	Password string `env:"PASSWORD" envDefault:"admin123"`
	Email    string `env:"EMAIL" envDefault:"admin@infinitypark.com"`
}

// Redis is optional; an empty Addr disables the catalog cache.
type Redis struct {
	Addr       string        `env:"ADDR"`
	Password   string        `env:"PASSWORD"`
	DB         int           `env:"DB" envDefault:"0"`
	CatalogTTL time.Duration `env:"CATALOG_TTL" envDefault:"5m"`
}

// Braintree is optional; without a merchant id every payment is approved instantly.
type Braintree struct {
	Environment string `env:"ENVIRONMENT" envDefault:"sandbox"`
	MerchantID  string `env:"MERCHANT_ID"`
	PublicKey   string `env:"PUBLIC_KEY"`
	PrivateKey  string `env:"PRIVATE_KEY"`
}

func (b Braintree) Enabled() bool {
	return b.MerchantID != "" && b.PublicKey != "" && b.PrivateKey != ""
}

type Purchase struct {
	VisitWindowDays int `env:"VISIT_WINDOW_DAYS" envDefault:"30"`
}
