package postgres

//nolint:revive
import (
	"errors"
	"fmt"
	"hotelbook/config"
	"net"
	"net/url"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/rs/zerolog/log"
)

const (
	driverName                = "postgres"
	postgresMaxIdleConnection = 10
	postgresMaxOpenConnection = 10
)

var errNoConnection = errors.New("could not connect to postgres")

// Connection splits reads and writes. Both point at the same database unless a replica is configured.
type Connection struct {
	Read  *sqlx.DB
	Write *sqlx.DB
}

type endpoint struct {
	name     string
	username string
	password string
	host     string
	port     string
	database string
	sslMode  string
}

func New(config *config.Config) (*Connection, func(), error) {
	pg := config.DB.Postgres

	write, err := connect(endpoint{
		name:     "write",
		username: pg.Write.Username,
		password: pg.Write.Password,
		host:     pg.Write.Host,
		port:     pg.Write.Port,
		database: databaseName(config, pg.Write.Name),
		sslMode:  pg.Write.SSLMode,
	}, pg.MaxRetry, pg.RetryWaitTime)
	if err != nil {
		return nil, nil, err
	}

	read := write

	if pg.Read.Host != "" {
		read, err = connect(endpoint{
			name:     "read",
			username: pg.Read.Username,
			password: pg.Read.Password,
			host:     pg.Read.Host,
			port:     pg.Read.Port,
			database: databaseName(config, pg.Read.Name),
			sslMode:  pg.Read.SSLMode,
		}, pg.MaxRetry, pg.RetryWaitTime)
		if err != nil {
			write.Close()

			return nil, nil, err
		}
	}

	conn := &Connection{Read: read, Write: write}

	return conn, conn.Close, nil
}

func (c *Connection) Close() {
	if c.Read != nil && c.Read != c.Write {
		if err := c.Read.Close(); err != nil {
			log.Error().Err(err).Msg("Failed to close read connection")
		}
	}

	if c.Write != nil {
		if err := c.Write.Close(); err != nil {
			log.Error().Err(err).Msg("Failed to close write connection")
		}
	}
}

func databaseName(config *config.Config, baseName string) string {
	if config.DB.Postgres.Prefix != "" {
		return config.DB.Postgres.Prefix + baseName
	}

	return baseName
}

// DSN builds a postgres URL, escaping credentials.
func (e endpoint) DSN() string {
	dsn := url.URL{
		Scheme: driverName,
		User:   url.UserPassword(e.username, e.password),
		Host:   net.JoinHostPort(e.host, e.port),
		Path:   e.database,
	}

	if e.sslMode != "" {
		dsn.RawQuery = url.Values{"sslmode": []string{e.sslMode}}.Encode()
	}

	return dsn.String()
}

func connect(target endpoint, maxRetry, waitTime int) (*sqlx.DB, error) {
	if maxRetry < 1 {
		maxRetry = 1
	}

	var lastErr error

	for retry := range maxRetry {
		sqlDB, err := sqlx.Connect(driverName, target.DSN())
		if err == nil {
			log.
				Info().
				Str("name", target.name).
				Str("host", target.host).
				Str("port", target.port).
				Str("dbName", target.database).
				Msg("Connected to database")
			sqlDB.SetMaxIdleConns(postgresMaxIdleConnection)
			sqlDB.SetMaxOpenConns(postgresMaxOpenConnection)

			return sqlDB, nil
		}

		lastErr = err

		log.
			Error().
			Err(err).
			Str("name", target.name).
			Str("host", target.host).
			Str("port", target.port).
			Str("dbName", target.database).
			Int("attempt", retry+1).
			Msg("Failed connecting to database, retrying")

		time.Sleep(time.Duration(waitTime) * time.Second)
	}

	return nil, fmt.Errorf("%w (%s): %w", errNoConnection, target.name, lastErr)
}
