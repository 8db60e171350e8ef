package helper

//nolint:revive
import (
	"errors"
	"fmt"
	"hotelbook/config"
	"net"
	"net/url"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/rs/zerolog/log"
)

const (
	MigrationSource = "file://migrations/postgres"

	ActionUp      = "up"
	ActionDown    = "down"
	ActionStepUp  = "step-up"
	ActionDrop    = "drop"
	ActionVersion = "version"
)

var ErrUnknownAction = errors.New("unknown migration action")

func databaseURL(config *config.Config) string {
	pg := config.DB.Postgres

	name := pg.Write.Name
	if pg.Prefix != "" {
		name = pg.Prefix + name
	}

	query := url.Values{}
	if pg.Write.SSLMode != "" {
		query.Set("sslmode", pg.Write.SSLMode)
	}

	if pg.MigrationTable != "" {
		query.Set("x-migrations-table", pg.MigrationTable)
	}

	dsn := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(pg.Write.Username, pg.Write.Password),
		Host:     net.JoinHostPort(pg.Write.Host, pg.Write.Port),
		Path:     name,
		RawQuery: query.Encode(),
	}

	return dsn.String()
}

func Runner(config *config.Config, action string) error {
	mig, err := migrate.New(MigrationSource, databaseURL(config))
	if err != nil {
		return fmt.Errorf("error creating migrate instance: %w", err)
	}

	defer mig.Close()

	switch action {
	case ActionUp:
		err = mig.Up()
	case ActionDown:
		err = mig.Steps(-1)
	case ActionStepUp:
		err = mig.Steps(1)
	case ActionDrop:
		err = mig.Down()
	case ActionVersion:
		version, dirty, verErr := mig.Version()
		if verErr != nil && !errors.Is(verErr, migrate.ErrNilVersion) {
			return fmt.Errorf("error reading migration version: %w", verErr)
		}

		log.Info().Uint("version", version).Bool("dirty", dirty).Msg("Current database migration version")

		return nil
	default:
		return fmt.Errorf("%w: %s", ErrUnknownAction, action)
	}

	if err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("error running migrations (%s): %w", action, err)
	}

	log.Info().Str("action", action).Msg("Database migrations completed successfully")

	return nil
}

func Up(config *config.Config) error {
	return Runner(config, ActionUp)
}
