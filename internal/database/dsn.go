package database

import (
	"fmt"
	"net"
	"net/url"
	"strconv"

	"github.com/deppfellow/vehicle-api/internal/config"
)

// DSN builds a postgres:// connection string from cfg.
//
// The password is escaped so characters like ':' or '@' do not break the URL.
func DSN(cfg config.DatabaseConfig) string {
	hostPort := net.JoinHostPort(cfg.Host, strconv.Itoa(cfg.Port))

	return fmt.Sprintf("postgres://%s:%s@%s/%s?sslmode=%s",
		url.QueryEscape(cfg.User),
		url.QueryEscape(cfg.Password),
		hostPort,
		cfg.Name,
		cfg.SSLMode,
	)
}
