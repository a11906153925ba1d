package database

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildConnString(t *testing.T) {
	tests := []struct {
		name    string
		cfg     DBConfig
		wantSSL string
	}{
		{
			name:    "Default ssl mode",
			cfg:     DBConfig{Host: "localhost", Port: 5432, User: "backlog", Password: "p@ss word", Database: "games"},
			wantSSL: "disable",
		},
		{
			name:    "Explicit ssl mode",
			cfg:     DBConfig{Host: "db.internal", Port: 6543, User: "bot", Database: "backlog", SSLMode: "require"},
			wantSSL: "require",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			u, err := url.Parse(buildConnString(tt.cfg))
			require.NoError(t, err)

			assert.Equal(t, "postgres", u.Scheme)
			assert.Equal(t, tt.cfg.Host, u.Hostname())
			assert.Equal(t, "/"+tt.cfg.Database, u.Path)
			assert.Equal(t, tt.cfg.User, u.User.Username())
			password, _ := u.User.Password()
			assert.Equal(t, tt.cfg.Password, password)
			assert.Equal(t, tt.wantSSL, u.Query().Get("sslmode"))
		})
	}
}
