package db

import (
	"errors"
	"os"
	"os/exec"
	"testing"

	"paybyrd-bridge/internal/config"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildDSN(t *testing.T) {
	cfg := config.Config{
		DBHost:     "localhost",
		DBUser:     "bridge",
		DBPassword: "secret",
		DBName:     "shop",
		DBPort:     "5432",
	}

	tests := []struct {
		name   string
		mutate func(c *config.Config)
		want   string
	}{
		{
			name: "defaults sslmode",
			want: "host=localhost user=bridge password=secret dbname=shop port=5432 sslmode=disable",
		},
		{
			name:   "explicit sslmode",
			mutate: func(c *config.Config) { c.DBSSLMode = "require" },
			want:   "host=localhost user=bridge password=secret dbname=shop port=5432 sslmode=require",
		},
		{
			name:   "quotes awkward password",
			mutate: func(c *config.Config) { c.DBPassword = `it's a \secret` },
			want:   `host=localhost user=bridge password='it\'s a \\secret' dbname=shop port=5432 sslmode=disable`,
		},
		{
			name:   "omits empty values",
			mutate: func(c *config.Config) { c.DBPassword = ""; c.DBPort = "" },
			want:   "host=localhost user=bridge dbname=shop sslmode=disable",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := cfg
			if tt.mutate != nil {
				tt.mutate(&c)
			}
			assert.Equal(t, tt.want, buildDSN(&c))
		})
	}
}

func TestPreparePool(t *testing.T) {
	t.Run("ping succeeds", func(t *testing.T) {
		conn, mock, err := sqlmock.New(sqlmock.MonitorPingsOption(true))
		require.NoError(t, err)
		mock.ExpectPing()

		db, err := preparePool(conn)

		require.NoError(t, err)
		assert.Equal(t, maxOpenConns, db.Stats().MaxOpenConnections)
		assert.NoError(t, mock.ExpectationsWereMet())
		_ = db.Close()
	})

	t.Run("ping fails", func(t *testing.T) {
		conn, mock, err := sqlmock.New(sqlmock.MonitorPingsOption(true))
		require.NoError(t, err)
		mock.ExpectPing().WillReturnError(errors.New("connection refused"))
		mock.ExpectClose()

		db, err := preparePool(conn)

		assert.Nil(t, db)
		assert.ErrorContains(t, err, "failed to ping DB")
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestNewDatabase_ConnectionFailure(t *testing.T) {
	db, err := NewDatabase(&config.Config{DBHost: "invalid_host", DBPort: "5432"})

	assert.Error(t, err)
	assert.Nil(t, db)
	assert.Contains(t, err.Error(), "failed to ping DB")
}

func TestInitDB_Failure(t *testing.T) {
	// Re-run the test binary so log.Fatalf can exit without killing this process.
	if os.Getenv("DB_INIT_CRASH") == "1" {
		InitDB(&config.Config{DBHost: "invalid_host", DBPort: "5432"})
		return
	}

	cmd := exec.Command(os.Args[0], "-test.run=TestInitDB_Failure")
	cmd.Env = append(os.Environ(), "DB_INIT_CRASH=1")
	err := cmd.Run()

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) && !exitErr.Success() {
		return
	}
	t.Fatalf("process ran with err %v, want non-zero exit", err)
}
