package database

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestConnect(t *testing.T) {
	t.Run("SQLite In Memory", func(t *testing.T) {
		db, err := Connect(Config{Driver: DriverSQLite, Name: ":memory:"})
		require.NoError(t, err)
		require.NotNil(t, db)

		var fk int
		require.NoError(t, db.Raw("PRAGMA foreign_keys").Scan(&fk).Error)
		assert.Equal(t, 1, fk)
	})

	t.Run("Unsupported Driver", func(t *testing.T) {
		db, err := Connect(Config{Driver: "oracle"})
		assert.Error(t, err)
		assert.Nil(t, db)
	})

	t.Run("Invalid MySQL Connection", func(t *testing.T) {
		cfg := Config{
			Driver:         DriverMySQL,
			Host:           "localhost",
			Port:           9999, // Unused port
			User:           "root",
			Password:       "wrongpassword",
			Name:           "inventory",
			TimeoutSeconds: 1,
		}

		db, err := Connect(cfg)
		assert.Error(t, err)
		assert.Nil(t, db)
	})
}

func TestSQLiteDSN(t *testing.T) {
	assert.Equal(t, ":memory:?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)", sqliteDSN(""))
	assert.Equal(t, "inv.db?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)", sqliteDSN("inv.db"))
	assert.Equal(t, "file:inv.db?mode=rw&_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)", sqliteDSN("file:inv.db?mode=rw"))
}

func TestIsDuplicateKey(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"Nil", nil, false},
		{"Translated", fmt.Errorf("insert: %w", gorm.ErrDuplicatedKey), true},
		{"SQLite", errors.New("constraint failed: UNIQUE constraint failed: audit_items.audit_id (2067)"), true},
		{"MySQL", errors.New("Error 1062 (23000): Duplicate entry 'a-b' for key 'idx'"), true},
		{"Other", errors.New("connection refused"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsDuplicateKey(tt.err))
		})
	}
}

func TestUniqueViolationIsTranslated(t *testing.T) {
	db, err := Connect(Config{Driver: DriverSQLite, Name: ":memory:"})
	require.NoError(t, err)

	require.NoError(t, db.Exec("CREATE TABLE pairs (a TEXT, b TEXT, UNIQUE(a, b))").Error)
	require.NoError(t, db.Exec("INSERT INTO pairs (a, b) VALUES ('x', 'y')").Error)

	err = db.Exec("INSERT INTO pairs (a, b) VALUES ('x', 'y')").Error
	assert.True(t, IsDuplicateKey(err))
	assert.False(t, IsNotFound(err))
}
