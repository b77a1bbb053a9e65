package service

import (
	"testing"

	"go-restaurant-ws/internal/model"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// The booking and stock paths depend on the row lock actually reaching the
// SQL; a silently dropped clause would let two concurrent writers read the
// same state.
func TestLockForUpdateEmitsRowLock(t *testing.T) {
	db, err := gorm.Open(postgres.Open("host=127.0.0.1 user=nobody dbname=none"), &gorm.Config{
		DryRun:               true,
		DisableAutomaticPing: true,
		Logger:               logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	var table model.Table
	stmt := lockForUpdate(db).First(&table, "id = ?", uuid.New()).Statement
	assert.Contains(t, stmt.SQL.String(), "FOR UPDATE")
}

func TestLockForUpdateSkippedOnSQLite(t *testing.T) {
	db := newTestDB(t).Session(&gorm.Session{DryRun: true})

	var table model.Table
	stmt := lockForUpdate(db).First(&table, "id = ?", uuid.New()).Statement
	assert.NotContains(t, stmt.SQL.String(), "FOR UPDATE")
}
