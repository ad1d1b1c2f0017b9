package db

import (
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/clinic-tracker/internal/models"
)

func TestMigrateNormalisesLegacyPriority(t *testing.T) {
	gdb, err := gorm.Open(sqlite.Open("file:migrate?mode=memory&cache=shared&_pragma=foreign_keys(1)"), &gorm.Config{})
	require.NoError(t, err)

	require.NoError(t, Migrate(gdb, zap.NewNop()))

	require.NoError(t, gdb.Exec(
		`INSERT INTO patients (nhs_number, first_name, last_name, date_of_birth, status, priority) VALUES (?, ?, ?, ?, ?, ?)`,
		"4857771234", "James", "Smith", time.Date(1985, time.March, 15, 0, 0, 0, 0, time.UTC), "active", "medium",
	).Error)

	require.NoError(t, Migrate(gdb, zap.NewNop()))

	var p models.Patient
	require.NoError(t, gdb.Where("nhs_number = ?", "4857771234").First(&p).Error)
	assert.Equal(t, "normal", p.Priority)
}
