package database_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gopharma/internal/pkg/database"
	"gopharma/internal/pkg/database/dbtest"
)

func TestGooseDialect(t *testing.T) {
	assert.Equal(t, "sqlite3", database.GooseDialect("sqlite"))
	assert.Equal(t, "postgres", database.GooseDialect("postgres"))
	assert.Equal(t, "postgres", database.GooseDialect(""))
}

func TestOpen_UnknownDriver(t *testing.T) {
	_, err := database.Open("mysql", "root@/pharmacy")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "mysql")
}

func TestMigrations_CreateSchema(t *testing.T) {
	db := dbtest.NewSQLite(t)

	for _, table := range []string{"Provider", "Medicine", "MedicineFromProvider", "_MedicineToMedicineFromProvider", "Order", "OrderMedicine"} {
		var name string
		err := db.QueryRow(`SELECT name FROM sqlite_master WHERE type = 'table' AND name = $1`, table).Scan(&name)
		require.NoError(t, err, table)
		assert.Equal(t, table, name)
	}
}

func TestMigrations_LinkIsASet(t *testing.T) {
	db := dbtest.NewSQLite(t)
	seed := dbtest.NewSeeder(t, db)
	seed.Provider("p-1", "Pharmalab")
	seed.Medicine("m-1", "Paracetamol", 2, 5, 10, 5)
	seed.Offer("o-1", "Paracetamol 500mg", "p-1", 20, 1200, 1000)
	seed.Link("m-1", "o-1")

	_, err := db.Exec(`INSERT INTO "_MedicineToMedicineFromProvider" ("A", "B") VALUES ($1, $2)`, "m-1", "o-1")
	assert.Error(t, err)
}
