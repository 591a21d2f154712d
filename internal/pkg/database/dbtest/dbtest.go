// Package dbtest sobe um banco SQLite migrado para testes de repositório e de serviço.
package dbtest

import (
	"database/sql"
	"fmt"
	"path/filepath"
	"testing"
	"time"

	"github.com/pressly/goose/v3"
	"github.com/stretchr/testify/require"

	"gopharma/internal/pkg/database"
)

// NewSQLite cria um arquivo SQLite temporário com o esquema aplicado.
// O banco é fechado automaticamente ao fim do teste.
func NewSQLite(t *testing.T) *sql.DB {
	t.Helper()

	dsn := filepath.Join(t.TempDir(), "pharmacy.db")
	db, err := database.NewSQLiteDB(dsn)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	goose.SetLogger(goose.NopLogger())
	require.NoError(t, database.RunMigrations(db, "sqlite", "up"))

	return db
}

// Seeder insere linhas de teste nas tabelas do esquema.
type Seeder struct {
	t  *testing.T
	db *sql.DB
	n  int
}

// NewSeeder cria um Seeder sobre o banco informado.
func NewSeeder(t *testing.T, db *sql.DB) *Seeder {
	return &Seeder{t: t, db: db}
}

// Provider insere um fornecedor.
func (s *Seeder) Provider(id, name string) {
	s.t.Helper()
	s.exec(`INSERT INTO "Provider" ("id", "name", "email", "city", "country") VALUES ($1, $2, $3, $4, $5)`,
		id, name, fmt.Sprintf("contato@%s.mg", id), "Antananarivo", "Madagascar")
}

// Medicine insere um medicamento do estoque.
func (s *Seeder) Medicine(id, name string, quantity, min, max, alert int) {
	s.t.Helper()
	s.exec(`INSERT INTO "Medicine" ("id", "name", "quantity", "min", "max", "alert") VALUES ($1, $2, $3, $4, $5, $6)`,
		id, name, quantity, min, max, alert)
}

// Offer insere uma oferta de fornecedor.
func (s *Seeder) Offer(id, name, providerID string, quantity int, priceWithTax, priceWithoutTax int64) {
	s.t.Helper()
	expiration := time.Date(2027, time.March, 1, 0, 0, 0, 0, time.UTC)
	s.exec(`INSERT INTO "MedicineFromProvider" ("id", "name", "priceWithTax", "priceWithoutTax", "quantity", "providerId", "expirationDate")
		VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		id, name, priceWithTax, priceWithoutTax, quantity, providerID, expiration)
}

// Link liga um medicamento a uma oferta.
func (s *Seeder) Link(medicineID, offerID string) {
	s.t.Helper()
	s.exec(`INSERT INTO "_MedicineToMedicineFromProvider" ("A", "B") VALUES ($1, $2)`, medicineID, offerID)
}

// OpenOrder cria um pedido em aberto referenciando a oferta.
func (s *Seeder) OpenOrder(offerID, providerID string) {
	s.t.Helper()
	s.n++
	orderID := fmt.Sprintf("order-%d", s.n)
	s.exec(`INSERT INTO "Order" ("id", "providerId") VALUES ($1, $2)`, orderID, providerID)
	s.exec(`INSERT INTO "OrderMedicine" ("id", "orderId", "medicineFromProviderId") VALUES ($1, $2, $3)`,
		fmt.Sprintf("order-medicine-%d", s.n), orderID, offerID)
}

func (s *Seeder) exec(query string, args ...interface{}) {
	s.t.Helper()
	_, err := s.db.Exec(query, args...)
	require.NoError(s.t, err)
}
