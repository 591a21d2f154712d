package stockrepo

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"gopharma/internal/domain"
	apperror "gopharma/internal/errors"
	"gopharma/internal/pkg/logger"
)

const medicineColumns = `"id", "name", "quantity", "min", "max", "alert", "reference"`

// MedicineRepository dá acesso de leitura à tabela "Medicine".
type MedicineRepository struct {
	DB        *sql.DB
	DBTimeout time.Duration
	logger    logger.Logger
}

// NewMedicineRepository cria e retorna uma nova instância do Repositório de Medicamentos.
func NewMedicineRepository(db *sql.DB, dbTimeout time.Duration, logger logger.Logger) *MedicineRepository {
	return &MedicineRepository{
		DB:        db,
		DBTimeout: dbTimeout,
		logger:    logger,
	}
}

// FindLowStock retorna os medicamentos cuja quantidade está no nível de alerta ou abaixo.
// A ordem não é garantida.
func (r *MedicineRepository) FindLowStock(ctx context.Context) ([]domain.Medicine, error) {
	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	query := `SELECT ` + medicineColumns + ` FROM "Medicine" WHERE "quantity" <= "alert"`

	rows, err := r.DB.QueryContext(ctxTimeout, query)
	if err != nil {
		r.logger.Error("Falha ao buscar medicamentos em nível de alerta.", err)
		return nil, apperror.NewDBError("Falha ao buscar medicamentos em nível de alerta", err)
	}
	defer rows.Close()

	medicines := []domain.Medicine{}
	for rows.Next() {
		var m domain.Medicine
		if err := rows.Scan(&m.ID, &m.Name, &m.Quantity, &m.Min, &m.Max, &m.Alert, &m.Reference); err != nil {
			r.logger.Error("Falha ao ler linha de medicamento.", err)
			return nil, apperror.NewDBError("Falha ao ler medicamento", err)
		}
		medicines = append(medicines, m)
	}
	if err := rows.Err(); err != nil {
		r.logger.Error("Falha ao iterar medicamentos.", err)
		return nil, apperror.NewDBError("Falha ao iterar medicamentos", err)
	}

	r.logger.Debug("Medicamentos em nível de alerta encontrados.", map[string]interface{}{"count": len(medicines)})
	return medicines, nil
}

// FindByID busca um medicamento pelo ID.
func (r *MedicineRepository) FindByID(ctx context.Context, id string) (domain.Medicine, error) {
	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	query := `SELECT ` + medicineColumns + ` FROM "Medicine" WHERE "id" = $1`

	var m domain.Medicine
	err := r.DB.QueryRowContext(ctxTimeout, query, id).Scan(
		&m.ID, &m.Name, &m.Quantity, &m.Min, &m.Max, &m.Alert, &m.Reference,
	)
	if errors.Is(err, sql.ErrNoRows) {
		r.logger.Debug("Medicamento não encontrado.", map[string]interface{}{"id": id})
		return domain.Medicine{}, apperror.NewNotFoundError(fmt.Sprintf("Medicamento com ID %s não existe.", id))
	}
	if err != nil {
		r.logger.Error("Falha ao buscar medicamento no DB.", err)
		return domain.Medicine{}, apperror.NewDBError("Falha ao buscar medicamento", err)
	}

	return m, nil
}
