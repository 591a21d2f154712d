package domain

import "github.com/shopspring/decimal"

// MedicineMapRecordProvider carrega apenas o nome de exibição do fornecedor.
type MedicineMapRecordProvider struct {
	Name string `json:"name"`
}

// MedicineMapRecord é uma oferta casada, anotada com a quantidade a encomendar.
type MedicineMapRecord struct {
	Medicine        MedicineFromProvider      `json:"medicine"`
	Provider        MedicineMapRecordProvider `json:"provider"`
	QuantityToOrder int                       `json:"quantityToOrder"`
	EstimatedCost   decimal.Decimal           `json:"estimatedCost"`
}

// MedicineMatchingRecord é a recomendação de reposição de um medicamento do estoque.
type MedicineMatchingRecord struct {
	MedicineID        string              `json:"-"`
	Name              string              `json:"name"`
	StockMin          int                 `json:"stockMin"`
	ProviderMedicines []MedicineMapRecord `json:"providerMedicines"`
}

// SkippedMedicine registra um medicamento descartado do relatório e o motivo.
type SkippedMedicine struct {
	MedicineID string `json:"medicineId"`
	Reason     string `json:"reason"`
}

// ReplenishmentReport é o resultado de uma execução do relatório.
// Records está ordenado por nome; Skipped serve apenas para diagnóstico.
type ReplenishmentReport struct {
	Records []MedicineMatchingRecord `json:"records"`
	Skipped []SkippedMedicine        `json:"skipped"`
}
