package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

func init() {
	// O frontend consome os preços como números JSON, não como strings.
	decimal.MarshalJSONWithoutQuotes = true
}

// Provider representa um fornecedor externo.
// Apenas o nome é usado pelo relatório de reposição.
type Provider struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Email       *string `json:"email,omitempty"`
	ContactName *string `json:"contactName,omitempty"`
	City        string  `json:"city"`
	Country     string  `json:"country"`
}

// MedicineFromProvider é um lote vendável de um fornecedor (uma oferta),
// ligado aos medicamentos do estoque por uma relação muitos-para-muitos.
type MedicineFromProvider struct {
	ID              string          `json:"id"`
	Name            string          `json:"name"`
	PriceWithTax    decimal.Decimal `json:"priceWithTax"`
	PriceWithoutTax decimal.Decimal `json:"priceWithoutTax"`
	Quantity        int             `json:"quantity"`
	DCI             *string         `json:"dci"`
	ProviderID      string          `json:"providerId"`
	ExpirationDate  time.Time       `json:"expirationDate"`
}

// MedicineOfferLink é uma linha da tabela de junção medicamento ↔ oferta.
type MedicineOfferLink struct {
	MedicineID             string
	MedicineFromProviderID string
}
