package domain

// Medicine representa um medicamento do estoque da farmácia (item de inventário).
// O serviço apenas lê estes registros; quem os altera é o backend principal.
type Medicine struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Quantity  int    `json:"quantity"`
	Min       int    `json:"min"`
	Max       int    `json:"max"`
	Alert     int    `json:"alert"`
	Reference string `json:"reference"`
}

// IsLowStock indica se a quantidade atual atingiu o nível de alerta.
func (m Medicine) IsLowStock() bool {
	return m.Quantity <= m.Alert
}

// Headroom é o espaço restante até o estoque máximo (pode ser negativo).
func (m Medicine) Headroom() int {
	return m.Max - m.Quantity
}
