package providerservice

import (
	"github.com/shopspring/decimal"

	"gopharma/internal/domain"
)

// QuantityToOrder calcula quantas unidades da oferta encomendar: o espaço até
// o estoque máximo, limitado ao que o fornecedor tem disponível.
// O resultado pode ser zero ou negativo quando o estoque já passou do máximo.
func QuantityToOrder(medicine domain.Medicine, offer domain.MedicineFromProvider) int {
	needed := medicine.Headroom()
	if offer.Quantity > needed {
		return needed
	}
	return offer.Quantity
}

// EstimatedCost é o custo com impostos da quantidade recomendada.
func EstimatedCost(offer domain.MedicineFromProvider, quantity int) decimal.Decimal {
	if quantity <= 0 {
		return decimal.Zero
	}
	return offer.PriceWithTax.Mul(decimal.NewFromInt(int64(quantity)))
}
