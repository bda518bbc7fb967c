package inventory

import (
	"github.com/shopspring/decimal"

	"github.com/invorya/stockledger/internal/domain"
	"github.com/invorya/stockledger/internal/domain/entity"
)

// Mutation resultado del cálculo de una mutación de cantidad (servicio de dominio, puro).
type Mutation struct {
	Before decimal.Decimal
	Change decimal.Decimal // con signo
	After  decimal.Decimal
}

// ComputeMutation calcula cantidad resultante y delta para una transacción, sin efectos.
// Reglas por tipo:
//   - add / transfer_in:      amount > 0; after = current + amount
//   - remove / transfer_out:  amount > 0; after = current - amount; falla si queda negativo
//   - adjust:                 amount es el valor absoluto destino, >= 0 (0 es legítimo);
//     el delta se deriva como amount - current, nunca se confía en un delta del cliente
//   - initial:                amount >= 0; before se fuerza a 0
func ComputeMutation(current decimal.Decimal, txType string, amount decimal.Decimal) (Mutation, error) {
	switch txType {
	case entity.TxTypeAdd, entity.TxTypeTransferIn:
		if !amount.GreaterThan(decimal.Zero) {
			return Mutation{}, domain.ErrInvalidAmount
		}
		return Mutation{Before: current, Change: amount, After: current.Add(amount)}, nil

	case entity.TxTypeRemove, entity.TxTypeTransferOut:
		if !amount.GreaterThan(decimal.Zero) {
			return Mutation{}, domain.ErrInvalidAmount
		}
		after := current.Sub(amount)
		if after.IsNegative() {
			return Mutation{}, domain.ErrInsufficientStock
		}
		return Mutation{Before: current, Change: amount.Neg(), After: after}, nil

	case entity.TxTypeAdjust:
		if amount.IsNegative() {
			return Mutation{}, domain.ErrInvalidAmount
		}
		return Mutation{Before: current, Change: amount.Sub(current), After: amount}, nil

	case entity.TxTypeInitial:
		if amount.IsNegative() {
			return Mutation{}, domain.ErrInvalidAmount
		}
		// before siempre 0: initial solo aplica cuando no existe registro previo
		return Mutation{Before: decimal.Zero, Change: amount, After: amount}, nil
	}
	return Mutation{}, domain.ErrUnknownTransactionType
}
