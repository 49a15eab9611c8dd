package enum

import (
	"encoding/json"

	"github.com/shopspring/decimal"
)

// PaymentStatus represents how much of an invoice has been settled
type PaymentStatus int

const (
	PaymentStatusDue     PaymentStatus = 0
	PaymentStatusPartial PaymentStatus = 1
	PaymentStatusPaid    PaymentStatus = 2
)

func (s PaymentStatus) String() string {
	switch s {
	case PaymentStatusPartial:
		return "Partial"
	case PaymentStatusPaid:
		return "Paid"
	default:
		return "Due"
	}
}

func (s PaymentStatus) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

func (s *PaymentStatus) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		var i int
		if err := json.Unmarshal(data, &i); err != nil {
			return err
		}
		*s = PaymentStatus(i)
		return nil
	}
	switch str {
	case "Paid":
		*s = PaymentStatusPaid
	case "Partial":
		*s = PaymentStatusPartial
	default:
		*s = PaymentStatusDue
	}
	return nil
}

// PaymentStatusOf derives the status from the invoice total and the paid amount.
func PaymentStatusOf(total, paid decimal.Decimal) PaymentStatus {
	switch {
	case paid.GreaterThanOrEqual(total):
		return PaymentStatusPaid
	case paid.IsPositive():
		return PaymentStatusPartial
	default:
		return PaymentStatusDue
	}
}
