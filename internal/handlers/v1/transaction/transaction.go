package transaction

import (
	"github.com/carson-networks/ledger-server/internal/ledger"
)

// Transaction is the API response model for a ledger transaction.
// It is used only for responses, not for request bodies.
type Transaction struct {
	OwnerID     int    `json:"ownerID" doc:"Id of the user who recorded the transaction"`
	Date        string `json:"date" doc:"Calendar date, YYYY-MM-DD"`
	Time        string `json:"time" doc:"Wall-clock time, HH:MM:SS"`
	Description string `json:"description" doc:"Free-text description"`
	Vendor      string `json:"vendor" doc:"Vendor name"`
	Amount      string `json:"amount" doc:"Signed decimal amount, two decimals"`
	Type        string `json:"type" doc:"credit (payment) or debit (deposit)"`
}

func toResponse(transactions []ledger.Transaction) []Transaction {
	out := make([]Transaction, len(transactions))
	for i, t := range transactions {
		out[i] = Transaction{
			OwnerID:     t.OwnerID,
			Date:        t.Date.Format(ledger.DateLayout),
			Time:        t.Time.Format(ledger.TimeLayout),
			Description: t.Description,
			Vendor:      t.Vendor,
			Amount:      t.Amount.StringFixed(2),
			Type:        t.Type(),
		}
	}
	return out
}
