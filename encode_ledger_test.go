package fintrack

import (
	"encoding/json"
	"testing"
	"time"
)

func TestTransactionJSON(t *testing.T) {
	when := time.Date(2024, 1, 10, 9, 30, 0, 0, time.UTC)
	testCases := []struct {
		tx   Transaction
		want string
	}{
		{
			NewExpense(1, when, BDT(50), Mobile, Food, "lunch"),
			`{"id":1,"type":"expense","category":"food","source":"mobile","amount":50,"description":"lunch","date":"2024-01-10T09:30:00.000Z"}`,
		},
		{
			NewSavings(2, when, BDT(12.5), Cash, ""),
			`{"id":2,"type":"savings","source":"cash","amount":12.5,"date":"2024-01-10T09:30:00.000Z"}`,
		},
		{
			NewMoneyGiven(3, when, "p1", BDT(100), Card, ""),
			`{"id":3,"type":"moneyGiven","source":"card","amount":100,"personId":"p1","date":"2024-01-10T09:30:00.000Z"}`,
		},
		{
			NewMoneyReceived(4, when, "p1", BDT(40), Loan, "back"),
			`{"id":4,"type":"moneyReceived","source":"loan","amount":40,"personId":"p1","description":"back","date":"2024-01-10T09:30:00.000Z"}`,
		},
	}
	for _, tc := range testCases {
		t.Run(string(tc.tx.What()), func(t *testing.T) {
			got, err := json.Marshal(tc.tx)
			if err != nil {
				t.Fatalf("Marshal() error = %v", err)
			}
			if string(got) != tc.want {
				t.Errorf("Marshal() = %s, want %s", got, tc.want)
			}
			back, err := DecodeTransaction(got)
			if err != nil {
				t.Fatalf("DecodeTransaction() error = %v", err)
			}
			if !back.Equal(tc.tx) {
				t.Errorf("DecodeTransaction() = %#v, want %#v", back, tc.tx)
			}
		})
	}
}

func TestDecodeTransaction_Legacy(t *testing.T) {
	// numeric person ids from older data
	tx, err := DecodeTransaction([]byte(`{"id":1712,"type":"moneyGiven","source":"cash","amount":"10.5","personId":99,"date":"2024-01-10T09:30:00Z"}`))
	if err != nil {
		t.Fatalf("DecodeTransaction() error = %v", err)
	}
	given, ok := tx.(MoneyGiven)
	if !ok {
		t.Fatalf("DecodeTransaction() = %T, want MoneyGiven", tx)
	}
	if given.PersonID != "99" || !given.Amount.Equal(BDT(10.5)) {
		t.Errorf("DecodeTransaction() = %+v", given)
	}
}

func TestDecodeTransaction_UnknownType(t *testing.T) {
	if _, err := DecodeTransaction([]byte(`{"id":1,"type":"transfer","amount":1}`)); err == nil {
		t.Error("DecodeTransaction() succeeded on an unknown type")
	}
}

func TestLedgerJSON(t *testing.T) {
	when := time.Date(2024, 1, 10, 9, 30, 0, 0, time.UTC)
	l := NewLedger(
		NewExpense(2, when, BDT(5), Cash, Extra, ""),
		NewSavings(1, when, BDT(10), Cash, ""),
	)
	data, err := json.Marshal(l)
	if err != nil {
		t.Fatal(err)
	}
	var back Ledger
	if err := json.Unmarshal(data, &back); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}
	if !back.Equal(l) {
		t.Errorf("Unmarshal(Marshal(l)) = %s, want the same ledger", data)
	}

	empty, _ := json.Marshal(Ledger{})
	if string(empty) != "[]" {
		t.Errorf("Marshal(empty) = %s, want []", empty)
	}
}
