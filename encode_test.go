package fintrack

import (
	"testing"
	"time"
)

func TestEncodeData(t *testing.T) {
	s := NewState()
	s.Registry = s.Registry.With(Cash, BDT(10))
	s.People = []Person{{ID: "p1", Name: "Alice"}}
	s.Ledger = NewLedger(NewSavings(1, time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC), BDT(10), Cash, ""))

	value, err := EncodeData(s)
	if err != nil {
		t.Fatalf("EncodeData() error = %v", err)
	}
	want := `{"savings":{"mobile":0,"cash":10,"card":0,"loan":0},"moneyGivenPeople":[{"id":"p1","name":"Alice"}],"transactions":[{"id":1,"type":"savings","source":"cash","amount":10,"date":"2024-01-10T00:00:00.000Z"}]}`
	if value != want {
		t.Errorf("EncodeData() = %s\nwant %s", value, want)
	}

	var back State
	if err := DecodeData(value, &back); err != nil {
		t.Fatalf("DecodeData() error = %v", err)
	}
	if !back.Registry.Equal(s.Registry) || !back.Ledger.Equal(s.Ledger) || len(back.People) != 1 {
		t.Errorf("DecodeData() = %+v", back)
	}
}

func TestDecodeData_MissingFields(t *testing.T) {
	var s State
	if err := DecodeData(`{"savings":{"cash":5,"bank":3}}`, &s); err != nil {
		t.Fatalf("DecodeData() error = %v", err)
	}
	if !s.Registry.Get(Cash).Equal(BDT(5)) || !s.Registry.Total().Equal(BDT(5)) {
		t.Errorf("registry = %v, want cash 5 only", s.Registry.Total())
	}
	if s.Ledger.Len() != 0 {
		t.Errorf("ledger has %d transactions, want 0", s.Ledger.Len())
	}
	if err := DecodeData(`{"savings":`, &s); err == nil {
		t.Errorf("DecodeData(truncated) succeeded")
	}
}

func TestMonthlyRoundTrip(t *testing.T) {
	if v, _ := EncodeMonthly(nil); v != "null" {
		t.Errorf("EncodeMonthly(nil) = %s, want null", v)
	}
	if cfg, err := DecodeMonthly("null"); err != nil || cfg != nil {
		t.Errorf("DecodeMonthly(null) = %v, %v", cfg, err)
	}

	in := &MonthlyDepositConfig{Enabled: true, Amount: BDT(100), Source: Cash, DayOfMonth: 15}
	v, err := EncodeMonthly(in)
	if err != nil {
		t.Fatal(err)
	}
	if want := `{"enabled":true,"amount":100,"source":"cash","dayOfMonth":15}`; v != want {
		t.Errorf("EncodeMonthly() = %s, want %s", v, want)
	}
	out, err := DecodeMonthly(v)
	if err != nil || out.DayOfMonth != 15 || !out.Amount.Equal(in.Amount) || !out.Enabled {
		t.Errorf("DecodeMonthly() = %+v, %v", out, err)
	}
}

func TestScheduledRoundTrip(t *testing.T) {
	in := []ScheduledDeposit{{ID: "d1", Amount: BDT(5), Source: Card, ScheduledDate: NewDate(2024, 2, 1), Description: "x"}}
	v, err := EncodeScheduled(in)
	if err != nil {
		t.Fatal(err)
	}
	want := `[{"id":"d1","amount":5,"source":"card","scheduledDate":"2024-02-01","description":"x","completed":false}]`
	if v != want {
		t.Errorf("EncodeScheduled() = %s, want %s", v, want)
	}
	out, err := DecodeScheduled(v)
	if err != nil || len(out) != 1 || out[0].ScheduledDate != in[0].ScheduledDate {
		t.Errorf("DecodeScheduled() = %+v, %v", out, err)
	}
	if v, _ := EncodeScheduled(nil); v != "[]" {
		t.Errorf("EncodeScheduled(nil) = %s, want []", v)
	}
}

func TestDecode_RejectsInvalidRecords(t *testing.T) {
	var s State
	testCases := []struct {
		name   string
		decode func() error
	}{
		{"negative savings", func() error {
			return DecodeData(`{"transactions":[{"id":1,"type":"savings","source":"cash","amount":-5,"date":"2024-01-10T00:00:00.000Z"}]}`, &s)
		}},
		{"zero expense on unknown source", func() error {
			return DecodeData(`{"transactions":[{"id":1,"type":"expense","category":"food","source":"bogus","amount":0,"date":"2024-01-10T00:00:00.000Z"}]}`, &s)
		}},
		{"unknown category", func() error {
			return DecodeData(`{"transactions":[{"id":1,"type":"expense","category":"rent","source":"cash","amount":5,"date":"2024-01-10T00:00:00.000Z"}]}`, &s)
		}},
		{"zero scheduled deposit", func() error {
			_, err := DecodeScheduled(`[{"id":"d1","amount":0,"source":"card","scheduledDate":"2024-02-01"}]`)
			return err
		}},
		{"enabled monthly on day 31", func() error {
			_, err := DecodeMonthly(`{"enabled":true,"amount":100,"source":"cash","dayOfMonth":31}`)
			return err
		}},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if err := tc.decode(); err == nil {
				t.Errorf("decoding succeeded, want a validation error")
			}
		})
	}
	if s.Ledger.Len() != 0 {
		t.Errorf("rejected data reached the state: %d transactions", s.Ledger.Len())
	}

	if cfg, err := DecodeMonthly(`{"enabled":false,"amount":0,"source":"mobile","dayOfMonth":1}`); err != nil || cfg == nil {
		t.Errorf("DecodeMonthly(disabled) = %v, %v, want the config", cfg, err)
	}
}
