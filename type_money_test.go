package fintrack

import "testing"

func TestMoney_String(t *testing.T) {
	testCases := []struct {
		currency string
		value    float64
		want     string
	}{
		{"USD", 1234.5, "$1,234.50"},
		{"USD", 0, "$0.00"},
		{"USD", 0.5, "$0.50"},
	}
	defer SetDisplayCurrency(DefaultCurrency)
	for _, tc := range testCases {
		if err := SetDisplayCurrency(tc.currency); err != nil {
			t.Fatalf("SetDisplayCurrency(%q) error = %v", tc.currency, err)
		}
		if got := BDT(tc.value).String(); got != tc.want {
			t.Errorf("M(%v).String() in %s = %q, want %q", tc.value, tc.currency, got, tc.want)
		}
	}
	if err := SetDisplayCurrency("XXXX"); err == nil {
		t.Errorf("SetDisplayCurrency(XXXX) succeeded")
	}
}

func TestParseMoney(t *testing.T) {
	testCases := []struct {
		input   string
		want    float64
		wantErr bool
	}{
		{"12.50", 12.5, false},
		{"100", 100, false},
		{"-3", -3, false},
		{"abc", 0, true},
		{"", 0, true},
	}
	for _, tc := range testCases {
		got, err := ParseMoney(tc.input)
		if (err != nil) != tc.wantErr {
			t.Errorf("ParseMoney(%q) error = %v, wantErr %v", tc.input, err, tc.wantErr)
			continue
		}
		if !tc.wantErr && !got.Equal(BDT(tc.want)) {
			t.Errorf("ParseMoney(%q) = %v, want %v", tc.input, got.Plain(), tc.want)
		}
	}
}

func TestMoney_Arithmetic(t *testing.T) {
	if got := BDT(30).Sub(BDT(50)).Floor(); !got.IsZero() {
		t.Errorf("Floor(-20) = %v, want 0", got.Plain())
	}
	if got := BDT(10).Div(0); !got.IsZero() {
		t.Errorf("Div(0) = %v, want 0", got.Plain())
	}
	if got := BDT(25).Percent(Money{}); got.String() != "2500" {
		t.Errorf("Percent(0) = %v, want 2500", got)
	}
	if got := Sum(BDT(1), BDT(2.5)); !got.Equal(BDT(3.5)) {
		t.Errorf("Sum() = %v, want 3.5", got.Plain())
	}
	if got := BDT(0).SignedString(); got != "-" {
		t.Errorf("SignedString(0) = %q, want -", got)
	}
}

func TestMoney_Percent(t *testing.T) {
	testCases := []struct {
		m, total Money
		want     string
	}{
		{BDT(1), BDT(4), "25"},
		{BDT(1), BDT(3), "33.33"},
		{BDT(0), BDT(0), "0"},
		{BDT(0.5), BDT(0.5), "50"},
		{BDT(0.25), BDT(0.5), "25"},
	}
	for _, tc := range testCases {
		if got := tc.m.Percent(tc.total); got.String() != tc.want {
			t.Errorf("%v.Percent(%v) = %v, want %v", tc.m.Plain(), tc.total.Plain(), got, tc.want)
		}
	}
}
