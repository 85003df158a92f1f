package fintrack

import (
	"testing"
	"time"
)

func TestApplyEffect(t *testing.T) {
	now := time.Date(2024, 1, 10, 9, 30, 0, 0, time.UTC)
	testCases := []struct {
		name        string
		balance     float64
		tx          Transaction
		wantApply   float64
		wantReverse float64
	}{
		{"expense", 100, NewExpense(1, now, BDT(40), Cash, Food, ""), 60, 140},
		{"expense clamps", 30, NewExpense(1, now, BDT(50), Cash, Food, ""), 0, 80},
		{"savings", 100, NewSavings(1, now, BDT(40), Cash, ""), 140, 60},
		{"savings reverse is not clamped", 10, NewSavings(1, now, BDT(40), Cash, ""), 50, -30},
		{"money given", 100, NewMoneyGiven(1, now, "p", BDT(40), Cash, ""), 60, 140},
		{"money given clamps", 30, NewMoneyGiven(1, now, "p", BDT(50), Cash, ""), 0, 80},
		{"money received", 100, NewMoneyReceived(1, now, "p", BDT(40), Cash, ""), 140, 60},
		{"money received reverse clamps", 10, NewMoneyReceived(1, now, "p", BDT(40), Cash, ""), 50, 0},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			r := NewRegistry().With(Cash, BDT(tc.balance))
			if got := ApplyEffect(r, tc.tx, Apply).Get(Cash); !got.Equal(BDT(tc.wantApply)) {
				t.Errorf("ApplyEffect(%v, Apply) = %v, want %v", tc.balance, got.Plain(), tc.wantApply)
			}
			if got := ApplyEffect(r, tc.tx, Reverse).Get(Cash); !got.Equal(BDT(tc.wantReverse)) {
				t.Errorf("ApplyEffect(%v, Reverse) = %v, want %v", tc.balance, got.Plain(), tc.wantReverse)
			}
			if !r.Get(Cash).Equal(BDT(tc.balance)) {
				t.Errorf("ApplyEffect mutated its input registry: %v", r.Get(Cash).Plain())
			}
		})
	}
}

func TestClampLaw(t *testing.T) {
	// Reversing a clamped expense does not restore the original balance.
	tx := NewExpense(1, time.Now(), BDT(50), Mobile, Food, "")
	r := NewRegistry().With(Mobile, BDT(30))

	r = ApplyEffect(r, tx, Apply)
	if got := r.Get(Mobile); !got.IsZero() {
		t.Fatalf("after apply balance = %v, want 0", got.Plain())
	}
	r = ApplyEffect(r, tx, Reverse)
	if got := r.Get(Mobile); !got.Equal(BDT(50)) {
		t.Errorf("after reverse balance = %v, want 50", got.Plain())
	}
}

func TestApplyEffect_OtherSourcesUntouched(t *testing.T) {
	r := NewRegistry().With(Card, BDT(10)).With(Loan, BDT(7))
	r = ApplyEffect(r, NewSavings(1, time.Now(), BDT(5), Cash, ""), Apply)
	if !r.Get(Card).Equal(BDT(10)) || !r.Get(Loan).Equal(BDT(7)) || !r.Get(Cash).Equal(BDT(5)) {
		t.Errorf("unexpected registry %v/%v/%v", r.Get(Card), r.Get(Loan), r.Get(Cash))
	}
}

func TestFold(t *testing.T) {
	now := time.Now()
	l := NewLedger().
		Append(NewSavings(1, now, BDT(100), Cash, "")).
		Append(NewExpense(2, now, BDT(30), Cash, Food, "")).
		Append(NewMoneyGiven(3, now, "p", BDT(20), Cash, "")).
		Append(NewMoneyReceived(4, now, "p", BDT(5), Card, ""))

	r := Fold(l)
	if got := r.Get(Cash); !got.Equal(BDT(50)) {
		t.Errorf("Fold() cash = %v, want 50", got.Plain())
	}
	if got := r.Get(Card); !got.Equal(BDT(5)) {
		t.Errorf("Fold() card = %v, want 5", got.Plain())
	}
	if got := r.Total(); !got.Equal(BDT(55)) {
		t.Errorf("Fold() total = %v, want 55", got.Plain())
	}
}

func TestNewAggregate(t *testing.T) {
	now := time.Now()
	l := NewLedger().
		Append(NewExpense(1, now, BDT(30), Cash, Food, "")).
		Append(NewExpense(2, now, BDT(10), Cash, Food, "")).
		Append(NewExpense(3, now, BDT(60), Card, Vehicle, "")).
		Append(NewSavings(4, now, BDT(500), Card, ""))
	r := NewRegistry().With(Cash, BDT(200)).With(Card, BDT(300)).With(Loan, BDT(50))

	a := NewAggregate(l, r)

	if !a.TotalBalance.Equal(BDT(550)) {
		t.Errorf("TotalBalance = %v, want 550", a.TotalBalance.Plain())
	}
	if !a.TotalExpenses.Equal(BDT(100)) {
		t.Errorf("TotalExpenses = %v, want 100", a.TotalExpenses.Plain())
	}
	if !a.NetBalance.Equal(BDT(450)) {
		t.Errorf("NetBalance = %v, want 450", a.NetBalance.Plain())
	}
	if !a.Loan.Equal(BDT(50)) {
		t.Errorf("Loan = %v, want 50", a.Loan.Plain())
	}
	if len(a.Breakdown) != len(Categories()) {
		t.Fatalf("len(Breakdown) = %d, want %d", len(a.Breakdown), len(Categories()))
	}

	food := a.Category(Food)
	if !food.Amount.Equal(BDT(40)) || food.Count != 2 || food.Percent != "40" {
		t.Errorf("Category(food) = %v/%d/%s, want 40/2/40", food.Amount.Plain(), food.Count, food.Percent)
	}
	if !food.Average().Equal(BDT(20)) {
		t.Errorf("Category(food).Average() = %v, want 20", food.Average().Plain())
	}
	if extra := a.Category(Extra); !extra.Amount.IsZero() || extra.Percent != "0" {
		t.Errorf("Category(extra) = %v/%s, want 0/0", extra.Amount.Plain(), extra.Percent)
	}
	if a.Counts[TypeExpense] != 3 || a.Counts[TypeSavings] != 1 {
		t.Errorf("Counts = %v, want 3 expenses and 1 savings", a.Counts)
	}

	var sum Money
	for _, ct := range a.Breakdown {
		sum = sum.Add(ct.Amount)
	}
	if !sum.Equal(a.TotalExpenses) {
		t.Errorf("breakdown sums to %v, want %v", sum.Plain(), a.TotalExpenses.Plain())
	}
}

func TestNewAggregate_Empty(t *testing.T) {
	a := NewAggregate(NewLedger(), NewRegistry())
	if !a.TotalExpenses.IsZero() || !a.NetBalance.IsZero() {
		t.Errorf("empty aggregate = %v/%v, want zeros", a.TotalExpenses.Plain(), a.NetBalance.Plain())
	}
	for _, ct := range a.Breakdown {
		if ct.Percent != "0" {
			t.Errorf("Percent(%s) = %s, want 0", ct.Category, ct.Percent)
		}
	}
	if !a.AverageExpense().IsZero() {
		t.Errorf("AverageExpense() = %v, want 0", a.AverageExpense().Plain())
	}
}

func TestNewPersonBalance(t *testing.T) {
	now := time.Now()
	l := NewLedger().
		Append(NewMoneyGiven(1, now, "alice", BDT(100), Cash, "")).
		Append(NewMoneyReceived(2, now, "alice", BDT(30), Cash, "")).
		Append(NewMoneyGiven(3, now, "bob", BDT(10), Cash, "")).
		Append(NewMoneyReceived(4, now, "bob", BDT(25), Cash, ""))

	testCases := []struct {
		person    PersonID
		want      float64
		owesOwner bool
	}{
		{"alice", 70, true},
		{"bob", -15, false},
		{"carol", 0, false},
	}
	for _, tc := range testCases {
		t.Run(string(tc.person), func(t *testing.T) {
			pb := NewPersonBalance(l, tc.person)
			if !pb.Balance.Equal(BDT(tc.want)) {
				t.Errorf("NewPersonBalance(%q) = %v, want %v", tc.person, pb.Balance.Plain(), tc.want)
			}
			if !pb.Balance.Equal(pb.Given.Sub(pb.Received)) {
				t.Errorf("Balance %v != Given %v - Received %v", pb.Balance, pb.Given, pb.Received)
			}
			if pb.OwesOwner() != tc.owesOwner {
				t.Errorf("OwesOwner() = %v, want %v", pb.OwesOwner(), tc.owesOwner)
			}
		})
	}
}
