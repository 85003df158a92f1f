package renderer

import "github.com/etnz/fintrack"

// Person is the loan position with one counterparty.
type Person struct {
	Person  fintrack.Person
	Balance fintrack.PersonBalance
}

// Owed is what the owner owes the person, when the balance is negative.
func (p *Person) Owed() fintrack.Money { return p.Balance.Balance.Neg() }

func RenderPerson(p *Person) string {
	return renderTemplate("person", "person.md", nil, p)
}
