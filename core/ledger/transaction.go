// Package ledger owns the transaction collection: the record model, its
// validation rules, and the store contract over a single snapshot.
package ledger

import (
	"fmt"
	"strconv"
	"strings"
)

// Type discriminates the two transaction kinds.
type Type string

const (
	// Income marks money entering the ledger.
	Income Type = "INCOME"
	// Expense marks money leaving the ledger.
	Expense Type = "EXPENSE"
)

// Category labels a transaction within its type. The valid value set is a
// function of Type; see CategoriesFor.
type Category string

// Income categories.
const (
	CatSalary      Category = "SALARY"
	CatInvestments Category = "INVESTMENTS"
	CatSales       Category = "SALES"
	CatPrizes      Category = "PRIZES"
)

// Expense categories.
const (
	CatHealth         Category = "HEALTH"
	CatFood           Category = "FOOD"
	CatEducation      Category = "EDUCATION"
	CatEntertainment  Category = "ENTERTAINMENT"
	CatServices       Category = "SERVICES"
	CatGifts          Category = "GIFTS AND DONATIONS"
	CatTransportation Category = "TRANSPORTATION"
	CatShopping       Category = "SHOPPING"
)

var incomeCategories = []Category{CatSalary, CatInvestments, CatSales, CatPrizes}

var expenseCategories = []Category{
	CatHealth, CatFood, CatEducation, CatEntertainment,
	CatServices, CatGifts, CatTransportation, CatShopping,
}

// CategoriesFor returns the valid category set for a type. Any type other
// than Income resolves to the expense set, mirroring the menu fallback of
// the dialogue flow.
func CategoriesFor(t Type) []Category {
	if t == Income {
		return append([]Category(nil), incomeCategories...)
	}
	return append([]Category(nil), expenseCategories...)
}

// ValidCategory reports whether c belongs to the set permitted by t.
func ValidCategory(t Type, c Category) bool {
	for _, allowed := range CategoriesFor(t) {
		if allowed == c {
			return true
		}
	}
	return false
}

// Transaction is a single persisted ledger record. Value is stored in
// currency minor units (cents).
type Transaction struct {
	ID        int64    `json:"id" db:"id"`
	CreatedAt string   `json:"created_at" db:"created_at"`
	Title     string   `json:"title" db:"title"`
	Type      Type     `json:"type" db:"type"`
	Category  Category `json:"category" db:"category"`
	Value     int64    `json:"value" db:"value"`
}

// Validate checks the full-record invariant: all fields populated, title and
// value in bounds, category permitted by type.
func (t Transaction) Validate() error {
	if t.ID <= 0 {
		return fmt.Errorf("transaction: id must be positive, got %d", t.ID)
	}
	if t.CreatedAt == "" {
		return fmt.Errorf("transaction %d: created_at is empty", t.ID)
	}
	if _, err := NormalizeTitle(t.Title); err != nil {
		return fmt.Errorf("transaction %d: %w", t.ID, err)
	}
	if t.Type != Income && t.Type != Expense {
		return fmt.Errorf("transaction %d: unknown type %q", t.ID, t.Type)
	}
	if !ValidCategory(t.Type, t.Category) {
		return fmt.Errorf("transaction %d: category %q not allowed for type %s", t.ID, t.Category, t.Type)
	}
	if err := ValidateValue(t.Value); err != nil {
		return fmt.Errorf("transaction %d: %w", t.ID, err)
	}
	return nil
}

// Title and value bounds.
const (
	TitleMinLen = 4
	TitleMaxLen = 32
	ValueMin    = 100
	ValueMax    = 9_999_999_999
)

// NormalizeTitle validates the raw title length and returns it uppercased.
func NormalizeTitle(raw string) (string, error) {
	n := len([]rune(raw))
	if n < TitleMinLen || n > TitleMaxLen {
		return "", fmt.Errorf("title length %d outside [%d, %d]", n, TitleMinLen, TitleMaxLen)
	}
	return strings.ToUpper(raw), nil
}

// ParseValue coerces free text into a minor-unit amount and bounds-checks it.
func ParseValue(raw string) (int64, error) {
	v, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("value %q is not an integer", raw)
	}
	if err := ValidateValue(v); err != nil {
		return 0, err
	}
	return v, nil
}

// ValidateValue bounds-checks a minor-unit amount.
func ValidateValue(v int64) error {
	if v < ValueMin || v > ValueMax {
		return fmt.Errorf("value %d outside [%d, %d]", v, ValueMin, ValueMax)
	}
	return nil
}
