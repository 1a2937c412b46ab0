package ingestion

import (
	"regexp"
	"strings"

	"github.com/guttosm/tradedesk/internal/domain/models"
)

var accountNumberPattern = regexp.MustCompile(`[A-Za-z]{2,}-?[0-9]{8,}`)

// ExtractAccountNumber finds the first account-number-shaped token in a filename
// ("APEX-12345678_perf.csv" -> "APEX12345678").
func ExtractAccountNumber(filename string) (string, bool) {
	m := accountNumberPattern.FindString(filename)
	if m == "" {
		return "", false
	}
	return NormalizeAccountNumber(m), true
}

// NormalizeAccountNumber uppercases and strips hyphens and spaces.
func NormalizeAccountNumber(s string) string {
	return strings.NewReplacer("-", "", " ", "").Replace(strings.ToUpper(s))
}

// AccountIndex maps normalized account numbers to known accounts.
type AccountIndex map[string]models.Account

// NewAccountIndex indexes accounts by normalized number; the first account wins on collision.
func NewAccountIndex(accounts []models.Account) AccountIndex {
	idx := make(AccountIndex, len(accounts))
	for _, a := range accounts {
		key := NormalizeAccountNumber(a.AccountNumber)
		if key == "" {
			continue
		}
		if _, dup := idx[key]; !dup {
			idx[key] = a
		}
	}
	return idx
}

// Lookup resolves a filename to an account. number is the extracted token, empty
// when the filename carries none.
func (idx AccountIndex) Lookup(filename string) (acc models.Account, number string, ok bool) {
	number, found := ExtractAccountNumber(filename)
	if !found {
		return models.Account{}, "", false
	}
	acc, ok = idx[number]
	return acc, number, ok
}
