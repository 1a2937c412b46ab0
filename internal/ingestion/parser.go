package ingestion

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"time"
	"unicode"

	"github.com/go-playground/validator/v10"
	"github.com/guttosm/tradedesk/internal/domain/models"
	"github.com/shopspring/decimal"
)

// timestampLayout matches the vendor's "MM/DD/YYYY HH:MM:SS" (leading zeros optional).
const timestampLayout = "1/2/2006 15:04:05"

// minRowFields is the fewest comma-separated fields a data row may carry.
const minRowFields = 10

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// SplitLine splits one raw CSV line on commas and trims every field.
// Quoting is not supported: a comma inside a field always splits it.
func SplitLine(line string) []string {
	parts := strings.Split(line, ",")
	for i, p := range parts {
		parts[i] = strings.TrimSpace(p)
	}
	return parts
}

// splitLines breaks file content into lines, dropping a UTF-8 BOM,
// carriage returns and blank lines.
func splitLines(content string) []string {
	content = strings.TrimPrefix(content, "\ufeff")
	raw := strings.Split(content, "\n")
	lines := make([]string, 0, len(raw))
	for _, l := range raw {
		l = strings.TrimRight(l, "\r")
		if strings.TrimSpace(l) == "" {
			continue
		}
		lines = append(lines, l)
	}
	return lines
}

// ParseCurrency converts broker currency text into a signed amount.
//
// Currency symbols, thousands separators and whitespace are dropped. The value is
// negative when a '-' or '(' appears anywhere in the text: "($50.00)" and "-$50.00"
// both yield -50. Empty input yields zero.
func ParseCurrency(s string) (decimal.Decimal, error) {
	cleaned := strings.Map(func(r rune) rune {
		switch r {
		case '$', '€', '£', '¥', ',':
			return -1
		}
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, s)

	negative := strings.ContainsAny(cleaned, "-(")
	magnitude := strings.Map(func(r rune) rune {
		switch r {
		case '(', ')', '-':
			return -1
		}
		return r
	}, cleaned)

	if magnitude == "" {
		return decimal.Zero, nil
	}
	v, err := decimal.NewFromString(magnitude)
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid currency %q", s)
	}
	if negative {
		v = v.Neg()
	}
	return v, nil
}

// ParseTimestamp parses "MM/DD/YYYY HH:MM:SS" as UTC.
//
// Malformed input never fails the row: when the text does not split into exactly
// a date and a time on a single space, or either part does not parse, now() is used.
func ParseTimestamp(s string, now func() time.Time) time.Time {
	parts := strings.Split(strings.TrimSpace(s), " ")
	if len(parts) != 2 {
		return now().UTC()
	}
	t, err := time.ParseInLocation(timestampLayout, parts[0]+" "+parts[1], time.UTC)
	if err != nil {
		return now().UTC()
	}
	return t
}

// parseDecimal reads a plain numeric column; empty becomes zero.
func parseDecimal(field, s string) (decimal.Decimal, error) {
	s = strings.ReplaceAll(strings.TrimSpace(s), ",", "")
	if s == "" {
		return decimal.Zero, nil
	}
	v, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid %s %q", field, s)
	}
	return v, nil
}

// identityKey is the per-account de-duplication key of a row.
func identityKey(fields []string, cols ColumnMap) string {
	return cols.Get(fields, ColBuyFillID) + "-" + cols.Get(fields, ColSellFillID)
}

// rowToTrade converts one split data row into a closed Trade.
//
// Entry is the buy price and exit the sell price; the trade is a Sell when
// exit < entry and a Buy otherwise.
func rowToTrade(fields []string, cols ColumnMap, now func() time.Time) (models.Trade, error) {
	var t models.Trade
	if len(fields) < minRowFields {
		return t, fmt.Errorf("expected at least %d columns, got %d", minRowFields, len(fields))
	}

	entry, err := parseDecimal(ColBuyPrice, cols.Get(fields, ColBuyPrice))
	if err != nil {
		return t, err
	}
	exit, err := parseDecimal(ColSellPrice, cols.Get(fields, ColSellPrice))
	if err != nil {
		return t, err
	}
	pnl, err := ParseCurrency(cols.Get(fields, ColPnL))
	if err != nil {
		return t, err
	}

	t.IdentityKey = identityKey(fields, cols)
	t.Symbol = cols.Get(fields, ColSymbol)
	t.EntryPrice = entry
	t.ExitPrice = exit
	t.TradeType = models.TradeTypeBuy
	if exit.LessThan(entry) {
		t.TradeType = models.TradeTypeSell
	}
	t.PositionSize = cols.Get(fields, ColQty)
	t.PnL = pnl
	t.OpenedAt = ParseTimestamp(cols.Get(fields, ColBoughtTimestamp), now)
	t.ClosedAt = ParseTimestamp(cols.Get(fields, ColSoldTimestamp), now)
	t.Duration = cols.Get(fields, ColDuration)
	t.Status = models.TradeStatusClosed

	if err := validate.Struct(t); err != nil {
		return t, validationError(err)
	}
	return t, nil
}

// validationError flattens validator output into "field: tag" pairs.
func validationError(err error) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msgs = append(msgs, fmt.Sprintf("%s: %s", fe.Field(), fe.Tag()))
	}
	return fmt.Errorf("invalid trade (%s)", strings.Join(msgs, ", "))
}
