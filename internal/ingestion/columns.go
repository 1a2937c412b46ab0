package ingestion

import "strings"

// Canonical column names of the supported vendor export, in the vendor's default order.
const (
	ColSymbol          = "symbol"
	ColPriceFormat     = "_priceFormat"
	ColPriceFormatType = "_priceFormatType"
	ColTickSize        = "_tickSize"
	ColBuyFillID       = "buyFillId"
	ColSellFillID      = "sellFillId"
	ColQty             = "qty"
	ColBuyPrice        = "buyPrice"
	ColSellPrice       = "sellPrice"
	ColPnL             = "pnl"
	ColBoughtTimestamp = "boughtTimestamp"
	ColSoldTimestamp   = "soldTimestamp"
	ColDuration        = "duration"
)

var canonicalColumns = []string{
	ColSymbol,
	ColPriceFormat,
	ColPriceFormatType,
	ColTickSize,
	ColBuyFillID,
	ColSellFillID,
	ColQty,
	ColBuyPrice,
	ColSellPrice,
	ColPnL,
	ColBoughtTimestamp,
	ColSoldTimestamp,
	ColDuration,
}

// minHeaderMatches is how many canonical names the header must contain
// before it is trusted over the default column order.
const minHeaderMatches = 8

// ColumnMap maps canonical column names to positions in a row.
type ColumnMap struct {
	index      map[string]int
	Positional bool // true when the header was not trusted
}

// Get returns the trimmed field for name, or "" when the column is unmapped
// or beyond the end of the row.
func (m ColumnMap) Get(fields []string, name string) string {
	i, ok := m.index[name]
	if !ok || i < 0 || i >= len(fields) {
		return ""
	}
	return fields[i]
}

// Index returns the resolved position of name.
func (m ColumnMap) Index(name string) (int, bool) {
	i, ok := m.index[name]
	return i, ok
}

// ResolveColumns maps the canonical columns onto header positions by
// case-insensitive, whitespace-stripped exact match. When fewer than
// minHeaderMatches names are found, the partial map is discarded and
// canonical column i is read from position i.
func ResolveColumns(header []string) ColumnMap {
	positions := make(map[string]int, len(header))
	for i, h := range header {
		key := normalizeHeader(h)
		if _, seen := positions[key]; !seen {
			positions[key] = i
		}
	}

	index := make(map[string]int, len(canonicalColumns))
	for _, name := range canonicalColumns {
		if i, ok := positions[normalizeHeader(name)]; ok {
			index[name] = i
		}
	}
	if len(index) >= minHeaderMatches {
		return ColumnMap{index: index}
	}

	for i, name := range canonicalColumns {
		index[name] = i
	}
	return ColumnMap{index: index, Positional: true}
}

func normalizeHeader(s string) string {
	return strings.ToLower(strings.Join(strings.Fields(s), ""))
}
