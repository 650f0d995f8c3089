package tariff

import (
	"fmt"
	"strings"
)

// Compile turns the optional filters into a parameterized predicate and
// its ordered bound values. Values are never interpolated into the SQL
// text. An empty predicate means the query is unrestricted; callers
// should expect such a result set to be large.
func (f QueryFilter) Compile() (string, []any, error) {
	var terms []string
	var args []any

	if f.RegionName != "" {
		args = append(args, f.RegionName)
		terms = append(terms, fmt.Sprintf("region_name = $%d", len(args)))
	}

	if f.PriceDate != "" {
		normalized, err := NormalizePriceDate(f.PriceDate)
		if err != nil {
			return "", nil, err
		}
		args = append(args, normalized)
		terms = append(terms, fmt.Sprintf("price_date = $%d", len(args)))
	}

	return strings.Join(terms, " AND "), args, nil
}
