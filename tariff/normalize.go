package tariff

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// priceDatePattern is the one accepted billing-month format, e.g.
// "2024年01月" or "2024年1月". Nothing else is guessed at; any other
// shape is a validation error.
var priceDatePattern = regexp.MustCompile(`^(\d{4})年(\d{1,2})月$`)

// NormalizePriceDate converts a localized billing-month expression into
// the canonical "YYYY-MM" form the price_date column stores. Surrounding
// whitespace is tolerated.
func NormalizePriceDate(raw string) (string, error) {
	trimmed := strings.TrimSpace(raw)
	m := priceDatePattern.FindStringSubmatch(trimmed)
	if m == nil {
		return "", Validationf("price_date %q is not in the expected YYYY年MM月 format", raw)
	}

	month, err := strconv.Atoi(m[2])
	if err != nil || month < 1 || month > 12 {
		return "", Validationf("price_date %q has an invalid month", raw)
	}

	return fmt.Sprintf("%s-%02d", m[1], month), nil
}
