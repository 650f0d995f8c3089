// Package tariff implements the electricity tariff query pipeline:
// optional client filters are compiled into a parameterized predicate,
// executed against the tariff table through the connection pool, and the
// flat rows are shaped into the nested records returned to clients.
package tariff

import (
	"database/sql"

	"github.com/shopspring/decimal"
)

// TariffRecord is the unit returned to clients. Field labels follow the
// published tool contract, grouping the five time-of-use tiers under one
// pricing object.
type TariffRecord struct {
	Region           string       `json:"地区"`
	Period           string       `json:"日期"`
	ConsumptionType1 string       `json:"用电类型1"`
	ConsumptionType2 string       `json:"用电类型2"`
	VoltageLevel     string       `json:"电压等级"`
	Pricing          PricingTiers `json:"电价信息"`
}

// PricingTiers carries the time-of-use rates. Sharp-peak and deep-valley
// tiers are optional per regional policy: a schedule without them
// serializes the tier as null, while a zero-priced tier stays an
// explicit zero.
type PricingTiers struct {
	Peak       decimal.Decimal     `json:"峰时电价"`
	SharpPeak  decimal.NullDecimal `json:"尖峰电价"`
	Valley     decimal.Decimal     `json:"谷时电价"`
	Flat       decimal.Decimal     `json:"平时电价"`
	DeepValley decimal.NullDecimal `json:"深谷电价"`
}

// QueryFilter holds the optional request filters. An empty string means
// the filter is absent and contributes no predicate term.
type QueryFilter struct {
	RegionName string
	PriceDate  string
}

// Row is one flat row of the tariff projection as stored. Nullable
// columns keep their SQL null-ness so shaping can tell an absent tier
// from a zero-priced one.
type Row struct {
	RegionName       string
	PriceDate        string
	ConsumptionType1 string
	ConsumptionType2 sql.NullString
	VoltageLevel     string
	Peak             decimal.Decimal
	SharpPeak        decimal.NullDecimal
	Valley           decimal.Decimal
	Flat             decimal.Decimal
	DeepValley       decimal.NullDecimal
}
