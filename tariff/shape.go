package tariff

// Shape maps a flat tariff row into the nested client record. It is pure
// and total over any scanned row.
//
// Null source tiers become absent pricing fields and an explicit zero
// stays a present zero; collapsing the two would misreport schedules
// that genuinely price a tier at zero.
func Shape(row Row) TariffRecord {
	return TariffRecord{
		Region:           row.RegionName,
		Period:           row.PriceDate,
		ConsumptionType1: row.ConsumptionType1,
		ConsumptionType2: row.ConsumptionType2.String,
		VoltageLevel:     row.VoltageLevel,
		Pricing: PricingTiers{
			Peak:       row.Peak,
			SharpPeak:  row.SharpPeak,
			Valley:     row.Valley,
			Flat:       row.Flat,
			DeepValley: row.DeepValley,
		},
	}
}
