package tariff

import (
	"context"
	"strings"

	"tariffmcp/db"
	"tariffmcp/logger"
)

// baseQuery projects every column needed to build a TariffRecord. The
// fixed ordering keeps identical requests returning identical envelopes.
const baseQuery = `
	SELECT region_name, price_date,
	       electricity_type1_desc, electricity_type2_desc, voltage_level_desc,
	       peak_price, sharp_peak_price, valley_price, normal_price, deep_valley_price
	FROM electricity_prices`

const baseOrder = ` ORDER BY region_name, price_date, voltage_level_desc, electricity_type1_desc`

// Store executes tariff queries through the connection pool.
type Store struct {
	pool *db.Pool
	log  logger.Logger
}

// NewStore returns a store bound to the given pool.
func NewStore(pool *db.Pool, log logger.Logger) *Store {
	return &Store{pool: pool, log: log}
}

// QueryPrices compiles the filter, runs it against the tariff table and
// returns the shaped records. The borrowed connection is released on
// every exit path.
func (s *Store) QueryPrices(ctx context.Context, filter QueryFilter) ([]TariffRecord, error) {
	predicate, args, err := filter.Compile()
	if err != nil {
		return nil, err
	}
	query := buildQuery(predicate)

	s.log.Debug("executing tariff query",
		logger.String("query", strings.Join(strings.Fields(query), " ")),
		logger.Any("args", args))

	conn, err := s.pool.Acquire(ctx)
	if err != nil {
		return nil, connectionErr("database unavailable", err)
	}
	defer s.pool.Release(conn)

	rows, err := conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, queryErr("tariff query failed", err)
	}
	defer rows.Close()

	var records []TariffRecord
	for rows.Next() {
		var row Row
		if err := rows.Scan(
			&row.RegionName,
			&row.PriceDate,
			&row.ConsumptionType1,
			&row.ConsumptionType2,
			&row.VoltageLevel,
			&row.Peak,
			&row.SharpPeak,
			&row.Valley,
			&row.Flat,
			&row.DeepValley,
		); err != nil {
			return nil, queryErr("tariff row scan failed", err)
		}
		records = append(records, Shape(row))
	}
	if err := rows.Err(); err != nil {
		return nil, queryErr("tariff result iteration failed", err)
	}

	return records, nil
}

func buildQuery(predicate string) string {
	if predicate == "" {
		return baseQuery + baseOrder
	}
	return baseQuery + " WHERE " + predicate + baseOrder
}
