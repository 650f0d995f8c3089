package mcpserver

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tariffmcp/logger"
	"tariffmcp/tariff"
)

// stubQuerier records the filter it saw and replays canned results.
type stubQuerier struct {
	records    []tariff.TariffRecord
	err        error
	calls      int
	lastFilter tariff.QueryFilter
}

func (s *stubQuerier) QueryPrices(ctx context.Context, filter tariff.QueryFilter) ([]tariff.TariffRecord, error) {
	s.calls++
	s.lastFilter = filter
	if s.err != nil {
		return nil, s.err
	}
	// Re-run the real compiler so normalization failures behave as in
	// production.
	if _, _, err := filter.Compile(); err != nil {
		return nil, err
	}
	return s.records, nil
}

func beijingRecord() tariff.TariffRecord {
	return tariff.Shape(tariff.Row{
		RegionName:       "北京",
		PriceDate:        "2024-01",
		ConsumptionType1: "大工业用电",
		ConsumptionType2: sql.NullString{String: "两部制", Valid: true},
		VoltageLevel:     "1-10千伏",
		Peak:             decimal.RequireFromString("1.0823"),
		SharpPeak:        decimal.NullDecimal{Decimal: decimal.RequireFromString("1.2988"), Valid: true},
		Valley:           decimal.RequireFromString("0.3158"),
		Flat:             decimal.RequireFromString("0.6990"),
	})
}

func callTool(t *testing.T, srv *Server, args map[string]any) *mcp.CallToolResult {
	t.Helper()
	req := mcp.CallToolRequest{}
	req.Params.Name = "query_electricity_prices"
	req.Params.Arguments = args

	result, err := srv.handleQueryPrices(context.Background(), req)
	require.NoError(t, err)
	require.NotNil(t, result)
	return result
}

func resultText(t *testing.T, result *mcp.CallToolResult) string {
	t.Helper()
	require.NotEmpty(t, result.Content)
	switch c := result.Content[0].(type) {
	case mcp.TextContent:
		return c.Text
	case *mcp.TextContent:
		return c.Text
	default:
		t.Fatalf("unexpected content type %T", result.Content[0])
		return ""
	}
}

func TestHandleQueryPrices(t *testing.T) {
	t.Run("matching row returns a one-record envelope", func(t *testing.T) {
		stub := &stubQuerier{records: []tariff.TariffRecord{beijingRecord()}}
		srv := New(stub, logger.NewNoop())

		result := callTool(t, srv, map[string]any{
			"region_name": "北京",
			"price_date":  "2024年01月",
		})
		assert.False(t, result.IsError)

		var envelope struct {
			Total int                   `json:"total"`
			Data  []tariff.TariffRecord `json:"data"`
		}
		require.NoError(t, json.Unmarshal([]byte(resultText(t, result)), &envelope))
		assert.Equal(t, 1, envelope.Total)
		require.Len(t, envelope.Data, 1)
		assert.Equal(t, "北京", envelope.Data[0].Region)
		assert.Equal(t, "2024-01", envelope.Data[0].Period)

		assert.Equal(t, tariff.QueryFilter{RegionName: "北京", PriceDate: "2024年01月"}, stub.lastFilter)
	})

	t.Run("no filters on an empty dataset yields total zero and an empty list", func(t *testing.T) {
		srv := New(&stubQuerier{}, logger.NewNoop())

		result := callTool(t, srv, map[string]any{})
		assert.False(t, result.IsError)

		text := resultText(t, result)
		assert.JSONEq(t, `{"total":0,"data":[]}`, text)
		// data must be a list, never null.
		assert.NotContains(t, text, "null")
	})

	t.Run("unparseable price_date is a loud validation error", func(t *testing.T) {
		srv := New(&stubQuerier{records: []tariff.TariffRecord{beijingRecord()}}, logger.NewNoop())

		result := callTool(t, srv, map[string]any{"price_date": "无效日期"})
		require.True(t, result.IsError)

		var envelope struct {
			Error   string `json:"error"`
			Message string `json:"message"`
		}
		require.NoError(t, json.Unmarshal([]byte(resultText(t, result)), &envelope))
		assert.Equal(t, string(tariff.KindValidation), envelope.Error)
		assert.NotEmpty(t, envelope.Message)
	})

	t.Run("wrong argument type is rejected before the store is touched", func(t *testing.T) {
		stub := &stubQuerier{}
		srv := New(stub, logger.NewNoop())

		result := callTool(t, srv, map[string]any{"region_name": 42})
		require.True(t, result.IsError)
		assert.Zero(t, stub.calls)

		var envelope struct {
			Error string `json:"error"`
		}
		require.NoError(t, json.Unmarshal([]byte(resultText(t, result)), &envelope))
		assert.Equal(t, string(tariff.KindValidation), envelope.Error)
	})

	t.Run("connection failure surfaces as an error envelope", func(t *testing.T) {
		stub := &stubQuerier{err: &tariff.Error{
			Kind: tariff.KindConnection,
			Msg:  "database unavailable",
			Err:  errors.New("dial tcp: connection refused"),
		}}
		srv := New(stub, logger.NewNoop())

		result := callTool(t, srv, map[string]any{"region_name": "北京"})
		require.True(t, result.IsError)

		var envelope struct {
			Error   string `json:"error"`
			Message string `json:"message"`
		}
		require.NoError(t, json.Unmarshal([]byte(resultText(t, result)), &envelope))
		assert.Equal(t, string(tariff.KindConnection), envelope.Error)
		assert.Contains(t, envelope.Message, "database unavailable")
	})

	t.Run("unclassified failures default to the query kind", func(t *testing.T) {
		srv := New(&stubQuerier{err: errors.New("boom")}, logger.NewNoop())

		result := callTool(t, srv, map[string]any{})
		require.True(t, result.IsError)

		var envelope struct {
			Error string `json:"error"`
		}
		require.NoError(t, json.Unmarshal([]byte(resultText(t, result)), &envelope))
		assert.Equal(t, string(tariff.KindQuery), envelope.Error)
	})

	t.Run("identical requests produce identical envelopes", func(t *testing.T) {
		stub := &stubQuerier{records: []tariff.TariffRecord{beijingRecord()}}
		srv := New(stub, logger.NewNoop())

		first := resultText(t, callTool(t, srv, map[string]any{"region_name": "北京"}))
		second := resultText(t, callTool(t, srv, map[string]any{"region_name": "北京"}))
		assert.Equal(t, first, second)
		assert.Equal(t, 2, stub.calls)
	})

	t.Run("a failed request does not poison the next one", func(t *testing.T) {
		stub := &stubQuerier{records: []tariff.TariffRecord{beijingRecord()}}
		srv := New(stub, logger.NewNoop())

		bad := callTool(t, srv, map[string]any{"price_date": "无效日期"})
		require.True(t, bad.IsError)

		good := callTool(t, srv, map[string]any{"region_name": "北京"})
		assert.False(t, good.IsError)
	})
}
