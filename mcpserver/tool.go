package mcpserver

import (
	"context"
	"encoding/json"

	"github.com/google/uuid"
	"github.com/mark3labs/mcp-go/mcp"

	"tariffmcp/logger"
	"tariffmcp/tariff"
)

// PriceQuerier is the slice of the tariff store the endpoint needs.
// Tests substitute a stub.
type PriceQuerier interface {
	QueryPrices(ctx context.Context, filter tariff.QueryFilter) ([]tariff.TariffRecord, error)
}

// queryResponse is the success envelope.
type queryResponse struct {
	Total int                   `json:"total"`
	Data  []tariff.TariffRecord `json:"data"`
}

// errorResponse is the error envelope carried inside an MCP error result.
type errorResponse struct {
	Error   tariff.Kind `json:"error"`
	Message string      `json:"message"`
}

func queryPricesTool() mcp.Tool {
	return mcp.NewTool("query_electricity_prices",
		mcp.WithDescription("查询电价数据。当用户询问某个地区或某个时间段的电价信息时使用此工具。"+
			"支持按地区名称和日期（格式：2024年12月）进行查询。"+
			"返回的数据包括：峰谷电价、电压等级、用电类型等信息。"+
			"适用场景：查询特定地区的电价、比较不同时期的电价变化、了解峰谷电价差异等。"+
			"示例查询：查询北京2024年1月的电价、获取上海最新的峰谷电价等。"),
		mcp.WithString("region_name",
			mcp.Description("地区名称，例如：北京、上海等"),
		),
		mcp.WithString("price_date",
			mcp.Description("价格日期，格式必须为：2024年12月"),
		),
	)
}

// handleQueryPrices runs one request through the pipeline: validate
// argument shapes, query, envelope. Component failures map to error
// results keyed by their kind.
func (s *Server) handleQueryPrices(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	log := s.log.With(logger.String("request_id", uuid.NewString()))

	filter, err := parseFilter(req.GetArguments())
	if err != nil {
		log.Warn("rejected malformed arguments", logger.Error(err))
		return errorResult(err), nil
	}

	log.Info("querying electricity prices",
		logger.String("region_name", filter.RegionName),
		logger.String("price_date", filter.PriceDate))

	records, err := s.store.QueryPrices(ctx, filter)
	if err != nil {
		log.Error("tariff query failed", err)
		return errorResult(err), nil
	}
	if records == nil {
		records = []tariff.TariffRecord{}
	}

	payload, err := json.Marshal(queryResponse{Total: len(records), Data: records})
	if err != nil {
		log.Error("response encoding failed", err)
		return errorResult(err), nil
	}

	log.Info("query completed", logger.Int("total", len(records)))
	return mcp.NewToolResultText(string(payload)), nil
}

// parseFilter validates argument shapes before anything touches the
// database. A wrong value type is a validation error, not a coercion.
func parseFilter(args map[string]any) (tariff.QueryFilter, error) {
	region, err := optionalString(args, "region_name")
	if err != nil {
		return tariff.QueryFilter{}, err
	}
	date, err := optionalString(args, "price_date")
	if err != nil {
		return tariff.QueryFilter{}, err
	}
	return tariff.QueryFilter{RegionName: region, PriceDate: date}, nil
}

func optionalString(args map[string]any, key string) (string, error) {
	raw, ok := args[key]
	if !ok || raw == nil {
		return "", nil
	}
	value, ok := raw.(string)
	if !ok {
		return "", tariff.Validationf("argument %q must be a string, got %T", key, raw)
	}
	return value, nil
}

func errorResult(err error) *mcp.CallToolResult {
	kind, ok := tariff.KindOf(err)
	if !ok {
		kind = tariff.KindQuery
	}
	payload, marshalErr := json.Marshal(errorResponse{Error: kind, Message: err.Error()})
	if marshalErr != nil {
		return mcp.NewToolResultError(err.Error())
	}
	return mcp.NewToolResultError(string(payload))
}
