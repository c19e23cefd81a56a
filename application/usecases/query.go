package usecases

import (
	"context"

	"go.uber.org/zap"

	"github.com/lb-conn/ekaer/domain"
	"github.com/lb-conn/ekaer/domain/schema"
	"github.com/lb-conn/ekaer/domain/validation"
)

// QueryTradeCard returns the trade card with the given TCN, or nil when the
// service knows none.
func (app *Application) QueryTradeCard(ctx context.Context, tcn string) (*schema.TradeCardInfo, error) {
	if tcn == "" {
		return nil, domain.NewValidationError("tcn", "trade card number is required")
	}
	if !validation.IsValidTradeCardNumber(tcn) {
		return nil, domain.NewValidationError("tcn", "%q is not a valid trade card number", tcn)
	}
	cards, err := app.query(ctx, &schema.QueryTradeCardsRequest{Tcn: tcn})
	if err != nil {
		return nil, err
	}
	if len(cards) == 0 {
		return nil, nil
	}
	return &cards[0], nil
}

// QueryTradeCards returns every trade card matching params.
func (app *Application) QueryTradeCards(ctx context.Context, params schema.QueryParams) ([]schema.TradeCardInfo, error) {
	if err := validation.ValidateQueryParams(&params, app.clock.Now()); err != nil {
		return nil, err
	}
	return app.query(ctx, &schema.QueryTradeCardsRequest{QueryParams: &params})
}

func (app *Application) query(ctx context.Context, req *schema.QueryTradeCardsRequest) ([]schema.TradeCardInfo, error) {
	requestID, err := app.envelope(req)
	if err != nil {
		return nil, err
	}
	logger := app.logger.With(zap.String("request_id", requestID), zap.String("destination", schema.QueryTradeCardsPath))

	var resp schema.QueryTradeCardsResponse
	if err := app.transport.Send(ctx, schema.QueryTradeCardsPath, req, &resp); err != nil {
		logger.Warn("query failed", zap.Error(err))
		return nil, err
	}
	if resp.Result.IsError() {
		logger.Warn("query rejected", zap.String("reason_code", resp.Result.ReasonCode))
		return nil, domain.NewServiceError(resp.Result)
	}
	logger.Debug("query processed", zap.Int("matches", len(resp.TradeCards)))
	return resp.TradeCards, nil
}
