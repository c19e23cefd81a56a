package usecases

import (
	"context"
	"fmt"

	"github.com/lb-conn/ekaer/domain"
	"github.com/lb-conn/ekaer/domain/schema"
	"github.com/lb-conn/ekaer/domain/validation"
)

// DeleteRequest names a trade card to delete and why.
type DeleteRequest struct {
	Tcn    string
	Reason string
}

// CreateTradeCards validates every card locally and submits them as one
// batch. The first local violation aborts the whole submission.
func (app *Application) CreateTradeCards(ctx context.Context, cards []schema.TradeCard) (BatchResult, error) {
	for i := range cards {
		if err := validation.ValidateTradeCard(&cards[i]); err != nil {
			return BatchResult{}, indexed(i, err)
		}
	}
	results, err := app.submit(ctx, schema.ManageTradeCardsPath, operations(schema.OperationCreate, cards))
	if err != nil {
		return BatchResult{}, err
	}
	return partition(results), nil
}

// CreateTradeCard creates a single trade card and returns it with its TCN.
func (app *Application) CreateTradeCard(ctx context.Context, card schema.TradeCard) (*schema.TradeCardInfo, error) {
	result, err := app.CreateTradeCards(ctx, []schema.TradeCard{card})
	if err != nil {
		return nil, err
	}
	return single(result)
}

// ModifyTradeCards submits changed trade cards. Each card must carry its TCN.
func (app *Application) ModifyTradeCards(ctx context.Context, cards []schema.TradeCard) (BatchResult, error) {
	for i := range cards {
		if err := requireTcn(cards[i].Tcn); err != nil {
			return BatchResult{}, indexed(i, err)
		}
		if err := validation.ValidateTradeCard(&cards[i]); err != nil {
			return BatchResult{}, indexed(i, err)
		}
	}
	results, err := app.submit(ctx, schema.ManageTradeCardsPath, operations(schema.OperationModify, cards))
	if err != nil {
		return BatchResult{}, err
	}
	return partition(results), nil
}

func (app *Application) ModifyTradeCard(ctx context.Context, card schema.TradeCard) (*schema.TradeCardInfo, error) {
	result, err := app.ModifyTradeCards(ctx, []schema.TradeCard{card})
	if err != nil {
		return nil, err
	}
	return single(result)
}

// FinalizeTradeCards closes the trade cards with the given TCNs.
func (app *Application) FinalizeTradeCards(ctx context.Context, tcns []string) (BatchResult, error) {
	ops := make([]schema.TradeCardOperation, 0, len(tcns))
	for i, tcn := range tcns {
		if err := requireTcn(tcn); err != nil {
			return BatchResult{}, indexed(i, err)
		}
		ops = append(ops, schema.TradeCardOperation{Index: i, Operation: schema.OperationFinalize, Tcn: tcn})
	}
	results, err := app.submit(ctx, schema.ManageTradeCardsPath, ops)
	if err != nil {
		return BatchResult{}, err
	}
	return partition(results), nil
}

func (app *Application) FinalizeTradeCard(ctx context.Context, tcn string) (*schema.TradeCardInfo, error) {
	result, err := app.FinalizeTradeCards(ctx, []string{tcn})
	if err != nil {
		return nil, err
	}
	return single(result)
}

// DeleteTradeCards deletes trade cards and returns one result per request,
// in request order.
func (app *Application) DeleteTradeCards(ctx context.Context, requests []DeleteRequest) ([]schema.TradeCardOperationResult, error) {
	ops := make([]schema.TradeCardOperation, 0, len(requests))
	for i, req := range requests {
		if err := requireTcn(req.Tcn); err != nil {
			return nil, indexed(i, err)
		}
		ops = append(ops, schema.TradeCardOperation{
			Index:                     i,
			Operation:                 schema.OperationDelete,
			Tcn:                       req.Tcn,
			StatusChangeModReasonText: req.Reason,
		})
	}
	return app.submit(ctx, schema.ManageTradeCardsPath, ops)
}

// DeleteTradeCard reports whether the trade card was deleted. When it was
// not, message holds the service's explanation.
func (app *Application) DeleteTradeCard(ctx context.Context, tcn, reason string) (bool, string, error) {
	results, err := app.DeleteTradeCards(ctx, []DeleteRequest{{Tcn: tcn, Reason: reason}})
	if err != nil {
		return false, "", err
	}
	if len(results) == 0 {
		return false, "", nil
	}
	first := results[0]
	return !first.Result.IsError(), first.Result.Msg, nil
}

// ValidateTradeCards asks the service to validate cards without storing
// them. The results say what a create would have answered.
func (app *Application) ValidateTradeCards(ctx context.Context, cards []schema.TradeCard) ([]schema.TradeCardOperationResult, error) {
	return app.submit(ctx, schema.ValidateTradeCardsPath, operations(schema.OperationCreate, cards))
}

// ValidateTradeCard returns the remote validation result of a single card.
func (app *Application) ValidateTradeCard(ctx context.Context, card schema.TradeCard) (*schema.TradeCardOperationResult, error) {
	results, err := app.ValidateTradeCards(ctx, []schema.TradeCard{card})
	if err != nil {
		return nil, err
	}
	if len(results) == 0 {
		return nil, nil
	}
	return &results[0], nil
}

func requireTcn(tcn string) error {
	if tcn == "" {
		return domain.NewValidationError("tcn", "trade card number is required")
	}
	if !validation.IsValidTradeCardNumber(tcn) {
		return domain.NewValidationError("tcn", "%q is not a valid trade card number", tcn)
	}
	return nil
}

// indexed prefixes the field of a validation error with the batch position.
func indexed(index int, err error) error {
	if verr, ok := err.(*domain.ValidationError); ok {
		return &domain.ValidationError{Field: fmt.Sprintf("[%d].%s", index, verr.Field), Message: verr.Message}
	}
	return err
}
