package usecases

import (
	"context"
	"fmt"
	"sort"

	"go.uber.org/zap"

	"github.com/lb-conn/ekaer/domain"
	"github.com/lb-conn/ekaer/domain/schema"
)

// BatchResult splits the per-item results of an accepted batch. Both sets
// keep the index of the submitted item; an item is in exactly one of them.
type BatchResult struct {
	Succeeded []schema.TradeCardOperationResult
	Failed    []schema.TradeCardOperationResult
}

// TradeCards returns the trade card info of every succeeded item that carried one.
func (r BatchResult) TradeCards() []schema.TradeCardInfo {
	cards := make([]schema.TradeCardInfo, 0, len(r.Succeeded))
	for _, item := range r.Succeeded {
		if item.TradeCardInfo != nil {
			cards = append(cards, *item.TradeCardInfo)
		}
	}
	return cards
}

// FirstError returns the ServiceError of the first failed item, or nil.
func (r BatchResult) FirstError() error {
	if len(r.Failed) == 0 {
		return nil
	}
	return domain.NewItemServiceError(r.Failed[0])
}

// partition splits results on their function code.
func partition(results []schema.TradeCardOperationResult) BatchResult {
	var out BatchResult
	for _, item := range results {
		if item.Result.IsError() {
			out.Failed = append(out.Failed, item)
		} else {
			out.Succeeded = append(out.Succeeded, item)
		}
	}
	return out
}

// envelope signs req with a fresh header and user block.
func (app *Application) envelope(req schema.Enveloped) (string, error) {
	header, user, err := app.signer.Envelope()
	if err != nil {
		return "", fmt.Errorf("failed to build request envelope: %w", err)
	}
	req.SetEnvelope(header, user)
	return header.RequestID, nil
}

// submit sends one batch to destination and returns its per-item results,
// ordered by index. A batch rejected as a whole is a ServiceError.
func (app *Application) submit(ctx context.Context, destination string, ops []schema.TradeCardOperation) ([]schema.TradeCardOperationResult, error) {
	if len(ops) == 0 {
		return nil, domain.NewValidationError("tradeCardOperations", "at least one operation is required")
	}
	req := &schema.ManageTradeCardsRequest{TradeCardOperations: ops}
	requestID, err := app.envelope(req)
	if err != nil {
		return nil, err
	}
	logger := app.logger.With(
		zap.String("request_id", requestID),
		zap.String("destination", destination),
		zap.String("operation", string(ops[0].Operation)),
		zap.Int("items", len(ops)))
	logger.Debug("submitting batch")

	var resp schema.ManageTradeCardsResponse
	if err := app.transport.Send(ctx, destination, req, &resp); err != nil {
		logger.Warn("batch failed", zap.Error(err))
		return nil, err
	}
	if resp.Result.IsError() {
		serviceErr := domain.NewServiceError(resp.Result)
		logger.Warn("batch rejected",
			zap.String("reason_code", serviceErr.ReasonCode),
			zap.String("message", serviceErr.Message))
		return nil, serviceErr
	}

	results, err := correlate(len(ops), resp.TradeCardOperationsResults)
	if err != nil {
		logger.Warn("uncorrelated batch response", zap.Error(err))
		return nil, &domain.TransportError{StatusCode: 200, Err: err}
	}
	outcome := partition(results)
	logger.Info("batch processed",
		zap.Int("succeeded", len(outcome.Succeeded)),
		zap.Int("failed", len(outcome.Failed)))
	return results, nil
}

// correlate checks that every submitted index has exactly one result and
// orders the results by index.
func correlate(submitted int, results []schema.TradeCardOperationResult) ([]schema.TradeCardOperationResult, error) {
	seen := make(map[int]bool, len(results))
	for _, item := range results {
		if item.Index < 0 || item.Index >= submitted {
			return nil, fmt.Errorf("result index %d does not match any of the %d submitted items", item.Index, submitted)
		}
		if seen[item.Index] {
			return nil, fmt.Errorf("duplicate result for index %d", item.Index)
		}
		seen[item.Index] = true
	}
	if len(seen) != submitted {
		return nil, fmt.Errorf("got %d results for %d submitted items", len(seen), submitted)
	}
	ordered := append([]schema.TradeCardOperationResult(nil), results...)
	sort.Slice(ordered, func(i, j int) bool {
		return ordered[i].Index < ordered[j].Index
	})
	return ordered, nil
}

// operations indexes cards in submission order under op.
func operations(op schema.OperationType, cards []schema.TradeCard) []schema.TradeCardOperation {
	ops := make([]schema.TradeCardOperation, 0, len(cards))
	for i := range cards {
		card := cards[i]
		ops = append(ops, schema.TradeCardOperation{
			Index:     i,
			Operation: op,
			TradeCard: &card,
		})
	}
	return ops
}

// single unwraps the outcome of a one-item batch.
func single(result BatchResult) (*schema.TradeCardInfo, error) {
	if err := result.FirstError(); err != nil {
		return nil, err
	}
	cards := result.TradeCards()
	if len(cards) == 0 {
		return nil, nil
	}
	return &cards[0], nil
}
