package usecases

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lb-conn/ekaer/domain"
	"github.com/lb-conn/ekaer/domain/schema"
)

func TestQueryTradeCard(t *testing.T) {
	app, transport := newTestApplication(t, queryResponse(result(schema.FunctionCodeOK, "", ""), "E1234567890123"))

	card, err := app.QueryTradeCard(context.Background(), "E1234567890123")
	require.NoError(t, err)
	require.NotNil(t, card)
	assert.Equal(t, "E1234567890123", card.Tcn)
	assert.Equal(t, schema.TradeCardStatusFinalized, card.Status)

	require.Len(t, transport.calls, 1)
	call := transport.calls[0]
	assert.Equal(t, schema.QueryTradeCardsPath, call.destination)
	assert.Contains(t, call.body, "<QueryTradeCardsRequest xmlns=\"http://schemas.nav.gov.hu/EKAER/1.0/management\">")
	assert.Contains(t, call.body, "<tcn>E1234567890123</tcn>")
	assert.NotContains(t, call.body, "queryParams")
}

func TestQueryTradeCard_NotFound(t *testing.T) {
	app, _ := newTestApplication(t, queryResponse(result(schema.FunctionCodeOK, "", "")))

	card, err := app.QueryTradeCard(context.Background(), "E1234567890123")
	assert.NoError(t, err)
	assert.Nil(t, card)
}

func TestQueryTradeCard_InvalidTcn(t *testing.T) {
	app, transport := newTestApplication(t)

	for _, tcn := range []string{"", "e-1"} {
		_, err := app.QueryTradeCard(context.Background(), tcn)
		var verr *domain.ValidationError
		require.True(t, errors.As(err, &verr), "tcn %q", tcn)
		assert.Equal(t, "tcn", verr.Field)
	}
	assert.Empty(t, transport.calls)
}

func TestQueryTradeCard_Rejected(t *testing.T) {
	app, _ := newTestApplication(t, queryResponse(result(schema.FunctionCodeError, "INVALID_REQUEST_SIGNATURE", "Hibás aláírás")))

	_, err := app.QueryTradeCard(context.Background(), "E1")
	var serviceErr *domain.ServiceError
	require.True(t, errors.As(err, &serviceErr))
	assert.Equal(t, domain.BatchIndex, serviceErr.Index)
	assert.Equal(t, "INVALID_REQUEST_SIGNATURE", serviceErr.ReasonCode)
}

func TestQueryTradeCards(t *testing.T) {
	app, transport := newTestApplication(t, queryResponse(result(schema.FunctionCodeOK, "", ""), "E1", "E2"))

	params := schema.QueryParams{
		InsertFromDate: schema.NewDateTime(testNow.AddDate(0, 0, -30)),
		InsertToDate:   schema.NewDateTime(testNow),
		PlateNumber:    "ABC123",
		MaxRowNum:      "100",
	}
	cards, err := app.QueryTradeCards(context.Background(), params)
	require.NoError(t, err)
	require.Len(t, cards, 2)
	assert.Equal(t, "E2", cards[1].Tcn)

	body := transport.calls[0].body
	assert.Contains(t, body, "<queryParams><insertFromDate>2019-02-13T12:00:00.000Z</insertFromDate><insertToDate>2019-03-15T12:00:00.000Z</insertToDate>")
	assert.Contains(t, body, "<plateNumber>ABC123</plateNumber><maxRowNum>100</maxRowNum></queryParams>")
}

func TestQueryTradeCards_LocalValidationSendsNothing(t *testing.T) {
	app, transport := newTestApplication(t)

	tooLong := schema.QueryParams{
		InsertFromDate: schema.NewDateTime(testNow.AddDate(0, 0, -31)),
		InsertToDate:   schema.NewDateTime(testNow),
	}
	_, err := app.QueryTradeCards(context.Background(), tooLong)
	assert.True(t, domain.IsValidation(err))

	future := schema.QueryParams{
		InsertFromDate: schema.NewDateTime(testNow.Add(time.Hour)),
		InsertToDate:   schema.NewDateTime(testNow.Add(2 * time.Hour)),
	}
	_, err = app.QueryTradeCards(context.Background(), future)
	assert.True(t, domain.IsValidation(err))

	assert.Empty(t, transport.calls)
}
