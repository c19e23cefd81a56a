package usecases

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/lb-conn/ekaer/domain/schema"
	"github.com/lb-conn/ekaer/infrastructure/xmlcodec"
)

var (
	testNow = time.Date(2019, time.March, 15, 12, 0, 0, 0, time.UTC)
	codec   = xmlcodec.New()
)

type fakeSigner struct {
	calls int
	err   error
}

func (s *fakeSigner) Envelope() (schema.BasicHeader, schema.UserHeader, error) {
	s.calls++
	if s.err != nil {
		return schema.BasicHeader{}, schema.UserHeader{}, s.err
	}
	header := schema.BasicHeader{
		RequestID:      fmt.Sprintf("%032d", s.calls),
		Timestamp:      schema.NewDateTime(testNow),
		RequestVersion: schema.RequestVersion,
		HeaderVersion:  schema.HeaderVersion,
	}
	user := schema.UserHeader{User: "user", PasswordHash: "HASH", VATNumber: "12345678", RequestSignature: "SIGNATURE"}
	return header, user, nil
}

type sentRequest struct {
	destination string
	body        string
}

// fakeTransport encodes every request with the wire codec and answers with
// canned XML bodies in order.
type fakeTransport struct {
	responses []string
	err       error
	calls     []sentRequest
}

func (f *fakeTransport) Send(_ context.Context, destination string, request, response any) error {
	body, err := codec.Encode(request)
	if err != nil {
		return err
	}
	f.calls = append(f.calls, sentRequest{destination: destination, body: string(body)})
	if f.err != nil {
		return f.err
	}
	if len(f.responses) == 0 {
		return errors.New("no canned response left")
	}
	next := f.responses[0]
	f.responses = f.responses[1:]
	return codec.Decode([]byte(next), response)
}

func newTestApplication(t *testing.T, responses ...string) (*Application, *fakeTransport) {
	t.Helper()
	transport := &fakeTransport{responses: responses}
	app, err := NewApplication(&fakeSigner{}, transport,
		WithLogger(zaptest.NewLogger(t)),
		WithClock(clockwork.NewFakeClockAt(testNow)))
	require.NoError(t, err)
	return app, transport
}

func result(code schema.FunctionCode, reason, msg string) string {
	var b strings.Builder
	b.WriteString("<result><funcCode>" + string(code) + "</funcCode>")
	if reason != "" {
		b.WriteString("<reasonCode>" + reason + "</reasonCode>")
	}
	if msg != "" {
		b.WriteString("<msg>" + msg + "</msg>")
	}
	b.WriteString("</result>")
	return b.String()
}

func itemResult(index int, code schema.FunctionCode, reason, msg, tcn string) string {
	s := fmt.Sprintf("<tradeCardOperationResult><index>%d</index>%s", index, result(code, reason, msg))
	if tcn != "" {
		s += "<tradeCardInfo><tcn>" + tcn + "</tcn><status>SAVED</status></tradeCardInfo>"
	}
	return s + "</tradeCardOperationResult>"
}

func manageResponse(batch string, items ...string) string {
	return `<?xml version="1.0" encoding="UTF-8"?><ManageTradeCardsResponse>` +
		"<header><requestId>00000000000000000000000000000001</requestId><timestamp>2019-03-15T12:00:01Z</timestamp></header>" +
		batch +
		"<tradeCardOperationsResults>" + strings.Join(items, "") + "</tradeCardOperationsResults>" +
		"</ManageTradeCardsResponse>"
}

func queryResponse(batch string, tcns ...string) string {
	var cards strings.Builder
	for _, tcn := range tcns {
		cards.WriteString("<tradeCard><tcn>" + tcn + "</tcn><status>FINALIZED</status></tradeCard>")
	}
	return `<QueryTradeCardsResponse>` + batch + "<tradeCards>" + cards.String() + "</tradeCards></QueryTradeCardsResponse>"
}

func validCard() schema.TradeCard {
	return schema.TradeCard{
		TradeCardType:        schema.TradeCardTypeNormal,
		TradeType:            schema.TradeTypeDomestic,
		SellerName:           "Eladó Kft.",
		SellerVatNumber:      "12345678",
		SellerCountry:        "HU",
		SellerAddress:        "1051 Budapest, Fő utca 1.",
		DestinationName:      "Vevő Zrt.",
		DestinationVatNumber: "87654321",
		DestinationCountry:   "HU",
		DestinationAddress:   "6720 Szeged, Kárász utca 2.",
		LoadDate:             schema.NewDateTime(testNow.Add(24 * time.Hour)),
		ArrivalDate:          schema.DateTimePtr(testNow.Add(48 * time.Hour)),
		DeliveryPlans: []schema.DeliveryPlan{{
			LoadLocation:   schema.Location{Name: "Raktár", Country: "HU", City: "Budapest"},
			UnloadLocation: schema.Location{Name: "Telephely", Country: "HU", City: "Szeged"},
			Items: []schema.Item{{
				TradeReason: schema.TradeReasonSale,
				ProductName: "Alma",
				ProductVtsz: "0808",
				Weight:      1200,
			}},
		}},
	}
}
