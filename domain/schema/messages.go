package schema

import "encoding/xml"

// OperationType tags a batch item of a manage or validate submission.
type OperationType string

const (
	OperationCreate   OperationType = "create"
	OperationModify   OperationType = "modify"
	OperationDelete   OperationType = "delete"
	OperationFinalize OperationType = "finalize"
)

// QueryParams filters a trade card query.
type QueryParams struct {
	InsertFromDate DateTime `xml:"insertFromDate"`
	InsertToDate   DateTime `xml:"insertToDate"`
	OrderNumber    string   `xml:"orderNumber,omitempty"`
	PlateNumber    string   `xml:"plateNumber,omitempty"`
	MaxRowNum      string   `xml:"maxRowNum,omitempty"`
}

type QueryTradeCardsRequest struct {
	XMLName xml.Name `xml:"http://schemas.nav.gov.hu/EKAER/1.0/management QueryTradeCardsRequest"`
	BasicRequest
	QueryParams *QueryParams `xml:"queryParams,omitempty"`
	Tcn         string       `xml:"tcn,omitempty"`
}

type QueryTradeCardsResponse struct {
	XMLName xml.Name `xml:"QueryTradeCardsResponse"`
	BasicResponse
	TradeCards []TradeCardInfo `xml:"tradeCards>tradeCard"`
}

// TradeCardOperation is one indexed item of a batch. The index is the
// correlation key between the item and its result.
type TradeCardOperation struct {
	Index                     int           `xml:"index"`
	Operation                 OperationType `xml:"operation"`
	Tcn                       string        `xml:"tcn,omitempty"`
	TradeCard                 *TradeCard    `xml:"tradeCard,omitempty"`
	StatusChangeModReasonText string        `xml:"statusChangeModReasonText,omitempty"`
}

type ManageTradeCardsRequest struct {
	XMLName xml.Name `xml:"http://schemas.nav.gov.hu/EKAER/1.0/management ManageTradeCardsRequest"`
	BasicRequest
	TradeCardOperations []TradeCardOperation `xml:"tradeCardOperations>tradeCardOperation"`
}

// TradeCardOperationResult is the outcome of the batch item with the same index.
type TradeCardOperationResult struct {
	Index         int            `xml:"index"`
	Result        Result         `xml:"result"`
	TradeCardInfo *TradeCardInfo `xml:"tradeCardInfo,omitempty"`
}

type ManageTradeCardsResponse struct {
	XMLName xml.Name `xml:"ManageTradeCardsResponse"`
	BasicResponse
	TradeCardOperationsResults []TradeCardOperationResult `xml:"tradeCardOperationsResults>tradeCardOperationResult"`
}
