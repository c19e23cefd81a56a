package schema

// TradeType is the direction of the goods movement.
type TradeType string

const (
	TradeTypeDomestic TradeType = "D"
	TradeTypeImport   TradeType = "I"
	TradeTypeExport   TradeType = "E"
)

type TradeCardType string

const (
	TradeCardTypeNormal     TradeCardType = "NORMAL"
	TradeCardTypeCollective TradeCardType = "COLLECTIVE"
)

// TradeReason tells why the goods are moved.
type TradeReason string

const (
	TradeReasonSale       TradeReason = "S"
	TradeReasonProcessing TradeReason = "P"
	TradeReasonOther      TradeReason = "O"
)

// ItemOperation tags a single item inside a modify submission.
type ItemOperation string

const (
	ItemOperationCreate ItemOperation = "create"
	ItemOperationModify ItemOperation = "modify"
	ItemOperationDelete ItemOperation = "delete"
)

// TradeCardStatus is assigned by the service.
type TradeCardStatus string

const (
	TradeCardStatusSaved     TradeCardStatus = "SAVED"
	TradeCardStatusFinalized TradeCardStatus = "FINALIZED"
	TradeCardStatusDeleted   TradeCardStatus = "DELETED"
)

// TradeCard is the declaration of one goods movement.
type TradeCard struct {
	Tcn                  string         `xml:"tcn,omitempty"`
	OrderNumber          string         `xml:"orderNumber,omitempty"`
	TradeCardType        TradeCardType  `xml:"tradeCardType"`
	TradeType            TradeType      `xml:"tradeType"`
	ModByCarrierEnabled  bool           `xml:"modByCarrierEnabled,omitempty"`
	Carrier              string         `xml:"carrier,omitempty"`
	SellerName           string         `xml:"sellerName"`
	SellerVatNumber      string         `xml:"sellerVatNumber"`
	SellerCountry        string         `xml:"sellerCountry,omitempty"`
	SellerAddress        string         `xml:"sellerAddress,omitempty"`
	DestinationName      string         `xml:"destinationName"`
	DestinationVatNumber string         `xml:"destinationVatNumber"`
	DestinationCountry   string         `xml:"destinationCountry,omitempty"`
	DestinationAddress   string         `xml:"destinationAddress,omitempty"`
	LoadDate             DateTime       `xml:"loadDate"`
	ArrivalDate          *DateTime      `xml:"arrivalDate,omitempty"`
	Vehicle              *Vehicle       `xml:"vehicle,omitempty"`
	DeliveryPlans        []DeliveryPlan `xml:"deliveryPlans>deliveryPlan"`
}

type Vehicle struct {
	PlateNumber        string `xml:"plateNumber"`
	TrailerPlateNumber string `xml:"trailerPlateNumber,omitempty"`
}

// DeliveryPlan describes one load / unload leg.
type DeliveryPlan struct {
	IsDestinationCompanyIdentical bool     `xml:"isDestinationCompanyIdentical"`
	LoadLocation                  Location `xml:"loadLocation"`
	UnloadLocation                Location `xml:"unloadLocation"`
	Items                         []Item   `xml:"items>item"`
}

type Location struct {
	Name         string `xml:"name"`
	VATNumber    string `xml:"vatNumber,omitempty"`
	Country      string `xml:"country"`
	ZipCode      string `xml:"zipCode,omitempty"`
	City         string `xml:"city"`
	Street       string `xml:"street,omitempty"`
	StreetType   string `xml:"streetType,omitempty"`
	StreetNumber string `xml:"streetNumber,omitempty"`
}

// Item is a single product line. A zero Value is left out of the payload;
// only a positive value is sent.
type Item struct {
	ItemOperation ItemOperation `xml:"itemOperation,omitempty"`
	TradeReason   TradeReason   `xml:"tradeReason,omitempty"`
	ProductName   string        `xml:"productName"`
	ProductVtsz   string        `xml:"productVtsz"`
	Weight        float64       `xml:"weight"`
	Value         float64       `xml:"value,omitempty"`
}

// TradeCardInfo is a trade card as held by the service.
type TradeCardInfo struct {
	TradeCard
	Status       TradeCardStatus `xml:"status,omitempty"`
	CreateDate   *DateTime       `xml:"createDate,omitempty"`
	ModifyDate   *DateTime       `xml:"modifyDate,omitempty"`
	FinalizeDate *DateTime       `xml:"finalizeDate,omitempty"`
}
