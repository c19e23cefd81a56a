package validation

import (
	"fmt"

	"github.com/lb-conn/ekaer/domain"
	"github.com/lb-conn/ekaer/domain/schema"
)

const domesticVatNumberLength = 8

// ValidateTradeCard runs the business rules a trade card must satisfy
// before it is created or modified. It stops at the first violation and
// never modifies the card.
func ValidateTradeCard(card *schema.TradeCard) error {
	if card == nil {
		return domain.NewValidationError("tradeCard", "trade card is required")
	}
	if !IsValidVatNumber(card.SellerVatNumber) {
		return domain.NewValidationError("sellerVatNumber", "seller VAT number is not valid")
	}
	if !IsValidVatNumber(card.DestinationVatNumber) {
		return domain.NewValidationError("destinationVatNumber", "destination VAT number is not valid")
	}
	if card.SellerCountry == schema.DomesticCountry && len(card.SellerVatNumber) != domesticVatNumberLength {
		return domain.NewValidationError("sellerVatNumber", "%s is not a valid hungarian VAT number", card.SellerVatNumber)
	}
	if card.DestinationCountry == schema.DomesticCountry && len(card.DestinationVatNumber) != domesticVatNumberLength {
		return domain.NewValidationError("destinationVatNumber", "%s is not a valid hungarian VAT number", card.DestinationVatNumber)
	}

	switch card.TradeType {
	case schema.TradeTypeDomestic, schema.TradeTypeExport:
		if card.SellerCountry == "" {
			return domain.NewValidationError("sellerCountry", "required when trade type is export or domestic")
		}
		if card.SellerAddress == "" {
			return domain.NewValidationError("sellerAddress", "required when trade type is export or domestic")
		}
	}
	switch card.TradeType {
	case schema.TradeTypeDomestic, schema.TradeTypeImport:
		if card.DestinationCountry == "" {
			return domain.NewValidationError("destinationCountry", "required when trade type is import or domestic")
		}
		if card.DestinationAddress == "" {
			return domain.NewValidationError("destinationAddress", "required when trade type is import or domestic")
		}
	}
	if card.TradeType == schema.TradeTypeImport && card.SellerCountry == schema.DomesticCountry {
		return domain.NewValidationError("sellerCountry", "must not be %s when trade type is import", schema.DomesticCountry)
	}
	if card.TradeType == schema.TradeTypeExport && card.SellerCountry != schema.DomesticCountry {
		return domain.NewValidationError("sellerCountry", "must be %s when trade type is export", schema.DomesticCountry)
	}

	if card.SellerName == "" {
		return domain.NewValidationError("sellerName", "seller name is required")
	}
	if card.DestinationName == "" {
		return domain.NewValidationError("destinationName", "destination name is required")
	}
	if card.ModByCarrierEnabled && card.Carrier == "" {
		return domain.NewValidationError("carrier", "required when modification by carrier is enabled")
	}

	for planIdx, plan := range card.DeliveryPlans {
		for itemIdx, item := range plan.Items {
			if err := validateItem(item, fmt.Sprintf("deliveryPlans[%d].items[%d]", planIdx, itemIdx)); err != nil {
				return err
			}
		}
	}
	return nil
}

func validateItem(item schema.Item, path string) error {
	if item.Value < 0 {
		return domain.NewValidationError(path+".value", "must be greater or equal to zero")
	}
	if item.Weight < 0 {
		return domain.NewValidationError(path+".weight", "must be greater or equal to zero")
	}
	if item.ProductName == "" {
		return domain.NewValidationError(path+".productName", "product name is required")
	}
	if item.ProductVtsz == "" {
		return domain.NewValidationError(path+".productVtsz", "tariff code is required")
	}
	if !IsValidVTSZ(item.ProductVtsz) {
		return domain.NewValidationError(path+".productVtsz", "%q is not a valid tariff code", item.ProductVtsz)
	}
	return nil
}
