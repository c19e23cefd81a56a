// Package validation implements the field predicates and the business rules
// a trade card or a query filter must satisfy before it is submitted.
package validation

import "regexp"

var (
	vatNumberPattern   = regexp.MustCompile(`^[0-9A-Z-]{1,15}$`)
	countryCodePattern = regexp.MustCompile(`^[A-Z]{1,3}$`)
	phonePattern       = regexp.MustCompile(`^(((\+)|(00))[0-9]{8,14}|06[0-9]{1,2}[0-9]{6,7})$`)
	emailPattern       = regexp.MustCompile(`^[A-Za-z0-9._%-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,4}$`)
	zipCodePattern     = regexp.MustCompile(`^[A-Z0-9 -]{2,7}$`)
	tcnPattern         = regexp.MustCompile(`^[A-Z0-9]{2,20}$`)
	vtszPattern        = regexp.MustCompile(`^[0-9]{4,8}$`)
	plateNumberPattern = regexp.MustCompile(`^[A-Z0-9ÖŐÜŰ]{4,15}$`)
)

func IsValidVatNumber(vatNumber string) bool {
	return vatNumber != "" && vatNumberPattern.MatchString(vatNumber)
}

func IsValidCountryCode(country string) bool {
	return country != "" && countryCodePattern.MatchString(country)
}

// IsValidPhoneNumber accepts international numbers (+ or 00 prefix) and
// domestic mobile numbers (06 prefix).
func IsValidPhoneNumber(phone string) bool {
	return phone != "" && phonePattern.MatchString(phone)
}

func IsValidEmailAddress(email string) bool {
	return email != "" && emailPattern.MatchString(email)
}

// IsValidZipCode accepts an empty zip code.
func IsValidZipCode(zipCode string) bool {
	return zipCode == "" || zipCodePattern.MatchString(zipCode)
}

// IsValidTradeCardNumber accepts an empty TCN: cards not yet created have none.
func IsValidTradeCardNumber(tcn string) bool {
	return tcn == "" || tcnPattern.MatchString(tcn)
}

// IsValidVTSZ accepts an empty tariff code; ValidateTradeCard requires it separately.
func IsValidVTSZ(productVtsz string) bool {
	return productVtsz == "" || vtszPattern.MatchString(productVtsz)
}

func IsValidPlateNumber(plateNumber string) bool {
	return plateNumberPattern.MatchString(plateNumber)
}
