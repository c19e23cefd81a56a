package validation

import (
	"strconv"
	"time"
	"unicode/utf8"

	"github.com/lb-conn/ekaer/domain"
	"github.com/lb-conn/ekaer/domain/schema"
)

const (
	MaxQueryInterval   = 30 * 24 * time.Hour
	MinQueryRows       = 1
	MaxQueryRows       = 1000
	MaxOrderNumberSize = 50
)

// ValidateQueryParams checks a query filter against now. The rules are
// applied in order and the first violation is returned.
func ValidateQueryParams(params *schema.QueryParams, now time.Time) error {
	if params == nil {
		return domain.NewValidationError("queryParams", "query parameters are required")
	}
	from, to := params.InsertFromDate.Time, params.InsertToDate.Time
	if from.After(now) {
		return domain.NewValidationError("insertFromDate", "must not be in the future")
	}
	if from.After(to) {
		return domain.NewValidationError("insertFromDate", "must not be after insertToDate")
	}
	if to.Sub(from) > MaxQueryInterval {
		return domain.NewValidationError("insertToDate", "interval must be less or equal to 30 days")
	}
	if params.MaxRowNum != "" {
		rows, err := strconv.Atoi(params.MaxRowNum)
		if err != nil {
			return domain.NewValidationError("maxRowNum", "%q is not a number", params.MaxRowNum)
		}
		if rows < MinQueryRows || rows > MaxQueryRows {
			return domain.NewValidationError("maxRowNum", "must be between %d and %d", MinQueryRows, MaxQueryRows)
		}
	}
	if utf8.RuneCountInString(params.OrderNumber) > MaxOrderNumberSize {
		return domain.NewValidationError("orderNumber", "must be shorter than %d characters", MaxOrderNumberSize+1)
	}
	if params.PlateNumber != "" && !IsValidPlateNumber(params.PlateNumber) {
		return domain.NewValidationError("plateNumber", "%q is not a valid plate number", params.PlateNumber)
	}
	return nil
}
