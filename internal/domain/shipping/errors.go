package shipping

import "errors"

var (
	// ErrInvalidPricing 料金設定が不正
	ErrInvalidPricing = errors.New("invalid shipping pricing")
)
