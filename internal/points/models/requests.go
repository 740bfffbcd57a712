package models

import "strings"

// ChargeRequest is the body of a top-up. Amount is in won.
type ChargeRequest struct {
	Amount int64  `json:"amount"`
	Method string `json:"method"`
}

func (r *ChargeRequest) Normalize() {
	r.Method = strings.ToLower(strings.TrimSpace(r.Method))
}

func (r *ChargeRequest) Validate() error {
	if err := ValidateAmount(r.Amount); err != nil {
		return err
	}
	_, err := ParseMethod(r.Method)
	return err
}
