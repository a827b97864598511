package moneylover

import (
	"encoding/json"
	"fmt"
)

// envelope is the body shape of every MoneyLover response.
type envelope struct {
	Error json.RawMessage `json:"error"`
	Msg   string          `json:"msg"`
	Data  json.RawMessage `json:"data"`
}

// item is a wallet or category as listed by the API.
type item struct {
	ID   string `json:"_id"`
	Name string `json:"name"`
}

type categoryListRequest struct {
	WalletID string `json:"walletId"`
}

type addTransactionRequest struct {
	Category    string  `json:"category"`
	Account     string  `json:"account"`
	Amount      float64 `json:"amount"`
	Note        string  `json:"note,omitempty"`
	DisplayDate string  `json:"displayDate"`
}

// APIError is returned when MoneyLover answers with a non-2xx status or flags
// the request as failed in the response body.
type APIError struct {
	Endpoint   string
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("moneylover %s: status %d: %s", e.Endpoint, e.StatusCode, e.Message)
}
