package bankline

import (
	"encoding/json"

	"github.com/shopspring/decimal"
)

// Queries are built once per request from the decoded wire payload and
// never mutated afterwards.

type ConsultQuery struct {
	AccountID int64 `json:"account_id"`
}

type NewCustomerQuery struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Age       int    `json:"age"`
	Sex       string `json:"sex"`
	Activity  string `json:"activity"`
	Address   string `json:"address"`
}

type WithdrawalQuery struct {
	AccountID int64           `json:"account_id"`
	Value     decimal.Decimal `json:"value"`
}

type DeleteQuery struct {
	AccountID int64 `json:"account_id"`
}

// Codec decodes a request payload into the query shape the dispatcher
// selected from the prefix. It fails on structural mismatch.
type Codec interface {
	Decode(payload []byte, v interface{}) error
}

type jsonCodec struct{}

func NewJSONCodec() Codec {
	return jsonCodec{}
}

func (jsonCodec) Decode(payload []byte, v interface{}) error {
	return json.Unmarshal(payload, v)
}
