package bankline

import (
	"github.com/shopspring/decimal"
)

// Status is the inner domain outcome of an operation that executed
// cleanly: OK when the effect applied, KO when it did not.
type Status string

const (
	StatusOK Status = "OK"
	StatusKO Status = "KO"
)

// ServerResponse is the single value a request produces. Exactly one
// variant per non-BYE request; the transport renders the outer OK/ERR
// envelope from it.
type ServerResponse interface {
	serverResponse()
}

// ErrorResponse reports a protocol or infrastructure failure. It is
// the only variant rendered under the ERR envelope.
type ErrorResponse struct {
	Message string `json:"message"`
}

type ConsultResponse struct {
	Balance decimal.Decimal `json:"balance"`
}

type NewCustomerResponse struct {
	Status Status `json:"status"`
}

type WithdrawalResponse struct {
	Balance decimal.Decimal `json:"balance"`
}

type DeleteResponse struct {
	Status Status `json:"status"`
}

func (ErrorResponse) serverResponse()       {}
func (ConsultResponse) serverResponse()     {}
func (NewCustomerResponse) serverResponse() {}
func (WithdrawalResponse) serverResponse()  {}
func (DeleteResponse) serverResponse()      {}

var (
	errInvalidPrefix   = ErrorResponse{Message: "Invalid prefix"}
	errUnknownPrefix   = ErrorResponse{Message: "Unknown prefix"}
	errUnknownFormat   = ErrorResponse{Message: "Unknown format error"}
	errServerSide      = ErrorResponse{Message: "Server-side error. Please retry later."}
	errDatabase        = ErrorResponse{Message: "Database error"}
	errAccountNotFound = ErrorResponse{Message: "Account not found"}
)
