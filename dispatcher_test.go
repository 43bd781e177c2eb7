package bankline_test

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"github.com/arhyth/bankline"
	"github.com/arhyth/bankline/mocks"
)

func TestDispatcherProtocol(t *testing.T) {
	nooplog := zerolog.Nop()

	t.Run("BYE produces no response", func(tt *testing.T) {
		as := assert.New(tt)
		ctrl := gomock.NewController(tt)
		svc := mocks.NewMockService(ctrl)
		disp := bankline.NewDispatcher(svc, bankline.NewJSONCodec(), &nooplog)

		resp := disp.Handle(context.Background(), "BYE")
		as.Nil(resp)
	})

	t.Run("message with no separator is an invalid prefix", func(tt *testing.T) {
		as := assert.New(tt)
		ctrl := gomock.NewController(tt)
		svc := mocks.NewMockService(ctrl)
		disp := bankline.NewDispatcher(svc, bankline.NewJSONCodec(), &nooplog)

		resp := disp.Handle(context.Background(), "CONSULT")
		as.Equal(bankline.ErrorResponse{Message: "Invalid prefix"}, resp)
	})

	t.Run("unrecognized prefix is rejected", func(tt *testing.T) {
		as := assert.New(tt)
		ctrl := gomock.NewController(tt)
		svc := mocks.NewMockService(ctrl)
		disp := bankline.NewDispatcher(svc, bankline.NewJSONCodec(), &nooplog)

		resp := disp.Handle(context.Background(), `DEPOSIT {"account_id":1}`)
		as.Equal(bankline.ErrorResponse{Message: "Unknown prefix"}, resp)
	})

	t.Run("undecodable payload is an unknown format error", func(tt *testing.T) {
		as := assert.New(tt)
		ctrl := gomock.NewController(tt)
		svc := mocks.NewMockService(ctrl)
		disp := bankline.NewDispatcher(svc, bankline.NewJSONCodec(), &nooplog)

		for _, msg := range []string{
			`CONSULT {"account_id":`,
			`CONSULT {"account_id":"not-a-number"}`,
			`WITHDRAWAL {"account_id":1,"value":"x"}`,
			`NEWCUSTOMER ["wrong","shape"]`,
		} {
			resp := disp.Handle(context.Background(), msg)
			as.Equal(bankline.ErrorResponse{Message: "Unknown format error"}, resp, msg)
		}
	})
}

func TestDispatcherRouting(t *testing.T) {
	nooplog := zerolog.Nop()

	t.Run("CONSULT routes with the decoded account id", func(tt *testing.T) {
		as := assert.New(tt)
		ctrl := gomock.NewController(tt)
		svc := mocks.NewMockService(ctrl)
		disp := bankline.NewDispatcher(svc, bankline.NewJSONCodec(), &nooplog)

		bal := decimal.NewFromInt(500)
		svc.EXPECT().
			Consult(gomock.Any(), bankline.ConsultQuery{AccountID: 42}).
			Return(bankline.ConsultResponse{Balance: bal}).
			Times(1)

		resp := disp.Handle(context.Background(), `CONSULT {"account_id":42}`)
		as.Equal(bankline.ConsultResponse{Balance: bal}, resp)
	})

	t.Run("WITHDRAWAL routes with the signed decimal value", func(tt *testing.T) {
		as := assert.New(tt)
		ctrl := gomock.NewController(tt)
		svc := mocks.NewMockService(ctrl)
		disp := bankline.NewDispatcher(svc, bankline.NewJSONCodec(), &nooplog)

		bal := decimal.NewFromInt(380)
		svc.EXPECT().
			Withdrawal(gomock.Any(), gomock.AssignableToTypeOf(bankline.WithdrawalQuery{})).
			DoAndReturn(func(_ context.Context, q bankline.WithdrawalQuery) bankline.ServerResponse {
				as.Equal(int64(42), q.AccountID)
				as.True(q.Value.Equal(decimal.NewFromInt(-120)))
				return bankline.WithdrawalResponse{Balance: bal}
			}).
			Times(1)

		resp := disp.Handle(context.Background(), `WITHDRAWAL {"account_id":42,"value":-120}`)
		as.Equal(bankline.WithdrawalResponse{Balance: bal}, resp)
	})

	t.Run("NEWCUSTOMER routes with all fields", func(tt *testing.T) {
		as := assert.New(tt)
		ctrl := gomock.NewController(tt)
		svc := mocks.NewMockService(ctrl)
		disp := bankline.NewDispatcher(svc, bankline.NewJSONCodec(), &nooplog)

		want := bankline.NewCustomerQuery{
			FirstName: "Ada",
			LastName:  "Lovelace",
			Age:       36,
			Sex:       "F",
			Activity:  "mathematician",
			Address:   "12 St James Square",
		}
		svc.EXPECT().
			NewCustomer(gomock.Any(), want).
			Return(bankline.NewCustomerResponse{Status: bankline.StatusOK}).
			Times(1)

		msg := `NEWCUSTOMER {"first_name":"Ada","last_name":"Lovelace","age":36,"sex":"F","activity":"mathematician","address":"12 St James Square"}`
		resp := disp.Handle(context.Background(), msg)
		as.Equal(bankline.NewCustomerResponse{Status: bankline.StatusOK}, resp)
	})

	t.Run("DELETE routes and returns the domain status", func(tt *testing.T) {
		as := assert.New(tt)
		ctrl := gomock.NewController(tt)
		svc := mocks.NewMockService(ctrl)
		disp := bankline.NewDispatcher(svc, bankline.NewJSONCodec(), &nooplog)

		svc.EXPECT().
			Delete(gomock.Any(), bankline.DeleteQuery{AccountID: 7}).
			Return(bankline.DeleteResponse{Status: bankline.StatusKO}).
			Times(1)

		resp := disp.Handle(context.Background(), `DELETE {"account_id":7}`)
		as.Equal(bankline.DeleteResponse{Status: bankline.StatusKO}, resp)
	})
}
