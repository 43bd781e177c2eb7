package bankline

import (
	"context"
	"errors"

	"github.com/rs/zerolog"
)

//go:generate mockgen -destination=mocks/service.go -package=mocks github.com/arhyth/bankline Service

// Service runs one account operation per call and owns the mapping
// from execution outcome to response variant. Methods never return an
// error: every failure is already classified into a ServerResponse,
// so nothing escapes to the dispatcher.
type Service interface {
	Consult(ctx context.Context, q ConsultQuery) ServerResponse
	NewCustomer(ctx context.Context, q NewCustomerQuery) ServerResponse
	Withdrawal(ctx context.Context, q WithdrawalQuery) ServerResponse
	Delete(ctx context.Context, q DeleteQuery) ServerResponse
}

func NewService(repo Repository, log *zerolog.Logger) *serviceImpl {
	return &serviceImpl{
		repo: repo,
		log:  log,
	}
}

type serviceImpl struct {
	repo Repository
	log  *zerolog.Logger
}

var (
	_ Service = (*serviceImpl)(nil)
)

func (s *serviceImpl) Consult(ctx context.Context, q ConsultQuery) ServerResponse {
	bal, err := s.repo.Balance(ctx, q.AccountID)
	if err != nil {
		if errors.Is(err, ErrUnavailable) {
			return errServerSide
		}
		if errors.As(err, &ErrNotFound{}) {
			return errAccountNotFound
		}
		s.log.Error().Err(err).Int64("account_id", q.AccountID).Msg("consult failed")
		return errDatabase
	}
	return ConsultResponse{Balance: bal}
}

func (s *serviceImpl) NewCustomer(ctx context.Context, q NewCustomerQuery) ServerResponse {
	err := s.repo.CreateCustomer(ctx, q)
	switch {
	case err == nil:
		return NewCustomerResponse{Status: StatusOK}
	case errors.Is(err, ErrUnavailable):
		return errServerSide
	case errors.Is(err, ErrNoEffect):
		// Insert ran but changed nothing; same KO as an execution
		// failure, kept apart here so the log tells them apart.
		s.log.Warn().Msg("customer insert affected no rows")
		return NewCustomerResponse{Status: StatusKO}
	default:
		s.log.Warn().Err(err).Msg("customer insert rejected")
		return NewCustomerResponse{Status: StatusKO}
	}
}

func (s *serviceImpl) Withdrawal(ctx context.Context, q WithdrawalQuery) ServerResponse {
	bal, err := s.repo.AdjustBalance(ctx, q.AccountID, q.Value)
	if err != nil {
		if errors.Is(err, ErrUnavailable) {
			return errServerSide
		}
		s.log.Error().Err(err).Int64("account_id", q.AccountID).Msg("withdrawal failed")
		return errDatabase
	}
	return WithdrawalResponse{Balance: bal}
}

func (s *serviceImpl) Delete(ctx context.Context, q DeleteQuery) ServerResponse {
	deleted, err := s.repo.DeleteAccount(ctx, q.AccountID)
	if err != nil {
		if errors.Is(err, ErrUnavailable) {
			return errServerSide
		}
		s.log.Error().Err(err).Int64("account_id", q.AccountID).Msg("delete failed")
		return errDatabase
	}
	if !deleted {
		return DeleteResponse{Status: StatusKO}
	}
	return DeleteResponse{Status: StatusOK}
}
