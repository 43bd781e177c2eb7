package bankline

import (
	"context"
	"time"

	"github.com/sony/gobreaker/v2"
	"golang.org/x/sync/semaphore"
)

type Middleware func(Service) Service

// infrastructureFailure reports whether a response is a server-side or
// database failure, as opposed to a domain outcome (KO, not-found) or
// a success. Only these count against the circuit breaker.
func infrastructureFailure(resp ServerResponse) bool {
	er, ok := resp.(ErrorResponse)
	return ok && (er == errServerSide || er == errDatabase)
}

//
// Rate limiting middleware
//

// limitMiddleware caps the number of in-flight requests per operation
// with a weighted semaphore. A caller that cannot obtain a slot within
// the acquisition timeout is shed with the same server-side error the
// pool produces under saturation, so the wire contract stays unchanged.
type limitMiddleware struct {
	next    Service
	limits  *ServiceLimits
	timeout time.Duration
}

var (
	_ Service = (*limitMiddleware)(nil)
)

type ServiceLimits struct {
	Consult     *semaphore.Weighted
	NewCustomer *semaphore.Weighted
	Withdrawal  *semaphore.Weighted
	Delete      *semaphore.Weighted
}

func NewLimitMiddleware(limits *ServiceLimits, timeout time.Duration) Middleware {
	return func(next Service) Service {
		return &limitMiddleware{
			next:    next,
			limits:  limits,
			timeout: timeout,
		}
	}
}

func (l *limitMiddleware) acquire(ctx context.Context, sem *semaphore.Weighted) bool {
	actx, cancel := context.WithTimeout(ctx, l.timeout)
	defer cancel()
	return sem.Acquire(actx, 1) == nil
}

func (l *limitMiddleware) Consult(ctx context.Context, q ConsultQuery) ServerResponse {
	if !l.acquire(ctx, l.limits.Consult) {
		return errServerSide
	}
	defer l.limits.Consult.Release(1)
	return l.next.Consult(ctx, q)
}

func (l *limitMiddleware) NewCustomer(ctx context.Context, q NewCustomerQuery) ServerResponse {
	if !l.acquire(ctx, l.limits.NewCustomer) {
		return errServerSide
	}
	defer l.limits.NewCustomer.Release(1)
	return l.next.NewCustomer(ctx, q)
}

func (l *limitMiddleware) Withdrawal(ctx context.Context, q WithdrawalQuery) ServerResponse {
	if !l.acquire(ctx, l.limits.Withdrawal) {
		return errServerSide
	}
	defer l.limits.Withdrawal.Release(1)
	return l.next.Withdrawal(ctx, q)
}

func (l *limitMiddleware) Delete(ctx context.Context, q DeleteQuery) ServerResponse {
	if !l.acquire(ctx, l.limits.Delete) {
		return errServerSide
	}
	defer l.limits.Delete.Release(1)
	return l.next.Delete(ctx, q)
}

//
// Circuit breaking middleware
//

type ServiceBreaker struct {
	Consult     *gobreaker.TwoStepCircuitBreaker[ServerResponse]
	NewCustomer *gobreaker.TwoStepCircuitBreaker[ServerResponse]
	Withdrawal  *gobreaker.TwoStepCircuitBreaker[ServerResponse]
	Delete      *gobreaker.TwoStepCircuitBreaker[ServerResponse]
}

func NewServiceBreaker(st gobreaker.Settings) *ServiceBreaker {
	mk := func(name string) *gobreaker.TwoStepCircuitBreaker[ServerResponse] {
		s := st
		s.Name = name
		return gobreaker.NewTwoStepCircuitBreaker[ServerResponse](s)
	}
	return &ServiceBreaker{
		Consult:     mk("consult"),
		NewCustomer: mk("newcustomer"),
		Withdrawal:  mk("withdrawal"),
		Delete:      mk("delete"),
	}
}

// breakerMiddleware trips per-operation circuit breakers on
// infrastructure failures. With the circuit open, requests are
// answered with the server-side error without touching the database.
type breakerMiddleware struct {
	next  Service
	brkrs *ServiceBreaker
}

var (
	_ Service = (*breakerMiddleware)(nil)
)

func NewBreakerMiddleware(brkrs *ServiceBreaker) Middleware {
	return func(next Service) Service {
		return &breakerMiddleware{
			next:  next,
			brkrs: brkrs,
		}
	}
}

func (b *breakerMiddleware) Consult(ctx context.Context, q ConsultQuery) ServerResponse {
	done, err := b.brkrs.Consult.Allow()
	if err != nil {
		return errServerSide
	}
	resp := b.next.Consult(ctx, q)
	done(!infrastructureFailure(resp))
	return resp
}

func (b *breakerMiddleware) NewCustomer(ctx context.Context, q NewCustomerQuery) ServerResponse {
	done, err := b.brkrs.NewCustomer.Allow()
	if err != nil {
		return errServerSide
	}
	resp := b.next.NewCustomer(ctx, q)
	done(!infrastructureFailure(resp))
	return resp
}

func (b *breakerMiddleware) Withdrawal(ctx context.Context, q WithdrawalQuery) ServerResponse {
	done, err := b.brkrs.Withdrawal.Allow()
	if err != nil {
		return errServerSide
	}
	resp := b.next.Withdrawal(ctx, q)
	done(!infrastructureFailure(resp))
	return resp
}

func (b *breakerMiddleware) Delete(ctx context.Context, q DeleteQuery) ServerResponse {
	done, err := b.brkrs.Delete.Allow()
	if err != nil {
		return errServerSide
	}
	resp := b.next.Delete(ctx, q)
	done(!infrastructureFailure(resp))
	return resp
}
