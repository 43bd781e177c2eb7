package bankline

import (
	"context"
	"strings"

	"github.com/rs/zerolog"
)

// Request prefixes recognized on the wire.
const (
	PrefixConsult     = "CONSULT"
	PrefixNewCustomer = "NEWCUSTOMER"
	PrefixWithdrawal  = "WITHDRAWAL"
	PrefixDelete      = "DELETE"
)

// MsgBye terminates a session and is the only message with no reply.
const MsgBye = "BYE"

// Dispatcher splits a raw message into prefix and payload, decodes the
// payload into the matching query shape, and routes it to the service.
type Dispatcher struct {
	svc   Service
	codec Codec
	log   *zerolog.Logger
}

func NewDispatcher(svc Service, codec Codec, log *zerolog.Logger) *Dispatcher {
	return &Dispatcher{
		svc:   svc,
		codec: codec,
		log:   log,
	}
}

// Handle produces exactly one response per message, except for BYE
// which returns nil to signal session termination. No failure
// propagates past this method.
func (d *Dispatcher) Handle(ctx context.Context, msg string) (resp ServerResponse) {
	if msg == MsgBye {
		return nil
	}

	defer func() {
		if r := recover(); r != nil {
			d.log.Debug().Interface("panic", r).Str("message", msg).Msg("unknown format error")
			resp = errUnknownFormat
		}
	}()

	sep := strings.IndexByte(msg, ' ')
	if sep == -1 {
		d.log.Debug().Str("message", msg).Msg("invalid prefix")
		return errInvalidPrefix
	}
	prefix, payload := msg[:sep], []byte(msg[sep+1:])

	switch prefix {
	case PrefixConsult:
		var q ConsultQuery
		if err := d.codec.Decode(payload, &q); err != nil {
			d.log.Debug().Err(err).Str("message", msg).Msg("unknown format error")
			return errUnknownFormat
		}
		return d.svc.Consult(ctx, q)
	case PrefixNewCustomer:
		var q NewCustomerQuery
		if err := d.codec.Decode(payload, &q); err != nil {
			d.log.Debug().Err(err).Str("message", msg).Msg("unknown format error")
			return errUnknownFormat
		}
		return d.svc.NewCustomer(ctx, q)
	case PrefixWithdrawal:
		var q WithdrawalQuery
		if err := d.codec.Decode(payload, &q); err != nil {
			d.log.Debug().Err(err).Str("message", msg).Msg("unknown format error")
			return errUnknownFormat
		}
		return d.svc.Withdrawal(ctx, q)
	case PrefixDelete:
		var q DeleteQuery
		if err := d.codec.Decode(payload, &q); err != nil {
			d.log.Debug().Err(err).Str("message", msg).Msg("unknown format error")
			return errUnknownFormat
		}
		return d.svc.Delete(ctx, q)
	default:
		d.log.Debug().Str("prefix", prefix).Msg("unknown prefix")
		return errUnknownPrefix
	}
}
