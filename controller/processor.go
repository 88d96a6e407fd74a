package controller

import (
	"errors"
	"sync"
	"time"

	"github.com/mshaverdo/daikon/core"
	"github.com/mshaverdo/daikon/message"
)

// ErrInterrupted reports a blocking pop cut short by session teardown.
var ErrInterrupted = errors.New("blocking pop interrupted")

// Processor dispatches parsed requests to Core and shapes the replies.
// One Processor serves one session: it tracks the waiter the session is
// parked on, so a concurrent Teardown can release it.
type Processor struct {
	core *core.Core

	mu     sync.Mutex
	parked *core.Waiter
}

// NewProcessor constructs a new Processor on top of core
func NewProcessor(core *core.Core) *Processor {
	return &Processor{core: core}
}

// Process processes request to Core
func (p *Processor) Process(request *message.Request) message.Response {
	switch request.Cmd {
	case "PING":
		if request.ArgumentsLen() != 0 {
			return getResponseArityError(request.Cmd)
		}

		return getResponseStatusOk("PONG")
	case "ECHO":
		arg0, err := request.GetArgumentBytes(0)
		if err != nil || request.ArgumentsLen() != 1 {
			return getResponseArityError(request.Cmd)
		}

		return getResponseBulk(arg0)
	case "CLIENT":
		// handshake shim: accept any subcommand
		return getResponseStatusOk("OK")
	case "SET":
		return p.processSet(request)
	case "GET":
		arg0, err := request.GetArgumentString(0)
		if err != nil || request.ArgumentsLen() != 1 {
			return getResponseArityError(request.Cmd)
		}

		result, err := p.core.Get(arg0)
		if err == core.ErrNotFound {
			return getResponseNilBulk()
		} else if err != nil {
			return getResponseCommandError(request.Cmd, err)
		}

		return getResponseBulk(result)
	case "TTL":
		arg0, err := request.GetArgumentString(0)
		if err != nil || request.ArgumentsLen() != 1 {
			return getResponseArityError(request.Cmd)
		}

		return getResponseInt(p.core.Ttl(arg0))
	case "DBSIZE":
		if request.ArgumentsLen() != 0 {
			return getResponseArityError(request.Cmd)
		}

		return getResponseInt(int64(p.core.DbSize()))
	case "RPUSH", "LPUSH":
		arg0, err := request.GetArgumentString(0)
		if err != nil {
			return getResponseArityError(request.Cmd)
		}
		values, err := request.GetArgumentVariadicBytes(1)
		if err != nil {
			return getResponseArityError(request.Cmd)
		}

		push := p.core.RPush
		if request.Cmd == "LPUSH" {
			push = p.core.LPush
		}

		count, err := push(arg0, values)
		if err != nil {
			return getResponseCommandError(request.Cmd, err)
		}

		return getResponseInt(int64(count))
	case "LPOP":
		return p.processLPop(request)
	case "LLEN":
		arg0, err := request.GetArgumentString(0)
		if err != nil || request.ArgumentsLen() != 1 {
			return getResponseArityError(request.Cmd)
		}

		count, err := p.core.LLen(arg0)
		if err != nil {
			return getResponseCommandError(request.Cmd, err)
		}

		return getResponseInt(int64(count))
	case "LRANGE":
		arg0, err := request.GetArgumentString(0)
		if err != nil || request.ArgumentsLen() != 3 {
			return getResponseArityError(request.Cmd)
		}
		start, err := request.GetArgumentInt(1)
		if err != nil {
			return getResponseInvalidArguments("value is not an integer or out of range")
		}
		stop, err := request.GetArgumentInt(2)
		if err != nil {
			return getResponseInvalidArguments("value is not an integer or out of range")
		}

		result, err := p.core.LRange(arg0, start, stop)
		if err != nil {
			return getResponseCommandError(request.Cmd, err)
		}

		return getResponseArray(result)
	case "LBPOP":
		return p.processLBPop(request)
	default:
		return getResponseUnknownCommand(request.Cmd, request.Args)
	}
}

func (p *Processor) processSet(request *message.Request) message.Response {
	if request.ArgumentsLen() != 2 && request.ArgumentsLen() != 4 {
		return getResponseArityError(request.Cmd)
	}

	key, _ := request.GetArgumentString(0)
	value, _ := request.GetArgumentBytes(1)

	var ttl time.Duration
	if request.ArgumentsLen() == 4 {
		// args[2] is the unit token, conventionally PX; it is not validated,
		// args[3] is always read as milliseconds
		ms, err := request.GetArgumentInt(3)
		if err != nil {
			return getResponseInvalidArguments("value is not an integer or out of range")
		}
		if ms < 0 {
			return getResponseInvalidArguments("invalid expire time in 'set' command")
		}
		ttl = time.Duration(ms) * time.Millisecond
	}

	p.core.Set(key, value, ttl)

	return getResponseStatusOk("OK")
}

func (p *Processor) processLPop(request *message.Request) message.Response {
	if request.ArgumentsLen() != 1 && request.ArgumentsLen() != 2 {
		return getResponseArityError(request.Cmd)
	}

	key, _ := request.GetArgumentString(0)

	if request.ArgumentsLen() == 1 {
		result, err := p.core.LPop(key)
		if err == core.ErrNotFound {
			return getResponseNilBulk()
		} else if err != nil {
			return getResponseCommandError(request.Cmd, err)
		}

		return getResponseBulk(result)
	}

	count, err := request.GetArgumentInt(1)
	if err != nil {
		return getResponseInvalidArguments("value is not an integer or out of range")
	}
	if count < 1 {
		return getResponseInvalidArguments("value is out of range, must be positive")
	}

	result, err := p.core.LPopCount(key, count)
	if err == core.ErrNotFound {
		return getResponseNilArray()
	} else if err != nil {
		return getResponseCommandError(request.Cmd, err)
	}

	return getResponseArray(result)
}

func (p *Processor) processLBPop(request *message.Request) message.Response {
	key, err := request.GetArgumentString(0)
	if err != nil || request.ArgumentsLen() != 1 {
		return getResponseArityError(request.Cmd)
	}

	result, waiter, err := p.core.LBPop(key)
	if err != nil {
		return getResponseCommandError(request.Cmd, err)
	}

	if waiter != nil {
		p.park(waiter)
		value, ok := waiter.Wait()
		p.park(nil)
		if !ok {
			return getResponseCommandError(request.Cmd, ErrInterrupted)
		}
		result = value
	}

	return getResponseBulk(result)
}

func (p *Processor) park(w *core.Waiter) {
	p.mu.Lock()
	p.parked = w
	p.mu.Unlock()
}

// Teardown releases the waiter the session is parked on, if any. Safe to call
// from another goroutine; the parked session resumes with an interrupt reply.
func (p *Processor) Teardown() {
	p.mu.Lock()
	w := p.parked
	p.parked = nil
	p.mu.Unlock()

	if w != nil {
		p.core.Deregister(w)
	}
}
