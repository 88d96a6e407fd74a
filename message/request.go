package message

import (
	"fmt"
	"strconv"
)

// Request is a container, represents a command parsed from the RESP transport
type Request struct {
	// Cmd is a command name, normalized to upper case
	Cmd string
	// Args is a list of command positional args
	Args [][]byte
}

// NewRequest constructs new Request object
func NewRequest(cmd string, args [][]byte) *Request {
	return &Request{Cmd: cmd, Args: args}
}

// GetArgumentInt returns int argument by index i. Return error if unable to parse int, or requested index too big
func (r *Request) GetArgumentInt(i int) (result int, err error) {
	if i > len(r.Args)-1 {
		return 0, fmt.Errorf("trying to get not existing argument: %d > %d", i, len(r.Args)-1)
	}

	if result, err = strconv.Atoi(string(r.Args[i])); err != nil {
		return 0, fmt.Errorf("args[%d] isn't int: %q", i, string(r.Args[i]))
	}

	return result, nil
}

// GetArgumentString returns string argument by index i. Return error if requested index too big
func (r *Request) GetArgumentString(i int) (result string, err error) {
	if i > len(r.Args)-1 {
		return "", fmt.Errorf("trying to get not existing argument: %d > %d", i, len(r.Args)-1)
	}

	return string(r.Args[i]), nil
}

// GetArgumentBytes returns bytes argument by index i. Return error if requested index too big
func (r *Request) GetArgumentBytes(i int) (result []byte, err error) {
	if i > len(r.Args)-1 {
		return nil, fmt.Errorf("trying to get not existing argument: %d > %d", i, len(r.Args)-1)
	}

	return r.Args[i], nil
}

// GetArgumentVariadicBytes returns the rest of bytes args beginning from i index
func (r *Request) GetArgumentVariadicBytes(i int) (result [][]byte, err error) {
	if i > len(r.Args)-1 {
		return nil, fmt.Errorf("trying to get not existing argument: %d > %d", i, len(r.Args)-1)
	}

	return r.Args[i:], nil
}

// ArgumentsLen returns len of Request.Args
func (r *Request) ArgumentsLen() int {
	return len(r.Args)
}

func (r *Request) String() string {
	return fmt.Sprintf("Request{Cmd: %q, Args: %q}", r.Cmd, r.Args)
}
