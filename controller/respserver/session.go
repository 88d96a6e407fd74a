package respserver

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/mshaverdo/daikon/controller"
	"github.com/mshaverdo/daikon/core"
	"github.com/mshaverdo/daikon/log"
	"github.com/mshaverdo/daikon/message"
)

// Session runs the per-connection read/decode/dispatch/write cycle over one
// byte stream. Commands are processed serially, so pipelined requests get
// their replies in order without extra locking.
type Session struct {
	reader *RequestReader
	writer *RespWriter
	proc   *controller.Processor
}

// NewSession constructs a Session serving stream on top of c
func NewSession(c *core.Core, stream io.ReadWriter) *Session {
	return &Session{
		reader: NewRequestReader(stream),
		writer: NewRespWriter(stream),
		proc:   controller.NewProcessor(c),
	}
}

// Serve processes commands until the peer closes the stream or an I/O error
// occurs. Protocol errors are reported on-wire and close the session without
// escaping to the caller.
func (s *Session) Serve() error {
	defer s.proc.Teardown()

	for {
		args, err := s.reader.ReadRequest()
		if err == io.EOF {
			return nil
		}
		if errors.Is(err, ErrProtocol) {
			log.Noticef("malformed request: %s", err)
			s.writer.WriteError("ERR " + err.Error())
			s.writer.Flush()
			return nil
		}
		if err != nil {
			return err
		}

		cmd := strings.ToUpper(string(args[0]))
		if cmd == "QUIT" {
			s.writer.WriteSimpleString("OK")
			s.writer.Flush()
			return nil
		}

		request := message.NewRequest(cmd, args[1:])
		log.Debugf("handling request: %s", request)

		response := s.proc.Process(request)
		if err := s.sendResponse(response); err != nil {
			return err
		}
		if err := s.writer.Flush(); err != nil {
			return err
		}
	}
}

// Teardown releases session resources held outside the stream: currently the
// waiter of a parked blocking pop. Safe to call concurrently with Serve.
func (s *Session) Teardown() {
	s.proc.Teardown()
}

func (s *Session) sendResponse(response message.Response) error {
	switch concreteResponse := response.(type) {
	case *message.ResponseStatus:
		switch concreteResponse.Status() {
		case message.StatusOk:
			return s.writer.WriteSimpleString(concreteResponse.Message())
		case message.StatusTypeMismatch:
			return s.writer.WriteError("WRONGTYPE Operation against a key holding the wrong kind of value")
		default:
			return s.writer.WriteError("ERR " + concreteResponse.Message())
		}
	case *message.ResponseInt:
		return s.writer.WriteInt(concreteResponse.Value())
	case *message.ResponseBulk:
		if concreteResponse.Status() == message.StatusNotFound {
			return s.writer.WriteNull()
		}
		return s.writer.WriteBulk(concreteResponse.Value())
	case *message.ResponseArray:
		if concreteResponse.Status() == message.StatusNotFound {
			return s.writer.WriteNullArray()
		}
		return s.writer.WriteArray(concreteResponse.Values())
	default:
		return fmt.Errorf("unknown response type: %T", response)
	}
}
