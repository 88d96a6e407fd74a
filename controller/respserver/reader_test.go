package respserver

import (
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/go-test/deep"
)

// oneByteReader forces the decoder to see reads split at every byte boundary
type oneByteReader struct {
	r io.Reader
}

func (o oneByteReader) Read(p []byte) (int, error) {
	if len(p) > 1 {
		p = p[:1]
	}
	return o.r.Read(p)
}

func toStrings(values [][]byte) []string {
	result := make([]string, len(values))
	for i, v := range values {
		result[i] = string(v)
	}
	return result
}

func TestRequestReader_ReadRequest(t *testing.T) {
	tests := []struct {
		input string
		want  []string
	}{
		{"*1\r\n$4\r\nPING\r\n", []string{"PING"}},
		{"*2\r\n$4\r\nECHO\r\n$3\r\nhey\r\n", []string{"ECHO", "hey"}},
		{"*3\r\n$3\r\nSET\r\n$0\r\n\r\n$5\r\nv\r\n\x00\x01\r\n", []string{"SET", "", "v\r\n\x00\x01"}},
		{"*2\r\n$3\r\nGET\r\n$-1\r\n", []string{"GET", ""}},
	}

	for _, tst := range tests {
		rr := NewRequestReader(strings.NewReader(tst.input))

		args, err := rr.ReadRequest()
		if err != nil {
			t.Errorf("ReadRequest(%q): unexpected error %v", tst.input, err)
			continue
		}
		if diff := deep.Equal(toStrings(args), tst.want); diff != nil {
			t.Errorf("ReadRequest(%q): %s", tst.input, diff)
		}

		if _, err := rr.ReadRequest(); err != io.EOF {
			t.Errorf("ReadRequest(%q) at end of stream: %v != io.EOF", tst.input, err)
		}
	}
}

func TestRequestReader_Pipelined(t *testing.T) {
	input := "*1\r\n$4\r\nPING\r\n*2\r\n$4\r\nECHO\r\n$3\r\nhey\r\n*2\r\n$3\r\nGET\r\n$3\r\nfoo\r\n"
	want := [][]string{
		{"PING"},
		{"ECHO", "hey"},
		{"GET", "foo"},
	}

	rr := NewRequestReader(strings.NewReader(input))

	for i, wantArgs := range want {
		args, err := rr.ReadRequest()
		if err != nil {
			t.Fatalf("ReadRequest() #%d: unexpected error %v", i, err)
		}
		if diff := deep.Equal(toStrings(args), wantArgs); diff != nil {
			t.Errorf("ReadRequest() #%d: %s", i, diff)
		}
	}

	if _, err := rr.ReadRequest(); err != io.EOF {
		t.Errorf("ReadRequest() at end of stream: %v != io.EOF", err)
	}
}

func TestRequestReader_SplitReads(t *testing.T) {
	input := "*2\r\n$4\r\nECHO\r\n$12\r\nhello, world\r\n"

	rr := NewRequestReader(oneByteReader{strings.NewReader(input)})

	args, err := rr.ReadRequest()
	if err != nil {
		t.Fatalf("ReadRequest(): unexpected error %v", err)
	}
	if diff := deep.Equal(toStrings(args), []string{"ECHO", "hello, world"}); diff != nil {
		t.Errorf("ReadRequest(): %s", diff)
	}
}

func TestRequestReader_ProtocolErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"inline command", "PING\r\n"},
		{"missing CR", "*1\n$4\r\nPING\r\n"},
		{"array length zero", "*0\r\n"},
		{"array length negative", "*-1\r\n"},
		{"array length over limit", "*1025\r\n"},
		{"array length not a number", "*x\r\n"},
		{"element not a bulk string", "*1\r\n:42\r\n"},
		{"bulk length negative", "*1\r\n$-2\r\n"},
		{"bulk length not a number", "*1\r\n$y\r\n"},
		{"bulk length over limit", "*1\r\n$1048577\r\n"},
		{"bulk payload not CRLF terminated", "*1\r\n$4\r\nPINGXX"},
	}

	for _, tst := range tests {
		rr := NewRequestReader(strings.NewReader(tst.input))

		if _, err := rr.ReadRequest(); !errors.Is(err, ErrProtocol) {
			t.Errorf("ReadRequest(%s): %v, want protocol error", tst.name, err)
		}
	}
}

func TestRequestReader_TruncatedFrame(t *testing.T) {
	tests := []string{
		"*2\r\n$4\r\nPING\r\n",
		"*1\r\n$4\r\nPI",
		"*1\r\n",
		"*1",
	}

	for _, input := range tests {
		rr := NewRequestReader(strings.NewReader(input))

		if _, err := rr.ReadRequest(); err != io.ErrUnexpectedEOF {
			t.Errorf("ReadRequest(%q): %v != io.ErrUnexpectedEOF", input, err)
		}
	}
}
