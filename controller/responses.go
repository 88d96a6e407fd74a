package controller

import (
	"fmt"
	"strings"

	"github.com/mshaverdo/assert"
	"github.com/mshaverdo/daikon/core"
	"github.com/mshaverdo/daikon/message"
)

func getResponseArityError(cmd string) *message.ResponseStatus {
	return message.NewResponseStatus(
		message.StatusInvalidArguments,
		fmt.Sprintf("wrong number of arguments for '%s' command", strings.ToLower(cmd)),
	)
}

func getResponseInvalidArguments(text string) *message.ResponseStatus {
	return message.NewResponseStatus(message.StatusInvalidArguments, text)
}

func getResponseUnknownCommand(cmd string, args [][]byte) *message.ResponseStatus {
	quoted := make([]string, len(args))
	for i, v := range args {
		quoted[i] = fmt.Sprintf("'%s'", v)
	}

	return message.NewResponseStatus(
		message.StatusInvalidCommand,
		fmt.Sprintf("unknown command '%s', with args beginning with: %s", cmd, strings.Join(quoted, ", ")),
	)
}

func getResponseCommandError(cmd string, err error) *message.ResponseStatus {
	statusMap := map[error]message.Status{
		core.ErrWrongType:     message.StatusTypeMismatch,
		core.ErrInvalidParams: message.StatusInvalidArguments,
		core.ErrNotFound:      message.StatusNotFound,
		ErrInterrupted:        message.StatusError,
	}

	status, ok := statusMap[err]
	assert.True(ok, "unknown error: "+err.Error())

	return message.NewResponseStatus(status, err.Error())
}

func getResponseStatusOk(text string) *message.ResponseStatus {
	return message.NewResponseStatus(message.StatusOk, text)
}

func getResponseInt(value int64) *message.ResponseInt {
	return message.NewResponseInt(message.StatusOk, value)
}

func getResponseBulk(value []byte) *message.ResponseBulk {
	return message.NewResponseBulk(message.StatusOk, value)
}

func getResponseNilBulk() *message.ResponseBulk {
	return message.NewResponseBulk(message.StatusNotFound, nil)
}

func getResponseArray(values [][]byte) *message.ResponseArray {
	return message.NewResponseArray(message.StatusOk, values)
}

func getResponseNilArray() *message.ResponseArray {
	return message.NewResponseArray(message.StatusNotFound, nil)
}
