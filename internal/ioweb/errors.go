package ioweb

import (
	"fmt"
	"runtime"

	"github.com/gnames/gn"
	"github.com/gnames/gnplet/pkg/errcode"
)

// ServeError is returned when the HTTP server cannot start or stop.
func ServeError(port int, err error) error {
	msg := "Cannot serve on port <em>%d</em>"
	vars := []any{port}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.ServeError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("from %s: server on port %d: %w", fn, port, err),
	}
}
