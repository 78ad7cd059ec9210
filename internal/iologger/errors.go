package iologger

import (
	"fmt"
	"runtime"

	"github.com/gnames/gn"
	"github.com/gnames/gnplet/pkg/errcode"
)

// OpenLogError reports a log file that cannot be opened for appending.
func OpenLogError(path string, err error) error {
	msg := "Cannot open log <em>%s</em>, " +
		"set <em>GNPLET_LOG_DESTINATION=stderr</em> to log to the terminal"
	vars := []any{path}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc).Name()
	return &gn.Error{
		Code: errcode.CreateLogFileError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("from %s: open %s: %w", fn, path, err),
	}
}
