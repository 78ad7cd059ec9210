package iorun

import (
	"errors"
	"fmt"
	"runtime"

	"github.com/gnames/gn"
	"github.com/gnames/gnplet/pkg/errcode"
)

// NoFieldsError is returned when the input has no fields to process.
func NoFieldsError(path string) error {
	msg := "No fields found in <em>%s</em>"
	vars := []any{path}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.RunNoFieldsError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("from %s: %w", fn, errors.New("empty field collection")),
	}
}

// ReportError is returned when the run summary cannot be written.
func ReportError(path string, err error) error {
	msg := "Cannot write run report to <em>%s</em>"
	vars := []any{path}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.RunReportError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("from %s: cannot write report: %w", fn, err),
	}
}
