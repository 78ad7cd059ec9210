package errcode

import (
	"github.com/gnames/gn"
)

const (
	UnknownError gn.ErrorCode = iota

	// File System errors
	CreateDirError
	CopyFileError
	ReadFileError
	WriteFileError

	// Logging errors
	CreateLogFileError

	// Database errors
	DBConnectionError
	DBNotConnectedError
	DBTableCheckError
	DBDropTableError

	// Schema errors
	SchemaCreateError
	SchemaMigrateError

	// Lookup errors
	LookupLoadError
	LookupConfigError
	LookupImportError

	// Field collection errors
	FieldsReadError
	FieldsDecodeError
	FieldsWriteError

	// Run errors
	RunNoFieldsError
	RunReportError

	// Web service errors
	ServeError
)
