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
	RemoveDirError

	// Logging errors
	CreateLogFileError

	// Database errors
	DBConnectionError
	DBTableCheckError
	DBNotConnectedError
	DBTableExistsCheckError
	DBQueryTablesError
	DBScanTableError
	DBDropTableError
	DBRunStatusError

	// Schema errors
	SchemaGORMConnectionError
	SchemaCreateError
	SchemaMigrateError

	// Jobs file errors
	JobsFileError
	JobsEmptyError

	// Fetch errors
	FetchDownloadError
	FetchHTTPStatusError
	FetchRewriteError
	FetchNoLinksError

	// Detector errors
	DetectorNoInputError
	DetectorExitError
	DetectorStartError
	DetectorProfileError
	DetectorTransferError

	// Pipeline errors
	PipelineCancelledError
	PipelineAllJobsFailedError

	// Parser errors
	ParseBlockError
	ParseRegionsJSError
	ParseRowError

	// Harvest errors
	HarvestSaveError
	HarvestNoResultsError

	// BiG-SLICE errors
	BigsliceOpenError
	BigsliceQueryError

	// Reconcile errors
	ReconcileLoadError
	ReconcileSaveError
	ReconcileNoRegionsError
	ReconcileInputError
)
