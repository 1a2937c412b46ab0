package dto

// File import statuses reported per uploaded file.
const (
	StatusSuccess   = "success"
	StatusError     = "error"
	StatusUnmatched = "unmatched"
)

// ImportResponse is returned by POST /api/v1/imports (single file, explicit account).
type ImportResponse struct {
	Success       bool     `json:"success" example:"true"`
	ImportedCount int      `json:"imported_count" example:"42"`
	SkippedCount  int      `json:"skipped_count" example:"3"`
	TotalRows     int      `json:"total_rows" example:"45"`
	Errors        []string `json:"errors"`
}

// FileResult is the outcome of importing one file of a multi-file request.
type FileResult struct {
	Filename      string   `json:"filename" example:"APEX12345678_performance.csv"`
	AccountNumber string   `json:"account_number" example:"APEX12345678"`
	AccountID     *string  `json:"account_id"`
	AccountLabel  string   `json:"account_label"`
	ClientName    string   `json:"client_name"`
	ImportedCount int      `json:"imported_count"`
	SkippedCount  int      `json:"skipped_count"`
	TotalRows     int      `json:"total_rows"`
	Errors        []string `json:"errors"`
	Status        string   `json:"status" enums:"success,error,unmatched"`
}

// ImportSummary aggregates counts across every file of a multi-file request.
type ImportSummary struct {
	TotalImported  int `json:"total_imported"`
	TotalSkipped   int `json:"total_skipped"`
	FilesProcessed int `json:"files_processed"`
	FilesFailed    int `json:"files_failed"`
	TotalFiles     int `json:"total_files"`
}

// MultiImportResponse is returned by POST /api/v1/imports/batch.
type MultiImportResponse struct {
	Results []FileResult  `json:"results"`
	Summary ImportSummary `json:"summary"`
}
