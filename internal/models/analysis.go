package models

// DocumentMeta describes a resolved source document.
type DocumentMeta struct {
	Name     string `json:"name"`
	MimeType string `json:"mimeType"`
	Size     int64  `json:"size"`
}

// PageAnalysis is the normalized extraction result for a single report page.
// Every field is populated even when the model omitted the corresponding key.
type PageAnalysis struct {
	Success            bool                   `json:"success"`
	Metadata           AnalysisMetadata       `json:"metadata"`
	PageIdentification PageIdentification     `json:"page_identification"`
	StructuredData     map[string]interface{} `json:"structured_data"`
	Tables             []interface{}          `json:"tables"`
	Validation         ValidationInfo         `json:"validation"`
	AdditionalFields   map[string]interface{} `json:"additional_fields"`
}

// AnalysisMetadata records provenance for one analyzed page.
type AnalysisMetadata struct {
	SourceFile  string `json:"source_file"`
	FileID      string `json:"file_id"`
	PageNumber  int    `json:"page_number"`
	TotalPages  int    `json:"total_pages"`
	PageType    string `json:"page_type"`
	ProcessedAt string `json:"processed_at"`
	Model       string `json:"gemini_model"`
	DPI         int    `json:"dpi"`
}

// PageIdentification carries the page marker the model read from the top
// right of the scan. Key names follow the report's own terminology.
type PageIdentification struct {
	Number string `json:"その番号"`
	Title  string `json:"タイトル"`
}

// ValidationInfo is a stable validation block. SchemaMatched is always true:
// no post-validation of the model output is performed, the block exists so
// the response shape stays fixed for downstream consumers.
type ValidationInfo struct {
	SchemaMatched  bool     `json:"schema_matched"`
	UnmappedFields []string `json:"unmapped_fields"`
	GeminiNotes    string   `json:"gemini_notes"`
}

// BatchAnalysis aggregates per-page outcomes for a page range. Results and
// Errors are disjoint by page and together cover the requested range exactly.
type BatchAnalysis struct {
	Success  bool          `json:"success"`
	Metadata BatchMetadata `json:"metadata"`
	Results  []PageResult  `json:"results"`
	Errors   []PageError   `json:"errors"`
}

// BatchMetadata records provenance and counts for a batch run.
type BatchMetadata struct {
	SourceFile     string `json:"source_file"`
	FileID         string `json:"file_id"`
	TotalPages     int    `json:"total_pages"`
	ProcessedPages int    `json:"processed_pages"`
	ErrorPages     int    `json:"error_pages"`
	ProcessedAt    string `json:"processed_at"`
	Model          string `json:"gemini_model"`
}

// PageResult is one successfully analyzed page within a batch.
type PageResult struct {
	PageNumber int           `json:"page_number"`
	PageType   string        `json:"page_type"`
	Data       *PageAnalysis `json:"data"`
}

// PageError is one failed page within a batch. It never carries a payload.
type PageError struct {
	Page  int    `json:"page"`
	Error string `json:"error"`
}

// PageCountResult is the outcome of a page-count lookup.
type PageCountResult struct {
	PageCount int    `json:"pageCount"`
	FileName  string `json:"fileName"`
}

// PageImage is a single rasterized page returned by the convert operation.
type PageImage struct {
	Base64Image string `json:"base64Image"`
	MimeType    string `json:"mimeType"`
	PageNumber  int    `json:"pageNumber"`
	FileName    string `json:"fileName"`
}
