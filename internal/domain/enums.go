package domain

// FileType represents the allowed upload types for the import pipeline.
type FileType string

const (
	FileTypeXLSX FileType = "xlsx"
	FileTypeXLS  FileType = "xls"
	FileTypePDF  FileType = "pdf"
)

// AllowedExtensions maps file extensions (without dot) to FileType.
var AllowedExtensions = map[string]FileType{
	"xlsx": FileTypeXLSX,
	"xlsm": FileTypeXLSX,
	"xls":  FileTypeXLS,
	"pdf":  FileTypePDF,
}

// ProposalStatus represents the lifecycle state of a proposal.
type ProposalStatus string

const (
	ProposalStatusDraft ProposalStatus = "draft"
	ProposalStatusSent  ProposalStatus = "sent"
)

// AuditAction labels an audit log entry.
type AuditAction string

const (
	AuditProposalImported AuditAction = "proposal.imported"
)

// Defaults applied during parse normalization. Descriptions and units follow
// the Turkish business convention of the source documents.
const (
	DefaultCurrency    = "EUR"
	DefaultVATRate     = 20.0
	DefaultUnit        = "Adet"
	DefaultDescription = "Ürün"
)
