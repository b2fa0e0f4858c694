package domain

// FileStatus represents the approval lifecycle of an uploaded budget file.
type FileStatus string

const (
	FileStatusPendingApproval  FileStatus = "pending_approval"
	FileStatusApprovedForPrint FileStatus = "approved_for_print"
	FileStatusSigning          FileStatus = "signing"
	FileStatusFinalized        FileStatus = "finalized"
	FileStatusRejected         FileStatus = "rejected"
)

// ApprovedFamily lists the statuses past the review gate. File-level report
// summaries include these; item-level projections remain finalized-only.
var ApprovedFamily = []FileStatus{
	FileStatusApprovedForPrint,
	FileStatusSigning,
	FileStatusFinalized,
}

// UserRole defines the workflow roles.
type UserRole string

const (
	RolePlanner UserRole = "planner"
	RoleManager UserRole = "manager"
	RoleAdmin   UserRole = "admin"
)

// BudgetType distinguishes an annual primary budget from mid-year additions.
type BudgetType string

const (
	BudgetTypePrimary    BudgetType = "primary"
	BudgetTypeAdditional BudgetType = "additional"
)

// ChannelType is the marketing medium a budget file belongs to. It selects
// the channel-specific column overlay and the metric field semantics.
type ChannelType string

const (
	ChannelTV      ChannelType = "TV"
	ChannelFM      ChannelType = "FM"
	ChannelOOH     ChannelType = "OOH"
	ChannelDigital ChannelType = "Digital"
	ChannelPrint   ChannelType = "Print"
	ChannelEvent   ChannelType = "Event"
	ChannelOther   ChannelType = "Other"
)

// Channels enumerates every valid channel tag.
var Channels = []ChannelType{
	ChannelTV, ChannelFM, ChannelOOH, ChannelDigital,
	ChannelPrint, ChannelEvent, ChannelOther,
}

// IsValidChannel reports whether tag is a known channel.
func IsValidChannel(tag ChannelType) bool {
	for _, c := range Channels {
		if c == tag {
			return true
		}
	}
	return false
}

// SpreadsheetExtensions maps accepted budget-file extensions (without dot)
// to their MIME content types.
var SpreadsheetExtensions = map[string]string{
	"xlsx": "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
	"xls":  "application/vnd.ms-excel",
	"csv":  "text/csv",
}

// SignedFileExtensions maps accepted signed-document scan extensions
// (without dot) to their MIME content types.
var SignedFileExtensions = map[string]string{
	"pdf":  "application/pdf",
	"jpg":  "image/jpeg",
	"jpeg": "image/jpeg",
	"png":  "image/png",
}
