package loanexport

// ContentType is the media type of Export.Data.
const ContentType = "text/csv; charset=utf-8"

// Export is a rendered CSV document.
type Export struct {
	FileName string
	Rows     int
	Data     []byte
}
