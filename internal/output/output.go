package output

import (
	"fmt"
	"io"
	"os"
)

// Formats accepted by Output
const (
	FormatTable = "table"
	FormatJSON  = "json"
	FormatCSV   = "csv"
)

// Output writes data to stdout in the specified format
func Output(format string, data any) error {
	return Write(os.Stdout, format, data)
}

// Write writes data to w in the specified format
func Write(w io.Writer, format string, data any) error {
	switch format {
	case FormatJSON:
		return JSONTo(w, data)
	case FormatCSV:
		return CSVTo(w, data)
	case FormatTable, "":
		return TableTo(w, data)
	default:
		return fmt.Errorf("unknown output format: %s", format)
	}
}
