package base64

import "strings"

const dataPrefix = "data:"

// GetContentType extracts the MIME type from a base64 data URI such as
// "data:image/png;base64,...". Returns an empty string when the input is
// not a data URI.
func GetContentType(file string) string {
	if !strings.HasPrefix(file, dataPrefix) {
		return ""
	}

	end := strings.Index(file, ";base64,")
	if end < len(dataPrefix) {
		return ""
	}

	return file[len(dataPrefix):end]
}
