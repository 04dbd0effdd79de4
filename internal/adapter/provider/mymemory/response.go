package mymemory

import (
	"encoding/json"
	"strconv"
	"strings"
)

// apiResponse is the subset of the MyMemory /get response that is used.
type apiResponse struct {
	ResponseData struct {
		TranslatedText *string  `json:"translatedText"`
		Match          *float64 `json:"match"`
	} `json:"responseData"`
	// ResponseStatus is a number on success but a quoted string on some
	// error responses ("403"), so it is decoded lazily.
	ResponseStatus  json.RawMessage `json:"responseStatus"`
	ResponseDetails string          `json:"responseDetails"`
}

// status returns the embedded response status, or 0 when absent or unparsable.
func (r apiResponse) status() int {
	raw := strings.Trim(strings.TrimSpace(string(r.ResponseStatus)), `"`)
	if raw == "" {
		return 0
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0
	}
	return n
}
