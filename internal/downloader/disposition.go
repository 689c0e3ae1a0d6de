package downloader

import (
	"mime"
	"net/url"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/ianaindex"
)

// filenameFromDisposition returns the filename suggested by a content-disposition header, or "" if there is none.
//
// An RFC 5987 filename* parameter takes precedence over filename. A header which is not
// a valid media type falls back to the text after the last "filename=", unquoted.
func filenameFromDisposition(header string) string {
	header = strings.TrimSpace(header)
	if header == "" {
		return ""
	}

	if name := extendedFilename(header); name != "" {
		return name
	}

	_, params, err := mime.ParseMediaType(header)
	if err == nil {
		if name := params["filename"]; utf8.ValidString(name) {
			return name
		}
		return ""
	}

	i := strings.LastIndex(header, "filename=")
	if i < 0 {
		return ""
	}
	return strings.Trim(header[i+len("filename="):], `"`)
}

// extendedFilename decodes the filename* parameter of header, as charset'language'percent-encoded-value.
func extendedFilename(header string) string {
	for _, param := range strings.Split(header, ";") {
		key, value, found := strings.Cut(strings.TrimSpace(param), "=")
		if !found || !strings.EqualFold(strings.TrimSpace(key), "filename*") {
			continue
		}
		value = strings.Trim(strings.TrimSpace(value), `"`)

		charset, rest, found := strings.Cut(value, "'")
		if !found {
			return ""
		}
		_, encoded, found := strings.Cut(rest, "'")
		if !found {
			return ""
		}
		raw, err := url.PathUnescape(encoded)
		if err != nil {
			return ""
		}
		return decodeCharset(charset, raw)
	}
	return ""
}

// decodeCharset converts raw from the IANA charset to UTF-8. It returns "" when it cannot.
func decodeCharset(charset, raw string) string {
	switch strings.ToLower(charset) {
	case "utf-8", "us-ascii":
		if !utf8.ValidString(raw) {
			return ""
		}
		return raw
	}

	enc, err := ianaindex.MIME.Encoding(charset)
	if err != nil || enc == nil {
		return ""
	}
	s, err := enc.NewDecoder().String(raw)
	if err != nil {
		return ""
	}
	return s
}
