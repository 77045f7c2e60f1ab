package widget

import "strings"

const upperhex = "0123456789ABCDEF"

// Compose builds the frame address from its fragments and an optional query
// parameter. Fragments are concatenated as-is. The parameter is appended only
// when both key and value are non-empty, with "&" if the concatenated base
// already carries a query and "?" otherwise.
func Compose(fragments []string, queryKey, queryValue string) string {
	base := strings.Join(fragments, "")
	if queryKey == "" || queryValue == "" {
		return base
	}

	sep := "?"
	if strings.Contains(base, "?") {
		sep = "&"
	}
	return base + sep + EncodeComponent(queryKey) + "=" + EncodeComponent(queryValue)
}

// EncodeComponent percent-encodes s as a single URI component. Only ASCII
// letters, digits and - _ . ! ~ * ' ( ) are left unescaped.
func EncodeComponent(s string) string {
	n := 0
	for i := 0; i < len(s); i++ {
		if !unreserved(s[i]) {
			n++
		}
	}
	if n == 0 {
		return s
	}

	var sb strings.Builder
	sb.Grow(len(s) + 2*n)
	for i := 0; i < len(s); i++ {
		c := s[i]
		if unreserved(c) {
			sb.WriteByte(c)
			continue
		}
		sb.WriteByte('%')
		sb.WriteByte(upperhex[c>>4])
		sb.WriteByte(upperhex[c&15])
	}
	return sb.String()
}

func unreserved(c byte) bool {
	switch {
	case 'a' <= c && c <= 'z', 'A' <= c && c <= 'Z', '0' <= c && c <= '9':
		return true
	}
	switch c {
	case '-', '_', '.', '!', '~', '*', '\'', '(', ')':
		return true
	}
	return false
}
