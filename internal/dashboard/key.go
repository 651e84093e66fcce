package dashboard

import "strings"

// ReadKey returns everything after the first '#' of a page address,
// undecoded. An address without a fragment has an empty key.
func ReadKey(address string) string {
	i := strings.IndexByte(address, '#')
	if i < 0 {
		return ""
	}
	return address[i+1:]
}
