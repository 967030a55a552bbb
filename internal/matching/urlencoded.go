package matching

import "net/url"

// URLEncodedContains reports whether the raw urlencoded content (a query
// string or an application/x-www-form-urlencoded body) contains at least
// one name=value pair whose decoded name and value equal the given strings
// byte-for-byte.
func URLEncodedContains(raw, name, value string) bool {
	values, err := url.ParseQuery(raw)
	if err != nil {
		return false
	}
	for _, v := range values[name] {
		if v == value {
			return true
		}
	}
	return false
}

// ValuesContain reports whether name=value is present in an
// already-parsed url.Values multimap.
func ValuesContain(values url.Values, name, value string) bool {
	for _, v := range values[name] {
		if v == value {
			return true
		}
	}
	return false
}
