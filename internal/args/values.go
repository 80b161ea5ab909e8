package args

import "strings"

// KeyVal is one entry of a key=value list. Value is empty for a bare key.
type KeyVal struct {
	Key   string
	Value string
}

// KeyVals is an ordered key=value list.
type KeyVals []KeyVal

// Get returns the last value bound to key.
func (kv KeyVals) Get(key string) (string, bool) {
	for i := len(kv) - 1; i >= 0; i-- {
		if kv[i].Key == key {
			return kv[i].Value, true
		}
	}
	return "", false
}

// Has reports whether key is present.
func (kv KeyVals) Has(key string) bool {
	_, ok := kv.Get(key)
	return ok
}

// ParseKeyVals splits "a=1, b, c = x" into entries.
func ParseKeyVals(s string) KeyVals {
	var out KeyVals
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		k, v, _ := strings.Cut(part, "=")
		out = append(out, KeyVal{Key: strings.TrimSpace(k), Value: strings.TrimSpace(v)})
	}
	return out
}
