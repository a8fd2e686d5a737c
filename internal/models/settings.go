package models

// Settings is the flat site configuration: title, contact info, social
// links and so on.
type Settings map[string]string

// Get returns the value for a key, or the fallback if the key is absent
// or empty.
func (s Settings) Get(key, fallback string) string {
	if v, ok := s[key]; ok && v != "" {
		return v
	}
	return fallback
}

// Merge returns a copy of s with every entry of other applied on top.
// Neither receiver nor argument is modified.
func (s Settings) Merge(other Settings) Settings {
	merged := make(Settings, len(s)+len(other))
	for k, v := range s {
		merged[k] = v
	}
	for k, v := range other {
		merged[k] = v
	}
	return merged
}
