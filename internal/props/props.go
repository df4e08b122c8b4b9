package props

// Store is the property store capability.
//
// Get returns def when key is absent or its value is empty.
// Set with an empty value clears the property.
// ForEach visits every property currently present, including empty ones
// when the backend retains them.
type Store interface {
	Get(key, def string) string
	Set(key, value string) error
	ForEach(fn func(key, value string)) error
}
