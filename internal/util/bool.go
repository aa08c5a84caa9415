package util

// FalseIfNil dereferences the given *bool, defaulting to false for nil.
func FalseIfNil(b *bool) bool {
	if b == nil {
		return false
	}

	return *b
}
