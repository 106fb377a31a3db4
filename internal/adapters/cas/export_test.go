package cas

// NewStoreWithPath exposes newStoreWithPath to the external test package.
func NewStoreWithPath(path string) (*Store, error) {
	return newStoreWithPath(path)
}
