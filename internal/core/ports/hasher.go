package ports

// Hasher computes content fingerprints for files.
//
//go:generate go run go.uber.org/mock/mockgen -source=hasher.go -destination=mocks/mock_hasher.go -package=mocks
type Hasher interface {
	// ComputeFileHash returns a hex-encoded hash of the file's content.
	ComputeFileHash(path string) (string, error)
}
