package ports

// Storage defines the file-storage interface the publish pipeline depends on.
// All paths are vault-relative and slash-separated. Write and WriteBinary are
// create-or-update; CreateFolder is a no-op when the folder already exists.
type Storage interface {
	Read(path string) (string, error)
	ReadBinary(path string) ([]byte, error)
	Write(path, content string) error
	WriteBinary(path string, data []byte) error
	Exists(path string) bool
	CreateFolder(path string) error
	List(folder string) ([]string, error)
}
