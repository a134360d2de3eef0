package compress

// Compress encodes article draft and body text for storage at rest.
type Compress interface {
	// Name identifies the codec, recorded next to the encoded data.
	Name() string
	Encode(data []byte) ([]byte, error)
	Decode(data []byte) ([]byte, error)
}

// FromName returns the codec recorded for a stored article.
func FromName(name string) Compress {
	if name == "gzip" {
		return NewGZip()
	}

	return NewNop()
}
