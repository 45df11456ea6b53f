package ocr

// Backend defines the interface for text-recognition backends
type Backend interface {
	// RecognizeText reads all text from a receipt image/PDF and returns it raw
	RecognizeText(imageData []byte, contentType string) (string, error)
	// Close closes the backend and releases resources
	Close() error
}
