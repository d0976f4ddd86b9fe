package pipeline_service

import (
	"crypto/sha1"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"os"
)

const fingerprintChunkSize = 64 * 1024

// fingerprintFile читает файл фиксированными блоками и возвращает SHA-1
// содержимого. Размер блока на результат не влияет.
func fingerprintFile(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrFileOpenFailed, err)
	}
	defer f.Close()

	h := sha1.New()
	buf := make([]byte, fingerprintChunkSize)
	for {
		n, err := f.Read(buf)
		if n > 0 {
			h.Write(buf[:n])
		}
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return "", fmt.Errorf("%w: %v", ErrFileReadFailed, err)
		}
	}

	return hex.EncodeToString(h.Sum(nil)), nil
}
