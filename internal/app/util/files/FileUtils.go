package files

import (
	"bufio"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"

	apperrors "transcribe-relay/internal/app/errors"
)

const (
	// sniffLen is how much of an upload is inspected to detect its type.
	sniffLen = 3072

	maxCreateAttempts = 5
	fallbackStem      = "upload"
)

// SavedFile describes an upload written to disk.
type SavedFile struct {
	Path     string
	Size     int64
	MIMEType string
}

// UniqueName derives a collision-resistant file name from a client supplied
// name: "<stem>_<16 hex chars><ext>". Directory components are dropped.
func UniqueName(original string) string {
	base := sanitizeBase(original)
	ext := filepath.Ext(base)
	stem := strings.TrimSuffix(base, ext)
	if stem == "" {
		stem = fallbackStem
	}
	return fmt.Sprintf("%s_%s%s", stem, randomHex(), ext)
}

// SaveUpload writes r into dir under a unique name derived from filename.
// When filename has no extension one is guessed from the content. maxBytes
// <= 0 disables the size limit. The file is removed again on any error.
func SaveUpload(dir, filename string, r io.Reader, maxBytes int64) (*SavedFile, error) {
	if err := EnsureDir(dir); err != nil {
		return nil, err
	}

	br := bufio.NewReaderSize(r, sniffLen)
	head, err := br.Peek(sniffLen)
	if err != nil && !errors.Is(err, io.EOF) && !errors.Is(err, bufio.ErrBufferFull) {
		return nil, apperrors.Wrap(apperrors.ErrFileReadFailed, err.Error())
	}
	mime := mimetype.Detect(head)

	name := sanitizeBase(filename)
	if filepath.Ext(name) == "" {
		name += mime.Extension()
	}

	file, path, err := createExclusive(dir, name)
	if err != nil {
		return nil, err
	}

	var src io.Reader = br
	if maxBytes > 0 {
		src = io.LimitReader(br, maxBytes+1)
	}

	written, copyErr := io.Copy(file, src)
	closeErr := file.Close()

	switch {
	case copyErr != nil:
		_ = os.Remove(path)
		return nil, apperrors.Wrapf(apperrors.ErrFileWriteFailed, "copy upload to %s: %v", path, copyErr)
	case closeErr != nil:
		_ = os.Remove(path)
		return nil, apperrors.Wrapf(apperrors.ErrFileWriteFailed, "close %s: %v", path, closeErr)
	case maxBytes > 0 && written > maxBytes:
		_ = os.Remove(path)
		return nil, &TooLargeError{Limit: maxBytes}
	}

	return &SavedFile{Path: path, Size: written, MIMEType: mime.String()}, nil
}

// TooLargeError reports an upload over the byte limit. It matches
// errors.ErrUploadTooLarge with errors.Is.
type TooLargeError struct {
	Limit int64
}

func (e *TooLargeError) Error() string {
	return fmt.Sprintf("upload larger than %d bytes: %v", e.Limit, apperrors.ErrUploadTooLarge)
}

func (e *TooLargeError) Unwrap() error {
	return apperrors.ErrUploadTooLarge
}

// Remove deletes path. A file that is already gone is not an error.
func Remove(path string) error {
	if path == "" {
		return nil
	}
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

// EnsureDir creates dir if it does not exist.
func EnsureDir(dir string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return apperrors.Wrapf(apperrors.ErrFileWriteFailed, "create directory %s: %v", dir, err)
	}
	return nil
}

// createExclusive opens a fresh file, retrying with a new random suffix on collision.
func createExclusive(dir, name string) (*os.File, string, error) {
	var lastErr error
	for attempt := 0; attempt < maxCreateAttempts; attempt++ {
		path := filepath.Join(dir, UniqueName(name))
		file, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o600)
		if err == nil {
			return file, path, nil
		}
		if !os.IsExist(err) {
			return nil, "", apperrors.Wrapf(apperrors.ErrFileWriteFailed, "create %s: %v", path, err)
		}
		lastErr = err
	}
	return nil, "", apperrors.Wrapf(apperrors.ErrFileWriteFailed, "no free file name after %d attempts: %v", maxCreateAttempts, lastErr)
}

// sanitizeBase keeps only the final path element of a client file name.
func sanitizeBase(name string) string {
	name = strings.ReplaceAll(name, `\`, "/")
	base := filepath.Base(name)
	switch base {
	case ".", "..", "/":
		return ""
	}
	return base
}

// randomHex returns 16 hex characters from 8 random bytes. It panics if the
// system random source fails, as uuid.NewString does.
func randomHex() string {
	var buf [8]byte
	if _, err := rand.Read(buf[:]); err != nil {
		panic(fmt.Sprintf("files: reading random bytes: %v", err))
	}
	return hex.EncodeToString(buf[:])
}
