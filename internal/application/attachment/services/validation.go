// Package services holds the file pipeline behind attachment uploads:
// validation, processing and preview decisions.
package services

import (
	"fmt"
	"path/filepath"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/gabriel-vasile/mimetype"

	"github.com/helpdeskhq/helpdesk/internal/shared/errors"
)

const (
	DefaultMaxFileSize = 10 << 20
	maxFileNameLength  = 255
	fallbackFileName   = "file"
)

// allowedTypes maps an extension to the sniffed MIME types it may carry.
// A sniffed type matches when it or one of its parents is listed.
var allowedTypes = map[string][]string{
	".jpg":  {"image/jpeg"},
	".jpeg": {"image/jpeg"},
	".png":  {"image/png"},
	".gif":  {"image/gif"},
	".webp": {"image/webp"},
	".pdf":  {"application/pdf"},
	".txt":  {"text/plain"},
	".log":  {"text/plain"},
	".csv":  {"text/csv", "text/plain"},
	".doc":  {"application/msword", "application/x-ole-storage"},
	".docx": {"application/vnd.openxmlformats-officedocument.wordprocessingml.document"},
	".xls":  {"application/vnd.ms-excel", "application/x-ole-storage"},
	".xlsx": {"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"},
	".zip":  {"application/zip"},
}

// DefaultExtensions lists every extension the service knows how to check.
func DefaultExtensions() []string {
	exts := make([]string, 0, len(allowedTypes))
	for ext := range allowedTypes {
		exts = append(exts, ext)
	}
	return exts
}

// ValidatedFile is an upload that passed every check.
type ValidatedFile struct {
	Name      string
	Extension string
	MimeType  string
	Content   []byte
}

type FileValidationService struct {
	maxFileSize int64
	extensions  map[string]struct{}
}

// NewFileValidationService restricts uploads to extensions (with or without
// the leading dot). An empty list allows every known extension.
func NewFileValidationService(maxFileSize int64, extensions []string) *FileValidationService {
	if maxFileSize <= 0 {
		maxFileSize = DefaultMaxFileSize
	}
	if len(extensions) == 0 {
		extensions = DefaultExtensions()
	}
	allowed := make(map[string]struct{}, len(extensions))
	for _, ext := range extensions {
		ext = strings.ToLower(strings.TrimSpace(ext))
		if !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}
		if _, known := allowedTypes[ext]; known {
			allowed[ext] = struct{}{}
		}
	}
	return &FileValidationService{maxFileSize: maxFileSize, extensions: allowed}
}

func (s *FileValidationService) MaxFileSize() int64 {
	return s.maxFileSize
}

// Validate checks size, extension and sniffed content type of one file.
func (s *FileValidationService) Validate(name string, content []byte) (*ValidatedFile, error) {
	clean := SanitizeFileName(name)

	if len(content) == 0 {
		return nil, errors.NewValidationError(fmt.Sprintf("file %q is empty", clean))
	}
	if int64(len(content)) > s.maxFileSize {
		return nil, errors.NewFileTooLargeError(clean, s.maxFileSize)
	}

	ext := strings.ToLower(filepath.Ext(clean))
	if _, ok := s.extensions[ext]; !ok {
		return nil, errors.NewUnsupportedFileTypeError(clean, fmt.Sprintf("extension %q is not allowed", ext))
	}

	detected := mimetype.Detect(content)
	if !matchesExtension(detected, ext) {
		return nil, errors.NewUnsupportedFileTypeError(clean,
			fmt.Sprintf("content looks like %s, which does not match %s", detected.String(), ext))
	}

	return &ValidatedFile{
		Name:      clean,
		Extension: ext,
		MimeType:  mimeFor(detected, ext),
		Content:   content,
	}, nil
}

func matchesExtension(detected *mimetype.MIME, ext string) bool {
	expected := allowedTypes[ext]
	for m := detected; m != nil; m = m.Parent() {
		for _, want := range expected {
			if m.Is(want) {
				return true
			}
		}
	}
	return false
}

// mimeFor reports the stored content type. Text types keep their charset,
// container formats report the type of the extension rather than the
// generic parent.
func mimeFor(detected *mimetype.MIME, ext string) string {
	if strings.HasPrefix(detected.String(), "text/") {
		if ext == ".csv" {
			return "text/csv; charset=utf-8"
		}
		return detected.String()
	}
	for _, want := range allowedTypes[ext] {
		if detected.Is(want) {
			return want
		}
	}
	return allowedTypes[ext][0]
}

// SanitizeFileName keeps the base name, drops control characters and caps
// the length while preserving the extension.
func SanitizeFileName(name string) string {
	name = strings.ReplaceAll(name, "\\", "/")
	name = filepath.Base(name)
	name = strings.Map(func(r rune) rune {
		if unicode.IsControl(r) || r == utf8.RuneError {
			return -1
		}
		return r
	}, name)
	name = strings.TrimSpace(name)
	if name == "" || name == "." || name == "/" || name == ".." {
		return fallbackFileName
	}

	if utf8.RuneCountInString(name) <= maxFileNameLength {
		return name
	}
	ext := filepath.Ext(name)
	if utf8.RuneCountInString(ext) >= maxFileNameLength {
		ext = ""
	}
	base := []rune(strings.TrimSuffix(name, ext))
	return string(base[:maxFileNameLength-utf8.RuneCountInString(ext)]) + ext
}
