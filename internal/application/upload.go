package application

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"slices"
	"strings"

	"github.com/google/uuid"
	"github.com/linskybing/formflow/internal/config"
	"github.com/linskybing/formflow/internal/repository"
	"github.com/linskybing/formflow/internal/storage"
	"github.com/linskybing/formflow/pkg/schema"
)

var (
	ErrStorageUnavailable   = errors.New("object storage is not configured")
	ErrUnsupportedMediaType = errors.New("unsupported file type")
	ErrFileTooLarge         = errors.New("file is too large")
	ErrMissingFilename      = errors.New("file name is required")
)

type UploadInput struct {
	Filename    string
	ContentType string
	Size        int64
	Body        io.Reader
	// FormID and ComponentID, when both set, check the file against that
	// file component's accept list and size limit.
	FormID      uint
	ComponentID uint
}

type UploadResult struct {
	Src      string `json:"src"`
	Filename string `json:"filename"`
}

type UploadService struct {
	Repos        *repository.Repos
	Objects      storage.ObjectStore
	AllowedTypes []string
	MaxBytes     int64
}

func NewUploadService(repos *repository.Repos, objects storage.ObjectStore) *UploadService {
	return &UploadService{
		Repos:        repos,
		Objects:      objects,
		AllowedTypes: config.UploadAllowedTypes,
		MaxBytes:     config.UploadMaxBytes,
	}
}

func (s *UploadService) Upload(ctx context.Context, in UploadInput) (*UploadResult, error) {
	if s.Objects == nil {
		return nil, ErrStorageUnavailable
	}
	filename := filepath.Base(strings.TrimSpace(in.Filename))
	if filename == "" || filename == "." || filename == "/" {
		return nil, ErrMissingFilename
	}
	contentType := strings.ToLower(strings.TrimSpace(in.ContentType))
	if i := strings.Index(contentType, ";"); i >= 0 {
		contentType = strings.TrimSpace(contentType[:i])
	}

	accept, maxBytes := s.AllowedTypes, s.MaxBytes
	if in.FormID != 0 && in.ComponentID != 0 {
		rules, err := s.fileRules(ctx, in.FormID, in.ComponentID)
		if err != nil {
			return nil, err
		}
		if len(rules.Accept) > 0 {
			accept = rules.Accept
		}
		if rules.MaxSizeMB != nil {
			maxBytes = int64(*rules.MaxSizeMB * 1024 * 1024)
		}
	}

	if !mediaTypeAllowed(accept, contentType) {
		return nil, fmt.Errorf("%w: %s (allowed: %s)", ErrUnsupportedMediaType, contentType, strings.Join(accept, ", "))
	}
	if maxBytes > 0 && in.Size > maxBytes {
		return nil, fmt.Errorf("%w: %d bytes exceeds %d", ErrFileTooLarge, in.Size, maxBytes)
	}

	name := uuid.NewString() + "-" + filename
	src, err := s.Objects.Put(ctx, name, in.Body, in.Size, contentType)
	if err != nil {
		return nil, persistenceError("upload file", err)
	}
	return &UploadResult{Src: src, Filename: name}, nil
}

func (s *UploadService) fileRules(ctx context.Context, formID, componentID uint) (schema.FileRules, error) {
	if _, err := findForm(ctx, s.Repos, formID); err != nil {
		return schema.FileRules{}, err
	}
	descriptors, err := loadDescriptors(ctx, s.Repos, formID)
	if err != nil {
		return schema.FileRules{}, persistenceError("load components", err)
	}
	for _, d := range descriptors {
		if d.ID != componentID {
			continue
		}
		f := schema.Compile(d)
		rules, ok := f.Rules.(schema.FileRules)
		if !ok {
			return schema.FileRules{}, fmt.Errorf("%w: component %d is not a file component", ErrInvalidComponent, componentID)
		}
		return rules, nil
	}
	return schema.FileRules{}, fmt.Errorf("%w: component %d is not part of form %d", ErrInvalidComponent, componentID, formID)
}

// mediaTypeAllowed matches exact types and wildcards such as "image/*".
func mediaTypeAllowed(accept []string, contentType string) bool {
	if contentType == "" {
		return false
	}
	if slices.Contains(accept, contentType) {
		return true
	}
	for _, pattern := range accept {
		if base, ok := strings.CutSuffix(strings.ToLower(pattern), "/*"); ok && strings.HasPrefix(contentType, base+"/") {
			return true
		}
	}
	return false
}
