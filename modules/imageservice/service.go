package imageservice

import (
	"context"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/example/image-compress-service/domain/artifact"
)

const (
	originalSubdir   = "original"
	compressedSubdir = "compressed"

	// imageTypePrefix gates which declared MIME types are accepted.
	imageTypePrefix = "image/"

	// publicPrefix is the server-relative mount point of the storage tree,
	// independent of where the tree lives on disk.
	publicPrefix = "uploads"
)

// Service runs the upload-validate-transcode-measure pipeline against a
// local storage tree. The tree root is injected; components never assume a
// hard-coded relative path. Concurrent requests are safe because staging
// names are unique by construction, not because of locking.
type Service struct {
	root string
}

// NewService creates a pipeline service rooted at the given storage path.
func NewService(root string) *Service {
	return &Service{root: root}
}

// Root returns the storage tree root this service writes under.
func (s *Service) Root() string {
	return s.root
}

// EnsureTree creates the original and compressed subtrees, including
// parents. Safe to call concurrently and repeatedly.
func (s *Service) EnsureTree() error {
	for _, sub := range []string{originalSubdir, compressedSubdir} {
		if err := os.MkdirAll(filepath.Join(s.root, sub), 0o755); err != nil {
			return fmt.Errorf("%w: create %s subtree: %v", ErrStorage, sub, err)
		}
	}
	return nil
}

// CompressUpload stages the uploaded image, produces a quality-reduced JPEG
// derivative, and reports both sizes measured from disk. The declared
// content type is checked before any byte is written; an unsupported type
// terminates the request with nothing staged. The derivative is only
// produced after the original write has been confirmed.
func (s *Service) CompressUpload(ctx context.Context, filename string, body io.Reader, contentType string, quality int) (*CompressResult, error) {
	if !strings.HasPrefix(contentType, imageTypePrefix) {
		return nil, fmt.Errorf("%w: got %q", ErrUnsupportedType, contentType)
	}

	uniqueName := UniqueName(filename)
	original, err := s.stage(uniqueName, body)
	if err != nil {
		return nil, err
	}

	derivName := DerivativeName(uniqueName)
	derivPath := filepath.Join(s.root, compressedSubdir, derivName)
	if err := transcodeJPEG(original.Path, derivPath, quality); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrTranscode, err)
	}

	// Re-measure both artifacts: the codec's actual output size is the
	// ground truth the caller needs for compression-ratio display.
	original, err = s.measure(original.Path, artifact.RoleOriginal)
	if err != nil {
		return nil, err
	}
	derivative, err := s.measure(derivPath, artifact.RoleDerivative)
	if err != nil {
		return nil, err
	}

	return &CompressResult{
		Message:         "Image compressed successfully",
		OriginalSize:    original.Size,
		CompressedSize:  derivative.Size,
		CompressedImage: path.Join(publicPrefix, compressedSubdir, derivName),
	}, nil
}

// stage streams the upload body to a uniquely named file in the original
// subtree. On failure any partial file is orphaned, never referenced.
func (s *Service) stage(uniqueName string, body io.Reader) (artifact.StoredArtifact, error) {
	dst := filepath.Join(s.root, originalSubdir, uniqueName)

	f, err := os.Create(dst)
	if err != nil {
		return artifact.StoredArtifact{}, fmt.Errorf("%w: stage original: %v", ErrStorage, err)
	}

	size, err := io.Copy(f, body)
	if err != nil {
		f.Close()
		return artifact.StoredArtifact{}, fmt.Errorf("%w: write original: %v", ErrStorage, err)
	}
	if err := f.Close(); err != nil {
		return artifact.StoredArtifact{}, fmt.Errorf("%w: close original: %v", ErrStorage, err)
	}

	return artifact.StoredArtifact{Path: dst, Size: size, Role: artifact.RoleOriginal}, nil
}

// measure reads an artifact's size from the filesystem.
func (s *Service) measure(p string, role artifact.Role) (artifact.StoredArtifact, error) {
	info, err := os.Stat(p)
	if err != nil {
		return artifact.StoredArtifact{}, fmt.Errorf("%w: stat %s: %v", ErrStorage, role, err)
	}
	return artifact.StoredArtifact{Path: p, Size: info.Size(), Role: role}, nil
}
