package storage

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// Bucket names. They mirror the table-per-concern split: listing photos and
// identity documents never share a directory.
const (
	BucketPropertyImages        = "property-images"
	BucketVerificationDocuments = "verification-documents"
)

// Store keeps uploaded objects on local disk under <root>/<bucket>/ and
// hands out public URLs rooted at <baseURL>/storage/.
type Store struct {
	root    string
	baseURL string
	logger  *logrus.Logger
}

func NewStore(root, baseURL string, logger *logrus.Logger) (*Store, error) {
	for _, bucket := range []string{BucketPropertyImages, BucketVerificationDocuments} {
		if err := os.MkdirAll(filepath.Join(root, bucket), 0o755); err != nil {
			return nil, fmt.Errorf("failed to create bucket %s: %w", bucket, err)
		}
	}
	return &Store{
		root:    root,
		baseURL: strings.TrimSuffix(baseURL, "/"),
		logger:  logger,
	}, nil
}

// Root returns the directory the router serves under /storage/.
func (s *Store) Root() string {
	return s.root
}

// Upload writes the object under a randomized path inside the bucket and
// returns the object path together with its public URL.
func (s *Store) Upload(bucket, filename string, r io.Reader) (string, string, error) {
	objectPath := fmt.Sprintf("%s/%s-%s", bucket, uuid.New().String(), sanitize(filename))

	f, err := os.Create(filepath.Join(s.root, filepath.FromSlash(objectPath)))
	if err != nil {
		return "", "", fmt.Errorf("failed to create object: %w", err)
	}
	defer f.Close()

	if _, err := io.Copy(f, r); err != nil {
		os.Remove(f.Name())
		return "", "", fmt.Errorf("failed to write object: %w", err)
	}

	s.logger.WithField("object", objectPath).Debug("Stored object")
	return objectPath, s.PublicURL(objectPath), nil
}

// PublicURL returns the URL an object is served under.
func (s *Store) PublicURL(objectPath string) string {
	return s.baseURL + "/storage/" + objectPath
}

// ObjectPath extracts the bucket-relative object path from a public URL
// produced by this store. Returns "" for foreign URLs.
func (s *Store) ObjectPath(publicURL string) string {
	prefix := s.baseURL + "/storage/"
	if !strings.HasPrefix(publicURL, prefix) {
		return ""
	}
	return strings.TrimPrefix(publicURL, prefix)
}

// Remove deletes a stored object. Removing a missing object is not an
// error.
func (s *Store) Remove(objectPath string) error {
	err := os.Remove(filepath.Join(s.root, filepath.FromSlash(objectPath)))
	if err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

// sanitize strips path separators and traversal sequences from an uploaded
// filename. The uuid prefix keeps names unique; this only keeps them tame.
func sanitize(name string) string {
	name = filepath.Base(strings.ReplaceAll(name, "\\", "/"))
	if name == "." || name == ".." || name == "" {
		return "file"
	}
	return strings.ReplaceAll(name, " ", "_")
}
