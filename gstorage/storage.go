package gstorage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"time"

	"cloud.google.com/go/storage"
	"github.com/Daskott/sosphone/logger"
	"github.com/pkg/errors"
	"google.golang.org/api/option"
)

const transferTimeout = time.Second * 50

var (
	ErrObjectNotExist = storage.ErrObjectNotExist

	logg = logger.NewLogger()
)

// Bucket is where backups are kept
type Bucket interface {
	Upload(ctx context.Context, object string, r io.Reader) error
	Download(ctx context.Context, object string, w io.Writer) error
}

type GStorage struct {
	storageClient *storage.Client
	bucket        string
}

func NewGStorage(credentialsFilePath, bucket string) (*GStorage, error) {
	var client *storage.Client
	var err error

	if credentialsFilePath != "" {
		client, err = storage.NewClient(context.Background(), option.WithCredentialsFile(credentialsFilePath))
	} else {
		client, err = storage.NewClient(context.Background())
	}

	if err != nil {
		return nil, fmt.Errorf("NewGStorage: %v", err)
	}

	return &GStorage{storageClient: client, bucket: bucket}, nil
}

func (gs *GStorage) Close() error {
	return gs.storageClient.Close()
}

func (gs *GStorage) Upload(ctx context.Context, object string, r io.Reader) error {
	wc := gs.storageClient.Bucket(gs.bucket).Object(object).NewWriter(ctx)
	if _, err := io.Copy(wc, r); err != nil {
		wc.Close()
		return fmt.Errorf("io.Copy: %v", err)
	}
	if err := wc.Close(); err != nil {
		return fmt.Errorf("Writer.Close: %v", err)
	}
	return nil
}

func (gs *GStorage) Download(ctx context.Context, object string, w io.Writer) error {
	rc, err := gs.storageClient.Bucket(gs.bucket).Object(object).NewReader(ctx)
	if err == storage.ErrObjectNotExist {
		return err
	}
	if err != nil {
		return fmt.Errorf("Object(%q).NewReader: %v", object, err)
	}
	defer rc.Close()

	if _, err := io.Copy(w, rc); err != nil {
		return fmt.Errorf("io.Copy: %v", err)
	}
	return nil
}

// Backup copies a local file to & from '<prefix>/<file name>' in a bucket
type Backup struct {
	bucket Bucket
	prefix string
}

func NewBackup(bucket Bucket, prefix string) *Backup {
	return &Backup{bucket: bucket, prefix: prefix}
}

// Object returns the name of the object the file at filePath is backed up to
func (b *Backup) Object(filePath string) string {
	return path.Join(b.prefix, filepath.Base(filePath))
}

// Push uploads the file at filePath
func (b *Backup) Push(filePath string) error {
	f, err := os.Open(filePath)
	if err != nil {
		return fmt.Errorf("os.Open: %v", err)
	}
	defer f.Close()

	ctx, cancel := context.WithTimeout(context.Background(), transferTimeout)
	defer cancel()

	object := b.Object(filePath)
	if err := b.bucket.Upload(ctx, object, f); err != nil {
		return errors.Wrapf(err, "unable to upload %v", object)
	}

	logg.Infof("Blob %v uploaded.", object)
	return nil
}

// Pull downloads the backup of filePath & replaces the file with it. The
// file is left untouched if the download fails.
func (b *Backup) Pull(filePath string) error {
	tmpFile, err := os.CreateTemp(filepath.Dir(filePath), filepath.Base(filePath)+".*.tmp")
	if err != nil {
		return fmt.Errorf("os.CreateTemp: %v", err)
	}
	defer os.Remove(tmpFile.Name())

	ctx, cancel := context.WithTimeout(context.Background(), transferTimeout)
	defer cancel()

	object := b.Object(filePath)
	if err := b.bucket.Download(ctx, object, tmpFile); err != nil {
		tmpFile.Close()
		if err == ErrObjectNotExist {
			return err
		}
		return errors.Wrapf(err, "unable to download %v", object)
	}

	if err = tmpFile.Close(); err != nil {
		return fmt.Errorf("f.Close: %v", err)
	}

	if err = os.Rename(tmpFile.Name(), filePath); err != nil {
		return fmt.Errorf("os.Rename: %v", err)
	}

	logg.Infof("Blob %v downloaded to local file %v", object, filePath)
	return nil
}
