package gstorage

import (
	"bytes"
	"context"
	"io"
)

// BucketStub keeps objects in memory
type BucketStub struct {
	Objects map[string][]byte
}

func NewBucketStub() *BucketStub {
	return &BucketStub{Objects: make(map[string][]byte)}
}

func (bs *BucketStub) Upload(ctx context.Context, object string, r io.Reader) error {
	data, err := io.ReadAll(r)
	if err != nil {
		return err
	}
	bs.Objects[object] = data
	return nil
}

func (bs *BucketStub) Download(ctx context.Context, object string, w io.Writer) error {
	data, ok := bs.Objects[object]
	if !ok {
		return ErrObjectNotExist
	}
	_, err := io.Copy(w, bytes.NewReader(data))
	return err
}
