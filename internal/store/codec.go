package store

import (
	"fmt"

	"github.com/fxamacker/cbor/v2"
)

// blobEncMode encodes property and relationship lists stored in BLOB columns.
var blobEncMode = mustBlobEncMode()

func mustBlobEncMode() cbor.EncMode {
	em, err := cbor.EncOptions{Time: cbor.TimeRFC3339Nano}.EncMode()
	if err != nil {
		panic(fmt.Sprintf("store: invalid cbor options: %v", err))
	}
	return em
}

func encodeBlob[T any](items []T) ([]byte, error) {
	if len(items) == 0 {
		return nil, nil
	}
	b, err := blobEncMode.Marshal(items)
	if err != nil {
		return nil, wrap(ErrEncodingRecord, err)
	}
	return b, nil
}

func decodeBlob[T any](b []byte) ([]T, error) {
	if len(b) == 0 {
		return nil, nil
	}
	var items []T
	if err := cbor.Unmarshal(b, &items); err != nil {
		return nil, wrap(ErrDecodingRecord, err)
	}
	return items, nil
}

func wrap(sentinel, err error) error {
	return fmt.Errorf("%w: %w", sentinel, err)
}
