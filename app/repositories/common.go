package repositories

import (
	"encoding/binary"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/dgraph-io/badger/v4"
)

var (
	ErrNotFound = errors.New("record not found")
)

const (
	// Key prefixes for different entity types
	PostKeyPrefix   = "post:"
	FeedKeyPrefix   = "feed:"
	AuthorKeyPrefix = "author:"

	// Sequence key for the insertion-order tiebreak
	FeedSeqKey = "seq:feed"
)

// nextSeq gets the next value for a given sequence key
func nextSeq(txn *badger.Txn, seqKey string) (uint64, error) {
	var seq uint64
	item, err := txn.Get([]byte(seqKey))
	if err == badger.ErrKeyNotFound {
		seq = 1
	} else if err != nil {
		return 0, err
	} else {
		err = item.Value(func(val []byte) error {
			seq = binary.BigEndian.Uint64(val)
			return nil
		})
		if err != nil {
			return 0, err
		}
		seq++
	}

	buf := make([]byte, 8)
	binary.BigEndian.PutUint64(buf, seq)
	if err := txn.Set([]byte(seqKey), buf); err != nil {
		return 0, err
	}

	return seq, nil
}

// invertedStamp renders a timestamp so that lexicographic key order is
// newest-first under badger's forward iteration.
func invertedStamp(t time.Time) string {
	return fmt.Sprintf("%020d", math.MaxInt64-t.UnixNano())
}

// marshalEntity marshals an entity to JSON
func marshalEntity(entity interface{}) ([]byte, error) {
	data, err := json.Marshal(entity)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal entity: %v", err)
	}
	return data, nil
}

// unmarshalEntity unmarshals JSON data into an entity
func unmarshalEntity(data []byte, entity interface{}) error {
	if err := json.Unmarshal(data, entity); err != nil {
		return fmt.Errorf("failed to unmarshal entity: %v", err)
	}
	return nil
}
