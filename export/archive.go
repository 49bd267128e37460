package export

import (
	"context"
	"encoding/binary"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/bytedance/sonic"
	"github.com/google/uuid"
	"github.com/tbxark/styleadvisor/criteria"
	bolt "go.etcd.io/bbolt"
)

const archiveBucket = "criteria"

// ArchivedCriteria is one record kept in the archive.
type ArchivedCriteria struct {
	Seq       uint64            `json:"seq"`
	ID        string            `json:"id"`
	Criteria  criteria.Criteria `json:"criteria"`
	CreatedAt time.Time         `json:"created_at"`
}

// Archive is a Consumer that appends records to a BoltDB file so a product
// search stage can pick them up later.
type Archive struct {
	db *bolt.DB
}

func OpenArchive(path string) (*Archive, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}
	db, err := bolt.Open(path, 0o600, &bolt.Options{Timeout: 2 * time.Second})
	if err != nil {
		return nil, fmt.Errorf("open archive %s: %w", path, err)
	}
	return &Archive{db: db}, nil
}

func (a *Archive) Close() error {
	return a.db.Close()
}

func (a *Archive) Accept(ctx context.Context, rec *criteria.Criteria) error {
	if rec == nil {
		return errors.New("nil criteria")
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	return a.db.Update(func(tx *bolt.Tx) error {
		b, err := tx.CreateBucketIfNotExists([]byte(archiveBucket))
		if err != nil {
			return err
		}
		seq, err := b.NextSequence()
		if err != nil {
			return err
		}
		enc, err := sonic.Marshal(&ArchivedCriteria{
			Seq:       seq,
			ID:        uuid.NewString(),
			Criteria:  *rec,
			CreatedAt: time.Now().UTC(),
		})
		if err != nil {
			return err
		}
		return b.Put(seqKey(seq), enc)
	})
}

// List returns archived records oldest first.
func (a *Archive) List() ([]ArchivedCriteria, error) {
	var out []ArchivedCriteria
	err := a.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(archiveBucket))
		if b == nil {
			return nil
		}
		return b.ForEach(func(k, v []byte) error {
			var rec ArchivedCriteria
			if e := sonic.Unmarshal(v, &rec); e != nil {
				return fmt.Errorf("decode archived record %d: %w", binary.BigEndian.Uint64(k), e)
			}
			out = append(out, rec)
			return nil
		})
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func seqKey(seq uint64) []byte {
	key := make([]byte, 8)
	binary.BigEndian.PutUint64(key, seq)
	return key
}

var _ Consumer = (*Archive)(nil)
