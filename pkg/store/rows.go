package store

import (
	"context"
	"encoding/binary"
	"errors"

	bolt "go.etcd.io/bbolt"

	"src.cellview.dev/pkg/datasource"
	"src.cellview.dev/pkg/presenter"
)

const bucketRows = "rows"

// ErrNoMatchingRow is returned when there is no row with the requested
// sequence number.
var ErrNoMatchingRow = errors.New("no matching row")

func init() {
	initDB["initialize row table"] = func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists([]byte(bucketRows))
		return err
	}
}

// Row is an entry of the store.
type Row struct {
	Seq  int    `json:"seq"`
	Text string `json:"text"`
}

// Key returns the key of the row, its sequence number.
func (r Row) Key() any { return r.Seq }

// NextRowSeq returns the sequence number the next added row will get.
func (s *Store) NextRowSeq() (int, error) {
	var seq uint64
	err := s.db.View(func(tx *bolt.Tx) error {
		seq = tx.Bucket([]byte(bucketRows)).Sequence() + 1
		return nil
	})
	return int(seq), err
}

// AddRow adds a row and returns its sequence number.
func (s *Store) AddRow(text string) (int, error) {
	var seq uint64
	err := s.db.Update(func(tx *bolt.Tx) error {
		var err error
		seq, err = addRow(tx.Bucket([]byte(bucketRows)), text)
		return err
	})
	return int(seq), err
}

// AddRows adds rows in one transaction.
func (s *Store) AddRows(texts []string) error {
	return s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(bucketRows))
		for _, text := range texts {
			if _, err := addRow(b, text); err != nil {
				return err
			}
		}
		return nil
	})
}

func addRow(b *bolt.Bucket, text string) (uint64, error) {
	seq, err := b.NextSequence()
	if err != nil {
		return 0, err
	}
	return seq, b.Put(marshalSeq(seq), []byte(text))
}

// DelRow deletes the row with the given sequence number.
func (s *Store) DelRow(seq int) error {
	return s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket([]byte(bucketRows)).Delete(marshalSeq(uint64(seq)))
	})
}

// Row returns the text of the row with the given sequence number.
func (s *Store) Row(seq int) (string, error) {
	var text string
	err := s.db.View(func(tx *bolt.Tx) error {
		v := tx.Bucket([]byte(bucketRows)).Get(marshalSeq(uint64(seq)))
		if v == nil {
			return ErrNoMatchingRow
		}
		text = string(v)
		return nil
	})
	return text, err
}

// IterateRows calls f with the rows whose sequence numbers are in
// [from, upto), in order.
func (s *Store) IterateRows(from, upto int, f func(Row)) error {
	return s.db.View(func(tx *bolt.Tx) error {
		c := tx.Bucket([]byte(bucketRows)).Cursor()
		for k, v := c.Seek(marshalSeq(uint64(from))); k != nil && unmarshalSeq(k) < uint64(upto); k, v = c.Next() {
			f(Row{Seq: int(unmarshalSeq(k)), Text: string(v)})
		}
		return nil
	})
}

// Rows returns the rows whose sequence numbers are in [from, upto).
func (s *Store) Rows(from, upto int) ([]Row, error) {
	var rows []Row
	err := s.IterateRows(from, upto, func(r Row) { rows = append(rows, r) })
	return rows, err
}

// Count returns the number of rows.
func (s *Store) Count() (int, error) {
	var n int
	err := s.db.View(func(tx *bolt.Tx) error {
		n = tx.Bucket([]byte(bucketRows)).Stats().KeyN
		return nil
	})
	return n, err
}

// Fetch returns the rows at the positions in r, counted from the row with
// the smallest sequence number. The row count is always exact.
func (s *Store) Fetch(ctx context.Context, r presenter.Range) (datasource.Page[Row], error) {
	page := datasource.Page[Row]{Start: r.Start, Exact: true}
	if err := ctx.Err(); err != nil {
		return page, err
	}
	err := s.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(bucketRows))
		page.Count = b.Stats().KeyN
		c := b.Cursor()
		i := 0
		for k, v := c.First(); k != nil && i < r.End(); k, v = c.Next() {
			if i >= r.Start {
				page.Rows = append(page.Rows, Row{Seq: int(unmarshalSeq(k)), Text: string(v)})
			}
			i++
		}
		return nil
	})
	logger.Printf("fetched %d rows at %v", len(page.Rows), r)
	return page, err
}

func marshalSeq(seq uint64) []byte {
	b := make([]byte, 8)
	binary.BigEndian.PutUint64(b, seq)
	return b
}

func unmarshalSeq(key []byte) uint64 {
	return binary.BigEndian.Uint64(key)
}
