package store

import (
	"bytes"
	"encoding/gob"

	"github.com/pkg/errors"
)

// dumpFormatVersion is a one-byte envelope tag, so a future encoding
// change can be detected by RESTORE instead of silently misreading an
// older blob.
const dumpFormatVersion = 1

// dumpRecord is the gob-friendly projection of a Value: plain slices and
// maps of exported fields, decoupled from the internal dlist/zset node
// representations (which hold unexported pointer-linked fields gob cannot
// walk). This is the DUMP/RESTORE encoding of a Value; see DESIGN.md for
// why gob rather than a pack serialization dependency. Hash fields and set
// members are written in Go map iteration order, so two DUMPs of the same
// value are not guaranteed to be byte-identical; RESTORE of either blob
// yields an equal value.
type dumpRecord struct {
	Kind byte
	Bstr []byte
	List [][]byte
	Hash map[string][]byte
	Set  [][]byte
	ZSet []dumpZMember
}

type dumpZMember struct {
	Member string
	Score  float64
}

// Dump serializes v into the opaque blob returned by the DUMP command.
func Dump(v *Value) ([]byte, error) {
	rec := dumpRecord{Kind: byte(v.Kind)}
	switch v.Kind {
	case KindBstr:
		rec.Bstr = v.Bstr
	case KindList:
		rec.List = v.List.Values()
	case KindHash:
		rec.Hash = v.Hash
	case KindSet:
		rec.Set = make([][]byte, 0, len(v.Set))
		for m := range v.Set {
			rec.Set = append(rec.Set, []byte(m))
		}
	case KindZSet:
		for _, e := range v.ZSet.All() {
			rec.ZSet = append(rec.ZSet, dumpZMember{Member: e.Member, Score: e.Score})
		}
	}
	var buf bytes.Buffer
	buf.WriteByte(dumpFormatVersion)
	if err := gob.NewEncoder(&buf).Encode(rec); err != nil {
		return nil, errors.Wrap(err, "dump: encode")
	}
	return buf.Bytes(), nil
}

// Restore reverses Dump, reconstructing an equivalent Value.
func Restore(blob []byte) (*Value, error) {
	if len(blob) == 0 {
		return nil, errors.New("restore: empty payload")
	}
	if blob[0] != dumpFormatVersion {
		return nil, errors.Errorf("restore: unsupported dump format %d", blob[0])
	}
	var rec dumpRecord
	if err := gob.NewDecoder(bytes.NewReader(blob[1:])).Decode(&rec); err != nil {
		return nil, errors.Wrap(err, "restore: decode")
	}
	kind := Kind(rec.Kind)
	v := NewEmpty(kind)
	switch kind {
	case KindBstr:
		v.Bstr = rec.Bstr
		if v.Bstr == nil {
			v.Bstr = []byte{}
		}
	case KindList:
		for _, b := range rec.List {
			v.List.PushBack(b)
		}
	case KindHash:
		for f, val := range rec.Hash {
			v.Hash[f] = val
		}
	case KindSet:
		for _, m := range rec.Set {
			v.Set[string(m)] = struct{}{}
		}
	case KindZSet:
		for _, m := range rec.ZSet {
			v.ZSet.Add(m.Member, m.Score)
		}
	default:
		return nil, errors.Errorf("restore: unknown value kind %d", rec.Kind)
	}
	return v, nil
}
