package fasta

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"

	"github.com/biogo/biogo/alphabet"
	biofasta "github.com/biogo/biogo/io/seqio/fasta"
	"github.com/biogo/biogo/seq"
	"github.com/biogo/biogo/seq/linear"
)

// ErrSequenceParse is wrapped by errors for bytes that are not FASTA.
var ErrSequenceParse = errors.New("invalid FASTA")

// Record is one parsed FASTA entry.
type Record struct {
	Name        string
	Description string
	Seq         []byte
}

// ParseRecords calls fn for every record in b, in order. Empty or blank input
// yields no records and no error.
func ParseRecords(b []byte, fn func(Record) error) error {
	if len(bytes.TrimSpace(b)) == 0 {
		return nil
	}
	if err := checkLayout(b); err != nil {
		return err
	}
	r := biofasta.NewReader(bytes.NewReader(b), linear.NewSeq("", nil, alphabet.DNAredundant))
	for {
		s, err := r.Read()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return fmt.Errorf("%w: %v", ErrSequenceParse, err)
		}
		rec, err := toRecord(s)
		if err != nil {
			return err
		}
		if err := fn(rec); err != nil {
			return err
		}
	}
}

func toRecord(s seq.Sequence) (Record, error) {
	ls, ok := s.(*linear.Seq)
	if !ok {
		return Record{}, fmt.Errorf("%w: unexpected sequence type %T", ErrSequenceParse, s)
	}
	return Record{
		Name:        ls.Name(),
		Description: ls.Description(),
		Seq:         bytes.Clone(alphabet.LettersToBytes(ls.Seq)),
	}, nil
}

// checkLayout rejects sequence data before the first header and headers
// without a name.
func checkLayout(b []byte) error {
	sc := bufio.NewScanner(bytes.NewReader(b))
	sc.Buffer(make([]byte, 64*1024), 64*1024*1024)
	seen := false
	ln := 0
	for sc.Scan() {
		ln++
		line := bytes.TrimSpace(sc.Bytes())
		if len(line) == 0 {
			continue
		}
		if line[0] == '>' {
			if len(bytes.TrimSpace(line[1:])) == 0 || line[1] == ' ' || line[1] == '\t' {
				return fmt.Errorf("%w: line %d: header has no name", ErrSequenceParse, ln)
			}
			seen = true
			continue
		}
		if !seen {
			return fmt.Errorf("%w: line %d: sequence before first header", ErrSequenceParse, ln)
		}
	}
	if err := sc.Err(); err != nil {
		return fmt.Errorf("%w: %v", ErrSequenceParse, err)
	}
	return nil
}
