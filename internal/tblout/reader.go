package tblout

import (
	"bufio"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"
)

const maxLine = 16 * 1024 * 1024

// Reader yields hits from a tblout report one line at a time.
type Reader struct {
	name   string
	meta   Meta
	sc     *bufio.Scanner
	line   int
	closer io.Closer
}

// Open opens the report at path and reads its metadata block.
// The caller must Close the returned Reader.
func Open(path string) (*Reader, error) {
	fh, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open tblout: %w", err)
	}
	r, err := NewReader(fh, path)
	if err != nil {
		_ = fh.Close()
		return nil, err
	}
	r.closer = fh
	return r, nil
}

// NewReader reads the metadata block from rs, rewinds it and returns a Reader
// positioned at the first line. name is used in error messages.
func NewReader(rs io.ReadSeeker, name string) (*Reader, error) {
	meta, err := scanMeta(rs)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", name, err)
	}
	if _, err := rs.Seek(0, io.SeekStart); err != nil {
		return nil, fmt.Errorf("rewind %s: %w", name, err)
	}
	return &Reader{name: name, meta: meta, sc: newScanner(rs)}, nil
}

// Meta returns the report metadata.
func (r *Reader) Meta() Meta { return r.meta }

// Next returns the next hit, or io.EOF once the report is exhausted.
func (r *Reader) Next() (Hit, error) {
	for r.sc.Scan() {
		r.line++
		line := strings.TrimSpace(r.sc.Text())
		if line == "" || line[0] == '#' {
			continue
		}
		h, err := parseHit(strings.Fields(line))
		if err != nil {
			return Hit{}, fmt.Errorf("%s:%d: %w", r.name, r.line, err)
		}
		h.Line = r.line
		return h, nil
	}
	if err := r.sc.Err(); err != nil {
		return Hit{}, fmt.Errorf("read %s: %w", r.name, err)
	}
	return Hit{}, io.EOF
}

// Close releases the underlying file, if the Reader owns one.
func (r *Reader) Close() error {
	if r.closer == nil {
		return nil
	}
	return r.closer.Close()
}

func newScanner(rd io.Reader) *bufio.Scanner {
	sc := bufio.NewScanner(rd)
	sc.Buffer(make([]byte, 64*1024), maxLine)
	return sc
}

func scanMeta(rd io.Reader) (Meta, error) {
	var m Meta
	sc := newScanner(rd)
	for sc.Scan() {
		line := sc.Text()
		if !strings.HasPrefix(line, "#") {
			continue
		}
		key, val, ok := strings.Cut(strings.TrimPrefix(line, "#"), ":")
		if !ok {
			continue
		}
		val = strings.TrimSpace(val)
		switch strings.TrimSpace(key) {
		case "Program":
			m.Program = val
		case "Version":
			m.Version = val
		case "Pipeline mode":
			m.PipelineMode = val
		case "Query file":
			m.QueryFile = val
		case "Target file":
			m.TargetFile = val
		case "Option settings":
			m.OptionSettings = val
		case "Current dir":
			m.CurrentDir = val
		case "Date":
			m.Date = val
		}
	}
	return m, sc.Err()
}

// parseHit enforces the columns extraction depends on: target name,
// alifrom, ali to and E-value. The remaining columns are informational and
// left at their zero value when they do not parse.
func parseHit(f []string) (Hit, error) {
	if len(f) < minColumns {
		return Hit{}, fmt.Errorf("%d columns, want at least %d: %w", len(f), minColumns, ErrMalformedRecord)
	}
	h := Hit{
		TargetName:      f[colTargetName],
		TargetAccession: f[colTargetAcc],
		QueryName:       f[colQueryName],
		QueryAccession:  f[colQueryAcc],
	}
	var err error
	if h.AliFrom, err = strconv.Atoi(f[colAliFrom]); err != nil {
		return Hit{}, badColumn("alifrom", f[colAliFrom])
	}
	if h.AliTo, err = strconv.Atoi(f[colAliTo]); err != nil {
		return Hit{}, badColumn("ali to", f[colAliTo])
	}
	if h.EValue, err = parseEValue(f[colEValue]); err != nil {
		return Hit{}, badColumn("E-value", f[colEValue])
	}

	h.HMMFrom, _ = strconv.Atoi(f[colHMMFrom])
	h.HMMTo, _ = strconv.Atoi(f[colHMMTo])
	h.EnvFrom, _ = strconv.Atoi(f[colEnvFrom])
	h.EnvTo, _ = strconv.Atoi(f[colEnvTo])
	h.SeqLen, _ = strconv.Atoi(f[colSeqLen])
	if s := f[colStrand]; s == "+" || s == "-" {
		h.Strand = s
	}
	if len(f) > colScore {
		h.Score, _ = strconv.ParseFloat(f[colScore], 64)
	}
	if len(f) > colBias {
		h.Bias, _ = strconv.ParseFloat(f[colBias], 64)
	}
	if len(f) > colDescription {
		h.Description = strings.Join(f[colDescription:], " ")
	}
	return h, nil
}

func parseEValue(s string) (float64, error) {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, err
	}
	if math.IsNaN(v) || v < 0 {
		return 0, fmt.Errorf("e-value out of range: %v", v)
	}
	return v, nil
}

func badColumn(name, val string) error {
	return fmt.Errorf("bad %s %q: %w", name, val, ErrMalformedRecord)
}
