// Package tblout reads nhmmer --tblout reports.
//
// A report is a whitespace-delimited table, one hit per line, followed by a
// block of "# Key: value" comment lines that record how the search was run.
// The reader pulls that block out once and then yields hits lazily.
package tblout

import "errors"

var (
	// ErrMalformedRecord is wrapped by every error caused by a data line that
	// is missing a required column or carries an unparseable value.
	ErrMalformedRecord = errors.New("malformed tblout record")

	// ErrMissingMetadata is returned when the report carries no target file
	// comment and the caller needs one.
	ErrMissingMetadata = errors.New("tblout has no target file metadata")
)

// Column layout of an nhmmer tblout data line.
const (
	colTargetName = iota
	colTargetAcc
	colQueryName
	colQueryAcc
	colHMMFrom
	colHMMTo
	colAliFrom
	colAliTo
	colEnvFrom
	colEnvTo
	colSeqLen
	colStrand
	colEValue
	colScore
	colBias
	colDescription

	minColumns = colEValue + 1
)

// Hit is one data line of the report.
//
// AliFrom and AliTo are 1-based and kept exactly as reported: on the minus
// strand AliFrom is larger than AliTo.
type Hit struct {
	TargetName string
	EValue     float64
	AliFrom    int
	AliTo      int

	// Informational; zero when the column does not parse.
	TargetAccession string
	QueryName       string
	QueryAccession  string
	HMMFrom         int
	HMMTo           int
	EnvFrom         int
	EnvTo           int
	SeqLen          int
	Strand          string
	Score           float64
	Bias            float64
	Description     string

	Line int // 1-based line in the report
}

// Meta is the run information nhmmer appends to the report.
type Meta struct {
	Program        string
	Version        string
	PipelineMode   string
	QueryFile      string
	TargetFile     string
	OptionSettings string
	CurrentDir     string
	Date           string
}

// RequireTargetFile returns the target file path or ErrMissingMetadata.
func (m Meta) RequireTargetFile() (string, error) {
	if m.TargetFile == "" {
		return "", ErrMissingMetadata
	}
	return m.TargetFile, nil
}
