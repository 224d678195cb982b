package numbering

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
)

// Document numbers follow {TYPE}-{YEAR}-{SEQ5}, e.g. D3-2025-00001. The
// sequence is per type per year and resets on year rollover. This package is
// pure arithmetic; atomicity of "read last, write next" belongs to the
// persistence layer (the document_counter row lock).
var numberPattern = regexp.MustCompile(`^([A-Z][0-9]{1,2})-(\d{4})-(\d{5})$`)

const maxSequence = 99999

// ErrSequenceOverflow means a (type, year) pair exhausted its 5-digit
// sequence. The format has no defined behavior past 99999, so issuance must
// stop rather than wrap into a duplicate.
var ErrSequenceOverflow = errors.New("document number sequence overflow")

// MalformedNumberError reports a last-issued number that does not match the
// wire format.
type MalformedNumberError struct {
	Number string
}

func (e *MalformedNumberError) Error() string {
	return fmt.Sprintf("malformed document number %q", e.Number)
}

// Next computes the number after lastIssued for docType in year. An empty
// lastIssued starts the sequence; a lastIssued from another year resets it.
func Next(docType, lastIssued string, year int) (string, error) {
	if lastIssued == "" {
		return fmt.Sprintf("%s-%d-%05d", docType, year, 1), nil
	}
	m := numberPattern.FindStringSubmatch(lastIssued)
	if m == nil || m[1] != docType {
		return "", &MalformedNumberError{Number: lastIssued}
	}
	lastYear, _ := strconv.Atoi(m[2])
	if lastYear != year {
		return fmt.Sprintf("%s-%d-%05d", docType, year, 1), nil
	}
	seq, _ := strconv.Atoi(m[3])
	if seq >= maxSequence {
		return "", ErrSequenceOverflow
	}
	return fmt.Sprintf("%s-%d-%05d", docType, year, seq+1), nil
}

// Matches reports whether s is a well-formed document number.
func Matches(s string) bool {
	return numberPattern.MatchString(s)
}
