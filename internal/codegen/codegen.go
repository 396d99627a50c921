// Package codegen computes the human readable sequential identifiers of the
// academic records: student NIMs, subject codes and class codes.
//
// Every identifier is a fixed prefix followed by a zero padded sequence number.
// The next number is one past the highest sequence found among the existing
// identifiers sharing the prefix. Identifiers whose suffix does not parse as a
// number are ignored.
package codegen

import (
	"fmt"
	"strconv"
	"strings"
)

const (
	ClassPrefix = "KLS"

	nimWidth     = 4
	subjectWidth = 3
	classWidth   = 3
)

// Next returns prefix followed by max+1 padded to width, where max is the
// highest sequence among existing identifiers starting with prefix.
func Next(prefix string, width int, existing []string) string {
	return format(prefix, width, MaxSequence(prefix, existing)+1)
}

// MaxSequence returns the highest numeric suffix among identifiers that start
// with prefix, or 0 when there is none.
func MaxSequence(prefix string, existing []string) int {
	max := 0
	for _, id := range existing {
		if !strings.HasPrefix(id, prefix) {
			continue
		}
		seq, err := strconv.Atoi(id[len(prefix):])
		if err != nil {
			continue
		}
		if seq > max {
			max = seq
		}
	}
	return max
}

// NIMPrefix is the six character scope of a NIM: major code and batch year.
func NIMPrefix(majorCode string, batch int) string {
	return fmt.Sprintf("%s%d", majorCode, batch)
}

// NIM returns the next student number for a major code and batch year.
func NIM(majorCode string, batch int, existing []string) string {
	return Next(NIMPrefix(majorCode, batch), nimWidth, existing)
}

// SubjectCode returns the next subject code for a subject prefix (SI or TI).
func SubjectCode(prefix string, existing []string) string {
	return Next(prefix, subjectWidth, existing)
}

// ClassCode returns the next KLS class code.
func ClassCode(existing []string) string {
	return Next(ClassPrefix, classWidth, existing)
}

func format(prefix string, width, seq int) string {
	return fmt.Sprintf("%s%0*d", prefix, width, seq)
}
