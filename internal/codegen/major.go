package codegen

import (
	"errors"
	"strings"
)

const (
	MajorSistemInformasi    = "Sistem Informasi"
	MajorTeknologiInformasi = "Teknologi Informasi"
)

var ErrUnknownMajor = errors.New("unknown major")

type majorCodes struct {
	nim     string
	subject string
}

var majors = map[string]majorCodes{
	MajorSistemInformasi:    {nim: "10", subject: "SI"},
	MajorTeknologiInformasi: {nim: "11", subject: "TI"},
}

// Majors returns the majors that have identifier codes, in display order.
func Majors() []string {
	return []string{MajorSistemInformasi, MajorTeknologiInformasi}
}

// MajorCode returns the two digit NIM code of a major.
func MajorCode(major string) (string, error) {
	codes, ok := majors[major]
	if !ok {
		return "", ErrUnknownMajor
	}
	return codes.nim, nil
}

// SubjectPrefix returns the two letter subject code prefix of a major.
func SubjectPrefix(major string) (string, error) {
	codes, ok := majors[major]
	if !ok {
		return "", ErrUnknownMajor
	}
	return codes.subject, nil
}

// MajorFromCode infers the major of a subject from its code prefix.
func MajorFromCode(code string) (string, bool) {
	for name, codes := range majors {
		if strings.HasPrefix(code, codes.subject) {
			return name, true
		}
	}
	return "", false
}
