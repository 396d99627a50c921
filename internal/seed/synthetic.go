package seed

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"strconv"
	"strings"

	"academic-service/internal/classroom"
	"academic-service/internal/codegen"
	"academic-service/internal/student"
	"academic-service/internal/subject"
)

const perMajor = 50

// Names is the data the synthetic source draws from.
type Names struct {
	BatchYears  []int               `json:"batchYears"`
	FirstNames  []string            `json:"firstNames"`
	LastNames   []string            `json:"lastNames"`
	EmailDomain string              `json:"emailDomain"`
	Subjects    map[string][]string `json:"subjects"`
}

// LoadNames reads names.json from fsys.
func LoadNames(fsys fs.FS) (Names, error) {
	var n Names
	if err := readJSON(fsys, NamesFile, &n); err != nil {
		return Names{}, err
	}
	return n, n.validate()
}

func (n Names) validate() error {
	switch {
	case len(n.BatchYears) == 0:
		return errors.New("names: batchYears is empty")
	case len(n.FirstNames) == 0 || len(n.LastNames) == 0:
		return errors.New("names: first or last name pool is empty")
	case n.EmailDomain == "":
		return errors.New("names: emailDomain is empty")
	}
	for _, major := range codegen.Majors() {
		if len(n.Subjects[major]) == 0 {
			return fmt.Errorf("names: no subject names for %q", major)
		}
	}
	return nil
}

// SyntheticSource fabricates students and subjects for every major.
// Classes reference real subject names and NIMs, so they come from classes.
type SyntheticSource struct {
	names   Names
	classes Source
}

func NewSyntheticSource(names Names, classes Source) *SyntheticSource {
	return &SyntheticSource{names: names, classes: classes}
}

// Students returns perMajor students per major. Batch years cycle through
// the configured years and status follows position: seven of every ten are
// active, two not active, one dropped out.
func (s *SyntheticSource) Students(context.Context) ([]student.Student, error) {
	majors := codegen.Majors()
	out := make([]student.Student, 0, perMajor*len(majors))

	for _, major := range majors {
		for j := 0; j < perMajor; j++ {
			i := len(out)
			first := s.names.FirstNames[i%len(s.names.FirstNames)]
			last := s.names.LastNames[(i/len(s.names.FirstNames))%len(s.names.LastNames)]

			out = append(out, student.Student{
				Name:   first + " " + last,
				Email:  fmt.Sprintf("%s.%s%d@%s", strings.ToLower(first), strings.ToLower(last), i+1, s.names.EmailDomain),
				Major:  major,
				Batch:  s.names.BatchYears[j%len(s.names.BatchYears)],
				Status: statusAt(j),
			})
		}
	}
	return out, nil
}

// Subjects returns perMajor subjects per major, reusing the name pool with a
// numeric suffix once it runs out.
func (s *SyntheticSource) Subjects(context.Context) ([]subject.Subject, error) {
	majors := codegen.Majors()
	out := make([]subject.Subject, 0, perMajor*len(majors))

	for _, major := range majors {
		pool := s.names.Subjects[major]
		for j := 0; j < perMajor; j++ {
			name := pool[j%len(pool)]
			if round := j / len(pool); round > 0 {
				name += " " + strconv.Itoa(round+1)
			}
			out = append(out, subject.Subject{
				Name:  name,
				Major: major,
				SKS:   2 + j%3,
			})
		}
	}
	return out, nil
}

func (s *SyntheticSource) Classes(ctx context.Context) ([]classroom.ClassRoom, error) {
	return s.classes.Classes(ctx)
}

func statusAt(j int) student.Status {
	switch j % 10 {
	case 7, 8:
		return student.StatusNotActive
	case 9:
		return student.StatusDropout
	default:
		return student.StatusActive
	}
}
