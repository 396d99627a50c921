package seed

import (
	"context"
	"embed"
	"encoding/json"
	"fmt"
	"io/fs"

	"academic-service/internal/classroom"
	"academic-service/internal/student"
	"academic-service/internal/subject"
)

const (
	studentsFile = "students.json"
	subjectsFile = "subjects.json"
	classesFile  = "classes.json"
)

// NamesFile holds the name pools used by the synthetic source.
const NamesFile = "names.json"

//go:embed data/*.json
var embedded embed.FS

// DefaultFS is the dataset compiled into the binary.
func DefaultFS() fs.FS {
	sub, err := fs.Sub(embedded, "data")
	if err != nil {
		panic(err)
	}
	return sub
}

// Source supplies the records loaded into empty collections.
type Source interface {
	Students(ctx context.Context) ([]student.Student, error)
	Subjects(ctx context.Context) ([]subject.Subject, error)
	Classes(ctx context.Context) ([]classroom.ClassRoom, error)
}

// FileSource reads one JSON array per collection from fsys.
type FileSource struct {
	fsys fs.FS
}

func NewFileSource(fsys fs.FS) *FileSource {
	return &FileSource{fsys: fsys}
}

func (s *FileSource) Students(context.Context) ([]student.Student, error) {
	var out []student.Student
	err := readJSON(s.fsys, studentsFile, &out)
	return out, err
}

func (s *FileSource) Subjects(context.Context) ([]subject.Subject, error) {
	var out []subject.Subject
	err := readJSON(s.fsys, subjectsFile, &out)
	return out, err
}

func (s *FileSource) Classes(context.Context) ([]classroom.ClassRoom, error) {
	var out []classroom.ClassRoom
	err := readJSON(s.fsys, classesFile, &out)
	return out, err
}

func readJSON(fsys fs.FS, name string, dst interface{}) error {
	data, err := fs.ReadFile(fsys, name)
	if err != nil {
		return fmt.Errorf("read %s: %w", name, err)
	}
	if err := json.Unmarshal(data, dst); err != nil {
		return fmt.Errorf("parse %s: %w", name, err)
	}
	return nil
}
