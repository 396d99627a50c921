package codegen_test

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"academic-service/internal/codegen"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNIM(t *testing.T) {
	t.Run("FirstInScope", func(t *testing.T) {
		assert.Equal(t, "1120230001", codegen.NIM("11", 2023, nil))
		assert.Equal(t, "1020200001", codegen.NIM("10", 2020, []string{"1120200007"}))
	})

	t.Run("IncrementsHighest", func(t *testing.T) {
		existing := []string{"1120230003", "1120230011", "1120230002"}
		assert.Equal(t, "1120230012", codegen.NIM("11", 2023, existing))
	})

	t.Run("SkipsMalformedSuffix", func(t *testing.T) {
		existing := []string{"1120230004", "112023ABCD", "112023", ""}
		assert.Equal(t, "1120230005", codegen.NIM("11", 2023, existing))
	})

	t.Run("ScopedByBatch", func(t *testing.T) {
		existing := []string{"1120220009", "1120230001"}
		assert.Equal(t, "1120230002", codegen.NIM("11", 2023, existing))
		assert.Equal(t, "1120220010", codegen.NIM("11", 2022, existing))
	})
}

func TestSubjectAndClassCodes(t *testing.T) {
	assert.Equal(t, "SI001", codegen.SubjectCode("SI", nil))
	assert.Equal(t, "TI008", codegen.SubjectCode("TI", []string{"TI007", "SI020", "TIxyz"}))
	assert.Equal(t, "KLS001", codegen.ClassCode(nil))
	assert.Equal(t, "KLS013", codegen.ClassCode([]string{"KLS012", "KLS002", "MK999"}))
	assert.Equal(t, "KLS1000", codegen.ClassCode([]string{"KLS999"}))
}

func TestMajors(t *testing.T) {
	code, err := codegen.MajorCode(codegen.MajorSistemInformasi)
	require.NoError(t, err)
	assert.Equal(t, "10", code)

	code, err = codegen.MajorCode(codegen.MajorTeknologiInformasi)
	require.NoError(t, err)
	assert.Equal(t, "11", code)

	_, err = codegen.MajorCode("Teknik Sipil")
	assert.ErrorIs(t, err, codegen.ErrUnknownMajor)

	prefix, err := codegen.SubjectPrefix(codegen.MajorSistemInformasi)
	require.NoError(t, err)
	assert.Equal(t, "SI", prefix)

	_, err = codegen.SubjectPrefix("")
	assert.ErrorIs(t, err, codegen.ErrUnknownMajor)

	major, ok := codegen.MajorFromCode("TI004")
	assert.True(t, ok)
	assert.Equal(t, codegen.MajorTeknologiInformasi, major)

	_, ok = codegen.MajorFromCode("MK001")
	assert.False(t, ok)
}

type memoryScan struct {
	mu  sync.Mutex
	ids []string
}

func (m *memoryScan) scan(_ context.Context, _ string) ([]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.ids...), nil
}

func (m *memoryScan) add(id string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ids = append(m.ids, id)
}

func TestSequencer(t *testing.T) {
	ctx := context.Background()

	t.Run("SequentialWithoutPersist", func(t *testing.T) {
		seq := codegen.NewSequencer()
		store := &memoryScan{}

		first, err := seq.NIM(ctx, codegen.MajorTeknologiInformasi, 2023, store.scan)
		require.NoError(t, err)
		second, err := seq.NIM(ctx, codegen.MajorTeknologiInformasi, 2023, store.scan)
		require.NoError(t, err)

		assert.Equal(t, "1120230001", first)
		assert.Equal(t, "1120230002", second)
	})

	t.Run("FollowsStoreMax", func(t *testing.T) {
		seq := codegen.NewSequencer()
		store := &memoryScan{ids: []string{"SI005"}}

		code, err := seq.SubjectCode(ctx, codegen.MajorSistemInformasi, store.scan)
		require.NoError(t, err)
		assert.Equal(t, "SI006", code)

		store.add("SI040")
		code, err = seq.SubjectCode(ctx, codegen.MajorSistemInformasi, store.scan)
		require.NoError(t, err)
		assert.Equal(t, "SI041", code)
	})

	t.Run("DeletedMaxSkippedUntilRestart", func(t *testing.T) {
		seq := codegen.NewSequencer()
		store := &memoryScan{ids: []string{"KLS001"}}

		code, err := seq.ClassCode(ctx, store.scan)
		require.NoError(t, err)
		assert.Equal(t, "KLS002", code)

		// KLS002 never persisted, as if deleted right after create
		code, err = seq.ClassCode(ctx, store.scan)
		require.NoError(t, err)
		assert.Equal(t, "KLS003", code)

		code, err = codegen.NewSequencer().ClassCode(ctx, store.scan)
		require.NoError(t, err)
		assert.Equal(t, "KLS002", code)
	})

	t.Run("UnknownMajor", func(t *testing.T) {
		seq := codegen.NewSequencer()
		store := &memoryScan{}

		_, err := seq.NIM(ctx, "Kedokteran", 2023, store.scan)
		assert.ErrorIs(t, err, codegen.ErrUnknownMajor)
		_, err = seq.SubjectCode(ctx, "Kedokteran", store.scan)
		assert.ErrorIs(t, err, codegen.ErrUnknownMajor)
	})

	t.Run("ScanError", func(t *testing.T) {
		seq := codegen.NewSequencer()
		boom := errors.New("store down")

		_, err := seq.ClassCode(ctx, func(context.Context, string) ([]string, error) {
			return nil, boom
		})
		assert.ErrorIs(t, err, boom)
	})

	t.Run("ConcurrentIssueIsUnique", func(t *testing.T) {
		seq := codegen.NewSequencer()
		store := &memoryScan{}

		const n = 50
		var wg sync.WaitGroup
		codes := make(chan string, n)
		for i := 0; i < n; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				code, err := seq.ClassCode(ctx, store.scan)
				if err == nil {
					codes <- code
				}
			}()
		}
		wg.Wait()
		close(codes)

		seen := make(map[string]bool, n)
		for code := range codes {
			assert.False(t, seen[code], "duplicate code %s", code)
			seen[code] = true
		}
		assert.Len(t, seen, n)
		assert.True(t, seen[fmt.Sprintf("KLS%03d", n)])
	})
}
