package store

import (
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vexdb/vexdb/metadata"
)

func TestNew(t *testing.T) {
	t.Run("Valid", func(t *testing.T) {
		s, err := New(4)
		require.NoError(t, err)
		assert.Equal(t, 4, s.Dimension())
		assert.Equal(t, 0, s.Count())
	})

	t.Run("InvalidDimension", func(t *testing.T) {
		for _, dim := range []int{0, -1} {
			_, err := New(dim)
			var invalidErr *ErrInvalidDimension
			require.ErrorAs(t, err, &invalidErr)
			assert.Equal(t, dim, invalidErr.Dimension)
		}
	})
}

func TestInsertGet(t *testing.T) {
	s, err := New(3)
	require.NoError(t, err)

	meta := metadata.Document{"category": metadata.String("tech")}
	rec, err := s.Insert("a", []float32{1, 2, 3}, meta)
	require.NoError(t, err)
	assert.Equal(t, "a", rec.ID)
	assert.Equal(t, []float32{1, 2, 3}, rec.Data)
	assert.Equal(t, meta, rec.Metadata)

	got, err := s.Get("a")
	require.NoError(t, err)
	assert.Equal(t, rec, got)
	assert.Equal(t, 1, s.Count())
}

func TestInsertDimensionMismatch(t *testing.T) {
	s, err := New(3)
	require.NoError(t, err)

	_, err = s.Insert("a", []float32{1, 2}, nil)
	var dimErr *ErrDimensionMismatch
	require.ErrorAs(t, err, &dimErr)
	assert.Equal(t, 3, dimErr.Expected)
	assert.Equal(t, 2, dimErr.Actual)

	// Nothing was stored.
	assert.Equal(t, 0, s.Count())
	_, err = s.Get("a")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestUpsert(t *testing.T) {
	s, err := New(2)
	require.NoError(t, err)

	first, err := s.Insert("x", []float32{1, 1}, metadata.Document{"v": metadata.Int(1)})
	require.NoError(t, err)

	_, err = s.Insert("y", []float32{2, 2}, nil)
	require.NoError(t, err)

	// Replace data and metadata entirely; no duplicate record.
	second, err := s.Insert("x", []float32{9, 9}, metadata.Document{"w": metadata.Int(2)})
	require.NoError(t, err)
	assert.Equal(t, 2, s.Count())

	got, err := s.Get("x")
	require.NoError(t, err)
	assert.Equal(t, []float32{9, 9}, got.Data)
	assert.Equal(t, metadata.Document{"w": metadata.Int(2)}, got.Metadata)

	// The record keeps its original insertion sequence and list position.
	assert.Equal(t, first.Seq, second.Seq)
	records, total := s.List(0, 10)
	require.Equal(t, 2, total)
	assert.Equal(t, "x", records[0].ID)
	assert.Equal(t, "y", records[1].ID)
}

func TestDelete(t *testing.T) {
	s, err := New(2)
	require.NoError(t, err)

	_, err = s.Insert("a", []float32{1, 2}, nil)
	require.NoError(t, err)

	require.NoError(t, s.Delete("a"))
	assert.Equal(t, 0, s.Count())

	_, err = s.Get("a")
	assert.ErrorIs(t, err, ErrNotFound)
	assert.ErrorIs(t, s.Delete("a"), ErrNotFound)
	assert.ErrorIs(t, s.Delete("missing"), ErrNotFound)
}

func TestList(t *testing.T) {
	s, err := New(1)
	require.NoError(t, err)

	for i := 0; i < 5; i++ {
		_, err := s.Insert(fmt.Sprintf("v%d", i), []float32{float32(i)}, nil)
		require.NoError(t, err)
	}

	t.Run("All", func(t *testing.T) {
		records, total := s.List(0, 50)
		assert.Equal(t, 5, total)
		require.Len(t, records, 5)
		for i, rec := range records {
			assert.Equal(t, fmt.Sprintf("v%d", i), rec.ID)
		}
	})

	t.Run("Page", func(t *testing.T) {
		records, total := s.List(2, 2)
		assert.Equal(t, 5, total)
		require.Len(t, records, 2)
		assert.Equal(t, "v2", records[0].ID)
		assert.Equal(t, "v3", records[1].ID)
	})

	t.Run("OffsetPastEnd", func(t *testing.T) {
		records, total := s.List(5, 50)
		assert.Equal(t, 5, total)
		assert.Empty(t, records)
	})

	t.Run("NegativeBoundsClamped", func(t *testing.T) {
		records, total := s.List(-3, 2)
		assert.Equal(t, 5, total)
		require.Len(t, records, 2)
		assert.Equal(t, "v0", records[0].ID)

		records, _ = s.List(0, -1)
		assert.Empty(t, records)
	})

	t.Run("OrderSurvivesDelete", func(t *testing.T) {
		require.NoError(t, s.Delete("v1"))
		records, total := s.List(0, 50)
		assert.Equal(t, 4, total)
		require.Len(t, records, 4)
		assert.Equal(t, "v0", records[0].ID)
		assert.Equal(t, "v2", records[1].ID)
	})
}

func TestCopyOutSemantics(t *testing.T) {
	s, err := New(2)
	require.NoError(t, err)

	input := []float32{1, 2}
	meta := metadata.Document{"k": metadata.String("v")}
	_, err = s.Insert("a", input, meta)
	require.NoError(t, err)

	// Mutating caller-owned inputs after insert must not affect the store.
	input[0] = 99
	meta["k"] = metadata.String("changed")

	got, err := s.Get("a")
	require.NoError(t, err)
	assert.Equal(t, []float32{1, 2}, got.Data)
	assert.Equal(t, metadata.String("v"), got.Metadata["k"])

	// Mutating returned copies must not affect the store either.
	got.Data[1] = 42
	got.Metadata["k"] = metadata.String("mutated")

	again, err := s.Get("a")
	require.NoError(t, err)
	assert.Equal(t, []float32{1, 2}, again.Data)
	assert.Equal(t, metadata.String("v"), again.Metadata["k"])
}

func TestSnapshot(t *testing.T) {
	s, err := New(1)
	require.NoError(t, err)

	_, err = s.Insert("a", []float32{1}, nil)
	require.NoError(t, err)
	_, err = s.Insert("b", []float32{2}, nil)
	require.NoError(t, err)

	snap := s.Snapshot()
	require.Len(t, snap, 2)
	assert.Equal(t, "a", snap[0].ID)
	assert.Equal(t, "b", snap[1].ID)

	// Snapshot is a point-in-time view: later mutations are invisible.
	require.NoError(t, s.Delete("a"))
	_, err = s.Insert("b", []float32{5}, nil)
	require.NoError(t, err)

	assert.Equal(t, "a", snap[0].ID)
	assert.Equal(t, []float32{1}, snap[0].Data)
	assert.Equal(t, []float32{2}, snap[1].Data)
}

func TestConcurrentInsertDelete(t *testing.T) {
	s, err := New(2)
	require.NoError(t, err)

	const workers = 8
	const iterations = 200

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			for i := 0; i < iterations; i++ {
				switch i % 3 {
				case 0:
					_, _ = s.Insert("shared", []float32{float32(w), float32(i)}, metadata.Document{
						"w": metadata.Int(w),
						"i": metadata.Int(i),
					})
				case 1:
					_ = s.Delete("shared")
				default:
					rec, err := s.Get("shared")
					if err == nil {
						// Never a torn record: data and metadata must match.
						assert.Equal(t, float32(rec.Metadata["w"].F64), rec.Data[0])
						assert.Equal(t, float32(rec.Metadata["i"].F64), rec.Data[1])
					}
				}
			}
		}(w)
	}
	wg.Wait()

	// The store ends in one of the two consistent states.
	count := s.Count()
	assert.True(t, count == 0 || count == 1)
}
