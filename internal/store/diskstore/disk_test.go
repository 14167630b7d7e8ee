package diskstore

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/gustline/turbts/internal/codec/gzipcodec"
	"github.com/gustline/turbts/internal/codec/noopcodec"
	"github.com/gustline/turbts/internal/store"
)

func TestStore_RoundTrip(t *testing.T) {
	codecs := []struct {
		name  string
		store func(t *testing.T) *Store
	}{
		{"uncompressed", func(t *testing.T) *Store { return newStore(t, "noop") }},
		{"gzip", func(t *testing.T) *Store { return newStore(t, "gzip") }},
	}

	for _, tt := range codecs {
		t.Run(tt.name, func(t *testing.T) {
			s := tt.store(t)
			ctx := context.Background()
			data := bytes.Repeat([]byte{7, 0, 0x34, 0x12}, 512)

			if err := s.WriteField(ctx, "neutral_12mps", data); err != nil {
				t.Fatalf("WriteField() error = %v", err)
			}
			got, err := s.ReadField(ctx, "neutral_12mps")
			if err != nil {
				t.Fatalf("ReadField() error = %v", err)
			}
			if !bytes.Equal(got, data) {
				t.Error("ReadField() returned different bytes than written")
			}
		})
	}
}

func TestStore_NotFound(t *testing.T) {
	s := newStore(t, "noop")
	if _, err := s.ReadField(context.Background(), "missing"); !errors.Is(err, store.ErrNotFound) {
		t.Errorf("ReadField(missing) error = %v, want store.ErrNotFound", err)
	}
}

func TestStore_FileNaming(t *testing.T) {
	root := t.TempDir()
	s, err := New(root, gzipcodec.New())
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	if err := s.WriteField(context.Background(), "stable_8mps", []byte("payload")); err != nil {
		t.Fatalf("WriteField() error = %v", err)
	}

	if _, err := os.Stat(filepath.Join(root, "stable_8mps.bts.gz")); err != nil {
		t.Errorf("expected stable_8mps.bts.gz on disk: %v", err)
	}
}

func TestStore_List(t *testing.T) {
	s := newStore(t, "noop")
	ctx := context.Background()

	for _, name := range []string{"run_b", "run_a", "run_c"} {
		if err := s.WriteField(ctx, name, []byte(name)); err != nil {
			t.Fatalf("WriteField(%q) error = %v", name, err)
		}
	}

	got, err := s.List(ctx)
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	want := []string{"run_a", "run_b", "run_c"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("List() = %v, want %v", got, want)
	}
}

func TestStore_ContextCancelled(t *testing.T) {
	s := newStore(t, "noop")
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := s.ReadField(ctx, "anything"); !errors.Is(err, context.Canceled) {
		t.Errorf("ReadField(cancelled) error = %v, want context.Canceled", err)
	}
	if err := s.WriteField(ctx, "anything", nil); !errors.Is(err, context.Canceled) {
		t.Errorf("WriteField(cancelled) error = %v, want context.Canceled", err)
	}
}

func newStore(t *testing.T, kind string) *Store {
	t.Helper()
	var s *Store
	var err error
	switch kind {
	case "gzip":
		s, err = New(t.TempDir(), gzipcodec.New())
	default:
		s, err = New(t.TempDir(), noopcodec.New())
	}
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	return s
}
