// ABOUTME: In-memory store and asset fixtures for engine tests
// ABOUTME: Tracks open handles so tests can assert close behavior
package engine

import (
	"bytes"
	"fmt"
	"io"
	"testing"

	"github.com/padbank/padbank-go/pkg/audio/wave"
)

// memStore serves canonical assets from memory and counts open handles
// per ref.
type memStore struct {
	assets map[string][]byte
	opens  map[string]int
	closes map[string]int
}

func newMemStore() *memStore {
	return &memStore{
		assets: make(map[string][]byte),
		opens:  make(map[string]int),
		closes: make(map[string]int),
	}
}

func (m *memStore) Open(ref string) (io.ReadSeekCloser, error) {
	data, ok := m.assets[ref]
	if !ok {
		return nil, fmt.Errorf("no such asset: %s", ref)
	}
	m.opens[ref]++
	return &memHandle{Reader: bytes.NewReader(data), store: m, ref: ref}, nil
}

func (m *memStore) openHandles(ref string) int {
	return m.opens[ref] - m.closes[ref]
}

type memHandle struct {
	*bytes.Reader
	store *memStore
	ref   string
}

func (h *memHandle) Close() error {
	h.store.closes[h.ref]++
	return nil
}

// addAsset stores a canonical mono 16-bit asset under ref.
func (m *memStore) addAsset(t *testing.T, ref string, samples []int16) {
	t.Helper()
	var buf bytes.Buffer
	hdr := wave.Header{SampleRate: 48000, Channels: 1, BitDepth: 16, DataSize: uint32(len(samples)) * 2}
	if err := wave.Write(&buf, hdr); err != nil {
		t.Fatalf("asset header: %v", err)
	}
	for _, s := range samples {
		buf.WriteByte(byte(s))
		buf.WriteByte(byte(uint16(s) >> 8))
	}
	m.assets[ref] = buf.Bytes()
}

// rampSamples returns n samples counting up from zero.
func rampSamples(n int) []int16 {
	out := make([]int16, n)
	for i := range out {
		out[i] = int16(i)
	}
	return out
}

// constSamples returns n copies of v.
func constSamples(n int, v int16) []int16 {
	out := make([]int16, n)
	for i := range out {
		out[i] = v
	}
	return out
}
