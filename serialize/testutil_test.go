package serialize

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

var errTestWrite = errors.New("test write error")

type fakePolicy struct {
	comments   bool
	intl       bool
	emptyOK    map[string]bool
	mustClose  map[string]bool
	emptyCalls int
	mustCalls  int
}

func (p *fakePolicy) PreservesComments() bool     { return p.comments }
func (p *fakePolicy) EncodesIntlCharacters() bool { return p.intl }

func (p *fakePolicy) AllowsEmpty(tag string) bool {
	p.emptyCalls++
	return p.emptyOK[tag]
}

func (p *fakePolicy) RequiresClosingTag(tag string) bool {
	p.mustCalls++
	return p.mustClose[tag]
}

type failingWriter struct {
	FailAt int
	Writes int
}

func (w *failingWriter) Write(p []byte) (int, error) {
	w.Writes++
	if w.Writes == w.FailAt {
		return 0, errTestWrite
	}
	return len(p), nil
}

func newTestSerializer(t *testing.T, p Policy, opts ...Option) (*Serializer, *bytes.Buffer) {
	t.Helper()
	var buf bytes.Buffer
	s, err := New(&buf, p, opts...)
	require.NoError(t, err)
	return s, &buf
}
