package linear_test

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/gbfsync/internal/adapters/linear"
	"go.trai.ch/gbfsync/internal/core/domain"
	"go.trai.ch/zerr"
)

func TestRenderer_SpanLifecycle(t *testing.T) {
	t.Setenv("NO_COLOR", "1")
	var stdout, stderr bytes.Buffer
	r := linear.NewRenderer(&stdout, &stderr)
	require.NoError(t, r.Start(t.Context()))

	start := time.Now()
	r.OnSpanStart("page", "", "Sword (Fire)", start)
	r.OnSpanStart("asset", "page", "Weapon b 1040000000.png", start)
	r.OnSpanComplete("asset", start.Add(150*time.Millisecond), nil)
	r.OnSpanComplete("page", start.Add(time.Second), nil)
	require.NoError(t, r.Stop())

	lines := strings.Split(strings.TrimSpace(stderr.String()), "\n")
	require.Len(t, lines, 4)
	assert.Equal(t, "[Sword (Fire)] Starting...", lines[0])
	assert.Equal(t, "  [Weapon b 1040000000.png] Starting...", lines[1])
	assert.Equal(t, "  [Weapon b 1040000000.png] ✓ Completed in 150ms", lines[2])
	assert.Equal(t, "[Sword (Fire)] ✓ Completed in 1s", lines[3])
	assert.Empty(t, stdout.String())
}

func TestRenderer_SpanError(t *testing.T) {
	t.Setenv("NO_COLOR", "1")
	var stdout, stderr bytes.Buffer
	r := linear.NewRenderer(&stdout, &stderr)

	start := time.Now()
	r.OnSpanStart("page", "", "Missing", start)
	r.OnSpanComplete("page", start.Add(50*time.Millisecond), zerr.New("page has no templates"))

	assert.Contains(t, stderr.String(), "✗ Failed after 50ms: page has no templates")
}

func TestRenderer_UnknownSpanIsIgnored(t *testing.T) {
	var stdout, stderr bytes.Buffer
	r := linear.NewRenderer(&stdout, &stderr)

	r.OnSpanComplete("nope", time.Now(), nil)
	assert.Empty(t, stderr.String())
}

func TestRenderer_StopReportsOpenSpans(t *testing.T) {
	t.Setenv("NO_COLOR", "1")
	var stdout, stderr bytes.Buffer
	r := linear.NewRenderer(&stdout, &stderr)

	r.OnSpanStart("page", "", "Sword (Fire)", time.Now())
	require.NoError(t, r.Stop())
	assert.Contains(t, stderr.String(), "[Sword (Fire)] ! interrupted")
}

func TestRenderer_Progress(t *testing.T) {
	var stdout, stderr bytes.Buffer
	r := linear.NewRenderer(&stdout, &stderr)

	p := domain.Progress{Label: "Sword (Fire)", Total: 3}
	p.Stage = domain.StageParsing
	r.OnProgress(p)

	p.Stage, p.Downloaded = domain.StageDownloaded, 2
	r.OnProgress(p)

	p.Stage, p.Current = domain.StageProcessing, "a.png"
	r.OnProgress(p)
	p.Processed = 1
	r.OnProgress(p)
	r.OnProgress(p)

	p.Stage, p.Processed, p.Uploaded, p.Failed, p.Current = domain.StageCompleted, 3, 2, 1, ""
	r.OnProgress(p)

	assert.Equal(t,
		"[Sword (Fire)] downloaded 2/3\n"+
			"[Sword (Fire)] 1/3 a.png\n"+
			"[Sword (Fire)] done: 2 uploaded, 0 duplicates, 1 failed of 3\n",
		stdout.String())
}
