package testsupport

import (
	"os"
	"path/filepath"
	"testing"
)

// Encoder stub behaviors.
const (
	// StubSucceed writes a non-empty payload to the output path (the final
	// argument) and exits 0. A -version probe succeeds too.
	StubSucceed = "succeed"
	// StubFail writes a complaint to stderr and exits 1 without producing
	// output.
	StubFail = "fail"
)

const succeedScript = `#!/bin/sh
if [ "$1" = "-version" ]; then
  echo "stub encoder version 1.0"
  exit 0
fi
for out; do :; done
printf 'stub encoded payload' > "$out"
exit 0
`

const failScript = `#!/bin/sh
echo "stub encoder failure" >&2
exit 1
`

// StubEncoder writes an executable shell script that mimics an
// ffmpeg-compatible encoder and returns its path.
func StubEncoder(t testing.TB, behavior string) string {
	t.Helper()

	var script string
	switch behavior {
	case StubSucceed:
		script = succeedScript
	case StubFail:
		script = failScript
	default:
		t.Fatalf("unknown stub encoder behavior %q", behavior)
	}

	path := filepath.Join(t.TempDir(), "ffmpeg")
	if err := os.WriteFile(path, []byte(script), 0o755); err != nil {
		t.Fatalf("write stub encoder: %v", err)
	}
	return path
}
