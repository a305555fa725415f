package jsonlog

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"os/exec"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decodeLines(t *testing.T, buf *bytes.Buffer) []entry {
	t.Helper()
	var entries []entry
	dec := json.NewDecoder(buf)
	for dec.More() {
		var e entry
		require.NoError(t, dec.Decode(&e))
		entries = append(entries, e)
	}
	return entries
}

func TestLogger(t *testing.T) {
	t.Run("INFO level", func(t *testing.T) {
		var buf bytes.Buffer
		l := New(&buf, LevelInfo)
		l.PrintInfo("starting server", map[string]string{"addr": ":4000"})

		entries := decodeLines(t, &buf)
		require.Len(t, entries, 1)
		assert.Equal(t, "INFO", entries[0].Level)
		assert.Equal(t, "starting server", entries[0].Message)
		assert.Equal(t, ":4000", entries[0].Properties["addr"])
		assert.Empty(t, entries[0].Trace)
	})

	t.Run("ERROR level carries a trace", func(t *testing.T) {
		var buf bytes.Buffer
		l := New(&buf, LevelInfo)
		l.PrintError(errors.New("connection refused"), nil)

		entries := decodeLines(t, &buf)
		require.Len(t, entries, 1)
		assert.Equal(t, "ERROR", entries[0].Level)
		assert.Equal(t, "connection refused", entries[0].Message)
		assert.NotEmpty(t, entries[0].Trace)
	})

	t.Run("below minimum level is dropped", func(t *testing.T) {
		var buf bytes.Buffer
		l := New(&buf, LevelError)
		l.PrintDebug("noise", nil)
		l.PrintInfo("noise", nil)
		l.PrintError(errors.New("kept"), nil)

		entries := decodeLines(t, &buf)
		require.Len(t, entries, 1)
		assert.Equal(t, "ERROR", entries[0].Level)
	})

	t.Run("Write logs at ERROR", func(t *testing.T) {
		var buf bytes.Buffer
		l := New(&buf, LevelInfo)
		_, err := l.Write([]byte("http: TLS handshake error\n"))
		require.NoError(t, err)

		entries := decodeLines(t, &buf)
		require.Len(t, entries, 1)
		assert.Equal(t, "ERROR", entries[0].Level)
		assert.Equal(t, "http: TLS handshake error", entries[0].Message)
	})
}

func TestPrintFatalExits(t *testing.T) {
	if os.Getenv("JSONLOG_PRINT_FATAL") == "1" {
		New(os.Stdout, LevelInfo).PrintFatal(errors.New("store unavailable"), nil)
		return
	}

	cmd := exec.Command(os.Args[0], "-test.run=^TestPrintFatalExits$")
	cmd.Env = append(os.Environ(), "JSONLOG_PRINT_FATAL=1")
	out, err := cmd.Output()

	var exitErr *exec.ExitError
	require.ErrorAs(t, err, &exitErr)
	assert.Equal(t, 1, exitErr.ExitCode())
	assert.Contains(t, string(out), `"level":"FATAL"`)
	assert.Contains(t, string(out), `"message":"store unavailable"`)
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in      string
		want    Level
		wantErr bool
	}{
		{in: "debug", want: LevelDebug},
		{in: "INFO", want: LevelInfo},
		{in: "", want: LevelInfo},
		{in: " error ", want: LevelError},
		{in: "fatal", want: LevelFatal},
		{in: "off", want: LevelOff},
		{in: "verbose", want: LevelInfo, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseLevel(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
			assert.Equal(t, tt.want, got)
		})
	}
}
