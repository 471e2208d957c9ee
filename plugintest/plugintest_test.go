package plugintest

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	saori "github.com/ukagaka-dev/saori-sdk"
)

func upperModule(t *testing.T) *saori.Module {
	t.Helper()
	m, err := saori.New(saori.Hooks{
		Load: func(string) bool { return true },
		Request: func(req []byte) []byte {
			if len(req) == 0 {
				return []byte("SAORI/1.0 400 Bad Request\r\n\r\n\x00")
			}
			body := fmt.Sprintf("SAORI/1.0 200 OK\r\nCharset: UTF-8\r\nResult: %s\r\n\r\n\x00", req)
			return []byte(body)
		},
	})
	require.NoError(t, err)
	return m
}

func TestRunModuleTests(t *testing.T) {
	RunModuleTests(t, upperModule(t), `C:\saori\upper.dll`, []TestCase{
		{
			Name:    "echoes argument into result",
			Request: []byte("PONG"),
			Validate: func(t *testing.T, resp []byte) {
				AssertStatus(t, resp, 200)
				AssertResult(t, resp, "PONG")
			},
		},
		{
			Name:    "empty request is a bad request",
			Request: nil,
			Validate: func(t *testing.T, resp []byte) {
				AssertStatus(t, resp, 400)
			},
		},
	})
}

func TestParseResponse(t *testing.T) {
	parsed, err := ParseResponse([]byte("SAORI/1.0 200 OK\r\nCharset: Shift_JIS\r\nResult: 1\r\n\r\n\x00"))
	require.NoError(t, err)
	assert.Equal(t, "SAORI/1.0", parsed.Version)
	assert.Equal(t, 200, parsed.Code)
	assert.Equal(t, "OK", parsed.Phrase)
	assert.Equal(t, "Shift_JIS", parsed.Headers["Charset"])
	assert.Equal(t, "1", parsed.Headers["Result"])
}

func TestParseResponse_Malformed(t *testing.T) {
	tests := []struct {
		name string
		resp []byte
	}{
		{"empty", nil},
		{"no status line", []byte("Result: 1\r\n")},
		{"bad code", []byte("SAORI/1.0 abc OK\r\n")},
		{"bad header", []byte("SAORI/1.0 200 OK\r\nnot-a-header\r\n")},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseResponse(tt.resp)
			assert.Error(t, err)
		})
	}
}
