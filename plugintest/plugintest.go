// Package plugintest provides an in-process test harness for plugin
// modules: it plays the host, driving a module through load, a batch of
// requests, and unload, with per-case validation hooks and assertions for
// the SAORI response text.
package plugintest

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"
	"testing"

	saori "github.com/ukagaka-dev/saori-sdk"
)

// TestCase is one request driven against a loaded module.
type TestCase struct {
	Name     string
	Request  []byte
	Validate func(t *testing.T, resp []byte)
}

// RunModuleTests loads the module with modulePath (through the UTF-8 loadu
// entry point), runs every case as a subtest, then unloads.
func RunModuleTests(t *testing.T, m *saori.Module, modulePath string, tests []TestCase) {
	t.Helper()

	if got := m.LoadU([]byte(modulePath)); !got.OK() {
		t.Fatalf("load reported failure for %q", modulePath)
	}

	for _, tc := range tests {
		t.Run(tc.Name, func(t *testing.T) {
			resp := m.Request(tc.Request)
			if tc.Validate != nil {
				tc.Validate(t, resp)
			}
		})
	}

	if got := m.Unload(); !got.OK() {
		t.Errorf("unload reported failure")
	}
}

// Response is a parsed SAORI response.
type Response struct {
	Headers map[string]string
	Version string
	Phrase  string
	Code    int
}

// ParseResponse parses the status line and headers of a SAORI response.
// Header parsing stops at the blank line; a trailing NUL is tolerated.
func ParseResponse(resp []byte) (*Response, error) {
	resp = bytes.TrimRight(resp, "\x00")
	lines := strings.Split(string(resp), "\r\n")
	if len(lines) == 0 || lines[0] == "" {
		return nil, fmt.Errorf("plugintest: empty response")
	}

	version, rest, ok := strings.Cut(lines[0], " ")
	if !ok || !strings.HasPrefix(version, "SAORI/") {
		return nil, fmt.Errorf("plugintest: malformed status line %q", lines[0])
	}
	codeStr, phrase, _ := strings.Cut(rest, " ")
	code, err := strconv.Atoi(codeStr)
	if err != nil {
		return nil, fmt.Errorf("plugintest: malformed status code in %q", lines[0])
	}

	parsed := &Response{
		Version: version,
		Code:    code,
		Phrase:  phrase,
		Headers: map[string]string{},
	}
	for _, line := range lines[1:] {
		if line == "" {
			break
		}
		key, value, ok := strings.Cut(line, ":")
		if !ok {
			return nil, fmt.Errorf("plugintest: malformed header line %q", line)
		}
		parsed.Headers[strings.TrimSpace(key)] = strings.TrimSpace(value)
	}
	return parsed, nil
}

// AssertStatus asserts the response status code.
func AssertStatus(t *testing.T, resp []byte, code int) {
	t.Helper()
	parsed, err := ParseResponse(resp)
	if err != nil {
		t.Errorf("response did not parse: %v", err)
		return
	}
	if parsed.Code != code {
		t.Errorf("expected status %d, got %d (%s)", code, parsed.Code, parsed.Phrase)
	}
}

// AssertResult asserts the value of the Result header.
func AssertResult(t *testing.T, resp []byte, want string) {
	t.Helper()
	parsed, err := ParseResponse(resp)
	if err != nil {
		t.Errorf("response did not parse: %v", err)
		return
	}
	got, ok := parsed.Headers["Result"]
	if !ok {
		t.Errorf("response has no Result header")
		return
	}
	if got != want {
		t.Errorf("expected Result %q, got %q", want, got)
	}
}
