// Package socket implements a JSON-over-Unix-socket protocol for the
// redite daemon. The protocol uses newline-delimited JSON: each message
// is one JSON object + \n. Most methods are request/response; analyze
// is request/stream — any number of progress messages followed by
// exactly one complete or error message.
package socket

import (
	"crypto/sha256"
	"fmt"
	"path/filepath"

	"github.com/camille/redite/internal/ports"
)

// SocketPath returns the Unix socket path for a given data directory.
// Format: /tmp/redite-{12hex}.sock
func SocketPath(dataDir string) string {
	abs, err := filepath.Abs(dataDir)
	if err != nil {
		abs = dataDir
	}
	h := sha256.Sum256([]byte(abs))
	return fmt.Sprintf("/tmp/redite-%x.sock", h[:6])
}

// Method names for the protocol.
const (
	MethodAnalyze  = "analyze"
	MethodHealth   = "health"
	MethodStats    = "stats"
	MethodReload   = "reload"
	MethodShutdown = "shutdown"
)

// Event type tags on analyze stream messages.
const (
	EventProgress = "progress"
	EventComplete = "complete"
	EventError    = "error"
)

// Request is the wire format for client-to-server messages.
type Request struct {
	ID     string      `json:"id"`
	Method string      `json:"method"`
	Params interface{} `json:"params,omitempty"`
}

// Response is the wire format for single-shot server-to-client messages.
type Response struct {
	ID     string      `json:"id"`
	Result interface{} `json:"result,omitempty"`
	Error  string      `json:"error,omitempty"`
}

// AnalyzeParams is the params for an analyze request.
type AnalyzeParams struct {
	Text string `json:"text"`
}

// ProgressMessage is one progress update in an analyze stream.
type ProgressMessage struct {
	Type     string `json:"type"`
	Progress int    `json:"progress"`
	Message  string `json:"message,omitempty"`
}

// CompleteMessage is the terminal success message of an analyze stream.
// Highlights and LemmaFrequencies are always present on the wire, as
// empty arrays when the text has no repeated vocabulary.
type CompleteMessage struct {
	Type             string             `json:"type"`
	Highlights       []ports.Highlight  `json:"highlights"`
	LemmaFrequencies []ports.LemmaCount `json:"lemmaFrequencies"`
	Stats            ports.Stats        `json:"stats"`
}

// ErrorMessage is the terminal failure message of an analyze stream.
type ErrorMessage struct {
	Type  string `json:"type"`
	Error string `json:"error"`
}

// AnalyzeMessage is the client-side union for decoding any stream
// message; Type selects which fields are meaningful.
type AnalyzeMessage struct {
	Type     string `json:"type"`
	Progress int    `json:"progress"`
	Message  string `json:"message"`
	Error    string `json:"error"`

	Highlights       []ports.Highlight  `json:"highlights"`
	LemmaFrequencies []ports.LemmaCount `json:"lemmaFrequencies"`
	Stats            ports.Stats        `json:"stats"`
}

// HealthResult is the result of a health request.
type HealthResult struct {
	Status  string `json:"status"`
	Entries int    `json:"entries"`
	Uptime  string `json:"uptime"`
}

// StatsResult is the result of a stats request.
type StatsResult struct {
	Entries       int    `json:"entries"`
	BundleBuiltAt string `json:"bundle_built_at"`
	Busy          bool   `json:"busy"`
	UptimeSeconds int64  `json:"uptime_seconds"`
}

// ReloadResult is the result of a reload request.
type ReloadResult struct {
	Entries int `json:"entries"`
}
