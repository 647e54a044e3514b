package socket

import (
	"bufio"
	"encoding/json"
	"fmt"
	"net"
	"time"

	"github.com/camille/redite/internal/ports"
)

// Client connects to the redite daemon over a Unix socket.
type Client struct {
	sockPath string
}

// NewClient creates a client that will connect to the given socket path.
func NewClient(sockPath string) *Client {
	return &Client{sockPath: sockPath}
}

// Analyze sends an analyze request and consumes the event stream.
// onProgress, if non-nil, is called for each progress message; the
// final result is returned once the complete message arrives. An error
// message terminates the stream with an error.
func (c *Client) Analyze(text string, onProgress func(percent int, message string)) (*ports.Result, error) {
	conn, err := net.DialTimeout("unix", c.sockPath, 2*time.Second)
	if err != nil {
		return nil, fmt.Errorf("connect: %w", err)
	}
	defer conn.Close()

	// Long deadline: analysis has no engine-side timeout.
	conn.SetDeadline(time.Now().Add(120 * time.Second))

	req := Request{ID: "1", Method: MethodAnalyze, Params: AnalyzeParams{Text: text}}
	data, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}
	data = append(data, '\n')
	if _, err := conn.Write(data); err != nil {
		return nil, fmt.Errorf("write: %w", err)
	}

	scanner := bufio.NewScanner(conn)
	scanner.Buffer(make([]byte, 16*1024*1024), 16*1024*1024)

	for scanner.Scan() {
		var msg AnalyzeMessage
		if err := json.Unmarshal(scanner.Bytes(), &msg); err != nil {
			return nil, fmt.Errorf("unmarshal message: %w", err)
		}

		switch msg.Type {
		case EventProgress:
			if onProgress != nil {
				onProgress(msg.Progress, msg.Message)
			}
		case EventComplete:
			return &ports.Result{
				Highlights:       msg.Highlights,
				LemmaFrequencies: msg.LemmaFrequencies,
				Stats:            msg.Stats,
			}, nil
		case EventError:
			return nil, fmt.Errorf("analysis failed: %s", msg.Error)
		default:
			return nil, fmt.Errorf("unknown message type %q", msg.Type)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read: %w", err)
	}
	return nil, fmt.Errorf("stream ended without terminal message")
}

// Health sends a health check request.
func (c *Client) Health() (*HealthResult, error) {
	var result HealthResult
	if err := c.call(Request{ID: "1", Method: MethodHealth}, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// Stats sends a stats request.
func (c *Client) Stats() (*StatsResult, error) {
	var result StatsResult
	if err := c.call(Request{ID: "1", Method: MethodStats}, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// Reload asks the daemon to reload its dictionary from storage.
func (c *Client) Reload() (*ReloadResult, error) {
	var result ReloadResult
	if err := c.call(Request{ID: "1", Method: MethodReload}, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// Shutdown sends a shutdown request to the daemon.
func (c *Client) Shutdown() error {
	return c.call(Request{ID: "1", Method: MethodShutdown}, &struct{}{})
}

// Ping checks if the daemon is reachable.
func (c *Client) Ping() bool {
	conn, err := net.DialTimeout("unix", c.sockPath, 500*time.Millisecond)
	if err != nil {
		return false
	}
	conn.Close()
	return true
}

// call performs one request/response exchange, decoding the result into out.
func (c *Client) call(req Request, out interface{}) error {
	conn, err := net.DialTimeout("unix", c.sockPath, 2*time.Second)
	if err != nil {
		return fmt.Errorf("connect: %w", err)
	}
	defer conn.Close()

	conn.SetDeadline(time.Now().Add(5 * time.Second))

	data, err := json.Marshal(req)
	if err != nil {
		return fmt.Errorf("marshal request: %w", err)
	}
	data = append(data, '\n')
	if _, err := conn.Write(data); err != nil {
		return fmt.Errorf("write: %w", err)
	}

	scanner := bufio.NewScanner(conn)
	scanner.Buffer(make([]byte, 1024*1024), 1024*1024)
	if !scanner.Scan() {
		if err := scanner.Err(); err != nil {
			return fmt.Errorf("read: %w", err)
		}
		return fmt.Errorf("empty response")
	}

	var resp Response
	if err := json.Unmarshal(scanner.Bytes(), &resp); err != nil {
		return fmt.Errorf("unmarshal response: %w", err)
	}
	if resp.Error != "" {
		return fmt.Errorf("server error: %s", resp.Error)
	}

	resultJSON, err := json.Marshal(resp.Result)
	if err != nil {
		return fmt.Errorf("marshal result: %w", err)
	}
	if err := json.Unmarshal(resultJSON, out); err != nil {
		return fmt.Errorf("unmarshal result: %w", err)
	}
	return nil
}
