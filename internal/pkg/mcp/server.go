// Package mcp serves tools over newline-delimited JSON-RPC 2.0 on stdio.
package mcp

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/goccy/go-json"
	"github.com/rs/zerolog"
)

const (
	ProtocolVersion = "2024-11-05"
	jsonrpcVersion  = "2.0"

	// maxLineSize bounds one request line; resumes passed inline can be large
	maxLineSize = 8 << 20
)

// JSON-RPC error codes
const (
	CodeParseError     = -32700
	CodeInvalidRequest = -32600
	CodeMethodNotFound = -32601
	CodeInvalidParams  = -32602
	CodeInternalError  = -32603
)

type Request struct {
	JSONRPC string          `json:"jsonrpc"`
	ID      json.RawMessage `json:"id,omitempty"`
	Method  string          `json:"method"`
	Params  json.RawMessage `json:"params,omitempty"`
}

type Response struct {
	JSONRPC string          `json:"jsonrpc"`
	ID      json.RawMessage `json:"id"`
	Result  interface{}     `json:"result,omitempty"`
	Error   *Error          `json:"error,omitempty"`
}

type Error struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// HandlerFunc runs a tool. The returned value is JSON encoded into the
// text content of the call result.
type HandlerFunc func(ctx context.Context, args json.RawMessage) (interface{}, error)

// Tool is a callable tool and its input schema
type Tool struct {
	Name        string                 `json:"name"`
	Description string                 `json:"description"`
	InputSchema map[string]interface{} `json:"inputSchema"`
	Handler     HandlerFunc            `json:"-"`
}

// Content is one item of a tools/call result
type Content struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

type CallResult struct {
	Content []Content `json:"content"`
}

type callParams struct {
	Name      string          `json:"name"`
	Arguments json.RawMessage `json:"arguments"`
}

// InvalidParamsError marks a tool failure caused by bad arguments
type InvalidParamsError struct {
	Msg string
}

func (e *InvalidParamsError) Error() string { return e.Msg }

// InvalidParams builds an InvalidParamsError
func InvalidParams(format string, args ...interface{}) error {
	return &InvalidParamsError{Msg: fmt.Sprintf(format, args...)}
}

// Server dispatches JSON-RPC requests to registered tools
type Server struct {
	name    string
	version string
	tools   []Tool
	byName  map[string]Tool
	log     zerolog.Logger
	maxLine int
}

// NewServer creates a server exposing tools in the given order
func NewServer(name, version string, log zerolog.Logger, tools ...Tool) *Server {
	s := &Server{
		name:    name,
		version: version,
		tools:   tools,
		byName:  make(map[string]Tool, len(tools)),
		log:     log.With().Str("mcp_server", name).Logger(),
		maxLine: maxLineSize,
	}
	for _, t := range tools {
		s.byName[t.Name] = t
	}
	return s
}

// Serve reads one request per line from r and writes one response per line
// to w until r is exhausted or ctx is cancelled. A line longer than the
// limit is answered with a parse error and skipped.
func (s *Server) Serve(ctx context.Context, r io.Reader, w io.Writer) error {
	in := bufio.NewReaderSize(r, 64*1024)
	out := bufio.NewWriter(w)

	s.log.Info().Int("tools", len(s.tools)).Msg("MCP server ready")

	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		line, tooLong, err := readLine(in, s.maxLine)
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("read request: %w", err)
		}

		var resp *Response
		if tooLong {
			s.log.Warn().Int("limit", s.maxLine).Msg("Request line too large")
			resp = errorResponse(nil, CodeParseError, "Parse error: request too large")
		} else {
			if len(bytes.TrimSpace(line)) == 0 {
				continue
			}
			resp = s.Handle(ctx, line)
		}
		if resp == nil {
			continue
		}

		encoded, err := json.Marshal(resp)
		if err != nil {
			return fmt.Errorf("encode response: %w", err)
		}
		if _, err := out.Write(append(encoded, '\n')); err != nil {
			return err
		}
		if err := out.Flush(); err != nil {
			return err
		}
	}
}

// readLine returns the next line without its terminator. When the line
// exceeds limit bytes the rest of it is drained and tooLong is set.
func readLine(in *bufio.Reader, limit int) (line []byte, tooLong bool, err error) {
	for {
		chunk, err := in.ReadSlice('\n')
		if !tooLong {
			if len(line)+len(bytes.TrimRight(chunk, "\r\n")) > limit {
				tooLong, line = true, nil
			} else {
				line = append(line, chunk...)
			}
		}
		switch {
		case errors.Is(err, bufio.ErrBufferFull):
			continue
		case errors.Is(err, io.EOF):
			if len(line) == 0 && !tooLong {
				return nil, false, io.EOF
			}
			return bytes.TrimRight(line, "\r\n"), tooLong, nil
		case err != nil:
			return nil, false, err
		}
		return bytes.TrimRight(line, "\r\n"), tooLong, nil
	}
}

// Handle processes a single encoded request. It returns nil for
// notifications, which get no response.
func (s *Server) Handle(ctx context.Context, line []byte) *Response {
	var req Request
	if err := json.Unmarshal(line, &req); err != nil {
		s.log.Warn().Err(err).Msg("Malformed request")
		return errorResponse(nil, CodeParseError, "Parse error")
	}

	if len(req.ID) == 0 || string(req.ID) == "null" {
		s.log.Debug().Str("method", req.Method).Msg("Notification received")
		return nil
	}
	if req.JSONRPC != jsonrpcVersion || req.Method == "" {
		return errorResponse(req.ID, CodeInvalidRequest, "Invalid request")
	}

	switch req.Method {
	case "initialize":
		return result(req.ID, map[string]interface{}{
			"protocolVersion": ProtocolVersion,
			"capabilities": map[string]interface{}{
				"tools": map[string]interface{}{},
			},
			"serverInfo": map[string]interface{}{
				"name":    s.name,
				"version": s.version,
			},
		})
	case "ping":
		return result(req.ID, map[string]interface{}{})
	case "tools/list":
		return result(req.ID, map[string]interface{}{"tools": s.tools})
	case "tools/call":
		return s.call(ctx, req)
	default:
		return errorResponse(req.ID, CodeMethodNotFound, "Unknown method: "+req.Method)
	}
}

func (s *Server) call(ctx context.Context, req Request) *Response {
	var params callParams
	if len(req.Params) == 0 {
		return errorResponse(req.ID, CodeInvalidParams, "Missing params")
	}
	if err := json.Unmarshal(req.Params, &params); err != nil {
		return errorResponse(req.ID, CodeInvalidParams, "Invalid params: "+err.Error())
	}

	tool, ok := s.byName[params.Name]
	if !ok {
		return errorResponse(req.ID, CodeInvalidParams, "Unknown tool: "+params.Name)
	}

	args := params.Arguments
	if len(args) == 0 || string(args) == "null" {
		args = json.RawMessage("{}")
	}

	out, err := tool.Handler(ctx, args)
	if err != nil {
		var invalid *InvalidParamsError
		if errors.As(err, &invalid) {
			return errorResponse(req.ID, CodeInvalidParams, invalid.Msg)
		}
		s.log.Error().Err(err).Str("tool", tool.Name).Msg("Tool failed")
		return errorResponse(req.ID, CodeInternalError, "Internal error: "+err.Error())
	}

	text, err := json.Marshal(out)
	if err != nil {
		return errorResponse(req.ID, CodeInternalError, "Internal error: "+err.Error())
	}
	return result(req.ID, CallResult{Content: []Content{{Type: "text", Text: string(text)}}})
}

// decodeArgs unmarshals tool arguments, reporting failures as invalid params
func decodeArgs(args json.RawMessage, v interface{}) error {
	if err := json.Unmarshal(args, v); err != nil {
		return InvalidParams("invalid arguments: %v", err)
	}
	return nil
}

func result(id json.RawMessage, v interface{}) *Response {
	return &Response{JSONRPC: jsonrpcVersion, ID: id, Result: v}
}

func errorResponse(id json.RawMessage, code int, msg string) *Response {
	if len(id) == 0 {
		id = json.RawMessage("null")
	}
	return &Response{JSONRPC: jsonrpcVersion, ID: id, Error: &Error{Code: code, Message: msg}}
}
