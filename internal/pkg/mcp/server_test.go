package mcp

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/goccy/go-json"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yigit/benchtrack/internal/pkg/resume"
	"github.com/yigit/benchtrack/internal/pkg/training"
)

func trainingServer() *Server {
	return NewServer(TrainingServerName, ServerVersion, zerolog.Nop(), TrainingTools(training.NewEngine(nil))...)
}

func callText(t *testing.T, resp *Response) string {
	t.Helper()
	require.NotNil(t, resp)
	require.Nil(t, resp.Error)
	res, ok := resp.Result.(CallResult)
	require.True(t, ok)
	require.Len(t, res.Content, 1)
	assert.Equal(t, "text", res.Content[0].Type)
	return res.Content[0].Text
}

func TestHandle_Initialize(t *testing.T) {
	resp := trainingServer().Handle(context.Background(), []byte(`{"jsonrpc":"2.0","id":1,"method":"initialize","params":{}}`))

	require.NotNil(t, resp)
	assert.Equal(t, "1", string(resp.ID))
	result := resp.Result.(map[string]interface{})
	assert.Equal(t, ProtocolVersion, result["protocolVersion"])
	assert.Equal(t, TrainingServerName, result["serverInfo"].(map[string]interface{})["name"])
}

func TestHandle_ToolsList(t *testing.T) {
	resp := trainingServer().Handle(context.Background(), []byte(`{"jsonrpc":"2.0","id":"a","method":"tools/list"}`))

	tools := resp.Result.(map[string]interface{})["tools"].([]Tool)
	names := make([]string, 0, len(tools))
	for _, tool := range tools {
		names = append(names, tool.Name)
	}
	assert.Equal(t, []string{
		"generate_training_recommendations",
		"analyze_skill_gaps",
		"create_skill_development_plan",
		"track_training_progress",
		"get_training_catalog",
	}, names)
}

func TestHandle_Errors(t *testing.T) {
	s := trainingServer()
	ctx := context.Background()

	resp := s.Handle(ctx, []byte(`{not json`))
	assert.Equal(t, CodeParseError, resp.Error.Code)
	assert.Equal(t, "null", string(resp.ID))

	resp = s.Handle(ctx, []byte(`{"jsonrpc":"2.0","id":2,"method":"resources/list"}`))
	assert.Equal(t, CodeMethodNotFound, resp.Error.Code)

	resp = s.Handle(ctx, []byte(`{"jsonrpc":"2.0","id":3,"method":"tools/call","params":{"name":"nope"}}`))
	assert.Equal(t, CodeInvalidParams, resp.Error.Code)

	resp = s.Handle(ctx, []byte(`{"jsonrpc":"2.0","id":4,"method":"tools/call","params":{"name":"analyze_skill_gaps","arguments":{"consultantSkills":"go"}}}`))
	assert.Equal(t, CodeInvalidParams, resp.Error.Code)
}

func TestHandle_NotificationHasNoResponse(t *testing.T) {
	resp := trainingServer().Handle(context.Background(), []byte(`{"jsonrpc":"2.0","method":"notifications/initialized"}`))
	assert.Nil(t, resp)
}

func TestHandle_ToolFailureIsInternalError(t *testing.T) {
	s := NewServer("test", "0", zerolog.Nop(), Tool{
		Name: "boom",
		Handler: func(context.Context, json.RawMessage) (interface{}, error) {
			return nil, errors.New("exploded")
		},
	})

	resp := s.Handle(context.Background(), []byte(`{"jsonrpc":"2.0","id":9,"method":"tools/call","params":{"name":"boom"}}`))
	require.NotNil(t, resp.Error)
	assert.Equal(t, CodeInternalError, resp.Error.Code)
	assert.Contains(t, resp.Error.Message, "exploded")
}

func TestTrainingTools_Recommendations(t *testing.T) {
	resp := trainingServer().Handle(context.Background(), []byte(`{"jsonrpc":"2.0","id":5,"method":"tools/call","params":{"name":"generate_training_recommendations","arguments":{"consultantId":7,"currentSkills":["Java"],"missingSkills":["AWS"]}}}`))

	var out training.Result
	require.NoError(t, json.Unmarshal([]byte(callText(t, resp)), &out))
	require.NotEmpty(t, out.Recommendations)
	assert.Equal(t, "aws_solutions_architect", out.Recommendations[0].TrainingID)
}

func TestTrainingTools_CatalogAndGaps(t *testing.T) {
	s := trainingServer()
	ctx := context.Background()

	resp := s.Handle(ctx, []byte(`{"jsonrpc":"2.0","id":6,"method":"tools/call","params":{"name":"get_training_catalog","arguments":{"category":"database"}}}`))
	var listing training.Listing
	require.NoError(t, json.Unmarshal([]byte(callText(t, resp)), &listing))
	assert.Equal(t, []string{"database"}, listing.Categories)
	assert.Equal(t, 2, listing.TotalPrograms)

	resp = s.Handle(ctx, []byte(`{"jsonrpc":"2.0","id":7,"method":"tools/call","params":{"name":"analyze_skill_gaps","arguments":{"consultantSkills":["Go","AWS"],"targetSkills":["aws","Kubernetes"]}}}`))
	var gaps training.GapAnalysis
	require.NoError(t, json.Unmarshal([]byte(callText(t, resp)), &gaps))
	assert.Equal(t, []string{"Kubernetes"}, gaps.MissingSkills)
}

func TestTrainingTools_ProgressRange(t *testing.T) {
	resp := trainingServer().Handle(context.Background(), []byte(`{"jsonrpc":"2.0","id":8,"method":"tools/call","params":{"name":"track_training_progress","arguments":{"enrollmentId":1,"progressData":{"progressPercentage":140}}}}`))
	require.NotNil(t, resp.Error)
	assert.Equal(t, CodeInvalidParams, resp.Error.Code)
}

type stubExtractor struct {
	text string
	err  error
}

func (s stubExtractor) Extract(context.Context, []byte) (string, error) {
	return s.text, s.err
}

func TestResumeTools_AnalyzeText(t *testing.T) {
	s := NewServer(ResumeServerName, ServerVersion, zerolog.Nop(), ResumeTools(resume.NewAnalyzer(), stubExtractor{})...)

	resp := s.Handle(context.Background(), []byte(`{"jsonrpc":"2.0","id":1,"method":"tools/call","params":{"name":"analyze_resume","arguments":{"resumeText":"Built services in Python and Docker on AWS"}}}`))

	var analysis resume.Analysis
	require.NoError(t, json.Unmarshal([]byte(callText(t, resp)), &analysis))
	assert.Equal(t, "resume.txt", analysis.FileName)
	assert.Contains(t, analysis.Skills, "Python")
	assert.Contains(t, analysis.Skills, "Docker")
}

func TestResumeTools_PDFExtractionFailureFallsBack(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cv.pdf")
	require.NoError(t, os.WriteFile(path, []byte("%PDF-1.4\n%broken"), 0o600))

	s := NewServer(ResumeServerName, ServerVersion, zerolog.Nop(),
		ResumeTools(resume.NewAnalyzer(), stubExtractor{err: resume.ErrExtractionUnavailable})...)

	line, err := json.Marshal(map[string]interface{}{
		"jsonrpc": "2.0", "id": 1, "method": "tools/call",
		"params": map[string]interface{}{"name": "analyze_resume", "arguments": map[string]string{"filePath": path}},
	})
	require.NoError(t, err)

	var analysis resume.Analysis
	require.NoError(t, json.Unmarshal([]byte(callText(t, s.Handle(context.Background(), line))), &analysis))
	assert.Equal(t, resume.ModeFallback, analysis.Mode)
	assert.Equal(t, "cv.pdf", analysis.FileName)
}

func TestServe_LineProtocol(t *testing.T) {
	in := strings.NewReader(strings.Join([]string{
		`{"jsonrpc":"2.0","id":1,"method":"initialize"}`,
		``,
		`{"jsonrpc":"2.0","method":"notifications/initialized"}`,
		`{"jsonrpc":"2.0","id":2,"method":"ping"}`,
	}, "\n"))
	var out bytes.Buffer

	require.NoError(t, trainingServer().Serve(context.Background(), in, &out))

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	require.Len(t, lines, 2)
	assert.Contains(t, lines[0], `"protocolVersion":"2024-11-05"`)
	assert.Contains(t, lines[1], `"id":2`)
}

func TestServe_OversizedLineKeepsServing(t *testing.T) {
	s := trainingServer()
	s.maxLine = 64
	in := strings.NewReader(strings.Join([]string{
		`{"jsonrpc":"2.0","id":1,"method":"tools/call","params":{"name":"` + strings.Repeat("x", 200) + `"}}`,
		`{"jsonrpc":"2.0","id":2,"method":"ping"}`,
	}, "\n") + "\n")
	var out bytes.Buffer

	require.NoError(t, s.Serve(context.Background(), in, &out))

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	require.Len(t, lines, 2)
	assert.Contains(t, lines[0], `"code":-32700`)
	assert.Contains(t, lines[1], `"id":2`)
	assert.NotContains(t, lines[1], `"error"`)
}

func TestReadLine_LongerThanBuffer(t *testing.T) {
	long := strings.Repeat("a", 100)
	in := bufio.NewReaderSize(strings.NewReader(long+"\r\nshort\n"), 16)

	line, tooLong, err := readLine(in, 200)
	require.NoError(t, err)
	assert.False(t, tooLong)
	assert.Equal(t, long, string(line))

	line, tooLong, err = readLine(in, 4)
	require.NoError(t, err)
	assert.True(t, tooLong)
	assert.Empty(t, line)

	_, _, err = readLine(in, 4)
	assert.ErrorIs(t, err, io.EOF)
}
