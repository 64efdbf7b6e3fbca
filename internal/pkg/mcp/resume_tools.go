package mcp

import (
	"context"
	"os"
	"path/filepath"

	"github.com/goccy/go-json"

	"github.com/yigit/benchtrack/internal/pkg/resume"
)

const ResumeServerName = "benchtrack-resume"

type analyzeArgs struct {
	ResumeText string `json:"resumeText"`
	FilePath   string `json:"filePath"`
	FileName   string `json:"filename"`
}

// ResumeTools exposes the resume analyzer. Files given by path are read from
// the local disk; PDFs go through extractor.
func ResumeTools(analyzer *resume.Analyzer, extractor resume.Extractor) []Tool {
	return []Tool{
		{
			Name:        "analyze_resume",
			Description: "Extract skills, categories and likely roles from a resume",
			InputSchema: objectSchema(map[string]interface{}{
				"resumeText": stringProp("Plain resume text"),
				"filePath":   stringProp("Path to a PDF or text resume, used when resumeText is empty"),
				"filename":   stringProp("Name reported in the analysis"),
			}),
			Handler: func(ctx context.Context, raw json.RawMessage) (interface{}, error) {
				var args analyzeArgs
				if err := decodeArgs(raw, &args); err != nil {
					return nil, err
				}
				return analyzeResume(ctx, analyzer, extractor, args)
			},
		},
		{
			Name:        "get_capabilities",
			Description: "Describe what the resume analyzer can do",
			InputSchema: objectSchema(map[string]interface{}{}),
			Handler: func(context.Context, json.RawMessage) (interface{}, error) {
				return map[string]interface{}{
					"capabilities": []string{"resume_analysis", "skill_extraction", "role_inference"},
					"mode":         resume.ModeKeyword,
					"formats":      []string{"pdf", "text"},
					"status":       "ready",
				}, nil
			},
		},
	}
}

func analyzeResume(ctx context.Context, analyzer *resume.Analyzer, extractor resume.Extractor, args analyzeArgs) (interface{}, error) {
	name := args.FileName
	if args.ResumeText != "" {
		if name == "" {
			name = "resume.txt"
		}
		return analyzer.Analyze(args.ResumeText, name), nil
	}

	if args.FilePath == "" {
		return nil, InvalidParams("either resumeText or filePath is required")
	}
	if name == "" {
		name = filepath.Base(args.FilePath)
	}

	data, err := os.ReadFile(args.FilePath)
	if err != nil {
		return nil, InvalidParams("cannot read %s: %v", args.FilePath, err)
	}

	head := data
	if len(head) > 512 {
		head = head[:512]
	}
	if !resume.IsPDF(args.FilePath, head) {
		return analyzer.Analyze(string(data), name), nil
	}

	text, err := extractor.Extract(ctx, data)
	if err != nil {
		return resume.Fallback(name, err.Error()), nil
	}
	return analyzer.Analyze(text, name), nil
}
