package mcp

import (
	"context"

	"github.com/goccy/go-json"

	"github.com/yigit/benchtrack/internal/pkg/training"
)

const (
	TrainingServerName = "benchtrack-training"
	ServerVersion      = "1.0.0"
)

type recommendationArgs struct {
	ConsultantID    int64    `json:"consultantId"`
	CurrentSkills   []string `json:"currentSkills"`
	MissingSkills   []string `json:"missingSkills"`
	ExperienceLevel string   `json:"experienceLevel"`
	CareerGoals     []string `json:"careerGoals"`
}

type gapArgs struct {
	ConsultantSkills []string `json:"consultantSkills"`
	TargetSkills     []string `json:"targetSkills"`
}

type planArgs struct {
	ConsultantID    int64    `json:"consultantId"`
	Name            string   `json:"name"`
	CurrentSkills   []string `json:"currentSkills"`
	TargetSkills    []string `json:"targetSkills"`
	ExperienceYears *int     `json:"experienceYears"`
}

type progressArgs struct {
	EnrollmentID int64                    `json:"enrollmentId"`
	ProgressData *training.ProgressUpdate `json:"progressData"`
}

type catalogArgs struct {
	Category string `json:"category"`
}

// TrainingTools exposes the training engine
func TrainingTools(engine *training.Engine) []Tool {
	return []Tool{
		{
			Name:        "generate_training_recommendations",
			Description: "Generate personalized training recommendations for a consultant",
			InputSchema: objectSchema(map[string]interface{}{
				"consultantId":    integerProp("Consultant id"),
				"currentSkills":   stringList("Skills the consultant already has"),
				"missingSkills":   stringList("Skills to close"),
				"experienceLevel": stringProp("junior, intermediate or senior"),
				"careerGoals":     stringList("Longer term target skills"),
			}, "consultantId", "currentSkills", "missingSkills"),
			Handler: func(_ context.Context, raw json.RawMessage) (interface{}, error) {
				var args recommendationArgs
				if err := decodeArgs(raw, &args); err != nil {
					return nil, err
				}
				if args.ExperienceLevel == "" {
					args.ExperienceLevel = "intermediate"
				}
				return engine.Recommend(training.Request{
					ConsultantID:    args.ConsultantID,
					Skills:          args.CurrentSkills,
					MissingSkills:   args.MissingSkills,
					TargetSkills:    args.CareerGoals,
					ExperienceLevel: args.ExperienceLevel,
				}), nil
			},
		},
		{
			Name:        "analyze_skill_gaps",
			Description: "Analyze skill gaps between current and target skills",
			InputSchema: objectSchema(map[string]interface{}{
				"consultantSkills": stringList("Current skills"),
				"targetSkills":     stringList("Target skills"),
			}, "consultantSkills", "targetSkills"),
			Handler: func(_ context.Context, raw json.RawMessage) (interface{}, error) {
				var args gapArgs
				if err := decodeArgs(raw, &args); err != nil {
					return nil, err
				}
				if len(args.TargetSkills) == 0 {
					return nil, InvalidParams("targetSkills is required")
				}
				return engine.AnalyzeGaps(args.ConsultantSkills, args.TargetSkills), nil
			},
		},
		{
			Name:        "create_skill_development_plan",
			Description: "Create a phased skill development plan",
			InputSchema: objectSchema(map[string]interface{}{
				"consultantId":    integerProp("Consultant id"),
				"name":            stringProp("Consultant name"),
				"currentSkills":   stringList("Current skills"),
				"targetSkills":    stringList("Target skills"),
				"experienceYears": integerProp("Years of experience, default 3"),
			}, "consultantId", "name", "currentSkills", "targetSkills"),
			Handler: func(_ context.Context, raw json.RawMessage) (interface{}, error) {
				var args planArgs
				if err := decodeArgs(raw, &args); err != nil {
					return nil, err
				}
				years := 3
				if args.ExperienceYears != nil {
					years = *args.ExperienceYears
				}
				return engine.DevelopmentPlan(training.Request{
					ConsultantID:    args.ConsultantID,
					Name:            args.Name,
					Skills:          args.CurrentSkills,
					TargetSkills:    args.TargetSkills,
					ExperienceLevel: training.ExperienceLevelForYears(years),
					ExperienceYears: years,
				}), nil
			},
		},
		{
			Name:        "track_training_progress",
			Description: "Interpret a progress update for a training enrollment",
			InputSchema: objectSchema(map[string]interface{}{
				"enrollmentId": integerProp("Enrollment id"),
				"progressData": map[string]interface{}{
					"type": "object",
					"properties": map[string]interface{}{
						"progressPercentage": map[string]interface{}{"type": "number"},
						"milestone":          stringProp("Milestone just reached"),
						"timeSpentHours":     map[string]interface{}{"type": "number"},
						"totalDurationHours": integerProp("Program length in hours"),
					},
				},
			}, "enrollmentId", "progressData"),
			Handler: func(_ context.Context, raw json.RawMessage) (interface{}, error) {
				var args progressArgs
				if err := decodeArgs(raw, &args); err != nil {
					return nil, err
				}
				if args.ProgressData == nil {
					return nil, InvalidParams("progressData is required")
				}
				update := *args.ProgressData
				update.EnrollmentID = args.EnrollmentID
				if update.ProgressPercentage < 0 || update.ProgressPercentage > 100 {
					return nil, InvalidParams("progressPercentage must be between 0 and 100")
				}
				return engine.TrackProgress(update), nil
			},
		},
		{
			Name:        "get_training_catalog",
			Description: "List the training catalog, optionally for one category",
			InputSchema: objectSchema(map[string]interface{}{
				"category": stringProp("Category key or \"all\""),
			}),
			Handler: func(_ context.Context, raw json.RawMessage) (interface{}, error) {
				var args catalogArgs
				if err := decodeArgs(raw, &args); err != nil {
					return nil, err
				}
				return engine.Catalog().List(args.Category), nil
			},
		},
	}
}
