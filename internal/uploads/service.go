package uploads

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"cvmentor-backend/internal/analyses"
	"cvmentor-backend/internal/extract"
	"cvmentor-backend/internal/gemini"
	"cvmentor-backend/internal/mentees"
	"cvmentor-backend/internal/resumes"
	"cvmentor-backend/internal/shared/storage/object"
	"cvmentor-backend/internal/shared/telemetry"
	"cvmentor-backend/internal/shared/util"
)

// Resume text beyond this is cut before prompting; keeps the request well
// under the model's context window.
const maxPromptChars = 14000

const defaultTargetRole = "General"

// ErrUnsupportedFile marks an upload whose declared type is neither PDF nor DOCX.
var ErrUnsupportedFile = errors.New("unsupported file type")

// ErrUpstream marks an analyzer failure after the resume was stored.
var ErrUpstream = errors.New("analysis upstream failed")

// Input is one upload request after multipart decoding.
type Input struct {
	FileName    string
	ContentType string
	Data        []byte
	Email       string
	Name        string
	TargetRole  string
}

// Service runs the upload pipeline: store the blob, extract text, upsert the
// mentee, persist the resume, analyze it and persist the analysis.
type Service struct {
	Store    object.Store
	Mentees  mentees.Repo
	Resumes  resumes.Repo
	Analyses analyses.Repo
	Analyzer gemini.Analyzer
}

func NewService(store object.Store, menteeRepo mentees.Repo, resumeRepo resumes.Repo, analysisRepo analyses.Repo, analyzer gemini.Analyzer) *Service {
	return &Service{
		Store:    store,
		Mentees:  menteeRepo,
		Resumes:  resumeRepo,
		Analyses: analysisRepo,
		Analyzer: analyzer,
	}
}

// Process executes the pipeline and returns the id of the persisted analysis.
// No database rows are written before text extraction succeeds; a failure
// later in the pipeline can leave a resume row without an analysis, which is
// accepted and not rolled back.
func (s *Service) Process(ctx context.Context, in Input) (int, error) {
	sanitized, err := util.SanitizeFileName(in.FileName)
	if err != nil {
		return 0, fmt.Errorf("sanitize file name: %w", err)
	}

	storageKey := "cv/" + uuid.NewString() + "-" + sanitized
	if _, err := s.Store.Save(ctx, storageKey, in.ContentType, bytes.NewReader(in.Data)); err != nil {
		return 0, fmt.Errorf("store blob: %w", err)
	}
	fileURL := s.Store.PublicURL(storageKey)

	text, err := extract.FromBytes(ctx, in.Data, in.ContentType, sanitized)
	if err != nil {
		if errors.Is(err, extract.ErrUnsupportedType) {
			return 0, fmt.Errorf("%w: %s", ErrUnsupportedFile, in.ContentType)
		}
		return 0, fmt.Errorf("extract text: %w", err)
	}

	menteeID, err := s.Mentees.FindOrCreate(ctx, in.Email, in.Name, in.TargetRole)
	if err != nil {
		return 0, fmt.Errorf("upsert mentee: %w", err)
	}

	resume, err := s.Resumes.Create(ctx, resumes.Resume{
		MenteeID:    menteeID,
		FileURL:     fileURL,
		FileType:    in.ContentType,
		TextContent: text,
	})
	if err != nil {
		return 0, fmt.Errorf("persist resume: %w", err)
	}

	targetRole := in.TargetRole
	if targetRole == "" {
		targetRole = defaultTargetRole
	}
	resp, err := s.Analyzer.Analyze(ctx, gemini.Request{
		Text:       truncate(text, maxPromptChars),
		TargetRole: targetRole,
	})
	if err != nil {
		telemetry.Error("uploads.analyze.failed", map[string]any{
			"err":       err.Error(),
			"resume_id": resume.ID,
			"mentee_id": menteeID,
		})
		return 0, fmt.Errorf("%w: %v", ErrUpstream, err)
	}

	result, err := json.Marshal(analyses.NormalizeResult(resp.Result))
	if err != nil {
		return 0, fmt.Errorf("encode result: %w", err)
	}
	analysis, err := s.Analyses.Create(ctx, analyses.Analysis{
		ResumeID: resume.ID,
		Result:   result,
	})
	if err != nil {
		return 0, fmt.Errorf("persist analysis: %w", err)
	}

	telemetry.Info("uploads.pipeline.completed", map[string]any{
		"analysis_id": analysis.ID,
		"resume_id":   resume.ID,
		"mentee_id":   menteeID,
		"file_type":   in.ContentType,
		"text_chars":  len(text),
	})
	return analysis.ID, nil
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max]
}
