package api

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/campus-connect/campusctl/pkg/internal/models"
)

var resumeContentTypes = map[string]string{
	".pdf":  "application/pdf",
	".doc":  "application/msword",
	".docx": "application/vnd.openxmlformats-officedocument.wordprocessingml.document",
}

// AnalyzeResume uploads a local PDF or Word document for analysis. The
// accepted type list mirrors the server's so obviously bad uploads
// fail before the round trip. The endpoint is rate limited; a 429
// surfaces as a retry hint to the caller.
func (c *Client) AnalyzeResume(ctx context.Context, path string) (models.ResumeAnalysis, error) {
	var analysis models.ResumeAnalysis

	contentType, ok := resumeContentTypes[strings.ToLower(filepath.Ext(path))]
	if !ok {
		return analysis, fmt.Errorf("unsupported file type %q: please upload a PDF or Word document", filepath.Ext(path))
	}

	file, err := os.Open(path)
	if err != nil {
		return analysis, err
	}
	defer file.Close()

	var buf bytes.Buffer
	form := multipart.NewWriter(&buf)
	header := make(map[string][]string)
	header["Content-Disposition"] = []string{fmt.Sprintf(`form-data; name="file"; filename=%q`, filepath.Base(path))}
	header["Content-Type"] = []string{contentType}
	part, err := form.CreatePart(header)
	if err != nil {
		return analysis, err
	}
	if _, err := io.Copy(part, file); err != nil {
		return analysis, err
	}
	if err := form.Close(); err != nil {
		return analysis, err
	}

	err = c.doRaw(ctx, http.MethodPost, "/student/analyze-resume", form.FormDataContentType(), &buf, &analysis)
	if IsStatus(err, http.StatusTooManyRequests) {
		return analysis, fmt.Errorf("resume analysis is rate limited, try again in a few minutes: %w", err)
	}
	return analysis, err
}
