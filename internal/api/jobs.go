package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"

	"github.com/colbuilder-dev/colbuild/internal/models"
)

// jsonID decodes a job identifier that the backend serializes as either a
// JSON number or a string.
type jsonID string

func (id *jsonID) UnmarshalJSON(data []byte) error {
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*id = jsonID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*id = jsonID(n.String())
	return nil
}

// GetCrosslinksData fetches the crosslink reference table consumed by the
// molecule parameter panel. The table is fetched once per wizard run and
// held read-only afterwards.
func (c *Client) GetCrosslinksData(ctx context.Context) (*models.CrosslinkTable, error) {
	var result struct {
		Species    []string                 `json:"species"`
		Crosslinks []models.CrosslinkRecord `json:"crosslinks"`
	}
	if err := c.doJSON(ctx, "GET", "/api/jobs/crosslinks-data", nil, &result); err != nil {
		return nil, err
	}
	return models.NewCrosslinkTable(result.Species, result.Crosslinks), nil
}

// SubmitJob hands a validated payload to the job queue and returns the new
// job identifier.
func (c *Client) SubmitJob(ctx context.Context, req models.SubmitRequest) (string, error) {
	var result struct {
		JobID jsonID `json:"job_id"`
	}
	if err := c.doJSON(ctx, "POST", "/jobs/submit", req, &result); err != nil {
		return "", err
	}
	if result.JobID == "" {
		return "", fmt.Errorf("submit response carried no job id")
	}
	return string(result.JobID), nil
}

// ListJobs lists the caller's jobs, newest first.
func (c *Client) ListJobs(ctx context.Context) ([]models.JobSummary, error) {
	var result struct {
		Jobs []models.JobSummary `json:"jobs"`
	}
	if err := c.doJSON(ctx, "GET", "/api/jobs/", nil, &result); err != nil {
		return nil, err
	}
	return result.Jobs, nil
}

// GetJob fetches the detailed record for one job, including progress fields.
func (c *Client) GetJob(ctx context.Context, jobID string) (*models.Job, error) {
	var job models.Job
	path := fmt.Sprintf("/api/jobs/%s", url.PathEscape(jobID))
	if err := c.doJSON(ctx, "GET", path, nil, &job); err != nil {
		return nil, err
	}
	return &job, nil
}

// CancelJob cancels a queued or running job. The server rejects cancellation
// of finished jobs with a business-rule error.
func (c *Client) CancelJob(ctx context.Context, jobID string) error {
	path := fmt.Sprintf("/api/jobs/%s/cancel", url.PathEscape(jobID))
	return c.doJSON(ctx, "POST", path, nil, nil)
}
