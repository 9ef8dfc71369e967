// Package cli provides job operation commands.
package cli

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/colbuilder-dev/colbuild/internal/models"
	"github.com/colbuilder-dev/colbuild/internal/progress"
)

// trackPollInterval matches the refresh rate of the tracking view.
const trackPollInterval = 2 * time.Second

// newJobsCmd creates the 'jobs' command group.
func newJobsCmd() *cobra.Command {
	jobsCmd := &cobra.Command{
		Use:   "jobs",
		Short: "Job operations (new, list, get, track, cancel)",
		Long:  `Commands for managing structure-generation jobs on the Colbuilder server.`,
	}

	jobsCmd.AddCommand(newJobsNewCmd())
	jobsCmd.AddCommand(newJobsListCmd())
	jobsCmd.AddCommand(newJobsGetCmd())
	jobsCmd.AddCommand(newJobsTrackCmd())
	jobsCmd.AddCommand(newJobsCancelCmd())

	return jobsCmd
}

// newJobsNewCmd creates the 'jobs new' command, which runs the
// submission wizard.
func newJobsNewCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "new",
		Short: "Submit a new job through the interactive wizard",
		Long: `Walk through the four-step submission wizard: job type, name and
description, type-specific parameters, and a review screen. Nothing is
sent to the server until the review step is confirmed.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}
			return a.requireAuth(cmd, func() error {
				return a.runWizard()
			})
		},
	}
}

// newJobsListCmd creates the 'jobs list' command.
func newJobsListCmd() *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List your jobs",
		Long: `List the jobs associated with your account, newest first.

Example:
  # List all jobs
  colbuild jobs list

  # List first 10 jobs
  colbuild jobs list --limit 10`,
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := GetLogger()

			a, err := newApp()
			if err != nil {
				return err
			}
			return a.requireAuth(cmd, func() error {
				ctx, cancel := opContext(requestTimeout)
				defer cancel()

				logger.Debug().Msg("Fetching jobs")
				jobs, err := a.client.ListJobs(ctx)
				if err != nil {
					return fmt.Errorf("failed to list jobs: %w", err)
				}

				if len(jobs) == 0 {
					fmt.Println("No jobs found")
					return nil
				}

				fmt.Printf("Found %d job(s):\n\n", len(jobs))

				displayCount := len(jobs)
				if limit > 0 && limit < len(jobs) {
					displayCount = limit
				}

				for i := 0; i < displayCount; i++ {
					job := jobs[i]
					fmt.Printf("Job #%d:\n", i+1)
					fmt.Printf("  ID: %s\n", job.ID)
					fmt.Printf("  Type: %s\n", models.JobType(job.Type).DisplayName())
					fmt.Printf("  Status: %s\n", job.Status)
					fmt.Printf("  Created: %s\n", job.CreatedAt)
					if job.Description != "" {
						fmt.Printf("  Description: %s\n", job.Description)
					}
					fmt.Println()
				}

				if limit > 0 && limit < len(jobs) {
					fmt.Printf("(Showing %d of %d jobs. Use --limit to change)\n", displayCount, len(jobs))
				}

				return nil
			})
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 0, "Limit number of jobs displayed (0 = all)")

	return cmd
}

// newJobsGetCmd creates the 'jobs get' command.
func newJobsGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get <job-id>",
		Short: "Get job details and status",
		Long: `Get detailed information about a specific job.

Example:
  colbuild jobs get 42`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			jobID := args[0]
			logger := GetLogger()

			a, err := newApp()
			if err != nil {
				return err
			}
			return a.requireAuth(cmd, func() error {
				ctx, cancel := opContext(requestTimeout)
				defer cancel()

				logger.Debug().Str("job_id", jobID).Msg("Fetching job details")
				job, err := a.client.GetJob(ctx, jobID)
				if err != nil {
					return fmt.Errorf("failed to get job: %w", err)
				}

				printJobDetails(job)
				return nil
			})
		},
	}
}

// printJobDetails renders the full job record.
func printJobDetails(job *models.Job) {
	fmt.Printf("Job Details:\n")
	fmt.Printf("  ID: %s\n", job.ID)
	fmt.Printf("  Type: %s\n", models.JobType(job.Type).DisplayName())
	fmt.Printf("  Status: %s\n", job.Status)
	fmt.Printf("  Progress: %.0f%%\n", job.Progress)
	if job.CurrentStep != "" {
		fmt.Printf("  Current Step: %s\n", job.CurrentStep)
	}
	if job.ErrorMessage != "" {
		fmt.Printf("  Error: %s\n", job.ErrorMessage)
	}
	fmt.Printf("  Created: %s\n", job.CreatedAt)
	if job.StartedAt != nil {
		fmt.Printf("  Started: %s\n", *job.StartedAt)
	}
	if job.CompletedAt != nil {
		fmt.Printf("  Completed: %s\n", *job.CompletedAt)
	}
	if job.Description != "" {
		fmt.Printf("  Description: %s\n", job.Description)
	}
	if len(job.OutputFiles) > 0 {
		fmt.Printf("  Output Files:\n")
		for _, f := range job.OutputFiles {
			fmt.Printf("    %s\n", f)
		}
	}
}

// newJobsTrackCmd creates the 'jobs track' command.
func newJobsTrackCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "track <job-id>",
		Short: "Follow a job until it finishes",
		Long: `Poll a job's status and render a live progress bar until the job
reaches a terminal state (completed, failed, cancelled or expired).

Interrupting with Ctrl-C stops tracking only; the job keeps running.

Example:
  colbuild jobs track 42`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			jobID := args[0]

			a, err := newApp()
			if err != nil {
				return err
			}
			return a.requireAuth(cmd, func() error {
				var reporter progress.Reporter = progress.NewNoOpProgress()
				if term.IsTerminal(int(os.Stderr.Fd())) {
					reporter = progress.NewCLIProgress()
				}
				return a.trackJob(GetContext(), jobID, reporter)
			})
		},
	}
}

// trackJob polls the job until it reaches a terminal status, feeding
// each update to the reporter. Context cancellation stops the loop
// without touching the job.
func (a *app) trackJob(ctx context.Context, jobID string, reporter progress.Reporter) error {
	logger := GetLogger()

	fetch := func() (*models.Job, error) {
		reqCtx, cancel := context.WithTimeout(ctx, requestTimeout)
		defer cancel()
		return a.client.GetJob(reqCtx, jobID)
	}

	job, err := fetch()
	if err != nil {
		return fmt.Errorf("failed to get job: %w", err)
	}

	reporter.Start(fmt.Sprintf("Tracking job %s", job.ID))
	reporter.Update(job.Progress, job.CurrentStep)

	ticker := time.NewTicker(trackPollInterval)
	defer ticker.Stop()

	for !models.IsTerminalStatus(job.Status) {
		select {
		case <-ctx.Done():
			reporter.Finish()
			fmt.Println("\nStopped tracking. The job keeps running on the server.")
			return nil
		case <-ticker.C:
		}

		next, err := fetch()
		if err != nil {
			// Transient poll failures keep the last known state.
			logger.Debug().Err(err).Msg("poll failed, retrying")
			continue
		}
		job = next
		reporter.Update(job.Progress, job.CurrentStep)
	}

	reporter.Finish()
	fmt.Println()

	switch job.Status {
	case models.JobStatusCompleted:
		fmt.Printf("Job %s completed.\n", job.ID)
		if len(job.OutputFiles) > 0 {
			fmt.Println("Output files:")
			for _, f := range job.OutputFiles {
				fmt.Printf("  %s\n", f)
			}
		}
	case models.JobStatusFailed:
		if job.ErrorMessage != "" {
			return fmt.Errorf("job %s failed: %s", job.ID, job.ErrorMessage)
		}
		return fmt.Errorf("job %s failed", job.ID)
	case models.JobStatusCancelled:
		fmt.Printf("Job %s was cancelled.\n", job.ID)
	case models.JobStatusExpired:
		fmt.Printf("Job %s expired before completing.\n", job.ID)
	}

	return nil
}

// newJobsCancelCmd creates the 'jobs cancel' command.
func newJobsCancelCmd() *cobra.Command {
	var confirm bool

	cmd := &cobra.Command{
		Use:   "cancel <job-id>",
		Short: "Cancel a queued or running job",
		Long: `Cancel a job that has not finished yet. Finished jobs cannot be
cancelled; the server rejects the request.

Example:
  colbuild jobs cancel 42 --confirm`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			jobID := args[0]

			a, err := newApp()
			if err != nil {
				return err
			}
			return a.requireAuth(cmd, func() error {
				if !confirm {
					ok, err := promptBool(a.reader, a.out, fmt.Sprintf("Cancel job %s?", jobID), false)
					if err != nil {
						return err
					}
					if !ok {
						fmt.Println("Aborted.")
						return nil
					}
				}

				ctx, cancel := opContext(requestTimeout)
				defer cancel()
				if err := a.client.CancelJob(ctx, jobID); err != nil {
					return fmt.Errorf("failed to cancel job: %w", err)
				}
				fmt.Printf("Job %s cancelled.\n", jobID)
				return nil
			})
		},
	}

	cmd.Flags().BoolVarP(&confirm, "confirm", "y", false, "Skip the confirmation prompt")

	return cmd
}
