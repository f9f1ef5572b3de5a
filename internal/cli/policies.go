package cli

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"
	"github.com/vbauerster/mpb/v8"
	"github.com/vbauerster/mpb/v8/decor"

	dailyevent "github.com/dailyevent/partner-go"
)

// exportPageSize is the page size used by policies export.
const exportPageSize = 100

func (a *app) policiesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "policies",
		Short: "Inspect and export policies",
	}
	cmd.AddCommand(a.policiesGetCmd(), a.policiesByNumberCmd(), a.policiesExportCmd(), a.policiesWaitCmd())
	return cmd
}

func (a *app) policiesGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get <policy-id>",
		Short: "Fetch a policy by ID",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := a.client()
			if err != nil {
				return err
			}
			resp, err := client.Policies.Get(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return printJSON(a.env.Stdout, resp.Data)
		},
	}
}

func (a *app) policiesByNumberCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "by-number <policy-number>",
		Short: "Fetch a policy by its policy number",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := a.client()
			if err != nil {
				return err
			}
			resp, err := client.Policies.GetByNumber(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return printJSON(a.env.Stdout, resp.Data)
		},
	}
}

func (a *app) policiesWaitCmd() *cobra.Command {
	var (
		status   []string
		timeout  time.Duration
		interval time.Duration
	)

	cmd := &cobra.Command{
		Use:   "wait <policy-id>",
		Short: "Poll a policy until it reaches one of the given statuses",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := a.client()
			if err != nil {
				return err
			}

			resp, err := client.Policies.WaitForStatus(cmd.Context(), args[0],
				toEnum[dailyevent.PolicyStatus](status),
				dailyevent.WithWaitTimeout(timeout),
				dailyevent.WithPollInterval(interval))
			if err != nil {
				return err
			}

			success(a.env.Stderr, "Policy %s is %s", resp.Data.ID, resp.Data.Status)
			return printJSON(a.env.Stdout, resp.Data)
		},
	}

	f := cmd.Flags()
	f.StringSliceVar(&status, "status", []string{string(dailyevent.PolicyStatusActive)}, "statuses to wait for")
	f.DurationVar(&timeout, "wait-timeout", 2*time.Minute, "give up after this long")
	f.DurationVar(&interval, "interval", 2*time.Second, "first polling interval")
	return cmd
}

func (a *app) policiesExportCmd() *cobra.Command {
	var (
		out      string
		status   []string
		progress bool
	)

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write every policy as JSON lines",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := a.client()
			if err != nil {
				return err
			}

			w := a.env.Stdout
			if out != "" && out != "-" {
				f, err := os.Create(out)
				if err != nil {
					return fmt.Errorf("create %s: %w", out, err)
				}
				defer f.Close()
				w = f
			}

			filters := &dailyevent.PolicyListFilters{
				Status: toEnum[dailyevent.PolicyStatus](status),
				Limit:  exportPageSize,
			}

			var pw io.Writer = io.Discard
			if progress {
				pw = a.env.Stderr
			}

			n, err := exportPolicies(cmd.Context(), client.Policies, filters, w, pw)
			if err != nil {
				return err
			}
			success(a.env.Stderr, "Exported %d policies", n)
			return nil
		},
	}

	f := cmd.Flags()
	f.StringVarP(&out, "out", "o", "", "output file (default stdout)")
	f.StringSliceVar(&status, "status", nil, "filter by status (repeatable)")
	f.BoolVar(&progress, "progress", true, "show a progress bar on stderr")
	return cmd
}

// exportPolicies pages through every policy matching filters, writing one
// JSON object per line to w and rendering progress on pw.
func exportPolicies(ctx context.Context, svc *dailyevent.PoliciesService, filters *dailyevent.PolicyListFilters, w, pw io.Writer) (int, error) {
	p := mpb.NewWithContext(ctx, mpb.WithOutput(pw), mpb.WithWidth(40))
	bar := p.AddBar(0,
		mpb.PrependDecorators(decor.Name("policies ")),
		mpb.AppendDecorators(decor.CountersNoUnit("%d / %d")),
	)

	bw := bufio.NewWriter(w)
	enc := json.NewEncoder(bw)

	n, err := func() (int, error) {
		n := 0
		page := 1
		for {
			f := *filters
			f.Page = page
			resp, err := svc.List(ctx, &f)
			if err != nil {
				return n, err
			}

			bar.SetTotal(int64(resp.Data.Pagination.Total), false)
			for _, policy := range resp.Data.Data {
				if err := enc.Encode(policy); err != nil {
					return n, fmt.Errorf("write policy %s: %w", policy.ID, err)
				}
				n++
				bar.Increment()
			}

			if !resp.Data.Pagination.HasNextPage || len(resp.Data.Data) == 0 {
				return n, nil
			}
			page++
		}
	}()

	if err != nil {
		bar.Abort(false)
	} else {
		bar.SetTotal(-1, true)
	}
	p.Wait()

	if err != nil {
		return n, err
	}
	if err := bw.Flush(); err != nil {
		return n, fmt.Errorf("flush export: %w", err)
	}
	return n, nil
}
