package cli

import (
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	dailyevent "github.com/dailyevent/partner-go"
)

// maxConcurrentFetches bounds parallel requests in multi-ID commands.
const maxConcurrentFetches = 4

func (a *app) quotesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "quotes",
		Short: "Inspect and manage quotes",
	}
	cmd.AddCommand(a.quotesGetCmd(), a.quotesListCmd(), a.quotesCancelCmd())
	return cmd
}

func (a *app) quotesGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get <quote-id>...",
		Short: "Fetch one or more quotes",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := a.client()
			if err != nil {
				return err
			}

			quotes := make([]dailyevent.Quote, len(args))
			g, ctx := errgroup.WithContext(cmd.Context())
			g.SetLimit(maxConcurrentFetches)
			for i, id := range args {
				g.Go(func() error {
					resp, err := client.Quotes.Get(ctx, id)
					if err != nil {
						return err
					}
					quotes[i] = resp.Data
					return nil
				})
			}
			if err := g.Wait(); err != nil {
				return err
			}

			if len(quotes) == 1 {
				return printJSON(a.env.Stdout, quotes[0])
			}
			return printJSON(a.env.Stdout, quotes)
		},
	}
}

func (a *app) quotesListCmd() *cobra.Command {
	var (
		status    []string
		eventType []string
		limit     int
		page      int
		all       bool
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List quotes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := a.client()
			if err != nil {
				return err
			}

			filters := &dailyevent.QuoteListFilters{
				Status:    toEnum[dailyevent.QuoteStatus](status),
				EventType: toEnum[dailyevent.EventType](eventType),
				Limit:     limit,
				Page:      page,
			}

			if !all {
				resp, err := client.Quotes.List(cmd.Context(), filters)
				if err != nil {
					return err
				}
				return printJSON(a.env.Stdout, resp.Data)
			}

			var quotes []dailyevent.Quote
			for q, err := range client.Quotes.ListAll(cmd.Context(), filters) {
				if err != nil {
					return err
				}
				quotes = append(quotes, q)
			}
			return printJSON(a.env.Stdout, quotes)
		},
	}

	f := cmd.Flags()
	f.StringSliceVar(&status, "status", nil, "filter by status (repeatable)")
	f.StringSliceVar(&eventType, "event-type", nil, "filter by event type (repeatable)")
	f.IntVar(&limit, "limit", 0, "page size")
	f.IntVar(&page, "page", 0, "page number")
	f.BoolVar(&all, "all", false, "follow pagination and print every quote")
	return cmd
}

func (a *app) quotesCancelCmd() *cobra.Command {
	var reason string

	cmd := &cobra.Command{
		Use:   "cancel <quote-id>",
		Short: "Cancel a pending quote",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := a.client()
			if err != nil {
				return err
			}

			resp, err := client.Quotes.Cancel(cmd.Context(), args[0], reason,
				dailyevent.WithIdempotencyKey(dailyevent.NewIdempotencyKey()))
			if err != nil {
				return err
			}

			success(a.env.Stderr, "Cancelled quote %s", resp.Data.ID)
			return printJSON(a.env.Stdout, resp.Data)
		},
	}

	cmd.Flags().StringVar(&reason, "reason", "", "cancellation reason")
	return cmd
}

func toEnum[T ~string](values []string) []T {
	if len(values) == 0 {
		return nil
	}
	out := make([]T, len(values))
	for i, v := range values {
		out[i] = T(v)
	}
	return out
}
