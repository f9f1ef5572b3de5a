// Package dailyevent provides a Go client for the DailyEvent Partner API,
// used by partners to quote, bind and manage event insurance policies and to
// receive signed webhook notifications.
//
// Basic usage:
//
//	client, err := dailyevent.New("pk_sandbox_...",
//	    dailyevent.WithEnvironment(dailyevent.EnvironmentSandbox))
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	quote, err := client.Quotes.Create(ctx, &dailyevent.CreateQuoteParams{...})
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	fmt.Println("Premium:", quote.Data.Premium.TotalPremium)
//
// # Errors
//
// Every failed call returns exactly one of the [Error] variants. Transient
// failures (rate limiting, 5xx responses and network errors) are retried
// with exponential backoff before they are returned; the rest fail on the
// first attempt.
//
//	var rl *dailyevent.RateLimitError
//	if errors.As(err, &rl) {
//	    log.Printf("rate limited, retry after %s", rl.RetryAfter)
//	}
//
// # Waiting
//
// Binding a policy may complete asynchronously. WaitForStatus re-fetches a
// record with growing intervals until it reaches a wanted status:
//
//	resp, err := client.Policies.WaitForStatus(ctx, policyID,
//	    []dailyevent.PolicyStatus{dailyevent.PolicyStatusActive},
//	    dailyevent.WithWaitTimeout(time.Minute))
//
// # Webhooks
//
// Inbound deliveries carry an X-DailyEvent-Signature header. Use
// [ConstructWebhookEvent] or [WebhookHandler] to authenticate and decode
// them; both fail closed.
package dailyevent
