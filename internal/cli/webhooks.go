package cli

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/invopop/jsonschema"
	"github.com/spf13/cobra"

	dailyevent "github.com/dailyevent/partner-go"
)

func (a *app) webhooksCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "webhooks",
		Short: "Manage webhook endpoints and verify payloads",
	}
	cmd.AddCommand(
		a.webhooksListCmd(),
		a.webhooksTestCmd(),
		a.webhooksRotateCmd(),
		a.webhooksVerifyCmd(),
		a.webhooksSignCmd(),
		a.webhooksSchemaCmd(),
	)
	return cmd
}

func (a *app) webhooksListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List webhook endpoints",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := a.client()
			if err != nil {
				return err
			}
			resp, err := client.Webhooks.List(cmd.Context())
			if err != nil {
				return err
			}
			return printJSON(a.env.Stdout, resp.Data)
		},
	}
}

func (a *app) webhooksTestCmd() *cobra.Command {
	var event string

	cmd := &cobra.Command{
		Use:   "test <webhook-id>",
		Short: "Send a test event to a webhook endpoint",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := a.client()
			if err != nil {
				return err
			}
			resp, err := client.Webhooks.Test(cmd.Context(), args[0], dailyevent.WebhookEventType(event))
			if err != nil {
				return err
			}

			if resp.Data.Success {
				success(a.env.Stderr, "Test delivery succeeded (HTTP %d)", resp.Data.StatusCode)
			} else {
				warn(a.env.Stderr, "Test delivery failed: %s", resp.Data.Error)
			}
			return printJSON(a.env.Stdout, resp.Data)
		},
	}

	cmd.Flags().StringVar(&event, "event", "", "event type to send (server default when empty)")
	return cmd
}

func (a *app) webhooksRotateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "rotate-secret <webhook-id>",
		Short: "Rotate a webhook signing secret",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := a.client()
			if err != nil {
				return err
			}
			resp, err := client.Webhooks.RotateSecret(cmd.Context(), args[0],
				dailyevent.WithIdempotencyKey(dailyevent.NewIdempotencyKey()))
			if err != nil {
				return err
			}

			success(a.env.Stderr, "Rotated secret for webhook %s", args[0])
			if exp := resp.Data.PreviousSecretExpiresAt; exp != nil {
				warn(a.env.Stderr, "Previous secret stays valid until %s", exp.Format(time.RFC3339))
			}
			return printJSON(a.env.Stdout, resp.Data)
		},
	}
}

func (a *app) webhooksVerifyCmd() *cobra.Command {
	var (
		secret    string
		signature string
		file      string
		tolerance time.Duration
	)

	cmd := &cobra.Command{
		Use:   "verify",
		Short: "Verify a webhook payload against its signature header",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			payload, err := a.readPayload(file)
			if err != nil {
				return err
			}

			result := dailyevent.VerifyWebhookSignature(payload, signature, secret,
				dailyevent.WithTolerance(tolerance),
				dailyevent.WithClock(a.env.Now))
			if err := printJSON(a.env.Stdout, result); err != nil {
				return err
			}

			if !result.Valid {
				return &dailyevent.SignatureVerificationError{Reason: result.Error, Timestamp: result.Timestamp}
			}
			success(a.env.Stderr, "Signature valid")
			return nil
		},
	}

	f := cmd.Flags()
	f.StringVar(&secret, "secret", "", "webhook signing secret")
	f.StringVar(&signature, "signature", "", "value of the "+dailyevent.SignatureHeader+" header")
	f.StringVarP(&file, "file", "f", "", "payload file (default stdin)")
	f.DurationVar(&tolerance, "tolerance", dailyevent.DefaultWebhookTolerance, "maximum timestamp age")
	_ = cmd.MarkFlagRequired("secret")
	_ = cmd.MarkFlagRequired("signature")
	return cmd
}

func (a *app) webhooksSignCmd() *cobra.Command {
	var (
		secret    string
		file      string
		timestamp int64
	)

	cmd := &cobra.Command{
		Use:   "sign",
		Short: "Compute a signature header for a payload",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			payload, err := a.readPayload(file)
			if err != nil {
				return err
			}

			at := a.env.Now()
			if timestamp > 0 {
				at = time.Unix(timestamp, 0)
			}

			_, err = fmt.Fprintln(a.env.Stdout, dailyevent.SignWebhookPayload(payload, secret, at))
			return err
		},
	}

	f := cmd.Flags()
	f.StringVar(&secret, "secret", "", "webhook signing secret")
	f.StringVarP(&file, "file", "f", "", "payload file (default stdin)")
	f.Int64Var(&timestamp, "timestamp", 0, "unix timestamp to sign with (default now)")
	_ = cmd.MarkFlagRequired("secret")
	return cmd
}

func (a *app) webhooksSchemaCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "schema",
		Short: "Print the JSON schema of the webhook event envelope",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return printJSON(a.env.Stdout, eventSchema())
		},
	}
}

// eventSchema reflects the webhook envelope with an untyped data object.
func eventSchema() *jsonschema.Schema {
	r := &jsonschema.Reflector{ExpandedStruct: true}
	s := r.Reflect(&dailyevent.WebhookEvent[map[string]any]{})
	s.Title = "DailyEvent webhook event"

	if prop, ok := s.Properties.Get("type"); ok {
		prop.Enum = make([]any, len(dailyevent.WebhookEventTypes))
		for i, t := range dailyevent.WebhookEventTypes {
			prop.Enum[i] = string(t)
		}
	}
	return s
}

// readPayload reads the raw payload bytes from path, or stdin when path is
// empty or "-".
func (a *app) readPayload(path string) ([]byte, error) {
	if path == "" || path == "-" {
		b, err := io.ReadAll(a.env.Stdin)
		if err != nil {
			return nil, fmt.Errorf("read payload: %w", err)
		}
		return b, nil
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read payload: %w", err)
	}
	return b, nil
}

