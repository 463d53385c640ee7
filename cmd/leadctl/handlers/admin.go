package handlers

import (
	"context"
	"errors"
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	httpmiddleware "github.com/wolfman30/supplychain-leads/internal/http/middleware"
	"github.com/wolfman30/supplychain-leads/internal/leads"
)

// MintToken prints an admin bearer token for /admin routes.
func MintToken(out io.Writer, secret, subject string, ttl time.Duration) error {
	if secret == "" {
		return errors.New("admin secret is required (--secret or ADMIN_JWT_SECRET)")
	}
	if ttl <= 0 {
		return fmt.Errorf("ttl must be positive, got %s", ttl)
	}
	token, err := httpmiddleware.MintAdminToken(secret, subject, ttl)
	if err != nil {
		return err
	}
	fmt.Fprintln(out, token)
	return nil
}

// ListOptions selects the page printed by ListLeads.
type ListOptions struct {
	ServerURL string
	Token     string
	Secret    string
	Interest  string
	Limit     int
	Offset    int
}

// ListLeads prints stored leads as a table. A secret is exchanged for a
// short-lived token when no token is given.
func ListLeads(ctx context.Context, out io.Writer, opts ListOptions) error {
	filter := leads.ListFilter{Limit: opts.Limit, Offset: opts.Offset}
	if opts.Interest != "" {
		interest, ok := leads.ParseInterest(opts.Interest)
		if !ok {
			return fmt.Errorf("unknown interest %q (want offer or other)", opts.Interest)
		}
		filter.Interest = interest
	}

	token := opts.Token
	if token == "" && opts.Secret != "" {
		minted, err := httpmiddleware.MintAdminToken(opts.Secret, "leadctl", 5*time.Minute)
		if err != nil {
			return err
		}
		token = minted
	}
	if token == "" {
		return errors.New("an admin token or secret is required")
	}

	page, err := leads.NewClient(opts.ServerURL, leads.WithAdminToken(token)).List(ctx, filter)
	if err != nil {
		return err
	}

	tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "CREATED\tNAME\tEMAIL\tINTEREST\tID")
	for _, lead := range page.Leads {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n",
			lead.CreatedAt.UTC().Format(time.RFC3339), lead.Name, lead.Email, lead.Interest, lead.ID)
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	fmt.Fprintln(out, dimStyle.Render(fmt.Sprintf("%d lead(s), offset %d, limit %d", page.Count, page.Offset, page.Limit)))
	return nil
}
