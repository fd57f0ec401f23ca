package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/supabase-community/postgrest-go"
)

// RESTNoteRemote implements NoteRemote against a PostgREST endpoint such as
// a Supabase project.
type RESTNoteRemote struct {
	client *postgrest.Client
	table  string
}

// RESTOption configures a RESTNoteRemote.
type RESTOption func(*postgrest.Client)

// WithTransport routes requests through rt instead of
// http.DefaultTransport.
func WithTransport(rt http.RoundTripper) RESTOption {
	return func(c *postgrest.Client) { c.Transport.Parent = rt }
}

// NewRESTNoteRemote creates a client for <baseURL>/rest/v1/<table>.
func NewRESTNoteRemote(baseURL, apiKey, table string, opts ...RESTOption) (*RESTNoteRemote, error) {
	if _, err := url.ParseRequestURI(baseURL); err != nil {
		return nil, fmt.Errorf("invalid remote url %q: %w", baseURL, err)
	}
	if table == "" {
		table = DefaultRemoteTable
	}
	if err := validIdent(table); err != nil {
		return nil, err
	}

	client := postgrest.NewClient(strings.TrimRight(baseURL, "/")+"/rest/v1", "", map[string]string{
		"apikey":        apiKey,
		"Authorization": "Bearer " + apiKey,
	})
	if client.ClientError != nil {
		return nil, fmt.Errorf("creating remote client: %w", client.ClientError)
	}
	for _, opt := range opts {
		opt(client)
	}
	return &RESTNoteRemote{client: client, table: table}, nil
}

type restRow struct {
	StrategyID string  `json:"strategy_id"`
	Question   *string `json:"question"`
	Reflection *string `json:"reflection"`
	UpdatedAt  *string `json:"updated_at"`
}

// FetchAll reads every row. postgrest-go takes no context, so ctx is only
// checked before the request starts.
func (r *RESTNoteRemote) FetchAll(ctx context.Context) ([]NoteRow, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	body, _, err := r.client.From(r.table).Select("*", "", false).Execute()
	if err != nil {
		return nil, fmt.Errorf("fetching %s: %w", r.table, err)
	}

	var rows []restRow
	if err := json.Unmarshal(body, &rows); err != nil {
		return nil, fmt.Errorf("decoding %s rows: %w", r.table, err)
	}
	out := make([]NoteRow, 0, len(rows))
	for _, row := range rows {
		nr := NoteRow{StrategyID: row.StrategyID, Question: row.Question, Reflection: row.Reflection}
		if row.UpdatedAt != nil {
			nr.UpdatedAt = parseTimestamp(*row.UpdatedAt)
		}
		out = append(out, nr)
	}
	return out, nil
}

// UpsertField posts a partial row; merge-duplicates leaves the other note
// column of an existing row untouched.
func (r *RESTNoteRemote) UpsertField(ctx context.Context, u NoteUpsert) error {
	col, err := noteColumn(u.Field)
	if err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	row := map[string]string{
		"strategy_id": string(u.StrategyID),
		col:           u.Value,
		"updated_at":  formatTimestamp(u.UpdatedAt),
	}
	if _, _, err := r.client.From(r.table).Upsert(row, "strategy_id", "minimal", "").Execute(); err != nil {
		return fmt.Errorf("upserting %s.%s for %q: %w", r.table, col, u.StrategyID, err)
	}
	return nil
}
