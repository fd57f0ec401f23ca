package notes

import (
	"context"

	"github.com/alexanderramin/polaris/internal/repository"
)

// Remote is the optional remote backend. The zero value is disabled.
type Remote struct {
	backend repository.NoteRemote
}

// Disabled returns a Remote that performs no operations.
func Disabled() Remote { return Remote{} }

// Enabled wraps a configured backend. A nil backend yields Disabled.
func Enabled(backend repository.NoteRemote) Remote {
	return Remote{backend: backend}
}

// Enabled reports whether a backend is configured.
func (r Remote) Enabled() bool { return r.backend != nil }

func (r Remote) fetchAll(ctx context.Context) ([]repository.NoteRow, error) {
	if r.backend == nil {
		return nil, nil
	}
	return r.backend.FetchAll(ctx)
}

func (r Remote) upsert(ctx context.Context, u repository.NoteUpsert) error {
	if r.backend == nil {
		return nil
	}
	return r.backend.UpsertField(ctx, u)
}
