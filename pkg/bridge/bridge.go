// Package bridge implements the macro-callable operations over a
// repository Client: object resolution, listing, link validation,
// table accumulation and session handling. Operations are synchronous
// and assume a single caller context; registry and session state are
// plain fields with no locking.
package bridge

import (
	"context"
	"fmt"
	"strings"

	"github.com/lumigraph/omebridge/pkg/types"
)

// Bridge holds the process-wide mutable state of one scripting session:
// the active client, the sudo backup slot, the list-filter user and the
// named-table registry.
type Bridge struct {
	client types.Client

	// switched backs up the session active before the last Sudo call.
	// A single slot: nesting Sudo overwrites it.
	switched types.Client

	// user restricts list results to one owner when set.
	user *types.Experimenter

	tables map[string]*types.TableData
}

// New creates a Bridge over the given client with an empty table
// registry, no active sudo and no user filter.
func New(client types.Client) *Bridge {
	return &Bridge{
		client: client,
		tables: make(map[string]*types.TableData),
	}
}

// Connect opens the underlying client session.
func (b *Bridge) Connect(ctx context.Context, cfg types.Config) error {
	if err := b.client.Connect(ctx, cfg); err != nil {
		return fmt.Errorf("connect: %w", err)
	}
	return nil
}

// Disconnect closes the session, ending an active sudo first.
func (b *Bridge) Disconnect(ctx context.Context) error {
	if b.switched != nil {
		if err := b.EndSudo(); err != nil {
			return err
		}
	}
	if err := b.client.Close(ctx); err != nil {
		return fmt.Errorf("disconnect: %w", err)
	}
	return nil
}

// SwitchGroup changes the active group and returns the current group id.
func (b *Bridge) SwitchGroup(ctx context.Context, groupID int64) (int64, error) {
	id, err := b.client.SwitchGroup(ctx, groupID)
	if err != nil {
		return -1, fmt.Errorf("switch group %d: %w", groupID, err)
	}
	return id, nil
}

// SetUser sets the owner whose objects the list operations report.
// An empty name or "all" clears the filter. An unknown username leaves
// the current filter in place. Returns the active filter's user id, or
// -1 when no filter is set.
func (b *Bridge) SetUser(ctx context.Context, username string) (int64, error) {
	trimmed := strings.TrimSpace(username)
	if trimmed == "" || strings.EqualFold(trimmed, "all") {
		b.user = nil
		return -1, nil
	}
	user, err := b.client.FindUser(ctx, trimmed)
	if err != nil {
		if b.user == nil {
			return -1, fmt.Errorf("retrieve user %q: %w", trimmed, err)
		}
		return b.user.ID, fmt.Errorf("retrieve user %q: %w", trimmed, err)
	}
	b.user = &user
	return user.ID, nil
}

// Sudo switches the session to act as another user. Only one backup
// level exists: calling Sudo while already switched overwrites the
// backup, making the original session unreachable. EndSudo then
// restores the session active immediately before the last Sudo.
func (b *Bridge) Sudo(ctx context.Context, username string) error {
	acting, err := b.client.Sudo(ctx, username)
	if err != nil {
		return fmt.Errorf("switch user to %q: %w", username, err)
	}
	b.switched = b.client
	b.client = acting
	return nil
}

// EndSudo restores the backed-up session. Returns ErrNoSudo if no sudo
// is active.
func (b *Bridge) EndSudo() error {
	if b.switched == nil {
		return types.ErrNoSudo
	}
	b.client = b.switched
	b.switched = nil
	return nil
}

// filterRefs drops refs not owned by the filter user, when one is set.
func (b *Bridge) filterRefs(refs []types.Ref) []types.Ref {
	if b.user == nil {
		return refs
	}
	kept := refs[:0]
	for _, ref := range refs {
		if ref.OwnerID == b.user.ID {
			kept = append(kept, ref)
		}
	}
	return kept
}
