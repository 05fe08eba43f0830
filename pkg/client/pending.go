package client

import (
	"context"
	"sync"

	"github.com/doctorshift/marketplace-api/internal/models"
)

// PendingList manages the admin's queue of doctors awaiting approval. A
// decided entry is removed locally on success instead of refetching; on
// failure the entry stays so the admin can retry.
type PendingList struct {
	client *Client

	mu    sync.Mutex
	users []models.User
}

func NewPendingList(c *Client) *PendingList {
	return &PendingList{client: c}
}

// Refresh replaces the local list with the server's pending queue.
func (p *PendingList) Refresh(ctx context.Context) error {
	users, err := p.client.PendingUsers(ctx)
	if err != nil {
		return err
	}
	p.mu.Lock()
	p.users = users
	p.mu.Unlock()
	return nil
}

// Users returns a copy of the current pending queue.
func (p *PendingList) Users() []models.User {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]models.User, len(p.users))
	copy(out, p.users)
	return out
}

// Approve approves the doctor with the given id and drops exactly that
// entry from the local list.
func (p *PendingList) Approve(ctx context.Context, id string) error {
	if err := p.client.ApproveUser(ctx, id); err != nil {
		return err
	}
	p.remove(id)
	return nil
}

// Reject rejects the doctor with the given id and drops exactly that entry
// from the local list.
func (p *PendingList) Reject(ctx context.Context, id string) error {
	if err := p.client.RejectUser(ctx, id); err != nil {
		return err
	}
	p.remove(id)
	return nil
}

func (p *PendingList) remove(id string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	kept := p.users[:0]
	for _, u := range p.users {
		if u.ID.Hex() != id {
			kept = append(kept, u)
		}
	}
	p.users = kept
}
