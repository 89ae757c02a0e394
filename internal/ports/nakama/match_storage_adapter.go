package nakama

import (
	"context"
	"encoding/json"
	"fmt"

	"heenenweer/internal/ports"

	"github.com/heroiclabs/nakama-common/api"
	"github.com/heroiclabs/nakama-common/runtime"
)

// StorageModule is the slice of runtime.NakamaModule the match store needs.
type StorageModule interface {
	StorageList(ctx context.Context, callerID, userID, collection string, limit int, cursor string) ([]*api.StorageObject, string, error)
	StorageRead(ctx context.Context, reads []*runtime.StorageRead) ([]*api.StorageObject, error)
	StorageWrite(ctx context.Context, writes []*runtime.StorageWrite) ([]*api.StorageObjectAck, error)
	StorageDelete(ctx context.Context, deletes []*runtime.StorageDelete) error
}

type storedValue struct {
	Code string `json:"code"`
}

// MatchStorageAdapter implements ports.MatchStore on Nakama storage objects.
// Each saved match is one object owned by the user, keyed by match id.
type MatchStorageAdapter struct {
	nk         StorageModule
	collection string
	pageSize   int
}

// NewMatchStorageAdapter creates a storage adapter writing to collection.
func NewMatchStorageAdapter(nk StorageModule, collection string, pageSize int) *MatchStorageAdapter {
	if pageSize <= 0 {
		pageSize = 100
	}
	return &MatchStorageAdapter{nk: nk, collection: collection, pageSize: pageSize}
}

// Put writes the match, replacing any object already stored under its id.
func (a *MatchStorageAdapter) Put(ctx context.Context, userID string, match ports.StoredMatch) error {
	value, err := json.Marshal(storedValue{Code: match.Code})
	if err != nil {
		return fmt.Errorf("failed to marshal stored match: %w", err)
	}

	_, err = a.nk.StorageWrite(ctx, []*runtime.StorageWrite{{
		Collection:      a.collection,
		Key:             match.ID,
		UserID:          userID,
		Value:           string(value),
		PermissionRead:  runtime.STORAGE_PERMISSION_OWNER_READ,
		PermissionWrite: runtime.STORAGE_PERMISSION_OWNER_WRITE,
	}})
	if err != nil {
		return fmt.Errorf("failed to write match %s: %w", match.ID, err)
	}
	return nil
}

// Get reads one match.
func (a *MatchStorageAdapter) Get(ctx context.Context, userID, id string) (ports.StoredMatch, error) {
	objects, err := a.nk.StorageRead(ctx, []*runtime.StorageRead{{
		Collection: a.collection,
		Key:        id,
		UserID:     userID,
	}})
	if err != nil {
		return ports.StoredMatch{}, fmt.Errorf("failed to read match %s: %w", id, err)
	}
	if len(objects) == 0 {
		return ports.StoredMatch{}, ports.ErrNotFound
	}
	return decodeObject(objects[0])
}

// List pages through every match object the user owns.
func (a *MatchStorageAdapter) List(ctx context.Context, userID string) ([]ports.StoredMatch, error) {
	var (
		matches []ports.StoredMatch
		cursor  string
	)
	for {
		objects, next, err := a.nk.StorageList(ctx, "", userID, a.collection, a.pageSize, cursor)
		if err != nil {
			return nil, fmt.Errorf("failed to list matches: %w", err)
		}
		for _, obj := range objects {
			match, err := decodeObject(obj)
			if err != nil {
				return nil, err
			}
			matches = append(matches, match)
		}
		if next == "" || next == cursor {
			return matches, nil
		}
		cursor = next
	}
}

// Delete removes one match.
func (a *MatchStorageAdapter) Delete(ctx context.Context, userID, id string) error {
	err := a.nk.StorageDelete(ctx, []*runtime.StorageDelete{{
		Collection: a.collection,
		Key:        id,
		UserID:     userID,
	}})
	if err != nil {
		return fmt.Errorf("failed to delete match %s: %w", id, err)
	}
	return nil
}

func decodeObject(obj *api.StorageObject) (ports.StoredMatch, error) {
	var value storedValue
	if err := json.Unmarshal([]byte(obj.Value), &value); err != nil {
		return ports.StoredMatch{}, fmt.Errorf("failed to unmarshal match %s: %w", obj.Key, err)
	}
	return ports.StoredMatch{ID: obj.Key, Code: value.Code}, nil
}

var _ ports.MatchStore = (*MatchStorageAdapter)(nil)
