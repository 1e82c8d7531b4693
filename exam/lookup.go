package exam

import (
	"context"
	"strings"
)

// LookupService answers the public search form: one record by national ID.
type LookupService struct {
	store Store
}

func NewLookupService(store Store) *LookupService {
	return &LookupService{store: store}
}

// Lookup trims the key and fetches the matching record. A blank key is a
// user error (ErrEmptyNationalID); an unknown key is ErrNotFound. Neither
// mutates state.
func (s *LookupService) Lookup(ctx context.Context, nationalID string) (*Result, error) {
	nationalID = strings.TrimSpace(nationalID)
	if nationalID == "" {
		return nil, ErrEmptyNationalID
	}

	result, err := s.store.FindByNationalID(ctx, nationalID)
	if err != nil {
		return nil, err
	}
	if result == nil {
		return nil, ErrNotFound
	}
	return result, nil
}
