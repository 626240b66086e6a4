package service

import (
	"context"
	"errors"

	"catalog/internal/catalog/store"
)

// conflictingName looks up the unique name with a point query. A hit only
// counts as a conflict when the existing item is not the candidate itself:
// an update keeping its own name must not self-conflict. selfID is empty on
// create, where every hit conflicts.
func (s *Service) conflictingName(ctx context.Context, name, selfID string) (*NameExists, error) {
	existing, err := s.store.FindByName(ctx, name)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}
	if selfID != "" && existing.ID == selfID {
		return nil, nil
	}
	return &NameExists{Name: name, ConflictingID: existing.ID}, nil
}

// conflictingCode is the analogous point lookup for the unique code. Only
// consulted on create.
func (s *Service) conflictingCode(ctx context.Context, code string) (*CodeExists, error) {
	existing, err := s.store.FindByCode(ctx, code)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &CodeExists{Code: code, ConflictingID: existing.ID}, nil
}
