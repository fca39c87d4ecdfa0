package directory

import (
	"context"
)

// mockResolverStore implements the store methods the resolver touches.
// The embedded Store panics on anything else, which is what we want in a
// test that should never reach the rest of the interface.
type mockResolverStore struct {
	Store

	byPhone    map[string]*Business
	byName     []Business
	phoneErr   error
	nameErr    error
	createErr  error
	created    []*Business
	nextID     int64
	phoneCalls int
	nameCalls  int
}

func (m *mockResolverStore) FindBusinessByPhone(_ context.Context, normalizedPhone string) (*Business, error) {
	m.phoneCalls++
	if m.phoneErr != nil {
		return nil, m.phoneErr
	}
	return m.byPhone[normalizedPhone], nil
}

func (m *mockResolverStore) SearchBusinessesByName(_ context.Context, _ string, _ int) ([]Business, error) {
	m.nameCalls++
	if m.nameErr != nil {
		return nil, m.nameErr
	}
	return m.byName, nil
}

func (m *mockResolverStore) CreateBusiness(_ context.Context, b *Business) error {
	if m.createErr != nil {
		return m.createErr
	}
	m.nextID++
	b.ID = m.nextID
	m.created = append(m.created, b)
	return nil
}
