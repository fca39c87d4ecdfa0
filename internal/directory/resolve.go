package directory

import (
	"context"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"
)

// Resolver prevents duplicate business records. The lookup is advisory:
// legacy rows may predate phone normalization, so a miss does not guarantee
// uniqueness, and a store failure is treated as a miss so that the public
// creation flow is never blocked by a transient lookup error.
type Resolver struct {
	store  Store
	region string
}

// NewResolver creates a business resolver. region is the calling code used
// for phone normalization, e.g. "+233".
func NewResolver(store Store, region string) *Resolver {
	if region == "" {
		region = DefaultPhoneRegion
	}
	return &Resolver{store: store, region: region}
}

// FindBusinessByPhone returns the first business matching the normalized
// phone, or nil when none does. Fails open: a store error is logged and
// reported as no match.
func (r *Resolver) FindBusinessByPhone(ctx context.Context, rawPhone string) *Business {
	normalized := NormalizePhone(rawPhone, r.region)
	if normalized == "" {
		return nil
	}
	existing, err := r.store.FindBusinessByPhone(ctx, normalized)
	if err != nil {
		zap.L().Warn("resolve: phone lookup failed, treating as no match",
			zap.String("phone", normalized),
			zap.Error(err),
		)
		return nil
	}
	return existing
}

// FindOrCreate looks up an existing business or creates a new one.
// Uses a two-pass cascade:
//  1. Normalized phone match (the natural dedup key)
//  2. Folded-name + location match among recent same-name rows, catching
//     legacy rows whose stored phone never normalized to the same value
//
// Returns the business and whether it was newly created.
func (r *Resolver) FindOrCreate(ctx context.Context, b *Business) (*Business, bool, error) {
	if b.Phone == "" {
		return nil, false, eris.New("resolve: phone is required")
	}
	b.PhoneNormalized = NormalizePhone(b.Phone, r.region)

	// Pass 1: normalized phone.
	if existing := r.FindBusinessByPhone(ctx, b.Phone); existing != nil {
		zap.L().Debug("resolve: matched by phone",
			zap.String("phone", b.PhoneNormalized),
			zap.Int64("business_id", existing.ID),
		)
		return existing, false, nil
	}

	// Pass 2: folded name + location.
	if b.Name != "" {
		candidates, err := r.store.SearchBusinessesByName(ctx, b.Name, 5)
		if err != nil {
			zap.L().Warn("resolve: name search failed", zap.Error(err))
		} else {
			want := FoldName(b.Name)
			for i := range candidates {
				c := &candidates[i]
				if FoldName(c.Name) == want &&
					(b.Location == "" || FoldName(c.Location) == FoldName(b.Location)) {
					zap.L().Debug("resolve: matched by name+location",
						zap.String("name", b.Name),
						zap.Int64("business_id", c.ID),
					)
					return c, false, nil
				}
			}
		}
	}

	// No match found, create new.
	if err := r.store.CreateBusiness(ctx, b); err != nil {
		return nil, false, eris.Wrap(err, "resolve: create business")
	}

	zap.L().Info("resolve: created new business",
		zap.String("name", b.Name),
		zap.String("phone", b.PhoneNormalized),
		zap.Int64("business_id", b.ID),
	)

	return b, true, nil
}
