package catalog

import (
	"context"
	"sort"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memRepo struct {
	items map[string]*Offering
	next  int
}

func newMemRepo(items ...*Offering) *memRepo {
	r := &memRepo{items: map[string]*Offering{}}
	for _, o := range items {
		r.items[o.ID] = o
	}
	return r
}

func (r *memRepo) List(_ context.Context, includeInactive bool) ([]*Offering, error) {
	var out []*Offering
	for _, o := range r.items {
		if o.Active || includeInactive {
			out = append(out, o)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Price < out[j].Price })
	return out, nil
}

func (r *memRepo) GetByID(_ context.Context, id string) (*Offering, error) {
	o, ok := r.items[id]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *o
	return &cp, nil
}

func (r *memRepo) FindByName(_ context.Context, fragment string) (*Offering, error) {
	f := strings.ToLower(fragment)
	for _, o := range r.items {
		if o.Active && (strings.Contains(strings.ToLower(o.Name), f) || strings.Contains(strings.ToLower(o.NameES), f)) {
			return o, nil
		}
	}
	return nil, ErrNotFound
}

func (r *memRepo) Create(_ context.Context, o *Offering) error {
	r.next++
	o.ID = "svc-new"
	r.items[o.ID] = o
	return nil
}

func (r *memRepo) Update(_ context.Context, o *Offering) error {
	cp := *o
	r.items[o.ID] = &cp
	return nil
}

func haircut() *Offering {
	return &Offering{ID: "svc-1", Name: "Haircut", NameES: "Corte de pelo", DurationMinutes: 30, Price: 25, Active: true}
}

func TestCreateValidates(t *testing.T) {
	svc := NewService(newMemRepo())
	ctx := context.Background()

	o, err := svc.Create(ctx, CreateRequest{Name: " Beard Trim ", NameES: "Barba", DurationMinutes: 15, Price: 10})
	require.NoError(t, err)
	assert.Equal(t, "Beard Trim", o.Name)
	assert.True(t, o.Active, "new services are active by default")

	_, err = svc.Create(ctx, CreateRequest{Name: "X", NameES: "X", DurationMinutes: 0, Price: 10})
	assert.ErrorIs(t, err, ErrInvalidDuration)
	_, err = svc.Create(ctx, CreateRequest{Name: "X", NameES: "X", DurationMinutes: 10, Price: -1})
	assert.ErrorIs(t, err, ErrInvalidPrice)
	_, err = svc.Create(ctx, CreateRequest{Name: "X", DurationMinutes: 10})
	assert.ErrorIs(t, err, ErrNameRequired)
}

func TestUpdatePatchesOnlyGivenFields(t *testing.T) {
	repo := newMemRepo(haircut())
	svc := NewService(repo)

	price := 30.0
	inactive := false
	o, err := svc.Update(context.Background(), "svc-1", UpdateRequest{Price: &price, Active: &inactive})
	require.NoError(t, err)
	assert.Equal(t, 30.0, o.Price)
	assert.False(t, o.Active)
	assert.Equal(t, 30, o.DurationMinutes)

	zero := 0
	_, err = svc.Update(context.Background(), "svc-1", UpdateRequest{DurationMinutes: &zero})
	assert.ErrorIs(t, err, ErrInvalidDuration)

	_, err = svc.Update(context.Background(), "missing", UpdateRequest{})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestFindByName(t *testing.T) {
	svc := NewService(newMemRepo(haircut()))

	o, err := svc.FindByName(context.Background(), "corte")
	require.NoError(t, err)
	assert.Equal(t, "svc-1", o.ID)

	_, err = svc.FindByName(context.Background(), "  ")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestOfferingHelpers(t *testing.T) {
	o := haircut()
	assert.Equal(t, "Corte de pelo", o.LocalizedName("es"))
	assert.Equal(t, "Haircut", o.LocalizedName("en"))
	assert.Equal(t, 30*60.0, o.Duration().Seconds())
}
