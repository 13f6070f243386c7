package store

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/jsondb/internal/catalog"
)

func fixtureRecords() []catalog.Record {
	return []catalog.Record{
		{ID: 3, Title: "Foundation", Author: "Asimov", Genre: "SF", Year: catalog.Year{Text: "1951", Numeric: true}, BorrowedBy: []string{"Ivan"}},
		{ID: 1, Title: "Dune", Author: "Herbert", Genre: "SF", Year: catalog.NewYear("1965"), BorrowedBy: []string{}},
		{ID: 7, Title: "Emma", Author: "Austen", Genre: "Novel", Year: catalog.NewYear("1815"), BorrowedBy: []string{"Oleg", "Anna"}},
	}
}

func TestNextIDEmpty(t *testing.T) {
	s := NewRecordStore(nil)
	assert.Equal(t, 1, s.NextID())
}

func TestNextIDIsMaxPlusOne(t *testing.T) {
	s := NewRecordStore(fixtureRecords())
	assert.Equal(t, 8, s.NextID())

	// Storage order is untouched.
	got := []int{}
	for _, r := range s.All() {
		got = append(got, r.ID)
	}
	assert.Equal(t, []int{3, 1, 7}, got)
}

func TestCreateAssignsNextID(t *testing.T) {
	s := NewRecordStore([]catalog.Record{
		{ID: 1, Title: "Dune", Author: "Herbert", Year: catalog.NewYear("1965"), BorrowedBy: []string{}},
	})

	rec := s.Create(catalog.Fields{
		Title:      "Foundation",
		Author:     "Asimov",
		Genre:      "SF",
		Year:       catalog.NewYear("1951"),
		BorrowedBy: []string{"Ivan"},
	})

	assert.Equal(t, 2, rec.ID)
	assert.Equal(t, 2, s.Len())
	assert.Equal(t, rec, s.All()[1])
}

func TestCreateOnEmptyStore(t *testing.T) {
	s := NewRecordStore(nil)
	rec := s.Create(catalog.Fields{Title: "Emma", Year: catalog.NewYear("1815")})

	assert.Equal(t, 1, rec.ID)
	assert.NotNil(t, rec.BorrowedBy)
}

func TestNextIDAfterRemovingLowerID(t *testing.T) {
	s := NewRecordStore(fixtureRecords())
	_, err := s.RemoveByID(1)
	require.NoError(t, err)

	rec := s.Create(catalog.Fields{Title: "New"})
	assert.Equal(t, 8, rec.ID)
}

func TestNextIDReusesRemovedHighestID(t *testing.T) {
	s := NewRecordStore(fixtureRecords())
	_, err := s.RemoveByID(7)
	require.NoError(t, err)

	// The next id is one past the highest remaining id, 3.
	assert.Equal(t, 4, s.NextID())
	rec := s.Create(catalog.Fields{Title: "New"})
	assert.Equal(t, 4, rec.ID)
}

func TestReplaceOnlyTouchesMatchingID(t *testing.T) {
	s := NewRecordStore(fixtureRecords())
	before := s.All()

	updated := before[1].Clone()
	updated.Title = "Dune Messiah"
	require.NoError(t, s.Replace(1, updated))

	after := s.All()
	require.Len(t, after, 3)
	assert.Equal(t, "Dune Messiah", after[1].Title)
	if diff := cmp.Diff(before[0], after[0]); diff != "" {
		t.Errorf("record 3 changed (-before +after):\n%s", diff)
	}
	if diff := cmp.Diff(before[2], after[2]); diff != "" {
		t.Errorf("record 7 changed (-before +after):\n%s", diff)
	}
}

func TestReplaceUnknownID(t *testing.T) {
	s := NewRecordStore(fixtureRecords())
	err := s.Replace(42, catalog.Record{ID: 42})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestReplaceRejectsIDChange(t *testing.T) {
	s := NewRecordStore(fixtureRecords())
	err := s.Replace(1, catalog.Record{ID: 2})
	require.Error(t, err)
	assert.Equal(t, fixtureRecords(), s.All())
}

func TestRemoveByIDKeepsOthersInOrder(t *testing.T) {
	s := NewRecordStore(fixtureRecords())

	removed, err := s.RemoveByID(1)
	require.NoError(t, err)
	assert.Equal(t, "Dune", removed.Title)

	want := fixtureRecords()
	want = append(want[:1], want[2:]...)
	if diff := cmp.Diff(want, s.All()); diff != "" {
		t.Errorf("remaining records mismatch (-want +got):\n%s", diff)
	}
}

func TestRemoveByIDUnknown(t *testing.T) {
	s := NewRecordStore(fixtureRecords())
	_, err := s.RemoveByID(99)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.Equal(t, 3, s.Len())
}

func TestAllReturnsCopies(t *testing.T) {
	s := NewRecordStore(fixtureRecords())
	all := s.All()
	all[0].Title = "changed"
	all[0].BorrowedBy[0] = "changed"

	fresh := s.All()
	assert.Equal(t, "Foundation", fresh[0].Title)
	assert.Equal(t, "Ivan", fresh[0].BorrowedBy[0])
}
