package rules

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testStore(t *testing.T) *Store {
	t.Helper()
	s, err := OpenStore(filepath.Join(t.TempDir(), "rules.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestStore_SeedsDefaults(t *testing.T) {
	s := testStore(t)

	rs, err := s.List(context.Background())
	require.NoError(t, err)
	require.Len(t, rs, 4)

	tags := make([]string, len(rs))
	for i, r := range rs {
		tags[i] = r.Tag
	}
	assert.ElementsMatch(t, []string{"interview", "call_letter", "test", "shortlist"}, tags)
}

func TestStore_SaveAndList(t *testing.T) {
	ctx := context.Background()
	s := testStore(t)

	r := New("Mails from ISB", "isb", "bg-blue-soft", Criteria{
		From:          "isb.edu",
		Excludes:      "newsletter",
		HasAttachment: boolPtr(true),
	})
	require.NoError(t, s.Save(ctx, r))

	rs, err := s.List(ctx)
	require.NoError(t, err)
	require.Len(t, rs, 5)

	var got Rule
	for _, cand := range rs {
		if cand.ID == r.ID {
			got = cand
		}
	}
	require.Equal(t, r.ID, got.ID)
	assert.Equal(t, "Mails from ISB", got.Description)
	assert.True(t, got.IsActive)
	// Criteria survive the JSON round trip, pointer field included.
	assert.Equal(t, "isb.edu", got.Criteria.From)
	assert.Equal(t, "newsletter", got.Criteria.Excludes)
	require.NotNil(t, got.Criteria.HasAttachment)
	assert.True(t, *got.Criteria.HasAttachment)
}

func TestStore_SaveUpdatesExisting(t *testing.T) {
	ctx := context.Background()
	s := testStore(t)

	r := New("before", "tag", "bg-red-soft", Criteria{Includes: "offer"})
	require.NoError(t, s.Save(ctx, r))

	r.Description = "after"
	r.IsActive = false
	require.NoError(t, s.Save(ctx, r))

	rs, err := s.List(ctx)
	require.NoError(t, err)
	require.Len(t, rs, 5)

	for _, cand := range rs {
		if cand.ID == r.ID {
			assert.Equal(t, "after", cand.Description)
			assert.False(t, cand.IsActive)
		}
	}
}

func TestStore_SaveMintsMissingID(t *testing.T) {
	ctx := context.Background()
	s := testStore(t)

	require.NoError(t, s.Save(ctx, Rule{Description: "no id yet", IsActive: true}))

	rs, err := s.List(ctx)
	require.NoError(t, err)
	assert.Len(t, rs, 5)
}

func TestStore_Delete(t *testing.T) {
	ctx := context.Background()
	s := testStore(t)

	rs, err := s.List(ctx)
	require.NoError(t, err)
	require.NotEmpty(t, rs)

	require.NoError(t, s.Delete(ctx, rs[0].ID))

	after, err := s.List(ctx)
	require.NoError(t, err)
	assert.Len(t, after, len(rs)-1)

	assert.Error(t, s.Delete(ctx, "no-such-id"))
}

func TestStore_DoesNotReseed(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	path := filepath.Join(dir, "rules.db")

	s, err := OpenStore(path)
	require.NoError(t, err)
	rs, err := s.List(ctx)
	require.NoError(t, err)
	require.NoError(t, s.Delete(ctx, rs[0].ID))
	require.NoError(t, s.Close())

	s, err = OpenStore(path)
	require.NoError(t, err)
	defer s.Close()

	rs, err = s.List(ctx)
	require.NoError(t, err)
	assert.Len(t, rs, 3)
}
