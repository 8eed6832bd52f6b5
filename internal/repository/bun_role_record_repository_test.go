package repository

import (
	"context"
	"testing"

	"github.com/helpinghands-foundation/hhf/internal/db/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBunRoleRecordRepository_GetByIdentityID(t *testing.T) {
	db := setupTestDB(t)
	identities := NewBunIdentityRepository(db)
	repo := NewBunRoleRecordRepository(db)
	ctx := context.Background()

	t.Run("missing record is nil, not an error", func(t *testing.T) {
		identity := createTestIdentity(t, identities, "norole@example.org")

		record, err := repo.GetByIdentityID(ctx, identity.ID)
		require.NoError(t, err)
		assert.Nil(t, record)
	})

	t.Run("existing record", func(t *testing.T) {
		identity := createTestIdentity(t, identities, "hasrole@example.org")
		require.NoError(t, repo.Create(ctx, &models.RoleRecord{
			IdentityID: identity.ID,
			Email:      identity.Email,
		}))

		record, err := repo.GetByIdentityID(ctx, identity.ID)
		require.NoError(t, err)
		require.NotNil(t, record)
		assert.Equal(t, models.RoleMember, record.Role)
	})
}

func TestBunRoleRecordRepository_SetRole(t *testing.T) {
	db := setupTestDB(t)
	identities := NewBunIdentityRepository(db)
	repo := NewBunRoleRecordRepository(db)
	ctx := context.Background()

	t.Run("promote to admin", func(t *testing.T) {
		identity := createTestIdentity(t, identities, "promote@example.org")
		require.NoError(t, repo.Create(ctx, &models.RoleRecord{
			IdentityID: identity.ID,
			Email:      identity.Email,
		}))

		require.NoError(t, repo.SetRole(ctx, identity.ID, models.RoleAdmin))

		record, err := repo.GetByIdentityID(ctx, identity.ID)
		require.NoError(t, err)
		require.NotNil(t, record)
		assert.Equal(t, models.RoleAdmin, record.Role)
	})

	t.Run("missing record returns ErrNotFound", func(t *testing.T) {
		identity := createTestIdentity(t, identities, "missing@example.org")
		err := repo.SetRole(ctx, identity.ID, models.RoleAdmin)
		assert.ErrorIs(t, err, ErrNotFound)
	})
}

func TestBunRoleRecordRepository_List(t *testing.T) {
	db := setupTestDB(t)
	identities := NewBunIdentityRepository(db)
	repo := NewBunRoleRecordRepository(db)
	ctx := context.Background()

	for _, email := range []string{"u1@example.org", "u2@example.org"} {
		identity := createTestIdentity(t, identities, email)
		require.NoError(t, repo.Create(ctx, &models.RoleRecord{
			IdentityID: identity.ID,
			Email:      email,
		}))
	}

	records, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Len(t, records, 2)
}
