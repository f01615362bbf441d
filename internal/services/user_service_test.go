package services

import (
	"testing"

	"bizledger/internal/testutil"
)

func TestSyncUser(t *testing.T) {
	t.Run("creates new user", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewUserService(db)

		user, err := svc.SyncUser("owner@shop.com", "Owner")
		testutil.AssertNoError(t, err)

		if user.ID == "" {
			t.Fatal("expected a generated user ID")
		}
		if user.Email != "owner@shop.com" {
			t.Errorf("expected email owner@shop.com, got %s", user.Email)
		}
		if user.Name != "Owner" {
			t.Errorf("expected name Owner, got %s", user.Name)
		}
	})

	t.Run("is idempotent per email", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewUserService(db)

		first, err := svc.SyncUser("owner@shop.com", "Owner")
		testutil.AssertNoError(t, err)

		second, err := svc.SyncUser("owner@shop.com", "Renamed Owner")
		testutil.AssertNoError(t, err)

		if second.ID != first.ID {
			t.Errorf("repeated sync must keep the row, got IDs %s and %s", first.ID, second.ID)
		}
		if second.Name != "Renamed Owner" {
			t.Errorf("expected updated name, got %s", second.Name)
		}

		var count int64
		db.Table("users").Count(&count)
		if count != 1 {
			t.Errorf("expected exactly one user row, got %d", count)
		}
	})

	t.Run("rejects empty email", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewUserService(db)

		_, err := svc.SyncUser("", "Nameless")
		testutil.AssertAppError(t, err, "INVALID_INPUT")
	})
}

func TestGetUserByEmail(t *testing.T) {
	t.Run("resolves existing user", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewUserService(db)
		created := testutil.CreateTestUserWithEmail(t, db, "known@shop.com")

		user, err := svc.GetUserByEmail("known@shop.com")
		testutil.AssertNoError(t, err)
		if user.ID != created.ID {
			t.Errorf("expected user %s, got %s", created.ID, user.ID)
		}
	})

	t.Run("unknown email", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewUserService(db)

		_, err := svc.GetUserByEmail("ghost@shop.com")
		testutil.AssertAppError(t, err, "USER_NOT_FOUND")
	})
}
