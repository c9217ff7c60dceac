package repository

import (
	"fmt"
	"testing"

	"connect-backend/internal/user/domain"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open test database: %v", err)
	}
	if err := db.AutoMigrate(&domain.User{}, &domain.Token{}); err != nil {
		t.Fatalf("migrate test database: %v", err)
	}
	return db
}

func seedUser(t *testing.T, repo UserRepository, username string) *domain.User {
	t.Helper()
	user := &domain.User{
		Username: username,
		Email:    username + "@example.com",
		Password: "hash",
		Role:     domain.RoleUser,
	}
	if err := repo.Create(user); err != nil {
		t.Fatalf("create %s: %v", username, err)
	}
	return user
}

func TestUserRepositoryLookups(t *testing.T) {
	repo := NewUserRepository(newTestDB(t))
	created := seedUser(t, repo, "alice")

	if created.ID == "" {
		t.Fatalf("Create must assign an id")
	}

	byID, err := repo.FindByID(created.ID)
	if err != nil || byID == nil || byID.Username != "alice" {
		t.Fatalf("FindByID: %v %v", byID, err)
	}
	byName, err := repo.FindByUsername("alice")
	if err != nil || byName == nil || byName.ID != created.ID {
		t.Fatalf("FindByUsername: %v %v", byName, err)
	}
	byEmail, err := repo.FindByEmail("alice@example.com")
	if err != nil || byEmail == nil || byEmail.ID != created.ID {
		t.Fatalf("FindByEmail: %v %v", byEmail, err)
	}

	missing, err := repo.FindByID("missing")
	if err != nil || missing != nil {
		t.Fatalf("missing lookup should be (nil, nil), got %v %v", missing, err)
	}
}

func TestUserRepositoryPersistsEdgeSets(t *testing.T) {
	repo := NewUserRepository(newTestDB(t))
	user := seedUser(t, repo, "alice")

	user.Following = user.Following.Add("id-1").Add("id-2")
	user.Followers = user.Followers.Add("id-3")
	if err := repo.Update(user); err != nil {
		t.Fatalf("Update: %v", err)
	}

	loaded, err := repo.FindByID(user.ID)
	if err != nil || loaded == nil {
		t.Fatalf("FindByID: %v %v", loaded, err)
	}
	if !loaded.Following.Contains("id-1") || !loaded.Following.Contains("id-2") {
		t.Fatalf("following set not persisted: %v", loaded.Following)
	}
	if !loaded.Followers.Contains("id-3") {
		t.Fatalf("followers set not persisted: %v", loaded.Followers)
	}
}

func TestUserRepositoryDelete(t *testing.T) {
	repo := NewUserRepository(newTestDB(t))
	user := seedUser(t, repo, "alice")

	if err := repo.Delete(user); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	loaded, err := repo.FindByID(user.ID)
	if err != nil || loaded != nil {
		t.Fatalf("deleted user still resolvable: %v %v", loaded, err)
	}
}

func TestUserRepositoryFindByIDForUpdate(t *testing.T) {
	db := newTestDB(t)
	users := NewUserRepository(db)
	tx := NewTransactor(db)
	alice := seedUser(t, users, "alice")

	err := tx.Transaction(func(txUsers UserRepository, _ TokenRepository) error {
		locked, err := txUsers.FindByIDForUpdate(alice.ID)
		if err != nil {
			return err
		}
		if locked == nil || locked.ID != alice.ID {
			t.Fatalf("FindByIDForUpdate: %v", locked)
		}
		missing, err := txUsers.FindByIDForUpdate("missing")
		if err != nil || missing != nil {
			t.Fatalf("missing locked lookup should be (nil, nil), got %v %v", missing, err)
		}
		locked.Firstname = "Alice"
		return txUsers.Update(locked)
	})
	if err != nil {
		t.Fatalf("Transaction: %v", err)
	}

	loaded, err := users.FindByID(alice.ID)
	if err != nil || loaded == nil || loaded.Firstname != "Alice" {
		t.Fatalf("update through locked read not persisted: %v %v", loaded, err)
	}
}

func TestTokenRepositoryReplace(t *testing.T) {
	db := newTestDB(t)
	users := NewUserRepository(db)
	tokens := NewTokenRepository(db)
	alice := seedUser(t, users, "alice")
	bob := seedUser(t, users, "bob")

	for i := 0; i < 3; i++ {
		err := tokens.Replace(alice.ID, &domain.Token{
			Token:     fmt.Sprintf("alice-token-%d", i),
			TokenType: domain.TokenTypeBearer,
			UserID:    alice.ID,
		})
		if err != nil {
			t.Fatalf("Replace #%d: %v", i, err)
		}
	}
	if err := tokens.Save(&domain.Token{Token: "bob-token", TokenType: domain.TokenTypeBearer, UserID: bob.ID}); err != nil {
		t.Fatalf("Save: %v", err)
	}

	stored, err := tokens.FindAllByUser(alice.ID)
	if err != nil {
		t.Fatalf("FindAllByUser: %v", err)
	}
	if len(stored) != 1 || stored[0].Token != "alice-token-2" {
		t.Fatalf("Replace must keep only the latest record, got %+v", stored)
	}

	if err := tokens.DeleteAllByUser(alice.ID); err != nil {
		t.Fatalf("DeleteAllByUser: %v", err)
	}
	stored, _ = tokens.FindAllByUser(alice.ID)
	if len(stored) != 0 {
		t.Fatalf("expected no tokens after DeleteAllByUser")
	}
	bobTokens, _ := tokens.FindAllByUser(bob.ID)
	if len(bobTokens) != 1 {
		t.Fatalf("other users' tokens must be untouched")
	}
}

func TestTransactorRollsBack(t *testing.T) {
	db := newTestDB(t)
	users := NewUserRepository(db)
	tx := NewTransactor(db)
	alice := seedUser(t, users, "alice")

	sentinel := fmt.Errorf("boom")
	err := tx.Transaction(func(txUsers UserRepository, txTokens TokenRepository) error {
		if err := txTokens.Save(&domain.Token{Token: "t", TokenType: domain.TokenTypeBearer, UserID: alice.ID}); err != nil {
			return err
		}
		if err := txUsers.Delete(alice); err != nil {
			return err
		}
		return sentinel
	})
	if err == nil {
		t.Fatalf("expected transaction error")
	}

	loaded, err := users.FindByID(alice.ID)
	if err != nil || loaded == nil {
		t.Fatalf("rollback should restore the user: %v %v", loaded, err)
	}
	tokens := NewTokenRepository(db)
	stored, _ := tokens.FindAllByUser(alice.ID)
	if len(stored) != 0 {
		t.Fatalf("rollback should discard the token write")
	}
}
