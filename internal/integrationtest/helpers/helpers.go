// Package helpers provides seed functions used in integration tests.
package helpers

import (
	"context"
	"testing"

	"github.com/securebank/ledger/internal/accountrepo"
	"github.com/securebank/ledger/internal/domain"
	"github.com/securebank/ledger/internal/userrepo"
	"github.com/securebank/ledger/pkg/dbpkg"
	"github.com/securebank/ledger/pkg/passpkg"
	"github.com/securebank/ledger/pkg/randompkg"
)

// SeedUser inserts a random customer user.
func SeedUser(t *testing.T, db dbpkg.SQLInterface) domain.User {
	t.Helper()

	hashedPassword, err := passpkg.Hash(randompkg.String(10))
	if err != nil {
		t.Fatalf("passpkg.Hash() returned error: %v", err)
	}

	repo := userrepo.NewRepoPGS(db)

	user, err := repo.Create(context.Background(), domain.CreateUserParams{
		Email:          randompkg.Email(),
		HashedPassword: hashedPassword,
		FullName:       randompkg.Owner(),
		Phone:          "+15550100",
		Role:           domain.RoleCustomer,
	})
	if err != nil {
		t.Fatalf("userRepo.Create() returned error: %v", err)
	}

	return user
}

// SeedAccount inserts an active account with zero balance for the given user.
func SeedAccount(t *testing.T, db dbpkg.SQLInterface, userID string) domain.Account {
	t.Helper()

	repo := accountrepo.NewRepoPGS(db)

	account, err := repo.Create(context.Background(), userID, randompkg.AccountNumber())
	if err != nil {
		t.Fatalf("accountRepo.Create(ctx, %v) returned error: %v", userID, err)
	}

	return account
}

// SeedAccountWithBalance inserts an active account and credits it with the
// given starting balance.
func SeedAccountWithBalance(t *testing.T, db dbpkg.SQLInterface, userID, balance string) domain.Account {
	t.Helper()

	account := SeedAccount(t, db, userID)

	repo := accountrepo.NewRepoPGS(db)

	account, err := repo.AddBalance(context.Background(), balance, account.ID)
	if err != nil {
		t.Fatalf("accountRepo.AddBalance(ctx, %v, %v) returned error: %v", balance, account.ID, err)
	}

	return account
}

// SeedFrozenAccount inserts a frozen account with the given starting balance.
func SeedFrozenAccount(t *testing.T, db dbpkg.SQLInterface, userID, balance string) domain.Account {
	t.Helper()

	account := SeedAccountWithBalance(t, db, userID, balance)

	repo := accountrepo.NewRepoPGS(db)

	account, err := repo.SetStatus(context.Background(), account.ID, domain.StatusFrozen)
	if err != nil {
		t.Fatalf("accountRepo.SetStatus(ctx, %v, FROZEN) returned error: %v", account.ID, err)
	}

	return account
}
