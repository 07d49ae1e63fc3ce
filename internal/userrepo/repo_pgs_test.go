//go:build integration

package userrepo_test

import (
	"context"
	"log"
	"os"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/securebank/ledger/internal/domain"
	"github.com/securebank/ledger/internal/integrationtest/helpers"
	"github.com/securebank/ledger/internal/userrepo"
	"github.com/securebank/ledger/pkg/configpkg"
	"github.com/securebank/ledger/pkg/dbpkg"
	"github.com/securebank/ledger/pkg/passpkg"
	"github.com/securebank/ledger/pkg/randompkg"
)

var (
	dbDriver string
	dbSource string
)

func TestMain(m *testing.M) {
	config, err := configpkg.Load("../../configs")
	if err != nil {
		log.Fatal("cannot load config:", err)
	}

	dbDriver = config.DBDriver
	dbSource = config.DBSource

	os.Exit(m.Run())
}

func TestCreate(t *testing.T) {
	t.Parallel()

	tx := dbpkg.SetupTX(t, dbDriver, dbSource)
	repo := userrepo.NewRepoPGS(tx)

	hashedPassword, err := passpkg.Hash(randompkg.String(10))
	require.NoError(t, err)

	arg := domain.CreateUserParams{
		Email:          randompkg.Email(),
		HashedPassword: hashedPassword,
		FullName:       randompkg.Owner(),
		Phone:          "+15550100",
		Role:           domain.RoleCustomer,
	}

	t.Run("OK", func(t *testing.T) {
		user, err := repo.Create(context.Background(), arg)
		require.NoError(t, err)
		require.NotEmpty(t, user.ID)
		require.Equal(t, arg.Email, user.Email)
		require.Equal(t, arg.HashedPassword, user.HashedPassword)
		require.Equal(t, arg.FullName, user.FullName)
		require.Equal(t, domain.RoleCustomer, user.Role)
		require.NotZero(t, user.CreatedAt)
	})

	t.Run("DuplicateEmail", func(t *testing.T) {
		_, err := repo.Create(context.Background(), arg)
		require.EqualError(t, err, domain.ErrEmailAlreadyExists.Error())
	})
}

func TestGet(t *testing.T) {
	t.Parallel()

	tx := dbpkg.SetupTX(t, dbDriver, dbSource)
	repo := userrepo.NewRepoPGS(tx)
	seeded := helpers.SeedUser(t, tx)

	t.Run("OK", func(t *testing.T) {
		user, err := repo.Get(context.Background(), seeded.ID)
		require.NoError(t, err)
		require.Equal(t, seeded, user)
	})

	t.Run("NotFound", func(t *testing.T) {
		_, err := repo.Get(context.Background(), "11111111-1111-1111-1111-111111111111")
		require.EqualError(t, err, domain.ErrUserNotFound.Error())
	})
}

func TestGetByEmail(t *testing.T) {
	t.Parallel()

	tx := dbpkg.SetupTX(t, dbDriver, dbSource)
	repo := userrepo.NewRepoPGS(tx)
	seeded := helpers.SeedUser(t, tx)

	t.Run("OK", func(t *testing.T) {
		user, err := repo.GetByEmail(context.Background(), seeded.Email)
		require.NoError(t, err)
		require.Equal(t, seeded, user)
	})

	t.Run("NotFound", func(t *testing.T) {
		_, err := repo.GetByEmail(context.Background(), randompkg.Email())
		require.EqualError(t, err, domain.ErrUserNotFound.Error())
	})
}
