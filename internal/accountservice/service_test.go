package accountservice

import (
	"context"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/require"

	"github.com/securebank/ledger/internal/domain"
	"github.com/securebank/ledger/pkg/errorspkg"
)

var testUserID = "22222222-2222-2222-2222-222222222222"

func testAccount(status domain.AccountStatus) domain.Account {
	return domain.Account{
		ID:            "11111111-1111-1111-1111-111111111111",
		UserID:        testUserID,
		AccountNumber: "SB0000000042",
		Balance:       "0.00",
		Status:        status,
		CreatedAt:     time.Now().Truncate(time.Second).UTC(),
	}
}

func TestCreate(t *testing.T) {
	account := testAccount(domain.StatusActive)

	testCases := []struct {
		name          string
		buildStubs    func(repo *MockRepo)
		checkResponse func(res domain.Account, err error)
	}{
		{
			name: "OK",
			buildStubs: func(repo *MockRepo) {
				repo.EXPECT().Create(gomock.Any(), gomock.Eq(testUserID), gomock.Any()).
					Times(1).
					Return(account, nil)
			},
			checkResponse: func(res domain.Account, err error) {
				require.NoError(t, err)
				require.Equal(t, account, res)
			},
		},
		{
			name: "RetriesOnNumberCollision",
			buildStubs: func(repo *MockRepo) {
				collision := repo.EXPECT().Create(gomock.Any(), gomock.Eq(testUserID), gomock.Any()).
					Times(1).
					Return(domain.Account{}, domain.ErrAccountNumberExists)
				repo.EXPECT().Create(gomock.Any(), gomock.Eq(testUserID), gomock.Any()).
					After(collision).
					Times(1).
					Return(account, nil)
			},
			checkResponse: func(res domain.Account, err error) {
				require.NoError(t, err)
				require.Equal(t, account, res)
			},
		},
		{
			name: "GivesUpAfterMaxAttempts",
			buildStubs: func(repo *MockRepo) {
				repo.EXPECT().Create(gomock.Any(), gomock.Eq(testUserID), gomock.Any()).
					Times(maxNumberAttempts).
					Return(domain.Account{}, domain.ErrAccountNumberExists)
			},
			checkResponse: func(res domain.Account, err error) {
				require.EqualError(t, err, domain.ErrAccountNumberExists.Error())
			},
		},
		{
			name: "UnknownUser",
			buildStubs: func(repo *MockRepo) {
				repo.EXPECT().Create(gomock.Any(), gomock.Eq(testUserID), gomock.Any()).
					Times(1).
					Return(domain.Account{}, domain.ErrUserNotFound)
			},
			checkResponse: func(res domain.Account, err error) {
				require.EqualError(t, err, domain.ErrUserNotFound.Error())
			},
		},
	}

	for i := range testCases {
		tc := testCases[i]

		t.Run(tc.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			repo := NewMockRepo(ctrl)
			auditor := NewMockAuditor(ctrl)
			tc.buildStubs(repo)

			service := New(repo, auditor)

			res, err := service.Create(context.Background(), testUserID)
			tc.checkResponse(res, err)
		})
	}
}

func TestFreeze(t *testing.T) {
	frozen := testAccount(domain.StatusFrozen)

	testCases := []struct {
		name          string
		buildStubs    func(repo *MockRepo, auditor *MockAuditor)
		checkResponse func(res domain.Account, err error)
	}{
		{
			name: "OK",
			buildStubs: func(repo *MockRepo, auditor *MockAuditor) {
				repo.EXPECT().SetStatus(gomock.Any(), gomock.Eq(frozen.ID), gomock.Eq(domain.StatusFrozen)).
					Times(1).
					Return(frozen, nil)
				auditor.EXPECT().LogEvent(gomock.Any(), gomock.Any()).
					Times(1).
					Return(domain.AuditLog{}, nil)
			},
			checkResponse: func(res domain.Account, err error) {
				require.NoError(t, err)
				require.Equal(t, domain.StatusFrozen, res.Status)
			},
		},
		{
			name: "NotFound",
			buildStubs: func(repo *MockRepo, auditor *MockAuditor) {
				repo.EXPECT().SetStatus(gomock.Any(), gomock.Eq(frozen.ID), gomock.Eq(domain.StatusFrozen)).
					Times(1).
					Return(domain.Account{}, domain.ErrAccountNotFound)
				auditor.EXPECT().LogEvent(gomock.Any(), gomock.Any()).Times(0)
			},
			checkResponse: func(res domain.Account, err error) {
				require.EqualError(t, err, domain.ErrAccountNotFound.Error())
			},
		},
		{
			name: "AuditFailureDoesNotFailFreeze",
			buildStubs: func(repo *MockRepo, auditor *MockAuditor) {
				repo.EXPECT().SetStatus(gomock.Any(), gomock.Eq(frozen.ID), gomock.Eq(domain.StatusFrozen)).
					Times(1).
					Return(frozen, nil)
				auditor.EXPECT().LogEvent(gomock.Any(), gomock.Any()).
					Times(1).
					Return(domain.AuditLog{}, errorspkg.ErrInternal)
			},
			checkResponse: func(res domain.Account, err error) {
				require.NoError(t, err)
			},
		},
	}

	for i := range testCases {
		tc := testCases[i]

		t.Run(tc.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			repo := NewMockRepo(ctrl)
			auditor := NewMockAuditor(ctrl)
			tc.buildStubs(repo, auditor)

			service := New(repo, auditor)

			res, err := service.Freeze(context.Background(), frozen.ID)
			tc.checkResponse(res, err)
		})
	}
}

func TestUnfreeze(t *testing.T) {
	frozen := testAccount(domain.StatusFrozen)
	active := testAccount(domain.StatusActive)

	testCases := []struct {
		name          string
		buildStubs    func(repo *MockRepo, auditor *MockAuditor)
		checkResponse func(res domain.Account, err error)
	}{
		{
			name: "OK",
			buildStubs: func(repo *MockRepo, auditor *MockAuditor) {
				repo.EXPECT().Get(gomock.Any(), gomock.Eq(frozen.ID)).
					Times(1).
					Return(frozen, nil)
				repo.EXPECT().SetStatus(gomock.Any(), gomock.Eq(frozen.ID), gomock.Eq(domain.StatusActive)).
					Times(1).
					Return(active, nil)
				auditor.EXPECT().LogEvent(gomock.Any(), gomock.Any()).
					Times(1).
					Return(domain.AuditLog{}, nil)
			},
			checkResponse: func(res domain.Account, err error) {
				require.NoError(t, err)
				require.Equal(t, domain.StatusActive, res.Status)
			},
		},
		{
			name: "NotFrozen",
			buildStubs: func(repo *MockRepo, auditor *MockAuditor) {
				repo.EXPECT().Get(gomock.Any(), gomock.Eq(frozen.ID)).
					Times(1).
					Return(active, nil)
				repo.EXPECT().SetStatus(gomock.Any(), gomock.Any(), gomock.Any()).Times(0)
				auditor.EXPECT().LogEvent(gomock.Any(), gomock.Any()).Times(0)
			},
			checkResponse: func(res domain.Account, err error) {
				require.Empty(t, res)
				require.EqualError(t, err, domain.ErrAccountNotFrozen.Error())
			},
		},
		{
			name: "NotFound",
			buildStubs: func(repo *MockRepo, auditor *MockAuditor) {
				repo.EXPECT().Get(gomock.Any(), gomock.Eq(frozen.ID)).
					Times(1).
					Return(domain.Account{}, domain.ErrAccountNotFound)
				repo.EXPECT().SetStatus(gomock.Any(), gomock.Any(), gomock.Any()).Times(0)
				auditor.EXPECT().LogEvent(gomock.Any(), gomock.Any()).Times(0)
			},
			checkResponse: func(res domain.Account, err error) {
				require.EqualError(t, err, domain.ErrAccountNotFound.Error())
			},
		},
	}

	for i := range testCases {
		tc := testCases[i]

		t.Run(tc.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			repo := NewMockRepo(ctrl)
			auditor := NewMockAuditor(ctrl)
			tc.buildStubs(repo, auditor)

			service := New(repo, auditor)

			res, err := service.Unfreeze(context.Background(), frozen.ID)
			tc.checkResponse(res, err)
		})
	}
}
