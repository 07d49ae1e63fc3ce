package accountdelivery

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/securebank/ledger/internal/domain"
	"github.com/securebank/ledger/internal/middleware"
	"github.com/securebank/ledger/pkg/errorspkg"
	"github.com/securebank/ledger/pkg/randompkg"
	"github.com/securebank/ledger/pkg/tokenpkg"
)

func testServer(t *testing.T, service Service, tokenMaker tokenpkg.Maker) *gin.Engine {
	t.Helper()

	gin.SetMode(gin.ReleaseMode)

	handler := NewHandler(service)

	server := gin.New()
	authRoutes := server.Group("/").Use(middleware.AuthMiddleware(tokenMaker))
	authRoutes.POST("/accounts", handler.Create)
	authRoutes.GET("/accounts", handler.List)
	authRoutes.GET("/accounts/:id", handler.Get)

	adminRoutes := server.Group("/").Use(middleware.AuthMiddleware(tokenMaker), middleware.AdminOnly())
	adminRoutes.POST("/accounts/:id/freeze", handler.Freeze)
	adminRoutes.POST("/accounts/:id/unfreeze", handler.Unfreeze)

	return server
}

func randomAccount(userID string) domain.Account {
	return domain.Account{
		ID:            uuid.NewString(),
		UserID:        userID,
		AccountNumber: randompkg.AccountNumber(),
		Balance:       randompkg.MoneyAmountBetween(1000, 10_000),
		Status:        domain.StatusActive,
		CreatedAt:     time.Now().Truncate(time.Second).UTC(),
	}
}

func TestCreateAccountAPI(t *testing.T) {
	userID := uuid.NewString()
	email := randompkg.Email()
	account := randomAccount(userID)

	tokenMaker, err := tokenpkg.NewPasetoMaker(randompkg.String(32))
	require.NoError(t, err)

	testCases := []struct {
		name          string
		setupAuth     func(t *testing.T, request *http.Request, tokenMaker tokenpkg.Maker)
		buildStubs    func(service *MockService)
		checkResponse func(recorder *httptest.ResponseRecorder)
	}{
		{
			name:      "NoAuthorization",
			setupAuth: func(t *testing.T, request *http.Request, tokenMaker tokenpkg.Maker) {},
			buildStubs: func(service *MockService) {
				service.EXPECT().Create(gomock.Any(), gomock.Any()).Times(0)
			},
			checkResponse: func(recorder *httptest.ResponseRecorder) {
				require.Equal(t, http.StatusUnauthorized, recorder.Code)
			},
		},
		{
			name: "UnknownUser",
			setupAuth: func(t *testing.T, request *http.Request, tokenMaker tokenpkg.Maker) {
				middleware.AddAuthorization(t, request, tokenMaker, middleware.AuthTypeBearer, userID, email, "CUSTOMER", time.Minute)
			},
			buildStubs: func(service *MockService) {
				service.EXPECT().Create(gomock.Any(), gomock.Eq(userID)).
					Times(1).
					Return(domain.Account{}, domain.ErrUserNotFound)
			},
			checkResponse: func(recorder *httptest.ResponseRecorder) {
				require.Equal(t, http.StatusBadRequest, recorder.Code)
			},
		},
		{
			name: "InternalError",
			setupAuth: func(t *testing.T, request *http.Request, tokenMaker tokenpkg.Maker) {
				middleware.AddAuthorization(t, request, tokenMaker, middleware.AuthTypeBearer, userID, email, "CUSTOMER", time.Minute)
			},
			buildStubs: func(service *MockService) {
				service.EXPECT().Create(gomock.Any(), gomock.Eq(userID)).
					Times(1).
					Return(domain.Account{}, errorspkg.ErrInternal)
			},
			checkResponse: func(recorder *httptest.ResponseRecorder) {
				require.Equal(t, http.StatusInternalServerError, recorder.Code)
			},
		},
		{
			name: "OK",
			setupAuth: func(t *testing.T, request *http.Request, tokenMaker tokenpkg.Maker) {
				middleware.AddAuthorization(t, request, tokenMaker, middleware.AuthTypeBearer, userID, email, "CUSTOMER", time.Minute)
			},
			buildStubs: func(service *MockService) {
				service.EXPECT().Create(gomock.Any(), gomock.Eq(userID)).
					Times(1).
					Return(account, nil)
			},
			checkResponse: func(recorder *httptest.ResponseRecorder) {
				require.Equal(t, http.StatusCreated, recorder.Code)

				var got accountResponse
				require.NoError(t, json.NewDecoder(recorder.Body).Decode(&got))
				require.Equal(t, account.AccountNumber, got.Data.Account.AccountNumber)
				require.Equal(t, domain.StatusActive, got.Data.Account.Status)
			},
		},
	}

	for i := range testCases {
		tc := testCases[i]

		t.Run(tc.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			service := NewMockService(ctrl)
			tc.buildStubs(service)

			server := testServer(t, service, tokenMaker)
			recorder := httptest.NewRecorder()

			request, err := http.NewRequest(http.MethodPost, "/accounts", nil)
			require.NoError(t, err)

			tc.setupAuth(t, request, tokenMaker)
			server.ServeHTTP(recorder, request)
			tc.checkResponse(recorder)
		})
	}
}

func TestGetAccountAPI(t *testing.T) {
	ownerID := uuid.NewString()
	otherUserID := uuid.NewString()
	email := randompkg.Email()
	account := randomAccount(ownerID)

	tokenMaker, err := tokenpkg.NewPasetoMaker(randompkg.String(32))
	require.NoError(t, err)

	testCases := []struct {
		name          string
		accountID     string
		setupAuth     func(t *testing.T, request *http.Request, tokenMaker tokenpkg.Maker)
		buildStubs    func(service *MockService)
		checkResponse func(recorder *httptest.ResponseRecorder)
	}{
		{
			name:      "InvalidBindAccountID",
			accountID: "42",
			setupAuth: func(t *testing.T, request *http.Request, tokenMaker tokenpkg.Maker) {
				middleware.AddAuthorization(t, request, tokenMaker, middleware.AuthTypeBearer, ownerID, email, "CUSTOMER", time.Minute)
			},
			buildStubs: func(service *MockService) {
				service.EXPECT().Get(gomock.Any(), gomock.Any()).Times(0)
			},
			checkResponse: func(recorder *httptest.ResponseRecorder) {
				require.Equal(t, http.StatusBadRequest, recorder.Code)
			},
		},
		{
			name:      "NotFound",
			accountID: account.ID,
			setupAuth: func(t *testing.T, request *http.Request, tokenMaker tokenpkg.Maker) {
				middleware.AddAuthorization(t, request, tokenMaker, middleware.AuthTypeBearer, ownerID, email, "CUSTOMER", time.Minute)
			},
			buildStubs: func(service *MockService) {
				service.EXPECT().Get(gomock.Any(), gomock.Eq(account.ID)).
					Times(1).
					Return(domain.Account{}, domain.ErrAccountNotFound)
			},
			checkResponse: func(recorder *httptest.ResponseRecorder) {
				require.Equal(t, http.StatusNotFound, recorder.Code)
			},
		},
		{
			name:      "NotOwner",
			accountID: account.ID,
			setupAuth: func(t *testing.T, request *http.Request, tokenMaker tokenpkg.Maker) {
				middleware.AddAuthorization(t, request, tokenMaker, middleware.AuthTypeBearer, otherUserID, email, "CUSTOMER", time.Minute)
			},
			buildStubs: func(service *MockService) {
				service.EXPECT().Get(gomock.Any(), gomock.Eq(account.ID)).
					Times(1).
					Return(account, nil)
			},
			checkResponse: func(recorder *httptest.ResponseRecorder) {
				require.Equal(t, http.StatusUnauthorized, recorder.Code)
			},
		},
		{
			name:      "AdminCanReadAnyAccount",
			accountID: account.ID,
			setupAuth: func(t *testing.T, request *http.Request, tokenMaker tokenpkg.Maker) {
				middleware.AddAuthorization(t, request, tokenMaker, middleware.AuthTypeBearer, otherUserID, email, string(domain.RoleAdmin), time.Minute)
			},
			buildStubs: func(service *MockService) {
				service.EXPECT().Get(gomock.Any(), gomock.Eq(account.ID)).
					Times(1).
					Return(account, nil)
			},
			checkResponse: func(recorder *httptest.ResponseRecorder) {
				require.Equal(t, http.StatusOK, recorder.Code)
			},
		},
		{
			name:      "OK",
			accountID: account.ID,
			setupAuth: func(t *testing.T, request *http.Request, tokenMaker tokenpkg.Maker) {
				middleware.AddAuthorization(t, request, tokenMaker, middleware.AuthTypeBearer, ownerID, email, "CUSTOMER", time.Minute)
			},
			buildStubs: func(service *MockService) {
				service.EXPECT().Get(gomock.Any(), gomock.Eq(account.ID)).
					Times(1).
					Return(account, nil)
			},
			checkResponse: func(recorder *httptest.ResponseRecorder) {
				require.Equal(t, http.StatusOK, recorder.Code)

				var got accountResponse
				require.NoError(t, json.NewDecoder(recorder.Body).Decode(&got))
				require.Equal(t, account.ID, got.Data.Account.ID)
			},
		},
	}

	for i := range testCases {
		tc := testCases[i]

		t.Run(tc.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			service := NewMockService(ctrl)
			tc.buildStubs(service)

			server := testServer(t, service, tokenMaker)
			recorder := httptest.NewRecorder()

			request, err := http.NewRequest(http.MethodGet, "/accounts/"+tc.accountID, nil)
			require.NoError(t, err)

			tc.setupAuth(t, request, tokenMaker)
			server.ServeHTTP(recorder, request)
			tc.checkResponse(recorder)
		})
	}
}

func TestFreezeAccountAPI(t *testing.T) {
	adminID := uuid.NewString()
	email := randompkg.Email()
	account := randomAccount(uuid.NewString())

	tokenMaker, err := tokenpkg.NewPasetoMaker(randompkg.String(32))
	require.NoError(t, err)

	frozen := account
	frozen.Status = domain.StatusFrozen

	testCases := []struct {
		name          string
		path          string
		role          string
		buildStubs    func(service *MockService)
		checkResponse func(recorder *httptest.ResponseRecorder)
	}{
		{
			name: "CustomerForbidden",
			path: "/accounts/" + account.ID + "/freeze",
			role: string(domain.RoleCustomer),
			buildStubs: func(service *MockService) {
				service.EXPECT().Freeze(gomock.Any(), gomock.Any()).Times(0)
			},
			checkResponse: func(recorder *httptest.ResponseRecorder) {
				require.Equal(t, http.StatusForbidden, recorder.Code)
			},
		},
		{
			name: "FreezeOK",
			path: "/accounts/" + account.ID + "/freeze",
			role: string(domain.RoleAdmin),
			buildStubs: func(service *MockService) {
				service.EXPECT().Freeze(gomock.Any(), gomock.Eq(account.ID)).
					Times(1).
					Return(frozen, nil)
			},
			checkResponse: func(recorder *httptest.ResponseRecorder) {
				require.Equal(t, http.StatusOK, recorder.Code)

				var got accountResponse
				require.NoError(t, json.NewDecoder(recorder.Body).Decode(&got))
				require.Equal(t, domain.StatusFrozen, got.Data.Account.Status)
			},
		},
		{
			name: "UnfreezeNotFrozen",
			path: "/accounts/" + account.ID + "/unfreeze",
			role: string(domain.RoleAdmin),
			buildStubs: func(service *MockService) {
				service.EXPECT().Unfreeze(gomock.Any(), gomock.Eq(account.ID)).
					Times(1).
					Return(domain.Account{}, domain.ErrAccountNotFrozen)
			},
			checkResponse: func(recorder *httptest.ResponseRecorder) {
				require.Equal(t, http.StatusConflict, recorder.Code)
			},
		},
		{
			name: "UnfreezeOK",
			path: "/accounts/" + account.ID + "/unfreeze",
			role: string(domain.RoleAdmin),
			buildStubs: func(service *MockService) {
				service.EXPECT().Unfreeze(gomock.Any(), gomock.Eq(account.ID)).
					Times(1).
					Return(account, nil)
			},
			checkResponse: func(recorder *httptest.ResponseRecorder) {
				require.Equal(t, http.StatusOK, recorder.Code)
			},
		},
		{
			name: "FreezeNotFound",
			path: "/accounts/" + account.ID + "/freeze",
			role: string(domain.RoleAdmin),
			buildStubs: func(service *MockService) {
				service.EXPECT().Freeze(gomock.Any(), gomock.Eq(account.ID)).
					Times(1).
					Return(domain.Account{}, domain.ErrAccountNotFound)
			},
			checkResponse: func(recorder *httptest.ResponseRecorder) {
				require.Equal(t, http.StatusNotFound, recorder.Code)
			},
		},
	}

	for i := range testCases {
		tc := testCases[i]

		t.Run(tc.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			service := NewMockService(ctrl)
			tc.buildStubs(service)

			server := testServer(t, service, tokenMaker)
			recorder := httptest.NewRecorder()

			request, err := http.NewRequest(http.MethodPost, tc.path, nil)
			require.NoError(t, err)

			middleware.AddAuthorization(t, request, tokenMaker, middleware.AuthTypeBearer, adminID, email, tc.role, time.Minute)
			server.ServeHTTP(recorder, request)
			tc.checkResponse(recorder)
		})
	}
}

func TestListAccountsAPI(t *testing.T) {
	userID := uuid.NewString()
	email := randompkg.Email()

	tokenMaker, err := tokenpkg.NewPasetoMaker(randompkg.String(32))
	require.NoError(t, err)

	accounts := []domain.Account{randomAccount(userID), randomAccount(userID)}

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	service := NewMockService(ctrl)
	service.EXPECT().ListByUser(gomock.Any(), gomock.Eq(userID)).
		Times(1).
		Return(accounts, nil)

	server := testServer(t, service, tokenMaker)
	recorder := httptest.NewRecorder()

	request, err := http.NewRequest(http.MethodGet, "/accounts", nil)
	require.NoError(t, err)

	middleware.AddAuthorization(t, request, tokenMaker, middleware.AuthTypeBearer, userID, email, "CUSTOMER", time.Minute)
	server.ServeHTTP(recorder, request)

	require.Equal(t, http.StatusOK, recorder.Code)

	var got accountsResponse
	require.NoError(t, json.NewDecoder(recorder.Body).Decode(&got))
	require.Len(t, got.Data.Accounts, 2)
}
