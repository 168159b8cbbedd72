package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/v2/bson"

	"userdir/internal/auth"
	apperrors "userdir/internal/errors"
	"userdir/internal/model"
)

// MockUserService is a mock implementation of service.UserService.
type MockUserService struct {
	mock.Mock
}

func (m *MockUserService) Create(ctx context.Context, req *model.CreateUserRequest) (*model.User, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserService) Get(ctx context.Context, caller *auth.Claims, id string) (*model.User, error) {
	args := m.Called(ctx, caller, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserService) Update(ctx context.Context, id string, req *model.UpdateUserRequest) (*model.User, error) {
	args := m.Called(ctx, id, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserService) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockUserService) List(ctx context.Context, page int) ([]model.User, int64, error) {
	args := m.Called(ctx, page)
	if args.Get(0) == nil {
		return nil, args.Get(1).(int64), args.Error(2)
	}
	return args.Get(0).([]model.User), args.Get(1).(int64), args.Error(2)
}

func newContext(e *echo.Echo, method, target, body string) (echo.Context, *httptest.ResponseRecorder) {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

// serve runs the handler and lets echo's error handler render failures,
// so assertions see the same body a client would.
func serve(e *echo.Echo, c echo.Context, h echo.HandlerFunc) {
	if err := h(c); err != nil {
		e.HTTPErrorHandler(err, c)
	}
}

func TestUserHandler_Get_ErrorMessages(t *testing.T) {
	tests := []struct {
		name         string
		serviceError error
		expectedCode int
		expectedBody string
	}{
		{
			name:         "malformed id",
			serviceError: apperrors.ErrInvalidUserID,
			expectedCode: http.StatusBadRequest,
			expectedBody: `{"message":"Invalid user ID"}`,
		},
		{
			name:         "foreign profile",
			serviceError: apperrors.ErrNotOwnProfile,
			expectedCode: http.StatusForbidden,
			expectedBody: `{"message":"Forbidden: Not your profile"}`,
		},
		{
			name:         "missing record",
			serviceError: apperrors.ErrUserNotFound,
			expectedCode: http.StatusNotFound,
			expectedBody: `{"message":"User not found"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := new(MockUserService)
			svc.On("Get", mock.Anything, mock.Anything, "some-id").Return(nil, tt.serviceError)

			e := echo.New()
			c, rec := newContext(e, http.MethodGet, "/users/some-id", "")
			c.SetPath("/users/:id")
			c.SetParamNames("id")
			c.SetParamValues("some-id")
			c.Set(auth.ContextKey, &auth.Claims{UserID: "caller", Role: model.RoleUser})

			serve(e, c, NewUserHandler(svc).Get)

			assert.Equal(t, tt.expectedCode, rec.Code)
			assert.JSONEq(t, tt.expectedBody, rec.Body.String())
		})
	}
}

func TestUserHandler_Get_WithoutClaims(t *testing.T) {
	e := echo.New()
	c, rec := newContext(e, http.MethodGet, "/users/some-id", "")

	serve(e, c, NewUserHandler(new(MockUserService)).Get)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestUserHandler_Create_DuplicateEmail(t *testing.T) {
	svc := new(MockUserService)
	svc.On("Create", mock.Anything, mock.Anything).Return(nil, apperrors.ErrDuplicateEmail)

	e := echo.New()
	body := `{"name":"Dup","email":"dup@example.com","password":"password123","role":"user","status":"active"}`
	c, rec := newContext(e, http.MethodPost, "/users", body)

	serve(e, c, NewUserHandler(svc).Create)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.JSONEq(t, `{"message":"Email already exists"}`, rec.Body.String())
}

func TestUserHandler_Delete(t *testing.T) {
	t.Run("success message", func(t *testing.T) {
		svc := new(MockUserService)
		svc.On("Delete", mock.Anything, "abc").Return(nil)

		e := echo.New()
		c, rec := newContext(e, http.MethodDelete, "/users/abc", "")
		c.SetParamNames("id")
		c.SetParamValues("abc")

		serve(e, c, NewUserHandler(svc).Delete)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `{"message":"User deleted"}`, rec.Body.String())
	})

	t.Run("missing record", func(t *testing.T) {
		svc := new(MockUserService)
		svc.On("Delete", mock.Anything, "abc").Return(apperrors.ErrUserNotFound)

		e := echo.New()
		c, rec := newContext(e, http.MethodDelete, "/users/abc", "")
		c.SetParamNames("id")
		c.SetParamValues("abc")

		serve(e, c, NewUserHandler(svc).Delete)

		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.JSONEq(t, `{"message":"User not found"}`, rec.Body.String())
	})
}

func TestUserHandler_List_PageParsing(t *testing.T) {
	tests := []struct {
		name         string
		query        string
		expectedPage int
	}{
		{name: "explicit page", query: "?page=3", expectedPage: 3},
		{name: "missing page defaults to 1", query: "", expectedPage: 1},
		{name: "junk page defaults to 1", query: "?page=abc", expectedPage: 1},
	}

	users := []model.User{{ID: bson.NewObjectID(), Name: "Someone"}}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := new(MockUserService)
			svc.On("List", mock.Anything, tt.expectedPage).Return(users, int64(1), nil)

			e := echo.New()
			c, rec := newContext(e, http.MethodGet, "/users"+tt.query, "")

			serve(e, c, NewUserHandler(svc).List)

			require.Equal(t, http.StatusOK, rec.Code)
			assert.Contains(t, rec.Body.String(), `"total":1`)
			svc.AssertExpectations(t)
		})
	}
}
