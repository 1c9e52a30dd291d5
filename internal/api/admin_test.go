package api

import (
	"fmt"
	"net/http"
	"testing"

	"bike_market/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type userPage struct {
	Users      []domain.User `json:"users"`
	Page       int           `json:"page"`
	PageSize   int           `json:"page_size"`
	Total      int64         `json:"total"`
	TotalPages int           `json:"total_pages"`
}

func TestListSellersPaginated(t *testing.T) {
	s := newTestServer(t, nil)
	s.users.add("admin@x.com", domain.RoleAdmin)
	for i := 0; i < 5; i++ {
		s.users.add(fmt.Sprintf("seller%d@x.com", i), domain.RoleSeller)
	}
	s.users.add("buyer@x.com", domain.RoleBuyer)

	w := s.do(t, http.MethodGet, "/sellers?page=2&page_size=2", "admin@x.com", nil)
	require.Equal(t, http.StatusOK, w.Code)
	page := decode[userPage](t, w)
	assert.Equal(t, 2, page.Page)
	assert.Equal(t, 2, page.PageSize)
	assert.EqualValues(t, 5, page.Total)
	assert.Equal(t, 3, page.TotalPages)
	require.Len(t, page.Users, 2)
	assert.Equal(t, "seller2@x.com", page.Users[0].Email)

	w = s.do(t, http.MethodGet, "/buyers?page_size=500", "admin@x.com", nil)
	require.Equal(t, http.StatusOK, w.Code)
	page = decode[userPage](t, w)
	assert.Equal(t, 20, page.PageSize)
	require.Len(t, page.Users, 1)
	assert.Equal(t, domain.RoleBuyer, page.Users[0].Type)
}

func TestAdminRoutesRejectNonAdmins(t *testing.T) {
	s := newTestServer(t, nil)
	seller := s.users.add("seller@x.com", domain.RoleSeller)
	buyer := s.users.add("buyer@x.com", domain.RoleBuyer)

	for _, req := range []struct{ method, path string }{
		{http.MethodGet, "/sellers"},
		{http.MethodGet, "/buyers"},
		{http.MethodGet, "/reports"},
		{http.MethodDelete, "/buyers/" + buyer.ID.Hex()},
		{http.MethodPut, "/sellers/verify/" + seller.ID.Hex()},
		{http.MethodPut, "/makeAdmin/" + seller.ID.Hex()},
	} {
		w := s.do(t, req.method, req.path, "seller@x.com", nil)
		assert.Equal(t, http.StatusForbidden, w.Code, req.path)
		w = s.do(t, req.method, req.path, "", nil)
		assert.Equal(t, http.StatusUnauthorized, w.Code, req.path)
	}
	assert.False(t, s.users.users["seller@x.com"].Verify)
	assert.Equal(t, domain.RoleSeller, s.users.users["seller@x.com"].Type)
	assert.Contains(t, s.users.users, "buyer@x.com")
}

func TestVerifySeller(t *testing.T) {
	s := newTestServer(t, nil)
	s.users.add("admin@x.com", domain.RoleAdmin)
	seller := s.users.add("seller@x.com", domain.RoleSeller)
	buyer := s.users.add("buyer@x.com", domain.RoleBuyer)

	w := s.do(t, http.MethodPut, "/sellers/verify/"+seller.ID.Hex(), "admin@x.com", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.True(t, s.users.users["seller@x.com"].Verify)

	w = s.do(t, http.MethodPut, "/sellers/verify/"+buyer.ID.Hex(), "admin@x.com", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.False(t, s.users.users["buyer@x.com"].Verify)

	w = s.do(t, http.MethodPut, "/sellers/verify/"+primitive.NewObjectID().Hex(), "admin@x.com", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Len(t, s.users.users, 3)
}

func TestMakeAdmin(t *testing.T) {
	s := newTestServer(t, nil)
	s.users.add("admin@x.com", domain.RoleAdmin)
	buyer := s.users.add("buyer@x.com", domain.RoleBuyer)

	w := s.do(t, http.MethodPut, "/makeAdmin/"+buyer.ID.Hex(), "admin@x.com", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, domain.RoleAdmin, s.users.users["buyer@x.com"].Type)

	w = s.do(t, http.MethodPut, "/makeAdmin/"+primitive.NewObjectID().Hex(), "admin@x.com", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = s.do(t, http.MethodPut, "/makeAdmin/xyz", "admin@x.com", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestDeleteBuyer(t *testing.T) {
	s := newTestServer(t, nil)
	s.users.add("admin@x.com", domain.RoleAdmin)
	buyer := s.users.add("buyer@x.com", domain.RoleBuyer)
	seller := s.users.add("seller@x.com", domain.RoleSeller)

	w := s.do(t, http.MethodDelete, "/buyers/"+seller.ID.Hex(), "admin@x.com", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, s.users.users, "seller@x.com")

	w = s.do(t, http.MethodDelete, "/buyers/"+buyer.ID.Hex(), "admin@x.com", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.NotContains(t, s.users.users, "buyer@x.com")
}
