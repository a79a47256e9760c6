package services

import (
	"context"
	"testing"
	"time"

	"github.com/dmitrijs2005/sessionkeeper/internal/client/models"
	"github.com/dmitrijs2005/sessionkeeper/internal/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func loggedIn(t *testing.T) Session {
	t.Helper()
	s := newSession(t)
	require.NoError(t, s.Login(context.Background(), "tok", user(1)))
	return s
}

func TestUserService_RequiresSession(t *testing.T) {
	fc := &fakeClient{}
	svc := NewUserService(fc, newSession(t), 0)
	ctx := context.Background()

	_, err := svc.List(ctx, 1)
	require.ErrorIs(t, err, common.ErrNotLoggedIn)
	_, err = svc.Get(ctx, 1)
	require.ErrorIs(t, err, common.ErrNotLoggedIn)
	_, err = svc.Update(ctx, 1, models.UpdateUserRequest{Name: "x"})
	require.ErrorIs(t, err, common.ErrNotLoggedIn)
	require.ErrorIs(t, svc.Delete(ctx, 1), common.ErrNotLoggedIn)
}

func TestUserService_ListInjectsCredentialAndPageSize(t *testing.T) {
	fc := &fakeClient{ListResp: &models.UsersResponse{Pagination: models.Pagination{Page: 1, Limit: 10}}}
	svc := NewUserService(fc, loggedIn(t), 0)

	resp, err := svc.List(context.Background(), 0)
	require.NoError(t, err)
	assert.Equal(t, 1, resp.Pagination.Page)
	assert.Equal(t, DefaultPageSize, fc.LastLimit)
	assert.Equal(t, "tok", fc.LastCred)
}

func TestUserService_NewerListSupersedesOlder(t *testing.T) {
	started := make(chan struct{})
	fc := &fakeClient{}
	fc.ListFn = func(ctx context.Context, page, _ int, _ string) (*models.UsersResponse, error) {
		if page == 1 {
			close(started)
			<-ctx.Done()
			return nil, ctx.Err()
		}
		return &models.UsersResponse{Pagination: models.Pagination{Page: page}}, nil
	}
	svc := NewUserService(fc, loggedIn(t), 5)

	type result struct {
		resp *models.UsersResponse
		err  error
	}
	first := make(chan result, 1)
	go func() {
		resp, err := svc.List(context.Background(), 1)
		first <- result{resp, err}
	}()

	<-started
	resp, err := svc.List(context.Background(), 2)
	require.NoError(t, err)
	assert.Equal(t, 2, resp.Pagination.Page)

	select {
	case r := <-first:
		require.ErrorIs(t, r.err, common.ErrSuperseded)
		assert.Nil(t, r.resp)
	case <-time.After(time.Second):
		t.Fatal("superseded call did not return")
	}
}

func TestUserService_GetUpdateDelete(t *testing.T) {
	fc := &fakeClient{User: user(7)}
	svc := NewUserService(fc, loggedIn(t), 0)
	ctx := context.Background()

	u, err := svc.Get(ctx, 7)
	require.NoError(t, err)
	assert.Equal(t, int64(7), u.ID)
	assert.Equal(t, "tok", fc.LastCred)

	_, err = svc.Update(ctx, 8, models.UpdateUserRequest{Name: "Bob"})
	require.NoError(t, err)
	assert.Equal(t, int64(8), fc.LastID)

	require.NoError(t, svc.Delete(ctx, 9))
	assert.Equal(t, int64(9), fc.LastID)
}
