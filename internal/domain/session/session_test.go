package session

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestContextRoundTrip(t *testing.T) {
	_, ok := FromContext(context.Background())
	assert.False(t, ok)

	s := Session{AdminID: "a1", CompanyID: "c1", Role: RoleAdmin}
	got, ok := FromContext(NewContext(context.Background(), s))
	assert.True(t, ok)
	assert.Equal(t, s, got)
	assert.True(t, got.IsAdmin())
}

func TestValidate(t *testing.T) {
	assert.ErrorIs(t, Session{CompanyID: "c1"}.Validate(), ErrNoSession)
	assert.ErrorIs(t, Session{AdminID: "a1"}.Validate(), ErrNoSession)
	assert.NoError(t, Session{AdminID: "a1", CompanyID: "c1"}.Validate())
}
