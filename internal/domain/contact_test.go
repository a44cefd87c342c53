package domain

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestContactInput_Validate(t *testing.T) {
	ok := ContactInput{Name: " Ravi ", Email: "ravi@example.com", Message: "Do you ship abroad?"}
	require.NoError(t, ok.Validate())
	assert.Equal(t, "Ravi", ok.Name)

	for _, in := range []ContactInput{
		{Email: "ravi@example.com", Message: "hi"},
		{Name: "Ravi", Email: "ravi@example", Message: "hi"},
		{Name: "Ravi", Email: "ravi @example.com", Message: "hi"},
		{Name: "Ravi", Email: "ravi@example.com", Message: "   "},
	} {
		err := in.Validate()
		require.Error(t, err, "%+v", in)
		assert.True(t, errors.Is(err, ErrValidation))
	}
}

func TestContactStatusUpdate_Validate(t *testing.T) {
	assert.NoError(t, ContactStatusUpdate{Status: ContactReplied}.Validate())
	assert.True(t, errors.Is(ContactStatusUpdate{Status: "archived"}.Validate(), ErrValidation))
	assert.True(t, errors.Is(ContactStatusUpdate{}.Validate(), ErrValidation))
}

func TestCraftSubmission_Validate(t *testing.T) {
	s := CraftSubmission{
		SellerFullName: "Meena", ItemName: "Dokra horse", Description: "Bell metal casting",
		Price: "Rs. 1,450", Region: "Bastar", ArtistName: "Meena", SellerEmail: "meena@example.com",
		SellerPhone: "9000000000",
	}
	amount, err := s.Validate()
	require.NoError(t, err)
	assert.True(t, dec("1450").Equal(amount))

	s.Region = ""
	_, err = s.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "region")
}

func TestUser_HasRole(t *testing.T) {
	admin := &User{Role: RoleAdmin}
	user := &User{Role: RoleUser}
	assert.True(t, admin.HasRole(RoleUser))
	assert.True(t, admin.HasRole(RoleAdmin))
	assert.True(t, user.HasRole(RoleUser))
	assert.False(t, user.HasRole(RoleAdmin))
}

func TestRegisterInput_Validate(t *testing.T) {
	in := RegisterInput{Username: "asha", Email: " Asha@Example.COM ", Password: "secret1"}
	require.NoError(t, in.Validate())
	assert.Equal(t, "asha@example.com", in.Email)

	short := RegisterInput{Username: "asha", Email: "asha@example.com", Password: "123"}
	err := short.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "password")
}
