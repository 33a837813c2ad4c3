package wallet

import (
	"testing"

	"bookify/globals"

	"github.com/stretchr/testify/assert"
)

func TestCanReadWallet(t *testing.T) {
	assert.True(t, canReadWallet("u123", "u123", []string{"user"}))
	assert.True(t, canReadWallet(globals.AdminWalletID, "u123", []string{"user", "admin"}))
	assert.True(t, canReadWallet("u456", "u123", []string{"admin"}))

	assert.False(t, canReadWallet("u456", "u123", []string{"user"}))
	assert.False(t, canReadWallet(globals.AdminWalletID, "u123", []string{"user"}))
	assert.False(t, canReadWallet("u456", "u123", nil))
	assert.False(t, canReadWallet("", "", []string{"user"}))
}
