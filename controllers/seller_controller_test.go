package controllers

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jakia12/bizconnect-backend/models"
)

func TestVerificationTransitions(t *testing.T) {
	assert.True(t, canVerifyTransition(models.SellerUnverified, models.SellerPending))
	assert.True(t, canVerifyTransition(models.SellerPending, models.SellerVerified))
	assert.True(t, canVerifyTransition(models.SellerPending, models.SellerRejected))
	assert.True(t, canVerifyTransition(models.SellerRejected, models.SellerPending))

	assert.False(t, canVerifyTransition(models.SellerUnverified, models.SellerVerified))
	assert.False(t, canVerifyTransition(models.SellerVerified, models.SellerPending))
	assert.False(t, canVerifyTransition(models.SellerVerified, models.SellerRejected))
	assert.False(t, canVerifyTransition(models.SellerRejected, models.SellerVerified))
}
