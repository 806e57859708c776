package reviewControllers

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/TheManUnderTheHood/Loomly/models"
	"github.com/TheManUnderTheHood/Loomly/testutil"
	"github.com/TheManUnderTheHood/Loomly/utils"
)

func TestUpsertReview_RequiresDeliveredPurchase(t *testing.T) {
	db := testutil.NewDB(t)
	user := testutil.SeedUser(t, db, models.RoleUser)
	product := testutil.SeedProduct(t, db, "unbought", 10.00, 5)

	_, err := UpsertReview(db, user.ID, SubmitReviewInput{ProductID: product.ID, Rating: 5})
	require.Error(t, err)

	var apiErr *utils.ApiError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, 403, apiErr.StatusCode)
}

func TestUpsertReview_ResubmitUpdatesInPlace(t *testing.T) {
	db := testutil.NewDB(t)
	user := testutil.SeedUser(t, db, models.RoleUser)
	product := testutil.SeedProduct(t, db, "reviewed", 10.00, 5)
	testutil.SeedDeliveredOrder(t, db, user.ID, product)

	first, err := UpsertReview(db, user.ID, SubmitReviewInput{ProductID: product.ID, Rating: 2, Comment: "meh"})
	require.NoError(t, err)

	second, err := UpsertReview(db, user.ID, SubmitReviewInput{ProductID: product.ID, Rating: 5, Comment: "grew on me"})
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID, "resubmission must update, not duplicate")

	var reviewCount int64
	require.NoError(t, db.Model(&models.Review{}).Where("product_id = ?", product.ID).Count(&reviewCount).Error)
	assert.EqualValues(t, 1, reviewCount)

	var got models.Product
	require.NoError(t, db.First(&got, product.ID).Error)
	assert.Equal(t, 5.0, got.Ratings)
	assert.Equal(t, 1, got.NumReviews)
}

func TestUpsertReview_AggregateIsMeanOverReviewSet(t *testing.T) {
	db := testutil.NewDB(t)
	product := testutil.SeedProduct(t, db, "popular", 10.00, 5)

	ratings := []int{5, 4, 2}
	for _, rating := range ratings {
		user := testutil.SeedUser(t, db, models.RoleUser)
		testutil.SeedDeliveredOrder(t, db, user.ID, product)
		_, err := UpsertReview(db, user.ID, SubmitReviewInput{ProductID: product.ID, Rating: rating})
		require.NoError(t, err)
	}

	var got models.Product
	require.NoError(t, db.First(&got, product.ID).Error)
	assert.InDelta(t, (5.0+4.0+2.0)/3.0, got.Ratings, 1e-9)
	assert.Equal(t, 3, got.NumReviews)
}

func TestDeleteReview_RecomputesAggregates(t *testing.T) {
	db := testutil.NewDB(t)
	product := testutil.SeedProduct(t, db, "fleeting", 10.00, 5)

	alice := testutil.SeedUser(t, db, models.RoleUser)
	bob := testutil.SeedUser(t, db, models.RoleUser)
	testutil.SeedDeliveredOrder(t, db, alice.ID, product)
	testutil.SeedDeliveredOrder(t, db, bob.ID, product)

	aliceReview, err := UpsertReview(db, alice.ID, SubmitReviewInput{ProductID: product.ID, Rating: 5})
	require.NoError(t, err)
	bobReview, err := UpsertReview(db, bob.ID, SubmitReviewInput{ProductID: product.ID, Rating: 1})
	require.NoError(t, err)

	require.NoError(t, DeleteReview(db, alice.ID, false, aliceReview.ID))

	var got models.Product
	require.NoError(t, db.First(&got, product.ID).Error)
	assert.Equal(t, 1.0, got.Ratings)
	assert.Equal(t, 1, got.NumReviews)

	// Deleting the last review zeroes the aggregates.
	require.NoError(t, DeleteReview(db, bob.ID, false, bobReview.ID))
	require.NoError(t, db.First(&got, product.ID).Error)
	assert.Equal(t, 0.0, got.Ratings)
	assert.Equal(t, 0, got.NumReviews)
}

func TestDeleteReview_Authorization(t *testing.T) {
	db := testutil.NewDB(t)
	product := testutil.SeedProduct(t, db, "guarded", 10.00, 5)
	owner := testutil.SeedUser(t, db, models.RoleUser)
	stranger := testutil.SeedUser(t, db, models.RoleUser)
	testutil.SeedDeliveredOrder(t, db, owner.ID, product)

	review, err := UpsertReview(db, owner.ID, SubmitReviewInput{ProductID: product.ID, Rating: 4})
	require.NoError(t, err)

	err = DeleteReview(db, stranger.ID, false, review.ID)
	require.Error(t, err)
	var apiErr *utils.ApiError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, 403, apiErr.StatusCode)

	// An admin may delete anyone's review.
	require.NoError(t, DeleteReview(db, stranger.ID, true, review.ID))

	err = DeleteReview(db, stranger.ID, true, review.ID)
	require.Error(t, err)
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, 404, apiErr.StatusCode)
}
