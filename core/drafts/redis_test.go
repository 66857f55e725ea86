package drafts

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"pricing-modeller/core/drafts/mocks"
	"pricing-modeller/core/pricing"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func draftModel() pricing.PricingModel {
	return pricing.PricingModel{
		Features: []pricing.Feature{{ID: "f1", Name: "API calls", Type: pricing.FeatureSingleUse}},
		Products: []pricing.Product{{ID: "p1", Name: "Pro", Items: []pricing.ProductItem{
			{FeatureID: pricing.Ptr("f1"), IncludedUsage: pricing.Unlimited()},
		}}},
	}
}

func TestRedisStoreSave(t *testing.T) {
	client := new(mocks.Client)
	expected, err := json.Marshal(draftModel())
	require.NoError(t, err)

	client.On("Set", mock.Anything, "pricing:draft:s1", expected, time.Hour).
		Return(redis.NewStatusResult("OK", nil)).Once()

	store := NewRedisStore(client, "pricing:draft:", time.Hour)
	require.NoError(t, store.Save(context.Background(), "s1", draftModel()))
	client.AssertExpectations(t)
}

func TestRedisStoreLoad(t *testing.T) {
	raw, err := json.Marshal(draftModel())
	require.NoError(t, err)

	client := new(mocks.Client)
	client.On("Get", mock.Anything, "pricing:draft:s1").Return(redis.NewStringResult(string(raw), nil))
	client.On("Get", mock.Anything, "pricing:draft:missing").Return(redis.NewStringResult("", redis.Nil))
	client.On("Get", mock.Anything, "pricing:draft:down").Return(redis.NewStringResult("", errors.New("connection refused")))
	client.On("Get", mock.Anything, "pricing:draft:corrupt").Return(redis.NewStringResult("{", nil))

	store := NewRedisStore(client, "pricing:draft:", time.Hour)
	ctx := context.Background()

	m, found, err := store.Load(ctx, "s1")
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, "p1", m.Products[0].ID)
	assert.True(t, m.Products[0].Items[0].IncludedUsage.Unlimited)

	_, found, err = store.Load(ctx, "missing")
	require.NoError(t, err)
	assert.False(t, found)

	_, _, err = store.Load(ctx, "down")
	assert.ErrorContains(t, err, "connection refused")

	_, _, err = store.Load(ctx, "corrupt")
	assert.ErrorContains(t, err, "decode")
}

func TestRedisStoreDelete(t *testing.T) {
	client := new(mocks.Client)
	client.On("Del", mock.Anything, []string{"pricing:draft:s1"}).Return(redis.NewIntResult(1, nil)).Once()

	store := NewRedisStore(client, "pricing:draft:", 0)
	require.NoError(t, store.Delete(context.Background(), "s1"))
	client.AssertExpectations(t)
}

func TestMemoryStore(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	_, found, err := store.Load(ctx, "s1")
	require.NoError(t, err)
	assert.False(t, found)

	m := draftModel()
	require.NoError(t, store.Save(ctx, "s1", m))
	m.Products[0].Name = "Changed"

	loaded, found, err := store.Load(ctx, "s1")
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, "Pro", loaded.Products[0].Name)

	require.NoError(t, store.Delete(ctx, "s1"))
	_, found, _ = store.Load(ctx, "s1")
	assert.False(t, found)
}
