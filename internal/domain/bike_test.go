package domain

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
)

const listingJSON = `{
	"category": "Road",
	"price": 150,
	"resalePrice": 0,
	"model": "X1",
	"name": "",
	"image": "https://img.example/x1.png",
	"specs": {"gears": 22, "frame": "carbon"},
	"tags": ["light", "fast"]
}`

func TestBikeJSONKeepsUnknownFields(t *testing.T) {
	var bike Bike
	require.NoError(t, json.Unmarshal([]byte(listingJSON), &bike))

	assert.Equal(t, "Road", bike.Category)
	require.NotNil(t, bike.Price)
	assert.Equal(t, 150.0, *bike.Price)
	require.NotNil(t, bike.ResalePrice)
	assert.Zero(t, *bike.ResalePrice)
	assert.Nil(t, bike.OriginalPrice)
	assert.Equal(t, "X1", bike.Details["model"])
	assert.NotContains(t, bike.Details, "category")

	out, err := json.Marshal(bike)
	require.NoError(t, err)
	var got map[string]any
	require.NoError(t, json.Unmarshal(out, &got))

	var sent map[string]any
	require.NoError(t, json.Unmarshal([]byte(listingJSON), &sent))
	for k, v := range sent {
		assert.Equal(t, v, got[k], k)
	}
}

func TestBikeBSONRoundTrip(t *testing.T) {
	var bike Bike
	require.NoError(t, json.Unmarshal([]byte(listingJSON), &bike))

	raw, err := bson.Marshal(bike)
	require.NoError(t, err)
	assert.Equal(t, "X1", bson.Raw(raw).Lookup("model").StringValue())
	assert.Equal(t, "carbon", bson.Raw(raw).Lookup("specs", "frame").StringValue())

	var stored Bike
	require.NoError(t, bson.Unmarshal(raw, &stored))
	assert.Equal(t, bike.Category, stored.Category)
	assert.Equal(t, *bike.Price, *stored.Price)
	assert.Equal(t, "X1", stored.Details["model"])

	out, err := json.Marshal(stored)
	require.NoError(t, err)
	assert.JSONEq(t, `{"gears":22,"frame":"carbon"}`, mustField(t, out, "specs"))
	assert.JSONEq(t, `["light","fast"]`, mustField(t, out, "tags"))
}

func TestBikeWithoutDetails(t *testing.T) {
	out, err := json.Marshal(Bike{Category: "Road"})
	require.NoError(t, err)
	assert.NotContains(t, string(out), "Details")
}

func mustField(t *testing.T, doc []byte, key string) string {
	t.Helper()
	var fields map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(doc, &fields))
	require.Contains(t, fields, key)
	return string(fields[key])
}
