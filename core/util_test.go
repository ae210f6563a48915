package core

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
)

func TestFlexInt_UnmarshalJSON(t *testing.T) {
	tests := []struct {
		data string
		want FlexInt
	}{
		{data: `6`, want: 6},
		{data: `6.9`, want: 6},
		{data: `-3`, want: -3},
		{data: `"6"`, want: 6},
		{data: `" 12 "`, want: 12},
		{data: `"12abc"`, want: 12},
		{data: `"abc"`, want: 0},
		{data: `""`, want: 0},
		{data: `null`, want: 0},
		{data: `true`, want: 0},
		{data: `{"a": 1}`, want: 0},
	}
	for _, tt := range tests {
		t.Run(tt.data, func(t *testing.T) {
			var got FlexInt
			if err := json.Unmarshal([]byte(tt.data), &got); err != nil {
				t.Fatalf("json.Unmarshal() failed: %v", err)
			}
			if got != tt.want {
				t.Errorf("failed! FlexInt = %v; want %v", got, tt.want)
			}
		})
	}
}

func TestFlexInt_documentField(t *testing.T) {
	type doc struct {
		Price FlexInt `json:"price" bson:"price"`
	}

	data, err := json.Marshal(doc{Price: 1999})
	require.NoError(t, err)
	assert.JSONEq(t, `{"price": 1999}`, string(data))

	// BSON: stored as int64, read back from any numeric or string representation
	raw, err := bson.Marshal(doc{Price: 1999})
	require.NoError(t, err)
	var fromInt doc
	require.NoError(t, bson.Unmarshal(raw, &fromInt))
	assert.Equal(t, FlexInt(1999), fromInt.Price)

	for _, stored := range []interface{}{int32(6), int64(6), 6.5, "6", true} {
		raw, err := bson.Marshal(bson.M{"price": stored})
		require.NoError(t, err)
		var got doc
		require.NoError(t, bson.Unmarshal(raw, &got))
		want := FlexInt(6)
		if _, ok := stored.(bool); ok {
			want = 0
		}
		assert.Equal(t, want, got.Price, "stored %T", stored)
	}
}

func TestCleanString(t *testing.T) {
	assert.Equal(t, "Yoga", CleanString("  Yoga \n"))
	assert.Equal(t, "yoga", CleanString("  YoGa ", true))
	assert.True(t, ContainsFold("Power Yoga", "power y"))
	assert.False(t, ContainsFold("Power Yoga", "flow"))
}
