package core

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"
	"strings"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/bsontype"
)

// FlexInt is an integer document field that other writers sometimes store as a string
// ("6"). Numbers and numeric strings decode to their value; anything else decodes to 0.
type FlexInt int

func (i FlexInt) Int() int { return int(i) }

func (i FlexInt) String() string { return strconv.Itoa(int(i)) }

func (i FlexInt) MarshalJSON() ([]byte, error) {
	return []byte(strconv.Itoa(int(i))), nil
}

func (i *FlexInt) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*i = parseFlexInt(s)
		return nil
	}
	var f float64
	if err := json.Unmarshal(data, &f); err != nil {
		*i = 0
		return nil // null, bools, objects
	}
	*i = FlexInt(math.Trunc(f))
	return nil
}

func (i FlexInt) MarshalBSONValue() (bsontype.Type, []byte, error) {
	return bson.MarshalValue(int64(i))
}

func (i *FlexInt) UnmarshalBSONValue(t bsontype.Type, data []byte) error {
	raw := bson.RawValue{Type: t, Value: data}
	switch t {
	case bsontype.Int32:
		*i = FlexInt(raw.Int32())
	case bsontype.Int64:
		*i = FlexInt(raw.Int64())
	case bsontype.Double:
		*i = FlexInt(math.Trunc(raw.Double()))
	case bsontype.String:
		*i = parseFlexInt(raw.StringValue())
	default:
		*i = 0
	}
	return nil
}

// parseFlexInt reads the leading integer of s, like a lenient parseInt.
func parseFlexInt(s string) FlexInt {
	s = strings.TrimSpace(s)
	end := 0
	for end < len(s) && (s[end] >= '0' && s[end] <= '9' || (end == 0 && (s[end] == '-' || s[end] == '+'))) {
		end++
	}
	n, err := strconv.Atoi(s[:end])
	if err != nil {
		return 0
	}
	return FlexInt(n)
}
