package types_test

import (
	"encoding/json"
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/wikimetrics/cohortview/pkg/domain/types"
)

func TestParseCohortID(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    types.CohortID
		wantErr bool
	}{
		{"Valid number", "42", 42, false},
		{"Zero", "0", 0, false},
		{"Negative", "-1", 0, true},
		{"Not a number", "abc", 0, true},
		{"Empty", "", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id, err := types.ParseCohortID(tt.input)
			if tt.wantErr {
				gt.Error(t, err)
				return
			}
			gt.NoError(t, err)
			gt.Equal(t, tt.want, id)
			gt.Equal(t, tt.input, id.String())
		})
	}
}

func TestWikiUserIDUnmarshal(t *testing.T) {
	t.Run("String ID", func(t *testing.T) {
		var v struct {
			ID types.WikiUserID `json:"id"`
		}
		gt.NoError(t, json.Unmarshal([]byte(`{"id":"u1"}`), &v))
		gt.Equal(t, types.WikiUserID("u1"), v.ID)
	})

	t.Run("Numeric ID", func(t *testing.T) {
		var v struct {
			ID types.WikiUserID `json:"id"`
		}
		gt.NoError(t, json.Unmarshal([]byte(`{"id": 1234}`), &v))
		gt.Equal(t, types.WikiUserID("1234"), v.ID)
	})

	t.Run("Null ID", func(t *testing.T) {
		var v struct {
			ID types.WikiUserID `json:"id"`
		}
		gt.NoError(t, json.Unmarshal([]byte(`{"id":null}`), &v))
		gt.Equal(t, types.WikiUserID(""), v.ID)
	})

	t.Run("Object is rejected", func(t *testing.T) {
		var v struct {
			ID types.WikiUserID `json:"id"`
		}
		gt.Error(t, json.Unmarshal([]byte(`{"id":{"x":1}}`), &v))
	})
}

func TestMediawikiUserIDUnmarshal(t *testing.T) {
	testCases := []struct {
		name    string
		input   string
		want    types.MediawikiUserID
		wantErr bool
	}{
		{name: "number", input: `{"uid":42}`, want: "42"},
		{name: "string", input: `{"uid":"42"}`, want: "42"},
		{name: "null", input: `{"uid":null}`, want: ""},
		{name: "missing", input: `{}`, want: ""},
		{name: "bool is rejected", input: `{"uid":true}`, wantErr: true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			var v struct {
				UID types.MediawikiUserID `json:"uid"`
			}
			err := json.Unmarshal([]byte(tc.input), &v)
			if tc.wantErr {
				gt.Error(t, err)
				return
			}
			gt.NoError(t, err)
			gt.Equal(t, tc.want, v.UID)
		})
	}
}

func TestNewRequestID(t *testing.T) {
	a := types.NewRequestID()
	b := types.NewRequestID()
	gt.NotEqual(t, a, b)
	gt.Equal(t, 36, len(a.String()))
}
