package models

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func TestUserProfile_KeepsRawDocument(t *testing.T) {
	in := `{"id":1,"username":"alice","virtual_balance":"10000.50","badge":"early-bird"}`

	var u UserProfile
	require.NoError(t, json.Unmarshal([]byte(in), &u))

	require.Equal(t, ID("1"), u.ID)
	require.Equal(t, "alice", u.Username)
	require.True(t, decimal.RequireFromString("10000.5").Equal(u.VirtualBalance))

	out, err := json.Marshal(u)
	require.NoError(t, err)
	require.JSONEq(t, in, string(out), "unknown fields must survive re-encoding")
}

func TestUserProfile_MarshalWithoutRawUsesFields(t *testing.T) {
	u := UserProfile{ID: "7", Username: "bob"}

	out, err := json.Marshal(u)
	require.NoError(t, err)

	var back map[string]any
	require.NoError(t, json.Unmarshal(out, &back))
	require.Equal(t, "bob", back["username"])
	require.EqualValues(t, 7, back["id"])
}

func TestUserProfile_PointerInsideEnvelope(t *testing.T) {
	var resp AuthResponse
	require.NoError(t, json.Unmarshal([]byte(`{"token":"abc","user":{"id":1,"username":"alice"}}`), &resp))

	require.Equal(t, "abc", resp.Token)
	require.NotNil(t, resp.User)
	require.Equal(t, "alice", resp.User.Username)
	require.JSONEq(t, `{"id":1,"username":"alice"}`, string(resp.User.Raw))
}

func TestPosition_Cost(t *testing.T) {
	p := Position{Shares: decimal.RequireFromString("12.5"), AvgPrice: decimal.RequireFromString("0.4")}
	require.True(t, decimal.RequireFromString("5").Equal(p.Cost()))
}

func TestUserProfile_UnexpectedFieldShapesDoNotFailDecode(t *testing.T) {
	in := `{"id":1,"username":"alice","created_at":"2024-01-01","virtual_balance":{"amount":5},"is_admin":"no"}`

	var u UserProfile
	require.NoError(t, json.Unmarshal([]byte(in), &u))

	require.Equal(t, ID("1"), u.ID)
	require.Equal(t, "alice", u.Username)
	require.True(t, u.CreatedAt.IsZero())
	require.True(t, u.VirtualBalance.IsZero())
	require.False(t, u.IsAdmin)

	out, err := json.Marshal(u)
	require.NoError(t, err)
	require.JSONEq(t, in, string(out))
}

func TestUserProfile_NonObjectKeptVerbatim(t *testing.T) {
	var u UserProfile
	require.NoError(t, json.Unmarshal([]byte(`"alice"`), &u))

	require.Empty(t, u.Username)
	require.Equal(t, `"alice"`, string(u.Raw))
}
