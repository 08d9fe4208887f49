package lookup

import (
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResult_Render(t *testing.T) {
	tests := []struct {
		name   string
		result Result
		ok     bool
		want   string
	}{
		{"success", Success("Country: US"), true, "Country: US"},
		{"failure", Failure("invalid query"), false, "Error: invalid query"},
		{"empty reason", Failure("  "), false, "Error: unknown error"},
		{"from error", Failed(errors.New("timeout")), false, "Error: timeout"},
		{"nil error", Failed(nil), false, "Error: unknown error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.ok, tt.result.OK())
			assert.Equal(t, tt.want, tt.result.Render())
		})
	}
}

func TestResult_Accessors(t *testing.T) {
	ok := Success("text")
	assert.Equal(t, "text", ok.Text())
	assert.Empty(t, ok.Reason())
	assert.Equal(t, "Success(text)", ok.String())

	fail := Failure("reason")
	assert.Empty(t, fail.Text())
	assert.Equal(t, "reason", fail.Reason())
	assert.Equal(t, "Failure(reason)", fail.String())
}

func TestParseKind(t *testing.T) {
	for _, k := range AllKinds() {
		got, err := ParseKind(" " + string(k) + " ")
		require.NoError(t, err)
		assert.Equal(t, k, got)
	}

	got, err := ParseKind("IP")
	require.NoError(t, err)
	assert.Equal(t, KindIP, got)

	_, err = ParseKind("email")
	assert.Error(t, err)
}

func TestKind_Title(t *testing.T) {
	assert.Equal(t, "Google Dork", KindDork.Title())
	assert.Equal(t, "Phone", KindPhone.Title())
	assert.Equal(t, "other", Kind("other").Title())
}

func TestState_String(t *testing.T) {
	assert.Equal(t, "idle", Idle.String())
	assert.Equal(t, "running", Running.String())
}

func TestNewRequest(t *testing.T) {
	a := NewRequest(KindIP, "8.8.8.8")
	b := NewRequest(KindIP, "8.8.8.8")

	assert.NotEqual(t, uuid.Nil, a.ID)
	assert.NotEqual(t, a.ID, b.ID)
	assert.Equal(t, KindIP, a.Kind)
	assert.Equal(t, "8.8.8.8", a.Input)
	assert.False(t, a.SubmittedAt.IsZero())
}

func TestNormalizeInput(t *testing.T) {
	tests := []struct {
		raw, placeholder, want string
	}{
		{"  8.8.8.8 ", "123.45.67.89", "8.8.8.8"},
		{"123.45.67.89", "123.45.67.89", ""},
		{"   ", "", ""},
		{"\t\n", "username", ""},
		{"user", "", "user"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, NormalizeInput(tt.raw, tt.placeholder), "raw=%q", tt.raw)
	}
}

func TestPlaceholderAndLabel(t *testing.T) {
	for _, k := range AllKinds() {
		assert.NotEmpty(t, Placeholder(k), k)
		assert.NotEmpty(t, InputLabel(k), k)
	}
	assert.Empty(t, Placeholder(Kind("x")))
}
