package role_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/jcpaschoal/manfix/business/types/role"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	for _, r := range role.All() {
		parsed, err := role.Parse(r.String())
		require.NoError(t, err)

		if diff := cmp.Diff(r, parsed); diff != "" {
			t.Errorf("parsed role mismatch (-want +got):\n%s", diff)
		}
	}
}

func TestParseUnknown(t *testing.T) {
	_, err := role.Parse("SUPERVISOR")
	assert.Error(t, err)

	_, err = role.Parse("manager")
	assert.Error(t, err, "roles are case sensitive")
}

func TestMustParsePanics(t *testing.T) {
	assert.Panics(t, func() {
		role.MustParse("NOT_A_ROLE")
	})
}

func TestMarshalText(t *testing.T) {
	b, err := role.CompanyOwner.MarshalText()
	require.NoError(t, err)
	assert.Equal(t, "COMPANY_OWNER", string(b))
}
