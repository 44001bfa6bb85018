package requeststatus_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/jcpaschoal/manfix/business/types/requeststatus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	for _, s := range requeststatus.All() {
		parsed, err := requeststatus.Parse(s.String())
		require.NoError(t, err)

		if diff := cmp.Diff(s, parsed); diff != "" {
			t.Errorf("parsed status mismatch (-want +got):\n%s", diff)
		}
	}
}

func TestParseUnknown(t *testing.T) {
	_, err := requeststatus.Parse("DONE")
	assert.Error(t, err)
}

func TestIsOpen(t *testing.T) {
	assert.True(t, requeststatus.New.IsOpen())
	assert.True(t, requeststatus.InProgress.IsOpen())
	assert.False(t, requeststatus.Repaired.IsOpen())
	assert.False(t, requeststatus.Scrap.IsOpen())
}

func TestColumnOrder(t *testing.T) {
	want := []requeststatus.Status{
		requeststatus.New,
		requeststatus.InProgress,
		requeststatus.Repaired,
		requeststatus.Scrap,
	}

	if diff := cmp.Diff(want, requeststatus.All()); diff != "" {
		t.Errorf("column order mismatch (-want +got):\n%s", diff)
	}

	assert.Equal(t, requeststatus.All()[:2], requeststatus.Open())
}
