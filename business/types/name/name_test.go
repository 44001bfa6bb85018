package name_test

import (
	"testing"

	"github.com/jcpaschoal/manfix/business/types/name"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	valid := []string{
		"John Doe",
		"João Pereira",
		"Gerente de Manutenção",
		"Equipe Elétrica",
		"Vazamento de óleo",
		"Produção 2",
		"O'Brien",
	}

	for _, v := range valid {
		n, err := name.Parse(v)
		require.NoError(t, err, "name %q", v)
		assert.Equal(t, v, n.String())
	}
}

func TestParseInvalid(t *testing.T) {
	invalid := []string{
		"",
		"ab",
		"bad_name!",
		"tab\tname",
	}

	for _, v := range invalid {
		_, err := name.Parse(v)
		assert.Error(t, err, "name %q", v)
	}
}

func TestParseNull(t *testing.T) {
	n, err := name.ParseNull("")
	require.NoError(t, err)
	assert.False(t, n.Valid())

	n, err = name.ParseNull("Técnico Exemplo")
	require.NoError(t, err)
	assert.True(t, n.Valid())
	assert.Equal(t, "Técnico Exemplo", n.String())
}
