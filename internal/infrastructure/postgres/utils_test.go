package postgres

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSortColumn_WhitelistConFallbackSilencioso(t *testing.T) {
	whitelist := map[string]string{
		"code": "i.code",
		"name": "i.name",
	}

	assert.Equal(t, "i.name", sortColumn(whitelist, "name", "i.code"))
	// Columna desconocida: nunca se interpola la entrada del usuario.
	assert.Equal(t, "i.code", sortColumn(whitelist, "password; DROP TABLE items", "i.code"))
	assert.Equal(t, "i.code", sortColumn(whitelist, "", "i.code"))
}

func TestSortDirection(t *testing.T) {
	assert.Equal(t, "DESC", sortDirection("desc"))
	assert.Equal(t, "ASC", sortDirection("asc"))
	// Cualquier otra cosa cae a ASC.
	assert.Equal(t, "ASC", sortDirection("DESC; --"))
	assert.Equal(t, "ASC", sortDirection(""))
}

func TestLikePattern(t *testing.T) {
	assert.Equal(t, "%tornillo%", likePattern("tornillo"))
	assert.Equal(t, "%%", likePattern(""))
}
