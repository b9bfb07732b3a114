package mask_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/rise-and-shine/cqrskit/mask"
)

type credentials struct {
	Login    string `json:"login"`
	Password string `json:"password" mask:"true"`
}

type registerUser struct {
	Email   string       `json:"email"`
	Secret  *credentials `json:"secret"`
	PIN     int          `json:"pin"      mask:"true"`
	Empty   string       `json:"empty"    mask:"true"`
	Ignored string       `json:"-"`
	At      time.Time    `json:"at"`
	hidden  string
}

func TestFields(t *testing.T) {
	at := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
	in := registerUser{
		Email:   "a@b.com",
		Secret:  &credentials{Login: "ann", Password: "secret"},
		PIN:     1234,
		Ignored: "x",
		At:      at,
		hidden:  "y",
	}

	assert.Equal(t, map[string]any{
		"email":           "a@b.com",
		"secret.login":    "ann",
		"secret.password": "***masked-string***",
		"pin":             "***masked-int***",
		"empty":           "",
		"at":              at,
	}, mask.Fields(in))
}

func TestFieldsNilAndScalars(t *testing.T) {
	assert.Nil(t, mask.Fields(nil))
	assert.Equal(t, map[string]any{"value": 5}, mask.Fields(5))

	var nilPtr *credentials
	assert.Equal(t, map[string]any{"value": nil}, mask.Fields(nilPtr))
}
